package service

import (
	"context"
	"testing"

	"habitquest/internal/model"
	"habitquest/internal/service/mocks"
	"habitquest/pkg/gameday"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type recordingSink struct {
	events []ReminderEvent
}

func (s *recordingSink) Publish(ev ReminderEvent) {
	s.events = append(s.events, ev)
}

func TestNotifierTick(t *testing.T) {
	clock := "07:30"
	today := gameday.Today()

	due := &model.Quest{
		ID:            uuid.New(),
		UserID:        1,
		Title:         "Morning run",
		Type:          model.QuestTypeDaily,
		ScheduledTime: &clock,
	}
	alreadyDone := &model.Quest{
		ID:                uuid.New(),
		UserID:            2,
		Title:             "Meditate",
		Type:              model.QuestTypeDaily,
		ScheduledTime:     &clock,
		LastCompletedDate: &today,
	}

	mockRepo := &mocks.MockNotifierRepository{}
	mockRepo.On("ListQuestsScheduledAt", mock.Anything, clock).
		Return([]*model.Quest{due, alreadyDone}, nil)

	sink := &recordingSink{}
	n, err := NewNotifier(mockRepo, sink, nil, 0)
	assert.NoError(t, err)
	n.clock = func() string { return clock }

	n.tick(context.Background())

	// The quest already completed today is skipped.
	assert.Len(t, sink.events, 1)
	assert.Equal(t, int64(1), sink.events[0].UserID)
	assert.Equal(t, due.ID.String(), sink.events[0].QuestID)
	assert.Equal(t, "Morning run", sink.events[0].Body)
	mockRepo.AssertExpectations(t)
}

func TestNotifierTick_ScanFailure(t *testing.T) {
	mockRepo := &mocks.MockNotifierRepository{}
	mockRepo.On("ListQuestsScheduledAt", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	sink := &recordingSink{}
	n, err := NewNotifier(mockRepo, sink, nil, 0)
	assert.NoError(t, err)

	n.tick(context.Background())
	assert.Empty(t, sink.events)
}
