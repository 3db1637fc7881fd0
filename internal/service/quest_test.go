package service

import (
	"context"
	"testing"

	"habitquest/internal/model"
	"habitquest/internal/repository"
	"habitquest/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testDay = "2026-08-31"

func newTestQuestService(repo QuestRepository) *QuestService {
	s := NewQuestService(repo, nil, nil)
	s.today = func() string { return testDay }
	return s
}

func TestQuestService_Create(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	strPtr := func(v string) *string { return &v }

	tests := []struct {
		name          string
		spec          CreateQuestSpec
		mockSetup     func(*mocks.MockQuestRepository)
		expectedError error
		check         func(*testing.T, *model.Quest)
	}{
		{
			name: "Difficulty preset frozen in",
			spec: CreateQuestSpec{Title: "Morning run", Difficulty: model.DifficultyMedium, Type: model.QuestTypeDaily},
			mockSetup: func(m *mocks.MockQuestRepository) {
				m.On("CreateQuest", mock.Anything, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, q *model.Quest) {
				assert.Equal(t, 100, q.XP)
				assert.Equal(t, 20, q.Gold)
				assert.Equal(t, 0, q.Streak)
				assert.Nil(t, q.LastCompletedDate)
				assert.NotEqual(t, uuid.Nil, q.ID)
			},
		},
		{
			name: "Explicit reward override wins over the preset",
			spec: CreateQuestSpec{
				Title:      "Ship the release",
				Difficulty: model.DifficultyHard,
				Type:       model.QuestTypeOneTime,
				XP:         intPtr(42),
				Gold:       intPtr(7),
			},
			mockSetup: func(m *mocks.MockQuestRepository) {
				m.On("CreateQuest", mock.Anything, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, q *model.Quest) {
				assert.Equal(t, 42, q.XP)
				assert.Equal(t, 7, q.Gold)
			},
		},
		{
			name:          "Blank title rejected",
			spec:          CreateQuestSpec{Title: "   ", Difficulty: model.DifficultyEasy, Type: model.QuestTypeDaily},
			expectedError: ErrInvalidQuest,
		},
		{
			name:          "Unknown difficulty rejected",
			spec:          CreateQuestSpec{Title: "x", Difficulty: "Nightmare", Type: model.QuestTypeDaily},
			expectedError: ErrInvalidQuest,
		},
		{
			name:          "Unknown type rejected",
			spec:          CreateQuestSpec{Title: "x", Difficulty: model.DifficultyEasy, Type: "weekly"},
			expectedError: ErrInvalidQuest,
		},
		{
			name: "Unpadded scheduled time is stored canonically",
			spec: CreateQuestSpec{
				Title:         "Evening stretch",
				Difficulty:    model.DifficultyEasy,
				Type:          model.QuestTypeDaily,
				ScheduledTime: strPtr("9:30"),
			},
			mockSetup: func(m *mocks.MockQuestRepository) {
				m.On("CreateQuest", mock.Anything, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, q *model.Quest) {
				// The reminder poller matches by string equality against the
				// zero-padded clock.
				assert.Equal(t, "09:30", *q.ScheduledTime)
			},
		},
		{
			name: "Malformed scheduled time rejected",
			spec: CreateQuestSpec{
				Title:         "x",
				Difficulty:    model.DifficultyEasy,
				Type:          model.QuestTypeDaily,
				ScheduledTime: strPtr("9am"),
			},
			expectedError: ErrInvalidQuest,
		},
		{
			name: "Negative reward override rejected",
			spec: CreateQuestSpec{
				Title:      "x",
				Difficulty: model.DifficultyEasy,
				Type:       model.QuestTypeDaily,
				XP:         intPtr(-1),
			},
			expectedError: ErrInvalidQuest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockQuestRepository{}
			if tt.mockSetup != nil {
				tt.mockSetup(mockRepo)
			}
			service := newTestQuestService(mockRepo)

			q, err := service.Create(context.Background(), 1, tt.spec)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, q)
			} else {
				assert.NoError(t, err)
				if tt.check != nil {
					tt.check(t, q)
				}
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestQuestService_Complete(t *testing.T) {
	questID := uuid.New()
	yesterday := "2026-08-30"

	tests := []struct {
		name          string
		mockSetup     func(*mocks.MockQuestRepository)
		expectedError error
		check         func(*testing.T, *CompleteResult)
	}{
		{
			name: "Quest not found",
			mockSetup: func(m *mocks.MockQuestRepository) {
				m.On("GetQuest", mock.Anything, int64(1), questID).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrQuestNotFound,
		},
		{
			name: "Daily already completed today is a no-op status",
			mockSetup: func(m *mocks.MockQuestRepository) {
				day := testDay
				m.On("GetQuest", mock.Anything, int64(1), questID).
					Return(&model.Quest{
						ID:                questID,
						UserID:            1,
						Type:              model.QuestTypeDaily,
						Streak:            4,
						LastCompletedDate: &day,
					}, nil)
			},
			check: func(t *testing.T, res *CompleteResult) {
				assert.Equal(t, CompleteStatusAlreadyDoneToday, res.Status)
				assert.Zero(t, res.XPGained)
				assert.Nil(t, res.Player)
			},
		},
		{
			name: "Daily completion advances streak and sets the lockout",
			mockSetup: func(m *mocks.MockQuestRepository) {
				m.On("GetQuest", mock.Anything, int64(1), questID).
					Return(&model.Quest{
						ID:                questID,
						UserID:            1,
						Title:             "Read 20 pages",
						XP:                50,
						Gold:              10,
						Type:              model.QuestTypeDaily,
						Streak:            2,
						LastCompletedDate: &yesterday,
						CompletionHistory: map[string]bool{yesterday: true},
					}, nil)
				m.On("GetPlayer", mock.Anything, int64(1)).
					Return(&model.Player{UserID: 1, Level: 1, CurrentXP: 0, MaxXP: 500, Health: 80, Gold: 0}, nil)
				m.On("SaveCompletion", mock.Anything,
					mock.MatchedBy(func(p *model.Player) bool {
						return p.CurrentXP == 50 && p.Gold == 10 && p.Health == 85
					}),
					mock.MatchedBy(func(q *model.Quest) bool {
						return q.Streak == 3 &&
							q.LastCompletedDate != nil && *q.LastCompletedDate == testDay &&
							q.CompletionHistory[testDay]
					}),
					false,
					mock.MatchedBy(func(e *model.HistoryEntry) bool {
						return e.Status == model.HistoryStatusVictory && e.Title == "Read 20 pages"
					})).Return(nil)
			},
			check: func(t *testing.T, res *CompleteResult) {
				assert.Equal(t, CompleteStatusDone, res.Status)
				assert.Equal(t, 50, res.XPGained)
				assert.Equal(t, 10, res.GoldGained)
				assert.False(t, res.LeveledUp)
				assert.Equal(t, 50, res.Player.CurrentXP)
			},
		},
		{
			name: "One-time completion removes the quest",
			mockSetup: func(m *mocks.MockQuestRepository) {
				m.On("GetQuest", mock.Anything, int64(1), questID).
					Return(&model.Quest{
						ID:     questID,
						UserID: 1,
						Title:  "Clean the garage",
						XP:     200,
						Gold:   50,
						Type:   model.QuestTypeOneTime,
					}, nil)
				m.On("GetPlayer", mock.Anything, int64(1)).
					Return(&model.Player{UserID: 1, Level: 1, CurrentXP: 0, MaxXP: 500, Health: 100, Gold: 0}, nil)
				m.On("SaveCompletion", mock.Anything, mock.Anything,
					mock.MatchedBy(func(q *model.Quest) bool {
						// One-time quests never gain a streak or lockout.
						return q.Streak == 0 && q.LastCompletedDate == nil
					}),
					true, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, res *CompleteResult) {
				assert.Equal(t, CompleteStatusDone, res.Status)
				assert.Equal(t, 200, res.XPGained)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockQuestRepository{}
			tt.mockSetup(mockRepo)
			service := newTestQuestService(mockRepo)

			res, err := service.Complete(context.Background(), 1, questID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				tt.check(t, res)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestQuestService_ResolveFocusSession(t *testing.T) {
	questID := uuid.New()

	mockRepo := &mocks.MockQuestRepository{}
	mockRepo.On("GetQuest", mock.Anything, int64(1), questID).
		Return(&model.Quest{
			ID:     questID,
			UserID: 1,
			Title:  "Deep work",
			XP:     20,
			Gold:   10,
			Type:   model.QuestTypeDaily,
		}, nil)
	mockRepo.On("GetPlayer", mock.Anything, int64(1)).
		Return(&model.Player{UserID: 1, Level: 1, CurrentXP: 0, MaxXP: 500, Health: 100, Gold: 0}, nil)
	mockRepo.On("SaveCompletion", mock.Anything, mock.Anything, mock.Anything, false, mock.Anything).
		Return(nil)

	service := newTestQuestService(mockRepo)

	// 25 minutes: doubled 20xp/10g plus 5 bonus gold.
	res, err := service.ResolveFocusSession(context.Background(), 1, questID, 25)
	assert.NoError(t, err)
	assert.Equal(t, CompleteStatusDone, res.Status)
	assert.Equal(t, 40, res.XPGained)
	assert.Equal(t, 25, res.GoldGained)
	mockRepo.AssertExpectations(t)
}

func TestQuestService_Fail(t *testing.T) {
	questID := uuid.New()

	tests := []struct {
		name          string
		reason        string
		mockSetup     func(*mocks.MockQuestRepository)
		expectedError error
		check         func(*testing.T, *model.Player)
	}{
		{
			name: "Quest not found",
			mockSetup: func(m *mocks.MockQuestRepository) {
				m.On("GetQuest", mock.Anything, int64(1), questID).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrQuestNotFound,
		},
		{
			name:   "Failure damages health and records the reason",
			reason: "slept in",
			mockSetup: func(m *mocks.MockQuestRepository) {
				m.On("GetQuest", mock.Anything, int64(1), questID).
					Return(&model.Quest{ID: questID, UserID: 1, Title: "Morning run", Type: model.QuestTypeDaily, Streak: 6}, nil)
				m.On("GetPlayer", mock.Anything, int64(1)).
					Return(&model.Player{UserID: 1, Level: 2, CurrentXP: 100, MaxXP: 750, Health: 50, Gold: 80}, nil)
				m.On("SaveFailure", mock.Anything,
					mock.MatchedBy(func(p *model.Player) bool {
						// XP and gold survive a defeat.
						return p.Health == 40 && p.CurrentXP == 100 && p.Gold == 80
					}),
					questID,
					mock.MatchedBy(func(e *model.HistoryEntry) bool {
						return e.Status == model.HistoryStatusDefeat &&
							e.Reason != nil && *e.Reason == "slept in"
					})).Return(nil)
			},
			check: func(t *testing.T, p *model.Player) {
				assert.Equal(t, 40, p.Health)
			},
		},
		{
			name: "Empty reason stays nil",
			mockSetup: func(m *mocks.MockQuestRepository) {
				m.On("GetQuest", mock.Anything, int64(1), questID).
					Return(&model.Quest{ID: questID, UserID: 1, Title: "Morning run", Type: model.QuestTypeDaily}, nil)
				m.On("GetPlayer", mock.Anything, int64(1)).
					Return(&model.Player{UserID: 1, Level: 1, CurrentXP: 0, MaxXP: 500, Health: 5, Gold: 0}, nil)
				m.On("SaveFailure", mock.Anything,
					mock.MatchedBy(func(p *model.Player) bool { return p.Health == 0 }),
					questID,
					mock.MatchedBy(func(e *model.HistoryEntry) bool { return e.Reason == nil })).
					Return(nil)
			},
			check: func(t *testing.T, p *model.Player) {
				assert.Equal(t, 0, p.Health)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockQuestRepository{}
			tt.mockSetup(mockRepo)
			service := newTestQuestService(mockRepo)

			p, err := service.Fail(context.Background(), 1, questID, tt.reason)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				tt.check(t, p)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestQuestService_Delete(t *testing.T) {
	questID := uuid.New()

	t.Run("Missing quest maps to ErrQuestNotFound", func(t *testing.T) {
		mockRepo := &mocks.MockQuestRepository{}
		mockRepo.On("DeleteQuest", mock.Anything, int64(1), questID).
			Return(repository.ErrNotFound)

		service := newTestQuestService(mockRepo)
		err := service.Delete(context.Background(), 1, questID)
		assert.ErrorIs(t, err, ErrQuestNotFound)
	})

	t.Run("Delete succeeds", func(t *testing.T) {
		mockRepo := &mocks.MockQuestRepository{}
		mockRepo.On("DeleteQuest", mock.Anything, int64(1), questID).Return(nil)

		service := newTestQuestService(mockRepo)
		assert.NoError(t, service.Delete(context.Background(), 1, questID))
	})
}
