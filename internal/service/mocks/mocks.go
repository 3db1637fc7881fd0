// Package mocks holds testify mocks for the service-layer repository
// interfaces.
package mocks

import (
	"context"

	"habitquest/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockQuestRepository struct {
	mock.Mock
}

func (m *MockQuestRepository) GetPlayer(ctx context.Context, userID int64) (*model.Player, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Player), args.Error(1)
}

func (m *MockQuestRepository) GetQuest(ctx context.Context, userID int64, questID uuid.UUID) (*model.Quest, error) {
	args := m.Called(ctx, userID, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quest), args.Error(1)
}

func (m *MockQuestRepository) ListQuests(ctx context.Context, userID int64) ([]*model.Quest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Quest), args.Error(1)
}

func (m *MockQuestRepository) CreateQuest(ctx context.Context, q *model.Quest) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuestRepository) DeleteQuest(ctx context.Context, userID int64, questID uuid.UUID) error {
	args := m.Called(ctx, userID, questID)
	return args.Error(0)
}

func (m *MockQuestRepository) SaveCompletion(ctx context.Context, p *model.Player, q *model.Quest, removeQuest bool, entry *model.HistoryEntry) error {
	args := m.Called(ctx, p, q, removeQuest, entry)
	return args.Error(0)
}

func (m *MockQuestRepository) SaveFailure(ctx context.Context, p *model.Player, questID uuid.UUID, entry *model.HistoryEntry) error {
	args := m.Called(ctx, p, questID, entry)
	return args.Error(0)
}

func (m *MockQuestRepository) ListHistory(ctx context.Context, userID int64, limit int) ([]*model.HistoryEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.HistoryEntry), args.Error(1)
}

type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) GetPlayer(ctx context.Context, userID int64) (*model.Player, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Player), args.Error(1)
}

func (m *MockShopRepository) SaveSpend(ctx context.Context, p *model.Player, entry *model.HistoryEntry) error {
	args := m.Called(ctx, p, entry)
	return args.Error(0)
}

func (m *MockShopRepository) UpdatePlayer(ctx context.Context, p *model.Player) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockShopRepository) GetReward(ctx context.Context, userID int64, rewardID uuid.UUID) (*model.Reward, error) {
	args := m.Called(ctx, userID, rewardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reward), args.Error(1)
}

func (m *MockShopRepository) ListRewards(ctx context.Context, userID int64) ([]*model.Reward, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Reward), args.Error(1)
}

func (m *MockShopRepository) CreateReward(ctx context.Context, w *model.Reward) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockShopRepository) DeleteReward(ctx context.Context, userID int64, rewardID uuid.UUID) error {
	args := m.Called(ctx, userID, rewardID)
	return args.Error(0)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) GetPlayer(ctx context.Context, userID int64) (*model.Player, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Player), args.Error(1)
}

func (m *MockSessionRepository) CreatePlayer(ctx context.Context, p *model.Player) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockSessionRepository) GetPrefs(ctx context.Context, userID int64) (*model.UserPrefs, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserPrefs), args.Error(1)
}

func (m *MockSessionRepository) SavePrefs(ctx context.Context, prefs *model.UserPrefs) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

func (m *MockSessionRepository) ExportSnapshot(ctx context.Context, userID int64) (*model.Snapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Snapshot), args.Error(1)
}

func (m *MockSessionRepository) ImportSnapshot(ctx context.Context, userID int64, snap *model.Snapshot) error {
	args := m.Called(ctx, userID, snap)
	return args.Error(0)
}

func (m *MockSessionRepository) ResetAll(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockNotifierRepository struct {
	mock.Mock
}

func (m *MockNotifierRepository) ListQuestsScheduledAt(ctx context.Context, clock string) ([]*model.Quest, error) {
	args := m.Called(ctx, clock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Quest), args.Error(1)
}

type MockRemoteSnapshotStore struct {
	mock.Mock
}

func (m *MockRemoteSnapshotStore) LoadSnapshot(ctx context.Context, userID int64) (*model.Snapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Snapshot), args.Error(1)
}

func (m *MockRemoteSnapshotStore) SaveSnapshot(ctx context.Context, userID int64, snap *model.Snapshot) error {
	args := m.Called(ctx, userID, snap)
	return args.Error(0)
}

func (m *MockRemoteSnapshotStore) DeleteSnapshot(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
