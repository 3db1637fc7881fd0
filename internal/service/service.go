package service

import (
	"context"
	"errors"

	"habitquest/internal/model"

	"github.com/google/uuid"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrQuestNotFound     = errors.New("quest not found")
	ErrRewardNotFound    = errors.New("reward not found")
	ErrInsufficientGold  = errors.New("not enough gold")
	ErrAvatarUnknown     = errors.New("avatar does not exist")
	ErrAvatarNotUnlocked = errors.New("avatar is not unlocked")
	ErrInvalidQuest      = errors.New("invalid quest")
	ErrInvalidReward     = errors.New("invalid reward")
)

// Service bundles the operation set exposed to the API layer. All game state
// flows through these services; nothing reads or writes player or quest fields
// around them.
type Service struct {
	*QuestService
	*ShopService
	*SessionService
}

func NewService(quests *QuestService, shop *ShopService, session *SessionService) *Service {
	return &Service{
		QuestService:   quests,
		ShopService:    shop,
		SessionService: session,
	}
}

// SnapshotNotifier is poked after every local mutation so the remote sync
// layer can schedule a debounced upload. Local persistence has already
// succeeded by the time Notify runs; remote failures never block gameplay.
type SnapshotNotifier interface {
	Notify(userID int64)
}

// NopNotifier satisfies SnapshotNotifier when remote sync is disabled.
type NopNotifier struct{}

func (NopNotifier) Notify(int64) {}

type QuestRepository interface {
	GetPlayer(ctx context.Context, userID int64) (*model.Player, error)
	GetQuest(ctx context.Context, userID int64, questID uuid.UUID) (*model.Quest, error)
	ListQuests(ctx context.Context, userID int64) ([]*model.Quest, error)
	CreateQuest(ctx context.Context, q *model.Quest) error
	DeleteQuest(ctx context.Context, userID int64, questID uuid.UUID) error
	SaveCompletion(ctx context.Context, p *model.Player, q *model.Quest, removeQuest bool, entry *model.HistoryEntry) error
	SaveFailure(ctx context.Context, p *model.Player, questID uuid.UUID, entry *model.HistoryEntry) error
	ListHistory(ctx context.Context, userID int64, limit int) ([]*model.HistoryEntry, error)
}

type ShopRepository interface {
	GetPlayer(ctx context.Context, userID int64) (*model.Player, error)
	SaveSpend(ctx context.Context, p *model.Player, entry *model.HistoryEntry) error
	UpdatePlayer(ctx context.Context, p *model.Player) error
	GetReward(ctx context.Context, userID int64, rewardID uuid.UUID) (*model.Reward, error)
	ListRewards(ctx context.Context, userID int64) ([]*model.Reward, error)
	CreateReward(ctx context.Context, w *model.Reward) error
	DeleteReward(ctx context.Context, userID int64, rewardID uuid.UUID) error
}

type SessionRepository interface {
	GetPlayer(ctx context.Context, userID int64) (*model.Player, error)
	CreatePlayer(ctx context.Context, p *model.Player) error
	GetPrefs(ctx context.Context, userID int64) (*model.UserPrefs, error)
	SavePrefs(ctx context.Context, prefs *model.UserPrefs) error
	ExportSnapshot(ctx context.Context, userID int64) (*model.Snapshot, error)
	ImportSnapshot(ctx context.Context, userID int64, snap *model.Snapshot) error
	ResetAll(ctx context.Context, userID int64) error
}

// RemoteSnapshotStore is the asynchronous side of the persistence gateway.
type RemoteSnapshotStore interface {
	LoadSnapshot(ctx context.Context, userID int64) (*model.Snapshot, error)
	SaveSnapshot(ctx context.Context, userID int64, snap *model.Snapshot) error
	DeleteSnapshot(ctx context.Context, userID int64) error
}

// NotifierRepository is the read-only slice of the repository the reminder
// poller is allowed to see.
type NotifierRepository interface {
	ListQuestsScheduledAt(ctx context.Context, clock string) ([]*model.Quest, error)
}
