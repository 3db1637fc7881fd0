package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"habitquest/internal/model"
	"habitquest/internal/repository"
	"habitquest/pkg/gameday"

	"github.com/google/uuid"
)

// RewardPreset is the XP/gold pair frozen into a quest at creation time.
type RewardPreset struct {
	XP   int `json:"xp"`
	Gold int `json:"gold"`
}

type DifficultyPresets map[model.Difficulty]RewardPreset

// DefaultPresets is the canonical difficulty table. Deployments can override
// it through config; existing quests keep whatever they were created with.
func DefaultPresets() DifficultyPresets {
	return DifficultyPresets{
		model.DifficultyEasy:   {XP: 50, Gold: 10},
		model.DifficultyMedium: {XP: 100, Gold: 20},
		model.DifficultyHard:   {XP: 200, Gold: 50},
	}
}

type QuestService struct {
	repo     QuestRepository
	presets  DifficultyPresets
	notifier SnapshotNotifier
	today    func() string
}

func NewQuestService(repo QuestRepository, presets DifficultyPresets, notifier SnapshotNotifier) *QuestService {
	if presets == nil {
		presets = DefaultPresets()
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &QuestService{
		repo:     repo,
		presets:  presets,
		notifier: notifier,
		today:    gameday.Today,
	}
}

type CreateQuestSpec struct {
	Title         string
	Difficulty    model.Difficulty
	Type          model.QuestType
	ScheduledTime *string

	// Optional explicit reward override; when nil the difficulty preset is
	// frozen in.
	XP   *int
	Gold *int
}

func (s *QuestService) Create(ctx context.Context, userID int64, spec CreateQuestSpec) (*model.Quest, error) {
	title := strings.TrimSpace(spec.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidQuest)
	}
	if !spec.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidQuest, spec.Difficulty)
	}
	if !spec.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown quest type %q", ErrInvalidQuest, spec.Type)
	}
	var scheduled *string
	if spec.ScheduledTime != nil {
		clock, ok := gameday.ParseClock(*spec.ScheduledTime)
		if !ok {
			return nil, fmt.Errorf("%w: scheduled time must be HH:MM", ErrInvalidQuest)
		}
		scheduled = &clock
	}

	preset := s.presets[spec.Difficulty]
	xp, gold := preset.XP, preset.Gold
	if spec.XP != nil {
		xp = *spec.XP
	}
	if spec.Gold != nil {
		gold = *spec.Gold
	}
	if xp < 0 || gold < 0 {
		return nil, fmt.Errorf("%w: rewards must not be negative", ErrInvalidQuest)
	}

	q := &model.Quest{
		ID:                uuid.New(),
		UserID:            userID,
		Title:             title,
		Difficulty:        spec.Difficulty,
		XP:                xp,
		Gold:              gold,
		Type:              spec.Type,
		Streak:            0,
		LastCompletedDate: nil,
		CompletionHistory: map[string]bool{},
		ScheduledTime:     scheduled,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.repo.CreateQuest(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to create quest: %w", err)
	}

	s.notifier.Notify(userID)
	return q, nil
}

func (s *QuestService) List(ctx context.Context, userID int64) ([]*model.Quest, error) {
	quests, err := s.repo.ListQuests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}
	return quests, nil
}

func (s *QuestService) Delete(ctx context.Context, userID int64, questID uuid.UUID) error {
	err := s.repo.DeleteQuest(ctx, userID, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuestNotFound
		}
		return fmt.Errorf("failed to delete quest: %w", err)
	}

	s.notifier.Notify(userID)
	return nil
}

type CompleteStatus string

const (
	CompleteStatusDone             CompleteStatus = "completed"
	CompleteStatusAlreadyDoneToday CompleteStatus = "already_done_today"
)

type CompleteResult struct {
	Status     CompleteStatus
	XPGained   int
	GoldGained int
	LeveledUp  bool
	Player     *model.Player
}

// Complete resolves a direct completion with no bonus.
func (s *QuestService) Complete(ctx context.Context, userID int64, questID uuid.UUID) (*CompleteResult, error) {
	return s.resolveCompletion(ctx, userID, questID, 1, 0)
}

// ResolveFocusSession resolves a timed completion: doubled rewards plus one
// bonus gold per five elapsed minutes. The daily lockout applies the same way
// it does to a direct completion.
func (s *QuestService) ResolveFocusSession(ctx context.Context, userID int64, questID uuid.UUID, minutes int) (*CompleteResult, error) {
	if minutes < 0 {
		minutes = 0
	}
	return s.resolveCompletion(ctx, userID, questID, focusBonusMultiplier, focusSessionBonusGold(minutes))
}

func (s *QuestService) resolveCompletion(ctx context.Context, userID int64, questID uuid.UUID, multiplier, extraGold int) (*CompleteResult, error) {
	q, err := s.repo.GetQuest(ctx, userID, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}

	today := s.today()

	// A repeat on the same calendar day is a normal outcome, not an error.
	if q.CompletedToday(today) {
		return &CompleteResult{Status: CompleteStatusAlreadyDoneToday}, nil
	}

	player, err := s.repo.GetPlayer(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	result := applyCompletionReward(*player, q, multiplier, extraGold)

	removeQuest := q.Type == model.QuestTypeOneTime
	if q.Type == model.QuestTypeDaily {
		// Streak, lockout date and history bitmap move together.
		q.Streak++
		q.LastCompletedDate = &today
		if q.CompletionHistory == nil {
			q.CompletionHistory = map[string]bool{}
		}
		q.CompletionHistory[today] = true
	}

	entry := model.NewHistoryEntry(userID, q.Title, model.HistoryStatusVictory, nil)
	if err := s.repo.SaveCompletion(ctx, &result.Player, q, removeQuest, entry); err != nil {
		return nil, fmt.Errorf("failed to save completion: %w", err)
	}

	s.notifier.Notify(userID)

	return &CompleteResult{
		Status:     CompleteStatusDone,
		XPGained:   result.EarnedXP,
		GoldGained: result.EarnedGold,
		LeveledUp:  result.LeveledUp,
		Player:     &result.Player,
	}, nil
}

// Fail applies the defeat penalty: -10 health, streak back to zero, a Defeat
// ledger entry. XP, gold and the lockout date are untouched, so a failed
// daily that was already completed today stays completed.
func (s *QuestService) Fail(ctx context.Context, userID int64, questID uuid.UUID, reason string) (*model.Player, error) {
	q, err := s.repo.GetQuest(ctx, userID, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}

	player, err := s.repo.GetPlayer(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	damaged := applyFailurePenalty(*player)

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}

	entry := model.NewHistoryEntry(userID, q.Title, model.HistoryStatusDefeat, reasonPtr)
	if err := s.repo.SaveFailure(ctx, &damaged, q.ID, entry); err != nil {
		return nil, fmt.Errorf("failed to save failure: %w", err)
	}

	s.notifier.Notify(userID)
	return &damaged, nil
}

func (s *QuestService) History(ctx context.Context, userID int64, limit int) ([]*model.HistoryEntry, error) {
	entries, err := s.repo.ListHistory(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}
