package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"habitquest/internal/model"
	"habitquest/internal/repository"

	"github.com/google/uuid"
)

// ShopService owns the secondary economy: avatar unlocks and user-defined
// rewards. Both only ever subtract gold and append a Shopping ledger entry.
type ShopService struct {
	repo     ShopRepository
	notifier SnapshotNotifier
}

func NewShopService(repo ShopRepository, notifier SnapshotNotifier) *ShopService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ShopService{repo: repo, notifier: notifier}
}

// UnlockAvatar buys an avatar from the built-in catalog and makes it active.
// Unlocking an avatar the player already owns just selects it, without
// charging again.
func (s *ShopService) UnlockAvatar(ctx context.Context, userID int64, avatarID string) (*model.Player, error) {
	avatar, ok := model.AvatarByID(avatarID)
	if !ok {
		return nil, ErrAvatarUnknown
	}

	player, err := s.getPlayer(ctx, userID)
	if err != nil {
		return nil, err
	}

	if player.HasAvatar(avatar.ID) {
		return s.SelectAvatar(ctx, userID, avatar.ID)
	}

	debited, err := spendGold(*player, avatar.Cost)
	if err != nil {
		return nil, err
	}

	debited.UnlockedAvatars = append(debited.UnlockedAvatars, avatar.ID)
	debited.AvatarID = avatar.ID

	entry := model.NewHistoryEntry(userID, "Unlocked Hero: "+avatar.Name, model.HistoryStatusShopping, nil)
	if err := s.repo.SaveSpend(ctx, &debited, entry); err != nil {
		return nil, fmt.Errorf("failed to save avatar unlock: %w", err)
	}

	s.notifier.Notify(userID)
	return &debited, nil
}

// SelectAvatar switches the active avatar to one already unlocked.
func (s *ShopService) SelectAvatar(ctx context.Context, userID int64, avatarID string) (*model.Player, error) {
	player, err := s.getPlayer(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !player.HasAvatar(avatarID) {
		return nil, ErrAvatarNotUnlocked
	}

	player.AvatarID = avatarID
	if err := s.repo.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	s.notifier.Notify(userID)
	return player, nil
}

func (s *ShopService) Avatars() []model.Avatar {
	return model.Avatars
}

func (s *ShopService) AddReward(ctx context.Context, userID int64, title string, cost int) (*model.Reward, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidReward)
	}
	if cost < 0 {
		cost = 0
	}

	w := &model.Reward{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
		Cost:   cost,
	}

	if err := s.repo.CreateReward(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to create reward: %w", err)
	}

	s.notifier.Notify(userID)
	return w, nil
}

func (s *ShopService) ListRewards(ctx context.Context, userID int64) ([]*model.Reward, error) {
	rewards, err := s.repo.ListRewards(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	return rewards, nil
}

func (s *ShopService) DeleteReward(ctx context.Context, userID int64, rewardID uuid.UUID) error {
	err := s.repo.DeleteReward(ctx, userID, rewardID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRewardNotFound
		}
		return fmt.Errorf("failed to delete reward: %w", err)
	}

	s.notifier.Notify(userID)
	return nil
}

// BuyReward spends gold on a user-defined reward. The reward itself stays in
// the shop; only the ledger records the purchase.
func (s *ShopService) BuyReward(ctx context.Context, userID int64, rewardID uuid.UUID) (*model.Player, error) {
	w, err := s.repo.GetReward(ctx, userID, rewardID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}

	player, err := s.getPlayer(ctx, userID)
	if err != nil {
		return nil, err
	}

	debited, err := spendGold(*player, w.Cost)
	if err != nil {
		return nil, err
	}

	entry := model.NewHistoryEntry(userID, "Bought Reward: "+w.Title, model.HistoryStatusShopping, nil)
	if err := s.repo.SaveSpend(ctx, &debited, entry); err != nil {
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}

	s.notifier.Notify(userID)
	return &debited, nil
}

func (s *ShopService) getPlayer(ctx context.Context, userID int64) (*model.Player, error) {
	player, err := s.repo.GetPlayer(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}
