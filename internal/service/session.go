package service

import (
	"context"
	"errors"
	"fmt"

	"habitquest/internal/model"
	"habitquest/internal/repository"
	"habitquest/pkg/gameday"
	"habitquest/pkg/logger"

	"go.uber.org/zap"
)

// SessionService bootstraps a user session: first-run defaults, the read-time
// daily reset check and the one-shot remote reconcile on sign-in.
type SessionService struct {
	repo     SessionRepository
	remote   RemoteSnapshotStore
	notifier SnapshotNotifier
	today    func() string
}

func NewSessionService(repo SessionRepository, remote RemoteSnapshotStore, notifier SnapshotNotifier) *SessionService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &SessionService{
		repo:     repo,
		remote:   remote,
		notifier: notifier,
		today:    gameday.Today,
	}
}

// Bootstrap prepares and returns the full snapshot for a signing-in user.
// If a remote snapshot exists it overwrites local state (remote wins on
// login); otherwise the local snapshot is uploaded once. Remote trouble is
// logged and never blocks the session: local state stays authoritative.
func (s *SessionService) Bootstrap(ctx context.Context, userID int64) (*model.Snapshot, error) {
	log := logger.Logger()

	firstRun, err := s.ensurePlayer(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.markDaySeen(ctx, userID); err != nil {
		return nil, err
	}

	if s.remote != nil {
		remoteSnap, err := s.remote.LoadSnapshot(ctx, userID)
		switch {
		case err == nil && (remoteSnap == nil || remoteSnap.Player == nil):
			// A corrupt or empty remote document must not wipe local state;
			// the next successful upload overwrites it.
			log.Warn("remote snapshot is malformed, keeping local state",
				zap.Int64("user_id", userID))
		case err == nil:
			if err := s.repo.ImportSnapshot(ctx, userID, remoteSnap); err != nil {
				log.Warn("remote snapshot import failed, keeping local state",
					zap.Int64("user_id", userID), zap.Error(err))
			}
		case errors.Is(err, repository.ErrNotFound):
			snap, err := s.repo.ExportSnapshot(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("failed to export snapshot: %w", err)
			}
			if err := s.remote.SaveSnapshot(ctx, userID, snap); err != nil {
				log.Warn("initial snapshot upload failed",
					zap.Int64("user_id", userID), zap.Error(err))
			}
		default:
			log.Warn("remote snapshot fetch failed",
				zap.Int64("user_id", userID), zap.Error(err))
		}
	}

	snap, err := s.repo.ExportSnapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export snapshot: %w", err)
	}

	if firstRun {
		log.Info("created default player", zap.Int64("user_id", userID))
	}

	return snap, nil
}

func (s *SessionService) ensurePlayer(ctx context.Context, userID int64) (firstRun bool, err error) {
	_, err = s.repo.GetPlayer(ctx, userID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("failed to get player: %w", err)
	}

	if err := s.repo.CreatePlayer(ctx, model.NewPlayer(userID)); err != nil {
		return false, fmt.Errorf("failed to create player: %w", err)
	}
	if err := s.repo.SavePrefs(ctx, model.NewUserPrefs(userID)); err != nil {
		return false, fmt.Errorf("failed to create prefs: %w", err)
	}

	return true, nil
}

// markDaySeen is the daily reset detector: a read-time comparison of the
// persisted last-seen-day marker against today. Crossing a day boundary only
// moves the marker; missed days are not penalized retroactively. Per-quest
// pending state is derived lazily from lastCompletedDate, never mutated here.
func (s *SessionService) markDaySeen(ctx context.Context, userID int64) error {
	prefs, err := s.repo.GetPrefs(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			prefs = model.NewUserPrefs(userID)
		} else {
			return fmt.Errorf("failed to get prefs: %w", err)
		}
	}

	today := s.today()
	if prefs.LastSeenDay == today {
		return nil
	}

	prefs.LastSeenDay = today
	if err := s.repo.SavePrefs(ctx, prefs); err != nil {
		return fmt.Errorf("failed to save prefs: %w", err)
	}

	return nil
}

func (s *SessionService) GetPlayer(ctx context.Context, userID int64) (*model.Player, error) {
	player, err := s.repo.GetPlayer(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

func (s *SessionService) GetPrefs(ctx context.Context, userID int64) (*model.UserPrefs, error) {
	prefs, err := s.repo.GetPrefs(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get prefs: %w", err)
	}
	return prefs, nil
}

type UpdatePrefsSpec struct {
	Theme             *string
	Notes             *[]string
	InstallPromptSeen *bool
}

func (s *SessionService) UpdatePrefs(ctx context.Context, userID int64, spec UpdatePrefsSpec) (*model.UserPrefs, error) {
	prefs, err := s.GetPrefs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if spec.Theme != nil {
		prefs.Theme = *spec.Theme
	}
	if spec.Notes != nil {
		prefs.Notes = *spec.Notes
	}
	if spec.InstallPromptSeen != nil {
		prefs.InstallPromptSeen = *spec.InstallPromptSeen
	}

	if err := s.repo.SavePrefs(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to save prefs: %w", err)
	}

	return prefs, nil
}

// ResetAll wipes everything and recreates the defaults, remote copy included.
func (s *SessionService) ResetAll(ctx context.Context, userID int64) (*model.Snapshot, error) {
	if err := s.repo.ResetAll(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to reset: %w", err)
	}

	if s.remote != nil {
		if err := s.remote.DeleteSnapshot(ctx, userID); err != nil {
			logger.Logger().Warn("remote snapshot delete failed",
				zap.Int64("user_id", userID), zap.Error(err))
		}
	}

	s.notifier.Notify(userID)

	snap, err := s.repo.ExportSnapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export snapshot: %w", err)
	}
	return snap, nil
}
