package service

import (
	"context"
	"sync"
	"time"

	"habitquest/internal/model"
	"habitquest/pkg/logger"

	"go.uber.org/zap"
)

// SnapshotSource is the part of the local gateway the sync layer reads from.
type SnapshotSource interface {
	ExportSnapshot(ctx context.Context, userID int64) (*model.Snapshot, error)
}

// RemoteSync uploads snapshots to the remote store with a per-user debounce:
// rapid successive mutations collapse into a single write after a quiet
// period, and a pending flush is superseded, never stacked, by the next
// Notify. Only the latest snapshot ever reaches the wire because the export
// happens at flush time, not at notify time.
type RemoteSync struct {
	source   SnapshotSource
	store    RemoteSnapshotStore
	debounce time.Duration

	mu      sync.Mutex
	pending map[int64]*pendingFlush
	closed  bool
	wg      sync.WaitGroup
}

// pendingFlush tracks the one outstanding upload for a user. gen is bumped
// every time a newer Notify supersedes the flush; a timer callback whose
// generation no longer matches must do nothing, because an expired timer
// cannot be reliably re-armed with Reset.
type pendingFlush struct {
	timer *time.Timer
	gen   uint64
}

func NewRemoteSync(source SnapshotSource, store RemoteSnapshotStore, debounce time.Duration) *RemoteSync {
	if debounce <= 0 {
		debounce = time.Second
	}
	return &RemoteSync{
		source:   source,
		store:    store,
		debounce: debounce,
		pending:  map[int64]*pendingFlush{},
	}
}

// Notify schedules a debounced upload for the user. Safe for concurrent use.
func (s *RemoteSync) Notify(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	p, ok := s.pending[userID]
	if ok {
		// Supersede the outstanding flush. If Stop wins, its callback never
		// runs and we settle its WaitGroup slot here; if the timer already
		// fired, the in-flight callback sees the stale generation and bails.
		if p.timer.Stop() {
			s.wg.Done()
		}
		p.gen++
	} else {
		p = &pendingFlush{}
		s.pending[userID] = p
	}

	gen := p.gen
	s.wg.Add(1)
	p.timer = time.AfterFunc(s.debounce, func() {
		defer s.wg.Done()

		s.mu.Lock()
		cur, ok := s.pending[userID]
		if !ok || cur.gen != gen {
			s.mu.Unlock()
			return
		}
		delete(s.pending, userID)
		s.mu.Unlock()

		s.flush(userID)
	})
}

func (s *RemoteSync) flush(userID int64) {
	log := logger.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snap, err := s.source.ExportSnapshot(ctx, userID)
	if err != nil {
		log.Error("failed to export snapshot for sync",
			zap.Int64("user_id", userID), zap.Error(err))
		return
	}

	if err := s.store.SaveSnapshot(ctx, userID, snap); err != nil {
		// Local state is authoritative and unaffected; the next mutation's
		// debounce cycle retries the upload.
		log.Warn("remote snapshot upload failed",
			zap.Int64("user_id", userID), zap.Error(err))
		return
	}

	log.Debug("snapshot synced", zap.Int64("user_id", userID))
}

// Close stops accepting notifications, fires pending uploads immediately and
// waits for them to finish.
func (s *RemoteSync) Close() {
	s.mu.Lock()
	s.closed = true
	users := make([]int64, 0, len(s.pending))
	for userID, p := range s.pending {
		if p.timer.Stop() {
			s.wg.Done()
		}
		// A callback that already fired finds its entry gone and returns
		// without flushing, so flushing here cannot double up.
		users = append(users, userID)
		delete(s.pending, userID)
	}
	s.mu.Unlock()

	for _, userID := range users {
		s.flush(userID)
	}
	s.wg.Wait()
}
