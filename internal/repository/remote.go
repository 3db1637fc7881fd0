package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"habitquest/internal/model"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RemoteStore is the asynchronous remote document store: one JSON snapshot per
// user, written whole every time. Reconciliation is last-write-wins, so there
// is no per-field merge to speak of.
type RemoteStore struct {
	client *redis.Client
}

type RemoteConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

func NewRemoteStore(cfg RemoteConfig) (*RemoteStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		Password:        cfg.Password,
		DB:              cfg.DB,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
	})

	if cmd := client.Ping(context.Background()); cmd.Err() != nil {
		return nil, fmt.Errorf("failed to ping remote store: %w", cmd.Err())
	}

	return &RemoteStore{client: client}, nil
}

func (s *RemoteStore) Close() error {
	return s.client.Close()
}

func snapshotKey(userID int64) string {
	return fmt.Sprintf("snapshot:%d", userID)
}

func (s *RemoteStore) LoadSnapshot(ctx context.Context, userID int64) (*model.Snapshot, error) {
	raw, err := s.client.Get(ctx, snapshotKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load remote snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode remote snapshot: %w", err)
	}

	return &snap, nil
}

func (s *RemoteStore) SaveSnapshot(ctx context.Context, userID int64, snap *model.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := s.client.Set(ctx, snapshotKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save remote snapshot: %w", err)
	}

	return nil
}

func (s *RemoteStore) DeleteSnapshot(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, snapshotKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete remote snapshot: %w", err)
	}
	return nil
}
