package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openparl/parlfetch/checkpoint"
)

// Compile-time interface check.
var _ checkpoint.Store = (*Store)(nil)

// Store is a checkpoint.Store backed by Redis. Each task's checkpoint is a
// Redis hash with fields "cursor" and "updated_at". Useful when several
// ingestion hosts share a harvest schedule.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis-backed checkpoint store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Load returns the checkpoint for the given task, if one was saved.
func (s *Store) Load(ctx context.Context, task string) (checkpoint.Checkpoint, bool, error) {
	vals, err := s.client.HGetAll(ctx, redisKey(task)).Result()
	if err != nil {
		return checkpoint.Checkpoint{}, false, fmt.Errorf("checkpoint/redis: load: %w", err)
	}

	if len(vals) == 0 {
		return checkpoint.Checkpoint{}, false, nil
	}

	updated, err := strconv.ParseInt(vals["updated_at"], 10, 64)
	if err != nil {
		return checkpoint.Checkpoint{}, false, fmt.Errorf("checkpoint/redis: parse updated_at: %w", err)
	}

	return checkpoint.Checkpoint{
		Cursor:    vals["cursor"],
		UpdatedAt: time.Unix(updated, 0).UTC(),
	}, true, nil
}

// Save stores the checkpoint for the given task, replacing any previous one.
func (s *Store) Save(ctx context.Context, task string, cp checkpoint.Checkpoint) error {
	err := s.client.HSet(ctx, redisKey(task),
		"cursor", cp.Cursor,
		"updated_at", strconv.FormatInt(cp.UpdatedAt.Unix(), 10),
	).Err()
	if err != nil {
		return fmt.Errorf("checkpoint/redis: save: %w", err)
	}
	return nil
}

// Clear removes the checkpoint for the given task.
func (s *Store) Clear(ctx context.Context, task string) error {
	return s.client.Del(ctx, redisKey(task)).Err()
}

// Close closes the underlying Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

func redisKey(task string) string {
	return "parlfetch:ckpt:" + task
}
