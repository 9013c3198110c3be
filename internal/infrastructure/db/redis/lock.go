package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// lockTTL bounds how long a crashed processing run can keep a document locked.
const lockTTL = 5 * time.Minute

// ProcessLock provides a per-document mutual exclusion lock backed by Redis.
// Key format: process_lock:<document_id>
type ProcessLock struct {
	client *redis.Client
}

// NewProcessLock creates a ProcessLock wrapping the given Redis client.
func NewProcessLock(client *redis.Client) *ProcessLock {
	return &ProcessLock{client: client}
}

// Acquire attempts to take the lock for documentID. It returns false when
// another processing run already holds it.
func (l *ProcessLock) Acquire(ctx context.Context, documentID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(documentID), "1", lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire process lock: %w", err)
	}
	return ok, nil
}

// Release frees the lock for documentID.
func (l *ProcessLock) Release(ctx context.Context, documentID string) error {
	if err := l.client.Del(ctx, l.key(documentID)).Err(); err != nil {
		return fmt.Errorf("release process lock: %w", err)
	}
	return nil
}

func (l *ProcessLock) key(documentID string) string {
	return fmt.Sprintf("process_lock:%s", documentID)
}
