package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PunchLock serializes punches of the same user, day and type across API instances.
// A nil client disables locking.
type PunchLock struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPunchLock(rdb *redis.Client) *PunchLock {
	return &PunchLock{rdb: rdb, ttl: 10 * time.Second}
}

func punchLockKey(usuarioID uint, day string, tipo string) string {
	return fmt.Sprintf("ponto:punch:%d:%s:%s", usuarioID, day, tipo)
}

// Acquire reports false when another request holds the same slot.
func (l *PunchLock) Acquire(ctx context.Context, key string) (bool, error) {
	if l == nil || l.rdb == nil {
		return true, nil
	}
	return l.rdb.SetNX(ctx, key, 1, l.ttl).Result()
}

func (l *PunchLock) Release(ctx context.Context, key string) {
	if l == nil || l.rdb == nil {
		return
	}
	_ = l.rdb.Del(ctx, key).Err()
}
