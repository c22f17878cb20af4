// Package ratelimit provides the generic per-actor, per-action cooldown
// primitive shared by territory raids, siege declarations, betrayal
// penalties and wallet-level actions.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"colonywars/pkg/database"
	"colonywars/pkg/warerrors"

	"github.com/redis/go-redis/v9"
)

// Limiter answers whether enough time has elapsed since the last successful
// use of (actorKey, actionID) and records the new timestamp atomically with
// the check. Keys live in Redis and expire on their own, so a cooldown that
// elapses requires no cleanup.
type Limiter struct {
	redis *database.Redis
}

// New creates a Limiter on top of the shared Redis connection.
func New(redis *database.Redis) *Limiter {
	return &Limiter{redis: redis}
}

func cooldownKey(actorKey, actionID string) string {
	return fmt.Sprintf("cooldown:%s:%s", actorKey, actionID)
}

// CheckAndConsume performs the single atomic check-and-set. When the
// cooldown is still active it returns a CooldownActiveError carrying the
// remaining time; otherwise the cooldown is armed and nil is returned.
func (l *Limiter) CheckAndConsume(ctx context.Context, actorKey, actionID string, cooldown time.Duration) error {
	if l == nil || l.redis == nil {
		return &warerrors.NotInitializedError{Component: "rate limiter"}
	}
	if cooldown <= 0 {
		return nil
	}

	key := cooldownKey(actorKey, actionID)
	ok, err := l.redis.SetNX(ctx, key, time.Now().UTC().Unix(), cooldown)
	if err != nil {
		return fmt.Errorf("failed to arm cooldown %s: %w", key, err)
	}
	if ok {
		return nil
	}

	remaining, err := l.redis.GetTTL(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read cooldown %s: %w", key, err)
	}
	if remaining < 0 {
		remaining = 0
	}
	return &warerrors.CooldownActiveError{
		ActorKey:  actorKey,
		ActionID:  actionID,
		Remaining: remaining,
	}
}

// Peek returns the remaining cooldown without consuming it. A zero duration
// means the action is available.
func (l *Limiter) Peek(ctx context.Context, actorKey, actionID string) (time.Duration, error) {
	if l == nil || l.redis == nil {
		return 0, &warerrors.NotInitializedError{Component: "rate limiter"}
	}

	remaining, err := l.redis.GetTTL(ctx, cooldownKey(actorKey, actionID))
	if err == redis.Nil || remaining < 0 {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cooldown: %w", err)
	}
	return remaining, nil
}

// Reset clears a cooldown, e.g. after an administrative override.
func (l *Limiter) Reset(ctx context.Context, actorKey, actionID string) error {
	if l == nil || l.redis == nil {
		return &warerrors.NotInitializedError{Component: "rate limiter"}
	}
	return l.redis.Delete(ctx, cooldownKey(actorKey, actionID))
}
