package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"colonywars/pkg/warerrors"

	"github.com/redis/go-redis/v9"
)

// quotaWindow is the lifetime of a daily quota counter. The key embeds the
// UTC date so the counter naturally rolls over at midnight; the expiry just
// keeps stale keys from accumulating.
const quotaWindow = 25 * time.Hour

// quotaCounter is the slice of the Redis client the launch quota needs.
type quotaCounter interface {
	Get(ctx context.Context, key string) (string, error)
	IncrWithExpiry(ctx context.Context, key string, expiration time.Duration) (int64, error)
}

// LaunchQuota enforces the daily coordinated-attack allowance of an
// alliance. Check and Commit are split: the counter is only consumed once
// a launch actually went through, so a failed launch never burns allowance.
type LaunchQuota struct {
	counter quotaCounter
	max     int
}

// NewLaunchQuota creates a quota over the given counter backend.
func NewLaunchQuota(counter quotaCounter, max int) *LaunchQuota {
	return &LaunchQuota{counter: counter, max: max}
}

// quotaKey is the counter bucket for one quota scope on a UTC day.
func quotaKey(scope string, now time.Time) string {
	return fmt.Sprintf("coordination:quota:%s:%s", scope, now.Format("2006-01-02"))
}

// Check reports whether the scope still has allowance left today.
func (q *LaunchQuota) Check(ctx context.Context, scope string, now time.Time) error {
	value, err := q.counter.Get(ctx, quotaKey(scope, now))
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read daily quota: %w", err)
	}
	count, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse daily quota counter %q: %w", value, err)
	}
	if count >= int64(q.max) {
		return &warerrors.CapacityExceededError{
			Resource: "coordinated attacks per day",
			Limit:    q.max,
		}
	}
	return nil
}

// Commit consumes one unit of today's allowance. Only called after the
// coordinated attack has been committed, never speculatively.
func (q *LaunchQuota) Commit(ctx context.Context, scope string, now time.Time) (int64, error) {
	return q.counter.IncrWithExpiry(ctx, quotaKey(scope, now), quotaWindow)
}
