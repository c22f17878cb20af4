package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"colonywars/pkg/warerrors"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCounter is an in-memory stand-in for the Redis quota backend.
type memoryCounter struct {
	counts map[string]int64
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{counts: map[string]int64{}}
}

func (m *memoryCounter) Get(_ context.Context, key string) (string, error) {
	count, ok := m.counts[key]
	if !ok {
		return "", redis.Nil
	}
	return strconv.FormatInt(count, 10), nil
}

func (m *memoryCounter) IncrWithExpiry(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.counts[key]++
	return m.counts[key], nil
}

func TestQuotaKey(t *testing.T) {
	at := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "coordination:quota:alliance:ab12:2026-03-14", quotaKey("alliance:ab12", at))

	// A minute later the UTC day rolls over and with it the quota bucket.
	assert.Equal(t, "coordination:quota:alliance:ab12:2026-03-15", quotaKey("alliance:ab12", at.Add(time.Minute)))

	// Different alliances never share a bucket.
	assert.NotEqual(t, quotaKey("alliance:ab12", at), quotaKey("alliance:cd34", at))
}

func TestLaunchQuota_DailyBoundary(t *testing.T) {
	ctx := context.Background()
	quota := NewLaunchQuota(newMemoryCounter(), 3)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	scope := "alliance:ab12"

	// The full allowance goes through, including the third of three.
	for launch := 0; launch < 3; launch++ {
		require.NoError(t, quota.Check(ctx, scope, now), "launch %d should pass the check", launch+1)
		_, err := quota.Commit(ctx, scope, now)
		require.NoError(t, err)
	}

	// The fourth on the same day is over allowance.
	err := quota.Check(ctx, scope, now)
	var capacity *warerrors.CapacityExceededError
	require.ErrorAs(t, err, &capacity)
	assert.Equal(t, 3, capacity.Limit)

	// A sibling alliance and the next day are unaffected.
	assert.NoError(t, quota.Check(ctx, "alliance:cd34", now))
	assert.NoError(t, quota.Check(ctx, scope, now.Add(24*time.Hour)))
}

func TestLaunchQuota_FailedLaunchKeepsAllowance(t *testing.T) {
	ctx := context.Background()
	quota := NewLaunchQuota(newMemoryCounter(), 1)
	now := time.Now().UTC()
	scope := "colony:7"

	// Checking alone never consumes: any number of rejected launches
	// leaves the allowance intact.
	for attempt := 0; attempt < 5; attempt++ {
		require.NoError(t, quota.Check(ctx, scope, now))
	}

	_, err := quota.Commit(ctx, scope, now)
	require.NoError(t, err)
	assert.Error(t, quota.Check(ctx, scope, now))
}
