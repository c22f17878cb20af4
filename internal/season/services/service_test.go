package services

import (
	"context"
	"testing"

	"colonywars/internal/season/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePreRegQueue is an in-memory stand-in for the pre-registration
// collection.
type fakePreRegQueue struct {
	entries []*models.PreRegistration
}

func (f *fakePreRegQueue) ListOpen(_ context.Context, seasonNumber int, limit int64) ([]models.PreRegistration, error) {
	var batch []models.PreRegistration
	for _, entry := range f.entries {
		if entry.SeasonNumber != seasonNumber || !entry.Open() {
			continue
		}
		batch = append(batch, *entry)
		if int64(len(batch)) == limit {
			break
		}
	}
	return batch, nil
}

func (f *fakePreRegQueue) MarkActivated(_ context.Context, seasonNumber int, colonyID int64) error {
	for _, entry := range f.entries {
		if entry.SeasonNumber == seasonNumber && entry.ColonyID == colonyID && !entry.Cancelled {
			entry.Activated = true
		}
	}
	return nil
}

// fakeRegistrar records which colonies were registered and what stake each
// was credited.
type fakeRegistrar struct {
	registered map[int64]int
	credited   map[int64]int64
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{registered: map[int64]int{}, credited: map[int64]int64{}}
}

func (f *fakeRegistrar) MarkRegistered(_ context.Context, colonyID int64, season int) error {
	f.registered[colonyID] = season
	return nil
}

func (f *fakeRegistrar) CreditEscrowedStake(_ context.Context, colonyID int64, amount int64) error {
	f.credited[colonyID] += amount
	return nil
}

func TestActivateBatch_DrainsQueueInBoundedBatches(t *testing.T) {
	ctx := context.Background()
	queue := &fakePreRegQueue{entries: []*models.PreRegistration{
		{SeasonNumber: 6, ColonyID: 1, Wallet: "0xaaa", Stake: 500},
		{SeasonNumber: 6, ColonyID: 2, Wallet: "0xbbb", Stake: 750},
		{SeasonNumber: 6, ColonyID: 3, Wallet: "0xccc", Stake: 600, Cancelled: true},
		{SeasonNumber: 6, ColonyID: 4, Wallet: "0xddd", Stake: 900},
		{SeasonNumber: 7, ColonyID: 5, Wallet: "0xeee", Stake: 400},
	}}
	registrar := newFakeRegistrar()

	// Three open entries for season 6 drain in batches of two: two, then
	// one, then the queue reports empty.
	activated, err := activateBatch(ctx, queue, registrar, 6, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, activated)

	activated, err = activateBatch(ctx, queue, registrar, 6, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, activated)

	activated, err = activateBatch(ctx, queue, registrar, 6, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, activated)

	assert.Equal(t, map[int64]int{1: 6, 2: 6, 4: 6}, registrar.registered)
	assert.Equal(t, map[int64]int64{1: 500, 2: 750, 4: 900}, registrar.credited)

	// The cancelled entry and the one queued for a later season stay put.
	assert.False(t, queue.entries[2].Activated)
	assert.False(t, queue.entries[4].Activated)
}
