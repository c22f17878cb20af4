package services

import (
	"context"
	"testing"
	"time"

	colonymodels "colonywars/internal/colony/models"
	seasonmodels "colonywars/internal/season/models"
	"colonywars/internal/siege/models"
	territorymodels "colonywars/internal/territory/models"
	"colonywars/pkg/config"
	"colonywars/pkg/gamebridge"
	"colonywars/pkg/warerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeSiegeStore is an in-memory stand-in for the siege collections. A
// second snapshot insert fails with a duplicate key error, mirroring the
// unique index on siege_id.
type fakeSiegeStore struct {
	sieges    map[string]*models.Siege
	snapshots map[string]*models.Snapshot
}

func newFakeSiegeStore() *fakeSiegeStore {
	return &fakeSiegeStore{sieges: map[string]*models.Siege{}, snapshots: map[string]*models.Snapshot{}}
}

func (f *fakeSiegeStore) CreateSiege(_ context.Context, siege *models.Siege) error {
	f.sieges[siege.SiegeID] = siege
	return nil
}

func (f *fakeSiegeStore) GetSiege(_ context.Context, siegeID string) (*models.Siege, error) {
	siege, ok := f.sieges[siegeID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *siege
	return &copied, nil
}

func (f *fakeSiegeStore) GetActiveSiegeByTerritory(_ context.Context, territoryID int64) (*models.Siege, error) {
	for _, siege := range f.sieges {
		if siege.TerritoryID == territoryID && siege.Status == models.StatusDeclared {
			copied := *siege
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeSiegeStore) UpdateSiegeOutcome(_ context.Context, siege *models.Siege) error {
	stored, ok := f.sieges[siege.SiegeID]
	if !ok || stored.Status != models.StatusDeclared {
		return mongo.ErrNoDocuments
	}
	stored.Status = siege.Status
	stored.ResolvedAt = siege.ResolvedAt
	stored.Outcome = siege.Outcome
	stored.WinnerColonyID = siege.WinnerColonyID
	stored.DamageDealt = siege.DamageDealt
	stored.CapturePriority = siege.CapturePriority
	return nil
}

func (f *fakeSiegeStore) ListOverdue(_ context.Context, now time.Time, limit int64) ([]models.Siege, error) {
	var overdue []models.Siege
	for _, siege := range f.sieges {
		if siege.Overdue(now) && int64(len(overdue)) < limit {
			overdue = append(overdue, *siege)
		}
	}
	return overdue, nil
}

func (f *fakeSiegeStore) ListSiegesByColony(_ context.Context, colonyID int64) ([]models.Siege, error) {
	var out []models.Siege
	for _, siege := range f.sieges {
		if siege.AttackerColonyID == colonyID || siege.DefenderColonyID == colonyID {
			out = append(out, *siege)
		}
	}
	return out, nil
}

func (f *fakeSiegeStore) InsertSnapshot(_ context.Context, snapshot *models.Snapshot) error {
	if _, ok := f.snapshots[snapshot.SiegeID]; ok {
		return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	}
	copied := *snapshot
	f.snapshots[snapshot.SiegeID] = &copied
	return nil
}

func (f *fakeSiegeStore) GetSnapshot(_ context.Context, siegeID string) (*models.Snapshot, error) {
	snapshot, ok := f.snapshots[siegeID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *snapshot
	return &copied, nil
}

// fakeColonyDirectory records stress and reputation writes.
type fakeColonyDirectory struct {
	profiles   map[int64]*colonymodels.WarProfile
	stress     map[int64]int
	reputation map[int64]colonymodels.ReputationTier
}

func newFakeColonyDirectory(profiles ...*colonymodels.WarProfile) *fakeColonyDirectory {
	directory := &fakeColonyDirectory{
		profiles:   map[int64]*colonymodels.WarProfile{},
		stress:     map[int64]int{},
		reputation: map[int64]colonymodels.ReputationTier{},
	}
	for _, profile := range profiles {
		directory.profiles[profile.ColonyID] = profile
	}
	return directory
}

func (f *fakeColonyDirectory) GetProfile(_ context.Context, colonyID int64) (*colonymodels.WarProfile, error) {
	profile, ok := f.profiles[colonyID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return profile, nil
}

func (f *fakeColonyDirectory) ApplyCombatStress(_ context.Context, colonyID int64, delta int) error {
	f.stress[colonyID] += delta
	return nil
}

func (f *fakeColonyDirectory) SetReputation(_ context.Context, colonyID int64, tier colonymodels.ReputationTier) error {
	f.reputation[colonyID] = tier
	return nil
}

// fakeTerritoryBoard records siege damage and capture priority grants.
type fakeTerritoryBoard struct {
	damage   map[int64]int
	priority map[int64]int64
}

func newFakeTerritoryBoard() *fakeTerritoryBoard {
	return &fakeTerritoryBoard{damage: map[int64]int{}, priority: map[int64]int64{}}
}

func (f *fakeTerritoryBoard) GetTerritory(_ context.Context, territoryID int64) (*territorymodels.Territory, error) {
	return &territorymodels.Territory{TerritoryID: territoryID}, nil
}

func (f *fakeTerritoryBoard) ApplySiegeDamage(_ context.Context, territoryID int64, damage int) (*territorymodels.Territory, error) {
	f.damage[territoryID] += damage
	return &territorymodels.Territory{TerritoryID: territoryID, DamagePct: f.damage[territoryID]}, nil
}

func (f *fakeTerritoryBoard) GrantCapturePriority(_ context.Context, territoryID, colonyID int64) error {
	f.priority[territoryID] = colonyID
	return nil
}

// fakeSeasonBoard accumulates prize pool credits per season.
type fakeSeasonBoard struct {
	pool map[int]int64
}

func newFakeSeasonBoard() *fakeSeasonBoard {
	return &fakeSeasonBoard{pool: map[int]int64{}}
}

func (f *fakeSeasonBoard) CurrentPhase(context.Context) (*seasonmodels.Season, seasonmodels.Phase, error) {
	return &seasonmodels.Season{SeasonNumber: 6}, seasonmodels.PhaseWarfare, nil
}

func (f *fakeSeasonBoard) CreditPrizePool(_ context.Context, seasonNumber int, amount int64) error {
	f.pool[seasonNumber] += amount
	return nil
}

type transferRecord struct {
	amount int64
	from   string
	to     string
}

// fakeBridge serves combat power per colony and records value movements.
type fakeBridge struct {
	powers    map[int64]int64
	transfers []transferRecord
	burns     []int64
}

func (f *fakeBridge) CombatPower(_ context.Context, colonyID int64, _ []int64) (*gamebridge.PowerVector, error) {
	return &gamebridge.PowerVector{ColonyID: colonyID, TotalPower: f.powers[colonyID], ComputedAt: time.Now().UTC()}, nil
}

func (f *fakeBridge) StakedTokens(_ context.Context, colonyID int64) ([]int64, error) {
	return []int64{colonyID * 100}, nil
}

func (f *fakeBridge) ValidateOwnership(context.Context, string, []int64) error {
	return nil
}

func (f *fakeBridge) Transfer(_ context.Context, _ string, amount int64, from, to string) error {
	f.transfers = append(f.transfers, transferRecord{amount: amount, from: from, to: to})
	return nil
}

func (f *fakeBridge) Burn(_ context.Context, _ string, amount int64, _ string) error {
	f.burns = append(f.burns, amount)
	return nil
}

func siegeTestService(store *fakeSiegeStore, directory *fakeColonyDirectory, board *fakeTerritoryBoard, seasons *fakeSeasonBoard, bridge *fakeBridge) *Service {
	return &Service{
		repository:  store,
		territories: board,
		colonies:    directory,
		seasons:     seasons,
		bridge:      bridge,
		config: &config.WarConfig{
			MinParticipantStake:  100,
			SiegePreparation:     time.Hour,
			SiegeMaxDuration:     24 * time.Hour,
			SiegeForfeitSplitPct: 50,
		},
	}
}

func TestSiege_SnapshotSurvivesPowerChanges(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	store := newFakeSiegeStore()
	directory := newFakeColonyDirectory(
		&colonymodels.WarProfile{ColonyID: 1, Owner: "0xattacker", Registered: true, SeasonNumber: 6},
		&colonymodels.WarProfile{ColonyID: 2, Owner: "0xdefender", Registered: true, SeasonNumber: 6},
	)
	board := newFakeTerritoryBoard()
	seasons := newFakeSeasonBoard()
	bridge := &fakeBridge{powers: map[int64]int64{1: 1500, 2: 800}}
	svc := siegeTestService(store, directory, board, seasons, bridge)

	store.sieges["s1"] = &models.Siege{
		SiegeID:              "s1",
		TerritoryID:          7,
		AttackerColonyID:     1,
		DefenderColonyID:     2,
		SeasonNumber:         6,
		Status:               models.StatusDeclared,
		Stake:                400,
		AttackerTokens:       []int64{101},
		DefenseAtDeclaration: 400,
		DeclaredAt:           now.Add(-2 * time.Hour),
		PreparationEndsAt:    now.Add(-time.Hour),
		ExpiresAt:            now.Add(time.Hour),
	}

	snapshot, err := svc.Defend(ctx, "s1", "0xdefender", []int64{201})
	require.NoError(t, err)
	assert.Equal(t, int64(1500), snapshot.AttackerPower)
	assert.Equal(t, int64(800), snapshot.DefenderPower)
	assert.Equal(t, int64(1200), snapshot.TotalDefense())

	// The defender doubles its power after committing; the snapshot is
	// write-once, so a second commit fails and the healed power never
	// enters the resolution.
	bridge.powers[2] = 1600
	_, err = svc.Defend(ctx, "s1", "0xdefender", []int64{201})
	var transition *warerrors.InvalidStateTransitionError
	require.ErrorAs(t, err, &transition)

	store.sieges["s1"].ExpiresAt = now.Add(-time.Minute)

	resolved, err := svc.ResolveSiege(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeAttackerWin, resolved.Outcome)
	assert.Equal(t, int64(1), resolved.WinnerColonyID)
	assert.Equal(t, models.WinDamage, resolved.DamageDealt)
	assert.Equal(t, models.WinDamage, board.damage[7])

	// The stored snapshot is untouched by resolution.
	frozen, err := store.GetSnapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(800), frozen.DefenderPower)

	// The winning attacker gets its stake back from the war pool.
	require.NotEmpty(t, bridge.transfers)
	last := bridge.transfers[len(bridge.transfers)-1]
	assert.Equal(t, transferRecord{amount: 400, from: "war:pool", to: "0xattacker"}, last)
}

func TestSiege_DefenderDecisiveFeedsPrizePool(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	store := newFakeSiegeStore()
	directory := newFakeColonyDirectory(
		&colonymodels.WarProfile{ColonyID: 1, Owner: "0xattacker", Registered: true, SeasonNumber: 6},
		&colonymodels.WarProfile{ColonyID: 2, Owner: "0xdefender", Registered: true, SeasonNumber: 6},
	)
	board := newFakeTerritoryBoard()
	seasons := newFakeSeasonBoard()
	bridge := &fakeBridge{powers: map[int64]int64{1: 400, 2: 600}}
	svc := siegeTestService(store, directory, board, seasons, bridge)

	store.sieges["s2"] = &models.Siege{
		SiegeID:              "s2",
		TerritoryID:          9,
		AttackerColonyID:     1,
		DefenderColonyID:     2,
		SeasonNumber:         6,
		Status:               models.StatusDeclared,
		Stake:                1000,
		AttackerTokens:       []int64{101},
		DefenseAtDeclaration: 500,
		DeclaredAt:           now.Add(-3 * time.Hour),
		PreparationEndsAt:    now.Add(-2 * time.Hour),
		ExpiresAt:            now.Add(time.Hour),
	}

	_, err := svc.Defend(ctx, "s2", "0xdefender", []int64{201})
	require.NoError(t, err)

	store.sieges["s2"].ExpiresAt = now.Add(-time.Minute)

	resolved, err := svc.ResolveSiege(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeDefenderDecisive, resolved.Outcome)
	assert.Equal(t, int64(2), resolved.WinnerColonyID)
	assert.Equal(t, 0, resolved.DamageDealt)

	// Half the forfeit pays the defender, the remainder feeds the season
	// prize pool; nothing is burned.
	assert.Contains(t, bridge.transfers, transferRecord{amount: 500, from: "war:pool", to: "0xdefender"})
	assert.Equal(t, int64(500), seasons.pool[6])
	assert.Empty(t, bridge.burns)

	assert.Equal(t, colonymodels.ReputationHonorable, directory.reputation[2])
	assert.Equal(t, 1, directory.stress[1])
}
