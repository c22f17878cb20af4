package services

import (
	"context"
	"time"

	"colonywars/internal/siege/models"
	"colonywars/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles siege and snapshot persistence. Snapshots are
// insert-only: there is deliberately no update path for them.
type Repository struct {
	mongodb *database.MongoDB
}

// NewRepository creates a new siege repository
func NewRepository(mongodb *database.MongoDB) *Repository {
	return &Repository{mongodb: mongodb}
}

func (r *Repository) sieges() *mongo.Collection {
	return r.mongodb.Database.Collection(models.SiegeCollection)
}

func (r *Repository) snapshots() *mongo.Collection {
	return r.mongodb.Database.Collection(models.SnapshotCollection)
}

// CreateSiege inserts a new siege record
func (r *Repository) CreateSiege(ctx context.Context, siege *models.Siege) error {
	_, err := r.sieges().InsertOne(ctx, siege)
	return err
}

// GetSiege retrieves a siege by its public identifier
func (r *Repository) GetSiege(ctx context.Context, siegeID string) (*models.Siege, error) {
	var siege models.Siege
	err := r.sieges().FindOne(ctx, bson.M{"siege_id": siegeID}).Decode(&siege)
	if err != nil {
		return nil, err
	}
	return &siege, nil
}

// GetActiveSiegeByTerritory finds the declared siege on a territory, if
// any. At most one siege may be active per territory at a time.
func (r *Repository) GetActiveSiegeByTerritory(ctx context.Context, territoryID int64) (*models.Siege, error) {
	var siege models.Siege
	filter := bson.M{"territory_id": territoryID, "status": models.StatusDeclared}
	err := r.sieges().FindOne(ctx, filter).Decode(&siege)
	if err != nil {
		return nil, err
	}
	return &siege, nil
}

// UpdateSiegeOutcome records the terminal state of a siege. The filter
// requires the siege to still be declared, so a terminal siege is never
// rewritten; MatchedCount zero signals the caller lost the race.
func (r *Repository) UpdateSiegeOutcome(ctx context.Context, siege *models.Siege) error {
	filter := bson.M{"siege_id": siege.SiegeID, "status": models.StatusDeclared}
	update := bson.M{"$set": bson.M{
		"status":           siege.Status,
		"resolved_at":      siege.ResolvedAt,
		"outcome":          siege.Outcome,
		"winner_colony_id": siege.WinnerColonyID,
		"damage_dealt":     siege.DamageDealt,
		"capture_priority": siege.CapturePriority,
	}}
	result, err := r.sieges().UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListOverdue returns declared sieges past their expiry
func (r *Repository) ListOverdue(ctx context.Context, now time.Time, limit int64) ([]models.Siege, error) {
	filter := bson.M{"status": models.StatusDeclared, "expires_at": bson.M{"$lte": now}}
	opts := options.Find().SetSort(bson.M{"expires_at": 1}).SetLimit(limit)
	cursor, err := r.sieges().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sieges []models.Siege
	if err := cursor.All(ctx, &sieges); err != nil {
		return nil, err
	}
	return sieges, nil
}

// ListSiegesByColony returns sieges where the colony is attacker or
// defender, newest first.
func (r *Repository) ListSiegesByColony(ctx context.Context, colonyID int64) ([]models.Siege, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"attacker_colony_id": colonyID},
		bson.M{"defender_colony_id": colonyID},
	}}
	cursor, err := r.sieges().Find(ctx, filter, options.Find().SetSort(bson.M{"declared_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sieges []models.Siege
	if err := cursor.All(ctx, &sieges); err != nil {
		return nil, err
	}
	return sieges, nil
}

// InsertSnapshot records the defender's write-once commitment. The unique
// index on siege_id makes a second insert fail with a duplicate key error.
func (r *Repository) InsertSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	_, err := r.snapshots().InsertOne(ctx, snapshot)
	return err
}

// GetSnapshot retrieves the defense snapshot for a siege.
// Returns mongo.ErrNoDocuments when the siege was never defended.
func (r *Repository) GetSnapshot(ctx context.Context, siegeID string) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	err := r.snapshots().FindOne(ctx, bson.M{"siege_id": siegeID}).Decode(&snapshot)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// CreateIndexes creates the indexes needed by the siege collections
func (r *Repository) CreateIndexes(ctx context.Context) error {
	_, err := r.sieges().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "siege_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "territory_id", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "expires_at", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "attacker_colony_id", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = r.snapshots().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "siege_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
