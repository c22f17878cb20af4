package services

import (
	"context"
	"time"

	"colonywars/internal/territory/models"
	"colonywars/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles territory persistence
type Repository struct {
	mongodb *database.MongoDB
}

// NewRepository creates a new territory repository
func NewRepository(mongodb *database.MongoDB) *Repository {
	return &Repository{mongodb: mongodb}
}

func (r *Repository) territories() *mongo.Collection {
	return r.mongodb.Database.Collection(models.TerritoryCollection)
}

// GetTerritory retrieves a territory by its identifier
func (r *Repository) GetTerritory(ctx context.Context, territoryID int64) (*models.Territory, error) {
	var territory models.Territory
	err := r.territories().FindOne(ctx, bson.M{"territory_id": territoryID}).Decode(&territory)
	if err != nil {
		return nil, err
	}
	return &territory, nil
}

// CreateTerritory inserts a new territory record
func (r *Repository) CreateTerritory(ctx context.Context, territory *models.Territory) error {
	now := time.Now().UTC()
	territory.CreatedAt = now
	territory.UpdatedAt = now
	_, err := r.territories().InsertOne(ctx, territory)
	return err
}

// UpdateTerritory replaces the mutable state of a territory
func (r *Repository) UpdateTerritory(ctx context.Context, territory *models.Territory) error {
	territory.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"owner_colony_id":     territory.OwnerColonyID,
		"damage_pct":          territory.DamagePct,
		"fortification_pct":   territory.FortificationPct,
		"season_number":       territory.SeasonNumber,
		"captured_at":         territory.CapturedAt,
		"last_maintenance_at": territory.LastMaintenanceAt,
		"maintenance_due_at":  territory.MaintenanceDueAt,
		"updated_at":          territory.UpdatedAt,
	}}
	result, err := r.territories().UpdateOne(ctx, bson.M{"territory_id": territory.TerritoryID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RecordRaid stamps the time a territory was last raid-scouted
func (r *Repository) RecordRaid(ctx context.Context, territoryID int64, at time.Time) error {
	update := bson.M{"$set": bson.M{"last_raid_at": at, "updated_at": at}}
	result, err := r.territories().UpdateOne(ctx, bson.M{"territory_id": territoryID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountOwnedBy returns how many territories a colony holds
func (r *Repository) CountOwnedBy(ctx context.Context, colonyID int64) (int64, error) {
	return r.territories().CountDocuments(ctx, bson.M{"owner_colony_id": colonyID})
}

// CountOwned returns how many territories are held by any colony
func (r *Repository) CountOwned(ctx context.Context) (int64, error) {
	return r.territories().CountDocuments(ctx, bson.M{"owner_colony_id": bson.M{"$gt": 0}})
}

// ListTerritories returns territories, optionally filtered by owner
func (r *Repository) ListTerritories(ctx context.Context, ownerColonyID int64) ([]models.Territory, error) {
	filter := bson.M{}
	if ownerColonyID > 0 {
		filter["owner_colony_id"] = ownerColonyID
	}
	cursor, err := r.territories().Find(ctx, filter, options.Find().SetSort(bson.M{"territory_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var territories []models.Territory
	if err := cursor.All(ctx, &territories); err != nil {
		return nil, err
	}
	return territories, nil
}

// ApplyNeglectDamage adds decay damage to owned territories whose
// maintenance lapsed, capping the gauge at its maximum. Returns the number
// of territories touched.
func (r *Repository) ApplyNeglectDamage(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"owner_colony_id":    bson.M{"$gt": 0},
		"maintenance_due_at": bson.M{"$lte": now},
		"damage_pct":         bson.M{"$lt": models.MaxGauge},
	}
	update := bson.A{bson.M{"$set": bson.M{
		"damage_pct": bson.M{"$min": bson.A{
			bson.M{"$add": bson.A{"$damage_pct", models.NeglectDamage}},
			models.MaxGauge,
		}},
		"updated_at": now,
	}}}
	result, err := r.territories().UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// CreateIndexes creates the indexes needed by the territory collection
func (r *Repository) CreateIndexes(ctx context.Context) error {
	_, err := r.territories().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "territory_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "owner_colony_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "maintenance_due_at", Value: 1}},
		},
	})
	return err
}
