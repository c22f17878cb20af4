package services

import (
	"context"
	"time"

	"colonywars/internal/season/models"
	"colonywars/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles season and pre-registration persistence
type Repository struct {
	mongodb *database.MongoDB
}

// NewRepository creates a new season repository
func NewRepository(mongodb *database.MongoDB) *Repository {
	return &Repository{mongodb: mongodb}
}

func (r *Repository) seasons() *mongo.Collection {
	return r.mongodb.Database.Collection(models.SeasonCollection)
}

func (r *Repository) preregs() *mongo.Collection {
	return r.mongodb.Database.Collection(models.PreRegistrationCollection)
}

// GetLatestSeason returns the most recent season by number.
// Returns mongo.ErrNoDocuments before the first season starts.
func (r *Repository) GetLatestSeason(ctx context.Context) (*models.Season, error) {
	var season models.Season
	opts := options.FindOne().SetSort(bson.M{"season_number": -1})
	err := r.seasons().FindOne(ctx, bson.M{}, opts).Decode(&season)
	if err != nil {
		return nil, err
	}
	return &season, nil
}

// GetSeason retrieves a season by number
func (r *Repository) GetSeason(ctx context.Context, seasonNumber int) (*models.Season, error) {
	var season models.Season
	err := r.seasons().FindOne(ctx, bson.M{"season_number": seasonNumber}).Decode(&season)
	if err != nil {
		return nil, err
	}
	return &season, nil
}

// CreateSeason inserts a new season record
func (r *Repository) CreateSeason(ctx context.Context, season *models.Season) error {
	now := time.Now().UTC()
	season.CreatedAt = now
	season.UpdatedAt = now
	_, err := r.seasons().InsertOne(ctx, season)
	return err
}

// UpdatePhase persists a phase change on a season
func (r *Repository) UpdatePhase(ctx context.Context, seasonNumber int, phase models.Phase, completedAt *time.Time) error {
	update := bson.M{"$set": bson.M{
		"phase":      phase,
		"updated_at": time.Now().UTC(),
	}}
	if completedAt != nil {
		update["$set"].(bson.M)["completed_at"] = completedAt
	}
	result, err := r.seasons().UpdateOne(ctx, bson.M{"season_number": seasonNumber}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddToPrizePool increments a season's prize pool by the given amount.
func (r *Repository) AddToPrizePool(ctx context.Context, seasonNumber int, amount int64) error {
	update := bson.M{
		"$inc": bson.M{"prize_pool": amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := r.seasons().UpdateOne(ctx, bson.M{"season_number": seasonNumber}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkRewardsDistributed flips the distributed flag on a completed season.
// The filter matches only an undistributed season, so concurrent payouts
// cannot both succeed; a lost race surfaces as mongo.ErrNoDocuments.
func (r *Repository) MarkRewardsDistributed(ctx context.Context, seasonNumber int) error {
	filter := bson.M{"season_number": seasonNumber, "rewards_distributed": false}
	update := bson.M{"$set": bson.M{"rewards_distributed": true, "updated_at": time.Now().UTC()}}
	result, err := r.seasons().UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpsertPreRegistration queues a colony for a target season. Re-submitting
// after a cancellation reopens the entry with the fresh stake.
func (r *Repository) UpsertPreRegistration(ctx context.Context, prereg *models.PreRegistration) error {
	filter := bson.M{"season_number": prereg.SeasonNumber, "colony_id": prereg.ColonyID}
	update := bson.M{
		"$set": bson.M{
			"wallet":       prereg.Wallet,
			"stake":        prereg.Stake,
			"activated":    false,
			"cancelled":    false,
			"cancelled_at": nil,
		},
		"$setOnInsert": bson.M{
			"season_number": prereg.SeasonNumber,
			"colony_id":     prereg.ColonyID,
			"created_at":    time.Now().UTC(),
		},
	}
	_, err := r.preregs().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// MarkCancelled flags an open pre-registration as withdrawn. The filter
// excludes activated entries, so a record can never be both activated and
// cancelled.
func (r *Repository) MarkCancelled(ctx context.Context, seasonNumber int, colonyID int64) error {
	filter := bson.M{"season_number": seasonNumber, "colony_id": colonyID, "activated": false, "cancelled": false}
	update := bson.M{"$set": bson.M{"cancelled": true, "cancelled_at": time.Now().UTC()}}
	result, err := r.preregs().UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetPreRegistration retrieves a colony's pre-registration for a season
func (r *Repository) GetPreRegistration(ctx context.Context, seasonNumber int, colonyID int64) (*models.PreRegistration, error) {
	var prereg models.PreRegistration
	filter := bson.M{"season_number": seasonNumber, "colony_id": colonyID}
	err := r.preregs().FindOne(ctx, filter).Decode(&prereg)
	if err != nil {
		return nil, err
	}
	return &prereg, nil
}

// ListOpen returns a batch of open pre-registrations for a season, oldest
// first. The queue index keeps repeated batch calls cheap during
// activation.
func (r *Repository) ListOpen(ctx context.Context, seasonNumber int, limit int64) ([]models.PreRegistration, error) {
	filter := bson.M{"season_number": seasonNumber, "activated": false, "cancelled": false}
	opts := options.Find().SetSort(bson.M{"created_at": 1}).SetLimit(limit)
	cursor, err := r.preregs().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var preregs []models.PreRegistration
	if err := cursor.All(ctx, &preregs); err != nil {
		return nil, err
	}
	return preregs, nil
}

// MarkActivated flags an open pre-registration as applied. The filter
// excludes cancelled entries, the mirror of MarkCancelled.
func (r *Repository) MarkActivated(ctx context.Context, seasonNumber int, colonyID int64) error {
	filter := bson.M{"season_number": seasonNumber, "colony_id": colonyID, "cancelled": false}
	_, err := r.preregs().UpdateOne(ctx, filter, bson.M{"$set": bson.M{"activated": true}})
	return err
}

// CreateIndexes creates the indexes needed by the season collections
func (r *Repository) CreateIndexes(ctx context.Context) error {
	_, err := r.seasons().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "season_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = r.preregs().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "season_number", Value: 1}, {Key: "colony_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "season_number", Value: 1}, {Key: "activated", Value: 1}, {Key: "cancelled", Value: 1}, {Key: "created_at", Value: 1}},
		},
	})
	return err
}
