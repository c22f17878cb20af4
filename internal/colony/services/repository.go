package services

import (
	"context"
	"time"

	"colonywars/internal/colony/models"
	"colonywars/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database operations for colony war profiles and
// wallet-to-colony mappings
type Repository struct {
	mongodb  *database.MongoDB
	profiles *mongo.Collection
	wallets  *mongo.Collection
}

// NewRepository creates a new colony repository
func NewRepository(mongodb *database.MongoDB) *Repository {
	return &Repository{
		mongodb:  mongodb,
		profiles: mongodb.Database.Collection(models.WarProfileCollection),
		wallets:  mongodb.Database.Collection(models.WalletRecordCollection),
	}
}

// GetProfile retrieves a war profile by colony ID
func (r *Repository) GetProfile(ctx context.Context, colonyID int64) (*models.WarProfile, error) {
	var profile models.WarProfile
	err := r.profiles.FindOne(ctx, bson.M{"colony_id": colonyID}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateProfile inserts a new war profile
func (r *Repository) CreateProfile(ctx context.Context, profile *models.WarProfile) error {
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.profiles.InsertOne(ctx, profile)
	return err
}

// UpdateProfile replaces a war profile
func (r *Repository) UpdateProfile(ctx context.Context, profile *models.WarProfile) error {
	profile.UpdatedAt = time.Now().UTC()

	filter := bson.M{"colony_id": profile.ColonyID}
	_, err := r.profiles.UpdateOne(ctx, filter, bson.M{"$set": profile})
	return err
}

// SetRegistration updates the registration flag and season on a profile
func (r *Repository) SetRegistration(ctx context.Context, colonyID int64, registered bool, season int) error {
	update := bson.M{"$set": bson.M{
		"registered":    registered,
		"season_number": season,
		"updated_at":    time.Now().UTC(),
	}}
	result, err := r.profiles.UpdateOne(ctx, bson.M{"colony_id": colonyID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddStake increments the defensive stake on a profile
func (r *Repository) AddStake(ctx context.Context, colonyID int64, amount int64) error {
	update := bson.M{
		"$inc": bson.M{"defensive_stake": amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := r.profiles.UpdateOne(ctx, bson.M{"colony_id": colonyID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DecayStress decrements war stress by one on every profile still above zero.
// Returns the number of profiles touched.
func (r *Repository) DecayStress(ctx context.Context) (int64, error) {
	update := bson.M{
		"$inc": bson.M{"war_stress": -1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := r.profiles.UpdateMany(ctx, bson.M{"war_stress": bson.M{"$gt": 0}}, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// GetWallet retrieves a wallet record
func (r *Repository) GetWallet(ctx context.Context, wallet string) (*models.WalletRecord, error) {
	var record models.WalletRecord
	err := r.wallets.FindOne(ctx, bson.M{"wallet": wallet}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// AttachColony adds a colony to a wallet record, creating the record on
// first use. The first colony attached becomes the primary colony.
func (r *Repository) AttachColony(ctx context.Context, wallet string, colonyID int64) error {
	now := time.Now().UTC()
	filter := bson.M{"wallet": wallet}
	update := bson.M{
		"$addToSet":    bson.M{"colony_ids": colonyID},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"primary_colony_id": colonyID, "created_at": now},
	}
	_, err := r.wallets.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// SetPrimaryColony changes the wallet's primary colony
func (r *Repository) SetPrimaryColony(ctx context.Context, wallet string, colonyID int64) error {
	update := bson.M{"$set": bson.M{"primary_colony_id": colonyID, "updated_at": time.Now().UTC()}}
	result, err := r.wallets.UpdateOne(ctx, bson.M{"wallet": wallet}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CreateIndexes creates necessary database indexes for the colony collections
func (r *Repository) CreateIndexes(ctx context.Context) error {
	_, err := r.profiles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "colony_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = r.wallets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "wallet", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
