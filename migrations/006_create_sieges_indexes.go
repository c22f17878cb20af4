package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	Register(Migration{
		Version:     "006_create_sieges_indexes",
		Description: "Create indexes for sieges and siege_snapshots collections",
		Up:          up006,
		Down:        down006,
	})
}

func up006(ctx context.Context, db *mongo.Database) error {
	siegesCollection := db.Collection("sieges")
	siegeIndexes := []mongo.IndexModel{
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
	}

	if _, err := siegesCollection.Indexes().CreateMany(ctx, siegeIndexes); err != nil && !isIndexExistsError(err) {
		return err
	}

	// The unique snapshot index is what makes defense snapshots write-once.
	snapshotsCollection := db.Collection("siege_snapshots")
	_, err := snapshotsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "siege_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func down006(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection("sieges").Indexes().DropAll(ctx); err != nil {
		return err
	}

	if _, err := db.Collection("siege_snapshots").Indexes().DropAll(ctx); err != nil {
		return err
	}

	return nil
}
