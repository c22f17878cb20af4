package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	Register(Migration{
		Version:     "003_create_seasons_indexes",
		Description: "Create indexes for seasons and season_preregistrations collections",
		Up:          up003,
		Down:        down003,
	})
}

func up003(ctx context.Context, db *mongo.Database) error {
	seasonsCollection := db.Collection("seasons")
	_, err := seasonsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "season_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil && !isIndexExistsError(err) {
		return err
	}

	preregsCollection := db.Collection("season_preregistrations")
	preregIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "season_number", Value: 1}, {Key: "colony_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "season_number", Value: 1}, {Key: "activated", Value: 1}, {Key: "cancelled", Value: 1}, {Key: "created_at", Value: 1}},
		},
	}

	if _, err := preregsCollection.Indexes().CreateMany(ctx, preregIndexes); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func down003(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection("seasons").Indexes().DropAll(ctx); err != nil {
		return err
	}

	if _, err := db.Collection("season_preregistrations").Indexes().DropAll(ctx); err != nil {
		return err
	}

	return nil
}
