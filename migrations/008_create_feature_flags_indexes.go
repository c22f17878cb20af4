package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	Register(Migration{
		Version:     "008_create_feature_flags_indexes",
		Description: "Create indexes for feature_flags collection",
		Up:          up008,
		Down:        down008,
	})
}

func up008(ctx context.Context, db *mongo.Database) error {
	// Flags are created lazily on first toggle; features without a document
	// default to enabled. Only the uniqueness constraint is needed up front.
	flagsCollection := db.Collection("feature_flags")
	_, err := flagsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "feature", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func down008(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection("feature_flags").Indexes().DropAll(ctx); err != nil {
		return err
	}

	return nil
}
