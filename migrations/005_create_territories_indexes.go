package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	Register(Migration{
		Version:     "005_create_territories_indexes",
		Description: "Create indexes for territories collection",
		Up:          up005,
		Down:        down005,
	})
}

func up005(ctx context.Context, db *mongo.Database) error {
	territoriesCollection := db.Collection("territories")
	territoryIndexes := []mongo.IndexModel{
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
	}

	if _, err := territoriesCollection.Indexes().CreateMany(ctx, territoryIndexes); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func down005(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection("territories").Indexes().DropAll(ctx); err != nil {
		return err
	}

	return nil
}
