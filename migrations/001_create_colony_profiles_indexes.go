package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	Register(Migration{
		Version:     "001_create_colony_profiles_indexes",
		Description: "Create indexes for colony_war_profiles and wallet_colonies collections",
		Up:          up001,
		Down:        down001,
	})
}

func up001(ctx context.Context, db *mongo.Database) error {
	profilesCollection := db.Collection("colony_war_profiles")
	profileIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "colony_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "owner", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "registered", Value: 1}, {Key: "season_number", Value: 1}},
		},
	}

	if _, err := profilesCollection.Indexes().CreateMany(ctx, profileIndexes); err != nil && !isIndexExistsError(err) {
		return err
	}

	walletsCollection := db.Collection("wallet_colonies")
	_, err := walletsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "wallet", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func down001(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection("colony_war_profiles").Indexes().DropAll(ctx); err != nil {
		return err
	}

	if _, err := db.Collection("wallet_colonies").Indexes().DropAll(ctx); err != nil {
		return err
	}

	return nil
}
