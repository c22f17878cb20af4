package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	Register(Migration{
		Version:     "004_create_alliances_indexes",
		Description: "Create indexes for alliances, diplomatic_treaties and forgiveness_proposals collections",
		Up:          up004,
		Down:        down004,
	})
}

func up004(ctx context.Context, db *mongo.Database) error {
	alliancesCollection := db.Collection("alliances")
	allianceIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "alliance_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "members.colony_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "members.wallet", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "active", Value: 1}},
		},
	}

	if _, err := alliancesCollection.Indexes().CreateMany(ctx, allianceIndexes); err != nil && !isIndexExistsError(err) {
		return err
	}

	treatiesCollection := db.Collection("diplomatic_treaties")
	treatyIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "treaty_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "proposer_alliance_id", Value: 1}, {Key: "target_alliance_id", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "expires_at", Value: 1}},
		},
	}

	if _, err := treatiesCollection.Indexes().CreateMany(ctx, treatyIndexes); err != nil && !isIndexExistsError(err) {
		return err
	}

	proposalsCollection := db.Collection("forgiveness_proposals")
	proposalIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "proposal_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "alliance_id", Value: 1}, {Key: "betrayer_colony_id", Value: 1}, {Key: "executed", Value: 1}},
		},
	}

	if _, err := proposalsCollection.Indexes().CreateMany(ctx, proposalIndexes); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func down004(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{"alliances", "diplomatic_treaties", "forgiveness_proposals"} {
		if _, err := db.Collection(name).Indexes().DropAll(ctx); err != nil {
			return err
		}
	}

	return nil
}
