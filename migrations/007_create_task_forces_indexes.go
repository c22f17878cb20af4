package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	Register(Migration{
		Version:     "007_create_task_forces_indexes",
		Description: "Create indexes for task_forces collection",
		Up:          up007,
		Down:        down007,
	})
}

func up007(ctx context.Context, db *mongo.Database) error {
	taskForcesCollection := db.Collection("task_forces")
	taskForceIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "task_force_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "season_number", Value: 1}, {Key: "leader_colony_id", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "participants.colony_id", Value: 1}},
		},
	}

	if _, err := taskForcesCollection.Indexes().CreateMany(ctx, taskForceIndexes); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func down007(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection("task_forces").Indexes().DropAll(ctx); err != nil {
		return err
	}

	return nil
}
