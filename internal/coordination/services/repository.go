package services

import (
	"context"
	"time"

	"colonywars/internal/coordination/models"
	"colonywars/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles task force persistence
type Repository struct {
	mongodb *database.MongoDB
}

// NewRepository creates a new coordination repository
func NewRepository(mongodb *database.MongoDB) *Repository {
	return &Repository{mongodb: mongodb}
}

func (r *Repository) taskForces() *mongo.Collection {
	return r.mongodb.Database.Collection(models.TaskForceCollection)
}

// CreateTaskForce inserts a new task force record
func (r *Repository) CreateTaskForce(ctx context.Context, taskForce *models.TaskForce) error {
	taskForce.CreatedAt = time.Now().UTC()
	_, err := r.taskForces().InsertOne(ctx, taskForce)
	return err
}

// GetTaskForce retrieves a task force by its public identifier
func (r *Repository) GetTaskForce(ctx context.Context, taskForceID string) (*models.TaskForce, error) {
	var taskForce models.TaskForce
	err := r.taskForces().FindOne(ctx, bson.M{"task_force_id": taskForceID}).Decode(&taskForce)
	if err != nil {
		return nil, err
	}
	return &taskForce, nil
}

// GetFormingByLeader finds the leader's forming task force for a season,
// if one exists. A leader assembles at most one task force at a time.
func (r *Repository) GetFormingByLeader(ctx context.Context, seasonNumber int, leaderColonyID int64) (*models.TaskForce, error) {
	var taskForce models.TaskForce
	filter := bson.M{
		"season_number":    seasonNumber,
		"leader_colony_id": leaderColonyID,
		"status":           models.StatusForming,
	}
	err := r.taskForces().FindOne(ctx, filter).Decode(&taskForce)
	if err != nil {
		return nil, err
	}
	return &taskForce, nil
}

// UpdateTaskForce replaces the mutable state of a task force
func (r *Repository) UpdateTaskForce(ctx context.Context, taskForce *models.TaskForce) error {
	update := bson.M{"$set": bson.M{
		"participants": taskForce.Participants,
		"status":       taskForce.Status,
		"siege_id":     taskForce.SiegeID,
		"launched_at":  taskForce.LaunchedAt,
	}}
	result, err := r.taskForces().UpdateOne(ctx, bson.M{"task_force_id": taskForce.TaskForceID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListTaskForces returns task forces for a season, newest first
func (r *Repository) ListTaskForces(ctx context.Context, seasonNumber int) ([]models.TaskForce, error) {
	filter := bson.M{"season_number": seasonNumber}
	cursor, err := r.taskForces().Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var taskForces []models.TaskForce
	if err := cursor.All(ctx, &taskForces); err != nil {
		return nil, err
	}
	return taskForces, nil
}

// CreateIndexes creates the indexes needed by the task force collection
func (r *Repository) CreateIndexes(ctx context.Context) error {
	_, err := r.taskForces().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "task_force_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "season_number", Value: 1}, {Key: "leader_colony_id", Value: 1}, {Key: "status", Value: 1}},
		},
	})
	return err
}
