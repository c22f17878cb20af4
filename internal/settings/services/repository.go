package services

import (
	"context"
	"time"

	"colonywars/internal/settings/models"
	"colonywars/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles feature flag persistence
type Repository struct {
	mongodb *database.MongoDB
}

// NewRepository creates a new settings repository
func NewRepository(mongodb *database.MongoDB) *Repository {
	return &Repository{mongodb: mongodb}
}

func (r *Repository) flags() *mongo.Collection {
	return r.mongodb.Database.Collection(models.FeatureFlagCollection)
}

// GetFlag retrieves the stored state of a feature.
// Returns mongo.ErrNoDocuments when the feature was never toggled.
func (r *Repository) GetFlag(ctx context.Context, feature models.Feature) (*models.FeatureFlag, error) {
	var flag models.FeatureFlag
	err := r.flags().FindOne(ctx, bson.M{"feature": feature}).Decode(&flag)
	if err != nil {
		return nil, err
	}
	return &flag, nil
}

// UpsertFlag stores the state of a feature
func (r *Repository) UpsertFlag(ctx context.Context, flag *models.FeatureFlag) error {
	flag.UpdatedAt = time.Now().UTC()
	filter := bson.M{"feature": flag.Feature}
	update := bson.M{"$set": bson.M{
		"enabled":    flag.Enabled,
		"reason":     flag.Reason,
		"updated_by": flag.UpdatedBy,
		"updated_at": flag.UpdatedAt,
	}}
	_, err := r.flags().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// ListFlags returns every stored feature flag
func (r *Repository) ListFlags(ctx context.Context) ([]models.FeatureFlag, error) {
	cursor, err := r.flags().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"feature": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var flags []models.FeatureFlag
	if err := cursor.All(ctx, &flags); err != nil {
		return nil, err
	}
	return flags, nil
}

// CreateIndexes creates the indexes needed by the feature flag collection
func (r *Repository) CreateIndexes(ctx context.Context) error {
	_, err := r.flags().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "feature", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
