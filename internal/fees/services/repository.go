package services

import (
	"context"
	"time"

	"colonywars/internal/fees/models"
	"colonywars/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database operations for operation fees
type Repository struct {
	mongodb    *database.MongoDB
	collection *mongo.Collection
}

// NewRepository creates a new fee repository
func NewRepository(mongodb *database.MongoDB) *Repository {
	return &Repository{
		mongodb:    mongodb,
		collection: mongodb.Database.Collection(models.OperationFeeCollection),
	}
}

// GetFeeByName retrieves a fee configuration by operation name
func (r *Repository) GetFeeByName(ctx context.Context, name string) (*models.OperationFee, error) {
	var fee models.OperationFee
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&fee)
	if err != nil {
		return nil, err
	}
	return &fee, nil
}

// UpsertFee creates or replaces a fee configuration
func (r *Repository) UpsertFee(ctx context.Context, fee *models.OperationFee) error {
	fee.UpdatedAt = time.Now().UTC()
	if fee.CreatedAt.IsZero() {
		fee.CreatedAt = fee.UpdatedAt
	}

	filter := bson.M{"name": fee.Name}
	update := bson.M{"$set": fee}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// SetEnabled toggles a fee configuration without rewriting it
func (r *Repository) SetEnabled(ctx context.Context, name string, enabled bool) error {
	update := bson.M{"$set": bson.M{"enabled": enabled, "updated_at": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"name": name}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListFees returns all configured fees sorted by name
func (r *Repository) ListFees(ctx context.Context) ([]models.OperationFee, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var fees []models.OperationFee
	if err := cursor.All(ctx, &fees); err != nil {
		return nil, err
	}
	return fees, nil
}

// CreateIndexes creates necessary database indexes for the fees collection
func (r *Repository) CreateIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := r.collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
