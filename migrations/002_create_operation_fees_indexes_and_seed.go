package migrations

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	Register(Migration{
		Version:     "002_create_operation_fees_indexes_and_seed",
		Description: "Create indexes and seed defaults for operation_fees collection",
		Up:          up002,
		Down:        down002,
	})
}

func up002(ctx context.Context, db *mongo.Database) error {
	feesCollection := db.Collection("operation_fees")

	_, err := feesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil && !isIndexExistsError(err) {
		return err
	}

	// Seed the default fee schedule. Amounts are tunable at runtime through
	// the fees admin endpoints; these are the launch values.
	now := time.Now()
	seedFee := func(name string, baseAmount int64, burn bool) bson.M {
		return bson.M{
			"name":           name,
			"currency":       "SPICE",
			"beneficiary":    "war:pool",
			"base_amount":    baseAmount,
			"multiplier_bps": int64(10000),
			"burn":           burn,
			"enabled":        true,
			"created_at":     now,
			"updated_at":     now,
		}
	}

	defaultFees := []interface{}{
		seedFee("raid", 50, false),
		seedFee("maintenance", 25, false),
		seedFee("repair", 10, false),
		seedFee("fortify", 15, false),
		seedFee("scout", 20, true),
		seedFee("siege", 200, false),
	}

	// Use insertMany with ordered=false to skip duplicates
	insertOpts := options.InsertMany().SetOrdered(false)
	_, err = feesCollection.InsertMany(ctx, defaultFees, insertOpts)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return err
	}

	return nil
}

func down002(ctx context.Context, db *mongo.Database) error {
	feesCollection := db.Collection("operation_fees")

	feeNames := []string{"raid", "maintenance", "repair", "fortify", "scout", "siege"}
	_, err := feesCollection.DeleteMany(ctx, bson.M{
		"name": bson.M{"$in": feeNames},
	})
	if err != nil {
		return err
	}

	if _, err := feesCollection.Indexes().DropAll(ctx); err != nil {
		return err
	}

	return nil
}
