package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OperationFee is the fee configuration for one named operation (raid,
// maintenance, repair, ...). Configuration-only entity, mutated only by
// administrative action.
type OperationFee struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Currency      string             `bson:"currency" json:"currency"`
	Beneficiary   string             `bson:"beneficiary" json:"beneficiary"`
	BaseAmount    int64              `bson:"base_amount" json:"base_amount"`
	MultiplierBps int64              `bson:"multiplier_bps" json:"multiplier_bps"`
	Burn          bool               `bson:"burn" json:"burn"`
	Enabled       bool               `bson:"enabled" json:"enabled"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ComputeAmount returns the fee for a single application: base amount scaled
// by the multiplier (basis points) and the caller-supplied quantity.
func ComputeAmount(baseAmount, multiplierBps, quantity int64) int64 {
	if baseAmount <= 0 || multiplierBps <= 0 || quantity <= 0 {
		return 0
	}
	return baseAmount * multiplierBps / 10000 * quantity
}

// Well-known operation names used by the war modules.
const (
	FeeRaid        = "raid"
	FeeMaintenance = "maintenance"
	FeeRepair      = "repair"
	FeeFortify     = "fortify"
	FeeScout       = "scout"
	FeeSiege       = "siege"
)

const OperationFeeCollection = "operation_fees"
