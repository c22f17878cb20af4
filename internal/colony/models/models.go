package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReputationTier categorizes a colony's standing in the war metagame.
type ReputationTier string

const (
	ReputationNeutral   ReputationTier = "neutral"
	ReputationHonorable ReputationTier = "honorable"
	ReputationFeared    ReputationTier = "feared"
	ReputationOutlaw    ReputationTier = "outlaw"
)

// WarProfile is the per-colony war record. Created on first registration,
// mutated by combat, stress decay and re-registration; never deleted.
type WarProfile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ColonyID       int64              `bson:"colony_id" json:"colony_id"`
	Owner          string             `bson:"owner" json:"owner"`
	DefensiveStake int64              `bson:"defensive_stake" json:"defensive_stake"`
	Reputation     ReputationTier     `bson:"reputation" json:"reputation"`
	WarStress      int                `bson:"war_stress" json:"war_stress"`
	Registered     bool               `bson:"registered" json:"registered"`
	SeasonNumber   int                `bson:"season_number" json:"season_number"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// WalletRecord maps a controlling wallet to its colonies, including the
// distinguished primary colony used for alliance eligibility.
type WalletRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Wallet          string             `bson:"wallet" json:"wallet"`
	ColonyIDs       []int64            `bson:"colony_ids" json:"colony_ids"`
	PrimaryColonyID int64              `bson:"primary_colony_id" json:"primary_colony_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ClampStress keeps a stress value inside [0, max]. War stress raises
// maintenance costs and decays over time; the ceiling comes from
// configuration.
func ClampStress(stress, max int) int {
	if stress < 0 {
		return 0
	}
	if stress > max {
		return max
	}
	return stress
}

// RegisteredForSeason reports whether this profile is registered for the
// given season. Registration for an older season does not count.
func (p *WarProfile) RegisteredForSeason(season int) bool {
	return p.Registered && p.SeasonNumber == season
}

// Collection names
const (
	WarProfileCollection   = "colony_war_profiles"
	WalletRecordCollection = "wallet_colonies"
)
