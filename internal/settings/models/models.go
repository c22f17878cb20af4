package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feature is a pausable war subsystem. Using a closed type instead of free
// strings means an unknown flag is a request error, not a silent no-op.
type Feature string

const (
	FeatureSieges             Feature = "sieges"
	FeatureCoordinatedAttacks Feature = "coordinated_attacks"
	FeatureRegistration       Feature = "registration"
	FeatureDiplomacy          Feature = "diplomacy"
	FeatureRaidScouting       Feature = "raid_scouting"
	FeatureMaintenance        Feature = "maintenance"
)

// AllFeatures lists every pausable feature.
var AllFeatures = []Feature{
	FeatureSieges,
	FeatureCoordinatedAttacks,
	FeatureRegistration,
	FeatureDiplomacy,
	FeatureRaidScouting,
	FeatureMaintenance,
}

// Valid reports whether the feature is a known flag.
func (f Feature) Valid() bool {
	for _, known := range AllFeatures {
		if f == known {
			return true
		}
	}
	return false
}

// FeatureFlag is the persisted state of one feature. Features default to
// enabled; a flag document exists only once an administrator has touched
// it.
type FeatureFlag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Feature   Feature            `bson:"feature" json:"feature"`
	Enabled   bool               `bson:"enabled" json:"enabled"`
	Reason    string             `bson:"reason,omitempty" json:"reason,omitempty"`
	UpdatedBy string             `bson:"updated_by" json:"updated_by"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// FeatureFlagCollection is the mongo collection name
const FeatureFlagCollection = "feature_flags"
