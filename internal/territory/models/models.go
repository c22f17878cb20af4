package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gauge bounds for damage and fortification percentages.
const (
	MinGauge = 0
	MaxGauge = 100
)

// MaintenanceInterval is how long a maintenance payment keeps a territory
// in good standing.
const MaintenanceInterval = 7 * 24 * time.Hour

// NeglectDamage is the damage applied per sweep to territories whose
// maintenance has lapsed.
const NeglectDamage = 10

// TerritoryType is the production bonus category a territory grants its
// holder.
type TerritoryType string

const (
	TypeSpiceFields  TerritoryType = "spice_fields"
	TypeOreDeposits  TerritoryType = "ore_deposits"
	TypeCrystalCaves TerritoryType = "crystal_caves"
	TypeAncientRuins TerritoryType = "ancient_ruins"
	TypeTradeRoutes  TerritoryType = "trade_routes"
)

// TerritoryTypes lists every valid territory type.
var TerritoryTypes = []TerritoryType{
	TypeSpiceFields,
	TypeOreDeposits,
	TypeCrystalCaves,
	TypeAncientRuins,
	TypeTradeRoutes,
}

// ValidTerritoryType reports whether t is one of the known types.
func ValidTerritoryType(t TerritoryType) bool {
	for _, known := range TerritoryTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Territory is one capturable region on the war map. Unowned territories
// have a zero owner. Damage and fortification are percentage gauges clamped
// to [0,100]; both feed the effective defense calculation. Type and bonus
// value are fixed at registration.
type Territory struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TerritoryID      int64              `bson:"territory_id" json:"territory_id"`
	Name             string             `bson:"name" json:"name"`
	Type             TerritoryType      `bson:"type" json:"type"`
	BonusValue       int64              `bson:"bonus_value" json:"bonus_value"`
	OwnerColonyID    int64              `bson:"owner_colony_id" json:"owner_colony_id"`
	BaseDefense      int64              `bson:"base_defense" json:"base_defense"`
	DamagePct        int                `bson:"damage_pct" json:"damage_pct"`
	FortificationPct int                `bson:"fortification_pct" json:"fortification_pct"`
	SeasonNumber     int                `bson:"season_number" json:"season_number"`

	CapturedAt        *time.Time `bson:"captured_at,omitempty" json:"captured_at,omitempty"`
	LastMaintenanceAt *time.Time `bson:"last_maintenance_at,omitempty" json:"last_maintenance_at,omitempty"`
	MaintenanceDueAt  *time.Time `bson:"maintenance_due_at,omitempty" json:"maintenance_due_at,omitempty"`
	LastRaidAt        *time.Time `bson:"last_raid_at,omitempty" json:"last_raid_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Owned reports whether a colony currently holds the territory.
func (t *Territory) Owned() bool {
	return t.OwnerColonyID != 0
}

// MaintenanceOverdue reports whether the owner has let maintenance lapse.
func (t *Territory) MaintenanceOverdue(now time.Time) bool {
	return t.Owned() && t.MaintenanceDueAt != nil && now.After(*t.MaintenanceDueAt)
}

// EffectiveDefense computes the defense value a besieger must overcome:
// the base defense reduced by accumulated damage and raised by
// fortification.
//
//	effective = base * (100 - damage)/100 * (100 + fortification)/100
func (t *Territory) EffectiveDefense() int64 {
	effective := t.BaseDefense
	effective = effective * int64(MaxGauge-ClampGauge(t.DamagePct)) / 100
	effective = effective * int64(100+ClampGauge(t.FortificationPct)) / 100
	return effective
}

// EffectiveBonus computes the production bonus the holder actually
// collects: the bonus value reduced by accumulated damage.
func (t *Territory) EffectiveBonus() int64 {
	return t.BonusValue * int64(MaxGauge-ClampGauge(t.DamagePct)) / 100
}

// ClampGauge keeps a percentage gauge inside [0,100].
func ClampGauge(value int) int {
	if value < MinGauge {
		return MinGauge
	}
	if value > MaxGauge {
		return MaxGauge
	}
	return value
}

// ScoutReport is the intel returned by a raid scout.
type ScoutReport struct {
	TerritoryID      int64         `json:"territory_id"`
	OwnerColonyID    int64         `json:"owner_colony_id"`
	Type             TerritoryType `json:"type"`
	BonusValue       int64         `json:"bonus_value"`
	EffectiveBonus   int64         `json:"effective_bonus"`
	BaseDefense      int64         `json:"base_defense"`
	DamagePct        int           `json:"damage_pct"`
	FortificationPct int           `json:"fortification_pct"`
	EffectiveDefense int64         `json:"effective_defense"`
	LastRaidAt       *time.Time    `json:"last_raid_at,omitempty"`
	ScoutedAt        time.Time     `json:"scouted_at"`
}

// TerritoryCollection is the mongo collection name
const TerritoryCollection = "territories"
