package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the lifecycle state of a siege.
type Status string

const (
	StatusDeclared  Status = "declared"
	StatusResolved  Status = "resolved"
	StatusCancelled Status = "cancelled"
)

// Outcome classifies how a resolved siege ended.
type Outcome string

const (
	OutcomeAttackerDecisive Outcome = "attacker_decisive"
	OutcomeAttackerWin      Outcome = "attacker_win"
	OutcomeDefenderHolds    Outcome = "defender_holds"
	OutcomeDefenderDecisive Outcome = "defender_decisive"
)

// Damage dealt to the territory per outcome band.
const (
	DecisiveDamage = 100
	WinDamage      = 60
)

// Siege is one declared assault on a territory. The territory's effective
// defense and the attacker's committed tokens are frozen at declaration;
// combat power for both sides is read exactly once, when the defender
// commits the defense snapshot. The attacker's stake is escrowed into the
// war pool at declaration and settled with the outcome. A siege resolves
// once its warfare window closes and is auto-resolved when overdue.
type Siege struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SiegeID          string             `bson:"siege_id" json:"siege_id"`
	TerritoryID      int64              `bson:"territory_id" json:"territory_id"`
	AttackerColonyID int64              `bson:"attacker_colony_id" json:"attacker_colony_id"`
	DefenderColonyID int64              `bson:"defender_colony_id" json:"defender_colony_id"`
	SeasonNumber     int                `bson:"season_number" json:"season_number"`
	Status           Status             `bson:"status" json:"status"`
	Betrayal         bool               `bson:"betrayal" json:"betrayal"`

	Stake                int64   `bson:"stake" json:"stake"`
	PrizePool            int64   `bson:"prize_pool" json:"prize_pool"`
	AttackerTokens       []int64 `bson:"attacker_tokens,omitempty" json:"attacker_tokens,omitempty"`
	DefenseAtDeclaration int64   `bson:"defense_at_declaration" json:"defense_at_declaration"`
	BonusDamagePct       int     `bson:"bonus_damage_pct" json:"bonus_damage_pct"`
	TaskForceID          string  `bson:"task_force_id,omitempty" json:"task_force_id,omitempty"`

	DeclaredAt        time.Time  `bson:"declared_at" json:"declared_at"`
	PreparationEndsAt time.Time  `bson:"preparation_ends_at" json:"preparation_ends_at"`
	ExpiresAt         time.Time  `bson:"expires_at" json:"expires_at"`
	ResolvedAt        *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`

	Outcome         Outcome `bson:"outcome,omitempty" json:"outcome,omitempty"`
	WinnerColonyID  int64   `bson:"winner_colony_id,omitempty" json:"winner_colony_id,omitempty"`
	DamageDealt     int     `bson:"damage_dealt" json:"damage_dealt"`
	CapturePriority bool    `bson:"capture_priority" json:"capture_priority"`
}

// Terminal reports whether the siege can no longer change state.
func (s *Siege) Terminal() bool {
	return s.Status == StatusResolved || s.Status == StatusCancelled
}

// InPreparation reports whether the siege is still inside its preparation
// window at the given instant.
func (s *Siege) InPreparation(now time.Time) bool {
	return s.Status == StatusDeclared && now.Before(s.PreparationEndsAt)
}

// Overdue reports whether an unresolved siege has passed its expiry.
func (s *Siege) Overdue(now time.Time) bool {
	return s.Status == StatusDeclared && now.After(s.ExpiresAt)
}

// DefendWindowOpen reports whether the defender may still commit the
// defense snapshot: preparation is over and the siege has not expired.
func (s *Siege) DefendWindowOpen(now time.Time) bool {
	return s.Status == StatusDeclared && !now.Before(s.PreparationEndsAt) && now.Before(s.ExpiresAt)
}

// Snapshot is the write-once commitment taken when the defender answers
// the siege. It carries both combat powers, read at this single instant,
// and is never updated, so nothing either side does afterwards can change
// the resolution inputs.
type Snapshot struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SiegeID          string             `bson:"siege_id" json:"siege_id"`
	TerritoryID      int64              `bson:"territory_id" json:"territory_id"`
	DefenderColonyID int64              `bson:"defender_colony_id" json:"defender_colony_id"`
	AttackerPower    int64              `bson:"attacker_power" json:"attacker_power"`
	DefenderPower    int64              `bson:"defender_power" json:"defender_power"`
	DefenderTokens   []int64            `bson:"defender_tokens,omitempty" json:"defender_tokens,omitempty"`
	EffectiveDefense int64              `bson:"effective_defense" json:"effective_defense"`
	TakenAt          time.Time          `bson:"taken_at" json:"taken_at"`
}

// TotalDefense is the full defensive value the attacker must overcome.
func (s *Snapshot) TotalDefense() int64 {
	return s.DefenderPower + s.EffectiveDefense
}

// Resolution is the computed result of a siege.
type Resolution struct {
	Outcome         Outcome
	DamageDealt     int
	CapturePriority bool
}

// Resolve computes the siege result from the frozen attacker power and the
// total defense. The outcome is monotonic in the power ratio r =
// attacker/defense:
//
//	r < 0.8          defender decisive
//	0.8 <= r < 1.0   defender holds
//	1.0 <= r < 1.5   attacker win, partial damage
//	r >= 1.5         attacker decisive, full damage and capture priority
//
// An undefended siege (zero total defense) falls to the attacker by
// default. Ratios are compared with integer cross-multiplication so the
// band edges are exact.
func Resolve(attackerPower, totalDefense int64, bonusDamagePct int) Resolution {
	if totalDefense <= 0 {
		return applyBonus(Resolution{
			Outcome:         OutcomeAttackerDecisive,
			DamageDealt:     DecisiveDamage,
			CapturePriority: true,
		}, bonusDamagePct)
	}

	switch {
	case 2*attackerPower >= 3*totalDefense: // r >= 1.5
		return applyBonus(Resolution{
			Outcome:         OutcomeAttackerDecisive,
			DamageDealt:     DecisiveDamage,
			CapturePriority: true,
		}, bonusDamagePct)
	case attackerPower >= totalDefense: // r >= 1.0
		return applyBonus(Resolution{
			Outcome:     OutcomeAttackerWin,
			DamageDealt: WinDamage,
		}, bonusDamagePct)
	case 5*attackerPower >= 4*totalDefense: // r >= 0.8
		return Resolution{Outcome: OutcomeDefenderHolds}
	default:
		return Resolution{Outcome: OutcomeDefenderDecisive}
	}
}

// applyBonus scales attacker damage by the coordinated-attack bonus,
// capped at the decisive maximum.
func applyBonus(r Resolution, bonusDamagePct int) Resolution {
	if bonusDamagePct <= 0 || r.DamageDealt == 0 {
		return r
	}
	damage := r.DamageDealt + r.DamageDealt*bonusDamagePct/100
	if damage > DecisiveDamage {
		damage = DecisiveDamage
	}
	r.DamageDealt = damage
	return r
}

// Collection names
const (
	SiegeCollection    = "sieges"
	SnapshotCollection = "siege_snapshots"
)
