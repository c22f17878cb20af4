package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolve_OutcomeBands(t *testing.T) {
	tests := []struct {
		name          string
		attackerPower int64
		totalDefense  int64
		wantOutcome   Outcome
		wantDamage    int
		wantPriority  bool
	}{
		{
			name:          "overwhelming attacker is decisive",
			attackerPower: 300,
			totalDefense:  100,
			wantOutcome:   OutcomeAttackerDecisive,
			wantDamage:    DecisiveDamage,
			wantPriority:  true,
		},
		{
			name:          "exactly 1.5x is decisive",
			attackerPower: 150,
			totalDefense:  100,
			wantOutcome:   OutcomeAttackerDecisive,
			wantDamage:    DecisiveDamage,
			wantPriority:  true,
		},
		{
			name:          "just under 1.5x is a plain win",
			attackerPower: 149,
			totalDefense:  100,
			wantOutcome:   OutcomeAttackerWin,
			wantDamage:    WinDamage,
		},
		{
			name:          "exact parity goes to the attacker",
			attackerPower: 100,
			totalDefense:  100,
			wantOutcome:   OutcomeAttackerWin,
			wantDamage:    WinDamage,
		},
		{
			name:          "just under parity holds",
			attackerPower: 99,
			totalDefense:  100,
			wantOutcome:   OutcomeDefenderHolds,
		},
		{
			name:          "exactly 0.8x holds",
			attackerPower: 80,
			totalDefense:  100,
			wantOutcome:   OutcomeDefenderHolds,
		},
		{
			name:          "below 0.8x is defender decisive",
			attackerPower: 79,
			totalDefense:  100,
			wantOutcome:   OutcomeDefenderDecisive,
		},
		{
			name:          "zero attacker against a defended territory",
			attackerPower: 0,
			totalDefense:  100,
			wantOutcome:   OutcomeDefenderDecisive,
		},
		{
			name:          "undefended territory falls by default",
			attackerPower: 1,
			totalDefense:  0,
			wantOutcome:   OutcomeAttackerDecisive,
			wantDamage:    DecisiveDamage,
			wantPriority:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.attackerPower, tt.totalDefense, 0)
			assert.Equal(t, tt.wantOutcome, got.Outcome)
			assert.Equal(t, tt.wantDamage, got.DamageDealt)
			assert.Equal(t, tt.wantPriority, got.CapturePriority)
		})
	}
}

func TestResolve_BandMonotonicity(t *testing.T) {
	// Walking attacker power upward against a fixed defense must never
	// move the outcome in the defender's favor.
	rank := map[Outcome]int{
		OutcomeDefenderDecisive: 0,
		OutcomeDefenderHolds:    1,
		OutcomeAttackerWin:      2,
		OutcomeAttackerDecisive: 3,
	}

	const defense = 400
	prev := -1
	for power := int64(0); power <= 800; power += 10 {
		got := Resolve(power, defense, 0)
		current := rank[got.Outcome]
		assert.GreaterOrEqual(t, current, prev, "outcome regressed at power %d", power)
		prev = current
	}
}

func TestResolve_CoordinatedBonus(t *testing.T) {
	tests := []struct {
		name          string
		attackerPower int64
		totalDefense  int64
		bonusPct      int
		wantDamage    int
	}{
		{
			name:          "bonus scales partial damage",
			attackerPower: 100,
			totalDefense:  100,
			bonusPct:      25,
			wantDamage:    75, // 60 + 60*25/100
		},
		{
			name:          "bonus never exceeds the decisive cap",
			attackerPower: 100,
			totalDefense:  100,
			bonusPct:      100,
			wantDamage:    DecisiveDamage,
		},
		{
			name:          "decisive damage is already capped",
			attackerPower: 300,
			totalDefense:  100,
			bonusPct:      25,
			wantDamage:    DecisiveDamage,
		},
		{
			name:          "bonus does not conjure damage from a held siege",
			attackerPower: 80,
			totalDefense:  100,
			bonusPct:      50,
			wantDamage:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.attackerPower, tt.totalDefense, tt.bonusPct)
			assert.Equal(t, tt.wantDamage, got.DamageDealt)
		})
	}
}

func TestSiege_Lifecycle(t *testing.T) {
	now := time.Now()
	siege := &Siege{
		Status:            StatusDeclared,
		PreparationEndsAt: now.Add(time.Hour),
		ExpiresAt:         now.Add(24 * time.Hour),
	}

	assert.False(t, siege.Terminal())
	assert.True(t, siege.InPreparation(now))
	assert.False(t, siege.InPreparation(now.Add(2*time.Hour)))
	assert.False(t, siege.Overdue(now))
	assert.True(t, siege.Overdue(now.Add(25*time.Hour)))

	siege.Status = StatusResolved
	assert.True(t, siege.Terminal())
	assert.False(t, siege.InPreparation(now))
	assert.False(t, siege.Overdue(now.Add(25*time.Hour)))

	siege.Status = StatusCancelled
	assert.True(t, siege.Terminal())
}

func TestSiege_DefendWindow(t *testing.T) {
	now := time.Now()
	siege := &Siege{
		Status:            StatusDeclared,
		PreparationEndsAt: now.Add(time.Hour),
		ExpiresAt:         now.Add(24 * time.Hour),
	}

	assert.False(t, siege.DefendWindowOpen(now), "closed during preparation")
	assert.True(t, siege.DefendWindowOpen(siege.PreparationEndsAt), "opens the instant preparation ends")
	assert.True(t, siege.DefendWindowOpen(now.Add(12*time.Hour)))
	assert.False(t, siege.DefendWindowOpen(siege.ExpiresAt), "closed at expiry")

	siege.Status = StatusResolved
	assert.False(t, siege.DefendWindowOpen(now.Add(12*time.Hour)))
}

func TestSnapshot_TotalDefense(t *testing.T) {
	snapshot := &Snapshot{
		AttackerPower:    640,
		DefenderPower:    120,
		EffectiveDefense: 380,
	}
	assert.Equal(t, int64(500), snapshot.TotalDefense(), "attacker power never counts toward defense")
}
