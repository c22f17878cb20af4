package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTerritory_EffectiveDefense(t *testing.T) {
	tests := []struct {
		name          string
		baseDefense   int64
		damagePct     int
		fortification int
		want          int64
	}{
		{name: "pristine territory", baseDefense: 1000, want: 1000},
		{name: "damage reduces defense", baseDefense: 1000, damagePct: 30, want: 700},
		{name: "fortification raises defense", baseDefense: 1000, fortification: 50, want: 1500},
		{name: "damage and fortification combine", baseDefense: 1000, damagePct: 30, fortification: 50, want: 1050},
		{name: "fully damaged territory has no defense", baseDefense: 1000, damagePct: 100, fortification: 80, want: 0},
		{name: "out-of-range gauges are clamped", baseDefense: 1000, damagePct: -20, fortification: 250, want: 2000},
		{name: "zero base defense", baseDefense: 0, fortification: 100, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			territory := &Territory{
				BaseDefense:      tt.baseDefense,
				DamagePct:        tt.damagePct,
				FortificationPct: tt.fortification,
			}
			assert.Equal(t, tt.want, territory.EffectiveDefense())
		})
	}
}

func TestTerritory_EffectiveBonus(t *testing.T) {
	territory := &Territory{Type: TypeSpiceFields, BonusValue: 800}
	assert.Equal(t, int64(800), territory.EffectiveBonus())

	territory.DamagePct = 25
	assert.Equal(t, int64(600), territory.EffectiveBonus())

	territory.DamagePct = 100
	assert.Equal(t, int64(0), territory.EffectiveBonus())
}

func TestValidTerritoryType(t *testing.T) {
	for _, territoryType := range TerritoryTypes {
		assert.True(t, ValidTerritoryType(territoryType), "type %s should be valid", territoryType)
	}
	assert.False(t, ValidTerritoryType("volcano"))
	assert.False(t, ValidTerritoryType(""))
}

func TestClampGauge(t *testing.T) {
	assert.Equal(t, 0, ClampGauge(-5))
	assert.Equal(t, 0, ClampGauge(0))
	assert.Equal(t, 42, ClampGauge(42))
	assert.Equal(t, 100, ClampGauge(100))
	assert.Equal(t, 100, ClampGauge(130))
}

func TestTerritory_Owned(t *testing.T) {
	territory := &Territory{}
	assert.False(t, territory.Owned())

	territory.OwnerColonyID = 12
	assert.True(t, territory.Owned())
}

func TestTerritory_MaintenanceOverdue(t *testing.T) {
	now := time.Now()
	due := now.Add(-time.Hour)

	tests := []struct {
		name      string
		territory Territory
		want      bool
	}{
		{
			name:      "unowned territory never lapses",
			territory: Territory{MaintenanceDueAt: &due},
			want:      false,
		},
		{
			name:      "owned with no due date",
			territory: Territory{OwnerColonyID: 1},
			want:      false,
		},
		{
			name:      "owned past the due date",
			territory: Territory{OwnerColonyID: 1, MaintenanceDueAt: &due},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.territory.MaintenanceOverdue(now))
		})
	}

	future := now.Add(time.Hour)
	current := &Territory{OwnerColonyID: 1, MaintenanceDueAt: &future}
	assert.False(t, current.MaintenanceOverdue(now))
}
