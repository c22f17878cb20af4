package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWar_Defaults(t *testing.T) {
	cfg := War()

	assert.Equal(t, 72*time.Hour, cfg.RegistrationWindow)
	assert.Equal(t, 14*24*time.Hour, cfg.WarfareWindow)
	assert.Equal(t, 48*time.Hour, cfg.ResolutionWindow)
	assert.Equal(t, time.Duration(0), cfg.PreRegistrationLead)

	assert.Equal(t, 6, cfg.MaxTerritoriesPerColony)
	assert.Equal(t, 50, cfg.MaxTerritoriesGlobal)

	assert.Equal(t, time.Hour, cfg.SiegePreparation)
	assert.Equal(t, 24*time.Hour, cfg.SiegeMaxDuration)
	assert.Equal(t, 50, cfg.SiegeForfeitSplitPct)

	assert.Equal(t, 2, cfg.MinAllianceMembers)
	assert.Equal(t, 20, cfg.MaxAllianceMembers)

	assert.Equal(t, 3, cfg.MaxCoordinatedAttacksPerDay)
	assert.Equal(t, 20, cfg.CoordinatedBonusDamagePct)

	assert.Equal(t, 10, cfg.MaxWarStress)
	assert.Equal(t, 24*time.Hour, cfg.StressDecayInterval)
}

func TestWar_EnvironmentOverride(t *testing.T) {
	t.Setenv("WAR_MAX_COORDINATED_ATTACKS_PER_DAY", "5")
	t.Setenv("WAR_SIEGE_PREPARATION", "30m")
	t.Setenv("WAR_MIN_PARTICIPANT_STAKE", "2500")

	cfg := War()

	assert.Equal(t, 5, cfg.MaxCoordinatedAttacksPerDay)
	assert.Equal(t, 30*time.Minute, cfg.SiegePreparation)
	assert.Equal(t, int64(2500), cfg.MinParticipantStake)
}
