package config

import "time"

// WarConfig collects every tunable of the war subsystem. All values come
// from the environment with production defaults, so a single deployment can
// retune window lengths, caps and quotas without a rebuild.
type WarConfig struct {
	// Season windows. The three windows are contiguous and non-overlapping,
	// each expressed as a duration added to the season start time.
	RegistrationWindow time.Duration
	WarfareWindow      time.Duration
	ResolutionWindow   time.Duration

	// PreRegistrationLead opens the next-season queue this long before the
	// current season's resolution ends. Zero keeps the queue open for the
	// whole season.
	PreRegistrationLead time.Duration

	// Territory caps.
	MaxTerritoriesPerColony int
	MaxTerritoriesGlobal    int

	// Siege timing.
	SiegePreparation  time.Duration
	SiegeMaxDuration  time.Duration
	SiegeCooldown     time.Duration
	CapturePriorityWindow time.Duration

	// SiegeForfeitSplitPct is the share of a forfeited siege stake paid to
	// the winning defender's owner; the remainder feeds the season prize
	// pool.
	SiegeForfeitSplitPct int

	// Raid scouting.
	RaidScoutCooldown time.Duration

	// Alliance rules.
	MinAllianceMembers     int
	MaxAllianceMembers     int
	BetrayalCooldown       time.Duration
	BetrayalStabilityHit   int
	ForgivenessStabilityGain int
	ForgivenessVotingWindow  time.Duration
	TreatyDuration           time.Duration

	// Coordinated attacks.
	MaxCoordinatedAttacksPerDay int
	MinTaskForceParticipants    int
	MaxTaskForceParticipants    int
	MinParticipantStake         int64
	CoordinatedBonusDamagePct   int

	// Colony stress.
	MaxWarStress        int
	StressDecayInterval time.Duration
}

// War loads the war configuration from the environment.
func War() WarConfig {
	return WarConfig{
		RegistrationWindow:  GetDurationEnv("WAR_REGISTRATION_WINDOW", 72*time.Hour),
		WarfareWindow:       GetDurationEnv("WAR_WARFARE_WINDOW", 14*24*time.Hour),
		ResolutionWindow:    GetDurationEnv("WAR_RESOLUTION_WINDOW", 48*time.Hour),
		PreRegistrationLead: GetDurationEnv("WAR_PREREGISTRATION_LEAD", 0),

		MaxTerritoriesPerColony: GetIntEnv("WAR_MAX_TERRITORIES_PER_COLONY", 6),
		MaxTerritoriesGlobal:    GetIntEnv("WAR_MAX_TERRITORIES_GLOBAL", 50),

		SiegePreparation:      GetDurationEnv("WAR_SIEGE_PREPARATION", 1*time.Hour),
		SiegeMaxDuration:      GetDurationEnv("WAR_SIEGE_MAX_DURATION", 24*time.Hour),
		SiegeCooldown:         GetDurationEnv("WAR_SIEGE_COOLDOWN", 8*time.Hour),
		CapturePriorityWindow: GetDurationEnv("WAR_CAPTURE_PRIORITY_WINDOW", 1*time.Hour),
		SiegeForfeitSplitPct:  GetIntEnv("WAR_SIEGE_FORFEIT_SPLIT_PCT", 50),

		RaidScoutCooldown: GetDurationEnv("WAR_RAID_SCOUT_COOLDOWN", 30*time.Minute),

		MinAllianceMembers:       GetIntEnv("WAR_MIN_ALLIANCE_MEMBERS", 2),
		MaxAllianceMembers:       GetIntEnv("WAR_MAX_ALLIANCE_MEMBERS", 20),
		BetrayalCooldown:         GetDurationEnv("WAR_BETRAYAL_COOLDOWN", 72*time.Hour),
		BetrayalStabilityHit:     GetIntEnv("WAR_BETRAYAL_STABILITY_HIT", 50),
		ForgivenessStabilityGain: GetIntEnv("WAR_FORGIVENESS_STABILITY_GAIN", 15),
		ForgivenessVotingWindow:  GetDurationEnv("WAR_FORGIVENESS_VOTING_WINDOW", 72*time.Hour),
		TreatyDuration:           GetDurationEnv("WAR_TREATY_DURATION", 30*24*time.Hour),

		MaxCoordinatedAttacksPerDay: GetIntEnv("WAR_MAX_COORDINATED_ATTACKS_PER_DAY", 3),
		MinTaskForceParticipants:    GetIntEnv("WAR_MIN_TASKFORCE_PARTICIPANTS", 2),
		MaxTaskForceParticipants:    GetIntEnv("WAR_MAX_TASKFORCE_PARTICIPANTS", 10),
		MinParticipantStake:         GetInt64Env("WAR_MIN_PARTICIPANT_STAKE", 100),
		CoordinatedBonusDamagePct:   GetIntEnv("WAR_COORDINATED_BONUS_DAMAGE_PCT", 20),

		MaxWarStress:        GetIntEnv("WAR_MAX_STRESS", 10),
		StressDecayInterval: GetDurationEnv("WAR_STRESS_DECAY_INTERVAL", 24*time.Hour),
	}
}
