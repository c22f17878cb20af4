package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	colonymodels "colonywars/internal/colony/models"
	colonyservices "colonywars/internal/colony/services"
	feemodels "colonywars/internal/fees/models"
	feeservices "colonywars/internal/fees/services"
	settingsmodels "colonywars/internal/settings/models"
	settingsservices "colonywars/internal/settings/services"
	"colonywars/internal/territory/models"
	"colonywars/pkg/config"
	"colonywars/pkg/database"
	"colonywars/pkg/ratelimit"
	"colonywars/pkg/warerrors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ScoutAction names the rate-limited action consumed by raid scouting.
const ScoutAction = "raid_scout"

// Service owns the territory ledger: capture, maintenance, repair,
// fortification and scouting.
type Service struct {
	repository *Repository
	colonies   *colonyservices.Service
	fees       *feeservices.Service
	settings   *settingsservices.Service
	limiter    *ratelimit.Limiter
	redis      *database.Redis
	config     *config.WarConfig
}

// NewService creates a new territory service
func NewService(repository *Repository, colonies *colonyservices.Service, fees *feeservices.Service, settings *settingsservices.Service, limiter *ratelimit.Limiter, redis *database.Redis, cfg *config.WarConfig) *Service {
	return &Service{
		repository: repository,
		colonies:   colonies,
		fees:       fees,
		settings:   settings,
		limiter:    limiter,
		redis:      redis,
		config:     cfg,
	}
}

// GetTerritory retrieves a territory by its identifier
func (s *Service) GetTerritory(ctx context.Context, territoryID int64) (*models.Territory, error) {
	return s.repository.GetTerritory(ctx, territoryID)
}

// ListTerritories returns territories, optionally filtered by owner
func (s *Service) ListTerritories(ctx context.Context, ownerColonyID int64) ([]models.Territory, error) {
	return s.repository.ListTerritories(ctx, ownerColonyID)
}

// RegisterTerritory seeds a new unowned territory onto the war map. The
// type and bonus value are fixed here and never change afterwards.
func (s *Service) RegisterTerritory(ctx context.Context, territoryID int64, name string, territoryType models.TerritoryType, bonusValue, baseDefense int64) (*models.Territory, error) {
	if !models.ValidTerritoryType(territoryType) {
		return nil, &warerrors.ConfigurationError{Parameter: "type", Reason: fmt.Sprintf("unknown territory type %q", territoryType)}
	}
	if bonusValue <= 0 {
		return nil, &warerrors.ConfigurationError{Parameter: "bonus_value", Reason: "bonus value must be positive"}
	}
	if baseDefense <= 0 {
		return nil, &warerrors.ConfigurationError{Parameter: "base_defense", Reason: "base defense must be positive"}
	}
	territory := &models.Territory{
		TerritoryID: territoryID,
		Name:        name,
		Type:        territoryType,
		BonusValue:  bonusValue,
		BaseDefense: baseDefense,
	}
	if err := s.repository.CreateTerritory(ctx, territory); err != nil {
		return nil, fmt.Errorf("failed to register territory %d: %w", territoryID, err)
	}
	slog.InfoContext(ctx, "Territory registered",
		"territory_id", territoryID, "type", territoryType, "bonus_value", bonusValue, "base_defense", baseDefense)
	return territory, nil
}

// capturePriorityKey is the Redis key granting a colony first claim on a
// territory after a decisive siege win.
func capturePriorityKey(territoryID int64) string {
	return fmt.Sprintf("territory:capture_priority:%d", territoryID)
}

// GrantCapturePriority gives a colony exclusive claim on a territory for
// the configured priority window.
func (s *Service) GrantCapturePriority(ctx context.Context, territoryID, colonyID int64) error {
	key := capturePriorityKey(territoryID)
	if err := s.redis.Set(ctx, key, fmt.Sprintf("%d", colonyID), s.config.CapturePriorityWindow); err != nil {
		return fmt.Errorf("failed to grant capture priority: %w", err)
	}
	slog.InfoContext(ctx, "Capture priority granted",
		"territory_id", territoryID, "colony_id", colonyID, "window", s.config.CapturePriorityWindow)
	return nil
}

// CapturePriorityHolder returns the colony currently holding capture
// priority on a territory, or zero when the window is closed.
func (s *Service) CapturePriorityHolder(ctx context.Context, territoryID int64) (int64, error) {
	value, err := s.redis.Get(ctx, capturePriorityKey(territoryID))
	if err != nil {
		return 0, nil
	}
	var colonyID int64
	if _, err := fmt.Sscanf(value, "%d", &colonyID); err != nil {
		return 0, nil
	}
	return colonyID, nil
}

// CaptureTerritory transfers a territory to a colony. Unowned territories
// are free to claim; owned territories require the claimant to hold capture
// priority from a decisive siege win. Per-colony and global holding caps
// apply, and season registration is required.
func (s *Service) CaptureTerritory(ctx context.Context, territoryID, colonyID int64, wallet string, currentSeason int) (*models.Territory, error) {
	territory, err := s.repository.GetTerritory(ctx, territoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load territory %d: %w", territoryID, err)
	}

	profile, err := s.colonies.GetProfile(ctx, colonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony %d: %w", colonyID, err)
	}
	if profile.Owner != wallet {
		return nil, &warerrors.OwnershipConflictError{Resource: fmt.Sprintf("colony %d", colonyID), Owner: profile.Owner}
	}
	if !profile.RegisteredForSeason(currentSeason) {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "capture", From: "unregistered", To: "captured",
			Reason: "the colony is not registered for the current season",
		}
	}
	if territory.OwnerColonyID == colonyID {
		return territory, nil
	}

	if territory.Owned() {
		holder, err := s.CapturePriorityHolder(ctx, territoryID)
		if err != nil {
			return nil, err
		}
		if holder != colonyID {
			return nil, &warerrors.OwnershipConflictError{
				Resource: fmt.Sprintf("territory %d", territoryID),
				Owner:    fmt.Sprintf("colony %d", territory.OwnerColonyID),
			}
		}
	}

	owned, err := s.repository.CountOwnedBy(ctx, colonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to count holdings: %w", err)
	}
	if owned >= int64(s.config.MaxTerritoriesPerColony) {
		return nil, &warerrors.CapacityExceededError{Resource: "territories per colony", Limit: s.config.MaxTerritoriesPerColony}
	}
	if !territory.Owned() {
		globalOwned, err := s.repository.CountOwned(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count owned territories: %w", err)
		}
		if globalOwned >= int64(s.config.MaxTerritoriesGlobal) {
			return nil, &warerrors.CapacityExceededError{Resource: "owned territories", Limit: s.config.MaxTerritoriesGlobal}
		}
	}

	now := time.Now().UTC()
	due := now.Add(models.MaintenanceInterval)
	territory.OwnerColonyID = colonyID
	territory.SeasonNumber = currentSeason
	territory.CapturedAt = &now
	territory.LastMaintenanceAt = &now
	territory.MaintenanceDueAt = &due
	if err := s.repository.UpdateTerritory(ctx, territory); err != nil {
		return nil, fmt.Errorf("failed to capture territory %d: %w", territoryID, err)
	}
	if err := s.redis.Delete(ctx, capturePriorityKey(territoryID)); err != nil {
		slog.WarnContext(ctx, "Failed to clear capture priority", "territory_id", territoryID, "error", err)
	}

	slog.InfoContext(ctx, "Territory captured",
		"territory_id", territoryID, "colony_id", colonyID, "season", currentSeason)
	return territory, nil
}

// ReleaseTerritory returns a territory to the unowned pool, clearing its
// gauges. Used by season resolution and administrative resets.
func (s *Service) ReleaseTerritory(ctx context.Context, territoryID int64) error {
	territory, err := s.repository.GetTerritory(ctx, territoryID)
	if err != nil {
		return fmt.Errorf("failed to load territory %d: %w", territoryID, err)
	}
	territory.OwnerColonyID = 0
	territory.DamagePct = 0
	territory.FortificationPct = 0
	territory.CapturedAt = nil
	territory.LastMaintenanceAt = nil
	territory.MaintenanceDueAt = nil
	if err := s.repository.UpdateTerritory(ctx, territory); err != nil {
		return fmt.Errorf("failed to release territory %d: %w", territoryID, err)
	}
	slog.InfoContext(ctx, "Territory released", "territory_id", territoryID)
	return nil
}

// PayMaintenance pays the upkeep fee for a territory and extends its
// maintenance window. The fee scales with the owning colony's war stress:
// a stressed colony pays proportionally more to hold its ground.
func (s *Service) PayMaintenance(ctx context.Context, territoryID int64, wallet string) (*models.Territory, error) {
	if err := s.settings.RequireEnabled(ctx, settingsmodels.FeatureMaintenance); err != nil {
		return nil, err
	}

	territory, owner, err := s.ownedBy(ctx, territoryID, wallet)
	if err != nil {
		return nil, err
	}

	quantity := int64(1 + owner.WarStress)
	if err := s.fees.ApplyOperationFee(ctx, feemodels.FeeMaintenance, quantity, wallet); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	due := now.Add(models.MaintenanceInterval)
	territory.LastMaintenanceAt = &now
	territory.MaintenanceDueAt = &due
	if err := s.repository.UpdateTerritory(ctx, territory); err != nil {
		return nil, fmt.Errorf("failed to record maintenance: %w", err)
	}

	slog.InfoContext(ctx, "Maintenance paid",
		"territory_id", territoryID, "stress_multiplier", quantity, "due_at", due)
	return territory, nil
}

// RepairDamage pays the repair fee and reduces a territory's damage gauge.
func (s *Service) RepairDamage(ctx context.Context, territoryID int64, wallet string, amount int) (*models.Territory, error) {
	if amount <= 0 || amount > models.MaxGauge {
		return nil, &warerrors.ConfigurationError{Parameter: "amount", Reason: "repair amount must be between 1 and 100"}
	}
	territory, _, err := s.ownedBy(ctx, territoryID, wallet)
	if err != nil {
		return nil, err
	}
	if territory.DamagePct == 0 {
		return territory, nil
	}

	if err := s.fees.ApplyOperationFee(ctx, feemodels.FeeRepair, int64(amount), wallet); err != nil {
		return nil, err
	}

	territory.DamagePct = models.ClampGauge(territory.DamagePct - amount)
	if err := s.repository.UpdateTerritory(ctx, territory); err != nil {
		return nil, fmt.Errorf("failed to record repair: %w", err)
	}

	slog.InfoContext(ctx, "Territory repaired",
		"territory_id", territoryID, "amount", amount, "damage_pct", territory.DamagePct)
	return territory, nil
}

// Fortify pays the fortification fee and raises a territory's
// fortification gauge.
func (s *Service) Fortify(ctx context.Context, territoryID int64, wallet string, amount int) (*models.Territory, error) {
	if amount <= 0 || amount > models.MaxGauge {
		return nil, &warerrors.ConfigurationError{Parameter: "amount", Reason: "fortification amount must be between 1 and 100"}
	}
	territory, _, err := s.ownedBy(ctx, territoryID, wallet)
	if err != nil {
		return nil, err
	}
	if territory.FortificationPct >= models.MaxGauge {
		return nil, &warerrors.CapacityExceededError{Resource: "fortification", Limit: models.MaxGauge}
	}

	if err := s.fees.ApplyOperationFee(ctx, feemodels.FeeFortify, int64(amount), wallet); err != nil {
		return nil, err
	}

	territory.FortificationPct = models.ClampGauge(territory.FortificationPct + amount)
	if err := s.repository.UpdateTerritory(ctx, territory); err != nil {
		return nil, fmt.Errorf("failed to record fortification: %w", err)
	}

	slog.InfoContext(ctx, "Territory fortified",
		"territory_id", territoryID, "amount", amount, "fortification_pct", territory.FortificationPct)
	return territory, nil
}

// ApplySiegeDamage raises a territory's damage gauge after a siege outcome.
func (s *Service) ApplySiegeDamage(ctx context.Context, territoryID int64, damage int) (*models.Territory, error) {
	territory, err := s.repository.GetTerritory(ctx, territoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load territory %d: %w", territoryID, err)
	}
	territory.DamagePct = models.ClampGauge(territory.DamagePct + damage)
	if err := s.repository.UpdateTerritory(ctx, territory); err != nil {
		return nil, fmt.Errorf("failed to apply siege damage: %w", err)
	}
	return territory, nil
}

// RaidScout pays the scouting fee and returns an intel report on a
// territory. Each scouting colony is held to a per-territory cooldown.
func (s *Service) RaidScout(ctx context.Context, territoryID, scoutColonyID int64, wallet string) (*models.ScoutReport, error) {
	if err := s.settings.RequireEnabled(ctx, settingsmodels.FeatureRaidScouting); err != nil {
		return nil, err
	}

	profile, err := s.colonies.GetProfile(ctx, scoutColonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony %d: %w", scoutColonyID, err)
	}
	if profile.Owner != wallet {
		return nil, &warerrors.OwnershipConflictError{Resource: fmt.Sprintf("colony %d", scoutColonyID), Owner: profile.Owner}
	}

	territory, err := s.repository.GetTerritory(ctx, territoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load territory %d: %w", territoryID, err)
	}

	actorKey := fmt.Sprintf("colony:%d", scoutColonyID)
	actionID := fmt.Sprintf("%s:%d", ScoutAction, territoryID)
	if err := s.limiter.CheckAndConsume(ctx, actorKey, actionID, s.config.RaidScoutCooldown); err != nil {
		return nil, err
	}

	if err := s.fees.ApplyOperationFee(ctx, feemodels.FeeScout, 1, wallet); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.repository.RecordRaid(ctx, territoryID, now); err != nil {
		return nil, fmt.Errorf("failed to record raid on territory %d: %w", territoryID, err)
	}
	territory.LastRaidAt = &now

	report := &models.ScoutReport{
		TerritoryID:      territory.TerritoryID,
		OwnerColonyID:    territory.OwnerColonyID,
		Type:             territory.Type,
		BonusValue:       territory.BonusValue,
		EffectiveBonus:   territory.EffectiveBonus(),
		BaseDefense:      territory.BaseDefense,
		DamagePct:        territory.DamagePct,
		FortificationPct: territory.FortificationPct,
		EffectiveDefense: territory.EffectiveDefense(),
		LastRaidAt:       territory.LastRaidAt,
		ScoutedAt:        now,
	}
	slog.InfoContext(ctx, "Territory scouted",
		"territory_id", territoryID, "scout_colony_id", scoutColonyID)
	return report, nil
}

// SweepNeglect applies decay damage to territories with lapsed
// maintenance. Run periodically by the war clock.
func (s *Service) SweepNeglect(ctx context.Context) (int64, error) {
	touched, err := s.repository.ApplyNeglectDamage(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to apply neglect damage: %w", err)
	}
	if touched > 0 {
		slog.InfoContext(ctx, "Neglect damage applied", "territories", touched)
	}
	return touched, nil
}

// ownedBy loads a territory and verifies the caller's wallet controls the
// owning colony. Returns the territory together with the owner profile.
func (s *Service) ownedBy(ctx context.Context, territoryID int64, wallet string) (*models.Territory, *colonymodels.WarProfile, error) {
	territory, err := s.repository.GetTerritory(ctx, territoryID)
	if err == mongo.ErrNoDocuments {
		return nil, nil, err
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load territory %d: %w", territoryID, err)
	}
	if !territory.Owned() {
		return nil, nil, &warerrors.InvalidStateTransitionError{
			Entity: "territory", From: "unowned", To: "maintained", Reason: "the territory has no owner",
		}
	}

	profile, err := s.colonies.GetProfile(ctx, territory.OwnerColonyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load colony %d: %w", territory.OwnerColonyID, err)
	}
	if profile.Owner != wallet {
		return nil, nil, &warerrors.OwnershipConflictError{
			Resource: fmt.Sprintf("territory %d", territoryID),
			Owner:    profile.Owner,
		}
	}
	return territory, profile, nil
}
