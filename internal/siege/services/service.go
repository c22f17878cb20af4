package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	allianceservices "colonywars/internal/alliance/services"
	colonymodels "colonywars/internal/colony/models"
	colonyservices "colonywars/internal/colony/services"
	feemodels "colonywars/internal/fees/models"
	feeservices "colonywars/internal/fees/services"
	seasonmodels "colonywars/internal/season/models"
	seasonservices "colonywars/internal/season/services"
	settingsmodels "colonywars/internal/settings/models"
	settingsservices "colonywars/internal/settings/services"
	"colonywars/internal/siege/models"
	territorymodels "colonywars/internal/territory/models"
	territoryservices "colonywars/internal/territory/services"
	"colonywars/pkg/config"
	"colonywars/pkg/gamebridge"
	"colonywars/pkg/ratelimit"
	"colonywars/pkg/warerrors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// SiegeAction names the rate-limited action consumed when declaring a
// siege on a territory.
const SiegeAction = "siege"

// overdueBatchSize bounds each auto-resolve sweep batch.
const overdueBatchSize = 50

// DeclareOptions carries the optional parameters of a siege declaration.
// Coordinated attacks add bonus damage and a task force reference.
type DeclareOptions struct {
	BonusDamagePct int
	TaskForceID    string
}

// siegeStore is the slice of the repository the siege state machine uses.
type siegeStore interface {
	CreateSiege(ctx context.Context, siege *models.Siege) error
	GetSiege(ctx context.Context, siegeID string) (*models.Siege, error)
	GetActiveSiegeByTerritory(ctx context.Context, territoryID int64) (*models.Siege, error)
	UpdateSiegeOutcome(ctx context.Context, siege *models.Siege) error
	ListOverdue(ctx context.Context, now time.Time, limit int64) ([]models.Siege, error)
	ListSiegesByColony(ctx context.Context, colonyID int64) ([]models.Siege, error)
	InsertSnapshot(ctx context.Context, snapshot *models.Snapshot) error
	GetSnapshot(ctx context.Context, siegeID string) (*models.Snapshot, error)
}

// colonyDirectory is the slice of the colony registry sieges read and write.
type colonyDirectory interface {
	GetProfile(ctx context.Context, colonyID int64) (*colonymodels.WarProfile, error)
	ApplyCombatStress(ctx context.Context, colonyID int64, delta int) error
	SetReputation(ctx context.Context, colonyID int64, tier colonymodels.ReputationTier) error
}

// territoryBoard is the slice of the territory ledger siege outcomes touch.
type territoryBoard interface {
	GetTerritory(ctx context.Context, territoryID int64) (*territorymodels.Territory, error)
	ApplySiegeDamage(ctx context.Context, territoryID int64, damage int) (*territorymodels.Territory, error)
	GrantCapturePriority(ctx context.Context, territoryID, colonyID int64) error
}

// seasonBoard is the slice of the season service sieges depend on.
type seasonBoard interface {
	CurrentPhase(ctx context.Context) (*seasonmodels.Season, seasonmodels.Phase, error)
	CreditPrizePool(ctx context.Context, seasonNumber int, amount int64) error
}

// Service owns the siege state machine: declaration, the write-once
// defense snapshot, and resolution.
type Service struct {
	repository  siegeStore
	territories territoryBoard
	colonies    colonyDirectory
	alliances   *allianceservices.Service
	seasons     seasonBoard
	fees        *feeservices.Service
	settings    *settingsservices.Service
	limiter     *ratelimit.Limiter
	bridge      gamebridge.Bridge
	config      *config.WarConfig
}

// NewService creates a new siege service
func NewService(repository *Repository, territories *territoryservices.Service, colonies *colonyservices.Service, alliances *allianceservices.Service, seasons *seasonservices.Service, fees *feeservices.Service, settings *settingsservices.Service, limiter *ratelimit.Limiter, bridge gamebridge.Bridge, cfg *config.WarConfig) *Service {
	return &Service{
		repository:  repository,
		territories: territories,
		colonies:    colonies,
		alliances:   alliances,
		seasons:     seasons,
		fees:        fees,
		settings:    settings,
		limiter:     limiter,
		bridge:      bridge,
		config:      cfg,
	}
}

// GetSiege retrieves a siege by its identifier
func (s *Service) GetSiege(ctx context.Context, siegeID string) (*models.Siege, error) {
	return s.repository.GetSiege(ctx, siegeID)
}

// ListSiegesByColony returns the siege history of a colony
func (s *Service) ListSiegesByColony(ctx context.Context, colonyID int64) ([]models.Siege, error) {
	return s.repository.ListSiegesByColony(ctx, colonyID)
}

// DeclareSiege opens a siege against an owned territory. The territory's
// effective defense and the attacker's committed tokens are frozen here;
// combat power is not read until the defend step. The stake is escrowed
// into the war pool and rides on the outcome. Betrayal detection runs
// before the declaration is accepted: striking a protected allied colony
// expels the attacker and marks it, but the siege itself still proceeds.
func (s *Service) DeclareSiege(ctx context.Context, territoryID, attackerColonyID int64, wallet string, stake int64, tokenIDs []int64, opts DeclareOptions) (*models.Siege, error) {
	if err := s.settings.RequireEnabled(ctx, settingsmodels.FeatureSieges); err != nil {
		return nil, err
	}

	season, phase, err := s.seasons.CurrentPhase(ctx)
	if err != nil {
		return nil, err
	}
	if phase != seasonmodels.PhaseWarfare {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "siege", From: string(phase), To: "declared",
			Reason: "sieges may only be declared during the warfare phase",
		}
	}

	territory, err := s.territories.GetTerritory(ctx, territoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load territory %d: %w", territoryID, err)
	}
	if !territory.Owned() {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "siege", From: "unowned", To: "declared",
			Reason: "unowned territories are captured, not besieged",
		}
	}
	if territory.OwnerColonyID == attackerColonyID {
		return nil, &warerrors.ConfigurationError{Parameter: "territory_id", Reason: "a colony cannot besiege its own territory"}
	}

	attacker, err := s.colonies.GetProfile(ctx, attackerColonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony %d: %w", attackerColonyID, err)
	}
	if attacker.Owner != wallet {
		return nil, &warerrors.OwnershipConflictError{Resource: fmt.Sprintf("colony %d", attackerColonyID), Owner: attacker.Owner}
	}
	if !attacker.RegisteredForSeason(season.SeasonNumber) {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "siege", From: "unregistered", To: "declared",
			Reason: "the attacker is not registered for the current season",
		}
	}
	if stake < s.config.MinParticipantStake {
		return nil, &warerrors.InsufficientStakeError{Required: s.config.MinParticipantStake, Provided: stake}
	}

	if remaining, err := s.alliances.BetrayalCooldownRemaining(ctx, attackerColonyID); err != nil {
		return nil, err
	} else if remaining > 0 {
		return nil, &warerrors.CooldownActiveError{
			ActorKey:  fmt.Sprintf("colony:%d", attackerColonyID),
			ActionID:  allianceservices.BetrayalAction,
			Remaining: remaining,
		}
	}

	if _, err := s.repository.GetActiveSiegeByTerritory(ctx, territoryID); err == nil {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "siege", From: "active", To: "declared",
			Reason: "the territory is already under siege",
		}
	} else if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to check active sieges: %w", err)
	}

	actorKey := fmt.Sprintf("colony:%d", attackerColonyID)
	actionID := fmt.Sprintf("%s:%d", SiegeAction, territoryID)
	if err := s.limiter.CheckAndConsume(ctx, actorKey, actionID, s.config.SiegeCooldown); err != nil {
		return nil, err
	}

	alliance, betrayal, err := s.alliances.CheckBetrayal(ctx, attackerColonyID, territory.OwnerColonyID, season.SeasonNumber)
	if err != nil {
		return nil, err
	}
	if betrayal {
		if err := s.alliances.ProcessBetrayal(ctx, alliance, attackerColonyID); err != nil {
			return nil, err
		}
	}
	if err := s.alliances.RecordHostileAct(ctx, attackerColonyID, territory.OwnerColonyID); err != nil {
		return nil, err
	}

	attackerTokens, err := s.custodyTokens(ctx, attackerColonyID, wallet, tokenIDs)
	if err != nil {
		return nil, err
	}

	if err := s.fees.ApplyOperationFee(ctx, feemodels.FeeSiege, 1, wallet); err != nil {
		return nil, err
	}
	if err := s.bridge.Transfer(ctx, colonyservices.StakeCurrency, stake, wallet, colonyservices.WarPoolWallet); err != nil {
		return nil, fmt.Errorf("failed to escrow siege stake: %w", err)
	}

	now := time.Now().UTC()
	siege := &models.Siege{
		SiegeID:              uuid.New().String(),
		TerritoryID:          territoryID,
		AttackerColonyID:     attackerColonyID,
		DefenderColonyID:     territory.OwnerColonyID,
		SeasonNumber:         season.SeasonNumber,
		Status:               models.StatusDeclared,
		Betrayal:             betrayal,
		Stake:                stake,
		PrizePool:            stake,
		AttackerTokens:       attackerTokens,
		DefenseAtDeclaration: territory.EffectiveDefense(),
		BonusDamagePct:       opts.BonusDamagePct,
		TaskForceID:          opts.TaskForceID,
		DeclaredAt:           now,
		PreparationEndsAt:    now.Add(s.config.SiegePreparation),
		ExpiresAt:            now.Add(s.config.SiegeMaxDuration),
	}
	if err := s.repository.CreateSiege(ctx, siege); err != nil {
		return nil, fmt.Errorf("failed to create siege: %w", err)
	}

	if err := s.colonies.ApplyCombatStress(ctx, attackerColonyID, 1); err != nil {
		slog.WarnContext(ctx, "Failed to apply attacker stress", "colony_id", attackerColonyID, "error", err)
	}
	if err := s.colonies.ApplyCombatStress(ctx, territory.OwnerColonyID, 1); err != nil {
		slog.WarnContext(ctx, "Failed to apply defender stress", "colony_id", territory.OwnerColonyID, "error", err)
	}

	slog.InfoContext(ctx, "Siege declared",
		"siege_id", siege.SiegeID,
		"territory_id", territoryID,
		"attacker_colony_id", attackerColonyID,
		"defender_colony_id", territory.OwnerColonyID,
		"stake", stake,
		"betrayal", betrayal)
	return siege, nil
}

// Defend records the defender's one-time defense snapshot. It is only
// valid once the preparation window has elapsed, and it is the single
// point where combat power is read: both the attacker's frozen token set
// and the defender's committed tokens are priced here, exactly once. The
// snapshot is write-once; a second attempt fails, and nothing either side
// does afterwards counts toward the resolution.
func (s *Service) Defend(ctx context.Context, siegeID, wallet string, tokenIDs []int64) (*models.Snapshot, error) {
	siege, err := s.repository.GetSiege(ctx, siegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load siege %s: %w", siegeID, err)
	}
	if siege.Terminal() {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "siege", From: string(siege.Status), To: "defended",
			Reason: "the siege is already settled",
		}
	}

	now := time.Now().UTC()
	if siege.InPreparation(now) {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "siege", From: "preparation", To: "defended",
			Reason: fmt.Sprintf("the defense window opens at %s", siege.PreparationEndsAt.Format(time.RFC3339)),
		}
	}
	if !siege.DefendWindowOpen(now) {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "siege", From: "expired", To: "defended",
			Reason: "the siege expired undefended",
		}
	}

	defender, err := s.colonies.GetProfile(ctx, siege.DefenderColonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony %d: %w", siege.DefenderColonyID, err)
	}
	if defender.Owner != wallet {
		return nil, &warerrors.OwnershipConflictError{Resource: fmt.Sprintf("siege %s defense", siegeID), Owner: defender.Owner}
	}

	if _, err := s.repository.GetSnapshot(ctx, siegeID); err == nil {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "siege", From: "defended", To: "defended",
			Reason: "the defense snapshot is write-once",
		}
	} else if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to check snapshot: %w", err)
	}

	defenderTokens, err := s.custodyTokens(ctx, siege.DefenderColonyID, wallet, tokenIDs)
	if err != nil {
		return nil, err
	}
	attackerPower, err := s.power(ctx, siege.AttackerColonyID, siege.AttackerTokens)
	if err != nil {
		return nil, err
	}
	defenderPower, err := s.power(ctx, siege.DefenderColonyID, defenderTokens)
	if err != nil {
		return nil, err
	}

	snapshot := &models.Snapshot{
		SiegeID:          siegeID,
		TerritoryID:      siege.TerritoryID,
		DefenderColonyID: siege.DefenderColonyID,
		AttackerPower:    attackerPower,
		DefenderPower:    defenderPower,
		DefenderTokens:   defenderTokens,
		EffectiveDefense: siege.DefenseAtDeclaration,
		TakenAt:          now,
	}
	if err := s.repository.InsertSnapshot(ctx, snapshot); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &warerrors.InvalidStateTransitionError{
				Entity: "siege", From: "defended", To: "defended",
				Reason: "the defense snapshot is write-once",
			}
		}
		return nil, fmt.Errorf("failed to record defense snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Defense snapshot recorded",
		"siege_id", siegeID,
		"defender_colony_id", siege.DefenderColonyID,
		"attacker_power", attackerPower,
		"defender_power", defenderPower)
	return snapshot, nil
}

// ResolveSiege settles a siege once its warfare window has closed.
// Resolving an already resolved siege returns the stored outcome without
// reprocessing. A siege whose parties let their season registration lapse
// mid-fight is cancelled instead, with the stake refunded. An undefended
// siege falls to the attacker by default.
func (s *Service) ResolveSiege(ctx context.Context, siegeID string) (*models.Siege, error) {
	siege, err := s.repository.GetSiege(ctx, siegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load siege %s: %w", siegeID, err)
	}
	if siege.Status == models.StatusResolved {
		return siege, nil
	}
	if siege.Status == models.StatusCancelled {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "siege", From: "cancelled", To: "resolved",
			Reason: "a cancelled siege has no outcome",
		}
	}

	now := time.Now().UTC()
	if now.Before(siege.ExpiresAt) {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "siege", From: "active", To: "resolved",
			Reason: fmt.Sprintf("the warfare window runs until %s", siege.ExpiresAt.Format(time.RFC3339)),
		}
	}

	attacker, err := s.colonies.GetProfile(ctx, siege.AttackerColonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony %d: %w", siege.AttackerColonyID, err)
	}
	defender, err := s.colonies.GetProfile(ctx, siege.DefenderColonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony %d: %w", siege.DefenderColonyID, err)
	}
	if !attacker.RegisteredForSeason(siege.SeasonNumber) || !defender.RegisteredForSeason(siege.SeasonNumber) {
		siege.Status = models.StatusCancelled
		siege.ResolvedAt = &now
		if err := s.repository.UpdateSiegeOutcome(ctx, siege); err != nil {
			if err == mongo.ErrNoDocuments {
				return s.repository.GetSiege(ctx, siegeID)
			}
			return nil, fmt.Errorf("failed to cancel siege: %w", err)
		}
		s.refundStake(ctx, siege, attacker.Owner)
		slog.InfoContext(ctx, "Siege cancelled, registration lapsed mid-siege",
			"siege_id", siegeID,
			"attacker_registered", attacker.RegisteredForSeason(siege.SeasonNumber),
			"defender_registered", defender.RegisteredForSeason(siege.SeasonNumber))
		return siege, nil
	}

	var attackerPower, totalDefense int64
	snapshot, err := s.repository.GetSnapshot(ctx, siegeID)
	switch {
	case err == nil:
		attackerPower = snapshot.AttackerPower
		totalDefense = snapshot.TotalDefense()
	case err == mongo.ErrNoDocuments:
		// Never defended; Resolve treats zero defense as an attacker
		// win by default.
	default:
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	resolution := models.Resolve(attackerPower, totalDefense, siege.BonusDamagePct)
	siege.Status = models.StatusResolved
	siege.ResolvedAt = &now
	siege.Outcome = resolution.Outcome
	siege.DamageDealt = resolution.DamageDealt
	siege.CapturePriority = resolution.CapturePriority
	siege.WinnerColonyID = siege.DefenderColonyID
	if resolution.Outcome == models.OutcomeAttackerDecisive || resolution.Outcome == models.OutcomeAttackerWin {
		siege.WinnerColonyID = siege.AttackerColonyID
	}

	if err := s.repository.UpdateSiegeOutcome(ctx, siege); err != nil {
		if err == mongo.ErrNoDocuments {
			// Lost the race to another resolver; return what they wrote.
			return s.repository.GetSiege(ctx, siegeID)
		}
		return nil, fmt.Errorf("failed to record siege outcome: %w", err)
	}

	s.settleStake(ctx, siege, attacker.Owner, defender.Owner)

	if err := s.applyConsequences(ctx, siege); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Siege resolved",
		"siege_id", siegeID,
		"outcome", siege.Outcome,
		"winner_colony_id", siege.WinnerColonyID,
		"damage_dealt", siege.DamageDealt,
		"capture_priority", siege.CapturePriority,
		"defended", totalDefense > 0)
	return siege, nil
}

// applyConsequences propagates a resolved siege's outcome to the territory
// and the two colonies.
func (s *Service) applyConsequences(ctx context.Context, siege *models.Siege) error {
	if siege.DamageDealt > 0 {
		if _, err := s.territories.ApplySiegeDamage(ctx, siege.TerritoryID, siege.DamageDealt); err != nil {
			return err
		}
	}
	if siege.CapturePriority {
		if err := s.territories.GrantCapturePriority(ctx, siege.TerritoryID, siege.AttackerColonyID); err != nil {
			return err
		}
	}

	loser := siege.AttackerColonyID
	switch siege.Outcome {
	case models.OutcomeAttackerDecisive:
		loser = siege.DefenderColonyID
		if err := s.colonies.SetReputation(ctx, siege.AttackerColonyID, colonymodels.ReputationFeared); err != nil {
			slog.WarnContext(ctx, "Failed to update attacker reputation", "colony_id", siege.AttackerColonyID, "error", err)
		}
	case models.OutcomeAttackerWin:
		loser = siege.DefenderColonyID
	case models.OutcomeDefenderDecisive:
		if err := s.colonies.SetReputation(ctx, siege.DefenderColonyID, colonymodels.ReputationHonorable); err != nil {
			slog.WarnContext(ctx, "Failed to update defender reputation", "colony_id", siege.DefenderColonyID, "error", err)
		}
	}
	if err := s.colonies.ApplyCombatStress(ctx, loser, 1); err != nil {
		slog.WarnContext(ctx, "Failed to apply loser stress", "colony_id", loser, "error", err)
	}
	return nil
}

// CancelSiege withdraws a declared siege and refunds the escrowed stake.
// The attacker's wallet may cancel only during the preparation window; an
// administrator override may cancel any unresolved siege.
func (s *Service) CancelSiege(ctx context.Context, siegeID, wallet string, override bool) (*models.Siege, error) {
	siege, err := s.repository.GetSiege(ctx, siegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load siege %s: %w", siegeID, err)
	}
	if siege.Terminal() {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "siege", From: string(siege.Status), To: "cancelled",
			Reason: "the siege is already settled",
		}
	}

	attacker, err := s.colonies.GetProfile(ctx, siege.AttackerColonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony %d: %w", siege.AttackerColonyID, err)
	}

	now := time.Now().UTC()
	if !override {
		if attacker.Owner != wallet {
			return nil, &warerrors.OwnershipConflictError{Resource: fmt.Sprintf("siege %s", siegeID), Owner: attacker.Owner}
		}
		if !siege.InPreparation(now) {
			return nil, &warerrors.InvalidStateTransitionError{
				Entity: "siege", From: "active", To: "cancelled",
				Reason: "a siege can only be withdrawn during preparation",
			}
		}
	}

	siege.Status = models.StatusCancelled
	siege.ResolvedAt = &now
	if err := s.repository.UpdateSiegeOutcome(ctx, siege); err != nil {
		return nil, fmt.Errorf("failed to cancel siege: %w", err)
	}
	s.refundStake(ctx, siege, attacker.Owner)

	slog.InfoContext(ctx, "Siege cancelled", "siege_id", siegeID, "override", override)
	return siege, nil
}

// ResolveOverdue settles declared sieges past their expiry. Run
// periodically by the war clock.
func (s *Service) ResolveOverdue(ctx context.Context) (int, error) {
	resolved := 0
	for {
		batch, err := s.repository.ListOverdue(ctx, time.Now().UTC(), overdueBatchSize)
		if err != nil {
			return resolved, fmt.Errorf("failed to list overdue sieges: %w", err)
		}
		if len(batch) == 0 {
			return resolved, nil
		}
		for _, siege := range batch {
			if _, err := s.ResolveSiege(ctx, siege.SiegeID); err != nil {
				slog.WarnContext(ctx, "Failed to auto-resolve siege", "siege_id", siege.SiegeID, "error", err)
				continue
			}
			resolved++
		}
		if len(batch) < overdueBatchSize {
			return resolved, nil
		}
	}
}

// custodyTokens resolves the token set a colony commits to battle. An
// empty request falls back to the colony's full staked set; an explicit
// list is custody-checked against the acting wallet.
func (s *Service) custodyTokens(ctx context.Context, colonyID int64, wallet string, tokenIDs []int64) ([]int64, error) {
	if len(tokenIDs) == 0 {
		tokens, err := s.bridge.StakedTokens(ctx, colonyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load staked tokens for colony %d: %w", colonyID, err)
		}
		return tokens, nil
	}
	if err := s.bridge.ValidateOwnership(ctx, wallet, tokenIDs); err != nil {
		return nil, fmt.Errorf("token custody check failed for colony %d: %w", colonyID, err)
	}
	return tokenIDs, nil
}

// power asks the game bridge for the combat power of a committed token set.
func (s *Service) power(ctx context.Context, colonyID int64, tokenIDs []int64) (int64, error) {
	vector, err := s.bridge.CombatPower(ctx, colonyID, tokenIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to compute combat power for colony %d: %w", colonyID, err)
	}
	return vector.TotalPower, nil
}

// settleStake releases the escrowed wager once the outcome is recorded.
// The attacker's stake comes back on a win; on a defender win the
// configured share of the forfeit goes to the defender's owner and the
// remainder feeds the season prize pool. Settlement failures are logged,
// not returned: the outcome is already committed and the pool movement
// can be replayed.
func (s *Service) settleStake(ctx context.Context, siege *models.Siege, attackerWallet, defenderWallet string) {
	if siege.Stake <= 0 {
		return
	}
	if siege.WinnerColonyID == siege.AttackerColonyID {
		if err := s.bridge.Transfer(ctx, colonyservices.StakeCurrency, siege.Stake, colonyservices.WarPoolWallet, attackerWallet); err != nil {
			slog.ErrorContext(ctx, "Failed to return siege stake", "siege_id", siege.SiegeID, "error", err)
		}
		return
	}

	share := siege.Stake * int64(s.config.SiegeForfeitSplitPct) / 100
	if share > 0 {
		if err := s.bridge.Transfer(ctx, colonyservices.StakeCurrency, share, colonyservices.WarPoolWallet, defenderWallet); err != nil {
			slog.ErrorContext(ctx, "Failed to pay forfeited siege stake", "siege_id", siege.SiegeID, "error", err)
			return
		}
	}
	if rest := siege.Stake - share; rest > 0 {
		if err := s.seasons.CreditPrizePool(ctx, siege.SeasonNumber, rest); err != nil {
			slog.ErrorContext(ctx, "Failed to credit season prize pool", "siege_id", siege.SiegeID, "error", err)
		}
	}
}

// refundStake returns the escrowed wager to the attacker on cancellation.
func (s *Service) refundStake(ctx context.Context, siege *models.Siege, wallet string) {
	if siege.Stake <= 0 {
		return
	}
	if err := s.bridge.Transfer(ctx, colonyservices.StakeCurrency, siege.Stake, colonyservices.WarPoolWallet, wallet); err != nil {
		slog.ErrorContext(ctx, "Failed to refund siege stake", "siege_id", siege.SiegeID, "error", err)
	}
}
