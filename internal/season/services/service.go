package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	colonyservices "colonywars/internal/colony/services"
	"colonywars/internal/season/models"
	settingsmodels "colonywars/internal/settings/models"
	settingsservices "colonywars/internal/settings/services"
	"colonywars/pkg/config"
	"colonywars/pkg/gamebridge"
	"colonywars/pkg/warerrors"

	"go.mongodb.org/mongo-driver/mongo"
)

// activationBatchSize bounds each pre-registration batch so a large queue
// never holds one long database round trip.
const activationBatchSize = 100

// preRegQueue is the slice of the repository the activation path reads.
type preRegQueue interface {
	ListOpen(ctx context.Context, seasonNumber int, limit int64) ([]models.PreRegistration, error)
	MarkActivated(ctx context.Context, seasonNumber int, colonyID int64) error
}

// seasonRegistrar is the slice of the colony registry the activation path
// writes through.
type seasonRegistrar interface {
	MarkRegistered(ctx context.Context, colonyID int64, season int) error
	CreditEscrowedStake(ctx context.Context, colonyID int64, amount int64) error
}

// Service owns the season lifecycle and colony registration.
type Service struct {
	repository *Repository
	colonies   *colonyservices.Service
	settings   *settingsservices.Service
	treasury   gamebridge.Treasury
	config     *config.WarConfig
}

// NewService creates a new season service
func NewService(repository *Repository, colonies *colonyservices.Service, settings *settingsservices.Service, treasury gamebridge.Treasury, cfg *config.WarConfig) *Service {
	return &Service{
		repository: repository,
		colonies:   colonies,
		settings:   settings,
		treasury:   treasury,
		config:     cfg,
	}
}

// CurrentSeason returns the latest season. Returns a NotInitializedError
// before any season has been started.
func (s *Service) CurrentSeason(ctx context.Context) (*models.Season, error) {
	season, err := s.repository.GetLatestSeason(ctx)
	if err == mongo.ErrNoDocuments {
		return nil, &warerrors.NotInitializedError{Component: "season"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load current season: %w", err)
	}
	return season, nil
}

// CurrentPhase returns the latest season together with its phase right now,
// derived from the season's fixed windows rather than the stored phase.
func (s *Service) CurrentPhase(ctx context.Context) (*models.Season, models.Phase, error) {
	season, err := s.CurrentSeason(ctx)
	if err != nil {
		return nil, "", err
	}
	return season, season.PhaseAt(time.Now().UTC()), nil
}

// StartSeason begins the next war season. The previous season must have
// completed. The first batch of queued pre-registrations is activated
// right after the season record is created; the rest drain through the
// war clock sweep, keeping season start cheap regardless of backlog.
func (s *Service) StartSeason(ctx context.Context) (*models.Season, error) {
	seasonNumber := 1
	latest, err := s.repository.GetLatestSeason(ctx)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to load latest season: %w", err)
	}
	if err == nil {
		if latest.PhaseAt(time.Now().UTC()) != models.PhaseCompleted {
			return nil, &warerrors.InvalidStateTransitionError{
				Entity: "season",
				From:   string(latest.Phase),
				To:     "started",
				Reason: fmt.Sprintf("season %d is still running", latest.SeasonNumber),
			}
		}
		seasonNumber = latest.SeasonNumber + 1
	}

	now := time.Now().UTC()
	season := &models.Season{
		SeasonNumber:       seasonNumber,
		Phase:              models.PhaseRegistration,
		StartedAt:          now,
		RegistrationEndsAt: now.Add(s.config.RegistrationWindow),
		WarfareEndsAt:      now.Add(s.config.RegistrationWindow + s.config.WarfareWindow),
		ResolutionEndsAt:   now.Add(s.config.RegistrationWindow + s.config.WarfareWindow + s.config.ResolutionWindow),
	}
	if err := s.repository.CreateSeason(ctx, season); err != nil {
		return nil, fmt.Errorf("failed to create season %d: %w", seasonNumber, err)
	}

	slog.InfoContext(ctx, "Season started",
		"season", seasonNumber,
		"registration_ends_at", season.RegistrationEndsAt,
		"warfare_ends_at", season.WarfareEndsAt)

	// Season start only pays for the first batch; the war clock sweep
	// drains whatever backlog remains.
	activated, err := s.ActivatePreRegistrations(ctx, seasonNumber, activationBatchSize)
	if err != nil {
		return nil, err
	}
	if activated > 0 {
		slog.InfoContext(ctx, "Pre-registrations activated at season start", "season", seasonNumber, "colonies", activated)
	}
	return season, nil
}

// RegisterColony registers a colony for the current season. Only allowed
// while the season is in its registration phase.
func (s *Service) RegisterColony(ctx context.Context, colonyID int64, wallet string) (*models.Season, error) {
	if err := s.settings.RequireEnabled(ctx, settingsmodels.FeatureRegistration); err != nil {
		return nil, err
	}

	season, phase, err := s.CurrentPhase(ctx)
	if err != nil {
		return nil, err
	}
	if phase != models.PhaseRegistration {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "registration",
			From:   string(phase),
			To:     "registered",
			Reason: "registration is only open during the registration phase",
		}
	}

	profile, err := s.colonies.EnsureProfile(ctx, colonyID, wallet)
	if err != nil {
		return nil, err
	}
	if profile.Owner != wallet {
		return nil, &warerrors.OwnershipConflictError{Resource: fmt.Sprintf("colony %d", colonyID), Owner: profile.Owner}
	}
	if profile.DefensiveStake < s.config.MinParticipantStake {
		return nil, &warerrors.InsufficientStakeError{Required: s.config.MinParticipantStake, Provided: profile.DefensiveStake}
	}

	if err := s.colonies.MarkRegistered(ctx, colonyID, season.SeasonNumber); err != nil {
		return nil, fmt.Errorf("failed to register colony %d: %w", colonyID, err)
	}

	slog.InfoContext(ctx, "Colony registered", "colony_id", colonyID, "season", season.SeasonNumber)
	return season, nil
}

// PreRegister queues a colony for the season after the current one and
// escrows the stake into the war pool. The queue is applied automatically
// when that season starts; re-submitting an open entry is idempotent and
// does not escrow twice.
func (s *Service) PreRegister(ctx context.Context, colonyID int64, wallet string, stake int64) (*models.PreRegistration, error) {
	season, err := s.CurrentSeason(ctx)
	if err != nil {
		return nil, err
	}
	if !season.PreRegistrationOpen(s.config.PreRegistrationLead, time.Now().UTC()) {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "pre-registration", From: "closed", To: "queued",
			Reason: fmt.Sprintf("pre-registration opens at %s",
				season.ResolutionEndsAt.Add(-s.config.PreRegistrationLead).Format(time.RFC3339)),
		}
	}

	profile, err := s.colonies.EnsureProfile(ctx, colonyID, wallet)
	if err != nil {
		return nil, err
	}
	if profile.Owner != wallet {
		return nil, &warerrors.OwnershipConflictError{Resource: fmt.Sprintf("colony %d", colonyID), Owner: profile.Owner}
	}
	if stake < s.config.MinParticipantStake {
		return nil, &warerrors.InsufficientStakeError{Required: s.config.MinParticipantStake, Provided: stake}
	}

	target := season.SeasonNumber + 1
	existing, err := s.repository.GetPreRegistration(ctx, target, colonyID)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to check pre-registration: %w", err)
	}
	if err == nil {
		if existing.Activated {
			return nil, &warerrors.InvalidStateTransitionError{
				Entity: "pre-registration", From: "activated", To: "queued",
				Reason: "the pre-registration was already applied",
			}
		}
		if existing.Open() {
			return existing, nil
		}
	}

	if err := s.treasury.Transfer(ctx, colonyservices.StakeCurrency, stake, wallet, colonyservices.WarPoolWallet); err != nil {
		return nil, fmt.Errorf("failed to escrow pre-registration stake: %w", err)
	}

	prereg := &models.PreRegistration{
		SeasonNumber: target,
		ColonyID:     colonyID,
		Wallet:       wallet,
		Stake:        stake,
	}
	if err := s.repository.UpsertPreRegistration(ctx, prereg); err != nil {
		return nil, fmt.Errorf("failed to queue pre-registration: %w", err)
	}

	slog.InfoContext(ctx, "Colony pre-registered", "colony_id", colonyID, "target_season", target, "stake", stake)
	return prereg, nil
}

// CancelPreRegistration withdraws a queued pre-registration and refunds
// its stake. The record is kept; an already activated entry cannot be
// withdrawn.
func (s *Service) CancelPreRegistration(ctx context.Context, colonyID int64, wallet string) error {
	season, err := s.CurrentSeason(ctx)
	if err != nil {
		return err
	}

	profile, err := s.colonies.GetProfile(ctx, colonyID)
	if err != nil {
		return fmt.Errorf("failed to load colony %d: %w", colonyID, err)
	}
	if profile.Owner != wallet {
		return &warerrors.OwnershipConflictError{Resource: fmt.Sprintf("colony %d", colonyID), Owner: profile.Owner}
	}

	target := season.SeasonNumber + 1
	prereg, err := s.repository.GetPreRegistration(ctx, target, colonyID)
	if err != nil {
		return err
	}
	if prereg.Activated {
		return &warerrors.InvalidStateTransitionError{
			Entity: "pre-registration", From: "activated", To: "cancelled",
			Reason: "an activated pre-registration cannot be withdrawn",
		}
	}
	if prereg.Cancelled {
		return nil
	}

	if err := s.repository.MarkCancelled(ctx, target, colonyID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil
		}
		return err
	}
	if prereg.Stake > 0 {
		if err := s.treasury.Transfer(ctx, colonyservices.StakeCurrency, prereg.Stake, colonyservices.WarPoolWallet, wallet); err != nil {
			slog.ErrorContext(ctx, "Failed to refund pre-registration stake",
				"colony_id", colonyID, "target_season", target, "error", err)
		}
	}

	slog.InfoContext(ctx, "Pre-registration cancelled", "colony_id", colonyID, "target_season", target, "refund", prereg.Stake)
	return nil
}

// ActivatePreRegistrations applies one bounded batch of open
// pre-registrations for a season, crediting each escrowed stake to the
// colony's defensive stake. A non-positive batch size falls back to the
// default. Returns how many colonies were registered; callers sweep until
// it reports zero, so no single call ever pays for the whole backlog.
func (s *Service) ActivatePreRegistrations(ctx context.Context, seasonNumber int, batchSize int64) (int, error) {
	if batchSize <= 0 {
		batchSize = activationBatchSize
	}
	return activateBatch(ctx, s.repository, s.colonies, seasonNumber, batchSize)
}

// SweepPreRegistrations continues activation for the latest season, one
// batch per call. Run periodically by the war clock so a large queue
// drains without season start having to pay for it.
func (s *Service) SweepPreRegistrations(ctx context.Context) (int, error) {
	season, err := s.repository.GetLatestSeason(ctx)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load latest season: %w", err)
	}

	activated, err := s.ActivatePreRegistrations(ctx, season.SeasonNumber, activationBatchSize)
	if activated > 0 {
		slog.InfoContext(ctx, "Pre-registrations activated", "season", season.SeasonNumber, "colonies", activated)
	}
	return activated, err
}

func activateBatch(ctx context.Context, queue preRegQueue, colonies seasonRegistrar, seasonNumber int, batchSize int64) (int, error) {
	batch, err := queue.ListOpen(ctx, seasonNumber, batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list pre-registrations: %w", err)
	}

	activated := 0
	for _, prereg := range batch {
		if err := colonies.MarkRegistered(ctx, prereg.ColonyID, seasonNumber); err != nil {
			slog.WarnContext(ctx, "Failed to activate pre-registration",
				"colony_id", prereg.ColonyID, "season", seasonNumber, "error", err)
		} else {
			if err := colonies.CreditEscrowedStake(ctx, prereg.ColonyID, prereg.Stake); err != nil {
				slog.WarnContext(ctx, "Failed to credit pre-registration stake",
					"colony_id", prereg.ColonyID, "season", seasonNumber, "error", err)
			}
			activated++
		}
		// Marked even on a registration failure so a poisoned entry cannot
		// wedge the queue.
		if err := queue.MarkActivated(ctx, seasonNumber, prereg.ColonyID); err != nil {
			return activated, fmt.Errorf("failed to mark pre-registration activated: %w", err)
		}
	}
	return activated, nil
}

// CreditPrizePool adds forfeited stake to a season's prize pool. Called by
// siege settlement with whatever is left after the defender's cut.
func (s *Service) CreditPrizePool(ctx context.Context, seasonNumber int, amount int64) error {
	if amount <= 0 {
		return nil
	}
	if err := s.repository.AddToPrizePool(ctx, seasonNumber, amount); err != nil {
		return fmt.Errorf("failed to credit season %d prize pool: %w", seasonNumber, err)
	}
	return nil
}

// DistributeRewards pays a completed season's prize pool out of the war pool
// to the given recipient wallet. The payout is one-shot: the distributed
// flag is flipped with a guarded write, so a second call fails instead of
// paying twice.
func (s *Service) DistributeRewards(ctx context.Context, seasonNumber int, recipientWallet string) (*models.Season, error) {
	season, err := s.repository.GetSeason(ctx, seasonNumber)
	if err == mongo.ErrNoDocuments {
		return nil, &warerrors.NotInitializedError{Component: fmt.Sprintf("season %d", seasonNumber)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load season %d: %w", seasonNumber, err)
	}

	if phase := season.PhaseAt(time.Now().UTC()); phase != models.PhaseCompleted {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "season", From: string(phase), To: "rewarded",
			Reason: "rewards are only distributed after the season completes",
		}
	}
	if season.RewardsDistributed {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "season", From: "rewarded", To: "rewarded",
			Reason: fmt.Sprintf("season %d rewards were already distributed", seasonNumber),
		}
	}

	if err := s.repository.MarkRewardsDistributed(ctx, seasonNumber); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &warerrors.InvalidStateTransitionError{
				Entity: "season", From: "rewarded", To: "rewarded",
				Reason: fmt.Sprintf("season %d rewards were already distributed", seasonNumber),
			}
		}
		return nil, fmt.Errorf("failed to mark season %d rewards distributed: %w", seasonNumber, err)
	}

	if season.PrizePool > 0 {
		if err := s.treasury.Transfer(ctx, colonyservices.StakeCurrency, season.PrizePool, colonyservices.WarPoolWallet, recipientWallet); err != nil {
			slog.ErrorContext(ctx, "Failed to pay season prize pool",
				"season", seasonNumber, "amount", season.PrizePool, "recipient", recipientWallet, "error", err)
		}
	}

	season.RewardsDistributed = true
	slog.InfoContext(ctx, "Season rewards distributed",
		"season", seasonNumber, "prize_pool", season.PrizePool, "recipient", recipientWallet)
	return season, nil
}

// SyncPhase reconciles the stored phase with the phase derived from the
// season windows. Run periodically by the war clock.
func (s *Service) SyncPhase(ctx context.Context) error {
	season, err := s.repository.GetLatestSeason(ctx)
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load latest season: %w", err)
	}

	now := time.Now().UTC()
	derived := season.PhaseAt(now)
	if derived == season.Phase {
		return nil
	}

	var completedAt *time.Time
	if derived == models.PhaseCompleted {
		completedAt = &now
	}
	if err := s.repository.UpdatePhase(ctx, season.SeasonNumber, derived, completedAt); err != nil {
		return fmt.Errorf("failed to sync season phase: %w", err)
	}

	slog.InfoContext(ctx, "Season phase advanced",
		"season", season.SeasonNumber, "from", season.Phase, "to", derived)
	return nil
}
