package services

import (
	"context"
	"fmt"
	"log/slog"

	"colonywars/internal/colony/models"
	"colonywars/pkg/config"
	"colonywars/pkg/gamebridge"
	"colonywars/pkg/warerrors"

	"go.mongodb.org/mongo-driver/mongo"
)

// WarPoolWallet is the escrow wallet holding defensive stakes.
const WarPoolWallet = "war:pool"

// StakeCurrency is the currency defensive stakes are denominated in.
const StakeCurrency = "SPICE"

// Service owns the per-colony war profile and the wallet-to-colony mapping.
type Service struct {
	repository *Repository
	treasury   gamebridge.Treasury
	config     *config.WarConfig
}

// NewService creates a new colony service
func NewService(repository *Repository, treasury gamebridge.Treasury, cfg *config.WarConfig) *Service {
	return &Service{
		repository: repository,
		treasury:   treasury,
		config:     cfg,
	}
}

// EnsureProfile returns the war profile for a colony, creating it on first
// contact. Ownership is recorded on the wallet record at the same time.
func (s *Service) EnsureProfile(ctx context.Context, colonyID int64, owner string) (*models.WarProfile, error) {
	profile, err := s.repository.GetProfile(ctx, colonyID)
	if err == nil {
		return profile, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to load war profile %d: %w", colonyID, err)
	}

	profile = &models.WarProfile{
		ColonyID:   colonyID,
		Owner:      owner,
		Reputation: models.ReputationNeutral,
	}
	if err := s.repository.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create war profile %d: %w", colonyID, err)
	}
	if err := s.repository.AttachColony(ctx, owner, colonyID); err != nil {
		return nil, fmt.Errorf("failed to attach colony %d to wallet %s: %w", colonyID, owner, err)
	}

	slog.InfoContext(ctx, "War profile created", "colony_id", colonyID, "owner", owner)
	return profile, nil
}

// GetProfile retrieves a war profile by colony ID
func (s *Service) GetProfile(ctx context.Context, colonyID int64) (*models.WarProfile, error) {
	return s.repository.GetProfile(ctx, colonyID)
}

// AddDefensiveStake escrows additional stake into the war pool and records
// it on the profile.
func (s *Service) AddDefensiveStake(ctx context.Context, colonyID int64, owner string, amount int64) error {
	if amount <= 0 {
		return &warerrors.InsufficientStakeError{Required: 1, Provided: amount}
	}

	profile, err := s.repository.GetProfile(ctx, colonyID)
	if err != nil {
		return fmt.Errorf("failed to load war profile %d: %w", colonyID, err)
	}
	if profile.Owner != owner {
		return &warerrors.OwnershipConflictError{Resource: fmt.Sprintf("colony %d", colonyID), Owner: owner}
	}

	if err := s.treasury.Transfer(ctx, StakeCurrency, amount, owner, WarPoolWallet); err != nil {
		return fmt.Errorf("failed to escrow stake: %w", err)
	}
	if err := s.repository.AddStake(ctx, colonyID, amount); err != nil {
		return fmt.Errorf("failed to record stake: %w", err)
	}

	slog.InfoContext(ctx, "Defensive stake added", "colony_id", colonyID, "amount", amount)
	return nil
}

// CreditEscrowedStake records stake that already sits in the war pool,
// such as a pre-registration wager applied at season start. No transfer
// happens here.
func (s *Service) CreditEscrowedStake(ctx context.Context, colonyID int64, amount int64) error {
	if amount <= 0 {
		return nil
	}
	if err := s.repository.AddStake(ctx, colonyID, amount); err != nil {
		return fmt.Errorf("failed to credit escrowed stake: %w", err)
	}
	slog.InfoContext(ctx, "Escrowed stake credited", "colony_id", colonyID, "amount", amount)
	return nil
}

// SetPrimaryColony changes a wallet's primary colony. The colony must belong
// to the wallet.
func (s *Service) SetPrimaryColony(ctx context.Context, wallet string, colonyID int64) error {
	record, err := s.repository.GetWallet(ctx, wallet)
	if err != nil {
		return fmt.Errorf("failed to load wallet %s: %w", wallet, err)
	}

	owned := false
	for _, id := range record.ColonyIDs {
		if id == colonyID {
			owned = true
			break
		}
	}
	if !owned {
		return &warerrors.OwnershipConflictError{Resource: fmt.Sprintf("colony %d", colonyID), Owner: wallet}
	}

	return s.repository.SetPrimaryColony(ctx, wallet, colonyID)
}

// PrimaryColony returns the wallet's primary colony ID, or zero when the
// wallet has no colonies.
func (s *Service) PrimaryColony(ctx context.Context, wallet string) (int64, error) {
	record, err := s.repository.GetWallet(ctx, wallet)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load wallet %s: %w", wallet, err)
	}
	return record.PrimaryColonyID, nil
}

// ColoniesByWallet lists the colony IDs controlled by a wallet
func (s *Service) ColoniesByWallet(ctx context.Context, wallet string) ([]int64, error) {
	record, err := s.repository.GetWallet(ctx, wallet)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet %s: %w", wallet, err)
	}
	return record.ColonyIDs, nil
}

// ApplyCombatStress raises (or lowers) a colony's war stress, clamped to the
// gauge bounds.
func (s *Service) ApplyCombatStress(ctx context.Context, colonyID int64, delta int) error {
	profile, err := s.repository.GetProfile(ctx, colonyID)
	if err != nil {
		return fmt.Errorf("failed to load war profile %d: %w", colonyID, err)
	}

	profile.WarStress = models.ClampStress(profile.WarStress+delta, s.config.MaxWarStress)
	if err := s.repository.UpdateProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to update war stress: %w", err)
	}

	slog.InfoContext(ctx, "War stress adjusted", "colony_id", colonyID, "delta", delta, "stress", profile.WarStress)
	return nil
}

// SetReputation records a reputation tier change driven by combat outcomes.
func (s *Service) SetReputation(ctx context.Context, colonyID int64, tier models.ReputationTier) error {
	profile, err := s.repository.GetProfile(ctx, colonyID)
	if err != nil {
		return fmt.Errorf("failed to load war profile %d: %w", colonyID, err)
	}
	profile.Reputation = tier
	return s.repository.UpdateProfile(ctx, profile)
}

// MarkRegistered flags a profile as registered for a season
func (s *Service) MarkRegistered(ctx context.Context, colonyID int64, season int) error {
	return s.repository.SetRegistration(ctx, colonyID, true, season)
}

// ClearRegistration removes a profile's registration flag
func (s *Service) ClearRegistration(ctx context.Context, colonyID int64) error {
	return s.repository.SetRegistration(ctx, colonyID, false, 0)
}

// DecayStress runs the periodic stress decay sweep
func (s *Service) DecayStress(ctx context.Context) (int64, error) {
	touched, err := s.repository.DecayStress(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to decay war stress: %w", err)
	}
	if touched > 0 {
		slog.InfoContext(ctx, "War stress decayed", "profiles", touched)
	}
	return touched, nil
}
