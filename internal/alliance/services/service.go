package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"colonywars/internal/alliance/models"
	colonymodels "colonywars/internal/colony/models"
	colonyservices "colonywars/internal/colony/services"
	settingsservices "colonywars/internal/settings/services"
	"colonywars/pkg/config"
	"colonywars/pkg/ratelimit"
	"colonywars/pkg/warerrors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// BetrayalAction names the rate-limited action consumed when a betrayal is
// processed. The betrayer cannot attack again until the cooldown lapses.
const BetrayalAction = "betrayal"

// Service owns alliance membership, betrayal processing, forgiveness voting
// and diplomatic treaties.
type Service struct {
	repository *Repository
	colonies   *colonyservices.Service
	settings   *settingsservices.Service
	limiter    *ratelimit.Limiter
	config     *config.WarConfig
}

// NewService creates a new alliance service
func NewService(repository *Repository, colonies *colonyservices.Service, settings *settingsservices.Service, limiter *ratelimit.Limiter, cfg *config.WarConfig) *Service {
	return &Service{
		repository: repository,
		colonies:   colonies,
		settings:   settings,
		limiter:    limiter,
		config:     cfg,
	}
}

// FormAlliance creates a new alliance from a leader colony and a set of
// founding members. Each founder must be controlled by a distinct wallet,
// none may already belong to an active alliance, and the founding roster
// must meet the minimum size.
func (s *Service) FormAlliance(ctx context.Context, name string, leaderColonyID int64, founders []models.Member) (*models.Alliance, error) {
	if len(founders) < s.config.MinAllianceMembers {
		return nil, &warerrors.ConfigurationError{
			Parameter: "members",
			Reason:    fmt.Sprintf("an alliance needs at least %d founding colonies", s.config.MinAllianceMembers),
		}
	}
	if len(founders) > s.config.MaxAllianceMembers {
		return nil, &warerrors.CapacityExceededError{Resource: "alliance members", Limit: s.config.MaxAllianceMembers}
	}

	leaderFound := false
	seenWallets := make(map[string]int64, len(founders))
	now := time.Now().UTC()
	for i := range founders {
		m := &founders[i]
		if m.ColonyID == leaderColonyID {
			leaderFound = true
		}
		if prior, ok := seenWallets[m.Wallet]; ok {
			return nil, &warerrors.OwnershipConflictError{
				Resource: fmt.Sprintf("colony %d", m.ColonyID),
				Owner:    fmt.Sprintf("%s (already joining with colony %d)", m.Wallet, prior),
			}
		}
		seenWallets[m.Wallet] = m.ColonyID

		profile, err := s.colonies.GetProfile(ctx, m.ColonyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load founder colony %d: %w", m.ColonyID, err)
		}
		if profile.Owner != m.Wallet {
			return nil, &warerrors.OwnershipConflictError{
				Resource: fmt.Sprintf("colony %d", m.ColonyID),
				Owner:    profile.Owner,
			}
		}

		if _, err := s.repository.GetAllianceByColony(ctx, m.ColonyID); err == nil {
			return nil, &warerrors.OwnershipConflictError{
				Resource: fmt.Sprintf("colony %d", m.ColonyID),
				Owner:    "another alliance",
			}
		} else if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("failed to check alliance membership for colony %d: %w", m.ColonyID, err)
		}
		m.JoinedAt = now
	}
	if !leaderFound {
		return nil, &warerrors.ConfigurationError{Parameter: "leader_colony_id", Reason: "leader must be among the founding colonies"}
	}

	alliance := &models.Alliance{
		AllianceID:     uuid.New().String(),
		Name:           name,
		LeaderColonyID: leaderColonyID,
		Members:        founders,
		Stability:      models.MaxStability,
		Active:         true,
		Betrayers:      []int64{},
	}
	if err := s.repository.CreateAlliance(ctx, alliance); err != nil {
		return nil, fmt.Errorf("failed to create alliance: %w", err)
	}

	slog.InfoContext(ctx, "Alliance formed",
		"alliance_id", alliance.AllianceID,
		"name", name,
		"leader_colony_id", leaderColonyID,
		"members", len(founders))
	return alliance, nil
}

// GetAlliance retrieves an alliance by its identifier
func (s *Service) GetAlliance(ctx context.Context, allianceID string) (*models.Alliance, error) {
	return s.repository.GetAlliance(ctx, allianceID)
}

// AllianceOfColony finds the active alliance a colony belongs to, or nil
// when the colony is unaligned.
func (s *Service) AllianceOfColony(ctx context.Context, colonyID int64) (*models.Alliance, error) {
	alliance, err := s.repository.GetAllianceByColony(ctx, colonyID)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve alliance for colony %d: %w", colonyID, err)
	}
	return alliance, nil
}

// ListAlliances returns alliances, optionally only active ones
func (s *Service) ListAlliances(ctx context.Context, activeOnly bool) ([]models.Alliance, error) {
	return s.repository.ListAlliances(ctx, activeOnly)
}

// AddMember admits a colony into an alliance. Only the leader's wallet may
// admit, the joining wallet must not already have a colony in the alliance,
// and the roster cap applies.
func (s *Service) AddMember(ctx context.Context, allianceID string, actorWallet string, colonyID int64) (*models.Alliance, error) {
	alliance, err := s.repository.GetAlliance(ctx, allianceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load alliance %s: %w", allianceID, err)
	}
	if !alliance.Active {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "alliance", From: "inactive", To: "member added", Reason: "alliance is deactivated",
		}
	}

	leader, err := s.colonies.GetProfile(ctx, alliance.LeaderColonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load leader colony %d: %w", alliance.LeaderColonyID, err)
	}
	if leader.Owner != actorWallet {
		return nil, &warerrors.OwnershipConflictError{Resource: "alliance leadership", Owner: leader.Owner}
	}

	if len(alliance.Members) >= s.config.MaxAllianceMembers {
		return nil, &warerrors.CapacityExceededError{Resource: "alliance members", Limit: s.config.MaxAllianceMembers}
	}

	profile, err := s.colonies.GetProfile(ctx, colonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony %d: %w", colonyID, err)
	}
	if alliance.HasOwner(profile.Owner) {
		return nil, &warerrors.OwnershipConflictError{
			Resource: fmt.Sprintf("colony %d", colonyID),
			Owner:    fmt.Sprintf("%s (wallet already holds a seat)", profile.Owner),
		}
	}
	if existing, err := s.repository.GetAllianceByColony(ctx, colonyID); err == nil && existing.AllianceID != allianceID {
		return nil, &warerrors.OwnershipConflictError{
			Resource: fmt.Sprintf("colony %d", colonyID),
			Owner:    "another alliance",
		}
	} else if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to check alliance membership for colony %d: %w", colonyID, err)
	}

	alliance.Members = append(alliance.Members, models.Member{
		ColonyID: colonyID,
		Wallet:   profile.Owner,
		JoinedAt: time.Now().UTC(),
	})
	if err := s.repository.UpdateAlliance(ctx, alliance); err != nil {
		return nil, fmt.Errorf("failed to admit colony %d: %w", colonyID, err)
	}

	slog.InfoContext(ctx, "Alliance member admitted",
		"alliance_id", allianceID, "colony_id", colonyID, "wallet", profile.Owner)
	return alliance, nil
}

// RemoveMember removes a colony from an alliance. The leader's wallet may
// remove anyone; a member's wallet may remove its own colony. Dropping
// below the minimum roster deactivates the alliance.
func (s *Service) RemoveMember(ctx context.Context, allianceID string, actorWallet string, colonyID int64) (*models.Alliance, error) {
	alliance, err := s.repository.GetAlliance(ctx, allianceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load alliance %s: %w", allianceID, err)
	}
	if !alliance.HasColony(colonyID) {
		return nil, mongo.ErrNoDocuments
	}

	leader, err := s.colonies.GetProfile(ctx, alliance.LeaderColonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load leader colony %d: %w", alliance.LeaderColonyID, err)
	}
	profile, err := s.colonies.GetProfile(ctx, colonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony %d: %w", colonyID, err)
	}
	if actorWallet != leader.Owner && actorWallet != profile.Owner {
		return nil, &warerrors.OwnershipConflictError{Resource: fmt.Sprintf("colony %d", colonyID), Owner: profile.Owner}
	}

	s.dropMember(alliance, colonyID)
	if err := s.repository.UpdateAlliance(ctx, alliance); err != nil {
		return nil, fmt.Errorf("failed to remove colony %d: %w", colonyID, err)
	}

	slog.InfoContext(ctx, "Alliance member removed",
		"alliance_id", allianceID, "colony_id", colonyID, "active", alliance.Active)
	return alliance, nil
}

// dropMember removes the colony from the roster in memory, reassigns
// leadership if needed, and deactivates the alliance when the roster falls
// below the minimum.
func (s *Service) dropMember(alliance *models.Alliance, colonyID int64) {
	members := alliance.Members[:0]
	for _, m := range alliance.Members {
		if m.ColonyID != colonyID {
			members = append(members, m)
		}
	}
	alliance.Members = members

	if alliance.LeaderColonyID == colonyID && len(alliance.Members) > 0 {
		alliance.LeaderColonyID = alliance.Members[0].ColonyID
	}
	if len(alliance.Members) < s.config.MinAllianceMembers {
		alliance.Active = false
	}
}

// CheckBetrayal resolves the facts around an attack and reports whether it
// would count as betrayal, without side effects. The caller supplies the
// current season so protection for registered colonies can be evaluated.
func (s *Service) CheckBetrayal(ctx context.Context, attackerColonyID, targetColonyID int64, currentSeason int) (*models.Alliance, bool, error) {
	alliance, err := s.AllianceOfColony(ctx, attackerColonyID)
	if err != nil {
		return nil, false, err
	}
	if alliance == nil {
		return nil, false, nil
	}

	target, err := s.colonies.GetProfile(ctx, targetColonyID)
	if err == mongo.ErrNoDocuments {
		return alliance, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load target colony %d: %w", targetColonyID, err)
	}

	primary, err := s.colonies.PrimaryColony(ctx, target.Owner)
	if err != nil {
		return nil, false, err
	}

	check := models.BetrayalCheck{
		AttackerColonyID:          attackerColonyID,
		TargetColonyID:            targetColonyID,
		AttackerInAlliance:        true,
		TargetOwnerInSameAlliance: alliance.HasOwner(target.Owner),
		TargetIsPrimaryColony:     primary == targetColonyID,
		TargetRegisteredForSeason: target.RegisteredForSeason(currentSeason),
	}
	return alliance, check.IsBetrayal(), nil
}

// ProcessBetrayal applies the consequences of a confirmed betrayal: the
// betrayer is marked and expelled, alliance stability drops, the betrayer's
// reputation falls to outlaw, and an attack cooldown is consumed so the
// betrayer cannot strike again immediately.
func (s *Service) ProcessBetrayal(ctx context.Context, alliance *models.Alliance, betrayerColonyID int64) error {
	now := time.Now().UTC()
	if !alliance.IsBetrayer(betrayerColonyID) {
		alliance.Betrayers = append(alliance.Betrayers, betrayerColonyID)
	}
	alliance.BetrayalCount++
	alliance.LastBetrayalAt = &now
	alliance.Stability = models.ClampStability(alliance.Stability - s.config.BetrayalStabilityHit)
	s.dropMember(alliance, betrayerColonyID)

	if err := s.repository.UpdateAlliance(ctx, alliance); err != nil {
		return fmt.Errorf("failed to record betrayal: %w", err)
	}

	if err := s.colonies.SetReputation(ctx, betrayerColonyID, colonymodels.ReputationOutlaw); err != nil {
		return fmt.Errorf("failed to mark betrayer reputation: %w", err)
	}

	actorKey := fmt.Sprintf("colony:%d", betrayerColonyID)
	if err := s.limiter.CheckAndConsume(ctx, actorKey, BetrayalAction, s.config.BetrayalCooldown); err != nil {
		slog.WarnContext(ctx, "Betrayal cooldown already active", "colony_id", betrayerColonyID, "error", err)
	}

	slog.InfoContext(ctx, "Betrayal processed",
		"alliance_id", alliance.AllianceID,
		"betrayer_colony_id", betrayerColonyID,
		"stability", alliance.Stability,
		"active", alliance.Active)
	return nil
}

// BetrayalCooldownRemaining reports how long a betrayer colony must still
// wait before attacking again. Zero means no cooldown is active.
func (s *Service) BetrayalCooldownRemaining(ctx context.Context, colonyID int64) (time.Duration, error) {
	return s.limiter.Peek(ctx, fmt.Sprintf("colony:%d", colonyID), BetrayalAction)
}
