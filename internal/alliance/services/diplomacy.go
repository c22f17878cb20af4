package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"colonywars/internal/alliance/models"
	settingsmodels "colonywars/internal/settings/models"
	"colonywars/pkg/warerrors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProposeForgiveness opens a time-boxed vote to clear a betrayal mark. The
// proposer must hold a seat in the alliance and the betrayer must carry a
// mark. Only one proposal per betrayer may be open at a time.
func (s *Service) ProposeForgiveness(ctx context.Context, allianceID, proposerWallet string, betrayerColonyID int64) (*models.ForgivenessProposal, error) {
	if err := s.settings.RequireEnabled(ctx, settingsmodels.FeatureDiplomacy); err != nil {
		return nil, err
	}

	alliance, err := s.repository.GetAlliance(ctx, allianceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load alliance %s: %w", allianceID, err)
	}
	if !alliance.HasOwner(proposerWallet) {
		return nil, &warerrors.OwnershipConflictError{Resource: "alliance seat", Owner: proposerWallet}
	}
	if !alliance.IsBetrayer(betrayerColonyID) {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "forgiveness", From: "unmarked", To: "proposed",
			Reason: fmt.Sprintf("colony %d carries no betrayal mark", betrayerColonyID),
		}
	}

	now := time.Now().UTC()
	if _, err := s.repository.GetOpenProposal(ctx, allianceID, betrayerColonyID, now); err == nil {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "forgiveness", From: "open", To: "proposed", Reason: "a vote is already in progress",
		}
	} else if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to check open proposals: %w", err)
	}

	proposal := &models.ForgivenessProposal{
		ProposalID:       uuid.New().String(),
		AllianceID:       allianceID,
		BetrayerColonyID: betrayerColonyID,
		ProposedBy:       proposerWallet,
		Voters:           []string{},
		CreatedAt:        now,
		ExpiresAt:        now.Add(s.config.ForgivenessVotingWindow),
	}
	if err := s.repository.CreateProposal(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to create forgiveness proposal: %w", err)
	}

	slog.InfoContext(ctx, "Forgiveness proposed",
		"alliance_id", allianceID,
		"betrayer_colony_id", betrayerColonyID,
		"expires_at", proposal.ExpiresAt)
	return proposal, nil
}

// VoteForgiveness casts one vote per member wallet on an open proposal.
func (s *Service) VoteForgiveness(ctx context.Context, proposalID, voterWallet string, inFavor bool) (*models.ForgivenessProposal, error) {
	proposal, err := s.repository.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposal %s: %w", proposalID, err)
	}

	now := time.Now().UTC()
	if proposal.Executed || now.After(proposal.ExpiresAt) {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "forgiveness", From: "closed", To: "voted", Reason: "the voting window is over",
		}
	}

	alliance, err := s.repository.GetAlliance(ctx, proposal.AllianceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load alliance %s: %w", proposal.AllianceID, err)
	}
	if !alliance.HasOwner(voterWallet) {
		return nil, &warerrors.OwnershipConflictError{Resource: "alliance seat", Owner: voterWallet}
	}
	if proposal.HasVoted(voterWallet) {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "forgiveness", From: "voted", To: "voted", Reason: "each wallet votes once",
		}
	}

	if err := s.repository.RecordVote(ctx, proposalID, voterWallet, inFavor); err != nil {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}
	return s.repository.GetProposal(ctx, proposalID)
}

// ExecuteForgiveness closes a passed proposal: the betrayal mark is cleared
// and alliance stability recovers by the configured amount.
func (s *Service) ExecuteForgiveness(ctx context.Context, proposalID string) (*models.Alliance, error) {
	proposal, err := s.repository.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposal %s: %w", proposalID, err)
	}
	if proposal.Executed {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "forgiveness", From: "executed", To: "executed", Reason: "proposal already closed",
		}
	}
	if time.Now().UTC().After(proposal.ExpiresAt) {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "forgiveness", From: "expired", To: "executed", Reason: "the voting window is over",
		}
	}

	alliance, err := s.repository.GetAlliance(ctx, proposal.AllianceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load alliance %s: %w", proposal.AllianceID, err)
	}
	if !proposal.Passed(len(alliance.Members)) {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "forgiveness", From: "open", To: "executed",
			Reason: fmt.Sprintf("%d for, %d against of %d members is not a majority", proposal.VotesFor, proposal.VotesAgainst, len(alliance.Members)),
		}
	}

	betrayers := alliance.Betrayers[:0]
	for _, id := range alliance.Betrayers {
		if id != proposal.BetrayerColonyID {
			betrayers = append(betrayers, id)
		}
	}
	alliance.Betrayers = betrayers
	alliance.Stability = models.ClampStability(alliance.Stability + s.config.ForgivenessStabilityGain)

	if err := s.repository.UpdateAlliance(ctx, alliance); err != nil {
		return nil, fmt.Errorf("failed to clear betrayal mark: %w", err)
	}
	if err := s.repository.MarkProposalExecuted(ctx, proposalID); err != nil {
		return nil, fmt.Errorf("failed to close proposal: %w", err)
	}

	slog.InfoContext(ctx, "Forgiveness executed",
		"alliance_id", alliance.AllianceID,
		"betrayer_colony_id", proposal.BetrayerColonyID,
		"stability", alliance.Stability)
	return alliance, nil
}

// ProposeTreaty opens a treaty between two alliances. Both must be active
// and must not already hold an active treaty with each other.
func (s *Service) ProposeTreaty(ctx context.Context, proposerAllianceID, proposerWallet, targetAllianceID string, treatyType models.TreatyType) (*models.DiplomaticTreaty, error) {
	if err := s.settings.RequireEnabled(ctx, settingsmodels.FeatureDiplomacy); err != nil {
		return nil, err
	}
	if proposerAllianceID == targetAllianceID {
		return nil, &warerrors.ConfigurationError{Parameter: "target_alliance_id", Reason: "an alliance cannot treaty with itself"}
	}
	switch treatyType {
	case models.TreatyNonAggression, models.TreatyTrade, models.TreatyMilitary:
	default:
		return nil, &warerrors.ConfigurationError{Parameter: "type", Reason: fmt.Sprintf("unknown treaty type %q", treatyType)}
	}

	proposer, err := s.repository.GetAlliance(ctx, proposerAllianceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load alliance %s: %w", proposerAllianceID, err)
	}
	if !proposer.HasOwner(proposerWallet) {
		return nil, &warerrors.OwnershipConflictError{Resource: "alliance seat", Owner: proposerWallet}
	}
	target, err := s.repository.GetAlliance(ctx, targetAllianceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load alliance %s: %w", targetAllianceID, err)
	}
	if !proposer.Active || !target.Active {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "treaty", From: "inactive", To: "proposed", Reason: "both alliances must be active",
		}
	}

	if _, err := s.repository.ActiveTreatyBetween(ctx, proposerAllianceID, targetAllianceID); err == nil {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "treaty", From: "active", To: "proposed", Reason: "an active treaty already links these alliances",
		}
	} else if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to check existing treaties: %w", err)
	}

	treaty := &models.DiplomaticTreaty{
		TreatyID:           uuid.New().String(),
		ProposerAllianceID: proposerAllianceID,
		TargetAllianceID:   targetAllianceID,
		Type:               treatyType,
		Status:             models.TreatyProposed,
		ProposedAt:         time.Now().UTC(),
	}
	if err := s.repository.CreateTreaty(ctx, treaty); err != nil {
		return nil, fmt.Errorf("failed to create treaty: %w", err)
	}

	slog.InfoContext(ctx, "Treaty proposed",
		"treaty_id", treaty.TreatyID,
		"proposer", proposerAllianceID,
		"target", targetAllianceID,
		"type", treatyType)
	return treaty, nil
}

// RespondToTreaty accepts or rejects a proposed treaty on behalf of the
// target alliance. Acceptance activates the treaty for the configured
// duration.
func (s *Service) RespondToTreaty(ctx context.Context, treatyID, responderWallet string, accept bool) (*models.DiplomaticTreaty, error) {
	treaty, err := s.repository.GetTreaty(ctx, treatyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load treaty %s: %w", treatyID, err)
	}
	if treaty.Status != models.TreatyProposed {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "treaty", From: string(treaty.Status), To: "responded", Reason: "only proposed treaties accept a response",
		}
	}

	target, err := s.repository.GetAlliance(ctx, treaty.TargetAllianceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load alliance %s: %w", treaty.TargetAllianceID, err)
	}
	if !target.HasOwner(responderWallet) {
		return nil, &warerrors.OwnershipConflictError{Resource: "alliance seat", Owner: responderWallet}
	}

	now := time.Now().UTC()
	if accept {
		expires := now.Add(s.config.TreatyDuration)
		treaty.Status = models.TreatyActive
		treaty.AcceptedAt = &now
		treaty.ExpiresAt = &expires
	} else {
		treaty.Status = models.TreatyRejected
	}
	if err := s.repository.UpdateTreaty(ctx, treaty); err != nil {
		return nil, fmt.Errorf("failed to update treaty: %w", err)
	}

	slog.InfoContext(ctx, "Treaty response recorded",
		"treaty_id", treatyID, "status", treaty.Status)
	return treaty, nil
}

// RecordHostileAct breaks any active treaty between the alliances of the
// two colonies. Called by combat paths when one alliance strikes another.
func (s *Service) RecordHostileAct(ctx context.Context, attackerColonyID, defenderColonyID int64) error {
	attacker, err := s.AllianceOfColony(ctx, attackerColonyID)
	if err != nil {
		return err
	}
	defender, err := s.AllianceOfColony(ctx, defenderColonyID)
	if err != nil {
		return err
	}
	if attacker == nil || defender == nil || attacker.AllianceID == defender.AllianceID {
		return nil
	}

	treaty, err := s.repository.ActiveTreatyBetween(ctx, attacker.AllianceID, defender.AllianceID)
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check treaties: %w", err)
	}

	now := time.Now().UTC()
	treaty.Status = models.TreatyBroken
	treaty.BrokenAt = &now
	if err := s.repository.UpdateTreaty(ctx, treaty); err != nil {
		return fmt.Errorf("failed to break treaty: %w", err)
	}

	slog.WarnContext(ctx, "Treaty broken by hostile act",
		"treaty_id", treaty.TreatyID,
		"attacker_alliance", attacker.AllianceID,
		"defender_alliance", defender.AllianceID)
	return nil
}

// ListTreaties returns every treaty an alliance is party to
func (s *Service) ListTreaties(ctx context.Context, allianceID string) ([]models.DiplomaticTreaty, error) {
	return s.repository.ListTreatiesForAlliance(ctx, allianceID)
}

// SweepDiplomacy expires lapsed treaties and deletes expired unexecuted
// forgiveness proposals. Run periodically by the war clock.
func (s *Service) SweepDiplomacy(ctx context.Context) error {
	now := time.Now().UTC()
	expired, err := s.repository.ExpireTreaties(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to expire treaties: %w", err)
	}
	dropped, err := s.repository.DeleteExpiredProposals(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to drop expired proposals: %w", err)
	}
	if expired > 0 || dropped > 0 {
		slog.InfoContext(ctx, "Diplomacy sweep complete", "treaties_expired", expired, "proposals_dropped", dropped)
	}
	return nil
}
