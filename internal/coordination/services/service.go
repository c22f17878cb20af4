package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	allianceservices "colonywars/internal/alliance/services"
	colonyservices "colonywars/internal/colony/services"
	"colonywars/internal/coordination/models"
	seasonmodels "colonywars/internal/season/models"
	seasonservices "colonywars/internal/season/services"
	settingsmodels "colonywars/internal/settings/models"
	settingsservices "colonywars/internal/settings/services"
	siegeservices "colonywars/internal/siege/services"
	"colonywars/pkg/config"
	"colonywars/pkg/database"
	"colonywars/pkg/warerrors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service owns task force assembly and the launch of coordinated attacks.
type Service struct {
	repository *Repository
	colonies   *colonyservices.Service
	alliances  *allianceservices.Service
	seasons    *seasonservices.Service
	sieges     *siegeservices.Service
	settings   *settingsservices.Service
	quota      *LaunchQuota
	config     *config.WarConfig
}

// NewService creates a new coordination service
func NewService(repository *Repository, colonies *colonyservices.Service, alliances *allianceservices.Service, seasons *seasonservices.Service, sieges *siegeservices.Service, settings *settingsservices.Service, redis *database.Redis, cfg *config.WarConfig) *Service {
	return &Service{
		repository: repository,
		colonies:   colonies,
		alliances:  alliances,
		seasons:    seasons,
		sieges:     sieges,
		settings:   settings,
		quota:      NewLaunchQuota(redis, cfg.MaxCoordinatedAttacksPerDay),
		config:     cfg,
	}
}

// GetTaskForce retrieves a task force by its identifier
func (s *Service) GetTaskForce(ctx context.Context, taskForceID string) (*models.TaskForce, error) {
	return s.repository.GetTaskForce(ctx, taskForceID)
}

// ListTaskForces returns the task forces of the current season
func (s *Service) ListTaskForces(ctx context.Context) ([]models.TaskForce, error) {
	season, err := s.seasons.CurrentSeason(ctx)
	if err != nil {
		return nil, err
	}
	return s.repository.ListTaskForces(ctx, season.SeasonNumber)
}

// FormTaskForce assembles a new task force led by a colony against a
// target territory. The leader joins as the first participant and must
// meet the minimum stake. One forming task force per leader per season.
func (s *Service) FormTaskForce(ctx context.Context, leaderColonyID, targetTerritoryID int64, wallet string) (*models.TaskForce, error) {
	season, phase, err := s.seasons.CurrentPhase(ctx)
	if err != nil {
		return nil, err
	}
	if phase != seasonmodels.PhaseWarfare {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "task force", From: string(phase), To: "forming",
			Reason: "task forces assemble only during the warfare phase",
		}
	}

	leader, err := s.participant(ctx, leaderColonyID, wallet, season.SeasonNumber)
	if err != nil {
		return nil, err
	}

	if _, err := s.repository.GetFormingByLeader(ctx, season.SeasonNumber, leaderColonyID); err == nil {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "task force", From: "forming", To: "forming",
			Reason: "the leader is already assembling a task force",
		}
	} else if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to check forming task forces: %w", err)
	}

	taskForce := &models.TaskForce{
		TaskForceID:       uuid.New().String(),
		SeasonNumber:      season.SeasonNumber,
		LeaderColonyID:    leaderColonyID,
		TargetTerritoryID: targetTerritoryID,
		Participants:      []models.Participant{*leader},
		Status:            models.StatusForming,
	}
	if err := s.repository.CreateTaskForce(ctx, taskForce); err != nil {
		return nil, fmt.Errorf("failed to create task force: %w", err)
	}

	slog.InfoContext(ctx, "Task force formed",
		"task_force_id", taskForce.TaskForceID,
		"leader_colony_id", leaderColonyID,
		"target_territory_id", targetTerritoryID)
	return taskForce, nil
}

// JoinTaskForce commits a colony to a forming task force. Participants
// must be season-registered, carry the minimum stake, and fit under the
// roster cap.
func (s *Service) JoinTaskForce(ctx context.Context, taskForceID string, colonyID int64, wallet string) (*models.TaskForce, error) {
	taskForce, err := s.repository.GetTaskForce(ctx, taskForceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task force %s: %w", taskForceID, err)
	}
	if taskForce.Status != models.StatusForming {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "task force", From: string(taskForce.Status), To: "joined",
			Reason: "only forming task forces accept participants",
		}
	}
	if taskForce.HasParticipant(colonyID) {
		return taskForce, nil
	}
	if len(taskForce.Participants) >= s.config.MaxTaskForceParticipants {
		return nil, &warerrors.CapacityExceededError{Resource: "task force participants", Limit: s.config.MaxTaskForceParticipants}
	}

	participant, err := s.participant(ctx, colonyID, wallet, taskForce.SeasonNumber)
	if err != nil {
		return nil, err
	}

	taskForce.Participants = append(taskForce.Participants, *participant)
	if err := s.repository.UpdateTaskForce(ctx, taskForce); err != nil {
		return nil, fmt.Errorf("failed to join task force: %w", err)
	}

	slog.InfoContext(ctx, "Task force joined",
		"task_force_id", taskForceID, "colony_id", colonyID, "participants", len(taskForce.Participants))
	return taskForce, nil
}

// LeaveTaskForce withdraws a colony from a forming task force. The leader
// leaving disbands the whole force.
func (s *Service) LeaveTaskForce(ctx context.Context, taskForceID string, colonyID int64, wallet string) (*models.TaskForce, error) {
	taskForce, err := s.repository.GetTaskForce(ctx, taskForceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task force %s: %w", taskForceID, err)
	}
	if taskForce.Status != models.StatusForming {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "task force", From: string(taskForce.Status), To: "left",
			Reason: "only forming task forces can be left",
		}
	}

	profile, err := s.colonies.GetProfile(ctx, colonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony %d: %w", colonyID, err)
	}
	if profile.Owner != wallet {
		return nil, &warerrors.OwnershipConflictError{Resource: fmt.Sprintf("colony %d", colonyID), Owner: profile.Owner}
	}
	if !taskForce.HasParticipant(colonyID) {
		return nil, mongo.ErrNoDocuments
	}

	if colonyID == taskForce.LeaderColonyID {
		taskForce.Status = models.StatusDisbanded
	} else {
		participants := taskForce.Participants[:0]
		for _, p := range taskForce.Participants {
			if p.ColonyID != colonyID {
				participants = append(participants, p)
			}
		}
		taskForce.Participants = participants
	}
	if err := s.repository.UpdateTaskForce(ctx, taskForce); err != nil {
		return nil, fmt.Errorf("failed to leave task force: %w", err)
	}

	slog.InfoContext(ctx, "Task force participant left",
		"task_force_id", taskForceID, "colony_id", colonyID, "status", taskForce.Status)
	return taskForce, nil
}

// quotaScope resolves the bucket a leader's launches count against: the
// leader's alliance when it has one, otherwise the colony stands alone as
// an alliance of one.
func (s *Service) quotaScope(ctx context.Context, leaderColonyID int64) (string, error) {
	alliance, err := s.alliances.AllianceOfColony(ctx, leaderColonyID)
	if err != nil {
		return "", err
	}
	if alliance != nil {
		return "alliance:" + alliance.AllianceID, nil
	}
	return fmt.Sprintf("colony:%d", leaderColonyID), nil
}

// LaunchCoordinatedAttack converts a forming task force into a siege with
// coordinated bonus damage. Leader only; the roster minimum applies, and
// the leader's alliance is held to a daily launch quota. The quota is
// checked before the launch and consumed only after the siege exists, so
// a rejected launch never costs the alliance allowance.
func (s *Service) LaunchCoordinatedAttack(ctx context.Context, taskForceID, wallet string) (*models.TaskForce, error) {
	if err := s.settings.RequireEnabled(ctx, settingsmodels.FeatureCoordinatedAttacks); err != nil {
		return nil, err
	}

	taskForce, err := s.repository.GetTaskForce(ctx, taskForceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task force %s: %w", taskForceID, err)
	}
	if taskForce.Status != models.StatusForming {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "task force", From: string(taskForce.Status), To: "launched",
			Reason: "only forming task forces can launch",
		}
	}

	leader, err := s.colonies.GetProfile(ctx, taskForce.LeaderColonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony %d: %w", taskForce.LeaderColonyID, err)
	}
	if leader.Owner != wallet {
		return nil, &warerrors.OwnershipConflictError{Resource: fmt.Sprintf("task force %s", taskForceID), Owner: leader.Owner}
	}
	if len(taskForce.Participants) < s.config.MinTaskForceParticipants {
		return nil, &warerrors.ConfigurationError{
			Parameter: "participants",
			Reason:    fmt.Sprintf("a coordinated attack needs at least %d participants", s.config.MinTaskForceParticipants),
		}
	}

	now := time.Now().UTC()
	scope, err := s.quotaScope(ctx, taskForce.LeaderColonyID)
	if err != nil {
		return nil, err
	}
	if err := s.quota.Check(ctx, scope, now); err != nil {
		return nil, err
	}

	// The launch wagers the configured minimum stake from the leader's
	// wallet; participants' own stakes stay committed to their colonies.
	siege, err := s.sieges.DeclareSiege(ctx, taskForce.TargetTerritoryID, taskForce.LeaderColonyID, wallet, s.config.MinParticipantStake, nil, siegeservices.DeclareOptions{
		BonusDamagePct: s.config.CoordinatedBonusDamagePct,
		TaskForceID:    taskForceID,
	})
	if err != nil {
		return nil, err
	}

	count, err := s.quota.Commit(ctx, scope, now)
	if err != nil {
		slog.WarnContext(ctx, "Failed to consume daily quota", "scope", scope, "error", err)
	}

	taskForce.Status = models.StatusLaunched
	taskForce.SiegeID = siege.SiegeID
	taskForce.LaunchedAt = &now
	if err := s.repository.UpdateTaskForce(ctx, taskForce); err != nil {
		return nil, fmt.Errorf("failed to mark task force launched: %w", err)
	}

	slog.InfoContext(ctx, "Coordinated attack launched",
		"task_force_id", taskForceID,
		"siege_id", siege.SiegeID,
		"participants", len(taskForce.Participants),
		"quota_scope", scope,
		"daily_count", count)
	return taskForce, nil
}

// participant validates a colony for task force duty and builds its
// roster entry.
func (s *Service) participant(ctx context.Context, colonyID int64, wallet string, seasonNumber int) (*models.Participant, error) {
	profile, err := s.colonies.GetProfile(ctx, colonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony %d: %w", colonyID, err)
	}
	if profile.Owner != wallet {
		return nil, &warerrors.OwnershipConflictError{Resource: fmt.Sprintf("colony %d", colonyID), Owner: profile.Owner}
	}
	if !profile.RegisteredForSeason(seasonNumber) {
		return nil, &warerrors.InvalidStateTransitionError{
			Entity: "task force", From: "unregistered", To: "joined",
			Reason: "participants must be registered for the current season",
		}
	}
	if profile.DefensiveStake < s.config.MinParticipantStake {
		return nil, &warerrors.InsufficientStakeError{Required: s.config.MinParticipantStake, Provided: profile.DefensiveStake}
	}
	return &models.Participant{
		ColonyID: colonyID,
		Wallet:   wallet,
		Stake:    profile.DefensiveStake,
		JoinedAt: time.Now().UTC(),
	}, nil
}
