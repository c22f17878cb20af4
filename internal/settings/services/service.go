package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"colonywars/internal/settings/models"
	"colonywars/pkg/database"
	"colonywars/pkg/warerrors"

	"go.mongodb.org/mongo-driver/mongo"
)

// cacheTTL bounds how stale a cached flag can be after an administrative
// toggle on another instance.
const cacheTTL = 30 * time.Second

// Service owns the feature pause switches. Reads go through a short Redis
// cache since every combat operation checks its flag.
type Service struct {
	repository *Repository
	redis      *database.Redis
}

// NewService creates a new settings service
func NewService(repository *Repository, redis *database.Redis) *Service {
	return &Service{
		repository: repository,
		redis:      redis,
	}
}

func cacheKey(feature models.Feature) string {
	return fmt.Sprintf("settings:feature:%s", feature)
}

// Enabled reports whether a feature is currently enabled. Features with no
// stored flag default to enabled. Cache or database failures fail open so
// a Redis outage never pauses the war.
func (s *Service) Enabled(ctx context.Context, feature models.Feature) bool {
	if !feature.Valid() {
		return false
	}

	if cached, err := s.redis.Get(ctx, cacheKey(feature)); err == nil {
		return cached == "1"
	}

	enabled := true
	flag, err := s.repository.GetFlag(ctx, feature)
	switch {
	case err == mongo.ErrNoDocuments:
	case err != nil:
		slog.WarnContext(ctx, "Failed to load feature flag", "feature", feature, "error", err)
		return true
	default:
		enabled = flag.Enabled
	}

	value := "0"
	if enabled {
		value = "1"
	}
	if err := s.redis.Set(ctx, cacheKey(feature), value, cacheTTL); err != nil {
		slog.WarnContext(ctx, "Failed to cache feature flag", "feature", feature, "error", err)
	}
	return enabled
}

// RequireEnabled returns an error suitable for a request path when the
// feature is paused.
func (s *Service) RequireEnabled(ctx context.Context, feature models.Feature) error {
	if s.Enabled(ctx, feature) {
		return nil
	}
	return &warerrors.InvalidStateTransitionError{
		Entity: "feature", From: string(feature), To: "used",
		Reason: "the feature is administratively paused",
	}
}

// Toggle sets a feature's enabled state and invalidates the cache.
func (s *Service) Toggle(ctx context.Context, feature models.Feature, enabled bool, reason, updatedBy string) (*models.FeatureFlag, error) {
	if !feature.Valid() {
		return nil, &warerrors.ConfigurationError{Parameter: "feature", Reason: fmt.Sprintf("unknown feature %q", feature)}
	}

	flag := &models.FeatureFlag{
		Feature:   feature,
		Enabled:   enabled,
		Reason:    reason,
		UpdatedBy: updatedBy,
	}
	if err := s.repository.UpsertFlag(ctx, flag); err != nil {
		return nil, fmt.Errorf("failed to store feature flag: %w", err)
	}
	if err := s.redis.Delete(ctx, cacheKey(feature)); err != nil {
		slog.WarnContext(ctx, "Failed to invalidate feature flag cache", "feature", feature, "error", err)
	}

	slog.InfoContext(ctx, "Feature toggled",
		"feature", feature, "enabled", enabled, "updated_by", updatedBy, "reason", reason)
	return flag, nil
}

// ListFlags returns the state of every feature, including untouched ones
// at their default.
func (s *Service) ListFlags(ctx context.Context) ([]models.FeatureFlag, error) {
	stored, err := s.repository.ListFlags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list feature flags: %w", err)
	}

	byFeature := make(map[models.Feature]models.FeatureFlag, len(stored))
	for _, flag := range stored {
		byFeature[flag.Feature] = flag
	}

	flags := make([]models.FeatureFlag, 0, len(models.AllFeatures))
	for _, feature := range models.AllFeatures {
		if flag, ok := byFeature[feature]; ok {
			flags = append(flags, flag)
		} else {
			flags = append(flags, models.FeatureFlag{Feature: feature, Enabled: true})
		}
	}
	return flags, nil
}
