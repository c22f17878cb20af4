package services

import (
	"context"
	"fmt"
	"log/slog"

	"colonywars/internal/fees/models"
	"colonywars/pkg/gamebridge"
	"colonywars/pkg/warerrors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Service handles fee application and configuration. Applying a fee is a
// single idempotent step invoked by the higher war modules; the actual value
// movement is delegated to the treasury collaborator.
type Service struct {
	repository *Repository
	treasury   gamebridge.Treasury
}

// NewService creates a new fee service
func NewService(repository *Repository, treasury gamebridge.Treasury) *Service {
	return &Service{
		repository: repository,
		treasury:   treasury,
	}
}

// ApplyOperationFee looks up the named fee, scales it by the caller-supplied
// quantity, and burns or forwards the amount. A disabled or unconfigured-to-
// zero fee is a no-op; a missing fee is a configuration error.
func (s *Service) ApplyOperationFee(ctx context.Context, name string, quantity int64, payer string) error {
	fee, err := s.repository.GetFeeByName(ctx, name)
	if err == mongo.ErrNoDocuments {
		return &warerrors.ConfigurationError{Parameter: name, Reason: "fee is not configured"}
	}
	if err != nil {
		return fmt.Errorf("failed to load fee %s: %w", name, err)
	}

	if !fee.Enabled {
		slog.DebugContext(ctx, "Fee disabled, skipping", "fee", name)
		return nil
	}

	amount := models.ComputeAmount(fee.BaseAmount, fee.MultiplierBps, quantity)
	if amount == 0 {
		return nil
	}

	if fee.Burn {
		if err := s.treasury.Burn(ctx, fee.Currency, amount, payer); err != nil {
			return fmt.Errorf("failed to burn fee %s: %w", name, err)
		}
	} else {
		if err := s.treasury.Transfer(ctx, fee.Currency, amount, payer, fee.Beneficiary); err != nil {
			return fmt.Errorf("failed to collect fee %s: %w", name, err)
		}
	}

	slog.InfoContext(ctx, "Operation fee applied",
		"fee", name, "amount", amount, "payer", payer, "burn", fee.Burn)
	return nil
}

// GetFee returns one fee configuration
func (s *Service) GetFee(ctx context.Context, name string) (*models.OperationFee, error) {
	return s.repository.GetFeeByName(ctx, name)
}

// ListFees returns all fee configurations
func (s *Service) ListFees(ctx context.Context) ([]models.OperationFee, error) {
	return s.repository.ListFees(ctx)
}

// ConfigureFee creates or replaces a fee configuration (administrative)
func (s *Service) ConfigureFee(ctx context.Context, fee *models.OperationFee) error {
	if fee.Name == "" {
		return &warerrors.ConfigurationError{Parameter: "name", Reason: "fee name is required"}
	}
	if fee.BaseAmount < 0 || fee.MultiplierBps < 0 {
		return &warerrors.ConfigurationError{Parameter: fee.Name, Reason: "amounts must be non-negative"}
	}

	if err := s.repository.UpsertFee(ctx, fee); err != nil {
		return fmt.Errorf("failed to save fee %s: %w", fee.Name, err)
	}

	slog.InfoContext(ctx, "Fee configured", "fee", fee.Name, "base", fee.BaseAmount, "enabled", fee.Enabled)
	return nil
}

// SetFeeEnabled toggles a fee configuration (administrative)
func (s *Service) SetFeeEnabled(ctx context.Context, name string, enabled bool) error {
	if err := s.repository.SetEnabled(ctx, name, enabled); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Fee toggled", "fee", name, "enabled", enabled)
	return nil
}
