package services

import (
	"context"
	"testing"

	"colonywars/internal/territory/models"
	"colonywars/pkg/warerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTerritory_ValidatesTypeAndBonus(t *testing.T) {
	ctx := context.Background()
	// Validation runs before any persistence, so a bare service is enough.
	svc := &Service{}

	_, err := svc.RegisterTerritory(ctx, 7, "Dune Ridge", "volcano", 500, 1000)
	var cfg *warerrors.ConfigurationError
	require.ErrorAs(t, err, &cfg)
	assert.Equal(t, "type", cfg.Parameter)

	_, err = svc.RegisterTerritory(ctx, 7, "Dune Ridge", models.TypeSpiceFields, 0, 1000)
	require.ErrorAs(t, err, &cfg)
	assert.Equal(t, "bonus_value", cfg.Parameter)

	_, err = svc.RegisterTerritory(ctx, 7, "Dune Ridge", models.TypeSpiceFields, 500, 0)
	require.ErrorAs(t, err, &cfg)
	assert.Equal(t, "base_defense", cfg.Parameter)
}
