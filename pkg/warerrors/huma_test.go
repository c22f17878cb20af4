package warerrors

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestToHuma_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "not initialized maps to 503",
			err:        &NotInitializedError{Component: "season manager"},
			wantStatus: 503,
		},
		{
			name:       "invalid transition maps to 409",
			err:        &InvalidStateTransitionError{Entity: "siege", From: "resolved", To: "declared"},
			wantStatus: 409,
		},
		{
			name:       "cooldown maps to 429",
			err:        &CooldownActiveError{ActorKey: "colony:1", ActionID: "siege", Remaining: time.Minute},
			wantStatus: 429,
		},
		{
			name:       "capacity maps to 409",
			err:        &CapacityExceededError{Resource: "territories", Limit: 6},
			wantStatus: 409,
		},
		{
			name:       "ownership conflict maps to 409",
			err:        &OwnershipConflictError{Resource: "alliance", Owner: "0xaaa"},
			wantStatus: 409,
		},
		{
			name:       "insufficient stake maps to 400",
			err:        &InsufficientStakeError{Required: 100, Provided: 10},
			wantStatus: 400,
		},
		{
			name:       "configuration error maps to 400",
			err:        &ConfigurationError{Parameter: "treaty type", Reason: "unknown"},
			wantStatus: 400,
		},
		{
			name:       "missing document maps to 404",
			err:        mongo.ErrNoDocuments,
			wantStatus: 404,
		},
		{
			name:       "wrapped domain error still matches",
			err:        fmt.Errorf("declare siege: %w", &CapacityExceededError{Resource: "quota", Limit: 3}),
			wantStatus: 409,
		},
		{
			name:       "unknown error maps to 500",
			err:        errors.New("boom"),
			wantStatus: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToHuma(tt.err)
			require.Error(t, got)

			var statusErr huma.StatusError
			require.ErrorAs(t, got, &statusErr)
			assert.Equal(t, tt.wantStatus, statusErr.GetStatus())
		})
	}
}

func TestToHuma_NilPassthrough(t *testing.T) {
	assert.NoError(t, ToHuma(nil))
}
