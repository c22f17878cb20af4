package warerrors

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// ToHuma translates a domain error into the appropriate Huma status error.
// Routes call this once at the boundary instead of switching per handler.
func ToHuma(err error) error {
	if err == nil {
		return nil
	}

	var notInit *NotInitializedError
	var badState *InvalidStateTransitionError
	var cooldown *CooldownActiveError
	var capacity *CapacityExceededError
	var ownership *OwnershipConflictError
	var stake *InsufficientStakeError
	var conf *ConfigurationError

	switch {
	case errors.As(err, &notInit):
		return huma.Error503ServiceUnavailable(notInit.Error())
	case errors.As(err, &badState):
		return huma.Error409Conflict(badState.Error())
	case errors.As(err, &cooldown):
		return huma.Error429TooManyRequests(cooldown.Error())
	case errors.As(err, &capacity):
		return huma.Error409Conflict(capacity.Error())
	case errors.As(err, &ownership):
		return huma.Error409Conflict(ownership.Error())
	case errors.As(err, &stake):
		return huma.Error400BadRequest(stake.Error())
	case errors.As(err, &conf):
		return huma.Error400BadRequest(conf.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		return huma.Error404NotFound("resource not found")
	default:
		return huma.Error500InternalServerError("internal error", err)
	}
}
