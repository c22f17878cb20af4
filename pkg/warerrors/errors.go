// Package warerrors defines the typed error taxonomy shared by all war
// modules. Every externally-triggered action fails with exactly one of these
// types (or a wrapped repository error); nothing is retried automatically.
package warerrors

import (
	"fmt"
	"time"
)

// NotInitializedError indicates an action was attempted before setup ran.
type NotInitializedError struct {
	Component string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("%s is not initialized", e.Component)
}

// InvalidStateTransitionError indicates an operation is not valid for the
// entity's current state, e.g. resolving a siege with no snapshot or
// declaring a siege on an already-contested territory.
type InvalidStateTransitionError struct {
	Entity string
	From   string
	To     string
	Reason string
}

func (e *InvalidStateTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s transition %s -> %s: %s", e.Entity, e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid %s transition %s -> %s", e.Entity, e.From, e.To)
}

// CooldownActiveError indicates a rate limit has not yet elapsed.
// Remaining carries the time left until the action becomes available.
type CooldownActiveError struct {
	ActorKey  string
	ActionID  string
	Remaining time.Duration
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("cooldown active for %s on %s: %s remaining", e.ActionID, e.ActorKey, e.Remaining)
}

// CapacityExceededError indicates a configured cap was hit (territory caps,
// alliance size, task-force size, daily attack quota).
type CapacityExceededError struct {
	Resource string
	Limit    int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded for %s (limit %d)", e.Resource, e.Limit)
}

// OwnershipConflictError indicates a duplicate owner inside an alliance or a
// double assignment of a staked token.
type OwnershipConflictError struct {
	Resource string
	Owner    string
}

func (e *OwnershipConflictError) Error() string {
	return fmt.Sprintf("ownership conflict on %s for owner %s", e.Resource, e.Owner)
}

// InsufficientStakeError indicates the supplied stake is below the required
// minimum for the operation.
type InsufficientStakeError struct {
	Required int64
	Provided int64
}

func (e *InsufficientStakeError) Error() string {
	return fmt.Sprintf("insufficient stake: required %d, provided %d", e.Required, e.Provided)
}

// ConfigurationError indicates a disabled feature or an invalid parameter.
type ConfigurationError struct {
	Parameter string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error on %s: %s", e.Parameter, e.Reason)
}
