package domain

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the habit (or its statistics) is absent.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the caller does not own the habit.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDuplicateCompletion may be returned by stores when a completion
	// already exists for the (habit, day) pair. Check-in treats it as success.
	ErrDuplicateCompletion = errors.New("completion already recorded for this day")

	// ErrStoreUnavailable marks a transient store failure. Retryable.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvariantViolation means the event log breaks a store-level
	// constraint, e.g. two completions for the same habit and day.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrInvalidHabit wraps validation failures on habit input.
	ErrInvalidHabit = errors.New("invalid habit")
)

// IsRetryable reports whether err is a transient store failure or a timeout.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, context.DeadlineExceeded)
}
