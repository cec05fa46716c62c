package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors
	ErrUnknownScenario  = errors.New("unknown scenario")
	ErrBucketOutOfRange = errors.New("bucket index has no upper neighbor")
	ErrInvalidAge       = errors.New("invalid age")
	ErrInvalidTrials    = errors.New("trial count must be positive")
	ErrUnknownTable     = errors.New("unknown probability table")

	// Lifecycle errors
	ErrInvalidTransition = errors.New("invalid population state transition")

	// Engine contract errors
	ErrMissingChannel = errors.New("result channel missing or empty")

	// Statistical assertion
	ErrBoundViolated = errors.New("empirical value outside theoretical bound")
)

// Error constructors with context
func NewUnknownScenarioError(name string) error {
	return fmt.Errorf("%w: need one of [symptomatic, severe] but got %q", ErrUnknownScenario, name)
}

func NewBucketRangeError(bucket, tableLen int) error {
	return fmt.Errorf("%w: bucket %d, table length %d", ErrBucketOutOfRange, bucket, tableLen)
}

func NewTransitionError(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func NewMissingChannelError(channel string) error {
	return fmt.Errorf("%w: %s", ErrMissingChannel, channel)
}

// Error checking helpers
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnknownScenario) ||
		errors.Is(err, ErrBucketOutOfRange) ||
		errors.Is(err, ErrInvalidAge) ||
		errors.Is(err, ErrInvalidTrials) ||
		errors.Is(err, ErrUnknownTable)
}

func IsAssertionFailure(err error) bool {
	return errors.Is(err, ErrBoundViolated)
}
