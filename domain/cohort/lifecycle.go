package cohort

import (
	"agebounds/domain/core"
)

// State is the lifecycle position of one population instance
type State int

const (
	// Uninitialized: created by the engine, ages and prognoses not yet fixed
	Uninitialized State = iota
	// Configured: initialized, re-aged and prognoses recomputed; ready for one trial
	Configured
	// Consumed: a trial has run against this population; it must not be reused
	Consumed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Configured:
		return "configured"
	case Consumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// Lifecycle tracks the state of a single population instance.
// The zero value is Uninitialized.
type Lifecycle struct {
	state State
}

// State returns the current state
func (l *Lifecycle) State() State {
	return l.state
}

// MarkConfigured moves Uninitialized -> Configured. A consumed population
// cannot be reconfigured; callers create a fresh one.
func (l *Lifecycle) MarkConfigured() error {
	if l.state != Uninitialized {
		return core.NewTransitionError(l.state.String(), Configured.String())
	}
	l.state = Configured
	return nil
}

// MarkConsumed moves Configured -> Consumed
func (l *Lifecycle) MarkConsumed() error {
	if l.state != Configured {
		return core.NewTransitionError(l.state.String(), Consumed.String())
	}
	l.state = Consumed
	return nil
}

// RequireConfigured fails unless the population is ready for a trial
func (l *Lifecycle) RequireConfigured() error {
	if l.state != Configured {
		return core.NewTransitionError(l.state.String(), "run")
	}
	return nil
}
