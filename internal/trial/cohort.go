package trial

import (
	"context"

	"agebounds/domain/cohort"
	"agebounds/ports"
)

// Cohort is one engine population together with its lifecycle state.
// A cohort serves exactly one trial.
type Cohort struct {
	Population ports.Population
	lifecycle  cohort.Lifecycle
}

// NewCohort asks the engine for a fresh, uninitialized population
func NewCohort(ctx context.Context, engine ports.SimulationEngine, cfg ports.Configuration) (*Cohort, error) {
	pop, err := engine.CreatePopulation(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Cohort{Population: pop}, nil
}

// State returns the cohort's lifecycle state
func (c *Cohort) State() cohort.State {
	return c.lifecycle.State()
}
