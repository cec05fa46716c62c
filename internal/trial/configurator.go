package trial

import (
	"context"
	"fmt"

	"agebounds/domain/cohort"
	"agebounds/domain/core"
	"agebounds/internal"
	"agebounds/ports"
)

const (
	MinAge = 0
	MaxAge = 130
)

// FixedAgeConfigurator forces every individual of a cohort to one age and
// recomputes prognoses from the configuration's probability view
type FixedAgeConfigurator struct {
	engine ports.SimulationEngine
	logger *internal.Logger
}

// NewFixedAgeConfigurator creates a configurator for the given engine
func NewFixedAgeConfigurator(engine ports.SimulationEngine) *FixedAgeConfigurator {
	return &FixedAgeConfigurator{
		engine: engine,
		logger: internal.DefaultLogger.With("configurator"),
	}
}

// Configure drives an Uninitialized cohort to Configured: initialize, set
// ages, recompute prognoses. Engine errors are returned unmodified.
func (f *FixedAgeConfigurator) Configure(ctx context.Context, c *Cohort, cfg ports.Configuration, age int) error {
	if age < MinAge || age > MaxAge {
		return fmt.Errorf("%w: %d outside [%d, %d]", core.ErrInvalidAge, age, MinAge, MaxAge)
	}
	if c.State() != cohort.Uninitialized {
		return core.NewTransitionError(c.State().String(), cohort.Configured.String())
	}

	if err := f.engine.Initialize(ctx, c.Population, cfg); err != nil {
		return err
	}
	if err := f.engine.SetAges(c.Population, age); err != nil {
		return err
	}
	if err := f.engine.RecomputePrognoses(c.Population, cfg.Prognoses); err != nil {
		return err
	}
	if err := f.verifyUniform(c, age); err != nil {
		return err
	}

	f.logger.Trace("cohort of %d configured at age %d (seed %d)", c.Population.Size(), age, cfg.RandSeed)
	return c.lifecycle.MarkConfigured()
}

// verifyUniform checks every individual has the target age and the same
// prognosis record
func (f *FixedAgeConfigurator) verifyUniform(c *Cohort, age int) error {
	people, err := f.engine.Individuals(c.Population)
	if err != nil {
		return err
	}
	if len(people) == 0 {
		return nil
	}
	first := people[0].Prognosis
	for i, p := range people {
		if p.Age != age {
			return fmt.Errorf("individual %d has age %d after fixing ages to %d", i, p.Age, age)
		}
		if !p.Prognosis.Equal(first) {
			return fmt.Errorf("individual %d prognosis %v differs from %v", i, p.Prognosis, first)
		}
	}
	return nil
}
