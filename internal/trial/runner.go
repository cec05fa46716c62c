package trial

import (
	"context"

	"agebounds/domain/run"
	"agebounds/internal"
	"agebounds/ports"
)

// Runner executes one trial on a configured cohort and extracts the final
// values of two channels
type Runner struct {
	engine ports.SimulationEngine
	logger *internal.Logger
}

// NewRunner creates a trial runner for the given engine
func NewRunner(engine ports.SimulationEngine) *Runner {
	return &Runner{
		engine: engine,
		logger: internal.DefaultLogger.With("trial"),
	}
}

// Run consumes the cohort. The full result series is returned alongside the
// outcome for optional diagnostics. Engine errors are returned unmodified.
func (r *Runner) Run(ctx context.Context, c *Cohort, cfg ports.Configuration, channels ports.ChannelPair) (run.TrialOutcome, ports.ResultSeries, error) {
	if err := c.lifecycle.RequireConfigured(); err != nil {
		return run.TrialOutcome{}, nil, err
	}
	if err := c.lifecycle.MarkConsumed(); err != nil {
		return run.TrialOutcome{}, nil, err
	}

	results, err := r.engine.Run(ctx, c.Population, cfg)
	if err != nil {
		return run.TrialOutcome{}, nil, err
	}

	numerator, err := results.Final(channels.Numerator)
	if err != nil {
		return run.TrialOutcome{}, nil, err
	}
	denominator, err := results.Final(channels.Denominator)
	if err != nil {
		return run.TrialOutcome{}, nil, err
	}

	r.logger.Debug("seed %d: %s = %g, %s = %g", cfg.RandSeed,
		channels.Numerator, numerator, channels.Denominator, denominator)

	return run.TrialOutcome{
		Seed:        cfg.RandSeed,
		Numerator:   numerator,
		Denominator: denominator,
	}, results, nil
}
