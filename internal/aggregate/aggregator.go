package aggregate

import (
	"context"
	"fmt"

	"agebounds/domain/core"
	"agebounds/domain/run"
	"agebounds/internal"
	"agebounds/internal/scenario"
	"agebounds/internal/trial"
	"agebounds/ports"

	"golang.org/x/sync/errgroup"
)

// Request describes one multi-seed aggregation
type Request struct {
	Scenario scenario.Scenario
	Base     ports.Configuration
	Age      int
	Trials   int

	// Concurrency bounds how many trials run at once. Values below 2 run
	// trials sequentially in seed order.
	Concurrency int
}

// Result is the aggregate plus the series of the highest seed, kept for
// diagnostics
type Result struct {
	Aggregate  *run.Aggregate
	LastSeries ports.ResultSeries
}

// Aggregator runs a scenario across seeds 0..N-1. Every seed gets a fresh
// population, so trials never share state.
type Aggregator struct {
	engine       ports.SimulationEngine
	configurator *trial.FixedAgeConfigurator
	runner       *trial.Runner
	logger       *internal.Logger
}

// NewAggregator wires the configurator and runner for one engine
func NewAggregator(engine ports.SimulationEngine) *Aggregator {
	return &Aggregator{
		engine:       engine,
		configurator: trial.NewFixedAgeConfigurator(engine),
		runner:       trial.NewRunner(engine),
		logger:       internal.DefaultLogger.With("aggregate"),
	}
}

// Run executes all trials and returns their totals. The first failing trial
// aborts the aggregation and no partial result is returned.
func (a *Aggregator) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Trials <= 0 {
		return nil, fmt.Errorf("%w: got %d", core.ErrInvalidTrials, req.Trials)
	}

	a.logger.Info("scenario %s: %d trials at age %d (%s)",
		req.Scenario.Name, req.Trials, req.Age, req.Scenario.Channels)

	if req.Concurrency > 1 {
		return a.runParallel(ctx, req)
	}
	return a.runSequential(ctx, req)
}

func (a *Aggregator) runSequential(ctx context.Context, req Request) (*Result, error) {
	agg := run.NewAggregate(req.Trials)
	var last ports.ResultSeries

	for seed := int64(0); seed < int64(req.Trials); seed++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcome, series, err := a.runTrial(ctx, req, seed)
		if err != nil {
			a.logger.Error("scenario %s aborted at seed %d: %v", req.Scenario.Name, seed, err)
			return nil, err
		}
		agg.Add(outcome)
		last = series
	}

	return &Result{Aggregate: agg, LastSeries: last}, nil
}

// runParallel gives each trial its own population and sums outcomes in seed
// order afterwards, so totals match the sequential run exactly
func (a *Aggregator) runParallel(ctx context.Context, req Request) (*Result, error) {
	outcomes := make([]run.TrialOutcome, req.Trials)
	series := make([]ports.ResultSeries, req.Trials)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Concurrency)

	for i := 0; i < req.Trials; i++ {
		seed := int64(i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome, s, err := a.runTrial(gctx, req, seed)
			if err != nil {
				a.logger.Error("scenario %s aborted at seed %d: %v", req.Scenario.Name, seed, err)
				return err
			}
			outcomes[seed] = outcome
			series[seed] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := run.NewAggregate(req.Trials)
	for _, o := range outcomes {
		agg.Add(o)
	}
	return &Result{Aggregate: agg, LastSeries: series[req.Trials-1]}, nil
}

func (a *Aggregator) runTrial(ctx context.Context, req Request, seed int64) (run.TrialOutcome, ports.ResultSeries, error) {
	cfg := req.Base.WithSeed(seed)

	c, err := trial.NewCohort(ctx, a.engine, cfg)
	if err != nil {
		return run.TrialOutcome{}, nil, err
	}
	if err := a.configurator.Configure(ctx, c, cfg, req.Age); err != nil {
		return run.TrialOutcome{}, nil, err
	}
	return a.runner.Run(ctx, c, cfg, req.Scenario.Channels)
}
