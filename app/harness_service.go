package app

import (
	"context"
	"fmt"
	"time"

	"agebounds/adapters/debugdump"
	"agebounds/domain/core"
	"agebounds/domain/prognosis"
	"agebounds/domain/run"
	"agebounds/domain/verdict"
	"agebounds/internal"
	"agebounds/internal/aggregate"
	"agebounds/internal/config"
	"agebounds/internal/errors"
	"agebounds/internal/referee"
	"agebounds/internal/scenario"
	"agebounds/ports"
)

// HarnessService runs age-bucket acceptance scenarios against one engine
type HarnessService struct {
	engine     ports.SimulationEngine
	base       prognosis.Set
	settings   config.HarnessConfig
	aggregator *aggregate.Aggregator
	referee    *referee.BoundReferee
	ledger     ports.VerdictLedger
	dumper     *debugdump.Dumper
	logger     *internal.Logger
}

// ScenarioRequest selects one scenario at one fixed age. Zero values for
// Trials, Mode and Concurrency fall back to the service settings.
type ScenarioRequest struct {
	Name        string
	Age         int
	Bucket      int
	Trials      int
	Mode        verdict.Mode
	Concurrency int
}

// ScenarioResult contains the complete output of one scenario run
type ScenarioResult struct {
	RunID       core.RunID            `json:"run_id"`
	Scenario    scenario.Name         `json:"scenario"`
	Age         int                   `json:"age"`
	Verdict     verdict.Verdict       `json:"verdict"`
	Summary     referee.RefereeResult `json:"summary"`
	Aggregate   *run.Aggregate        `json:"aggregate"`
	Fingerprint core.Hash             `json:"fingerprint"`
	Dump        *debugdump.Paths      `json:"dump,omitempty"`
	RuntimeMs   int64                 `json:"runtime_ms"`
}

// NewHarnessService creates a harness over engine. base is the engine's own
// prognosis set; scenarios derive override views from it without changing it.
func NewHarnessService(engine ports.SimulationEngine, base prognosis.Set, settings config.HarnessConfig) *HarnessService {
	return &HarnessService{
		engine:     engine,
		base:       base,
		settings:   settings,
		aggregator: aggregate.NewAggregator(engine),
		referee:    referee.NewBoundReferee(),
		logger:     internal.DefaultLogger.With("harness"),
	}
}

// WithLedger records every verdict in ledger
func (s *HarnessService) WithLedger(ledger ports.VerdictLedger) *HarnessService {
	s.ledger = ledger
	return s
}

// WithDumper writes debug artifacts for every scenario run
func (s *HarnessService) WithDumper(dumper *debugdump.Dumper) *HarnessService {
	s.dumper = dumper
	return s
}

// RunScenario configures, runs, aggregates and evaluates one scenario.
//
// A FAIL verdict returns both the result and an ASSERTION_FAILED error.
// Engine errors are returned unmodified; caller mistakes (unknown scenario,
// unknown mode, bucket without an upper neighbor) carry CONFIG_INVALID,
// INVALID_INPUT or OUT_OF_RANGE codes and are detected before any trial
// runs. An invalid age is rejected when the first cohort is configured,
// before the engine runs.
func (s *HarnessService) RunScenario(ctx context.Context, req ScenarioRequest) (*ScenarioResult, error) {
	startTime := time.Now()

	sc, view, err := scenario.Select(req.Name, s.base)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}

	modeName := req.Mode
	if modeName == "" {
		modeName = s.settings.Mode
	}
	mode, err := referee.ResolveMode(string(modeName))
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	trials := req.Trials
	if trials == 0 {
		trials = s.settings.Trials
	}
	concurrency := req.Concurrency
	if concurrency == 0 {
		concurrency = s.settings.Concurrency
	}

	cfg := s.configuration().WithPrognoses(view)
	if err := referee.ValidateMode(mode, cfg.PopSize); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}

	table, err := s.probabilityTable(ctx, cfg, sc.Column)
	if err != nil {
		return nil, err
	}
	if err := referee.ValidateBucket(table, req.Bucket); err != nil {
		return nil, errors.WithCode(errors.CodeOutOfRange, err)
	}

	result, err := s.aggregator.Run(ctx, aggregate.Request{
		Scenario:    sc,
		Base:        cfg,
		Age:         req.Age,
		Trials:      trials,
		Concurrency: concurrency,
	})
	if err != nil {
		if core.IsConfigurationError(err) {
			return nil, errors.WithCode(errors.CodeConfigInvalid, err)
		}
		return nil, err
	}

	v, err := s.referee.Evaluate(referee.BoundRequest{
		Aggregate: result.Aggregate,
		Table:     table,
		Bucket:    req.Bucket,
		Mode:      mode,
		PopSize:   cfg.PopSize,
	})
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}

	out := &ScenarioResult{
		RunID:       core.NewRunID(),
		Scenario:    sc.Name,
		Age:         req.Age,
		Verdict:     v,
		Summary:     referee.Summarize(v),
		Aggregate:   result.Aggregate,
		Fingerprint: result.Aggregate.Fingerprint(),
	}

	if s.dumper != nil {
		label := fmt.Sprintf("%s_age%d_bucket%d", sc.Name, req.Age, req.Bucket)
		paths, err := s.dumper.Dump(label, result.LastSeries, result.Aggregate, v)
		if err != nil {
			s.logger.Warn("debug dump failed for %s: %v", label, err)
		} else {
			out.Dump = &paths
		}
	}

	var ledgerErr error
	if s.ledger != nil {
		if err := s.ledger.Record(ctx, s.record(out, req.Bucket)); err != nil {
			ledgerErr = errors.Wrap(err, "failed to record verdict")
		}
	}

	out.RuntimeMs = time.Since(startTime).Milliseconds()
	s.logger.Info("%s age %d bucket %d: %s (%s)", sc.Name, req.Age, req.Bucket, v.Status, v.Message)

	if !v.Passed() {
		// the assertion failure stays outermost so GetCode reports it
		return out, errors.Join(errors.AssertionFailed(v.Err()), ledgerErr)
	}
	return out, ledgerErr
}

// RunAgeSweep runs the named scenario at every age of scenario.AgeSweep.
// Each age is independent; all ages run and their errors are joined.
func (s *HarnessService) RunAgeSweep(ctx context.Context, name string, mode verdict.Mode) ([]*ScenarioResult, error) {
	var results []*ScenarioResult
	var errs []error

	for _, c := range scenario.AgeSweep() {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := s.RunScenario(ctx, ScenarioRequest{Name: name, Age: c.Age, Bucket: c.Bucket, Mode: mode})
		if res != nil {
			results = append(results, res)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("age %d: %w", c.Age, err))
		}
	}
	return results, errors.Join(errs...)
}

// configuration merges the engine defaults with the service settings
func (s *HarnessService) configuration() ports.Configuration {
	cfg := s.engine.DefaultConfiguration()
	if s.settings.PopSize > 0 {
		cfg.PopSize = s.settings.PopSize
	}
	if s.settings.PopInfected > 0 {
		cfg.PopInfected = s.settings.PopInfected
	}
	if s.settings.Days > 0 {
		cfg.Days = s.settings.Days
	}
	return cfg
}

// probabilityTable reads the engine-owned column through a throwaway population
func (s *HarnessService) probabilityTable(ctx context.Context, cfg ports.Configuration, column prognosis.TableName) (prognosis.Table, error) {
	pop, err := s.engine.CreatePopulation(ctx, cfg)
	if err != nil {
		return prognosis.Table{}, err
	}
	table, err := s.engine.ProbabilityTable(pop, column)
	if err != nil {
		return prognosis.Table{}, err
	}
	return table, nil
}

func (s *HarnessService) record(res *ScenarioResult, bucket int) verdict.Record {
	return verdict.Record{
		RunID:       res.RunID,
		Scenario:    string(res.Scenario),
		Age:         res.Age,
		Bucket:      bucket,
		Mode:        res.Verdict.Mode,
		Trials:      res.Verdict.Trials,
		Status:      res.Verdict.Status,
		Lower:       res.Verdict.Interval.Lower,
		Upper:       res.Verdict.Interval.Upper,
		Observed:    res.Verdict.AverageNumerator,
		Message:     res.Verdict.Message,
		Fingerprint: res.Fingerprint,
		RecordedAt:  time.Now().UTC(),
	}
}
