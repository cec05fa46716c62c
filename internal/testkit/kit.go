package testkit

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"agebounds/domain/verdict"
	"agebounds/ports"
)

// TestKit provides testing utilities and fixtures
type TestKit struct {
	engine *Engine
	ledger *InMemoryVerdictLedger
	rng    *RNGAdapter
}

// NewTestKit creates a new test kit backed by the reference engine
func NewTestKit() (*TestKit, error) {
	rng := &RNGAdapter{}
	return &TestKit{
		engine: NewEngine(rng),
		ledger: NewInMemoryVerdictLedger(),
		rng:    rng,
	}, nil
}

// Engine returns the reference simulation engine
func (t *TestKit) Engine() *Engine {
	return t.engine
}

// RNGAdapter returns an RNG adapter
func (t *TestKit) RNGAdapter() ports.RNGPort {
	return t.rng
}

// LedgerAdapter returns the shared in-memory verdict ledger
func (t *TestKit) LedgerAdapter() *InMemoryVerdictLedger {
	return t.ledger
}

// RNGAdapter implements the RNGPort interface for testing
type RNGAdapter struct{}

// SeededStream creates a deterministic random number generator for a named operation.
// Distinct names with the same seed yield independent streams.
func (r *RNGAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if name != "" {
		seed = int64(hashString(name)) + seed
	}
	return rand.New(rand.NewSource(seed)), nil
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}

// InMemoryVerdictLedger implements VerdictLedger with in-memory storage
type InMemoryVerdictLedger struct {
	records []verdict.Record
	mu      sync.RWMutex
}

func NewInMemoryVerdictLedger() *InMemoryVerdictLedger {
	return &InMemoryVerdictLedger{}
}

func (s *InMemoryVerdictLedger) Record(ctx context.Context, rec verdict.Record) error {
	if rec.RunID == "" {
		return fmt.Errorf("verdict record needs a run ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *InMemoryVerdictLedger) ListByScenario(ctx context.Context, scenario string) ([]verdict.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []verdict.Record
	for _, rec := range s.records {
		if rec.Scenario == scenario {
			results = append(results, rec)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RecordedAt.After(results[j].RecordedAt)
	})
	return results, nil
}

// FailingEngine wraps an engine and fails Run for one seed
type FailingEngine struct {
	ports.SimulationEngine
	FailSeed int64
	Err      error
	mu       sync.Mutex
	runs     []int64
}

func (f *FailingEngine) Run(ctx context.Context, pop ports.Population, cfg ports.Configuration) (ports.ResultSeries, error) {
	f.mu.Lock()
	f.runs = append(f.runs, cfg.RandSeed)
	f.mu.Unlock()
	if cfg.RandSeed == f.FailSeed {
		return nil, f.Err
	}
	return f.SimulationEngine.Run(ctx, pop, cfg)
}

// Runs returns the seeds Run was called with, in call order
func (f *FailingEngine) Runs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.runs...)
}
