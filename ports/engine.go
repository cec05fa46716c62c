package ports

import (
	"context"
	"fmt"

	"agebounds/domain/core"
	"agebounds/domain/prognosis"
)

// Channel names a cumulative outcome time series in a trial result
type Channel string

const (
	ChannelInfections  Channel = "cum_infections"
	ChannelSymptomatic Channel = "cum_symptomatic"
	ChannelSevere      Channel = "cum_severe"
)

// Configuration holds the named simulation parameters for one trial.
// Only RandSeed varies between trials of a scenario.
type Configuration struct {
	PopSize     int   `json:"pop_size"`
	PopInfected int   `json:"pop_infected"`
	RandSeed    int64 `json:"rand_seed"`
	Days        int   `json:"n_days"`

	// Prognoses is the probability view used when recomputing prognoses.
	// The zero value means the engine's own tables.
	Prognoses prognosis.Set `json:"-"`
}

// WithSeed returns a copy of the configuration with a different seed
func (c Configuration) WithSeed(seed int64) Configuration {
	c.RandSeed = seed
	return c
}

// WithPrognoses returns a copy of the configuration carrying a probability view
func (c Configuration) WithPrognoses(s prognosis.Set) Configuration {
	c.Prognoses = s
	return c
}

// Population is an engine-owned handle to one set of individuals
type Population interface {
	Size() int
}

// Individual is a read-only view of one member of a population
type Individual struct {
	Age       int              `json:"age"`
	Prognosis prognosis.Record `json:"prognosis"`
}

// ResultSeries maps channel names to per-day values
type ResultSeries map[Channel][]float64

// Final returns the last value of a channel
func (r ResultSeries) Final(ch Channel) (float64, error) {
	series, ok := r[ch]
	if !ok || len(series) == 0 {
		return 0, core.NewMissingChannelError(string(ch))
	}
	return series[len(series)-1], nil
}

// SimulationEngine is the narrow surface the harness consumes from the
// stochastic simulator.
type SimulationEngine interface {
	// DefaultConfiguration returns the engine's default parameters
	DefaultConfiguration() Configuration

	// CreatePopulation builds a new, uninitialized population
	CreatePopulation(ctx context.Context, cfg Configuration) (Population, error)

	// Initialize finalizes per-individual state before any age override
	Initialize(ctx context.Context, pop Population, cfg Configuration) error

	// SetAges overwrites every individual's age
	SetAges(pop Population, age int) error

	// RecomputePrognoses derives each individual's prognosis from its current
	// age using the given view, or the engine's tables when view is zero
	RecomputePrognoses(pop Population, view prognosis.Set) error

	// Run executes one trial to the configured horizon
	Run(ctx context.Context, pop Population, cfg Configuration) (ResultSeries, error)

	// ProbabilityTable returns an engine-owned age-stratified table
	ProbabilityTable(pop Population, name prognosis.TableName) (prognosis.Table, error)

	// Individuals returns a snapshot of every individual
	Individuals(pop Population) ([]Individual, error)
}

// ChannelPair names the numerator and denominator channels under test
type ChannelPair struct {
	Numerator   Channel
	Denominator Channel
}

func (p ChannelPair) String() string {
	return fmt.Sprintf("%s/%s", p.Numerator, p.Denominator)
}
