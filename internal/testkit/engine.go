package testkit

import (
	"context"
	"fmt"

	"agebounds/domain/prognosis"
	"agebounds/ports"
)

// DynamicsConfig configures the reference engine's transmission model
type DynamicsConfig struct {
	ContactsPerDay int     `json:"contacts_per_day"`
	Beta           float64 `json:"beta"`
	InfectiousDays int     `json:"infectious_days"`
	MaxAge         int     `json:"max_age"`
}

// DefaultDynamics returns a fast, near-saturating outbreak so that almost every
// individual is infected within the default horizon
func DefaultDynamics() DynamicsConfig {
	return DynamicsConfig{
		ContactsPerDay: 10,
		Beta:           0.3,
		InfectiousDays: 7,
		MaxAge:         90,
	}
}

// DefaultAgeAnchors keys table entry k to age 10*(k+1); an age strictly
// between two anchors gets a linearly interpolated probability
var DefaultAgeAnchors = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// DefaultPrognoses returns the engine-owned age-stratified tables
func DefaultPrognoses() prognosis.Set {
	set, err := prognosis.NewSet(DefaultAgeAnchors, map[prognosis.TableName][]float64{
		prognosis.SymptomaticProbs: {0.50, 0.55, 0.60, 0.65, 0.70, 0.75, 0.80, 0.85, 0.90, 0.90},
		prognosis.SevereProbs:      {0.00050, 0.00165, 0.00720, 0.02080, 0.03430, 0.07650, 0.13280, 0.20655, 0.24570, 0.24570},
	})
	if err != nil {
		panic(fmt.Sprintf("testkit: invalid default prognoses: %v", err))
	}
	return set
}

// Engine is a minimal seeded stochastic epidemic model implementing
// ports.SimulationEngine. It exists to exercise the harness.
type Engine struct {
	prognoses prognosis.Set
	rng       ports.RNGPort
	dynamics  DynamicsConfig
}

// NewEngine creates an engine with the default tables and dynamics
func NewEngine(rng ports.RNGPort) *Engine {
	return NewEngineWith(rng, DefaultPrognoses(), DefaultDynamics())
}

// NewEngineWith creates an engine with explicit tables and dynamics
func NewEngineWith(rng ports.RNGPort, prognoses prognosis.Set, dynamics DynamicsConfig) *Engine {
	return &Engine{prognoses: prognoses, rng: rng, dynamics: dynamics}
}

// population is the engine-owned state behind a ports.Population handle
type population struct {
	ages        []int
	records     []prognosis.Record
	initialized bool
}

func (p *population) Size() int {
	return len(p.ages)
}

func (e *Engine) DefaultConfiguration() ports.Configuration {
	return ports.Configuration{
		PopSize:     1000,
		PopInfected: 10,
		RandSeed:    1,
		Days:        60,
	}
}

func (e *Engine) CreatePopulation(ctx context.Context, cfg ports.Configuration) (ports.Population, error) {
	if cfg.PopSize <= 0 {
		return nil, fmt.Errorf("pop_size must be positive, got %d", cfg.PopSize)
	}
	rng, err := e.rng.SeededStream(ctx, "population", cfg.RandSeed)
	if err != nil {
		return nil, err
	}

	p := &population{ages: make([]int, cfg.PopSize)}
	for i := range p.ages {
		p.ages[i] = rng.Intn(e.dynamics.MaxAge + 1)
	}
	return p, nil
}

func (e *Engine) Initialize(ctx context.Context, pop ports.Population, cfg ports.Configuration) error {
	p, err := e.unwrap(pop)
	if err != nil {
		return err
	}
	if cfg.PopInfected > p.Size() {
		return fmt.Errorf("pop_infected %d exceeds pop_size %d", cfg.PopInfected, p.Size())
	}
	p.initialized = true
	return e.assignPrognoses(p, prognosis.Set{})
}

func (e *Engine) SetAges(pop ports.Population, age int) error {
	p, err := e.unwrap(pop)
	if err != nil {
		return err
	}
	if !p.initialized {
		return fmt.Errorf("population must be initialized before setting ages")
	}
	for i := range p.ages {
		p.ages[i] = age
	}
	return nil
}

func (e *Engine) RecomputePrognoses(pop ports.Population, view prognosis.Set) error {
	p, err := e.unwrap(pop)
	if err != nil {
		return err
	}
	if !p.initialized {
		return fmt.Errorf("population must be initialized before computing prognoses")
	}
	return e.assignPrognoses(p, view)
}

func (e *Engine) ProbabilityTable(pop ports.Population, name prognosis.TableName) (prognosis.Table, error) {
	if _, err := e.unwrap(pop); err != nil {
		return prognosis.Table{}, err
	}
	return e.prognoses.Table(name)
}

func (e *Engine) Individuals(pop ports.Population) ([]ports.Individual, error) {
	p, err := e.unwrap(pop)
	if err != nil {
		return nil, err
	}
	out := make([]ports.Individual, p.Size())
	for i := range p.ages {
		rec := make(prognosis.Record, len(p.records[i]))
		for k, v := range p.records[i] {
			rec[k] = v
		}
		out[i] = ports.Individual{Age: p.ages[i], Prognosis: rec}
	}
	return out, nil
}

func (e *Engine) unwrap(pop ports.Population) (*population, error) {
	p, ok := pop.(*population)
	if !ok || p == nil {
		return nil, fmt.Errorf("population %T was not created by this engine", pop)
	}
	return p, nil
}

func (e *Engine) assignPrognoses(p *population, view prognosis.Set) error {
	if view.IsZero() {
		view = e.prognoses
	}
	anchors := view.Anchors()
	names := view.Names()

	tables := make(map[prognosis.TableName]prognosis.Table, len(names))
	for _, name := range names {
		t, err := view.Table(name)
		if err != nil {
			return err
		}
		tables[name] = t
	}

	p.records = make([]prognosis.Record, p.Size())
	for i, age := range p.ages {
		rec := make(prognosis.Record, len(tables))
		for name, t := range tables {
			rec[name] = interpolate(anchors, t, float64(age))
		}
		p.records[i] = rec
	}
	return nil
}

// interpolate returns the table value at age, linear between anchors and
// clamped at both ends
func interpolate(anchors []float64, t prognosis.Table, age float64) float64 {
	last := len(anchors) - 1
	if age <= anchors[0] {
		return t.At(0)
	}
	if age >= anchors[last] {
		return t.At(last)
	}
	for k := 0; k < last; k++ {
		lo, hi := anchors[k], anchors[k+1]
		if age >= lo && age < hi {
			w := (age - lo) / (hi - lo)
			return t.At(k) + w*(t.At(k+1)-t.At(k))
		}
	}
	return t.At(last)
}
