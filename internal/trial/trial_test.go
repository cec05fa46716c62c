package trial

import (
	"context"
	"errors"
	"testing"

	"agebounds/domain/cohort"
	"agebounds/domain/core"
	"agebounds/domain/prognosis"
	"agebounds/internal/testkit"
	"agebounds/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var symptomaticPair = ports.ChannelPair{
	Numerator:   ports.ChannelSymptomatic,
	Denominator: ports.ChannelInfections,
}

func newEngine(t *testing.T) *testkit.Engine {
	t.Helper()
	kit, err := testkit.NewTestKit()
	require.NoError(t, err)
	return kit.Engine()
}

func runOnce(t *testing.T, engine ports.SimulationEngine, cfg ports.Configuration, age int) (float64, float64) {
	t.Helper()
	ctx := context.Background()

	c, err := NewCohort(ctx, engine, cfg)
	require.NoError(t, err)
	require.NoError(t, NewFixedAgeConfigurator(engine).Configure(ctx, c, cfg, age))

	outcome, series, err := NewRunner(engine).Run(ctx, c, cfg, symptomaticPair)
	require.NoError(t, err)
	require.NotNil(t, series)
	assert.Equal(t, cfg.RandSeed, outcome.Seed)
	return outcome.Numerator, outcome.Denominator
}

func TestRunner_Deterministic(t *testing.T) {
	engine := newEngine(t)
	cfg := engine.DefaultConfiguration().WithSeed(3)

	num1, den1 := runOnce(t, engine, cfg, 25)
	num2, den2 := runOnce(t, engine, cfg, 25)

	assert.Equal(t, num1, num2)
	assert.Equal(t, den1, den2)
	assert.Greater(t, den1, 0.0)
}

func TestConfigurator_UniformPopulation(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t)
	cfg := engine.DefaultConfiguration()

	c, err := NewCohort(ctx, engine, cfg)
	require.NoError(t, err)
	assert.Equal(t, cohort.Uninitialized, c.State())

	require.NoError(t, NewFixedAgeConfigurator(engine).Configure(ctx, c, cfg, 35))
	assert.Equal(t, cohort.Configured, c.State())

	people, err := engine.Individuals(c.Population)
	require.NoError(t, err)
	for _, p := range people {
		assert.Equal(t, 35, p.Age)
		assert.True(t, p.Prognosis.Equal(people[0].Prognosis))
	}
}

func TestConfigurator_UsesView(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t)

	view, err := testkit.DefaultPrognoses().WithConstant(prognosis.SymptomaticProbs, 1.0)
	require.NoError(t, err)
	cfg := engine.DefaultConfiguration().WithPrognoses(view)

	c, err := NewCohort(ctx, engine, cfg)
	require.NoError(t, err)
	require.NoError(t, NewFixedAgeConfigurator(engine).Configure(ctx, c, cfg, 55))

	people, err := engine.Individuals(c.Population)
	require.NoError(t, err)
	assert.Equal(t, 1.0, people[0].Prognosis[prognosis.SymptomaticProbs])
}

func TestConfigurator_InvalidAge(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t)
	cfg := engine.DefaultConfiguration()

	for _, age := range []int{-1, MaxAge + 1} {
		c, err := NewCohort(ctx, engine, cfg)
		require.NoError(t, err)

		err = NewFixedAgeConfigurator(engine).Configure(ctx, c, cfg, age)
		assert.ErrorIs(t, err, core.ErrInvalidAge)
		assert.Equal(t, cohort.Uninitialized, c.State())
	}
}

func TestCohort_ConsumedCannotBeReused(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t)
	cfg := engine.DefaultConfiguration()
	configurator := NewFixedAgeConfigurator(engine)
	runner := NewRunner(engine)

	c, err := NewCohort(ctx, engine, cfg)
	require.NoError(t, err)

	_, _, err = runner.Run(ctx, c, cfg, symptomaticPair)
	assert.ErrorIs(t, err, core.ErrInvalidTransition, "unconfigured cohort must not run")

	require.NoError(t, configurator.Configure(ctx, c, cfg, 25))
	_, _, err = runner.Run(ctx, c, cfg, symptomaticPair)
	require.NoError(t, err)
	assert.Equal(t, cohort.Consumed, c.State())

	_, _, err = runner.Run(ctx, c, cfg, symptomaticPair)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)

	err = configurator.Configure(ctx, c, cfg, 25)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}

func TestRunner_MissingChannel(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t)
	cfg := engine.DefaultConfiguration()

	c, err := NewCohort(ctx, engine, cfg)
	require.NoError(t, err)
	require.NoError(t, NewFixedAgeConfigurator(engine).Configure(ctx, c, cfg, 25))

	_, _, err = NewRunner(engine).Run(ctx, c, cfg, ports.ChannelPair{
		Numerator:   "cum_critical",
		Denominator: ports.ChannelInfections,
	})
	assert.ErrorIs(t, err, core.ErrMissingChannel)
}

// MockEngine is a testify mock of the simulation engine
type MockEngine struct {
	mock.Mock
}

type fakePopulation struct{ n int }

func (p fakePopulation) Size() int { return p.n }

func (m *MockEngine) DefaultConfiguration() ports.Configuration {
	return m.Called().Get(0).(ports.Configuration)
}

func (m *MockEngine) CreatePopulation(ctx context.Context, cfg ports.Configuration) (ports.Population, error) {
	args := m.Called(ctx, cfg)
	return args.Get(0).(ports.Population), args.Error(1)
}

func (m *MockEngine) Initialize(ctx context.Context, pop ports.Population, cfg ports.Configuration) error {
	return m.Called(ctx, pop, cfg).Error(0)
}

func (m *MockEngine) SetAges(pop ports.Population, age int) error {
	return m.Called(pop, age).Error(0)
}

func (m *MockEngine) RecomputePrognoses(pop ports.Population, view prognosis.Set) error {
	return m.Called(pop, view).Error(0)
}

func (m *MockEngine) Run(ctx context.Context, pop ports.Population, cfg ports.Configuration) (ports.ResultSeries, error) {
	args := m.Called(ctx, pop, cfg)
	series, _ := args.Get(0).(ports.ResultSeries)
	return series, args.Error(1)
}

func (m *MockEngine) ProbabilityTable(pop ports.Population, name prognosis.TableName) (prognosis.Table, error) {
	args := m.Called(pop, name)
	return args.Get(0).(prognosis.Table), args.Error(1)
}

func (m *MockEngine) Individuals(pop ports.Population) ([]ports.Individual, error) {
	args := m.Called(pop)
	people, _ := args.Get(0).([]ports.Individual)
	return people, args.Error(1)
}

func TestRunner_EngineErrorPropagatesUnmodified(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("engine diverged")
	pop := fakePopulation{n: 2}

	m := &MockEngine{}
	m.On("CreatePopulation", mock.Anything, mock.Anything).Return(pop, nil)
	m.On("Initialize", mock.Anything, pop, mock.Anything).Return(nil)
	m.On("SetAges", pop, 40).Return(nil)
	m.On("RecomputePrognoses", pop, mock.Anything).Return(nil)
	m.On("Individuals", pop).Return([]ports.Individual{
		{Age: 40, Prognosis: prognosis.Record{prognosis.SymptomaticProbs: 0.7}},
		{Age: 40, Prognosis: prognosis.Record{prognosis.SymptomaticProbs: 0.7}},
	}, nil)
	m.On("Run", mock.Anything, pop, mock.Anything).Return(nil, errBoom)

	cfg := ports.Configuration{PopSize: 2, Days: 1}
	c, err := NewCohort(ctx, m, cfg)
	require.NoError(t, err)
	require.NoError(t, NewFixedAgeConfigurator(m).Configure(ctx, c, cfg, 40))

	_, _, err = NewRunner(m).Run(ctx, c, cfg, symptomaticPair)
	assert.Equal(t, errBoom, err)
	m.AssertExpectations(t)
}

func TestConfigurator_DetectsNonUniformPopulation(t *testing.T) {
	ctx := context.Background()
	pop := fakePopulation{n: 2}

	m := &MockEngine{}
	m.On("CreatePopulation", mock.Anything, mock.Anything).Return(pop, nil)
	m.On("Initialize", mock.Anything, pop, mock.Anything).Return(nil)
	m.On("SetAges", pop, 40).Return(nil)
	m.On("RecomputePrognoses", pop, mock.Anything).Return(nil)
	m.On("Individuals", pop).Return([]ports.Individual{
		{Age: 40, Prognosis: prognosis.Record{prognosis.SymptomaticProbs: 0.7}},
		{Age: 12, Prognosis: prognosis.Record{prognosis.SymptomaticProbs: 0.5}},
	}, nil)

	cfg := ports.Configuration{PopSize: 2, Days: 1}
	c, err := NewCohort(ctx, m, cfg)
	require.NoError(t, err)

	err = NewFixedAgeConfigurator(m).Configure(ctx, c, cfg, 40)
	assert.Error(t, err)
	assert.Equal(t, cohort.Uninitialized, c.State())
}
