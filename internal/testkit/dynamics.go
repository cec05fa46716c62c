package testkit

import (
	"context"
	"fmt"

	"agebounds/domain/prognosis"
	"agebounds/ports"
)

type health int

const (
	susceptible health = iota
	exposed
	infectious
	recovered
)

// Run executes one discrete-day trial. Each infectious individual makes
// ContactsPerDay uniform random contacts; a susceptible contact is infected
// with probability Beta and becomes infectious the next day. On infection the
// individual's prognosis decides symptom onset, and severity given onset.
func (e *Engine) Run(ctx context.Context, pop ports.Population, cfg ports.Configuration) (ports.ResultSeries, error) {
	p, err := e.unwrap(pop)
	if err != nil {
		return nil, err
	}
	if !p.initialized || p.records == nil {
		return nil, fmt.Errorf("population must be initialized before running")
	}
	if cfg.PopInfected < 0 || cfg.PopInfected > p.Size() {
		return nil, fmt.Errorf("pop_infected %d outside [0, %d]", cfg.PopInfected, p.Size())
	}
	if cfg.Days <= 0 {
		return nil, fmt.Errorf("n_days must be positive, got %d", cfg.Days)
	}

	rng, err := e.rng.SeededStream(ctx, "run", cfg.RandSeed)
	if err != nil {
		return nil, err
	}

	n := p.Size()
	state := make([]health, n)
	daysLeft := make([]int, n)
	var cumInfections, cumSymptomatic, cumSevere float64

	infect := func(i int) {
		state[i] = infectious
		daysLeft[i] = e.dynamics.InfectiousDays
		cumInfections++
		if rng.Float64() < p.records[i][prognosis.SymptomaticProbs] {
			cumSymptomatic++
			if rng.Float64() < p.records[i][prognosis.SevereProbs] {
				cumSevere++
			}
		}
	}

	for _, i := range rng.Perm(n)[:cfg.PopInfected] {
		infect(i)
	}

	results := ports.ResultSeries{
		ports.ChannelInfections:  make([]float64, 0, cfg.Days+1),
		ports.ChannelSymptomatic: make([]float64, 0, cfg.Days+1),
		ports.ChannelSevere:      make([]float64, 0, cfg.Days+1),
		"n_infectious":           make([]float64, 0, cfg.Days+1),
	}
	record := func() {
		var active float64
		for _, s := range state {
			if s == infectious {
				active++
			}
		}
		results[ports.ChannelInfections] = append(results[ports.ChannelInfections], cumInfections)
		results[ports.ChannelSymptomatic] = append(results[ports.ChannelSymptomatic], cumSymptomatic)
		results[ports.ChannelSevere] = append(results[ports.ChannelSevere], cumSevere)
		results["n_infectious"] = append(results["n_infectious"], active)
	}
	record()

	for day := 1; day <= cfg.Days; day++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var newlyInfected []int
		for i := 0; i < n; i++ {
			if state[i] != infectious {
				continue
			}
			for c := 0; c < e.dynamics.ContactsPerDay; c++ {
				j := rng.Intn(n)
				if state[j] == susceptible && rng.Float64() < e.dynamics.Beta {
					state[j] = exposed
					newlyInfected = append(newlyInfected, j)
				}
			}
		}

		for i := 0; i < n; i++ {
			if state[i] != infectious {
				continue
			}
			daysLeft[i]--
			if daysLeft[i] <= 0 {
				state[i] = recovered
			}
		}

		for _, j := range newlyInfected {
			infect(j)
		}
		record()
	}

	return results, nil
}
