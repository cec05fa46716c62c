package run

import (
	"agebounds/domain/core"
)

// TrialOutcome holds the cumulative values of the two channels under test,
// read from the final time step of one trial.
type TrialOutcome struct {
	Seed        int64   `json:"seed"`
	Numerator   float64 `json:"numerator"`
	Denominator float64 `json:"denominator"`
}

// Ratio returns numerator/denominator, or 0 when nothing reached the denominator
func (o TrialOutcome) Ratio() float64 {
	if o.Denominator == 0 {
		return 0
	}
	return o.Numerator / o.Denominator
}

// Aggregate accumulates trial outcomes across seeds.
// INVARIANTS:
// - totals start at zero and only grow through Add
// - Trials == len(Outcomes)
type Aggregate struct {
	TotalNumerator   float64        `json:"total_numerator"`
	TotalDenominator float64        `json:"total_denominator"`
	Trials           int            `json:"trials"`
	Outcomes         []TrialOutcome `json:"outcomes"`
}

// NewAggregate creates an empty aggregate sized for n trials
func NewAggregate(n int) *Aggregate {
	return &Aggregate{Outcomes: make([]TrialOutcome, 0, n)}
}

// Add folds one trial into the running totals
func (a *Aggregate) Add(o TrialOutcome) {
	a.TotalNumerator += o.Numerator
	a.TotalDenominator += o.Denominator
	a.Trials++
	a.Outcomes = append(a.Outcomes, o)
}

// Ratios returns the per-trial numerator/denominator ratios in seed order
func (a *Aggregate) Ratios() []float64 {
	ratios := make([]float64, len(a.Outcomes))
	for i, o := range a.Outcomes {
		ratios[i] = o.Ratio()
	}
	return ratios
}

// Fingerprint identifies the exact sequence of outcomes, for comparing two
// runs of the same scenario.
func (a *Aggregate) Fingerprint() core.Hash {
	seeds := make([]int64, len(a.Outcomes))
	nums := make([]float64, len(a.Outcomes))
	dens := make([]float64, len(a.Outcomes))
	for i, o := range a.Outcomes {
		seeds[i] = o.Seed
		nums[i] = o.Numerator
		dens[i] = o.Denominator
	}
	return core.ComputeOutcomeHash(seeds, nums, dens)
}
