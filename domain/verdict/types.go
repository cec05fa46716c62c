package verdict

import (
	"fmt"
	"time"

	"agebounds/domain/core"
)

// VerdictStatus is the outcome of one bound check
type VerdictStatus string

const (
	StatusPass VerdictStatus = "pass"
	StatusFail VerdictStatus = "fail"
)

// Mode selects the reference total that scales the probability bounds.
// The two modes are different estimators and are never interchangeable.
type Mode string

const (
	// ModeRatioOfTotals scales by the average denominator across trials
	ModeRatioOfTotals Mode = "ratio_of_totals"
	// ModeFixedCount scales by the fixed population size
	ModeFixedCount Mode = "fixed_count"
)

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRatioOfTotals, ModeFixedCount:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown evaluation mode %q", s)
	}
}

// BoundSide names which side of the interval was violated, if any
type BoundSide string

const (
	SideNone  BoundSide = ""
	SideLower BoundSide = "lower"
	SideUpper BoundSide = "upper"
)

// BoundInterval is the open interval (Lower, Upper) derived from two adjacent
// table entries scaled by Reference.
type BoundInterval struct {
	MinProbability float64 `json:"min_probability"`
	MaxProbability float64 `json:"max_probability"`
	Reference      float64 `json:"reference"`
	Lower          float64 `json:"lower"`
	Upper          float64 `json:"upper"`
}

// NewBoundInterval scales the two probabilities by reference
func NewBoundInterval(minP, maxP, reference float64) BoundInterval {
	return BoundInterval{
		MinProbability: minP,
		MaxProbability: maxP,
		Reference:      reference,
		Lower:          minP * reference,
		Upper:          maxP * reference,
	}
}

// Check returns SideNone iff Lower < v < Upper. Equality at either end fails.
func (b BoundInterval) Check(v float64) BoundSide {
	if !(v > b.Lower) {
		return SideLower
	}
	if !(v < b.Upper) {
		return SideUpper
	}
	return SideNone
}

// Diagnostics are informational only and never change the verdict
type Diagnostics struct {
	WilsonLow        float64 `json:"wilson_low"`
	WilsonHigh       float64 `json:"wilson_high"`
	TrialRatioMean   float64 `json:"trial_ratio_mean"`
	TrialRatioStdDev float64 `json:"trial_ratio_std_dev"`
}

// Verdict is the pass/fail judgment for one aggregated scenario
type Verdict struct {
	Status             VerdictStatus `json:"status"`
	Mode               Mode          `json:"mode"`
	Bucket             int           `json:"bucket"`
	Trials             int           `json:"trials"`
	Interval           BoundInterval `json:"interval"`
	AverageNumerator   float64       `json:"average_numerator"`
	AverageDenominator float64       `json:"average_denominator"`
	EmpiricalRatio     float64       `json:"empirical_ratio"`
	Violated           BoundSide     `json:"violated,omitempty"`
	Message            string        `json:"message"`
	Diagnostics        Diagnostics   `json:"diagnostics"`
}

// Passed reports whether the empirical value fell strictly inside the bound
func (v Verdict) Passed() bool {
	return v.Status == StatusPass
}

// Err returns nil for a passing verdict and a bound-violation error otherwise
func (v Verdict) Err() error {
	if v.Passed() {
		return nil
	}
	return fmt.Errorf("%w: %s", core.ErrBoundViolated, v.Message)
}

// Record is a persisted verdict for one scenario run
type Record struct {
	RunID       core.RunID    `json:"run_id" db:"run_id"`
	Scenario    string        `json:"scenario" db:"scenario"`
	Age         int           `json:"age" db:"age"`
	Bucket      int           `json:"bucket" db:"bucket"`
	Mode        Mode          `json:"mode" db:"mode"`
	Trials      int           `json:"trials" db:"trials"`
	Status      VerdictStatus `json:"status" db:"status"`
	Lower       float64       `json:"lower" db:"lower_bound"`
	Upper       float64       `json:"upper" db:"upper_bound"`
	Observed    float64       `json:"observed" db:"observed"`
	Message     string        `json:"message" db:"message"`
	Fingerprint core.Hash     `json:"fingerprint" db:"fingerprint"`
	RecordedAt  time.Time     `json:"recorded_at" db:"recorded_at"`
}
