package referee

import (
	"fmt"

	"agebounds/domain/core"
	"agebounds/domain/prognosis"
	"agebounds/domain/run"
	"agebounds/domain/verdict"
	"agebounds/internal"
)

// BoundReferee judges an aggregate against the probability interval
// bracketed by table[bucket] and table[bucket+1]
type BoundReferee struct {
	logger *internal.Logger
}

// NewBoundReferee creates a bound referee
func NewBoundReferee() *BoundReferee {
	return &BoundReferee{logger: internal.DefaultLogger.With("referee")}
}

// BoundRequest carries everything the referee needs for one verdict
type BoundRequest struct {
	Aggregate *run.Aggregate
	Table     prognosis.Table
	Bucket    int
	Mode      verdict.Mode

	// PopSize is the reference total in ModeFixedCount
	PopSize int
}

// Evaluate renders a verdict. The returned error is reserved for caller
// contract violations (bad bucket, empty aggregate, unknown mode); a failed
// statistical check is a normal FAIL verdict with a nil error.
//
// PASS iff lower < average numerator < upper, strictly on both sides.
func (r *BoundReferee) Evaluate(req BoundRequest) (verdict.Verdict, error) {
	// range guard comes before any arithmetic
	if err := ValidateBucket(req.Table, req.Bucket); err != nil {
		return verdict.Verdict{}, err
	}
	if req.Aggregate == nil || req.Aggregate.Trials <= 0 {
		return verdict.Verdict{}, fmt.Errorf("%w: aggregate has no trials", core.ErrInvalidTrials)
	}

	agg := req.Aggregate
	n := float64(agg.Trials)
	avgNum := agg.TotalNumerator / n
	avgDen := agg.TotalDenominator / n

	if err := ValidateMode(req.Mode, req.PopSize); err != nil {
		return verdict.Verdict{}, err
	}
	reference := avgDen
	if req.Mode == verdict.ModeFixedCount {
		reference = float64(req.PopSize)
	}

	interval := verdict.NewBoundInterval(req.Table.At(req.Bucket), req.Table.At(req.Bucket+1), reference)

	v := verdict.Verdict{
		Mode:               req.Mode,
		Bucket:             req.Bucket,
		Trials:             agg.Trials,
		Interval:           interval,
		AverageNumerator:   avgNum,
		AverageDenominator: avgDen,
		EmpiricalRatio:     empiricalRatio(agg),
		Diagnostics:        computeDiagnostics(agg),
	}

	switch v.Violated = interval.Check(avgNum); v.Violated {
	case verdict.SideNone:
		v.Status = verdict.StatusPass
		v.Message = fmt.Sprintf("average numerator %g within (%g, %g)", avgNum, interval.Lower, interval.Upper)
	case verdict.SideLower:
		v.Status = verdict.StatusFail
		v.Message = fmt.Sprintf("average numerator %g should be higher than expected min %g (table[%d] = %g)",
			avgNum, interval.Lower, req.Bucket, interval.MinProbability)
	case verdict.SideUpper:
		v.Status = verdict.StatusFail
		v.Message = fmt.Sprintf("average numerator %g should be lower than expected max %g (table[%d] = %g)",
			avgNum, interval.Upper, req.Bucket+1, interval.MaxProbability)
	}

	r.logger.Debug("bucket %d %s: %s", req.Bucket, v.Status, v.Message)
	r.logger.Trace("totals %g/%g over %d trials, ratio %g, wilson [%g, %g]",
		agg.TotalNumerator, agg.TotalDenominator, agg.Trials, v.EmpiricalRatio,
		v.Diagnostics.WilsonLow, v.Diagnostics.WilsonHigh)

	return v, nil
}

// ValidateBucket reports whether bucket has an upper neighbor in table
func ValidateBucket(table prognosis.Table, bucket int) error {
	if bucket < 0 || bucket+1 >= table.Len() {
		return core.NewBucketRangeError(bucket, table.Len())
	}
	return nil
}

// ValidateMode checks mode is known and, for ModeFixedCount, that a
// population size is available to scale by
func ValidateMode(mode verdict.Mode, popSize int) error {
	switch mode {
	case verdict.ModeRatioOfTotals:
		return nil
	case verdict.ModeFixedCount:
		if popSize <= 0 {
			return fmt.Errorf("fixed-count mode needs a positive population size, got %d", popSize)
		}
		return nil
	default:
		return fmt.Errorf("unknown evaluation mode %q", mode)
	}
}

func empiricalRatio(agg *run.Aggregate) float64 {
	if agg.TotalDenominator == 0 {
		return 0
	}
	return agg.TotalNumerator / agg.TotalDenominator
}
