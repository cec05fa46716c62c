package referee

// referee_const.go
//
// Standards for the bound gate. The gate itself is a strict open-interval
// test on aggregated counters; the constants below only govern the
// diagnostic interval reported next to it.

import (
	"fmt"
)

const (
	// DIAGNOSTIC_CONFIDENCE: two-sided confidence level of the Wilson score
	// interval reported with every verdict.
	DIAGNOSTIC_CONFIDENCE = 0.95

	// MIN_TRIALS_FOR_SPREAD: per-trial ratio spread needs at least two trials.
	MIN_TRIALS_FOR_SPREAD = 2

	// BOUND_GATE_NAME labels bound verdicts in logs and ledgers.
	BOUND_GATE_NAME = "Age_Bucket_Bound"
)

// ValidateConstants performs runtime validation of all constants
func ValidateConstants() error {
	if DIAGNOSTIC_CONFIDENCE <= 0 || DIAGNOSTIC_CONFIDENCE >= 1 {
		return fmt.Errorf("DIAGNOSTIC_CONFIDENCE out of range: %f not in (0,1)", DIAGNOSTIC_CONFIDENCE)
	}
	if MIN_TRIALS_FOR_SPREAD < 2 {
		return fmt.Errorf("MIN_TRIALS_FOR_SPREAD too low: %d < 2", MIN_TRIALS_FOR_SPREAD)
	}
	return nil
}
