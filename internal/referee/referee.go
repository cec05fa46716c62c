package referee

import (
	"fmt"

	"agebounds/domain/verdict"
)

// RefereeResult is the compact, loggable form of a verdict
type RefereeResult struct {
	GateName      string  `json:"gate_name"`
	Passed        bool    `json:"passed"`
	Statistic     float64 `json:"statistic"`
	StandardUsed  string  `json:"standard_used"`
	FailureReason string  `json:"failure_reason,omitempty"`
}

// Summarize converts a verdict into a RefereeResult
func Summarize(v verdict.Verdict) RefereeResult {
	result := RefereeResult{
		GateName:  BOUND_GATE_NAME,
		Passed:    v.Passed(),
		Statistic: v.AverageNumerator,
		StandardUsed: fmt.Sprintf("%s: %g < x < %g (bucket %d)",
			v.Mode, v.Interval.Lower, v.Interval.Upper, v.Bucket),
	}
	if !v.Passed() {
		result.FailureReason = v.Message
	}
	return result
}
