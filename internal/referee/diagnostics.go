package referee

import (
	"math"

	"agebounds/domain/run"
	"agebounds/domain/verdict"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// computeDiagnostics reports a Wilson score interval for the pooled ratio
// and the spread of per-trial ratios
func computeDiagnostics(agg *run.Aggregate) verdict.Diagnostics {
	var d verdict.Diagnostics

	d.WilsonLow, d.WilsonHigh = WilsonInterval(agg.TotalNumerator, agg.TotalDenominator, DIAGNOSTIC_CONFIDENCE)

	ratios := agg.Ratios()
	if mean, err := stats.Mean(ratios); err == nil {
		d.TrialRatioMean = mean
	}
	if len(ratios) >= MIN_TRIALS_FOR_SPREAD {
		if sd, err := stats.StandardDeviationSample(ratios); err == nil {
			d.TrialRatioStdDev = sd
		}
	}
	return d
}

// WilsonInterval returns the two-sided Wilson score interval for successes
// out of trials at the given confidence. Zero trials yield [0, 1]; the
// observed proportion is clamped to [0, 1].
func WilsonInterval(successes, trials, confidence float64) (float64, float64) {
	if trials <= 0 {
		return 0, 1
	}
	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
	p := math.Min(1, math.Max(0, successes/trials))
	z2 := z * z

	denom := 1 + z2/trials
	center := (p + z2/(2*trials)) / denom
	half := z / denom * math.Sqrt(p*(1-p)/trials+z2/(4*trials*trials))

	return math.Max(0, center-half), math.Min(1, center+half)
}
