package debugdump

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agebounds/adapters/excel"
	"agebounds/domain/run"
	"agebounds/domain/verdict"
	"agebounds/internal/referee"
	"agebounds/ports"
)

func TestDumper_WritesSeriesAndWorkbook(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "debug")
	d := NewDumper(dir)

	series := ports.ResultSeries{
		ports.ChannelInfections:  {10, 40, 90},
		ports.ChannelSymptomatic: {5, 22, 51},
	}
	agg := run.NewAggregate(2)
	agg.Add(run.TrialOutcome{Seed: 0, Numerator: 50, Denominator: 88})
	agg.Add(run.TrialOutcome{Seed: 1, Numerator: 51, Denominator: 90})
	v := verdict.Verdict{Status: verdict.StatusPass, Mode: verdict.ModeRatioOfTotals, Bucket: 1}

	paths, err := d.Dump("symptomatic_age25", series, agg, v)
	require.NoError(t, err)

	raw, err := os.ReadFile(paths.SeriesJSON)
	require.NoError(t, err)

	var artifact Artifact
	require.NoError(t, json.Unmarshal(raw, &artifact))
	assert.Equal(t, "symptomatic_age25", artifact.Label)
	assert.Equal(t, []float64{5, 22, 51}, artifact.Series[ports.ChannelSymptomatic])
	assert.Equal(t, 101.0, artifact.Aggregate.TotalNumerator)
	assert.Equal(t, verdict.StatusPass, artifact.Verdict.Status)

	outcomes, err := excel.NewDataReader(paths.Workbook).ReadOutcomes()
	require.NoError(t, err)
	assert.Equal(t, agg.Outcomes, outcomes)
}

func TestDumper_NumeratorAboveDenominator(t *testing.T) {
	d := NewDumper(t.TempDir())

	agg := run.NewAggregate(1)
	agg.Add(run.TrialOutcome{Seed: 0, Numerator: 12, Denominator: 10})
	lo, hi := referee.WilsonInterval(agg.TotalNumerator, agg.TotalDenominator, referee.DIAGNOSTIC_CONFIDENCE)
	v := verdict.Verdict{
		Status:      verdict.StatusFail,
		Mode:        verdict.ModeFixedCount,
		Diagnostics: verdict.Diagnostics{WilsonLow: lo, WilsonHigh: hi},
	}

	paths, err := d.Dump("inverted", ports.ResultSeries{ports.ChannelSevere: {12}}, agg, v)
	require.NoError(t, err)
	assert.FileExists(t, paths.SeriesJSON)
	assert.FileExists(t, paths.Workbook)
}
