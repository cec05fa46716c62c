package debugdump

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"agebounds/adapters/excel"
	"agebounds/domain/run"
	"agebounds/domain/verdict"
	"agebounds/internal"
	"agebounds/ports"
)

// Dumper writes debug artifacts for one evaluated scenario into a directory
type Dumper struct {
	dir    string
	logger *internal.Logger
}

// NewDumper creates a dumper rooted at dir
func NewDumper(dir string) *Dumper {
	return &Dumper{dir: dir, logger: internal.DefaultLogger.With("debugdump")}
}

// Artifact is the JSON document written for the last trial of a scenario
type Artifact struct {
	Label     string             `json:"label"`
	Series    ports.ResultSeries `json:"series"`
	Aggregate *run.Aggregate     `json:"aggregate"`
	Verdict   verdict.Verdict    `json:"verdict"`
}

// Paths lists the files produced by one Dump call
type Paths struct {
	SeriesJSON string
	Workbook   string
}

// Dump writes <label>.json with the last trial's series and the verdict,
// and <label>.xlsx with the per-seed outcomes
func (d *Dumper) Dump(label string, series ports.ResultSeries, agg *run.Aggregate, v verdict.Verdict) (Paths, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("failed to create debug dir %s: %w", d.dir, err)
	}

	paths := Paths{
		SeriesJSON: filepath.Join(d.dir, label+".json"),
		Workbook:   filepath.Join(d.dir, label+".xlsx"),
	}

	data, err := json.MarshalIndent(Artifact{Label: label, Series: series, Aggregate: agg, Verdict: v}, "", "  ")
	if err != nil {
		return Paths{}, fmt.Errorf("failed to encode debug artifact: %w", err)
	}
	if err := os.WriteFile(paths.SeriesJSON, data, 0o644); err != nil {
		return Paths{}, fmt.Errorf("failed to write %s: %w", paths.SeriesJSON, err)
	}

	if err := excel.WriteOutcomes(paths.Workbook, agg, v); err != nil {
		return Paths{}, err
	}

	d.logger.Debug("wrote %s and %s", paths.SeriesJSON, paths.Workbook)
	return paths, nil
}
