package excel

import (
	"fmt"

	"agebounds/domain/run"
	"agebounds/domain/verdict"

	"github.com/xuri/excelize/v2"
)

// WriteOutcomes saves the per-seed outcomes to Sheet1 and the verdict
// summary to a second sheet
func WriteOutcomes(path string, agg *run.Aggregate, v verdict.Verdict) error {
	f := excelize.NewFile()
	defer f.Close()

	for col, header := range outcomeHeaders {
		if err := setCell(f, OutcomeSheet, col+1, 1, header); err != nil {
			return err
		}
	}
	for i, o := range agg.Outcomes {
		row := i + 2
		values := []interface{}{o.Seed, o.Numerator, o.Denominator, o.Ratio()}
		for col, value := range values {
			if err := setCell(f, OutcomeSheet, col+1, row, value); err != nil {
				return err
			}
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][2]interface{}{
		{"status", string(v.Status)},
		{"mode", string(v.Mode)},
		{"bucket", v.Bucket},
		{"trials", agg.Trials},
		{"total_numerator", agg.TotalNumerator},
		{"total_denominator", agg.TotalDenominator},
		{"average_numerator", v.AverageNumerator},
		{"lower_bound", v.Interval.Lower},
		{"upper_bound", v.Interval.Upper},
		{"wilson_low", v.Diagnostics.WilsonLow},
		{"wilson_high", v.Diagnostics.WilsonHigh},
		{"message", v.Message},
	}
	for i, kv := range summary {
		if err := setCell(f, SummarySheet, 1, i+1, kv[0]); err != nil {
			return err
		}
		if err := setCell(f, SummarySheet, 2, i+1, kv[1]); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
	}
	return nil
}
