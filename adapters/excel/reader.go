package excel

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"agebounds/domain/run"

	"github.com/xuri/excelize/v2"
)

// DataReader reads a sheet of an Excel workbook
type DataReader struct {
	filePath string
}

// NewDataReader creates a new data reader
func NewDataReader(filePath string) *DataReader {
	return &DataReader{filePath: filePath}
}

// ReadData reads the named sheet into structured format
func (r *DataReader) ReadData(sheet string) (*ExcelData, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("XLSX file not found: %s", r.filePath)
	}

	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheet, err)
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < 1 {
		return nil, fmt.Errorf("sheet %s has no header row", sheet)
	}
	return processRows(rows), nil
}

// ReadOutcomes loads the per-seed outcomes written by WriteOutcomes
func (r *DataReader) ReadOutcomes() ([]run.TrialOutcome, error) {
	data, err := r.ReadData(OutcomeSheet)
	if err != nil {
		return nil, err
	}

	outcomes := make([]run.TrialOutcome, 0, len(data.Rows))
	for i, row := range data.Rows {
		seed, err := strconv.ParseInt(row["seed"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid seed %q: %w", i+2, row["seed"], err)
		}
		num, err := strconv.ParseFloat(row["numerator"], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid numerator %q: %w", i+2, row["numerator"], err)
		}
		den, err := strconv.ParseFloat(row["denominator"], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid denominator %q: %w", i+2, row["denominator"], err)
		}
		outcomes = append(outcomes, run.TrialOutcome{Seed: seed, Numerator: num, Denominator: den})
	}
	return outcomes, nil
}

// processRows converts raw string rows into ExcelData format
func processRows(rows [][]string) *ExcelData {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	var dataRows []RawRowData
	for i := 1; i < len(rows); i++ {
		rowData := make(RawRowData)
		for j, cell := range rows[i] {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	return &ExcelData{
		Headers: headers,
		Rows:    dataRows,
	}
}
