package testkit

import (
	"time"

	"agebounds/domain/core"
	"agebounds/domain/verdict"
)

func verdictRecord(runID, scenario string) verdict.Record {
	return verdict.Record{
		RunID:      core.RunID(runID),
		Scenario:   scenario,
		Status:     verdict.StatusPass,
		RecordedAt: time.Now(),
	}
}
