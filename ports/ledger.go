package ports

import (
	"context"

	"agebounds/domain/verdict"
)

// VerdictLedger persists scenario verdicts for later comparison across runs
type VerdictLedger interface {
	// Record stores one verdict
	Record(ctx context.Context, rec verdict.Record) error

	// ListByScenario returns recorded verdicts for a scenario, newest first
	ListByScenario(ctx context.Context, scenario string) ([]verdict.Record, error)
}
