package migration

import (
	"context"

	"agebounds/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the verdict ledger schema
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createScenarioVerdictsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create scenario_verdicts table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createScenarioVerdictsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS scenario_verdicts (
			run_id TEXT PRIMARY KEY,
			scenario VARCHAR(50) NOT NULL,
			age INTEGER NOT NULL,
			bucket INTEGER NOT NULL,
			mode VARCHAR(50) NOT NULL,
			trials INTEGER NOT NULL,
			status VARCHAR(10) NOT NULL,
			lower_bound DOUBLE PRECISION NOT NULL,
			upper_bound DOUBLE PRECISION NOT NULL,
			observed DOUBLE PRECISION NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			fingerprint VARCHAR(64) NOT NULL,
			recorded_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_scenario_verdicts_scenario
			ON scenario_verdicts(scenario, recorded_at DESC)
	`)
	return err
}
