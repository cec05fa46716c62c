package postgres

import (
	"context"
	"time"

	"agebounds/domain/verdict"
	"agebounds/internal/errors"
	"agebounds/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// VerdictRepositoryImpl implements VerdictLedger for PostgreSQL
type VerdictRepositoryImpl struct {
	db *sqlx.DB
}

// NewVerdictRepository creates a new PostgreSQL verdict repository
func NewVerdictRepository(db *sqlx.DB) ports.VerdictLedger {
	return &VerdictRepositoryImpl{db: db}
}

// Connect opens and pings a PostgreSQL database
func Connect(databaseURL string) (*sqlx.DB, error) {
	if databaseURL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to connect to database"))
	}
	return db, nil
}

// Record inserts one verdict. Re-recording a run ID is an error.
func (r *VerdictRepositoryImpl) Record(ctx context.Context, rec verdict.Record) error {
	if rec.RunID == "" {
		return errors.InvalidInput("verdict record needs a run ID")
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO scenario_verdicts (run_id, scenario, age, bucket, mode, trials, status, lower_bound, upper_bound, observed, message, fingerprint, recorded_at)
		VALUES (:run_id, :scenario, :age, :bucket, :mode, :trials, :status, :lower_bound, :upper_bound, :observed, :message, :fingerprint, :recorded_at)
	`, rec)
	if err != nil {
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to record verdict"))
	}
	return nil
}

// ListByScenario returns verdicts for a scenario, newest first
func (r *VerdictRepositoryImpl) ListByScenario(ctx context.Context, scenario string) ([]verdict.Record, error) {
	var records []verdict.Record
	err := r.db.SelectContext(ctx, &records, `
		SELECT run_id, scenario, age, bucket, mode, trials, status, lower_bound, upper_bound, observed, message, fingerprint, recorded_at
		FROM scenario_verdicts
		WHERE scenario = $1
		ORDER BY recorded_at DESC
	`, scenario)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to list verdicts"))
	}
	return records, nil
}
