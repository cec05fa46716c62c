package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agebounds/domain/core"
	"agebounds/domain/verdict"
	"agebounds/internal/errors"
	"agebounds/internal/migration"
)

func setupTestDB(t *testing.T) *VerdictRepositoryImpl {
	t.Helper()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set; skipping PostgreSQL integration test")
	}

	db, err := Connect(databaseURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migration.NewRunner().Run(context.Background(), db))
	return &VerdictRepositoryImpl{db: db}
}

func TestConnect_RequiresURL(t *testing.T) {
	_, err := Connect("")
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestVerdictRepository_RecordAndList(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	scenario := "symptomatic-" + core.NewID().String()
	older := verdict.Record{
		RunID:       core.NewRunID(),
		Scenario:    scenario,
		Age:         25,
		Bucket:      1,
		Mode:        verdict.ModeRatioOfTotals,
		Trials:      10,
		Status:      verdict.StatusPass,
		Lower:       550,
		Upper:       600,
		Observed:    575,
		Fingerprint: core.NewHash([]byte("older")),
		RecordedAt:  time.Now().UTC().Add(-time.Minute),
	}
	newer := older
	newer.RunID = core.NewRunID()
	newer.Status = verdict.StatusFail
	newer.Message = "average numerator 610 should be lower than expected max 600"
	newer.RecordedAt = time.Now().UTC()

	require.NoError(t, repo.Record(ctx, older))
	require.NoError(t, repo.Record(ctx, newer))

	records, err := repo.ListByScenario(ctx, scenario)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, newer.RunID, records[0].RunID)
	assert.Equal(t, verdict.StatusFail, records[0].Status)
	assert.Equal(t, older.Fingerprint, records[1].Fingerprint)

	err = repo.Record(ctx, older)
	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))
}

func TestVerdictRepository_RecordRequiresRunID(t *testing.T) {
	repo := &VerdictRepositoryImpl{}
	err := repo.Record(context.Background(), verdict.Record{Scenario: "severe"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
