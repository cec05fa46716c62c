package config

import (
	"os"
	"path/filepath"
	"testing"

	"agebounds/domain/verdict"
	"agebounds/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearHarnessEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HARNESS_POP_SIZE", "HARNESS_POP_INFECTED", "HARNESS_TRIALS", "HARNESS_DAYS",
		"HARNESS_CONCURRENCY", "HARNESS_MODE", "HARNESS_DEBUG_DIR", "DATABASE_URL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearHarnessEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Harness.PopSize)
	assert.Equal(t, 10, cfg.Harness.PopInfected)
	assert.Equal(t, 10, cfg.Harness.Trials)
	assert.Equal(t, 60, cfg.Harness.Days)
	assert.Equal(t, 1, cfg.Harness.Concurrency)
	assert.Equal(t, verdict.ModeRatioOfTotals, cfg.Harness.Mode)
	assert.False(t, cfg.Debug.Enabled)
	assert.False(t, cfg.Database.Enabled)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearHarnessEnv(t)
	t.Setenv("HARNESS_POP_SIZE", "1010")
	t.Setenv("HARNESS_TRIALS", "5")
	t.Setenv("HARNESS_MODE", "fixed_count")
	t.Setenv("HARNESS_DEBUG_DIR", "/tmp/debug")
	t.Setenv("DATABASE_URL", "postgres://localhost/harness")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 1010, cfg.Harness.PopSize)
	assert.Equal(t, 5, cfg.Harness.Trials)
	assert.Equal(t, verdict.ModeFixedCount, cfg.Harness.Mode)
	assert.True(t, cfg.Debug.Enabled)
	assert.True(t, cfg.Database.Enabled)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero population", "HARNESS_POP_SIZE", "0"},
		{"too many infected", "HARNESS_POP_INFECTED", "5000"},
		{"zero trials", "HARNESS_TRIALS", "0"},
		{"zero days", "HARNESS_DAYS", "-1"},
		{"zero concurrency", "HARNESS_CONCURRENCY", "0"},
		{"unknown mode", "HARNESS_MODE", "median"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearHarnessEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestLoadFile(t *testing.T) {
	clearHarnessEnv(t)
	os.Unsetenv("HARNESS_TRIALS")

	path := filepath.Join(t.TempDir(), "harness.env")
	require.NoError(t, os.WriteFile(path, []byte("HARNESS_TRIALS=3\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Harness.Trials)

	os.Unsetenv("HARNESS_TRIALS")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
