package container

import (
	"context"
	"fmt"
	"log"

	"agebounds/adapters/debugdump"
	"agebounds/adapters/postgres"
	"agebounds/app"
	"agebounds/domain/prognosis"
	"agebounds/internal"
	"agebounds/internal/config"
	"agebounds/internal/migration"
	"agebounds/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all harness dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Engine under test and its own prognosis tables
	Engine    ports.SimulationEngine
	Prognoses prognosis.Set

	Ledger  ports.VerdictLedger
	Dumper  *debugdump.Dumper
	Harness *app.HarnessService
}

// New creates a container around engine. The database and debug dump are
// wired only when configured. A nil engine builds a ledger-only container
// with no harness, as used by cmd/migrate.
func New(cfg *config.Config, engine ports.SimulationEngine, prognoses prognosis.Set) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	// before any component derives its logger
	internal.DefaultLogger.SetLevel(internal.ParseLogLevel(cfg.LogLevel))

	c := &Container{
		Config:    cfg,
		Engine:    engine,
		Prognoses: prognoses,
	}

	if cfg.Debug.Enabled {
		c.Dumper = debugdump.NewDumper(cfg.Debug.Dir)
	}

	if engine == nil {
		return c, nil
	}

	c.Harness = app.NewHarnessService(engine, prognoses, cfg.Harness)
	if c.Dumper != nil {
		c.Harness.WithDumper(c.Dumper)
	}
	return c, nil
}

// InitWithDatabase migrates the ledger schema and records verdicts in db
func (c *Container) InitWithDatabase(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	c.DB = db

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate verdict ledger: %w", err)
	}

	c.UseLedger(postgres.NewVerdictRepository(db))
	log.Printf("Container initialized successfully with database connection")
	return nil
}

// UseLedger records verdicts in ledger
func (c *Container) UseLedger(ledger ports.VerdictLedger) {
	c.Ledger = ledger
	if c.Harness != nil {
		c.Harness.WithLedger(ledger)
	}
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
