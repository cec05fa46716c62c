package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"agebounds/adapters/postgres"
	"agebounds/domain/prognosis"
	"agebounds/internal/config"
	"agebounds/internal/container"
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := postgres.Connect(appConfig.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// no engine: only the ledger side of the container is needed here
	c, err := container.New(appConfig, nil, prognosis.Set{})
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}
	ctx := context.Background()
	defer c.Shutdown(ctx)

	if err := c.InitWithDatabase(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Verdict ledger schema is up to date")

	// migrate <scenario> also prints the recorded verdicts for that scenario
	if len(os.Args) < 2 {
		return
	}

	records, err := c.Ledger.ListByScenario(ctx, os.Args[1])
	if err != nil {
		log.Fatalf("Failed to list verdicts: %v", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		log.Fatalf("Failed to encode verdicts: %v", err)
	}
}
