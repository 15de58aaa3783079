package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"atelier/internal/config"
	"atelier/internal/defaults"
	"atelier/internal/repository/factory"
	"atelier/internal/seed"
)

func main() {
	// Parse command-line flags
	clearData := flag.Bool("clear-data", false, "Delete every existing document before seeding")
	samples := flag.Bool("samples", true, "Write the embedded sample content")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *clearData {
		log.Fatalf("BLOCKED: cannot run -clear-data in production environment")
	}

	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer func() { _ = closeLog() }()

	if !*samples && !*clearData {
		logger.Info("nothing to do, pass -samples or -clear-data")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	backend, err := factory.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}
	defer func() { _ = backend.Close() }()

	sampleContent, err := defaults.LoadSamples()
	if err != nil {
		log.Fatalf("Failed to load samples: %v", err)
	}
	site, err := defaults.LoadSite()
	if err != nil {
		log.Fatalf("Failed to load site defaults: %v", err)
	}

	logger.Info("seeding store",
		"environment", cfg.Environment,
		"backend", cfg.StoreBackend,
		"clear", *clearData,
	)

	report, err := seed.NewSeeder(backend.Store, backend.Tx, logger).Run(ctx, sampleContent, site, seed.Options{
		Clear:   *clearData,
		Samples: *samples,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	logger.Info("seeding complete",
		"cleared", report.Cleared,
		"created", report.Created,
	)
}
