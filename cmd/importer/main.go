package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/boundary-importer/internal/config"
	"github.com/boundary-importer/internal/importer"
	"github.com/boundary-importer/internal/infrastructure/overpass"
	"github.com/boundary-importer/internal/infrastructure/wikidata"
	"github.com/boundary-importer/internal/pkg/logger"
	"github.com/boundary-importer/internal/repository/postgres"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	log.Info("Starting Boundary Importer")
	log.Info("Configuration loaded",
		zap.String("country", cfg.Importer.Country),
		zap.Int("min_level", cfg.Importer.MinAdminLevel),
		zap.Int("max_level", cfg.Importer.MaxAdminLevel))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Error("Failed to connect to PostgreSQL", zap.Error(err))
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories and API clients
	overpassRepo := overpass.NewClient(&cfg.Overpass, cfg.Importer.UserAgent, log)
	wikidataRepo := wikidata.NewClient(&cfg.Wikidata, cfg.Importer.UserAgent, log)
	rawRepo := postgres.NewRawRelationRepository(db, cfg.Importer.DBBatchSize)
	enrichedRepo := postgres.NewEnrichedBoundaryRepository(db, cfg.Importer.DBBatchSize)
	progressRepo := postgres.NewImportProgressRepository(db)
	statsRepo := postgres.NewImportStatsRepository(db)

	// 5. Build the pipeline
	pipeline := importer.NewPipeline(
		cfg,
		overpassRepo,
		wikidataRepo,
		rawRepo,
		enrichedRepo,
		progressRepo,
		statsRepo,
		log,
	)

	// 6. Graceful shutdown on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	// 7. Run: single-country mode when IMPORT_COUNTRY is set, otherwise the catalogue
	if cfg.Importer.Country != "" {
		result, err := pipeline.ImportCountry(ctx, cfg.Importer.Country)
		if err != nil {
			log.Error("Import failed", zap.Error(err))
			return 1
		}
		if result.Errors > 0 {
			log.Warn("Import completed with errors", zap.Int("errors", result.Errors))
			return 1
		}
		return 0
	}

	runner := importer.NewRunner(cfg, pipeline, progressRepo, log)
	summary, err := runner.Run(ctx)
	if err != nil {
		log.Error("Multi-country run failed", zap.Error(err))
		return 1
	}
	if summary.Failed > 0 || summary.WithErrors > 0 {
		return 1
	}
	return 0
}
