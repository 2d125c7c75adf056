package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/boundary-importer/internal/config"
	httpDelivery "github.com/boundary-importer/internal/delivery/http"
	"github.com/boundary-importer/internal/delivery/http/handler"
	"github.com/boundary-importer/internal/pkg/logger"
	"github.com/boundary-importer/internal/repository/cache"
	"github.com/boundary-importer/internal/repository/postgres"
	"github.com/boundary-importer/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Boundary API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize repositories
	boundaryRepo := postgres.NewEnrichedBoundaryRepository(db, cfg.Importer.DBBatchSize)
	progressRepo := postgres.NewImportProgressRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	// 7. Initialize use cases
	boundaryUC := usecase.NewBoundaryUseCase(
		boundaryRepo,
		cacheRepo,
		log,
		cfg.Cache.ReverseGeocodeTTL,
	)
	importStatusUC := usecase.NewImportStatusUseCase(progressRepo, log)

	// 8. Initialize handlers and server
	boundaryHandler := handler.NewBoundaryHandler(boundaryUC, log)
	importStatusHandler := handler.NewImportStatusHandler(importStatusUC, log)

	server := httpDelivery.NewServer(cfg, log, boundaryHandler, importStatusHandler, db.Health)

	// 9. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down HTTP server", zap.Error(err))
	}

	log.Info("Boundary API stopped")
}
