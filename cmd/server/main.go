// Package main is the entry point for the movistock API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movistock/internal/domain/catalogs/product"
	"movistock/internal/domain/catalogs/unit"
	"movistock/internal/domain/movement"
	v1 "movistock/internal/infrastructure/http/v1"
	"movistock/internal/infrastructure/storage/memory"
	"movistock/internal/infrastructure/storage/postgres"
	"movistock/internal/infrastructure/storage/postgres/catalog_repo"
	"movistock/internal/infrastructure/storage/postgres/movement_repo"
	"movistock/pkg/logger"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	log.Info("starting movistock server")

	// --- Storage backends ---
	// With DATABASE_URL the catalogs and the submission sink run on
	// PostgreSQL; without it the server uses the seeded in-memory
	// catalogs and a log-only recorder.
	var (
		pool        *postgres.Pool
		recorder    movement.Recorder
		productRepo product.Repository
		unitRepo    unit.Repository
	)

	if dsn := getEnv("DATABASE_URL", ""); dsn != "" {
		pool, err = postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
		if err != nil {
			log.Fatalw("failed to connect to database", "error", err)
		}
		defer pool.Close()
		log.Info("database connection established")

		journal, err := postgres.NewJournal()
		if err != nil {
			log.Fatalw("failed to initialize journal", "error", err)
		}

		recorder = movement_repo.NewRecorder(postgres.NewTxRunner(pool), journal)
		productRepo = catalog_repo.NewProductRepo(pool)
		unitRepo = catalog_repo.NewUnitRepo(pool)
	} else {
		log.Info("no DATABASE_URL set, using in-memory catalogs and log-only recorder")
		recorder = movement.LogRecorder{}
		productRepo = memory.NewProductRepo()
		unitRepo = memory.NewUnitRepo()
	}

	// --- Session manager ---
	sessions := movement.NewManager(getEnvDuration("SESSION_TTL", movement.DefaultSessionTTL))
	sessions.StartSweeper(ctx, getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute))

	// --- Services ---
	movementService := movement.NewService(sessions, recorder)
	productService := product.NewService(productRepo)
	unitService := unit.NewService(unitRepo)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:    log,
		Movements: movementService,
		Sessions:  sessions,
		Products:  productService,
		Units:     unitService,
		Pool:      pool,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
