package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"txdash/internal/amqp"
	"txdash/internal/config"
	"txdash/internal/log"
	"txdash/internal/seed"
	"txdash/internal/services"
	"txdash/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	log.SetDefault(logger)

	logger.Info("Starting reseed-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	sqliteRepo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer sqliteRepo.Close()

	// AMQP publishes a reload event after each successful reseed so the
	// API process knows its cached views are stale.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without reload events", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled, reload events will not be published")
	}

	seedClient := seed.NewClient(cfg.SeedURL, cfg.SeedTimeout)
	reloader := services.NewReloadService(seedClient, sqliteRepo, amqpClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Reseed worker configured",
		"interval", cfg.ReseedInterval,
		"seed_url", cfg.SeedURL,
		"sqlite_db", cfg.SQLiteDBPath)

	ticker := time.NewTicker(cfg.ReseedInterval)
	defer ticker.Stop()

	// Run initial reseed on startup
	logger.Info("Running initial reseed...")
	if count, err := reloader.Reload(ctx); err != nil {
		logger.Error("Initial reseed failed", "error", err)
	} else {
		logger.Info("Initial reseed complete", "count", count)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				logger.Info("Running periodic reseed...")
				count, err := reloader.Reload(ctx)
				if err != nil {
					logger.Error("Periodic reseed failed", "error", err)
				} else {
					logger.Info("Periodic reseed complete",
						"count", count,
						"next_run", now.Add(cfg.ReseedInterval).Format("15:04:05"))
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down reseed-worker...")
	cancel()
	logger.Info("Reseed-worker shutdown complete")
}
