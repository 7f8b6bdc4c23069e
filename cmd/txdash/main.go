package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"txdash/internal/amqp"
	"txdash/internal/backend"
	"txdash/internal/config"
	apphttp "txdash/internal/http"
	"txdash/internal/log"
	"txdash/internal/seed"
	"txdash/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	result, err := backend.New(cfg, logger.WithComponent(log.ComponentBackend))
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}()
	}

	// AMQP is optional; without it reloads simply go unannounced.
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
	dashboard := services.NewDashboardService(result.Store)
	reloader := services.NewReloadService(seedClient, result.Store, amqpClient)

	srv := apphttp.NewServer(":"+cfg.Port, dashboard, reloader, cfg.CacheTTL)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 60 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The reseed worker announces reloads over AMQP; drop cached views
	// whenever one lands so stale data is never served past the event.
	if amqpClient != nil {
		go func() {
			err := amqpClient.ConsumeDatasetReloaded(ctx, func(msg *amqp.DatasetReloadedMessage) error {
				logger.Info("Dataset reload event received", "count", msg.Count, "source", msg.Source)
				srv.InvalidateViews()
				return nil
			})
			if err != nil {
				logger.Warn("Reload event consumer stopped", "error", err)
			}
		}()
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting txdash server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"seed_url", cfg.SeedURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
