// expensed-worker consumes ledger events from the AMQP feed and
// mirrors them to the Google Sheets audit trail.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"expensed/internal/amqp"
	"expensed/internal/config"
	applog "expensed/internal/log"
	"expensed/internal/mirror"
	"expensed/internal/storage"
	"expensed/internal/worker"
)

var errShutdown = errors.New("shutdown requested")

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	logger.Info("Starting expensed-worker", applog.FieldOperation, applog.OpStartup)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("Google Sheets mirror requires GOOGLE_SPREADSHEET_ID")
		os.Exit(1)
	}

	// Read side of the ledger, used to resolve event IDs.
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	sheets, err := mirror.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets mirror", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Google Sheets mirror initialized",
		"spreadsheet_id", cfg.GoogleSpreadsheetID,
		"sheet", cfg.GoogleSheetName)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirrorWorker := worker.NewMirrorWorker(repo, sheets)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeEvents(ctx, mirrorWorker.HandleEvent)
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.MirrorStatsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				logger.Info("Mirror worker alive", "queue", cfg.AMQPQueue)
			}
		}
	})

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received",
				applog.FieldOperation, applog.OpShutdown,
				"signal", sig.String())
			return errShutdown
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	err = g.Wait()
	switch {
	case err == nil, errors.Is(err, errShutdown), errors.Is(err, context.Canceled):
		logger.Info("Worker stopped gracefully")
	default:
		logger.Error("Worker stopped with error", applog.FieldError, err)
		os.Exit(1)
	}
}
