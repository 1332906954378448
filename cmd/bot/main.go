package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fadedpez/eldorado/internal/bot"
	"github.com/fadedpez/eldorado/internal/config"
	"github.com/fadedpez/eldorado/internal/logging"
	"github.com/fadedpez/eldorado/pkg/catalog"
	"github.com/fadedpez/eldorado/pkg/clock"
	"github.com/fadedpez/eldorado/pkg/repositories/audit"
	"github.com/fadedpez/eldorado/pkg/repositories/profile"
	"github.com/fadedpez/eldorado/pkg/scheduler"
	"github.com/fadedpez/eldorado/pkg/services/economy"
	"github.com/fadedpez/eldorado/pkg/storage/file"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.NewLogger(logging.INFO)
	if cfg.IsDevelopment() {
		logger = logging.NewLogger(logging.DEBUG)
	}

	cat, err := catalog.LoadFromFile(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	logger.Info("Loaded catalog with %d items", cat.Len())

	repo := newRepository(cfg, logger)
	defer repo.Close()

	svc := economy.NewService(repo, clock.NewSystem(), cat, logger)

	// Optional Elasticsearch audit sink
	if cfg.AuditURL != "" {
		sink, err := audit.NewElasticsearchSink(&audit.ElasticsearchConfig{
			URL:      cfg.AuditURL,
			Username: cfg.AuditUsername,
			Password: cfg.AuditPassword,
		})
		if err != nil {
			logger.Warn("Audit sink unavailable, continuing without it: %v", err)
		} else {
			svc.SetTransactionSink(sink)
			logger.Info("Transaction audit sink enabled at %s", cfg.AuditURL)
		}
	}

	// Periodic sweep of expired powerups
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := scheduler.NewSweepScheduler(svc, time.Duration(cfg.SweepIntervalMinutes)*time.Minute, logger)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	b, err := bot.New(cfg, svc, cat, logger)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}

	if err := b.Start(); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}

	logger.Info("Bot is running. Press Ctrl+C to exit")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	if err := b.Stop(); err != nil {
		logger.Error("Error stopping bot: %v", err)
	}
}

// newRepository selects the profile repository backend from configuration,
// falling back to memory when the durable backend fails to initialize.
func newRepository(cfg *config.Config, logger *logging.Logger) profile.Repository {
	switch cfg.StorageType {
	case "sqlite":
		dbPath := filepath.Join(cfg.DataDir, "eldorado.db")
		repo, err := profile.NewSQLiteRepository(dbPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository: %v", err)
			logger.Warn("Falling back to in-memory repository")
			return profile.NewMemoryRepository()
		}
		logger.Info("Using SQLite repository at %s", dbPath)
		return repo
	case "file":
		store, err := file.New(filepath.Join(cfg.DataDir, "profiles"))
		if err != nil {
			logger.Error("Failed to initialize file storage: %v", err)
			logger.Warn("Falling back to in-memory repository")
			return profile.NewMemoryRepository()
		}
		logger.Info("Using file-backed repository in %s", cfg.DataDir)
		return profile.NewStoreRepository(store)
	default:
		logger.Info("Using in-memory repository (data will be lost on restart)")
		return profile.NewMemoryRepository()
	}
}
