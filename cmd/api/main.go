package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/vizsprints/analytics-service/docs"
	"github.com/vizsprints/analytics-service/internal/config"
	"github.com/vizsprints/analytics-service/internal/handler"
	"github.com/vizsprints/analytics-service/internal/logger"
	"github.com/vizsprints/analytics-service/internal/repository"
	"github.com/vizsprints/analytics-service/internal/repository/clickhouse"
	"github.com/vizsprints/analytics-service/internal/repository/csvstore"
	"github.com/vizsprints/analytics-service/internal/service"
	"github.com/vizsprints/analytics-service/internal/snapshot"
)

// @title VizSprints Analytics Service API
// @version 1.0
// @description API for product analytics: engagement metrics, cohort retention, funnels, A/B tests and session rollups
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("data_source", cfg.Data.Source),
		zap.String("port", cfg.Service.APIPort))

	// Configure Swagger host dynamically
	docs.SwaggerInfo.Host = cfg.Service.Host

	ctx := context.Background()

	loader, closeStorage, err := newSnapshotLoader(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize data source", zap.Error(err))
	}
	defer closeStorage()

	store := snapshot.NewStore()
	if err := loadSnapshot(ctx, store, loader, log); err != nil {
		log.Fatal("Failed to load analytics snapshot", zap.Error(err))
	}

	// Initialize analytics service
	analyticsService := service.NewAnalyticsService(store, log)

	// Initialize handler
	h := handler.NewHandler(analyticsService, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}

// newSnapshotLoader picks the snapshot source from configuration: the
// ClickHouse tables the consumer writes, or local CSV exports for
// development.
func newSnapshotLoader(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.SnapshotLoader, func(), error) {
	switch cfg.Data.Source {
	case "clickhouse":
		client, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create ClickHouse client: %w", err)
		}
		closeStorage := func() {
			if err := client.Close(); err != nil {
				log.Error("Failed to close ClickHouse client", zap.Error(err))
			}
		}
		return clickhouse.NewRepository(client, log), closeStorage, nil

	case "csv":
		return csvstore.NewLoader(cfg.Data.UsersCSV, cfg.Data.EventsCSV, log), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown data source: %s (supported: clickhouse, csv)", cfg.Data.Source)
	}
}

// loadSnapshot reads both tables and publishes them in one atomic swap.
func loadSnapshot(ctx context.Context, store *snapshot.Store, loader repository.SnapshotLoader, log *zap.Logger) error {
	users, err := loader.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	events, err := loader.LoadEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}

	store.Swap(snapshot.New(events, users))
	log.Info("Analytics snapshot loaded",
		zap.Int("users", len(users)),
		zap.Int("events", len(events)))
	return nil
}
