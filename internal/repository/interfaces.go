package repository

import (
	"context"

	"github.com/vizsprints/analytics-service/internal/domain"
)

// EventRepository defines the storage operations the ingestion pipeline needs
type EventRepository interface {
	// InsertBatch inserts a batch of events into the storage
	InsertBatch(ctx context.Context, events []*domain.Event) (int, error)

	// InitSchema initializes the database schema (creates tables if they don't exist)
	InitSchema(ctx context.Context) error

	// Ping checks if the database connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error
}

// SnapshotLoader reads full table snapshots for the analytics engine.
// Implementations must return complete, self-consistent tables; the caller
// publishes them atomically.
type SnapshotLoader interface {
	LoadEvents(ctx context.Context) ([]domain.Event, error)
	LoadUsers(ctx context.Context) ([]domain.User, error)
}
