package clickhouse

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vizsprints/analytics-service/internal/domain"
)

// Repository implements event writes and snapshot reads against ClickHouse
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new ClickHouse repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// InitSchema creates the events and users tables if they don't exist
func (r *Repository) InitSchema(ctx context.Context) error {
	eventsQuery := `
	CREATE TABLE IF NOT EXISTS events (
		event_id String,
		user_id String,
		event_name LowCardinality(String),
		timestamp DateTime64(3),
		metadata String,
		version UInt64
	) ENGINE = ReplacingMergeTree(version)
	PRIMARY KEY (event_id)
	ORDER BY (event_id, timestamp)
	PARTITION BY toYYYYMM(timestamp)
	SETTINGS index_granularity = 8192
	`

	usersQuery := `
	CREATE TABLE IF NOT EXISTS users (
		user_id String,
		joined_at DateTime64(3),
		device LowCardinality(String),
		country LowCardinality(String),
		subscription_status LowCardinality(String),
		ab_variant LowCardinality(String)
	) ENGINE = ReplacingMergeTree()
	PRIMARY KEY (user_id)
	ORDER BY (user_id)
	`

	if err := r.client.Conn().Exec(ctx, eventsQuery); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}
	if err := r.client.Conn().Exec(ctx, usersQuery); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized successfully")
	return nil
}

// InsertBatch inserts a batch of events into ClickHouse
func (r *Repository) InsertBatch(ctx context.Context, events []*domain.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO events")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch: %w", err)
	}

	insertedCount := 0
	for _, event := range events {
		metadataJSON, err := event.Metadata.Encode()
		if err != nil {
			return 0, fmt.Errorf("failed to encode metadata for event %s: %w", event.EventID, err)
		}

		err = batch.Append(
			event.EventID,
			event.UserID,
			event.EventName,
			event.Timestamp,
			metadataJSON,
			uint64(time.Now().UnixNano()),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to append event to batch: %w", err)
		}
		insertedCount++
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send batch: %w", err)
	}

	return insertedCount, nil
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}

// LoadEvents reads the whole event table for a snapshot, ordered by timestamp
func (r *Repository) LoadEvents(ctx context.Context) ([]domain.Event, error) {
	query := `
		SELECT event_id, user_id, event_name, timestamp, metadata
		FROM events FINAL
		ORDER BY timestamp ASC
	`

	rows, err := r.client.Conn().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.log.Error("Failed to close events rows", zap.Error(err))
		}
	}()

	var events []domain.Event
	for rows.Next() {
		var (
			ev          domain.Event
			metadataRaw string
		)
		if err := rows.Scan(&ev.EventID, &ev.UserID, &ev.EventName, &ev.Timestamp, &metadataRaw); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}

		ev.Metadata, err = domain.ParseMetadata(ev.EventName, []byte(metadataRaw))
		if err != nil {
			return nil, fmt.Errorf("malformed metadata for event %s: %w", ev.EventID, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	r.log.Info("Loaded events snapshot", zap.Int("count", len(events)))
	return events, nil
}

// LoadUsers reads the whole user roster for a snapshot
func (r *Repository) LoadUsers(ctx context.Context) ([]domain.User, error) {
	query := `
		SELECT user_id, joined_at, device, country, subscription_status, ab_variant
		FROM users FINAL
		ORDER BY user_id ASC
	`

	rows, err := r.client.Conn().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.log.Error("Failed to close users rows", zap.Error(err))
		}
	}()

	var users []domain.User
	for rows.Next() {
		var (
			u            domain.User
			device       string
			subscription string
			variant      string
		)
		if err := rows.Scan(&u.UserID, &u.JoinedAt, &device, &u.Country, &subscription, &variant); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		u.Device = domain.Device(device)
		u.SubscriptionStatus = domain.SubscriptionStatus(subscription)
		u.ABVariant = domain.ABVariant(variant)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	r.log.Info("Loaded users snapshot", zap.Int("count", len(users)))
	return users, nil
}
