package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/vizsprints/analytics-service/internal/domain"
)

// timestampLayout is the export format of the generated data files.
const timestampLayout = "2006-01-02T15:04:05Z"

var (
	userHeader  = []string{"user_id", "joined_at", "device", "country", "subscription_status", "ab_variant"}
	eventHeader = []string{"event_id", "user_id", "event_name", "timestamp", "metadata"}
)

// Loader reads table snapshots from the users.csv / events.csv pair used in
// local development. Malformed rows fail the whole load: a partial snapshot
// would silently skew every aggregate built on it.
type Loader struct {
	usersPath  string
	eventsPath string
	log        *zap.Logger
}

// NewLoader creates a CSV snapshot loader
func NewLoader(usersPath, eventsPath string, log *zap.Logger) *Loader {
	return &Loader{
		usersPath:  usersPath,
		eventsPath: eventsPath,
		log:        log,
	}
}

// LoadUsers reads the whole user roster
func (l *Loader) LoadUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := readCSV(l.usersPath, userHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to load users from %s: %w", l.usersPath, err)
	}

	users := make([]domain.User, 0, len(rows))
	for i, row := range rows {
		joinedAt, err := time.Parse(timestampLayout, row[1])
		if err != nil {
			return nil, fmt.Errorf("users row %d: unparseable joined_at %q: %w", i+2, row[1], err)
		}
		users = append(users, domain.User{
			UserID:             row[0],
			JoinedAt:           joinedAt,
			Device:             domain.Device(row[2]),
			Country:            row[3],
			SubscriptionStatus: domain.SubscriptionStatus(row[4]),
			ABVariant:          domain.ABVariant(row[5]),
		})
	}

	l.log.Info("Loaded users from CSV",
		zap.String("path", l.usersPath),
		zap.Int("count", len(users)))
	return users, nil
}

// LoadEvents reads the whole event log
func (l *Loader) LoadEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := readCSV(l.eventsPath, eventHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to load events from %s: %w", l.eventsPath, err)
	}

	events := make([]domain.Event, 0, len(rows))
	for i, row := range rows {
		timestamp, err := time.Parse(timestampLayout, row[3])
		if err != nil {
			return nil, fmt.Errorf("events row %d: unparseable timestamp %q: %w", i+2, row[3], err)
		}

		metadata, err := domain.ParseMetadata(row[2], []byte(row[4]))
		if err != nil {
			return nil, fmt.Errorf("events row %d: malformed metadata: %w", i+2, err)
		}

		events = append(events, domain.Event{
			EventID:   row[0],
			UserID:    row[1],
			EventName: row[2],
			Timestamp: timestamp,
			Metadata:  metadata,
		})
	}

	l.log.Info("Loaded events from CSV",
		zap.String("path", l.eventsPath),
		zap.Int("count", len(events)))
	return events, nil
}

// readCSV reads all records of a headed CSV file, validating the header.
func readCSV(path string, expectedHeader []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(expectedHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, name := range expectedHeader {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected header: got %v, want %v", header, expectedHeader)
		}
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
