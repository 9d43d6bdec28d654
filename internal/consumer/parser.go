package consumer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vizsprints/analytics-service/internal/domain"
)

// eventMessage is the wire shape producers put on the queue. Timestamp may
// be a unix epoch number or an RFC 3339 string.
type eventMessage struct {
	EventID   string          `json:"event_id"`
	UserID    string          `json:"user_id"`
	EventName string          `json:"event_name"`
	Timestamp json.RawMessage `json:"timestamp"`
	Metadata  json.RawMessage `json:"metadata"`
}

// JSONEventParser implements MessageParser for JSON-formatted event messages
type JSONEventParser struct{}

// NewJSONEventParser creates a new JSON event parser
func NewJSONEventParser() *JSONEventParser {
	return &JSONEventParser{}
}

// Parse parses a JSON message body into an Event. Messages missing a user
// id or event name are rejected so malformed input never reaches the
// analytics tables.
func (p *JSONEventParser) Parse(body []byte) (*domain.Event, error) {
	var msg eventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	if msg.UserID == "" {
		return nil, fmt.Errorf("message missing user_id")
	}
	if msg.EventName == "" {
		return nil, fmt.Errorf("message missing event_name")
	}

	timestamp, err := parseTimestamp(msg.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("message has unparseable timestamp: %w", err)
	}

	metadata, err := domain.ParseMetadata(msg.EventName, msg.Metadata)
	if err != nil {
		return nil, fmt.Errorf("message has malformed metadata: %w", err)
	}

	eventID := msg.EventID
	if eventID == "" {
		eventID = computeEventID(msg.UserID, msg.EventName, timestamp)
	}

	return &domain.Event{
		EventID:   eventID,
		UserID:    msg.UserID,
		EventName: msg.EventName,
		Timestamp: timestamp,
		Metadata:  metadata,
	}, nil
}

// parseTimestamp accepts a unix epoch number or an RFC 3339 string.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 {
		return time.Time{}, fmt.Errorf("timestamp is required")
	}

	var epoch int64
	if err := json.Unmarshal(raw, &epoch); err == nil {
		return time.Unix(epoch, 0).UTC(), nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return time.Time{}, fmt.Errorf("timestamp is neither a number nor a string")
	}
	t, err := time.Parse(time.RFC3339, text)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// computeEventID derives a deterministic id for producers that supplied
// none, so redelivered messages dedupe in storage.
func computeEventID(userID, eventName string, timestamp time.Time) string {
	data := fmt.Sprintf("%s|%s|%d", userID, eventName, timestamp.UnixNano())
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
