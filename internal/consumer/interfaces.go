package consumer

import (
	"github.com/vizsprints/analytics-service/internal/domain"
)

// MessageParser turns a raw message body into a domain event
type MessageParser interface {
	Parse(body []byte) (*domain.Event, error)
}
