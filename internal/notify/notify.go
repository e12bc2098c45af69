// Package notify publishes transfer events to downstream listeners.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"txhandoff/internal/record"
)

// DefaultTopic is used when no topic is configured.
const DefaultTopic = "transfer_recorded"

// Event announces that a transfer record reached the notify consumer.
type Event struct {
	TransactionID string          `json:"transaction_id"`
	FromAccount   string          `json:"from_account"`
	ToAccount     string          `json:"to_account"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewEvent reads rec without taking ownership of it.
func NewEvent(rec *record.Record) Event {
	return Event{
		TransactionID: rec.ID(),
		FromAccount:   rec.Source(),
		ToAccount:     rec.Destination(),
		Amount:        rec.Amount(),
		OccurredAt:    rec.Timestamp(),
	}
}

// Publisher delivers events to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close() error
}

const (
	DriverLog       = "log"
	DriverMemory    = "memory"
	DriverKafka     = "kafka"
	DriverNSQ       = "nsq"
	DriverWebSocket = "websocket"
)

// Options carries transport specific settings.
type Options struct {
	Brokers []string
	NSQAddr string
	URL     string
}

// Build returns the publisher matching driver.
func Build(ctx context.Context, driver string, opts Options, log zerolog.Logger) (Publisher, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverLog:
		return NewLog(log), nil
	case DriverMemory:
		return NewMemory(), nil
	case DriverKafka:
		return NewKafka(opts.Brokers)
	case DriverNSQ:
		return NewNSQ(opts.NSQAddr)
	case DriverWebSocket:
		return DialWebSocket(ctx, opts.URL)
	default:
		return nil, fmt.Errorf("notify driver invalid: %s", driver)
	}
}
