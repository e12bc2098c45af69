package notify

import (
	"context"

	"github.com/rs/zerolog"

	"txhandoff/internal/record"
)

// Log writes each event as a log line instead of sending it anywhere.
type Log struct{ log zerolog.Logger }

func NewLog(log zerolog.Logger) *Log { return &Log{log: log} }

func (l *Log) Publish(_ context.Context, topic string, event Event) error {
	l.log.Info().
		Str("topic", topic).
		Str("transaction_id", event.TransactionID).
		Str("from_account", event.FromAccount).
		Str("to_account", event.ToAccount).
		Str("amount", record.FormatAmount(event.Amount)).
		Time("occurred_at", event.OccurredAt).
		Msg("publish event")
	return nil
}

func (l *Log) Close() error { return nil }
