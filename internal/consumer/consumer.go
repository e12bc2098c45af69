// Package consumer holds the terminal side effects a transfer record is routed through.
package consumer

import (
	"context"

	"txhandoff/internal/record"
)

const (
	PersistName = "persist"
	NotifyName  = "notify"
	AuditName   = "audit"
)

// Consumer performs one externally observable action with a record.
// Consume takes ownership of rec; callers must not use it afterwards.
type Consumer interface {
	Name() string
	Consume(ctx context.Context, rec record.Record) error
}
