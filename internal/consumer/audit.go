package consumer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"txhandoff/internal/audit"
	"txhandoff/internal/metrics"
	"txhandoff/internal/record"
)

// Auditor appends records to the audit trail.
type Auditor struct {
	recorder *audit.Recorder
	log      zerolog.Logger
}

func NewAuditor(recorder *audit.Recorder, log zerolog.Logger) *Auditor {
	return &Auditor{recorder: recorder, log: log.With().Str("consumer", AuditName).Logger()}
}

func (a *Auditor) Name() string { return AuditName }

func (a *Auditor) Consume(ctx context.Context, rec record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := rec.ID()
	a.log.Info().EmbedObject(&rec).Msg("audit log")
	if err := a.recorder.Record(rec); err != nil {
		a.log.Error().Err(err).Str("id", id).Msg("audit write failed")
		return fmt.Errorf("audit %s: %w", id, err)
	}
	metrics.ConsumerEffectsTotal.WithLabelValues(AuditName).Inc()
	return nil
}
