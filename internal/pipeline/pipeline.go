// Package pipeline routes a single transfer record through every consumer.
package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"txhandoff/internal/consumer"
	"txhandoff/internal/metrics"
	"txhandoff/internal/ownership"
	"txhandoff/internal/record"
)

// Pipeline hands the record held by a live handle to each consumer in order.
type Pipeline interface {
	Name() string
	Process(ctx context.Context, h *ownership.Owned[record.Record]) error
}

// Run takes ownership of rec and processes it with p.
func Run(ctx context.Context, p Pipeline, rec record.Record) error {
	return p.Process(ctx, ownership.Own(rec))
}

type base struct {
	consumers []consumer.Consumer
	log       zerolog.Logger
}

func (b base) done(strategy string, id string) {
	metrics.RecordsProcessedTotal.WithLabelValues(strategy).Inc()
	b.log.Info().Str("strategy", strategy).Str("id", id).Int("consumers", len(b.consumers)).Msg("record processed")
}
