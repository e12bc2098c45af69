package consumer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"txhandoff/internal/metrics"
	"txhandoff/internal/record"
	"txhandoff/internal/store"
)

// Persister saves records to a store.
type Persister struct {
	store store.Store
	log   zerolog.Logger
}

func NewPersister(s store.Store, log zerolog.Logger) *Persister {
	return &Persister{store: s, log: log.With().Str("consumer", PersistName).Logger()}
}

func (p *Persister) Name() string { return PersistName }

func (p *Persister) Consume(ctx context.Context, rec record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := rec.ID()
	p.log.Info().EmbedObject(&rec).Msg("saving to store")
	if err := p.store.Save(ctx, rec); err != nil {
		p.log.Error().Err(err).Str("id", id).Msg("save failed")
		return fmt.Errorf("persist %s: %w", id, err)
	}
	metrics.ConsumerEffectsTotal.WithLabelValues(PersistName).Inc()
	return nil
}
