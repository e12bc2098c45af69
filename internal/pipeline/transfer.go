package pipeline

import (
	"context"
	"fmt"

	"txhandoff/internal/metrics"
	"txhandoff/internal/ownership"
	"txhandoff/internal/record"
)

// Transfer moves the record out of the handle for every consumer. Only the
// first consumer can succeed; the next one is refused with
// ownership.ErrUseAfterTransfer.
type Transfer struct{ base }

func (p *Transfer) Name() string { return ModeTransfer }

func (p *Transfer) Process(ctx context.Context, h *ownership.Owned[record.Record]) error {
	var id string
	for _, c := range p.consumers {
		rec, err := h.Transfer()
		if err != nil {
			metrics.TransfersRejectedTotal.WithLabelValues(c.Name()).Inc()
			p.log.Error().Err(err).Str("consumer", c.Name()).Msg("record already transferred")
			return fmt.Errorf("%s: %w", c.Name(), err)
		}
		id = rec.ID()
		if err := c.Consume(ctx, rec); err != nil {
			return err
		}
	}
	p.done(ModeTransfer, id)
	return nil
}
