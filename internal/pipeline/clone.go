package pipeline

import (
	"context"

	"txhandoff/internal/ownership"
	"txhandoff/internal/record"
)

// Clone takes the record once and gives each consumer its own duplicate.
type Clone struct{ base }

func (p *Clone) Name() string { return ModeClone }

func (p *Clone) Process(ctx context.Context, h *ownership.Owned[record.Record]) error {
	rec, err := h.Transfer()
	if err != nil {
		return err
	}
	for _, c := range p.consumers {
		if err := c.Consume(ctx, rec.Clone()); err != nil {
			return err
		}
	}
	p.done(ModeClone, rec.ID())
	return nil
}
