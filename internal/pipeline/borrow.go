package pipeline

import (
	"context"

	"txhandoff/internal/ownership"
	"txhandoff/internal/record"
)

// Borrow lends every consumer a read-only view while the handle stays live,
// then drops the record once the last consumer returns.
type Borrow struct{ base }

func (p *Borrow) Name() string { return ModeBorrow }

func (p *Borrow) Process(ctx context.Context, h *ownership.Owned[record.Record]) error {
	for _, c := range p.consumers {
		view, err := h.Borrow()
		if err != nil {
			return err
		}
		if err := c.Consume(ctx, view); err != nil {
			return err
		}
	}
	rec, err := h.Transfer()
	if err != nil {
		return err
	}
	p.done(ModeBorrow, rec.ID())
	return nil
}
