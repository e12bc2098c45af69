package pipeline

import (
	"context"

	"txhandoff/internal/ownership"
	"txhandoff/internal/record"
)

// Share wraps the record in a reference-counted value. Each consumer runs
// while holding its own reference; the record is released with the last one.
type Share struct {
	base
	// observe, when set, sees the shared value before it is released.
	observe func(*ownership.Shared[record.Record])
}

func (p *Share) Name() string { return ModeShare }

func (p *Share) Process(ctx context.Context, h *ownership.Owned[record.Record]) error {
	rec, err := h.Transfer()
	if err != nil {
		return err
	}
	id := rec.ID()
	shared := ownership.Share(rec)
	defer shared.Release()

	for _, c := range p.consumers {
		if err := consumeShared(ctx, c.Consume, shared); err != nil {
			return err
		}
	}
	if p.observe != nil {
		p.observe(shared)
	}
	p.done(ModeShare, id)
	return nil
}

func consumeShared(ctx context.Context, consume func(context.Context, record.Record) error, shared *ownership.Shared[record.Record]) error {
	ref, err := shared.Retain()
	if err != nil {
		return err
	}
	defer ref.Release()
	rec, err := ref.Load()
	if err != nil {
		return err
	}
	return consume(ctx, rec)
}
