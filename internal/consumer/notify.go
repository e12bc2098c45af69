package consumer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"txhandoff/internal/metrics"
	"txhandoff/internal/notify"
	"txhandoff/internal/record"
)

// Notifier announces records on a publisher topic.
type Notifier struct {
	pub   notify.Publisher
	topic string
	log   zerolog.Logger
}

func NewNotifier(pub notify.Publisher, topic string, log zerolog.Logger) *Notifier {
	if topic == "" {
		topic = notify.DefaultTopic
	}
	return &Notifier{pub: pub, topic: topic, log: log.With().Str("consumer", NotifyName).Logger()}
}

func (n *Notifier) Name() string { return NotifyName }

func (n *Notifier) Consume(ctx context.Context, rec record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.log.Info().Str("topic", n.topic).EmbedObject(&rec).Msg("sending notification")
	if err := n.pub.Publish(ctx, n.topic, notify.NewEvent(&rec)); err != nil {
		n.log.Error().Err(err).Str("id", rec.ID()).Msg("publish failed")
		return fmt.Errorf("notify %s: %w", rec.ID(), err)
	}
	metrics.ConsumerEffectsTotal.WithLabelValues(NotifyName).Inc()
	return nil
}
