package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nsqio/go-nsq"
)

// NSQ publishes events through an nsqd producer.
type NSQ struct {
	producer *nsq.Producer
}

func NewNSQ(addr string) (*NSQ, error) {
	if addr == "" {
		return nil, fmt.Errorf("nsq publisher requires an nsqd address")
	}
	producer, err := nsq.NewProducer(addr, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("init nsq producer: %w", err)
	}
	return &NSQ{producer: producer}, nil
}

func (n *NSQ) Publish(ctx context.Context, topic string, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.producer.Publish(topic, body)
}

func (n *NSQ) Close() error {
	if n.producer != nil {
		n.producer.Stop()
	}
	return nil
}
