package notify

import (
	"context"
	"sync"
)

// Memory keeps published events per topic for inspection.
type Memory struct {
	mu     sync.Mutex
	topics map[string][]Event
}

func NewMemory() *Memory {
	return &Memory{topics: make(map[string][]Event)}
}

func (m *Memory) Publish(_ context.Context, topic string, event Event) error {
	m.mu.Lock()
	m.topics[topic] = append(m.topics[topic], event)
	m.mu.Unlock()
	return nil
}

// Events returns a copy of the events published to topic.
func (m *Memory) Events(topic string) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.topics[topic]))
	copy(out, m.topics[topic])
	return out
}

func (m *Memory) Close() error { return nil }
