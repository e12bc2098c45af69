package store

import (
	"context"
	"sync"

	"txhandoff/internal/record"
)

// Memory stores records in process for quick inspection.
type Memory struct {
	mu      sync.Mutex
	records map[string]record.Record
	order   []string
}

// NewMemory creates an empty store optionally pre-sizing storage.
func NewMemory(capacity int) *Memory {
	if capacity < 0 {
		capacity = 0
	}
	return &Memory{
		records: make(map[string]record.Record, capacity),
		order:   make([]string, 0, capacity),
	}
}

func (m *Memory) Save(_ context.Context, rec record.Record) error {
	id := rec.ID()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[id]; exists {
		return ErrDuplicate
	}
	m.records[id] = rec
	m.order = append(m.order, id)
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (record.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return record.Record{}, ErrNotFound
	}
	return rec.Clone(), nil
}

// Snapshot returns copies of the stored records in insertion order.
func (m *Memory) Snapshot() []record.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]record.Record, 0, len(m.order))
	for _, id := range m.order {
		rec := m.records[id]
		out = append(out, rec.Clone())
	}
	return out
}

// Reset clears all stored records.
func (m *Memory) Reset() {
	m.mu.Lock()
	m.records = make(map[string]record.Record)
	m.order = m.order[:0]
	m.mu.Unlock()
}

func (m *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
