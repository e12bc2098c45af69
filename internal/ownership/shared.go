package ownership

import "sync"

// Shared is a reference-counted, read-only value. Every holder obtained
// through Share or Retain must call Release once.
type Shared[T any] struct {
	mu    sync.Mutex
	value T
	refs  int
}

// Share takes ownership of v and returns it with a single reference.
func Share[T any](v T) *Shared[T] {
	return &Shared[T]{value: v, refs: 1}
}

// Retain adds a reference. It fails once the value has been released.
func (s *Shared[T]) Retain() (*Shared[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs == 0 {
		return nil, ErrReleased
	}
	s.refs++
	return s, nil
}

// Load returns the value while at least one reference is held.
func (s *Shared[T]) Load() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs == 0 {
		var zero T
		return zero, ErrReleased
	}
	return s.value, nil
}

// Release drops a reference and reports whether it was the last one.
// Releasing an already released value is a no-op.
func (s *Shared[T]) Release() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs == 0 {
		return false
	}
	s.refs--
	if s.refs > 0 {
		return false
	}
	var zero T
	s.value = zero
	return true
}

// Refs reports the number of outstanding references.
func (s *Shared[T]) Refs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs
}
