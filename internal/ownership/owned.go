// Package ownership simulates single-owner transfer for values at runtime.
//
// Owned wraps a value that may be handed off exactly once; Shared lets
// several holders keep a read-only reference until the last one releases it.
package ownership

import "sync"

// State is the lifecycle position of an Owned handle.
type State int

const (
	// Empty handles never held a value.
	Empty State = iota
	// Live handles hold a value that can be read or transferred.
	Live
	// Consumed handles gave their value away and reject every further access.
	Consumed
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Live:
		return "live"
	case Consumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// Owned holds a value with exactly one owner. The zero value is Empty.
type Owned[T any] struct {
	mu          sync.Mutex
	value       T
	state       State
	transferred Site
	reuses      []Site
}

// Own takes ownership of v and returns a Live handle.
func Own[T any](v T) *Owned[T] {
	return &Owned[T]{value: v, state: Live}
}

// State reports the current lifecycle state.
func (o *Owned[T]) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Transfer hands the value to the caller and moves the handle to Consumed.
// Calling it again fails with a *TransferError naming the first transfer.
func (o *Owned[T]) Transfer() (T, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	site := callerSite(1)
	var zero T
	if err := o.checkLocked(site); err != nil {
		return zero, err
	}
	v := o.value
	o.value = zero
	o.state = Consumed
	o.transferred = site
	return v, nil
}

// Borrow returns a read-only view of the value without giving up ownership.
func (o *Owned[T]) Borrow() (T, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.checkLocked(callerSite(1)); err != nil {
		var zero T
		return zero, err
	}
	return o.value, nil
}

// Reuses lists every rejected access since the value was transferred.
func (o *Owned[T]) Reuses() []Site {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Site, len(o.reuses))
	copy(out, o.reuses)
	return out
}

func (o *Owned[T]) checkLocked(at Site) error {
	switch o.state {
	case Live:
		return nil
	case Consumed:
		o.reuses = append(o.reuses, at)
		reuses := make([]Site, len(o.reuses))
		copy(reuses, o.reuses)
		return &TransferError{Transferred: o.transferred, Reuses: reuses}
	default:
		return ErrEmpty
	}
}
