package core

import "sync"

// Recorder is a terminal Observer that keeps every value it receives.
// It is mostly useful in tests and examples.
type Recorder[T any] struct {
	mu     sync.Mutex
	values []T
	sub    Subscription
}

// Record subscribes a new Recorder to s.
func Record[T any](s Stream[T]) *Recorder[T] {
	r := &Recorder[T]{}
	r.sub = s.Subscribe(r.add)
	return r
}

func (r *Recorder[T]) add(v T) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
}

// Values returns a copy of the values received so far.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.values))
	copy(out, r.values)
	return out
}

// Len returns the number of values received so far.
func (r *Recorder[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Last returns the most recent value, if any.
func (r *Recorder[T]) Last() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		var zero T
		return zero, false
	}
	return r.values[len(r.values)-1], true
}

// Unsubscribe detaches the Recorder from its stream.
func (r *Recorder[T]) Unsubscribe() {
	r.sub.Unsubscribe()
}
