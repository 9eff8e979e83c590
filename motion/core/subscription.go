package core

import (
	"sync"
	"sync/atomic"
)

// Teardown is a Subscription that runs a list of cleanup functions exactly
// once, in the order they were added.
type Teardown struct {
	closed atomic.Bool
	mu     sync.Mutex
	fns    []func()
}

// NewTeardown creates a Teardown holding the given cleanup functions.
func NewTeardown(fns ...func()) *Teardown {
	t := &Teardown{}
	for _, fn := range fns {
		if fn != nil {
			t.fns = append(t.fns, fn)
		}
	}
	return t
}

// Add registers another cleanup function. If the Teardown has already been
// released, fn runs immediately.
func (t *Teardown) Add(fn func()) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	if t.closed.Load() {
		t.mu.Unlock()
		fn()
		return
	}
	t.fns = append(t.fns, fn)
	t.mu.Unlock()
}

// Closed reports whether Unsubscribe has been called.
func (t *Teardown) Closed() bool {
	return t.closed.Load()
}

// Unsubscribe runs the cleanup functions. Calls after the first are no-ops.
func (t *Teardown) Unsubscribe() {
	t.mu.Lock()
	if t.closed.Swap(true) {
		t.mu.Unlock()
		return
	}
	fns := t.fns
	t.fns = nil
	t.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
