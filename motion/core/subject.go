package core

import (
	"errors"
	"slices"
	"sync"
)

// Subject is a hot, multicast Stream fed by calls to Next. Every subscribed
// Observer receives each value in subscription order.
//
// A fault raised by one Observer tears down only that Observer's
// subscription: the remaining Observers still receive the value, and the
// fault is re-raised to the caller of Next once delivery is complete.
type Subject[T any] struct {
	mu        sync.Mutex
	observers []*subjectObserver[T]
}

type subjectObserver[T any] struct {
	obs Observer[T]
	sub *Teardown
}

// NewSubject creates a Subject with no observers.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe registers obs for every subsequent Next.
func (s *Subject[T]) Subscribe(obs Observer[T]) Subscription {
	if obs == nil {
		panic(NewConfigError("subscribe", "nil observer"))
	}
	entry := &subjectObserver[T]{obs: obs}
	entry.sub = NewTeardown(func() { s.remove(entry) })

	s.mu.Lock()
	s.observers = append(slices.Clip(s.observers), entry)
	s.mu.Unlock()
	return entry.sub
}

func (s *Subject[T]) remove(entry *subjectObserver[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = slices.DeleteFunc(slices.Clone(s.observers), func(o *subjectObserver[T]) bool {
		return o == entry
	})
}

// Observed returns the number of live subscriptions.
func (s *Subject[T]) Observed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

// Next pushes v to every live subscription.
func (s *Subject[T]) Next(v T) {
	s.mu.Lock()
	observers := s.observers
	s.mu.Unlock()

	var faults []fault
	for _, o := range observers {
		if o.sub.Closed() {
			continue
		}
		if f, faulted := deliver(o.obs, v); faulted {
			o.sub.Unsubscribe()
			faults = append(faults, f)
		}
	}

	switch len(faults) {
	case 0:
	case 1:
		panic(faults[0].value)
	default:
		errs := make([]error, len(faults))
		for i, f := range faults {
			errs[i] = f.err
		}
		panic(errors.Join(errs...))
	}
}

// fault is a recovered observer panic. err is the value itself when it is
// an error, or an ErrPanic whose stack was taken at the panic site.
type fault struct {
	value any
	err   error
}

func deliver[T any](obs Observer[T], v T) (f fault, faulted bool) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = NewPanicError(r)
			}
			f, faulted = fault{value: r, err: err}, true
		}
	}()
	obs(v)
	return fault{}, false
}
