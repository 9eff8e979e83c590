// Package filter provides operators that decide whether a value is passed
// downstream without changing it.
package filter

import (
	"github.com/lguimbarda/min-motion/motion/core"
)

// Dedupe suppresses a value equal to the last value it emitted. The first
// value always passes. Equality is ==, so NaN never equals itself.
func Dedupe[T comparable]() core.Transformer[T, T] {
	return DedupeFunc(func(a, b T) bool { return a == b })
}

// DedupeFunc is Dedupe with a custom equality.
func DedupeFunc[T any](equal func(a, b T) bool) core.Transformer[T, T] {
	if equal == nil {
		panic(core.NewConfigError("dedupe", "equality function cannot be nil"))
	}
	return core.Transmit(func(out core.Dispatch[T]) (core.Observer[T], func()) {
		var (
			last T
			seen bool
		)
		return func(v T) {
			if seen && equal(last, v) {
				return
			}
			last, seen = v, true
			out(v)
		}, nil
	})
}

// IgnoreUntil drops values until predicate first returns true. The value
// that satisfies it is emitted, as is everything after; predicate is not
// called again once it has matched.
func IgnoreUntil[T any](predicate func(T) bool) core.Transformer[T, T] {
	if predicate == nil {
		panic(core.NewConfigError("ignoreUntil", "predicate cannot be nil"))
	}
	return core.Transmit(func(out core.Dispatch[T]) (core.Observer[T], func()) {
		open := false
		return func(v T) {
			if !open {
				if !predicate(v) {
					return
				}
				open = true
			}
			out(v)
		}, nil
	})
}

// IgnoreUntilSignal drops values until signal emits for the first time.
// The signal subscription is released as soon as it has fired.
func IgnoreUntilSignal[T, S any](signal core.Stream[S]) core.Transformer[T, T] {
	if signal == nil {
		panic(core.NewConfigError("ignoreUntil", "signal cannot be nil"))
	}
	return core.Transmit(func(out core.Dispatch[T]) (core.Observer[T], func()) {
		var (
			open bool
			sub  core.Subscription
		)
		sub = signal.Subscribe(func(S) {
			if open {
				return
			}
			open = true
			if sub != nil {
				sub.Unsubscribe()
			}
		})
		if open {
			sub.Unsubscribe()
		}
		return func(v T) {
			if open {
				out(v)
			}
		}, sub.Unsubscribe
	})
}
