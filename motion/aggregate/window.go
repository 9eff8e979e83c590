// Package aggregate provides operators that combine several values of a
// stream into one emission.
package aggregate

import (
	"github.com/lguimbarda/min-motion/motion/core"
)

// SlidingWindow creates a Transformer that emits the last size values after
// every value. Partial windows are emitted while the buffer fills, so the
// first value produces a window of one. Each emission is a fresh slice that
// the receiver may keep or modify.
//
// It panics with a *core.ConfigError if size <= 0.
func SlidingWindow[T any](size int) core.Transformer[T, []T] {
	if size <= 0 {
		panic(core.NewConfigError("slidingWindow", "size must be > 0"))
	}
	return core.Transmit(func(out core.Dispatch[[]T]) (core.Observer[T], func()) {
		buf := make([]T, 0, size)
		return func(v T) {
			if len(buf) == size {
				copy(buf, buf[1:])
				buf = buf[:size-1]
			}
			buf = append(buf, v)

			window := make([]T, len(buf))
			copy(window, buf)
			out(window)
		}, nil
	})
}

// Scan emits the running accumulation of the stream, starting from initial.
func Scan[T, R any](initial R, scanner func(acc R, item T) R) core.Transformer[T, R] {
	if scanner == nil {
		panic(core.NewConfigError("scan", "scanner cannot be nil"))
	}
	return core.Transmit(func(out core.Dispatch[R]) (core.Observer[T], func()) {
		acc := initial
		return func(v T) {
			acc = scanner(acc, v)
			out(acc)
		}, nil
	})
}

// Pairwise emits [previous, current] for every value after the first.
func Pairwise[T any]() core.Transformer[T, [2]T] {
	return core.Transmit(func(out core.Dispatch[[2]T]) (core.Observer[T], func()) {
		var (
			prev T
			seen bool
		)
		return func(v T) {
			if seen {
				out([2]T{prev, v})
			}
			prev, seen = v, true
		}, nil
	})
}
