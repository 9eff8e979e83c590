// Package combine provides operators that join several motion streams.
package combine

import (
	"sync"

	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/geom"
)

// Merge combines multiple streams into a single stream.
// Items are emitted as they arrive from any source (interleaved).
func Merge[T any](streams ...core.Stream[T]) core.Stream[T] {
	return core.Merge(streams...)
}

// MergeWith creates a Transformer that merges its input with others.
func MergeWith[T any](others ...core.Stream[T]) core.Transformer[T, T] {
	for _, s := range others {
		if s == nil {
			panic(core.NewConfigError("merge", "stream cannot be nil"))
		}
	}
	return core.OperatorFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return core.Merge(append([]core.Stream[T]{s}, others...)...)
	})
}

// WithLatestFrom combines each value of source with the most recent value
// of other. Values of source that arrive before other has emitted are
// dropped.
func WithLatestFrom[T, U, R any](source core.Stream[T], other core.Stream[U], combine func(T, U) R) core.Stream[R] {
	if combine == nil {
		panic(core.NewConfigError("withLatestFrom", "combine function cannot be nil"))
	}
	return core.Observable[R](func(obs core.Observer[R]) core.Subscription {
		var (
			mu     sync.Mutex
			latest U
			ready  bool
		)
		sub := core.NewTeardown()

		sub.Add(other.Subscribe(func(u U) {
			mu.Lock()
			latest, ready = u, true
			mu.Unlock()
		}).Unsubscribe)

		sub.Add(source.Subscribe(func(v T) {
			mu.Lock()
			u, ok := latest, ready
			mu.Unlock()
			if ok && !sub.Closed() {
				obs(combine(v, u))
			}
		}).Unsubscribe)

		return sub
	})
}

// CombineLatest emits a slice containing the latest value from each stream
// whenever any of them emits, once all of them have emitted at least once.
func CombineLatest[T any](streams ...core.Stream[T]) core.Stream[[]T] {
	return core.Observable[[]T](func(obs core.Observer[[]T]) core.Subscription {
		var (
			mu      sync.Mutex
			latest  = make([]T, len(streams))
			seen    = make([]bool, len(streams))
			missing = len(streams)
		)
		sub := core.NewTeardown()

		for i, s := range streams {
			sub.Add(s.Subscribe(func(v T) {
				mu.Lock()
				latest[i] = v
				if !seen[i] {
					seen[i] = true
					missing--
				}
				var snapshot []T
				if missing == 0 {
					snapshot = append([]T(nil), latest...)
				}
				mu.Unlock()

				if snapshot != nil && !sub.Closed() {
					obs(snapshot)
				}
			}).Unsubscribe)
		}
		return sub
	})
}

// DistanceFromLatest creates a Transformer that emits the distance in sp
// between each value and the most recent origin. Nothing is emitted until
// origin has produced a value.
func DistanceFromLatest[T any](sp geom.Space[T], origin core.Stream[T]) core.Transformer[T, float64] {
	if origin == nil {
		panic(core.NewConfigError("distanceFrom", "origin cannot be nil"))
	}
	return core.OperatorFunc[T, float64](func(s core.Stream[T]) core.Stream[float64] {
		return WithLatestFrom(s, origin, func(v, o T) float64 {
			return sp.Norm(sp.Sub(v, o))
		})
	})
}
