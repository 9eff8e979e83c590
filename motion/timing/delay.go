package timing

import (
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/lguimbarda/min-motion/motion/core"
)

// DelayBy creates a Transformer that re-emits every value d later on the
// scheduler. Values keep their order. Unsubscribing cancels every pending
// emission. It panics with a *core.ConfigError if d < 0.
func DelayBy[T any](d time.Duration, opts ...Option) core.Transformer[T, T] {
	if d < 0 {
		panic(core.NewConfigError("delayBy", "delay must be >= 0"))
	}
	cfg := newConfig("delayBy", opts)

	return core.Transmit(func(out core.Dispatch[T]) (core.Observer[T], func()) {
		var (
			mu      sync.Mutex
			deliver sync.Mutex
			closed  bool
			queue   []T
			timers  []clock.Timer
		)

		// Timers may fire on different goroutines; each firing emits the
		// oldest queued value so the order of arrival is kept.
		fire := func() {
			deliver.Lock()
			defer deliver.Unlock()

			mu.Lock()
			if closed || len(queue) == 0 {
				mu.Unlock()
				return
			}
			v := queue[0]
			var zero T
			queue[0] = zero
			queue = queue[1:]
			timers = timers[1:]
			mu.Unlock()

			out(v)
		}

		onValue := func(v T) {
			mu.Lock()
			defer mu.Unlock()
			if closed {
				return
			}
			queue = append(queue, v)
			timers = append(timers, cfg.scheduler.AfterFunc(d, fire))
		}

		teardown := func() {
			mu.Lock()
			closed = true
			pending := timers
			queue, timers = nil, nil
			mu.Unlock()

			for _, t := range pending {
				t.Stop()
			}
		}
		return onValue, teardown
	})
}

// Interval emits 0, 1, 2, ... every d on the scheduler until the
// subscription is released. The next tick is scheduled once the previous
// one has been delivered, so ticks never overlap. It panics with a *core.ConfigError if d <= 0.
func Interval(d time.Duration, opts ...Option) core.Stream[int] {
	if d <= 0 {
		panic(core.NewConfigError("interval", "period must be > 0"))
	}
	cfg := newConfig("interval", opts)

	return core.Create(func(dispatch core.Dispatch[int]) func() {
		var (
			mu     sync.Mutex
			timer  clock.Timer
			closed bool
			n      int
		)
		var tick func()
		tick = func() {
			mu.Lock()
			if closed {
				mu.Unlock()
				return
			}
			i := n
			n++
			mu.Unlock()

			dispatch(i)

			mu.Lock()
			if !closed {
				timer = cfg.scheduler.AfterFunc(d, tick)
			}
			mu.Unlock()
		}

		mu.Lock()
		timer = cfg.scheduler.AfterFunc(d, tick)
		mu.Unlock()

		return func() {
			mu.Lock()
			closed = true
			t := timer
			mu.Unlock()
			t.Stop()
		}
	})
}
