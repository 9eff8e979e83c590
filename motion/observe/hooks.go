package observe

import (
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/lguimbarda/min-motion/motion/core"
)

// Hooks are callbacks invoked around a subscription. Nil hooks are skipped.
type Hooks[T any] struct {
	OnSubscribe   func()
	OnValue       func(T)
	OnUnsubscribe func()
}

// Tap creates a Transformer that calls h for every subscription event and
// passes values through unchanged. OnValue runs before the value is
// dispatched downstream.
func Tap[T any](h Hooks[T]) core.Transformer[T, T] {
	return core.Transmit(func(out core.Dispatch[T]) (core.Observer[T], func()) {
		if h.OnSubscribe != nil {
			h.OnSubscribe()
		}
		return func(v T) {
			if h.OnValue != nil {
				h.OnValue(v)
			}
			out(v)
		}, h.OnUnsubscribe
	})
}

// StreamMetrics holds statistics about one subscription.
type StreamMetrics struct {
	TotalValues int64

	StartTime      time.Time
	EndTime        time.Time
	FirstValueTime time.Time
	LastValueTime  time.Time

	ValuesPerSecond float64

	// Intervals between consecutive values.
	MinInterval time.Duration
	MaxInterval time.Duration
	AvgInterval time.Duration
}

// Meter creates a Transformer that collects StreamMetrics for every
// subscription and reports them to onDone when it is released. A nil clk
// uses the wall clock.
func Meter[T any](clk clock.PassiveClock, onDone func(StreamMetrics)) core.Transformer[T, T] {
	if onDone == nil {
		panic(core.NewConfigError("meter", "callback cannot be nil"))
	}
	if clk == nil {
		clk = clock.RealClock{}
	}

	return core.Transmit(func(out core.Dispatch[T]) (core.Observer[T], func()) {
		var (
			mu      sync.Mutex
			total   time.Duration
			metrics = StreamMetrics{StartTime: clk.Now()}
		)

		onValue := func(v T) {
			now := clk.Now()
			mu.Lock()
			if metrics.TotalValues == 0 {
				metrics.FirstValueTime = now
			} else {
				interval := now.Sub(metrics.LastValueTime)
				if metrics.TotalValues == 1 || interval < metrics.MinInterval {
					metrics.MinInterval = interval
				}
				if interval > metrics.MaxInterval {
					metrics.MaxInterval = interval
				}
				total += interval
			}
			metrics.TotalValues++
			metrics.LastValueTime = now
			mu.Unlock()

			out(v)
		}

		teardown := func() {
			mu.Lock()
			m, sum := metrics, total
			mu.Unlock()

			m.EndTime = clk.Now()
			if d := m.EndTime.Sub(m.StartTime).Seconds(); d > 0 {
				m.ValuesPerSecond = float64(m.TotalValues) / d
			}
			if m.TotalValues > 1 {
				m.AvgInterval = sum / time.Duration(m.TotalValues-1)
			}
			onDone(m)
		}
		return onValue, teardown
	})
}
