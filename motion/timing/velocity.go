package timing

import (
	"sync"
	"time"

	"github.com/lguimbarda/min-motion/motion/aggregate"
	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/geom"
)

// Velocity creates a Transformer that emits the velocity of a stream of
// positions, in units per second, after every position. It is the
// composition Timestamp → SlidingWindow → VelocityOf.
func Velocity[T any](sp geom.Space[T], opts ...Option) core.Transformer[T, T] {
	cfg := newConfig("velocity", opts)
	stamp := Timestamp[T](WithScheduler(cfg.scheduler))
	window := aggregate.SlidingWindow[Timestamped[T]](cfg.window)
	slope := VelocityOf(sp, opts...)

	return core.OperatorFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return slope.Apply(window.Apply(stamp.Apply(s)))
	})
}

// VelocityOf creates a Transformer that turns a window of timestamped
// samples, oldest first, into the slope between the newest sample and the
// oldest one still inside the max age. Fewer than two usable samples, or
// samples sharing one timestamp, yield sp.Zero().
func VelocityOf[T any](sp geom.Space[T], opts ...Option) core.Transformer[[]Timestamped[T], T] {
	cfg := newConfig("velocity", opts)
	return core.Map(func(window []Timestamped[T]) T {
		if len(window) == 0 {
			return sp.Zero()
		}
		return slope(sp, window, window[len(window)-1].Time, cfg)
	})
}

// VelocityOn samples velocity whenever pulse emits instead of on every
// position. Positions are timestamped on arrival and aged against the
// scheduler time of the pulse, so a pointer that stopped moving decays to
// zero.
func VelocityOn[T, P any](sp geom.Space[T], pulse core.Stream[P], opts ...Option) core.Transformer[T, T] {
	if pulse == nil {
		panic(core.NewConfigError("velocity", "pulse cannot be nil"))
	}
	cfg := newConfig("velocity", opts)

	return core.OperatorFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return core.Observable[T](func(obs core.Observer[T]) core.Subscription {
			var (
				mu      sync.Mutex
				samples []Timestamped[T]
			)
			sub := core.NewTeardown()

			sub.Add(s.Subscribe(func(v T) {
				now := cfg.scheduler.Now()
				mu.Lock()
				if len(samples) == cfg.window {
					samples = append(samples[:0], samples[1:]...)
				}
				samples = append(samples, Timestamped[T]{Value: v, Time: now})
				mu.Unlock()
			}).Unsubscribe)

			sub.Add(pulse.Subscribe(func(P) {
				if sub.Closed() {
					return
				}
				now := cfg.scheduler.Now()
				mu.Lock()
				window := append([]Timestamped[T](nil), samples...)
				mu.Unlock()
				obs(slope(sp, window, now, cfg))
			}).Unsubscribe)

			return sub
		})
	})
}

func slope[T any](sp geom.Space[T], window []Timestamped[T], now time.Time, cfg config) T {
	first := 0
	if cfg.maxAge > 0 {
		for first < len(window) && now.Sub(window[first].Time) > cfg.maxAge {
			first++
		}
	}
	usable := window[first:]
	if len(usable) < 2 {
		return sp.Zero()
	}

	oldest, newest := usable[0], usable[len(usable)-1]
	dt := newest.Time.Sub(oldest.Time).Seconds()
	if dt <= 0 {
		return sp.Zero()
	}

	v := sp.Scale(sp.Sub(newest.Value, oldest.Value), 1/dt)
	if cfg.maxSpeed > 0 {
		if speed := sp.Norm(v); speed > cfg.maxSpeed {
			v = sp.Scale(v, cfg.maxSpeed/speed)
		}
	}
	return v
}
