package timing

import (
	"time"

	"github.com/lguimbarda/min-motion/motion/core"
)

// Timestamped pairs a value with the time it was observed.
type Timestamped[T any] struct {
	Value T
	Time  time.Time
}

// Timestamp creates a Transformer that records the scheduler time of every
// value as it passes.
func Timestamp[T any](opts ...Option) core.Transformer[T, Timestamped[T]] {
	cfg := newConfig("timestamp", opts)
	return core.Map(func(v T) Timestamped[T] {
		return Timestamped[T]{Value: v, Time: cfg.scheduler.Now()}
	})
}
