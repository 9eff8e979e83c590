package observe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"k8s.io/utils/clock"

	"github.com/lguimbarda/min-motion/motion/core"
)

const (
	valuesInstrument      = "motion.values"
	intervalInstrument    = "motion.interval_ms"
	subscribersInstrument = "motion.subscribers"
)

type metricsConfig struct {
	clock clock.PassiveClock
}

// MetricsOption configures Metrics.
type MetricsOption func(*metricsConfig)

// WithClock sets the clock used to measure intervals between values.
func WithClock(c clock.PassiveClock) MetricsOption {
	return func(cfg *metricsConfig) { cfg.clock = c }
}

// Metrics creates a passthrough Transformer that records OpenTelemetry
// instruments for the stream called name:
//
//   - motion.values: counter of values seen
//   - motion.interval_ms: histogram of the time between consecutive values
//   - motion.subscribers: up-down counter of live subscriptions
//
// Every measurement carries a "stream" attribute set to name.
func Metrics[T any](meter metric.Meter, name string, opts ...MetricsOption) (core.Transformer[T, T], error) {
	cfg := metricsConfig{clock: clock.RealClock{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	values, err := meter.Int64Counter(valuesInstrument,
		metric.WithDescription("Number of values that passed through the stream."))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", valuesInstrument, err)
	}
	interval, err := meter.Int64Histogram(intervalInstrument,
		metric.WithDescription("Time between consecutive values."),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", intervalInstrument, err)
	}
	subscribers, err := meter.Int64UpDownCounter(subscribersInstrument,
		metric.WithDescription("Number of live subscriptions."))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", subscribersInstrument, err)
	}

	attrs := metric.WithAttributeSet(attribute.NewSet(attribute.String("stream", name)))
	ctx := context.Background()

	return core.Transmit(func(out core.Dispatch[T]) (core.Observer[T], func()) {
		var (
			mu   sync.Mutex
			last time.Time
		)
		subscribers.Add(ctx, 1, attrs)

		onValue := func(v T) {
			now := cfg.clock.Now()
			mu.Lock()
			prev := last
			last = now
			mu.Unlock()

			values.Add(ctx, 1, attrs)
			if !prev.IsZero() {
				interval.Record(ctx, now.Sub(prev).Milliseconds(), attrs)
			}
			out(v)
		}
		return onValue, func() { subscribers.Add(ctx, -1, attrs) }
	}), nil
}
