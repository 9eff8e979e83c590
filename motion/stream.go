package motion

import (
	"fmt"
	"time"

	"github.com/lguimbarda/min-motion/motion/aggregate"
	"github.com/lguimbarda/min-motion/motion/capability"
	"github.com/lguimbarda/min-motion/motion/combine"
	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/filter"
	"github.com/lguimbarda/min-motion/motion/numeric"
	"github.com/lguimbarda/min-motion/motion/observe"
	"github.com/lguimbarda/min-motion/motion/timing"
	"github.com/lguimbarda/min-motion/motion/transform"
	"github.com/lguimbarda/min-motion/motion/value"
)

// Stream is a core.Stream with operator methods. Each method checks that its
// operator is installed in the stream's capability set and panics with a
// *core.ConfigError when it is not, before anything is subscribed.
type Stream[T any] struct {
	src core.Stream[T]
	env *env
}

// Wrap exposes src through the operator methods.
func Wrap[T any](src core.Stream[T], opts ...Option) *Stream[T] {
	if src == nil {
		panic(core.NewConfigError("wrap", "source cannot be nil"))
	}
	if s, ok := src.(*Stream[T]); ok && len(opts) == 0 {
		return s
	}
	return &Stream[T]{src: src, env: newEnv(opts)}
}

func derive[T, U any](s *Stream[T], src core.Stream[U]) *Stream[U] {
	return &Stream[U]{src: src, env: s.env}
}

func (s *Stream[T]) require(c capability.Capability) {
	s.env.caps.Require(c)
}

// Subscribe implements core.Stream.
func (s *Stream[T]) Subscribe(obs core.Observer[T]) core.Subscription {
	return s.src.Subscribe(obs)
}

// Capabilities returns the operators this stream exposes.
func (s *Stream[T]) Capabilities() capability.Set {
	return s.env.caps
}

// Share returns a stream that connects to s on its first subscriber and
// disconnects on its last, so subscribers see the same operator state.
func (s *Stream[T]) Share() *Stream[T] {
	s.require(capability.Foundation)
	return derive(s, core.Share[T](s.src))
}

// Through applies a same-typed transformer.
func (s *Stream[T]) Through(tr core.Transformer[T, T]) *Stream[T] {
	s.require(capability.Foundation)
	if tr == nil {
		panic(core.NewConfigError("through", "transformer cannot be nil"))
	}
	return derive(s, tr.Apply(s.src))
}

// Transform runs fn for every value; fn may dispatch any number of values.
func (s *Stream[T]) Transform(fn func(T, core.Dispatch[T])) *Stream[T] {
	return Transform(s, fn)
}

// Map replaces every value with fn(v).
func (s *Stream[T]) Map(fn func(T) T) *Stream[T] {
	return Map(s, fn)
}

// Pluck emits the value found at path, or value.Undefined when any
// segment is missing.
func (s *Stream[T]) Pluck(path string) *Stream[value.Value] {
	s.require(capability.Pluck)
	return derive(s, transform.Pluck[T](path).Apply(s.src))
}

// Timestamp pairs every value with the scheduler's current time.
func (s *Stream[T]) Timestamp() *Stream[timing.Timestamped[T]] {
	s.require(capability.Timestamp)
	return derive(s, timing.Timestamp[T](timing.WithScheduler(s.env.scheduler)).Apply(s.src))
}

// SlidingWindow emits the last size values after every value.
func (s *Stream[T]) SlidingWindow(size int) *Stream[[]T] {
	s.require(capability.SlidingWindow)
	return derive(s, aggregate.SlidingWindow[T](size).Apply(s.src))
}

// Velocity emits the rate of change of the stream in units per second.
// The element type must support arithmetic.
func (s *Stream[T]) Velocity(opts ...timing.Option) *Stream[T] {
	s.require(capability.Velocity)
	sp := mustSpace[T]("velocity")
	opts = append([]timing.Option{timing.WithScheduler(s.env.scheduler)}, opts...)
	return derive(s, timing.Velocity(sp, opts...).Apply(s.src))
}

// IgnoreUntil drops values until pred first holds; from then on every
// value passes.
func (s *Stream[T]) IgnoreUntil(pred func(T) bool) *Stream[T] {
	s.require(capability.IgnoreUntil)
	return derive(s, filter.IgnoreUntil(pred).Apply(s.src))
}

// StartWith emits values to every new subscriber before any live value.
func (s *Stream[T]) StartWith(values ...T) *Stream[T] {
	s.require(capability.StartWith)
	return derive(s, transform.StartWith(values...).Apply(s.src))
}

// DistanceFrom emits the distance between every value and origin.
func (s *Stream[T]) DistanceFrom(origin T) *Stream[float64] {
	s.require(capability.DistanceFrom)
	return derive(s, transform.DistanceFrom(mustSpace[T]("distanceFrom"), origin).Apply(s.src))
}

// DelayBy re-emits every value d later, in order.
func (s *Stream[T]) DelayBy(d time.Duration) *Stream[T] {
	s.require(capability.DelayBy)
	return derive(s, timing.DelayBy[T](d, timing.WithScheduler(s.env.scheduler)).Apply(s.src))
}

// ScaledBy multiplies every value by k.
func (s *Stream[T]) ScaledBy(k float64) *Stream[T] {
	s.require(capability.ScaledBy)
	return derive(s, numeric.ScaledByIn(mustSpace[T]("scaledBy"), k).Apply(s.src))
}

// OffsetBy adds offset to every value.
func (s *Stream[T]) OffsetBy(offset T) *Stream[T] {
	s.require(capability.OffsetBy)
	return derive(s, numeric.OffsetByIn(mustSpace[T]("offsetBy"), offset).Apply(s.src))
}

// LowerBound raises every value below limit to limit.
func (s *Stream[T]) LowerBound(limit T) *Stream[T] {
	s.require(capability.LowerBound)
	return derive(s, numeric.LowerBoundIn(mustSpace[T]("lowerBound"), limit).Apply(s.src))
}

// UpperBound lowers every value above limit to limit.
func (s *Stream[T]) UpperBound(limit T) *Stream[T] {
	s.require(capability.UpperBound)
	return derive(s, numeric.UpperBoundIn(mustSpace[T]("upperBound"), limit).Apply(s.src))
}

// Log writes every value to the stream's sink under label and passes it on.
// A non-empty path writes the value found at path instead.
func (s *Stream[T]) Log(label, path string) *Stream[T] {
	s.require(capability.Log)
	opts := []observe.LogOption{observe.WithSink(s.env.sink)}
	if path != "" {
		opts = append(opts, observe.WithPath(path))
	}
	return derive(s, observe.Log[T](label, opts...).Apply(s.src))
}

// Dedupe drops values equal to the last emitted one.
func (s *Stream[T]) Dedupe() *Stream[T] {
	return s.DedupeBy(equalFor[T]())
}

// DedupeBy drops values equal, by equal, to the last emitted one.
func (s *Stream[T]) DedupeBy(equal func(a, b T) bool) *Stream[T] {
	s.require(capability.Dedupe)
	return derive(s, filter.DedupeFunc(equal).Apply(s.src))
}

// Inverted negates every value. The element type must be bool or
// value.Value.
func (s *Stream[T]) Inverted() *Stream[T] {
	s.require(capability.Inverted)
	var tr any
	switch any(*new(T)).(type) {
	case bool:
		tr = transform.Inverted()
	case value.Value:
		tr = transform.InvertedValue()
	}
	t, ok := tr.(core.Transformer[T, T])
	if !ok {
		panic(core.NewConfigError("inverted", fmt.Sprintf("element type %s is not bool", typeName[T]())))
	}
	return derive(s, t.Apply(s.src))
}

// Merge interleaves s with others in arrival order.
func (s *Stream[T]) Merge(others ...core.Stream[T]) *Stream[T] {
	s.require(capability.Merge)
	return derive(s, combine.MergeWith(others...).Apply(s.src))
}

// RewriteRange maps [inMin, inMax] linearly onto [outMin, outMax].
func (s *Stream[T]) RewriteRange(inMin, inMax, outMin, outMax float64, opts ...numeric.RangeOption) *Stream[float64] {
	s.require(capability.RewriteRange)
	tr := numeric.RewriteRangeBy(mustFloat[T]("rewriteRange"), inMin, inMax, outMin, outMax, opts...)
	return derive(s, tr.Apply(s.src))
}

// Threshold emits the zone relative to limit whenever it changes.
func (s *Stream[T]) Threshold(limit float64, opts ...numeric.ZoneOption) *Stream[numeric.Zone] {
	s.require(capability.Threshold)
	return derive(s, numeric.ThresholdBy(mustFloat[T]("threshold"), limit, opts...).Apply(s.src))
}

// ThresholdRange emits the zone relative to [lo, hi] whenever it changes.
func (s *Stream[T]) ThresholdRange(lo, hi float64, opts ...numeric.ZoneOption) *Stream[numeric.Zone] {
	s.require(capability.ThresholdRange)
	return derive(s, numeric.ThresholdRangeBy(mustFloat[T]("thresholdRange"), lo, hi, opts...).Apply(s.src))
}
