package motion

import (
	"github.com/lguimbarda/min-motion/motion/capability"
	"github.com/lguimbarda/min-motion/motion/combine"
	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/timing"
	"github.com/lguimbarda/min-motion/motion/transform"
)

// Operators that change the element type are functions rather than
// methods. They check the same capability set as the methods.

// Map replaces every value of s with fn(v).
func Map[T, U any](s *Stream[T], fn func(T) U) *Stream[U] {
	s.require(capability.Foundation)
	if fn == nil {
		panic(core.NewConfigError("map", "function cannot be nil"))
	}
	return derive(s, core.Map(fn).Apply(s.src))
}

// Transform runs fn for every value of s; fn may dispatch any number of
// values.
func Transform[T, U any](s *Stream[T], fn func(T, core.Dispatch[U])) *Stream[U] {
	s.require(capability.Foundation)
	if fn == nil {
		panic(core.NewConfigError("transform", "function cannot be nil"))
	}
	return derive(s, core.Transform(fn).Apply(s.src))
}

// Apply applies tr to s, keeping the stream's capabilities and environment.
func Apply[T, U any](s *Stream[T], tr core.Transformer[T, U]) *Stream[U] {
	s.require(capability.Foundation)
	if tr == nil {
		panic(core.NewConfigError("apply", "transformer cannot be nil"))
	}
	return derive(s, tr.Apply(s.src))
}

// Rewrite replaces every value of s with its entry in table.
func Rewrite[K comparable, V any](s *Stream[K], table map[K]V, opts ...transform.RewriteOption[V]) *Stream[V] {
	s.require(capability.Rewrite)
	return derive(s, transform.Rewrite(table, opts...).Apply(s.src))
}

// RewriteTo replaces every value of s with v.
func RewriteTo[T, V any](s *Stream[T], v V) *Stream[V] {
	s.require(capability.RewriteTo)
	return derive(s, transform.RewriteTo[T](v).Apply(s.src))
}

// VelocityOn emits the velocity of s whenever pulse emits, so it decays to
// zero once s stops moving.
func VelocityOn[T, P any](s *Stream[T], pulse core.Stream[P], opts ...timing.Option) *Stream[T] {
	s.require(capability.Velocity)
	sp := mustSpace[T]("velocity")
	opts = append([]timing.Option{timing.WithScheduler(s.env.scheduler)}, opts...)
	return derive(s, timing.VelocityOn(sp, pulse, opts...).Apply(s.src))
}

// DistanceFromLatest emits the distance between every value of s and the
// latest value of origin, once origin has produced one.
func DistanceFromLatest[T any](s *Stream[T], origin core.Stream[T]) *Stream[float64] {
	s.require(capability.DistanceFrom)
	return derive(s, combine.DistanceFromLatest(mustSpace[T]("distanceFrom"), origin).Apply(s.src))
}
