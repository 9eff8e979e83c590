// Package motion provides composable push-based streams for pointer
// positions, scroll offsets and the physical quantities derived from them.
//
// This package is the primary user-facing API. A *Stream carries the set of
// operators it exposes and the environment (scheduler, log sink) those
// operators run against; every derived stream inherits both. The
// subpackages hold the typed operators and are usable on their own with any
// core.Stream.
package motion

import (
	"github.com/lguimbarda/min-motion/motion/capability"
	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/geom"
	"github.com/lguimbarda/min-motion/motion/numeric"
	"github.com/lguimbarda/min-motion/motion/observe"
	"github.com/lguimbarda/min-motion/motion/timing"
	"github.com/lguimbarda/min-motion/motion/value"
)

// Type aliases for core stream abstractions.
// These allow users to work with the framework without importing core directly.
type (
	// Source is any subscribable stream, including a *Stream.
	Source[T any] = core.Stream[T]

	// Observer receives the values of a subscription.
	Observer[T any] = core.Observer[T]

	// Dispatch forwards a value downstream from inside an operator.
	Dispatch[T any] = core.Dispatch[T]

	// Subscription releases everything a Subscribe call acquired.
	Subscription = core.Subscription

	// Transformer turns a stream of IN into a stream of OUT.
	Transformer[IN, OUT any] = core.Transformer[IN, OUT]

	// Mapper transforms individual values (1:1 cardinality) and implements Transformer.
	Mapper[IN, OUT any] = core.Mapper[IN, OUT]

	// Transmitter builds per-subscription operator state and implements Transformer.
	Transmitter[IN, OUT any] = core.Transmitter[IN, OUT]
)

// Aliases for the value types operators produce.
type (
	Point              = geom.Point
	Value              = value.Value
	Zone               = numeric.Zone
	Timestamped[T any] = timing.Timestamped[T]
	Capability         = capability.Capability
	Sink               = observe.Sink
)

// Sentinel errors, matched with errors.Is.
var (
	ErrInvalidConfig     = core.ErrInvalidConfig
	ErrContractViolation = core.ErrContractViolation
)

// Mapper/Transmitter constructors.

// MapFunc creates a Mapper from a simple transformation function.
func MapFunc[IN, OUT any](fn func(IN) OUT) Mapper[IN, OUT] {
	return core.Map(fn)
}

// Transmit creates a Transmitter from a per-subscription factory.
func Transmit[IN, OUT any](fn func(Dispatch[OUT]) (Observer[IN], func())) Transmitter[IN, OUT] {
	return core.Transmit(fn)
}

// Collect subscribes to s, returns every value delivered synchronously
// during Subscribe and unsubscribes.
func Collect[T any](s Source[T]) []T {
	r := core.Record(s)
	defer r.Unsubscribe()
	return r.Values()
}
