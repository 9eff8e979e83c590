// Package core defines the foundational push-based stream primitive used by
// every motion operator: streams, observers, subscriptions and the transform
// building blocks that operators are expressed through.
//
// NOTE: this package should have no dependencies outside the standard
// library, including other motion packages.
package core

// Observer receives the values pushed by a Stream.
type Observer[T any] func(T)

// Dispatch is the output channel handed to a transform. A transform may call
// it zero or more times per input value; every call runs synchronously.
type Dispatch[T any] func(T)

// Subscription is the ownership handle returned by Subscribe. Unsubscribe is
// idempotent and releases everything the subscription exclusively owns.
type Subscription interface {
	Unsubscribe()
}

// Stream represents a lazy, push-based sequence of values.
// Production starts when an Observer subscribes and stops when the returned
// Subscription is released.
// Stream answers the question: "Where do the values come from?".
type Stream[T any] interface {
	Subscribe(Observer[T]) Subscription
}

// Observable is a Stream defined by its subscribe function. The function is
// invoked once per subscription, which makes Observable streams cold.
type Observable[T any] func(Observer[T]) Subscription

// Subscribe registers obs and returns the handle that detaches it.
func (o Observable[T]) Subscribe(obs Observer[T]) Subscription {
	if obs == nil {
		panic(NewConfigError("subscribe", "nil observer"))
	}
	return o(obs)
}

// Transformer turns a Stream of IN into a Stream of OUT. Transformers are the
// stages that operator chains are built from.
// They answer the question: "What happens to the values on the way through?".
type Transformer[IN, OUT any] interface {
	Apply(Stream[IN]) Stream[OUT]
}

// OperatorFunc adapts a plain function to the Transformer interface. It is
// used for operators that are compositions of other stages.
type OperatorFunc[IN, OUT any] func(Stream[IN]) Stream[OUT]

// Apply calls f(s).
func (f OperatorFunc[IN, OUT]) Apply(s Stream[IN]) Stream[OUT] {
	return f(s)
}

// Create builds a cold Stream from a producer function. produce runs once per
// subscription with a dispatch that stops delivering as soon as the
// subscription is released; the returned teardown (may be nil) runs exactly
// once on Unsubscribe.
func Create[T any](produce func(Dispatch[T]) func()) Stream[T] {
	return Observable[T](func(obs Observer[T]) Subscription {
		sub := NewTeardown()
		teardown := produce(func(v T) {
			if sub.Closed() {
				return
			}
			obs(v)
		})
		if teardown != nil {
			sub.Add(teardown)
		}
		return sub
	})
}
