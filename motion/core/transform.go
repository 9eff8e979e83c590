package core

// TransformFunc is the generic per-value transform: for each upstream value
// it is called with a Dispatch it may invoke zero or more times. A
// TransformFunc holds no per-subscription state; use a Transmitter for that.
type TransformFunc[IN, OUT any] func(IN, Dispatch[OUT])

// Transform creates a TransformFunc from fn.
func Transform[IN, OUT any](fn func(IN, Dispatch[OUT])) TransformFunc[IN, OUT] {
	return fn
}

// Apply returns a Stream that runs f for every value of s.
func (f TransformFunc[IN, OUT]) Apply(s Stream[IN]) Stream[OUT] {
	return Transmitter[IN, OUT](func(out Dispatch[OUT]) (Observer[IN], func()) {
		return func(v IN) { f(v, out) }, nil
	}).Apply(s)
}

// Mapper transforms individual values (1:1 cardinality).
// It answers the question: "What is done to each value?"
type Mapper[IN, OUT any] func(IN) OUT

// Map creates a Mapper from a transformation function.
func Map[IN, OUT any](fn func(IN) OUT) Mapper[IN, OUT] {
	return fn
}

// Apply returns a Stream dispatching m(v) exactly once per value of s.
func (m Mapper[IN, OUT]) Apply(s Stream[IN]) Stream[OUT] {
	return TransformFunc[IN, OUT](func(v IN, out Dispatch[OUT]) {
		out(m(v))
	}).Apply(s)
}

// Transmitter is a per-subscription operator. It is invoked once for every
// subscription to the resulting Stream, receives that subscription's output
// Dispatch, and returns the Observer that consumes upstream values plus an
// optional teardown releasing the state it created. Stateful operators are
// Transmitters so that independent subscriptions never share state.
type Transmitter[IN, OUT any] func(Dispatch[OUT]) (Observer[IN], func())

// Transmit creates a Transmitter from fn.
func Transmit[IN, OUT any](fn func(Dispatch[OUT]) (Observer[IN], func())) Transmitter[IN, OUT] {
	return fn
}

// Apply returns a Stream that instantiates t per subscription. Values
// dispatched after the subscription is released are dropped.
func (t Transmitter[IN, OUT]) Apply(s Stream[IN]) Stream[OUT] {
	return Observable[OUT](func(obs Observer[OUT]) Subscription {
		sub := NewTeardown()
		in, teardown := t(func(v OUT) {
			if sub.Closed() {
				return
			}
			obs(v)
		})
		upstream := s.Subscribe(in)
		sub.Add(upstream.Unsubscribe)
		sub.Add(teardown)
		return sub
	})
}

// Merge interleaves the values of all streams in arrival order. There is no
// buffering, synchronization or deduplication.
func Merge[T any](streams ...Stream[T]) Stream[T] {
	return Observable[T](func(obs Observer[T]) Subscription {
		sub := NewTeardown()
		deliver := func(v T) {
			if sub.Closed() {
				return
			}
			obs(v)
		}
		for _, s := range streams {
			sub.Add(s.Subscribe(deliver).Unsubscribe)
		}
		return sub
	})
}
