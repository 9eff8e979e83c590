// Package motionerrors provides explicit fault handling for motion streams.
//
// Motion streams have no error channel: a panic raised while a value is
// delivered travels back to whoever pushed the value. The operators here
// stop that propagation at a chosen point in a chain.
package motionerrors

import (
	"errors"

	"github.com/lguimbarda/min-motion/motion/core"
)

// Catch creates a Transformer that recovers a fault raised downstream while
// a value is delivered. handler receives the value and the fault as a
// core.ErrPanic; the subscription stays alive for later values.
func Catch[T any](handler func(T, error)) core.Transformer[T, T] {
	if handler == nil {
		panic(core.NewConfigError("catch", "handler cannot be nil"))
	}
	return core.Transform(func(v T, out core.Dispatch[T]) {
		defer func() {
			if r := recover(); r != nil {
				handler(v, core.NewPanicError(r))
			}
		}()
		out(v)
	})
}

// OnFault creates a Transformer that calls handler when a fault is raised
// downstream and then lets the fault continue to propagate.
func OnFault[T any](handler func(error)) core.Transformer[T, T] {
	if handler == nil {
		panic(core.NewConfigError("onFault", "handler cannot be nil"))
	}
	return core.Transform(func(v T, out core.Dispatch[T]) {
		defer func() {
			if r := recover(); r != nil {
				handler(core.NewPanicError(r))
				panic(r)
			}
		}()
		out(v)
	})
}

// Guard creates a Transformer that releases the whole subscription when a
// fault is raised downstream, instead of propagating it. onFault, if not
// nil, receives the fault.
func Guard[T any](onFault func(error)) core.Transformer[T, T] {
	return core.OperatorFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return core.Observable[T](func(obs core.Observer[T]) core.Subscription {
			sub := core.NewTeardown()
			deliver := func(v T) {
				if sub.Closed() {
					return
				}
				defer func() {
					if r := recover(); r != nil {
						err := core.NewPanicError(r)
						sub.Unsubscribe()
						if onFault != nil {
							onFault(err)
						}
					}
				}()
				obs(v)
			}
			sub.Add(s.Subscribe(deliver).Unsubscribe)
			return sub
		})
	})
}

// Compose runs build and converts a configuration panic raised by an
// operator into an error. Other panics are not recovered.
func Compose[T any](build func() T) (result T, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok && errors.Is(e, core.ErrInvalidConfig) {
			err = e
			return
		}
		panic(r)
	}()
	return build(), nil
}
