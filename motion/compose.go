package motion

import "github.com/lguimbarda/min-motion/motion/core"

// Through chains two transformers together, creating a new transformer
// that first applies t1 and then t2 to the stream.
func Through[IN, MID, OUT any](t1 Transformer[IN, MID], t2 Transformer[MID, OUT]) Transformer[IN, OUT] {
	return core.OperatorFunc[IN, OUT](func(s core.Stream[IN]) core.Stream[OUT] {
		return t2.Apply(t1.Apply(s))
	})
}

// Chain composes multiple transformers of the same type into a single transformer.
// Transformers are applied in order from left to right.
// If no transformers are provided, returns an identity transformer.
func Chain[T any](transformers ...Transformer[T, T]) Transformer[T, T] {
	return core.OperatorFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return Pipe(s, transformers...)
	})
}

// Pipe applies a series of transformers to a stream, returning the final stream.
func Pipe[T any](source Source[T], transformers ...Transformer[T, T]) Source[T] {
	result := source
	for _, t := range transformers {
		result = t.Apply(result)
	}
	return result
}
