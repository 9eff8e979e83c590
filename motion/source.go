package motion

import (
	"iter"
	"time"

	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/pointer"
	"github.com/lguimbarda/min-motion/motion/timing"
)

// Of creates a Stream that emits values synchronously to every subscriber.
func Of[T any](values ...T) *Stream[T] {
	return FromSlice(values)
}

// FromSlice creates a Stream that emits each element of items synchronously
// to every subscriber. The slice is read on every Subscribe.
func FromSlice[T any](items []T, opts ...Option) *Stream[T] {
	return &Stream[T]{
		src: core.Create(func(dispatch core.Dispatch[T]) func() {
			for _, item := range items {
				dispatch(item)
			}
			return nil
		}),
		env: newEnv(opts),
	}
}

// FromChannel creates a Stream that emits values received from ch on a pump
// goroutine, one at a time. The pump stops when ch is closed or the
// subscription is released. Subscribers compete for the values of ch.
func FromChannel[T any](ch <-chan T, opts ...Option) *Stream[T] {
	return &Stream[T]{
		src: core.Create(func(dispatch core.Dispatch[T]) func() {
			done := make(chan struct{})
			go func() {
				for {
					select {
					case <-done:
						return
					case item, ok := <-ch:
						if !ok {
							return
						}
						dispatch(item)
					}
				}
			}()
			return func() { close(done) }
		}),
		env: newEnv(opts),
	}
}

// FromIter creates a Stream that emits the values of seq synchronously to
// every subscriber. seq must be finite.
func FromIter[T any](seq iter.Seq[T], opts ...Option) *Stream[T] {
	return &Stream[T]{
		src: core.Create(func(dispatch core.Dispatch[T]) func() {
			for item := range seq {
				dispatch(item)
			}
			return nil
		}),
		env: newEnv(opts),
	}
}

// Interval emits 0, 1, 2, ... every period on the stream's scheduler.
func Interval(period time.Duration, opts ...Option) *Stream[int] {
	e := newEnv(opts)
	return &Stream[int]{
		src: timing.Interval(period, timing.WithScheduler(e.scheduler)),
		env: e,
	}
}

// Subject is a hot Stream fed by Next.
type Subject[T any] struct {
	*Stream[T]
	hot *core.Subject[T]
}

// NewSubject creates a Subject with no subscribers.
func NewSubject[T any](opts ...Option) *Subject[T] {
	hot := core.NewSubject[T]()
	return &Subject[T]{
		Stream: &Stream[T]{src: hot, env: newEnv(opts)},
		hot:    hot,
	}
}

// Next delivers v to every current subscriber.
func (s *Subject[T]) Next(v T) {
	s.hot.Next(v)
}

// Observed returns the number of current subscribers.
func (s *Subject[T]) Observed() int {
	return s.hot.Observed()
}

// PointerStreams is the pointer bundle of one input surface.
type PointerStreams struct {
	Down      *Stream[pointer.Event]
	Move      *Stream[pointer.Event]
	Up        *Stream[pointer.Event]
	Click     *Stream[pointer.Event]
	DragStart *Stream[pointer.Event]
}

// Pointer builds the pointer bundle for src. See pointer.NewStreams.
func Pointer(src pointer.Source, opts ...Option) PointerStreams {
	e := newEnv(opts)
	p := pointer.NewStreams(src)
	wrap := func(s core.Stream[pointer.Event]) *Stream[pointer.Event] {
		return &Stream[pointer.Event]{src: s, env: e}
	}
	return PointerStreams{
		Down:      wrap(p.Down),
		Move:      wrap(p.Move),
		Up:        wrap(p.Up),
		Click:     wrap(p.Click),
		DragStart: wrap(p.DragStart),
	}
}
