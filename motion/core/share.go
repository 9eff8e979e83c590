package core

import "sync"

// Share returns a Stream that multicasts a single upstream subscription to
// all of its subscribers. The upstream is subscribed when the first
// subscriber arrives and released when the last one leaves; a later
// subscriber reconnects it.
func Share[T any](s Stream[T]) Stream[T] {
	return &shared[T]{src: s, subject: NewSubject[T]()}
}

type shared[T any] struct {
	mu       sync.Mutex
	src      Stream[T]
	subject  *Subject[T]
	refs     int
	gen      uint64 // bumped whenever refs drops to zero
	upstream Subscription
}

func (s *shared[T]) Subscribe(obs Observer[T]) Subscription {
	inner := s.subject.Subscribe(obs)

	s.mu.Lock()
	s.refs++
	connect := s.refs == 1
	gen := s.gen
	s.mu.Unlock()

	if connect {
		s.connect(gen, inner)
	}

	return NewTeardown(func() {
		inner.Unsubscribe()
		s.release()
	})
}

// connect subscribes upstream on behalf of generation gen. If the
// generation ended while subscribing, the new upstream is released at once.
// A connect that panics gives back the reference its subscriber took.
func (s *shared[T]) connect(gen uint64, inner Subscription) {
	connected := false
	defer func() {
		if !connected {
			inner.Unsubscribe()
			s.release()
		}
	}()
	up := s.src.Subscribe(s.subject.Next)
	connected = true

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		up.Unsubscribe()
		return
	}
	s.upstream = up
	s.mu.Unlock()
}

func (s *shared[T]) release() {
	s.mu.Lock()
	s.refs--
	var up Subscription
	if s.refs == 0 {
		up, s.upstream = s.upstream, nil
		s.gen++
	}
	s.mu.Unlock()

	if up != nil {
		up.Unsubscribe()
	}
}
