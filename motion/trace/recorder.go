package trace

import (
	"context"
	"sync"
	"time"

	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/pointer"
)

// Recorder appends every event of a pointer bundle to a Store session.
// Offsets are measured from the first recorded event.
type Recorder struct {
	store   *Store
	session string

	mu      sync.Mutex
	start   time.Time
	started bool
	count   int
	err     error
}

// NewRecorder creates a Recorder writing to session.
func NewRecorder(store *Store, session string) *Recorder {
	if store == nil {
		panic(core.NewConfigError("recorder", "store cannot be nil"))
	}
	return &Recorder{store: store, session: session}
}

// Attach subscribes to every non-nil stream of the bundle.
func (r *Recorder) Attach(streams pointer.Streams) core.Subscription {
	var sources []core.Stream[pointer.Event]
	for _, s := range []core.Stream[pointer.Event]{streams.Down, streams.Move, streams.Up, streams.Click, streams.DragStart} {
		if s != nil {
			sources = append(sources, s)
		}
	}
	return core.Merge(sources...).Subscribe(r.Write)
}

// Write records e. After the first failure further events are dropped;
// the failure is reported by Err.
func (r *Recorder) Write(e pointer.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	if !r.started {
		r.start, r.started = e.Time, true
	}
	for _, rec := range FromEvent(e, r.start) {
		if err := r.store.Append(context.Background(), r.session, rec); err != nil {
			r.err = err
			return
		}
		r.count++
	}
}

// Count returns the number of records written.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Err returns the first write failure, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
