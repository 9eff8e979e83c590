package trace

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/pointer"
	"github.com/lguimbarda/min-motion/motion/timing"
)

// Player replays a trace as a pointer.Source. Every kind has one hot
// stream; Step and Play push the next records to whoever is listening.
type Player struct {
	mu       sync.Mutex
	records  []Record
	next     int
	start    time.Time
	native   bool
	subjects map[pointer.Kind]*core.Subject[pointer.Event]
}

// NewPlayer creates a Player for records, replayed in offset order. Event
// times are start plus the record offset.
func NewPlayer(records []Record, start time.Time) *Player {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	p := &Player{
		records:  sorted,
		start:    start,
		subjects: map[pointer.Kind]*core.Subject[pointer.Event]{},
	}
	for _, r := range sorted {
		switch r.Kind {
		case pointer.PointerDown, pointer.PointerMove, pointer.PointerUp:
			p.native = true
		}
	}
	return p
}

// Supports reports native pointer events only if the trace contains any.
func (p *Player) Supports(kind pointer.Kind) bool {
	switch kind {
	case pointer.PointerDown, pointer.PointerMove, pointer.PointerUp:
		return p.native
	}
	return true
}

func (p *Player) Listen(kind pointer.Kind, _ pointer.ListenOptions) core.Stream[pointer.Event] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.subject(kind)
}

func (p *Player) subject(kind pointer.Kind) *core.Subject[pointer.Event] {
	s, ok := p.subjects[kind]
	if !ok {
		s = core.NewSubject[pointer.Event]()
		p.subjects[kind] = s
	}
	return s
}

// Remaining returns the number of records not yet replayed.
func (p *Player) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.records) - p.next
}

// Step replays the next record. It returns false once the trace is
// exhausted.
func (p *Player) Step() bool {
	p.mu.Lock()
	if p.next >= len(p.records) {
		p.mu.Unlock()
		return false
	}
	r := p.records[p.next]
	p.next++
	s := p.subject(r.Kind)
	p.mu.Unlock()

	s.Next(r.Event(p.start))
	return true
}

// Play replays the remaining records on sched, keeping the spacing of their
// offsets. Releasing the returned subscription pauses playback.
func (p *Player) Play(sched timing.Scheduler) core.Subscription {
	p.mu.Lock()
	if p.next >= len(p.records) {
		p.mu.Unlock()
		return core.NewTeardown()
	}
	first := p.records[p.next].Offset
	p.mu.Unlock()

	var (
		mu     sync.Mutex
		timer  clock.Timer
		closed bool
	)
	base := sched.Now()

	var schedule func()
	schedule = func() {
		p.mu.Lock()
		if p.next >= len(p.records) {
			p.mu.Unlock()
			return
		}
		due := p.records[p.next].Offset - first
		p.mu.Unlock()

		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		timer = sched.AfterFunc(max(due-sched.Since(base), 0), func() {
			mu.Lock()
			stop := closed
			mu.Unlock()
			if stop {
				return
			}
			p.Step()
			schedule()
		})
	}
	schedule()

	return core.NewTeardown(func() {
		mu.Lock()
		closed = true
		t := timer
		mu.Unlock()
		if t != nil {
			t.Stop()
		}
	})
}
