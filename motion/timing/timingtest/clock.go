// Package timingtest provides a virtual Scheduler for tests.
//
// Unlike the fake clocks in k8s.io/utils/clock/testing, Clock runs timer
// callbacks without holding its lock and in deadline order, so a callback
// may read the time or schedule more work.
package timingtest

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Clock is a manually advanced clock. Timers fire only inside Advance, on
// the caller's goroutine, ordered by deadline and then by creation.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*Timer
}

// NewClock creates a Clock reading t.
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// AfterFunc schedules f to run once the clock has advanced by d. Even a
// zero delay waits for the next Advance.
func (c *Clock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &Timer{clock: c, fn: f, ch: make(chan time.Time, 1)}
	c.schedule(t, d)
	return t
}

func (c *Clock) schedule(t *Timer, d time.Duration) {
	c.seq++
	t.deadline = c.now.Add(d)
	t.seq = c.seq
	t.active = true
	c.timers = append(c.timers, t)
}

// Advance moves the clock forward by d, firing every timer that falls due,
// including timers scheduled by callbacks during the advance. While a
// callback runs, Now reports that timer's deadline.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.popDue(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		if next.deadline.After(c.now) {
			c.now = next.deadline
		}
		now := c.now
		c.mu.Unlock()

		select {
		case next.ch <- now:
		default:
		}
		if next.fn != nil {
			next.fn()
		}
	}
}

func (c *Clock) popDue(target time.Time) *Timer {
	best := -1
	for i, t := range c.timers {
		if t.deadline.After(target) {
			continue
		}
		if best < 0 || t.deadline.Before(c.timers[best].deadline) ||
			(t.deadline.Equal(c.timers[best].deadline) && t.seq < c.timers[best].seq) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	t := c.timers[best]
	c.timers = append(c.timers[:best], c.timers[best+1:]...)
	t.active = false
	return t
}

func (c *Clock) remove(t *Timer) bool {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			t.active = false
			return true
		}
	}
	return false
}

// Pending returns the number of timers that have not fired or been stopped.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Timer is the clock.Timer returned by Clock.AfterFunc.
type Timer struct {
	clock    *Clock
	deadline time.Time
	seq      uint64
	active   bool
	fn       func()
	ch       chan time.Time
}

func (t *Timer) C() <-chan time.Time {
	return t.ch
}

// Stop cancels the timer. It reports whether the timer was still pending.
func (t *Timer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	return t.clock.remove(t)
}

// Reset reschedules the timer d from now. It reports whether the timer was
// still pending.
func (t *Timer) Reset(d time.Duration) bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasActive := t.clock.remove(t)
	t.clock.schedule(t, d)
	return wasActive
}

var _ clock.Timer = (*Timer)(nil)
