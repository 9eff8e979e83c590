// Package timing provides the time-aware motion operators: timestamps,
// velocity, delays and intervals. Every operator reads time and schedules
// work through a Scheduler so that tests can drive it deterministically.
package timing

import (
	"time"

	"k8s.io/utils/clock"

	"github.com/lguimbarda/min-motion/motion/core"
)

// Scheduler is a clock that can run a function after a delay.
// clock.RealClock satisfies it; timingtest.Clock is the virtual variant.
type Scheduler interface {
	clock.PassiveClock
	AfterFunc(d time.Duration, f func()) clock.Timer
}

// DefaultScheduler is the wall clock.
func DefaultScheduler() Scheduler {
	return clock.RealClock{}
}

const (
	defaultVelocityWindow = 5
	defaultVelocityMaxAge = 250 * time.Millisecond
)

type config struct {
	scheduler Scheduler
	window    int
	maxAge    time.Duration
	maxSpeed  float64
}

func newConfig(op string, opts []Option) config {
	cfg := config{
		scheduler: DefaultScheduler(),
		window:    defaultVelocityWindow,
		maxAge:    defaultVelocityMaxAge,
	}
	for _, opt := range opts {
		if opt == nil {
			panic(core.NewConfigError(op, "nil option"))
		}
		opt(&cfg)
	}
	return cfg
}

// Option configures a timing operator. Options that do not apply to an
// operator are ignored by it. Invalid values panic with a *core.ConfigError
// when the option is created.
type Option func(*config)

// WithScheduler sets the clock used to read time and schedule work.
func WithScheduler(s Scheduler) Option {
	if s == nil {
		panic(core.NewConfigError("scheduler", "scheduler cannot be nil"))
	}
	return func(c *config) { c.scheduler = s }
}

// WithWindow sets how many samples velocity considers. It must be at least 2.
func WithWindow(n int) Option {
	if n < 2 {
		panic(core.NewConfigError("velocity", "window must be >= 2"))
	}
	return func(c *config) { c.window = n }
}

// WithMaxAge drops velocity samples older than d relative to the newest
// sample (or, for VelocityOn, to the pulse). Zero disables aging.
func WithMaxAge(d time.Duration) Option {
	if d < 0 {
		panic(core.NewConfigError("velocity", "max age must be >= 0"))
	}
	return func(c *config) { c.maxAge = d }
}

// WithMaxSpeed caps the magnitude of emitted velocities, in units per second.
// Zero disables the cap.
func WithMaxSpeed(v float64) Option {
	if !(v >= 0) {
		panic(core.NewConfigError("velocity", "max speed must be >= 0"))
	}
	return func(c *config) { c.maxSpeed = v }
}
