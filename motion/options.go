package motion

import (
	"github.com/lguimbarda/min-motion/motion/capability"
	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/observe"
	"github.com/lguimbarda/min-motion/motion/timing"
)

// env is the configuration a stream and every stream derived from it share.
type env struct {
	caps      capability.Set
	scheduler timing.Scheduler
	sink      observe.Sink
}

func newEnv(opts []Option) *env {
	e := &env{
		caps:      capability.Full(),
		scheduler: timing.DefaultScheduler(),
		sink:      observe.DefaultSink(),
	}
	for _, opt := range opts {
		if opt == nil {
			panic(core.NewConfigError("motion", "nil option"))
		}
		opt(e)
	}
	return e
}

// Option configures a source stream. Derived streams inherit it.
type Option func(*env)

// WithScheduler sets the clock used by timestamp, velocity, delayBy and
// Interval. The default is the wall clock.
func WithScheduler(s timing.Scheduler) Option {
	if s == nil {
		panic(core.NewConfigError("motion", "scheduler cannot be nil"))
	}
	return func(e *env) { e.scheduler = s }
}

// WithSink sets where Log writes. The default is observe.DefaultSink.
func WithSink(s observe.Sink) Option {
	if s == nil {
		panic(core.NewConfigError("motion", "sink cannot be nil"))
	}
	return func(e *env) { e.sink = s }
}

// WithCapabilities restricts the stream to the given operators plus
// foundation. Capabilities are installed in assembly order, so a
// capability listed without its prerequisites panics with a
// *core.ConfigError.
func WithCapabilities(cs ...capability.Capability) Option {
	set, err := capability.Of(cs...)
	if err != nil {
		panic(err)
	}
	return func(e *env) { e.caps = set }
}

// WithCapabilitySet restricts the stream to an already composed set.
func WithCapabilitySet(set capability.Set) Option {
	return func(e *env) { e.caps = set }
}
