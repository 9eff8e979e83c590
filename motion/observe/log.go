package observe

import (
	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/value"
)

type logConfig struct {
	path    value.Path
	hasPath bool
	sink    Sink
}

// LogOption configures Log.
type LogOption func(*logConfig)

// WithPath writes the value at path instead of the whole value. A malformed
// path panics with a *core.ConfigError.
func WithPath(path string) LogOption {
	p, err := value.ParsePath(path)
	if err != nil {
		panic(core.NewConfigError("log", err.Error()))
	}
	return func(c *logConfig) {
		c.path, c.hasPath = p, len(p) > 0
	}
}

// WithSink sets where Log writes. The default is DefaultSink.
func WithSink(s Sink) LogOption {
	if s == nil {
		panic(core.NewConfigError("log", "sink cannot be nil"))
	}
	return func(c *logConfig) { c.sink = s }
}

// Log creates a Transformer that writes every value to a Sink under label
// and then passes it on unchanged.
func Log[T any](label string, opts ...LogOption) core.Transformer[T, T] {
	cfg := logConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sink == nil {
		cfg.sink = DefaultSink()
	}

	return core.Transform(func(v T, out core.Dispatch[T]) {
		if cfg.hasPath {
			plucked, _ := cfg.path.Lookup(value.Of(v))
			cfg.sink.Write(label, plucked)
		} else {
			cfg.sink.Write(label, v)
		}
		out(v)
	})
}
