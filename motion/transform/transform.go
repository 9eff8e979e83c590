// Package transform provides operators that reshape each value: pluck,
// rewrite, inversion, seeding and distance.
package transform

import (
	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/geom"
	"github.com/lguimbarda/min-motion/motion/value"
)

// Pluck creates a Transformer that extracts the value at path from each
// item, after converting it with value.Of. A missing segment yields
// value.Undefined. A malformed path panics with a *core.ConfigError.
func Pluck[T any](path string) core.Transformer[T, value.Value] {
	p, err := value.ParsePath(path)
	if err != nil {
		panic(core.NewConfigError("pluck", err.Error()))
	}
	return PluckPath[T](p)
}

// PluckPath is Pluck with a pre-parsed path.
func PluckPath[T any](p value.Path) core.Transformer[T, value.Value] {
	return core.Map(func(v T) value.Value {
		got, _ := p.Lookup(value.Of(v))
		return got
	})
}

type rewriteConfig[V any] struct {
	fallback    V
	hasFallback bool
}

// RewriteOption configures Rewrite.
type RewriteOption[V any] func(*rewriteConfig[V])

// WithDefault makes Rewrite emit v for values missing from the table
// instead of dropping them.
func WithDefault[V any](v V) RewriteOption[V] {
	return func(c *rewriteConfig[V]) {
		c.fallback, c.hasFallback = v, true
	}
}

// Rewrite replaces each value with its entry in table. Values without an
// entry are dropped unless WithDefault is given. The table is copied, so
// later changes to it have no effect. An empty table panics with a
// *core.ConfigError.
func Rewrite[K comparable, V any](table map[K]V, opts ...RewriteOption[V]) core.Transformer[K, V] {
	if len(table) == 0 {
		panic(core.NewConfigError("rewrite", "table cannot be empty"))
	}
	lookup := make(map[K]V, len(table))
	for k, v := range table {
		lookup[k] = v
	}
	var cfg rewriteConfig[V]
	for _, opt := range opts {
		opt(&cfg)
	}

	return core.Transform(func(k K, out core.Dispatch[V]) {
		if v, ok := lookup[k]; ok {
			out(v)
			return
		}
		if cfg.hasFallback {
			out(cfg.fallback)
		}
	})
}

// RewriteTo replaces every value with v.
func RewriteTo[T, V any](v V) core.Transformer[T, V] {
	return core.Map(func(T) V { return v })
}

// Inverted negates booleans.
func Inverted() core.Transformer[bool, bool] {
	return core.Map(func(b bool) bool { return !b })
}

// InvertedValue negates boolean Values. Any other kind is a contract
// violation and panics with a *core.ContractError.
func InvertedValue() core.Transformer[value.Value, value.Value] {
	return core.Map(func(v value.Value) value.Value {
		b, ok := v.Bool()
		if !ok {
			panic(&core.ContractError{Op: "inverted", Value: v, Want: "bool"})
		}
		return value.Bool(!b)
	})
}

// StartWith creates a Transformer that emits values to each new subscriber
// before subscribing to the source.
func StartWith[T any](values ...T) core.Transformer[T, T] {
	seed := append([]T(nil), values...)
	return core.OperatorFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return core.Observable[T](func(obs core.Observer[T]) core.Subscription {
			sub := core.NewTeardown()
			deliver := func(v T) {
				if !sub.Closed() {
					obs(v)
				}
			}
			for _, v := range seed {
				deliver(v)
			}
			if sub.Closed() {
				return sub
			}
			sub.Add(s.Subscribe(deliver).Unsubscribe)
			return sub
		})
	})
}

// DistanceFrom emits the magnitude of v − origin in sp.
func DistanceFrom[T any](sp geom.Space[T], origin T) core.Transformer[T, float64] {
	return core.Map(func(v T) float64 {
		return sp.Norm(sp.Sub(v, origin))
	})
}
