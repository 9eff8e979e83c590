package numeric

import (
	"math"

	"github.com/lguimbarda/min-motion/motion/core"
)

type rangeConfig struct {
	clamped bool
}

// RangeOption configures RewriteRange.
type RangeOption func(*rangeConfig)

// Clamped keeps results inside the output range instead of extrapolating.
func Clamped() RangeOption {
	return func(c *rangeConfig) { c.clamped = true }
}

// RewriteRange maps [inMin, inMax] linearly onto [outMin, outMax]. Values
// outside the input range extrapolate along the same line unless Clamped is
// given. It panics with a *core.ConfigError if inMin == inMax or any bound
// is NaN.
func RewriteRange(inMin, inMax, outMin, outMax float64, opts ...RangeOption) core.Transformer[float64, float64] {
	return RewriteRangeBy(identity, inMin, inMax, outMin, outMax, opts...)
}

// RewriteRangeBy is RewriteRange over any type convertible to float64.
func RewriteRangeBy[T any](toFloat func(T) float64, inMin, inMax, outMin, outMax float64, opts ...RangeOption) core.Transformer[T, float64] {
	for _, bound := range []float64{inMin, inMax, outMin, outMax} {
		if math.IsNaN(bound) {
			panic(core.NewConfigError("rewriteRange", "bounds must not be NaN"))
		}
	}
	if inMin == inMax {
		panic(core.NewConfigError("rewriteRange", "input range is empty"))
	}

	var cfg rangeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	lo, hi := min(outMin, outMax), max(outMin, outMax)

	return core.Map(func(v T) float64 {
		ratio := (toFloat(v) - inMin) / (inMax - inMin)
		out := outMin + ratio*(outMax-outMin)
		if cfg.clamped && !math.IsNaN(out) {
			out = math.Min(math.Max(out, lo), hi)
		}
		return out
	})
}

func identity(v float64) float64 { return v }
