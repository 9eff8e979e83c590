package numeric

import (
	"fmt"
	"math"

	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/geom"
)

// Zone is the position of a value relative to a threshold or range.
type Zone int8

const (
	Below Zone = iota - 1
	// At is used by Threshold when the value equals the limit.
	At
	Above
	// Within is used by ThresholdRange for values inside the range.
	Within Zone = 2
)

func (z Zone) String() string {
	switch z {
	case Below:
		return "below"
	case At:
		return "at"
	case Above:
		return "above"
	case Within:
		return "within"
	}
	return fmt.Sprintf("zone(%d)", int8(z))
}

type zoneConfig struct {
	emitInitial bool
}

// ZoneOption configures Threshold and ThresholdRange.
type ZoneOption func(*zoneConfig)

// EmitInitial also emits the zone of the first value. By default the first
// value only records where the stream starts.
func EmitInitial() ZoneOption {
	return func(c *zoneConfig) { c.emitInitial = true }
}

// Threshold emits the Zone of a value relative to limit whenever it differs
// from the zone of the previous value. Comparison follows geom.Compare.
func Threshold(limit float64, opts ...ZoneOption) core.Transformer[float64, Zone] {
	return ThresholdBy(identity, limit, opts...)
}

// ThresholdBy is Threshold over any type convertible to float64.
func ThresholdBy[T any](toFloat func(T) float64, limit float64, opts ...ZoneOption) core.Transformer[T, Zone] {
	if math.IsNaN(limit) {
		panic(core.NewConfigError("threshold", "limit must not be NaN"))
	}
	return zoneChanges("threshold", func(v T) Zone {
		return Zone(geom.Compare(toFloat(v), limit))
	}, opts)
}

// ThresholdRange emits Below, Within or Above whenever a value moves to a
// different zone relative to [lo, hi]. Both bounds belong to Within. It
// panics with a *core.ConfigError if lo > hi or either bound is NaN.
func ThresholdRange(lo, hi float64, opts ...ZoneOption) core.Transformer[float64, Zone] {
	return ThresholdRangeBy(identity, lo, hi, opts...)
}

// ThresholdRangeBy is ThresholdRange over any type convertible to float64.
func ThresholdRangeBy[T any](toFloat func(T) float64, lo, hi float64, opts ...ZoneOption) core.Transformer[T, Zone] {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		panic(core.NewConfigError("thresholdRange", "bounds must not be NaN"))
	}
	if lo > hi {
		panic(core.NewConfigError("thresholdRange", fmt.Sprintf("min %g is greater than max %g", lo, hi)))
	}
	return zoneChanges("thresholdRange", func(v T) Zone {
		f := toFloat(v)
		switch {
		case geom.Compare(f, lo) < 0:
			return Below
		case geom.Compare(f, hi) > 0:
			return Above
		}
		return Within
	}, opts)
}

func zoneChanges[T any](op string, zoneOf func(T) Zone, opts []ZoneOption) core.Transformer[T, Zone] {
	var cfg zoneConfig
	for _, opt := range opts {
		if opt == nil {
			panic(core.NewConfigError(op, "nil option"))
		}
		opt(&cfg)
	}

	return core.Transmit(func(out core.Dispatch[Zone]) (core.Observer[T], func()) {
		var (
			last Zone
			seen bool
		)
		return func(v T) {
			z := zoneOf(v)
			if !seen {
				seen, last = true, z
				if cfg.emitInitial {
					out(z)
				}
				return
			}
			if z != last {
				last = z
				out(z)
			}
		}, nil
	})
}
