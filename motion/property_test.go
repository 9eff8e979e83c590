package motion_test

import (
	"math/rand/v2"
	"reflect"
	"slices"
	"testing"

	"github.com/lguimbarda/min-motion/motion"
	"github.com/lguimbarda/min-motion/motion/aggregate"
	"github.com/lguimbarda/min-motion/motion/capability"
	"github.com/lguimbarda/min-motion/motion/combine"
	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/filter"
	"github.com/lguimbarda/min-motion/motion/geom"
	"github.com/lguimbarda/min-motion/motion/numeric"
	"github.com/lguimbarda/min-motion/motion/observe"
	"github.com/lguimbarda/min-motion/motion/transform"
)

var discard = observe.SinkFunc(func(string, any) {})

// operator pairs a facade method with the typed operator it should match.
type operator struct {
	caps   []capability.Capability
	method func(*motion.Stream[float64]) *motion.Stream[float64]
	typed  func() core.Transformer[float64, float64]
}

func (o operator) capability() capability.Capability {
	return o.caps[len(o.caps)-1]
}

func operators() []operator {
	empty := core.Create(func(core.Dispatch[float64]) func() { return nil })
	return []operator{
		{
			caps:   []capability.Capability{capability.IgnoreUntil},
			method: func(s *motion.Stream[float64]) *motion.Stream[float64] { return s.IgnoreUntil(func(v float64) bool { return v > 1 }) },
			typed:  func() core.Transformer[float64, float64] { return filter.IgnoreUntil(func(v float64) bool { return v > 1 }) },
		},
		{
			caps:   []capability.Capability{capability.StartWith},
			method: func(s *motion.Stream[float64]) *motion.Stream[float64] { return s.StartWith(-1) },
			typed:  func() core.Transformer[float64, float64] { return transform.StartWith(-1.0) },
		},
		{
			caps:   []capability.Capability{capability.DistanceFrom},
			method: func(s *motion.Stream[float64]) *motion.Stream[float64] { return s.DistanceFrom(2) },
			typed:  func() core.Transformer[float64, float64] { return transform.DistanceFrom(geom.Scalar[float64]{}, 2) },
		},
		{
			caps:   []capability.Capability{capability.ScaledBy},
			method: func(s *motion.Stream[float64]) *motion.Stream[float64] { return s.ScaledBy(2) },
			typed:  func() core.Transformer[float64, float64] { return numeric.ScaledBy[float64](2) },
		},
		{
			caps:   []capability.Capability{capability.OffsetBy},
			method: func(s *motion.Stream[float64]) *motion.Stream[float64] { return s.OffsetBy(1.5) },
			typed:  func() core.Transformer[float64, float64] { return numeric.OffsetBy(1.5) },
		},
		{
			caps:   []capability.Capability{capability.LowerBound},
			method: func(s *motion.Stream[float64]) *motion.Stream[float64] { return s.LowerBound(0) },
			typed:  func() core.Transformer[float64, float64] { return numeric.LowerBound(0.0) },
		},
		{
			caps:   []capability.Capability{capability.UpperBound},
			method: func(s *motion.Stream[float64]) *motion.Stream[float64] { return s.UpperBound(3) },
			typed:  func() core.Transformer[float64, float64] { return numeric.UpperBound(3.0) },
		},
		{
			caps:   []capability.Capability{capability.Pluck, capability.Log},
			method: func(s *motion.Stream[float64]) *motion.Stream[float64] { return s.Log("v", "") },
			typed:  func() core.Transformer[float64, float64] { return observe.Log[float64]("v", observe.WithSink(discard)) },
		},
		{
			caps:   []capability.Capability{capability.Dedupe},
			method: func(s *motion.Stream[float64]) *motion.Stream[float64] { return s.Dedupe() },
			typed:  func() core.Transformer[float64, float64] { return filter.Dedupe[float64]() },
		},
		{
			caps:   []capability.Capability{capability.Merge},
			method: func(s *motion.Stream[float64]) *motion.Stream[float64] { return s.Merge(empty) },
			typed:  func() core.Transformer[float64, float64] { return combine.MergeWith(empty) },
		},
		{
			caps:   []capability.Capability{capability.RewriteRange},
			method: func(s *motion.Stream[float64]) *motion.Stream[float64] { return s.RewriteRange(0, 10, 0, 100) },
			typed:  func() core.Transformer[float64, float64] { return numeric.RewriteRange(0, 10, 0, 100) },
		},
	}
}

// terminal is an operator that changes the element type. Both sides return
// the collected output so that one table covers every result type.
type terminal struct {
	cap    capability.Capability
	method func(*motion.Stream[float64]) any
	typed  func(core.Stream[float64]) any
}

func terminals() []terminal {
	table := map[float64]string{0: "zero", 1: "one", -1: "minus one"}
	return []terminal{
		{
			cap:    capability.Threshold,
			method: func(s *motion.Stream[float64]) any { return motion.Collect(s.Threshold(1)) },
			typed:  func(src core.Stream[float64]) any { return motion.Collect(numeric.Threshold(1).Apply(src)) },
		},
		{
			cap:    capability.ThresholdRange,
			method: func(s *motion.Stream[float64]) any { return motion.Collect(s.ThresholdRange(-1, 2)) },
			typed:  func(src core.Stream[float64]) any { return motion.Collect(numeric.ThresholdRange(-1, 2).Apply(src)) },
		},
		{
			cap:    capability.SlidingWindow,
			method: func(s *motion.Stream[float64]) any { return motion.Collect(s.SlidingWindow(3)) },
			typed:  func(src core.Stream[float64]) any { return motion.Collect(aggregate.SlidingWindow[float64](3).Apply(src)) },
		},
		{
			cap:    capability.Pluck,
			method: func(s *motion.Stream[float64]) any { return motion.Collect(s.Pluck("")) },
			typed:  func(src core.Stream[float64]) any { return motion.Collect(transform.Pluck[float64]("").Apply(src)) },
		},
		{
			cap:    capability.Rewrite,
			method: func(s *motion.Stream[float64]) any { return motion.Collect(motion.Rewrite(s, table)) },
			typed:  func(src core.Stream[float64]) any { return motion.Collect(transform.Rewrite(table).Apply(src)) },
		},
		{
			cap:    capability.RewriteTo,
			method: func(s *motion.Stream[float64]) any { return motion.Collect(motion.RewriteTo(s, "tick")) },
			typed:  func(src core.Stream[float64]) any { return motion.Collect(transform.RewriteTo[float64]("tick").Apply(src)) },
		},
	}
}

func fromInput(input []float64) core.Stream[float64] {
	return core.Create(func(dispatch core.Dispatch[float64]) func() {
		for _, v := range input {
			dispatch(v)
		}
		return nil
	})
}

func randomInput(rng *rand.Rand) []float64 {
	input := make([]float64, rng.IntN(12))
	for i := range input {
		input[i] = float64(rng.IntN(11) - 5)
	}
	return input
}

// Installing two operators in assembly order exposes exactly both, and the
// facade chain behaves like the typed operators applied one after another.
func TestComposedPairsMatchTypedOperators(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	ops := operators()

	for range 300 {
		a, b := ops[rng.IntN(len(ops))], ops[rng.IntN(len(ops))]
		if a.capability() > b.capability() {
			a, b = b, a
		}
		input := randomInput(rng)

		caps := slices.Concat(a.caps, b.caps)
		src := motion.FromSlice(input, motion.WithCapabilities(caps...), motion.WithSink(discard))

		set := src.Capabilities()
		if !set.Has(a.capability()) || !set.Has(b.capability()) {
			t.Fatalf("capabilities %v missing %v or %v", set, a.capability(), b.capability())
		}
		want, err := capability.Base().Compose(caps...)
		if err != nil {
			t.Fatalf("Compose(%v) error = %v", caps, err)
		}
		if set != want {
			t.Errorf("capabilities = %v, want %v", set, want)
		}

		got := motion.Collect(b.method(a.method(src)))
		expected := motion.Collect(b.typed().Apply(a.typed().Apply(fromInput(input))))
		if !slices.Equal(got, expected) {
			t.Errorf("%v then %v over %v = %v, want %v", a.capability(), b.capability(), input, got, expected)
		}

		for _, c := range ops {
			if set.Has(c.capability()) {
				continue
			}
			wantConfigError(t, c.capability().String(), func() { c.method(src) })
		}
	}
}

// A chain that ends in a type-changing operator behaves like the typed
// operators, and only the installed operators are available.
func TestPairsEndingInTypeChangeMatchTypedOperators(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	ops, ends := operators(), terminals()

	for range 300 {
		a, end := ops[rng.IntN(len(ops))], ends[rng.IntN(len(ends))]
		input := randomInput(rng)

		caps := append(slices.Clone(a.caps), end.cap)
		src := motion.FromSlice(input, motion.WithCapabilities(caps...), motion.WithSink(discard))
		want, err := capability.Base().Compose(caps...)
		if err != nil {
			t.Fatalf("Compose(%v) error = %v", caps, err)
		}
		if set := src.Capabilities(); set != want {
			t.Errorf("capabilities = %v, want %v", set, want)
		}

		got := end.method(a.method(src))
		expected := end.typed(a.typed().Apply(fromInput(input)))
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("%v then %v over %v = %v, want %v", a.capability(), end.cap, input, got, expected)
		}

		for _, other := range ends {
			if want.Has(other.cap) {
				continue
			}
			wantConfigError(t, other.cap.String(), func() { other.method(src) })
		}
	}
}
