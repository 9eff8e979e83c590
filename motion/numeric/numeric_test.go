package numeric_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/geom"
	"github.com/lguimbarda/min-motion/motion/numeric"
)

func fromSlice[T any](items ...T) core.Stream[T] {
	return core.Create(func(dispatch core.Dispatch[T]) func() {
		for _, item := range items {
			dispatch(item)
		}
		return nil
	})
}

func collect[IN, OUT any](tr core.Transformer[IN, OUT], items ...IN) []OUT {
	rec := core.Record(tr.Apply(fromSlice(items...)))
	defer rec.Unsubscribe()
	return rec.Values()
}

func wantConfigError(t *testing.T, name string, build func()) {
	t.Helper()
	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, core.ErrInvalidConfig) {
			t.Errorf("%s: recovered %v, want ErrInvalidConfig", name, err)
		}
	}()
	build()
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name string
		tr   core.Transformer[float64, float64]
		want []float64
	}{
		{"lower bound", numeric.LowerBound(0.0), []float64{0, 0, 3}},
		{"upper bound", numeric.UpperBound(0.0), []float64{-2, 0, 0}},
		{"offset", numeric.OffsetBy(1.5), []float64{-0.5, 1.5, 4.5}},
		{"scale", numeric.ScaledBy[float64](2), []float64{-4, 0, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collect(tt.tr, -2, 0, 3); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundsOnPoints(t *testing.T) {
	got := collect(numeric.LowerBoundIn(geom.Points{}, geom.Pt(0, 0)), geom.Pt(-1, 5), geom.Pt(2, -3))
	want := []geom.Point{geom.Pt(0, 5), geom.Pt(2, 0)}
	if !slices.Equal(got, want) {
		t.Errorf("LowerBoundIn(Points) = %v, want %v", got, want)
	}

	got = collect(numeric.ScaledByIn(geom.Points{}, 0.5), geom.Pt(4, -2))
	if want := []geom.Point{geom.Pt(2, -1)}; !slices.Equal(got, want) {
		t.Errorf("ScaledByIn(Points) = %v, want %v", got, want)
	}
}

func TestScaledByTruncatesIntegers(t *testing.T) {
	if got, want := collect(numeric.ScaledBy[int](0.5), 3, -3), []int{1, -1}; !slices.Equal(got, want) {
		t.Errorf("ScaledBy[int](0.5) = %v, want %v", got, want)
	}
}

func TestBoundsPassNonFinite(t *testing.T) {
	tests := []struct {
		name string
		tr   core.Transformer[float64, float64]
	}{
		{"lower", numeric.LowerBound(1.0)},
		{"upper", numeric.UpperBound(1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(tt.tr, math.NaN(), math.Inf(1), math.Inf(-1))
			if len(got) != 3 || !math.IsNaN(got[0]) {
				t.Fatalf("bound(1)(NaN, +Inf, -Inf) = %v, want NaN first", got)
			}
			if tt.name == "lower" && (got[1] != math.Inf(1) || got[2] != 1) {
				t.Errorf("LowerBound(1)(+Inf, -Inf) = %v, want [+Inf 1]", got[1:])
			}
			if tt.name == "upper" && (got[1] != 1 || got[2] != math.Inf(-1)) {
				t.Errorf("UpperBound(1)(+Inf, -Inf) = %v, want [1 -Inf]", got[1:])
			}
		})
	}
}

func TestRewriteRange(t *testing.T) {
	tests := []struct {
		name string
		tr   core.Transformer[float64, float64]
		in   []float64
		want []float64
	}{
		{"interpolates", numeric.RewriteRange(0, 10, 0, 100), []float64{5, 0, 10}, []float64{50, 0, 100}},
		{"extrapolates", numeric.RewriteRange(0, 10, 0, 100), []float64{15, -5}, []float64{150, -50}},
		{"clamped", numeric.RewriteRange(0, 10, 0, 100, numeric.Clamped()), []float64{15, -5}, []float64{100, 0}},
		{"inverted output", numeric.RewriteRange(0, 10, 1, 0), []float64{0, 10}, []float64{1, 0}},
		{"clamped inverted output", numeric.RewriteRange(0, 10, 1, 0, numeric.Clamped()), []float64{20}, []float64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collect(tt.tr, tt.in...); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRewriteRangeConfig(t *testing.T) {
	wantConfigError(t, "empty input range", func() { numeric.RewriteRange(3, 3, 0, 1) })
	wantConfigError(t, "NaN bound", func() { numeric.RewriteRange(0, 1, math.NaN(), 1) })
}

func TestThreshold(t *testing.T) {
	got := collect(numeric.Threshold(5), 3, 4, 6, 7, 4, 2)
	if want := []numeric.Zone{numeric.Above, numeric.Below}; !slices.Equal(got, want) {
		t.Errorf("Threshold(5) = %v, want %v", got, want)
	}

	got = collect(numeric.Threshold(5, numeric.EmitInitial()), 3, 5, 5, 6)
	if want := []numeric.Zone{numeric.Below, numeric.At, numeric.Above}; !slices.Equal(got, want) {
		t.Errorf("Threshold(5, EmitInitial) = %v, want %v", got, want)
	}
}

func TestThresholdStateIsPerSubscription(t *testing.T) {
	src := fromSlice(1.0, 9.0)
	stream := numeric.Threshold(5).Apply(src)

	for i := range 2 {
		rec := core.Record(stream)
		if got, want := rec.Values(), []numeric.Zone{numeric.Above}; !slices.Equal(got, want) {
			t.Errorf("subscription %d = %v, want %v", i, got, want)
		}
		rec.Unsubscribe()
	}
}

func TestThresholdRange(t *testing.T) {
	got := collect(numeric.ThresholdRange(0, 10), -1, 0, 5, 10, 11, 12, -3)
	want := []numeric.Zone{numeric.Within, numeric.Above, numeric.Below}
	if !slices.Equal(got, want) {
		t.Errorf("ThresholdRange(0, 10) = %v, want %v", got, want)
	}

	wantConfigError(t, "min > max", func() { numeric.ThresholdRange(10, 0) })
	wantConfigError(t, "NaN bound", func() { numeric.ThresholdRange(math.NaN(), 0) })
}

func TestThresholdBy(t *testing.T) {
	got := collect(numeric.ThresholdBy(geom.Point.Len, 5), geom.Pt(3, 0), geom.Pt(3, 4), geom.Pt(6, 8))
	if want := []numeric.Zone{numeric.At, numeric.Above}; !slices.Equal(got, want) {
		t.Errorf("ThresholdBy(Len, 5) = %v, want %v", got, want)
	}
}

func TestZoneString(t *testing.T) {
	if got := numeric.Within.String(); got != "within" {
		t.Errorf("Within.String() = %q, want %q", got, "within")
	}
}
