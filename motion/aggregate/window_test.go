package aggregate_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/lguimbarda/min-motion/motion/aggregate"
	"github.com/lguimbarda/min-motion/motion/core"
)

func fromSlice[T any](items ...T) core.Stream[T] {
	return core.Create(func(dispatch core.Dispatch[T]) func() {
		for _, item := range items {
			dispatch(item)
		}
		return nil
	})
}

func TestSlidingWindow(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		input []int
		want  [][]int
	}{
		{"fills then slides", 3, []int{1, 2, 3, 4}, [][]int{{1}, {1, 2}, {1, 2, 3}, {2, 3, 4}}},
		{"size one", 1, []int{1, 2}, [][]int{{1}, {2}}},
		{"empty", 2, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := core.Record(aggregate.SlidingWindow[int](tt.size).Apply(fromSlice(tt.input...)))
			defer rec.Unsubscribe()

			got := rec.Values()
			if !slices.EqualFunc(got, tt.want, slices.Equal[[]int]) {
				t.Errorf("SlidingWindow(%d) = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestSlidingWindowEmitsCopies(t *testing.T) {
	var windows [][]int
	sub := aggregate.SlidingWindow[int](2).Apply(fromSlice(1, 2, 3)).Subscribe(func(w []int) {
		windows = append(windows, w)
	})
	defer sub.Unsubscribe()

	want := [][]int{{1}, {1, 2}, {2, 3}}
	if !slices.EqualFunc(windows, want, slices.Equal[[]int]) {
		t.Errorf("windows = %v, want %v", windows, want)
	}
}

func TestSlidingWindowInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		func() {
			defer func() {
				err, _ := recover().(error)
				if !errors.Is(err, core.ErrInvalidConfig) {
					t.Errorf("SlidingWindow(%d) recovered %v, want ErrInvalidConfig", size, err)
				}
			}()
			aggregate.SlidingWindow[int](size)
		}()
	}
}

func TestScan(t *testing.T) {
	rec := core.Record(aggregate.Scan(0, func(acc, v int) int { return acc + v }).Apply(fromSlice(1, 2, 3)))
	defer rec.Unsubscribe()
	if got, want := rec.Values(), []int{1, 3, 6}; !slices.Equal(got, want) {
		t.Errorf("Scan = %v, want %v", got, want)
	}
}

func TestPairwise(t *testing.T) {
	rec := core.Record(aggregate.Pairwise[int]().Apply(fromSlice(1, 2, 3)))
	defer rec.Unsubscribe()
	if got, want := rec.Values(), [][2]int{{1, 2}, {2, 3}}; !slices.Equal(got, want) {
		t.Errorf("Pairwise = %v, want %v", got, want)
	}
}
