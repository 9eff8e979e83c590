// Package numeric provides the arithmetic operators of motion streams:
// bounds, offsets, scaling, range mapping and threshold zones.
//
// The In variants work on any geom.Space, so the same operator serves
// scalars, geom.Point and plucked value.Value numbers.
package numeric

import (
	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/geom"
)

// LowerBoundIn emits max(v, limit) for every value.
func LowerBoundIn[T any](sp geom.Space[T], limit T) core.Transformer[T, T] {
	return core.Map(func(v T) T {
		return sp.Max(v, limit)
	})
}

// UpperBoundIn emits min(v, limit) for every value.
func UpperBoundIn[T any](sp geom.Space[T], limit T) core.Transformer[T, T] {
	return core.Map(func(v T) T {
		return sp.Min(v, limit)
	})
}

// OffsetByIn emits v + offset for every value.
func OffsetByIn[T any](sp geom.Space[T], offset T) core.Transformer[T, T] {
	return core.Map(func(v T) T {
		return sp.Add(v, offset)
	})
}

// ScaledByIn emits v × k for every value.
func ScaledByIn[T any](sp geom.Space[T], k float64) core.Transformer[T, T] {
	return core.Map(func(v T) T {
		return sp.Scale(v, k)
	})
}

func LowerBound[N geom.Number](limit N) core.Transformer[N, N] {
	return LowerBoundIn(geom.Scalar[N]{}, limit)
}

func UpperBound[N geom.Number](limit N) core.Transformer[N, N] {
	return UpperBoundIn(geom.Scalar[N]{}, limit)
}

func OffsetBy[N geom.Number](offset N) core.Transformer[N, N] {
	return OffsetByIn(geom.Scalar[N]{}, offset)
}

// ScaledBy multiplies by k. Integer results truncate toward zero.
func ScaledBy[N geom.Number](k float64) core.Transformer[N, N] {
	return ScaledByIn(geom.Scalar[N]{}, k)
}
