// Package benchmarks compares min-motion push pipelines against slice and
// channel based Go stream libraries over the same gesture-style workloads.
package benchmarks

import (
	"math"
)

// Test data sizes
const (
	SmallSize  = 100
	MediumSize = 1_000
	LargeSize  = 10_000
)

// generatePositions creates a scroll-like trace that oscillates around 0.
func generatePositions(n int) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = 200 * math.Sin(float64(i)/25)
	}
	return data
}

// generateSteps creates readings where every value repeats four times.
func generateSteps(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i / 4
	}
	return data
}

// Common transformation functions used across benchmarks

func toOpacity(x float64) float64 {
	return max(0, min(1, (x+200)/400))
}

func isPastEdge(x float64) bool {
	return x > 100
}
