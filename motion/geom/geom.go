// Package geom provides the value arithmetic that motion operators need:
// scalars and 2D points share one Space abstraction so that velocity,
// distance, bounds and offsets work on either.
//
// Ordering decisions such as threshold zones go through Compare, which is
// cmp.Compare: NaN sorts below every other number (including -Inf) and
// -0 equals +0. Arithmetic follows IEEE-754, so NaN and ±Inf propagate,
// and Scalar.Min and Scalar.Max return NaN when either operand is NaN.
package geom

import (
	"cmp"
	"fmt"
	"math"
)

// Number is the set of built-in numeric types.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Compare orders two numbers. See the package documentation for the NaN policy.
func Compare[N Number](a, b N) int {
	return cmp.Compare(a, b)
}

// Space describes the arithmetic of a value type.
type Space[T any] interface {
	Zero() T
	Add(a, b T) T
	Sub(a, b T) T
	Scale(a T, k float64) T
	// Norm is the magnitude of a: |a| for scalars, the Euclidean length for points.
	Norm(a T) float64
	Min(a, b T) T
	Max(a, b T) T
}

// Scalar is the Space of a numeric type. Scaling an integer truncates
// toward zero.
type Scalar[N Number] struct{}

func (Scalar[N]) Zero() N                { return 0 }
func (Scalar[N]) Add(a, b N) N           { return a + b }
func (Scalar[N]) Sub(a, b N) N           { return a - b }
func (Scalar[N]) Scale(a N, k float64) N { return N(float64(a) * k) }
func (Scalar[N]) Norm(a N) float64       { return math.Abs(float64(a)) }

func (Scalar[N]) Min(a, b N) N { return min(a, b) }
func (Scalar[N]) Max(a, b N) N { return max(a, b) }

// Point is a position or displacement in 2D space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point        { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point        { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Scale(k float64) Point    { return Point{X: p.X * k, Y: p.Y * k} }
func (p Point) Len() float64             { return math.Hypot(p.X, p.Y) }
func (p Point) String() string           { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }
func (p Point) Distance(q Point) float64 { return p.Sub(q).Len() }

// Points is the Space of Point. Min and Max work component-wise.
type Points struct{}

func (Points) Zero() Point                    { return Point{} }
func (Points) Add(a, b Point) Point           { return a.Add(b) }
func (Points) Sub(a, b Point) Point           { return a.Sub(b) }
func (Points) Scale(a Point, k float64) Point { return a.Scale(k) }
func (Points) Norm(a Point) float64           { return a.Len() }

func (Points) Min(a, b Point) Point {
	s := Scalar[float64]{}
	return Point{X: s.Min(a.X, b.X), Y: s.Min(a.Y, b.Y)}
}

func (Points) Max(a, b Point) Point {
	s := Scalar[float64]{}
	return Point{X: s.Max(a.X, b.X), Y: s.Max(a.Y, b.Y)}
}

var (
	_ Space[float64] = Scalar[float64]{}
	_ Space[Point]   = Points{}
)
