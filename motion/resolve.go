package motion

import (
	"fmt"
	"reflect"

	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/geom"
	"github.com/lguimbarda/min-motion/motion/value"
)

// spaceFor returns the arithmetic for element types the arithmetic
// operators support.
func spaceFor[T any]() (geom.Space[T], bool) {
	var sp any
	switch any(*new(T)).(type) {
	case float64:
		sp = geom.Scalar[float64]{}
	case float32:
		sp = geom.Scalar[float32]{}
	case int:
		sp = geom.Scalar[int]{}
	case int32:
		sp = geom.Scalar[int32]{}
	case int64:
		sp = geom.Scalar[int64]{}
	case geom.Point:
		sp = geom.Points{}
	case value.Value:
		sp = value.Numbers{}
	}
	s, ok := sp.(geom.Space[T])
	return s, ok
}

func mustSpace[T any](op string) geom.Space[T] {
	sp, ok := spaceFor[T]()
	if !ok {
		panic(core.NewConfigError(op, fmt.Sprintf("element type %s has no arithmetic", typeName[T]())))
	}
	return sp
}

// floatFor returns the scalar reading of element types the range
// operators support.
func floatFor[T any]() (func(T) float64, bool) {
	var fn any
	switch any(*new(T)).(type) {
	case float64:
		fn = func(v float64) float64 { return v }
	case float32:
		fn = func(v float32) float64 { return float64(v) }
	case int:
		fn = func(v int) float64 { return float64(v) }
	case int32:
		fn = func(v int32) float64 { return float64(v) }
	case int64:
		fn = func(v int64) float64 { return float64(v) }
	case value.Value:
		fn = func(v value.Value) float64 { return value.MustFloat("range", v) }
	}
	f, ok := fn.(func(T) float64)
	return f, ok
}

func mustFloat[T any](op string) func(T) float64 {
	fn, ok := floatFor[T]()
	if !ok {
		panic(core.NewConfigError(op, fmt.Sprintf("element type %s is not numeric", typeName[T]())))
	}
	return fn
}

// equalFor is the default dedupe comparison: == for comparable types
// without interface components, value.Equal for values and
// reflect.DeepEqual otherwise. NaN is never equal to itself.
func equalFor[T any]() func(a, b T) bool {
	if _, ok := any(*new(T)).(value.Value); ok {
		return func(a, b T) bool { return value.Equal(any(a).(value.Value), any(b).(value.Value)) }
	}
	if strictlyComparable(reflect.TypeFor[T]()) {
		return func(a, b T) bool { return any(a) == any(b) }
	}
	return func(a, b T) bool { return reflect.DeepEqual(a, b) }
}

// strictlyComparable reports whether == on t can never panic.
func strictlyComparable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return false
	case reflect.Array:
		return strictlyComparable(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !strictlyComparable(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return t.Comparable()
	}
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
