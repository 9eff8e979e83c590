// Package value provides a tagged representation of structured motion data
// (pointer events, nested records, decoded JSON) and pre-parsed accessor
// paths over it. Lookups never fault: a missing segment yields Undefined.
package value

import (
	"encoding/json"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/lguimbarda/min-motion/motion/geom"
)

// Kind identifies which field of a Value is meaningful.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

var kindNames = [...]string{"undefined", "null", "bool", "number", "string", "list", "map"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is an immutable tagged union. The zero Value is Undefined.
type Value struct {
	kind   Kind
	b      bool
	n      float64
	s      string
	list   []Value
	fields map[string]Value
}

func Undefined() Value         { return Value{} }
func Null() Value              { return Value{kind: KindNull} }
func Bool(b bool) Value        { return Value{kind: KindBool, b: b} }
func Num(n float64) Value      { return Value{kind: KindNumber, n: n} }
func Str(s string) Value       { return Value{kind: KindString, s: s} }
func ListOf(vs ...Value) Value { return Value{kind: KindList, list: slices.Clone(vs)} }

// MapOf creates a map Value. The map is copied.
func MapOf(fields map[string]Value) Value {
	return Value{kind: KindMap, fields: maps.Clone(fields)}
}

// Of converts a Go value. Structs become maps keyed by their json field
// names, slices and arrays become lists and geom.Point becomes {x, y}.
// Numbers keep their value, so NaN and ±Inf survive the conversion. Types
// with their own JSON or text encoding go through it, and values that
// cannot be represented (channels, functions) become Undefined.
func Of(v any) Value {
	return of(v, 0)
}

func of(v any, depth int) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case *Value:
		if x == nil {
			return Null()
		}
		return *x
	case bool:
		return Bool(x)
	case string:
		return Str(x)
	case float64:
		return Num(x)
	case float32:
		return Num(float64(x))
	case int:
		return Num(float64(x))
	case int8:
		return Num(float64(x))
	case int16:
		return Num(float64(x))
	case int32:
		return Num(float64(x))
	case int64:
		return Num(float64(x))
	case uint:
		return Num(float64(x))
	case uint8:
		return Num(float64(x))
	case uint16:
		return Num(float64(x))
	case uint32:
		return Num(float64(x))
	case uint64:
		return Num(float64(x))
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return Str(x.String())
		}
		return Num(n)
	case geom.Point:
		return MapOf(map[string]Value{"x": Num(x.X), "y": Num(x.Y)})
	case []Value:
		return ListOf(x...)
	case []any:
		list := make([]Value, len(x))
		for i, item := range x {
			list[i] = of(item, depth+1)
		}
		return Value{kind: KindList, list: list}
	case map[string]Value:
		return MapOf(x)
	case map[string]any:
		fields := make(map[string]Value, len(x))
		for k, item := range x {
			fields[k] = of(item, depth+1)
		}
		return Value{kind: KindMap, fields: fields}
	}

	return reflectOf(reflect.ValueOf(v), depth)
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsDefined() bool { return v.kind != KindUndefined }

// Bool returns the boolean and whether v is a bool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Float returns the number and whether v is a number.
func (v Value) Float() (float64, bool) { return v.n, v.kind == KindNumber }

// Text returns the string and whether v is a string.
func (v Value) Text() (string, bool) { return v.s, v.kind == KindString }

// Len returns the number of elements of a list or fields of a map.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.fields)
	}
	return 0
}

// Index returns the i-th element of a list.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Undefined(), false
	}
	return v.list[i], true
}

// Field returns the named field of a map.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindMap {
		return Undefined(), false
	}
	f, ok := v.fields[key]
	if !ok {
		return Undefined(), false
	}
	return f, true
}

// Keys returns the field names of a map in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	return slices.Sorted(maps.Keys(v.fields))
}

// Interface converts v back to plain Go values. Undefined and null become nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.fields))
		for k, item := range v.fields {
			out[k] = item.Interface()
		}
		return out
	}
	return nil
}

func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case KindUndefined:
		sb.WriteString("undefined")
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		sb.WriteString(strconv.FormatFloat(v.n, 'g', -1, 64))
	case KindString:
		sb.WriteString(v.s)
	case KindList:
		sb.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.write(sb)
		}
		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			v.fields[k].write(sb)
		}
		sb.WriteByte('}')
	}
}

// Equal reports structural equality. Numbers compare with ==, so NaN is
// never equal to itself.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindList:
		return slices.EqualFunc(a.list, b.list, Equal)
	case KindMap:
		return maps.EqualFunc(a.fields, b.fields, Equal)
	}
	return true
}
