package value

import (
	"encoding"
	"encoding/json"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// maxDepth bounds the walk so that cyclic pointers end as Undefined.
const maxDepth = 512

var (
	jsonMarshaler = reflect.TypeFor[json.Marshaler]()
	textMarshaler = reflect.TypeFor[encoding.TextMarshaler]()
)

func reflectOf(rv reflect.Value, depth int) Value {
	if !rv.IsValid() {
		return Null()
	}
	if depth > maxDepth {
		return Undefined()
	}
	if t := rv.Type(); t.Implements(jsonMarshaler) || t.Implements(textMarshaler) {
		return viaJSON(rv.Interface(), depth)
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return of(rv.Elem().Interface(), depth+1)
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Num(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Num(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Num(rv.Float())
	case reflect.String:
		return Str(rv.String())
	case reflect.Slice:
		if rv.IsNil() {
			return Null()
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// Byte slices encode as base64 strings.
			return viaJSON(rv.Interface(), depth)
		}
		return listOf(rv, depth)
	case reflect.Array:
		return listOf(rv, depth)
	case reflect.Map:
		if rv.IsNil() {
			return Null()
		}
		return mapOf(rv, depth)
	case reflect.Struct:
		fields := make(map[string]Value, rv.NumField())
		structFields(rv, fields, depth)
		return Value{kind: KindMap, fields: fields}
	}
	return Undefined()
}

func listOf(rv reflect.Value, depth int) Value {
	list := make([]Value, rv.Len())
	for i := range list {
		list[i] = of(rv.Index(i).Interface(), depth+1)
	}
	return Value{kind: KindList, list: list}
}

func mapOf(rv reflect.Value, depth int) Value {
	fields := make(map[string]Value, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		var key string
		switch k.Kind() {
		case reflect.String:
			key = k.String()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			key = strconv.FormatInt(k.Int(), 10)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			key = strconv.FormatUint(k.Uint(), 10)
		default:
			return viaJSON(rv.Interface(), depth)
		}
		fields[key] = of(iter.Value().Interface(), depth+1)
	}
	return Value{kind: KindMap, fields: fields}
}

// structFields adds the exported fields of rv under their json names.
// Untagged exported embedded structs are flattened and outer fields win on
// a clash.
func structFields(rv reflect.Value, fields map[string]Value, depth int) {
	t := rv.Type()
	var embedded []reflect.Value
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fv := rv.Field(i)

		if f.Anonymous && name == "" {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				embedded = append(embedded, fv)
				continue
			}
		}
		if slices.Contains(strings.Split(opts, ","), "omitempty") && isEmpty(fv) {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields[name] = of(fv.Interface(), depth+1)
	}

	for _, ev := range embedded {
		inner := make(map[string]Value)
		structFields(ev, inner, depth+1)
		for k, v := range inner {
			if _, ok := fields[k]; !ok {
				fields[k] = v
			}
		}
	}
}

// isEmpty reports whether encoding/json would drop v under omitempty.
func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}

// viaJSON converts v through its JSON encoding. It is Undefined when the
// encoding fails.
func viaJSON(v any, depth int) Value {
	data, err := json.Marshal(v)
	if err != nil {
		return Undefined()
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return Undefined()
	}
	return of(decoded, depth+1)
}
