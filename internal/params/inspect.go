package params

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// number is a decoded numeric value. Whole floats count as integers since
// JSON and YAML decoders hand back float64 for values like 6700.
type number struct {
	i        int64
	f        float64
	integral bool
}

func (n number) String() string {
	if n.integral {
		return strconv.FormatInt(n.i, 10)
	}
	return strconv.FormatFloat(n.f, 'f', -1, 64)
}

func asNumber(v any) (number, bool) {
	switch x := v.(type) {
	case int:
		return number{i: int64(x), f: float64(x), integral: true}, true
	case int8:
		return number{i: int64(x), f: float64(x), integral: true}, true
	case int16:
		return number{i: int64(x), f: float64(x), integral: true}, true
	case int32:
		return number{i: int64(x), f: float64(x), integral: true}, true
	case int64:
		return number{i: x, f: float64(x), integral: true}, true
	case uint:
		return number{i: int64(x), f: float64(x), integral: true}, true
	case uint8:
		return number{i: int64(x), f: float64(x), integral: true}, true
	case uint16:
		return number{i: int64(x), f: float64(x), integral: true}, true
	case uint32:
		return number{i: int64(x), f: float64(x), integral: true}, true
	case uint64:
		return number{i: int64(x), f: float64(x), integral: true}, true
	case float32:
		return floatNumber(float64(x)), true
	case float64:
		return floatNumber(x), true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return number{i: i, f: float64(i), integral: true}, true
		}
		if f, err := x.Float64(); err == nil {
			return floatNumber(f), true
		}
		return number{}, false
	default:
		return number{}, false
	}
}

func floatNumber(f float64) number {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return number{i: int64(f), f: f, integral: true}
	}
	return number{f: f}
}

// asList returns the elements of any slice value.
func asList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if l, ok := v.([]any); ok {
		return l, true
	}
	if _, ok := v.(Hash); ok {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		// []byte is text, not a list
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asHash returns v as an ordered Hash. Unordered maps get sorted keys.
func asHash(v any) (Hash, bool) {
	switch x := v.(type) {
	case Hash:
		return x, true
	case map[string]any:
		return hashFromMap(x), true
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = val
		}
		return hashFromMap(m), true
	}

	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return hashFromMap(m), true
}

// ClassName names the runtime type of v the way error messages report it.
func ClassName(v any) string {
	switch x := v.(type) {
	case nil:
		return "NilClass"
	case string:
		return "String"
	case bool:
		if x {
			return "TrueClass"
		}
		return "FalseClass"
	}
	if n, ok := asNumber(v); ok {
		if n.integral {
			return "Integer"
		}
		return "Float"
	}
	if _, ok := asHash(v); ok {
		return "Hash"
	}
	if _, ok := asList(v); ok {
		return "Array"
	}
	return fmt.Sprintf("%T", v)
}

// Inspect renders v as it appears inside error messages. Top-level scalars
// are written as their text; nested strings are quoted.
func Inspect(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	}
	return inspectNested(v)
}

func inspectNested(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	}
	if n, ok := asNumber(v); ok {
		return n.String()
	}
	if h, ok := asHash(v); ok {
		parts := make([]string, 0, len(h))
		for _, f := range h {
			parts = append(parts, strconv.Quote(f.Key)+"=>"+inspectNested(f.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	if l, ok := asList(v); ok {
		parts := make([]string, 0, len(l))
		for _, e := range l {
			parts = append(parts, inspectNested(e))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprint(v)
}

// sortedKeys returns the keys of m in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
