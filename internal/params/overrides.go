package params

import (
	"strconv"

	"github.com/stormops/k8s-storm-operator-go/internal/config"
)

// Overrides converts a config_map hash into storm.yaml entries in the hash's
// key order. Top-level scalars become quoted strings; lists and maps keep
// their structure.
func Overrides(h Hash) []config.Entry {
	entries := make([]config.Entry, 0, len(h))
	for _, f := range h {
		entries = append(entries, config.Entry{Key: f.Key, Value: topValue(f.Value)})
	}
	return entries
}

func topValue(v any) config.Value {
	if _, ok := asList(v); ok {
		return ToValue(v)
	}
	if _, ok := asHash(v); ok {
		return ToValue(v)
	}
	return config.Quoted(scalarText(v))
}

// ToValue converts a nested raw value. A single-key hash becomes a Pair so
// list items render as `- key: value`.
func ToValue(v any) config.Value {
	if items, ok := asList(v); ok {
		list := make(config.List, 0, len(items))
		for _, item := range items {
			list = append(list, ToValue(item))
		}
		return list
	}
	if h, ok := asHash(v); ok {
		if len(h) == 1 {
			return config.Pair{Key: h[0].Key, Value: ToValue(h[0].Value)}
		}
		m := make(config.Map, 0, len(h))
		for _, f := range h {
			m = append(m, config.Pair{Key: f.Key, Value: ToValue(f.Value)})
		}
		return m
	}

	switch x := v.(type) {
	case nil:
		return config.Bare("null")
	case string:
		return config.Plain(x)
	case bool:
		return config.Bare(strconv.FormatBool(x))
	}
	if n, ok := asNumber(v); ok {
		return config.Bare(n.String())
	}
	return config.Plain(Inspect(v))
}

func scalarText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	}
	if n, ok := asNumber(v); ok {
		return n.String()
	}
	return Inspect(v)
}
