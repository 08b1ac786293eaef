// Package params declares the Storm parameter table and validates raw
// parameter sets against it before any defaults are applied.
package params

// Raw is an unvalidated parameter set keyed by parameter name
// (for example `nimbus_host`). A nil value means "not set".
type Raw map[string]any

// Field is one key of an ordered Hash.
type Field struct {
	Key   string
	Value any
}

// Hash is a mapping whose key order is significant. Order-preserving
// decoders produce it for `config_map` so overrides render in the order
// they were written.
type Hash []Field

// Get returns the value stored under key.
func (h Hash) Get(key string) (any, bool) {
	for _, f := range h {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Clone returns a shallow copy of r.
func (r Raw) Clone() Raw {
	out := make(Raw, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Set reports whether name holds a non-nil value.
func (r Raw) Set(name string) bool {
	v, ok := r[name]
	return ok && v != nil
}

// Names returns the set parameter names in sorted order.
func (r Raw) Names() []string {
	return sortedKeys(r)
}

// hashFromMap converts an unordered map into a Hash with sorted keys.
func hashFromMap(m map[string]any) Hash {
	h := make(Hash, 0, len(m))
	for _, k := range sortedKeys(m) {
		h = append(h, Field{Key: k, Value: m[k]})
	}
	return h
}
