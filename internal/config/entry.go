package config

// Entry is one top-level storm.yaml setting, keyed by its dotted name
// (for example `nimbus.host`).
type Entry struct {
	Key   string
	Value Value
}

// Merge appends overrides to base and returns a new slice.
// Base order is kept. An override whose key already exists replaces that
// entry's value in place, so no key is emitted twice; new keys follow in the
// order the overrides were supplied. Neither input is modified.
func Merge(base []Entry, overrides []Entry) []Entry {
	result := make([]Entry, 0, len(base)+len(overrides))
	index := make(map[string]int, len(base)+len(overrides))

	for _, e := range base {
		if i, ok := index[e.Key]; ok {
			result[i].Value = e.Value
			continue
		}
		index[e.Key] = len(result)
		result = append(result, e)
	}

	for _, e := range overrides {
		if i, ok := index[e.Key]; ok {
			result[i].Value = e.Value
			continue
		}
		index[e.Key] = len(result)
		result = append(result, e)
	}

	return result
}

// Keys returns the entry keys in order.
func Keys(entries []Entry) []string {
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Lookup returns the value stored under key.
func Lookup(entries []Entry, key string) (Value, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}
