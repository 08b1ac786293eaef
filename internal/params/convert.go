package params

import (
	"strconv"
	"strings"
)

// ToString converts a string parameter.
func ToString(name string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Parameter: name, Value: v, Expected: ExpectString}
	}
	return s, nil
}

// ToScalar converts a string or numeric parameter to its text.
func ToScalar(name string, v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	if n, ok := asNumber(v); ok {
		return n.String(), nil
	}
	return "", &ValidationError{Parameter: name, Value: v, Expected: ExpectString}
}

// ToBool converts a boolean parameter. The strings "true" and "false" are
// accepted since Hiera data and --set flags often carry them as text.
func ToBool(name string, v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		switch strings.ToLower(x) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, &ValidationError{Parameter: name, Value: v, Expected: ExpectBoolean}
}

// ToInt converts an integer parameter. Strings holding a decimal integer are
// accepted.
func ToInt(name string, v any) (int, error) {
	if n, ok := asNumber(v); ok && n.integral {
		return int(n.i), nil
	}
	if s, ok := v.(string); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, nil
		}
	}
	return 0, &ValidationError{Parameter: name, Value: v, Expected: ExpectInteger}
}

// ToStrings converts a list parameter whose elements are scalars.
func ToStrings(name string, v any) ([]string, error) {
	if err := ValidateArray(name, v); err != nil {
		return nil, err
	}
	items, _ := asList(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, err := ToScalar(name, item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ToInts converts a list parameter whose elements are integers.
func ToInts(name string, v any) ([]int, error) {
	if err := ValidateArray(name, v); err != nil {
		return nil, err
	}
	items, _ := asList(v)
	out := make([]int, 0, len(items))
	for _, item := range items {
		i, err := ToInt(name, item)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}

// ToHash converts a hash parameter, keeping the caller's key order when v is
// already a Hash.
func ToHash(name string, v any) (Hash, error) {
	h, ok := asHash(v)
	if !ok {
		return nil, &ValidationError{Parameter: name, Value: v, Expected: ExpectHash}
	}
	return h, nil
}
