// Package config models storm.yaml settings as an ordered list of entries whose
// values are a closed set of shapes: scalars, lists, key/value pairs and maps.
package config

import "strconv"

// Value is one of Scalar, List, Pair or Map.
type Value interface {
	isValue()
}

// Style controls how a Scalar is written.
type Style int

const (
	// StyleAuto writes the text bare unless YAML would read it as something
	// other than a string, in which case it is double quoted.
	StyleAuto Style = iota
	// StyleQuoted always writes the text in double quotes.
	StyleQuoted
	// StyleBare writes the text verbatim. Used for numbers, booleans and null.
	StyleBare
)

// Scalar is a single textual value.
type Scalar struct {
	Text  string
	Style Style
}

// List is an ordered sequence of values.
type List []Value

// Pair is a single key/value mapping, typically an element of a List
// (for example `- class: "..."`).
type Pair struct {
	Key   string
	Value Value
}

// Map is an ordered mapping.
type Map []Pair

func (Scalar) isValue() {}
func (List) isValue()   {}
func (Pair) isValue()   {}
func (Map) isValue()    {}

// Quoted returns a scalar that renders as `"text"`.
func Quoted(text string) Scalar {
	return Scalar{Text: text, Style: StyleQuoted}
}

// Plain returns a string scalar that renders bare when it is safe to do so.
func Plain(text string) Scalar {
	return Scalar{Text: text, Style: StyleAuto}
}

// Bare returns a scalar that renders exactly as text.
func Bare(text string) Scalar {
	return Scalar{Text: text, Style: StyleBare}
}

// Strings builds a list of string scalars.
func Strings(items []string) List {
	list := make(List, 0, len(items))
	for _, item := range items {
		list = append(list, Plain(item))
	}
	return list
}

// Ints builds a list of numeric scalars.
func Ints(items []int) List {
	list := make(List, 0, len(items))
	for _, item := range items {
		list = append(list, Bare(strconv.Itoa(item)))
	}
	return list
}

// IsBlock reports whether v renders over multiple lines.
func IsBlock(v Value) bool {
	switch val := v.(type) {
	case List:
		return len(val) > 0
	case Map:
		return len(val) > 0
	case Pair:
		return true
	default:
		return false
	}
}
