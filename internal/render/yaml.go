package render

import (
	"strconv"
	"strings"

	"github.com/stormops/k8s-storm-operator-go/internal/config"
)

const indentStep = "  "

// Config renders storm.yaml. Scalars are written one per line, lists as
// block sequences and maps as nested blocks. A blank line separates a block
// entry from the entry after it. No document marker is written.
func Config(entries []config.Entry) string {
	var b strings.Builder
	b.WriteString(Banner)
	b.WriteString("\n\n")

	for i, e := range entries {
		if i > 0 && config.IsBlock(entries[i-1].Value) {
			b.WriteString("\n")
		}
		writeField(&b, "", e.Key, e.Value)
	}
	return b.String()
}

// writeField writes `key: value` at indent, expanding blocks below it.
func writeField(b *strings.Builder, indent, key string, v config.Value) {
	b.WriteString(indent)
	b.WriteString(scalarText(config.Plain(key)))
	b.WriteString(":")

	switch val := v.(type) {
	case config.Scalar:
		b.WriteString(" ")
		b.WriteString(scalarText(val))
		b.WriteString("\n")
	case config.List:
		if len(val) == 0 {
			b.WriteString(" []\n")
			return
		}
		b.WriteString("\n")
		writeItems(b, indent+indentStep, val)
	case config.Pair:
		b.WriteString("\n")
		writeField(b, indent+indentStep, val.Key, val.Value)
	case config.Map:
		if len(val) == 0 {
			b.WriteString(" {}\n")
			return
		}
		b.WriteString("\n")
		for _, p := range val {
			writeField(b, indent+indentStep, p.Key, p.Value)
		}
	default:
		b.WriteString(" null\n")
	}
}

// writeItems writes each list item as `- item`. Block items are rendered at
// the next indent and their first line takes the dash.
func writeItems(b *strings.Builder, indent string, items config.List) {
	for _, item := range items {
		switch val := item.(type) {
		case config.Scalar:
			b.WriteString(indent + "- " + scalarText(val) + "\n")
			continue
		case config.List:
			if len(val) == 0 {
				b.WriteString(indent + "- []\n")
				continue
			}
		case config.Map:
			if len(val) == 0 {
				b.WriteString(indent + "- {}\n")
				continue
			}
		case nil:
			b.WriteString(indent + "- null\n")
			continue
		}

		var nested strings.Builder
		inner := indent + indentStep
		switch val := item.(type) {
		case config.List:
			writeItems(&nested, inner, val)
		case config.Pair:
			writeField(&nested, inner, val.Key, val.Value)
		case config.Map:
			for _, p := range val {
				writeField(&nested, inner, p.Key, p.Value)
			}
		}
		b.WriteString(indent + "- " + strings.TrimPrefix(nested.String(), inner))
	}
}

func scalarText(s config.Scalar) string {
	switch s.Style {
	case config.StyleQuoted:
		return strconv.Quote(s.Text)
	case config.StyleBare:
		return s.Text
	default:
		if needsQuotes(s.Text) {
			return strconv.Quote(s.Text)
		}
		return s.Text
	}
}

// reserved are plain words YAML would not read back as strings.
var reserved = map[string]bool{
	"~": true, "null": true, "true": true, "false": true,
	"yes": true, "no": true, "on": true, "off": true, "y": true, "n": true,
}

// needsQuotes reports whether text written bare would not read back as the
// same string.
func needsQuotes(text string) bool {
	if text == "" || strings.TrimSpace(text) != text {
		return true
	}
	if reserved[strings.ToLower(text)] {
		return true
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return true
	}
	if strings.ContainsAny(text[:1], "-?:,[]{}#&*!|>'\"%@`") {
		return true
	}
	if strings.Contains(text, ": ") || strings.Contains(text, " #") || strings.HasSuffix(text, ":") {
		return true
	}
	for _, r := range text {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}
