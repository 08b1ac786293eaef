// Package values gathers Storm parameters from Hiera data held in ConfigMaps,
// Secrets and local files, from --set flags, and from StormConfig specs.
package values

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-logr/logr"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/stormops/k8s-storm-operator-go/internal/params"
)

// KeyPrefix scopes Hiera keys to the storm class.
const KeyPrefix = "storm::"

// document is one parsed Hiera source. Keys under the storm namespace that
// are not class parameters, such as `storm::install::repo`, are recorded in
// skipped instead of raw.
type document struct {
	raw     params.Raw
	skipped []string
}

func newDocument() *document {
	return &document{raw: params.Raw{}}
}

func (d *document) set(key string, v any) {
	name, ok := strings.CutPrefix(key, KeyPrefix)
	if !ok {
		return
	}
	if _, declared := params.KindOf(name); !declared {
		d.skipped = append(d.skipped, key)
		return
	}
	d.raw[name] = v
}

// ParseHiera parses a YAML Hiera document and returns the `storm::` keys
// that name class parameters. Other keys are ignored. Mapping order is kept
// for hashes.
func ParseHiera(data string) (params.Raw, error) {
	doc, err := parseHiera(data)
	if err != nil {
		return nil, err
	}
	return doc.raw, nil
}

func parseHiera(data string) (*document, error) {
	d := newDocument()
	dec := yaml.NewDecoder(strings.NewReader(data))
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		root := unwrap(&node)
		if root == nil || isNull(root) {
			continue
		}
		if root.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("failed to parse YAML: top level is not a mapping (line %d)", root.Line)
		}
		for i := 0; i+1 < len(root.Content); i += 2 {
			key := root.Content[i].Value
			if !strings.HasPrefix(key, KeyPrefix) {
				continue
			}
			v, err := nodeValue(root.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			d.set(key, v)
		}
	}
	return d, nil
}

// ParseTOML parses a TOML Hiera document. Keys must be quoted, for example
// `"storm::nimbus_host" = "master"`.
func ParseTOML(data string) (params.Raw, error) {
	doc, err := parseTOML(data)
	if err != nil {
		return nil, err
	}
	return doc.raw, nil
}

func parseTOML(data string) (*document, error) {
	var tree map[string]any
	if _, err := toml.Decode(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	d := newDocument()
	keys := lo.Keys(tree)
	slices.Sort(keys)
	for _, k := range keys {
		d.set(k, tree[k])
	}
	return d, nil
}

// Parse dispatches on the file name extension. Anything that is not TOML is
// read as YAML. Skipped storm keys are logged at V(1).
func Parse(ctx context.Context, name, data string) (params.Raw, error) {
	parse := parseHiera
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		parse = parseTOML
	}
	doc, err := parse(data)
	if err != nil {
		return nil, err
	}
	if len(doc.skipped) > 0 {
		logr.FromContextOrDiscard(ctx).V(1).Info("Ignoring keys that are not storm parameters",
			"source", name, "keys", doc.skipped)
	}
	return doc.raw, nil
}

// ParseValue decodes a single YAML value, keeping mapping order.
func ParseValue(text string) (any, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader([]byte(text))).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse value %q: %w", text, err)
	}
	return nodeValue(unwrap(&doc))
}

func unwrap(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return n.Content[0]
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// nodeValue converts a YAML node into plain values. Mappings become
// params.Hash so their key order survives.
func nodeValue(n *yaml.Node) (any, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		h := make(params.Hash, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			h = append(h, params.Field{Key: n.Content[i].Value, Value: v})
		}
		return h, nil
	case yaml.SequenceNode:
		l := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			l = append(l, v)
		}
		return l, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}
