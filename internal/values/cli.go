package values

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/stormops/k8s-storm-operator-go/internal/params"
)

// LoadFiles reads Hiera files in order and merges them, later files winning.
func LoadFiles(ctx context.Context, paths []string) (params.Raw, error) {
	layers := make([]params.Raw, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read hiera file: %w", err)
		}
		raw, err := Parse(ctx, path, string(data))
		if err != nil {
			return nil, fmt.Errorf("hiera file %q: %w", path, err)
		}
		layers = append(layers, raw)
	}
	return Merge(layers...), nil
}

// ParseSetFlags parses `name=value` assignments. The value is read as YAML,
// so `zookeeper_servers=[zk1, zk2]` yields a list. The name may carry the
// `storm::` prefix. An empty value is the empty string.
func ParseSetFlags(flags []string) (params.Raw, error) {
	raw := params.Raw{}
	for _, flag := range flags {
		name, text, ok := strings.Cut(flag, "=")
		name = strings.TrimPrefix(strings.TrimSpace(name), KeyPrefix)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", flag)
		}
		if strings.TrimSpace(text) == "" {
			raw[name] = ""
			continue
		}
		v, err := ParseValue(text)
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", flag, err)
		}
		raw[name] = v
	}
	return raw, nil
}
