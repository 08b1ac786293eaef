package catalog

import (
	"errors"
	"fmt"
	"path"

	"github.com/samber/lo"
	"sigs.k8s.io/yaml"
)

// Stage names, in apply order.
const (
	StageUsers   = "users"
	StageInstall = "install"
	StageConfig  = "config"
)

// Stage is a named group of resources applied together. Requires lists the
// stages that must be applied first.
type Stage struct {
	Name      string     `json:"name"`
	Requires  []string   `json:"requires,omitempty"`
	Resources []Resource `json:"resources"`
}

// Catalog is the ordered desired state of one host.
type Catalog struct {
	Stages []Stage `json:"stages"`
}

// DuplicateResourceError reports a resource identity declared more than
// once, for example a log dir that is also the local dir.
type DuplicateResourceError struct {
	ID string
}

func (e *DuplicateResourceError) Error() string {
	return fmt.Sprintf("Duplicate declaration: %s is already declared", e.ID)
}

// Order returns the stages in dependency order. Stages with no ordering
// between them keep their declaration order. Unknown requirements, cycles
// and duplicate resources are errors.
func (c *Catalog) Order() ([]Stage, error) {
	if err := c.checkUnique(); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(c.Stages))
	for i, s := range c.Stages {
		if _, dup := index[s.Name]; dup {
			return nil, fmt.Errorf("duplicate stage name: %s", s.Name)
		}
		index[s.Name] = i
	}

	inDegree := make([]int, len(c.Stages))
	dependents := make([][]int, len(c.Stages))
	for i, s := range c.Stages {
		for _, req := range s.Requires {
			j, ok := index[req]
			if !ok {
				return nil, fmt.Errorf("stage %s requires unknown stage %s", s.Name, req)
			}
			inDegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	// Kahn, always taking the earliest declared ready stage.
	ordered := make([]Stage, 0, len(c.Stages))
	done := make([]bool, len(c.Stages))
	for len(ordered) < len(c.Stages) {
		next := -1
		for i := range c.Stages {
			if !done[i] && inDegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, errors.New("stage graph contains at least one cycle")
		}
		done[next] = true
		ordered = append(ordered, c.Stages[next])
		for _, d := range dependents[next] {
			inDegree[d]--
		}
	}
	return ordered, nil
}

// checkUnique rejects resources sharing an identity. File titles compare as
// cleaned paths.
func (c *Catalog) checkUnique() error {
	seen := make(map[string]bool)
	for _, r := range c.Resources() {
		if r.Kind == KindFile {
			r.Title = path.Clean(r.Title)
		}
		id := r.ID()
		if seen[id] {
			return &DuplicateResourceError{ID: id}
		}
		seen[id] = true
	}
	return nil
}

// Resources returns every resource in declaration order.
func (c *Catalog) Resources() []Resource {
	return lo.FlatMap(c.Stages, func(s Stage, _ int) []Resource {
		return s.Resources
	})
}

// Count returns the number of declared resources.
func (c *Catalog) Count() int {
	return lo.SumBy(c.Stages, func(s Stage) int { return len(s.Resources) })
}

// Find returns the resource with the given kind and title.
func (c *Catalog) Find(kind Kind, title string) (Resource, bool) {
	return lo.Find(c.Resources(), func(r Resource) bool {
		return r.Kind == kind && r.Title == title
	})
}

// Titles returns the titles of every resource of kind.
func (c *Catalog) Titles(kind Kind) []string {
	return lo.FilterMap(c.Resources(), func(r Resource, _ int) (string, bool) {
		return r.Title, r.Kind == kind
	})
}

// Stage returns the named stage.
func (c *Catalog) Stage(name string) (Stage, bool) {
	return lo.Find(c.Stages, func(s Stage) bool { return s.Name == name })
}

// Marshal serializes the catalog as YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return data, nil
}

// Unmarshal parses a catalog produced by Marshal and checks its stage graph.
func Unmarshal(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if _, err := c.Order(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}
