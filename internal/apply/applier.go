// Package apply converges a compiled catalog onto the local host: accounts
// and packages through the system tools, files and directories directly.
package apply

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/samber/lo"

	"github.com/stormops/k8s-storm-operator-go/internal/catalog"
	"github.com/stormops/k8s-storm-operator-go/internal/monitoring"
)

// Change is one action taken, or planned in dry-run, for a resource.
type Change struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Report summarizes an apply run.
type Report struct {
	DryRun    bool     `json:"dryRun"`
	Changes   []Change `json:"changes"`
	Unchanged []string `json:"unchanged"`
}

// Changed returns the IDs of resources with at least one change.
func (r *Report) Changed() []string {
	return lo.Uniq(lo.Map(r.Changes, func(c Change, _ int) string { return c.Resource }))
}

// Applier applies catalogs to the host.
type Applier struct {
	// Root prefixes every file path. Empty means "/". Accounts and packages
	// are always managed on the live host.
	Root string
	// DryRun reports the changes without making them.
	DryRun bool
	Runner Runner
	Owners Owners
}

// New returns an Applier for the live host.
func New(root string, dryRun bool) *Applier {
	return &Applier{
		Root:   root,
		DryRun: dryRun,
		Runner: NewExecRunner(),
		Owners: SystemOwners{},
	}
}

// Apply walks the catalog stages in dependency order and converges each
// resource. It stops at the first failing resource.
func (a *Applier) Apply(ctx context.Context, cat *catalog.Catalog) (*Report, error) {
	log := logr.FromContextOrDiscard(ctx)

	stages, err := cat.Order()
	if err != nil {
		return nil, fmt.Errorf("failed to order catalog: %w", err)
	}

	report := &Report{DryRun: a.DryRun, Changes: []Change{}, Unchanged: []string{}}
	for _, stage := range stages {
		log.V(1).Info("Applying stage", "stage", stage.Name, "resources", len(stage.Resources))
		for _, res := range stage.Resources {
			actions, err := a.applyResource(ctx, res)
			if err != nil {
				monitoring.RecordApply(string(res.Kind), monitoring.OutcomeFailed)
				return report, fmt.Errorf("%s: %w", res.ID(), err)
			}
			if len(actions) == 0 {
				monitoring.RecordApply(string(res.Kind), monitoring.OutcomeUnchanged)
				report.Unchanged = append(report.Unchanged, res.ID())
				continue
			}
			monitoring.RecordApply(string(res.Kind), monitoring.OutcomeChanged)
			for _, action := range actions {
				log.Info("Resource changed", "resource", res.ID(), "action", action, "dryRun", a.DryRun)
				report.Changes = append(report.Changes, Change{Resource: res.ID(), Action: action})
			}
		}
	}
	return report, nil
}

func (a *Applier) applyResource(ctx context.Context, res catalog.Resource) ([]string, error) {
	switch res.Kind {
	case catalog.KindGroup:
		if res.Group == nil {
			return nil, fmt.Errorf("missing group attributes")
		}
		return a.applyGroup(ctx, res.Title, *res.Group)
	case catalog.KindUser:
		if res.User == nil {
			return nil, fmt.Errorf("missing user attributes")
		}
		return a.applyUser(ctx, res.Title, *res.User)
	case catalog.KindPackage:
		if res.Package == nil {
			return nil, fmt.Errorf("missing package attributes")
		}
		return a.applyPackage(ctx, res.Title, *res.Package)
	case catalog.KindFile:
		if res.File == nil {
			return nil, fmt.Errorf("missing file attributes")
		}
		if !filepath.IsAbs(res.Title) {
			return nil, fmt.Errorf("file path must be absolute")
		}
		return a.applyFile(res.Title, *res.File)
	default:
		return nil, fmt.Errorf("unsupported resource kind %q", res.Kind)
	}
}

// run executes a mutating command, or only records it in dry-run.
func (a *Applier) run(ctx context.Context, name string, args ...string) error {
	if a.DryRun {
		return nil
	}
	_, err := a.Runner.Run(ctx, name, args...)
	return err
}

// hostPath maps a catalog path under Root.
func (a *Applier) hostPath(path string) string {
	if a.Root == "" || a.Root == "/" {
		return filepath.Clean(path)
	}
	return filepath.Join(a.Root, path)
}
