package apply

import (
	"context"
	"fmt"
	"strings"

	"github.com/stormops/k8s-storm-operator-go/internal/catalog"
)

// yum check-update exits 100 when updates are available.
const yumUpdatesAvailable = 100

// installed reports whether spec (a name or name-version) is installed.
func (a *Applier) installed(ctx context.Context, spec string) (bool, error) {
	_, err := a.Runner.Run(ctx, "rpm", "-q", spec)
	if err == nil {
		return true, nil
	}
	if exitCode(err) > 0 {
		return false, nil
	}
	return false, err
}

func (a *Applier) applyPackage(ctx context.Context, name string, p catalog.Package) ([]string, error) {
	ensure := strings.TrimSpace(p.Ensure)
	if ensure == "" {
		ensure = catalog.EnsurePresent
	}

	present, err := a.installed(ctx, name)
	if err != nil {
		return nil, err
	}

	switch ensure {
	case catalog.EnsurePresent:
		if present {
			return nil, nil
		}
		return []string{"installed"}, a.run(ctx, "yum", "install", "-y", name)

	case catalog.EnsureAbsent:
		if !present {
			return nil, nil
		}
		return []string{"removed"}, a.run(ctx, "yum", "remove", "-y", name)

	case catalog.EnsureLatest:
		if !present {
			return []string{"installed latest"}, a.run(ctx, "yum", "install", "-y", name)
		}
		_, err := a.Runner.Run(ctx, "yum", "-q", "check-update", name)
		switch {
		case err == nil:
			return nil, nil
		case exitCode(err) == yumUpdatesAvailable:
			return []string{"updated to latest"}, a.run(ctx, "yum", "update", "-y", name)
		default:
			return nil, fmt.Errorf("failed to check for updates: %w", err)
		}

	default:
		// Any other ensure pins a version.
		versioned := name + "-" + ensure
		ok, err := a.installed(ctx, versioned)
		if err != nil {
			return nil, err
		}
		if ok {
			return nil, nil
		}
		if !present {
			return []string{"installed version " + ensure}, a.run(ctx, "yum", "install", "-y", versioned)
		}
		// yum install refuses older versions, so fall back to downgrade.
		actions := []string{"changed version to " + ensure}
		if err := a.run(ctx, "yum", "install", "-y", versioned); err != nil {
			if derr := a.run(ctx, "yum", "downgrade", "-y", versioned); derr != nil {
				return actions, fmt.Errorf("failed to install %s: %w", versioned, err)
			}
		}
		return actions, nil
	}
}
