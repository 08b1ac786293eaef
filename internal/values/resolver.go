package values

import (
	"context"

	stormv1alpha1 "github.com/stormops/k8s-storm-operator-go/api/v1alpha1"
	"github.com/stormops/k8s-storm-operator-go/internal/params"
)

// Resolver fetches and merges Hiera data from HieraSource entries.
type Resolver interface {
	// ResolveHiera fetches ConfigMaps/Secrets in namespace and merges their
	// `storm::` keys. Sources are processed in array order; later sources
	// override earlier ones. Returns error if any required source is missing.
	ResolveHiera(ctx context.Context, sources []stormv1alpha1.HieraSource, namespace string) (params.Raw, error)
}
