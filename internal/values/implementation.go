package values

import (
	"context"
	"fmt"
	"slices"

	"github.com/go-logr/logr"
	"github.com/samber/lo"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"sigs.k8s.io/controller-runtime/pkg/client"

	stormv1alpha1 "github.com/stormops/k8s-storm-operator-go/api/v1alpha1"
	"github.com/stormops/k8s-storm-operator-go/internal/params"
)

// ResolverImpl is the concrete implementation of the Resolver interface.
type ResolverImpl struct {
	client client.Client
}

// NewResolver creates a new Resolver with the given Kubernetes client.
func NewResolver(c client.Client) Resolver {
	return &ResolverImpl{client: c}
}

// ResolveHiera implements Resolver. Data keys within one source are parsed
// in sorted order, so a key in `b.yaml` overrides the same key in `a.yaml`.
func (r *ResolverImpl) ResolveHiera(
	ctx context.Context,
	sources []stormv1alpha1.HieraSource,
	namespace string,
) (params.Raw, error) {
	log := logr.FromContextOrDiscard(ctx)
	layers := make([]params.Raw, 0, len(sources))

	for i, source := range sources {
		var (
			data map[string]string
			err  error
			kind string
			name string
		)

		switch {
		case source.ConfigMapRef != nil && source.SecretRef != nil:
			return nil, fmt.Errorf("source %d: only one of ConfigMapRef or SecretRef may be set", i)
		case source.ConfigMapRef != nil:
			kind, name = "ConfigMap", source.ConfigMapRef.Name
			if name == "" {
				return nil, fmt.Errorf("source %d: ConfigMapRef name is empty", i)
			}
			data, err = fetchConfigMap(ctx, r.client, name, namespace)
		case source.SecretRef != nil:
			kind, name = "Secret", source.SecretRef.Name
			if name == "" {
				return nil, fmt.Errorf("source %d: SecretRef name is empty", i)
			}
			data, err = fetchSecret(ctx, r.client, name, namespace)
		default:
			return nil, fmt.Errorf("source %d: neither ConfigMapRef nor SecretRef is set", i)
		}

		if err != nil {
			if source.Optional && apierrors.IsNotFound(err) {
				log.V(1).Info("Skipping missing optional hiera source", "kind", kind, "name", name)
				continue
			}
			return nil, fmt.Errorf("source %d: %w", i, err)
		}

		keys := lo.Keys(data)
		slices.Sort(keys)
		for _, key := range keys {
			raw, err := Parse(ctx, key, data[key])
			if err != nil {
				return nil, fmt.Errorf("source %d: %s %q key %q: %w", i, kind, name, key, err)
			}
			layers = append(layers, raw)
		}
	}

	return Merge(layers...), nil
}
