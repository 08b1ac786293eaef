// Package converge builds the ConfigMap that publishes a compiled
// StormConfig to node agents.
package converge

import (
	"fmt"
	"hash/fnv"
	"maps"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	stormv1alpha1 "github.com/stormops/k8s-storm-operator-go/api/v1alpha1"
	"github.com/stormops/k8s-storm-operator-go/internal/compiler"
)

// ConfigMap data keys.
const (
	KeyStormYAML  = "storm.yaml"
	KeyClusterXML = "cluster.xml"
	KeyCatalog    = "catalog.yaml"
)

// Labels and annotations set on the published ConfigMap.
const (
	LabelConfig        = "storm.stormops.io/config"
	AnnotationChecksum = "storm.stormops.io/checksum"
	AnnotationVersion  = "storm.stormops.io/package-version"

	nameSuffix    = "-storm-config"
	maxNameLength = 253
)

// Builder creates the desired ConfigMap for a StormConfig.
type Builder struct {
	config *stormv1alpha1.StormConfig
	scheme *runtime.Scheme
}

// NewBuilder creates a new ConfigMap builder for a StormConfig.
func NewBuilder(sc *stormv1alpha1.StormConfig) *Builder {
	return &Builder{config: sc}
}

// WithScheme sets the scheme for controller reference generation.
func (b *Builder) WithScheme(scheme *runtime.Scheme) *Builder {
	b.scheme = scheme
	return b
}

// Build returns the ConfigMap holding the rendered documents and the
// serialized catalog of result.
func (b *Builder) Build(result *compiler.Result) (*corev1.ConfigMap, error) {
	if b.config == nil {
		return nil, fmt.Errorf("StormConfig is nil")
	}
	if result == nil {
		return nil, fmt.Errorf("compile result is nil")
	}

	catalogYAML, err := result.Catalog.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize catalog: %w", err)
	}

	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      ConfigMapName(b.config.Name),
			Namespace: b.config.Namespace,
			Labels:    Labels(b.config.Name),
			Annotations: map[string]string{
				AnnotationChecksum: result.Checksum(),
				AnnotationVersion:  result.Settings.Package.Ensure,
			},
		},
		Data: map[string]string{
			KeyStormYAML:  result.StormYAML,
			KeyClusterXML: result.ClusterXML,
			KeyCatalog:    string(catalogYAML),
		},
	}

	if b.scheme != nil {
		if err := controllerutil.SetControllerReference(b.config, cm, b.scheme); err != nil {
			return nil, fmt.Errorf("failed to set owner reference: %w", err)
		}
	}
	return cm, nil
}

// Labels returns the labels identifying resources owned by the named StormConfig.
func Labels(name string) map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":       "storm",
		"app.kubernetes.io/instance":   name,
		"app.kubernetes.io/managed-by": "storm-operator",
		LabelConfig:                    name,
	}
}

// ConfigMapName returns `<name>-storm-config`. Names that would exceed the
// Kubernetes limit are truncated and suffixed with a hash of the full name
// so they stay unique and deterministic.
func ConfigMapName(name string) string {
	full := name + nameSuffix
	if len(full) <= maxNameLength {
		return full
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	hash := fmt.Sprintf("%08x", h.Sum32())
	keep := maxNameLength - len(nameSuffix) - len(hash) - 1
	return fmt.Sprintf("%s-%s%s", name[:keep], hash, nameSuffix)
}

// Update copies the desired data, labels, annotations and owner references
// onto existing. It reports whether anything changed.
func Update(existing, desired *corev1.ConfigMap) bool {
	changed := false
	if !maps.Equal(existing.Data, desired.Data) {
		existing.Data = desired.Data
		changed = true
	}
	if existing.Labels == nil {
		existing.Labels = map[string]string{}
	}
	for k, v := range desired.Labels {
		if existing.Labels[k] != v {
			existing.Labels[k] = v
			changed = true
		}
	}
	if existing.Annotations == nil {
		existing.Annotations = map[string]string{}
	}
	for k, v := range desired.Annotations {
		if existing.Annotations[k] != v {
			existing.Annotations[k] = v
			changed = true
		}
	}
	if len(desired.OwnerReferences) > 0 && len(existing.OwnerReferences) == 0 {
		existing.OwnerReferences = desired.OwnerReferences
		changed = true
	}
	return changed
}
