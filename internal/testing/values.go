// Package testing provides utilities for writing tests of the Storm operator.
// It contains helpers for setting up Hiera sources (ConfigMaps and Secrets)
// and StormConfig objects from Go values instead of inline YAML strings.
//
// Example - Create a Hiera ConfigMap from a map:
//
//	cm, err := testing.CreateTestHieraConfigMap(ctx, client, "storm", "storm-common", map[string]any{
//	    "nimbus_host":       "master",
//	    "zookeeper_servers": []string{"zk1", "zk2"},
//	})
//	defer client.Delete(ctx, cm)
//
// Example - Build a StormConfig that reads it:
//
//	sc := testing.NewStormConfig("storm", "workers", testing.WithHieraConfigMap("storm-common"))
package testing

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/yaml"

	stormv1alpha1 "github.com/stormops/k8s-storm-operator-go/api/v1alpha1"
)

// HieraKey is the data key the helpers store Hiera YAML under.
const HieraKey = "common.yaml"

// CreateTestHieraConfigMap creates a ConfigMap holding Hiera data for testing.
// Parameter names are prefixed with `storm::` and stored as YAML under HieraKey.
func CreateTestHieraConfigMap(ctx context.Context, c client.Client, namespace, name string, values map[string]any) (*corev1.ConfigMap, error) {
	doc, err := HieraYAML(values)
	if err != nil {
		return nil, err
	}

	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Data:       map[string]string{HieraKey: doc},
	}
	if err := c.Create(ctx, cm); err != nil {
		return nil, fmt.Errorf("failed to create ConfigMap: %w", err)
	}
	return cm, nil
}

// CreateTestHieraSecret creates a Secret holding Hiera data for testing.
func CreateTestHieraSecret(ctx context.Context, c client.Client, namespace, name string, values map[string]any) (*corev1.Secret, error) {
	doc, err := HieraYAML(values)
	if err != nil {
		return nil, err
	}

	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Type:       corev1.SecretTypeOpaque,
		Data:       map[string][]byte{HieraKey: []byte(doc)},
	}
	if err := c.Create(ctx, secret); err != nil {
		return nil, fmt.Errorf("failed to create Secret: %w", err)
	}
	return secret, nil
}

// HieraYAML converts parameter values into a Hiera YAML document.
func HieraYAML(values map[string]any) (string, error) {
	prefixed := make(map[string]any, len(values))
	for k, v := range values {
		prefixed["storm::"+k] = v
	}
	data, err := yaml.Marshal(prefixed)
	if err != nil {
		return "", fmt.Errorf("failed to marshal values to YAML: %w", err)
	}
	return string(data), nil
}

// StormConfigOption customizes a StormConfig built by NewStormConfig.
type StormConfigOption func(*stormv1alpha1.StormConfig)

// NewStormConfig returns a RedHat StormConfig with the given options applied.
func NewStormConfig(namespace, name string, opts ...StormConfigOption) *stormv1alpha1.StormConfig {
	sc := &stormv1alpha1.StormConfig{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace, Generation: 1},
		Spec: stormv1alpha1.StormConfigSpec{
			Facts: stormv1alpha1.Facts{OSFamily: "RedHat", OperatingSystem: "CentOS"},
		},
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// WithOSFamily sets the osfamily fact.
func WithOSFamily(family string) StormConfigOption {
	return func(sc *stormv1alpha1.StormConfig) { sc.Spec.Facts.OSFamily = family }
}

// WithHieraConfigMap appends a ConfigMap Hiera source.
func WithHieraConfigMap(name string) StormConfigOption {
	return func(sc *stormv1alpha1.StormConfig) {
		sc.Spec.HieraFrom = append(sc.Spec.HieraFrom, stormv1alpha1.HieraSource{
			ConfigMapRef: &corev1.LocalObjectReference{Name: name},
		})
	}
}

// WithHieraSecret appends a Secret Hiera source.
func WithHieraSecret(name string, optional bool) StormConfigOption {
	return func(sc *stormv1alpha1.StormConfig) {
		sc.Spec.HieraFrom = append(sc.Spec.HieraFrom, stormv1alpha1.HieraSource{
			SecretRef: &corev1.LocalObjectReference{Name: name},
			Optional:  optional,
		})
	}
}

// WithParameters replaces the explicit parameters.
func WithParameters(p stormv1alpha1.Parameters) StormConfigOption {
	return func(sc *stormv1alpha1.StormConfig) { sc.Spec.Parameters = p }
}

// WithRegistry pins the package version from an OCI repository.
func WithRegistry(url, constraint string) StormConfigOption {
	return func(sc *stormv1alpha1.StormConfig) {
		if sc.Spec.Package == nil {
			sc.Spec.Package = &stormv1alpha1.PackageConfig{}
		}
		sc.Spec.Package.Registry = &stormv1alpha1.RegistryConfig{URL: url, VersionConstraint: constraint}
	}
}
