// Package testdata provides helper functions for loading Hiera test fixtures.
package testdata

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"
)

// LoadConfigMapFixture loads a ConfigMap fixture from testdata/configmaps/.
// The filename should be the name of the YAML file (e.g., "hiera-common.yaml").
func LoadConfigMapFixture(filename string) (*corev1.ConfigMap, error) {
	var cm corev1.ConfigMap
	if err := loadFixture(filepath.Join("configmaps", filename), &cm); err != nil {
		return nil, fmt.Errorf("ConfigMap fixture %q: %w", filename, err)
	}
	return &cm, nil
}

// LoadSecretFixture loads a Secret fixture from testdata/secrets/.
func LoadSecretFixture(filename string) (*corev1.Secret, error) {
	var secret corev1.Secret
	if err := loadFixture(filepath.Join("secrets", filename), &secret); err != nil {
		return nil, fmt.Errorf("Secret fixture %q: %w", filename, err)
	}
	return &secret, nil
}

// HieraFile returns the absolute path of a Hiera file under testdata/hiera/.
func HieraFile(filename string) string {
	return filepath.Join(fixtureDir(), "hiera", filename)
}

// ConfigMapWithNamespace returns cm with its namespace set.
// Usage: cm := testdata.ConfigMapWithNamespace(mustLoad("hiera-common.yaml"), "storm")
func ConfigMapWithNamespace(cm *corev1.ConfigMap, namespace string) *corev1.ConfigMap {
	if cm != nil {
		cm.Namespace = namespace
	}
	return cm
}

// SecretWithNamespace returns s with its namespace set.
func SecretWithNamespace(s *corev1.Secret, namespace string) *corev1.Secret {
	if s != nil {
		s.Namespace = namespace
	}
	return s
}

func loadFixture(rel string, out any) error {
	data, err := os.ReadFile(filepath.Join(fixtureDir(), rel))
	if err != nil {
		return fmt.Errorf("failed to read: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse: %w", err)
	}
	return nil
}

// fixtureDir returns the path to the testdata directory, located relative
// to this file so tests work from any package.
func fixtureDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "internal/values/testdata"
	}
	return filepath.Dir(file)
}
