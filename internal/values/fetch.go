package values

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// fetchConfigMap returns the data of a ConfigMap in namespace.
// NotFound errors stay detectable with apierrors.IsNotFound.
func fetchConfigMap(ctx context.Context, c client.Client, name, namespace string) (map[string]string, error) {
	cm := &corev1.ConfigMap{}
	if err := c.Get(ctx, types.NamespacedName{Name: name, Namespace: namespace}, cm); err != nil {
		return nil, fmt.Errorf("failed to get ConfigMap %q from namespace %q: %w", name, namespace, err)
	}
	return cm.Data, nil
}

// fetchSecret returns the decoded data of a Secret in namespace.
func fetchSecret(ctx context.Context, c client.Client, name, namespace string) (map[string]string, error) {
	secret := &corev1.Secret{}
	if err := c.Get(ctx, types.NamespacedName{Name: name, Namespace: namespace}, secret); err != nil {
		return nil, fmt.Errorf("failed to get Secret %q from namespace %q: %w", name, namespace, err)
	}
	data := make(map[string]string, len(secret.Data)+len(secret.StringData))
	for k, v := range secret.Data {
		data[k] = string(v)
	}
	for k, v := range secret.StringData {
		data[k] = v
	}
	return data, nil
}
