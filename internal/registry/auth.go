package registry

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	corev1 "k8s.io/api/core/v1"
)

type dockerConfig struct {
	Auths map[string]dockerAuth `json:"auths"`
}

type dockerAuth struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Auth     string `json:"auth"`
}

// AuthFromSecret builds credentials for repoURL from a Secret. It reads a
// `.dockerconfigjson` entry for the repository's registry, or plain
// `username` and `password` keys.
func AuthFromSecret(secret *corev1.Secret, repoURL string) (authn.Authenticator, error) {
	if raw, ok := secret.Data[corev1.DockerConfigJsonKey]; ok {
		ref, err := name.NewRepository(repoURL)
		if err != nil {
			return nil, fmt.Errorf("invalid repository URL: %w", err)
		}
		var cfg dockerConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", corev1.DockerConfigJsonKey, err)
		}
		for host, a := range cfg.Auths {
			if strings.TrimPrefix(strings.TrimPrefix(host, "https://"), "http://") != ref.RegistryStr() {
				continue
			}
			if a.Auth != "" && a.Username == "" {
				decoded, err := base64.StdEncoding.DecodeString(a.Auth)
				if err != nil {
					return nil, fmt.Errorf("failed to decode auth for %s: %w", host, err)
				}
				a.Username, a.Password, _ = strings.Cut(string(decoded), ":")
			}
			return authn.FromConfig(authn.AuthConfig{Username: a.Username, Password: a.Password}), nil
		}
		return nil, fmt.Errorf("secret %q has no credentials for registry %q", secret.Name, ref.RegistryStr())
	}

	user, pass := secret.Data["username"], secret.Data["password"]
	if len(user) == 0 || len(pass) == 0 {
		return nil, fmt.Errorf("secret %q must contain %s or username and password", secret.Name, corev1.DockerConfigJsonKey)
	}
	return authn.FromConfig(authn.AuthConfig{Username: string(user), Password: string(pass)}), nil
}
