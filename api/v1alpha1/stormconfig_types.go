/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// StormConfig phase constants
const (
	PhaseRendering = "Rendering"
	PhaseRendered  = "Rendered"
	PhaseFailed    = "Failed"
)

// StormConfigSpec defines the desired configuration of a Storm node.
//
// Example (defaults plus Hiera data):
//
//	apiVersion: storm.stormops.io/v1alpha1
//	kind: StormConfig
//	metadata:
//	  name: storm-workers
//	  namespace: storm
//	spec:
//	  facts:
//	    osfamily: RedHat
//	    operatingsystem: CentOS
//	  hieraFrom:
//	    - configMapRef:
//	        name: storm-common
//	    - secretRef:
//	        name: storm-secrets
//	      optional: true
//
// Example (explicit parameters and a pinned package):
//
//	spec:
//	  facts:
//	    osfamily: RedHat
//	  parameters:
//	    nimbusHost: master23
//	    zookeeperServers: [zk1, zk2, zk3]
//	    configMap:
//	      - key: topology.kryo.register
//	        value: ["org.mycompany.MyType"]
//	  package:
//	    registry:
//	      url: ghcr.io/org/storm
//	      versionConstraint: ">= 0.9, < 1.0"
type StormConfigSpec struct {
	// Facts are the host facts used to select OS-family defaults.
	// +kubebuilder:validation:Required
	Facts Facts `json:"facts"`

	// HieraFrom is a list of ConfigMaps or Secrets holding Hiera data.
	// Each data key is parsed as a YAML document; only `storm::<parameter>` keys are used.
	// Sources are merged in array order; later sources override earlier ones.
	// Explicit Parameters override all Hiera data.
	// +kubebuilder:validation:Optional
	HieraFrom []HieraSource `json:"hieraFrom,omitempty"`

	// Parameters are explicit class parameters.
	// +kubebuilder:validation:Optional
	Parameters Parameters `json:"parameters,omitempty"`

	// Package configures the Storm package and optional version pinning.
	// +kubebuilder:validation:Optional
	Package *PackageConfig `json:"package,omitempty"`
}

// Facts are host facts.
type Facts struct {
	// OSFamily is the operating system family (e.g., RedHat).
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:MinLength=1
	OSFamily string `json:"osfamily"`

	// OperatingSystem is the operating system name (e.g., CentOS, Amazon).
	// +kubebuilder:validation:Optional
	OperatingSystem string `json:"operatingsystem,omitempty"`
}

// HieraSource is a ConfigMap or Secret holding Hiera data.
// Exactly one of ConfigMapRef or SecretRef must be set.
// +kubebuilder:validation:XValidation:rule="(has(self.configMapRef) && !has(self.secretRef)) || (!has(self.configMapRef) && has(self.secretRef))",message="exactly one of configMapRef or secretRef must be set"
type HieraSource struct {
	// ConfigMapRef is a reference to a ConfigMap in the StormConfig's namespace.
	// +kubebuilder:validation:Optional
	ConfigMapRef *corev1.LocalObjectReference `json:"configMapRef,omitempty"`

	// SecretRef is a reference to a Secret in the StormConfig's namespace.
	// +kubebuilder:validation:Optional
	SecretRef *corev1.LocalObjectReference `json:"secretRef,omitempty"`

	// Optional specifies whether a missing source is tolerated.
	// +kubebuilder:validation:Optional
	// +kubebuilder:default:=false
	Optional bool `json:"optional,omitempty"`
}

// Parameters are the Storm class parameters. Unset fields fall back to
// Hiera data and then to defaults.
type Parameters struct {
	// +kubebuilder:validation:Optional
	Config *string `json:"config,omitempty"`
	// +kubebuilder:validation:Optional
	InstallDir *string `json:"installDir,omitempty"`
	// +kubebuilder:validation:Optional
	Logback *string `json:"logback,omitempty"`
	// +kubebuilder:validation:Optional
	LogDir *string `json:"logDir,omitempty"`
	// +kubebuilder:validation:Optional
	LocalDir *string `json:"localDir,omitempty"`
	// +kubebuilder:validation:Optional
	LocalHostname *string `json:"localHostname,omitempty"`
	// +kubebuilder:validation:Optional
	NimbusHost *string `json:"nimbusHost,omitempty"`
	// +kubebuilder:validation:Optional
	ZookeeperServers []string `json:"zookeeperServers,omitempty"`
	// +kubebuilder:validation:Optional
	DrpcServers []string `json:"drpcServers,omitempty"`
	// +kubebuilder:validation:Optional
	SupervisorSlotsPorts []int32 `json:"supervisorSlotsPorts,omitempty"`
	// +kubebuilder:validation:Optional
	StormMessagingTransport *string `json:"stormMessagingTransport,omitempty"`

	// Childopts are per-role JVM options.
	// +kubebuilder:validation:Optional
	Childopts *Childopts `json:"childopts,omitempty"`

	// Graphite configures the Graphite metrics consumer.
	// +kubebuilder:validation:Optional
	Graphite *GraphiteConfig `json:"graphite,omitempty"`

	// User configures the managed system account.
	// +kubebuilder:validation:Optional
	User *UserConfig `json:"user,omitempty"`

	// ConfigMap holds free-form storm.yaml overrides, written in list order
	// after the base settings.
	// +kubebuilder:validation:Optional
	ConfigMap []ConfigOverride `json:"configMap,omitempty"`
}

// Childopts are per-role JVM launch options.
type Childopts struct {
	Drpc       *string `json:"drpc,omitempty"`
	Logviewer  *string `json:"logviewer,omitempty"`
	Nimbus     *string `json:"nimbus,omitempty"`
	UI         *string `json:"ui,omitempty"`
	Supervisor *string `json:"supervisor,omitempty"`
	Worker     *string `json:"worker,omitempty"`
}

// GraphiteConfig configures the Graphite metrics consumer.
type GraphiteConfig struct {
	Enable        *bool   `json:"enable,omitempty"`
	Consumer      *string `json:"consumer,omitempty"`
	Hostname      *string `json:"hostname,omitempty"`
	Port          *string `json:"port,omitempty"`
	Prefix        *string `json:"prefix,omitempty"`
	PackageName   *string `json:"packageName,omitempty"`
	PackageEnsure *string `json:"packageEnsure,omitempty"`
}

// UserConfig configures the managed system account.
type UserConfig struct {
	Manage      *bool   `json:"manage,omitempty"`
	Name        *string `json:"name,omitempty"`
	Group       *string `json:"group,omitempty"`
	UID         *int32  `json:"uid,omitempty"`
	GID         *int32  `json:"gid,omitempty"`
	Description *string `json:"description,omitempty"`
	Home        *string `json:"home,omitempty"`
	Shell       *string `json:"shell,omitempty"`
	ManageHome  *bool   `json:"manageHome,omitempty"`
}

// ConfigOverride is one free-form storm.yaml setting.
type ConfigOverride struct {
	// Key is the dotted storm.yaml key (e.g., topology.workers).
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:MinLength=1
	Key string `json:"key"`

	// Value is any JSON value: scalar, list, or object.
	// +kubebuilder:validation:Required
	// +kubebuilder:pruning:PreserveUnknownFields
	// +kubebuilder:validation:Schemaless
	Value apiextensionsv1.JSON `json:"value"`
}

// PackageConfig configures the Storm package.
type PackageConfig struct {
	// Name is the package name.
	// +kubebuilder:validation:Optional
	Name *string `json:"name,omitempty"`

	// Ensure is the package ensure value (present, latest, absent or a version).
	// Ignored when Registry resolves a version.
	// +kubebuilder:validation:Optional
	Ensure *string `json:"ensure,omitempty"`

	// Registry pins the package version to the highest tag satisfying VersionConstraint.
	// +kubebuilder:validation:Optional
	Registry *RegistryConfig `json:"registry,omitempty"`
}

// RegistryConfig contains configuration for accessing an OCI registry.
type RegistryConfig struct {
	// URL is the OCI repository URL (e.g., ghcr.io/org/storm).
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:MinLength=1
	URL string `json:"url"`

	// SecretRef is an optional reference to a Secret containing registry credentials.
	// +kubebuilder:validation:Optional
	SecretRef *corev1.LocalObjectReference `json:"secretRef,omitempty"`

	// VersionConstraint is a semver constraint (e.g., ">= 0.9, < 1.0").
	// Empty selects the highest semver tag.
	// +kubebuilder:validation:Optional
	VersionConstraint string `json:"versionConstraint,omitempty"`

	// PollInterval is the interval at which to poll the registry for new tags (e.g., 15m, 1h).
	// +kubebuilder:validation:Optional
	// +kubebuilder:validation:Pattern=`^([0-9]+(ns|us|µs|ms|s|m|h))+$`
	// +kubebuilder:default:="15m"
	PollInterval string `json:"pollInterval,omitempty"`
}

// StormConfigStatus defines the observed state of StormConfig.
type StormConfigStatus struct {
	// Phase is the current phase (Rendering, Rendered, Failed).
	// +kubebuilder:validation:Enum=Rendering;Rendered;Failed
	Phase string `json:"phase,omitempty"`

	// ObservedGeneration is the generation last compiled.
	// +kubebuilder:validation:Optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// ConfigMapName is the ConfigMap holding the rendered documents and catalog.
	// +kubebuilder:validation:Optional
	ConfigMapName string `json:"configMapName,omitempty"`

	// ConfigChecksum is the SHA-256 of the rendered documents.
	// +kubebuilder:validation:Optional
	ConfigChecksum string `json:"configChecksum,omitempty"`

	// ResourceCount is the number of declared host resources.
	// +kubebuilder:validation:Optional
	ResourceCount int32 `json:"resourceCount,omitempty"`

	// ResolvedPackageVersion is the registry tag pinned as the package ensure.
	// +kubebuilder:validation:Optional
	ResolvedPackageVersion string `json:"resolvedPackageVersion,omitempty"`

	// LastRenderTime is the timestamp of the last successful render.
	// +kubebuilder:validation:Optional
	LastRenderTime *metav1.Time `json:"lastRenderTime,omitempty"`

	// LastErrorMessage is the last error encountered, or empty string if no error.
	// +kubebuilder:validation:Optional
	LastErrorMessage string `json:"lastErrorMessage,omitempty"`

	// LastETag is the ETag from the last successful registry response.
	// +kubebuilder:validation:Optional
	LastETag string `json:"lastETag,omitempty"`

	// ConsecutiveFailures is the number of consecutive registry polling failures.
	// Reset to 0 on success. Marked Failed after 5.
	// +kubebuilder:validation:Optional
	// +kubebuilder:validation:Minimum=0
	ConsecutiveFailures int32 `json:"consecutiveFailures,omitempty"`

	// LastErrorTime is the timestamp of the last registry error.
	// +kubebuilder:validation:Optional
	LastErrorTime *metav1.Time `json:"lastErrorTime,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`
// +kubebuilder:printcolumn:name="ConfigMap",type=string,JSONPath=`.status.configMapName`
// +kubebuilder:printcolumn:name="Resources",type=integer,JSONPath=`.status.resourceCount`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`
// +kubebuilder:resource:shortName=sc;scs

// StormConfig is the Schema for the stormconfigs API.
type StormConfig struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   StormConfigSpec   `json:"spec,omitempty"`
	Status StormConfigStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// StormConfigList contains a list of StormConfig.
type StormConfigList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []StormConfig `json:"items"`
}

// ValidateHieraSources checks that each Hiera source names exactly one object.
func (sc *StormConfig) ValidateHieraSources() error {
	for i, src := range sc.Spec.HieraFrom {
		switch {
		case src.ConfigMapRef != nil && src.SecretRef != nil:
			return fmt.Errorf("hieraFrom[%d]: only one of configMapRef or secretRef may be set", i)
		case src.ConfigMapRef == nil && src.SecretRef == nil:
			return fmt.Errorf("hieraFrom[%d]: one of configMapRef or secretRef must be set", i)
		}
	}
	return nil
}

func init() {
	SchemeBuilder.Register(&StormConfig{}, &StormConfigList{})
}
