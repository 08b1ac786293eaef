package converge

import (
	"context"
	"strings"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"

	stormv1alpha1 "github.com/stormops/k8s-storm-operator-go/api/v1alpha1"
	"github.com/stormops/k8s-storm-operator-go/internal/catalog"
	"github.com/stormops/k8s-storm-operator-go/internal/compiler"
	"github.com/stormops/k8s-storm-operator-go/internal/defaults"
	"github.com/stormops/k8s-storm-operator-go/internal/params"
)

const testConfigName = "storm-workers"

var testScheme = func() *runtime.Scheme {
	scheme := runtime.NewScheme()
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(stormv1alpha1.AddToScheme(scheme))
	return scheme
}()

func testConfig() *stormv1alpha1.StormConfig {
	return &stormv1alpha1.StormConfig{
		ObjectMeta: metav1.ObjectMeta{Name: testConfigName, Namespace: "storm", UID: "uid-1"},
		Spec:       stormv1alpha1.StormConfigSpec{Facts: stormv1alpha1.Facts{OSFamily: "RedHat"}},
	}
}

func compile(t *testing.T, raw params.Raw) *compiler.Result {
	t.Helper()
	result, err := compiler.Compile(context.Background(), raw, defaults.Facts{OSFamily: "RedHat"})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return result
}

func TestBuilder_Build(t *testing.T) {
	result := compile(t, params.Raw{})
	cm, err := NewBuilder(testConfig()).WithScheme(testScheme).Build(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cm.Name != testConfigName+"-storm-config" {
		t.Errorf("name: got %q, want %q", cm.Name, testConfigName+"-storm-config")
	}
	if cm.Namespace != "storm" {
		t.Errorf("namespace: got %q, want %q", cm.Namespace, "storm")
	}
	if cm.Labels["app.kubernetes.io/instance"] != testConfigName {
		t.Errorf("instance label: got %q", cm.Labels["app.kubernetes.io/instance"])
	}
	if cm.Labels[LabelConfig] != testConfigName {
		t.Errorf("config label: got %q", cm.Labels[LabelConfig])
	}
	if cm.Annotations[AnnotationChecksum] != result.Checksum() {
		t.Errorf("checksum annotation: got %q, want %q", cm.Annotations[AnnotationChecksum], result.Checksum())
	}
	if cm.Annotations[AnnotationVersion] != "present" {
		t.Errorf("version annotation: got %q, want present", cm.Annotations[AnnotationVersion])
	}

	if cm.Data[KeyStormYAML] != result.StormYAML {
		t.Error("storm.yaml does not match the compiled document")
	}
	if cm.Data[KeyClusterXML] != result.ClusterXML {
		t.Error("cluster.xml does not match the compiled document")
	}

	cat, err := catalog.Unmarshal([]byte(cm.Data[KeyCatalog]))
	if err != nil {
		t.Fatalf("catalog.yaml does not parse: %v", err)
	}
	if cat.Count() != result.Catalog.Count() {
		t.Errorf("catalog resource count: got %d, want %d", cat.Count(), result.Catalog.Count())
	}
}

func TestBuilder_Build_OwnerReference(t *testing.T) {
	cm, err := NewBuilder(testConfig()).WithScheme(testScheme).Build(compile(t, params.Raw{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cm.OwnerReferences) != 1 {
		t.Fatalf("expected 1 owner reference, got %d", len(cm.OwnerReferences))
	}
	ref := cm.OwnerReferences[0]
	if ref.Kind != "StormConfig" || ref.Name != testConfigName || ref.UID != "uid-1" {
		t.Errorf("unexpected owner reference %+v", ref)
	}
	if ref.Controller == nil || !*ref.Controller {
		t.Error("owner reference should be the controller reference")
	}
	if ref.APIVersion != stormv1alpha1.GroupVersion.String() {
		t.Errorf("owner APIVersion: got %q", ref.APIVersion)
	}
}

func TestBuilder_Build_WithoutScheme(t *testing.T) {
	cm, err := NewBuilder(testConfig()).Build(compile(t, params.Raw{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cm.OwnerReferences) != 0 {
		t.Errorf("expected no owner references without a scheme, got %d", len(cm.OwnerReferences))
	}
}

func TestBuilder_Build_NilInputs(t *testing.T) {
	if _, err := NewBuilder(nil).Build(compile(t, params.Raw{})); err == nil {
		t.Error("expected error for nil StormConfig")
	}
	if _, err := NewBuilder(testConfig()).Build(nil); err == nil {
		t.Error("expected error for nil result")
	}
}

func TestBuilder_Build_Deterministic(t *testing.T) {
	raw := params.Raw{"config_map": map[string]any{"b": "1", "a": "2"}}
	first, err := NewBuilder(testConfig()).Build(compile(t, raw))
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewBuilder(testConfig()).Build(compile(t, raw))
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{KeyStormYAML, KeyClusterXML, KeyCatalog} {
		if first.Data[key] != second.Data[key] {
			t.Errorf("%s differs between identical compiles", key)
		}
	}
}

func TestConfigMapName(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "short", in: "storm"},
		{name: "exactly at limit", in: strings.Repeat("a", maxNameLength-len(nameSuffix))},
		{name: "too long", in: strings.Repeat("b", 300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConfigMapName(tt.in)
			if len(got) > maxNameLength {
				t.Errorf("name length %d exceeds %d", len(got), maxNameLength)
			}
			if !strings.HasSuffix(got, nameSuffix) {
				t.Errorf("name %q lacks suffix %q", got, nameSuffix)
			}
			if got != ConfigMapName(tt.in) {
				t.Error("name is not deterministic")
			}
		})
	}

	if ConfigMapName(strings.Repeat("b", 300)) == ConfigMapName(strings.Repeat("b", 301)) {
		t.Error("truncated names should stay distinct")
	}
}

func TestUpdate(t *testing.T) {
	desired, err := NewBuilder(testConfig()).WithScheme(testScheme).Build(compile(t, params.Raw{}))
	if err != nil {
		t.Fatal(err)
	}

	existing := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:        desired.Name,
			Namespace:   desired.Namespace,
			Labels:      map[string]string{"extra": "kept"},
			Annotations: map[string]string{AnnotationChecksum: "stale"},
		},
		Data: map[string]string{KeyStormYAML: "old"},
	}

	if !Update(existing, desired) {
		t.Fatal("expected first update to report a change")
	}
	if existing.Labels["extra"] != "kept" {
		t.Error("foreign labels should be preserved")
	}
	if existing.Annotations[AnnotationChecksum] != desired.Annotations[AnnotationChecksum] {
		t.Error("checksum annotation not updated")
	}
	if len(existing.OwnerReferences) != 1 {
		t.Error("owner reference not adopted")
	}
	if Update(existing, desired) {
		t.Error("expected second update to report no change")
	}
}
