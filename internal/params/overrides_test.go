package params

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stormops/k8s-storm-operator-go/internal/config"
)

func TestOverrides(t *testing.T) {
	tests := []struct {
		name string
		hash Hash
		want []config.Entry
	}{
		{
			name: "Empty hash",
			hash: Hash{},
			want: []config.Entry{},
		},
		{
			name: "Scalars become quoted strings",
			hash: Hash{
				{Key: "nimbus.cleanup.inbox.freq.secs", Value: 666},
				{Key: "nimbus.monitor.freq.secs", Value: float64(22)},
				{Key: "topology.debug", Value: true},
				{Key: "storm.id", Value: "abc"},
				{Key: "topology.nothing", Value: nil},
			},
			want: []config.Entry{
				{Key: "nimbus.cleanup.inbox.freq.secs", Value: config.Quoted("666")},
				{Key: "nimbus.monitor.freq.secs", Value: config.Quoted("22")},
				{Key: "topology.debug", Value: config.Quoted("true")},
				{Key: "storm.id", Value: config.Quoted("abc")},
				{Key: "topology.nothing", Value: config.Quoted("")},
			},
		},
		{
			name: "List with single-pair maps",
			hash: Hash{
				{Key: "topology.kryo.register", Value: []any{
					"org.mycompany.MyType",
					Hash{{Key: "org.mycompany.MyType2", Value: "org.mycompany.MyType2Serializer"}},
				}},
			},
			want: []config.Entry{
				{Key: "topology.kryo.register", Value: config.List{
					config.Plain("org.mycompany.MyType"),
					config.Pair{Key: "org.mycompany.MyType2", Value: config.Plain("org.mycompany.MyType2Serializer")},
				}},
			},
		},
		{
			name: "Unordered nested map gets sorted keys",
			hash: Hash{
				{Key: "topology.environment", Value: map[string]any{"B": 2, "A": "x"}},
			},
			want: []config.Entry{
				{Key: "topology.environment", Value: config.Map{
					{Key: "A", Value: config.Plain("x")},
					{Key: "B", Value: config.Bare("2")},
				}},
			},
		},
		{
			name: "Nested scalars keep their type",
			hash: Hash{
				{Key: "worker.ports", Value: []any{6700, false, nil}},
			},
			want: []config.Entry{
				{Key: "worker.ports", Value: config.List{
					config.Bare("6700"),
					config.Bare("false"),
					config.Bare("null"),
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overrides(tt.hash)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Overrides() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToHash_KeepsOrder(t *testing.T) {
	h := Hash{{Key: "z", Value: 1}, {Key: "a", Value: 2}}
	got, err := ToHash(ConfigMap, h)
	if err != nil {
		t.Fatalf("ToHash() error = %v", err)
	}
	if diff := cmp.Diff(h, got); diff != "" {
		t.Errorf("ToHash() mismatch (-want +got):\n%s", diff)
	}
}
