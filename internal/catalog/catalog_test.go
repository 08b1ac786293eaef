package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stormops/k8s-storm-operator-go/internal/defaults"
	"github.com/stormops/k8s-storm-operator-go/internal/params"
)

var redhat = defaults.Facts{OSFamily: "RedHat", OperatingSystem: "Amazon"}

func build(t *testing.T, raw params.Raw) *Catalog {
	t.Helper()
	s, err := defaults.Resolve(raw, redhat)
	require.NoError(t, err)
	return Build(s, Documents{StormYAML: "storm.yaml body", ClusterXML: "cluster.xml body"})
}

func TestBuild_Defaults(t *testing.T) {
	c := build(t, params.Raw{})

	ordered, err := c.Order()
	require.NoError(t, err)
	names := make([]string, 0, len(ordered))
	for _, s := range ordered {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{StageUsers, StageInstall, StageConfig}, names)

	group, ok := c.Find(KindGroup, "storm")
	require.True(t, ok)
	assert.Equal(t, &Group{Ensure: EnsurePresent, GID: 53001}, group.Group)

	user, ok := c.Find(KindUser, "storm")
	require.True(t, ok)
	assert.Equal(t, &User{
		Ensure:     EnsurePresent,
		UID:        53001,
		GID:        "storm",
		Home:       "/home/storm",
		Shell:      "/bin/bash",
		Comment:    "Storm system account",
		ManageHome: true,
	}, user.User)

	pkg, ok := c.Find(KindPackage, "storm")
	require.True(t, ok)
	assert.Equal(t, EnsurePresent, pkg.Package.Ensure)
	_, ok = c.Find(KindPackage, "storm-graphite")
	assert.False(t, ok)

	wantFiles := map[string]File{
		"/app/storm": {
			Ensure: EnsureDirectory, Owner: "storm", Group: "storm", Mode: "0750",
			Recurse: true, RecurseLimit: 0,
		},
		"/var/log/storm": {
			Ensure: EnsureDirectory, Owner: "storm", Group: "storm", Mode: "0755",
		},
		"/opt/storm/logs": {
			Ensure: EnsureLink, Target: "/var/log/storm",
		},
		"/opt/storm/conf/storm.yaml": {
			Ensure: EnsureFile, Owner: "root", Group: "root", Mode: "0644", Content: "storm.yaml body",
		},
		"/opt/storm/logback/cluster.xml": {
			Ensure: EnsureFile, Owner: "root", Group: "root", Mode: "0644", Content: "cluster.xml body",
		},
	}
	for path, want := range wantFiles {
		r, ok := c.Find(KindFile, path)
		if !ok {
			t.Errorf("file %s not declared", path)
			continue
		}
		if diff := cmp.Diff(want, *r.File); diff != "" {
			t.Errorf("file %s mismatch (-want +got):\n%s", path, diff)
		}
	}

	assert.Equal(t, 8, c.Count())
}

func TestBuild_UserManageDisabled(t *testing.T) {
	c := build(t, params.Raw{params.UserManage: false})

	assert.Empty(t, c.Titles(KindGroup))
	assert.Empty(t, c.Titles(KindUser))

	users, ok := c.Stage(StageUsers)
	require.True(t, ok)
	assert.Empty(t, users.Resources)
}

func TestBuild_CustomUserReplacesDefaults(t *testing.T) {
	c := build(t, params.Raw{
		params.UserManage:      true,
		params.GID:             456,
		params.Group:           "stormgroup",
		params.UID:             123,
		params.User:            "stormuser",
		params.UserDescription: "Apache Storm user",
		params.UserHome:        "/home/stormuser",
	})

	assert.Equal(t, []string{"stormgroup"}, c.Titles(KindGroup))
	assert.Equal(t, []string{"stormuser"}, c.Titles(KindUser))

	user, ok := c.Find(KindUser, "stormuser")
	require.True(t, ok)
	assert.Equal(t, 123, user.User.UID)
	assert.Equal(t, "stormgroup", user.User.GID)
	assert.Equal(t, "Apache Storm user", user.User.Comment)

	group, ok := c.Find(KindGroup, "stormgroup")
	require.True(t, ok)
	assert.Equal(t, 456, group.Group.GID)
}

func TestBuild_CustomLocalDir(t *testing.T) {
	c := build(t, params.Raw{params.LocalDir: "/var/lib/storm"})

	_, ok := c.Find(KindFile, "/app/storm")
	assert.False(t, ok)

	dir, ok := c.Find(KindFile, "/var/lib/storm")
	require.True(t, ok)
	assert.Equal(t, "0750", dir.File.Mode)
	assert.True(t, dir.File.Recurse)
}

func TestBuild_GraphitePackage(t *testing.T) {
	c := build(t, params.Raw{
		params.GraphiteEnable:        true,
		params.GraphitePackageName:   "storm-graphite",
		params.GraphitePackageEnsure: "present",
	})

	install, ok := c.Stage(StageInstall)
	require.True(t, ok)
	assert.Equal(t, []string{"storm", "storm-graphite"}, []string{install.Resources[0].Title, install.Resources[1].Title})
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name    string
		stages  []Stage
		want    []string
		wantErr bool
	}{
		{
			name: "Declared out of order",
			stages: []Stage{
				{Name: "config", Requires: []string{"install"}},
				{Name: "install", Requires: []string{"users"}},
				{Name: "users"},
			},
			want: []string{"users", "install", "config"},
		},
		{
			name: "Independent stages keep declaration order",
			stages: []Stage{
				{Name: "b"},
				{Name: "a"},
			},
			want: []string{"b", "a"},
		},
		{
			name: "Cycle",
			stages: []Stage{
				{Name: "a", Requires: []string{"b"}},
				{Name: "b", Requires: []string{"a"}},
			},
			wantErr: true,
		},
		{
			name:    "Unknown requirement",
			stages:  []Stage{{Name: "a", Requires: []string{"missing"}}},
			wantErr: true,
		},
		{
			name:    "Duplicate stage",
			stages:  []Stage{{Name: "a"}, {Name: "a"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Catalog{Stages: tt.stages}
			got, err := c.Order()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, s := range got {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	c := build(t, params.Raw{params.GraphiteEnable: true})

	data, err := c.Marshal()
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)

	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshal_RejectsCycle(t *testing.T) {
	data := []byte(`
stages:
- name: a
  requires: [b]
  resources: []
- name: b
  requires: [a]
  resources: []
`)
	_, err := Unmarshal(data)
	assert.Error(t, err)
}

func TestOrder_RejectsDuplicateResources(t *testing.T) {
	tests := []struct {
		name   string
		raw    params.Raw
		wantID string
	}{
		{
			name:   "Log dir equal to local dir",
			raw:    params.Raw{params.LocalDir: "/srv/storm", params.LogDir: "/srv/storm"},
			wantID: "file[/srv/storm]",
		},
		{
			name:   "Paths equal after cleaning",
			raw:    params.Raw{params.LocalDir: "/srv/storm/", params.LogDir: "/srv/storm"},
			wantID: "file[/srv/storm]",
		},
		{
			name:   "Graphite package named like the main package",
			raw:    params.Raw{params.GraphiteEnable: true, params.GraphitePackageName: "storm"},
			wantID: "package[storm]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(t, tt.raw).Order()
			var dup *DuplicateResourceError
			require.ErrorAs(t, err, &dup)
			assert.Equal(t, tt.wantID, dup.ID)
			assert.Equal(t, "Duplicate declaration: "+tt.wantID+" is already declared", err.Error())
		})
	}
}

func TestUnmarshal_RejectsDuplicateResources(t *testing.T) {
	data := []byte(`
stages:
- name: config
  resources:
  - kind: package
    title: storm
    package: {ensure: present}
  - kind: package
    title: storm
    package: {ensure: latest}
`)
	_, err := Unmarshal(data)
	var dup *DuplicateResourceError
	assert.ErrorAs(t, err, &dup)
}

func TestResourceID(t *testing.T) {
	r := NewFile("/app/storm", File{Ensure: EnsureDirectory})
	assert.Equal(t, "file[/app/storm]", r.ID())
}
