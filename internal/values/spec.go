package values

import (
	"fmt"

	stormv1alpha1 "github.com/stormops/k8s-storm-operator-go/api/v1alpha1"
	"github.com/stormops/k8s-storm-operator-go/internal/params"
)

// FromSpec converts the explicit parameters of a StormConfig spec into a
// parameter set. Unset fields are left out so Hiera data and defaults apply.
func FromSpec(spec stormv1alpha1.StormConfigSpec) (params.Raw, error) {
	raw := params.Raw{}
	p := spec.Parameters

	setString(raw, params.Config, p.Config)
	setString(raw, params.InstallDir, p.InstallDir)
	setString(raw, params.Logback, p.Logback)
	setString(raw, params.LogDir, p.LogDir)
	setString(raw, params.LocalDir, p.LocalDir)
	setString(raw, params.LocalHostname, p.LocalHostname)
	setString(raw, params.NimbusHost, p.NimbusHost)
	setString(raw, params.StormMessagingTransport, p.StormMessagingTransport)
	if p.ZookeeperServers != nil {
		raw[params.ZookeeperServers] = p.ZookeeperServers
	}
	if p.DrpcServers != nil {
		raw[params.DrpcServers] = p.DrpcServers
	}
	if p.SupervisorSlotsPorts != nil {
		raw[params.SupervisorSlotsPorts] = p.SupervisorSlotsPorts
	}

	if c := p.Childopts; c != nil {
		setString(raw, params.DrpcChildopts, c.Drpc)
		setString(raw, params.LogviewerChildopts, c.Logviewer)
		setString(raw, params.NimbusChildopts, c.Nimbus)
		setString(raw, params.UIChildopts, c.UI)
		setString(raw, params.SupervisorChildopts, c.Supervisor)
		setString(raw, params.WorkerChildopts, c.Worker)
	}

	if g := p.Graphite; g != nil {
		setBool(raw, params.GraphiteEnable, g.Enable)
		setString(raw, params.GraphiteConsumer, g.Consumer)
		setString(raw, params.GraphiteHostname, g.Hostname)
		setString(raw, params.GraphitePort, g.Port)
		setString(raw, params.GraphitePrefix, g.Prefix)
		setString(raw, params.GraphitePackageName, g.PackageName)
		setString(raw, params.GraphitePackageEnsure, g.PackageEnsure)
	}

	if u := p.User; u != nil {
		setBool(raw, params.UserManage, u.Manage)
		setString(raw, params.User, u.Name)
		setString(raw, params.Group, u.Group)
		setInt(raw, params.UID, u.UID)
		setInt(raw, params.GID, u.GID)
		setString(raw, params.UserDescription, u.Description)
		setString(raw, params.UserHome, u.Home)
		setString(raw, params.Shell, u.Shell)
		setBool(raw, params.UserManagehome, u.ManageHome)
	}

	if pkg := spec.Package; pkg != nil {
		setString(raw, params.PackageName, pkg.Name)
		setString(raw, params.PackageEnsure, pkg.Ensure)
	}

	if len(p.ConfigMap) > 0 {
		h := make(params.Hash, 0, len(p.ConfigMap))
		for i, o := range p.ConfigMap {
			// JSON is YAML, and the YAML decoder keeps object key order.
			v, err := ParseValue(string(o.Value.Raw))
			if err != nil {
				return nil, fmt.Errorf("configMap[%d] %q: %w", i, o.Key, err)
			}
			h = append(h, params.Field{Key: o.Key, Value: v})
		}
		raw[params.ConfigMap] = h
	}

	return raw, nil
}

func setString(raw params.Raw, name string, v *string) {
	if v != nil {
		raw[name] = *v
	}
}

func setBool(raw params.Raw, name string, v *bool) {
	if v != nil {
		raw[name] = *v
	}
}

func setInt(raw params.Raw, name string, v *int32) {
	if v != nil {
		raw[name] = int(*v)
	}
}
