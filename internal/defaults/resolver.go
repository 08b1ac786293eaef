package defaults

import (
	"fmt"
	"path"
	"slices"

	"github.com/stormops/k8s-storm-operator-go/internal/params"
)

// Resolve fills every unset parameter with its OS-family or generic default.
// raw is expected to have passed params.Validate; conversion errors are still
// reported rather than ignored.
func Resolve(raw params.Raw, facts Facts) (*Settings, error) {
	if err := CheckPlatform(facts); err != nil {
		return nil, err
	}
	family := osFamilies[facts.OSFamily]

	l := &lookup{raw: raw}
	s := &Settings{
		Facts:         facts,
		Config:        l.str(params.Config, DefaultConfig),
		InstallDir:    l.str(params.InstallDir, DefaultInstallDir),
		LogDir:        l.str(params.LogDir, DefaultLogDir),
		LocalDir:      l.str(params.LocalDir, DefaultLocalDir),
		LocalHostname: l.str(params.LocalHostname, ""),

		NimbusHost:           l.str(params.NimbusHost, DefaultNimbusHost),
		ZookeeperServers:     l.strs(params.ZookeeperServers, []string{DefaultZookeeperServer}),
		DrpcServers:          l.strs(params.DrpcServers, nil),
		SupervisorSlotsPorts: l.ints(params.SupervisorSlotsPorts, DefaultSupervisorSlotsPorts),
		MessagingTransport:   l.str(params.StormMessagingTransport, DefaultMessagingTransport),

		DrpcChildopts:       l.str(params.DrpcChildopts, DefaultChildopts),
		LogviewerChildopts:  l.str(params.LogviewerChildopts, DefaultLogviewerChildopts),
		NimbusChildopts:     l.str(params.NimbusChildopts, DefaultChildopts),
		UIChildopts:         l.str(params.UIChildopts, DefaultChildopts),
		SupervisorChildopts: l.str(params.SupervisorChildopts, DefaultChildopts),
		WorkerChildopts:     l.str(params.WorkerChildopts, DefaultChildopts),

		Package: PackageSettings{
			Name:   l.str(params.PackageName, family.PackageName),
			Ensure: l.str(params.PackageEnsure, family.PackageEnsure),
		},
		Graphite: GraphiteSettings{
			Enable:   l.boolean(params.GraphiteEnable, false),
			Consumer: l.str(params.GraphiteConsumer, DefaultGraphiteConsumer),
			Hostname: l.str(params.GraphiteHostname, DefaultGraphiteHostname),
			Port:     l.scalar(params.GraphitePort, DefaultGraphitePort),
			Prefix:   l.str(params.GraphitePrefix, DefaultGraphitePrefix),
			Package: PackageSettings{
				Name:   l.str(params.GraphitePackageName, DefaultGraphitePackageName),
				Ensure: l.str(params.GraphitePackageEnsure, DefaultGraphitePackageEnsure),
			},
		},
		User: UserSettings{
			Manage:      l.boolean(params.UserManage, true),
			Name:        l.str(params.User, DefaultUser),
			Group:       l.str(params.Group, DefaultGroup),
			UID:         l.integer(params.UID, DefaultUID),
			GID:         l.integer(params.GID, DefaultGID),
			Description: l.str(params.UserDescription, DefaultUserDescription),
			Home:        l.str(params.UserHome, DefaultUserHome),
			Shell:       l.str(params.Shell, DefaultShell),
			ManageHome:  l.boolean(params.UserManagehome, true),
		},
		ConfigMap: l.hash(params.ConfigMap),
	}
	s.Logback = l.str(params.Logback, path.Join(s.InstallDir, defaultLogbackRelativeDir, defaultLogbackFileName))

	if l.err != nil {
		return nil, fmt.Errorf("failed to resolve parameters: %w", l.err)
	}
	return s, nil
}

// lookup reads typed parameters and keeps the first conversion error.
type lookup struct {
	raw params.Raw
	err error
}

func (l *lookup) use(name string) bool {
	return l.err == nil && l.raw.Set(name)
}

func (l *lookup) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}

func (l *lookup) str(name, def string) string {
	if !l.use(name) {
		return def
	}
	v, err := params.ToString(name, l.raw[name])
	if err != nil {
		l.fail(err)
		return def
	}
	return v
}

func (l *lookup) scalar(name, def string) string {
	if !l.use(name) {
		return def
	}
	v, err := params.ToScalar(name, l.raw[name])
	if err != nil {
		l.fail(err)
		return def
	}
	return v
}

func (l *lookup) boolean(name string, def bool) bool {
	if !l.use(name) {
		return def
	}
	v, err := params.ToBool(name, l.raw[name])
	if err != nil {
		l.fail(err)
		return def
	}
	return v
}

func (l *lookup) integer(name string, def int) int {
	if !l.use(name) {
		return def
	}
	v, err := params.ToInt(name, l.raw[name])
	if err != nil {
		l.fail(err)
		return def
	}
	return v
}

func (l *lookup) strs(name string, def []string) []string {
	if !l.use(name) {
		return slices.Clone(def)
	}
	v, err := params.ToStrings(name, l.raw[name])
	if err != nil {
		l.fail(err)
		return slices.Clone(def)
	}
	return v
}

func (l *lookup) ints(name string, def []int) []int {
	if !l.use(name) {
		return slices.Clone(def)
	}
	v, err := params.ToInts(name, l.raw[name])
	if err != nil {
		l.fail(err)
		return slices.Clone(def)
	}
	return v
}

func (l *lookup) hash(name string) params.Hash {
	if !l.use(name) {
		return params.Hash{}
	}
	v, err := params.ToHash(name, l.raw[name])
	if err != nil {
		l.fail(err)
		return params.Hash{}
	}
	return v
}
