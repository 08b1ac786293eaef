// Package defaults resolves a validated parameter set into fully populated
// Storm settings, applying OS-family and generic defaults.
package defaults

import (
	"path"

	"github.com/stormops/k8s-storm-operator-go/internal/config"
	"github.com/stormops/k8s-storm-operator-go/internal/params"
)

// Settings is the resolved parameter set. Every field is populated.
type Settings struct {
	Facts Facts

	Config     string
	InstallDir string
	Logback    string
	LogDir     string
	LocalDir   string
	// LocalHostname is empty when storm.local.hostname should not be written.
	LocalHostname string

	NimbusHost           string
	ZookeeperServers     []string
	DrpcServers          []string
	SupervisorSlotsPorts []int
	MessagingTransport   string

	DrpcChildopts       string
	LogviewerChildopts  string
	NimbusChildopts     string
	UIChildopts         string
	SupervisorChildopts string
	WorkerChildopts     string

	Package  PackageSettings
	Graphite GraphiteSettings
	User     UserSettings

	// ConfigMap holds free-form storm.yaml overrides in caller order.
	ConfigMap params.Hash
}

// PackageSettings describes an installable package.
type PackageSettings struct {
	Name   string
	Ensure string
}

// GraphiteSettings controls the optional Graphite metrics consumer.
type GraphiteSettings struct {
	Enable   bool
	Consumer string
	Hostname string
	Port     string
	Prefix   string
	Package  PackageSettings
}

// UserSettings controls the managed system account.
type UserSettings struct {
	Manage      bool
	Name        string
	Group       string
	UID         int
	GID         int
	Description string
	Home        string
	Shell       string
	ManageHome  bool
}

// LogsLink is the installation-relative link pointing at LogDir.
func (s *Settings) LogsLink() string {
	return path.Join(s.InstallDir, defaultLogsLinkName)
}

// BaseEntries returns the storm.yaml entries that are always written, in
// their fixed order.
func (s *Settings) BaseEntries() []config.Entry {
	entries := []config.Entry{
		{Key: "storm.zookeeper.servers", Value: config.Strings(s.ZookeeperServers)},
		{Key: "nimbus.host", Value: config.Quoted(s.NimbusHost)},
		{Key: "storm.local.dir", Value: config.Quoted(s.LocalDir)},
	}
	if s.LocalHostname != "" {
		entries = append(entries, config.Entry{Key: "storm.local.hostname", Value: config.Quoted(s.LocalHostname)})
	}
	entries = append(entries,
		config.Entry{Key: "storm.messaging.transport", Value: config.Quoted(s.MessagingTransport)},
		config.Entry{Key: "drpc.childopts", Value: config.Quoted(s.DrpcChildopts)},
		config.Entry{Key: "logviewer.childopts", Value: config.Quoted(s.LogviewerChildopts)},
		config.Entry{Key: "nimbus.childopts", Value: config.Quoted(s.NimbusChildopts)},
		config.Entry{Key: "ui.childopts", Value: config.Quoted(s.UIChildopts)},
		config.Entry{Key: "supervisor.childopts", Value: config.Quoted(s.SupervisorChildopts)},
		config.Entry{Key: "worker.childopts", Value: config.Quoted(s.WorkerChildopts)},
		config.Entry{Key: "supervisor.slots.ports", Value: config.Ints(s.SupervisorSlotsPorts)},
	)
	return entries
}

// ConditionalEntries returns the DRPC and Graphite groups. Each is included
// only when it applies; the two groups are independent.
func (s *Settings) ConditionalEntries() []config.Entry {
	var entries []config.Entry
	if len(s.DrpcServers) > 0 {
		entries = append(entries, config.Entry{Key: "drpc.servers", Value: config.Strings(s.DrpcServers)})
	}
	if s.Graphite.Enable {
		entries = append(entries,
			config.Entry{Key: "topology.metrics.consumer.register", Value: config.List{
				config.Pair{Key: "class", Value: config.Quoted(s.Graphite.Consumer)},
			}},
			config.Entry{Key: "metrics.graphite.host", Value: config.Quoted(s.Graphite.Hostname)},
			config.Entry{Key: "metrics.graphite.port", Value: config.Quoted(s.Graphite.Port)},
			config.Entry{Key: "metrics.graphite.prefix", Value: config.Quoted(s.Graphite.Prefix)},
		)
	}
	return entries
}

// OverrideEntries returns the config_map entries in caller order.
func (s *Settings) OverrideEntries() []config.Entry {
	return params.Overrides(s.ConfigMap)
}

// Entries merges base, conditional and override entries.
func (s *Settings) Entries() []config.Entry {
	base := append(s.BaseEntries(), s.ConditionalEntries()...)
	return config.Merge(base, s.OverrideEntries())
}
