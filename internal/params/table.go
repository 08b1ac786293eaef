package params

import "sort"

// Kind is the declared shape of a parameter.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	// KindScalar accepts a string or a number, kept as text.
	KindScalar
	KindStringList
	KindIntList
	KindHash
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindScalar:
		return "scalar"
	case KindStringList:
		return "list of strings"
	case KindIntList:
		return "list of integers"
	case KindHash:
		return "hash"
	default:
		return "unknown"
	}
}

// Parameter names.
const (
	Config                  = "config"
	ConfigMap               = "config_map"
	InstallDir              = "install_dir"
	Logback                 = "logback"
	DrpcChildopts           = "drpc_childopts"
	DrpcServers             = "drpc_servers"
	LogviewerChildopts      = "logviewer_childopts"
	NimbusChildopts         = "nimbus_childopts"
	NimbusHost              = "nimbus_host"
	UIChildopts             = "ui_childopts"
	SupervisorChildopts     = "supervisor_childopts"
	SupervisorSlotsPorts    = "supervisor_slots_ports"
	WorkerChildopts         = "worker_childopts"
	ZookeeperServers        = "zookeeper_servers"
	LocalDir                = "local_dir"
	LocalHostname           = "local_hostname"
	LogDir                  = "log_dir"
	StormMessagingTransport = "storm_messaging_transport"
	PackageName             = "package_name"
	PackageEnsure           = "package_ensure"
	GraphiteEnable          = "graphite_enable"
	GraphiteConsumer        = "graphite_consumer"
	GraphiteHostname        = "graphite_hostname"
	GraphitePort            = "graphite_port"
	GraphitePrefix          = "graphite_prefix"
	GraphitePackageName     = "graphite_package_name"
	GraphitePackageEnsure   = "graphite_package_ensure"
	UserManage              = "user_manage"
	User                    = "user"
	Group                   = "group"
	UID                     = "uid"
	GID                     = "gid"
	UserDescription         = "user_description"
	UserHome                = "user_home"
	Shell                   = "shell"
	UserManagehome          = "user_managehome"
)

var table = map[string]Kind{
	Config:                  KindString,
	ConfigMap:               KindHash,
	InstallDir:              KindString,
	Logback:                 KindString,
	DrpcChildopts:           KindString,
	DrpcServers:             KindStringList,
	LogviewerChildopts:      KindString,
	NimbusChildopts:         KindString,
	NimbusHost:              KindString,
	UIChildopts:             KindString,
	SupervisorChildopts:     KindString,
	SupervisorSlotsPorts:    KindIntList,
	WorkerChildopts:         KindString,
	ZookeeperServers:        KindStringList,
	LocalDir:                KindString,
	LocalHostname:           KindString,
	LogDir:                  KindString,
	StormMessagingTransport: KindString,
	PackageName:             KindString,
	PackageEnsure:           KindString,
	GraphiteEnable:          KindBool,
	GraphiteConsumer:        KindString,
	GraphiteHostname:        KindString,
	GraphitePort:            KindScalar,
	GraphitePrefix:          KindString,
	GraphitePackageName:     KindString,
	GraphitePackageEnsure:   KindString,
	UserManage:              KindBool,
	User:                    KindString,
	Group:                   KindString,
	UID:                     KindInt,
	GID:                     KindInt,
	UserDescription:         KindString,
	UserHome:                KindString,
	Shell:                   KindString,
	UserManagehome:          KindBool,
}

// KindOf returns the declared kind of a parameter.
func KindOf(name string) (Kind, bool) {
	k, ok := table[name]
	return k, ok
}

// Names returns every declared parameter name, sorted.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
