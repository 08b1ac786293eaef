package defaults

const (
	// ModuleName names the module in platform errors and file banners.
	ModuleName = "storm"

	// DefaultConfig is the path of the rendered storm.yaml.
	DefaultConfig = "/opt/storm/conf/storm.yaml"

	// DefaultInstallDir is where the Storm package is installed.
	DefaultInstallDir = "/opt/storm"

	// DefaultLogDir is the managed log directory.
	DefaultLogDir = "/var/log/storm"

	// DefaultLocalDir is the Storm data directory (storm.local.dir).
	DefaultLocalDir = "/app/storm"

	// DefaultNimbusHost is the master host name.
	DefaultNimbusHost = "nimbus1"

	// DefaultZookeeperServer is the single default ZooKeeper server.
	DefaultZookeeperServer = "zookeeper1"

	// DefaultMessagingTransport is the Netty transport class.
	DefaultMessagingTransport = "backtype.storm.messaging.netty.Context"

	// DefaultChildopts applies to drpc, nimbus, ui, supervisor and worker.
	DefaultChildopts = "-Xmx256m -Djava.net.preferIPv4Stack=true"

	// DefaultLogviewerChildopts applies to the logviewer daemon.
	DefaultLogviewerChildopts = "-Xmx128m -Djava.net.preferIPv4Stack=true"

	DefaultGraphiteConsumer      = "com.verisign.storm.metrics.GraphiteMetricsConsumer"
	DefaultGraphiteHostname      = "localhost"
	DefaultGraphitePort          = "2003"
	DefaultGraphitePrefix        = "storm"
	DefaultGraphitePackageName   = "storm-graphite"
	DefaultGraphitePackageEnsure = "present"
	DefaultUser                  = "storm"
	DefaultGroup                 = "storm"
	DefaultUID                   = 53001
	DefaultGID                   = 53001
	DefaultUserDescription       = "Storm system account"
	DefaultUserHome              = "/home/storm"
	DefaultShell                 = "/bin/bash"
	DefaultLocalDirMode          = "0750"
	DefaultLogDirMode            = "0755"
	DefaultManagedFileOwner      = "root"
	DefaultManagedFileGroup      = "root"
	DefaultManagedFileMode       = "0644"
	defaultLogbackRelativeDir    = "logback"
	defaultLogbackFileName       = "cluster.xml"
	defaultLogsLinkName          = "logs"
)

// DefaultSupervisorSlotsPorts are the worker slot ports per supervisor.
var DefaultSupervisorSlotsPorts = []int{6700, 6701}
