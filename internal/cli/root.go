// Package cli implements stormctl, the command line front end of the Storm
// configuration compiler.
package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// NewRootCommand returns the stormctl command tree. opts carries the
// environment defaults and is filled in by the flags.
func NewRootCommand(opts *Options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stormctl",
		Short: "Compile and apply Apache Storm node configuration",
		Long: `stormctl compiles Storm parameters from Hiera data files and --set
flags into storm.yaml, the logback cluster.xml and a catalog of host
resources, and can apply that catalog to the local host.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			log, err := newLogger(opts.LogLevel)
			if err != nil {
				return err
			}
			cmd.SetContext(logr.NewContext(cmd.Context(), log))
			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringSliceVarP(&opts.DataFiles, "data", "d", opts.DataFiles,
		"Hiera data file (YAML or TOML); repeatable, later files win")
	flags.StringArrayVar(&opts.Set, "set", nil, "Set a parameter (name=value, value parsed as YAML); repeatable")
	flags.StringVar(&opts.OSFamily, "osfamily", opts.OSFamily, "osfamily fact of the target host")
	flags.StringVar(&opts.OperatingSystem, "operatingsystem", opts.OperatingSystem, "operatingsystem fact of the target host")

	rootCmd.AddCommand(newRenderCommand(opts))
	rootCmd.AddCommand(newCatalogCommand(opts))
	rootCmd.AddCommand(newApplyCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// newLogger builds a console zap logger at level, bridged to logr.
func newLogger(level string) (logr.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return logr.Discard(), fmt.Errorf("invalid log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.Sampling = nil
	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("failed to build logger: %w", err)
	}
	return zapr.NewLogger(zl), nil
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}
