package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-logr/logr"
	"github.com/go-playground/validator/v10"

	"github.com/stormops/k8s-storm-operator-go/internal/compiler"
	"github.com/stormops/k8s-storm-operator-go/internal/defaults"
	"github.com/stormops/k8s-storm-operator-go/internal/monitoring"
	"github.com/stormops/k8s-storm-operator-go/internal/params"
	"github.com/stormops/k8s-storm-operator-go/internal/values"
)

// Options holds the settings shared by all commands. Environment variables
// provide the defaults; flags override them.
type Options struct {
	DataFiles       []string `env:"STORMCTL_DATA" envSeparator:","`
	Set             []string
	OSFamily        string `env:"STORMCTL_OSFAMILY" envDefault:"RedHat" validate:"required"`
	OperatingSystem string `env:"STORMCTL_OPERATINGSYSTEM" envDefault:"CentOS"`
	LogLevel        string `env:"STORMCTL_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Root            string `env:"STORMCTL_ROOT" envDefault:"/" validate:"required"`
}

// LoadOptions reads option defaults from the environment.
func LoadOptions() (*Options, error) {
	opts := &Options{}
	if err := env.Parse(opts); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return opts, nil
}

// Validate checks the option values.
func (o *Options) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// Facts returns the host facts to compile for.
func (o *Options) Facts() defaults.Facts {
	return defaults.Facts{OSFamily: o.OSFamily, OperatingSystem: o.OperatingSystem}
}

// Params loads the data files in order and applies --set on top.
func (o *Options) Params(ctx context.Context) (params.Raw, error) {
	files, err := values.LoadFiles(ctx, o.DataFiles)
	if err != nil {
		return nil, err
	}
	set, err := values.ParseSetFlags(o.Set)
	if err != nil {
		return nil, err
	}
	return values.Merge(files, set), nil
}

// compile runs the full pipeline for the options.
func compile(ctx context.Context, o *Options) (*compiler.Result, error) {
	log := logr.FromContextOrDiscard(ctx)

	raw, err := o.Params(ctx)
	if err != nil {
		return nil, err
	}
	log.V(1).Info("Loaded parameters", "files", len(o.DataFiles), "parameters", raw.Names())

	start := time.Now()
	result, err := compiler.Compile(ctx, raw, o.Facts())
	monitoring.RecordCompile(err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return result, nil
}
