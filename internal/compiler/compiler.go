// Package compiler turns a raw parameter set and host facts into the rendered
// Storm documents and the resource catalog that places them.
package compiler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/stormops/k8s-storm-operator-go/internal/catalog"
	"github.com/stormops/k8s-storm-operator-go/internal/config"
	"github.com/stormops/k8s-storm-operator-go/internal/defaults"
	"github.com/stormops/k8s-storm-operator-go/internal/params"
	"github.com/stormops/k8s-storm-operator-go/internal/render"
)

// Result is the output of one compile. It is immutable once returned.
type Result struct {
	Settings   *defaults.Settings
	Entries    []config.Entry
	StormYAML  string
	ClusterXML string
	Catalog    *catalog.Catalog
}

// Checksum returns a stable digest of the rendered documents.
func (r *Result) Checksum() string {
	h := sha256.New()
	h.Write([]byte(r.StormYAML))
	h.Write([]byte{0})
	h.Write([]byte(r.ClusterXML))
	return hex.EncodeToString(h.Sum(nil))
}

// Compile runs the pipeline: platform check, validation, defaults, merge,
// render and catalog. Platform and validation errors are returned as is so
// callers can match them with errors.As.
func Compile(ctx context.Context, raw params.Raw, facts defaults.Facts) (*Result, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("osfamily", facts.OSFamily)

	if err := defaults.CheckPlatform(facts); err != nil {
		log.V(1).Info("Unsupported platform")
		return nil, err
	}

	if err := params.Validate(raw); err != nil {
		log.V(1).Info("Parameter validation failed", "error", err.Error())
		return nil, err
	}

	settings, err := defaults.Resolve(raw, facts)
	if err != nil {
		return nil, err
	}

	entries := settings.Entries()
	stormYAML := render.Config(entries)
	clusterXML, err := render.Logback(settings.LogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to render logback configuration: %w", err)
	}

	cat := catalog.Build(settings, catalog.Documents{
		StormYAML:  stormYAML,
		ClusterXML: clusterXML,
	})
	if _, err := cat.Order(); err != nil {
		return nil, fmt.Errorf("failed to order catalog: %w", err)
	}

	log.V(1).Info("Compiled storm configuration",
		"entries", len(entries),
		"resources", cat.Count(),
		"graphite", settings.Graphite.Enable,
		"userManage", settings.User.Manage)

	return &Result{
		Settings:   settings,
		Entries:    entries,
		StormYAML:  stormYAML,
		ClusterXML: clusterXML,
		Catalog:    cat,
	}, nil
}
