package monitoring

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Apply outcomes.
const (
	OutcomeChanged   = "changed"
	OutcomeUnchanged = "unchanged"
	OutcomeFailed    = "failed"
)

// RecordCompile records a compile's result and duration.
func RecordCompile(err error, duration time.Duration) {
	result := "success"
	if err != nil {
		result = "error"
	}
	compileTotal.WithLabelValues(result).Inc()
	compileDuration.Observe(duration.Seconds())
}

// SetConfigInfo sets the info gauge for a StormConfig. Old phase labels are
// removed via DeletePartialMatch.
func SetConfigInfo(name, namespace, phase string) {
	configInfo.DeletePartialMatch(prometheus.Labels{"name": name, "namespace": namespace})
	configInfo.WithLabelValues(name, namespace, phase).Set(1)
}

// SetCatalogResources sets the declared resource count for a StormConfig.
func SetCatalogResources(name, namespace string, count int) {
	catalogResources.WithLabelValues(name, namespace).Set(float64(count))
}

// SetRegistryFailures sets the consecutive registry failure gauge.
func SetRegistryFailures(name, namespace string, failures int32) {
	registryFailures.WithLabelValues(name, namespace).Set(float64(failures))
}

// DeleteConfig drops every series of a deleted StormConfig.
func DeleteConfig(name, namespace string) {
	labels := prometheus.Labels{"name": name, "namespace": namespace}
	configInfo.DeletePartialMatch(labels)
	catalogResources.DeletePartialMatch(labels)
	registryFailures.DeletePartialMatch(labels)
}

// RecordApply counts one processed host resource.
func RecordApply(kind, outcome string) {
	applyResourcesTotal.WithLabelValues(kind, outcome).Inc()
}

// WriteTextfile writes all collectors to path in the text exposition format
// read by node_exporter's textfile collector.
func WriteTextfile(path string) error {
	reg := prometheus.NewRegistry()
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("failed to register collector: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
