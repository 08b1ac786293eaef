package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	compileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storm_operator_compile_total",
			Help: "Total number of Storm configuration compiles by result.",
		},
		[]string{"result"},
	)

	compileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storm_operator_compile_duration_seconds",
			Help:    "Latency of compiling a Storm configuration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	configInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storm_operator_config_info",
			Help: "Info-style metric for StormConfig phase tracking. Always 1.",
		},
		[]string{"name", "namespace", "phase"},
	)

	catalogResources = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storm_operator_catalog_resources",
			Help: "Number of host resources declared by a StormConfig.",
		},
		[]string{"name", "namespace"},
	)

	registryFailures = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storm_operator_registry_consecutive_failures",
			Help: "Consecutive package registry polling failures for a StormConfig.",
		},
		[]string{"name", "namespace"},
	)

	applyResourcesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storm_operator_apply_resources_total",
			Help: "Host resources processed by apply, by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
)

func init() {
	metrics.Registry.MustRegister(Collectors()...)
}

// Collectors returns all metric collectors.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		compileTotal,
		compileDuration,
		configInfo,
		catalogResources,
		registryFailures,
		applyResourcesTotal,
	}
}
