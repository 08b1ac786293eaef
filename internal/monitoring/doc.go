// Package monitoring provides Prometheus metrics for the Storm operator and
// stormctl. Collectors are registered against controller-runtime's registry
// on import, so the manager serves them on its metrics endpoint.
//
// stormctl has no endpoint; `stormctl apply --metrics-file` writes the same
// collectors in the node_exporter textfile format instead.
//
// Usage:
//
//	start := time.Now()
//	result, err := compiler.Compile(ctx, raw, facts)
//	monitoring.RecordCompile(err, time.Since(start))
//	monitoring.SetConfigInfo(sc.Name, sc.Namespace, sc.Status.Phase)
package monitoring
