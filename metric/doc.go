// Package metric exports nblist build, batch and snapshot metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc, err := metric.NewCollector(reg, "nblist")
//	lists, err := nblist.Build(points, cutoff, nblist.WithMetricsCollector(mc))
//
// Serve reg with promhttp.HandlerFor to expose the metrics.
package metric
