package metric

import (
	"time"

	"github.com/hupe1980/nblist"
	"github.com/prometheus/client_golang/prometheus"
)

var _ nblist.MetricsCollector = (*Collector)(nil)

// Collector implements nblist.MetricsCollector on top of Prometheus vectors.
type Collector struct {
	builds        *prometheus.CounterVec
	buildLatency  *prometheus.HistogramVec
	points        prometheus.Counter
	pairs         prometheus.Counter
	lastPairs     prometheus.Gauge
	frames        *prometheus.CounterVec
	batchLatency  prometheus.Histogram
	snapshots     *prometheus.CounterVec
	snapshotBytes *prometheus.CounterVec
	snapLatency   *prometheus.HistogramVec
}

// NewCollector creates the metric vectors under namespace and registers them
// with reg. A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Neighbor-list builds by outcome.",
		}, []string{"status"}),
		buildLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Latency of neighbor-list builds.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
		}, []string{"status"}),
		points: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_total",
			Help:      "Points processed by builds.",
		}),
		pairs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairs_total",
			Help:      "Neighbor entries recorded by successful builds.",
		}),
		lastPairs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_build_pairs",
			Help:      "Neighbor entries recorded by the most recent successful build.",
		}),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_frames_total",
			Help:      "Frames submitted to batch builds by outcome.",
		}, []string{"status"}),
		batchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Latency of batch builds.",
			Buckets:   prometheus.DefBuckets,
		}),
		snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_operations_total",
			Help:      "Snapshot saves and loads by outcome.",
		}, []string{"op", "status"}),
		snapshotBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_bytes_total",
			Help:      "Encoded snapshot bytes written or read.",
		}, []string{"op"}),
		snapLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_duration_seconds",
			Help:      "Latency of snapshot operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}

	for _, col := range []prometheus.Collector{
		c.builds, c.buildLatency, c.points, c.pairs, c.lastPairs,
		c.frames, c.batchLatency, c.snapshots, c.snapshotBytes, c.snapLatency,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordBuild implements nblist.MetricsCollector.
func (c *Collector) RecordBuild(points, pairs int, duration time.Duration, err error) {
	s := status(err)
	c.builds.WithLabelValues(s).Inc()
	c.buildLatency.WithLabelValues(s).Observe(duration.Seconds())
	c.points.Add(float64(points))
	if err == nil {
		c.pairs.Add(float64(pairs))
		c.lastPairs.Set(float64(pairs))
	}
}

// RecordBatch implements nblist.MetricsCollector.
func (c *Collector) RecordBatch(frames, failed int, duration time.Duration) {
	c.frames.WithLabelValues("ok").Add(float64(frames - failed))
	c.frames.WithLabelValues("error").Add(float64(failed))
	c.batchLatency.Observe(duration.Seconds())
}

// RecordSnapshot implements nblist.MetricsCollector.
func (c *Collector) RecordSnapshot(op string, bytes int64, duration time.Duration, err error) {
	c.snapshots.WithLabelValues(op, status(err)).Inc()
	c.snapshotBytes.WithLabelValues(op).Add(float64(bytes))
	c.snapLatency.WithLabelValues(op).Observe(duration.Seconds())
}
