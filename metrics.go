package nblist

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see package metric for a ready-made collector).
type MetricsCollector interface {
	// RecordBuild is called after each Build, and once per frame in BuildBatch.
	// points is the input size, pairs the number of recorded neighbor entries
	// (0 on failure), err is nil if successful.
	RecordBuild(points, pairs int, duration time.Duration, err error)

	// RecordBatch is called after each BuildBatch.
	RecordBatch(frames, failed int, duration time.Duration)

	// RecordSnapshot is called after each Save or Load. op is "save" or "load".
	RecordSnapshot(op string, bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordBatch(int, int, time.Duration)                {}
func (NoopMetricsCollector) RecordSnapshot(string, int64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildPoints     atomic.Int64
	BuildPairs      atomic.Int64
	BuildTotalNanos atomic.Int64
	BatchCount      atomic.Int64
	BatchFrames     atomic.Int64
	BatchFailed     atomic.Int64
	SnapshotCount   atomic.Int64
	SnapshotErrors  atomic.Int64
	SnapshotBytes   atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(points, pairs int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildPoints.Add(int64(points))
	b.BuildPairs.Add(int64(pairs))
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(frames, failed int, duration time.Duration) {
	b.BatchCount.Add(1)
	b.BatchFrames.Add(int64(frames))
	b.BatchFailed.Add(int64(failed))
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(op string, bytes int64, duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	b.SnapshotBytes.Add(bytes)
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:     b.BuildCount.Load(),
		BuildErrors:    b.BuildErrors.Load(),
		BuildPoints:    b.BuildPoints.Load(),
		BuildPairs:     b.BuildPairs.Load(),
		BuildAvgNanos:  b.getAvgBuildNanos(),
		BatchCount:     b.BatchCount.Load(),
		BatchFrames:    b.BatchFrames.Load(),
		BatchFailed:    b.BatchFailed.Load(),
		SnapshotCount:  b.SnapshotCount.Load(),
		SnapshotErrors: b.SnapshotErrors.Load(),
		SnapshotBytes:  b.SnapshotBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgBuildNanos() int64 {
	count := b.BuildCount.Load()
	if count == 0 {
		return 0
	}
	return b.BuildTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount     int64
	BuildErrors    int64
	BuildPoints    int64
	BuildPairs     int64
	BuildAvgNanos  int64
	BatchCount     int64
	BatchFrames    int64
	BatchFailed    int64
	SnapshotCount  int64
	SnapshotErrors int64
	SnapshotBytes  int64
}
