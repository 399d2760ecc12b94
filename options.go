package nblist

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/nblist/codec"
	"github.com/hupe1980/nblist/internal/buffer"
	"github.com/hupe1980/nblist/internal/enumerate"
	"github.com/hupe1980/nblist/persistence"
	"github.com/hupe1980/nblist/resource"
)

// Policy selects how point pairs are enumerated.
type Policy = enumerate.Policy

const (
	// PolicyAuto picks PolicyHalf without periodic boundaries and PolicyFull
	// with them.
	PolicyAuto = enumerate.PolicyAuto
	// PolicyFull tests every ordered pair. Always correct, O(N²).
	PolicyFull = enumerate.PolicyFull
	// PolicyHalf tests every unordered pair once and records both directions.
	// O(N²/2); rejected when a periodic axis is active.
	PolicyHalf = enumerate.PolicyHalf
)

// BufferConfig tunes the fixed-increment growth of the neighbor buffer.
// Zero fields fall back to the defaults (4096 initial entries, growth by 4096
// entries when fewer than 256 remain free).
type BufferConfig = buffer.Config

type options struct {
	lengths          []float64
	origin           []float64
	policy           Policy
	skin             bool
	bufferConfig     BufferConfig
	rc               *resource.Controller
	workers          int
	metricsCollector MetricsCollector
	logger           *Logger
	compression      persistence.Compression
	codec            codec.Codec
}

// Option configures Build, BuildBatch, Save and Load.
type Option func(*options)

// WithPeriodicLengths enables periodic boundaries. lengths must have one
// entry per dimension; an entry of 0 leaves that axis non-periodic.
// Periodic boundaries are supported for up to three dimensions.
func WithPeriodicLengths(lengths []float64) Option {
	return func(o *options) {
		o.lengths = lengths
	}
}

// WithOrigin anchors the periodic cell. Defaults to the zero vector.
// Ignored without periodic lengths.
func WithOrigin(origin []float64) Option {
	return func(o *options) {
		o.origin = origin
	}
}

// WithPolicy selects the enumeration policy. Default: PolicyAuto.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithSkinPrefilter toggles the exact shortcuts that skip periodic-image
// tests which cannot succeed. Enabled by default; disabling it tests every
// image of every pair and yields identical neighbor lists.
func WithSkinPrefilter(enabled bool) Option {
	return func(o *options) {
		o.skin = enabled
	}
}

// WithBufferConfig tunes the neighbor buffer growth schedule.
func WithBufferConfig(cfg BufferConfig) Option {
	return func(o *options) {
		o.bufferConfig = cfg
	}
}

// WithResourceController accounts buffer memory, batch workers and snapshot
// IO against rc. Share one controller between calls to enforce global limits.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithMemoryLimit caps buffer memory at bytes. In BuildBatch the cap is shared
// by all frames in flight. Exceeding it fails with *ErrAllocation.
// Convenience wrapper for WithResourceController with a fresh controller.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.rc = resource.NewController(resource.Config{
			MemoryLimitBytes: bytes,
			MaxWorkers:       int64(runtime.GOMAXPROCS(0)),
		})
	}
}

// WithWorkers bounds the number of frames BuildBatch computes concurrently.
// Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := nblist.NewJSONLogger(slog.LevelDebug)
//	lists, err := nblist.Build(points, 2.5, nblist.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithCompression selects the block compression used by Save.
// Default: persistence.CompressionZSTD.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCodec configures the codec used for the snapshot manifest.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		policy:           PolicyAuto,
		skin:             true,
		bufferConfig:     buffer.DefaultConfig(),
		workers:          runtime.GOMAXPROCS(0),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		compression:      persistence.CompressionZSTD,
		codec:            codec.Default,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers <= 0 {
		o.workers = 1
	}
	return o
}
