package nblist

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with nblist-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithFrame adds a frame index field to the logger.
func (l *Logger) WithFrame(frame int) *Logger {
	return &Logger{
		Logger: l.Logger.With("frame", frame),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogBuild logs a completed or failed neighbor-list build.
func (l *Logger) LogBuild(ctx context.Context, s BuildStats, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"points", s.Points,
			"dimension", s.Dimension,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "build completed",
			"points", s.Points,
			"dimension", s.Dimension,
			"pairs", s.Pairs,
			"policy", s.Policy.String(),
			"image_offsets", s.ImageOffsets,
			"buffer_grows", s.BufferGrows,
			"duration", s.Duration,
		)
	}
}

// LogSmallCell warns that the cutoff reaches half of a periodic length, where
// several images of the same point may fall within the cutoff. Only the first
// passing image is counted.
func (l *Logger) LogSmallCell(ctx context.Context, cutoff float64, lengths []float64) {
	l.WarnContext(ctx, "cutoff reaches half of a periodic length",
		"cutoff", cutoff,
		"lengths", lengths,
	)
}

// LogBatch logs a batch build.
func (l *Logger) LogBatch(ctx context.Context, frames, failed int, duration time.Duration) {
	if failed > 0 {
		l.WarnContext(ctx, "batch build failed",
			"frames", frames,
			"failed", failed,
			"duration", duration,
		)
	} else {
		l.InfoContext(ctx, "batch build completed",
			"frames", frames,
			"duration", duration,
		)
	}
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(ctx context.Context, op, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"op", op,
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot completed",
			"op", op,
			"name", name,
		)
	}
}
