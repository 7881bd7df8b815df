package gibbs

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with sampler-specific field helpers so log
// lines carry consistent field names across packages.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSweep adds the sweep index to the logger.
func (l *Logger) WithSweep(sweep int) *Logger {
	return &Logger{
		Logger: l.Logger.With("sweep", sweep),
	}
}

// WithCluster adds a cluster id to the logger.
func (l *Logger) WithCluster(id int) *Logger {
	return &Logger{
		Logger: l.Logger.With("cluster", id),
	}
}

// WithObservation adds an observation index to the logger.
func (l *Logger) WithObservation(i int) *Logger {
	return &Logger{
		Logger: l.Logger.With("observation", i),
	}
}
