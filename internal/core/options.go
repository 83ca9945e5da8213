package core

import (
	"context"
	"time"
)

// Logger is the minimal structured logging interface consumed by the
// registry. It matches the log/slog method set so a *slog.Logger satisfies
// it directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger discards all log output. Used when no logger is configured.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// MetricsRecorder receives one observation per registry operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer starts spans around registry operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan ends a traced operation, recording its error if any.
type TraceSpan interface {
	End(err error)
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithLogger routes registry diagnostics to the supplied logger.
func WithLogger(logger Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetricsRecorder attaches an operation metrics recorder.
func WithMetricsRecorder(metrics MetricsRecorder) Option {
	return func(r *Registry) {
		r.metrics = metrics
	}
}

// WithTracer attaches an operation tracer.
func WithTracer(tracer Tracer) Option {
	return func(r *Registry) {
		r.tracer = tracer
	}
}

// WithTransformTable replaces the default transform table. The registry
// takes ownership; field payloads borrow it read-only.
func WithTransformTable(table *TransformTable) Option {
	return func(r *Registry) {
		if table != nil {
			r.transforms = table
		}
	}
}
