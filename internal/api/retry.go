package api

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/tradewire/dydx-go/backoff"
)

// Notifier receives one call per scheduled retry. Implementations are called
// from concurrent retry sequences.
type Notifier interface {
	Notify(operation string, err error, delay time.Duration)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(operation string, err error, delay time.Duration)

// Notify calls f.
func (f NotifierFunc) Notify(operation string, err error, delay time.Duration) {
	f(operation, err, delay)
}

// LogNotifier writes one warning line per retry.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier returns a notifier that logs to logger.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// DefaultNotifier returns a notifier that logs to standard error.
func DefaultNotifier() *LogNotifier {
	return NewLogNotifier(zerolog.New(os.Stderr).With().Timestamp().Logger())
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(operation string, err error, delay time.Duration) {
	n.logger.Warn().
		Str("operation", operation).
		Err(err).
		Dur("delay", delay).
		Msgf("error fetching data from dYdX API::%s, retrying in %s", operation, delay)
}

// Executor runs logical calls under the policy resolved for their operation
// name.
type Executor struct {
	registry  backoff.Registry
	notifier  Notifier
	telemetry telemetry
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*executorConfig)

type executorConfig struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithTracerProvider sets the tracer provider. The global provider is used by
// default.
func WithTracerProvider(tp trace.TracerProvider) ExecutorOption {
	return func(c *executorConfig) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider. The global provider is used by
// default.
func WithMeterProvider(mp metric.MeterProvider) ExecutorOption {
	return func(c *executorConfig) {
		c.meterProvider = mp
	}
}

// NewExecutor returns an executor. A nil registry resolves every operation
// to backoff.DefaultPolicy and a nil notifier logs to standard error.
func NewExecutor(registry backoff.Registry, notifier Notifier, opts ...ExecutorOption) *Executor {
	if registry == nil {
		registry = backoff.DefaultFallback()
	}
	if notifier == nil {
		notifier = DefaultNotifier()
	}

	cfg := executorConfig{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Executor{
		registry:  registry,
		notifier:  notifier,
		telemetry: newTelemetry(cfg.tracerProvider, cfg.meterProvider),
	}
}

// Registry returns the registry policies are resolved from.
func (e *Executor) Registry() backoff.Registry {
	return e.registry
}

// Run calls attempt until it succeeds or the policy for operation allows no
// more retries. Every error is retried the same way regardless of its kind.
// On exhaustion the last error is returned unchanged. If ctx is done after a
// failed attempt or during a wait, Run returns ctx.Err() joined with the last
// error.
func (e *Executor) Run(ctx context.Context, operation string, attempt func(ctx context.Context) error) error {
	policy := e.registry.Resolve(operation)

	ctx, span := e.telemetry.tracer.Start(ctx, spanPrefix+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String(attrOperation, operation)),
	)
	defer span.End()

	for n := 0; ; n++ {
		err := attempt(ctx)
		e.telemetry.recordAttempt(ctx, operation, err)
		if err == nil {
			span.SetAttributes(attribute.Int(attrAttempts, n+1))
			return nil
		}

		span.AddEvent("attempt failed", trace.WithAttributes(
			attribute.Int(attrAttempt, n+1),
			attribute.String(attrErrorType, outcome(err)),
		))

		if n >= policy.MaxRetries {
			return failSpan(span, n+1, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return failSpan(span, n+1, errors.Join(ctxErr, err))
		}

		delay := policy.Delay(n)
		span.AddEvent("retry scheduled", trace.WithAttributes(
			attribute.Int64(attrDelay, delay.Milliseconds()),
		))
		e.notifier.Notify(operation, err, delay)

		if waitErr := wait(ctx, delay); waitErr != nil {
			return failSpan(span, n+1, errors.Join(waitErr, err))
		}
	}
}

func failSpan(span trace.Span, attempts int, err error) error {
	span.SetAttributes(attribute.Int(attrAttempts, attempts))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func wait(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Call sends req through c under the executor's policy for operation and
// decodes the payload into a fresh T on every attempt.
func Call[T any](ctx context.Context, e *Executor, c *Client, operation string, req Request) (*T, error) {
	var result *T
	err := e.Run(ctx, operation, func(ctx context.Context) error {
		var v T
		if err := c.Send(ctx, req, &v); err != nil {
			return err
		}
		result = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
