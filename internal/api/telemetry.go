package api

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/tradewire/dydx-go"

	spanPrefix = "dydx."

	metricAttempts = "dydx.client.attempts"

	attrOperation = "dydx.operation"
	attrAttempt   = "dydx.attempt"
	attrAttempts  = "dydx.attempts"
	attrOutcome   = "dydx.outcome"
	attrErrorType = "error.type"
	attrDelay     = "dydx.retry.delay_ms"

	outcomeSuccess = "success"
)

type telemetry struct {
	tracer   trace.Tracer
	attempts metric.Int64Counter
}

func newTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) telemetry {
	meter := mp.Meter(instrumentationName)
	attempts, err := meter.Int64Counter(
		metricAttempts,
		metric.WithDescription("Number of request attempts made by the dYdX client"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: Failed to initialize metric %s: %v\n", metricAttempts, err)
	}
	return telemetry{
		tracer:   tp.Tracer(instrumentationName),
		attempts: attempts,
	}
}

func (t telemetry) recordAttempt(ctx context.Context, operation string, err error) {
	if t.attempts == nil {
		return
	}
	t.attempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrOutcome, outcome(err)),
	))
}

// outcome labels an attempt result with the error kind, or "success".
func outcome(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind.String()
	}
	return "other"
}
