package dydx

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tradewire/dydx-go/backoff"
	"github.com/tradewire/dydx-go/internal/api"
)

// Notifier receives one call per scheduled retry with the operation name,
// the error of the failed attempt and the delay before the next one. It is
// called from concurrent retry sequences.
type Notifier = api.Notifier

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc = api.NotifierFunc

// NewLogNotifier returns a notifier that writes one warning per retry to
// logger.
func NewLogNotifier(logger zerolog.Logger) Notifier {
	return api.NewLogNotifier(logger)
}

// DefaultBackoff returns the registry used when none is configured: every
// operation gets backoff.DefaultPolicy.
func DefaultBackoff() backoff.Registry {
	return backoff.DefaultFallback()
}

// ExponentialBackoff returns a registry applying one exponential policy to
// every operation. maxRetries is the number of retries after the first
// attempt.
func ExponentialBackoff(factor float64, minDelay, maxDelay time.Duration, maxRetries int) backoff.Registry {
	return backoff.NewFallback(backoff.Exponential(factor, minDelay, maxDelay, maxRetries))
}

// NoRetryBackoff returns a registry that makes exactly one attempt per call.
func NoRetryBackoff() backoff.Registry {
	return backoff.NoRetry{}
}
