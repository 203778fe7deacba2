package dydx

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/tradewire/dydx-go/backoff"
	"github.com/tradewire/dydx-go/internal/api"
	"github.com/tradewire/dydx-go/signing"
)

const (
	defaultTimeout   = api.DefaultTimeout
	defaultNetworkID = api.DefaultNetworkID
)

// Network identifiers.
const (
	NetworkMainnet = 1
	NetworkRopsten = 3
	NetworkGoerli  = 5
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	networkID    int
	timeout      time.Duration
	internalHost string
	credentials  []Credentials
	httpClient   *http.Client
	logger       zerolog.Logger
	signer       signing.Signer

	publicNotifier  Notifier
	privateNotifier Notifier
	publicBackoff   backoff.Registry
	privateBackoff  backoff.Registry

	rateLimit rate.Limit
	burst     int

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option configures the client.
type Option func(*clientConfig)

// WithNetworkID sets the network identifier used in signatures.
// Default: 1 (mainnet)
func WithNetworkID(id int) Option {
	return func(c *clientConfig) {
		c.networkID = id
	}
}

// WithTimeout sets the timeout of each individual HTTP attempt.
// Default: 10 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithInternalHost sets the host of the internal order endpoints. Requests
// to it are not prefixed with an API version.
func WithInternalHost(host string) Option {
	return func(c *clientConfig) {
		c.internalHost = host
	}
}

// WithCredentials supplies the credentials that enable the authenticated
// sub-clients. When several credentials of the same kind are given, the last
// one is used.
func WithCredentials(creds ...Credentials) Option {
	return func(c *clientConfig) {
		c.credentials = append(c.credentials, creds...)
	}
}

// WithHTTPClient sets a custom HTTP client shared by all sub-clients.
// By default every sub-client owns its own client with the configured
// timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithLogger sets the logger used for request debug logs.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithSigner sets the external signer used for order signatures.
func WithSigner(signer signing.Signer) Option {
	return func(c *clientConfig) {
		c.signer = signer
	}
}

// WithPublicNotifier sets the retry notifier of the public sub-client.
// Default: a log line on standard error
func WithPublicNotifier(n Notifier) Option {
	return func(c *clientConfig) {
		c.publicNotifier = n
	}
}

// WithPrivateNotifier sets the retry notifier of the authenticated
// sub-clients.
// Default: a log line on standard error
func WithPrivateNotifier(n Notifier) Option {
	return func(c *clientConfig) {
		c.privateNotifier = n
	}
}

// WithPublicBackoff sets the backoff registry of the public sub-client.
// Default: DefaultBackoff()
func WithPublicBackoff(r backoff.Registry) Option {
	return func(c *clientConfig) {
		c.publicBackoff = r
	}
}

// WithPrivateBackoff sets the backoff registry of the authenticated
// sub-clients.
// Default: DefaultBackoff()
func WithPrivateBackoff(r backoff.Registry) Option {
	return func(c *clientConfig) {
		c.privateBackoff = r
	}
}

// WithRateLimit limits each sub-client to limit requests per second with the
// given burst. Every attempt, including retries, takes a token.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *clientConfig) {
		c.rateLimit = limit
		c.burst = burst
	}
}

// WithTracerProvider sets the tracer provider used for request spans.
// Default: the global provider
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *clientConfig) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider used for attempt counters.
// Default: the global provider
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *clientConfig) {
		c.meterProvider = mp
	}
}
