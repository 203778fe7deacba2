package api

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Defaults applied by NewConfig.
const (
	DefaultTimeout   = 10 * time.Second
	DefaultNetworkID = 1
)

// URL prefixes of the two API generations.
const (
	PrefixV3 = "v3"
	PrefixV4 = "v4"
)

// ErrMissingInternalHost is returned when an internal request is sent without
// an internal host configured.
var ErrMissingInternalHost = errors.New("internal host is not configured")

// Config is shared by every sub-client of one top-level client. It is never
// modified after construction.
type Config struct {
	Host         string
	InternalHost string
	Timeout      time.Duration
	NetworkID    int
	Logger       zerolog.Logger
	// RateLimit of zero disables client-side rate limiting.
	RateLimit rate.Limit
	Burst     int
}

// NewConfig returns a Config with defaults applied and trailing slashes
// trimmed from the hosts.
func NewConfig(host string) *Config {
	return &Config{
		Host:      strings.TrimRight(host, "/"),
		Timeout:   DefaultTimeout,
		NetworkID: DefaultNetworkID,
		Logger:    zerolog.Nop(),
	}
}

// NewLimiter returns a limiter for one sub-client, or nil when rate limiting
// is disabled.
func (c *Config) NewLimiter() *rate.Limiter {
	if c.RateLimit <= 0 {
		return nil
	}
	burst := c.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(c.RateLimit, burst)
}
