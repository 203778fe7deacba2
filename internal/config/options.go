package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	dydx "github.com/tradewire/dydx-go"
	"github.com/tradewire/dydx-go/backoff"
	"github.com/tradewire/dydx-go/signing"
)

// Logger returns a zerolog logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	if c.Log.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(level)
}

// ClientOptions converts the configuration into options for dydx.New.
// Registry files are read here.
func (c *Config) ClientOptions() ([]dydx.Option, error) {
	logger := c.Logger(os.Stderr)
	opts := []dydx.Option{
		dydx.WithTimeout(c.API.Timeout),
		dydx.WithNetworkID(c.API.NetworkID),
		dydx.WithLogger(logger),
		dydx.WithPublicNotifier(dydx.NewLogNotifier(logger)),
		dydx.WithPrivateNotifier(dydx.NewLogNotifier(logger)),
	}

	if c.API.InternalHost != "" {
		opts = append(opts, dydx.WithInternalHost(c.API.InternalHost))
	}

	if c.RateLimit.Limit > 0 {
		opts = append(opts, dydx.WithRateLimit(rate.Limit(c.RateLimit.Limit), c.RateLimit.Burst))
	}

	if c.Backoff.Public != "" {
		r, err := backoff.LoadFile(c.Backoff.Public)
		if err != nil {
			return nil, fmt.Errorf("public backoff: %w", err)
		}
		opts = append(opts, dydx.WithPublicBackoff(r))
	}

	if c.Backoff.Private != "" {
		r, err := backoff.LoadFile(c.Backoff.Private)
		if err != nil {
			return nil, fmt.Errorf("private backoff: %w", err)
		}
		opts = append(opts, dydx.WithPrivateBackoff(r))
	}

	if creds := c.credentials(); len(creds) > 0 {
		opts = append(opts, dydx.WithCredentials(creds...))
	}

	if c.Signer.Path != "" {
		opts = append(opts, dydx.WithSigner(signing.NewExecSigner(c.Signer.Path, c.Signer.Args...)))
	}

	return opts, nil
}

func (c *Config) credentials() []dydx.Credentials {
	var creds []dydx.Credentials
	if c.Credentials.Address != "" {
		creds = append(creds, dydx.SubaccountCredentials{
			Address:          c.Credentials.Address,
			SubaccountNumber: c.Credentials.Subaccount,
		})
	}
	if k := c.Credentials.APIKey; k.Key != "" {
		creds = append(creds, dydx.APIKeyCredentials{
			Key:             k.Key,
			Secret:          k.Secret,
			Passphrase:      k.Passphrase,
			EthereumAddress: k.EthereumAddress,
			StarkPrivateKey: k.StarkPrivateKey,
			PositionID:      k.PositionID,
		})
	}
	return creds
}
