package dydx

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tradewire/dydx-go/internal/api"
	"github.com/tradewire/dydx-go/signing"
)

// Client is the entry point to the dYdX API. It always provides the public
// sub-client; the authenticated sub-clients exist only when their credentials
// were supplied to New.
type Client struct {
	cfg        *api.Config
	public     *Public
	subaccount *Subaccount
	private    *Private
}

// New creates a client for host, e.g. "https://indexer.dydx.trade".
//
// Credentials are validated here, so an authenticated sub-client is either
// fully usable or absent.
func New(host string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(host) == "" {
		return nil, ErrMissingHost
	}

	cfg := &clientConfig{
		networkID: defaultNetworkID,
		timeout:   defaultTimeout,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiKey, sub, errs := resolveCredentials(cfg.credentials)
	if cfg.timeout <= 0 {
		errs = append(errs, "timeout must be positive")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	apiCfg := api.NewConfig(host)
	apiCfg.InternalHost = strings.TrimRight(cfg.internalHost, "/")
	apiCfg.Timeout = cfg.timeout
	apiCfg.NetworkID = cfg.networkID
	apiCfg.Logger = cfg.logger
	apiCfg.RateLimit = cfg.rateLimit
	apiCfg.Burst = cfg.burst

	var execOpts []api.ExecutorOption
	if cfg.tracerProvider != nil {
		execOpts = append(execOpts, api.WithTracerProvider(cfg.tracerProvider))
	}
	if cfg.meterProvider != nil {
		execOpts = append(execOpts, api.WithMeterProvider(cfg.meterProvider))
	}

	clientOpts := func(extra ...api.ClientOption) []api.ClientOption {
		var opts []api.ClientOption
		if cfg.httpClient != nil {
			opts = append(opts, api.WithHTTPClient(cfg.httpClient))
		}
		return append(opts, extra...)
	}

	c := &Client{
		cfg: apiCfg,
		public: &Public{
			api:  api.NewClient(apiCfg, api.PrefixV4, clientOpts()...),
			exec: api.NewExecutor(cfg.publicBackoff, cfg.publicNotifier, execOpts...),
		},
	}

	if apiKey == nil && sub == nil {
		return c, nil
	}

	privateExec := api.NewExecutor(cfg.privateBackoff, cfg.privateNotifier, execOpts...)

	if sub != nil {
		c.subaccount = &Subaccount{
			api:   api.NewClient(apiCfg, api.PrefixV4, clientOpts()...),
			exec:  privateExec,
			creds: *sub,
		}
	}

	if apiKey != nil {
		requestSigner, err := signing.NewAPIKeySigner(apiKey.Key, apiKey.Secret, apiKey.Passphrase)
		if err != nil {
			return nil, &ValidationError{Errors: []string{err.Error()}}
		}
		c.private = &Private{
			api:    api.NewClient(apiCfg, api.PrefixV3, clientOpts(api.WithSigner(requestSigner))...),
			exec:   privateExec,
			creds:  *apiKey,
			signer: cfg.signer,
		}
	}

	return c, nil
}

func resolveCredentials(creds []Credentials) (*APIKeyCredentials, *SubaccountCredentials, []string) {
	var (
		apiKey *APIKeyCredentials
		sub    *SubaccountCredentials
		errs   []string
	)
	for _, cred := range creds {
		switch v := cred.(type) {
		case APIKeyCredentials:
			apiKey = &v
		case *APIKeyCredentials:
			if v != nil {
				c := *v
				apiKey = &c
			}
		case SubaccountCredentials:
			sub = &v
		case *SubaccountCredentials:
			if v != nil {
				c := *v
				sub = &c
			}
		}
	}
	if apiKey != nil {
		errs = append(errs, apiKey.validate()...)
	}
	if sub != nil {
		errs = append(errs, sub.validate()...)
	}
	return apiKey, sub, errs
}

// Public returns the unauthenticated sub-client.
func (c *Client) Public() *Public {
	return c.public
}

// Subaccount returns the v4 account sub-client, or ErrNotConfigured if no
// SubaccountCredentials were supplied.
func (c *Client) Subaccount() (*Subaccount, error) {
	if c.subaccount == nil {
		return nil, ErrNotConfigured
	}
	return c.subaccount, nil
}

// Private returns the v3 API key sub-client, or ErrNotConfigured if no
// APIKeyCredentials were supplied.
func (c *Client) Private() (*Private, error) {
	if c.private == nil {
		return nil, ErrNotConfigured
	}
	return c.private, nil
}

// Host returns the API host.
func (c *Client) Host() string {
	return c.cfg.Host
}

// NetworkID returns the configured network identifier.
func (c *Client) NetworkID() int {
	return c.cfg.NetworkID
}

// Timeout returns the per-attempt timeout.
func (c *Client) Timeout() time.Duration {
	return c.cfg.Timeout
}

// call runs a retried GET-style operation and converts its error.
func call[T any](ctx context.Context, exec *api.Executor, c *api.Client, operation string, req api.Request) (*T, error) {
	result, err := api.Call[T](ctx, exec, c, operation, req)
	if err != nil {
		return nil, wrapError(operation, err)
	}
	return result, nil
}

// send makes exactly one attempt. It is used for operations that must not
// be repeated, such as placing an order.
func send[T any](ctx context.Context, c *api.Client, operation string, req api.Request) (*T, error) {
	var result T
	if err := c.Send(ctx, req, &result); err != nil {
		return nil, wrapError(operation, err)
	}
	return &result, nil
}
