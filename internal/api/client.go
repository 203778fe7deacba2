package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// RequestSigner adds authentication headers to an outgoing request. It is
// called after the URL and body are final. requestPath is the URL path
// including the query string, e.g. "/v3/accounts?limit=1".
type RequestSigner interface {
	SignRequest(req *http.Request, requestPath string, body []byte) error
}

// Client dispatches single attempts for one API surface. Each Client owns its
// own connection pool.
type Client struct {
	cfg        *Config
	prefix     string
	httpClient *http.Client
	limiter    *rate.Limiter
	signer     RequestSigner
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client built from the configured timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSigner sets the signer applied to every request.
func WithSigner(s RequestSigner) ClientOption {
	return func(c *Client) {
		c.signer = s
	}
}

// NewClient returns a Client for the surface identified by prefix. Unless
// WithHTTPClient is given, the Client gets its own transport and so its own
// connection pool.
func NewClient(cfg *Config, prefix string, opts ...ClientOption) *Client {
	c := &Client{
		cfg:     cfg,
		prefix:  prefix,
		limiter: cfg.NewLimiter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
	}
	return c
}

// Config returns the shared configuration.
func (c *Client) Config() *Config {
	return c.cfg
}

// Prefix returns the surface prefix, e.g. "v4".
func (c *Client) Prefix() string {
	return c.prefix
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// RequestPath returns the path and query the request is sent to, relative to
// its host.
func (c *Client) RequestPath(req Request) string {
	var path string
	if req.Internal {
		path = "/" + req.Path
	} else {
		path = "/" + c.prefix + "/" + req.Path
	}
	if q := req.Query.Encode(); q != "" {
		path += "?" + q
	}
	return path
}

// URL returns the absolute URL of the request.
func (c *Client) URL(req Request) (string, error) {
	host := c.cfg.Host
	if req.Internal {
		if c.cfg.InternalHost == "" {
			return "", ErrMissingInternalHost
		}
		host = strings.TrimRight(c.cfg.InternalHost, "/")
	}
	return host + c.RequestPath(req), nil
}

// Send performs a single attempt and decodes a 200 or 201 response into
// result. A nil result skips decoding. Failures are returned as
// *RequestError.
func (c *Client) Send(ctx context.Context, req Request, result any) error {
	resp, fullURL, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return classify(resp, fullURL, result)
}

// SendStatus performs a single attempt and returns the response status code
// without classifying it. Only transport failures are returned as errors.
func (c *Client) SendStatus(ctx context.Context, req Request) (int, error) {
	resp, _, err := c.do(ctx, req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

func (c *Client) do(ctx context.Context, req Request) (*http.Response, string, error) {
	fullURL, err := c.URL(req)
	if err != nil {
		return nil, "", &RequestError{Kind: KindTransport, Err: err}
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, fullURL, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fullURL, &RequestError{
				Kind: KindTransport,
				URL:  fullURL,
				Err:  fmt.Errorf("rate limiter: %w", err),
			}
		}
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method.String(), fullURL, bodyReader)
	if err != nil {
		return nil, fullURL, &RequestError{Kind: KindTransport, URL: fullURL, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.signer != nil {
		if err := c.signer.SignRequest(httpReq, c.RequestPath(req), body); err != nil {
			return nil, fullURL, fmt.Errorf("sign request: %w", err)
		}
	}

	logger := c.cfg.Logger
	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Debug().Err(err).Str("method", httpReq.Method).Str("url", fullURL).Msg("request failed")
		return nil, fullURL, &RequestError{Kind: KindTransport, URL: fullURL, Err: err}
	}
	logger.Debug().
		Str("method", httpReq.Method).
		Str("url", fullURL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")

	return resp, fullURL, nil
}

// encodeBody returns nil when v is nil or encodes to an empty object.
func encodeBody(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	switch string(data) {
	case "{}", "null":
		return nil, nil
	}
	return data, nil
}

func classify(resp *http.Response, fullURL string, result any) error {
	code := strconv.Itoa(resp.StatusCode)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		if result == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		// The whole body must be one JSON value; trailing bytes are a decode
		// failure.
		data, err := io.ReadAll(resp.Body)
		if err == nil {
			err = json.Unmarshal(data, result)
		}
		if err != nil {
			return &RequestError{
				Kind:       KindDecode,
				StatusCode: resp.StatusCode,
				Code:       code,
				URL:        fullURL,
				Err:        err,
			}
		}
		return nil
	}

	var message string
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		message = err.Error()
	} else {
		message = string(data)
	}

	return &RequestError{
		Kind:       KindProtocol,
		StatusCode: resp.StatusCode,
		Code:       code,
		Message:    message,
		URL:        fullURL,
	}
}
