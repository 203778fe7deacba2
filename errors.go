package dydx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tradewire/dydx-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingHost is returned by New when no host is given.
	ErrMissingHost = errors.New("host is required")

	// ErrNotConfigured is returned when a sub-client was not built because
	// its credentials were not supplied.
	ErrNotConfigured = errors.New("sub-client not configured: credentials not supplied")

	// ErrMissingInternalHost is returned by order operations that need the
	// internal host when none was configured.
	ErrMissingInternalHost = errors.New("internal host is not configured")

	// ErrMissingSigner is returned when an operation needs a signature and no
	// signer was configured.
	ErrMissingSigner = errors.New("signer is not configured")

	// ErrTransport matches failures before any response was received.
	ErrTransport = errors.New("transport error")

	// ErrProtocol matches responses with a status other than 200 or 201.
	ErrProtocol = errors.New("protocol error")

	// ErrDecode matches successful responses whose body did not decode.
	ErrDecode = errors.New("decode error")

	// ErrUnauthorized matches 401 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound matches 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited matches 429 responses.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// DydxError is implemented by all SDK errors.
type DydxError interface {
	error
	DydxError() // marker method
}

// ErrorKind classifies a failed request.
type ErrorKind = api.ErrorKind

// Error kinds.
const (
	KindTransport = api.KindTransport
	KindProtocol  = api.KindProtocol
	KindDecode    = api.KindDecode
)

// APIError is the failure of a request to the dYdX API. For retried
// operations it describes the last attempt.
type APIError struct {
	Operation string
	Kind      ErrorKind
	// StatusCode is zero for transport failures.
	StatusCode int
	// Code is the decimal status code as text, e.g. "404".
	Code    string
	Message string
	URL     string
	Err     error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString("dydx")
	if e.Operation != "" {
		b.WriteString(" ")
		b.WriteString(e.Operation)
	}
	b.WriteString(": ")

	switch e.Kind {
	case KindProtocol:
		if e.Message != "" {
			fmt.Fprintf(&b, "HTTP %s: %s", e.Code, e.Message)
		} else {
			fmt.Fprintf(&b, "HTTP %s", e.Code)
		}
	case KindDecode:
		fmt.Fprintf(&b, "decode response: %v", e.Err)
	default:
		fmt.Fprintf(&b, "transport error: %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// DydxError implements the DydxError interface.
func (e *APIError) DydxError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrProtocol:
		return e.Kind == KindProtocol
	case ErrDecode:
		return e.Kind == KindDecode
	}
	if e.Kind != KindProtocol {
		return false
	}
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return target == ErrUnauthorized
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusTooManyRequests:
		return target == ErrRateLimited
	}
	return false
}

// ValidationError contains multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation failed: %s", e.Errors[0])
	}
	return fmt.Sprintf("validation failed: %v", e.Errors)
}

// DydxError implements the DydxError interface.
func (e *ValidationError) DydxError() {}

// wrapError converts internal request errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(operation string, err error) error {
	if err == nil {
		return nil
	}

	var reqErr *api.RequestError
	if !errors.As(err, &reqErr) {
		if errors.Is(err, api.ErrMissingInternalHost) {
			return ErrMissingInternalHost
		}
		return err
	}

	if errors.Is(reqErr.Err, api.ErrMissingInternalHost) {
		return ErrMissingInternalHost
	}

	cause := reqErr.Err
	if err != error(reqErr) {
		// Keep the whole chain, e.g. a context error joined by the executor.
		cause = err
	}

	return &APIError{
		Operation:  operation,
		Kind:       reqErr.Kind,
		StatusCode: reqErr.StatusCode,
		Code:       reqErr.Code,
		Message:    reqErr.Message,
		URL:        reqErr.URL,
		Err:        cause,
	}
}
