package api

import (
	"fmt"
)

// ErrorKind classifies a failed attempt.
type ErrorKind int

const (
	// KindTransport is a failure before any response was received.
	KindTransport ErrorKind = iota
	// KindProtocol is a response with a status other than 200 or 201.
	KindProtocol
	// KindDecode is a successful response whose body did not decode.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// RequestError is the failure outcome of a single attempt.
type RequestError struct {
	Kind ErrorKind
	// StatusCode is zero for transport failures.
	StatusCode int
	// Code is the decimal status code as text, e.g. "404".
	Code string
	// Message is the response body, or the read error text if the body
	// could not be read.
	Message string
	URL     string
	Err     error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindProtocol:
		if e.Message != "" {
			return fmt.Sprintf("HTTP %s: %s", e.Code, e.Message)
		}
		return fmt.Sprintf("HTTP %s", e.Code)
	case KindDecode:
		return fmt.Sprintf("decode response: %v", e.Err)
	default:
		return fmt.Sprintf("transport error: %v", e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *RequestError) Unwrap() error {
	return e.Err
}
