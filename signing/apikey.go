package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Headers set by APIKeySigner.
const (
	HeaderSignature  = "DYDX-SIGNATURE"
	HeaderAPIKey     = "DYDX-API-KEY"
	HeaderTimestamp  = "DYDX-TIMESTAMP"
	HeaderPassphrase = "DYDX-PASSPHRASE"
)

// TimestampFormat is the ISO 8601 layout of the signed timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// ErrInvalidSecret is returned when the API secret is not URL-safe base64.
var ErrInvalidSecret = errors.New("API secret is not valid base64")

// APIKeySigner authenticates v3 private requests with an HMAC-SHA256 of
// timestamp + method + request path + body, keyed by the decoded secret.
type APIKeySigner struct {
	key        string
	secret     []byte
	passphrase string
	now        func() time.Time
}

// NewAPIKeySigner decodes secret and returns a signer.
func NewAPIKeySigner(key, secret, passphrase string) (*APIKeySigner, error) {
	decoded, err := base64.URLEncoding.DecodeString(secret)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(secret)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
		}
	}
	return &APIKeySigner{
		key:        key,
		secret:     decoded,
		passphrase: passphrase,
		now:        time.Now,
	}, nil
}

// Signature returns the URL-safe base64 HMAC for the request parts.
func (s *APIKeySigner) Signature(timestamp, method, requestPath, body string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(timestamp + method + requestPath + body))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil))
}

// SignRequest sets the authentication headers on req.
func (s *APIKeySigner) SignRequest(req *http.Request, requestPath string, body []byte) error {
	timestamp := s.now().UTC().Format(TimestampFormat)

	req.Header.Set(HeaderSignature, s.Signature(timestamp, req.Method, requestPath, string(body)))
	req.Header.Set(HeaderAPIKey, s.key)
	req.Header.Set(HeaderTimestamp, timestamp)
	req.Header.Set(HeaderPassphrase, s.passphrase)
	return nil
}
