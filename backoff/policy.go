package backoff

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Default policy values.
const (
	DefaultFactor     = 2.0
	DefaultMinDelay   = time.Second
	DefaultMaxDelay   = 60 * time.Second
	DefaultMaxRetries = 3
)

// Policy configures attempt limits and delay growth for one retry sequence.
type Policy struct {
	// Factor is the multiplier applied to the delay after each failed attempt.
	Factor float64
	// MinDelay is the delay before the first retry.
	MinDelay time.Duration
	// MaxDelay caps every delay.
	MaxDelay time.Duration
	// MaxRetries is the number of retries after the first attempt.
	// Zero means exactly one attempt.
	MaxRetries int
	// Jitter is the randomization factor (0.0 to 1.0) applied to each delay.
	// The result is still clamped to [MinDelay, MaxDelay].
	Jitter float64
}

// DefaultPolicy returns the default exponential policy.
func DefaultPolicy() Policy {
	return Policy{
		Factor:     DefaultFactor,
		MinDelay:   DefaultMinDelay,
		MaxDelay:   DefaultMaxDelay,
		MaxRetries: DefaultMaxRetries,
	}
}

// Exponential returns a policy with the given parameters and no jitter.
func Exponential(factor float64, minDelay, maxDelay time.Duration, maxRetries int) Policy {
	return Policy{
		Factor:     factor,
		MinDelay:   minDelay,
		MaxDelay:   maxDelay,
		MaxRetries: maxRetries,
	}
}

// NoRetryPolicy returns a policy that makes exactly one attempt.
func NoRetryPolicy() Policy {
	p := DefaultPolicy()
	p.MaxRetries = 0
	return p
}

// Validate reports whether the policy parameters are usable.
func (p Policy) Validate() error {
	var errs []error
	if p.Factor < 1 {
		errs = append(errs, fmt.Errorf("factor %v must be >= 1", p.Factor))
	}
	if p.MinDelay < 0 {
		errs = append(errs, fmt.Errorf("min delay %v must not be negative", p.MinDelay))
	}
	if p.MaxDelay < p.MinDelay {
		errs = append(errs, fmt.Errorf("max delay %v is below min delay %v", p.MaxDelay, p.MinDelay))
	}
	if p.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("max retries %d must not be negative", p.MaxRetries))
	}
	if p.Jitter < 0 || p.Jitter > 1 {
		errs = append(errs, fmt.Errorf("jitter %v must be within [0, 1]", p.Jitter))
	}
	return errors.Join(errs...)
}

// Delay returns the wait before retry n, where n starts at 0 for the wait
// that follows the first failed attempt.
func (p Policy) Delay(n int) time.Duration {
	if n < 0 {
		n = 0
	}
	delay := float64(p.MinDelay) * math.Pow(p.Factor, float64(n))
	if math.IsInf(delay, 0) || math.IsNaN(delay) || delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}

	if p.Jitter > 0 {
		jitterAmount := delay * p.Jitter
		delay = delay - jitterAmount + (rand.Float64() * 2 * jitterAmount)
	}

	if delay < float64(p.MinDelay) {
		delay = float64(p.MinDelay)
	}
	if delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}
	return time.Duration(delay)
}

// Attempts returns the total number of attempts the policy allows.
func (p Policy) Attempts() int {
	if p.MaxRetries < 0 {
		return 1
	}
	return p.MaxRetries + 1
}
