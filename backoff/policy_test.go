package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, 2.0, p.Factor)
	assert.Equal(t, time.Second, p.MinDelay)
	assert.Equal(t, 60*time.Second, p.MaxDelay)
	assert.Equal(t, 3, p.MaxRetries)
	assert.Zero(t, p.Jitter)
	assert.NoError(t, p.Validate())
}

func TestNoRetryPolicy(t *testing.T) {
	p := NoRetryPolicy()

	assert.Equal(t, 0, p.MaxRetries)
	assert.Equal(t, 1, p.Attempts())
}

func TestPolicy_Delay(t *testing.T) {
	p := Exponential(2, 10*time.Millisecond, time.Second, 10)

	tests := []struct {
		n        int
		expected time.Duration
	}{
		{0, 10 * time.Millisecond},
		{1, 20 * time.Millisecond},
		{2, 40 * time.Millisecond},
		{3, 80 * time.Millisecond},
		{6, 640 * time.Millisecond},
		{7, time.Second}, // 1280ms capped
		{50, time.Second},
		{5000, time.Second}, // overflows to +Inf before capping
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, p.Delay(tt.n), "Delay(%d)", tt.n)
	}
}

func TestPolicy_Delay_NegativeIndex(t *testing.T) {
	p := Exponential(2, 10*time.Millisecond, time.Second, 1)
	assert.Equal(t, 10*time.Millisecond, p.Delay(-3))
}

func TestPolicy_Delay_MonotonicAndBounded(t *testing.T) {
	policies := []Policy{
		DefaultPolicy(),
		Exponential(1.5, 200*time.Millisecond, 10*time.Second, 8),
		Exponential(1, 50*time.Millisecond, 50*time.Millisecond, 3),
		Exponential(3, time.Millisecond, 7*time.Millisecond, 3),
	}

	for _, p := range policies {
		prev := time.Duration(0)
		for n := 0; n < 40; n++ {
			d := p.Delay(n)
			require.GreaterOrEqual(t, d, p.MinDelay, "policy %+v n=%d", p, n)
			require.LessOrEqual(t, d, p.MaxDelay, "policy %+v n=%d", p, n)
			require.GreaterOrEqual(t, d, prev, "policy %+v n=%d", p, n)
			prev = d
		}
	}
}

func TestPolicy_Delay_JitterStaysInBounds(t *testing.T) {
	p := Policy{
		Factor:   2,
		MinDelay: 100 * time.Millisecond,
		MaxDelay: time.Second,
		Jitter:   0.5,
	}

	for i := 0; i < 200; i++ {
		for n := 0; n < 6; n++ {
			d := p.Delay(n)
			assert.GreaterOrEqual(t, d, p.MinDelay)
			assert.LessOrEqual(t, d, p.MaxDelay)
		}
	}
}

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		wantErr string
	}{
		{"valid", Exponential(2, time.Millisecond, time.Second, 2), ""},
		{"factor below one", Exponential(0.5, time.Millisecond, time.Second, 2), "factor"},
		{"negative min", Exponential(2, -time.Millisecond, time.Second, 2), "min delay"},
		{"max below min", Exponential(2, time.Second, time.Millisecond, 2), "max delay"},
		{"negative retries", Exponential(2, time.Millisecond, time.Second, -1), "max retries"},
		{"jitter too large", Policy{Factor: 2, MaxDelay: time.Second, Jitter: 1.5}, "jitter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPolicy_Attempts(t *testing.T) {
	assert.Equal(t, 4, Exponential(2, time.Millisecond, time.Second, 3).Attempts())
	assert.Equal(t, 1, Exponential(2, time.Millisecond, time.Second, -2).Attempts())
}

func BenchmarkPolicy_Delay(b *testing.B) {
	p := DefaultPolicy()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Delay(i % 8)
	}
}
