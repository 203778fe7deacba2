package dydx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey     = "30cb6046-8f3a-5dc3-e6a9-3fd3c7c4d7d2"
	testSecret     = "1iDz27dyq4RspTkP-rfTcFN6ouxTgHmTT_sKJogU"
	testPassphrase = "aKHvDy5lnJ9QoFpSyWjI"
	testAddress    = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	testDydxAddr   = "dydx14zzueazeh0hj67cghhf9jypslcf9sh2n5k6art"
)

func testAPIKeyCredentials() APIKeyCredentials {
	return APIKeyCredentials{
		Key:             testAPIKey,
		Secret:          testSecret,
		Passphrase:      testPassphrase,
		EthereumAddress: testAddress,
	}
}

// newTestClient starts a server with handler and returns a client pointed at
// it. Retries are disabled unless opts override them.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base := []Option{
		WithPublicBackoff(NoRetryBackoff()),
		WithPrivateBackoff(NoRetryBackoff()),
		WithInternalHost(srv.URL + "/internal"),
	}
	c, err := New(srv.URL, append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNew_RequiresHost(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrMissingHost)

	_, err = New("   ")
	assert.ErrorIs(t, err, ErrMissingHost)
}

func TestNew_Defaults(t *testing.T) {
	c, err := New("https://indexer.example.com/")
	require.NoError(t, err)

	assert.Equal(t, "https://indexer.example.com", c.Host())
	assert.Equal(t, NetworkMainnet, c.NetworkID())
	assert.Equal(t, 10*time.Second, c.Timeout())
	assert.NotNil(t, c.Public())
}

func TestNew_Options(t *testing.T) {
	c, err := New("https://indexer.example.com",
		WithNetworkID(NetworkGoerli),
		WithTimeout(3*time.Second),
	)
	require.NoError(t, err)

	assert.Equal(t, NetworkGoerli, c.NetworkID())
	assert.Equal(t, 3*time.Second, c.Timeout())
}

func TestNew_ScenarioD_NoCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"iso":"2024-01-01T00:00:00.000Z","epoch":1704067200}`))
	})

	sub, err := c.Subaccount()
	assert.Nil(t, sub)
	assert.ErrorIs(t, err, ErrNotConfigured)

	priv, err := c.Private()
	assert.Nil(t, priv)
	assert.ErrorIs(t, err, ErrNotConfigured)

	resp, err := c.Public().GetTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", resp.ISO)
}

func TestNew_BuildsSubClientsForCredentials(t *testing.T) {
	tests := []struct {
		name        string
		creds       []Credentials
		wantSub     bool
		wantPrivate bool
	}{
		{"subaccount value", []Credentials{SubaccountCredentials{Address: testDydxAddr}}, true, false},
		{"subaccount pointer", []Credentials{&SubaccountCredentials{Address: testDydxAddr, SubaccountNumber: 1}}, true, false},
		{"api key value", []Credentials{testAPIKeyCredentials()}, false, true},
		{"both", []Credentials{testAPIKeyCredentials(), SubaccountCredentials{Address: testDydxAddr}}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New("https://indexer.example.com", WithCredentials(tt.creds...))
			require.NoError(t, err)

			_, err = c.Subaccount()
			assert.Equal(t, tt.wantSub, err == nil)
			_, err = c.Private()
			assert.Equal(t, tt.wantPrivate, err == nil)
		})
	}
}

func TestNew_ValidatesCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  string
	}{
		{"missing key", APIKeyCredentials{Secret: testSecret, Passphrase: testPassphrase}, "API key is required"},
		{"missing secret", APIKeyCredentials{Key: testAPIKey, Passphrase: testPassphrase}, "API secret is required"},
		{"missing passphrase", APIKeyCredentials{Key: testAPIKey, Secret: testSecret}, "API passphrase is required"},
		{"bad address", APIKeyCredentials{Key: testAPIKey, Secret: testSecret, Passphrase: testPassphrase, EthereumAddress: "0x1234"}, "ethereum address"},
		{"bad position", APIKeyCredentials{Key: testAPIKey, Secret: testSecret, Passphrase: testPassphrase, PositionID: "abc"}, "position id must be numeric"},
		{"stark without position", APIKeyCredentials{Key: testAPIKey, Secret: testSecret, Passphrase: testPassphrase, StarkPrivateKey: "0x1"}, "position id is required"},
		{"missing subaccount address", SubaccountCredentials{}, "subaccount address is required"},
		{"negative subaccount", SubaccountCredentials{Address: testDydxAddr, SubaccountNumber: -1}, "subaccount number"},
		{"subaccount too large", SubaccountCredentials{Address: testDydxAddr, SubaccountNumber: MaxSubaccountNumber + 1}, "subaccount number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("https://indexer.example.com", WithCredentials(tt.creds))
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Error(), tt.want)
		})
	}
}

func TestNew_ValidatesTimeout(t *testing.T) {
	_, err := New("https://indexer.example.com", WithTimeout(0))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"timeout must be positive"}, vErr.Errors)
}

func TestClient_PublicAndPrivateRegistriesAreSeparate(t *testing.T) {
	var publicNotes, privateNotes int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	},
		WithCredentials(SubaccountCredentials{Address: testDydxAddr}),
		WithPublicBackoff(ExponentialBackoff(2, time.Millisecond, time.Millisecond, 1)),
		WithPrivateBackoff(ExponentialBackoff(2, time.Millisecond, time.Millisecond, 2)),
		WithPublicNotifier(NotifierFunc(func(string, error, time.Duration) { publicNotes++ })),
		WithPrivateNotifier(NotifierFunc(func(string, error, time.Duration) { privateNotes++ })),
	)

	_, err := c.Public().GetHeight(context.Background())
	require.Error(t, err)

	sub, err := c.Subaccount()
	require.NoError(t, err)
	_, err = sub.GetAccount(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1, publicNotes)
	assert.Equal(t, 2, privateNotes)
}

func TestClient_ConcurrentCalls(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"height":"100","time":"2024-01-01T00:00:00.000Z"}`))
	})

	errs := make(chan error, 16)
	for range 16 {
		go func() {
			_, err := c.Public().GetHeight(context.Background())
			errs <- err
		}()
	}
	for range 16 {
		assert.NoError(t, <-errs)
	}
}
