//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dydx "github.com/tradewire/dydx-go"
)

var (
	host       string
	address    string
	subaccount int
)

func TestMain(m *testing.M) {
	// Load .env file if it exists (won't error if missing)
	if err := godotenv.Load("../.env"); err != nil {
		os.Stderr.WriteString("Note: .env file not found at project root\n")
	}

	host = os.Getenv("DYDX_API_HOST")
	address = os.Getenv("DYDX_CREDENTIALS_ADDRESS")

	if host == "" {
		os.Stderr.WriteString("Skipping integration tests: DYDX_API_HOST not set\n")
		os.Exit(0)
	}

	os.Stderr.WriteString("Running integration tests...\n")
	os.Stderr.WriteString("API host: " + host + "\n")

	os.Exit(m.Run())
}

func newClient(t *testing.T, opts ...dydx.Option) *dydx.Client {
	t.Helper()

	base := []dydx.Option{
		dydx.WithTimeout(30 * time.Second),
		dydx.WithPublicNotifier(dydx.NewLogNotifier(zerolog.New(zerolog.NewTestWriter(t)))),
		dydx.WithPrivateNotifier(dydx.NewLogNotifier(zerolog.New(zerolog.NewTestWriter(t)))),
		dydx.WithPublicBackoff(dydx.ExponentialBackoff(2, 500*time.Millisecond, 5*time.Second, 2)),
	}
	if address != "" {
		base = append(base, dydx.WithCredentials(dydx.SubaccountCredentials{
			Address:          address,
			SubaccountNumber: subaccount,
		}))
	}

	client, err := dydx.New(host, append(base, opts...)...)
	require.NoError(t, err)
	return client
}

func TestIntegration_TimeAndHeight(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	tm, err := client.Public().GetTime(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, tm.ISO)

	height, err := client.Public().GetHeight(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, height.Height)
}

func TestIntegration_MarketsAndOrderbook(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	markets, err := client.Public().GetMarkets(ctx, "BTC-USD")
	require.NoError(t, err)
	btc, ok := markets.Markets["BTC-USD"]
	require.True(t, ok, "BTC-USD market missing")
	assert.True(t, btc.OraclePrice.IsPositive())

	book, err := client.Public().GetOrderbook(ctx, "BTC-USD")
	require.NoError(t, err)
	if len(book.Bids) > 0 && len(book.Asks) > 0 {
		assert.True(t, book.Bids[0].Price.LessThan(book.Asks[0].Price))
	}
}

func TestIntegration_Candles(t *testing.T) {
	client := newClient(t)

	candles, err := client.Public().GetCandles(context.Background(), "ETH-USD", dydx.CandlesQuery{
		Resolution: dydx.Resolution1Hour,
		Limit:      5,
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(candles.Candles), 5)
}

func TestIntegration_UnknownMarketIsProtocolError(t *testing.T) {
	client := newClient(t, dydx.WithPublicBackoff(dydx.NoRetryBackoff()))

	_, err := client.Public().GetOrderbook(context.Background(), "NOT-A-MARKET")
	require.Error(t, err)

	var apiErr *dydx.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, dydx.KindProtocol, apiErr.Kind)
}

func TestIntegration_Subaccount(t *testing.T) {
	if address == "" {
		t.Skip("DYDX_CREDENTIALS_ADDRESS not set")
	}
	client := newClient(t)
	sub, err := client.Subaccount()
	require.NoError(t, err)
	ctx := context.Background()

	account, err := sub.GetAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, address, account.Subaccount.Address)

	_, err = sub.GetOrders(ctx, dydx.OrdersQuery{Limit: 10})
	require.NoError(t, err)

	_, err = sub.GetFills(ctx, dydx.FillsQuery{Limit: 10})
	require.NoError(t, err)
}

func TestIntegration_NoCredentials(t *testing.T) {
	client, err := dydx.New(host)
	require.NoError(t, err)

	_, err = client.Subaccount()
	assert.ErrorIs(t, err, dydx.ErrNotConfigured)

	_, err = client.Public().GetTime(context.Background())
	assert.NoError(t, err)
}
