package dydx

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradewire/dydx-go/signing"
)

const testStarkKey = "0x3b6b1e7e1c5e0b0c5b3d0b1e6d2c4b2e9f8a7d6c5b4a3928171605f4e3d2c1b0"

func newTestPrivate(t *testing.T, handler http.HandlerFunc, creds APIKeyCredentials, opts ...Option) *Private {
	t.Helper()
	opts = append([]Option{WithCredentials(creds)}, opts...)
	c := newTestClient(t, handler, opts...)
	priv, err := c.Private()
	require.NoError(t, err)
	return priv
}

func assertSigned(t *testing.T, req capturedRequest) {
	t.Helper()
	signer, err := signing.NewAPIKeySigner(testAPIKey, testSecret, testPassphrase)
	require.NoError(t, err)

	requestPath := req.path
	if req.query != "" {
		requestPath += "?" + req.query
	}
	ts := req.header.Get(signing.HeaderTimestamp)
	_, err = time.Parse(signing.TimestampFormat, ts)
	require.NoError(t, err)

	assert.Equal(t, testAPIKey, req.header.Get(signing.HeaderAPIKey))
	assert.Equal(t, testPassphrase, req.header.Get(signing.HeaderPassphrase))
	assert.Equal(t, signer.Signature(ts, req.method, requestPath, req.body), req.header.Get(signing.HeaderSignature))
}

func TestPrivate_SignedEndpoints(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		response  string
		call      func(p *Private) error
		wantPath  string
		wantQuery string
	}{
		{
			name:     "user",
			response: `{"user":{"publicId":"ABC","ethereumAddress":"` + testAddress + `","makerFeeRate":"0.0005"}}`,
			call:     func(p *Private) error { _, err := p.GetUser(ctx); return err },
			wantPath: "/v3/users",
		},
		{
			name:     "accounts",
			response: `{"accounts":[]}`,
			call:     func(p *Private) error { _, err := p.GetAccounts(ctx); return err },
			wantPath: "/v3/accounts",
		},
		{
			name:     "account",
			response: `{"account":{"id":"5faa6797-8fa4-51d7-b47e-c7827b765ee1"}}`,
			call:     func(p *Private) error { _, err := p.GetAccount(ctx); return err },
			wantPath: "/v3/accounts/5faa6797-8fa4-51d7-b47e-c7827b765ee1",
		},
		{
			name:     "positions",
			response: `{"positions":[]}`,
			call: func(p *Private) error {
				_, err := p.GetPositions(ctx, V3PositionsQuery{Market: "BTC-USD", Status: PositionStatusClosed, Limit: 3})
				return err
			},
			wantPath:  "/v3/positions",
			wantQuery: "market=BTC-USD&status=CLOSED&limit=3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &requestLog{}
			priv := newTestPrivate(t, log.handler(http.StatusOK, tt.response), testAPIKeyCredentials())

			require.NoError(t, tt.call(priv))

			req := log.last(t)
			assert.Equal(t, http.MethodGet, req.method)
			assert.Equal(t, tt.wantPath, req.path)
			assert.Equal(t, tt.wantQuery, req.query)
			assertSigned(t, req)
		})
	}
}

func TestPrivate_GetAccount_RequiresAddress(t *testing.T) {
	log := &requestLog{}
	creds := testAPIKeyCredentials()
	creds.EthereumAddress = ""
	priv := newTestPrivate(t, log.handler(http.StatusOK, `{}`), creds)

	_, err := priv.GetAccount(context.Background())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, log.count())
}

func TestPrivate_Unauthorized(t *testing.T) {
	log := &requestLog{}
	priv := newTestPrivate(t, log.handler(http.StatusUnauthorized, `{"errors":[{"msg":"Invalid signature"}]}`), testAPIKeyCredentials())

	_, err := priv.GetUser(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, ErrProtocol)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func v3OrderParams() V3OrderParams {
	return V3OrderParams{
		Market:      "BTC-USD",
		Side:        SideSell,
		Type:        OrderTypeLimit,
		Size:        decimal.RequireFromString("0.01"),
		Price:       decimal.NewFromInt(70000),
		LimitFee:    decimal.RequireFromString("0.0015"),
		TimeInForce: TimeInForceGTT,
		Expiration:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ClientID:    "987654",
	}
}

func TestPrivate_CreateOrder(t *testing.T) {
	creds := testAPIKeyCredentials()
	creds.StarkPrivateKey = testStarkKey
	creds.PositionID = "12345"

	var gotFunction string
	var gotArgs map[string]any
	signer := signing.SignerFunc(func(ctx context.Context, function string, args map[string]any) (string, error) {
		gotFunction = function
		gotArgs = args
		return "0xsignature", nil
	})

	log := &requestLog{}
	priv := newTestPrivate(t, log.handler(http.StatusCreated, `{"order":{"id":"ord-1","clientId":"987654","status":"PENDING"}}`),
		creds, WithSigner(signer), WithNetworkID(NetworkGoerli))

	resp, err := priv.CreateOrder(context.Background(), v3OrderParams())
	require.NoError(t, err)
	assert.Equal(t, "ord-1", resp.Order.ID)

	assert.Equal(t, signing.FunctionSignOrder, gotFunction)
	assert.Equal(t, map[string]any{
		"network_id":               NetworkGoerli,
		"market":                   "BTC-USD",
		"side":                     "SELL",
		"position_id":              "12345",
		"human_size":               "0.01",
		"human_price":              "70000",
		"limit_fee":                "0.0015",
		"client_id":                "987654",
		"expiration_epoch_seconds": int64(1717200000),
		"private_key":              testStarkKey,
	}, gotArgs)

	req := log.last(t)
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/v3/orders", req.path)
	assert.JSONEq(t, `{
		"market": "BTC-USD",
		"side": "SELL",
		"type": "LIMIT",
		"postOnly": false,
		"size": "0.01",
		"price": "70000",
		"limitFee": "0.0015",
		"timeInForce": "GTT",
		"expiration": "2024-06-01T00:00:00.000Z",
		"clientId": "987654",
		"signature": "0xsignature"
	}`, req.body)
	assertSigned(t, req)
}

func TestPrivate_CreateOrder_GeneratesClientID(t *testing.T) {
	creds := testAPIKeyCredentials()
	creds.StarkPrivateKey = testStarkKey
	creds.PositionID = "1"

	var clientID string
	signer := signing.SignerFunc(func(_ context.Context, _ string, args map[string]any) (string, error) {
		clientID, _ = args["client_id"].(string)
		return "sig", nil
	})

	log := &requestLog{}
	priv := newTestPrivate(t, log.handler(http.StatusOK, `{"order":{}}`), creds, WithSigner(signer))

	params := v3OrderParams()
	params.ClientID = ""
	_, err := priv.CreateOrder(context.Background(), params)
	require.NoError(t, err)

	assert.NotEmpty(t, clientID)
	assert.Contains(t, log.last(t).body, `"clientId":"`+clientID+`"`)
}

func TestPrivate_CreateOrder_Preconditions(t *testing.T) {
	ok := signing.SignerFunc(func(context.Context, string, map[string]any) (string, error) { return "sig", nil })

	t.Run("missing signer", func(t *testing.T) {
		creds := testAPIKeyCredentials()
		creds.StarkPrivateKey = testStarkKey
		creds.PositionID = "1"
		log := &requestLog{}
		priv := newTestPrivate(t, log.handler(http.StatusOK, `{}`), creds)

		_, err := priv.CreateOrder(context.Background(), v3OrderParams())
		assert.ErrorIs(t, err, ErrMissingSigner)
		assert.Zero(t, log.count())
	})

	t.Run("missing stark key", func(t *testing.T) {
		log := &requestLog{}
		priv := newTestPrivate(t, log.handler(http.StatusOK, `{}`), testAPIKeyCredentials(), WithSigner(ok))

		_, err := priv.CreateOrder(context.Background(), v3OrderParams())
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Zero(t, log.count())
	})

	t.Run("invalid params", func(t *testing.T) {
		creds := testAPIKeyCredentials()
		creds.StarkPrivateKey = testStarkKey
		creds.PositionID = "1"
		log := &requestLog{}
		priv := newTestPrivate(t, log.handler(http.StatusOK, `{}`), creds, WithSigner(ok))

		params := v3OrderParams()
		params.Expiration = time.Time{}
		_, err := priv.CreateOrder(context.Background(), params)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{"expiration is required"}, vErr.Errors)
		assert.Zero(t, log.count())
	})

	t.Run("signer failure", func(t *testing.T) {
		creds := testAPIKeyCredentials()
		creds.StarkPrivateKey = testStarkKey
		creds.PositionID = "1"
		signErr := errors.New("stark: bad key")
		failing := signing.SignerFunc(func(context.Context, string, map[string]any) (string, error) { return "", signErr })
		log := &requestLog{}
		priv := newTestPrivate(t, log.handler(http.StatusOK, `{}`), creds, WithSigner(failing))

		_, err := priv.CreateOrder(context.Background(), v3OrderParams())
		assert.ErrorIs(t, err, signErr)
		assert.Contains(t, err.Error(), OpCreateOrder)
		assert.Zero(t, log.count())
	})
}

func TestPrivate_CancelOrder(t *testing.T) {
	log := &requestLog{}
	priv := newTestPrivate(t, log.handler(http.StatusOK, `{"cancelOrder":{"id":"ord-1","status":"CANCELED"}}`),
		testAPIKeyCredentials(), WithPrivateBackoff(ExponentialBackoff(2, time.Millisecond, time.Millisecond, 3)))

	resp, err := priv.CancelOrder(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCanceled, resp.CancelOrder.Status)

	req := log.last(t)
	assert.Equal(t, http.MethodDelete, req.method)
	assert.Equal(t, "/v3/orders/ord-1", req.path)
	assertSigned(t, req)
}
