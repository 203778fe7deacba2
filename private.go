package dydx

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradewire/dydx-go/internal/api"
	"github.com/tradewire/dydx-go/signing"
)

// Private is the v3 sub-client authenticated with an API key. Every request
// carries the DYDX-* signature headers.
type Private struct {
	api    *api.Client
	exec   *api.Executor
	creds  APIKeyCredentials
	signer signing.Signer
}

// GetUser returns the user owning the API key.
func (p *Private) GetUser(ctx context.Context) (*UserResponse, error) {
	return call[UserResponse](ctx, p.exec, p.api, OpGetUser, api.Request{Path: "users"})
}

// GetAccounts returns all accounts of the user.
func (p *Private) GetAccounts(ctx context.Context) (*AccountsResponse, error) {
	return call[AccountsResponse](ctx, p.exec, p.api, OpGetAccounts, api.Request{Path: "accounts"})
}

// GetAccount returns account 0 of the credentials' Ethereum address.
func (p *Private) GetAccount(ctx context.Context) (*AccountResponse, error) {
	if p.creds.EthereumAddress == "" {
		return nil, &ValidationError{Errors: []string{"ethereum address is required"}}
	}
	id := AccountID(p.creds.EthereumAddress, 0)
	return call[AccountResponse](ctx, p.exec, p.api, OpGetAccount, api.Request{Path: "accounts/" + id})
}

// V3PositionsQuery filters v3 positions. Zero fields are omitted.
type V3PositionsQuery struct {
	Market            string
	Status            PositionStatus
	Limit             int
	CreatedBeforeOrAt time.Time
}

// GetPositions returns positions of the user.
func (p *Private) GetPositions(ctx context.Context, query V3PositionsQuery) (*V3PositionsResponse, error) {
	var q api.Params
	q.AddOptional("market", query.Market)
	q.AddOptional("status", string(query.Status))
	q.AddOptional("limit", intParam(query.Limit))
	q.AddOptional("createdBeforeOrAt", isoTime(query.CreatedBeforeOrAt))
	return call[V3PositionsResponse](ctx, p.exec, p.api, OpGetPositions, api.Request{Path: "positions", Query: q})
}

// V3OrderParams describes a v3 order. The STARK signature is added by
// CreateOrder.
type V3OrderParams struct {
	Market      string          `json:"market" validate:"required"`
	Side        OrderSide       `json:"side" validate:"required,oneof=BUY SELL"`
	Type        OrderType       `json:"type" validate:"required,oneof=LIMIT MARKET STOP_LIMIT STOP_MARKET TRAILING_STOP TAKE_PROFIT TAKE_PROFIT_MARKET"`
	PostOnly    bool            `json:"postOnly"`
	Size        decimal.Decimal `json:"size" validate:"gt=0"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	LimitFee    decimal.Decimal `json:"limitFee" validate:"gte=0"`
	TimeInForce TimeInForce     `json:"timeInForce" validate:"required,oneof=GTT FOK IOC"`
	Expiration  time.Time       `json:"expiration" validate:"required"`
	// ClientID defaults to NewClientID when empty.
	ClientID        string              `json:"clientId" validate:"omitempty,numeric"`
	CancelID        string              `json:"cancelId,omitempty"`
	TriggerPrice    decimal.NullDecimal `json:"triggerPrice"`
	TrailingPercent decimal.NullDecimal `json:"trailingPercent"`
	ReduceOnly      bool                `json:"reduceOnly,omitempty"`
}

type v3OrderBody struct {
	Market          string           `json:"market"`
	Side            OrderSide        `json:"side"`
	Type            OrderType        `json:"type"`
	PostOnly        bool             `json:"postOnly"`
	Size            decimal.Decimal  `json:"size"`
	Price           decimal.Decimal  `json:"price"`
	LimitFee        decimal.Decimal  `json:"limitFee"`
	TimeInForce     TimeInForce      `json:"timeInForce"`
	Expiration      string           `json:"expiration"`
	ClientID        string           `json:"clientId"`
	Signature       string           `json:"signature"`
	CancelID        string           `json:"cancelId,omitempty"`
	TriggerPrice    *decimal.Decimal `json:"triggerPrice,omitempty"`
	TrailingPercent *decimal.Decimal `json:"trailingPercent,omitempty"`
	ReduceOnly      bool             `json:"reduceOnly,omitempty"`
}

// CreateOrder signs params with the configured signer and places the order
// in a single attempt. It needs WithSigner and credentials carrying a STARK
// private key and position id.
func (p *Private) CreateOrder(ctx context.Context, params V3OrderParams) (*V3OrderResponse, error) {
	if p.signer == nil {
		return nil, ErrMissingSigner
	}
	if p.creds.StarkPrivateKey == "" {
		return nil, &ValidationError{Errors: []string{"STARK private key is required"}}
	}
	if err := validateStruct(params); err != nil {
		return nil, err
	}

	clientID := params.ClientID
	if clientID == "" {
		clientID = NewClientID()
	}

	signature, err := p.signer.Sign(ctx, signing.FunctionSignOrder, map[string]any{
		"network_id":               p.api.Config().NetworkID,
		"market":                   params.Market,
		"side":                     string(params.Side),
		"position_id":              p.creds.PositionID,
		"human_size":               params.Size.String(),
		"human_price":              params.Price.String(),
		"limit_fee":                params.LimitFee.String(),
		"client_id":                clientID,
		"expiration_epoch_seconds": params.Expiration.Unix(),
		"private_key":              p.creds.StarkPrivateKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OpCreateOrder, err)
	}

	body := v3OrderBody{
		Market:      params.Market,
		Side:        params.Side,
		Type:        params.Type,
		PostOnly:    params.PostOnly,
		Size:        params.Size,
		Price:       params.Price,
		LimitFee:    params.LimitFee,
		TimeInForce: params.TimeInForce,
		Expiration:  isoTime(params.Expiration),
		ClientID:    clientID,
		Signature:   signature,
		CancelID:    params.CancelID,
		ReduceOnly:  params.ReduceOnly,
	}
	if params.TriggerPrice.Valid {
		body.TriggerPrice = &params.TriggerPrice.Decimal
	}
	if params.TrailingPercent.Valid {
		body.TrailingPercent = &params.TrailingPercent.Decimal
	}

	return send[V3OrderResponse](ctx, p.api, OpCreateOrder, api.Request{
		Method: api.MethodPost,
		Path:   "orders",
		Body:   body,
	})
}

// CancelOrder cancels a v3 order by id in a single attempt.
func (p *Private) CancelOrder(ctx context.Context, orderID string) (*V3CancelOrderResponse, error) {
	return send[V3CancelOrderResponse](ctx, p.api, OpCancelOrder, api.Request{
		Method: api.MethodDelete,
		Path:   "orders/" + url.PathEscape(orderID),
	})
}
