package dydx

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/tradewire/dydx-go/internal/api"
)

// Subaccount is the v4 account sub-client for one address and subaccount
// number. Queries use the private backoff registry and notifier; order
// placement and cancellation go to the internal host and are never retried.
type Subaccount struct {
	api   *api.Client
	exec  *api.Executor
	creds SubaccountCredentials
}

// Address returns the account address.
func (s *Subaccount) Address() string {
	return s.creds.Address
}

// Number returns the subaccount number.
func (s *Subaccount) Number() int {
	return s.creds.SubaccountNumber
}

// owner starts every account query with the address and subaccount number.
func (s *Subaccount) owner() api.Params {
	var q api.Params
	q.Add("address", s.creds.Address)
	q.Add("subaccountNumber", strconv.Itoa(s.creds.SubaccountNumber))
	return q
}

// GetAccount returns the subaccount state.
func (s *Subaccount) GetAccount(ctx context.Context) (*SubaccountResponse, error) {
	path := "addresses/" + url.PathEscape(s.creds.Address) + "/subaccountNumber/" + strconv.Itoa(s.creds.SubaccountNumber)
	return call[SubaccountResponse](ctx, s.exec, s.api, OpGetAccount, api.Request{Path: path})
}

// PositionsQuery filters perpetual positions. Zero fields are omitted.
type PositionsQuery struct {
	Market                  string
	Status                  PositionStatus
	Limit                   int
	CreatedBeforeOrAtHeight int64
	CreatedBeforeOrAt       time.Time
}

// GetPositions returns perpetual positions of the subaccount.
func (s *Subaccount) GetPositions(ctx context.Context, query PositionsQuery) (*PositionsResponse, error) {
	q := s.owner()
	q.AddOptional("market", query.Market)
	q.AddOptional("status", string(query.Status))
	q.AddOptional("limit", intParam(query.Limit))
	q.AddOptional("createdBeforeOrAt", isoTime(query.CreatedBeforeOrAt))
	q.AddOptional("createdBeforeOrAtHeight", heightParam(query.CreatedBeforeOrAtHeight))
	return call[PositionsResponse](ctx, s.exec, s.api, OpGetPositions, api.Request{Path: "perpetualPositions", Query: q})
}

// OrdersQuery filters orders. Zero fields are omitted.
type OrdersQuery struct {
	Ticker                     string
	Status                     OrderStatus
	Side                       OrderSide
	Type                       OrderType
	Limit                      int
	GoodTilBlockBeforeOrAt     int64
	GoodTilBlockTimeBeforeOrAt time.Time
	ReturnLatestOrders         *bool
}

// GetOrders returns orders of the subaccount.
func (s *Subaccount) GetOrders(ctx context.Context, query OrdersQuery) ([]Order, error) {
	q := s.owner()
	q.AddOptional("ticker", query.Ticker)
	q.AddOptional("status", string(query.Status))
	q.AddOptional("side", string(query.Side))
	q.AddOptional("type", string(query.Type))
	q.AddOptional("limit", intParam(query.Limit))
	q.AddOptional("goodTilBlockBeforeOrAt", heightParam(query.GoodTilBlockBeforeOrAt))
	q.AddOptional("goodTilBlockTimeBeforeOrAt", isoTime(query.GoodTilBlockTimeBeforeOrAt))
	if query.ReturnLatestOrders != nil {
		q.Add("returnLatestOrders", strconv.FormatBool(*query.ReturnLatestOrders))
	}
	orders, err := call[[]Order](ctx, s.exec, s.api, OpGetOrders, api.Request{Path: "orders", Query: q})
	if err != nil {
		return nil, err
	}
	return *orders, nil
}

// GetOrderByID returns one order.
func (s *Subaccount) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	return call[Order](ctx, s.exec, s.api, OpGetOrderByID, api.Request{Path: "orders/" + url.PathEscape(id)})
}

// FillsQuery filters fills. Zero fields are omitted.
type FillsQuery struct {
	Market                  string
	MarketType              string
	Limit                   int
	CreatedBeforeOrAtHeight int64
	CreatedBeforeOrAt       time.Time
}

// GetFills returns fills of the subaccount.
func (s *Subaccount) GetFills(ctx context.Context, query FillsQuery) (*FillsResponse, error) {
	q := s.owner()
	q.AddOptional("market", query.Market)
	q.AddOptional("marketType", query.MarketType)
	q.AddOptional("limit", intParam(query.Limit))
	q.AddOptional("createdBeforeOrAtHeight", heightParam(query.CreatedBeforeOrAtHeight))
	q.AddOptional("createdBeforeOrAt", isoTime(query.CreatedBeforeOrAt))
	return call[FillsResponse](ctx, s.exec, s.api, OpGetFills, api.Request{Path: "fills", Query: q})
}

// CreateOrder validates params and posts them to the internal host in a
// single attempt. It returns ErrMissingInternalHost if no internal host was
// configured.
func (s *Subaccount) CreateOrder(ctx context.Context, params OrderParams) (*InternalAPIResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return send[InternalAPIResponse](ctx, s.api, OpCreateOrder, api.Request{
		Method:   api.MethodPost,
		Path:     "orders",
		Body:     params,
		Internal: true,
	})
}

type cancelOrderBody struct {
	Market           string `json:"market"`
	ClientID         string `json:"client_id"`
	GoodTilBlockTime int64  `json:"good_til_block_time"`
}

// CancelOrder cancels the order identified by market and clientID through
// the internal host in a single attempt.
func (s *Subaccount) CancelOrder(ctx context.Context, market, clientID string, goodTilBlockTime int64) (*InternalAPIResponse, error) {
	return send[InternalAPIResponse](ctx, s.api, OpCancelOrder, api.Request{
		Method: api.MethodDelete,
		Path:   "cancel_order",
		Body: cancelOrderBody{
			Market:           market,
			ClientID:         clientID,
			GoodTilBlockTime: goodTilBlockTime,
		},
		Internal: true,
	})
}

func heightParam(h int64) string {
	if h <= 0 {
		return ""
	}
	return strconv.FormatInt(h, 10)
}
