package dydx

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/tradewire/dydx-go/internal/api"
	"github.com/tradewire/dydx-go/internal/ethaddr"
)

// Public is the unauthenticated v4 sub-client. Retried operations use the
// public backoff registry and notifier.
type Public struct {
	api  *api.Client
	exec *api.Executor
}

// GetMarkets returns the perpetual markets, or only ticker when it is not
// empty.
func (p *Public) GetMarkets(ctx context.Context, ticker string) (*PerpetualMarketResponse, error) {
	var q api.Params
	q.AddOptional("ticker", ticker)
	return call[PerpetualMarketResponse](ctx, p.exec, p.api, OpGetMarkets, api.Request{Path: "perpetualMarkets", Query: q})
}

// GetOrderbook returns the order book of market.
func (p *Public) GetOrderbook(ctx context.Context, market string) (*OrderbookResponse, error) {
	return call[OrderbookResponse](ctx, p.exec, p.api, OpGetOrderbook, api.Request{Path: "orderbook/" + url.PathEscape(market)})
}

// GetTrades returns recent trades of market. A zero startingBeforeOrAt
// returns the latest trades.
func (p *Public) GetTrades(ctx context.Context, market string, startingBeforeOrAt time.Time) (*TradesResponse, error) {
	var q api.Params
	q.AddOptional("startingBeforeOrAt", isoTime(startingBeforeOrAt))
	return call[TradesResponse](ctx, p.exec, p.api, OpGetTrades, api.Request{Path: "trades/" + url.PathEscape(market), Query: q})
}

// FastWithdrawalQuery filters fast withdrawal liquidity. Empty fields are
// omitted.
type FastWithdrawalQuery struct {
	CreditAsset  string
	CreditAmount string
	DebitAmount  string
}

// GetFastWithdrawal returns fast withdrawal liquidity providers. The payload
// is returned undecoded.
func (p *Public) GetFastWithdrawal(ctx context.Context, query FastWithdrawalQuery) (json.RawMessage, error) {
	var q api.Params
	q.AddOptional("creditAsset", query.CreditAsset)
	q.AddOptional("creditAmount", query.CreditAmount)
	q.AddOptional("debitAmount", query.DebitAmount)
	raw, err := call[json.RawMessage](ctx, p.exec, p.api, OpGetFastWithdrawal, api.Request{Path: "fast-withdrawals", Query: q})
	if err != nil {
		return nil, err
	}
	return *raw, nil
}

// GetStats returns statistics of market over days. Zero days uses the
// server default.
func (p *Public) GetStats(ctx context.Context, market string, days int) (*MarketStatsResponse, error) {
	var q api.Params
	q.AddOptional("days", intParam(days))
	return call[MarketStatsResponse](ctx, p.exec, p.api, OpGetStats, api.Request{Path: "stats/" + url.PathEscape(market), Query: q})
}

// GetHistoricalFunding returns funding rates of market effective at or
// before effectiveBeforeOrAt. A zero time returns the latest rates.
func (p *Public) GetHistoricalFunding(ctx context.Context, market string, effectiveBeforeOrAt time.Time) (*HistoricalFundingResponse, error) {
	var q api.Params
	q.AddOptional("effectiveBeforeOrAt", isoTime(effectiveBeforeOrAt))
	return call[HistoricalFundingResponse](ctx, p.exec, p.api, OpGetHistoricalFunding, api.Request{Path: "historical-funding/" + url.PathEscape(market), Query: q})
}

// CandlesQuery filters candles. Zero fields are omitted.
type CandlesQuery struct {
	Resolution CandleResolution
	From       time.Time
	To         time.Time
	Limit      int
}

// GetCandles returns candles of market.
func (p *Public) GetCandles(ctx context.Context, market string, query CandlesQuery) (*CandlesResponse, error) {
	var q api.Params
	q.AddOptional("resolution", string(query.Resolution))
	q.AddOptional("fromISO", isoTime(query.From))
	q.AddOptional("toISO", isoTime(query.To))
	q.AddOptional("limit", intParam(query.Limit))
	return call[CandlesResponse](ctx, p.exec, p.api, OpGetCandles, api.Request{Path: "candles/" + url.PathEscape(market), Query: q})
}

// GetConfig returns exchange-wide settings.
func (p *Public) GetConfig(ctx context.Context) (*ConfigResponse, error) {
	return call[ConfigResponse](ctx, p.exec, p.api, OpGetConfig, api.Request{Path: "config"})
}

// CheckIfUserExists reports whether a user is registered for ethereumAddress.
// The address is validated before any request is made.
func (p *Public) CheckIfUserExists(ctx context.Context, ethereumAddress string) (*ExistsResponse, error) {
	if err := ethaddr.Validate(ethereumAddress); err != nil {
		return nil, &ValidationError{Errors: []string{"ethereum address: " + err.Error()}}
	}
	var q api.Params
	q.Add("ethereumAddress", ethereumAddress)
	return call[ExistsResponse](ctx, p.exec, p.api, OpCheckIfUserExists, api.Request{Path: "users/exists", Query: q})
}

// CheckIfUsernameExists reports whether username is taken.
func (p *Public) CheckIfUsernameExists(ctx context.Context, username string) (*ExistsResponse, error) {
	var q api.Params
	q.Add("username", username)
	return call[ExistsResponse](ctx, p.exec, p.api, OpCheckIfUsernameExists, api.Request{Path: "usernames", Query: q})
}

// GetTime returns the server time.
func (p *Public) GetTime(ctx context.Context) (*TimeResponse, error) {
	return call[TimeResponse](ctx, p.exec, p.api, OpGetTime, api.Request{Path: "time"})
}

// GetHeight returns the latest indexed block height.
func (p *Public) GetHeight(ctx context.Context) (*HeightResponse, error) {
	return call[HeightResponse](ctx, p.exec, p.api, OpGetHeight, api.Request{Path: "height"})
}

// LeaderboardQuery selects a leaderboard. Period, StartingBeforeOrAt and
// SortBy are always sent.
type LeaderboardQuery struct {
	Period             string
	StartingBeforeOrAt time.Time
	SortBy             string
	Limit              int
}

// GetLeaderboardPnls returns the profit and loss leaderboard.
func (p *Public) GetLeaderboardPnls(ctx context.Context, query LeaderboardQuery) (*LeaderboardPnlResponse, error) {
	var q api.Params
	q.Add("period", query.Period)
	q.Add("startingBeforeOrAt", isoTime(query.StartingBeforeOrAt))
	q.Add("sortBy", query.SortBy)
	q.AddOptional("limit", intParam(query.Limit))
	return call[LeaderboardPnlResponse](ctx, p.exec, p.api, OpGetLeaderboardPnls, api.Request{Path: "leaderboard-pnl", Query: q})
}

// GetRetroactiveMiningRewards returns the retroactive mining rewards of
// ethereumAddress.
func (p *Public) GetRetroactiveMiningRewards(ctx context.Context, ethereumAddress string) (*RetroactiveMiningRewardsResponse, error) {
	var q api.Params
	q.Add("ethereumAddress", ethereumAddress)
	return call[RetroactiveMiningRewardsResponse](ctx, p.exec, p.api, OpGetRetroactiveMining, api.Request{Path: "rewards/public-retroactive-mining", Query: q})
}

// GetCurrentlyRevealedHedgies returns the hedgies of the current periods.
func (p *Public) GetCurrentlyRevealedHedgies(ctx context.Context) (*CurrentHedgiesResponse, error) {
	return call[CurrentHedgiesResponse](ctx, p.exec, p.api, OpGetCurrentHedgies, api.Request{Path: "hedgies/current"})
}

// HedgiesHistoryQuery selects past reveal periods. RevealType is always
// sent; Start and End are optional period numbers.
type HedgiesHistoryQuery struct {
	RevealType NftRevealType
	Start      string
	End        string
}

// GetHistoricallyRevealedHedgies returns hedgies revealed in past periods.
func (p *Public) GetHistoricallyRevealedHedgies(ctx context.Context, query HedgiesHistoryQuery) (*HedgiesHistoryResponse, error) {
	var q api.Params
	q.Add("nftRevealType", string(query.RevealType))
	q.AddOptional("start", query.Start)
	q.AddOptional("end", query.End)
	return call[HedgiesHistoryResponse](ctx, p.exec, p.api, OpGetHedgiesHistory, api.Request{Path: "hedgies/history", Query: q})
}

// GetInsuranceFundBalance returns the insurance fund balance.
func (p *Public) GetInsuranceFundBalance(ctx context.Context) (*InsuranceFundBalanceResponse, error) {
	return call[InsuranceFundBalanceResponse](ctx, p.exec, p.api, OpGetInsuranceFundBalance, api.Request{Path: "insurance-fund/balance"})
}

// GetProfile returns the public profile identified by publicID.
func (p *Public) GetProfile(ctx context.Context, publicID string) (*ProfilePublicResponse, error) {
	return call[ProfilePublicResponse](ctx, p.exec, p.api, OpGetProfile, api.Request{Path: "profile/" + url.PathEscape(publicID)})
}

// VerifyEmail confirms an email address with token and returns the HTTP
// status code. It makes exactly one attempt and does not classify the
// status.
func (p *Public) VerifyEmail(ctx context.Context, token string) (int, error) {
	var q api.Params
	q.Add("token", token)
	status, err := p.api.SendStatus(ctx, api.Request{Method: api.MethodPut, Path: "emails/verify-email", Query: q})
	if err != nil {
		return 0, wrapError(OpVerifyEmail, err)
	}
	return status, nil
}
