package dydx

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSide is the side of an order, fill or trade.
type OrderSide string

const (
	SideBuy  OrderSide = "BUY"
	SideSell OrderSide = "SELL"
)

// OrderType is the type of an order.
type OrderType string

const (
	OrderTypeLimit            OrderType = "LIMIT"
	OrderTypeMarket           OrderType = "MARKET"
	OrderTypeStopLimit        OrderType = "STOP_LIMIT"
	OrderTypeStopMarket       OrderType = "STOP_MARKET"
	OrderTypeTrailingStop     OrderType = "TRAILING_STOP"
	OrderTypeTakeProfit       OrderType = "TAKE_PROFIT"
	OrderTypeTakeProfitMarket OrderType = "TAKE_PROFIT_MARKET"
)

// TimeInForce controls how long an order stays on the book.
type TimeInForce string

const (
	TimeInForceGTT TimeInForce = "GTT"
	TimeInForceFOK TimeInForce = "FOK"
	TimeInForceIOC TimeInForce = "IOC"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusOpen               OrderStatus = "OPEN"
	OrderStatusFilled             OrderStatus = "FILLED"
	OrderStatusCanceled           OrderStatus = "CANCELED"
	OrderStatusBestEffortCanceled OrderStatus = "BEST_EFFORT_CANCELED"
	OrderStatusUntriggered        OrderStatus = "UNTRIGGERED"
	OrderStatusBestEffortOpened   OrderStatus = "BEST_EFFORT_OPENED"
)

// PositionStatus is the state of a perpetual position.
type PositionStatus string

const (
	PositionStatusOpen       PositionStatus = "OPEN"
	PositionStatusClosed     PositionStatus = "CLOSED"
	PositionStatusLiquidated PositionStatus = "LIQUIDATED"
)

// PositionSide is the direction of a position.
type PositionSide string

const (
	PositionSideLong  PositionSide = "LONG"
	PositionSideShort PositionSide = "SHORT"
)

// CandleResolution is the width of a candle.
type CandleResolution string

const (
	Resolution1Min  CandleResolution = "1MIN"
	Resolution5Min  CandleResolution = "5MINS"
	Resolution15Min CandleResolution = "15MINS"
	Resolution30Min CandleResolution = "30MINS"
	Resolution1Hour CandleResolution = "1HOUR"
	Resolution4Hour CandleResolution = "4HOURS"
	Resolution1Day  CandleResolution = "1DAY"
)

// Pagination is included in paginated list responses.
type Pagination struct {
	PageSize     *int `json:"pageSize,omitempty"`
	TotalResults *int `json:"totalResults,omitempty"`
	Offset       *int `json:"offset,omitempty"`
}

// PerpetualMarketResponse maps tickers to markets.
type PerpetualMarketResponse struct {
	Markets map[string]PerpetualMarket `json:"markets"`
}

// PerpetualMarket describes one perpetual market.
type PerpetualMarket struct {
	ClobPairID                string              `json:"clobPairId"`
	Ticker                    string              `json:"ticker"`
	Status                    string              `json:"status"`
	OraclePrice               decimal.Decimal     `json:"oraclePrice"`
	PriceChange24H            decimal.Decimal     `json:"priceChange24H"`
	Volume24H                 decimal.Decimal     `json:"volume24H"`
	Trades24H                 int64               `json:"trades24H"`
	NextFundingRate           decimal.Decimal     `json:"nextFundingRate"`
	InitialMarginFraction     decimal.Decimal     `json:"initialMarginFraction"`
	MaintenanceMarginFraction decimal.Decimal     `json:"maintenanceMarginFraction"`
	OpenInterest              decimal.Decimal     `json:"openInterest"`
	AtomicResolution          int                 `json:"atomicResolution"`
	QuantumConversionExponent int                 `json:"quantumConversionExponent"`
	TickSize                  decimal.Decimal     `json:"tickSize"`
	StepSize                  decimal.Decimal     `json:"stepSize"`
	StepBaseQuantums          int64               `json:"stepBaseQuantums"`
	SubticksPerTick           int64               `json:"subticksPerTick"`
	MarketType                string              `json:"marketType"`
	OpenInterestLowerCap      decimal.NullDecimal `json:"openInterestLowerCap"`
	OpenInterestUpperCap      decimal.NullDecimal `json:"openInterestUpperCap"`
	BaseOpenInterest          decimal.NullDecimal `json:"baseOpenInterest"`
}

// OrderbookResponse is the aggregated book of one market.
type OrderbookResponse struct {
	Bids []PriceLevel `json:"bids"`
	Asks []PriceLevel `json:"asks"`
}

// PriceLevel is one level of an order book.
type PriceLevel struct {
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

// TradesResponse lists recent trades of a market.
type TradesResponse struct {
	Pagination
	Trades []Trade `json:"trades"`
}

// Trade is one public trade.
type Trade struct {
	ID              string          `json:"id"`
	Side            OrderSide       `json:"side"`
	Size            decimal.Decimal `json:"size"`
	Price           decimal.Decimal `json:"price"`
	Type            string          `json:"type"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedAtHeight string          `json:"createdAtHeight"`
}

// MarketStatsResponse maps markets to their statistics.
type MarketStatsResponse struct {
	Markets map[string]MarketStats `json:"markets"`
}

// MarketStats summarizes a market over a period.
type MarketStats struct {
	Market      string          `json:"market"`
	Open        decimal.Decimal `json:"open"`
	High        decimal.Decimal `json:"high"`
	Low         decimal.Decimal `json:"low"`
	Close       decimal.Decimal `json:"close"`
	BaseVolume  decimal.Decimal `json:"baseVolume"`
	QuoteVolume decimal.Decimal `json:"quoteVolume"`
	Type        string          `json:"type"`
	Fees        decimal.Decimal `json:"fees"`
}

// HistoricalFundingResponse lists funding rates of a market.
type HistoricalFundingResponse struct {
	HistoricalFunding []HistoricalFunding `json:"historicalFunding"`
}

// HistoricalFunding is one funding payment period.
type HistoricalFunding struct {
	Ticker            string          `json:"ticker"`
	Rate              decimal.Decimal `json:"rate"`
	Price             decimal.Decimal `json:"price"`
	EffectiveAt       time.Time       `json:"effectiveAt"`
	EffectiveAtHeight string          `json:"effectiveAtHeight"`
}

// CandlesResponse lists candles of a market.
type CandlesResponse struct {
	Candles []Candle `json:"candles"`
}

// Candle is one OHLC candle.
type Candle struct {
	StartedAt            time.Time        `json:"startedAt"`
	Ticker               string           `json:"ticker"`
	Resolution           CandleResolution `json:"resolution"`
	Low                  decimal.Decimal  `json:"low"`
	High                 decimal.Decimal  `json:"high"`
	Open                 decimal.Decimal  `json:"open"`
	Close                decimal.Decimal  `json:"close"`
	BaseTokenVolume      decimal.Decimal  `json:"baseTokenVolume"`
	USDVolume            decimal.Decimal  `json:"usdVolume"`
	Trades               int64            `json:"trades"`
	StartingOpenInterest decimal.Decimal  `json:"startingOpenInterest"`
	OrderingBookmark     *string          `json:"orderingBookmark,omitempty"`
}

// ConfigResponse holds exchange-wide settings.
type ConfigResponse struct {
	CollateralAssetID             string          `json:"collateralAssetId"`
	CollateralTokenAddress        string          `json:"collateralTokenAddress"`
	DefaultMakerFee               decimal.Decimal `json:"defaultMakerFee"`
	DefaultTakerFee               decimal.Decimal `json:"defaultTakerFee"`
	ExchangeAddress               string          `json:"exchangeAddress"`
	MaxExpectedBatchLengthMinutes string          `json:"maxExpectedBatchLengthMinutes"`
	MaxFastWithdrawalAmount       string          `json:"maxFastWithdrawalAmount"`
}

// ExistsResponse answers user and username existence checks.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// TimeResponse is the server time.
type TimeResponse struct {
	ISO   string  `json:"iso"`
	Epoch float64 `json:"epoch"`
}

// HeightResponse is the latest indexed block.
type HeightResponse struct {
	Height string    `json:"height"`
	Time   time.Time `json:"time"`
}

// LeaderboardPnlResponse ranks traders by profit and loss.
type LeaderboardPnlResponse struct {
	TopPnls         []LeaderboardPnl `json:"topPnls"`
	NumParticipants int              `json:"numParticipants"`
	StartedAt       *time.Time       `json:"startedAt,omitempty"`
	EndsAt          *time.Time       `json:"endsAt,omitempty"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// LeaderboardPnl is one leaderboard entry.
type LeaderboardPnl struct {
	Username        string          `json:"username"`
	EthereumAddress string          `json:"ethereumAddress"`
	PublicID        string          `json:"publicId"`
	AbsolutePnl     decimal.Decimal `json:"absolutePnl"`
	PercentPnl      decimal.Decimal `json:"percentPnl"`
	AbsoluteRank    *int            `json:"absoluteRank,omitempty"`
	PercentRank     *int            `json:"percentRank,omitempty"`
	StartingEquity  decimal.Decimal `json:"startingEquity"`
}

// RetroactiveMiningRewardsResponse is the retroactive mining allocation of
// an address.
type RetroactiveMiningRewardsResponse struct {
	Allocation   decimal.Decimal `json:"allocation"`
	TargetVolume decimal.Decimal `json:"targetVolume"`
}

// NftRevealType selects the competition period of revealed hedgies.
type NftRevealType string

// Reveal periods.
const (
	NftRevealDaily  NftRevealType = "DAY"
	NftRevealWeekly NftRevealType = "WEEK"
)

// HedgiePeriod lists the hedgies revealed in one competition period.
type HedgiePeriod struct {
	BlockNumber       string `json:"blockNumber"`
	CompetitionPeriod int    `json:"competitionPeriod"`
	TokenIDs          []int  `json:"tokenIds"`
}

// CurrentHedgiesResponse holds the hedgies revealed in the current daily and
// weekly periods.
type CurrentHedgiesResponse struct {
	Daily  *HedgiePeriod `json:"daily,omitempty"`
	Weekly *HedgiePeriod `json:"weekly,omitempty"`
}

// HedgiesHistoryResponse lists hedgies revealed in past periods.
type HedgiesHistoryResponse struct {
	HistoricalTokenIDs []HedgiePeriod `json:"historicalTokenIds"`
}

// InsuranceFundBalanceResponse is the balance of the insurance fund.
type InsuranceFundBalanceResponse struct {
	Balance float64 `json:"balance"`
}

// ProfilePublicResponse is the public profile of a user.
type ProfilePublicResponse struct {
	Username           string  `json:"username"`
	EthereumAddress    string  `json:"ethereumAddress"`
	DYDXHoldings       *string `json:"DYDXHoldings,omitempty"`
	StakedDYDXHoldings *string `json:"stakedDYDXHoldings,omitempty"`
	HedgiesHeld        []int   `json:"hedgiesHeld"`
	TwitterHandle      *string `json:"twitterHandle,omitempty"`
}

// SubaccountResponse wraps a subaccount.
type SubaccountResponse struct {
	Subaccount SubaccountInfo `json:"subaccount"`
}

// SubaccountInfo is the state of one v4 subaccount.
type SubaccountInfo struct {
	Address                    string                       `json:"address"`
	SubaccountNumber           int                          `json:"subaccountNumber"`
	Equity                     decimal.Decimal              `json:"equity"`
	FreeCollateral             decimal.Decimal              `json:"freeCollateral"`
	OpenPerpetualPositions     map[string]PerpetualPosition `json:"openPerpetualPositions"`
	AssetPositions             map[string]AssetPosition     `json:"assetPositions"`
	MarginEnabled              bool                         `json:"marginEnabled"`
	UpdatedAtHeight            string                       `json:"updatedAtHeight"`
	LatestProcessedBlockHeight string                       `json:"latestProcessedBlockHeight"`
}

// QuoteBalance returns the USDC asset position size, or zero.
func (s SubaccountInfo) QuoteBalance() decimal.Decimal {
	if p, ok := s.AssetPositions["USDC"]; ok {
		return p.Size
	}
	return decimal.Zero
}

// PerpetualPosition is a position in a perpetual market.
type PerpetualPosition struct {
	Market           string              `json:"market"`
	Status           PositionStatus      `json:"status"`
	Side             PositionSide        `json:"side"`
	Size             decimal.Decimal     `json:"size"`
	MaxSize          decimal.Decimal     `json:"maxSize"`
	EntryPrice       decimal.Decimal     `json:"entryPrice"`
	RealizedPnl      decimal.Decimal     `json:"realizedPnl"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedAtHeight  string              `json:"createdAtHeight"`
	SumOpen          decimal.Decimal     `json:"sumOpen"`
	SumClose         decimal.Decimal     `json:"sumClose"`
	NetFunding       decimal.Decimal     `json:"netFunding"`
	UnrealizedPnl    decimal.Decimal     `json:"unrealizedPnl"`
	ClosedAt         *time.Time          `json:"closedAt,omitempty"`
	ExitPrice        decimal.NullDecimal `json:"exitPrice"`
	SubaccountNumber int                 `json:"subaccountNumber"`
}

// AssetPosition is a collateral balance.
type AssetPosition struct {
	Symbol           string          `json:"symbol"`
	Side             PositionSide    `json:"side"`
	Size             decimal.Decimal `json:"size"`
	AssetID          string          `json:"assetId"`
	SubaccountNumber int             `json:"subaccountNumber"`
}

// PositionsResponse lists perpetual positions.
type PositionsResponse struct {
	Positions []PerpetualPosition `json:"positions"`
}

// Order is an order on the v4 indexer.
type Order struct {
	ID               string          `json:"id"`
	SubaccountID     string          `json:"subaccountId,omitempty"`
	ClientID         string          `json:"clientId"`
	ClobPairID       string          `json:"clobPairId"`
	Side             OrderSide       `json:"side"`
	Size             decimal.Decimal `json:"size"`
	TotalFilled      decimal.Decimal `json:"totalFilled"`
	Price            decimal.Decimal `json:"price"`
	Type             OrderType       `json:"type"`
	ReduceOnly       bool            `json:"reduceOnly"`
	OrderFlags       string          `json:"orderFlags"`
	GoodTilBlock     string          `json:"goodTilBlock,omitempty"`
	GoodTilBlockTime string          `json:"goodTilBlockTime,omitempty"`
	CreatedAtHeight  string          `json:"createdAtHeight,omitempty"`
	ClientMetadata   string          `json:"clientMetadata"`
	TriggerPrice     *string         `json:"triggerPrice,omitempty"`
	TimeInForce      TimeInForce     `json:"timeInForce"`
	Status           OrderStatus     `json:"status"`
	PostOnly         bool            `json:"postOnly"`
	Ticker           string          `json:"ticker"`
	UpdatedAt        *time.Time      `json:"updatedAt,omitempty"`
	UpdatedAtHeight  string          `json:"updatedAtHeight,omitempty"`
	SubaccountNumber int             `json:"subaccountNumber"`
}

// FillsResponse lists fills of a subaccount.
type FillsResponse struct {
	Pagination
	Fills []Fill `json:"fills"`
}

// Fill is one execution of an order.
type Fill struct {
	ID                string          `json:"id"`
	Side              OrderSide       `json:"side"`
	Liquidity         string          `json:"liquidity"`
	Type              string          `json:"type"`
	Market            string          `json:"market"`
	MarketType        string          `json:"marketType"`
	Price             decimal.Decimal `json:"price"`
	Size              decimal.Decimal `json:"size"`
	Fee               decimal.Decimal `json:"fee"`
	AffiliateRevShare *string         `json:"affiliateRevShare,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedAtHeight   string          `json:"createdAtHeight"`
	OrderID           *string         `json:"orderId,omitempty"`
	ClientMetadata    *string         `json:"clientMetadata,omitempty"`
	SubaccountNumber  int             `json:"subaccountNumber"`
}

// InternalAPIResponse is returned by the internal order endpoints after a
// transaction is broadcast.
type InternalAPIResponse struct {
	Hash   string            `json:"hash"`
	Code   int64             `json:"code"`
	RawLog string            `json:"raw_log"`
	Extra  map[string]string `json:"extra"`
}
