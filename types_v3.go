package dydx

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserResponse wraps the v3 user.
type UserResponse struct {
	User User `json:"user"`
}

// User is the v3 user behind an API key.
type User struct {
	PublicID                   string          `json:"publicId"`
	EthereumAddress            string          `json:"ethereumAddress"`
	IsRegistered               bool            `json:"isRegistered"`
	Email                      *string         `json:"email,omitempty"`
	Username                   *string         `json:"username,omitempty"`
	ReferredByAffiliateLink    *string         `json:"referredByAffiliateLink,omitempty"`
	MakerFeeRate               decimal.Decimal `json:"makerFeeRate"`
	TakerFeeRate               decimal.Decimal `json:"takerFeeRate"`
	MakerVolume30D             decimal.Decimal `json:"makerVolume30D"`
	TakerVolume30D             decimal.Decimal `json:"takerVolume30D"`
	Fees30D                    decimal.Decimal `json:"fees30D"`
	DydxTokenBalance           decimal.Decimal `json:"dydxTokenBalance"`
	StakedDydxTokenBalance     decimal.Decimal `json:"stakedDydxTokenBalance"`
	IsEmailVerified            bool            `json:"isEmailVerified"`
	Country                    *string         `json:"country,omitempty"`
	HedgiesHeld                []int           `json:"hedgiesHeld"`
	LanguageCode               *string         `json:"languageCode,omitempty"`
	HasFeeRateDiscountOverride bool            `json:"hasFeeRateDiscountOverride,omitempty"`
}

// AccountsResponse lists the v3 accounts of the user.
type AccountsResponse struct {
	Accounts []V3Account `json:"accounts"`
}

// AccountResponse wraps one v3 account.
type AccountResponse struct {
	Account V3Account `json:"account"`
}

// V3Account is a v3 trading account.
type V3Account struct {
	ID                 string                `json:"id"`
	StarkKey           string                `json:"starkKey"`
	PositionID         string                `json:"positionId"`
	Equity             decimal.Decimal       `json:"equity"`
	FreeCollateral     decimal.Decimal       `json:"freeCollateral"`
	PendingDeposits    decimal.Decimal       `json:"pendingDeposits"`
	PendingWithdrawals decimal.Decimal       `json:"pendingWithdrawals"`
	OpenPositions      map[string]V3Position `json:"openPositions"`
	AccountNumber      string                `json:"accountNumber"`
	QuoteBalance       decimal.Decimal       `json:"quoteBalance"`
	CreatedAt          time.Time             `json:"createdAt"`
}

// V3PositionsResponse lists v3 positions.
type V3PositionsResponse struct {
	Positions []V3Position `json:"positions"`
}

// V3Position is a v3 position.
type V3Position struct {
	Market        string              `json:"market"`
	Status        PositionStatus      `json:"status"`
	Side          PositionSide        `json:"side"`
	Size          decimal.Decimal     `json:"size"`
	MaxSize       decimal.Decimal     `json:"maxSize"`
	EntryPrice    decimal.Decimal     `json:"entryPrice"`
	ExitPrice     decimal.NullDecimal `json:"exitPrice"`
	UnrealizedPnl decimal.Decimal     `json:"unrealizedPnl"`
	RealizedPnl   decimal.Decimal     `json:"realizedPnl"`
	CreatedAt     time.Time           `json:"createdAt"`
	ClosedAt      *time.Time          `json:"closedAt,omitempty"`
	SumOpen       decimal.Decimal     `json:"sumOpen"`
	SumClose      decimal.Decimal     `json:"sumClose"`
	NetFunding    decimal.Decimal     `json:"netFunding"`
}

// V3OrderResponse wraps a v3 order.
type V3OrderResponse struct {
	Order V3Order `json:"order"`
}

// V3CancelOrderResponse wraps a canceled v3 order.
type V3CancelOrderResponse struct {
	CancelOrder V3Order `json:"cancelOrder"`
}

// V3Order is an order on the v3 API.
type V3Order struct {
	ID              string              `json:"id"`
	ClientID        string              `json:"clientId"`
	AccountID       string              `json:"accountId"`
	Market          string              `json:"market"`
	Side            OrderSide           `json:"side"`
	Price           decimal.Decimal     `json:"price"`
	TriggerPrice    decimal.NullDecimal `json:"triggerPrice"`
	TrailingPercent decimal.NullDecimal `json:"trailingPercent"`
	Size            decimal.Decimal     `json:"size"`
	RemainingSize   decimal.Decimal     `json:"remainingSize"`
	Type            OrderType           `json:"type"`
	CreatedAt       time.Time           `json:"createdAt"`
	UnfillableAt    *time.Time          `json:"unfillableAt,omitempty"`
	ExpiresAt       time.Time           `json:"expiresAt"`
	Status          OrderStatus         `json:"status"`
	TimeInForce     TimeInForce         `json:"timeInForce"`
	PostOnly        bool                `json:"postOnly"`
	ReduceOnly      bool                `json:"reduceOnly"`
	CancelReason    *string             `json:"cancelReason,omitempty"`
}
