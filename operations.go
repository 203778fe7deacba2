package dydx

// Operation names. They label retry notifications and are the keys of
// per-operation backoff registries such as backoff.Custom.
const (
	OpGetMarkets              = "get_markets"
	OpGetOrderbook            = "get_orderbook"
	OpGetTrades               = "get_trades"
	OpGetFastWithdrawal       = "get_fast_withdrawal"
	OpGetStats                = "get_stats"
	OpGetHistoricalFunding    = "get_historical_funding"
	OpGetCandles              = "get_candles"
	OpGetConfig               = "get_config"
	OpCheckIfUserExists       = "check_if_user_exists"
	OpCheckIfUsernameExists   = "check_if_username_exists"
	OpGetTime                 = "get_time"
	OpGetHeight               = "get_height"
	OpGetLeaderboardPnls      = "get_leaderboard_pnls"
	OpGetRetroactiveMining    = "get_public_retroactive_mining_rewards"
	OpGetCurrentHedgies       = "get_currently_revealed_hedgies"
	OpGetHedgiesHistory       = "get_historically_revealed_hedgies"
	OpGetInsuranceFundBalance = "get_insurance_fund_balance"
	OpGetProfile              = "get_profile"
	OpVerifyEmail             = "verify_email"

	OpGetAccount   = "get_account"
	OpGetPositions = "get_positions"
	OpGetOrders    = "get_orders"
	OpGetOrderByID = "get_order_by_id"
	OpGetFills     = "get_fills"
	OpCreateOrder  = "create_order"
	OpCancelOrder  = "cancel_order"

	OpGetUser     = "get_user"
	OpGetAccounts = "get_accounts"
)
