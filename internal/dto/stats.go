package dto

import (
	"github.com/shopspring/decimal"
)

// TradeStats is the aggregate performance view produced by the
// statistics engine for a (possibly filtered) TradeCollection.
type TradeStats struct {
	TotalTrades   int `json:"total_trades"`
	WinningTrades int `json:"winning_trades"`
	LosingTrades  int `json:"losing_trades"`
	OpenTrades    int `json:"open_trades"`

	TotalPnL         decimal.Decimal  `json:"total_pnl"`
	GrossProfit      decimal.Decimal  `json:"gross_profit"`
	GrossLoss        decimal.Decimal  `json:"gross_loss"`
	TotalCommission  decimal.Decimal  `json:"total_commission"`

	WinRate      *float64         `json:"win_rate"`
	ProfitFactor *decimal.Decimal `json:"profit_factor"`

	AvgWinner     *decimal.Decimal `json:"avg_winner"`
	AvgLoser      *decimal.Decimal `json:"avg_loser"`
	LargestWinner *decimal.Decimal `json:"largest_winner"`
	LargestLoser  *decimal.Decimal `json:"largest_loser"`

	BestHour *int `json:"best_hour"`
	WorstHour *int `json:"worst_hour"`

	CurrentStreak int `json:"current_streak"`
	BestStreak    int `json:"best_streak"`
	WorstStreak   int `json:"worst_streak"`

	DailyPnL    []DailyPnL           `json:"daily_pnl"`
	HourlyStats []HourlyStat         `json:"hourly_stats"`
	BySymbol    map[string]SymbolStat `json:"by_symbol"`
}

// DailyPnL is one day's realized P&L rollup.
type DailyPnL struct {
	Date          string          `json:"date"`
	PnL           decimal.Decimal `json:"pnl"`
	TradesCount   int             `json:"trades_count"`
	Winners       int             `json:"winners"`
	Losers        int             `json:"losers"`
	CumulativePnL decimal.Decimal `json:"cumulative_pnl"`
}

// HourlyStat is one entry-hour (0-23) bucket of closed-trade performance.
type HourlyStat struct {
	Hour    int             `json:"hour"`
	Trades  int             `json:"trades"`
	Wins    int             `json:"wins"`
	PnL     decimal.Decimal `json:"pnl"`
	WinRate float64         `json:"win_rate"`
}

// SymbolStat is one symbol's breakdown across the filtered collection.
type SymbolStat struct {
	Trades  int             `json:"trades"`
	Winners int             `json:"winners"`
	Losers  int             `json:"losers"`
	PnL     decimal.Decimal `json:"pnl"`
	WinRate float64         `json:"win_rate"`
}

// StatsFilter narrows the trade set the engine aggregates over.
type StatsFilter struct {
	FromDate  *string
	ToDate    *string
	AccountID *string
	Symbol    *string
	Direction *string
	Status    *string
	Limit     *int
	Offset    *int
}
