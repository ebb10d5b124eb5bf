package parsers

import (
	"github.com/shopspring/decimal"

	"github.com/alenon/tradeimport/internal/models"
)

// BackSolveEntryPrice recovers the entry price of a closed round-trip
// from its exit price, realized P&L, and quantity — the pattern common
// to Interactive Brokers, Binance (when Realized Profit is present), and
// Tradovate Trade Breakdown: long: exit - pnl/qty; short: exit + pnl/qty.
//
// Per the open question on instrument multipliers (no contract-multiplier
// registry exists here), this divides P&L by quantity directly — correct
// for equities/forex/crypto, and an acknowledged approximation for
// futures whose multiplier isn't 1.
func BackSolveEntryPrice(direction models.Direction, exitPrice, pnl, quantity decimal.Decimal) decimal.Decimal {
	perUnit := pnl.Div(quantity)
	if direction == models.DirectionShort {
		return exitPrice.Add(perUnit)
	}
	return exitPrice.Sub(perUnit)
}
