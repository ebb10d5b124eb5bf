package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestTrade_PnLLawLong(t *testing.T) {
	trade := NewTrade()
	trade.Direction = DirectionLong
	trade.EntryPrice = dec(t, "150.50")
	exit := dec(t, "152.30")
	trade.ExitPrice = &exit
	trade.Quantity = dec(t, "100")
	trade.Commission = dec(t, "2.00")
	trade.Status = StatusClosed

	gross, ok := trade.PnLGross()
	require.True(t, ok)
	assert.True(t, gross.Equal(dec(t, "180.00")))

	net, ok := trade.PnLNet()
	require.True(t, ok)
	assert.True(t, net.Equal(dec(t, "178.00")))

	winner, ok := trade.IsWinner()
	require.True(t, ok)
	assert.True(t, winner)
}

func TestTrade_PnLLawShort(t *testing.T) {
	trade := NewTrade()
	trade.Direction = DirectionShort
	trade.EntryPrice = dec(t, "152.30")
	exit := dec(t, "150.50")
	trade.ExitPrice = &exit
	trade.Quantity = dec(t, "100")
	trade.Status = StatusClosed

	gross, ok := trade.PnLGross()
	require.True(t, ok)
	assert.True(t, gross.Equal(dec(t, "180.00")))
}

func TestTrade_OpenTradeHasUndefinedPnL(t *testing.T) {
	trade := NewTrade()
	trade.Status = StatusOpen
	_, ok := trade.PnLGross()
	assert.False(t, ok)
	_, ok = trade.IsWinner()
	assert.False(t, ok)
}

func TestTrade_OverridePnLWins(t *testing.T) {
	trade := NewTrade()
	trade.Status = StatusOpen
	override := dec(t, "42.00")
	trade.OverridePnL = &override

	gross, ok := trade.PnLGross()
	require.True(t, ok)
	assert.True(t, gross.Equal(override))
}

func TestTrade_DurationMinutes(t *testing.T) {
	trade := NewTrade()
	trade.EntryTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	exit := time.Date(2024, 1, 15, 14, 45, 0, 0, time.UTC)
	trade.ExitTime = &exit
	trade.Status = StatusClosed

	duration, ok := trade.DurationMinutes()
	require.True(t, ok)
	assert.Equal(t, int64(255), duration)
}

func TestTrade_TagsAreNormalizedAndDeduplicated(t *testing.T) {
	trade := NewTrade()
	trade.AddTag("  Breakout ")
	trade.AddTag("breakout")
	trade.AddTag("reversal")
	assert.Equal(t, []string{"breakout", "reversal"}, trade.Tags)

	trade.RemoveTag("Breakout")
	assert.Equal(t, []string{"reversal"}, trade.Tags)
}

func TestNormalizeSymbol_Idempotent(t *testing.T) {
	cases := []string{"ESH4", "MNQZ5", "MGC 03-24", "aapl", "EURUSD", "btc/usdt"}
	for _, symbol := range cases {
		once := NormalizeSymbol(symbol)
		twice := NormalizeSymbol(once)
		assert.Equal(t, once, twice, "normalize not idempotent for %q", symbol)
	}
}

func TestNormalizeSymbol_StripsContractCodes(t *testing.T) {
	assert.Equal(t, "ES", NormalizeSymbol("ESH4"))
	assert.Equal(t, "MNQ", NormalizeSymbol("MNQZ5"))
	assert.Equal(t, "MGC", NormalizeSymbol("MGC 03-24"))
	assert.Equal(t, "AAPL", NormalizeSymbol("aapl"))
}

func TestTrade_ChartMarkersIncludesExitOnlyWhenClosed(t *testing.T) {
	trade := NewTrade()
	trade.Direction = DirectionLong
	trade.EntryTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	trade.EntryPrice = dec(t, "150.50")
	trade.Quantity = dec(t, "100")
	trade.Status = StatusOpen

	markers := trade.ChartMarkers()
	assert.Len(t, markers, 1)

	exit := dec(t, "152.30")
	exitTime := time.Date(2024, 1, 15, 14, 45, 0, 0, time.UTC)
	trade.ExitPrice = &exit
	trade.ExitTime = &exitTime
	trade.Status = StatusClosed

	markers = trade.ChartMarkers()
	assert.Len(t, markers, 2)
	assert.True(t, markers[1].Winner)
}
