package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alenon/tradeimport/internal/models"
)

func TestGeneric_HappyPath(t *testing.T) {
	csvText := "symbol,direction,entry_time,exit_time,entry_price,exit_price,quantity,commission\n" +
		"AAPL,long,2024-01-15 10:30:00,2024-01-15 14:45:00,150.50,152.30,100,2.00\n"

	result := Run(Generic{}, []byte(csvText), "generic.csv", "acct-1")

	require.True(t, result.Success())
	require.Equal(t, 1, result.Trades.Len())

	trade := result.Trades.Trades[0]
	assert.Equal(t, models.StatusClosed, trade.Status)
	assert.Equal(t, models.DirectionLong, trade.Direction)

	gross, ok := trade.PnLGross()
	require.True(t, ok)
	assert.True(t, gross.Equal(decimalFromString(t, "180.00")))

	net, ok := trade.PnLNet()
	require.True(t, ok)
	assert.True(t, net.Equal(decimalFromString(t, "178.00")))

	pct, ok := trade.PnLPercent()
	require.True(t, ok)
	assert.InDelta(t, 1.1960, pct.InexactFloat64(), 0.001)

	duration, ok := trade.DurationMinutes()
	require.True(t, ok)
	assert.Equal(t, int64(255), duration)
}

func TestGeneric_OpenTradeHasNoPnL(t *testing.T) {
	csvText := "symbol,direction,entry_time,entry_price,quantity\n" +
		"MSFT,short,2024-02-01 09:00:00,300.00,10\n"

	result := Run(Generic{}, []byte(csvText), "generic.csv", "")
	require.True(t, result.Success())
	require.Equal(t, 1, result.Trades.Len())

	trade := result.Trades.Trades[0]
	assert.Equal(t, models.StatusOpen, trade.Status)
	_, ok := trade.PnLNet()
	assert.False(t, ok)
}

func TestGeneric_ZeroEntryPriceOrQuantityIsRowError(t *testing.T) {
	csvText := "symbol,direction,entry_time,entry_price,quantity\n" +
		"AAPL,long,2024-01-01 10:00:00,0,1\n" +
		"AAPL,long,2024-01-01 10:00:00,100,0\n"

	result := Run(Generic{}, []byte(csvText), "generic.csv", "")
	require.True(t, result.Success())
	assert.Equal(t, 0, result.Trades.Len())
	assert.Len(t, result.Errors, 2)
}

func TestGeneric_MissingRequiredColumn(t *testing.T) {
	csvText := "symbol,entry_time,entry_price,quantity\nAAPL,2024-01-01,100,1\n"

	result := Run(Generic{}, []byte(csvText), "generic.csv", "")
	assert.False(t, result.Success())
	assert.Len(t, result.Errors, 1)
}

func TestGeneric_CounterIdentity(t *testing.T) {
	csvText := "symbol,direction,entry_time,entry_price,quantity\n" +
		"AAPL,long,2024-01-01 10:00:00,100,1\n" +
		",,,,\n" +
		"BAD,sideways,2024-01-01 10:00:00,100,1\n"

	result := Run(Generic{}, []byte(csvText), "generic.csv", "")
	rowErrors := 0
	for _, e := range result.Errors {
		if e.RowNumber > 0 {
			rowErrors++
		}
	}
	assert.Equal(t, result.TotalRows, result.ParsedSuccessfully+result.SkippedRows+rowErrors)
}
