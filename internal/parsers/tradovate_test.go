package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alenon/tradeimport/internal/models"
)

func TestTradovate_TradeBreakdownBacksolvesEntryAndNormalizesSymbol(t *testing.T) {
	csvText := "Contract,B/S,Qty,Price,P&L,Cumulative P&L,Commission,Timestamp\n" +
		"MNQZ5,Buy,2,17850.25,12.50,12.50,2.50,2024-06-20 09:31:00\n"

	result := Run(NewTradovate(), []byte(csvText), "tradovate.csv", "")
	require.True(t, result.Success())
	require.Equal(t, 1, result.Trades.Len())

	trade := result.Trades.Trades[0]
	assert.Equal(t, models.StatusClosed, trade.Status)
	assert.Equal(t, models.DirectionLong, trade.Direction)
	assert.Equal(t, "MNQ", trade.Symbol)
	assert.Equal(t, models.AssetFuture, trade.AssetType)
	assert.True(t, trade.EntryPrice.Equal(decimalFromString(t, "17844.00")))
}

func TestTradovate_TradeBreakdownUsesDateColumnForTimestamp(t *testing.T) {
	csvText := "Date,Contract,B/S,Qty,Price,P&L,Cumulative P&L,Commission\n" +
		"2024-06-20 09:31:00,MNQZ5,Buy,2,17850.25,12.50,12.50,2.50\n"

	result := Run(NewTradovate(), []byte(csvText), "tradovate.csv", "")
	require.True(t, result.Success())
	require.Equal(t, 1, result.Trades.Len())

	trade := result.Trades.Trades[0]
	assert.Equal(t, models.StatusClosed, trade.Status)
	assert.Equal(t, "MNQ", trade.Symbol)
	assert.True(t, trade.EntryPrice.Equal(decimalFromString(t, "17844.00")))
}

func TestTradovate_OrderHistoryPairsConsecutiveFills(t *testing.T) {
	csvText := "orderId,contractId,timestamp,action,ordStatus,filledQty,avgFillPrice\n" +
		"1,ESZ4,2024-06-20 09:30:00,Buy,Filled,1,4500.00\n" +
		"2,ESZ4,2024-06-20 09:45:00,Buy,Filled,1,4510.00\n"

	result := Run(NewTradovate(), []byte(csvText), "tradovate_orders.csv", "")
	require.True(t, result.Success())
	require.Equal(t, 1, result.Trades.Len())

	trade := result.Trades.Trades[0]
	assert.Equal(t, models.StatusClosed, trade.Status)
	assert.Equal(t, "ES", trade.Symbol)
	require.NotNil(t, trade.ExitPrice)
	assert.True(t, trade.ExitPrice.Equal(decimalFromString(t, "4510.00")))
}

func TestTradovate_OrderHistoryOddFillStaysOpen(t *testing.T) {
	csvText := "orderId,contractId,timestamp,action,ordStatus,filledQty,avgFillPrice\n" +
		"1,ESZ4,2024-06-20 09:30:00,Buy,Filled,1,4500.00\n"

	result := Run(NewTradovate(), []byte(csvText), "tradovate_orders.csv", "")
	require.True(t, result.Success())
	require.Equal(t, 1, result.Trades.Len())
	assert.Equal(t, models.StatusOpen, result.Trades.Trades[0].Status)
}

func TestTradovate_OrderHistoryRealHeaderWithExtraColumns(t *testing.T) {
	csvText := "orderId,accountId,contractId,timestamp,action,ordStatus,orderType,filledQty,avgFillPrice\n" +
		"100,ACC1,MNQZ5,2024-06-20 09:30:00,Sell,Filled,Market,2,17850.25\n" +
		"101,ACC1,MNQZ5,2024-06-20 09:40:00,Sell,Filled,Market,2,17844.00\n"

	result := Run(NewTradovate(), []byte(csvText), "order_history.csv", "")
	require.True(t, result.Success())
	require.Equal(t, 1, result.Trades.Len())

	trade := result.Trades.Trades[0]
	assert.Equal(t, models.DirectionShort, trade.Direction)
	assert.Equal(t, "MNQ", trade.Symbol)
	assert.Equal(t, models.StatusClosed, trade.Status)
	require.NotNil(t, trade.ExitPrice)
	assert.True(t, trade.EntryPrice.Equal(decimalFromString(t, "17850.25")))
	assert.True(t, trade.ExitPrice.Equal(decimalFromString(t, "17844.00")))
}
