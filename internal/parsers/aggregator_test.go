package parsers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alenon/tradeimport/internal/models"
)

func newFill(symbol string, direction models.Direction, price, qty, commission string, at time.Time, t *testing.T) *models.Trade {
	trade := models.NewTrade()
	trade.Symbol = symbol
	trade.Direction = direction
	trade.EntryPrice = decimalFromString(t, price)
	trade.Quantity = decimalFromString(t, qty)
	trade.Commission = decimalFromString(t, commission)
	trade.EntryTime = at
	trade.Status = models.StatusOpen
	return trade
}

func TestFillAggregator_ConservesQuantityAndCommission(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	fills := []*models.Trade{
		newFill("BTC/USDT", models.DirectionLong, "40000", "0.1", "0.40", base, t),
		newFill("BTC/USDT", models.DirectionLong, "40010", "0.2", "0.80", base.Add(27*time.Second), t),
		newFill("BTC/USDT", models.DirectionLong, "40020", "0.3", "1.20", base.Add(36*time.Second), t),
		newFill("BTC/USDT", models.DirectionLong, "40030", "0.4", "1.60", base.Add(44*time.Second), t),
	}

	agg := FillAggregator{Bucket: DefaultAggregationBucket}
	merged := agg.Aggregate(fills)
	require.Len(t, merged, 1)

	var totalQtyBefore, totalCommBefore = decimalFromString(t, "0"), decimalFromString(t, "0")
	for _, f := range fills {
		totalQtyBefore = totalQtyBefore.Add(f.Quantity)
		totalCommBefore = totalCommBefore.Add(f.Commission)
	}

	assert.True(t, merged[0].Quantity.Equal(totalQtyBefore))
	assert.True(t, merged[0].Commission.Equal(totalCommBefore))
	assert.True(t, merged[0].EntryPrice.Equal(decimalFromString(t, "40020")))
}

func TestFillAggregator_SeparatesDifferentBuckets(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	fills := []*models.Trade{
		newFill("BTC/USDT", models.DirectionLong, "40000", "0.1", "0", base, t),
		newFill("BTC/USDT", models.DirectionLong, "40010", "0.2", "0", base.Add(2*time.Minute), t),
	}

	agg := FillAggregator{Bucket: DefaultAggregationBucket}
	merged := agg.Aggregate(fills)
	assert.Len(t, merged, 2)
}
