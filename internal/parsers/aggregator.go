package parsers

import (
	"sort"
	"time"

	"github.com/alenon/tradeimport/internal/models"
)

// AggregationBucket is the fill-aggregation granularity. The 1-minute
// bucket named in the fill-pairing scenarios is a policy default, not a
// physical constant — callers may configure a wider or narrower bucket.
type AggregationBucket time.Duration

// DefaultAggregationBucket is the 1-minute default.
const DefaultAggregationBucket = AggregationBucket(time.Minute)

// FillAggregator combines same-bucket fills sharing (symbol, direction)
// into a single trade: summed quantity, volume-weighted entry price,
// earliest entry time, and summed commission. The merged trade keeps the
// earliest fill's status and close data; when that fill is open, it takes
// the status and close data of the first later fill that is not open.
type FillAggregator struct {
	Bucket AggregationBucket
}

func (a FillAggregator) bucketDuration() time.Duration {
	if a.Bucket == 0 {
		return time.Duration(DefaultAggregationBucket)
	}
	return time.Duration(a.Bucket)
}

// Aggregate groups fills by (symbol, direction, floor(entry_time, bucket))
// and merges each group into one trade. Input order need not be sorted;
// output preserves each group's first-seen order.
func (a FillAggregator) Aggregate(fills []*models.Trade) []*models.Trade {
	if len(fills) == 0 {
		return fills
	}

	bucket := a.bucketDuration()
	sorted := make([]*models.Trade, len(fills))
	copy(sorted, fills)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EntryTime.Before(sorted[j].EntryTime)
	})

	type group struct {
		merged *models.Trade
	}
	order := make([]string, 0, len(sorted))
	groups := make(map[string]*group, len(sorted))

	for _, fill := range sorted {
		floored := fill.EntryTime.Truncate(bucket)
		key := string(fill.Symbol) + "|" + string(fill.Direction) + "|" + floored.String()

		g, ok := groups[key]
		if !ok {
			g = &group{merged: cloneTrade(fill)}
			groups[key] = g
			order = append(order, key)
			continue
		}

		existing := g.merged
		totalQty := existing.Quantity.Add(fill.Quantity)
		weighted := existing.EntryPrice.Mul(existing.Quantity).
			Add(fill.EntryPrice.Mul(fill.Quantity)).
			Div(totalQty)

		existing.Quantity = totalQty
		existing.EntryPrice = weighted
		existing.Commission = existing.Commission.Add(fill.Commission)
		if fill.Status != models.StatusOpen && existing.Status == models.StatusOpen {
			existing.Status = fill.Status
			existing.ExitTime = fill.ExitTime
			existing.ExitPrice = fill.ExitPrice
		}
	}

	merged := make([]*models.Trade, 0, len(order))
	for _, key := range order {
		merged = append(merged, groups[key].merged)
	}
	return merged
}

func cloneTrade(t *models.Trade) *models.Trade {
	clone := *t
	return &clone
}
