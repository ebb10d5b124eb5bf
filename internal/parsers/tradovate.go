package parsers

import (
	"sort"

	"github.com/alenon/tradeimport/internal/dto"
	"github.com/alenon/tradeimport/internal/models"
	"github.com/alenon/tradeimport/internal/numeric"
)

// tradovateSubFormat distinguishes the two header shapes Tradovate
// exports under one broker identifier.
type tradovateSubFormat int

const (
	tradovateTradeBreakdown tradovateSubFormat = iota
	tradovateOrderHistory
)

// Tradovate detects its sub-format from the header row: Order History
// carries action/ordStatus columns; anything else is treated as Trade
// Breakdown, its richer and more common export.
type Tradovate struct {
	subFormat tradovateSubFormat
}

// NewTradovate returns a fresh Tradovate parser instance. A new instance
// must be used per parse — DetectSubFormat mutates it for that one file.
func NewTradovate() BrokerParser { return &Tradovate{} }

func (t *Tradovate) Broker() models.Broker { return models.BrokerTradovate }

func (t *Tradovate) DetectSubFormat(headers []string) {
	hasAction := findColumn(headers, "action") >= 0
	hasOrdStatus := findColumn(headers, "ordStatus") >= 0
	if hasAction && hasOrdStatus {
		t.subFormat = tradovateOrderHistory
		return
	}
	t.subFormat = tradovateTradeBreakdown
}

func (t *Tradovate) RequiredColumns() []string {
	return []string{"symbol", "direction", "quantity", "price", "timestamp"}
}

func (t *Tradovate) ColumnAliases() map[string][]string {
	if t.subFormat == tradovateOrderHistory {
		return map[string][]string{
			"symbol":     {"contractId", "Contract", "Symbol"},
			"direction":  {"action", "B/S"},
			"quantity":   {"filledQty", "Qty"},
			"price":      {"avgFillPrice", "Price"},
			"timestamp":  {"timestamp", "Timestamp", "Time"},
			"commission": {"commission", "Commission"},
		}
	}
	return map[string][]string{
		"symbol":         {"Contract", "Symbol"},
		"direction":      {"B/S"},
		"quantity":       {"Qty"},
		"price":          {"Price"},
		"timestamp":      {"Timestamp", "Time", "boughtTimestamp", "Date"},
		"pnl":            {"P&L"},
		"cumulative_pnl": {"Cumulative P&L"},
		"commission":     {"Commission"},
	}
}

func (t *Tradovate) ParseRow(row *Row) (*models.Trade, bool, error) {
	symbol := models.NormalizeSymbol(row.Value("symbol"))
	if symbol == "" {
		return nil, false, models.ErrInvalidSymbol
	}

	direction, err := ParseDirection(row.Value("direction"))
	if err != nil {
		return nil, false, err
	}

	quantity, err := numeric.ParseDecimal(row.Value("quantity"), false)
	if err != nil {
		return nil, false, err
	}
	if quantity.IsZero() {
		return nil, false, models.ErrInvalidNumber
	}

	price, err := numeric.ParseDecimal(row.Value("price"), false)
	if err != nil {
		return nil, false, err
	}
	if price.IsZero() {
		return nil, false, models.ErrInvalidNumber
	}

	tradeTime, err := numeric.ParseDateTime(row.Value("timestamp"))
	if err != nil {
		return nil, false, err
	}

	commission, err := CommissionOrZero(row, "commission")
	if err != nil {
		return nil, false, err
	}

	trade := models.NewTrade()
	trade.Symbol = symbol
	trade.Direction = direction
	trade.Quantity = quantity
	trade.Commission = commission
	trade.AssetType = models.AssetFuture
	trade.RawData = row.RawData()

	if t.subFormat == tradovateTradeBreakdown {
		if pnlRaw := row.Value("pnl"); pnlRaw != "" {
			if pnl, err := numeric.ParseDecimal(pnlRaw, true); err == nil && !pnl.IsZero() {
				entryPrice := BackSolveEntryPrice(direction, price, pnl, quantity)
				trade.EntryPrice = entryPrice
				trade.ExitPrice = &price
				trade.EntryTime = tradeTime
				trade.ExitTime = &tradeTime
				trade.Status = models.StatusClosed
				return trade, false, nil
			}
		}
		trade.EntryPrice = price
		trade.EntryTime = tradeTime
		trade.Status = models.StatusOpen
		return trade, false, nil
	}

	// Order History: every row is a fill; pairing happens in PostProcess.
	trade.EntryPrice = price
	trade.EntryTime = tradeTime
	trade.Status = models.StatusOpen
	return trade, false, nil
}

// PostProcess pairs Order History fills: group by (symbol, direction),
// sort by time within the group, then pair consecutive fills (2k, 2k+1)
// into closed trades. An odd leftover fill stays open. Commissions sum
// across a paired fill. Trade Breakdown rows need no post-processing.
// Pairing goes by time order alone and does not reconcile running quantity,
// so fills of overlapping positions in one group can be paired wrongly.
func (t *Tradovate) PostProcess(result *dto.ParseResult) {
	if t.subFormat != tradovateOrderHistory {
		return
	}

	groups := make(map[string][]*models.Trade)
	var order []string
	for _, trade := range result.Trades.Trades {
		key := trade.Symbol + "|" + string(trade.Direction)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], trade)
	}

	var paired []*models.Trade
	for _, key := range order {
		fills := groups[key]
		sort.SliceStable(fills, func(i, j int) bool {
			return fills[i].EntryTime.Before(fills[j].EntryTime)
		})
		for i := 0; i+1 < len(fills); i += 2 {
			entry, exit := fills[i], fills[i+1]
			entry.Status = models.StatusClosed
			entry.ExitTime = &exit.EntryTime
			entry.ExitPrice = &exit.EntryPrice
			entry.Commission = entry.Commission.Add(exit.Commission)
			paired = append(paired, entry)
		}
		if len(fills)%2 == 1 {
			paired = append(paired, fills[len(fills)-1])
		}
	}
	result.Trades.Trades = paired
}
