package parsers

import (
	"strings"

	"github.com/alenon/tradeimport/internal/models"
	"github.com/alenon/tradeimport/internal/numeric"
)

// NinjaTrader8 rows already carry paired entry/exit values — no
// fill-aggregation step is needed.
type NinjaTrader8 struct {
	NoPostProcess
}

func (NinjaTrader8) Broker() models.Broker { return models.BrokerNinjaTrader }

func (NinjaTrader8) RequiredColumns() []string {
	return []string{"symbol", "quantity", "entry_price", "exit_price"}
}

func (NinjaTrader8) ColumnAliases() map[string][]string {
	return map[string][]string{
		"trade_number": {"Trade #"},
		"symbol":       {"Instrument"},
		"account":      {"Account"},
		"strategy":     {"Strategy"},
		"direction":    {"Market pos.", "Market position"},
		"quantity":     {"Quantity", "Qty"},
		"entry_price":  {"Entry price"},
		"exit_price":   {"Exit price"},
		"entry_time":   {"Entry time"},
		"exit_time":    {"Exit time"},
		"entry_name":   {"Entry name"},
		"exit_name":    {"Exit name"},
		"commission":   {"Commission"},
		"mae":          {"MAE"},
		"mfe":          {"MFE"},
	}
}

var ntFuturesRoots = map[string]bool{
	"ES": true, "NQ": true, "YM": true, "RTY": true,
	"MES": true, "MNQ": true, "MYM": true, "M2K": true,
	"CL": true, "GC": true, "SI": true, "NG": true,
	"6E": true, "6J": true, "6B": true, "6A": true,
	"ZB": true, "ZN": true, "ZF": true, "ZT": true,
}

func detectNTAssetType(root string) models.AssetType {
	if ntFuturesRoots[root] {
		return models.AssetFuture
	}
	if len(root) == 6 && isAlpha(root) {
		return models.AssetForex
	}
	return models.AssetFuture
}

func (NinjaTrader8) ParseRow(row *Row) (*models.Trade, bool, error) {
	symbol := models.NormalizeSymbol(row.Value("symbol"))
	if symbol == "" {
		return nil, false, models.ErrInvalidSymbol
	}

	directionRaw := strings.ToLower(row.Value("direction"))
	var direction models.Direction
	switch {
	case strings.Contains(directionRaw, "long"):
		direction = models.DirectionLong
	case strings.Contains(directionRaw, "short"):
		direction = models.DirectionShort
	default:
		return nil, false, models.ErrInvalidDirection
	}

	quantity, err := numeric.ParseDecimal(row.Value("quantity"), false)
	if err != nil {
		return nil, false, err
	}
	if quantity.IsZero() {
		return nil, false, models.ErrInvalidNumber
	}

	entryPrice, err := numeric.ParseDecimal(row.Value("entry_price"), false)
	if err != nil {
		return nil, false, err
	}
	if entryPrice.IsZero() {
		return nil, false, models.ErrInvalidNumber
	}

	entryTime, err := numeric.ParseDateTime(row.Value("entry_time"))
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
	trade.EntryPrice = entryPrice
	trade.EntryTime = entryTime
	trade.Commission = commission
	trade.AssetType = detectNTAssetType(symbol)
	trade.BrokerTradeID = row.Value("trade_number")
	trade.RawData = row.RawData()

	if strategy := strings.TrimSpace(row.Value("strategy")); strategy != "" {
		trade.AddTag(strategy)
	}

	var notesParts []string
	if entryName := row.Value("entry_name"); entryName != "" {
		notesParts = append(notesParts, "Entry: "+entryName)
	}
	if exitName := row.Value("exit_name"); exitName != "" {
		notesParts = append(notesParts, "Exit: "+exitName)
	}
	trade.Notes = strings.Join(notesParts, " | ")

	exitPriceStr := row.Value("exit_price")
	if exitPriceStr == "" {
		trade.Status = models.StatusOpen
		return trade, false, nil
	}
	exitPrice, err := numeric.ParseDecimal(exitPriceStr, false)
	if err != nil {
		return nil, false, err
	}

	trade.Status = models.StatusClosed
	trade.ExitPrice = &exitPrice
	if exitTimeStr := row.Value("exit_time"); exitTimeStr != "" {
		if exitTime, err := numeric.ParseDateTime(exitTimeStr); err == nil {
			trade.ExitTime = &exitTime
		}
	}
	if trade.ExitTime == nil {
		trade.ExitTime = &entryTime
	}
	return trade, false, nil
}
