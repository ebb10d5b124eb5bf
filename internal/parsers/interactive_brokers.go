package parsers

import (
	"strings"

	"github.com/alenon/tradeimport/internal/models"
	"github.com/alenon/tradeimport/internal/numeric"
)

// InteractiveBrokers handles both Flex-Query and Activity-Statement
// shapes. A row carrying a non-zero Realized P/L is a closed round-trip
// whose entry price is back-solved; otherwise it is an open leg.
type InteractiveBrokers struct {
	NoPostProcess
}

func (InteractiveBrokers) Broker() models.Broker { return models.BrokerInteractiveBrokers }

func (InteractiveBrokers) RequiredColumns() []string {
	return []string{"datetime", "symbol", "quantity", "price"}
}

func (InteractiveBrokers) ColumnAliases() map[string][]string {
	return map[string][]string{
		"datetime":   {"Date/Time", "Date"},
		"symbol":     {"Symbol", "UnderlyingSymbol", "Underlying Symbol"},
		"quantity":   {"Quantity"},
		"price":      {"T. Price", "Price"},
		"commission": {"Comm/Fee", "Commission"},
		"asset_class": {"Asset Category", "AssetClass"},
		"realized_pnl": {"Realized P/L", "RealizedPnL", "Fifo P/L"},
		"description": {"Description"},
	}
}

var ibAssetClassMap = map[string]models.AssetType{
	"STK":   models.AssetStock,
	"OPT":   models.AssetOption,
	"FUT":   models.AssetFuture,
	"CASH":  models.AssetForex,
	"FX":    models.AssetForex,
	"CRYPTO": models.AssetCrypto,
	"CFD":   models.AssetCFD,
}

func (p InteractiveBrokers) ParseRow(row *Row) (*models.Trade, bool, error) {
	rawSymbol := row.Value("symbol")
	// Strips a trailing venue suffix e.g. "AAPL NASDAQ" -> "AAPL".
	firstToken := strings.Fields(rawSymbol)
	if len(firstToken) == 0 {
		return nil, false, models.ErrInvalidSymbol
	}
	symbol := models.NormalizeSymbol(firstToken[0])

	rowTime, err := numeric.ParseDateTime(row.Value("datetime"))
	if err != nil {
		return nil, false, err
	}

	quantity, err := numeric.ParseDecimal(row.Value("quantity"), true)
	if err != nil {
		return nil, false, err
	}
	direction, quantity := DirectionFromSignedQuantity(quantity)
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

	commission, err := CommissionOrZero(row, "commission")
	if err != nil {
		return nil, false, err
	}

	trade := models.NewTrade()
	trade.Symbol = symbol
	trade.Direction = direction
	trade.Quantity = quantity
	trade.Commission = commission
	trade.Notes = row.Value("description")
	trade.RawData = row.RawData()
	trade.AssetType = models.AssetStock
	if code := strings.ToUpper(strings.TrimSpace(row.Value("asset_class"))); code != "" {
		if mapped, ok := ibAssetClassMap[code]; ok {
			trade.AssetType = mapped
		}
	}

	pnlStr := row.Value("realized_pnl")
	if pnlStr != "" {
		pnl, err := numeric.ParseDecimal(pnlStr, true)
		if err == nil && !pnl.IsZero() {
			// A Realized P/L row reports the closing execution's side
			// (sell-to-close-long is negative, buy-to-close-short is
			// positive), the inverse of the round-trip's own direction.
			closedDirection := invertDirection(direction)
			trade.Direction = closedDirection
			entryPrice := BackSolveEntryPrice(closedDirection, price, pnl, quantity)
			trade.EntryPrice = entryPrice
			trade.ExitPrice = &price
			trade.EntryTime = rowTime
			trade.ExitTime = &rowTime
			trade.Status = models.StatusClosed
			return trade, false, nil
		}
	}

	trade.EntryPrice = price
	trade.EntryTime = rowTime
	trade.Status = models.StatusOpen
	return trade, false, nil
}
