package parsers

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alenon/tradeimport/internal/dto"
	"github.com/alenon/tradeimport/internal/models"
	"github.com/alenon/tradeimport/internal/numeric"
)

// Generic is the canonical-column, no-broker-quirks parser: a straight
// mapping of symbol,direction,entry_time,entry_price,quantity and the
// optional exit/commission/asset_type/tags/notes columns.
type Generic struct {
	NoPostProcess
}

func (Generic) Broker() models.Broker { return models.BrokerGeneric }

func (Generic) RequiredColumns() []string {
	return []string{"symbol", "direction", "entry_time", "entry_price", "quantity"}
}

func (Generic) ColumnAliases() map[string][]string {
	return map[string][]string{
		"symbol":      {"symbol", "ticker", "stock symbol"},
		"direction":   {"direction", "type", "transaction type", "action", "side"},
		"entry_time":  {"entry_time", "date", "trade date", "transaction date"},
		"entry_price": {"entry_price", "price", "unit price", "share price"},
		"quantity":    {"quantity", "shares", "amount"},
		"exit_time":   {"exit_time"},
		"exit_price":  {"exit_price"},
		"commission":  {"commission", "fee", "fees"},
		"asset_type":  {"asset_type"},
		"tags":        {"tags"},
		"notes":       {"notes", "description", "memo"},
	}
}

func (g Generic) ParseRow(row *Row) (*models.Trade, bool, error) {
	symbol := models.NormalizeSymbol(row.Value("symbol"))
	if symbol == "" {
		return nil, false, models.ErrInvalidSymbol
	}

	entryTime, err := numeric.ParseDateTime(row.Value("entry_time"))
	if err != nil {
		return nil, false, err
	}

	entryPrice, err := numeric.ParseDecimal(row.Value("entry_price"), false)
	if err != nil {
		return nil, false, err
	}
	if entryPrice.IsZero() {
		return nil, false, models.ErrInvalidNumber
	}

	quantity, err := numeric.ParseDecimal(row.Value("quantity"), false)
	if err != nil {
		return nil, false, err
	}
	if quantity.IsZero() {
		return nil, false, models.ErrInvalidNumber
	}

	direction, err := ParseDirection(row.Value("direction"))
	if err != nil {
		return nil, false, err
	}

	trade := models.NewTrade()
	trade.Symbol = symbol
	trade.Direction = direction
	trade.EntryTime = entryTime
	trade.EntryPrice = entryPrice
	trade.Quantity = quantity
	trade.AssetType = models.AssetStock
	trade.RawData = row.RawData()

	if assetStr := row.Value("asset_type"); assetStr != "" {
		trade.AssetType = models.AssetType(strings.ToLower(assetStr))
	}

	if commStr := row.Value("commission"); commStr != "" {
		commission, err := numeric.ParseDecimal(commStr, false)
		if err != nil {
			return nil, false, err
		}
		trade.Commission = commission
	}

	if tagsStr := row.Value("tags"); tagsStr != "" {
		for _, tag := range strings.Split(tagsStr, ",") {
			trade.AddTag(tag)
		}
	}
	trade.Notes = row.Value("notes")

	exitTimeStr := row.Value("exit_time")
	exitPriceStr := row.Value("exit_price")
	if exitTimeStr == "" && exitPriceStr == "" {
		trade.Status = models.StatusOpen
		return trade, false, nil
	}

	exitTime, err := numeric.ParseDateTime(exitTimeStr)
	if err != nil {
		return nil, false, err
	}
	var exitPrice decimal.Decimal
	exitPrice, err = numeric.ParseDecimal(exitPriceStr, false)
	if err != nil {
		return nil, false, err
	}
	if exitTime.Before(entryTime) {
		return nil, false, models.ErrInvalidDateTime
	}

	trade.Status = models.StatusClosed
	trade.ExitTime = &exitTime
	trade.ExitPrice = &exitPrice
	return trade, false, nil
}
