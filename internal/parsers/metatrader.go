package parsers

import (
	"strings"

	"github.com/alenon/tradeimport/internal/models"
	"github.com/alenon/tradeimport/internal/numeric"
)

// metaTraderProfile parameterizes the shared MetaTrader implementation
// with the per-version column aliases; MT5 is MT4 plus extra aliases for
// its renamed/duplicate-labelled columns, not a separate parser.
type metaTraderProfile struct {
	broker       models.Broker
	extraAliases map[string][]string
}

var mt4Profile = metaTraderProfile{broker: models.BrokerMetaTrader4}

var mt5Profile = metaTraderProfile{
	broker: models.BrokerMetaTrader5,
	extraAliases: map[string][]string{
		"ticket":      {"Position", "Deal"},
		"close_time":  {"Time.1"},
		"close_price": {"Price.1"},
	},
}

// MetaTrader implements both MT4 and MT5 exports via profile.
type MetaTrader struct {
	NoPostProcess
	profile metaTraderProfile
}

// NewMetaTrader4 returns the MT4 parser.
func NewMetaTrader4() BrokerParser { return MetaTrader{profile: mt4Profile} }

// NewMetaTrader5 returns the MT5 parser (MT4 plus additional aliases).
func NewMetaTrader5() BrokerParser { return MetaTrader{profile: mt5Profile} }

func (p MetaTrader) Broker() models.Broker { return p.profile.broker }

func (MetaTrader) RequiredColumns() []string {
	return []string{"open_time", "type", "size", "symbol", "open_price"}
}

func (p MetaTrader) ColumnAliases() map[string][]string {
	aliases := map[string][]string{
		"ticket":      {"Ticket", "Position"},
		"open_time":   {"Open Time", "Time"},
		"type":        {"Type"},
		"size":        {"Size", "Volume"},
		"symbol":      {"Symbol", "Item"},
		"open_price":  {"Open Price", "Price"},
		"close_time":  {"Close Time"},
		"close_price": {"Close Price"},
		"commission":  {"Commission"},
		"swap":        {"Swap"},
		"profit":      {"Profit"},
	}
	for field, extra := range p.profile.extraAliases {
		aliases[field] = append(extra, aliases[field]...)
	}
	return aliases
}

// pendingOrderKeywords filters out bookkeeping and unfilled-order rows
// that are not trades.
var pendingOrderKeywords = []string{
	"buy limit", "sell limit", "buy stop", "sell stop",
	"balance", "credit", "deposit", "withdraw",
}

func isPendingOrRow(typeValue string) bool {
	value := strings.ToLower(strings.TrimSpace(typeValue))
	for _, kw := range pendingOrderKeywords {
		if strings.Contains(value, kw) {
			return true
		}
	}
	return false
}

// parseMTDirection maps MetaTrader's "type" field: numeric codes 0/1 mean
// buy/sell (NOT the generic direction-keyword "1"=long), else falls back
// to substring buy/sell matching.
func parseMTDirection(raw string) (models.Direction, error) {
	trimmed := strings.TrimSpace(raw)
	switch trimmed {
	case "0":
		return models.DirectionLong, nil
	case "1":
		return models.DirectionShort, nil
	}
	value := strings.ToLower(trimmed)
	if strings.Contains(value, "buy") {
		return models.DirectionLong, nil
	}
	if strings.Contains(value, "sell") {
		return models.DirectionShort, nil
	}
	return "", models.ErrInvalidDirection
}

var mtIndexCFDNames = []string{"us30", "spx500", "nas100", "uk100", "ger40", "jpn225"}
var mtCommodityCFDNames = []string{"xauusd", "xagusd", "wti", "brent", "ukoil", "usoil"}
var mtCryptoPrefixes = []string{"btc", "eth", "ltc", "xrp", "bch"}

func detectMTAssetType(symbol string) models.AssetType {
	lower := strings.ToLower(symbol)

	for _, name := range mtIndexCFDNames {
		if lower == name {
			return models.AssetCFD
		}
	}
	for _, name := range mtCommodityCFDNames {
		if lower == name {
			return models.AssetCFD
		}
	}
	if len(symbol) == 6 && isAlpha(strings.ToUpper(symbol)) {
		return models.AssetForex
	}
	for _, prefix := range mtCryptoPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return models.AssetCrypto
		}
	}
	return models.AssetCFD
}

func (p MetaTrader) ParseRow(row *Row) (*models.Trade, bool, error) {
	if isPendingOrRow(row.Value("type")) {
		return nil, true, nil
	}

	symbol := models.NormalizeSymbol(row.Value("symbol"))
	if symbol == "" {
		return nil, false, models.ErrInvalidSymbol
	}

	direction, err := parseMTDirection(row.Value("type"))
	if err != nil {
		return nil, false, err
	}

	openTime, err := numeric.ParseDateTime(row.Value("open_time"))
	if err != nil {
		return nil, false, err
	}

	size, err := numeric.ParseDecimal(row.Value("size"), false)
	if err != nil {
		return nil, false, err
	}
	if size.IsZero() {
		return nil, false, models.ErrInvalidNumber
	}

	openPrice, err := numeric.ParseDecimal(row.Value("open_price"), false)
	if err != nil {
		return nil, false, err
	}
	if openPrice.IsZero() {
		return nil, false, models.ErrInvalidNumber
	}

	commission, err := CommissionOrZero(row, "commission")
	if err != nil {
		return nil, false, err
	}
	swap, err := CommissionOrZero(row, "swap")
	if err != nil {
		return nil, false, err
	}

	trade := models.NewTrade()
	trade.Symbol = symbol
	trade.Direction = direction
	trade.EntryTime = openTime
	trade.EntryPrice = openPrice
	trade.Quantity = size
	trade.Commission = commission.Add(swap)
	trade.AssetType = detectMTAssetType(symbol)
	trade.RawData = row.RawData()

	closeTimeStr := row.Value("close_time")
	closePriceStr := row.Value("close_price")
	if closeTimeStr == "" || closePriceStr == "" {
		trade.Status = models.StatusOpen
		return trade, false, nil
	}

	closePrice, err := numeric.ParseDecimal(closePriceStr, false)
	if err != nil || closePrice.IsZero() || closePrice.IsNegative() {
		trade.Status = models.StatusOpen
		return trade, false, nil
	}
	closeTime, err := numeric.ParseDateTime(closeTimeStr)
	if err != nil {
		trade.Status = models.StatusOpen
		return trade, false, nil
	}

	trade.Status = models.StatusClosed
	trade.ExitTime = &closeTime
	trade.ExitPrice = &closePrice
	return trade, false, nil
}

var _ BrokerParser = MetaTrader{}
