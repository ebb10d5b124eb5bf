package parsers

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alenon/tradeimport/internal/dto"
	"github.com/alenon/tradeimport/internal/models"
	"github.com/alenon/tradeimport/internal/numeric"
)

// binanceQuoteCurrencies is the bounded known-quote list used to split a
// concatenated pair like BTCUSDT into BTC/USDT.
var binanceQuoteCurrencies = []string{"USDT", "BUSD", "BTC", "ETH", "BNB", "USD", "USDC"}

// Binance normalizes spot/futures pairs, back-solves closed trades from a
// realized-profit column, and aggregates same-bucket fills after parsing.
type Binance struct {
	aggregator FillAggregator
}

// NewBinance returns the Binance parser. bucket is the fill-aggregation
// granularity (policy, not a physical constant; see the aggregator).
func NewBinance(bucket AggregationBucket) BrokerParser {
	return Binance{aggregator: FillAggregator{Bucket: bucket}}
}

func (Binance) Broker() models.Broker { return models.BrokerBinance }

func (Binance) RequiredColumns() []string {
	return []string{"symbol", "direction", "price", "quantity"}
}

func (Binance) ColumnAliases() map[string][]string {
	return map[string][]string{
		"datetime":   {"Date(UTC)", "Date"},
		"symbol":     {"Pair", "Symbol"},
		"direction":  {"Side"},
		"price":      {"Price"},
		"quantity":   {"Executed", "Quantity"},
		"commission": {"Fee", "Commission"},
		"pnl":        {"Realized Profit"},
	}
}

func normalizeBinanceSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(symbol, "/") {
		return symbol
	}
	for _, quote := range binanceQuoteCurrencies {
		if strings.HasSuffix(symbol, quote) {
			base := strings.TrimSuffix(symbol, quote)
			if len(base) >= 2 {
				return base + "/" + quote
			}
		}
	}
	return symbol
}

func (b Binance) ParseRow(row *Row) (*models.Trade, bool, error) {
	symbol := normalizeBinanceSymbol(row.Value("symbol"))
	if symbol == "" || symbol == "/" {
		return nil, false, models.ErrInvalidSymbol
	}

	direction, err := ParseDirection(row.Value("direction"))
	if err != nil {
		return nil, false, err
	}

	tradeTime, err := numeric.ParseDateTime(row.Value("datetime"))
	if err != nil {
		return nil, false, err
	}

	price, err := numeric.ParseDecimal(row.Value("price"), false)
	if err != nil {
		return nil, false, err
	}
	if price.IsZero() {
		return nil, false, models.ErrInvalidNumber
	}

	quantity, err := numeric.ParseDecimal(row.Value("quantity"), false)
	if err != nil {
		return nil, false, err
	}
	if quantity.IsZero() {
		return nil, false, models.ErrInvalidNumber
	}

	commission := decimal.Zero
	if feeRaw := row.Value("commission"); feeRaw != "" {
		stripped := numeric.StripNonNumeric(feeRaw)
		if stripped != "" {
			parsed, err := numeric.ParseDecimal(stripped, true)
			if err == nil {
				commission = parsed.Abs()
			}
		}
	}

	trade := models.NewTrade()
	trade.Symbol = symbol
	trade.Direction = direction
	trade.Quantity = quantity
	trade.Commission = commission
	trade.AssetType = models.AssetCrypto
	trade.RawData = row.RawData()

	if pnlRaw := row.Value("pnl"); pnlRaw != "" {
		pnl, err := numeric.ParseDecimal(pnlRaw, true)
		if err == nil {
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

func (b Binance) PostProcess(result *dto.ParseResult) {
	before := result.Trades.Len()
	merged := b.aggregator.Aggregate(result.Trades.Trades)
	if len(merged) != before {
		result.Trades.Trades = merged
		result.AddWarning(fmt.Sprintf("aggregated %d fills into %d trades", before, len(merged)))
	}
}
