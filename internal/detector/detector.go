// Package detector chooses a broker parser from a filename hint and, when
// that is inconclusive, content signatures in the first lines of a file.
package detector

import (
	"regexp"
	"strings"

	"github.com/alenon/tradeimport/internal/models"
	"github.com/alenon/tradeimport/internal/parsers"
)

// DetectFromFilename applies the lowercase-stem substring rule. Returns
// ("", false) when no hint matches.
func DetectFromFilename(filename string) (models.Broker, bool) {
	stem := strings.ToLower(filename)

	switch {
	case containsAny(stem, "interactive", "ib_", "ibkr"):
		return models.BrokerInteractiveBrokers, true
	case containsAny(stem, "mt5"):
		return models.BrokerMetaTrader5, true
	case containsAny(stem, "metatrader", "mt4"):
		return models.BrokerMetaTrader4, true
	case containsAny(stem, "binance"):
		return models.BrokerBinance, true
	case containsAny(stem, "ninja", "ninjatrader", "nt8"):
		return models.BrokerNinjaTrader, true
	case containsAny(stem, "tradovate"):
		return models.BrokerTradovate, true
	}
	return "", false
}

var ibAccountToken = regexp.MustCompile(`(?i)\bu\d+\b`)

// ibSignatures short-circuits detection to Interactive Brokers: any one
// hit is decisive, no threshold needed.
var ibSignatures = []string{
	"ibcommission", "ibtradeid", "account management", "flex query", "statement,header",
}

// ntSignatures, tradovateSignatures, mtSignatures, binanceSignatures are
// counted; the broker whose count reaches its threshold wins, ties
// resolved in NT -> Tradovate -> MT -> Binance order.
var ntSignatures = []string{"instrument", "entry price", "exit price", "market pos", "trade #"}
var tradovateSignatures = []string{"contract", "b/s", "qty", "p&l", "cumulative p&l"}
var mtSignatures = []string{"ticket", "open time", "close time", "open price", "close price", "swap"}
var binanceSignatures = []string{"pair", "side", "executed", "realized profit", "date(utc)"}

const (
	ntThreshold       = 2
	tradovateThreshold = 2
	mtThreshold       = 3
	binanceThreshold  = 2
)

// DetectFromContent scores the first ~5 lines of a file's text against
// each broker's signature set, applying short-circuit rules first.
func DetectFromContent(sampleLines []string) models.Broker {
	sample := strings.ToLower(strings.Join(sampleLines, "\n"))

	for _, sig := range ibSignatures {
		if strings.Contains(sample, sig) {
			return models.BrokerInteractiveBrokers
		}
	}
	if ibAccountToken.MatchString(sample) {
		return models.BrokerInteractiveBrokers
	}

	if strings.Contains(sample, "contract") && strings.Contains(sample, "b/s") && strings.Contains(sample, "qty") {
		return models.BrokerTradovate
	}
	if strings.Contains(sample, "buyprice") && strings.Contains(sample, "sellprice") && strings.Contains(sample, "boughttimestamp") {
		return models.BrokerTradovate
	}

	ntCount := countHits(sample, ntSignatures)
	tradovateCount := countHits(sample, tradovateSignatures)
	mtCount := countHits(sample, mtSignatures)
	binanceCount := countHits(sample, binanceSignatures)

	switch {
	case ntCount >= ntThreshold:
		return models.BrokerNinjaTrader
	case tradovateCount >= tradovateThreshold:
		return models.BrokerTradovate
	case mtCount >= mtThreshold:
		return models.BrokerMetaTrader4
	case binanceCount >= binanceThreshold:
		return models.BrokerBinance
	}

	return models.BrokerGeneric
}

// Detect combines both signals: a conclusive filename hint wins outright;
// otherwise content heuristics decide, falling back to Generic.
func Detect(filename string, sampleLines []string) models.Broker {
	if broker, ok := DetectFromFilename(filename); ok {
		return broker
	}
	return DetectFromContent(sampleLines)
}

func countHits(sample string, signatures []string) int {
	count := 0
	for _, sig := range signatures {
		if strings.Contains(sample, sig) {
			count++
		}
	}
	return count
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// ParserFor returns the BrokerParser strategy implementing broker.
// Unsupported/reserved broker tokens return (nil, false).
func ParserFor(broker models.Broker, bucket parsers.AggregationBucket) (parsers.BrokerParser, bool) {
	switch broker {
	case models.BrokerGeneric:
		return parsers.Generic{}, true
	case models.BrokerInteractiveBrokers:
		return parsers.InteractiveBrokers{}, true
	case models.BrokerMetaTrader4:
		return parsers.NewMetaTrader4(), true
	case models.BrokerMetaTrader5:
		return parsers.NewMetaTrader5(), true
	case models.BrokerBinance:
		return parsers.NewBinance(bucket), true
	case models.BrokerNinjaTrader:
		return parsers.NinjaTrader8{}, true
	case models.BrokerTradovate:
		return parsers.NewTradovate(), true
	}
	return nil, false
}
