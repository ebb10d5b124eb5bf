// Package numeric holds the exact decimal and tolerant datetime parsing
// shared by every broker parser.
package numeric

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alenon/tradeimport/internal/models"
)

func init() {
	// Division must keep at least 12 significant digits; 16 gives headroom
	// for chained price/quantity divisions (entry-price back-solve, fill
	// weighting) without losing precision at the boundary.
	decimal.DivisionPrecision = 16
}

// ParseDecimal parses a broker-formatted numeric string into an exact
// decimal. It tolerates a leading currency sigil, thousands separators,
// surrounding whitespace, and accounting-style parentheses for negative
// values. allowNegative=false rejects a negative result with
// ErrNegativeDisallowed instead of silently accepting it.
func ParseDecimal(value string, allowNegative bool) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)

	for _, sigil := range []string{"$", "€", "£", "¥"} {
		value = strings.ReplaceAll(value, sigil, "")
	}
	value = strings.ReplaceAll(value, ",", "")
	value = strings.TrimSpace(value)

	if value == "" || value == "-" {
		return decimal.Zero, nil
	}

	negative := false
	if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		value = strings.Trim(value, "()")
		negative = true
	}

	dec, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, models.ErrInvalidNumber
	}

	if negative {
		dec = dec.Neg()
	}

	if !allowNegative && dec.IsNegative() {
		return decimal.Zero, models.ErrNegativeDisallowed
	}

	return dec, nil
}

// StripNonNumeric keeps only digits, minus signs and decimal points —
// used for broker fee columns that may carry a trailing currency code
// (e.g. Binance's "0.001 BNB").
func StripNonNumeric(value string) string {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
