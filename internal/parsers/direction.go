package parsers

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alenon/tradeimport/internal/models"
)

// longKeywords and shortKeywords are matched case-insensitively as
// substrings, in listed order; the first list to match wins.
var longKeywords = []string{"buy", "long", "b", "1", "call"}
var shortKeywords = []string{"sell", "short", "s", "-1", "put", "ss"}

// ParseDirection maps a textual direction field to Long/Short using
// first-match-wins substring keywords.
func ParseDirection(raw string) (models.Direction, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", models.ErrInvalidDirection
	}
	for _, kw := range longKeywords {
		if strings.Contains(value, kw) {
			return models.DirectionLong, nil
		}
	}
	for _, kw := range shortKeywords {
		if strings.Contains(value, kw) {
			return models.DirectionShort, nil
		}
	}
	return "", models.ErrInvalidDirection
}

// DirectionFromSignedQuantity infers direction from the sign of a
// quantity when no textual direction field is present: positive -> long,
// negative -> short. Returns the direction and the absolute quantity.
func DirectionFromSignedQuantity(qty decimal.Decimal) (models.Direction, decimal.Decimal) {
	if qty.IsNegative() {
		return models.DirectionShort, qty.Abs()
	}
	return models.DirectionLong, qty.Abs()
}

// invertDirection flips long/short, for execution rows whose sign
// reflects the closing action rather than the position itself.
func invertDirection(d models.Direction) models.Direction {
	if d == models.DirectionShort {
		return models.DirectionLong
	}
	return models.DirectionShort
}
