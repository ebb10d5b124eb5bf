// Package dto holds the wire-facing shapes produced by parsers and the
// statistics engine.
package dto

import (
	"github.com/alenon/tradeimport/internal/models"
)

// ParseError is a single row-level (or file-level, when RowNumber is 0)
// failure collected during a parse.
type ParseError struct {
	RowNumber int     `json:"row_number"`
	Column    *string `json:"column"`
	Message   string  `json:"message"`
	RawValue  *string `json:"raw_value"`
}

// ParseResult is the output contract of every parser: a TradeCollection
// plus error/warning lists and row-accounting counters.
type ParseResult struct {
	Trades             *models.TradeCollection `json:"trades"`
	Errors             []ParseError            `json:"errors"`
	Warnings           []string                `json:"warnings"`
	TotalRows          int                     `json:"total_rows"`
	ParsedSuccessfully int                     `json:"parsed_successfully"`
	SkippedRows        int                     `json:"skipped_rows"`
	BrokerDetected     models.Broker           `json:"broker_detected"`
}

// NewParseResult creates an empty result bound to a broker and a fresh
// collection.
func NewParseResult(broker models.Broker, collection *models.TradeCollection) *ParseResult {
	return &ParseResult{Trades: collection, BrokerDetected: broker}
}

// AddError records a row-level recoverable error; column/rawValue may be
// nil when not identifiable.
func (r *ParseResult) AddError(rowNumber int, column, message string, rawValue string) {
	var colPtr, rawPtr *string
	if column != "" {
		colPtr = &column
	}
	if rawValue != "" {
		rawPtr = &rawValue
	}
	r.Errors = append(r.Errors, ParseError{
		RowNumber: rowNumber,
		Column:    colPtr,
		Message:   message,
		RawValue:  rawPtr,
	})
}

// AddWarning records an informational message that does not affect row
// counters.
func (r *ParseResult) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

// Success reports whether the parse avoided a fatal file-level failure —
// a single error carrying RowNumber 0.
func (r *ParseResult) Success() bool {
	for _, e := range r.Errors {
		if e.RowNumber == 0 {
			return false
		}
	}
	return true
}

// HasErrors reports whether any error (fatal or row-level) was recorded.
func (r *ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// SuccessRate is parsed/total as a percentage, rounded to one decimal.
// Returns 0 when TotalRows is 0.
func (r *ParseResult) SuccessRate() float64 {
	if r.TotalRows == 0 {
		return 0
	}
	rate := float64(r.ParsedSuccessfully) / float64(r.TotalRows) * 100
	return roundTo(rate, 1)
}

func roundTo(v float64, decimals int) float64 {
	pow := 1.0
	for i := 0; i < decimals; i++ {
		pow *= 10
	}
	return float64(int64(v*pow+sign(v)*0.5)) / pow
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
