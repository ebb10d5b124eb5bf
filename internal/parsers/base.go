// Package parsers implements the per-broker CSV parsers and the shared
// preprocessing pipeline they all build on.
package parsers

import (
	"encoding/csv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alenon/tradeimport/internal/dto"
	"github.com/alenon/tradeimport/internal/models"
	"github.com/alenon/tradeimport/internal/numeric"
)

// SubFormatDetector is implemented by parsers whose broker exports more
// than one row shape (Tradovate's Trade Breakdown vs Order History). Run
// calls DetectSubFormat once, right after reading headers, so the parser
// can pick its required columns/aliases/row semantics before column
// resolution happens.
type SubFormatDetector interface {
	DetectSubFormat(headers []string)
}

// BrokerParser is the strategy every broker implementation provides. The
// shared Run function supplies everything else: decoding, row iteration,
// column resolution, sorting, and result bookkeeping.
type BrokerParser interface {
	// Broker returns the stable identifier stamped on every produced trade.
	Broker() models.Broker

	// RequiredColumns lists canonical field names that must resolve to a
	// column (by canonical name or alias) or the whole file fails.
	RequiredColumns() []string

	// ColumnAliases maps a canonical field name to the source header
	// spellings (case-insensitive) a parser recognizes for it.
	ColumnAliases() map[string][]string

	// ParseRow converts one data row into a Trade. Returning (nil, true,
	// nil) skips the row without recording an error (e.g. a pending
	// order, a blank line that survived IsEmptyRow). Returning a non-nil
	// error marks the row as a row-level recoverable failure.
	ParseRow(row *Row) (*models.Trade, bool, error)

	// PostProcess runs once after every row has been parsed, with the
	// chance to aggregate fills or emit warnings. Parsers without a
	// post-processing step embed NoPostProcess.
	PostProcess(result *dto.ParseResult)
}

// NoPostProcess is embedded by parsers with no post-row-iteration step.
type NoPostProcess struct{}

func (NoPostProcess) PostProcess(*dto.ParseResult) {}

// Row is one data row together with the machinery parsers need to read
// it: a typed header->index lookup built once per file, the raw cells,
// and the 1-based source line number (header counted as row 1).
type Row struct {
	cells     []string
	columns   map[string]int // canonical field -> column index
	LineNum   int
}

// Value returns the trimmed cell for a canonical field, or "" if the
// field did not resolve to a column or the cell is out of range.
func (r *Row) Value(canonical string) string {
	idx, ok := r.columns[canonical]
	if !ok || idx < 0 || idx >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[idx])
}

// Has reports whether a canonical field resolved to a column at all.
func (r *Row) Has(canonical string) bool {
	_, ok := r.columns[canonical]
	return ok
}

// RawData snapshots every resolved canonical field's value, for capture
// into Trade.RawData.
func (r *Row) RawData() map[string]string {
	raw := make(map[string]string, len(r.columns))
	for field := range r.columns {
		if v := r.Value(field); v != "" {
			raw[field] = v
		}
	}
	return raw
}

// Raw returns the untouched row, for error reporting.
func (r *Row) Raw() string {
	return strings.Join(r.cells, ",")
}

// isEmptyRow reports whether every cell is empty or whitespace.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// buildColumnIndex resolves every canonical field named by aliases to its
// header column, case-insensitively.
// A field with no alias list falls back to matching its own canonical
// name.
func buildColumnIndex(headers []string, aliases map[string][]string) map[string]int {
	index := make(map[string]int, len(aliases))
	for field, names := range aliases {
		candidates := names
		if len(candidates) == 0 {
			candidates = []string{field}
		}
		for _, name := range candidates {
			if i := findColumn(headers, name); i >= 0 {
				index[field] = i
				break
			}
		}
	}
	return index
}

func findColumn(headers []string, name string) int {
	name = strings.TrimSpace(name)
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// missingRequiredColumns reports which required canonical fields failed
// to resolve to a column.
func missingRequiredColumns(required []string, index map[string]int) []string {
	var missing []string
	for _, field := range required {
		if _, ok := index[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// Run executes the shared 8-step pipeline (§4.2) against raw bytes: decode,
// split into rows, resolve columns, check required columns, iterate rows
// via parser.ParseRow, tag produced trades, run PostProcess, then sort.
func Run(parser BrokerParser, raw []byte, sourceName, accountID string) *dto.ParseResult {
	collection := models.NewTradeCollection(sourceName, parser.Broker(), time.Now().UTC())
	result := dto.NewParseResult(parser.Broker(), collection)

	text, err := numeric.DecodeBytes(raw)
	if err != nil {
		result.AddError(0, "", err.Error(), "")
		return result
	}

	rows, err := readCSV(text)
	if err != nil {
		result.AddError(0, "", err.Error(), "")
		return result
	}
	if len(rows) == 0 || isEmptyRow(rows[0]) {
		result.AddError(0, "", models.ErrEmptyHeader.Error(), "")
		return result
	}

	headers := rows[0]
	if detector, ok := parser.(SubFormatDetector); ok {
		detector.DetectSubFormat(headers)
	}
	columnIndex := buildColumnIndex(headers, parser.ColumnAliases())
	if missing := missingRequiredColumns(parser.RequiredColumns(), columnIndex); len(missing) > 0 {
		result.AddError(0, "", models.ErrMissingRequiredColumns.Error()+": "+strings.Join(missing, ", "), "")
		return result
	}

	dataRows := rows[1:]
	result.TotalRows = len(dataRows)

	for i, cells := range dataRows {
		lineNum := i + 2
		if isEmptyRow(cells) {
			result.SkippedRows++
			continue
		}

		row := &Row{cells: cells, columns: columnIndex, LineNum: lineNum}
		trade, skip, err := parser.ParseRow(row)
		if err != nil {
			result.AddError(lineNum, "", err.Error(), row.Raw())
			continue
		}
		if skip || trade == nil {
			result.SkippedRows++
			continue
		}

		trade.BrokerName = parser.Broker()
		trade.AccountID = accountID
		collection.Add(trade)
		result.ParsedSuccessfully++
	}

	parser.PostProcess(result)

	collection.SortByEntryTime()
	return result
}

func readCSV(text string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ParseDecimalField parses a row field as a decimal, recording a row-level
// error via the zero-value/err idiom callers already use.
func ParseDecimalField(row *Row, field string, allowNegative bool) (decimal.Decimal, error) {
	return numeric.ParseDecimal(row.Value(field), allowNegative)
}

// CommissionOrZero parses a commission-like field as a non-negative
// decimal, defaulting to zero when the field is absent or blank.
func CommissionOrZero(row *Row, field string) (decimal.Decimal, error) {
	value := row.Value(field)
	if value == "" {
		return decimal.Zero, nil
	}
	parsed, err := numeric.ParseDecimal(value, true)
	if err != nil {
		return decimal.Zero, err
	}
	return parsed.Abs(), nil
}
