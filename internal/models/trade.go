package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trade is a single, possibly-paired position produced by a parser.
type Trade struct {
	ID             string            `json:"id"`
	BrokerTradeID  string            `json:"broker_trade_id,omitempty"`
	Symbol         string            `json:"symbol"`
	AssetType      AssetType         `json:"asset_type"`
	Direction      Direction         `json:"direction"`
	Status         Status            `json:"status"`
	EntryTime      time.Time         `json:"entry_time"`
	ExitTime       *time.Time        `json:"exit_time,omitempty"`
	EntryPrice     decimal.Decimal   `json:"entry_price"`
	ExitPrice      *decimal.Decimal  `json:"exit_price,omitempty"`
	Quantity       decimal.Decimal   `json:"quantity"`
	Commission     decimal.Decimal   `json:"commission"`
	OverridePnL    *decimal.Decimal  `json:"override_pnl,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	RawData        map[string]string `json:"raw_data,omitempty"`
	AccountID      string            `json:"account_id,omitempty"`
	BrokerName     Broker            `json:"broker_name,omitempty"`
}

// NewTrade allocates a Trade with a fresh opaque identifier.
func NewTrade() *Trade {
	return &Trade{ID: uuid.NewString()}
}

// PnLGross is the gross profit or loss, undefined (second return false)
// for an open trade with no override.
func (t *Trade) PnLGross() (decimal.Decimal, bool) {
	if t.OverridePnL != nil {
		return *t.OverridePnL, true
	}
	if t.Status == StatusOpen || t.ExitPrice == nil {
		return decimal.Zero, false
	}
	diff := t.ExitPrice.Sub(t.EntryPrice)
	if t.Direction == DirectionShort {
		diff = t.EntryPrice.Sub(*t.ExitPrice)
	}
	return diff.Mul(t.Quantity), true
}

// PnLNet is PnLGross minus commission.
func (t *Trade) PnLNet() (decimal.Decimal, bool) {
	gross, ok := t.PnLGross()
	if !ok {
		return decimal.Zero, false
	}
	return gross.Sub(t.Commission), true
}

// PnLPercent is gross P&L as a percentage of cost basis; 0 when the
// denominator is 0.
func (t *Trade) PnLPercent() (decimal.Decimal, bool) {
	gross, ok := t.PnLGross()
	if !ok {
		return decimal.Zero, false
	}
	basis := t.EntryPrice.Mul(t.Quantity)
	if basis.IsZero() {
		return decimal.Zero, true
	}
	return gross.Div(basis).Mul(decimal.NewFromInt(100)), true
}

// DurationMinutes is the closed-trade holding period in whole minutes.
func (t *Trade) DurationMinutes() (int64, bool) {
	if t.Status == StatusOpen || t.ExitTime == nil {
		return 0, false
	}
	return int64(t.ExitTime.Sub(t.EntryTime) / time.Minute), true
}

// IsWinner reports whether the trade closed with positive net P&L.
// Undefined (false) when net P&L is undefined.
func (t *Trade) IsWinner() (bool, bool) {
	net, ok := t.PnLNet()
	if !ok {
		return false, false
	}
	return net.IsPositive(), true
}

// AddTag lowercases, trims, and de-duplicates tags on insertion.
func (t *Trade) AddTag(tag string) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return
	}
	for _, existing := range t.Tags {
		if existing == tag {
			return
		}
	}
	t.Tags = append(t.Tags, tag)
}

// RemoveTag removes a tag (case-insensitive) if present.
func (t *Trade) RemoveTag(tag string) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	filtered := t.Tags[:0]
	for _, existing := range t.Tags {
		if existing != tag {
			filtered = append(filtered, existing)
		}
	}
	t.Tags = filtered
}

// ChartMarker is a lightweight entry/exit marker suitable for plotting.
// Purely a data-shaping convenience; emitting it to an actual chart
// library is outside this module.
type ChartMarker struct {
	Time   time.Time `json:"time"`
	Price  decimal.Decimal `json:"price"`
	Label  string    `json:"label"`
	Winner bool      `json:"winner,omitempty"`
}

// ChartMarkers projects entry (and, if closed, exit) points for display.
func (t *Trade) ChartMarkers() []ChartMarker {
	markers := []ChartMarker{
		{Time: t.EntryTime, Price: t.EntryPrice, Label: "entry " + string(t.Direction)},
	}
	if t.Status != StatusOpen && t.ExitTime != nil && t.ExitPrice != nil {
		winner, _ := t.IsWinner()
		markers = append(markers, ChartMarker{
			Time: *t.ExitTime, Price: *t.ExitPrice, Label: "exit", Winner: winner,
		})
	}
	return markers
}

// NormalizeSymbol uppercases, trims, and strips a futures-style month-year
// contract suffix (e.g. "ESH4" -> "ES", "MGC 03-24" -> "MGC"). Idempotent:
// re-applying it to its own output is a no-op.
func NormalizeSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if root, ok := stripContractCode(symbol); ok {
		return root
	}
	return symbol
}

// contractMonthCodes are the month letters used in futures contract codes.
const contractMonthCodes = "FGHJKMNQUVXZ"

// stripContractCode recognizes ROOT+MONTHLETTER+1-2 digit year (ESH4,
// MNQZ25) and ROOT SPACE MM-YY (MGC 03-24), returning the bare root.
func stripContractCode(symbol string) (string, bool) {
	if root, ok := stripLetterCode(symbol); ok {
		return root, true
	}
	return stripDateCode(symbol)
}

func stripLetterCode(symbol string) (string, bool) {
	n := len(symbol)
	for digits := 2; digits >= 1; digits-- {
		if n < digits+2 {
			continue
		}
		yearStart := n - digits
		allDigits := true
		for _, r := range symbol[yearStart:] {
			if r < '0' || r > '9' {
				allDigits = false
				break
			}
		}
		if !allDigits {
			continue
		}
		monthIdx := yearStart - 1
		month := symbol[monthIdx]
		if strings.IndexByte(contractMonthCodes, month) == -1 {
			continue
		}
		root := symbol[:monthIdx]
		if len(root) >= 1 && len(root) <= 4 && isAlpha(root) {
			return root, true
		}
	}
	return "", false
}

func stripDateCode(symbol string) (string, bool) {
	fields := strings.Fields(symbol)
	if len(fields) != 2 {
		return "", false
	}
	root, code := fields[0], fields[1]
	if !isAlpha(root) {
		return "", false
	}
	code = strings.ReplaceAll(code, "-", "")
	if len(code) != 4 {
		return "", false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return root, true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// sortByEntryTime sorts trades in-place, non-decreasing by EntryTime,
// stably (ties keep their relative order).
func sortByEntryTime(trades []*Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].EntryTime.Before(trades[j].EntryTime)
	})
}
