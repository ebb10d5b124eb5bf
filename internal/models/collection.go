package models

import (
	"strings"
	"time"
)

// TradeCollection is an ordered, insertion-extensible sequence of Trades
// plus source metadata. A collection owns its trades: it is created by a
// parser, mutated only during parsing and post-parse aggregation, and
// consumed read-only thereafter.
type TradeCollection struct {
	Trades       []*Trade  `json:"trades"`
	SourceFile   string    `json:"source_file,omitempty"`
	BrokerName   Broker    `json:"broker_name,omitempty"`
	ImportedAt   time.Time `json:"imported_at"`
}

// NewTradeCollection creates an empty collection stamped with the current
// import metadata.
func NewTradeCollection(sourceFile string, broker Broker, importedAt time.Time) *TradeCollection {
	return &TradeCollection{
		SourceFile: sourceFile,
		BrokerName: broker,
		ImportedAt: importedAt,
	}
}

// Add appends a trade to the collection.
func (c *TradeCollection) Add(t *Trade) {
	c.Trades = append(c.Trades, t)
}

// SortByEntryTime sorts the collection's trades stably by ascending entry
// time, satisfying the output sort invariant.
func (c *TradeCollection) SortByEntryTime() {
	sortByEntryTime(c.Trades)
}

// Len reports the number of trades held.
func (c *TradeCollection) Len() int {
	return len(c.Trades)
}

// BySymbol returns a new collection containing only trades for symbol
// (case-insensitive exact match against the normalized symbol).
func (c *TradeCollection) BySymbol(symbol string) *TradeCollection {
	symbol = NormalizeSymbol(symbol)
	filtered := &TradeCollection{SourceFile: c.SourceFile, BrokerName: c.BrokerName, ImportedAt: c.ImportedAt}
	for _, t := range c.Trades {
		if t.Symbol == symbol {
			filtered.Add(t)
		}
	}
	return filtered
}

// ByDateRange returns a new collection containing only trades whose
// EntryTime falls within [from, to] inclusive. A zero from/to leaves that
// bound unconstrained.
func (c *TradeCollection) ByDateRange(from, to time.Time) *TradeCollection {
	filtered := &TradeCollection{SourceFile: c.SourceFile, BrokerName: c.BrokerName, ImportedAt: c.ImportedAt}
	for _, t := range c.Trades {
		if !from.IsZero() && t.EntryTime.Before(from) {
			continue
		}
		if !to.IsZero() && t.EntryTime.After(to) {
			continue
		}
		filtered.Add(t)
	}
	return filtered
}

// ByTag returns a new collection containing only trades carrying tag
// (case-insensitive).
func (c *TradeCollection) ByTag(tag string) *TradeCollection {
	filtered := &TradeCollection{SourceFile: c.SourceFile, BrokerName: c.BrokerName, ImportedAt: c.ImportedAt}
	for _, t := range c.Trades {
		for _, existing := range t.Tags {
			if strings.EqualFold(existing, tag) {
				filtered.Add(t)
				break
			}
		}
	}
	return filtered
}
