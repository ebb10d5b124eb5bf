// Package stats computes aggregate performance views over a TradeCollection.
package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alenon/tradeimport/internal/dto"
	"github.com/alenon/tradeimport/internal/models"
)

// Compute filters trades per filter, then aggregates the filtered set
// into a TradeStats.
func Compute(collection *models.TradeCollection, filter dto.StatsFilter) *dto.TradeStats {
	trades := applyFilter(collection.Trades, filter)

	s := &dto.TradeStats{
		TotalCommission: decimal.Zero,
		BySymbol:        map[string]dto.SymbolStat{},
	}

	closed := make([]*models.Trade, 0, len(trades))
	for _, t := range trades {
		s.TotalCommission = s.TotalCommission.Add(t.Commission)
		switch t.Status {
		case models.StatusOpen:
			s.OpenTrades++
		default:
			if _, ok := t.PnLNet(); ok {
				closed = append(closed, t)
			}
		}
		s.TotalTrades++
	}

	computeMoney(s, closed)
	computeAverages(s, closed)
	computeHourExtremes(s, closed)
	s.DailyPnL = computeDailyPnL(closed)
	s.HourlyStats = computeHourlyStats(closed)
	s.BySymbol = computeBySymbol(closed)
	s.CurrentStreak, s.BestStreak, s.WorstStreak = computeStreaks(closed)

	return s
}

func applyFilter(trades []*models.Trade, f dto.StatsFilter) []*models.Trade {
	var from, to time.Time
	if f.FromDate != nil {
		from, _ = time.Parse("2006-01-02", *f.FromDate)
	}
	if f.ToDate != nil {
		to, _ = time.Parse("2006-01-02", *f.ToDate)
	}

	filtered := make([]*models.Trade, 0, len(trades))
	for _, t := range trades {
		if f.AccountID != nil && t.AccountID != *f.AccountID {
			continue
		}
		if f.Symbol != nil && t.Symbol != models.NormalizeSymbol(*f.Symbol) {
			continue
		}
		if f.Direction != nil && string(t.Direction) != *f.Direction {
			continue
		}
		if f.Status != nil && string(t.Status) != *f.Status {
			continue
		}
		if !from.IsZero() && t.EntryTime.Before(from) {
			continue
		}
		if !to.IsZero() && t.EntryTime.After(to) {
			continue
		}
		filtered = append(filtered, t)
	}

	if f.Offset != nil && *f.Offset < len(filtered) {
		filtered = filtered[*f.Offset:]
	}
	if f.Limit != nil && *f.Limit < len(filtered) {
		filtered = filtered[:*f.Limit]
	}
	return filtered
}

func computeMoney(s *dto.TradeStats, closed []*models.Trade) {
	grossProfit := decimal.Zero
	grossLoss := decimal.Zero
	total := decimal.Zero

	for _, t := range closed {
		net, _ := t.PnLNet()
		total = total.Add(net)
		if net.IsPositive() {
			s.WinningTrades++
			grossProfit = grossProfit.Add(net)
		} else if net.IsNegative() {
			s.LosingTrades++
			grossLoss = grossLoss.Add(net.Abs())
		}
	}

	s.TotalPnL = total
	s.GrossProfit = grossProfit
	s.GrossLoss = grossLoss

	if s.WinningTrades+s.LosingTrades > 0 {
		rate := float64(s.WinningTrades) / float64(s.WinningTrades+s.LosingTrades) * 100
		s.WinRate = &rate
	}
	if !grossLoss.IsZero() {
		pf := grossProfit.Div(grossLoss)
		s.ProfitFactor = &pf
	}
}

func computeAverages(s *dto.TradeStats, closed []*models.Trade) {
	var winnerSum, loserSum decimal.Decimal
	var largestWinner, largestLoser decimal.Decimal
	haveWinner, haveLoser := false, false

	for _, t := range closed {
		net, _ := t.PnLNet()
		if net.IsPositive() {
			winnerSum = winnerSum.Add(net)
			if !haveWinner || net.GreaterThan(largestWinner) {
				largestWinner = net
				haveWinner = true
			}
		} else if net.IsNegative() {
			loserSum = loserSum.Add(net.Abs())
			abs := net.Abs()
			if !haveLoser || abs.GreaterThan(largestLoser) {
				largestLoser = abs
				haveLoser = true
			}
		}
	}

	if s.WinningTrades > 0 {
		avg := winnerSum.Div(decimal.NewFromInt(int64(s.WinningTrades)))
		s.AvgWinner = &avg
		s.LargestWinner = &largestWinner
	}
	if s.LosingTrades > 0 {
		avg := loserSum.Div(decimal.NewFromInt(int64(s.LosingTrades)))
		s.AvgLoser = &avg
		s.LargestLoser = &largestLoser
	}
}

func computeHourExtremes(s *dto.TradeStats, closed []*models.Trade) {
	var byHour [24]decimal.Decimal
	for _, t := range closed {
		net, _ := t.PnLNet()
		byHour[t.EntryTime.Hour()] = byHour[t.EntryTime.Hour()].Add(net)
	}

	bestHour, worstHour := -1, -1
	var best, worst decimal.Decimal
	for hour, total := range byHour {
		if total.IsPositive() && (bestHour == -1 || total.GreaterThan(best)) {
			best = total
			bestHour = hour
		}
		if total.IsNegative() && (worstHour == -1 || total.LessThan(worst)) {
			worst = total
			worstHour = hour
		}
	}
	if bestHour >= 0 {
		s.BestHour = &bestHour
	}
	if worstHour >= 0 {
		s.WorstHour = &worstHour
	}
}

func computeDailyPnL(closed []*models.Trade) []dto.DailyPnL {
	type bucket struct {
		pnl     decimal.Decimal
		trades  int
		winners int
		losers  int
	}
	byDate := map[string]*bucket{}
	var dates []string

	for _, t := range closed {
		if t.ExitTime == nil {
			continue
		}
		date := t.ExitTime.Format("2006-01-02")
		b, ok := byDate[date]
		if !ok {
			b = &bucket{}
			byDate[date] = b
			dates = append(dates, date)
		}
		net, _ := t.PnLNet()
		b.pnl = b.pnl.Add(net)
		b.trades++
		if net.IsPositive() {
			b.winners++
		} else if net.IsNegative() {
			b.losers++
		}
	}

	sort.Strings(dates)
	series := make([]dto.DailyPnL, 0, len(dates))
	cumulative := decimal.Zero
	for _, date := range dates {
		b := byDate[date]
		cumulative = cumulative.Add(b.pnl)
		series = append(series, dto.DailyPnL{
			Date: date, PnL: b.pnl, TradesCount: b.trades,
			Winners: b.winners, Losers: b.losers, CumulativePnL: cumulative,
		})
	}
	return series
}

func computeHourlyStats(closed []*models.Trade) []dto.HourlyStat {
	type bucket struct {
		trades, wins int
		pnl          decimal.Decimal
	}
	var byHour [24]*bucket

	for _, t := range closed {
		hour := t.EntryTime.Hour()
		if byHour[hour] == nil {
			byHour[hour] = &bucket{}
		}
		b := byHour[hour]
		net, _ := t.PnLNet()
		b.trades++
		b.pnl = b.pnl.Add(net)
		if net.IsPositive() {
			b.wins++
		}
	}

	var stats []dto.HourlyStat
	for hour, b := range byHour {
		if b == nil {
			continue
		}
		winRate := 0.0
		if b.trades > 0 {
			winRate = float64(b.wins) / float64(b.trades) * 100
		}
		stats = append(stats, dto.HourlyStat{Hour: hour, Trades: b.trades, Wins: b.wins, PnL: b.pnl, WinRate: winRate})
	}
	return stats
}

func computeBySymbol(closed []*models.Trade) map[string]dto.SymbolStat {
	type bucket struct {
		trades, winners, losers int
		pnl                     decimal.Decimal
	}
	bySymbol := map[string]*bucket{}

	for _, t := range closed {
		b, ok := bySymbol[t.Symbol]
		if !ok {
			b = &bucket{}
			bySymbol[t.Symbol] = b
		}
		net, _ := t.PnLNet()
		b.trades++
		b.pnl = b.pnl.Add(net)
		if net.IsPositive() {
			b.winners++
		} else if net.IsNegative() {
			b.losers++
		}
	}

	result := make(map[string]dto.SymbolStat, len(bySymbol))
	for symbol, b := range bySymbol {
		winRate := 0.0
		if b.winners+b.losers > 0 {
			winRate = float64(b.winners) / float64(b.winners+b.losers) * 100
		}
		result[symbol] = dto.SymbolStat{Trades: b.trades, Winners: b.winners, Losers: b.losers, PnL: b.pnl, WinRate: winRate}
	}
	return result
}

// computeStreaks processes closed trades sorted by closing time, tracking
// a running temp streak: incrementing on consecutive winners, decrementing
// on consecutive losers, resetting to ±1 on a change of sign. Returns
// (current streak, best winning streak, worst losing streak as a
// positive count).
func computeStreaks(closed []*models.Trade) (current, best, worst int) {
	sorted := make([]*models.Trade, 0, len(closed))
	for _, t := range closed {
		if t.ExitTime != nil {
			sorted = append(sorted, t)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExitTime.Before(*sorted[j].ExitTime)
	})

	temp := 0
	for _, t := range sorted {
		winner, ok := t.IsWinner()
		if !ok {
			continue
		}
		if winner {
			if temp > 0 {
				temp++
			} else {
				temp = 1
			}
			if temp > best {
				best = temp
			}
		} else {
			if temp < 0 {
				temp--
			} else {
				temp = -1
			}
			if temp < -worst {
				worst = -temp
			}
		}
	}
	current = temp
	return
}
