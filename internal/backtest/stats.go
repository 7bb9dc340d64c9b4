package backtest

import (
	"fmt"

	"orb-trader/internal/types"
)

type Results struct {
	Trades []types.Trade

	stats *Statistics
}

type Statistics struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64 // percent

	TotalPnL     float64
	AvgPnL       float64
	AvgR         float64
	GrossProfit  float64
	GrossLoss    float64
	ProfitFactor float64
}

// Calculate aggregates the run's trades. Cached on first call.
func (r *Results) Calculate() *Statistics {
	if r.stats != nil {
		return r.stats
	}

	stats := &Statistics{TotalTrades: len(r.Trades)}
	if len(r.Trades) == 0 {
		r.stats = stats
		return stats
	}

	var totalR float64
	for _, t := range r.Trades {
		if t.PnL > 0 {
			stats.WinningTrades++
			stats.GrossProfit += t.PnL
		} else if t.PnL < 0 {
			stats.LosingTrades++
			stats.GrossLoss += t.PnL // stays negative
		}
		stats.TotalPnL += t.PnL
		totalR += t.R
	}

	n := float64(stats.TotalTrades)
	stats.WinRate = float64(stats.WinningTrades) / n * 100
	stats.AvgPnL = stats.TotalPnL / n
	stats.AvgR = totalR / n
	if stats.GrossLoss != 0 {
		stats.ProfitFactor = stats.GrossProfit / -stats.GrossLoss
	}

	r.stats = stats
	return stats
}

// Print writes the summary block for a run over [start, end].
func (s *Statistics) Print(start, end string) {
	fmt.Println("=== BACKTEST SUMMARY ===")
	fmt.Printf("Period        : %s -> %s (%d trades)\n", start, end, s.TotalTrades)
	if s.TotalTrades == 0 {
		fmt.Println("No trades in backtest.")
		return
	}
	fmt.Printf("Win rate      : %.1f%%\n", s.WinRate)
	fmt.Printf("Avg PnL/trade : %.1f\n", s.AvgPnL)
	fmt.Printf("Avg R         : %.2f\n", s.AvgR)
	fmt.Printf("Total PnL     : %.1f\n", s.TotalPnL)
	fmt.Printf("Profit factor : %.2f\n", s.ProfitFactor)
}
