package metrics

import (
	"math"
	"sort"

	"orb-trader/internal/ta"
	"orb-trader/internal/types"
)

// Row holds one symbol's screening metrics for a date. ATRPct and GapPct are
// NaN on a symbol's first observed date, where no previous close exists.
type Row struct {
	Symbol string
	Date   string
	Open   float64
	Close  float64
	Volume float64
	ADV    float64
	ATRPct float64
	GapPct float64
}

// Compute builds one metrics row per symbol for the target date, sorted by
// ADV descending. ATR% uses the previous day's rolling ATR so the value is
// known before the target session opens. A symbol with no row on the target
// date falls back to its most recent prior row; a symbol with no usable rows
// is simply absent from the output.
func Compute(daily []types.DailyBar, date string, atrWindow int) []Row {
	bySymbol := map[string][]types.DailyBar{}
	for _, b := range daily {
		bySymbol[b.Symbol] = append(bySymbol[b.Symbol], b)
	}

	var out []Row
	for sym, bars := range bySymbol {
		sort.Slice(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })

		highs := make([]float64, len(bars))
		lows := make([]float64, len(bars))
		closes := make([]float64, len(bars))
		for i, b := range bars {
			highs[i], lows[i], closes[i] = b.High, b.Low, b.Close
		}
		atr := ta.ATRSeries(highs, lows, closes, atrWindow)

		idx := rowIndexFor(bars, date)
		if idx < 0 {
			continue
		}
		b := bars[idx]

		atrPct := math.NaN()
		gapPct := math.NaN()
		if idx > 0 {
			prevClose := bars[idx-1].Close
			gapPct = 100.0 * (b.Open - prevClose) / prevClose
			atrPct = 100.0 * atr[idx-1] / prevClose
		}

		out = append(out, Row{
			Symbol: sym,
			Date:   b.Date,
			Open:   b.Open,
			Close:  b.Close,
			Volume: b.Volume,
			ADV:    b.Close * b.Volume,
			ATRPct: atrPct,
			GapPct: gapPct,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ADV != out[j].ADV {
			return out[i].ADV > out[j].ADV
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// rowIndexFor returns the index of the bar on date, or the most recent bar
// before it, or -1 when the symbol has no row at or before the date.
func rowIndexFor(bars []types.DailyBar, date string) int {
	idx := -1
	for i, b := range bars {
		if b.Date > date {
			break
		}
		idx = i
	}
	return idx
}
