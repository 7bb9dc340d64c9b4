// Package screener filters ranked screen metrics down to the day's
// tradeable candidates. It is a pure function of its inputs: no I/O, no
// state, identical rows in means identical rows out.
package screener

import (
	"orb-trader/internal/metrics"
)

// Thresholds are the candidate filters. Nil range bounds mean "not
// supplied"; a supplied bound drops rows whose metric is NaN, because an
// undefined value cannot satisfy the predicate.
type Thresholds struct {
	MinADV    float64
	MinATRPct *float64
	MaxATRPct *float64
	GapMin    *float64
	GapMax    *float64
	MaxPerDay int
}

// Screen keeps rows passing every supplied predicate and returns at most
// MaxPerDay of them. Input rows are already ADV-descending (metrics.Compute
// sorts); order is preserved.
func Screen(rows []metrics.Row, th Thresholds) []metrics.Row {
	out := make([]metrics.Row, 0, len(rows))
	for _, r := range rows {
		if r.ADV < th.MinADV {
			continue
		}
		// NaN fails every comparison below, so rows without a previous
		// close are dropped whenever a range bound is supplied.
		if th.MinATRPct != nil && !(r.ATRPct >= *th.MinATRPct) {
			continue
		}
		if th.MaxATRPct != nil && !(r.ATRPct <= *th.MaxATRPct) {
			continue
		}
		if th.GapMin != nil && !(r.GapPct >= *th.GapMin) {
			continue
		}
		if th.GapMax != nil && !(r.GapPct <= *th.GapMax) {
			continue
		}
		out = append(out, r)
	}
	if th.MaxPerDay > 0 && len(out) > th.MaxPerDay {
		out = out[:th.MaxPerDay]
	}
	return out
}

// Symbols is a convenience projection of the screened rows.
func Symbols(rows []metrics.Row) []string {
	syms := make([]string, len(rows))
	for i, r := range rows {
		syms[i] = r.Symbol
	}
	return syms
}
