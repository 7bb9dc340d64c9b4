// Package risk converts a risk budget into an order quantity.
package risk

import "math"

// SizeByRisk returns the share quantity for a long breakout entry. The
// result is always a non-negative multiple of lotSize, never costs more
// than capital, and never risks more than capital*riskPct (up to lot
// rounding). Risk per share is floored at one tick so a stop at the entry
// cannot blow up the division.
func SizeByRisk(entry, stop, capital, riskPct float64, lotSize int, tick float64) int {
	if entry <= 0 || lotSize <= 0 {
		return 0
	}
	riskPerShare := math.Max(entry-stop, tick)
	if riskPerShare <= 0 {
		return 0
	}

	riskBudget := capital * riskPct
	sharesByRisk := lotFloor(math.Floor(riskBudget/riskPerShare), lotSize)

	cashCap := capital // full capital, no leverage
	sharesByCash := lotFloor(math.Floor(cashCap/entry), lotSize)

	shares := sharesByRisk
	if sharesByCash < shares {
		shares = sharesByCash
	}
	if shares < 0 {
		return 0
	}
	return shares
}

// lotFloor rounds a raw share count down to the lot boundary.
func lotFloor(shares float64, lotSize int) int {
	return int(math.Floor(shares/float64(lotSize))) * lotSize
}
