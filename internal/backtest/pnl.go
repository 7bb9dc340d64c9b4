package backtest

import (
	"math"

	"orb-trader/internal/types"
)

// SettleTrade turns a filled signal and a sized quantity into a trade
// record with realized PnL and R-multiple.
//
// When the half take-profit fired, the first half exits at the take-profit
// bar's close and the remainder at the final exit. For odd quantities the
// take-profit half is the integer floor and the remainder runs to the exit.
func SettleTrade(date, symbol string, sig types.Signal, qty int, tick float64) types.Trade {
	entry := sig.Entry.Price
	exit := sig.Exit.Price

	var pnl float64
	if sig.TP != nil {
		tpQty := qty / 2
		runQty := qty - tpQty
		pnl = (sig.TP.Price-entry)*float64(tpQty) + (exit-entry)*float64(runQty)
	} else {
		pnl = (exit - entry) * float64(qty)
	}

	riskPerShare := math.Max(entry-sig.Stop, tick)
	r := 0.0
	if denom := riskPerShare * float64(qty); denom > 0 {
		r = pnl / denom
	}

	t := types.Trade{
		Date:       date,
		Symbol:     symbol,
		EntryTime:  sig.Entry.Ts,
		Entry:      entry,
		Stop:       sig.Stop,
		ExitTime:   sig.Exit.Ts,
		Exit:       exit,
		ExitReason: sig.Exit.Reason,
		Qty:        qty,
		PnL:        pnl,
		R:          r,
	}
	if sig.TP != nil {
		ts := sig.TP.Ts
		t.TPTime = &ts
		t.TPPrice = sig.TP.Price
	}
	return t
}
