// Package signal implements the opening-range-breakout scan for one
// (symbol, day) session. The walk is an explicit state machine:
//
//	AwaitingEntry -> EnteredFull -> EnteredHalf -> Closed
//
// AwaitingEntry is also terminal when no bar ever triggers; that is the
// common case and not an error.
package signal

import (
	"math"

	"orb-trader/internal/ta"
	"orb-trader/internal/types"
)

type State int

const (
	AwaitingEntry State = iota
	EnteredFull
	EnteredHalf
	Closed
)

// Config holds the per-session scan parameters.
type Config struct {
	ORMinutes      int     // opening-range length in bars
	UseVWAP        bool    // entry also requires close >= session VWAP
	EntryNotBefore int     // minimum bar index before entry may trigger
	SpreadLimit    float64 // max (ask-bid)/mid when quotes are present
	RequireBook    bool    // enforce depth minimums when depth is present
	MinBidQty      int64
	MinAskQty      int64
	TPRR           float64 // take-profit reward:risk multiple
	TrailOnVWAP    bool    // after the half take-profit, close on VWAP loss
	TickSize       float64
	MinStopTicks   int // minimum stop distance in ticks, 0 = opening-range low only
	// RequireQuoteData makes a session without quote columns fail the book
	// filter instead of passing it. The permissive default accommodates
	// synthetic data; a real-market feed should set this.
	RequireQuoteData bool
}

// Run scans one session and returns the resulting signal. ORHigh/ORLow are
// always populated; Entry is nil when nothing triggered.
func Run(sess types.Session, cfg Config) types.Signal {
	bars := sess.Bars
	sig := types.Signal{ORHigh: math.NaN(), ORLow: math.NaN()}
	if len(bars) == 0 {
		return sig
	}

	orEnd := cfg.ORMinutes
	if orEnd > len(bars) {
		orEnd = len(bars)
	}
	orHigh, orLow := bars[0].High, bars[0].Low
	for _, b := range bars[1:orEnd] {
		if b.High > orHigh {
			orHigh = b.High
		}
		if b.Low < orLow {
			orLow = b.Low
		}
	}
	sig.ORHigh, sig.ORLow = orHigh, orLow

	closes := make([]float64, len(bars))
	vols := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		vols[i] = float64(b.Volume)
	}
	vwap := ta.VWAP(closes, vols)

	state := AwaitingEntry

	start := cfg.ORMinutes
	if cfg.EntryNotBefore > start {
		start = cfg.EntryNotBefore
	}
	entryIdx := -1
	for i := start; i < len(bars); i++ {
		price := bars[i].Close
		if price <= orHigh {
			continue
		}
		// NaN VWAP (no volume yet) fails the comparison, so no entry.
		if cfg.UseVWAP && !(price >= vwap[i]) {
			continue
		}
		if !bookOK(sess, i, cfg) {
			continue
		}
		entryIdx = i
		break
	}
	if entryIdx < 0 {
		return sig // stays AwaitingEntry, empty result
	}

	state = EnteredFull
	entry := bars[entryIdx].Close
	sig.Entry = &types.SignalEvent{Ts: bars[entryIdx].Ts, Price: entry}

	stop := stopPrice(entry, orLow, cfg)
	sig.Stop = stop
	tpPrice := entry + cfg.TPRR*(entry-stop)

	exitIdx := -1
	reason := types.ExitEOD
	for j := entryIdx + 1; j < len(bars); j++ {
		lo, hi, cl := bars[j].Low, bars[j].High, bars[j].Close

		// Stop check always precedes the take-profit check in a bar.
		if lo <= stop {
			exitIdx = j
			reason = types.ExitStop
			state = Closed
			break
		}

		if state == EnteredFull && hi >= tpPrice {
			state = EnteredHalf
			sig.TP = &types.SignalEvent{Ts: bars[j].Ts, Price: cl}
		}

		// The trail can fire on the same bar as the half take-profit.
		if state == EnteredHalf && cfg.TrailOnVWAP && cl < vwap[j] {
			exitIdx = j
			reason = types.ExitTPTrail
			state = Closed
			break
		}
	}

	if exitIdx < 0 {
		exitIdx = len(bars) - 1
		if state == EnteredHalf {
			reason = types.ExitTPEOD
		} else {
			reason = types.ExitEOD
		}
	}

	sig.Exit = &types.SignalExit{Ts: bars[exitIdx].Ts, Price: bars[exitIdx].Close, Reason: reason}
	return sig
}

// stopPrice is the opening-range low, pushed toward the entry when a
// positive minimum tick distance is configured.
func stopPrice(entry, orLow float64, cfg Config) float64 {
	if cfg.MinStopTicks <= 0 {
		return orLow
	}
	minStop := entry - cfg.TickSize*float64(cfg.MinStopTicks)
	return math.Max(orLow, minStop)
}

// bookOK applies the spread (and optional depth) filter for bar i. Sessions
// without quote data pass unconditionally unless RequireQuoteData is set.
func bookOK(sess types.Session, i int, cfg Config) bool {
	if !sess.HasQuotes {
		return !cfg.RequireQuoteData
	}
	bid, ask := sess.Bars[i].Bid, sess.Bars[i].Ask
	if bid <= 0 || ask <= 0 {
		return false
	}
	mid := (bid + ask) / 2.0
	if (ask-bid)/mid > cfg.SpreadLimit {
		return false
	}
	if cfg.RequireBook && sess.HasDepth {
		if sess.Bars[i].BidSize < cfg.MinBidQty || sess.Bars[i].AskSize < cfg.MinAskQty {
			return false
		}
	}
	return true
}
