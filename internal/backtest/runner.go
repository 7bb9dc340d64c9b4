package backtest

import (
	"context"
	"sort"
	"sync"

	"orb-trader/internal/logger"
	"orb-trader/internal/metrics"
	"orb-trader/internal/mockdata"
	"orb-trader/internal/risk"
	"orb-trader/internal/screener"
	"orb-trader/internal/signal"
	"orb-trader/internal/store"
	"orb-trader/internal/types"
)

// Runner drives screener + signal engine + sizer over a date range.
type Runner struct {
	cfg *store.Config
}

func NewRunner(cfg *store.Config) *Runner {
	return &Runner{cfg: cfg}
}

// job is one (date, symbol) unit of work. Units share nothing mutable, so
// they fan out to workers freely; results are re-sorted to (date, symbol)
// before aggregation to keep output deterministic for any worker count.
type job struct {
	date   string
	symbol string
}

type unit struct {
	date   string
	symbol string
	trade  *types.Trade
}

// Run screens each day, simulates every candidate session, and collects the
// filled trades in canonical order.
func (r *Runner) Run(ctx context.Context, days []string, daily []types.DailyBar) *Results {
	op := logger.StartOperation(ctx, "backtest.run", "days", len(days))
	ctx = op.GetContext()

	th := screener.Thresholds{
		MinADV:    r.cfg.Screen.MinADV,
		MinATRPct: r.cfg.Screen.MinATRPct,
		MaxATRPct: r.cfg.Screen.MaxATRPct,
		GapMin:    r.cfg.Screen.GapMin,
		GapMax:    r.cfg.Screen.GapMax,
		MaxPerDay: r.cfg.Screen.MaxPerDay,
	}

	var jobs []job
	for _, day := range days {
		rows := metrics.Compute(daily, day, r.cfg.Screen.ATRWindow)
		cands := screener.Screen(rows, th)
		logger.Debug(ctx, "Screened candidates", "date", day, "universe", len(rows), "candidates", len(cands))
		for _, c := range cands {
			jobs = append(jobs, job{date: day, symbol: c.Symbol})
		}
	}

	bySymbol := mockdata.GroupBySymbol(daily)
	results := r.runJobs(ctx, jobs, bySymbol)

	sort.Slice(results, func(i, j int) bool {
		if results[i].date != results[j].date {
			return results[i].date < results[j].date
		}
		return results[i].symbol < results[j].symbol
	})

	res := &Results{}
	for _, u := range results {
		if u.trade == nil {
			continue
		}
		res.Trades = append(res.Trades, *u.trade)
		logger.Trade(ctx, u.symbol, u.date, u.trade.Qty, u.trade.PnL, u.trade.R, string(u.trade.ExitReason))
	}

	op.End("jobs", len(jobs), "trades", len(res.Trades))
	return res
}

func (r *Runner) runJobs(ctx context.Context, jobs []job, bySymbol map[string][]types.DailyBar) []unit {
	workers := r.cfg.Backtest.Workers
	if workers < 1 {
		workers = 1
	}

	in := make(chan job)
	out := make(chan unit, len(jobs))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range in {
				out <- r.runOne(ctx, j, bySymbol[j.symbol])
			}
		}()
	}
	for _, j := range jobs {
		in <- j
	}
	close(in)
	wg.Wait()
	close(out)

	units := make([]unit, 0, len(jobs))
	for u := range out {
		units = append(units, u)
	}
	return units
}

// runOne is the pure (symbol, day, bars, config) -> optional trade step.
// No entry and zero-sized quantities both yield a nil trade, never an error.
func (r *Runner) runOne(ctx context.Context, j job, daily []types.DailyBar) unit {
	u := unit{date: j.date, symbol: j.symbol}

	sess := mockdata.SimulateMinutes(j.symbol, daily, j.date)
	if len(sess.Bars) == 0 {
		return u
	}

	sig := signal.Run(sess, r.signalConfig())
	if !sig.Entered() {
		return u
	}
	logger.Signal(ctx, j.symbol, j.date, sig.Entry.Price, sig.Stop)

	qty := risk.SizeByRisk(
		sig.Entry.Price, sig.Stop,
		r.cfg.Risk.Capital, r.cfg.Risk.RiskPct,
		r.cfg.Risk.LotSize, r.cfg.Risk.TickSize,
	)
	if qty <= 0 {
		logger.Debug(ctx, "Entry skipped, sized to zero", "symbol", j.symbol, "date", j.date)
		return u
	}

	t := SettleTrade(j.date, j.symbol, sig, qty, r.cfg.Risk.TickSize)
	u.trade = &t
	return u
}

func (r *Runner) signalConfig() signal.Config {
	s := r.cfg.Signal
	return signal.Config{
		ORMinutes:        s.ORMinutes,
		UseVWAP:          s.UseVWAP,
		EntryNotBefore:   s.EntryNotBefore,
		SpreadLimit:      s.SpreadLimit,
		RequireBook:      s.RequireBook,
		MinBidQty:        s.MinBidQty,
		MinAskQty:        s.MinAskQty,
		TPRR:             s.TPRR,
		TrailOnVWAP:      s.TrailOnVWAP,
		TickSize:         r.cfg.Risk.TickSize,
		MinStopTicks:     s.MinStopTicks,
		RequireQuoteData: s.RequireQuoteData,
	}
}
