package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"orb-trader/internal/backtest"
	"orb-trader/internal/logger"
	"orb-trader/internal/metrics"
	"orb-trader/internal/mockdata"
	"orb-trader/internal/report"
	"orb-trader/internal/risk"
	"orb-trader/internal/screener"
	"orb-trader/internal/signal"
	"orb-trader/internal/store"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "config file")
	dateFlag := flag.String("date", "", "plan date YYYY-MM-DD (default: most recent weekday)")
	debug := flag.Bool("debug", false, "print the screener funnel")
	flag.Parse()

	must(logger.Init())
	ctx := context.Background()
	defer func() { _ = logger.Shutdown(ctx) }()

	cfg, err := store.LoadConfig(*cfgPath)
	must(err)

	day := backtest.MostRecentWeekday(time.Now())
	if *dateFlag != "" {
		day, err = time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			log.Fatalf("invalid -date %q: want YYYY-MM-DD", *dateFlag)
		}
	}
	date := day.Format("2006-01-02")

	codes, err := mockdata.LoadWatchlist(cfg.Watchlist)
	must(err)

	histDays := backtest.BusinessDays(day, cfg.Backtest.Lookback)
	daily := mockdata.SyntheticDaily(codes, histDays)

	rows := metrics.Compute(daily, date, cfg.Screen.ATRWindow)
	th := screener.Thresholds{
		MinADV:    cfg.Screen.MinADV,
		MinATRPct: cfg.Screen.MinATRPct,
		MaxATRPct: cfg.Screen.MaxATRPct,
		GapMin:    cfg.Screen.GapMin,
		GapMax:    cfg.Screen.GapMax,
		MaxPerDay: cfg.Screen.MaxPerDay,
	}
	cands := screener.Screen(rows, th)

	if *debug {
		printFunnel(rows, th)
	}

	bySymbol := mockdata.GroupBySymbol(daily)
	sigCfg := signal.Config{
		ORMinutes:        cfg.Signal.ORMinutes,
		UseVWAP:          cfg.Signal.UseVWAP,
		EntryNotBefore:   cfg.Signal.EntryNotBefore,
		SpreadLimit:      cfg.Signal.SpreadLimit,
		RequireBook:      cfg.Signal.RequireBook,
		MinBidQty:        cfg.Signal.MinBidQty,
		MinAskQty:        cfg.Signal.MinAskQty,
		TPRR:             cfg.Signal.TPRR,
		TrailOnVWAP:      cfg.Signal.TrailOnVWAP,
		TickSize:         cfg.Risk.TickSize,
		MinStopTicks:     cfg.Signal.MinStopTicks,
		RequireQuoteData: cfg.Signal.RequireQuoteData,
	}

	var plan []report.PlanRow
	for _, c := range cands {
		sess := mockdata.SimulateMinutes(c.Symbol, bySymbol[c.Symbol], date)
		sig := signal.Run(sess, sigCfg)
		if !sig.Entered() {
			continue
		}
		qty := risk.SizeByRisk(
			sig.Entry.Price, sig.Stop,
			cfg.Risk.Capital, cfg.Risk.RiskPct,
			cfg.Risk.LotSize, cfg.Risk.TickSize,
		)
		plan = append(plan, report.NewPlanRow(date, c.Symbol, sig, qty))
	}

	fmt.Println("=== PLAN (mock) ===")
	if len(plan) == 0 {
		fmt.Println("no entries")
	} else {
		fmt.Printf("%-8s %-17s %12s %12s %8s\n", "code", "entry_time", "entry_price", "stop", "qty")
		for _, p := range plan {
			fmt.Printf("%-8s %-17s %12s %12s %8d\n", p.Code, p.EntryTime, p.EntryPrice, p.Stop, p.Qty)
		}
	}

	path, err := report.WritePlan(cfg.Backtest.OutDir, date, plan)
	must(err)
	fmt.Printf("[saved] %s\n", path)
}

func printFunnel(rows []metrics.Row, th screener.Thresholds) {
	fmt.Println("=== Screener DEBUG ===")
	fmt.Printf("All codes       : %d\n", len(rows))
	count := func(pred func(metrics.Row) bool) int {
		n := 0
		for _, r := range rows {
			if pred(r) {
				n++
			}
		}
		return n
	}
	fmt.Printf("ADV >= %g: %d\n", th.MinADV, count(func(r metrics.Row) bool { return r.ADV >= th.MinADV }))
	if th.MinATRPct != nil {
		fmt.Printf("ATR%% >= %g: %d\n", *th.MinATRPct, count(func(r metrics.Row) bool { return r.ATRPct >= *th.MinATRPct }))
	}
	if th.MaxATRPct != nil {
		fmt.Printf("ATR%% <= %g: %d\n", *th.MaxATRPct, count(func(r metrics.Row) bool { return r.ATRPct <= *th.MaxATRPct }))
	}
	if th.GapMin != nil {
		fmt.Printf("Gap%% >= %g: %d\n", *th.GapMin, count(func(r metrics.Row) bool { return r.GapPct >= *th.GapMin }))
	}
	if th.GapMax != nil {
		fmt.Printf("Gap%% <= %g: %d\n", *th.GapMax, count(func(r metrics.Row) bool { return r.GapPct <= *th.GapMax }))
	}
	fmt.Println("-- Top by ADV (code, adv, atr%, gap%) --")
	top := rows
	if len(top) > 15 {
		top = top[:15]
	}
	for _, r := range top {
		fmt.Printf("%-8s %15.0f %8.2f %8.2f\n", r.Symbol, r.ADV, r.ATRPct, r.GapPct)
	}
}
