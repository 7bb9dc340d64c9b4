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
	"orb-trader/internal/mockdata"
	"orb-trader/internal/report"
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
	startFlag := flag.String("start", "", "range start YYYY-MM-DD")
	endFlag := flag.String("end", "", "range end YYYY-MM-DD (default: most recent weekday)")
	daysFlag := flag.Int("days", 0, "last N business days (mutually exclusive with -start/-end)")
	flag.Parse()

	if *daysFlag > 0 && (*startFlag != "" || *endFlag != "") {
		log.Fatal("-days and -start/-end cannot be combined")
	}

	must(logger.Init())
	ctx := context.Background()
	defer func() { _ = logger.Shutdown(ctx) }()

	cfg, err := store.LoadConfig(*cfgPath)
	must(err)

	endDay := backtest.MostRecentWeekday(time.Now())
	if *endFlag != "" {
		endDay, err = time.Parse("2006-01-02", *endFlag)
		if err != nil {
			log.Fatalf("invalid -end date %q: want YYYY-MM-DD", *endFlag)
		}
	}

	var days []string
	switch {
	case *daysFlag > 0:
		days = backtest.BusinessDays(endDay, *daysFlag)
	case *startFlag != "":
		startDay, err := time.Parse("2006-01-02", *startFlag)
		if err != nil {
			log.Fatalf("invalid -start date %q: want YYYY-MM-DD", *startFlag)
		}
		days = backtest.BusinessRange(startDay, endDay)
	default:
		days = backtest.BusinessDays(endDay, 20)
	}
	if len(days) == 0 {
		fmt.Println("No business days in range.")
		return
	}

	codes, err := mockdata.LoadWatchlist(cfg.Watchlist)
	must(err)

	// History long enough for the ATR window to warm up before the range.
	last, err := time.Parse("2006-01-02", days[len(days)-1])
	must(err)
	histDays := backtest.BusinessDays(last, cfg.Backtest.Lookback)
	daily := mockdata.SyntheticDaily(codes, histDays)

	runner := backtest.NewRunner(cfg)
	res := runner.Run(ctx, days, daily)

	start, end := days[0], days[len(days)-1]
	res.Calculate().Print(start, end)

	path, err := report.WriteTrades(cfg.Backtest.OutDir, start, end, res.Trades)
	must(err)
	fmt.Printf("[saved] %s\n", path)
}
