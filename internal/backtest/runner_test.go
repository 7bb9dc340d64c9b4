package backtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orb-trader/internal/mockdata"
	"orb-trader/internal/store"
	"orb-trader/internal/types"
)

func testConfig(workers int) *store.Config {
	var c store.Config
	c.Risk.Capital = 1_000_000
	c.Risk.RiskPct = 0.01
	c.Risk.LotSize = 100
	c.Risk.TickSize = 1.0
	c.Screen.MinADV = 0
	c.Screen.ATRWindow = 20
	c.Screen.MaxPerDay = 5
	c.Signal.ORMinutes = 5
	c.Signal.UseVWAP = true
	c.Signal.EntryNotBefore = 3
	c.Signal.SpreadLimit = 0.0005
	c.Signal.TPRR = 1.0
	c.Signal.TrailOnVWAP = true
	c.Backtest.Workers = workers
	return &c
}

func testUniverse() ([]string, []string, []types.DailyBar) {
	symbols := []string{"7203", "6758", "9984", "8306"}
	histDays := BusinessDays(time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC), 40)
	daily := mockdata.SyntheticDaily(symbols, histDays)
	runDays := histDays[len(histDays)-5:]
	return symbols, runDays, daily
}

func TestRunnerOutputIsDeterministicAcrossWorkerCounts(t *testing.T) {
	_, days, daily := testUniverse()

	seq := NewRunner(testConfig(1)).Run(context.Background(), days, daily)
	par := NewRunner(testConfig(8)).Run(context.Background(), days, daily)

	assert.Equal(t, seq.Trades, par.Trades, "worker count must not change the result")
}

func TestRunnerTradesAreCanonicallyOrdered(t *testing.T) {
	_, days, daily := testUniverse()
	res := NewRunner(testConfig(4)).Run(context.Background(), days, daily)

	for i := 1; i < len(res.Trades); i++ {
		prev, cur := res.Trades[i-1], res.Trades[i]
		ordered := prev.Date < cur.Date || (prev.Date == cur.Date && prev.Symbol < cur.Symbol)
		assert.True(t, ordered, "trades must sort by (date, symbol): %v then %v", prev, cur)
	}
}

func TestRunnerEveryTradeIsClosedAndSized(t *testing.T) {
	_, days, daily := testUniverse()
	res := NewRunner(testConfig(2)).Run(context.Background(), days, daily)

	for _, tr := range res.Trades {
		assert.False(t, tr.ExitTime.IsZero(), "every recorded trade carries an exit")
		assert.Greater(t, tr.Qty, 0)
		assert.Zero(t, tr.Qty%100, "quantity must stay on the lot boundary")
		assert.NotEmpty(t, tr.ExitReason)
		assert.LessOrEqual(t, float64(tr.Qty)*tr.Entry, 1_000_000.0)
	}
}

func TestRunnerRerunIsIdempotent(t *testing.T) {
	_, days, daily := testUniverse()
	r := NewRunner(testConfig(1))
	a := r.Run(context.Background(), days, daily)
	b := r.Run(context.Background(), days, daily)
	assert.Equal(t, a.Trades, b.Trades)
}

func TestRunnerEmptyDaysProducesNoTrades(t *testing.T) {
	res := NewRunner(testConfig(1)).Run(context.Background(), nil, nil)
	require.NotNil(t, res)
	assert.Empty(t, res.Trades)
}
