package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"orb-trader/internal/types"
)

func TestCalculateAggregates(t *testing.T) {
	res := &Results{Trades: []types.Trade{
		{PnL: 500, R: 1.0},
		{PnL: -250, R: -0.5},
		{PnL: 1000, R: 2.0},
		{PnL: 0, R: 0},
	}}
	s := res.Calculate()

	assert.Equal(t, 4, s.TotalTrades)
	assert.Equal(t, 2, s.WinningTrades)
	assert.Equal(t, 1, s.LosingTrades)
	assert.InDelta(t, 50.0, s.WinRate, 1e-9)
	assert.InDelta(t, 1250.0, s.TotalPnL, 1e-9)
	assert.InDelta(t, 312.5, s.AvgPnL, 1e-9)
	assert.InDelta(t, 0.625, s.AvgR, 1e-9)
	assert.InDelta(t, 1500.0, s.GrossProfit, 1e-9)
	assert.InDelta(t, -250.0, s.GrossLoss, 1e-9)
	assert.InDelta(t, 6.0, s.ProfitFactor, 1e-9)
}

func TestCalculateEmptyRun(t *testing.T) {
	s := (&Results{}).Calculate()
	assert.Equal(t, 0, s.TotalTrades)
	assert.Zero(t, s.TotalPnL)
	assert.Zero(t, s.WinRate)
}

func TestCalculateIsCached(t *testing.T) {
	res := &Results{Trades: []types.Trade{{PnL: 10, R: 0.1}}}
	assert.Same(t, res.Calculate(), res.Calculate())
}
