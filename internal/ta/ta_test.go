package ta

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVWAP(t *testing.T) {
	closes := []float64{100, 102, 104}
	vols := []float64{1000, 1000, 2000}
	got := VWAP(closes, vols)
	require.Len(t, got, 3)
	assert.InDelta(t, 100, got[0], 1e-9)
	assert.InDelta(t, 101, got[1], 1e-9)
	assert.InDelta(t, 102.5, got[2], 1e-9)
}

func TestVWAPNaNWhileVolumeZero(t *testing.T) {
	got := VWAP([]float64{100, 101, 102}, []float64{0, 0, 500})
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
	assert.InDelta(t, 102, got[2], 1e-9)
}

func TestVWAPAllZeroVolume(t *testing.T) {
	for _, v := range VWAP([]float64{100, 100}, []float64{0, 0}) {
		assert.True(t, math.IsNaN(v))
	}
}

func TestTrueRange(t *testing.T) {
	// plain range dominates
	assert.InDelta(t, 10, TrueRange(110, 100, 105), 1e-9)
	// gap up, high minus previous close dominates
	assert.InDelta(t, 15, TrueRange(120, 112, 105), 1e-9)
	// gap down, previous close minus low dominates
	assert.InDelta(t, 15, TrueRange(98, 90, 105), 1e-9)
}

func TestATRSeriesFirstDayUsesOwnClose(t *testing.T) {
	highs := []float64{110, 115}
	lows := []float64{100, 105}
	closes := []float64{105, 112}
	got := ATRSeries(highs, lows, closes, 14)
	require.Len(t, got, 2)
	// day 0 true range collapses to high-low
	assert.InDelta(t, 10, got[0], 1e-9)
	// day 1 true range is max(10, |115-105|, |105-105|) = 10, mean of 10,10
	assert.InDelta(t, 10, got[1], 1e-9)
}

func TestATRSeriesLengthMismatch(t *testing.T) {
	assert.Nil(t, ATRSeries([]float64{1, 2}, []float64{1}, []float64{1, 2}, 5))
}

func TestRollingMeanMinimumPeriodOne(t *testing.T) {
	got := RollingMean([]float64{2, 4, 6, 8}, 3)
	require.Len(t, got, 4)
	assert.InDelta(t, 2, got[0], 1e-9)
	assert.InDelta(t, 3, got[1], 1e-9)
	assert.InDelta(t, 4, got[2], 1e-9)
	assert.InDelta(t, 6, got[3], 1e-9)
}

func TestRollingMeanWindowClampedToOne(t *testing.T) {
	got := RollingMean([]float64{5, 7}, 0)
	assert.Equal(t, []float64{5, 7}, got)
}
