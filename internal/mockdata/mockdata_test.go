package mockdata

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orb-trader/internal/types"
)

func TestLoadWatchlistStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.csv")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("code\n7203\n6758\n")...)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	codes, err := LoadWatchlist(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"7203", "6758"}, codes)
}

func TestLoadWatchlistMissingFile(t *testing.T) {
	_, err := LoadWatchlist(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestSyntheticDailyIsDeterministic(t *testing.T) {
	days := []string{"2025-08-27", "2025-08-28", "2025-08-29"}
	a := SyntheticDaily([]string{"7203", "6758"}, days)
	b := SyntheticDaily([]string{"7203", "6758"}, days)
	assert.Equal(t, a, b)
}

func TestSyntheticDailyBarsAreWellFormed(t *testing.T) {
	days := []string{"2025-08-28", "2025-08-29"}
	daily := SyntheticDaily([]string{"7203"}, days)
	require.Len(t, daily, 2)
	for _, d := range daily {
		assert.Greater(t, d.Open, 0.0)
		assert.GreaterOrEqual(t, d.High, math.Max(d.Open, d.Close))
		assert.LessOrEqual(t, d.Low, math.Min(d.Open, d.Close))
		assert.Greater(t, d.Volume, 0.0)
	}
}

func TestSimulateMinutesSessionShape(t *testing.T) {
	daily := SyntheticDaily([]string{"7203"}, []string{"2025-08-29"})
	sess := SimulateMinutes("7203", daily, "2025-08-29")

	// two session halves of 150 minutes each
	require.Len(t, sess.Bars, 300)
	assert.False(t, sess.HasQuotes)

	for i := 1; i < len(sess.Bars); i++ {
		assert.True(t, sess.Bars[i].Ts.After(sess.Bars[i-1].Ts), "timestamps must strictly increase")
	}

	row := daily[0]
	lower := math.Min(row.Open, row.Low)
	upper := math.Max(row.Close, row.High)
	for _, b := range sess.Bars {
		assert.GreaterOrEqual(t, b.Close, lower)
		assert.LessOrEqual(t, b.Close, upper)
		assert.GreaterOrEqual(t, b.High, b.Close)
		assert.LessOrEqual(t, b.Low, b.Close)
		assert.GreaterOrEqual(t, b.Volume, int64(0))
	}

	// the midday break leaves a gap between the two halves
	assert.Equal(t, 11, sess.Bars[149].Ts.Hour())
	assert.Equal(t, 12, sess.Bars[150].Ts.Hour())
}

func TestSimulateMinutesIsDeterministic(t *testing.T) {
	daily := SyntheticDaily([]string{"7203"}, []string{"2025-08-29"})
	a := SimulateMinutes("7203", daily, "2025-08-29")
	b := SimulateMinutes("7203", daily, "2025-08-29")
	assert.Equal(t, a, b)
}

func TestSimulateMinutesFallsBackToPriorDay(t *testing.T) {
	daily := SyntheticDaily([]string{"7203"}, []string{"2025-08-28"})
	sess := SimulateMinutes("7203", daily, "2025-08-29")
	require.Len(t, sess.Bars, 300)
	assert.Equal(t, "2025-08-29", sess.Date)
	// bars carry the requested date even though prices come from the prior row
	assert.Equal(t, 29, sess.Bars[0].Ts.Day())
}

func TestSimulateMinutesNoHistory(t *testing.T) {
	sess := SimulateMinutes("7203", nil, "2025-08-29")
	assert.Empty(t, sess.Bars)
}

func TestGroupBySymbolSortsByDate(t *testing.T) {
	daily := []types.DailyBar{
		{Symbol: "A", Date: "2025-08-29"},
		{Symbol: "A", Date: "2025-08-27"},
		{Symbol: "B", Date: "2025-08-28"},
	}
	m := GroupBySymbol(daily)
	require.Len(t, m["A"], 2)
	assert.Equal(t, "2025-08-27", m["A"][0].Date)
	assert.Equal(t, "2025-08-29", m["A"][1].Date)
}
