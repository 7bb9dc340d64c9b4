// Package mockdata synthesizes the daily history and minute bars the
// engine consumes. All randomness is seeded from the symbol and date so a
// rerun over the same inputs produces byte-identical series; the core
// itself carries no randomness.
package mockdata

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"orb-trader/internal/store"
	"orb-trader/internal/types"
)

// Tokyo cash session, minute bars with exclusive session ends.
var sessionWindows = [][2]string{
	{"09:00", "11:30"},
	{"12:30", "15:00"},
}

type seedRow struct {
	Code string `csv:"code"`
}

// LoadWatchlist reads the seed CSV (a "code" column) and returns the symbol
// list. The file may carry a UTF-8 BOM from spreadsheet editing.
func LoadWatchlist(path string) ([]string, error) {
	b, err := store.ReadFileBOM(path)
	if err != nil {
		return nil, err
	}
	var rows []*seedRow
	if err := gocsv.UnmarshalBytes(b, &rows); err != nil {
		return nil, fmt.Errorf("parse watchlist %s: %w", path, err)
	}
	codes := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Code != "" {
			codes = append(codes, r.Code)
		}
	}
	return codes, nil
}

// SyntheticDaily builds a daily history for each symbol over the given
// trading days (ascending 2006-01-02 strings). Base price derives from the
// symbol hash, drift is a slow sinusoid, and O/H/L/C/V noise comes from a
// per-symbol seeded generator.
func SyntheticDaily(symbols []string, days []string) []types.DailyBar {
	out := make([]types.DailyBar, 0, len(symbols)*len(days))
	for _, sym := range symbols {
		h := symbolHash(sym)
		base := 1000.0 + float64(h%3000)
		rng := rand.New(rand.NewSource(int64(h)))
		for _, day := range days {
			t, err := time.Parse("2006-01-02", day)
			if err != nil {
				continue
			}
			p := base * (1 + 0.001*math.Sin(float64(t.YearDay())/3.0))
			o := p * (1 + rng.NormFloat64()*0.002)
			c := p * (1 + rng.NormFloat64()*0.002)
			hi := math.Max(o, c) * (1 + math.Abs(rng.NormFloat64())*0.004)
			lo := math.Min(o, c) * (1 - math.Abs(rng.NormFloat64())*0.004)
			vol := 1e6 + math.Abs(rng.NormFloat64())*2e5
			out = append(out, types.DailyBar{
				Symbol: sym, Date: day,
				Open: o, High: hi, Low: lo, Close: c, Volume: vol,
			})
		}
	}
	return out
}

// GroupBySymbol splits a daily table into per-symbol slices sorted by date.
func GroupBySymbol(daily []types.DailyBar) map[string][]types.DailyBar {
	m := map[string][]types.DailyBar{}
	for _, b := range daily {
		m[b.Symbol] = append(m[b.Symbol], b)
	}
	for _, bars := range m {
		sort.Slice(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })
	}
	return m
}

// SimulateMinutes expands one symbol's daily bar for the date into a minute
// session via a Brownian bridge between the daily open and close, clipped to
// the daily envelope. Falls back to the most recent prior daily bar when the
// date has no row. Synthetic sessions carry no quote columns.
func SimulateMinutes(symbol string, daily []types.DailyBar, date string) types.Session {
	sess := types.Session{Symbol: symbol, Date: date}
	row, ok := dailyRowFor(daily, date)
	if !ok {
		return sess
	}

	idx := sessionMinutes(date)
	n := len(idx)
	if n == 0 {
		return sess
	}

	span := math.Max(row.High-row.Low, 1e-6)
	lower := math.Min(row.Open, row.Low)
	upper := math.Max(row.Close, row.High)

	rng := rand.New(rand.NewSource(dateSeed(date) + int64(symbolHash(symbol))))
	px := make([]float64, n)
	noise := 0.0
	for i := 0; i < n; i++ {
		base := row.Open
		if n > 1 {
			base = row.Open + (row.Close-row.Open)*float64(i)/float64(n-1)
		}
		noise += rng.NormFloat64() * span / 80.0
		px[i] = clamp(base+noise, lower, upper)
	}

	vol := volumeProfile(n, math.Max(row.Volume, 1e5))
	bars := make([]types.MinuteBar, n)
	for i := 0; i < n; i++ {
		open := px[i]
		if i > 0 {
			open = px[i-1]
		}
		bars[i] = types.MinuteBar{
			Ts:     idx[i],
			Open:   open,
			High:   math.Max(open, px[i]) + span/200.0,
			Low:    math.Min(open, px[i]) - span/200.0,
			Close:  px[i],
			Volume: vol[i],
		}
	}
	sess.Bars = bars
	return sess
}

func dailyRowFor(daily []types.DailyBar, date string) (types.DailyBar, bool) {
	var row types.DailyBar
	found := false
	for _, b := range daily {
		if b.Date > date {
			break
		}
		row = b
		found = true
	}
	if !found && len(daily) > 0 {
		// only future rows exist; use the earliest
		return daily[0], true
	}
	return row, found
}

// sessionMinutes returns the minute timestamps of both session halves.
func sessionMinutes(date string) []time.Time {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil
	}
	var out []time.Time
	for _, w := range sessionWindows {
		start, _ := time.Parse("15:04", w[0])
		end, _ := time.Parse("15:04", w[1])
		cur := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, time.UTC)
		stop := time.Date(day.Year(), day.Month(), day.Day(), end.Hour(), end.Minute(), 0, 0, time.UTC)
		for cur.Before(stop) {
			out = append(out, cur)
			cur = cur.Add(time.Minute)
		}
	}
	return out
}

// volumeProfile front-loads volume in the morning and fades into the close.
func volumeProfile(n int, total float64) []int64 {
	w := make([]float64, n)
	half := n / 2
	var sum float64
	for i := 0; i < n; i++ {
		if i < half && half > 1 {
			w[i] = 0.5 + 0.5*float64(i)/float64(half-1)
		} else if n-half > 1 {
			w[i] = 1.0 - 0.4*float64(i-half)/float64(n-half-1)
		} else {
			w[i] = 1.0
		}
		sum += w[i]
	}
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = int64(w[i] / sum * total)
	}
	return out
}

func symbolHash(sym string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sym))
	return h.Sum32()
}

func dateSeed(date string) int64 {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	return int64(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
