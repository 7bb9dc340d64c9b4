package ta

import "math"

// VWAP returns the cumulative volume-weighted average price series.
// Entries are NaN while cumulative volume is still zero.
func VWAP(closes []float64, vols []float64) []float64 {
	out := make([]float64, len(closes))
	var pv, vv float64
	for i := range closes {
		pv += closes[i] * vols[i]
		vv += vols[i]
		if vv == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = pv / vv
	}
	return out
}

// TrueRange is the classic Wilder true range for one day.
func TrueRange(high, low, prevClose float64) float64 {
	tr := high - low
	if d := math.Abs(high - prevClose); d > tr {
		tr = d
	}
	if d := math.Abs(low - prevClose); d > tr {
		tr = d
	}
	return tr
}

// ATRSeries computes a rolling simple mean of true range. The first entry
// uses the same-day close as previous close. The mean uses all available
// days when fewer than window exist (minimum period 1).
func ATRSeries(highs, lows, closes []float64, window int) []float64 {
	n := len(closes)
	if len(highs) != n || len(lows) != n {
		return nil
	}
	if window < 1 {
		window = 1
	}
	trs := make([]float64, n)
	for i := 0; i < n; i++ {
		prev := closes[i]
		if i > 0 {
			prev = closes[i-1]
		}
		trs[i] = TrueRange(highs[i], lows[i], prev)
	}
	return RollingMean(trs, window)
}

// RollingMean is a trailing simple mean with minimum period 1.
func RollingMean(xs []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(xs))
	sum := 0.0
	for i := range xs {
		sum += xs[i]
		if i >= window {
			sum -= xs[i-window]
		}
		k := i + 1
		if k > window {
			k = window
		}
		out[i] = sum / float64(k)
	}
	return out
}
