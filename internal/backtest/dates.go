package backtest

import "time"

const dateLayout = "2006-01-02"

// MostRecentWeekday walks back from t to the nearest Mon-Fri day.
func MostRecentWeekday(t time.Time) time.Time {
	for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// BusinessDays returns the last n weekdays ending at end (inclusive),
// ascending, formatted as 2006-01-02.
func BusinessDays(end time.Time, n int) []string {
	end = MostRecentWeekday(end)
	days := make([]string, 0, n)
	for d := end; len(days) < n; d = d.AddDate(0, 0, -1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		days = append(days, d.Format(dateLayout))
	}
	// collected newest-first, flip to ascending
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days
}

// BusinessRange returns the weekdays in [start, end], ascending.
func BusinessRange(start, end time.Time) []string {
	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		days = append(days, d.Format(dateLayout))
	}
	return days
}
