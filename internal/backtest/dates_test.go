package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMostRecentWeekday(t *testing.T) {
	sun := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-08-29", MostRecentWeekday(sun).Format("2006-01-02")) // Friday

	mon := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-09-01", MostRecentWeekday(mon).Format("2006-01-02"))
}

func TestBusinessDaysSkipWeekends(t *testing.T) {
	end := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) // Monday
	days := BusinessDays(end, 3)
	assert.Equal(t, []string{"2025-08-28", "2025-08-29", "2025-09-01"}, days)
}

func TestBusinessRangeInclusive(t *testing.T) {
	start := time.Date(2025, 8, 28, 0, 0, 0, 0, time.UTC) // Thursday
	end := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)    // Tuesday
	days := BusinessRange(start, end)
	assert.Equal(t, []string{"2025-08-28", "2025-08-29", "2025-09-01", "2025-09-02"}, days)
}

func TestBusinessRangeEmptyWhenInverted(t *testing.T) {
	start := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, BusinessRange(start, end))
}
