package engine

import "time"

// Timeframe is a relative date window label. The set of labels is fixed and
// ordered; anything else passed to SetTimeframe is ignored.
type Timeframe string

const (
	AllTime     Timeframe = "All Time"
	LastYear    Timeframe = "Last Year"
	Last9Months Timeframe = "Last 9 Months"
	Last6Months Timeframe = "Last 6 Months"
	Last3Months Timeframe = "Last 3 Months"
	LastMonth   Timeframe = "Last Month"
	LastWeek    Timeframe = "Last Week"
)

// Timeframes returns the fixed label set in display order.
func Timeframes() []Timeframe {
	return []Timeframe{AllTime, LastYear, Last9Months, Last6Months, Last3Months, LastMonth, LastWeek}
}

// windowStart returns the lower bound of the window ending at ref. The
// second return value is false for All Time and unknown labels, meaning
// no window applies.
func (tf Timeframe) windowStart(ref time.Time) (time.Time, bool) {
	switch tf {
	case LastYear:
		return ref.AddDate(-1, 0, 0), true
	case Last9Months:
		return ref.AddDate(0, -9, 0), true
	case Last6Months:
		return ref.AddDate(0, -6, 0), true
	case Last3Months:
		return ref.AddDate(0, -3, 0), true
	case LastMonth:
		return ref.AddDate(0, -1, 0), true
	case LastWeek:
		return ref.AddDate(0, 0, -7), true
	}
	return time.Time{}, false
}

func validTimeframe(tf Timeframe) bool {
	for _, known := range Timeframes() {
		if tf == known {
			return true
		}
	}
	return false
}
