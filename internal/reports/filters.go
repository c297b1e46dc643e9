package reports

import (
	"errors"
	"fmt"
	"time"
)

// The audit-log export is windowed. Presets cover the spans organizers
// actually ask for (today, the past week, the month so far, the
// current academic term, the calendar year); custom takes explicit
// YYYY-MM-DD bounds.

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// semesterStart returns the first day of the academic term containing
// t: spring runs January through May, summer June and July, fall
// August through December.
func semesterStart(t time.Time) time.Time {
	switch {
	case t.Month() < time.June:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	case t.Month() < time.August:
		return time.Date(t.Year(), time.June, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), time.August, 1, 0, 0, 0, 0, t.Location())
	}
}

// GetDateRange resolves a window preset into concrete bounds. All
// presets end at the current day's last second; custom windows include
// the whole end day.
func GetDateRange(dateRange, startStr, endStr string) (time.Time, time.Time, error) {
	now := time.Now()

	switch dateRange {
	case DateRangeDaily:
		return startOfDay(now), endOfDay(now), nil
	case DateRangeWeekly:
		return startOfDay(now.AddDate(0, 0, -6)), endOfDay(now), nil
	case DateRangeMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), endOfDay(now), nil
	case DateRangeSemester:
		return semesterStart(now), endOfDay(now), nil
	case DateRangeYearly:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), endOfDay(now), nil
	case DateRangeCustom:
		if startStr == "" || endStr == "" {
			return time.Time{}, time.Time{}, errors.New("custom window needs start_date and end_date")
		}
		start, err := time.ParseInLocation("2006-01-02", startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad start_date %q, want YYYY-MM-DD", startStr)
		}
		end, err := time.ParseInLocation("2006-01-02", endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad end_date %q, want YYYY-MM-DD", endStr)
		}
		end = endOfDay(end)
		if end.Before(start) {
			return time.Time{}, time.Time{}, errors.New("end_date falls before start_date")
		}
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown date range %q", dateRange)
	}
}
