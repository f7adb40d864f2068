package calendar

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrUnsupportedYear is returned by sources that have no data for the requested year
var ErrUnsupportedYear = errors.New("year not supported by holiday source")

// HolidaySource reports designated holidays (national or company-wide), not weekends
type HolidaySource interface {
	// IsHoliday checks if the given date is a designated holiday and returns its name
	IsHoliday(date time.Time) (bool, string, error)

	// HolidaysInMonth returns the designated holidays of a month keyed by day number
	HolidaysInMonth(year int, month time.Month) (map[int]string, error)
}

// Predicate adapts a source to the boolean form consumed by the holiday generator.
// Lookup errors treat the day as not designated and are warned about once per year.
func Predicate(src HolidaySource, logger *zap.Logger) func(time.Time) bool {
	var mu sync.Mutex
	warned := make(map[int]bool)

	return func(date time.Time) bool {
		isHoliday, _, err := src.IsHoliday(date)
		if err == nil {
			return isHoliday
		}

		mu.Lock()
		first := !warned[date.Year()]
		warned[date.Year()] = true
		mu.Unlock()

		if first {
			logger.Warn("Holiday lookup failed, treating days of the year as regular",
				zap.Int("year", date.Year()),
				zap.Error(err))
		}
		return false
	}
}

// monthFromMap filters a date-keyed holiday map down to one month
func monthFromMap(holidays map[string]string, year int, month time.Month) map[int]string {
	result := make(map[int]string)
	for key, name := range holidays {
		date, err := time.Parse("2006-01-02", key)
		if err != nil {
			continue
		}
		if date.Year() == year && date.Month() == month {
			result[date.Day()] = name
		}
	}
	return result
}

// formatDate formats a date as YYYY-MM-DD
func formatDate(year int, month time.Month, day int) string {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// dateKey formats the calendar date of t as YYYY-MM-DD, ignoring its time of day
func dateKey(t time.Time) string {
	year, month, day := t.Date()
	return formatDate(year, month, day)
}
