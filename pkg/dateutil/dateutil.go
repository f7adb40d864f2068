package dateutil

import (
	"fmt"
	"time"
)

// EraEpochYear is the first Gregorian year of the Reiwa era (令和元年)
const EraEpochYear = 2019

// WeekdayToken is the single-character weekday label printed under a day number
type WeekdayToken string

const (
	Monday    WeekdayToken = "月"
	Tuesday   WeekdayToken = "火"
	Wednesday WeekdayToken = "水"
	Thursday  WeekdayToken = "木"
	Friday    WeekdayToken = "金"
	Saturday  WeekdayToken = "土"
	Sunday    WeekdayToken = "日"
)

// indexed by time.Weekday (Sunday = 0)
var weekdayTokens = [7]WeekdayToken{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Date returns midnight UTC of the given calendar date
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the month, accounting for leap years
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekdayLabel returns the weekday token for the given date
func WeekdayLabel(year, month, day int) WeekdayToken {
	return weekdayTokens[Date(year, month, day).Weekday()]
}

// ValidateDate checks that (year, month, day) names a real calendar date
func ValidateDate(year, month, day int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d: %w", month, ErrInvalidDate)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return fmt.Errorf("%04d-%02d-%02d: %w", year, month, day, ErrInvalidDate)
	}
	return nil
}

// EraLabel renders year/month in the Reiwa era, e.g. 2024/3 -> "令和6年3月".
// Years before EraEpochYear fail with ErrDateRange.
func EraLabel(year, month int) (string, error) {
	if year < EraEpochYear {
		return "", &DateRangeError{
			Year:   year,
			Month:  month,
			Reason: fmt.Sprintf("era labels start in %d", EraEpochYear),
		}
	}
	return fmt.Sprintf("令和%d年%d月", year-(EraEpochYear-1), month), nil
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// ParseDate parses a date string in the formats accepted on the command line
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"2006/1/2",
		"20060102",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q: %w", dateStr, ErrInvalidDate)
}
