package dateutil

import (
	"fmt"
	"time"
)

// YearMonth identifies a calendar month
type YearMonth struct {
	Year  int
	Month int
}

// NewYearMonth builds a YearMonth and checks the month number
func NewYearMonth(year, month int) (YearMonth, error) {
	ym := YearMonth{Year: year, Month: month}
	if err := ym.Validate(); err != nil {
		return YearMonth{}, err
	}
	return ym, nil
}

// Validate checks that Month is within 1..12
func (ym YearMonth) Validate() error {
	if ym.Month < 1 || ym.Month > 12 {
		return fmt.Errorf("month %d of %d: %w", ym.Month, ym.Year, ErrInvalidDate)
	}
	return nil
}

// Next returns the following month, rolling the year after December
func (ym YearMonth) Next() YearMonth {
	if ym.Month == 12 {
		return YearMonth{Year: ym.Year + 1, Month: 1}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Compare returns -1, 0 or 1 ordering by year then month
func (ym YearMonth) Compare(other YearMonth) int {
	switch {
	case ym.Year < other.Year:
		return -1
	case ym.Year > other.Year:
		return 1
	case ym.Month < other.Month:
		return -1
	case ym.Month > other.Month:
		return 1
	}
	return 0
}

// After reports whether ym is strictly later than other
func (ym YearMonth) After(other YearMonth) bool {
	return ym.Compare(other) > 0
}

// MonthsThrough returns the inclusive number of months from ym to end (0 if end is earlier)
func (ym YearMonth) MonthsThrough(end YearMonth) int {
	n := (end.Year-ym.Year)*12 + end.Month - ym.Month + 1
	if n < 0 {
		return 0
	}
	return n
}

// DaysInMonth returns the day count of the month
func (ym YearMonth) DaysInMonth() int {
	return DaysInMonth(ym.Year, ym.Month)
}

// String formats as YYYY-MM
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// CurrentYearMonth returns the month containing now
func CurrentYearMonth() YearMonth {
	now := time.Now()
	return YearMonth{Year: now.Year(), Month: int(now.Month())}
}

// ParseYearMonth parses "2024-12", "2024/12" or "202412"
func ParseYearMonth(s string) (YearMonth, error) {
	formats := []string{
		"2006-01",
		"2006/01",
		"2006/1",
		"200601",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return YearMonth{Year: t.Year(), Month: int(t.Month())}, nil
		}
	}

	return YearMonth{}, fmt.Errorf("unrecognized year-month %q: %w", s, ErrInvalidDate)
}
