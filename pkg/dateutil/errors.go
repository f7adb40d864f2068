package dateutil

import (
	"errors"
	"fmt"
)

// ErrDateRange indicates a date outside the supported range or an inverted range.
var ErrDateRange = errors.New("date out of range")

// ErrInvalidDate indicates a (year, month, day) triple that is not a calendar date.
var ErrInvalidDate = errors.New("invalid date")

// DateRangeError carries the year/month that fell outside the supported range.
type DateRangeError struct {
	Year   int
	Month  int
	Reason string
}

func (e *DateRangeError) Error() string {
	return fmt.Sprintf("%04d-%02d out of range: %s", e.Year, e.Month, e.Reason)
}

func (e *DateRangeError) Unwrap() error {
	return ErrDateRange
}
