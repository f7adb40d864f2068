package holidays

import (
	"errors"
	"fmt"
)

// ErrMissingHolidayData indicates a factory has no holiday file where one was required.
var ErrMissingHolidayData = errors.New("holiday data not found")

// ErrMalformedHolidayData indicates a holiday file that could not be parsed.
var ErrMalformedHolidayData = errors.New("malformed holiday data")

// ErrUnknownFactory indicates a factory identifier outside the configured set.
var ErrUnknownFactory = errors.New("unknown factory")

// MalformedDataError wraps the parse failure of a holiday file.
// It matches ErrMalformedHolidayData with errors.Is.
type MalformedDataError struct {
	Path string
	Err  error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed holiday data in %s: %v", e.Path, e.Err)
}

func (e *MalformedDataError) Unwrap() error {
	return e.Err
}

func (e *MalformedDataError) Is(target error) bool {
	return target == ErrMalformedHolidayData
}
