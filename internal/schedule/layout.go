package schedule

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidLayout indicates inconsistent layout constants
var ErrInvalidLayout = errors.New("invalid layout")

// maxDaysInMonth is the widest day header a table can need
const maxDaysInMonth = 31

// Layout holds the grid constants shared by every month table.
// Rows and columns are 1-based, as in a spreadsheet.
type Layout struct {
	FirstTableRow   int `json:"first_table_row"`
	RowsPerTable    int `json:"rows_per_table"`
	HeaderRows      int `json:"header_rows"`   // era label, day numbers, weekdays
	ContentsRows    int `json:"contents_rows"` // item rows below the header
	FirstDayColumn  int `json:"first_day_column"`
	QuantityColumn  int `json:"quantity_column"`
	RemainingColumn int `json:"remaining_column"`
}

// DefaultLayout returns the layout of the standard production schedule template
func DefaultLayout() Layout {
	return Layout{
		FirstTableRow:   8,
		RowsPerTable:    13,
		HeaderRows:      3,
		ContentsRows:    8,
		FirstDayColumn:  4,  // D
		QuantityColumn:  3,  // C
		RemainingColumn: 35, // AI
	}
}

// Validate checks that tables do not overlap and columns do not collide
func (l Layout) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"first_table_row", l.FirstTableRow},
		{"rows_per_table", l.RowsPerTable},
		{"header_rows", l.HeaderRows},
		{"contents_rows", l.ContentsRows},
		{"first_day_column", l.FirstDayColumn},
		{"quantity_column", l.QuantityColumn},
		{"remaining_column", l.RemainingColumn},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d: %w", f.name, f.value, ErrInvalidLayout)
		}
	}

	if l.HeaderRows < 3 {
		return fmt.Errorf("header_rows must be at least 3, got %d: %w", l.HeaderRows, ErrInvalidLayout)
	}
	if l.HeaderRows+l.ContentsRows > l.RowsPerTable {
		return fmt.Errorf("header_rows + contents_rows (%d) exceeds rows_per_table (%d): %w",
			l.HeaderRows+l.ContentsRows, l.RowsPerTable, ErrInvalidLayout)
	}

	lastDayColumn := l.FirstDayColumn + maxDaysInMonth - 1
	if l.QuantityColumn >= l.FirstDayColumn {
		return fmt.Errorf("quantity_column %d must precede first_day_column %d: %w",
			l.QuantityColumn, l.FirstDayColumn, ErrInvalidLayout)
	}
	if l.RemainingColumn <= lastDayColumn {
		return fmt.Errorf("remaining_column %d overlaps day columns ending at %d: %w",
			l.RemainingColumn, lastDayColumn, ErrInvalidLayout)
	}

	return nil
}

// TableStartRow returns the first row of the table at zero-based index
func (l Layout) TableStartRow(index int) int {
	return l.FirstTableRow + index*l.RowsPerTable
}

// DayColumnName returns the column letters of a day, e.g. day 1 -> "D"
func (l Layout) DayColumnName(day int) (string, error) {
	return excelize.ColumnNumberToName(l.FirstDayColumn + day - 1)
}

// RemainingColumnName returns the column letters of the remaining column, e.g. "AI"
func (l Layout) RemainingColumnName() (string, error) {
	return excelize.ColumnNumberToName(l.RemainingColumn)
}
