package schedule

import (
	"fmt"

	"github.com/ka-tamaki/work-scheduler/pkg/dateutil"
	"github.com/xuri/excelize/v2"
)

// Day is one column of a month table
type Day struct {
	Number  int                   `json:"day"`
	Weekday dateutil.WeekdayToken `json:"weekday"`
	Holiday bool                  `json:"holiday"`
}

// CarryRef points at the table whose remaining column feeds this one
type CarryRef struct {
	PreviousStartRow int `json:"previous_start_row"`
}

// Row returns the row of the previous table at the same offset
func (c CarryRef) Row(offset int) int {
	return c.PreviousStartRow + offset
}

// MonthTable describes one month's block of the schedule
type MonthTable struct {
	EraLabel string    `json:"era_label"`
	Year     int       `json:"year"`
	Month    int       `json:"month"`
	StartRow int       `json:"start_row"`
	DayCount int       `json:"day_count"`
	Days     []Day     `json:"days"`
	Carry    *CarryRef `json:"carry,omitempty"`

	layout Layout
}

// TitleRow holds the era label
func (t MonthTable) TitleRow() int {
	return t.StartRow
}

// DayRow holds the day numbers
func (t MonthTable) DayRow() int {
	return t.StartRow + 1
}

// WeekdayRow holds the weekday tokens
func (t MonthTable) WeekdayRow() int {
	return t.StartRow + 2
}

// ItemRows returns the content rows below the header
func (t MonthTable) ItemRows() []int {
	rows := make([]int, t.layout.ContentsRows)
	for i := range rows {
		rows[i] = t.StartRow + t.layout.HeaderRows + i
	}
	return rows
}

// HolidayDays returns the day numbers flagged as holidays
func (t MonthTable) HolidayDays() []int {
	var out []int
	for _, d := range t.Days {
		if d.Holiday {
			out = append(out, d.Number)
		}
	}
	return out
}

// DayCell returns the cell name of day in the given row, e.g. day 1 row 9 -> "D9"
func (t MonthTable) DayCell(day, row int) (string, error) {
	if day < 1 || day > t.DayCount {
		return "", fmt.Errorf("day %d outside 1..%d of %04d-%02d", day, t.DayCount, t.Year, t.Month)
	}
	return excelize.CoordinatesToCellName(t.layout.FirstDayColumn+day-1, row)
}

// RemainingCell returns the remaining-quantity cell of a row
func (t MonthTable) RemainingCell(row int) (string, error) {
	return excelize.CoordinatesToCellName(t.layout.RemainingColumn, row)
}

// RemainingFormula returns the remaining-quantity formula of the item row at offset
// from StartRow. The first table subtracts the month's total from the quantity column;
// later tables subtract from the previous table's remaining cell at the same offset.
func (t MonthTable) RemainingFormula(offset int) (string, error) {
	first := t.layout.HeaderRows
	last := t.layout.HeaderRows + t.layout.ContentsRows - 1
	if offset < first || offset > last {
		return "", fmt.Errorf("offset %d outside item rows %d..%d", offset, first, last)
	}
	row := t.StartRow + offset

	from, err := t.DayCell(1, row)
	if err != nil {
		return "", err
	}
	to, err := t.DayCell(t.DayCount, row)
	if err != nil {
		return "", err
	}

	var base string
	if t.Carry == nil {
		base, err = excelize.CoordinatesToCellName(t.layout.QuantityColumn, row)
	} else {
		base, err = t.RemainingCell(t.Carry.Row(offset))
	}
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("=%s-SUM(%s:%s)", base, from, to), nil
}

