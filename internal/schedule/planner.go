package schedule

import (
	"fmt"

	"github.com/ka-tamaki/work-scheduler/internal/holidays"
	"github.com/ka-tamaki/work-scheduler/pkg/dateutil"
	"go.uber.org/zap"
)

// Planner lays out one MonthTable per month of a request. It keeps no state
// between calls and is safe for concurrent use with an unshared calendar.
type Planner struct {
	layout Layout
	logger *zap.Logger
}

// NewPlanner creates a planner after validating the layout
func NewPlanner(layout Layout, logger *zap.Logger) (*Planner, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &Planner{
		layout: layout,
		logger: logger,
	}, nil
}

// Plan builds the tables from req.Start through req.End inclusive. Any failure
// aborts the whole plan and no tables are returned.
func (p *Planner) Plan(req Request, cal holidays.Calendar) ([]MonthTable, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tables := make([]MonthTable, 0, req.Start.MonthsThrough(req.End))
	for ym, index := req.Start, 0; !ym.After(req.End); ym, index = ym.Next(), index+1 {
		table, err := p.buildTable(ym, index, cal)
		if err != nil {
			return nil, fmt.Errorf("failed to plan %s: %w", ym, err)
		}
		if index > 0 {
			table.Carry = &CarryRef{PreviousStartRow: tables[index-1].StartRow}
		}
		tables = append(tables, table)
	}

	p.logger.Debug("Schedule planned",
		zap.String("factory", string(req.Factory)),
		zap.String("start", req.Start.String()),
		zap.String("end", req.End.String()),
		zap.Int("tables", len(tables)))

	return tables, nil
}

func (p *Planner) buildTable(ym dateutil.YearMonth, index int, cal holidays.Calendar) (MonthTable, error) {
	label, err := dateutil.EraLabel(ym.Year, ym.Month)
	if err != nil {
		return MonthTable{}, err
	}

	dayCount := ym.DaysInMonth()
	days := make([]Day, dayCount)
	for i := range days {
		n := i + 1
		days[i] = Day{
			Number:  n,
			Weekday: dateutil.WeekdayLabel(ym.Year, ym.Month, n),
			Holiday: cal.IsHoliday(ym.Year, ym.Month, n),
		}
	}

	return MonthTable{
		EraLabel: label,
		Year:     ym.Year,
		Month:    ym.Month,
		StartRow: p.layout.TableStartRow(index),
		DayCount: dayCount,
		Days:     days,
		layout:   p.layout,
	}, nil
}
