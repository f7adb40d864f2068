package holidays

import (
	"time"

	"github.com/ka-tamaki/work-scheduler/pkg/dateutil"
)

// Generate collects every Saturday, Sunday and designated day of [startYear, endYear].
// designated may be nil, in which case only weekends are generated.
func Generate(startYear, endYear int, designated func(time.Time) bool) Calendar {
	cal := NewCalendar()
	for year := startYear; year <= endYear; year++ {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= dateutil.DaysInMonth(year, month); day++ {
				date := dateutil.Date(year, month, day)
				if dateutil.IsWeekend(date) || (designated != nil && designated(date)) {
					cal.insert(year, month, day)
				}
			}
		}
	}
	return cal
}

// Merge returns the per-month union of existing and generated. It never removes a
// day and leaves both inputs untouched.
func Merge(existing, generated Calendar) Calendar {
	merged := existing.Clone()
	for year, months := range generated {
		for month, days := range months {
			for _, day := range days {
				merged.insert(year, month, day)
			}
		}
	}
	return merged
}
