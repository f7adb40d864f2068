package holidays

import (
	"sort"

	"github.com/ka-tamaki/work-scheduler/pkg/dateutil"
)

// Factory identifies a manufacturing site and its holiday file
type Factory string

// DefaultFactories is the site list used when configuration names none
var DefaultFactories = []Factory{"yuki", "kumagaya", "shizuoka", "kyoto", "chiba"}

// Calendar maps year → month → ascending, unique holiday day numbers.
// Empty months and years are never kept.
type Calendar map[int]map[int][]int

// NewCalendar returns an empty calendar
func NewCalendar() Calendar {
	return make(Calendar)
}

// IsHoliday reports whether day is present in calendar[year][month]
func (c Calendar) IsHoliday(year, month, day int) bool {
	days := c[year][month]
	i := sort.SearchInts(days, day)
	return i < len(days) && days[i] == day
}

// Days returns a copy of the holiday days of a month
func (c Calendar) Days(year, month int) []int {
	days := c[year][month]
	out := make([]int, len(days))
	copy(out, days)
	return out
}

// Add inserts a holiday, keeping the month sorted. It reports whether the calendar changed.
func (c Calendar) Add(year, month, day int) (bool, error) {
	if err := dateutil.ValidateDate(year, month, day); err != nil {
		return false, err
	}
	return c.insert(year, month, day), nil
}

// Remove deletes a holiday and drops empty month/year keys. It reports whether the calendar changed.
func (c Calendar) Remove(year, month, day int) (bool, error) {
	if err := dateutil.ValidateDate(year, month, day); err != nil {
		return false, err
	}

	days := c[year][month]
	i := sort.SearchInts(days, day)
	if i >= len(days) || days[i] != day {
		return false, nil
	}

	days = append(days[:i:i], days[i+1:]...)
	if len(days) == 0 {
		delete(c[year], month)
		if len(c[year]) == 0 {
			delete(c, year)
		}
		return true, nil
	}
	c[year][month] = days
	return true, nil
}

// insert adds an already validated date
func (c Calendar) insert(year, month, day int) bool {
	months, ok := c[year]
	if !ok {
		months = make(map[int][]int)
		c[year] = months
	}

	days := months[month]
	i := sort.SearchInts(days, day)
	if i < len(days) && days[i] == day {
		return false
	}

	inserted := make([]int, 0, len(days)+1)
	inserted = append(inserted, days[:i]...)
	inserted = append(inserted, day)
	inserted = append(inserted, days[i:]...)
	months[month] = inserted
	return true
}

// Clone returns a deep copy
func (c Calendar) Clone() Calendar {
	out := make(Calendar, len(c))
	for year, months := range c {
		copied := make(map[int][]int, len(months))
		for month, days := range months {
			copied[month] = append([]int(nil), days...)
		}
		out[year] = copied
	}
	return out
}

// Equal reports set equality per month
func (c Calendar) Equal(other Calendar) bool {
	if c.Len() != other.Len() {
		return false
	}
	for year, months := range c {
		for month, days := range months {
			for _, day := range days {
				if !other.IsHoliday(year, month, day) {
					return false
				}
			}
		}
	}
	return true
}

// Len returns the total number of holiday days
func (c Calendar) Len() int {
	n := 0
	for _, months := range c {
		for _, days := range months {
			n += len(days)
		}
	}
	return n
}

// Years returns the years present, ascending
func (c Calendar) Years() []int {
	years := make([]int, 0, len(c))
	for year := range c {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// Months returns the months present in a year, ascending
func (c Calendar) Months(year int) []int {
	months := make([]int, 0, len(c[year]))
	for month := range c[year] {
		months = append(months, month)
	}
	sort.Ints(months)
	return months
}
