package calendar

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	japanFirstYear = 2007 // 昭和の日 and the current substitute-holiday rule
	japanLastYear  = 2099 // equinox approximation limit
)

// JapanCalendar computes Japanese national holidays (国民の祝日) from the holiday law rules
type JapanCalendar struct {
	logger  *zap.Logger
	cache   map[int]map[string]string // year → "YYYY-MM-DD" → name
	cacheMu sync.RWMutex
}

// NewJapanCalendar creates a new JapanCalendar
func NewJapanCalendar(logger *zap.Logger) *JapanCalendar {
	return &JapanCalendar{
		logger: logger,
		cache:  make(map[int]map[string]string),
	}
}

// IsHoliday checks if the given date is a national holiday
func (jc *JapanCalendar) IsHoliday(date time.Time) (bool, string, error) {
	holidays, err := jc.yearHolidays(date.Year())
	if err != nil {
		return false, "", err
	}

	name, ok := holidays[dateKey(date)]
	return ok, name, nil
}

// HolidaysInMonth returns national holidays of the month keyed by day number
func (jc *JapanCalendar) HolidaysInMonth(year int, month time.Month) (map[int]string, error) {
	holidays, err := jc.yearHolidays(year)
	if err != nil {
		return nil, err
	}
	return monthFromMap(holidays, year, month), nil
}

func (jc *JapanCalendar) yearHolidays(year int) (map[string]string, error) {
	if year < japanFirstYear || year > japanLastYear {
		return nil, fmt.Errorf("japanese holidays for %d: %w", year, ErrUnsupportedYear)
	}

	jc.cacheMu.RLock()
	holidays, ok := jc.cache[year]
	jc.cacheMu.RUnlock()
	if ok {
		return holidays, nil
	}

	holidays = japaneseHolidays(year)

	jc.cacheMu.Lock()
	jc.cache[year] = holidays
	jc.cacheMu.Unlock()

	jc.logger.Debug("Computed national holidays",
		zap.Int("year", year),
		zap.Int("count", len(holidays)))

	return holidays, nil
}

// japaneseHolidays returns every national holiday of the year, including
// citizens' holidays and substitute holidays
func japaneseHolidays(year int) map[string]string {
	holidays := make(map[string]string)
	add := func(month time.Month, day int, name string) {
		holidays[formatDate(year, month, day)] = name
	}

	add(time.January, 1, "元日")
	add(time.January, nthMonday(year, time.January, 2), "成人の日")
	add(time.February, 11, "建国記念の日")
	switch {
	case year >= 2020:
		add(time.February, 23, "天皇誕生日")
	case year <= 2018:
		add(time.December, 23, "天皇誕生日")
	}
	add(time.March, vernalEquinoxDay(year), "春分の日")
	add(time.April, 29, "昭和の日")
	add(time.May, 3, "憲法記念日")
	add(time.May, 4, "みどりの日")
	add(time.May, 5, "こどもの日")

	// Olympic years moved 海の日, スポーツの日 and 山の日
	switch year {
	case 2020:
		add(time.July, 23, "海の日")
		add(time.July, 24, "スポーツの日")
		add(time.August, 10, "山の日")
	case 2021:
		add(time.July, 22, "海の日")
		add(time.July, 23, "スポーツの日")
		add(time.August, 8, "山の日")
	default:
		add(time.July, nthMonday(year, time.July, 3), "海の日")
		if year >= 2016 {
			add(time.August, 11, "山の日")
		}
		if year >= 2020 {
			add(time.October, nthMonday(year, time.October, 2), "スポーツの日")
		} else {
			add(time.October, nthMonday(year, time.October, 2), "体育の日")
		}
	}

	add(time.September, nthMonday(year, time.September, 3), "敬老の日")
	add(time.September, autumnalEquinoxDay(year), "秋分の日")
	add(time.November, 3, "文化の日")
	add(time.November, 23, "勤労感謝の日")

	if year == 2019 {
		add(time.May, 1, "天皇の即位の日")
		add(time.October, 22, "即位礼正殿の儀")
	}

	statutory := sortedKeys(holidays)

	// 国民の休日: a non-Sunday day sandwiched between two statutory holidays
	for _, key := range statutory {
		day, _ := time.Parse("2006-01-02", key)
		between := day.AddDate(0, 0, 1)
		after := day.AddDate(0, 0, 2)
		if _, ok := holidays[after.Format("2006-01-02")]; !ok {
			continue
		}
		if _, ok := holidays[between.Format("2006-01-02")]; ok {
			continue
		}
		if between.Weekday() == time.Sunday {
			continue
		}
		holidays[between.Format("2006-01-02")] = "国民の休日"
	}

	// 振替休日: a holiday on Sunday moves to the next day that is not a holiday
	for _, key := range statutory {
		day, _ := time.Parse("2006-01-02", key)
		if day.Weekday() != time.Sunday {
			continue
		}
		substitute := day.AddDate(0, 0, 1)
		for {
			if _, ok := holidays[substitute.Format("2006-01-02")]; !ok {
				break
			}
			substitute = substitute.AddDate(0, 0, 1)
		}
		holidays[substitute.Format("2006-01-02")] = "振替休日"
	}

	return holidays
}

// nthMonday returns the day number of the n-th Monday of the month
func nthMonday(year int, month time.Month, n int) int {
	first := time.Date(year, month, 1, 12, 0, 0, 0, time.UTC)
	offset := (int(time.Monday) - int(first.Weekday()) + 7) % 7
	return 1 + offset + (n-1)*7
}

// vernalEquinoxDay approximates 春分の日 for 1980-2099
func vernalEquinoxDay(year int) int {
	y := float64(year - 1980)
	return int(math.Floor(20.8431 + 0.242194*y - math.Floor(y/4)))
}

// autumnalEquinoxDay approximates 秋分の日 for 1980-2099
func autumnalEquinoxDay(year int) int {
	y := float64(year - 1980)
	return int(math.Floor(23.2488 + 0.242194*y - math.Floor(y/4)))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
