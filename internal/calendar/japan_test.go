package calendar

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestJapanCalendar_IsHoliday(t *testing.T) {
	cal := NewJapanCalendar(zap.NewNop())

	tests := []struct {
		name     string
		date     time.Time
		want     bool
		wantName string
	}{
		{"New Year", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true, "元日"},
		{"Coming of Age Day 2024", time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), true, "成人の日"},
		{"Foundation Day on Sunday", time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC), true, "建国記念の日"},
		{"Substitute for Foundation Day", time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC), true, "振替休日"},
		{"Emperor's Birthday", time.Date(2024, 2, 23, 0, 0, 0, 0, time.UTC), true, "天皇誕生日"},
		{"Vernal Equinox 2024", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), true, "春分の日"},
		{"Children's Day on Sunday", time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC), true, "こどもの日"},
		{"Substitute for Children's Day", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), true, "振替休日"},
		{"Marine Day 2024", time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), true, "海の日"},
		{"Mountain Day substitute", time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC), true, "振替休日"},
		{"Respect for the Aged 2024", time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC), true, "敬老の日"},
		{"Autumnal Equinox 2024", time.Date(2024, 9, 22, 0, 0, 0, 0, time.UTC), true, "秋分の日"},
		{"Sports Day 2024", time.Date(2024, 10, 14, 0, 0, 0, 0, time.UTC), true, "スポーツの日"},
		{"Labor Thanksgiving", time.Date(2024, 11, 23, 0, 0, 0, 0, time.UTC), true, "勤労感謝の日"},
		{"Regular Friday", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false, ""},
		{"Plain Sunday is not designated", time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), false, ""},
		{"Accession Day 2019", time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC), true, "天皇の即位の日"},
		{"Citizens' holiday 2019-04-30", time.Date(2019, 4, 30, 0, 0, 0, 0, time.UTC), true, "国民の休日"},
		{"Citizens' holiday 2019-05-02", time.Date(2019, 5, 2, 0, 0, 0, 0, time.UTC), true, "国民の休日"},
		{"No Emperor's Birthday in 2019", time.Date(2019, 12, 23, 0, 0, 0, 0, time.UTC), false, ""},
		{"Olympic Sports Day 2021", time.Date(2021, 7, 23, 0, 0, 0, 0, time.UTC), true, "スポーツの日"},
		{"Citizens' holiday 2026-09-22", time.Date(2026, 9, 22, 0, 0, 0, 0, time.UTC), true, "国民の休日"},
		{"Local time of day ignored", time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC), true, "元日"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, name, err := cal.IsHoliday(tt.date)
			if err != nil {
				t.Fatalf("IsHoliday() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("IsHoliday(%s) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
			if name != tt.wantName {
				t.Errorf("IsHoliday(%s) name = %q, want %q", tt.date.Format("2006-01-02"), name, tt.wantName)
			}
		})
	}
}

func TestJapanCalendar_HolidaysInMonth(t *testing.T) {
	cal := NewJapanCalendar(zap.NewNop())

	may, err := cal.HolidaysInMonth(2024, time.May)
	if err != nil {
		t.Fatalf("HolidaysInMonth() error = %v", err)
	}

	want := []int{3, 4, 5, 6}
	if len(may) != len(want) {
		t.Fatalf("May 2024 holidays = %v, want days %v", may, want)
	}
	for _, day := range want {
		if _, ok := may[day]; !ok {
			t.Errorf("May 2024 missing day %d", day)
		}
	}
}

func TestJapanCalendar_UnsupportedYear(t *testing.T) {
	cal := NewJapanCalendar(zap.NewNop())

	_, _, err := cal.IsHoliday(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrUnsupportedYear) {
		t.Errorf("IsHoliday(1999) error = %v, want ErrUnsupportedYear", err)
	}
}

func TestNthMonday(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		n     int
		want  int
	}{
		{"Month starting on Monday", 2024, time.January, 2, 8},
		{"Month starting on Sunday", 2024, time.September, 3, 16},
		{"Month starting on Tuesday", 2024, time.October, 2, 14},
		{"First Monday", 2025, time.September, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nthMonday(tt.year, tt.month, tt.n); got != tt.want {
				t.Errorf("nthMonday(%d, %v, %d) = %d, want %d", tt.year, tt.month, tt.n, got, tt.want)
			}
		})
	}
}

func TestPredicate(t *testing.T) {
	designated := Predicate(NewJapanCalendar(zap.NewNop()), zap.NewNop())

	if !designated(time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)) {
		t.Error("Predicate(2024-11-03) = false, want true")
	}
	if designated(time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)) {
		t.Error("Predicate(2024-11-05) = true, want false")
	}
}

func TestPredicate_UnsupportedYear(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	designated := Predicate(NewJapanCalendar(zap.NewNop()), zap.New(core))

	for d := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() == 1990; d = d.AddDate(0, 0, 1) {
		if designated(d) {
			t.Fatalf("Predicate(%s) = true, want false for unsupported year", d.Format("2006-01-02"))
		}
	}
	designated(time.Date(1991, 1, 1, 0, 0, 0, 0, time.UTC))

	if got := logs.Len(); got != 2 {
		t.Errorf("warnings logged = %d, want one per year", got)
	}
}
