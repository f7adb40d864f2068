package calendar

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CompositeCalendar implements HolidaySource with fallback strategy
// Primary: HolidaysJPCalendar (API)
// Fallback: JapanCalendar (built-in rules)
type CompositeCalendar struct {
	primary  HolidaySource
	fallback HolidaySource
	logger   *zap.Logger

	warnedMu sync.Mutex
	warned   map[int]bool
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(primary, fallback HolidaySource, logger *zap.Logger) *CompositeCalendar {
	return &CompositeCalendar{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		warned:   make(map[int]bool),
	}
}

// IsHoliday checks the primary source and falls back on error
func (cc *CompositeCalendar) IsHoliday(date time.Time) (bool, string, error) {
	isHoliday, name, err := cc.primary.IsHoliday(date)
	if err == nil {
		return isHoliday, name, nil
	}

	cc.logFallback(date.Year(), err)
	return cc.fallback.IsHoliday(date)
}

// HolidaysInMonth checks the primary source and falls back on error
func (cc *CompositeCalendar) HolidaysInMonth(year int, month time.Month) (map[int]string, error) {
	holidays, err := cc.primary.HolidaysInMonth(year, month)
	if err == nil {
		return holidays, nil
	}

	cc.logFallback(year, err)
	return cc.fallback.HolidaysInMonth(year, month)
}

// logFallback warns on the first fallback of a year; later ones go to debug
func (cc *CompositeCalendar) logFallback(year int, err error) {
	cc.warnedMu.Lock()
	first := !cc.warned[year]
	cc.warned[year] = true
	cc.warnedMu.Unlock()

	if first {
		cc.logger.Warn("Primary holiday source failed, falling back",
			zap.Int("year", year),
			zap.Error(err))
		return
	}
	cc.logger.Debug("Primary holiday source failed, falling back",
		zap.Int("year", year),
		zap.Error(err))
}

// UnionCalendar reports a holiday when any of its sources does.
// A failing source is skipped; lookups fail only when every source failed.
type UnionCalendar struct {
	sources []HolidaySource
}

// NewUnionCalendar creates a new UnionCalendar
func NewUnionCalendar(sources ...HolidaySource) *UnionCalendar {
	return &UnionCalendar{sources: sources}
}

// IsHoliday returns the first source that reports the date as a holiday
func (uc *UnionCalendar) IsHoliday(date time.Time) (bool, string, error) {
	var errs []error
	for i, src := range uc.sources {
		isHoliday, name, err := src.IsHoliday(date)
		if err != nil {
			errs = append(errs, fmt.Errorf("holiday source %d: %w", i, err))
			continue
		}
		if isHoliday {
			return true, name, nil
		}
	}
	if len(errs) > 0 && len(errs) == len(uc.sources) {
		return false, "", errors.Join(errs...)
	}
	return false, "", nil
}

// HolidaysInMonth merges all sources; earlier sources win on name conflicts
func (uc *UnionCalendar) HolidaysInMonth(year int, month time.Month) (map[int]string, error) {
	var errs []error
	result := make(map[int]string)
	for i, src := range uc.sources {
		holidays, err := src.HolidaysInMonth(year, month)
		if err != nil {
			errs = append(errs, fmt.Errorf("holiday source %d: %w", i, err))
			continue
		}
		for day, name := range holidays {
			if _, ok := result[day]; !ok {
				result[day] = name
			}
		}
	}
	if len(errs) > 0 && len(errs) == len(uc.sources) {
		return nil, errors.Join(errs...)
	}
	return result, nil
}
