package holidays

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Manager owns the in-memory calendar of one factory and saves it after every change
type Manager struct {
	store    *Store
	factory  Factory
	calendar Calendar
	logger   *zap.Logger
}

// NewManager creates a manager with an empty calendar; call Load to read the file
func NewManager(store *Store, factory Factory, logger *zap.Logger) *Manager {
	return &Manager{
		store:    store,
		factory:  factory,
		calendar: NewCalendar(),
		logger:   logger.With(zap.String("factory", string(factory))),
	}
}

// Load reads the factory file. On ErrMalformedHolidayData the manager keeps an
// empty calendar and stays usable; the error is returned so the caller can warn.
func (m *Manager) Load() error {
	cal, err := m.store.Load(m.factory)
	m.calendar = cal
	if err != nil {
		if errors.Is(err, ErrMalformedHolidayData) {
			m.logger.Warn("Holiday file is malformed, starting with an empty calendar",
				zap.Error(err))
		}
		return err
	}

	m.logger.Info("Holiday calendar loaded",
		zap.Int("days", cal.Len()),
		zap.Ints("years", cal.Years()))

	return nil
}

// IsHoliday checks the in-memory calendar
func (m *Manager) IsHoliday(year, month, day int) bool {
	return m.calendar.IsHoliday(year, month, day)
}

// Snapshot returns a deep copy safe to hand to the planner
func (m *Manager) Snapshot() Calendar {
	return m.calendar.Clone()
}

// AddHoliday marks a day as holiday. Adding a present day is a no-op.
func (m *Manager) AddHoliday(year, month, day int) error {
	changed, err := m.calendar.Add(year, month, day)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err := m.store.Save(m.factory, m.calendar); err != nil {
		m.calendar.Remove(year, month, day)
		return fmt.Errorf("failed to save after adding holiday: %w", err)
	}

	m.logger.Info("Holiday added",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("day", day))

	return nil
}

// RemoveHoliday clears a holiday. Removing an absent day is a no-op.
func (m *Manager) RemoveHoliday(year, month, day int) error {
	changed, err := m.calendar.Remove(year, month, day)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err := m.store.Save(m.factory, m.calendar); err != nil {
		m.calendar.insert(year, month, day)
		return fmt.Errorf("failed to save after removing holiday: %w", err)
	}

	m.logger.Info("Holiday removed",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("day", day))

	return nil
}

// ToggleHoliday flips a day and returns whether it is a holiday afterwards
func (m *Manager) ToggleHoliday(year, month, day int) (bool, error) {
	if m.calendar.IsHoliday(year, month, day) {
		return false, m.RemoveHoliday(year, month, day)
	}
	if err := m.AddHoliday(year, month, day); err != nil {
		return false, err
	}
	return true, nil
}

// Merge unions generated days into the calendar and saves when anything was added.
// It returns the number of days added.
func (m *Manager) Merge(generated Calendar) (int, error) {
	merged := Merge(m.calendar, generated)
	added := merged.Len() - m.calendar.Len()
	if added == 0 {
		return 0, nil
	}

	if err := m.store.Save(m.factory, merged); err != nil {
		return 0, fmt.Errorf("failed to save merged holidays: %w", err)
	}
	m.calendar = merged

	return added, nil
}
