package holidays

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// InitResult summarizes the refresh of one factory
type InitResult struct {
	Factory   Factory
	Added     int
	Total     int
	Malformed bool // the previous file could not be parsed and was replaced
}

// Initializer refreshes every factory's holiday file with weekends and designated
// holidays without discarding manual edits
type Initializer struct {
	store      *Store
	designated func(time.Time) bool
	logger     *zap.Logger
}

// NewInitializer creates a new Initializer
func NewInitializer(store *Store, designated func(time.Time) bool, logger *zap.Logger) *Initializer {
	return &Initializer{
		store:      store,
		designated: designated,
		logger:     logger,
	}
}

// Run generates [startYear, endYear] once and merges it into every configured factory
func (i *Initializer) Run(startYear, endYear int) ([]InitResult, error) {
	if startYear > endYear {
		return nil, fmt.Errorf("start year %d after end year %d", startYear, endYear)
	}

	factories := i.store.Factories()
	if len(factories) == 0 {
		return nil, fmt.Errorf("no factories configured")
	}

	i.logger.Info("Generating holidays",
		zap.Int("start_year", startYear),
		zap.Int("end_year", endYear),
		zap.Int("factories", len(factories)))

	generated := Generate(startYear, endYear, i.designated)

	results := make([]InitResult, 0, len(factories))
	for _, factory := range factories {
		result, err := i.refresh(factory, generated)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

func (i *Initializer) refresh(factory Factory, generated Calendar) (InitResult, error) {
	result := InitResult{Factory: factory}

	manager := NewManager(i.store, factory, i.logger)
	if err := manager.Load(); err != nil {
		if !errors.Is(err, ErrMalformedHolidayData) {
			return result, fmt.Errorf("failed to load holidays for %s: %w", factory, err)
		}
		result.Malformed = true
	}

	added, err := manager.Merge(generated)
	if err != nil {
		return result, fmt.Errorf("failed to refresh holidays for %s: %w", factory, err)
	}
	if result.Malformed && added == 0 {
		// rewrite the unreadable file even when nothing new was generated
		if err := i.store.Save(factory, manager.Snapshot()); err != nil {
			return result, fmt.Errorf("failed to rewrite holidays for %s: %w", factory, err)
		}
	}

	result.Added = added
	result.Total = manager.Snapshot().Len()

	i.logger.Info("Factory holidays refreshed",
		zap.String("factory", string(factory)),
		zap.Int("added", result.Added),
		zap.Int("total", result.Total))

	return result, nil
}
