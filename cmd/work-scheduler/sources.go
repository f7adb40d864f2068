package main

import (
	"fmt"
	"time"

	"github.com/ka-tamaki/work-scheduler/internal/calendar"
	"github.com/ka-tamaki/work-scheduler/internal/config"
	"github.com/ka-tamaki/work-scheduler/internal/holidays"
	"go.uber.org/zap"
)

// buildHolidaySource assembles the designated-holiday source from config.
// It returns nil when only weekends should be generated.
func buildHolidaySource(cfg *config.Config, logger *zap.Logger) (calendar.HolidaySource, error) {
	var national calendar.HolidaySource

	switch cfg.Holidays.Source {
	case config.SourceBuiltin:
		logger.Info("Using built-in Japanese holiday rules")
		national = calendar.NewJapanCalendar(logger)

	case config.SourceHolidaysJP:
		logger.Info("Using holidays-jp API with built-in fallback",
			zap.String("api_url", cfg.Holidays.APIURL))
		primary := calendar.NewHolidaysJPCalendar(
			cfg.Holidays.APIURL,
			cfg.Holidays.GetCacheTTL(),
			logger,
		)
		national = calendar.NewCompositeCalendar(primary, calendar.NewJapanCalendar(logger), logger)

	case config.SourceNone:
		logger.Info("No designated holiday source, generating weekends only")

	default:
		return nil, fmt.Errorf("unknown holiday source: %s", cfg.Holidays.Source)
	}

	if cfg.Holidays.ExtraFile == "" {
		return national, nil
	}

	closures := calendar.NewFileCalendar(cfg.Holidays.ExtraFile, logger)
	if err := closures.Load(); err != nil {
		return nil, fmt.Errorf("failed to load extra holiday file: %w", err)
	}
	if national == nil {
		return closures, nil
	}
	return calendar.NewUnionCalendar(national, closures), nil
}

// designatedPredicate returns the generator predicate, nil for weekends only
func designatedPredicate(src calendar.HolidaySource, logger *zap.Logger) func(time.Time) bool {
	if src == nil {
		return nil
	}
	return calendar.Predicate(src, logger)
}

// newStore creates the holiday store for the configured factories
func newStore(cfg *config.Config) *holidays.Store {
	return holidays.NewStore(cfg.Holidays.Dir, cfg.FactoryIDs(), logger)
}

// runInitializer refreshes every factory file over the configured year range
func runInitializer(cfg *config.Config, startYear, endYear int) ([]holidays.InitResult, error) {
	src, err := buildHolidaySource(cfg, logger)
	if err != nil {
		return nil, err
	}

	initializer := holidays.NewInitializer(newStore(cfg), designatedPredicate(src, logger), logger)
	return initializer.Run(startYear, endYear)
}
