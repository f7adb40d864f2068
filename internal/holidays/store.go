package holidays

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ka-tamaki/work-scheduler/pkg/dateutil"
	"go.uber.org/zap"
)

const filePermissions = 0o644

// Store persists one holiday calendar file per factory:
// {"<year>": {"<month>": [day, ...]}}
type Store struct {
	dir       string
	factories []Factory
	logger    *zap.Logger
}

// NewStore creates a store rooted at dir. An empty factory list accepts any safe identifier.
func NewStore(dir string, factories []Factory, logger *zap.Logger) *Store {
	return &Store{
		dir:       dir,
		factories: factories,
		logger:    logger,
	}
}

// Factories returns the configured factory identifiers
func (s *Store) Factories() []Factory {
	return append([]Factory(nil), s.factories...)
}

// Path returns the holiday file of a factory
func (s *Store) Path(factory Factory) string {
	return filepath.Join(s.dir, string(factory)+".json")
}

// Validate checks that the factory is known and safe to use as a file name
func (s *Store) Validate(factory Factory) error {
	id := string(factory)
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%q: %w", id, ErrUnknownFactory)
	}
	if len(s.factories) == 0 {
		return nil
	}
	for _, known := range s.factories {
		if known == factory {
			return nil
		}
	}
	return fmt.Errorf("%q: %w", id, ErrUnknownFactory)
}

// Exists reports whether the factory has a holiday file
func (s *Store) Exists(factory Factory) bool {
	_, err := os.Stat(s.Path(factory))
	return err == nil
}

// Load reads a factory calendar. A missing file is an empty calendar.
// A malformed file yields an empty calendar together with ErrMalformedHolidayData.
func (s *Store) Load(factory Factory) (Calendar, error) {
	if err := s.Validate(factory); err != nil {
		return NewCalendar(), err
	}

	path := s.Path(factory)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Holiday file not found, starting empty",
				zap.String("factory", string(factory)),
				zap.String("file", path))
			return NewCalendar(), nil
		}
		return NewCalendar(), fmt.Errorf("failed to read holiday file: %w", err)
	}

	cal, err := s.decode(path, data)
	if err != nil {
		return NewCalendar(), err
	}

	s.logger.Debug("Holiday file loaded",
		zap.String("factory", string(factory)),
		zap.Int("days", cal.Len()))

	return cal, nil
}

// LoadExisting is Load for flows that require the file to exist already
func (s *Store) LoadExisting(factory Factory) (Calendar, error) {
	if err := s.Validate(factory); err != nil {
		return NewCalendar(), err
	}
	if !s.Exists(factory) {
		return NewCalendar(), fmt.Errorf("%s (%s): %w", factory, s.Path(factory), ErrMissingHolidayData)
	}
	return s.Load(factory)
}

// Save replaces the factory file with the full calendar via temp file + rename
func (s *Store) Save(factory Factory, cal Calendar) error {
	if err := s.Validate(factory); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create holiday directory: %w", err)
	}

	path := s.Path(factory)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(encode(cal)); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write holiday file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync holiday file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close holiday file: %w", err)
	}
	if err := os.Chmod(tmpPath, filePermissions); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set holiday file permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace holiday file: %w", err)
	}

	s.logger.Debug("Holiday file saved",
		zap.String("factory", string(factory)),
		zap.String("file", path),
		zap.Int("days", cal.Len()))

	return nil
}

// decode parses the file format, converting string keys to integers.
// Entries that are not valid dates are dropped with a warning.
func (s *Store) decode(path string, data []byte) (Calendar, error) {
	var raw map[string]map[string][]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedDataError{Path: path, Err: err}
	}

	cal := NewCalendar()
	for yearKey, months := range raw {
		year, err := strconv.Atoi(yearKey)
		if err != nil {
			s.logger.Warn("Ignoring non-numeric year key",
				zap.String("file", path),
				zap.String("year", yearKey))
			continue
		}
		for monthKey, days := range months {
			month, err := strconv.Atoi(monthKey)
			if err != nil {
				s.logger.Warn("Ignoring non-numeric month key",
					zap.String("file", path),
					zap.String("year", yearKey),
					zap.String("month", monthKey))
				continue
			}
			for _, day := range days {
				if err := dateutil.ValidateDate(year, month, day); err != nil {
					s.logger.Warn("Ignoring invalid holiday",
						zap.String("file", path),
						zap.Error(err))
					continue
				}
				cal.insert(year, month, day)
			}
		}
	}

	return cal, nil
}

// encode writes years and months in numeric order, one month per line,
// so equal calendars always produce identical bytes
func encode(cal Calendar) []byte {
	var buf bytes.Buffer

	years := cal.Years()
	if len(years) == 0 {
		return []byte("{}\n")
	}

	buf.WriteString("{\n")
	for yi, year := range years {
		fmt.Fprintf(&buf, "    \"%d\": {\n", year)
		months := cal.Months(year)
		for mi, month := range months {
			days := cal[year][month]
			parts := make([]string, len(days))
			for i, day := range days {
				parts[i] = strconv.Itoa(day)
			}
			fmt.Fprintf(&buf, "        \"%d\": [%s]", month, strings.Join(parts, ", "))
			if mi < len(months)-1 {
				buf.WriteString(",")
			}
			buf.WriteString("\n")
		}
		buf.WriteString("    }")
		if yi < len(years)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	return buf.Bytes()
}
