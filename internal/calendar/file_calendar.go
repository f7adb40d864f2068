package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileCalendar implements HolidaySource using a local text file of company closure days
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	data     map[string]string // "YYYY-MM-DD" → note
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
		data:     make(map[string]string),
	}
}

// Load loads closure days from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	data := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD [note]
		// Example: 2025-08-13 夏季休業
		parts := strings.SplitN(line, " ", 2)
		date, err := time.Parse("2006-01-02", parts[0])
		if err != nil {
			fc.logger.Warn("Failed to parse date", zap.String("line", line), zap.Error(err))
			continue
		}

		note := "休業日"
		if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
			note = strings.TrimSpace(parts[1])
		}
		data[dateKey(date)] = note
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	fc.data = data
	fc.logger.Info("Holiday file loaded",
		zap.String("file", fc.filePath),
		zap.Int("days", len(fc.data)))

	return nil
}

// IsHoliday checks if the given date is listed in the file
func (fc *FileCalendar) IsHoliday(date time.Time) (bool, string, error) {
	note, ok := fc.data[dateKey(date)]
	return ok, note, nil
}

// HolidaysInMonth returns listed days of the month keyed by day number
func (fc *FileCalendar) HolidaysInMonth(year int, month time.Month) (map[int]string, error) {
	return monthFromMap(fc.data, year, month), nil
}
