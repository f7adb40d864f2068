package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultHolidaysJPURL is the public holidays-jp API (https://holidays-jp.github.io)
	DefaultHolidaysJPURL = "https://holidays-jp.github.io/api/v1"

	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// HolidaysJPCalendar implements HolidaySource using the holidays-jp API
type HolidaysJPCalendar struct {
	apiURL     string
	cacheTTL   time.Duration
	httpClient *http.Client
	logger     *zap.Logger
	cache      map[int]*cachedYear
	cacheMu    sync.RWMutex
}

type cachedYear struct {
	data      map[string]string // "YYYY-MM-DD" → name
	err       error             // set when the API has no data for the year
	fetchedAt time.Time
}

// NewHolidaysJPCalendar creates a new HolidaysJPCalendar instance
func NewHolidaysJPCalendar(apiURL string, cacheTTL time.Duration, logger *zap.Logger) *HolidaysJPCalendar {
	if apiURL == "" {
		apiURL = DefaultHolidaysJPURL
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &HolidaysJPCalendar{
		apiURL:   strings.TrimRight(apiURL, "/"),
		cacheTTL: cacheTTL,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger: logger,
		cache:  make(map[int]*cachedYear),
	}
}

// IsHoliday checks if the given date is a national holiday
func (hc *HolidaysJPCalendar) IsHoliday(date time.Time) (bool, string, error) {
	holidays, err := hc.yearHolidays(date.Year())
	if err != nil {
		return false, "", err
	}

	name, ok := holidays[dateKey(date)]
	return ok, name, nil
}

// HolidaysInMonth returns national holidays of the month keyed by day number
func (hc *HolidaysJPCalendar) HolidaysInMonth(year int, month time.Month) (map[int]string, error) {
	holidays, err := hc.yearHolidays(year)
	if err != nil {
		return nil, err
	}
	return monthFromMap(holidays, year, month), nil
}

func (hc *HolidaysJPCalendar) yearHolidays(year int) (map[string]string, error) {
	hc.cacheMu.RLock()
	if cached, ok := hc.cache[year]; ok {
		if time.Since(cached.fetchedAt) < hc.cacheTTL {
			hc.cacheMu.RUnlock()
			return cached.data, cached.err
		}
	}
	hc.cacheMu.RUnlock()

	holidays, err := hc.fetchYear(year)
	if errors.Is(err, ErrUnsupportedYear) {
		hc.cacheMu.Lock()
		hc.cache[year] = &cachedYear{err: err, fetchedAt: time.Now()}
		hc.cacheMu.Unlock()

		hc.logger.Info("Holiday year not covered by API",
			zap.Int("year", year))
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	hc.cacheMu.Lock()
	hc.cache[year] = &cachedYear{
		data:      holidays,
		fetchedAt: time.Now(),
	}
	hc.cacheMu.Unlock()

	hc.logger.Info("Holiday year fetched and cached",
		zap.Int("year", year),
		zap.Int("holidays", len(holidays)))

	return holidays, nil
}

// fetchYear fetches one year of holidays: GET {apiURL}/{year}/date.json
func (hc *HolidaysJPCalendar) fetchYear(year int) (map[string]string, error) {
	url := fmt.Sprintf("%s/%d/date.json", hc.apiURL, year)

	hc.logger.Debug("Fetching holiday data",
		zap.String("url", url),
		zap.Int("year", year))

	resp, err := hc.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holiday data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("holidays-jp has no data for %d: %w", year, ErrUnsupportedYear)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var holidays map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	// Drop anything that is not a date of the requested year
	prefix := fmt.Sprintf("%04d-", year)
	for key := range holidays {
		if _, err := time.Parse("2006-01-02", key); err != nil || !strings.HasPrefix(key, prefix) {
			hc.logger.Warn("Ignoring unexpected holiday key", zap.String("key", key))
			delete(holidays, key)
		}
	}

	return holidays, nil
}

// ClearCache clears the cache
func (hc *HolidaysJPCalendar) ClearCache() {
	hc.cacheMu.Lock()
	defer hc.cacheMu.Unlock()

	hc.cache = make(map[int]*cachedYear)
	hc.logger.Info("Holiday cache cleared")
}
