package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ka-tamaki/work-scheduler/internal/holidays"
	"github.com/ka-tamaki/work-scheduler/internal/schedule"
	"github.com/spf13/viper"
)

// Holiday source types
const (
	SourceBuiltin    = "builtin"     // rule-based Japanese national holidays
	SourceHolidaysJP = "holidays-jp" // holidays-jp API with builtin fallback
	SourceNone       = "none"        // weekends only
)

// Config represents application configuration
type Config struct {
	Factories []string       `mapstructure:"factories"`
	Holidays  HolidaysConfig `mapstructure:"holidays"`
	Layout    LayoutConfig   `mapstructure:"layout"`
	Output    OutputConfig   `mapstructure:"output"`
	Log       LogConfig      `mapstructure:"log"`
}

// HolidaysConfig represents holiday storage and generation configuration
type HolidaysConfig struct {
	Dir         string `mapstructure:"dir"`
	Source      string `mapstructure:"source"` // "builtin", "holidays-jp" or "none"
	APIURL      string `mapstructure:"api_url"`
	CacheTTL    string `mapstructure:"cache_ttl"`
	ExtraFile   string `mapstructure:"extra_file"` // company closure days, YYYY-MM-DD per line
	YearsBefore int    `mapstructure:"years_before"`
	YearsAfter  int    `mapstructure:"years_after"`
	InitOnStart bool   `mapstructure:"init_on_start"`
}

// LayoutConfig represents the month table grid constants
type LayoutConfig struct {
	FirstTableRow   int `mapstructure:"first_table_row"`
	RowsPerTable    int `mapstructure:"rows_per_table"`
	HeaderRows      int `mapstructure:"header_rows"`
	ContentsRows    int `mapstructure:"contents_rows"`
	FirstDayColumn  int `mapstructure:"first_day_column"`
	QuantityColumn  int `mapstructure:"quantity_column"`
	RemainingColumn int `mapstructure:"remaining_column"`
}

// OutputConfig represents where saved schedules go
type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. Without an explicit path a missing
// config file is not an error and defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.work-scheduler")
		v.AddConfigPath("/etc/work-scheduler")
	}

	// Read environment variables, e.g. WORK_SCHEDULER_HOLIDAYS_DIR
	v.SetEnvPrefix("WORK_SCHEDULER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	factories := make([]string, len(holidays.DefaultFactories))
	for i, f := range holidays.DefaultFactories {
		factories[i] = string(f)
	}
	v.SetDefault("factories", factories)

	v.SetDefault("holidays.dir", "holidays")
	v.SetDefault("holidays.source", SourceBuiltin)
	v.SetDefault("holidays.api_url", "https://holidays-jp.github.io/api/v1")
	v.SetDefault("holidays.cache_ttl", "24h")
	v.SetDefault("holidays.extra_file", "")
	v.SetDefault("holidays.years_before", 5)
	v.SetDefault("holidays.years_after", 20)
	v.SetDefault("holidays.init_on_start", false)

	layout := schedule.DefaultLayout()
	v.SetDefault("layout.first_table_row", layout.FirstTableRow)
	v.SetDefault("layout.rows_per_table", layout.RowsPerTable)
	v.SetDefault("layout.header_rows", layout.HeaderRows)
	v.SetDefault("layout.contents_rows", layout.ContentsRows)
	v.SetDefault("layout.first_day_column", layout.FirstDayColumn)
	v.SetDefault("layout.quantity_column", layout.QuantityColumn)
	v.SetDefault("layout.remaining_column", layout.RemainingColumn)

	v.SetDefault("output.dir", "output")
	v.SetDefault("output.format", "text")

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate factories
	if len(c.Factories) == 0 {
		return fmt.Errorf("factories must list at least one factory")
	}
	seen := make(map[string]bool, len(c.Factories))
	for _, f := range c.Factories {
		if f == "" || strings.ContainsAny(f, `/\`) || f == "." || f == ".." {
			return fmt.Errorf("factory id %q is not a valid file name", f)
		}
		if seen[f] {
			return fmt.Errorf("factory %q listed twice", f)
		}
		seen[f] = true
	}

	// Validate Holidays config
	if c.Holidays.Dir == "" {
		return fmt.Errorf("holidays.dir is required")
	}
	switch c.Holidays.Source {
	case SourceBuiltin, SourceNone:
	case SourceHolidaysJP:
		if c.Holidays.APIURL == "" {
			return fmt.Errorf("holidays.api_url is required for holidays-jp source")
		}
	default:
		return fmt.Errorf("holidays.source must be 'builtin', 'holidays-jp' or 'none', got '%s'", c.Holidays.Source)
	}
	if c.Holidays.YearsBefore < 0 || c.Holidays.YearsAfter < 0 {
		return fmt.Errorf("holidays.years_before and holidays.years_after must not be negative")
	}

	// Validate Layout config
	if err := c.Layout.ToLayout().Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	// Validate Output config
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("output.format must be 'text' or 'json', got '%s'", c.Output.Format)
	}

	return nil
}

// FactoryIDs returns the configured factories as holidays.Factory values
func (c *Config) FactoryIDs() []holidays.Factory {
	out := make([]holidays.Factory, len(c.Factories))
	for i, f := range c.Factories {
		out[i] = holidays.Factory(f)
	}
	return out
}

// ToLayout converts the layout section for the planner
func (c *LayoutConfig) ToLayout() schedule.Layout {
	return schedule.Layout{
		FirstTableRow:   c.FirstTableRow,
		RowsPerTable:    c.RowsPerTable,
		HeaderRows:      c.HeaderRows,
		ContentsRows:    c.ContentsRows,
		FirstDayColumn:  c.FirstDayColumn,
		QuantityColumn:  c.QuantityColumn,
		RemainingColumn: c.RemainingColumn,
	}
}

// GetCacheTTL returns cache TTL duration
func (c *HolidaysConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// YearRange returns the generation range around the given year
func (c *HolidaysConfig) YearRange(current int) (start, end int) {
	return current - c.YearsBefore, current + c.YearsAfter
}

// ExpandEnvVars expands environment variables in path settings
func (c *Config) ExpandEnvVars() {
	c.Holidays.Dir = os.ExpandEnv(c.Holidays.Dir)
	c.Holidays.ExtraFile = os.ExpandEnv(c.Holidays.ExtraFile)
	c.Output.Dir = os.ExpandEnv(c.Output.Dir)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
