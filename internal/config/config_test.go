package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ka-tamaki/work-scheduler/internal/holidays"
	"github.com/ka-tamaki/work-scheduler/internal/schedule"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "log:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.FactoryIDs(); len(got) != len(holidays.DefaultFactories) || got[0] != "yuki" {
		t.Errorf("FactoryIDs() = %v, want defaults", got)
	}
	if cfg.Layout.ToLayout() != schedule.DefaultLayout() {
		t.Errorf("layout = %+v, want %+v", cfg.Layout.ToLayout(), schedule.DefaultLayout())
	}
	if cfg.Holidays.Source != SourceBuiltin {
		t.Errorf("holidays.source = %q, want %q", cfg.Holidays.Source, SourceBuiltin)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", cfg.Log.Level)
	}

	start, end := cfg.Holidays.YearRange(2024)
	if start != 2019 || end != 2044 {
		t.Errorf("YearRange(2024) = %d..%d, want 2019..2044", start, end)
	}
}

func TestLoad_Overrides(t *testing.T) {
	content := `
factories: [yuki, osaka]
holidays:
  dir: /var/lib/work-scheduler
  source: holidays-jp
  cache_ttl: 1h
  years_before: 1
  years_after: 2
layout:
  first_table_row: 10
  rows_per_table: 14
output:
  format: json
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.FactoryIDs(); len(got) != 2 || got[1] != "osaka" {
		t.Errorf("FactoryIDs() = %v, want [yuki osaka]", got)
	}
	if cfg.Holidays.Dir != "/var/lib/work-scheduler" {
		t.Errorf("holidays.dir = %q", cfg.Holidays.Dir)
	}
	if cfg.Holidays.GetCacheTTL() != time.Hour {
		t.Errorf("GetCacheTTL() = %v, want 1h", cfg.Holidays.GetCacheTTL())
	}

	layout := cfg.Layout.ToLayout()
	if layout.FirstTableRow != 10 || layout.RowsPerTable != 14 || layout.ContentsRows != 8 {
		t.Errorf("layout = %+v, want overrides merged with defaults", layout)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"Unknown source", "holidays:\n  source: google\n", "holidays.source"},
		{"Duplicate factory", "factories: [yuki, yuki]\n", "listed twice"},
		{"Unsafe factory", "factories: [../etc]\n", "not a valid file name"},
		{"Overlapping tables", "layout:\n  rows_per_table: 5\n", "layout"},
		{"Unknown format", "output:\n  format: xlsx\n", "output.format"},
		{"Negative range", "holidays:\n  years_before: -1\n", "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() of an explicit missing file expected error")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("WORK_SCHEDULER_HOLIDAYS_SOURCE", "none")

	cfg, err := Load(writeConfig(t, "log:\n  level: info\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Holidays.Source != SourceNone {
		t.Errorf("holidays.source = %q, want %q from environment", cfg.Holidays.Source, SourceNone)
	}
}

func TestGetCacheTTL(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 24 * time.Hour},
		{"30m", 30 * time.Minute},
		{"not-a-duration", 24 * time.Hour},
	}

	for _, tt := range tests {
		c := HolidaysConfig{CacheTTL: tt.value}
		if got := c.GetCacheTTL(); got != tt.want {
			t.Errorf("GetCacheTTL(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
