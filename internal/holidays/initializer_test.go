package holidays

import (
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestInitializer_Run(t *testing.T) {
	store := NewStore(t.TempDir(), []Factory{"yuki", "kyoto"}, zap.NewNop())

	// manual edit that generation knows nothing about
	if err := store.Save("yuki", Calendar{2024: {6: {5}}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	newYear := func(d time.Time) bool {
		return d.Month() == time.January && d.Day() == 1
	}

	initializer := NewInitializer(store, newYear, zap.NewNop())
	results, err := initializer.Run(2024, 2024)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Run() returned %d results, want 2", len(results))
	}

	// 104 weekend days plus Monday 2024-01-01
	tests := []struct {
		factory   Factory
		wantAdded int
		wantTotal int
	}{
		{"yuki", 105, 106},
		{"kyoto", 105, 105},
	}
	for i, tt := range tests {
		t.Run(string(tt.factory), func(t *testing.T) {
			got := results[i]
			if got.Factory != tt.factory || got.Added != tt.wantAdded || got.Total != tt.wantTotal {
				t.Errorf("result = %+v, want factory %s added %d total %d",
					got, tt.factory, tt.wantAdded, tt.wantTotal)
			}
		})
	}

	yuki, err := store.Load("yuki")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !yuki.IsHoliday(2024, 6, 5) {
		t.Error("manual holiday lost during refresh")
	}
	if !yuki.IsHoliday(2024, 1, 1) || !yuki.IsHoliday(2024, 1, 6) {
		t.Error("generated holidays missing")
	}

	results, err = initializer.Run(2024, 2024)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	for _, r := range results {
		if r.Added != 0 {
			t.Errorf("second Run() added %d days to %s, want 0", r.Added, r.Factory)
		}
	}
}

func TestInitializer_ReplacesMalformedFile(t *testing.T) {
	store := NewStore(t.TempDir(), []Factory{"chiba"}, zap.NewNop())
	if err := os.WriteFile(store.Path("chiba"), []byte("{broken"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	results, err := NewInitializer(store, nil, zap.NewNop()).Run(2024, 2024)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !results[0].Malformed {
		t.Error("result did not report the malformed file")
	}

	cal, err := store.Load("chiba")
	if err != nil {
		t.Fatalf("Load() after refresh error = %v", err)
	}
	if cal.Len() != 104 {
		t.Errorf("Len() = %d, want 104", cal.Len())
	}
}

func TestInitializer_RunErrors(t *testing.T) {
	store := NewStore(t.TempDir(), DefaultFactories, zap.NewNop())
	if _, err := NewInitializer(store, nil, zap.NewNop()).Run(2025, 2024); err == nil {
		t.Error("Run(inverted) expected error")
	}

	open := NewStore(t.TempDir(), nil, zap.NewNop())
	if _, err := NewInitializer(open, nil, zap.NewNop()).Run(2024, 2024); err == nil {
		t.Error("Run() without factories expected error")
	}
}
