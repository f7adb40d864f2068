package holidays

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), DefaultFactories, zap.NewNop())
}

func TestStore_LoadMissingFileIsEmpty(t *testing.T) {
	store := newTestStore(t)

	cal, err := store.Load("yuki")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cal.Len() != 0 {
		t.Errorf("Load() = %v, want empty calendar", cal)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	original := Calendar{
		2024: {
			2:  {29},
			3:  {2, 3, 9, 10, 15},
			12: {28, 29, 30, 31},
		},
		2025: {
			1: {1, 2, 3},
		},
	}

	if err := store.Save("kyoto", original); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load("kyoto")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded.Equal(original) {
		t.Errorf("Load() = %v, want %v", loaded, original)
	}
}

func TestStore_SaveIsByteStable(t *testing.T) {
	store := newTestStore(t)

	a := NewCalendar()
	b := NewCalendar()
	for _, day := range []int{15, 2, 9} {
		a.Add(2024, 3, day)
	}
	for _, day := range []int{9, 15, 2} {
		b.Add(2024, 3, day)
	}
	a.Add(2025, 10, 1)
	b.Add(2025, 10, 1)

	if err := store.Save("chiba", a); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	first, err := os.ReadFile(store.Path("chiba"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if err := store.Save("chiba", b); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	second, err := os.ReadFile(store.Path("chiba"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("saves differ:\n%s\n---\n%s", first, second)
	}

	want := "{\n    \"2024\": {\n        \"3\": [2, 9, 15]\n    },\n    \"2025\": {\n        \"10\": [1]\n    }\n}\n"
	if string(first) != want {
		t.Errorf("file content =\n%s\nwant\n%s", first, want)
	}
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("yuki", Calendar{2024: {1: {1}}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(store.dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "yuki.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory = %v, want only yuki.json", names)
	}
}

func TestStore_LoadMalformed(t *testing.T) {
	store := newTestStore(t)

	if err := os.WriteFile(store.Path("yuki"), []byte(`{"2024": {"3": [1, 2,`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cal, err := store.Load("yuki")
	if !errors.Is(err, ErrMalformedHolidayData) {
		t.Fatalf("Load() error = %v, want ErrMalformedHolidayData", err)
	}
	var malformed *MalformedDataError
	if !errors.As(err, &malformed) || malformed.Path != store.Path("yuki") {
		t.Errorf("Load() error = %#v, want *MalformedDataError for the factory file", err)
	}
	if cal == nil || cal.Len() != 0 {
		t.Errorf("Load() calendar = %v, want empty fallback", cal)
	}
}

func TestStore_LoadDropsInvalidEntries(t *testing.T) {
	store := newTestStore(t)

	content := `{
    "2024": {"2": [28, 29, 30], "13": [1], "x": [2]},
    "abc": {"1": [1]},
    "2023": {"2": [29, 1, 1]}
}`
	if err := os.WriteFile(store.Path("yuki"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cal, err := store.Load("yuki")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Calendar{
		2024: {2: {28, 29}},
		2023: {2: {1}},
	}
	if !cal.Equal(want) {
		t.Errorf("Load() = %v, want %v", cal, want)
	}
}

func TestStore_LoadExisting(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.LoadExisting("kumagaya"); !errors.Is(err, ErrMissingHolidayData) {
		t.Errorf("LoadExisting() error = %v, want ErrMissingHolidayData", err)
	}

	if err := store.Save("kumagaya", Calendar{2024: {1: {1}}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	cal, err := store.LoadExisting("kumagaya")
	if err != nil {
		t.Fatalf("LoadExisting() error = %v", err)
	}
	if !cal.IsHoliday(2024, 1, 1) {
		t.Error("LoadExisting() lost saved holiday")
	}
}

func TestStore_Validate(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name    string
		factory Factory
		wantErr bool
	}{
		{"Known factory", "shizuoka", false},
		{"Unknown factory", "osaka", true},
		{"Empty", "", true},
		{"Path traversal", "../yuki", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Validate(tt.factory)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.factory, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownFactory) {
				t.Errorf("Validate(%q) error = %v, want ErrUnknownFactory", tt.factory, err)
			}
		})
	}

	open := NewStore(t.TempDir(), nil, zap.NewNop())
	if err := open.Validate("osaka"); err != nil {
		t.Errorf("Validate() on store without factory list error = %v", err)
	}

	if _, err := store.Load("osaka"); !errors.Is(err, ErrUnknownFactory) {
		t.Errorf("Load(unknown) error = %v, want ErrUnknownFactory", err)
	}
	if err := store.Save("osaka", NewCalendar()); !errors.Is(err, ErrUnknownFactory) {
		t.Errorf("Save(unknown) error = %v, want ErrUnknownFactory", err)
	}
}

func TestStore_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "holidays")
	store := NewStore(dir, DefaultFactories, zap.NewNop())

	if err := store.Save("yuki", NewCalendar()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "yuki.json"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "{}\n" {
		t.Errorf("empty calendar file = %q, want %q", data, "{}\n")
	}
}
