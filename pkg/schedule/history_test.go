package schedule

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileHistoryStore_LoadMissingFile(t *testing.T) {
	store := NewFileHistoryStore(filepath.Join(t.TempDir(), "does-not-exist.json"), nil)
	periods, err := store.Load()
	if err != nil {
		t.Fatalf("Load() on a missing file returned an error: %v", err)
	}
	if len(periods) != 0 {
		t.Errorf("Load() on a missing file = %v, want empty", periods)
	}
}

func TestFileHistoryStore_LoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	store := NewFileHistoryStore(path, nil)
	periods, err := store.Load()
	if err != nil {
		t.Fatalf("Load() on a malformed file returned an error: %v", err)
	}
	if len(periods) != 0 {
		t.Errorf("Load() on a malformed file = %v, want empty", periods)
	}
}

func TestFileHistoryStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := NewFileHistoryStore(path, nil)

	periods := map[string]HistoryPeriod{
		"2026-01-01_to_2026-01-07": {
			Start: date("2026-01-01"),
			End:   date("2026-01-07"),
			Stats: map[string]Counter{"alice": {PrimaryWeekdayCount: 2}},
		},
	}
	if err := store.Save(periods); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded["2026-01-01_to_2026-01-07"].Stats["alice"].PrimaryWeekdayCount != 2 {
		t.Errorf("loaded stats = %+v, want PrimaryWeekdayCount 2", loaded["2026-01-01_to_2026-01-07"].Stats["alice"])
	}
}

func TestAggregateHistory(t *testing.T) {
	vets := []Vet{{ID: "alice"}, {ID: "bruno"}}
	periods := map[string]HistoryPeriod{
		"p1": {Stats: map[string]Counter{"alice": {PrimaryWeekdayCount: 1}}},
		"p2": {Stats: map[string]Counter{"alice": {PrimaryWeekdayCount: 2}, "bruno": {BackupWeekdayCount: 3}}},
	}
	totals := AggregateHistory(periods, vets)
	if totals["alice"].PrimaryWeekdayCount != 3 {
		t.Errorf("alice total PrimaryWeekdayCount = %d, want 3", totals["alice"].PrimaryWeekdayCount)
	}
	if totals["bruno"].BackupWeekdayCount != 3 {
		t.Errorf("bruno total BackupWeekdayCount = %d, want 3", totals["bruno"].BackupWeekdayCount)
	}
}
