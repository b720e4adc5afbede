package schedule

import (
	"context"
	"path/filepath"
	"testing"
)

func TestWriteHistory_PersistsSolvedPeriod(t *testing.T) {
	m := buildTestModel(t, fiveVetRoster(), "2026-03-02", "2026-03-08")
	result := Solve(context.Background(), m, SolveOptions{Workers: 4})
	if result.Status != StatusOptimal {
		t.Fatalf("Solve() status = %v", result.Status)
	}

	path := filepath.Join(t.TempDir(), "history.json")
	store := NewFileHistoryStore(path, nil)

	if err := WriteHistory(store, m, result.Vars, ""); err != nil {
		t.Fatalf("WriteHistory() error: %v", err)
	}

	periods, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	key := DefaultPeriodName(m.Cal)
	if _, ok := periods[key]; !ok {
		t.Fatalf("expected period %q to be persisted, got %v", key, periods)
	}
}

func TestWriteHistory_MergesWithExistingPeriods(t *testing.T) {
	m := buildTestModel(t, fiveVetRoster(), "2026-03-02", "2026-03-08")
	result := Solve(context.Background(), m, SolveOptions{Workers: 4})
	if result.Status != StatusOptimal {
		t.Fatalf("Solve() status = %v", result.Status)
	}

	path := filepath.Join(t.TempDir(), "history.json")
	store := NewFileHistoryStore(path, nil)
	if err := store.Save(map[string]HistoryPeriod{
		"prior": {Stats: map[string]Counter{"alice": {PrimaryWeekdayCount: 5}}},
	}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if err := WriteHistory(store, m, result.Vars, "new_period"); err != nil {
		t.Fatalf("WriteHistory() error: %v", err)
	}

	periods, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(periods) != 2 {
		t.Fatalf("len(periods) = %d, want 2 (prior + new_period)", len(periods))
	}
	if periods["prior"].Stats["alice"].PrimaryWeekdayCount != 5 {
		t.Errorf("WriteHistory() clobbered the prior period")
	}
}
