package schedule

import (
	"context"
	"testing"
)

func TestExtractSchedule_MatchesSolvedVariables(t *testing.T) {
	m := buildTestModel(t, fiveVetRoster(), "2026-03-02", "2026-03-08")
	result := Solve(context.Background(), m, SolveOptions{Workers: 4})
	if result.Status != StatusOptimal {
		t.Fatalf("Solve() status = %v", result.Status)
	}

	entries := ExtractSchedule(m, result.Vars)
	if len(entries) != m.NumDays {
		t.Fatalf("len(entries) = %d, want %d", len(entries), m.NumDays)
	}
	for _, e := range entries {
		if e.Primary == "" {
			continue // weekend day with no pair
		}
		vi := m.VetIdx[e.Primary]
		if !result.Vars.Get(RolePrimary, vi, dayIndexOf(m, e)) {
			t.Errorf("entry for %s claims primary=%s but variable disagrees", e.Date.Format("2006-01-02"), e.Primary)
		}
	}
}

func dayIndexOf(m *Model, e ScheduleEntry) int {
	for _, d := range m.Cal.Days {
		if d.Date.Equal(e.Date) {
			return d.Index
		}
	}
	return -1
}

func TestNewHorizonPeriod_CountsMatchWeekdayWeekendSplit(t *testing.T) {
	m := buildTestModel(t, fiveVetRoster(), "2026-03-02", "2026-03-08")
	result := Solve(context.Background(), m, SolveOptions{Workers: 4})
	if result.Status != StatusOptimal {
		t.Fatalf("Solve() status = %v", result.Status)
	}

	period := NewHorizonPeriod(m, result.Vars)
	var totalPrimary int
	for _, c := range period.Stats {
		totalPrimary += c.PrimaryWeekdayCount + c.PrimaryWeekendDayCount
	}
	// One primary per weekday plus one (shared) primary per weekend pair.
	expected := 0
	for _, ww := range m.Cal.WorkWeeks {
		expected += len(ww.Days)
	}
	expected += len(m.Cal.WeekendPairs) * 2 // weekend primary counted on both days held
	if totalPrimary != expected {
		t.Errorf("total primary count = %d, want %d", totalPrimary, expected)
	}
}

func TestDefaultPeriodName(t *testing.T) {
	cal, err := BuildCalendar(date("2026-03-02"), date("2026-03-08"))
	if err != nil {
		t.Fatalf("BuildCalendar() error: %v", err)
	}
	got := DefaultPeriodName(cal)
	want := "2026-03-02_to_2026-03-08"
	if got != want {
		t.Errorf("DefaultPeriodName() = %q, want %q", got, want)
	}
}
