package schedule

import (
	"errors"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildCalendar(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantDays  int
		wantErr   error
	}{
		{"single day", "2026-03-02", "2026-03-02", 1, nil},
		{"one full week", "2026-03-02", "2026-03-08", 7, nil},
		{"end before start", "2026-03-08", "2026-03-02", 0, ErrInvalidHorizon},
		{"span over 365 days", "2026-01-01", "2027-01-05", 0, ErrInvalidHorizon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal, err := BuildCalendar(date(tt.start), date(tt.end))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BuildCalendar() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildCalendar() unexpected error: %v", err)
			}
			if len(cal.Days) != tt.wantDays {
				t.Errorf("len(Days) = %d, want %d", len(cal.Days), tt.wantDays)
			}
		})
	}
}

func TestBuildCalendar_WeekendPairing(t *testing.T) {
	// 2026-03-02 is a Monday; 2026-03-15 is a Sunday two weeks later.
	cal, err := BuildCalendar(date("2026-03-02"), date("2026-03-15"))
	if err != nil {
		t.Fatalf("BuildCalendar() error: %v", err)
	}
	if len(cal.WeekendPairs) != 2 {
		t.Fatalf("len(WeekendPairs) = %d, want 2", len(cal.WeekendPairs))
	}
	for _, wp := range cal.WeekendPairs {
		if cal.Days[wp.SaturdayIndex].Weekday() != time.Saturday {
			t.Errorf("WeekendPair.SaturdayIndex %d is not a Saturday", wp.SaturdayIndex)
		}
		if cal.Days[wp.SundayIndex].Weekday() != time.Sunday {
			t.Errorf("WeekendPair.SundayIndex %d is not a Sunday", wp.SundayIndex)
		}
	}
	if len(cal.PartialWeekendDays) != 0 {
		t.Errorf("PartialWeekendDays = %v, want none", cal.PartialWeekendDays)
	}
}

func TestBuildCalendar_PartialWeekendAtEdge(t *testing.T) {
	// Start on a Sunday: the preceding Saturday is outside the horizon.
	cal, err := BuildCalendar(date("2026-03-01"), date("2026-03-03"))
	if err != nil {
		t.Fatalf("BuildCalendar() error: %v", err)
	}
	if len(cal.PartialWeekendDays) != 1 {
		t.Fatalf("PartialWeekendDays = %v, want exactly one lone day", cal.PartialWeekendDays)
	}
	if cal.Days[cal.PartialWeekendDays[0]].Weekday() != time.Sunday {
		t.Errorf("expected the lone weekend day to be the leading Sunday")
	}
}

func TestBuildCalendar_WorkWeekBoundaries(t *testing.T) {
	cal, err := BuildCalendar(date("2026-03-02"), date("2026-03-15"))
	if err != nil {
		t.Fatalf("BuildCalendar() error: %v", err)
	}
	if len(cal.WorkWeeks) != 2 {
		t.Fatalf("len(WorkWeeks) = %d, want 2", len(cal.WorkWeeks))
	}
	for _, ww := range cal.WorkWeeks {
		if len(ww.Days) != 5 {
			t.Errorf("work-week %d has %d days, want 5", ww.Index, len(ww.Days))
		}
		for _, d := range ww.Days {
			wd := cal.Days[d].Weekday()
			if wd == time.Saturday || wd == time.Sunday {
				t.Errorf("work-week %d contains weekend day index %d", ww.Index, d)
			}
		}
	}
}
