package schedule

import (
	"errors"
	"testing"
	"time"
)

func threeVetRoster() map[string]VetInput {
	return map[string]VetInput{
		"alice": {RestDays: []int{5}},
		"bruno": {RestDays: []int{6}},
		"carla": {Vacations: []string{"2026-03-10:2026-03-12"}},
	}
}

func TestResolveRoster(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]VetInput
		wantErr error
		wantN   int
	}{
		{"empty roster", map[string]VetInput{}, ErrInvalidRoster, 0},
		{"below minimum", map[string]VetInput{"a": {}, "b": {}}, ErrInvalidRoster, 0},
		{"exactly minimum", threeVetRoster(), nil, 3},
		{"too many rest days", map[string]VetInput{
			"a": {RestDays: []int{0, 1, 2, 3, 4, 5}}, "b": {}, "c": {},
		}, ErrInvalidRoster, 0},
		{"out of range rest day", map[string]VetInput{
			"a": {RestDays: []int{7}}, "b": {}, "c": {},
		}, ErrInvalidRoster, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vets, err := ResolveRoster(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveRoster() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveRoster() unexpected error: %v", err)
			}
			if len(vets) != tt.wantN {
				t.Errorf("len(vets) = %d, want %d", len(vets), tt.wantN)
			}
		})
	}
}

func TestResolveRoster_DeterministicOrder(t *testing.T) {
	raw := threeVetRoster()
	first, err := ResolveRoster(raw)
	if err != nil {
		t.Fatalf("ResolveRoster() error: %v", err)
	}
	second, err := ResolveRoster(raw)
	if err != nil {
		t.Fatalf("ResolveRoster() error: %v", err)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("roster order is not deterministic: %v vs %v", first, second)
		}
	}
	if first[0].ID != "alice" || first[1].ID != "bruno" || first[2].ID != "carla" {
		t.Errorf("expected sorted-by-ID order, got %v, %v, %v", first[0].ID, first[1].ID, first[2].ID)
	}
}

func TestResolveRoster_RestDayConvention(t *testing.T) {
	// index 5 (spec's 0=Monday convention) should resolve to Saturday.
	vets, err := ResolveRoster(map[string]VetInput{
		"a": {RestDays: []int{5}}, "b": {}, "c": {},
	})
	if err != nil {
		t.Fatalf("ResolveRoster() error: %v", err)
	}
	if !vets[0].RestDays[time.Saturday] {
		t.Errorf("expected rest day index 5 to map to Saturday")
	}
}

func TestIsOff(t *testing.T) {
	vets, err := ResolveRoster(threeVetRoster())
	if err != nil {
		t.Fatalf("ResolveRoster() error: %v", err)
	}
	var carla Vet
	for _, v := range vets {
		if v.ID == "carla" {
			carla = v
		}
	}
	if !IsOff(carla, Day{Date: date("2026-03-11")}) {
		t.Errorf("expected carla to be off mid-vacation")
	}
	if IsOff(carla, Day{Date: date("2026-03-13")}) {
		t.Errorf("expected carla to be on after vacation ends")
	}
}
