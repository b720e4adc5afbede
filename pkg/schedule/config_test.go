package schedule

import (
	"errors"
	"testing"
)

func TestParseConfigJSON_Defaults(t *testing.T) {
	cfg, err := ParseConfigJSON([]byte(`{"groupe_A": ["alice"], "groupe_B": ["bruno"]}`))
	if err != nil {
		t.Fatalf("ParseConfigJSON() error: %v", err)
	}
	want := DefaultConstraints()
	if cfg.Contraintes != want {
		t.Errorf("Contraintes = %+v, want defaults %+v", cfg.Contraintes, want)
	}
	if len(cfg.GroupeA) != 1 || cfg.GroupeA[0] != "alice" {
		t.Errorf("GroupeA = %v, want [alice]", cfg.GroupeA)
	}
}

func TestParseConfigJSON_PartialOverride(t *testing.T) {
	cfg, err := ParseConfigJSON([]byte(`{"contraintes": {"max_primary_per_week": 2}}`))
	if err != nil {
		t.Fatalf("ParseConfigJSON() error: %v", err)
	}
	if cfg.Contraintes.MaxPrimaryPerWeek != 2 {
		t.Errorf("MaxPrimaryPerWeek = %d, want 2", cfg.Contraintes.MaxPrimaryPerWeek)
	}
	if cfg.Contraintes.WeekendSpacingDays != 14 {
		t.Errorf("WeekendSpacingDays = %d, want default 14", cfg.Contraintes.WeekendSpacingDays)
	}
}

func TestParseConfigJSON_InvalidJSON(t *testing.T) {
	_, err := ParseConfigJSON([]byte(`not json`))
	if !errors.Is(err, ErrInvalidRoster) {
		t.Fatalf("ParseConfigJSON() error = %v, want wrapping ErrInvalidRoster", err)
	}
}

func TestMarshalConfigJSON_RoundTrip(t *testing.T) {
	cfg := NewSchedulerConfig()
	cfg.GroupeA = []string{"alice"}
	cfg.VetsSpeciaux = map[string][]Tag{"bruno": {TagNeverPrimary}}

	data, err := MarshalConfigJSON(cfg)
	if err != nil {
		t.Fatalf("MarshalConfigJSON() error: %v", err)
	}
	roundTripped, err := ParseConfigJSON(data)
	if err != nil {
		t.Fatalf("ParseConfigJSON(marshaled) error: %v", err)
	}
	if len(roundTripped.GroupeA) != 1 || roundTripped.GroupeA[0] != "alice" {
		t.Errorf("round-tripped GroupeA = %v, want [alice]", roundTripped.GroupeA)
	}
	if len(roundTripped.VetsSpeciaux["bruno"]) != 1 || roundTripped.VetsSpeciaux["bruno"][0] != TagNeverPrimary {
		t.Errorf("round-tripped VetsSpeciaux lost bruno's tag: %v", roundTripped.VetsSpeciaux["bruno"])
	}
}

func TestApplyGroups(t *testing.T) {
	vets, err := ResolveRoster(threeVetRoster())
	if err != nil {
		t.Fatalf("ResolveRoster() error: %v", err)
	}
	cfg := NewSchedulerConfig()
	cfg.GroupeA = []string{"alice"}
	cfg.GroupeB = []string{"bruno"}
	cfg.VetsSpeciaux = map[string][]Tag{"carla": {TagExcludedFromBalance}}

	out := applyGroups(vets, cfg)
	byID := map[string]Vet{}
	for _, v := range out {
		byID[v.ID] = v
	}
	if !byID["alice"].GroupA {
		t.Errorf("expected alice to be GroupA")
	}
	if !byID["bruno"].GroupB {
		t.Errorf("expected bruno to be GroupB")
	}
	if !byID["carla"].HasTag(TagExcludedFromBalance) {
		t.Errorf("expected carla to carry the excluded_from_balance tag")
	}
}
