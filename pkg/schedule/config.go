package schedule

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Constraints holds the numeric knobs the constraint compiler reads,
// all defaulted per §6 of the configuration surface.
type Constraints struct {
	MaxPrimaryPerWeek              int `json:"max_primary_per_week" validate:"min=1"`
	MaxBackupPerWeek               int `json:"max_backup_per_week" validate:"min=1"`
	BalanceGapPrimary              int `json:"balance_gap_primary" validate:"min=0"`
	BalanceGapBackup               int `json:"balance_gap_backup" validate:"min=0"`
	BalanceGapSecondary            int `json:"balance_gap_secondary" validate:"min=0"`
	WeekendSpacingDays             int `json:"weekend_spacing_days" validate:"min=1"`
	MaxConsecutiveBackupSequences  int `json:"max_consecutive_backup_sequences" validate:"min=0"`
}

// DefaultConstraints returns the §6 default knob values.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxPrimaryPerWeek:             1,
		MaxBackupPerWeek:              2,
		BalanceGapPrimary:             2,
		BalanceGapBackup:              2,
		BalanceGapSecondary:           2,
		WeekendSpacingDays:            14,
		MaxConsecutiveBackupSequences: 1,
	}
}

// SchedulerConfig is the domain-level, JSON-loaded configuration
// surface described in spec §6: compatibility groups for the pairing
// rule, per-vet tag overrides, and the numeric constraint knobs.
type SchedulerConfig struct {
	GroupeA      []string         `json:"groupe_A" validate:"omitempty,dive,required"`
	GroupeB      []string         `json:"groupe_B" validate:"omitempty,dive,required"`
	VetsSpeciaux map[string][]Tag `json:"vets_speciaux"`
	Contraintes  Constraints      `json:"contraintes"`
}

// NewSchedulerConfig returns a config with default constraints and
// empty groups/tags, ready for the caller to populate.
func NewSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{Contraintes: DefaultConstraints()}
}

var configValidator = validator.New()

// ParseConfigJSON parses and validates a SchedulerConfig from JSON,
// filling any zero-valued constraint knobs with their defaults —
// mirroring the original implementation's from_json/to_json
// round-trip, where an absent "contraintes" key means "use defaults".
func ParseConfigJSON(data []byte) (SchedulerConfig, error) {
	cfg := NewSchedulerConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return SchedulerConfig{}, fmt.Errorf("%w: parsing config json: %v", ErrInvalidRoster, err)
	}
	cfg.Contraintes = fillConstraintDefaults(cfg.Contraintes)

	if err := configValidator.Struct(cfg); err != nil {
		return SchedulerConfig{}, fmt.Errorf("%w: validating config: %v", ErrInvalidRoster, err)
	}
	return cfg, nil
}

func fillConstraintDefaults(c Constraints) Constraints {
	d := DefaultConstraints()
	if c.MaxPrimaryPerWeek == 0 {
		c.MaxPrimaryPerWeek = d.MaxPrimaryPerWeek
	}
	if c.MaxBackupPerWeek == 0 {
		c.MaxBackupPerWeek = d.MaxBackupPerWeek
	}
	if c.BalanceGapPrimary == 0 {
		c.BalanceGapPrimary = d.BalanceGapPrimary
	}
	if c.BalanceGapBackup == 0 {
		c.BalanceGapBackup = d.BalanceGapBackup
	}
	if c.BalanceGapSecondary == 0 {
		c.BalanceGapSecondary = d.BalanceGapSecondary
	}
	if c.WeekendSpacingDays == 0 {
		c.WeekendSpacingDays = d.WeekendSpacingDays
	}
	if c.MaxConsecutiveBackupSequences == 0 {
		c.MaxConsecutiveBackupSequences = d.MaxConsecutiveBackupSequences
	}
	return c
}

// MarshalConfigJSON serialises a SchedulerConfig back to JSON, the
// save side of the original's from_json/to_json symmetry.
func MarshalConfigJSON(cfg SchedulerConfig) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}

// applyGroups copies GroupeA/GroupeB membership and vets_speciaux tags
// onto the resolved roster. Vets named in neither group are left with
// GroupA=GroupB=false: as primary they are not constrained by E.14,
// and they cannot partner a group-A primary unless they are tagged
// excluded_from_pairing.
func applyGroups(vets []Vet, cfg SchedulerConfig) []Vet {
	inA := toSet(cfg.GroupeA)
	inB := toSet(cfg.GroupeB)

	out := make([]Vet, len(vets))
	for i, v := range vets {
		v.GroupA = inA[v.ID]
		v.GroupB = inB[v.ID]
		if tags, ok := cfg.VetsSpeciaux[v.ID]; ok {
			if v.Tags == nil {
				v.Tags = make(map[Tag]bool, len(tags))
			}
			for _, t := range tags {
				v.Tags[t] = true
			}
		}
		out[i] = v
	}
	return out
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
