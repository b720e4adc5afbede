package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const minRosterVets = 3

// VetInput is the raw, externally-supplied description of one vet
// before normalisation: rest_days as a list of weekday indices (a bare
// single integer is not accepted), and vacations as ISO dates or
// inclusive "start:end" ranges, which parseVacations turns into
// DateRange values.
type VetInput struct {
	Name      string   `json:"name,omitempty"`
	RestDays  []int    `json:"rest_days"`
	Vacations []string `json:"vacations"`
	GroupA    bool     `json:"group_a,omitempty"`
	GroupB    bool     `json:"group_b,omitempty"`
	Tags      []Tag    `json:"tags,omitempty"`
}

// ResolveRoster normalises a raw vet map into the internal Vet model,
// assigning each vet a stable index position (sorted by identifier,
// so the output is deterministic across runs with identical input).
func ResolveRoster(raw map[string]VetInput) ([]Vet, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty roster", ErrInvalidRoster)
	}
	if len(raw) < minRosterVets {
		return nil, fmt.Errorf("%w: need at least %d vets, got %d", ErrInvalidRoster, minRosterVets, len(raw))
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	vets := make([]Vet, 0, len(ids))
	for _, id := range ids {
		in := raw[id]

		if len(in.RestDays) > 5 {
			return nil, fmt.Errorf("%w: vet %q lists %d rest days, max 5", ErrInvalidRoster, id, len(in.RestDays))
		}

		restDays := make(map[time.Weekday]bool, len(in.RestDays))
		for _, wd := range in.RestDays {
			if wd < 0 || wd > 6 {
				return nil, fmt.Errorf("%w: vet %q has out-of-range rest day %d", ErrInvalidRoster, id, wd)
			}
			restDays[fromMondayIndex(wd)] = true
		}

		vacations, err := parseVacations(id, in.Vacations)
		if err != nil {
			return nil, err
		}

		tags := make(map[Tag]bool, len(in.Tags))
		for _, t := range in.Tags {
			tags[t] = true
		}

		name := in.Name
		if name == "" {
			name = id
		}

		vets = append(vets, Vet{
			ID:        id,
			Name:      name,
			RestDays:  restDays,
			Vacations: vacations,
			GroupA:    in.GroupA,
			GroupB:    in.GroupB,
			Tags:      tags,
		})
	}

	return vets, nil
}

// fromMondayIndex converts the spec's 0=Monday..6=Sunday convention to
// time.Weekday (0=Sunday..6=Saturday).
func fromMondayIndex(i int) time.Weekday {
	return time.Weekday((i + 1) % 7)
}

func parseVacations(vetID string, raw []string) ([]DateRange, error) {
	var ranges []DateRange
	for _, entry := range raw {
		if lo, hi, ok := strings.Cut(entry, ":"); ok {
			start, err := parseISODate(lo)
			if err != nil {
				return nil, fmt.Errorf("%w: vet %q vacation start %q: %v", ErrInvalidDate, vetID, lo, err)
			}
			end, err := parseISODate(hi)
			if err != nil {
				return nil, fmt.Errorf("%w: vet %q vacation end %q: %v", ErrInvalidDate, vetID, hi, err)
			}
			ranges = append(ranges, DateRange{Start: start, End: end})
			continue
		}
		d, err := parseISODate(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: vet %q vacation %q: %v", ErrInvalidDate, vetID, entry, err)
		}
		ranges = append(ranges, DateRange{Start: d, End: d})
	}
	return ranges, nil
}

func parseISODate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// IsOff reports whether vet v is unavailable on the given day: either
// a recurring weekday rest day, or within a vacation range. A rest day
// only excludes the vet on Mon-Fri; a weekend index in rest_days never
// blocks weekend duty.
func IsOff(v Vet, d Day) bool {
	wd := d.Weekday()
	if v.RestDays[wd] && wd != time.Saturday && wd != time.Sunday {
		return true
	}
	for _, r := range v.Vacations {
		if r.Contains(d.Date) {
			return true
		}
	}
	return false
}
