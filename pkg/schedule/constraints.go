package schedule

import (
	"math/rand"
	"time"
)

// SearchState is the mutable bookkeeping one solver attempt threads
// through its day-by-day construction: the decision variables being
// filled in, plus the running per-vet/per-week counters the windowed
// rules (E.3, E.4, E.6, E.10, E.11-13) need without rescanning the
// whole horizon on every candidate check.
type SearchState struct {
	Model *Model
	Vars  *VariableSet

	weekPrimaryCount [][]int // [vet][workWeek]
	weekBackupCount  [][]int // [vet][workWeek]
	weekBackupPairs  [][]int // [vet][workWeek] consecutive-backup-pair count

	curPrimaryTotal []int // cur_c(v) for balance category primary_total
	curBackupWeekday []int
	curSecondaryWeekendDay []int

	weekendHolds []weekendHold
}

type weekendHold struct {
	satDate time.Time
	vet     int
}

// NewSearchState allocates a fresh, empty bookkeeping state for one
// construction attempt.
func NewSearchState(m *Model) *SearchState {
	s := &SearchState{
		Model: m,
		Vars:  NewVariableSet(m.NumVets, m.NumDays),
	}
	numWeeks := len(m.Cal.WorkWeeks)
	s.weekPrimaryCount = make([][]int, m.NumVets)
	s.weekBackupCount = make([][]int, m.NumVets)
	s.weekBackupPairs = make([][]int, m.NumVets)
	for v := 0; v < m.NumVets; v++ {
		s.weekPrimaryCount[v] = make([]int, numWeeks)
		s.weekBackupCount[v] = make([]int, numWeeks)
		s.weekBackupPairs[v] = make([]int, numWeeks)
	}
	s.curPrimaryTotal = make([]int, m.NumVets)
	s.curBackupWeekday = make([]int, m.NumVets)
	s.curSecondaryWeekendDay = make([]int, m.NumVets)
	return s
}

// eligibleForWeekday reports whether vet v can legally hold role on
// weekday d, given everything assigned so far (days < d are final;
// d itself is being decided now).
//
// Implements E.1 (role exclusivity), E.5, E.7, E.7', E.8, E.9.
func (s *SearchState) eligibleForWeekday(role Role, v, d int) bool {
	m := s.Model
	vet := m.Vets[v]

	// E.7 — rest day / vacation shutdown.
	if m.IsOffDay[v][d] {
		return false
	}

	// E.8 — per-tag role exclusions.
	switch role {
	case RolePrimary:
		if vet.HasTag(TagNeverPrimary) {
			return false
		}
	case RoleBackup:
		if vet.HasTag(TagNeverWeekend) && m.Cal.Days[d].IsWeekend() {
			return false
		}
	case RoleSecondary:
		if vet.HasTag(TagNeverSecondary) {
			return false
		}
	}
	if vet.HasTag(TagNeverOnMonday) && m.Cal.Days[d].Weekday() == time.Monday {
		return false
	}

	// A vet cannot hold two roles the same day (invariant 3 / E.1).
	if s.Vars.Get(RolePrimary, v, d) || s.Vars.Get(RoleBackup, v, d) || s.Vars.Get(RoleSecondary, v, d) {
		return false
	}

	if d > 0 {
		// E.5 — mandatory rest after weekday primary.
		if s.Vars.Get(RolePrimary, v, d-1) && m.Cal.Days[d-1].Weekday() != time.Saturday && m.Cal.Days[d-1].Weekday() != time.Sunday {
			if role == RolePrimary || role == RoleBackup {
				return false
			}
		}
	}

	// E.7' — no primary/backup the eve of an off-day, with the
	// eve_of_rest_allowed exception (blocked only if tomorrow is a
	// vacation day, not a mere rest day). never_primary vets are
	// exempt from E.7' entirely.
	if (role == RolePrimary || role == RoleBackup) && !vet.HasTag(TagNeverPrimary) && d+1 < m.NumDays && m.IsOffDay[v][d+1] {
		if vet.HasTag(TagEveOfRestAllowed) && !isVacationDay(vet, m.Cal.Days[d+1]) {
			// allowed
		} else {
			return false
		}
	}

	// E.5' / E.15 — Monday rest after a weekend primary/secondary.
	if (role == RolePrimary || role == RoleBackup) && m.Cal.Days[d].Weekday() == time.Monday {
		if wpIdx, ok := m.MondayToWeekendPair[d]; ok {
			wp := m.Cal.WeekendPairs[wpIdx]
			heldPrimary := s.Vars.Get(RolePrimary, v, wp.SaturdayIndex)
			heldSecondary := s.Vars.Get(RoleSecondary, v, wp.SaturdayIndex)
			if heldPrimary || heldSecondary {
				exempt := vet.HasTag(TagWeekendDespiteRest) && vet.RestDays[time.Monday] && !isVacationDay(vet, m.Cal.Days[d])
				if !exempt {
					return false
				}
			}
		}
	}

	// E.3 / E.4 weekly caps.
	if wi := m.DayWorkWeek[d]; wi >= 0 {
		switch role {
		case RolePrimary:
			if s.weekPrimaryCount[v][wi] >= m.Config.Contraintes.MaxPrimaryPerWeek {
				return false
			}
		case RoleBackup:
			weekCap := m.Config.Contraintes.MaxBackupPerWeek
			switch {
			case vet.HasTag(TagOnceWeeklyBackup):
				weekCap = 1
			case vet.HasTag(TagRestrictedBackup):
				// over any two consecutive work-weeks, sum <= 1
				prev := 0
				if wi > 0 {
					prev = s.weekBackupCount[v][wi-1]
				}
				if prev+s.weekBackupCount[v][wi] >= 1 {
					return false
				}
			}
			if s.weekBackupCount[v][wi] >= weekCap {
				return false
			}
			// E.6 — at most one consecutive-backup pair per work-week.
			if d > 0 && m.DayWorkWeek[d-1] == wi && s.Vars.Get(RoleBackup, v, d-1) {
				if s.weekBackupPairs[v][wi] >= m.Config.Contraintes.MaxConsecutiveBackupSequences {
					return false
				}
			}
		}
	}

	// E.9 — no Friday-before-weekend carry-over, checked when the
	// day being assigned is the Saturday of a full weekend pair.
	if role == RolePrimary || role == RoleSecondary {
		for _, wp := range m.Cal.WeekendPairs {
			if wp.SaturdayIndex != d {
				continue
			}
			fri := d - 1
			if fri < 0 {
				break
			}
			if s.Vars.Get(RolePrimary, v, fri) || s.Vars.Get(RoleBackup, v, fri) {
				return false
			}
			break
		}
	}

	return true
}

func isVacationDay(v Vet, d Day) bool {
	for _, r := range v.Vacations {
		if r.Contains(d.Date) {
			return true
		}
	}
	return false
}

// assignWeekday commits vet v to role on weekday d and updates the
// running counters.
func (s *SearchState) assignWeekday(role Role, v, d int) {
	s.Vars.Set(role, v, d, true)
	if wi := s.Model.DayWorkWeek[d]; wi >= 0 {
		switch role {
		case RolePrimary:
			s.weekPrimaryCount[v][wi]++
			s.curPrimaryTotal[v]++
		case RoleBackup:
			if d > 0 && s.Model.DayWorkWeek[d-1] == wi && s.Vars.Get(RoleBackup, v, d-1) {
				s.weekBackupPairs[v][wi]++
			}
			s.weekBackupCount[v][wi]++
			s.curBackupWeekday[v]++
		}
	}
}

// eligibleForWeekend reports whether v may hold the shared
// primary (or secondary) role for a full weekend pair, given the
// Friday-before and 14-day-spacing rules (E.9, E.10) plus role/tag
// exclusions (E.2, E.8).
//
// role must be RolePrimary or RoleSecondary.
func (s *SearchState) eligibleForWeekend(role Role, v int, wp WeekendPair) bool {
	m := s.Model
	vet := m.Vets[v]

	if m.IsOffDay[v][wp.SaturdayIndex] || m.IsOffDay[v][wp.SundayIndex] {
		return false
	}
	if role == RoleSecondary && vet.HasTag(TagNeverSecondary) {
		return false
	}
	if role == RolePrimary && vet.HasTag(TagNeverPrimary) {
		return false
	}

	// E.9 — Friday carry-over.
	fri := wp.SaturdayIndex - 1
	if fri >= 0 && m.Cal.Days[fri].Weekday() == time.Friday {
		if s.Vars.Get(RolePrimary, v, fri) || s.Vars.Get(RoleBackup, v, fri) {
			return false
		}
	}

	// E.5' / E.15 — no weekend primary/secondary if the following
	// Monday is an off-day for this vet, unless weekend_despite_rest
	// applies (Monday must itself be a rest day, not a vacation day —
	// the exception yields to vacation).
	if mon := wp.SundayIndex + 1; mon < len(m.Cal.Days) && m.Cal.Days[mon].Weekday() == time.Monday && m.IsOffDay[v][mon] {
		exempt := vet.HasTag(TagWeekendDespiteRest) && vet.RestDays[time.Monday] && !isVacationDay(vet, m.Cal.Days[mon])
		if !exempt {
			return false
		}
	}

	// E.10 — 14-day weekend spacing against every previously held
	// weekend (primary or secondary) by this vet.
	spacing := time.Duration(m.Config.Contraintes.WeekendSpacingDays) * 24 * time.Hour
	satDate := m.Cal.Days[wp.SaturdayIndex].Date
	for _, h := range s.weekendHolds {
		if h.vet != v {
			continue
		}
		diff := satDate.Sub(h.satDate)
		if diff < 0 {
			diff = -diff
		}
		if diff < spacing {
			return false
		}
	}

	return true
}

// assignWeekend commits vet v to role across both days of wp.
func (s *SearchState) assignWeekend(role Role, v int, wp WeekendPair) {
	s.Vars.Set(role, v, wp.SaturdayIndex, true)
	s.Vars.Set(role, v, wp.SundayIndex, true)
	if role == RolePrimary {
		s.curPrimaryTotal[v] += 2
	} else if role == RoleSecondary {
		s.curSecondaryWeekendDay[v] += 2
	}
	s.weekendHolds = append(s.weekendHolds, weekendHold{satDate: s.Model.Cal.Days[wp.SaturdayIndex].Date, vet: v})
}

// inGroupA / inGroupB back the E.14 pairing check in solver.go.
func (m *Model) inGroupA(v int) bool { return contains(m.GroupA, v) }
func (m *Model) inGroupB(v int) bool { return contains(m.GroupB, v) }

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// shuffledVetOrder returns a randomized permutation of vet indices,
// used so parallel search workers explore different orderings.
func shuffledVetOrder(n int, rng *rand.Rand) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	return order
}
