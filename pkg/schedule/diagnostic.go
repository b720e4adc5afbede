package schedule

import (
	"fmt"
	"time"
)

// DiagnosticReport is the structured output of the independent
// re-verification oracle (component H): every rule in RuleTable is
// re-asserted directly against the extracted schedule, without
// reusing the solver's own bookkeeping.
type DiagnosticReport struct {
	Status     Status               `json:"status"`
	Violations []Violation          `json:"violations"`
	Warnings   []Warning            `json:"warnings"`
	Stats      map[string]Counter   `json:"stats"`
	Cumulative map[string]Counter   `json:"cumulative_stats,omitempty"`
}

// scheduleIndex is the diagnostic's own, from-scratch view of who
// holds what: rebuilt purely from the extracted []ScheduleEntry, so a
// bug in the solver's VariableSet bookkeeping cannot also corrupt the
// check that is supposed to catch it.
type scheduleIndex struct {
	primary   map[int]string // day index -> vet ID
	backup    map[int]string
	secondary map[int]string
}

func buildScheduleIndex(m *Model, entries []ScheduleEntry) *scheduleIndex {
	idx := &scheduleIndex{
		primary:   map[int]string{},
		backup:    map[int]string{},
		secondary: map[int]string{},
	}
	for i, e := range entries {
		if i >= len(m.Cal.Days) {
			break
		}
		if e.Primary != "" {
			idx.primary[i] = e.Primary
		}
		if e.Backup != "" {
			idx.backup[i] = e.Backup
		}
		if e.Secondary != "" {
			idx.secondary[i] = e.Secondary
		}
	}
	return idx
}

func (ix *scheduleIndex) holds(vetID string, d int) (primary, backup, secondary bool) {
	return ix.primary[d] == vetID && vetID != "", ix.backup[d] == vetID && vetID != "", ix.secondary[d] == vetID && vetID != ""
}

// Diagnose independently re-verifies an extracted schedule against
// every numbered rule, and reports workload statistics for the new
// horizon plus (when history is non-empty) cumulative statistics.
func Diagnose(m *Model, entries []ScheduleEntry) *DiagnosticReport {
	idx := buildScheduleIndex(m, entries)
	report := &DiagnosticReport{Stats: map[string]Counter{}}
	for _, c := range m.History {
		if c != (Counter{}) {
			report.Cumulative = map[string]Counter{}
			break
		}
	}

	report.Violations = append(report.Violations, checkDuplicateRole(m, idx)...)
	report.Violations = append(report.Violations, checkE1(m, idx)...)
	report.Violations = append(report.Violations, checkE2(m, idx)...)
	report.Violations = append(report.Violations, checkE3(m, idx)...)
	report.Violations = append(report.Violations, checkE4(m, idx)...)
	report.Violations = append(report.Violations, checkE5(m, idx)...)
	report.Violations = append(report.Violations, checkE5pAndE15(m, idx)...)
	report.Violations = append(report.Violations, checkE6(m, idx)...)
	report.Violations = append(report.Violations, checkE7(m, idx)...)
	report.Violations = append(report.Violations, checkE7p(m, idx)...)
	report.Violations = append(report.Violations, checkE8(m, idx)...)
	report.Violations = append(report.Violations, checkE9(m, idx)...)
	report.Violations = append(report.Violations, checkE10(m, idx)...)
	report.Violations = append(report.Violations, checkE14(m, idx)...)

	report.Warnings = append(report.Warnings, checkBalanceWarnings(m, idx)...)

	for _, vet := range m.Vets {
		report.Stats[vet.ID] = horizonCounterFor(m, idx, vet.ID)
		if report.Cumulative != nil {
			report.Cumulative[vet.ID] = m.History[vet.ID].Add(report.Stats[vet.ID])
		}
	}

	switch {
	case len(report.Violations) > 0:
		report.Status = StatusInfeasible
	case len(report.Warnings) > 0:
		report.Status = StatusFeasible
	default:
		report.Status = StatusOptimal
	}
	return report
}

func horizonCounterFor(m *Model, idx *scheduleIndex, vetID string) Counter {
	var c Counter
	for _, d := range m.Cal.Days {
		p, b, s := idx.holds(vetID, d.Index)
		weekend := d.IsWeekend()
		if p {
			if weekend {
				c.PrimaryWeekendDayCount++
			} else {
				c.PrimaryWeekdayCount++
			}
		}
		if b && !weekend {
			c.BackupWeekdayCount++
		}
		if s && weekend {
			c.SecondaryWeekendDayCount++
		}
	}
	return c
}

func checkDuplicateRole(m *Model, idx *scheduleIndex) []Violation {
	var v []Violation
	for _, vet := range m.Vets {
		for _, d := range m.Cal.Days {
			p, b, s := idx.holds(vet.ID, d.Index)
			count := boolToInt(p) + boolToInt(b) + boolToInt(s)
			if count > 1 {
				v = append(v, Violation{Rule: RuleDuplicateRole, VetID: vet.ID, DayIndex: d.Index,
					Message: fmt.Sprintf("vet %s holds %d roles on %s", vet.ID, count, d.Date.Format("2006-01-02"))})
			}
		}
	}
	return v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func checkE1(m *Model, idx *scheduleIndex) []Violation {
	var v []Violation
	for _, d := range m.Cal.Days {
		if d.IsWeekend() {
			continue
		}
		primaries, backups := 0, 0
		for _, vet := range m.Vets {
			p, b, s := idx.holds(vet.ID, d.Index)
			if p {
				primaries++
			}
			if b {
				backups++
			}
			if s {
				v = append(v, Violation{Rule: RuleE1, VetID: vet.ID, DayIndex: d.Index, Message: "secondary role held on a weekday"})
			}
		}
		if primaries != 1 {
			v = append(v, Violation{Rule: RuleE1, DayIndex: d.Index, Message: fmt.Sprintf("expected exactly 1 primary, found %d", primaries)})
		}
		if backups != 1 {
			v = append(v, Violation{Rule: RuleE1, DayIndex: d.Index, Message: fmt.Sprintf("expected exactly 1 backup, found %d", backups)})
		}
	}
	return v
}

func checkE2(m *Model, idx *scheduleIndex) []Violation {
	var v []Violation
	for _, wp := range m.Cal.WeekendPairs {
		primaries, secondaries := map[string]bool{}, map[string]bool{}
		for _, vet := range m.Vets {
			ps, bs, ss := idx.holds(vet.ID, wp.SaturdayIndex)
			pu, bu, su := idx.holds(vet.ID, wp.SundayIndex)
			if bs || bu {
				v = append(v, Violation{Rule: RuleE2, VetID: vet.ID, DayIndex: wp.SaturdayIndex, Message: "backup held on a weekend"})
			}
			if ps != pu {
				v = append(v, Violation{Rule: RuleE2, VetID: vet.ID, DayIndex: wp.SaturdayIndex, Message: "primary not held on both days of weekend pair"})
			}
			if ss != su {
				v = append(v, Violation{Rule: RuleE2, VetID: vet.ID, DayIndex: wp.SaturdayIndex, Message: "secondary not held on both days of weekend pair"})
			}
			if ps {
				primaries[vet.ID] = true
			}
			if ss {
				secondaries[vet.ID] = true
			}
		}
		if len(primaries) != 1 {
			v = append(v, Violation{Rule: RuleE2, DayIndex: wp.SaturdayIndex, Message: fmt.Sprintf("expected exactly 1 weekend primary, found %d", len(primaries))})
		}
		if len(secondaries) != 1 {
			v = append(v, Violation{Rule: RuleE2, DayIndex: wp.SaturdayIndex, Message: fmt.Sprintf("expected exactly 1 weekend secondary, found %d", len(secondaries))})
		}
	}
	return v
}

func checkE3(m *Model, idx *scheduleIndex) []Violation {
	var v []Violation
	for _, vet := range m.Vets {
		for _, ww := range m.Cal.WorkWeeks {
			count := 0
			for _, d := range ww.Days {
				p, _, _ := idx.holds(vet.ID, d)
				if p {
					count++
				}
			}
			if count > m.Config.Contraintes.MaxPrimaryPerWeek {
				v = append(v, Violation{Rule: RuleE3, VetID: vet.ID, Message: fmt.Sprintf("%d primaries in work-week %d exceeds cap", count, ww.Index)})
			}
		}
	}
	return v
}

func checkE4(m *Model, idx *scheduleIndex) []Violation {
	var v []Violation
	for _, vet := range m.Vets {
		counts := make([]int, len(m.Cal.WorkWeeks))
		for wi, ww := range m.Cal.WorkWeeks {
			for _, d := range ww.Days {
				_, b, _ := idx.holds(vet.ID, d)
				if b {
					counts[wi]++
				}
			}
		}
		for wi, c := range counts {
			switch {
			case vet.HasTag(TagOnceWeeklyBackup):
				if c > 1 {
					v = append(v, Violation{Rule: RuleE4, VetID: vet.ID, Message: fmt.Sprintf("once_weekly_backup vet exceeded 1 backup in work-week %d", wi)})
				}
			case vet.HasTag(TagRestrictedBackup):
				prev := 0
				if wi > 0 {
					prev = counts[wi-1]
				}
				if prev+c > 1 {
					v = append(v, Violation{Rule: RuleE4, VetID: vet.ID, Message: fmt.Sprintf("restricted_backup vet exceeded 1 backup over work-weeks %d-%d", wi-1, wi)})
				}
			default:
				if c > m.Config.Contraintes.MaxBackupPerWeek {
					v = append(v, Violation{Rule: RuleE4, VetID: vet.ID, Message: fmt.Sprintf("%d backups in work-week %d exceeds cap", c, wi)})
				}
			}
		}
	}
	return v
}

func checkE5(m *Model, idx *scheduleIndex) []Violation {
	var v []Violation
	for _, vet := range m.Vets {
		for _, d := range m.Cal.Days {
			if d.IsWeekend() || d.Index+1 >= m.NumDays {
				continue
			}
			p, _, _ := idx.holds(vet.ID, d.Index)
			if !p {
				continue
			}
			np, nb, _ := idx.holds(vet.ID, d.Index+1)
			if np || nb {
				v = append(v, Violation{Rule: RuleE5, VetID: vet.ID, DayIndex: d.Index, Message: "no rest the day after a weekday primary"})
			}
		}
	}
	return v
}

func checkE5pAndE15(m *Model, idx *scheduleIndex) []Violation {
	var v []Violation
	for _, vet := range m.Vets {
		for _, wp := range m.Cal.WeekendPairs {
			mon := m.MondayAfterWeekend[weekendPairIndex(m, wp)]
			if mon < 0 {
				continue
			}
			p, _, s := idx.holds(vet.ID, wp.SaturdayIndex)
			exempt := vet.HasTag(TagWeekendDespiteRest) && vet.RestDays[time.Monday] && !isVacationDay(vet, m.Cal.Days[mon])
			if p {
				mp, mb, _ := idx.holds(vet.ID, mon)
				if (mp || mb) && !exempt {
					v = append(v, Violation{Rule: RuleE5p, VetID: vet.ID, DayIndex: mon, Message: "no Monday rest after weekend primary"})
				}
			}
			if s {
				mp, mb, _ := idx.holds(vet.ID, mon)
				if (mp || mb) && !exempt {
					v = append(v, Violation{Rule: RuleE15, VetID: vet.ID, DayIndex: mon, Message: "no Monday rest after weekend secondary"})
				}
			}
		}
	}
	return v
}

func weekendPairIndex(m *Model, wp WeekendPair) int {
	for i, candidate := range m.Cal.WeekendPairs {
		if candidate == wp {
			return i
		}
	}
	return -1
}

func checkE6(m *Model, idx *scheduleIndex) []Violation {
	var v []Violation
	for _, vet := range m.Vets {
		for _, ww := range m.Cal.WorkWeeks {
			pairs := 0
			for i := 0; i+1 < len(ww.Days); i++ {
				_, b1, _ := idx.holds(vet.ID, ww.Days[i])
				_, b2, _ := idx.holds(vet.ID, ww.Days[i+1])
				if b1 && b2 {
					pairs++
				}
			}
			if pairs > m.Config.Contraintes.MaxConsecutiveBackupSequences {
				v = append(v, Violation{Rule: RuleE6, VetID: vet.ID, Message: fmt.Sprintf("%d consecutive-backup pairs in work-week %d exceeds cap", pairs, ww.Index)})
			}
		}
	}
	return v
}

func checkE7(m *Model, idx *scheduleIndex) []Violation {
	var v []Violation
	for vi, vet := range m.Vets {
		for _, d := range m.Cal.Days {
			if !m.IsOffDay[vi][d.Index] {
				continue
			}
			p, b, s := idx.holds(vet.ID, d.Index)
			if p || b || s {
				v = append(v, Violation{Rule: RuleE7, VetID: vet.ID, DayIndex: d.Index, Message: "assignment on a rest/vacation day"})
			}
		}
	}
	return v
}

func checkE7p(m *Model, idx *scheduleIndex) []Violation {
	var v []Violation
	for vi, vet := range m.Vets {
		for _, d := range m.Cal.Days {
			if d.Index+1 >= m.NumDays || !m.IsOffDay[vi][d.Index+1] {
				continue
			}
			if vet.HasTag(TagNeverPrimary) {
				continue
			}
			if vet.HasTag(TagEveOfRestAllowed) && !isVacationDay(vet, m.Cal.Days[d.Index+1]) {
				continue
			}
			// E.5' / E.15 — weekend primary/secondary held into a
			// following Monday rest day is exempt from E.7' when
			// weekend_despite_monday_rest applies (the exception
			// yields to vacation).
			if m.Cal.Days[d.Index+1].Weekday() == time.Monday && vet.HasTag(TagWeekendDespiteRest) &&
				vet.RestDays[time.Monday] && !isVacationDay(vet, m.Cal.Days[d.Index+1]) {
				continue
			}
			p, b, _ := idx.holds(vet.ID, d.Index)
			if p || b {
				v = append(v, Violation{Rule: RuleE7p, VetID: vet.ID, DayIndex: d.Index, Message: "primary/backup held the eve of an off-day"})
			}
		}
	}
	return v
}

func checkE8(m *Model, idx *scheduleIndex) []Violation {
	var v []Violation
	for _, vet := range m.Vets {
		for _, d := range m.Cal.Days {
			p, b, s := idx.holds(vet.ID, d.Index)
			if vet.HasTag(TagNeverPrimary) && p {
				v = append(v, Violation{Rule: RuleE8, VetID: vet.ID, DayIndex: d.Index, Message: "never_primary vet holds primary"})
			}
			if vet.HasTag(TagNeverSecondary) && s {
				v = append(v, Violation{Rule: RuleE8, VetID: vet.ID, DayIndex: d.Index, Message: "never_secondary vet holds secondary"})
			}
			if vet.HasTag(TagNeverWeekend) && d.IsWeekend() && b {
				v = append(v, Violation{Rule: RuleE8, VetID: vet.ID, DayIndex: d.Index, Message: "never_weekend vet holds weekend backup"})
			}
			if vet.HasTag(TagNeverOnMonday) && d.Weekday() == time.Monday && (p || b || s) {
				v = append(v, Violation{Rule: RuleE8, VetID: vet.ID, DayIndex: d.Index, Message: "never_on_monday vet holds a role on Monday"})
			}
		}
	}
	return v
}

func checkE9(m *Model, idx *scheduleIndex) []Violation {
	var v []Violation
	for _, vet := range m.Vets {
		for _, wp := range m.Cal.WeekendPairs {
			fri := wp.SaturdayIndex - 1
			if fri < 0 || m.Cal.Days[fri].Weekday() != time.Friday {
				continue
			}
			fp, fb, _ := idx.holds(vet.ID, fri)
			sp, _, ss := idx.holds(vet.ID, wp.SaturdayIndex)
			if (fp && sp) || (fp && ss) || (fb && sp) || (fb && ss) {
				v = append(v, Violation{Rule: RuleE9, VetID: vet.ID, DayIndex: fri, Message: "Friday role carries over into the following weekend"})
			}
		}
	}
	return v
}

func checkE10(m *Model, idx *scheduleIndex) []Violation {
	var v []Violation
	spacing := time.Duration(m.Config.Contraintes.WeekendSpacingDays) * 24 * time.Hour
	for _, vet := range m.Vets {
		var held []time.Time
		for _, wp := range m.Cal.WeekendPairs {
			p, _, s := idx.holds(vet.ID, wp.SaturdayIndex)
			if p || s {
				held = append(held, m.Cal.Days[wp.SaturdayIndex].Date)
			}
		}
		for i := 0; i < len(held); i++ {
			for j := i + 1; j < len(held); j++ {
				diff := held[j].Sub(held[i])
				if diff < spacing {
					v = append(v, Violation{Rule: RuleE10, VetID: vet.ID, Message: fmt.Sprintf("weekends %s and %s are within the spacing window", held[i].Format("2006-01-02"), held[j].Format("2006-01-02"))})
				}
			}
		}
	}
	return v
}

func checkE14(m *Model, idx *scheduleIndex) []Violation {
	var v []Violation
	for _, d := range m.Cal.Days {
		for _, av := range m.GroupA {
			primaryVetID := m.Vets[av].ID
			p, _, _ := idx.holds(primaryVetID, d.Index)
			if !p {
				continue
			}
			for vi, cand := range m.Vets {
				if vi == av || cand.HasTag(TagExcludedFromPairing) || m.inGroupB(vi) {
					continue
				}
				_, b, s := idx.holds(cand.ID, d.Index)
				if (!d.IsWeekend() && b) || (d.IsWeekend() && s) {
					v = append(v, Violation{Rule: RuleE14, VetID: cand.ID, DayIndex: d.Index, Message: fmt.Sprintf("non-B vet paired with group-A primary %s", primaryVetID)})
				}
			}
		}
	}
	return v
}

func checkBalanceWarnings(m *Model, idx *scheduleIndex) []Warning {
	var w []Warning
	if len(m.BalanceEligible) < 2 {
		return w
	}
	type cat struct {
		name string
		rule RuleID
		get  func(vetID string) int
		gap  int
	}
	cats := []cat{
		{"primary_total", RuleE11, func(id string) int {
			c := horizonCounterFor(m, idx, id)
			return c.PrimaryWeekdayCount + c.PrimaryWeekendDayCount + m.PrimaryTotalHistory(id)
		}, m.Config.Contraintes.BalanceGapPrimary},
		{"backup_weekday", RuleE12, func(id string) int {
			return horizonCounterFor(m, idx, id).BackupWeekdayCount + m.History[id].BackupWeekdayCount
		}, m.Config.Contraintes.BalanceGapBackup},
		{"secondary_weekend_day", RuleE13, func(id string) int {
			return horizonCounterFor(m, idx, id).SecondaryWeekendDayCount + m.History[id].SecondaryWeekendDayCount
		}, m.Config.Contraintes.BalanceGapSecondary},
	}
	for _, c := range cats {
		min, max := -1, -1
		for _, vi := range m.BalanceEligible {
			total := c.get(m.Vets[vi].ID)
			if min == -1 || total < min {
				min = total
			}
			if max == -1 || total > max {
				max = total
			}
		}
		if max-min > c.gap {
			w = append(w, Warning{Rule: c.rule, Message: fmt.Sprintf("%s gap %d exceeds K_c=%d", c.name, max-min, c.gap)})
		}
	}
	return w
}
