package schedule

import "fmt"

// ExtractSchedule reads the solved decision variables back into the
// externally-visible output contract: one record per day, carrying
// exactly the roles that apply per E.1/E.2.
func ExtractSchedule(m *Model, vars *VariableSet) []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, m.NumDays)
	for _, d := range m.Cal.Days {
		entry := ScheduleEntry{Date: d.Date}

		if pv := vars.VetOf(RolePrimary, d.Index); pv >= 0 {
			entry.Primary = m.Vets[pv].ID
		}
		if bv := vars.VetOf(RoleBackup, d.Index); bv >= 0 {
			entry.Backup = m.Vets[bv].ID
		}
		if sv := vars.VetOf(RoleSecondary, d.Index); sv >= 0 {
			entry.Secondary = m.Vets[sv].ID
		}

		entries = append(entries, entry)
	}
	return entries
}

// NewHorizonPeriod derives the per-vet Counter deltas a solved
// schedule contributes, suitable for folding into history by the
// writer (component I).
func NewHorizonPeriod(m *Model, vars *VariableSet) HistoryPeriod {
	stats := make(map[string]Counter, m.NumVets)
	for _, vet := range m.Vets {
		stats[vet.ID] = Counter{}
	}

	for _, d := range m.Cal.Days {
		weekend := d.IsWeekend()
		for vi := range m.Vets {
			id := m.Vets[vi].ID
			c := stats[id]
			if vars.Get(RolePrimary, vi, d.Index) {
				if weekend {
					c.PrimaryWeekendDayCount++
				} else {
					c.PrimaryWeekdayCount++
				}
			}
			if vars.Get(RoleBackup, vi, d.Index) && !weekend {
				c.BackupWeekdayCount++
			}
			if vars.Get(RoleSecondary, vi, d.Index) && weekend {
				c.SecondaryWeekendDayCount++
			}
			stats[id] = c
		}
	}

	return HistoryPeriod{Start: m.Cal.Start, End: m.Cal.End, Stats: stats}
}

// DefaultPeriodName builds the "<start>_to_<end>" key the original
// implementation used for auto-named periods.
func DefaultPeriodName(cal *Calendar) string {
	return fmt.Sprintf("%s_to_%s", cal.Start.Format("2006-01-02"), cal.End.Format("2006-01-02"))
}
