package schedule

import "time"

// Model is the static, immutable-once-built input to the solver: the
// partitioned calendar, the resolved roster, the domain configuration,
// and the aggregated history totals, plus index structures the
// constraint compiler and solver share so neither recomputes them in
// the hot path.
type Model struct {
	Cal     *Calendar
	Vets    []Vet
	VetIdx  map[string]int
	Config  SchedulerConfig
	History map[string]Counter // per vet ID, summed across all periods

	NumVets int
	NumDays int

	// DayWorkWeek maps a weekday Day.Index to its WorkWeek index, or
	// -1 for a weekend day.
	DayWorkWeek []int

	// FridayToWeekendPair maps a Friday's Day.Index to the WeekendPair
	// index it immediately precedes, when one exists.
	FridayToWeekendPair map[int]int

	// MondayAfterWeekend maps a WeekendPair index to the Day.Index of
	// the following Monday, or -1 if the horizon ends first.
	MondayAfterWeekend []int

	// MondayToWeekendPair is the inverse of MondayAfterWeekend, used
	// by E.5' / E.15 when deciding Monday's roles.
	MondayToWeekendPair map[int]int

	// GroupA / GroupB list vet indices in each compatibility group,
	// excluding anyone tagged excluded_from_pairing.
	GroupA []int
	GroupB []int

	// BalanceEligible lists the vet indices that participate in the
	// balancing envelopes; the same list is used for every category
	// (excludes anyone tagged excluded_from_balance).
	BalanceEligible []int

	// IsOffDay[v][d] precomputes the static rest/vacation predicate.
	IsOffDay [][]bool
}

// BuildModel resolves a roster + config + history into a Model ready
// for the solver. This is the constraint compiler's data-preparation
// half; the legality predicates in constraints.go are its rule half.
func BuildModel(cal *Calendar, rawVets map[string]VetInput, cfg SchedulerConfig, historyPeriods map[string]HistoryPeriod) (*Model, error) {
	vets, err := ResolveRoster(rawVets)
	if err != nil {
		return nil, err
	}
	vets = applyGroups(vets, cfg)

	m := &Model{
		Cal:     cal,
		Vets:    vets,
		Config:  cfg,
		NumVets: len(vets),
		NumDays: len(cal.Days),
	}

	m.VetIdx = make(map[string]int, len(vets))
	for i, v := range vets {
		m.VetIdx[v.ID] = i
	}

	m.History = AggregateHistory(historyPeriods, vets)

	m.IsOffDay = make([][]bool, m.NumVets)
	for vi, v := range vets {
		m.IsOffDay[vi] = make([]bool, m.NumDays)
		for _, d := range cal.Days {
			m.IsOffDay[vi][d.Index] = IsOff(v, d)
		}
	}

	m.DayWorkWeek = make([]int, m.NumDays)
	for i := range m.DayWorkWeek {
		m.DayWorkWeek[i] = -1
	}
	for wi, ww := range cal.WorkWeeks {
		for _, d := range ww.Days {
			m.DayWorkWeek[d] = wi
		}
	}

	m.FridayToWeekendPair = make(map[int]int, len(cal.WeekendPairs))
	m.MondayAfterWeekend = make([]int, len(cal.WeekendPairs))
	m.MondayToWeekendPair = make(map[int]int, len(cal.WeekendPairs))
	for pi, wp := range cal.WeekendPairs {
		fri := wp.SaturdayIndex - 1
		if fri >= 0 && cal.Days[fri].Weekday() == time.Friday {
			m.FridayToWeekendPair[fri] = pi
		}
		mon := wp.SundayIndex + 1
		if mon < m.NumDays && cal.Days[mon].Weekday() == time.Monday {
			m.MondayAfterWeekend[pi] = mon
			m.MondayToWeekendPair[mon] = pi
		} else {
			m.MondayAfterWeekend[pi] = -1
		}
	}

	for vi, v := range vets {
		if v.HasTag(TagExcludedFromPairing) {
			continue
		}
		if v.GroupA {
			m.GroupA = append(m.GroupA, vi)
		}
		if v.GroupB {
			m.GroupB = append(m.GroupB, vi)
		}
	}

	for vi, v := range vets {
		if !v.HasTag(TagExcludedFromBalance) {
			m.BalanceEligible = append(m.BalanceEligible, vi)
		}
	}

	return m, nil
}

// PrimaryTotalHistory returns the combined weekday+weekend history
// count used as hist_c(v) for the primary_total balancing category.
func (m *Model) PrimaryTotalHistory(vetID string) int {
	c := m.History[vetID]
	return c.PrimaryWeekdayCount + c.PrimaryWeekendDayCount
}
