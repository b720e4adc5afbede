package schedule

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// SolveOptions controls the solver driver's time budget and worker
// pool size, per §4.F / §5's CP-SAT-style parallel search model.
type SolveOptions struct {
	// TimeBudget bounds the wall-clock time the search may run.
	// Defaults to 300s if zero.
	TimeBudget time.Duration
	// Workers bounds how many independent search goroutines race each
	// other. Defaults to 8 if zero.
	Workers int
	// MaxAttemptsPerWorker caps how many randomized construction
	// attempts a single worker will make before giving up — this
	// turns a search space that is genuinely unsatisfiable into a
	// prompt Infeasible instead of waiting out the full time budget.
	// Defaults to 400 if zero.
	MaxAttemptsPerWorker int
}

func (o SolveOptions) withDefaults() SolveOptions {
	if o.TimeBudget <= 0 {
		o.TimeBudget = 300 * time.Second
	}
	if o.Workers <= 0 {
		o.Workers = 8
	}
	if o.MaxAttemptsPerWorker <= 0 {
		o.MaxAttemptsPerWorker = 400
	}
	return o
}

// Result is the solver's output: a classification status and, for
// Optimal/Feasible, the filled-in decision variables.
type Result struct {
	Status   Status
	Vars     *VariableSet
	Attempts int64
	Elapsed  time.Duration
}

// Solve runs the search described in §4.F: parallel randomized
// construction attempts racing against a time budget, the first
// fully-legal candidate wins. Classification:
//   - Optimal: a candidate was found that also satisfies every
//     balance envelope (E.11-13) within K_c.
//   - Feasible: reserved for future use by a relaxed mode; the
//     current design rejects and retries candidates that miss a
//     balance envelope rather than returning them as merely
//     Feasible (see DESIGN.md — K_c is enforced as a hard
//     constraint, matching the "no soft-relaxation" design note).
//   - Infeasible: every worker exhausted its attempt budget without
//     producing a candidate that is both structurally legal and within
//     every balance envelope.
//   - Timeout: the time budget elapsed before any worker converged or
//     exhausted its attempt budget.
func Solve(ctx context.Context, m *Model, opts SolveOptions) *Result {
	opts = opts.withDefaults()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, opts.TimeBudget)
	defer cancel()

	type outcome struct {
		vars *VariableSet
	}

	foundCh := make(chan outcome, 1)
	var attempts int64
	var exhausted int64 // workers that hit MaxAttemptsPerWorker without success

	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < opts.MaxAttemptsPerWorker; i++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				atomic.AddInt64(&attempts, 1)
				if vars, ok := attempt(m, rng); ok {
					select {
					case foundCh <- outcome{vars: vars}:
						cancel()
					default:
					}
					return
				}
			}
			atomic.AddInt64(&exhausted, 1)
		}(time.Now().UnixNano() + int64(w)*104729)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()

	select {
	case out := <-foundCh:
		<-done
		return &Result{Status: StatusOptimal, Vars: out.vars, Attempts: atomic.LoadInt64(&attempts), Elapsed: time.Since(start)}
	case <-done:
		select {
		case out := <-foundCh:
			return &Result{Status: StatusOptimal, Vars: out.vars, Attempts: atomic.LoadInt64(&attempts), Elapsed: time.Since(start)}
		default:
		}
		if atomic.LoadInt64(&exhausted) >= int64(opts.Workers) {
			return &Result{Status: StatusInfeasible, Attempts: atomic.LoadInt64(&attempts), Elapsed: time.Since(start)}
		}
		return &Result{Status: StatusTimeout, Attempts: atomic.LoadInt64(&attempts), Elapsed: time.Since(start)}
	case <-ctx.Done():
		<-done
		select {
		case out := <-foundCh:
			return &Result{Status: StatusOptimal, Vars: out.vars, Attempts: atomic.LoadInt64(&attempts), Elapsed: time.Since(start)}
		default:
		}
		return &Result{Status: StatusTimeout, Attempts: atomic.LoadInt64(&attempts), Elapsed: time.Since(start)}
	}
}

// attempt performs one randomized greedy construction of a full
// schedule. It returns ok=false the moment any day cannot be legally
// filled, or if the finished schedule misses a balance envelope.
func attempt(m *Model, rng *rand.Rand) (*VariableSet, bool) {
	s := NewSearchState(m)

	for _, d := range m.Cal.Days {
		switch {
		case isWeekendPairSaturday(m, d.Index):
			wp := weekendPairStartingAt(m, d.Index)
			if !assignWeekendPair(s, wp, rng) {
				return nil, false
			}
		case isWeekendPairSunday(m, d.Index):
			continue // handled when its Saturday was processed
		case d.IsWeekend():
			continue // lone weekend day: explicit zero, nothing to assign
		default:
			if !assignWeekdayRoles(s, d.Index, rng) {
				return nil, false
			}
		}
	}

	if !balanceWithinEnvelope(m, s) {
		return nil, false
	}

	return s.Vars, true
}

func isWeekendPairSaturday(m *Model, d int) bool {
	for _, wp := range m.Cal.WeekendPairs {
		if wp.SaturdayIndex == d {
			return true
		}
	}
	return false
}

func isWeekendPairSunday(m *Model, d int) bool {
	for _, wp := range m.Cal.WeekendPairs {
		if wp.SundayIndex == d {
			return true
		}
	}
	return false
}

func weekendPairStartingAt(m *Model, satIdx int) WeekendPair {
	for _, wp := range m.Cal.WeekendPairs {
		if wp.SaturdayIndex == satIdx {
			return wp
		}
	}
	return WeekendPair{}
}

// assignWeekdayRoles picks a primary then a pairing-compatible backup
// for weekday d, preferring the least-loaded eligible vet so the
// balance envelopes (E.11/12) stay tight by construction.
func assignWeekdayRoles(s *SearchState, d int, rng *rand.Rand) bool {
	m := s.Model
	order := rankByLoad(m, shuffledVetOrder(m.NumVets, rng), s.curPrimaryTotal)

	primary := -1
	for _, v := range order {
		if s.eligibleForWeekday(RolePrimary, v, d) {
			primary = v
			break
		}
	}
	if primary < 0 {
		return false
	}
	s.assignWeekday(RolePrimary, primary, d)

	backupOrder := rankByLoad(m, shuffledVetOrder(m.NumVets, rng), s.curBackupWeekday)
	backup := -1
	for _, v := range backupOrder {
		if v == primary {
			continue
		}
		if !m.pairingAllowed(primary, v) {
			continue
		}
		if s.eligibleForWeekday(RoleBackup, v, d) {
			backup = v
			break
		}
	}
	if backup < 0 {
		return false
	}
	s.assignWeekday(RoleBackup, backup, d)
	return true
}

// assignWeekendPair picks a primary then a pairing-compatible
// secondary for a full weekend pair.
func assignWeekendPair(s *SearchState, wp WeekendPair, rng *rand.Rand) bool {
	m := s.Model
	order := rankByLoad(m, shuffledVetOrder(m.NumVets, rng), s.curPrimaryTotal)

	primary := -1
	for _, v := range order {
		if s.eligibleForWeekend(RolePrimary, v, wp) {
			primary = v
			break
		}
	}
	if primary < 0 {
		return false
	}

	secOrder := rankByLoad(m, shuffledVetOrder(m.NumVets, rng), s.curSecondaryWeekendDay)
	secondary := -1
	for _, v := range secOrder {
		if v == primary {
			continue
		}
		if !m.pairingAllowed(primary, v) {
			continue
		}
		if s.eligibleForWeekend(RoleSecondary, v, wp) {
			secondary = v
			break
		}
	}
	if secondary < 0 {
		return false
	}

	s.assignWeekend(RolePrimary, primary, wp)
	s.assignWeekend(RoleSecondary, secondary, wp)
	return true
}

// pairingAllowed implements E.14: if primary is a group-A vet, the
// partner role must go to a group-B vet or one tagged
// excluded_from_pairing. There is deliberately no reciprocal
// constraint when primary is in group B.
func (m *Model) pairingAllowed(primary, candidate int) bool {
	if !m.inGroupA(primary) {
		return true
	}
	if m.Vets[candidate].HasTag(TagExcludedFromPairing) {
		return true
	}
	return m.inGroupB(candidate)
}

// rankByLoad sorts a vet-index ordering by ascending (cur+hist) load,
// breaking ties by the incoming (already shuffled) order.
func rankByLoad(m *Model, order []int, cur []int) []int {
	load := func(v int) int {
		return cur[v] + m.PrimaryTotalHistory(m.Vets[v].ID)
	}
	ranked := append([]int(nil), order...)
	// simple stable insertion sort: N is small (clinic roster sizes).
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && load(ranked[j]) < load(ranked[j-1]); j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	return ranked
}

// balanceWithinEnvelope checks E.11/12/13: for each balancing
// category, max-min over eligible vets of (cur+hist) must not exceed
// the configured K_c. Categories with fewer than two eligible vets
// after exclusion are skipped, per spec.
func balanceWithinEnvelope(m *Model, s *SearchState) bool {
	type cat struct {
		cur []int
		histFn func(string) int
		gap int
	}
	cats := []cat{
		{s.curPrimaryTotal, m.PrimaryTotalHistory, m.Config.Contraintes.BalanceGapPrimary},
		{s.curBackupWeekday, func(id string) int { return m.History[id].BackupWeekdayCount }, m.Config.Contraintes.BalanceGapBackup},
		{s.curSecondaryWeekendDay, func(id string) int { return m.History[id].SecondaryWeekendDayCount }, m.Config.Contraintes.BalanceGapSecondary},
	}
	for _, c := range cats {
		if len(m.BalanceEligible) < 2 {
			continue
		}
		min, max := -1, -1
		for _, v := range m.BalanceEligible {
			total := c.cur[v] + c.histFn(m.Vets[v].ID)
			if min == -1 || total < min {
				min = total
			}
			if max == -1 || total > max {
				max = total
			}
		}
		if max-min > c.gap {
			return false
		}
	}
	return true
}
