package schedule

import "errors"

// Sentinel error kinds, wrapped via fmt.Errorf("...: %w", ...) so
// callers can discriminate with errors.Is/errors.As.
var (
	// ErrInvalidHorizon marks a malformed or empty calendar horizon
	// (end before start, zero-length range).
	ErrInvalidHorizon = errors.New("invalid horizon")

	// ErrInvalidRoster marks a roster that fails structural validation
	// (empty roster, fewer than three vets, too many or out-of-range
	// rest days, unparsable roster or config JSON). Unparsable vacation
	// dates are reported as ErrInvalidDate instead.
	ErrInvalidRoster = errors.New("invalid roster")

	// ErrInvalidDate marks an unparsable or out-of-range date in input.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInfeasible marks a horizon/roster/config combination the
	// solver proved has no satisfying assignment within its search.
	ErrInfeasible = errors.New("no feasible schedule")

	// ErrTimeout marks a solve that exhausted its time budget without
	// reaching a proven-optimal or proven-infeasible conclusion.
	ErrTimeout = errors.New("solve timed out")

	// ErrHistoryIO marks a failure reading or writing the history store.
	ErrHistoryIO = errors.New("history I/O error")
)
