package schedule

// RuleID names one numbered constraint category from the catalogue.
// The diagnostic (post-hoc verification, diagnostic.go) keys every
// violation and warning by these identifiers. The search-time legality
// predicates (constraints.go) cite the same rule numbers in their
// comments but do not report RuleIDs themselves.
type RuleID string

const (
	RuleE1  RuleID = "E.1"  // daily weekday coverage
	RuleE2  RuleID = "E.2"  // weekend coverage and duo locking
	RuleE3  RuleID = "E.3"  // one primary per work-week
	RuleE4  RuleID = "E.4"  // backup cap per work-week
	RuleE5  RuleID = "E.5"  // mandatory rest after weekday primary
	RuleE5p RuleID = "E.5'" // Monday rest after weekend primary
	RuleE6  RuleID = "E.6"  // at most one consecutive-backup pair per work-week
	RuleE7  RuleID = "E.7"  // rest-day and vacation shutdown
	RuleE7p RuleID = "E.7'" // no primary the eve of an off-day
	RuleE8  RuleID = "E.8"  // role exclusions per vet tag
	RuleE9  RuleID = "E.9"  // no Friday-before-weekend carry-over
	RuleE10 RuleID = "E.10" // 14-day weekend spacing
	RuleE11 RuleID = "E.11" // balance: primary_total
	RuleE12 RuleID = "E.12" // balance: backup_weekday
	RuleE13 RuleID = "E.13" // balance: secondary_weekend_day
	RuleE14 RuleID = "E.14" // pairing compatibility
	RuleE15 RuleID = "E.15" // Monday rest after weekend secondary

	// RuleDuplicateRole is not numbered in the catalogue; it reports
	// the cross-cutting "no vet holds two roles on the same day"
	// invariant (data model invariant 3 / P-adjacent to E.1/E.2).
	RuleDuplicateRole RuleID = "invariant-3"
)

// Rule is one catalogue entry: identifier plus a human-readable
// description, used when rendering diagnostic reports.
type Rule struct {
	ID          RuleID
	Description string
}

// RuleTable is the declarative catalogue every violation/warning is
// reported against.
var RuleTable = []Rule{
	{RuleE1, "daily weekday coverage: exactly one primary and one backup"},
	{RuleE2, "weekend coverage and duo locking: one primary/secondary pair held across both days"},
	{RuleE3, "at most one primary per vet per work-week"},
	{RuleE4, "backup cap per work-week (vet-tag dependent)"},
	{RuleE5, "mandatory rest the day after a weekday primary"},
	{RuleE5p, "Monday rest after a weekend primary"},
	{RuleE6, "at most one consecutive-backup pair per work-week"},
	{RuleE7, "no assignment on a rest day or vacation day"},
	{RuleE7p, "no primary the eve of an off-day"},
	{RuleE8, "per-tag role exclusions"},
	{RuleE9, "no Friday-before-weekend role carry-over"},
	{RuleE10, "14-day minimum spacing between weekends held"},
	{RuleE11, "balance envelope: total primaries"},
	{RuleE12, "balance envelope: weekday backups"},
	{RuleE13, "balance envelope: weekend secondary days"},
	{RuleE14, "pairing compatibility between groups A and B"},
	{RuleE15, "Monday rest after a weekend secondary"},
	{RuleDuplicateRole, "no vet holds two roles on the same day"},
}

// Violation is one confirmed rule breach.
type Violation struct {
	Rule    RuleID `json:"rule"`
	Message string `json:"message"`
	DayIndex int   `json:"day_index,omitempty"`
	VetID   string `json:"vet_id,omitempty"`
}

// Warning is a non-fatal finding — currently only balance-envelope
// overruns, which the diagnostic reports but does not treat as a bug.
type Warning struct {
	Rule    RuleID `json:"rule"`
	Message string `json:"message"`
}
