// Package domain holds the core entities of the nurse-roster model: workers,
// shifts, duties, leaves, off-days, the planning calendar's days, and the
// requests and rule configs that drive the constraint encoders. Types here
// are plain value objects; requests and rule configs carry a Validate
// method that rejects unknown variants, and the packages that consume them
// (catalog, calendar, store, policy, ...) own the remaining validation and
// behavior.
package domain

import (
	"fmt"
	"time"
)

// WorkerID identifies a worker. Stable for the lifetime of an ingested
// scenario.
type WorkerID string

// RoleID identifies a role tag such as senior or junior.
type RoleID string

// ShiftID identifies a logical shift grouping (AM, PM, Night, ...).
type ShiftID string

// DutyID identifies a concrete assignable duty slot.
type DutyID string

// LeaveID identifies a non-working assignable slot.
type LeaveID string

// Worker is an identity string and a role tag. Immutable after ingestion.
type Worker struct {
	ID   WorkerID
	Role RoleID
}

// Shift is a logical grouping of duties sharing a time window.
type Shift struct {
	ID    ShiftID
	Start time.Duration // offset from midnight
	End   time.Duration
}

// Duty is a concrete assignable slot belonging to one Shift. Per-day
// min/max headcount lives in the demand table (C3), not here, mirroring
// the original's per-(date, duty) tabular lookup.
type Duty struct {
	ID            DutyID
	Name          string
	ShiftID       ShiftID
	RequiredRoles map[RoleID]struct{}
}

// RoleEligible reports whether a worker of the given role may be assigned
// this duty. A duty with no required roles accepts any role.
func (d Duty) RoleEligible(role RoleID) bool {
	if len(d.RequiredRoles) == 0 {
		return true
	}
	_, ok := d.RequiredRoles[role]
	return ok
}

// Leave is a non-working slot (annual leave, etc.) assignable on a day.
type Leave struct {
	ID   LeaveID
	Name string
}

// OffDayScope controls how the weekly off-day quota window is partitioned.
type OffDayScope int

const (
	OffDayDaily OffDayScope = iota
	OffDayWeekend
	OffDayWeekday
)

func (s OffDayScope) String() string {
	switch s {
	case OffDayDaily:
		return "daily"
	case OffDayWeekend:
		return "weekend"
	case OffDayWeekday:
		return "weekday"
	default:
		return fmt.Sprintf("OffDayScope(%d)", int(s))
	}
}

// ValidOffDayScope rejects unknown scope variants at construction time.
func ValidOffDayScope(s OffDayScope) error {
	switch s {
	case OffDayDaily, OffDayWeekend, OffDayWeekday:
		return nil
	default:
		return fmt.Errorf("domain: unknown off-day scope %d", int(s))
	}
}

// OffDay is a special rest-day slot with a scope flag and weekly quotas.
type OffDay struct {
	ID         string
	Scope      OffDayScope
	MinPerWeek int
	MaxPerWeek int
}

// Day carries the set of valid duty and leave IDs for one calendar date;
// not every slot is valid every day.
type Day struct {
	Date     time.Time
	DutyIDs  []DutyID
	LeaveIDs []LeaveID
}

// NormalizeDate truncates a time to a UTC midnight calendar date so it can
// be used as a map key consistently across the model.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RequestKind is the slot type a Request refers to.
type RequestKind int

const (
	RequestDuty RequestKind = iota
	RequestLeave
	RequestShift
)

func (k RequestKind) String() string {
	switch k {
	case RequestDuty:
		return "Duty"
	case RequestLeave:
		return "Leave"
	case RequestShift:
		return "Shift"
	default:
		return fmt.Sprintf("RequestKind(%d)", int(k))
	}
}

// RequestStrategy says whether a request prefers (AFFIRM) or forbids
// (NEGATE) the referenced assignment.
type RequestStrategy int

const (
	StrategyAffirm RequestStrategy = iota
	StrategyNegate
)

func (s RequestStrategy) String() string {
	switch s {
	case StrategyAffirm:
		return "AFFIRM"
	case StrategyNegate:
		return "NEGATE"
	default:
		return fmt.Sprintf("RequestStrategy(%d)", int(s))
	}
}

// Request is a worker's preference or restriction against a specific
// dated slot.
type Request struct {
	ID       string
	Worker   WorkerID
	Date     time.Time
	SlotID   string
	Kind     RequestKind
	Strategy RequestStrategy
}

// Validate rejects a request with an unknown kind or strategy variant.
func (r Request) Validate() error {
	switch r.Kind {
	case RequestDuty, RequestLeave, RequestShift:
	default:
		return fmt.Errorf("domain: request %s: unknown kind %d", r.ID, int(r.Kind))
	}
	switch r.Strategy {
	case StrategyAffirm, StrategyNegate:
	default:
		return fmt.Errorf("domain: request %s: unknown strategy %d", r.ID, int(r.Strategy))
	}
	if r.Worker == "" {
		return fmt.Errorf("domain: request %s: empty worker", r.ID)
	}
	if r.SlotID == "" {
		return fmt.Errorf("domain: request %s: empty slot id", r.ID)
	}
	return nil
}

// TransitionRefType is the slot-type tag of one position in a transition
// rule's sequence.
type TransitionRefType int

const (
	RefDuty TransitionRefType = iota
	RefLeave
	RefShift
)

// TransitionRef is one typed, dated position in a transition rule's
// sequence. Only the first and last positions of a rule are ever read by
// the encoder — this is a deliberate, documented contract (see
// internal/transition), not an oversight.
type TransitionRef struct {
	Type      TransitionRefType
	ID        string
	DayOffset int
}

// TransitionStrategy controls how a pairwise transition is enforced.
type TransitionStrategy int

const (
	TransitionAlways TransitionStrategy = iota
	TransitionNever
	TransitionMin
	TransitionMax
)

func (s TransitionStrategy) String() string {
	switch s {
	case TransitionAlways:
		return "always"
	case TransitionNever:
		return "never"
	case TransitionMin:
		return "min"
	case TransitionMax:
		return "max"
	default:
		return fmt.Sprintf("TransitionStrategy(%d)", int(s))
	}
}

// TransitionRule links two dated slot references (the first and last
// elements of Sequence) with a strategy and a cost.
type TransitionRule struct {
	ID       string
	Sequence []TransitionRef
	Strategy TransitionStrategy
	Cost     int
}

// Validate rejects a rule with fewer than two sequence positions or an
// unknown strategy/ref-type variant, per the Design Notes requirement to
// reject unknown rule-config variants at construction time.
func (r TransitionRule) Validate() error {
	if len(r.Sequence) < 2 {
		return fmt.Errorf("domain: transition rule %s: sequence needs at least 2 positions, got %d", r.ID, len(r.Sequence))
	}
	switch r.Strategy {
	case TransitionAlways, TransitionNever, TransitionMin, TransitionMax:
	default:
		return fmt.Errorf("domain: transition rule %s: unknown strategy %d", r.ID, int(r.Strategy))
	}
	for _, ref := range []TransitionRef{r.Sequence[0], r.Sequence[len(r.Sequence)-1]} {
		switch ref.Type {
		case RefDuty, RefLeave, RefShift:
		default:
			return fmt.Errorf("domain: transition rule %s: unknown ref type %d", r.ID, int(ref.Type))
		}
	}
	return nil
}

// First returns the first position of the rule's sequence — the only
// positions the encoder reads are First() and Last().
func (r TransitionRule) First() TransitionRef { return r.Sequence[0] }

// Last returns the last position of the rule's sequence.
func (r TransitionRule) Last() TransitionRef { return r.Sequence[len(r.Sequence)-1] }

// SlotKindRef distinguishes a rule target that names a single duty from
// one that names a shift (expanded to its member duties).
type SlotKindRef int

const (
	SlotKindDuty SlotKindRef = iota
	SlotKindShift
)

func (k SlotKindRef) String() string {
	switch k {
	case SlotKindDuty:
		return "Duty"
	case SlotKindShift:
		return "Shift"
	default:
		return fmt.Sprintf("SlotKindRef(%d)", int(k))
	}
}

// Period is the bucketing window a SumRule is evaluated over.
type Period int

const (
	PeriodWeek Period = iota
	PeriodMonth
)

func (p Period) String() string {
	switch p {
	case PeriodWeek:
		return "WEEK"
	case PeriodMonth:
		return "MONTH"
	default:
		return fmt.Sprintf("Period(%d)", int(p))
	}
}

// SumRule bounds the cardinality of true assignments over a slot, for a
// worker, within a period bucket.
type SumRule struct {
	ID       string
	SlotID   string
	SlotKind SlotKindRef
	Period   Period
	HardMin  int
	SoftMin  int
	MinCost  int
	SoftMax  int
	HardMax  int
	MaxCost  int
}

// Validate rejects an unknown slot-kind or period variant, and bound
// orderings that can never be satisfied.
func (r SumRule) Validate() error {
	switch r.SlotKind {
	case SlotKindDuty, SlotKindShift:
	default:
		return fmt.Errorf("domain: sum rule %s: unknown slot kind %d", r.ID, int(r.SlotKind))
	}
	switch r.Period {
	case PeriodWeek, PeriodMonth:
	default:
		return fmt.Errorf("domain: sum rule %s: unknown period %d", r.ID, int(r.Period))
	}
	if r.HardMin > r.HardMax {
		return fmt.Errorf("domain: sum rule %s: hard_min %d > hard_max %d", r.ID, r.HardMin, r.HardMax)
	}
	return nil
}

// SequenceRule bounds the length of contiguous true-runs over a slot, for
// a worker. Same shape as SumRule but has no period: the encoder works
// over the full combined date range in one pass (spec §4.7).
type SequenceRule struct {
	ID       string
	SlotID   string
	SlotKind SlotKindRef
	HardMin  int
	SoftMin  int
	MinCost  int
	SoftMax  int
	HardMax  int
	MaxCost  int
}

// Validate mirrors SumRule.Validate, minus the period check.
func (r SequenceRule) Validate() error {
	switch r.SlotKind {
	case SlotKindDuty, SlotKindShift:
	default:
		return fmt.Errorf("domain: sequence rule %s: unknown slot kind %d", r.ID, int(r.SlotKind))
	}
	if r.HardMin > r.HardMax {
		return fmt.Errorf("domain: sequence rule %s: hard_min %d > hard_max %d", r.ID, r.HardMin, r.HardMax)
	}
	return nil
}

// TimeslotKind distinguishes a pinned prior-period or overridden-roster
// slot between Duty and Leave.
type TimeslotKind int

const (
	TimeslotDuty TimeslotKind = iota
	TimeslotLeave
)

// PriorTimeslot is one fact from the 14-day prior-period history: this
// worker held this slot on this date. Pinned verbatim into the model
// (invariant 5).
type PriorTimeslot struct {
	Worker WorkerID
	Date   time.Time
	SlotID string
	Kind   TimeslotKind
}

// SelectedRosterOverride forces every variable of Kind, for Worker and
// Date, to zero — used to exclude previously-accepted assignments from a
// re-solve.
type SelectedRosterOverride struct {
	Worker WorkerID
	Date   time.Time
	Kind   TimeslotKind
}
