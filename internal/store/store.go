// Package store is the variable store (spec C4): the single authority
// mapping (worker, date, slot) triples to the cpsat.BoolVar deciding
// whether that worker holds that slot on that date. Every encoder package
// (sumrule, seqrule, transition, policy) reads variables through
// this store rather than creating or caching its own, so "does this
// variable exist" has exactly one answer.
package store

import (
	"fmt"
	"time"

	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
)

// SlotKind distinguishes the three variable families the original kept in
// separate dicts (duty, leave, off-day) before this store unified them
// under one key shape.
type SlotKind int

const (
	SlotDuty SlotKind = iota
	SlotLeave
	SlotOffDay
)

func (k SlotKind) String() string {
	switch k {
	case SlotDuty:
		return "duty"
	case SlotLeave:
		return "leave"
	case SlotOffDay:
		return "offday"
	default:
		return fmt.Sprintf("SlotKind(%d)", int(k))
	}
}

// Key identifies one assignment variable: a worker holding a slot of a
// given kind on a given date.
type Key struct {
	Worker domain.WorkerID
	Date   time.Time
	Kind   SlotKind
	SlotID string
}

// Store owns every assignment BoolVar created for a build, keyed by Key.
// Variable creation order is the store's insertion order, never map
// iteration order, so two builds over identical input produce identical
// models (spec §5 determinism requirement).
type Store struct {
	model *cpsat.Model
	vars  map[Key]cpsat.BoolVar
	order []Key
}

// New creates an empty store bound to model — all variables the store
// creates are created against this model.
func New(model *cpsat.Model) *Store {
	return &Store{
		model: model,
		vars:  make(map[Key]cpsat.BoolVar),
	}
}

// Ensure returns the BoolVar for key, creating it (in a fresh cpsat
// variable) the first time it is requested. Safe to call redundantly —
// later callers just get the same variable back.
func (s *Store) Ensure(key Key) cpsat.BoolVar {
	if v, ok := s.vars[key]; ok {
		return v
	}
	name := fmt.Sprintf("x[%s,%s,%s,%s]", key.Worker, key.Date.Format("2006-01-02"), key.Kind, key.SlotID)
	v := s.model.NewBoolVar(name)
	s.vars[key] = v
	s.order = append(s.order, key)
	return v
}

// Lookup returns the variable for key without creating it. The bool
// result reports whether the variable exists.
func (s *Store) Lookup(key Key) (cpsat.BoolVar, bool) {
	v, ok := s.vars[key]
	return v, ok
}

// Keys returns every key in creation order. Used by the roster decoder,
// which walks variables in a stable order.
func (s *Store) Keys() []Key {
	out := make([]Key, len(s.order))
	copy(out, s.order)
	return out
}

// EnsureDutyVars creates (or fetches) the variables for worker holding
// duty on date.
func (s *Store) EnsureDutyVars(worker domain.WorkerID, date time.Time, duty domain.DutyID) cpsat.BoolVar {
	return s.Ensure(Key{Worker: worker, Date: domain.NormalizeDate(date), Kind: SlotDuty, SlotID: string(duty)})
}

// EnsureLeaveVars creates (or fetches) the variable for worker holding
// leave on date.
func (s *Store) EnsureLeaveVars(worker domain.WorkerID, date time.Time, leave domain.LeaveID) cpsat.BoolVar {
	return s.Ensure(Key{Worker: worker, Date: domain.NormalizeDate(date), Kind: SlotLeave, SlotID: string(leave)})
}

// EnsureOffDayVars creates (or fetches) the off-day variable for worker
// on date, scoped by offDayID (distinguishing e.g. weekday vs weekend
// off-day pools when more than one off-day definition exists).
func (s *Store) EnsureOffDayVars(worker domain.WorkerID, date time.Time, offDayID string) cpsat.BoolVar {
	return s.Ensure(Key{Worker: worker, Date: domain.NormalizeDate(date), Kind: SlotOffDay, SlotID: offDayID})
}

// EnsurePriorVars pins a 14-day prior-period fact into the store as a
// hard-forced-true variable (invariant 5: prior-period history is
// immutable and pinned verbatim). Returns the pinned variable.
func (s *Store) EnsurePriorVars(t domain.PriorTimeslot) cpsat.BoolVar {
	kind := SlotDuty
	if t.Kind == domain.TimeslotLeave {
		kind = SlotLeave
	}
	key := Key{Worker: t.Worker, Date: domain.NormalizeDate(t.Date), Kind: kind, SlotID: t.SlotID}
	v := s.Ensure(key)
	s.model.AddBoolEqual(v, 1)
	return v
}

// ForceZero hard-forces an existing or newly-created variable to 0 — used
// by selected-roster overrides to exclude previously-accepted assignments
// from a re-solve.
func (s *Store) ForceZero(key Key) cpsat.BoolVar {
	v := s.Ensure(key)
	s.model.AddBoolEqual(v, 0)
	return v
}
