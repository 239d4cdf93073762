// Package catalog is the scenario catalog (spec C1): the closed universe
// of workers, roles, shifts, duties, leaves, and off-day definitions a
// build is allowed to reference. New rejects duplicate IDs and duties
// naming an unknown shift. Worker and slot IDs named by demand cells,
// rules, requests, and prior timeslots are not checked against the
// Catalog.
package catalog

import (
	"fmt"

	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
)

// Catalog is the closed universe of entities a build references.
type Catalog struct {
	Workers []domain.Worker
	Shifts  []domain.Shift
	Duties  []domain.Duty
	Leaves  []domain.Leave
	OffDays []domain.OffDay

	workerIdx  map[domain.WorkerID]domain.Worker
	shiftIdx   map[domain.ShiftID]domain.Shift
	dutyIdx    map[domain.DutyID]domain.Duty
	leaveIdx   map[domain.LeaveID]domain.Leave
	offDayIdx  map[string]domain.OffDay
	dutyShift  map[domain.ShiftID][]domain.DutyID
}

// New builds a Catalog from its constituent entity lists, validating that
// every duty's ShiftID resolves and every ID within each list is unique.
func New(workers []domain.Worker, shifts []domain.Shift, duties []domain.Duty, leaves []domain.Leave, offDays []domain.OffDay) (*Catalog, error) {
	c := &Catalog{
		Workers:   workers,
		Shifts:    shifts,
		Duties:    duties,
		Leaves:    leaves,
		OffDays:   offDays,
		workerIdx: make(map[domain.WorkerID]domain.Worker, len(workers)),
		shiftIdx:  make(map[domain.ShiftID]domain.Shift, len(shifts)),
		dutyIdx:   make(map[domain.DutyID]domain.Duty, len(duties)),
		leaveIdx:  make(map[domain.LeaveID]domain.Leave, len(leaves)),
		offDayIdx: make(map[string]domain.OffDay, len(offDays)),
		dutyShift: make(map[domain.ShiftID][]domain.DutyID),
	}

	for _, w := range workers {
		if _, dup := c.workerIdx[w.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate worker id %q", w.ID)
		}
		c.workerIdx[w.ID] = w
	}
	for _, sh := range shifts {
		if _, dup := c.shiftIdx[sh.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate shift id %q", sh.ID)
		}
		c.shiftIdx[sh.ID] = sh
	}
	for _, d := range duties {
		if _, dup := c.dutyIdx[d.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate duty id %q", d.ID)
		}
		if _, ok := c.shiftIdx[d.ShiftID]; !ok {
			return nil, fmt.Errorf("catalog: duty %q references unknown shift %q", d.ID, d.ShiftID)
		}
		c.dutyIdx[d.ID] = d
		c.dutyShift[d.ShiftID] = append(c.dutyShift[d.ShiftID], d.ID)
	}
	for _, l := range leaves {
		if _, dup := c.leaveIdx[l.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate leave id %q", l.ID)
		}
		c.leaveIdx[l.ID] = l
	}
	for _, o := range offDays {
		if err := domain.ValidOffDayScope(o.Scope); err != nil {
			return nil, fmt.Errorf("catalog: off-day %q: %w", o.ID, err)
		}
		if _, dup := c.offDayIdx[o.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate off-day id %q", o.ID)
		}
		c.offDayIdx[o.ID] = o
	}

	return c, nil
}

// Worker resolves a worker ID, reporting whether it exists.
func (c *Catalog) Worker(id domain.WorkerID) (domain.Worker, bool) {
	w, ok := c.workerIdx[id]
	return w, ok
}

// Duty resolves a duty ID, reporting whether it exists.
func (c *Catalog) Duty(id domain.DutyID) (domain.Duty, bool) {
	d, ok := c.dutyIdx[id]
	return d, ok
}

// Leave resolves a leave ID, reporting whether it exists.
func (c *Catalog) Leave(id domain.LeaveID) (domain.Leave, bool) {
	l, ok := c.leaveIdx[id]
	return l, ok
}

// OffDay resolves an off-day ID, reporting whether it exists.
func (c *Catalog) OffDay(id string) (domain.OffDay, bool) {
	o, ok := c.offDayIdx[id]
	return o, ok
}

// DutiesInShift returns the duty IDs belonging to shift, in catalog
// insertion order — used to expand a shift-kind transition or sum-rule
// reference to its member duties (spec §4.7/§4.8 SlotKindShift handling).
func (c *Catalog) DutiesInShift(shift domain.ShiftID) []domain.DutyID {
	ids := c.dutyShift[shift]
	out := make([]domain.DutyID, len(ids))
	copy(out, ids)
	return out
}

// DutiesNotInShift returns every duty ID NOT belonging to shift, in
// catalog insertion order — the "other_duties" set a Shift-kind AFFIRM
// request hard-excludes (spec §4.9).
func (c *Catalog) DutiesNotInShift(shift domain.ShiftID) []domain.DutyID {
	in := make(map[domain.DutyID]struct{}, len(c.dutyShift[shift]))
	for _, id := range c.dutyShift[shift] {
		in[id] = struct{}{}
	}
	var out []domain.DutyID
	for _, d := range c.Duties {
		if _, ok := in[d.ID]; !ok {
			out = append(out, d.ID)
		}
	}
	return out
}

// RoleEligible reports whether a worker of the given role may be assigned
// the named duty.
func (c *Catalog) RoleEligible(duty domain.DutyID, role domain.RoleID) bool {
	d, ok := c.dutyIdx[duty]
	if !ok {
		return false
	}
	return d.RoleEligible(role)
}

// WithDummyWorkers returns a new Catalog with n dummy workers per role in
// roles appended (a worker can only carry one role per domain.Worker, so
// n*len(roles) dummies are added, one per role-assignment). Mirrors the original's make_it_flexible: slack workers
// used to diagnose which hard constraints are the real blockers on an
// infeasible build. Never part of the default build path.
func (c *Catalog) WithDummyWorkers(n int, roles []domain.RoleID) (*Catalog, error) {
	workers := make([]domain.Worker, len(c.Workers))
	copy(workers, c.Workers)
	for i := 0; i < n; i++ {
		for _, role := range roles {
			workers = append(workers, domain.Worker{
				ID:   domain.WorkerID(fmt.Sprintf("__dummy_%d_%s", i, role)),
				Role: role,
			})
		}
	}
	return New(workers, c.Shifts, c.Duties, c.Leaves, c.OffDays)
}
