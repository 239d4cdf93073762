package policy

import (
	"fmt"

	"github.com/Shiftrdw/hukm-scheduling/internal/calendar"
	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/store"
)

// OffDayPolicy selects how a worker's off-day allocation is governed.
// Supplemental feature (spec §4.5 + Design Notes): the original's
// create_offdays/number_off_day_per_worker_per_roster pairs a hard
// min/max quota with minimize_off_days/maximize_off_days as *separate,
// mutually-exclusive* alternatives rather than all three applying at
// once — see DESIGN.md.
type OffDayPolicy int

const (
	// OffDayQuota enforces OffDay.MinPerWeek/MaxPerWeek as hard bounds per
	// bucket. Default.
	OffDayQuota OffDayPolicy = iota
	// OffDayMinimize drops the hard quota and instead returns weighted
	// terms penalizing each off-day. roster.Build adds them to the same
	// minimize objective as every other penalty; no separate objective is
	// installed.
	OffDayMinimize
	// OffDayMaximize is the mirror of OffDayMinimize, maximizing (by
	// minimizing the negation) the off-day count.
	OffDayMaximize
)

// ApplyOffDayPolicy posts the off-day bound or objective for offDay across
// every worker, bucketed per offDay.Scope (spec §4.5, supplemented by §3's
// OffDayPolicy alternatives). For OffDayQuota it returns no terms — the
// bound is hard. For OffDayMinimize/OffDayMaximize it returns one weighted
// term per off-day variable and posts no bound; roster.Build folds these
// terms into the shared minimize alongside the other penalties.
func ApplyOffDayPolicy(model *cpsat.Model, st *store.Store, cal *calendar.Calendar, offDay domain.OffDay, workers []domain.WorkerID, policyKind OffDayPolicy, weight int) ([]cpsat.Term, error) {
	buckets, err := cal.BucketsForScope(offDay.Scope)
	if err != nil {
		return nil, fmt.Errorf("policy: off-day %s: %w", offDay.ID, err)
	}

	var terms []cpsat.Term
	for _, bucket := range buckets {
		for _, w := range workers {
			var vars []cpsat.BoolVar
			for _, d := range bucket {
				vars = append(vars, st.EnsureOffDayVars(w, d, offDay.ID))
			}
			if len(vars) == 0 {
				continue
			}

			switch policyKind {
			case OffDayQuota:
				termList := make([]cpsat.Term, len(vars))
				for i, v := range vars {
					termList[i] = cpsat.Term{Var: v, Coeff: 1}
				}
				if offDay.MinPerWeek > 0 {
					model.AddLinearLowerBound(termList, float64(offDay.MinPerWeek))
				}
				model.AddLinearUpperBound(termList, float64(offDay.MaxPerWeek))

			case OffDayMinimize:
				for _, v := range vars {
					terms = append(terms, cpsat.Term{Var: v, Coeff: float64(weight)})
				}

			case OffDayMaximize:
				for _, v := range vars {
					terms = append(terms, cpsat.Term{Var: v, Coeff: -float64(weight)})
				}

			default:
				return nil, fmt.Errorf("policy: off-day %s: unknown policy kind %d", offDay.ID, int(policyKind))
			}
		}
	}
	return terms, nil
}
