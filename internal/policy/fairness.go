package policy

import (
	"fmt"

	"github.com/Shiftrdw/hukm-scheduling/internal/calendar"
	"github.com/Shiftrdw/hukm-scheduling/internal/catalog"
	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/store"
)

// Fairness penalizes the spread between the worker who holds slot the
// most and the worker who holds it the least, over the full calendar —
// grounded on fairness_allocation, which computes each worker's total
// count for a slot and minimizes the max-min gap across workers so duty
// load stays balanced. slot may name a single duty or a shift (expanded
// to member duties, counted together).
func Fairness(model *cpsat.Model, st *store.Store, cat *catalog.Catalog, cal *calendar.Calendar, slotKind domain.SlotKindRef, slotID string, workers []domain.WorkerID, weight int, label string) ([]cpsat.Term, error) {
	var slots []string
	if slotKind == domain.SlotKindDuty {
		slots = []string{slotID}
	} else {
		for _, d := range cat.DutiesInShift(domain.ShiftID(slotID)) {
			slots = append(slots, string(d))
		}
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("policy: fairness %s: slot %q resolves to no duties", label, slotID)
	}

	dates := cal.AllDates()
	upper := len(dates) * len(slots)

	totals := make([]cpsat.IntVar, len(workers))
	for i, w := range workers {
		var vars []cpsat.BoolVar
		for _, d := range dates {
			for _, slot := range slots {
				vars = append(vars, st.EnsureDutyVars(w, d, domain.DutyID(slot)))
			}
		}
		total := model.NewIntVar(0, upper, fmt.Sprintf("%s_total_%s", label, w))
		model.AddEqualToBoolSum(total, vars)
		totals[i] = total
	}

	if len(totals) == 0 {
		return nil, nil
	}

	maxVar := model.NewIntVar(0, upper, label+"_max")
	minVar := model.NewIntVar(0, upper, label+"_min")
	model.AddMaxEquality(maxVar, totals)
	model.AddMinEquality(minVar, totals)

	spread := model.NewIntVar(0, upper, label+"_spread")
	model.AddLinearEqual([]cpsat.Term{{Var: spread, Coeff: 1}, {Var: maxVar, Coeff: -1}, {Var: minVar, Coeff: 1}}, 0)

	return []cpsat.Term{{Var: spread, Coeff: float64(weight)}}, nil
}
