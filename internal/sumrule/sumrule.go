// Package sumrule is the sum-constraint encoder (spec C5): bounds how many
// times, within a period bucket, a worker may hold a given slot, with hard
// floor/ceiling constraints and soft penalties for falling short of a
// preferred minimum or exceeding a preferred maximum. Grounded on the
// original's add_soft_sum_constraint helper (utils.py /
// jadualortools-checkpoint.py sum_constraint).
package sumrule

import (
	"fmt"

	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
)

// AddSoftSum posts the hard min/max bound on sum(works) and, when
// soft_min/soft_max carve out a softer interior band, reified excess
// variables penalized in the objective. Returns the weighted penalty terms
// to fold into the shared objective (spec §4.12) — this function never
// installs the objective itself.
//
// Matches the original 1:1: hard_min <= sum(works) <= hard_max always;
// a min-side penalty of min_cost * max(soft_min - sum, 0) when soft_min >
// hard_min and min_cost > 0; a max-side penalty of max_cost * max(sum -
// soft_max, 0) when soft_max < hard_max and max_cost > 0.
func AddSoftSum(model *cpsat.Model, works []cpsat.BoolVar, hardMin, softMin, minCost, softMax, hardMax, maxCost int, label string) ([]cpsat.Term, error) {
	n := len(works)
	if hardMin > hardMax {
		return nil, fmt.Errorf("sumrule: %s: hard_min %d > hard_max %d", label, hardMin, hardMax)
	}

	sumVar := model.NewIntVar(0, n, label+"_sum")
	model.AddEqualToBoolSum(sumVar, works)

	model.AddLinearLowerBound([]cpsat.Term{{Var: sumVar, Coeff: 1}}, float64(hardMin))
	model.AddLinearUpperBound([]cpsat.Term{{Var: sumVar, Coeff: 1}}, float64(hardMax))

	var terms []cpsat.Term

	if softMin > hardMin && minCost > 0 {
		delta := model.NewIntVar(-n, n, label+"_min_delta")
		// delta == softMin - sum  <=>  delta + sum == softMin
		model.AddLinearEqual([]cpsat.Term{{Var: delta, Coeff: 1}, {Var: sumVar, Coeff: 1}}, float64(softMin))

		zero := model.NewIntVar(0, 0, label+"_zero")
		excess := model.NewIntVar(0, n, label+"_min_excess")
		model.AddMaxEquality(excess, []cpsat.IntVar{delta, zero})

		terms = append(terms, cpsat.Term{Var: excess, Coeff: float64(minCost)})
	}

	if softMax < hardMax && maxCost > 0 {
		delta := model.NewIntVar(-n, n, label+"_max_delta")
		// delta == sum - softMax  <=>  delta - sum == -softMax
		model.AddLinearEqual([]cpsat.Term{{Var: delta, Coeff: 1}, {Var: sumVar, Coeff: -1}}, float64(-softMax))

		zero := model.NewIntVar(0, 0, label+"_zero2")
		excess := model.NewIntVar(0, n, label+"_max_excess")
		model.AddMaxEquality(excess, []cpsat.IntVar{delta, zero})

		terms = append(terms, cpsat.Term{Var: excess, Coeff: float64(maxCost)})
	}

	return terms, nil
}
