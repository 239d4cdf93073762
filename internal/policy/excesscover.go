package policy

import (
	"github.com/Shiftrdw/hukm-scheduling/internal/calendar"
	"github.com/Shiftrdw/hukm-scheduling/internal/catalog"
	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
	"github.com/Shiftrdw/hukm-scheduling/internal/demand"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/store"
)

// ExcessCoverConfig controls the per-duty excess-cover penalty weight
// (spec §4.10, supplemented per §3.1): the original's flat default is
// overridden per-duty via the Overrides table, mirroring
// excess_cover_penalties = (2, 2, 5) for (AM, PM, N).
type ExcessCoverConfig struct {
	Default   int
	Overrides map[domain.DutyID]int
}

// weightFor resolves the excess-cover penalty weight for duty.
func (c ExcessCoverConfig) weightFor(duty domain.DutyID) int {
	if c.Overrides != nil {
		if w, ok := c.Overrides[duty]; ok {
			return w
		}
	}
	return c.Default
}

// ExcessCover penalizes headcount over a duty's demand-table minimum on
// each date — spec §4.10: excess := sum(assigned) - min, penalized at
// cfg's per-duty weight. A duty/date with no demand cell is skipped (no
// minimum to measure excess against). Grounded on excess_covers.
func ExcessCover(model *cpsat.Model, st *store.Store, cat *catalog.Catalog, cal *calendar.Calendar, table *demand.Table, workers []domain.WorkerID, cfg ExcessCoverConfig) []cpsat.Term {
	var terms []cpsat.Term
	for _, d := range cal.AllDates() {
		for _, duty := range cat.Duties {
			mm, ok := table.Get(d, duty.ID)
			if !ok {
				continue
			}
			weight := cfg.weightFor(duty.ID)
			if weight <= 0 {
				continue
			}

			var vars []cpsat.BoolVar
			for _, w := range workers {
				vars = append(vars, st.EnsureDutyVars(w, d, duty.ID))
			}
			n := len(vars)

			sum := model.NewIntVar(0, n, "excess_sum_"+string(duty.ID)+"_"+d.Format("2006-01-02"))
			model.AddEqualToBoolSum(sum, vars)

			delta := model.NewIntVar(-n, n, "excess_delta_"+string(duty.ID)+"_"+d.Format("2006-01-02"))
			model.AddLinearEqual([]cpsat.Term{{Var: delta, Coeff: 1}, {Var: sum, Coeff: -1}}, float64(-mm.Min))

			zero := model.NewIntVar(0, 0, "excess_zero_"+string(duty.ID)+"_"+d.Format("2006-01-02"))
			excess := model.NewIntVar(0, n, "excess_"+string(duty.ID)+"_"+d.Format("2006-01-02"))
			model.AddMaxEquality(excess, []cpsat.IntVar{delta, zero})

			terms = append(terms, cpsat.Term{Var: excess, Coeff: float64(weight)})
		}
	}
	return terms
}
