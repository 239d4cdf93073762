package policy

import (
	"log"

	"github.com/Shiftrdw/hukm-scheduling/internal/calendar"
	"github.com/Shiftrdw/hukm-scheduling/internal/catalog"
	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
	"github.com/Shiftrdw/hukm-scheduling/internal/demand"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/store"
)

// Coverage posts, for every date and every duty that has a demand-table
// cell, hard min/max headcount bounds over the workers assigned that duty
// that day (spec §4.3). A duty/date with no demand cell is left
// unconstrained rather than defaulting to some implicit band, logged via
// logger so a missing cell is visible rather than silently permissive.
func Coverage(model *cpsat.Model, st *store.Store, cat *catalog.Catalog, cal *calendar.Calendar, table *demand.Table, workers []domain.WorkerID, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	for _, d := range cal.AllDates() {
		for _, duty := range cat.Duties {
			mm, ok := table.Get(d, duty.ID)
			if !ok {
				logger.Printf("policy: coverage: no demand cell for %s/%s, left unconstrained", d.Format("2006-01-02"), duty.ID)
				continue
			}
			var vars []cpsat.BoolVar
			for _, w := range workers {
				vars = append(vars, st.EnsureDutyVars(w, d, duty.ID))
			}
			terms := make([]cpsat.Term, len(vars))
			for i, v := range vars {
				terms[i] = cpsat.Term{Var: v, Coeff: 1}
			}
			if mm.Min > 0 {
				model.AddLinearLowerBound(terms, float64(mm.Min))
			}
			model.AddLinearUpperBound(terms, float64(mm.Max))
		}
	}
}
