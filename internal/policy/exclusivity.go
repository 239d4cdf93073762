package policy

import (
	"github.com/Shiftrdw/hukm-scheduling/internal/calendar"
	"github.com/Shiftrdw/hukm-scheduling/internal/catalog"
	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/store"
)

// Exclusivity posts, for every worker and every date, "at most one of
// {every duty, every leave, the off-day} may be true" — invariant 2: a
// worker holds at most one slot per day. Mirrors
// one_worker_one_shift/one_worker_one_shift_duty.
func Exclusivity(model *cpsat.Model, st *store.Store, cat *catalog.Catalog, cal *calendar.Calendar, workers []domain.WorkerID, offDayIDs []string) {
	for _, w := range workers {
		for _, d := range cal.AllDates() {
			var vars []cpsat.BoolVar
			for _, duty := range cat.Duties {
				vars = append(vars, st.EnsureDutyVars(w, d, duty.ID))
			}
			for _, leave := range cat.Leaves {
				vars = append(vars, st.EnsureLeaveVars(w, d, leave.ID))
			}
			for _, offDay := range offDayIDs {
				vars = append(vars, st.EnsureOffDayVars(w, d, offDay))
			}
			model.AddAtMostOne(vars)
		}
	}
}
