package policy

import (
	"github.com/Shiftrdw/hukm-scheduling/internal/calendar"
	"github.com/Shiftrdw/hukm-scheduling/internal/catalog"
	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/store"
)

// MatchWorkerRoleHard hard-forces a worker's duty variable to zero on
// every date a duty's required-role set excludes the worker's role —
// spec §4.4's default policy. Mirrors match_worker_role_and_shift (hard
// variant).
func MatchWorkerRoleHard(model *cpsat.Model, st *store.Store, cat *catalog.Catalog, cal *calendar.Calendar, workers []domain.Worker) {
	for _, w := range workers {
		for _, duty := range cat.Duties {
			if duty.RoleEligible(w.Role) {
				continue
			}
			for _, d := range cal.AllDates() {
				v := st.EnsureDutyVars(w.ID, d, duty.ID)
				model.AddBoolEqual(v, 0)
			}
		}
	}
}

// MatchWorkerRoleSoft penalizes, for every role-ineligible (worker, duty)
// pairing on every date, the assignment variable itself at cost instead of
// forcing it to zero (no separate indicator variable is created), and
// returns the weighted penalty terms for the caller to fold into the
// objective. Supplemental feature: spec §4.4 names this variant as
// "specified but optional"; not used by the default policy set.
func MatchWorkerRoleSoft(model *cpsat.Model, st *store.Store, cat *catalog.Catalog, cal *calendar.Calendar, workers []domain.Worker, cost int) []cpsat.Term {
	var terms []cpsat.Term
	for _, w := range workers {
		for _, duty := range cat.Duties {
			if duty.RoleEligible(w.Role) {
				continue
			}
			for _, d := range cal.AllDates() {
				v := st.EnsureDutyVars(w.ID, d, duty.ID)
				// Mismatch indicator == v: assigning this worker to this
				// duty always constitutes the mismatch, so the indicator
				// can be the assignment variable itself, penalized
				// directly rather than hard-forced to zero.
				terms = append(terms, cpsat.Term{Var: v, Coeff: float64(cost)})
			}
		}
	}
	return terms
}
