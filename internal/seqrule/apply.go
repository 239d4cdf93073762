package seqrule

import (
	"fmt"

	"github.com/Shiftrdw/hukm-scheduling/internal/calendar"
	"github.com/Shiftrdw/hukm-scheduling/internal/catalog"
	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/store"
)

// slotIDs mirrors sumrule's shift-expansion behavior for a SequenceRule's
// target.
func slotIDs(cat *catalog.Catalog, rule domain.SequenceRule) []string {
	if rule.SlotKind == domain.SlotKindDuty {
		return []string{rule.SlotID}
	}
	duties := cat.DutiesInShift(domain.ShiftID(rule.SlotID))
	out := make([]string, len(duties))
	for i, d := range duties {
		out[i] = string(d)
	}
	return out
}

// Apply posts rule for every worker over the calendar's full combined date
// range (no period bucketing — spec §4.7 works over the whole span in one
// pass) and returns the combined weighted penalty terms across workers.
// When a rule targets a shift with more than one member duty, each duty is
// encoded as an independent run — a worker's run of consecutive AM shifts
// and consecutive PM shifts are distinct sequences, matching the original
// calling the encoder once per concrete duty column.
func Apply(model *cpsat.Model, st *store.Store, cat *catalog.Catalog, cal *calendar.Calendar, rule domain.SequenceRule, workers []domain.WorkerID) ([]cpsat.Term, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	slots := slotIDs(cat, rule)
	if len(slots) == 0 {
		return nil, fmt.Errorf("seqrule: rule %s: slot %q resolves to no duties", rule.ID, rule.SlotID)
	}

	dates := cal.AllDates()
	var allTerms []cpsat.Term
	for _, slot := range slots {
		for _, w := range workers {
			works := make([]cpsat.BoolVar, len(dates))
			for i, d := range dates {
				works[i] = st.Ensure(store.Key{
					Worker: w,
					Date:   domain.NormalizeDate(d),
					Kind:   store.SlotDuty,
					SlotID: slot,
				})
			}
			label := fmt.Sprintf("seq_%s_%s_%s", rule.ID, w, slot)
			terms := AddSoftSequence(model, works, rule.HardMin, rule.SoftMin, rule.MinCost, rule.SoftMax, rule.HardMax, rule.MaxCost, label)
			allTerms = append(allTerms, terms...)
		}
	}
	return allTerms, nil
}
