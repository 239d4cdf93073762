package sumrule

import (
	"fmt"
	"time"

	"github.com/Shiftrdw/hukm-scheduling/internal/calendar"
	"github.com/Shiftrdw/hukm-scheduling/internal/catalog"
	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/store"
)

// slotIDs resolves a SumRule's target to the concrete duty IDs it
// ranges over: a single duty slot, or every duty belonging to a shift when
// SlotKind is SlotKindShift (spec §4.7's "shift-kind references expand to
// member duties").
func slotIDs(cat *catalog.Catalog, rule domain.SumRule) []string {
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

// buckets partitions dates into the period windows rule.Period names:
// consecutive 7-day weeks, or the whole calendar as one month-scale bucket.
func buckets(cal *calendar.Calendar, period domain.Period) [][]time.Time {
	if period == domain.PeriodWeek {
		return cal.WeekChunks()
	}
	return [][]time.Time{cal.AllDates()}
}

// Apply posts rule for every worker over every period bucket of cal,
// reading assignment variables from st (creating them if a variable for a
// referenced slot/date has not been touched yet) and returns the combined
// weighted penalty terms across all workers and buckets.
func Apply(model *cpsat.Model, st *store.Store, cat *catalog.Catalog, cal *calendar.Calendar, rule domain.SumRule, workers []domain.WorkerID) ([]cpsat.Term, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	slots := slotIDs(cat, rule)
	if len(slots) == 0 {
		return nil, fmt.Errorf("sumrule: rule %s: slot %q resolves to no duties", rule.ID, rule.SlotID)
	}

	var allTerms []cpsat.Term
	for _, bucket := range buckets(cal, rule.Period) {
		for _, w := range workers {
			var works []cpsat.BoolVar
			for _, d := range bucket {
				for _, slot := range slots {
					works = append(works, st.Ensure(store.Key{
						Worker: w,
						Date:   domain.NormalizeDate(d),
						Kind:   store.SlotDuty,
						SlotID: slot,
					}))
				}
			}
			if len(works) == 0 {
				continue
			}
			label := fmt.Sprintf("sum_%s_%s_%s", rule.ID, w, bucket[0].Format("2006-01-02"))
			terms, err := AddSoftSum(model, works, rule.HardMin, rule.SoftMin, rule.MinCost, rule.SoftMax, rule.HardMax, rule.MaxCost, label)
			if err != nil {
				return nil, fmt.Errorf("sumrule: worker %s: %w", w, err)
			}
			allTerms = append(allTerms, terms...)
		}
	}
	return allTerms, nil
}
