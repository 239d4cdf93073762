// Package transition is the transition encoder (spec C7): links a pair of
// dated slot references — the first and last positions of a
// domain.TransitionRule's Sequence — across every worker and every
// applicable date, enforcing or penalizing the pairing per the rule's
// strategy. Grounded on the original's iterate_rules_for_each_worker /
// generate_transition_rules_model (jadualortools-checkpoint.py), but
// follows spec §4.8's clean offset formula literally rather than the
// original's counter-summing, and reifies the "max" strategy's reward so
// it is tied to the pair actually activating (see DESIGN.md).
package transition

import (
	"fmt"
	"time"

	"github.com/Shiftrdw/hukm-scheduling/internal/calendar"
	"github.com/Shiftrdw/hukm-scheduling/internal/catalog"
	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/store"
)

// refSlots resolves one TransitionRef to the concrete slot IDs and store
// kind it refers to — expanding a shift reference to its member duties,
// same convention as sumrule/seqrule.
func refSlots(cat *catalog.Catalog, ref domain.TransitionRef) ([]string, store.SlotKind) {
	switch ref.Type {
	case domain.RefLeave:
		return []string{ref.ID}, store.SlotLeave
	case domain.RefShift:
		duties := cat.DutiesInShift(domain.ShiftID(ref.ID))
		out := make([]string, len(duties))
		for i, d := range duties {
			out[i] = string(d)
		}
		return out, store.SlotDuty
	default: // domain.RefDuty
		return []string{ref.ID}, store.SlotDuty
	}
}

// Apply posts rule for every worker across the calendar, reading the
// prev/next assignment variables at the offsets named by the rule's first
// and last sequence positions (spec §4.8: prev_var = x[w, d+d0, prev_slot];
// next_var = x[w, d+dk, next_slot]). Dates whose offset pairs fall outside
// the calendar are silently skipped — a pairing can only ever be posted
// for dates where both ends exist. Returns the weighted reward/penalty
// terms to fold into the shared objective.
func Apply(model *cpsat.Model, st *store.Store, cat *catalog.Catalog, cal *calendar.Calendar, rule domain.TransitionRule, workers []domain.WorkerID) ([]cpsat.Term, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	first := rule.First()
	last := rule.Last()
	prevSlots, prevKind := refSlots(cat, first)
	nextSlots, nextKind := refSlots(cat, last)
	if len(prevSlots) == 0 || len(nextSlots) == 0 {
		return nil, fmt.Errorf("transition: rule %s: empty slot expansion", rule.ID)
	}

	dateIndex := make(map[time.Time]int)
	dates := cal.AllDates()
	for i, d := range dates {
		dateIndex[d] = i
	}

	var terms []cpsat.Term
	for _, w := range workers {
		for _, d := range dates {
			prevDate := d.AddDate(0, 0, first.DayOffset)
			nextDate := d.AddDate(0, 0, last.DayOffset)
			if _, ok := dateIndex[domain.NormalizeDate(prevDate)]; !ok {
				continue
			}
			if _, ok := dateIndex[domain.NormalizeDate(nextDate)]; !ok {
				continue
			}

			for _, prevSlot := range prevSlots {
				prevVar, ok := st.Lookup(store.Key{Worker: w, Date: domain.NormalizeDate(prevDate), Kind: prevKind, SlotID: prevSlot})
				if !ok {
					prevVar = st.Ensure(store.Key{Worker: w, Date: domain.NormalizeDate(prevDate), Kind: prevKind, SlotID: prevSlot})
				}
				for _, nextSlot := range nextSlots {
					nextVar, ok := st.Lookup(store.Key{Worker: w, Date: domain.NormalizeDate(nextDate), Kind: nextKind, SlotID: nextSlot})
					if !ok {
						nextVar = st.Ensure(store.Key{Worker: w, Date: domain.NormalizeDate(nextDate), Kind: nextKind, SlotID: nextSlot})
					}

					label := fmt.Sprintf("trans_%s_%s_%s", rule.ID, w, d.Format("2006-01-02"))
					t := applyPair(model, rule, prevVar, nextVar, label)
					terms = append(terms, t...)
				}
			}
		}
	}
	return terms, nil
}

// applyPair posts the strategy-specific constraint/penalty for one
// (prev, next) variable pair and returns any objective terms it produced.
func applyPair(model *cpsat.Model, rule domain.TransitionRule, prev, next cpsat.BoolVar, label string) []cpsat.Term {
	switch rule.Strategy {
	case domain.TransitionAlways:
		// prev => next: holding the first slot hard-requires holding the last.
		model.AddImplication(prev, next)
		return nil

	case domain.TransitionNever:
		// not(prev and next): the pair may never both hold.
		model.AddBoolOr([]cpsat.Literal{prev.Not(), next.Not()})
		return nil

	case domain.TransitionMin:
		// Soft: penalize holding prev without following through to next —
		// violated := prev AND NOT next.
		notNext := model.NewBoolVar(label + "_not_next")
		model.AddLinearEqual([]cpsat.Term{{Var: notNext, Coeff: 1}, {Var: next, Coeff: 1}}, 1)

		violated := model.NewBoolVar(label + "_min_violated")
		model.AddReifiedAnd(violated, prev, notNext)
		return []cpsat.Term{{Var: violated, Coeff: float64(rule.Cost)}}

	case domain.TransitionMax:
		// Soft: reward the pair actually activating — activated := prev AND next.
		activated := model.NewBoolVar(label + "_max_activated")
		model.AddReifiedAnd(activated, prev, next)
		return []cpsat.Term{{Var: activated, Coeff: -float64(rule.Cost)}}

	default:
		return nil
	}
}
