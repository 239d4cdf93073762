package policy

import (
	"fmt"
	"log"

	"github.com/Shiftrdw/hukm-scheduling/internal/catalog"
	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/store"
)

// slotKindForRequest maps a request's target kind to the store's variable
// kind.
func slotKindForRequest(kind domain.RequestKind) store.SlotKind {
	switch kind {
	case domain.RequestLeave:
		return store.SlotLeave
	default: // RequestDuty, RequestShift
		return store.SlotDuty
	}
}

// PopulateRequests posts every worker preference/restriction request
// against the store.
//
// Non-Shift kinds: a StrategyNegate request hard-forbids the referenced
// assignment; a StrategyAffirm request contributes a reward term
// (affirmWeight, conventionally negative) rather than hard-forcing the
// assignment true.
//
// Shift kinds expand to the shift's member duties ("duties") and every
// other duty in the catalog ("other_duties", catalog.DutiesNotInShift):
// AFFIRM hard-zeros every other_duty and the worker's off-day variable on
// that date (committing the worker to some duty within the requested
// shift), then affirms each of the shift's own duties exactly as the
// non-Shift AFFIRM case does; NEGATE hard-zeros each of the shift's own
// duties and leaves other_duties free — matching
// parse_shift_requests_to_model_format/populate_requests (spec §4.9).
//
// A request whose (worker, date, slot) variable is not in the store yet
// gets that variable created, even when the calendar or catalog does not
// carry it; no request is skipped. Each posting runs under bestEffort, but
// none of these closures returns an error, so nothing is logged.
func PopulateRequests(st *store.Store, cat *catalog.Catalog, requests []domain.Request, affirmWeight int, offDayIDs []string, logger *log.Logger) ([]cpsat.Term, error) {
	var terms []cpsat.Term
	for _, req := range requests {
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("policy: request %s: %w", req.ID, err)
		}

		if req.Kind == domain.RequestShift {
			terms = append(terms, applyShiftRequest(st, cat, req, affirmWeight, offDayIDs, logger)...)
			continue
		}

		key := store.Key{Worker: req.Worker, Date: domain.NormalizeDate(req.Date), Kind: slotKindForRequest(req.Kind), SlotID: req.SlotID}
		label := fmt.Sprintf("request_%s_%s", req.ID, req.SlotID)
		switch req.Strategy {
		case domain.StrategyNegate:
			bestEffort(logger, label, func() error {
				st.ForceZero(key)
				return nil
			})
		case domain.StrategyAffirm:
			bestEffort(logger, label, func() error {
				terms = append(terms, affirmTerm(st, key, affirmWeight))
				return nil
			})
		}
	}
	return terms, nil
}

// applyShiftRequest implements the Shift-kind branch of spec §4.9.
func applyShiftRequest(st *store.Store, cat *catalog.Catalog, req domain.Request, affirmWeight int, offDayIDs []string, logger *log.Logger) []cpsat.Term {
	date := domain.NormalizeDate(req.Date)
	shiftID := domain.ShiftID(req.SlotID)
	duties := cat.DutiesInShift(shiftID)
	otherDuties := cat.DutiesNotInShift(shiftID)

	var terms []cpsat.Term
	switch req.Strategy {
	case domain.StrategyAffirm:
		for _, d := range otherDuties {
			label := fmt.Sprintf("request_%s_other_%s", req.ID, d)
			bestEffort(logger, label, func() error {
				st.ForceZero(store.Key{Worker: req.Worker, Date: date, Kind: store.SlotDuty, SlotID: string(d)})
				return nil
			})
		}
		for _, offDayID := range offDayIDs {
			label := fmt.Sprintf("request_%s_offday_%s", req.ID, offDayID)
			bestEffort(logger, label, func() error {
				st.ForceZero(store.Key{Worker: req.Worker, Date: date, Kind: store.SlotOffDay, SlotID: offDayID})
				return nil
			})
		}
		for _, d := range duties {
			key := store.Key{Worker: req.Worker, Date: date, Kind: store.SlotDuty, SlotID: string(d)}
			label := fmt.Sprintf("request_%s_%s", req.ID, d)
			bestEffort(logger, label, func() error {
				terms = append(terms, affirmTerm(st, key, affirmWeight))
				return nil
			})
		}

	case domain.StrategyNegate:
		for _, d := range duties {
			key := store.Key{Worker: req.Worker, Date: date, Kind: store.SlotDuty, SlotID: string(d)}
			label := fmt.Sprintf("request_%s_%s", req.ID, d)
			bestEffort(logger, label, func() error {
				st.ForceZero(key)
				return nil
			})
		}
	}
	return terms
}

// affirmTerm returns the weighted reward term for an honored AFFIRM
// request, creating the variable first if it doesn't already exist.
func affirmTerm(st *store.Store, key store.Key, affirmWeight int) cpsat.Term {
	v := st.Ensure(key)
	return cpsat.Term{Var: v, Coeff: float64(affirmWeight)}
}
