// Package seqrule is the sequence-constraint encoder (spec C6): bounds
// the length of contiguous true-runs a worker may hold over a slot across
// the full combined date range, forbidding runs shorter than a hard
// minimum or longer than a hard maximum, and penalizing runs that fall
// outside a softer interior band. Grounded on the original's
// negated_bounded_span + add_soft_sequence_constraint (utils.py).
package seqrule

import "github.com/Shiftrdw/hukm-scheduling/internal/cpsat"

// negatedBoundedSpan builds the clause that forbids a maximal true-run of
// exactly `length` starting at `start`: the literals immediately before
// and after the run (if they exist) must not both be false while every
// position inside the run is true — expressed as a single BoolOr over the
// negation of the run plus the two boundary literals, per the OR-Tools
// idiom this was translated from.
func negatedBoundedSpan(works []cpsat.BoolVar, start, length int) []cpsat.Literal {
	var span []cpsat.Literal
	if start > 0 {
		span = append(span, works[start-1].Lit())
	}
	for i := 0; i < length; i++ {
		span = append(span, works[start+i].Not())
	}
	if start+length < len(works) {
		span = append(span, works[start+length].Lit())
	}
	return span
}

// AddSoftSequence posts the hard run-length bounds on works and, when
// soft_min/soft_max carve out a softer interior band, a fresh penalty
// literal per violating window. Returns the weighted penalty terms to fold
// into the shared objective — mirrors add_soft_sequence_constraint 1:1,
// including its window bound `len(works) - length + 1` and its final
// "just forbid length hard_max+1" loop, which is a single plain negation
// clause over each length-(hard_max+1) window rather than another
// negatedBoundedSpan pass.
func AddSoftSequence(model *cpsat.Model, works []cpsat.BoolVar, hardMin, softMin, minCost, softMax, hardMax, maxCost int, label string) []cpsat.Term {
	n := len(works)
	var terms []cpsat.Term

	for length := 1; length < hardMin; length++ {
		for start := 0; start < n-length+1; start++ {
			model.AddBoolOr(negatedBoundedSpan(works, start, length))
		}
	}

	if minCost > 0 {
		for length := hardMin; length < softMin; length++ {
			for start := 0; start < n-length+1; start++ {
				span := negatedBoundedSpan(works, start, length)
				lit := model.NewBoolVar(label + "_min_pen")
				span = append(span, lit.Lit())
				model.AddBoolOr(span)
				terms = append(terms, cpsat.Term{Var: lit, Coeff: float64(minCost * (softMin - length))})
			}
		}
	}

	if maxCost > 0 {
		for length := softMax + 1; length <= hardMax; length++ {
			for start := 0; start < n-length+1; start++ {
				span := negatedBoundedSpan(works, start, length)
				lit := model.NewBoolVar(label + "_max_pen")
				span = append(span, lit.Lit())
				model.AddBoolOr(span)
				terms = append(terms, cpsat.Term{Var: lit, Coeff: float64(maxCost * (length - softMax))})
			}
		}
	}

	// Just forbid any run of true variables with length hard_max + 1: a
	// plain negation over the window, not a negatedBoundedSpan (no
	// boundary literals — a run longer still contains this forbidden
	// sub-window).
	for start := 0; start < n-hardMax; start++ {
		var lits []cpsat.Literal
		for i := start; i < start+hardMax+1; i++ {
			lits = append(lits, works[i].Not())
		}
		model.AddBoolOr(lits)
	}

	return terms
}
