// Package objective is the objective accumulator (spec C9): collects the
// weighted penalty/reward terms every encoder and policy produces and
// installs them as the model's single minimize directive. The original
// kept separate Boolean-literal and integer-variable penalty buckets;
// spec §9's Design Notes call for unifying them, which this package does
// by accepting cpsat.Term directly (cpsat.Var abstracts over both
// BoolVar and IntVar already).
package objective

import "github.com/Shiftrdw/hukm-scheduling/internal/cpsat"

// Accumulator collects weighted objective terms from every constraint
// family before a single Install call wires them into the model.
type Accumulator struct {
	terms []cpsat.Term
}

// New creates an empty accumulator.
func New() *Accumulator {
	return &Accumulator{}
}

// Add appends terms to the accumulator. Safe to call with a nil or empty
// slice (every encoder function returns one, including when it posted no
// soft constraints).
func (a *Accumulator) Add(terms []cpsat.Term) {
	a.terms = append(a.terms, terms...)
}

// AddVar appends a single (var, coeff) term.
func (a *Accumulator) AddVar(v cpsat.Var, coeff float64) {
	a.terms = append(a.terms, cpsat.Term{Var: v, Coeff: coeff})
}

// Len reports how many terms have been accumulated.
func (a *Accumulator) Len() int { return len(a.terms) }

// Terms returns a copy of the accumulated terms.
func (a *Accumulator) Terms() []cpsat.Term {
	out := make([]cpsat.Term, len(a.terms))
	copy(out, a.terms)
	return out
}

// Install installs every accumulated term as model's minimize objective.
// Called exactly once per build (spec §4.12).
func (a *Accumulator) Install(model *cpsat.Model) {
	model.Minimize(a.terms)
}
