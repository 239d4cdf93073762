// Package cpsat is a thin CP-SAT-shaped facade over a plain MIP backend
// (github.com/nextmv-io/sdk/mip). The spec this model builder implements
// assumes a solver offering Boolean/integer variables, reified linear
// constraints, Min/Max equalities, implications, Boolean-OR, and a minimize
// directive directly — the properties of OR-Tools' CP-SAT. A generic MIP
// solver only gives bounded variables and linear (in)equalities, so this
// package linearizes the CP-SAT-only primitives (AddBoolOr, AddImplication,
// AddMaxEquality, AddMinEquality) on top of mip.Model. Everything else in
// this module is written against this facade and never touches mip
// directly.
package cpsat

import (
	"fmt"
	"time"

	"github.com/nextmv-io/sdk/mip"
)

// Status mirrors the three-way result the spec's driver reports: solved to
// optimality, solved to a feasible (possibly suboptimal) incumbent, or no
// usable solution.
type Status string

const (
	StatusOptimal    Status = "OPTIMAL"
	StatusFeasible   Status = "FEASIBLE"
	StatusInfeasible Status = "INFEASIBLE"
)

// Var is implemented by BoolVar and IntVar so objective terms and
// constraint builders can treat both uniformly.
type Var interface {
	mipVar() mip.Var
	Name() string
}

// BoolVar is a 0/1 decision variable.
type BoolVar struct {
	v    mip.Bool
	name string
}

func (b BoolVar) mipVar() mip.Var { return b.v }

// Name returns the variable's debug label.
func (b BoolVar) Name() string { return b.name }

// Lit returns the non-negated literal form of this variable.
func (b BoolVar) Lit() Literal { return Literal{v: b} }

// Not returns the negated literal form of this variable.
func (b BoolVar) Not() Literal { return Literal{v: b, negated: true} }

// Literal is a possibly-negated reference to a BoolVar, used by AddBoolOr
// and the bounded-span clauses in internal/seqrule.
type Literal struct {
	v       BoolVar
	negated bool
}

// IntVar is a bounded integer-valued decision variable. Backed by a
// continuous mip.Float: every IntVar in this module is pinned by an
// equality constraint to an integer linear combination of BoolVars, so its
// value is integral at any solution regardless of the backend's own
// integrality bookkeeping.
type IntVar struct {
	v        mip.Float
	lo, hi   int
	name     string
}

func (i IntVar) mipVar() mip.Var { return i.v }

// Name returns the variable's debug label.
func (i IntVar) Name() string { return i.name }

// Term is a (variable, coefficient) pair contributing to the objective.
type Term struct {
	Var   Var
	Coeff float64
}

// Model owns the underlying MIP model plus a monotonic counter used to
// generate unique names for the selection booleans of AddMaxEquality and
// AddMinEquality. Other variables keep the name their caller passes.
type Model struct {
	m       mip.Model
	counter int
}

// NewModel creates an empty model with a minimize objective sense — every
// policy in this codebase only ever adds penalty (or negative-cost reward)
// terms to a single shared minimize directive (spec §4.12).
func NewModel() *Model {
	m := mip.NewModel()
	m.Objective().SetMinimize()
	return &Model{m: m}
}

func (c *Model) nextName(prefix string) string {
	c.counter++
	return fmt.Sprintf("%s#%d", prefix, c.counter)
}

// NewBoolVar creates a fresh Boolean decision variable.
func (c *Model) NewBoolVar(name string) BoolVar {
	return BoolVar{v: c.m.NewBool(), name: name}
}

// NewIntVar creates a fresh integer-valued variable bounded to [lo, hi].
func (c *Model) NewIntVar(lo, hi int, name string) IntVar {
	return IntVar{v: c.m.NewFloat(float64(lo), float64(hi)), lo: lo, hi: hi, name: name}
}

// AddBoolEqual hard-forces a BoolVar to a constant 0 or 1.
func (c *Model) AddBoolEqual(v BoolVar, val int) {
	cons := c.m.NewConstraint(mip.Equal, float64(val))
	cons.NewTerm(1, v.v)
}

// AddAtMostOne forces at most one of the given variables to be true.
func (c *Model) AddAtMostOne(vars []BoolVar) {
	if len(vars) == 0 {
		return
	}
	cons := c.m.NewConstraint(mip.LessThanOrEqual, 1)
	for _, v := range vars {
		cons.NewTerm(1, v.v)
	}
}

// AddBoolOr posts a clause: at least one of the literals must hold.
// Equivalent to CP-SAT's AddBoolOr. A literal x.Not() contributes -x to
// the sum, so the clause sum(non-negated) - sum(negated) >= 1 -
// (count of negated literals) is the linear form of "at least one literal
// is true"; the rhs must be known before the constraint is created (the
// backend takes its bound at construction time), so this does a first
// pass to count negations before posting any terms.
func (c *Model) AddBoolOr(lits []Literal) {
	if len(lits) == 0 {
		return
	}
	negatedCount := 0
	for _, l := range lits {
		if l.negated {
			negatedCount++
		}
	}

	cons := c.m.NewConstraint(mip.GreaterThanOrEqual, float64(1-negatedCount))
	for _, l := range lits {
		if l.negated {
			cons.NewTerm(-1, l.v.v)
		} else {
			cons.NewTerm(1, l.v.v)
		}
	}
}

// AddImplication posts a ⇒ b.
func (c *Model) AddImplication(a, b BoolVar) {
	cons := c.m.NewConstraint(mip.GreaterThanOrEqual, 0)
	cons.NewTerm(1, b.v)
	cons.NewTerm(-1, a.v)
}

// AddEqualToBoolSum constrains target == sum(vars): the hard bound on a
// soft-sum constraint's total (spec §4.6 step 1).
func (c *Model) AddEqualToBoolSum(target IntVar, vars []BoolVar) {
	cons := c.m.NewConstraint(mip.Equal, 0)
	cons.NewTerm(1, target.v)
	for _, v := range vars {
		cons.NewTerm(-1, v.v)
	}
}

// AddLinearEqual posts sum(coeff_i * var_i) == bound.
func (c *Model) AddLinearEqual(terms []Term, bound float64) {
	cons := c.m.NewConstraint(mip.Equal, bound)
	for _, t := range terms {
		cons.NewTerm(t.Coeff, t.Var.mipVar())
	}
}

// AddLinearUpperBound posts sum(coeff_i * var_i) <= bound.
func (c *Model) AddLinearUpperBound(terms []Term, bound float64) {
	cons := c.m.NewConstraint(mip.LessThanOrEqual, bound)
	for _, t := range terms {
		cons.NewTerm(t.Coeff, t.Var.mipVar())
	}
}

// AddLinearLowerBound posts sum(coeff_i * var_i) >= bound.
func (c *Model) AddLinearLowerBound(terms []Term, bound float64) {
	cons := c.m.NewConstraint(mip.GreaterThanOrEqual, bound)
	for _, t := range terms {
		cons.NewTerm(t.Coeff, t.Var.mipVar())
	}
}

// AddMaxEquality constrains target == max(vars) using a big-M
// linearization: target dominates every var, and a one-hot selection of
// binaries pins target to whichever var attains the max.
func (c *Model) AddMaxEquality(target IntVar, vars []IntVar) {
	if len(vars) == 0 {
		return
	}
	sel := make([]BoolVar, len(vars))
	oneHot := c.m.NewConstraint(mip.Equal, 1)
	for i, v := range vars {
		// target >= v
		ge := c.m.NewConstraint(mip.GreaterThanOrEqual, 0)
		ge.NewTerm(1, target.v)
		ge.NewTerm(-1, v.v)

		sel[i] = c.NewBoolVar(c.nextName(target.name + "_max_sel"))
		oneHot.NewTerm(1, sel[i].v)

		bigM := float64(target.hi - v.lo)
		// target <= v + bigM*(1 - sel) => target - v + bigM*sel <= bigM
		le := c.m.NewConstraint(mip.LessThanOrEqual, bigM)
		le.NewTerm(1, target.v)
		le.NewTerm(-1, v.v)
		le.NewTerm(bigM, sel[i].v)
	}
}

// AddMinEquality constrains target == min(vars), symmetric to
// AddMaxEquality.
func (c *Model) AddMinEquality(target IntVar, vars []IntVar) {
	if len(vars) == 0 {
		return
	}
	sel := make([]BoolVar, len(vars))
	oneHot := c.m.NewConstraint(mip.Equal, 1)
	for i, v := range vars {
		// target <= v
		le := c.m.NewConstraint(mip.LessThanOrEqual, 0)
		le.NewTerm(1, target.v)
		le.NewTerm(-1, v.v)

		sel[i] = c.NewBoolVar(c.nextName(target.name + "_min_sel"))
		oneHot.NewTerm(1, sel[i].v)

		bigM := float64(v.hi - target.lo)
		// target >= v - bigM*(1 - sel) => target - v - bigM*sel >= -bigM
		ge := c.m.NewConstraint(mip.GreaterThanOrEqual, -bigM)
		ge.NewTerm(1, target.v)
		ge.NewTerm(-1, v.v)
		ge.NewTerm(-bigM, sel[i].v)
	}
}

// AddReifiedAnd constrains target == a && b (a full two-sided reification,
// used to tie a transition-rule reward literal to both ends of the pair
// actually activating rather than leaving it a free-floating reward — see
// DESIGN.md's resolution of the "max" transition strategy).
func (c *Model) AddReifiedAnd(target, a, b BoolVar) {
	le1 := c.m.NewConstraint(mip.LessThanOrEqual, 0)
	le1.NewTerm(1, target.v)
	le1.NewTerm(-1, a.v)

	le2 := c.m.NewConstraint(mip.LessThanOrEqual, 0)
	le2.NewTerm(1, target.v)
	le2.NewTerm(-1, b.v)

	ge := c.m.NewConstraint(mip.GreaterThanOrEqual, -1)
	ge.NewTerm(1, target.v)
	ge.NewTerm(-1, a.v)
	ge.NewTerm(-1, b.v)
}

// Minimize installs the given weighted terms as the (only) objective.
// Called once, per spec §4.12.
func (c *Model) Minimize(terms []Term) {
	obj := c.m.Objective()
	for _, t := range terms {
		obj.NewTerm(t.Coeff, t.Var.mipVar())
	}
}

// Solution is a read-only value assignment produced by Solve.
type Solution struct {
	sol mip.Solution
}

// Value reads a BoolVar's assigned value.
func (s Solution) Value(v BoolVar) bool {
	if s.sol == nil {
		return false
	}
	return s.sol.Value(v.v) >= 0.5
}

// IntValue reads an IntVar's assigned value, rounded to the nearest
// integer.
func (s Solution) IntValue(v IntVar) int {
	if s.sol == nil {
		return 0
	}
	f := s.sol.Value(v.v)
	if f >= 0 {
		return int(f + 0.5)
	}
	return int(f - 0.5)
}

// ObjectiveValue returns the objective value of the solution.
func (s Solution) ObjectiveValue() float64 {
	if s.sol == nil {
		return 0
	}
	return s.sol.ObjectiveValue()
}

// Solve invokes the backing MIP solver with an optional wall-clock limit
// (zero means no limit) and maps its result to the three-way status the
// driver reports (spec §4.13, §7).
func (c *Model) Solve(limit time.Duration) (Solution, Status, error) {
	opts := mip.NewSolveOptions()
	if limit > 0 {
		if err := opts.SetMaximumDuration(limit); err != nil {
			return Solution{}, StatusInfeasible, fmt.Errorf("cpsat: set solve time limit: %w", err)
		}
	}

	solver, err := mip.NewSolver(mip.Highs, c.m)
	if err != nil {
		return Solution{}, StatusInfeasible, fmt.Errorf("cpsat: create solver: %w", err)
	}

	solution, err := solver.Solve(opts)
	if err != nil {
		return Solution{}, StatusInfeasible, fmt.Errorf("cpsat: solve: %w", err)
	}

	switch {
	case solution.IsOptimal():
		return Solution{sol: solution}, StatusOptimal, nil
	case solution.IsSubOptimal():
		return Solution{sol: solution}, StatusFeasible, nil
	default:
		return Solution{}, StatusInfeasible, nil
	}
}
