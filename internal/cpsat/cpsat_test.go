package cpsat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoolVar_KeepsGivenNames(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	assert.Equal(t, "a", a.Name())
	assert.Equal(t, "b", b.Name())
}

func TestAddAtMostOne_SingleAssignmentFeasible(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddAtMostOne([]BoolVar{a, b})
	m.AddBoolEqual(a, 1)
	m.Minimize(nil)

	sol, status, err := m.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	assert.True(t, sol.Value(a))
	assert.False(t, sol.Value(b))
}

func TestAddBoolOr_ForcesAtLeastOneTrue(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddBoolOr([]Literal{a.Lit(), b.Lit()})
	m.AddBoolEqual(a, 0)
	m.Minimize(nil)

	sol, status, err := m.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	assert.True(t, sol.Value(b))
}

func TestAddImplication_PropagatesTrue(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddImplication(a, b)
	m.AddBoolEqual(a, 1)
	m.Minimize(nil)

	sol, status, err := m.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	assert.True(t, sol.Value(b))
}

func TestAddMaxEquality_PicksLargestOperand(t *testing.T) {
	m := NewModel()
	a := m.NewIntVar(0, 5, "a")
	b := m.NewIntVar(0, 5, "b")
	target := m.NewIntVar(0, 5, "max")
	m.AddMaxEquality(target, []IntVar{a, b})
	m.AddLinearEqual([]Term{{Var: a, Coeff: 1}}, 2)
	m.AddLinearEqual([]Term{{Var: b, Coeff: 1}}, 4)
	m.Minimize(nil)

	sol, status, err := m.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	assert.Equal(t, 4, sol.IntValue(target))
}

func TestAddMinEquality_PicksSmallestOperand(t *testing.T) {
	m := NewModel()
	a := m.NewIntVar(0, 5, "a")
	b := m.NewIntVar(0, 5, "b")
	target := m.NewIntVar(0, 5, "min")
	m.AddMinEquality(target, []IntVar{a, b})
	m.AddLinearEqual([]Term{{Var: a, Coeff: 1}}, 2)
	m.AddLinearEqual([]Term{{Var: b, Coeff: 1}}, 4)
	m.Minimize(nil)

	sol, status, err := m.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	assert.Equal(t, 2, sol.IntValue(target))
}

func TestAddReifiedAnd(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	target := m.NewBoolVar("target")
	m.AddReifiedAnd(target, a, b)
	m.AddBoolEqual(a, 1)
	m.AddBoolEqual(b, 1)
	m.Minimize(nil)

	sol, status, err := m.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	assert.True(t, sol.Value(target))
}
