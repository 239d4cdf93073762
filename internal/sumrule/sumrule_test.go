package sumrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
)

func TestAddSoftSum_RejectsInvertedHardBounds(t *testing.T) {
	model := cpsat.NewModel()
	works := []cpsat.BoolVar{model.NewBoolVar("a")}
	_, err := AddSoftSum(model, works, 5, 0, 0, 0, 1, 0, "t")
	assert.Error(t, err)
}

func TestAddSoftSum_ExceedingHardMaxInfeasible(t *testing.T) {
	model := cpsat.NewModel()
	works := []cpsat.BoolVar{model.NewBoolVar("a"), model.NewBoolVar("b"), model.NewBoolVar("c")}
	terms, err := AddSoftSum(model, works, 1, 0, 0, 0, 2, 0, "t")
	require.NoError(t, err)
	assert.Empty(t, terms)

	model.AddBoolEqual(works[0], 1)
	model.AddBoolEqual(works[1], 1)
	model.AddBoolEqual(works[2], 1)
	model.Minimize(nil)

	_, status, err := model.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, cpsat.StatusInfeasible, status)
}

func TestAddSoftSum_SoftMinProducesPenaltyTerm(t *testing.T) {
	model := cpsat.NewModel()
	works := []cpsat.BoolVar{model.NewBoolVar("a"), model.NewBoolVar("b")}
	terms, err := AddSoftSum(model, works, 0, 1, 10, 2, 2, 0, "t")
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, float64(10), terms[0].Coeff)
}
