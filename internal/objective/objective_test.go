package objective

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
)

func TestAccumulator_AddAndInstall(t *testing.T) {
	model := cpsat.NewModel()
	a := New()
	v1 := model.NewBoolVar("a")
	v2 := model.NewBoolVar("b")

	a.AddVar(v1, 2)
	a.Add([]cpsat.Term{{Var: v2, Coeff: 3}})
	assert.Equal(t, 2, a.Len())

	a.Install(model)
	assert.Len(t, a.Terms(), 2)
}

func TestAccumulator_AddNilIsNoop(t *testing.T) {
	a := New()
	a.Add(nil)
	assert.Equal(t, 0, a.Len())
}
