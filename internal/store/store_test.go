package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
)

func TestEnsure_IsIdempotent(t *testing.T) {
	model := cpsat.NewModel()
	st := New(model)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	v1 := st.EnsureDutyVars("w1", day, "AM")
	v2 := st.EnsureDutyVars("w1", day, "AM")
	assert.Equal(t, v1, v2)
	assert.Len(t, st.Keys(), 1)
}

func TestLookup_ReportsAbsence(t *testing.T) {
	model := cpsat.NewModel()
	st := New(model)
	_, ok := st.Lookup(Key{Worker: "w1", Kind: SlotDuty, SlotID: "AM"})
	assert.False(t, ok)
}

func TestEnsurePriorVars_PinsToKey(t *testing.T) {
	model := cpsat.NewModel()
	st := New(model)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	v := st.EnsurePriorVars(domain.PriorTimeslot{Worker: "w1", Date: day, SlotID: "AM", Kind: domain.TimeslotDuty})
	got, ok := st.Lookup(Key{Worker: "w1", Date: domain.NormalizeDate(day), Kind: SlotDuty, SlotID: "AM"})
	require.True(t, ok)
	assert.Equal(t, v, got)
}

func TestKeys_PreservesCreationOrder(t *testing.T) {
	model := cpsat.NewModel()
	st := New(model)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	st.EnsureDutyVars("w2", day, "PM")
	st.EnsureDutyVars("w1", day, "AM")

	keys := st.Keys()
	require.Len(t, keys, 2)
	assert.Equal(t, domain.WorkerID("w2"), keys[0].Worker)
	assert.Equal(t, domain.WorkerID("w1"), keys[1].Worker)
}
