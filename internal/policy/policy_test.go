package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shiftrdw/hukm-scheduling/internal/calendar"
	"github.com/Shiftrdw/hukm-scheduling/internal/catalog"
	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
	"github.com/Shiftrdw/hukm-scheduling/internal/demand"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/store"
)

func testFixtures(t *testing.T) (*catalog.Catalog, *calendar.Calendar) {
	t.Helper()
	cat, err := catalog.New(
		[]domain.Worker{{ID: "w1", Role: "senior"}, {ID: "w2", Role: "junior"}},
		[]domain.Shift{{ID: "AM"}},
		[]domain.Duty{
			{ID: "AM1", ShiftID: "AM", RequiredRoles: map[domain.RoleID]struct{}{"senior": {}}},
		},
		nil,
		[]domain.OffDay{{ID: "DO", Scope: domain.OffDayDaily, MinPerWeek: 0, MaxPerWeek: 1}},
	)
	require.NoError(t, err)

	cal, err := calendar.New(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 7)
	require.NoError(t, err)

	return cat, cal
}

func TestExclusivity_AtMostOneSlotPerDay(t *testing.T) {
	model := cpsat.NewModel()
	st := store.New(model)
	cat, cal := testFixtures(t)

	Exclusivity(model, st, cat, cal, []domain.WorkerID{"w1"}, []string{"DO"})

	day := cal.AllDates()[0]
	duty, _ := st.Lookup(store.Key{Worker: "w1", Date: day, Kind: store.SlotDuty, SlotID: "AM1"})
	off, _ := st.Lookup(store.Key{Worker: "w1", Date: day, Kind: store.SlotOffDay, SlotID: "DO"})

	model.AddBoolEqual(duty, 1)
	model.AddBoolEqual(off, 1)
	model.Minimize(nil)

	_, status, err := model.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, cpsat.StatusInfeasible, status)
}

func TestMatchWorkerRoleHard_ForcesIneligibleToZero(t *testing.T) {
	model := cpsat.NewModel()
	st := store.New(model)
	cat, cal := testFixtures(t)

	MatchWorkerRoleHard(model, st, cat, cal, cat.Workers)

	day := cal.AllDates()[0]
	v, ok := st.Lookup(store.Key{Worker: "w2", Date: day, Kind: store.SlotDuty, SlotID: "AM1"})
	require.True(t, ok)
	model.AddBoolEqual(v, 1)
	model.Minimize(nil)

	_, status, err := model.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, cpsat.StatusInfeasible, status)
}

func TestCoverage_EnforcesMinHeadcount(t *testing.T) {
	model := cpsat.NewModel()
	st := store.New(model)
	cat, cal := testFixtures(t)
	table := demand.NewTable()
	day := cal.AllDates()[0]
	require.NoError(t, table.Set(day, "AM1", demand.MinMax{Min: 1, Max: 1}))

	Coverage(model, st, cat, cal, table, []domain.WorkerID{"w1"}, nil)

	v, ok := st.Lookup(store.Key{Worker: "w1", Date: day, Kind: store.SlotDuty, SlotID: "AM1"})
	require.True(t, ok)
	model.AddBoolEqual(v, 0)
	model.Minimize(nil)

	_, status, err := model.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, cpsat.StatusInfeasible, status)
}

func TestPopulateRequests_NegateForcesZero(t *testing.T) {
	model := cpsat.NewModel()
	st := store.New(model)
	cat, _ := testFixtures(t)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	reqs := []domain.Request{
		{ID: "r1", Worker: "w1", Date: day, SlotID: "AM1", Kind: domain.RequestDuty, Strategy: domain.StrategyNegate},
	}
	terms, err := PopulateRequests(st, cat, reqs, -50, []string{"DO"}, nil)
	require.NoError(t, err)
	assert.Empty(t, terms)

	v, ok := st.Lookup(store.Key{Worker: "w1", Date: day, Kind: store.SlotDuty, SlotID: "AM1"})
	require.True(t, ok)
	model.AddBoolEqual(v, 1)
	model.Minimize(nil)

	_, status, err := model.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, cpsat.StatusInfeasible, status)
}

func TestPopulateRequests_AffirmProducesRewardTerm(t *testing.T) {
	model := cpsat.NewModel()
	st := store.New(model)
	cat, _ := testFixtures(t)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	reqs := []domain.Request{
		{ID: "r1", Worker: "w1", Date: day, SlotID: "AM1", Kind: domain.RequestDuty, Strategy: domain.StrategyAffirm},
	}
	terms, err := PopulateRequests(st, cat, reqs, -50, []string{"DO"}, nil)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, float64(-50), terms[0].Coeff)
}

func TestPopulateRequests_ShiftAffirmZeroesOtherDutiesAndOffDay(t *testing.T) {
	model := cpsat.NewModel()
	st := store.New(model)
	cat, err := catalog.New(
		[]domain.Worker{{ID: "w1", Role: "senior"}},
		[]domain.Shift{{ID: "AM"}, {ID: "PM"}},
		[]domain.Duty{
			{ID: "AM1", ShiftID: "AM"},
			{ID: "PM1", ShiftID: "PM"},
		},
		nil,
		[]domain.OffDay{{ID: "DO", Scope: domain.OffDayDaily, MaxPerWeek: 1}},
	)
	require.NoError(t, err)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	reqs := []domain.Request{
		{ID: "r1", Worker: "w1", Date: day, SlotID: "AM", Kind: domain.RequestShift, Strategy: domain.StrategyAffirm},
	}
	terms, err := PopulateRequests(st, cat, reqs, -50, []string{"DO"}, nil)
	require.NoError(t, err)
	require.Len(t, terms, 1, "only the shift's own duty (AM1) should produce a reward term")

	pm1, ok := st.Lookup(store.Key{Worker: "w1", Date: day, Kind: store.SlotDuty, SlotID: "PM1"})
	require.True(t, ok)

	model.AddBoolEqual(pm1, 1)
	model.Minimize(nil)
	_, status, err := model.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, cpsat.StatusInfeasible, status, "other_duties must be hard-zeroed")

	model2 := cpsat.NewModel()
	st2 := store.New(model2)
	_, err = PopulateRequests(st2, cat, reqs, -50, []string{"DO"}, nil)
	require.NoError(t, err)
	off2, ok := st2.Lookup(store.Key{Worker: "w1", Date: day, Kind: store.SlotOffDay, SlotID: "DO"})
	require.True(t, ok)
	model2.AddBoolEqual(off2, 1)
	model2.Minimize(nil)
	_, status2, err := model2.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, cpsat.StatusInfeasible, status2, "the off-day variable must be hard-zeroed")
}

func TestPopulateRequests_ShiftNegateLeavesOtherDutiesFree(t *testing.T) {
	model := cpsat.NewModel()
	st := store.New(model)
	cat, err := catalog.New(
		[]domain.Worker{{ID: "w1", Role: "senior"}},
		[]domain.Shift{{ID: "AM"}, {ID: "PM"}},
		[]domain.Duty{
			{ID: "AM1", ShiftID: "AM"},
			{ID: "PM1", ShiftID: "PM"},
		},
		nil,
		[]domain.OffDay{{ID: "DO", Scope: domain.OffDayDaily, MaxPerWeek: 1}},
	)
	require.NoError(t, err)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	reqs := []domain.Request{
		{ID: "r1", Worker: "w1", Date: day, SlotID: "AM", Kind: domain.RequestShift, Strategy: domain.StrategyNegate},
	}
	terms, err := PopulateRequests(st, cat, reqs, -50, []string{"DO"}, nil)
	require.NoError(t, err)
	assert.Empty(t, terms)

	am1, ok := st.Lookup(store.Key{Worker: "w1", Date: day, Kind: store.SlotDuty, SlotID: "AM1"})
	require.True(t, ok)
	model.AddBoolEqual(am1, 1)
	model.Minimize(nil)
	_, status, err := model.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, cpsat.StatusInfeasible, status, "the shift's own duty must be hard-zeroed")

	model2 := cpsat.NewModel()
	st2 := store.New(model2)
	st2.EnsureDutyVars("w1", day, "PM1")
	_, err = PopulateRequests(st2, cat, reqs, -50, []string{"DO"}, nil)
	require.NoError(t, err)
	pm1, ok := st2.Lookup(store.Key{Worker: "w1", Date: day, Kind: store.SlotDuty, SlotID: "PM1"})
	require.True(t, ok)
	model2.AddBoolEqual(pm1, 1)
	model2.Minimize(nil)
	_, status2, err := model2.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, cpsat.StatusOptimal, status2, "other_duties must stay free")
}

func TestApplyOffDayPolicy_QuotaEnforcesMax(t *testing.T) {
	model := cpsat.NewModel()
	st := store.New(model)
	_, cal := testFixtures(t)
	offDay := domain.OffDay{ID: "DO", Scope: domain.OffDayDaily, MaxPerWeek: 0}

	terms, err := ApplyOffDayPolicy(model, st, cal, offDay, []domain.WorkerID{"w1"}, OffDayQuota, 0)
	require.NoError(t, err)
	assert.Empty(t, terms)

	day := cal.AllDates()[0]
	v, ok := st.Lookup(store.Key{Worker: "w1", Date: day, Kind: store.SlotOffDay, SlotID: "DO"})
	require.True(t, ok)
	model.AddBoolEqual(v, 1)
	model.Minimize(nil)

	_, status, err := model.Solve(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, cpsat.StatusInfeasible, status)
}
