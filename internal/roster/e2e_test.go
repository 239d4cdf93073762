package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shiftrdw/hukm-scheduling/internal/calendar"
	"github.com/Shiftrdw/hukm-scheduling/internal/catalog"
	"github.com/Shiftrdw/hukm-scheduling/internal/demand"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/policy"
)

// End-to-end scenarios covering the seed properties of a build: role
// eligibility, off-day quotas, sum-rule weekly caps, sequence-rule
// consecutive-run limits, transition never-pairing, and excess-cover
// penalization trading off against coverage slack.

func scenarioCatalog(t *testing.T, offDays []domain.OffDay) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		[]domain.Worker{
			{ID: "nurse_senior", Role: "senior"},
			{ID: "nurse_junior_1", Role: "junior"},
			{ID: "nurse_junior_2", Role: "junior"},
		},
		[]domain.Shift{{ID: "AM"}, {ID: "PM"}},
		[]domain.Duty{
			{ID: "AM1", ShiftID: "AM", RequiredRoles: map[domain.RoleID]struct{}{"senior": {}}},
			{ID: "PM1", ShiftID: "PM"},
		},
		nil,
		offDays,
	)
	require.NoError(t, err)
	return cat
}

func flatDemand(t *testing.T, cal *calendar.Calendar, minMax demand.MinMax, duties ...domain.DutyID) *demand.Table {
	t.Helper()
	table := demand.NewTable()
	for _, d := range cal.AllDates() {
		for _, duty := range duties {
			require.NoError(t, table.Set(d, duty, minMax))
		}
	}
	return table
}

// 1. Role eligibility is a hard constraint: the senior-only duty is never
// assigned to a junior worker in the decoded result.
func TestE2E_RoleEligibilityHoldsAcrossSolution(t *testing.T) {
	cat := scenarioCatalog(t, []domain.OffDay{{ID: "DO", Scope: domain.OffDayDaily, MaxPerWeek: 7}})
	cal, err := calendar.New(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 7)
	require.NoError(t, err)
	table := flatDemand(t, cal, demand.MinMax{Min: 1, Max: 1}, "AM1", "PM1")

	result, err := Build(Input{Catalog: cat, Calendar: cal, Demand: table}, DefaultConfig())
	require.NoError(t, err)
	require.NotEqual(t, StatusInfeasible, result.Status)

	for _, rec := range result.Assignments {
		if rec.SlotID == "AM1" {
			assert.Equal(t, domain.WorkerID("nurse_senior"), rec.Worker)
		}
	}
}

// 2. Off-day quota is respected: with MaxPerWeek 0, no worker is ever
// assigned the off-day slot.
func TestE2E_OffDayQuotaZeroMaxForbidsOffDays(t *testing.T) {
	cat := scenarioCatalog(t, []domain.OffDay{{ID: "DO", Scope: domain.OffDayDaily, MaxPerWeek: 0}})
	cal, err := calendar.New(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 7)
	require.NoError(t, err)
	table := flatDemand(t, cal, demand.MinMax{Min: 0, Max: 3}, "AM1", "PM1")

	result, err := Build(Input{Catalog: cat, Calendar: cal, Demand: table}, DefaultConfig())
	require.NoError(t, err)
	require.NotEqual(t, StatusInfeasible, result.Status)

	for _, rec := range result.Assignments {
		assert.NotEqual(t, "DO", rec.SlotID)
	}
}

// 3. Sum-rule weekly cap: a worker never exceeds hard_max occurrences of
// a duty within a single 7-day bucket.
func TestE2E_SumRuleWeeklyCapEnforced(t *testing.T) {
	cat := scenarioCatalog(t, []domain.OffDay{{ID: "DO", Scope: domain.OffDayDaily, MaxPerWeek: 7}})
	cal, err := calendar.New(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 7)
	require.NoError(t, err)
	table := flatDemand(t, cal, demand.MinMax{Min: 0, Max: 1}, "PM1")

	rule := domain.SumRule{
		ID: "pm_weekly_cap", SlotID: "PM1", SlotKind: domain.SlotKindDuty, Period: domain.PeriodWeek,
		HardMin: 0, HardMax: 2,
	}
	result, err := Build(Input{Catalog: cat, Calendar: cal, Demand: table, SumRules: []domain.SumRule{rule}}, DefaultConfig())
	require.NoError(t, err)
	require.NotEqual(t, StatusInfeasible, result.Status)

	counts := make(map[domain.WorkerID]int)
	for _, rec := range result.Assignments {
		if rec.SlotID == "PM1" {
			counts[rec.Worker]++
		}
	}
	for w, c := range counts {
		assert.LessOrEqual(t, c, 2, "worker %s", w)
	}
}

// 4. Sequence-rule consecutive-run limit: a worker never holds more than
// hard_max consecutive days of a duty.
func TestE2E_SequenceRuleConsecutiveRunLimit(t *testing.T) {
	cat := scenarioCatalog(t, []domain.OffDay{{ID: "DO", Scope: domain.OffDayDaily, MaxPerWeek: 7}})
	cal, err := calendar.New(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 10)
	require.NoError(t, err)
	table := flatDemand(t, cal, demand.MinMax{Min: 0, Max: 1}, "PM1")

	rule := domain.SequenceRule{ID: "pm_consec", SlotID: "PM1", SlotKind: domain.SlotKindDuty, HardMin: 0, HardMax: 3}
	result, err := Build(Input{Catalog: cat, Calendar: cal, Demand: table, SequenceRules: []domain.SequenceRule{rule}}, DefaultConfig())
	require.NoError(t, err)
	require.NotEqual(t, StatusInfeasible, result.Status)

	byWorker := make(map[domain.WorkerID]map[time.Time]bool)
	for _, rec := range result.Assignments {
		if rec.SlotID != "PM1" {
			continue
		}
		if byWorker[rec.Worker] == nil {
			byWorker[rec.Worker] = make(map[time.Time]bool)
		}
		byWorker[rec.Worker][rec.Date] = true
	}
	for w, days := range byWorker {
		run := 0
		for _, d := range cal.AllDates() {
			if days[d] {
				run++
				assert.LessOrEqual(t, run, 3, "worker %s date %s", w, d)
			} else {
				run = 0
			}
		}
	}
}

// 5. Transition never: a worker who holds PM1 never holds AM1 the
// following day.
func TestE2E_TransitionNeverForbidsPMThenAM(t *testing.T) {
	cat := scenarioCatalog(t, []domain.OffDay{{ID: "DO", Scope: domain.OffDayDaily, MaxPerWeek: 7}})
	cal, err := calendar.New(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 7)
	require.NoError(t, err)
	table := flatDemand(t, cal, demand.MinMax{Min: 0, Max: 1}, "AM1", "PM1")

	rule := domain.TransitionRule{
		ID:       "pm_then_am_forbidden",
		Strategy: domain.TransitionNever,
		Sequence: []domain.TransitionRef{
			{Type: domain.RefDuty, ID: "PM1", DayOffset: 0},
			{Type: domain.RefDuty, ID: "AM1", DayOffset: 1},
		},
	}
	result, err := Build(Input{Catalog: cat, Calendar: cal, Demand: table, TransitionRules: []domain.TransitionRule{rule}}, DefaultConfig())
	require.NoError(t, err)
	require.NotEqual(t, StatusInfeasible, result.Status)

	held := make(map[domain.WorkerID]map[time.Time]string)
	for _, rec := range result.Assignments {
		if held[rec.Worker] == nil {
			held[rec.Worker] = make(map[time.Time]string)
		}
		held[rec.Worker][rec.Date] = rec.SlotID
	}
	dates := cal.AllDates()
	for w, days := range held {
		for i := 0; i < len(dates)-1; i++ {
			if days[dates[i]] == "PM1" {
				assert.NotEqual(t, "AM1", days[dates[i+1]], "worker %s date %s", w, dates[i+1])
			}
		}
	}
}

// 6. Transition rules range over the combined prior+planning date list: a
// worker pinned to PM1 on the last prior day, and the only worker eligible
// for AM1, makes the build infeasible once AM1 is mandatory the first
// planning day — this only happens if the "never PM-then-AM" rule actually
// reaches across the prior/planning boundary to see the pinned PM1.
func TestE2E_TransitionNeverPairsAcrossPriorBoundary(t *testing.T) {
	cat := scenarioCatalog(t, []domain.OffDay{{ID: "DO", Scope: domain.OffDayDaily, MaxPerWeek: 7}})
	cal, err := calendar.New(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 7)
	require.NoError(t, err)

	table := flatDemand(t, cal, demand.MinMax{Min: 0, Max: 1}, "AM1", "PM1")
	firstPlanningDay := cal.AllDates()[0]
	require.NoError(t, table.Set(firstPlanningDay, "AM1", demand.MinMax{Min: 1, Max: 1}))

	priorDate := cal.PriorPeriod(1)[0]
	rule := domain.TransitionRule{
		ID:       "pm_then_am_forbidden",
		Strategy: domain.TransitionNever,
		Sequence: []domain.TransitionRef{
			{Type: domain.RefDuty, ID: "PM1", DayOffset: 0},
			{Type: domain.RefDuty, ID: "AM1", DayOffset: 1},
		},
	}
	input := Input{
		Catalog:  cat,
		Calendar: cal,
		Demand:   table,
		PriorTimeslots: []domain.PriorTimeslot{
			{Worker: "nurse_senior", Date: priorDate, SlotID: "PM1", Kind: domain.TimeslotDuty},
		},
		TransitionRules: []domain.TransitionRule{rule},
	}
	result, err := Build(input, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, result.Status, "nurse_senior is the only AM1-eligible worker and is forbidden from it by the pinned prior-period PM1")
}

// 7. Excess-cover penalty trades off against request preference: a
// worker whose affirm request is denied coverage headroom still produces
// a feasible, non-infeasible roster whose objective reflects the traded
// penalties (not a hard failure).
func TestE2E_ExcessCoverAndAffirmRequestsCoexist(t *testing.T) {
	cat := scenarioCatalog(t, []domain.OffDay{{ID: "DO", Scope: domain.OffDayDaily, MaxPerWeek: 7}})
	cal, err := calendar.New(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 7)
	require.NoError(t, err)
	table := flatDemand(t, cal, demand.MinMax{Min: 1, Max: 3}, "PM1")

	day := cal.AllDates()[0]
	cfg := DefaultConfig()
	cfg.ExcessCover = policy.ExcessCoverConfig{Default: 5, Overrides: map[domain.DutyID]int{"PM1": 2}}

	input := Input{
		Catalog:  cat,
		Calendar: cal,
		Demand:   table,
		Requests: []domain.Request{
			{ID: "req1", Worker: "nurse_junior_1", Date: day, SlotID: "PM1", Kind: domain.RequestDuty, Strategy: domain.StrategyAffirm},
		},
	}
	result, err := Build(input, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, StatusInfeasible, result.Status)
}
