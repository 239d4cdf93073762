// Package roster is the solver driver and decoder (spec C10): the single
// entry point that wires the catalog, calendar, demand table, and rule
// sets through the variable store and policy layer, installs the
// accumulated objective, invokes the solver, and decodes the solution
// back into a worker-readable roster. Grounded on the original's
// default_model / use_selected_roster_model orchestration and
// populate_solved_data / print_solver_value decoding
// (jadualortools-checkpoint.py).
package roster

import (
	"fmt"
	"log"
	"time"

	"github.com/Shiftrdw/hukm-scheduling/internal/calendar"
	"github.com/Shiftrdw/hukm-scheduling/internal/catalog"
	"github.com/Shiftrdw/hukm-scheduling/internal/cpsat"
	"github.com/Shiftrdw/hukm-scheduling/internal/demand"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/objective"
	"github.com/Shiftrdw/hukm-scheduling/internal/policy"
	"github.com/Shiftrdw/hukm-scheduling/internal/seqrule"
	"github.com/Shiftrdw/hukm-scheduling/internal/store"
	"github.com/Shiftrdw/hukm-scheduling/internal/sumrule"
	"github.com/Shiftrdw/hukm-scheduling/internal/transition"
)

// Status mirrors the solver's three-way result.
type Status = cpsat.Status

const (
	StatusOptimal    = cpsat.StatusOptimal
	StatusFeasible   = cpsat.StatusFeasible
	StatusInfeasible = cpsat.StatusInfeasible
)

// FairnessTarget names one slot whose load should be balanced across
// workers (policy.Fairness).
type FairnessTarget struct {
	SlotKind domain.SlotKindRef
	SlotID   string
	Weight   int
}

// Config carries the tunables the Python original hardcoded in
// params.py, exposed here as plain struct fields the CLI populates from
// flags (spec §2.1).
type Config struct {
	// AffirmWeight is the (conventionally negative) reward applied to a
	// satisfied StrategyAffirm request. Default -50.
	AffirmWeight int

	// ExcessCover is the per-duty excess-cover penalty configuration.
	// Defaults to a flat weight of 5 with no per-duty overrides.
	ExcessCover policy.ExcessCoverConfig

	// OffDayPolicyKind selects the off-day enforcement strategy (spec
	// §3.2). Defaults to policy.OffDayQuota.
	OffDayPolicyKind policy.OffDayPolicy

	// OffDayObjectiveWeight is the per-off-day weight used only when
	// OffDayPolicyKind is OffDayMinimize or OffDayMaximize.
	OffDayObjectiveWeight int

	// Fairness names the slots whose load should be balanced. Empty by
	// default (no fairness terms).
	Fairness []FairnessTarget

	// WorkerShuffleSeed seeds the deterministic-but-seedable worker order
	// randomization (spec §5, Design Notes). Zero means "do not shuffle".
	WorkerShuffleSeed int64

	// SolveTimeLimit bounds the solver's wall-clock budget. Zero means no
	// limit.
	SolveTimeLimit time.Duration

	// Logger receives diagnostic and best-effort-skip messages. Defaults
	// to log.Default() when nil.
	Logger *log.Logger
}

// DefaultConfig returns the original's hardcoded defaults (AffirmWeight
// -50, excess-cover default 5, off-day quota policy).
func DefaultConfig() Config {
	return Config{
		AffirmWeight:     -50,
		ExcessCover:      policy.ExcessCoverConfig{Default: 5},
		OffDayPolicyKind: policy.OffDayQuota,
	}
}

// Input is everything a build needs beyond Config: the closed catalog,
// the planning calendar, the demand table, and every rule/request/history
// collection the policy layer and encoders consume.
type Input struct {
	Catalog *catalog.Catalog
	Calendar *calendar.Calendar
	Demand   *demand.Table

	SumRules        []domain.SumRule
	SequenceRules   []domain.SequenceRule
	TransitionRules []domain.TransitionRule
	Requests        []domain.Request

	PriorTimeslots          []domain.PriorTimeslot
	SelectedRosterOverrides []domain.SelectedRosterOverride
}

// Record is one decoded assignment: worker w holds slot s (of kind duty,
// leave, or off-day) on date d.
type Record struct {
	Worker domain.WorkerID
	Date   time.Time
	Kind   store.SlotKind
	SlotID string
}

// Result is the decoded outcome of a build: the solver status, the
// objective value actually achieved, and every true assignment.
type Result struct {
	Status      Status
	Objective   float64
	Assignments []Record
}

// workerIDs extracts the worker ID list from the catalog, in catalog
// order, optionally shuffled by cfg.WorkerShuffleSeed (spec §5: a
// deterministic seed produces a deterministic shuffle, not map-iteration
// nondeterminism).
func workerIDs(cat *catalog.Catalog, seed int64) []domain.WorkerID {
	ids := make([]domain.WorkerID, len(cat.Workers))
	for i, w := range cat.Workers {
		ids[i] = w.ID
	}
	if seed == 0 {
		return ids
	}
	shuffleDeterministic(ids, seed)
	return ids
}

// Build runs the full pipeline: pin prior-period history densely (the
// named slot plus a hard zero on every other duty/leave/off-day variable
// for that worker and date), post exclusivity/coverage/role-match, apply
// the selected-roster overrides (first pass), apply every sum/sequence/
// transition rule over the combined prior+planning date range, apply
// off-day policy, fairness, excess-cover, and requests, apply the
// selected-roster overrides again (second pass, matching the original's
// defensive double-apply — spec §3.6), install the accumulated objective,
// and solve.
func Build(input Input, cfg Config) (*Result, error) {
	if input.Catalog == nil || input.Calendar == nil || input.Demand == nil {
		return nil, fmt.Errorf("roster: catalog, calendar, and demand table are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	model := cpsat.NewModel()
	st := store.New(model)
	acc := objective.New()

	workers := workerIDs(input.Catalog, cfg.WorkerShuffleSeed)

	offDayIDs := make([]string, len(input.Catalog.OffDays))
	for i, o := range input.Catalog.OffDays {
		offDayIDs[i] = o.ID
	}
	policy.PinPriorRoster(st, input.Catalog, input.PriorTimeslots, offDayIDs)

	// Sum, sequence, and transition rules range over the combined
	// prior+planning date list (spec §4.6, §4.8: all_dates = date_prior_list
	// + date_list) so a rule can pair a pinned prior-period fact against a
	// planning-period variable; every other encoder stays planning-only.
	priorDates := make([]time.Time, len(input.PriorTimeslots))
	for i, t := range input.PriorTimeslots {
		priorDates[i] = t.Date
	}
	combinedCal := calendar.FromDates(append(input.Calendar.AllDates(), priorDates...))

	policy.Exclusivity(model, st, input.Catalog, input.Calendar, workers, offDayIDs)
	policy.Coverage(model, st, input.Catalog, input.Calendar, input.Demand, workers, logger)
	policy.MatchWorkerRoleHard(model, st, input.Catalog, input.Calendar, input.Catalog.Workers)

	policy.ApplySelectedRosterOverrides(st, input.Catalog, input.SelectedRosterOverrides)

	for _, rule := range input.SumRules {
		terms, err := sumrule.Apply(model, st, input.Catalog, combinedCal, rule, workers)
		if err != nil {
			return nil, fmt.Errorf("roster: sum rule %s: %w", rule.ID, err)
		}
		acc.Add(terms)
	}

	for _, rule := range input.SequenceRules {
		terms, err := seqrule.Apply(model, st, input.Catalog, combinedCal, rule, workers)
		if err != nil {
			return nil, fmt.Errorf("roster: sequence rule %s: %w", rule.ID, err)
		}
		acc.Add(terms)
	}

	for _, rule := range input.TransitionRules {
		terms, err := transition.Apply(model, st, input.Catalog, combinedCal, rule, workers)
		if err != nil {
			return nil, fmt.Errorf("roster: transition rule %s: %w", rule.ID, err)
		}
		acc.Add(terms)
	}

	for _, offDay := range input.Catalog.OffDays {
		terms, err := policy.ApplyOffDayPolicy(model, st, input.Calendar, offDay, workers, cfg.OffDayPolicyKind, cfg.OffDayObjectiveWeight)
		if err != nil {
			return nil, fmt.Errorf("roster: off-day %s: %w", offDay.ID, err)
		}
		acc.Add(terms)
	}

	for _, ft := range cfg.Fairness {
		terms, err := policy.Fairness(model, st, input.Catalog, input.Calendar, ft.SlotKind, ft.SlotID, workers, ft.Weight, "fairness_"+ft.SlotID)
		if err != nil {
			return nil, fmt.Errorf("roster: fairness %s: %w", ft.SlotID, err)
		}
		acc.Add(terms)
	}

	acc.Add(policy.ExcessCover(model, st, input.Catalog, input.Calendar, input.Demand, workers, cfg.ExcessCover))

	requestTerms, err := policy.PopulateRequests(st, input.Catalog, input.Requests, cfg.AffirmWeight, offDayIDs, logger)
	if err != nil {
		return nil, fmt.Errorf("roster: requests: %w", err)
	}
	acc.Add(requestTerms)

	policy.ApplySelectedRosterOverrides(st, input.Catalog, input.SelectedRosterOverrides)

	acc.Install(model)

	solution, status, err := model.Solve(cfg.SolveTimeLimit)
	if err != nil {
		return nil, fmt.Errorf("roster: solve: %w", err)
	}
	if status == cpsat.StatusInfeasible {
		return &Result{Status: status}, nil
	}

	return &Result{
		Status:      status,
		Objective:   solution.ObjectiveValue(),
		Assignments: decode(st, solution),
	}, nil
}

// decode walks every variable the store created, in creation order, and
// returns the ones the solver set true — mirrors populate_solved_data's
// scan over every decision variable.
func decode(st *store.Store, solution cpsat.Solution) []Record {
	var out []Record
	for _, key := range st.Keys() {
		v, ok := st.Lookup(key)
		if !ok {
			continue
		}
		if !solution.Value(v) {
			continue
		}
		out = append(out, Record{Worker: key.Worker, Date: key.Date, Kind: key.Kind, SlotID: key.SlotID})
	}
	return out
}
