package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Shiftrdw/hukm-scheduling/internal/calendar"
	"github.com/Shiftrdw/hukm-scheduling/internal/catalog"
	"github.com/Shiftrdw/hukm-scheduling/internal/demand"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/roster"
)

// scenarioFile is the on-disk JSON shape a build scenario is loaded from
// — a plain struct-slice document, matching how the rest of the corpus
// that touches JSON at all (abramin-kairos's config loading) keeps
// marshaling to stdlib encoding/json rather than a schema library.
type scenarioFile struct {
	Workers []domain.Worker `json:"workers"`
	Shifts  []domain.Shift  `json:"shifts"`
	Duties  []domain.Duty   `json:"duties"`
	Leaves  []domain.Leave  `json:"leaves"`
	OffDays []domain.OffDay `json:"off_days"`

	CalendarStart time.Time `json:"calendar_start"`
	CalendarDays  int       `json:"calendar_days"`

	Demand []demandCell `json:"demand"`

	SumRules        []domain.SumRule        `json:"sum_rules"`
	SequenceRules   []domain.SequenceRule   `json:"sequence_rules"`
	TransitionRules []domain.TransitionRule `json:"transition_rules"`
	Requests        []domain.Request        `json:"requests"`
	PriorTimeslots  []domain.PriorTimeslot  `json:"prior_timeslots"`
}

type demandCell struct {
	Date   time.Time     `json:"date"`
	Duty   domain.DutyID `json:"duty"`
	MinMax demand.MinMax `json:"min_max"`
}

// loadScenario reads and parses a scenario file from path, then builds
// the catalog/calendar/demand table roster.Build needs — failing fast on a
// malformed catalog, a non-positive day count, or an inverted or negative
// demand bound. Worker and slot IDs named by demand cells, rules,
// requests, and prior timeslots are not checked against the catalog.
func loadScenario(path string) (roster.Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return roster.Input{}, fmt.Errorf("read scenario file: %w", err)
	}

	var sf scenarioFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return roster.Input{}, fmt.Errorf("parse scenario file: %w", err)
	}

	cat, err := catalog.New(sf.Workers, sf.Shifts, sf.Duties, sf.Leaves, sf.OffDays)
	if err != nil {
		return roster.Input{}, fmt.Errorf("build catalog: %w", err)
	}

	if sf.CalendarDays <= 0 {
		return roster.Input{}, fmt.Errorf("scenario: calendar_days must be positive")
	}
	cal, err := calendar.New(sf.CalendarStart, sf.CalendarDays)
	if err != nil {
		return roster.Input{}, fmt.Errorf("build calendar: %w", err)
	}

	table := demand.NewTable()
	for _, cell := range sf.Demand {
		if err := table.Set(cell.Date, cell.Duty, cell.MinMax); err != nil {
			return roster.Input{}, fmt.Errorf("build demand table: %w", err)
		}
	}

	// A request whose ID is omitted from the scenario file gets a generated ID so it
	// still has a stable label to report against (bestEffort logging,
	// objective term naming).
	for i, req := range sf.Requests {
		if req.ID == "" {
			sf.Requests[i].ID = uuid.New().String()
		}
	}

	return roster.Input{
		Catalog:         cat,
		Calendar:        cal,
		Demand:          table,
		SumRules:        sf.SumRules,
		SequenceRules:   sf.SequenceRules,
		TransitionRules: sf.TransitionRules,
		Requests:        sf.Requests,
		PriorTimeslots:  sf.PriorTimeslots,
	}, nil
}
