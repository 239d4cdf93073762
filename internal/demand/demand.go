// Package demand is the demand table (spec C3): the per-(date, duty)
// minimum and maximum headcount a coverage constraint must satisfy.
// Mirrors the original's tabular get_min_max_staffs(df, date, duty)
// lookup, but as a typed, validated map rather than a pandas frame.
package demand

import (
	"fmt"
	"time"

	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
)

// MinMax is the headcount band for one (date, duty) cell.
type MinMax struct {
	Min int
	Max int
}

// key is the normalized lookup key for one table cell.
type key struct {
	Date time.Time
	Duty domain.DutyID
}

// Table is a per-(date, duty) headcount map.
type Table struct {
	cells map[key]MinMax
}

// NewTable creates an empty demand table.
func NewTable() *Table {
	return &Table{cells: make(map[key]MinMax)}
}

// Set records the min/max headcount for duty on date. Returns an error if
// min > max, rejecting an unsatisfiable cell at ingestion rather than
// letting the coverage encoder post a constraint that can never hold.
func (t *Table) Set(date time.Time, duty domain.DutyID, minMax MinMax) error {
	if minMax.Min > minMax.Max {
		return fmt.Errorf("demand: %s/%s: min %d > max %d", date.Format("2006-01-02"), duty, minMax.Min, minMax.Max)
	}
	if minMax.Min < 0 {
		return fmt.Errorf("demand: %s/%s: negative min %d", date.Format("2006-01-02"), duty, minMax.Min)
	}
	t.cells[key{Date: domain.NormalizeDate(date), Duty: duty}] = minMax
	return nil
}

// Get returns the headcount band for duty on date, reporting whether a
// cell was ever recorded.
func (t *Table) Get(date time.Time, duty domain.DutyID) (MinMax, bool) {
	mm, ok := t.cells[key{Date: domain.NormalizeDate(date), Duty: duty}]
	return mm, ok
}
