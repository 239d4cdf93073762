// Package policy is the policy layer (spec C8): the constraint families
// built directly on top of the variable store rather than the generic
// sum/sequence/transition encoders — exclusivity, coverage, role matching,
// off-day quotas, fairness, request handling, excess-cover penalties, and
// prior-period/selected-roster pinning. Grounded across several original
// methods: one_worker_one_shift[_duty], match_worker_role_and_shift_*,
// create_offdays/minimize_off_days/maximize_off_days, fairness_allocation,
// populate_requests, excess_covers, build_previous_roster,
// use_current_selected_roster (jadualortools-checkpoint.py).
package policy

import (
	"fmt"
	"log"
)

// bestEffort runs fn, logging (rather than silently swallowing) any
// failure under label. Used for constraint postings that legitimately may
// find no matching variable for a given worker/date/slot combination
// (e.g. a request referencing a slot that doesn't apply to every day) —
// per the Design Notes instruction to make best-effort posting explicit
// and auditable instead of a bare ignored error.
func bestEffort(logger *log.Logger, label string, fn func() error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := fn(); err != nil {
		logger.Printf("policy: best-effort constraint %s skipped: %v", label, err)
	}
}

// errNoVar builds the error for a referenced variable that does not exist
// in the store. No closure in this package returns it: the request
// closures create a missing variable instead.
func errNoVar(label string) error {
	return fmt.Errorf("no variable for %s", label)
}
