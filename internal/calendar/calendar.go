// Package calendar is the planning calendar (spec C2): the ordered list of
// dates a build spans, plus the chunking helpers (by week, by weekend, by
// weekday) that the sum-rule and off-day encoders bucket over. Promoted
// from ad hoc list munging in the original into first-class operations
// since both the spec's C2 and the off-day policy (C8) need the same
// partitioning.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
)

// Calendar is the ordered, deduplicated list of calendar dates a build
// spans, normalized to UTC midnight.
type Calendar struct {
	dates []time.Time
}

// New builds a Calendar from a start date (inclusive) spanning n days.
func New(start time.Time, days int) (*Calendar, error) {
	if days <= 0 {
		return nil, fmt.Errorf("calendar: days must be positive, got %d", days)
	}
	start = domain.NormalizeDate(start)
	dates := make([]time.Time, days)
	for i := 0; i < days; i++ {
		dates[i] = start.AddDate(0, 0, i)
	}
	return &Calendar{dates: dates}, nil
}

// FromDates builds a Calendar from an explicit, possibly-unsorted list of
// dates, normalizing and deduplicating them.
func FromDates(dates []time.Time) *Calendar {
	seen := make(map[time.Time]struct{}, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		n := domain.NormalizeDate(d)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return &Calendar{dates: out}
}

// AllDates returns every date in the calendar, in chronological order.
func (c *Calendar) AllDates() []time.Time {
	out := make([]time.Time, len(c.dates))
	copy(out, c.dates)
	return out
}

// Len returns the number of days in the calendar.
func (c *Calendar) Len() int { return len(c.dates) }

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsSaturday reports whether t falls on Saturday.
func IsSaturday(t time.Time) bool { return t.Weekday() == time.Saturday }

// IsSunday reports whether t falls on Sunday.
func IsSunday(t time.Time) bool { return t.Weekday() == time.Sunday }

// IsWeekday reports whether t falls Monday through Friday.
func IsWeekday(t time.Time) bool { return !IsWeekend(t) }

// Chunk splits dates into consecutive groups of size n (the last group may
// be shorter) — mirrors the original's utils.chunk helper, used to
// partition a calendar into weekly buckets for sum-rule WEEK periods.
func Chunk(dates []time.Time, n int) [][]time.Time {
	if n <= 0 {
		return nil
	}
	var out [][]time.Time
	for i := 0; i < len(dates); i += n {
		end := i + n
		if end > len(dates) {
			end = len(dates)
		}
		out = append(out, dates[i:end])
	}
	return out
}

// WeekChunks partitions the calendar into consecutive 7-day buckets
// starting from the first date, used by PeriodWeek sum rules.
func (c *Calendar) WeekChunks() [][]time.Time {
	return Chunk(c.dates, 7)
}

// WeekendBuckets groups each Saturday with its following Sunday (or, if
// the calendar begins mid-weekend, each lone Sunday on its own) — the
// off-day quota partition used when an off-day definition has
// domain.OffDayWeekend scope.
func (c *Calendar) WeekendBuckets() [][]time.Time {
	var out [][]time.Time
	i := 0
	for i < len(c.dates) {
		d := c.dates[i]
		switch {
		case IsSaturday(d):
			if i+1 < len(c.dates) && IsSunday(c.dates[i+1]) {
				out = append(out, []time.Time{d, c.dates[i+1]})
				i += 2
				continue
			}
			out = append(out, []time.Time{d})
			i++
		case IsSunday(d):
			out = append(out, []time.Time{d})
			i++
		default:
			i++
		}
	}
	return out
}

// WeekdayChunks keeps the Monday-through-Friday dates of each WeekChunks
// bucket (7-day windows counted from the first date, not calendar weeks),
// dropping weekend dates and empty buckets — the partition used when an
// off-day definition has domain.OffDayWeekday scope.
func (c *Calendar) WeekdayChunks() [][]time.Time {
	weekly := c.WeekChunks()
	out := make([][]time.Time, 0, len(weekly))
	for _, week := range weekly {
		var bucket []time.Time
		for _, d := range week {
			if IsWeekday(d) {
				bucket = append(bucket, d)
			}
		}
		if len(bucket) > 0 {
			out = append(out, bucket)
		}
	}
	return out
}

// DailyChunks returns each date as its own single-element bucket.
// BucketsForScope does not use it: domain.OffDayDaily scope buckets by
// WeekChunks, since the off-day quota is a per-week bound.
func (c *Calendar) DailyChunks() [][]time.Time {
	out := make([][]time.Time, len(c.dates))
	for i, d := range c.dates {
		out[i] = []time.Time{d}
	}
	return out
}

// BucketsForScope dispatches to the right partitioning by scope.
func (c *Calendar) BucketsForScope(scope domain.OffDayScope) ([][]time.Time, error) {
	switch scope {
	case domain.OffDayDaily:
		return c.WeekChunks(), nil
	case domain.OffDayWeekend:
		return c.WeekendBuckets(), nil
	case domain.OffDayWeekday:
		return c.WeekdayChunks(), nil
	default:
		return nil, fmt.Errorf("calendar: unknown off-day scope %d", int(scope))
	}
}

// PriorPeriod returns the n days immediately preceding the calendar's
// first date, oldest first — the window the spec pins prior-period history
// over (invariant 5, typically a 14-day lookback).
func (c *Calendar) PriorPeriod(n int) []time.Time {
	if len(c.dates) == 0 || n <= 0 {
		return nil
	}
	first := c.dates[0]
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = first.AddDate(0, 0, -(n - i))
	}
	return out
}
