// Package availability implements the slot grid, free/busy classification
// and heat-map aggregation used to pick a common date for an event. It is
// pure computation: callers feed it busy intervals and stored responses and
// render whatever comes back.
package availability

import (
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End) in a single location.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the interval has positive length. Malformed
// intervals (End <= Start) are treated as zero-length and skipped by every
// classification path.
func (iv Interval) Valid() bool {
	return iv.End.After(iv.Start)
}

func (iv Interval) Minutes() float64 {
	if !iv.Valid() {
		return 0
	}
	return iv.End.Sub(iv.Start).Minutes()
}

// Overlaps is the single overlap primitive shared by all classifiers:
// [a.Start,a.End) intersects [b.Start,b.End) iff a.Start < b.End && b.Start < a.End.
// A busy block ending exactly at a slot's start does not touch the slot.
func Overlaps(a, b Interval) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Clamp trims iv to the bounds of window. The result may be invalid when
// the two do not intersect.
func (iv Interval) Clamp(window Interval) Interval {
	out := iv
	if out.Start.Before(window.Start) {
		out.Start = window.Start
	}
	if out.End.After(window.End) {
		out.End = window.End
	}
	return out
}

// MergeIntervals sorts the valid intervals by start and coalesces any that
// overlap or touch. Summing durations over the merged set never counts the
// same minute twice.
func MergeIntervals(intervals []Interval) []Interval {
	valid := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Valid() {
			valid = append(valid, iv)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Start.Before(valid[j].Start)
	})

	merged := []Interval{valid[0]}
	for _, curr := range valid[1:] {
		last := &merged[len(merged)-1]
		if !curr.Start.After(last.End) {
			if curr.End.After(last.End) {
				last.End = curr.End
			}
		} else {
			merged = append(merged, curr)
		}
	}
	return merged
}
