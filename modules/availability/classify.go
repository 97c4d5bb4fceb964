package availability

import (
	"sort"

	"prikkr/core/constants"
)

// Classification of a slot for a single participant.
type Classification int

const (
	Free Classification = iota
	Partial
	Busy
)

func (c Classification) String() string {
	switch c {
	case Free:
		return "free"
	case Partial:
		return "partial"
	default:
		return "busy"
	}
}

// ClassifySlot is the binary time-of-day classification: any overlap with a
// busy interval marks the slot Busy.
func ClassifySlot(slot Interval, busy []Interval) Classification {
	for _, b := range busy {
		if Overlaps(slot, b) {
			return Busy
		}
	}
	return Free
}

// ClassifyDay classifies the "All Day" pseudo-slot against the day window.
// Busy intervals are merged before summing so overlapping blocks from the
// same calendar do not inflate the busy total.
func ClassifyDay(window Interval, busy []Interval) Classification {
	total := window.Minutes()
	if total <= 0 {
		return Busy
	}

	var busyMinutes float64
	for _, b := range MergeIntervals(busy) {
		clamped := b.Clamp(window)
		busyMinutes += clamped.Minutes()
	}

	freeRatio := 1 - busyMinutes/total
	switch {
	case freeRatio >= constants.FreeRatioFullyFree:
		return Free
	case freeRatio >= constants.FreeRatioMostlyFree:
		return Partial
	default:
		return Busy
	}
}

// Segment is a fraction of a slot's span, used to render busy/free
// gradients. From and To are in [0, 1].
type Segment struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
	Busy bool    `json:"busy"`
}

// SlotSegments partitions a slot's span into alternating free and busy
// fractions, in order.
func SlotSegments(slot Interval, busy []Interval) []Segment {
	total := slot.Minutes()
	if total <= 0 {
		return nil
	}

	type span struct{ start, end float64 }
	var overlapping []span
	for _, b := range busy {
		if !Overlaps(slot, b) {
			continue
		}
		clamped := b.Clamp(slot)
		overlapping = append(overlapping, span{
			start: clamped.Start.Sub(slot.Start).Minutes(),
			end:   clamped.End.Sub(slot.Start).Minutes(),
		})
	}
	sort.Slice(overlapping, func(i, j int) bool {
		return overlapping[i].start < overlapping[j].start
	})

	var segments []Segment
	cursor := 0.0
	for _, o := range overlapping {
		if o.end <= cursor {
			continue
		}
		if o.start > cursor {
			segments = append(segments, Segment{From: cursor / total, To: o.start / total})
		}
		from := o.start
		if from < cursor {
			from = cursor
		}
		segments = append(segments, Segment{From: from / total, To: o.end / total, Busy: true})
		cursor = o.end
	}
	if cursor < total {
		segments = append(segments, Segment{From: cursor / total, To: 1})
	}
	return segments
}
