package availability

import (
	"math"
	"sort"
	"strings"
)

// ParticipantSelections maps date to the slot labels a participant marked
// available.
type ParticipantSelections map[string][]string

// RankedSlot is one (date, slot) candidate with its share of available
// participants.
type RankedSlot struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// DateSummary surfaces the best slot(s) of a single date.
type DateSummary struct {
	Date    string       `json:"date"`
	Percent int          `json:"percent"`
	Slots   []RankedSlot `json:"slots"`
}

// Result is the aggregate over all participants of an event.
type Result struct {
	// Heatmap[date][label] = number of participants available.
	Heatmap map[string]map[string]int `json:"heatmap"`
	// Total participants considered: responses with at least one non-empty
	// selections entry. Percentages are relative to engaged participants,
	// not everyone invited.
	Total int `json:"total"`
}

// Aggregate counts availability across participants. The result is fully
// deterministic for identical input.
func Aggregate(all []ParticipantSelections) *Result {
	res := &Result{Heatmap: make(map[string]map[string]int)}

	for _, selections := range all {
		engaged := false
		for date, labels := range selections {
			if len(labels) == 0 {
				continue
			}
			engaged = true
			day := res.Heatmap[date]
			if day == nil {
				day = make(map[string]int)
				res.Heatmap[date] = day
			}
			for _, label := range labels {
				day[label]++
			}
		}
		if engaged {
			res.Total++
		}
	}
	return res
}

// Percent returns the rounded share of participants available for a slot.
func (r *Result) Percent(date, label string) int {
	if r.Total == 0 {
		return 0
	}
	return int(math.Round(float64(r.Heatmap[date][label]) / float64(r.Total) * 100))
}

// Ranked flattens the heat-map into candidates ordered by percent
// descending, ties broken by date then slot label ascending. The tie-break
// is part of the contract: two calls with the same input produce the same
// order.
func (r *Result) Ranked() []RankedSlot {
	var flat []RankedSlot
	for date, day := range r.Heatmap {
		for label, count := range day {
			flat = append(flat, RankedSlot{
				Date:    date,
				Label:   label,
				Count:   count,
				Percent: r.Percent(date, label),
			})
		}
	}

	sort.Slice(flat, func(i, j int) bool {
		a, b := flat[i], flat[j]
		if a.Percent != b.Percent {
			return a.Percent > b.Percent
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return compareLabels(a.Label, b.Label) < 0
	})
	return flat
}

// TopDates groups the ranking by date, orders dates by their best slot's
// percent (descending, date ascending on ties) and keeps, per date, only
// the slots achieving that date's maximum.
func (r *Result) TopDates(n int) []DateSummary {
	byDate := make(map[string][]RankedSlot)
	for _, slot := range r.Ranked() {
		byDate[slot.Date] = append(byDate[slot.Date], slot)
	}

	summaries := make([]DateSummary, 0, len(byDate))
	for date, slots := range byDate {
		// Ranked() is ordered, so the date's maximum leads its group.
		max := slots[0].Percent
		best := make([]RankedSlot, 0, 1)
		for _, s := range slots {
			if s.Percent == max {
				best = append(best, s)
			}
		}
		sort.Slice(best, func(i, j int) bool {
			return compareLabels(best[i].Label, best[j].Label) < 0
		})
		summaries = append(summaries, DateSummary{Date: date, Percent: max, Slots: best})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Percent != summaries[j].Percent {
			return summaries[i].Percent > summaries[j].Percent
		}
		return summaries[i].Date < summaries[j].Date
	})

	if n > 0 && len(summaries) > n {
		summaries = summaries[:n]
	}
	return summaries
}

// compareLabels orders "HH:MM" labels chronologically and sorts the
// "All Day" pseudo-slot before timed labels (a grid only ever contains one
// kind, but stored responses are not trusted to be uniform).
func compareLabels(a, b string) int {
	aTimed := len(a) == 5 && a[2] == ':'
	bTimed := len(b) == 5 && b[2] == ':'
	if aTimed != bTimed {
		if aTimed {
			return 1
		}
		return -1
	}
	return strings.Compare(a, b)
}
