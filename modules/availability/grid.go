package availability

import (
	"fmt"
	"time"

	"prikkr/core/constants"
)

// Grid is the ordered set of slot labels for one day under a given slot
// duration and hours policy. The same grid applies to every date in an
// event's range.
type Grid struct {
	Duration      int // minutes
	ExtendedHours bool

	loc    *time.Location
	labels []string
}

// NewGrid builds the slot grid. Durations >= one day collapse to the single
// "All Day" pseudo-slot. A duration wider than the day window collapses to
// one slot spanning the window; a grid is never empty.
func NewGrid(durationMin int, extendedHours bool, loc *time.Location) (*Grid, error) {
	if durationMin <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", durationMin)
	}
	if loc == nil {
		loc = time.UTC
	}

	g := &Grid{Duration: durationMin, ExtendedHours: extendedHours, loc: loc}

	if durationMin >= constants.MinutesPerDay {
		g.labels = []string{constants.SlotLabelAllDay}
		return g, nil
	}

	endHour := g.endHour()
	windowMin := (endHour - constants.GridStartHour) * 60
	if durationMin >= windowMin {
		g.labels = []string{fmt.Sprintf("%02d:00", constants.GridStartHour)}
		return g, nil
	}

	// Slots step within each hour; a duration that does not divide 60 leaves
	// an undivided remainder before the next hour boundary, which is dropped.
	for h := constants.GridStartHour; h < endHour; h++ {
		for m := 0; m < 60; m += durationMin {
			g.labels = append(g.labels, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return g, nil
}

func (g *Grid) endHour() int {
	if g.ExtendedHours {
		return constants.GridEndHourExtended
	}
	return constants.GridEndHourStandard
}

// IsDaily reports whether the grid is the single "All Day" pseudo-slot.
func (g *Grid) IsDaily() bool {
	return g.Duration >= constants.MinutesPerDay
}

// Labels returns the ordered slot labels for one day.
func (g *Grid) Labels() []string {
	out := make([]string, len(g.labels))
	copy(out, g.labels)
	return out
}

// DayWindow is the hours-policy window for a date, 09:00 to the policy's
// end hour. Daily classification ratios are computed against this window.
func (g *Grid) DayWindow(date string) (Interval, error) {
	day, err := time.ParseInLocation(constants.DateLayout, date, g.loc)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	start := day.Add(time.Duration(constants.GridStartHour) * time.Hour)
	end := day.Add(time.Duration(g.endHour()) * time.Hour)
	return Interval{Start: start, End: end}, nil
}

// SlotWindow resolves a slot label on a date to its concrete time range.
// The final slot of a day is clamped so its end never crosses the window's
// end bound.
func (g *Grid) SlotWindow(date, label string) (Interval, error) {
	if label == constants.SlotLabelAllDay || label == constants.SlotLabelAllDayPartial {
		return g.DayWindow(date)
	}

	day, err := time.ParseInLocation(constants.DateLayout, date, g.loc)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	t, err := time.Parse(constants.SlotLabelLayout, label)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid slot label %q: %w", label, err)
	}

	start := day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	end := start.Add(time.Duration(g.Duration) * time.Minute)
	if dayEnd := day.Add(time.Duration(g.endHour()) * time.Hour); end.After(dayEnd) {
		end = dayEnd
	}
	return Interval{Start: start, End: end}, nil
}

// DatesInRange expands an inclusive from/to date pair into its ordered
// calendar dates.
func DatesInRange(from, to string, loc *time.Location) ([]string, error) {
	if loc == nil {
		loc = time.UTC
	}
	start, err := time.ParseInLocation(constants.DateLayout, from, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid range start %q: %w", from, err)
	}
	end, err := time.ParseInLocation(constants.DateLayout, to, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid range end %q: %w", to, err)
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(constants.DateLayout))
	}
	return dates, nil
}
