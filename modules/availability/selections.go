package availability

// BuildSelections computes the per-date free slot labels for one
// participant from their busy intervals. This is the recompute path used by
// calendar resync: its output has the same shape as a manually submitted
// response.
//
// Timed slots are kept only when fully free. The daily pseudo-slot is kept
// when the day is free or mostly free, matching how partial days are
// normalized on save.
func BuildSelections(busy []Interval, from, to string, g *Grid) (map[string][]string, error) {
	dates, err := DatesInRange(from, to, g.loc)
	if err != nil {
		return nil, err
	}

	selections := make(map[string][]string, len(dates))
	for _, date := range dates {
		keep := []string{}

		if g.IsDaily() {
			window, err := g.DayWindow(date)
			if err != nil {
				return nil, err
			}
			if ClassifyDay(window, busy) != Busy {
				keep = append(keep, g.labels[0])
			}
			selections[date] = keep
			continue
		}

		for _, label := range g.labels {
			slot, err := g.SlotWindow(date, label)
			if err != nil {
				return nil, err
			}
			if ClassifySlot(slot, busy) == Free {
				keep = append(keep, label)
			}
		}
		selections[date] = keep
	}
	return selections, nil
}
