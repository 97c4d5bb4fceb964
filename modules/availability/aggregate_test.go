package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_TwoParticipantsOneBusyBlock(t *testing.T) {
	g, err := NewGrid(60, false, time.UTC)
	require.NoError(t, err)

	// Participant A has a meeting 09:30 to 10:30, B is fully free.
	busyA := []Interval{{
		Start: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC),
	}}
	selA, err := BuildSelections(busyA, "2024-01-01", "2024-01-01", g)
	require.NoError(t, err)
	selB, err := BuildSelections(nil, "2024-01-01", "2024-01-01", g)
	require.NoError(t, err)

	res := Aggregate([]ParticipantSelections{selA, selB})
	require.Equal(t, 2, res.Total)
	assert.Equal(t, 50, res.Percent("2024-01-01", "09:00"))
	assert.Equal(t, 50, res.Percent("2024-01-01", "10:00"))
	assert.Equal(t, 100, res.Percent("2024-01-01", "11:00"))
}

func TestAggregate_TotalCountsEngagedOnly(t *testing.T) {
	res := Aggregate([]ParticipantSelections{
		{"2024-01-01": {"09:00"}},
		{"2024-01-01": {}}, // responded but picked nothing
		{},                 // empty response
		nil,
	})
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 100, res.Percent("2024-01-01", "09:00"))
}

func TestAggregate_Empty(t *testing.T) {
	res := Aggregate(nil)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, res.Percent("2024-01-01", "09:00"))
	assert.Empty(t, res.Ranked())
	assert.Empty(t, res.TopDates(3))
}

func TestAggregate_CountNeverExceedsTotal(t *testing.T) {
	all := []ParticipantSelections{
		{"2024-01-01": {"09:00", "10:00"}, "2024-01-02": {"09:00"}},
		{"2024-01-01": {"09:00"}},
		{"2024-01-02": {"09:00", "11:00"}},
	}
	res := Aggregate(all)
	for date, day := range res.Heatmap {
		for label, count := range day {
			assert.LessOrEqual(t, count, res.Total, "%s %s", date, label)
			assert.Positive(t, count)
		}
	}
}

func TestRanked_OrderAndTieBreak(t *testing.T) {
	// Five participants over three dates. Best slot 100%, then 80%, then 60%.
	all := make([]ParticipantSelections, 5)
	for i := range all {
		all[i] = ParticipantSelections{"2024-01-02": {"14:00"}}
	}
	for i := 0; i < 4; i++ {
		all[i]["2024-01-01"] = []string{"10:00"}
	}
	for i := 0; i < 3; i++ {
		all[i]["2024-01-03"] = []string{"09:00"}
	}

	ranked := Aggregate(all).Ranked()
	require.Len(t, ranked, 3)
	assert.Equal(t, RankedSlot{Date: "2024-01-02", Label: "14:00", Count: 5, Percent: 100}, ranked[0])
	assert.Equal(t, RankedSlot{Date: "2024-01-01", Label: "10:00", Count: 4, Percent: 80}, ranked[1])
	assert.Equal(t, RankedSlot{Date: "2024-01-03", Label: "09:00", Count: 3, Percent: 60}, ranked[2])
}

func TestRanked_TiesBrokenByDateThenLabel(t *testing.T) {
	res := Aggregate([]ParticipantSelections{{
		"2024-01-02": {"09:00"},
		"2024-01-01": {"11:00", "09:30"},
	}})

	ranked := res.Ranked()
	require.Len(t, ranked, 3)
	// All at 100%: earlier date first, then earlier label.
	assert.Equal(t, "2024-01-01", ranked[0].Date)
	assert.Equal(t, "09:30", ranked[0].Label)
	assert.Equal(t, "11:00", ranked[1].Label)
	assert.Equal(t, "2024-01-02", ranked[2].Date)
}

func TestRanked_Deterministic(t *testing.T) {
	all := []ParticipantSelections{
		{"2024-01-01": {"09:00", "10:00"}, "2024-01-03": {"09:00"}},
		{"2024-01-02": {"10:00"}, "2024-01-01": {"10:00"}},
		{"2024-01-03": {"09:00", "15:00"}},
	}
	first := Aggregate(all).Ranked()
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Aggregate(all).Ranked())
	}
}

func TestTopDates(t *testing.T) {
	all := []ParticipantSelections{
		{"2024-01-01": {"09:00", "10:00"}, "2024-01-02": {"09:00"}},
		{"2024-01-01": {"10:00"}, "2024-01-02": {"09:00"}},
		{"2024-01-01": {"10:00"}, "2024-01-03": {"09:00"}},
	}
	top := Aggregate(all).TopDates(2)
	require.Len(t, top, 2)

	// 2024-01-01 peaks at 100% with only its max slot surfaced.
	assert.Equal(t, "2024-01-01", top[0].Date)
	assert.Equal(t, 100, top[0].Percent)
	require.Len(t, top[0].Slots, 1)
	assert.Equal(t, "10:00", top[0].Slots[0].Label)

	assert.Equal(t, "2024-01-02", top[1].Date)
	assert.Equal(t, 67, top[1].Percent)
}

func TestTopDates_AllDayEvents(t *testing.T) {
	all := []ParticipantSelections{
		{"2024-01-01": {"All Day"}, "2024-01-02": {"All Day"}},
		{"2024-01-02": {"All Day"}},
	}
	top := Aggregate(all).TopDates(3)
	require.Len(t, top, 2)
	assert.Equal(t, "2024-01-02", top[0].Date)
	assert.Equal(t, 100, top[0].Percent)
	assert.Equal(t, "2024-01-01", top[1].Date)
	assert.Equal(t, 50, top[1].Percent)
}

func TestPercent_Rounding(t *testing.T) {
	all := []ParticipantSelections{
		{"2024-01-01": {"09:00"}},
		{"2024-01-01": {"09:00"}},
		{"2024-01-01": {"10:00"}},
	}
	res := Aggregate(all)
	assert.Equal(t, 67, res.Percent("2024-01-01", "09:00"))
	assert.Equal(t, 33, res.Percent("2024-01-01", "10:00"))
}
