package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amsterdam(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)
	return loc
}

func TestNewGrid_SlotCounts(t *testing.T) {
	tests := []struct {
		duration int
		extended bool
		want     int
	}{
		{60, false, 8},
		{60, true, 12},
		{30, false, 16},
		{30, true, 24},
		{15, false, 32},
		{15, true, 48},
		{10, false, 48},
		{10, true, 72},
		// 7 does not divide 60: nine slots per hour, remainder dropped.
		{7, false, 72},
	}
	for _, tt := range tests {
		g, err := NewGrid(tt.duration, tt.extended, time.UTC)
		require.NoError(t, err)
		assert.Len(t, g.Labels(), tt.want, "duration=%d extended=%v", tt.duration, tt.extended)
	}
}

func TestNewGrid_FirstAndLastLabels(t *testing.T) {
	g, err := NewGrid(30, false, time.UTC)
	require.NoError(t, err)
	labels := g.Labels()
	assert.Equal(t, "09:00", labels[0])
	assert.Equal(t, "16:30", labels[len(labels)-1])

	g, err = NewGrid(60, true, time.UTC)
	require.NoError(t, err)
	labels = g.Labels()
	assert.Equal(t, "20:00", labels[len(labels)-1])
}

func TestNewGrid_Daily(t *testing.T) {
	g, err := NewGrid(1440, false, time.UTC)
	require.NoError(t, err)
	assert.True(t, g.IsDaily())
	assert.Equal(t, []string{"All Day"}, g.Labels())
}

func TestNewGrid_InvalidDuration(t *testing.T) {
	_, err := NewGrid(0, false, time.UTC)
	assert.Error(t, err)
	_, err = NewGrid(-30, true, time.UTC)
	assert.Error(t, err)
}

func TestNewGrid_DurationWiderThanWindow(t *testing.T) {
	// 600 minutes exceeds the 480-minute standard window: one clamped slot,
	// never zero.
	g, err := NewGrid(600, false, time.UTC)
	require.NoError(t, err)
	require.Equal(t, []string{"09:00"}, g.Labels())

	slot, err := g.SlotWindow("2024-01-01", "09:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), slot.Start)
	assert.Equal(t, time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC), slot.End)
}

func TestSlotWindow_ClampsFinalSlot(t *testing.T) {
	g, err := NewGrid(7, false, time.UTC)
	require.NoError(t, err)

	// 16:56 + 7m would cross the 17:00 bound.
	slot, err := g.SlotWindow("2024-01-01", "16:56")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC), slot.End)
}

func TestSlotWindow_UsesLocation(t *testing.T) {
	loc := amsterdam(t)
	g, err := NewGrid(60, false, loc)
	require.NoError(t, err)

	slot, err := g.SlotWindow("2024-06-15", "09:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 9, 0, 0, 0, loc), slot.Start)
	assert.Equal(t, "CEST", slot.Start.Format("MST"))
}

func TestSlotWindow_InvalidInput(t *testing.T) {
	g, err := NewGrid(60, false, time.UTC)
	require.NoError(t, err)

	_, err = g.SlotWindow("not-a-date", "09:00")
	assert.Error(t, err)
	_, err = g.SlotWindow("2024-01-01", "9am")
	assert.Error(t, err)
}

func TestDayWindow(t *testing.T) {
	g, err := NewGrid(1440, true, time.UTC)
	require.NoError(t, err)

	window, err := g.DayWindow("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2024, 1, 1, 21, 0, 0, 0, time.UTC), window.End)
}

func TestDatesInRange(t *testing.T) {
	dates, err := DatesInRange("2024-01-30", "2024-02-02", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}, dates)

	dates, err = DatesInRange("2024-03-10", "2024-03-10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-10"}, dates)

	// Reversed range yields no dates.
	dates, err = DatesInRange("2024-03-11", "2024-03-10", time.UTC)
	require.NoError(t, err)
	assert.Empty(t, dates)
}
