package entity

import "time"

// EventMeta is the stored record of a scheduling event. It lives under the
// meta:{id} key; responses and participants are stored separately so
// concurrent RSVP writes never race the meta record.
type EventMeta struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreatorName  string `json:"creatorName"`
	CreatorEmail string `json:"creatorEmail"`

	// Inclusive date range, YYYY-MM-DD.
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`

	// Slot duration in minutes. 1440 means whole-day voting.
	SlotDuration  int  `json:"slotDuration"`
	ExtendedHours bool `json:"extendedHours"`

	// Set once the creator picks the final date. An empty FinalDate means
	// the event is still open.
	FinalDate string `json:"finalDate,omitempty"`
	FinalSlot string `json:"finalSlot,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	// TouchedAt drives retention: events nobody has opened for a year are
	// removed. Updated on reads, throttled.
	TouchedAt time.Time `json:"touchedAt"`
}

// Finalized reports whether the creator has picked a date.
func (e *EventMeta) Finalized() bool {
	return e.FinalDate != ""
}
