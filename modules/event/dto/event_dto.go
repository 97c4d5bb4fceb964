package dto

import (
	"time"

	"prikkr/modules/event/entity"
)

// CreateEventRequest is the payload for creating a scheduling event
type CreateEventRequest struct {
	Name          string `json:"name"`
	CreatorName   string `json:"creatorName"`
	CreatorEmail  string `json:"creatorEmail"`
	DateFrom      string `json:"dateFrom"`
	DateTo        string `json:"dateTo"`
	SlotDuration  int    `json:"slotDuration"`
	ExtendedHours bool   `json:"extendedHours"`
}

// FinalizeEventRequest picks the final date for an event
type FinalizeEventRequest struct {
	CreatorEmail string `json:"creatorEmail"`
	Date         string `json:"date"`
	Slot         string `json:"slot"`
}

// EventResponse is the public view of an event
type EventResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CreatorName   string    `json:"creatorName"`
	CreatorEmail  string    `json:"creatorEmail"`
	DateFrom      string    `json:"dateFrom"`
	DateTo        string    `json:"dateTo"`
	SlotDuration  int       `json:"slotDuration"`
	ExtendedHours bool      `json:"extendedHours"`
	FinalDate     string    `json:"finalDate,omitempty"`
	FinalSlot     string    `json:"finalSlot,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`

	// Derived from the slot duration and hours policy, so clients never
	// rebuild the grid themselves.
	Dates  []string `json:"dates"`
	Labels []string `json:"labels"`
}

// CleanupResponse reports a retention sweep
type CleanupResponse struct {
	Scanned int `json:"scanned"`
	Removed int `json:"removed"`
}

// ToEventResponse maps the stored record plus its derived grid
func ToEventResponse(e *entity.EventMeta, dates, labels []string) *EventResponse {
	return &EventResponse{
		ID:            e.ID,
		Name:          e.Name,
		CreatorName:   e.CreatorName,
		CreatorEmail:  e.CreatorEmail,
		DateFrom:      e.DateFrom,
		DateTo:        e.DateTo,
		SlotDuration:  e.SlotDuration,
		ExtendedHours: e.ExtendedHours,
		FinalDate:     e.FinalDate,
		FinalSlot:     e.FinalSlot,
		CreatedAt:     e.CreatedAt,
		Dates:         dates,
		Labels:        labels,
	}
}
