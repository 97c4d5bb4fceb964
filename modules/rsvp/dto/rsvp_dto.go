package dto

import (
	"time"

	"prikkr/modules/availability"
	"prikkr/modules/rsvp/entity"
)

// SaveResponseRequest submits or replaces one participant's availability
type SaveResponseRequest struct {
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Selections map[string][]string `json:"selections"`
	// Custom marks the selections as hand-edited, shielding them from
	// calendar resync until the participant switches back to sync.
	Custom bool `json:"custom"`
}

// ResponseView is one stored response as returned to clients
type ResponseView struct {
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Selections map[string][]string `json:"selections"`
	Custom     bool                `json:"custom"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// ListResponsesResponse lists everyone's answers for an event
type ListResponsesResponse struct {
	Responses []ResponseView `json:"responses"`
}

// ResultsResponse is the aggregated availability picture of an event
type ResultsResponse struct {
	Total    int                        `json:"total"`
	Heatmap  map[string]map[string]int  `json:"heatmap"`
	Ranked   []availability.RankedSlot  `json:"ranked"`
	TopDates []availability.DateSummary `json:"topDates"`
}

// ToResponseView maps a stored response
func ToResponseView(r *entity.Response) ResponseView {
	return ResponseView{
		Name:       r.Name,
		Email:      r.Email,
		Selections: r.Selections,
		Custom:     r.Custom,
		UpdatedAt:  r.UpdatedAt,
	}
}
