package entity

import "time"

// Response is one participant's availability answer for an event. Responses
// are stored as a map keyed by lowercase email under responses:{eventID};
// saving again under the same email replaces the previous answer.
type Response struct {
	Name  string `json:"name"`
	Email string `json:"email"`

	// Selections maps date (YYYY-MM-DD) to the slot labels marked available.
	// A present date with an empty slice means "nothing works that day".
	Selections map[string][]string `json:"selections"`

	// Custom marks a hand-edited response. Calendar resync never overwrites
	// a custom response; switching back to sync mode clears the flag.
	Custom bool `json:"custom"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// Engaged reports whether the response carries at least one selected slot.
// Only engaged responses count toward availability percentages.
func (r *Response) Engaged() bool {
	for _, labels := range r.Selections {
		if len(labels) > 0 {
			return true
		}
	}
	return false
}
