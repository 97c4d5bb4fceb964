package entity

import "time"

// Calendar providers a participant can connect.
const (
	ProviderGoogle    = "google"
	ProviderMicrosoft = "microsoft"
)

// Participant is a calendar-connected member of an event, stored as a map
// keyed by lowercase email under participants:{eventID}. The refresh token
// is sealed before it ever reaches the store.
type Participant struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Provider string `json:"provider"`

	SealedRefreshToken string `json:"sealedRefreshToken"`

	// SyncEnabled gates the periodic resync. A participant who switches
	// their response to custom editing keeps the connection but stops
	// receiving calendar-derived updates.
	SyncEnabled bool      `json:"syncEnabled"`
	ConnectedAt time.Time `json:"connectedAt"`
}
