package entity

// OAuthState is the one-time CSRF token minted when a login starts. It
// remembers which event the participant was connecting from so the callback
// can send them back.
type OAuthState struct {
	Provider string `json:"provider"`
	EventID  string `json:"eventId"`
}
