package dto

import (
	"time"

	"prikkr/modules/participant/entity"
)

// ConnectParticipantRequest links a calendar account to an event. The
// refresh token arrives from the OAuth callback, never from clients.
type ConnectParticipantRequest struct {
	Email        string
	Name         string
	Provider     string
	RefreshToken string
}

// ParticipantView is the public view of a participant; tokens never leave
// the service.
type ParticipantView struct {
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Provider    string    `json:"provider"`
	SyncEnabled bool      `json:"syncEnabled"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// ListParticipantsResponse lists an event's connected calendars
type ListParticipantsResponse struct {
	Participants []ParticipantView `json:"participants"`
	LastSync     *time.Time        `json:"lastSync,omitempty"`
}

// SetSyncRequest toggles periodic resync for one participant
type SetSyncRequest struct {
	Enabled bool `json:"enabled"`
}

// ToParticipantView maps a stored participant
func ToParticipantView(p *entity.Participant) ParticipantView {
	return ParticipantView{
		Email:       p.Email,
		Name:        p.Name,
		Provider:    p.Provider,
		SyncEnabled: p.SyncEnabled,
		ConnectedAt: p.ConnectedAt,
	}
}
