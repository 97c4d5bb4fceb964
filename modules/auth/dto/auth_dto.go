package dto

// GoogleUserInfo is the oauth2/v2 userinfo payload
type GoogleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GraphUserInfo is the Graph /me payload
type GraphUserInfo struct {
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
	DisplayName       string `json:"displayName"`
}

// Email prefers the mailbox address; accounts without one fall back to the
// principal name.
func (u *GraphUserInfo) Email() string {
	if u.Mail != "" {
		return u.Mail
	}
	return u.UserPrincipalName
}

// CallbackResult is what a completed OAuth callback produces
type CallbackResult struct {
	SessionToken string
	EventID      string
	Email        string
	Name         string
	Provider     string
}

// SessionResponse describes the signed-in account
type SessionResponse struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}
