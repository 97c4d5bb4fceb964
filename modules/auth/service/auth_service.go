package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/microsoft"

	"prikkr/core/config"
	"prikkr/core/constants"
	"prikkr/core/errors"
	"prikkr/core/logger"
	"prikkr/core/utils"
	"prikkr/modules/auth/dto"
	"prikkr/modules/auth/entity"
	"prikkr/modules/auth/repository"
	participantdto "prikkr/modules/participant/dto"
	participantentity "prikkr/modules/participant/entity"
	participantservice "prikkr/modules/participant/service"
)

const (
	googleUserInfoAPI = "https://www.googleapis.com/oauth2/v2/userinfo"
	graphMeAPI        = "https://graph.microsoft.com/v1.0/me"

	sessionTTL = 30 * 24 * time.Hour
)

// AuthService runs the OAuth flow that connects a calendar to an event
type AuthService struct {
	repo         repository.AuthRepositoryInterface
	participants participantservice.ParticipantServiceInterface
	cfg          *config.Config
}

// AuthServiceInterface defines the service contract
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context, provider, eventID string) (string, *errors.AppError)
	HandleCallback(ctx context.Context, provider, code, state string) (*dto.CallbackResult, *errors.AppError)
}

// NewAuthService creates a new auth service
func NewAuthService(repo repository.AuthRepositoryInterface, participants participantservice.ParticipantServiceInterface, cfg *config.Config) AuthServiceInterface {
	return &AuthService{repo: repo, participants: participants, cfg: cfg}
}

// BeginLogin mints a one-time state token and returns the provider's
// consent URL. Offline access with forced consent so a refresh token is
// issued even on repeat sign-ins.
func (s *AuthService) BeginLogin(ctx context.Context, provider, eventID string) (string, *errors.AppError) {
	oauthCfg, appErr := s.providerConfig(provider)
	if appErr != nil {
		return "", appErr
	}
	if eventID == "" {
		return "", errors.NewAppError(errors.ErrInvalidInput, "Missing event ID", nil)
	}

	state := utils.GenerateRandomString(32)
	if err := s.repo.SaveState(ctx, state, &entity.OAuthState{Provider: provider, EventID: eventID}); err != nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "Failed to store state token", err)
	}

	authURL := oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	logger.Info("AuthService:BeginLogin", "provider", provider, "eventId", eventID)
	return authURL, nil
}

// HandleCallback exchanges the code, resolves the account and connects the
// calendar to the event remembered in the state token.
func (s *AuthService) HandleCallback(ctx context.Context, provider, code, state string) (*dto.CallbackResult, *errors.AppError) {
	oauthCfg, appErr := s.providerConfig(provider)
	if appErr != nil {
		return nil, appErr
	}

	stored, err := s.repo.ConsumeState(ctx, state)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to validate state token", err)
	}
	if stored == nil || stored.Provider != provider {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid or expired state token", nil)
	}

	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:HandleCallback:exchange", "provider", provider, "error", err)
		return nil, errors.NewAppError(errors.ErrProviderAPI, "Failed to exchange authorization code", err)
	}
	if token.RefreshToken == "" {
		return nil, errors.NewAppError(errors.ErrProviderAPI, "Provider did not return a refresh token", nil)
	}

	email, name, appErr := s.fetchUserInfo(ctx, oauthCfg, token, provider)
	if appErr != nil {
		return nil, appErr
	}

	if _, appErr := s.participants.ConnectParticipant(ctx, stored.EventID, &participantdto.ConnectParticipantRequest{
		Email:        email,
		Name:         name,
		Provider:     provider,
		RefreshToken: token.RefreshToken,
	}); appErr != nil {
		return nil, appErr
	}

	sessionToken, err := utils.GenerateSessionToken(s.cfg.Auth.JWTSecret, email, name, provider, sessionTTL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to sign session token", err)
	}

	logger.Info("AuthService:HandleCallback", "provider", provider, "eventId", stored.EventID, "email", email)
	return &dto.CallbackResult{
		SessionToken: sessionToken,
		EventID:      stored.EventID,
		Email:        email,
		Name:         name,
		Provider:     provider,
	}, nil
}

func (s *AuthService) providerConfig(provider string) (*oauth2.Config, *errors.AppError) {
	switch provider {
	case participantentity.ProviderGoogle:
		return &oauth2.Config{
			ClientID:     s.cfg.Google.ClientID,
			ClientSecret: s.cfg.Google.ClientSecret,
			RedirectURL:  s.cfg.Google.RedirectURL,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/calendar.freebusy",
			},
		}, nil
	case participantentity.ProviderMicrosoft:
		return &oauth2.Config{
			ClientID:     s.cfg.AzureAD.ClientID,
			ClientSecret: s.cfg.AzureAD.ClientSecret,
			RedirectURL:  s.cfg.AzureAD.RedirectURL,
			Endpoint:     microsoft.AzureADEndpoint(s.cfg.AzureAD.TenantID),
			Scopes:       []string{"openid", "profile", "email", "offline_access", "User.Read", "Calendars.Read"},
		}, nil
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown calendar provider", nil)
	}
}

func (s *AuthService) fetchUserInfo(ctx context.Context, oauthCfg *oauth2.Config, token *oauth2.Token, provider string) (string, string, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.ProviderTimeout)
	defer cancel()
	client := oauthCfg.Client(ctx, token)

	infoURL := googleUserInfoAPI
	if provider == participantentity.ProviderMicrosoft {
		infoURL = graphMeAPI
	}

	resp, err := client.Get(infoURL)
	if err != nil {
		return "", "", errors.NewAppError(errors.ErrProviderAPI, "Failed to fetch account info", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", errors.NewAppError(errors.ErrProviderAPI,
			fmt.Sprintf("Account info request returned %d", resp.StatusCode), nil)
	}

	var email, name string
	if provider == participantentity.ProviderMicrosoft {
		var info dto.GraphUserInfo
		if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
			return "", "", errors.NewAppError(errors.ErrProviderAPI, "Failed to decode account info", err)
		}
		email, name = info.Email(), info.DisplayName
	} else {
		var info dto.GoogleUserInfo
		if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
			return "", "", errors.NewAppError(errors.ErrProviderAPI, "Failed to decode account info", err)
		}
		email, name = info.Email, info.Name
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", "", errors.NewAppError(errors.ErrProviderAPI, "Provider returned no email address", nil)
	}
	return email, name, nil
}
