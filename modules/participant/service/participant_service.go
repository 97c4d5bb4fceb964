package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"prikkr/core/errors"
	"prikkr/core/logger"
	"prikkr/core/utils"
	"prikkr/modules/participant/dto"
	"prikkr/modules/participant/entity"
	"prikkr/modules/participant/repository"
)

// ConnectedParticipant is a participant with the refresh token unsealed,
// handed to the calendar fetchers and nothing else.
type ConnectedParticipant struct {
	Email        string
	Name         string
	Provider     string
	RefreshToken string
}

// ParticipantService handles calendar connection business logic
type ParticipantService struct {
	repo   repository.ParticipantRepositoryInterface
	sealer *utils.TokenSealer
}

// ParticipantServiceInterface defines the service contract
type ParticipantServiceInterface interface {
	ConnectParticipant(ctx context.Context, eventID string, req *dto.ConnectParticipantRequest) (*dto.ParticipantView, *errors.AppError)
	ListParticipants(ctx context.Context, eventID string) (*dto.ListParticipantsResponse, *errors.AppError)
	SetSyncEnabled(ctx context.Context, eventID, email string, enabled bool) (*dto.ParticipantView, *errors.AppError)
	RemoveParticipant(ctx context.Context, eventID, email string) *errors.AppError
	ConnectedParticipants(ctx context.Context, eventID string) ([]ConnectedParticipant, error)
	LastSync(ctx context.Context, eventID string) (time.Time, error)
	MarkSynced(ctx context.Context, eventID string, at time.Time) error
}

// NewParticipantService creates a new participant service
func NewParticipantService(repo repository.ParticipantRepositoryInterface, sealer *utils.TokenSealer) ParticipantServiceInterface {
	return &ParticipantService{repo: repo, sealer: sealer}
}

// ConnectParticipant stores a calendar connection, sealing the refresh
// token. Reconnecting replaces the previous token and re-enables sync.
func (s *ParticipantService) ConnectParticipant(ctx context.Context, eventID string, req *dto.ConnectParticipantRequest) (*dto.ParticipantView, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(email, "@") {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "A valid email is required", nil)
	}
	if req.Provider != entity.ProviderGoogle && req.Provider != entity.ProviderMicrosoft {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown calendar provider", nil)
	}
	if req.RefreshToken == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Missing refresh token", nil)
	}

	sealed, err := s.sealer.Seal(req.RefreshToken)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to seal token", err)
	}

	participants, err := s.repo.GetParticipants(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load participants", err)
	}

	p := entity.Participant{
		Email:              email,
		Name:               strings.TrimSpace(req.Name),
		Provider:           req.Provider,
		SealedRefreshToken: sealed,
		SyncEnabled:        true,
		ConnectedAt:        time.Now(),
	}
	participants[email] = p

	if err := s.repo.SaveParticipants(ctx, eventID, participants); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to save participant", err)
	}

	logger.Info("ParticipantService:ConnectParticipant", "eventId", eventID, "email", email, "provider", req.Provider)
	view := dto.ToParticipantView(&p)
	return &view, nil
}

// ListParticipants returns the event's connections ordered by email.
func (s *ParticipantService) ListParticipants(ctx context.Context, eventID string) (*dto.ListParticipantsResponse, *errors.AppError) {
	participants, err := s.repo.GetParticipants(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load participants", err)
	}

	emails := make([]string, 0, len(participants))
	for email := range participants {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	out := &dto.ListParticipantsResponse{Participants: make([]dto.ParticipantView, 0, len(emails))}
	for _, email := range emails {
		p := participants[email]
		out.Participants = append(out.Participants, dto.ToParticipantView(&p))
	}

	if last, err := s.repo.GetLastSync(ctx, eventID); err == nil && !last.IsZero() {
		out.LastSync = &last
	}
	return out, nil
}

// SetSyncEnabled toggles the periodic resync for one connection.
func (s *ParticipantService) SetSyncEnabled(ctx context.Context, eventID, email string, enabled bool) (*dto.ParticipantView, *errors.AppError) {
	email = strings.ToLower(strings.TrimSpace(email))

	participants, err := s.repo.GetParticipants(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load participants", err)
	}
	p, ok := participants[email]
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "Participant not found", nil)
	}

	p.SyncEnabled = enabled
	participants[email] = p
	if err := s.repo.SaveParticipants(ctx, eventID, participants); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to save participant", err)
	}

	view := dto.ToParticipantView(&p)
	return &view, nil
}

// RemoveParticipant disconnects a calendar and discards its sealed token.
func (s *ParticipantService) RemoveParticipant(ctx context.Context, eventID, email string) *errors.AppError {
	email = strings.ToLower(strings.TrimSpace(email))

	participants, err := s.repo.GetParticipants(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load participants", err)
	}
	if _, ok := participants[email]; !ok {
		return errors.NewAppError(errors.ErrNotFound, "Participant not found", nil)
	}

	delete(participants, email)
	if err := s.repo.SaveParticipants(ctx, eventID, participants); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to save participant", err)
	}
	logger.Info("ParticipantService:RemoveParticipant", "eventId", eventID, "email", email)
	return nil
}

// ConnectedParticipants unseals the sync-enabled connections for the
// resync job. Connections whose token fails to open are skipped, not fatal.
func (s *ParticipantService) ConnectedParticipants(ctx context.Context, eventID string) ([]ConnectedParticipant, error) {
	participants, err := s.repo.GetParticipants(ctx, eventID)
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(participants))
	for email := range participants {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	out := make([]ConnectedParticipant, 0, len(emails))
	for _, email := range emails {
		p := participants[email]
		if !p.SyncEnabled {
			continue
		}
		token, err := s.sealer.Open(p.SealedRefreshToken)
		if err != nil {
			logger.Warn("ParticipantService:ConnectedParticipants:unseal", "eventId", eventID, "email", email, "error", err)
			continue
		}
		out = append(out, ConnectedParticipant{
			Email:        p.Email,
			Name:         p.Name,
			Provider:     p.Provider,
			RefreshToken: token,
		})
	}
	return out, nil
}

func (s *ParticipantService) LastSync(ctx context.Context, eventID string) (time.Time, error) {
	return s.repo.GetLastSync(ctx, eventID)
}

func (s *ParticipantService) MarkSynced(ctx context.Context, eventID string, at time.Time) error {
	return s.repo.SetLastSync(ctx, eventID, at)
}
