package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"prikkr/core/constants"
	"prikkr/core/errors"
	"prikkr/core/logger"
	"prikkr/modules/availability"
	"prikkr/modules/event/entity"
	"prikkr/modules/rsvp/dto"
	rsvpentity "prikkr/modules/rsvp/entity"
	"prikkr/modules/rsvp/repository"
)

// topDateCount is how many candidate dates the results view surfaces.
const topDateCount = 3

// MetaSource loads event meta records. Implemented by the event module's
// repository.
type MetaSource interface {
	GetMeta(ctx context.Context, id string) (*entity.EventMeta, error)
}

// MailDispatcher sends the confirmation email after a manual save.
// Implemented by the mailer module; nil disables confirmations.
type MailDispatcher interface {
	DispatchRsvpConfirmation(ctx context.Context, eventID, eventName, email, name string) error
}

// RsvpService handles response business logic
type RsvpService struct {
	repo   repository.RsvpRepositoryInterface
	meta   MetaSource
	mailer MailDispatcher
	loc    *time.Location
}

// RsvpServiceInterface defines the service contract
type RsvpServiceInterface interface {
	SaveResponse(ctx context.Context, eventID string, req *dto.SaveResponseRequest) (*dto.ResponseView, *errors.AppError)
	ApplySyncSelections(ctx context.Context, eventID, email, name string, selections map[string][]string) (bool, *errors.AppError)
	ListResponses(ctx context.Context, eventID string) (*dto.ListResponsesResponse, *errors.AppError)
	GetResults(ctx context.Context, eventID string) (*dto.ResultsResponse, *errors.AppError)
	ResponderEmails(ctx context.Context, eventID string) ([]string, error)
}

// NewRsvpService creates a new rsvp service
func NewRsvpService(repo repository.RsvpRepositoryInterface, meta MetaSource, mailer MailDispatcher, loc *time.Location) RsvpServiceInterface {
	return &RsvpService{repo: repo, meta: meta, mailer: mailer, loc: loc}
}

// SaveResponse stores a participant's answer, replacing any previous answer
// under the same email. Selections are normalized against the event's grid
// before they are stored.
func (s *RsvpService) SaveResponse(ctx context.Context, eventID string, req *dto.SaveResponseRequest) (*dto.ResponseView, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(email, "@") {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "A valid email is required", nil)
	}

	meta, grid, appErr := s.eventGrid(ctx, eventID)
	if appErr != nil {
		return nil, appErr
	}

	selections, appErr := s.normalizeSelections(meta, grid, req.Selections)
	if appErr != nil {
		return nil, appErr
	}

	responses, err := s.repo.GetResponses(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load responses", err)
	}

	resp := rsvpentity.Response{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Selections: selections,
		Custom:     req.Custom,
		UpdatedAt:  time.Now(),
	}
	responses[email] = resp

	if err := s.repo.SaveResponses(ctx, eventID, responses); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to save response", err)
	}

	if s.mailer != nil {
		if err := s.mailer.DispatchRsvpConfirmation(ctx, eventID, meta.Name, email, resp.Name); err != nil {
			logger.Warn("RsvpService:SaveResponse:mail", "eventId", eventID, "email", email, "error", err)
		}
	}

	logger.Info("RsvpService:SaveResponse", "eventId", eventID, "email", email, "custom", req.Custom)
	view := dto.ToResponseView(&resp)
	return &view, nil
}

// ApplySyncSelections writes calendar-derived selections for a participant.
// A hand-edited response is left untouched; the bool reports whether the
// write happened.
func (s *RsvpService) ApplySyncSelections(ctx context.Context, eventID, email, name string, selections map[string][]string) (bool, *errors.AppError) {
	email = strings.ToLower(strings.TrimSpace(email))

	responses, err := s.repo.GetResponses(ctx, eventID)
	if err != nil {
		return false, errors.NewAppError(errors.ErrInternalServer, "Failed to load responses", err)
	}

	if existing, ok := responses[email]; ok && existing.Custom {
		logger.Debug("RsvpService:ApplySyncSelections:frozen", "eventId", eventID, "email", email)
		return false, nil
	}

	meta, grid, appErr := s.eventGrid(ctx, eventID)
	if appErr != nil {
		return false, appErr
	}
	normalized, appErr := s.normalizeSelections(meta, grid, selections)
	if appErr != nil {
		return false, appErr
	}

	if name == "" {
		if existing, ok := responses[email]; ok {
			name = existing.Name
		}
	}
	responses[email] = rsvpentity.Response{
		Name:       name,
		Email:      email,
		Selections: normalized,
		UpdatedAt:  time.Now(),
	}

	if err := s.repo.SaveResponses(ctx, eventID, responses); err != nil {
		return false, errors.NewAppError(errors.ErrInternalServer, "Failed to save response", err)
	}
	return true, nil
}

// ListResponses returns everyone's answers, ordered by email for a stable
// listing.
func (s *RsvpService) ListResponses(ctx context.Context, eventID string) (*dto.ListResponsesResponse, *errors.AppError) {
	if _, appErr := s.requireEvent(ctx, eventID); appErr != nil {
		return nil, appErr
	}

	responses, err := s.repo.GetResponses(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load responses", err)
	}

	emails := make([]string, 0, len(responses))
	for email := range responses {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	out := &dto.ListResponsesResponse{Responses: make([]dto.ResponseView, 0, len(emails))}
	for _, email := range emails {
		resp := responses[email]
		out.Responses = append(out.Responses, dto.ToResponseView(&resp))
	}
	return out, nil
}

// GetResults aggregates all responses into the heat map, the ranked slot
// list and the top candidate dates.
func (s *RsvpService) GetResults(ctx context.Context, eventID string) (*dto.ResultsResponse, *errors.AppError) {
	if _, appErr := s.requireEvent(ctx, eventID); appErr != nil {
		return nil, appErr
	}

	responses, err := s.repo.GetResponses(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load responses", err)
	}

	all := make([]availability.ParticipantSelections, 0, len(responses))
	for _, resp := range responses {
		if !resp.Engaged() {
			continue
		}
		all = append(all, availability.ParticipantSelections(resp.Selections))
	}

	result := availability.Aggregate(all)
	return &dto.ResultsResponse{
		Total:    result.Total,
		Heatmap:  result.Heatmap,
		Ranked:   result.Ranked(),
		TopDates: result.TopDates(topDateCount),
	}, nil
}

// ResponderEmails lists the emails of everyone who responded, for final-date
// notifications.
func (s *RsvpService) ResponderEmails(ctx context.Context, eventID string) ([]string, error) {
	responses, err := s.repo.GetResponses(ctx, eventID)
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(responses))
	for email := range responses {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails, nil
}

func (s *RsvpService) requireEvent(ctx context.Context, eventID string) (*entity.EventMeta, *errors.AppError) {
	meta, err := s.meta.GetMeta(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if meta == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return meta, nil
}

func (s *RsvpService) eventGrid(ctx context.Context, eventID string) (*entity.EventMeta, *availability.Grid, *errors.AppError) {
	meta, appErr := s.requireEvent(ctx, eventID)
	if appErr != nil {
		return nil, nil, appErr
	}
	grid, err := availability.NewGrid(meta.SlotDuration, meta.ExtendedHours, s.loc)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Stored slot duration is invalid", err)
	}
	return meta, grid, nil
}

// normalizeSelections filters submitted selections to the event's dates and
// slot labels. The legacy "~All Day" marker collapses to "All Day"; labels
// outside the grid and dates outside the range are dropped. Kept labels are
// re-ordered to grid order so stored responses compare bytewise.
func (s *RsvpService) normalizeSelections(meta *entity.EventMeta, grid *availability.Grid, selections map[string][]string) (map[string][]string, *errors.AppError) {
	dates, err := availability.DatesInRange(meta.DateFrom, meta.DateTo, s.loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Stored date range is invalid", err)
	}
	validDates := make(map[string]bool, len(dates))
	for _, d := range dates {
		validDates[d] = true
	}

	gridLabels := grid.Labels()
	validLabels := make(map[string]bool, len(gridLabels))
	for _, l := range gridLabels {
		validLabels[l] = true
	}

	normalized := make(map[string][]string, len(selections))
	for date, labels := range selections {
		if !validDates[date] {
			logger.Debug("RsvpService:normalizeSelections:dropDate", "eventId", meta.ID, "date", date)
			continue
		}

		picked := make(map[string]bool, len(labels))
		for _, label := range labels {
			if label == constants.SlotLabelAllDayPartial {
				label = constants.SlotLabelAllDay
			}
			if validLabels[label] {
				picked[label] = true
			}
		}

		kept := make([]string, 0, len(picked))
		for _, l := range gridLabels {
			if picked[l] {
				kept = append(kept, l)
			}
		}
		normalized[date] = kept
	}
	return normalized, nil
}
