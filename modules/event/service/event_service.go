package service

import (
	"context"
	"strings"
	"time"

	"prikkr/core/constants"
	"prikkr/core/errors"
	"prikkr/core/logger"
	"prikkr/core/utils"
	"prikkr/modules/availability"
	"prikkr/modules/event/dto"
	"prikkr/modules/event/entity"
	"prikkr/modules/event/repository"
)

// MailDispatcher enqueues the notification emails the event lifecycle
// produces. Implemented by the mailer module; nil disables notifications.
type MailDispatcher interface {
	DispatchEventCreated(ctx context.Context, event *entity.EventMeta, shareURL string) error
	DispatchFinalDate(ctx context.Context, event *entity.EventMeta, recipients []string) error
}

// ResponderSource lists the email addresses of everyone who responded to an
// event. Implemented by the rsvp module.
type ResponderSource interface {
	ResponderEmails(ctx context.Context, eventID string) ([]string, error)
}

// EventService handles event lifecycle business logic
type EventService struct {
	repo       repository.EventRepositoryInterface
	mailer     MailDispatcher
	responders ResponderSource
	loc        *time.Location
	baseURL    string
}

// EventServiceInterface defines the service contract
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEvent(ctx context.Context, id string) (*dto.EventResponse, *errors.AppError)
	FinalizeEvent(ctx context.Context, id string, req *dto.FinalizeEventRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, id string, creatorEmail string) *errors.AppError
	CleanupExpired(ctx context.Context) (*dto.CleanupResponse, *errors.AppError)
}

// NewEventService creates a new event service
func NewEventService(repo repository.EventRepositoryInterface, mailer MailDispatcher, responders ResponderSource, loc *time.Location, baseURL string) EventServiceInterface {
	return &EventService{
		repo:       repo,
		mailer:     mailer,
		responders: responders,
		loc:        loc,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// CreateEvent validates the request, derives the slot grid once to reject
// impossible configurations, and stores the meta record.
func (s *EventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Event name is required", nil)
	}
	creatorEmail := strings.ToLower(strings.TrimSpace(req.CreatorEmail))
	if !strings.Contains(creatorEmail, "@") {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "A valid creator email is required", nil)
	}

	duration := req.SlotDuration
	if duration == 0 {
		duration = constants.DefaultSlotDuration
	}
	grid, err := availability.NewGrid(duration, req.ExtendedHours, s.loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid slot duration", err)
	}

	dates, err := availability.DatesInRange(req.DateFrom, req.DateTo, s.loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid date range", err)
	}
	if len(dates) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Date range must contain at least one day", nil)
	}

	now := time.Now().In(s.loc)
	meta := &entity.EventMeta{
		ID:            utils.GenerateEventID(name),
		Name:          name,
		CreatorName:   strings.TrimSpace(req.CreatorName),
		CreatorEmail:  creatorEmail,
		DateFrom:      req.DateFrom,
		DateTo:        req.DateTo,
		SlotDuration:  duration,
		ExtendedHours: req.ExtendedHours,
		CreatedAt:     now,
		TouchedAt:     now,
	}

	if err := s.repo.SaveMeta(ctx, meta); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create event", err)
	}

	if s.mailer != nil {
		if err := s.mailer.DispatchEventCreated(ctx, meta, s.shareURL(meta.ID)); err != nil {
			logger.Warn("EventService:CreateEvent:mail", "id", meta.ID, "error", err)
		}
	}

	logger.Info("EventService:CreateEvent", "id", meta.ID, "days", len(dates))
	return dto.ToEventResponse(meta, dates, grid.Labels()), nil
}

// GetEvent loads an event and refreshes its retention marker. The marker
// write is throttled so hot events do not rewrite meta on every page view.
func (s *EventService) GetEvent(ctx context.Context, id string) (*dto.EventResponse, *errors.AppError) {
	meta, err := s.repo.GetMeta(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if meta == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	if time.Since(meta.TouchedAt) >= constants.TouchThrottle {
		meta.TouchedAt = time.Now().In(s.loc)
		if err := s.repo.SaveMeta(ctx, meta); err != nil {
			logger.Warn("EventService:GetEvent:touch", "id", id, "error", err)
		}
	}

	return s.toResponse(meta)
}

// FinalizeEvent records the creator's chosen date and notifies everyone who
// responded. Only the creator may finalize, and only once.
func (s *EventService) FinalizeEvent(ctx context.Context, id string, req *dto.FinalizeEventRequest) (*dto.EventResponse, *errors.AppError) {
	meta, err := s.repo.GetMeta(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if meta == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if !strings.EqualFold(strings.TrimSpace(req.CreatorEmail), meta.CreatorEmail) {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the event creator can pick the final date", nil)
	}
	if meta.Finalized() {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Event already has a final date", nil)
	}

	dates, derr := availability.DatesInRange(meta.DateFrom, meta.DateTo, s.loc)
	if derr != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Stored date range is invalid", derr)
	}
	if !containsString(dates, req.Date) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Final date is outside the event's range", nil)
	}

	meta.FinalDate = req.Date
	meta.FinalSlot = strings.TrimSpace(req.Slot)
	meta.TouchedAt = time.Now().In(s.loc)
	if err := s.repo.SaveMeta(ctx, meta); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to finalize event", err)
	}

	if s.mailer != nil && s.responders != nil {
		recipients, rerr := s.responders.ResponderEmails(ctx, id)
		if rerr != nil {
			logger.Warn("EventService:FinalizeEvent:responders", "id", id, "error", rerr)
		} else if len(recipients) > 0 {
			if err := s.mailer.DispatchFinalDate(ctx, meta, recipients); err != nil {
				logger.Warn("EventService:FinalizeEvent:mail", "id", id, "error", err)
			}
		}
	}

	logger.Info("EventService:FinalizeEvent", "id", id, "date", req.Date, "slot", meta.FinalSlot)
	return s.toResponse(meta)
}

// DeleteEvent removes an event and all its stored data
func (s *EventService) DeleteEvent(ctx context.Context, id string, creatorEmail string) *errors.AppError {
	meta, err := s.repo.GetMeta(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if meta == nil {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if !strings.EqualFold(strings.TrimSpace(creatorEmail), meta.CreatorEmail) {
		return errors.NewAppError(errors.ErrForbidden, "Only the event creator can delete the event", nil)
	}

	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete event", err)
	}
	logger.Info("EventService:DeleteEvent", "id", id)
	return nil
}

// CleanupExpired removes events untouched for longer than the retention
// period. Invoked by the scheduled job and the cron endpoint.
func (s *EventService) CleanupExpired(ctx context.Context) (*dto.CleanupResponse, *errors.AppError) {
	ids, err := s.repo.ListEventIDs(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list events", err)
	}

	res := &dto.CleanupResponse{Scanned: len(ids)}
	cutoff := time.Now().Add(-constants.EventRetention)
	for _, id := range ids {
		meta, err := s.repo.GetMeta(ctx, id)
		if err != nil || meta == nil {
			continue
		}
		if meta.TouchedAt.After(cutoff) {
			continue
		}
		if err := s.repo.DeleteEvent(ctx, id); err != nil {
			logger.Warn("EventService:CleanupExpired:delete", "id", id, "error", err)
			continue
		}
		res.Removed++
	}

	logger.Info("EventService:CleanupExpired", "scanned", res.Scanned, "removed", res.Removed)
	return res, nil
}

func (s *EventService) toResponse(meta *entity.EventMeta) (*dto.EventResponse, *errors.AppError) {
	grid, err := availability.NewGrid(meta.SlotDuration, meta.ExtendedHours, s.loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Stored slot duration is invalid", err)
	}
	dates, err := availability.DatesInRange(meta.DateFrom, meta.DateTo, s.loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Stored date range is invalid", err)
	}
	return dto.ToEventResponse(meta, dates, grid.Labels()), nil
}

func (s *EventService) shareURL(id string) string {
	return s.baseURL + "/" + id
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
