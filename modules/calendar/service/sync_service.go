package service

import (
	"context"
	"time"

	"prikkr/core/errors"
	"prikkr/core/logger"
	"prikkr/modules/availability"
	"prikkr/modules/calendar/dto"
	evententity "prikkr/modules/event/entity"
	participantservice "prikkr/modules/participant/service"
	rsvpservice "prikkr/modules/rsvp/service"
)

// resyncThrottle bounds how often an event's calendars are re-fetched when
// viewers keep triggering on-demand resyncs.
const resyncThrottle = 5 * time.Minute

// MetaSource loads event meta records, implemented by the event repository.
type MetaSource interface {
	GetMeta(ctx context.Context, id string) (*evententity.EventMeta, error)
	ListEventIDs(ctx context.Context) ([]string, error)
}

// SyncService recomputes calendar-connected responses from provider data
type SyncService struct {
	meta         MetaSource
	participants participantservice.ParticipantServiceInterface
	rsvp         rsvpservice.RsvpServiceInterface
	fetchers     map[string]BusyFetcher
	loc          *time.Location
}

// SyncServiceInterface defines the service contract
type SyncServiceInterface interface {
	ResyncEvent(ctx context.Context, eventID string, force bool) (*dto.ResyncResponse, *errors.AppError)
	ResyncAll(ctx context.Context) error
}

// NewSyncService creates a new sync service
func NewSyncService(meta MetaSource, participants participantservice.ParticipantServiceInterface, rsvp rsvpservice.RsvpServiceInterface, fetchers map[string]BusyFetcher, loc *time.Location) SyncServiceInterface {
	return &SyncService{
		meta:         meta,
		participants: participants,
		rsvp:         rsvp,
		fetchers:     fetchers,
		loc:          loc,
	}
}

// ResyncEvent re-fetches every connected calendar and rewrites the derived
// responses. Hand-edited responses are left alone by the rsvp layer. A
// recent sync short-circuits unless force is set.
func (s *SyncService) ResyncEvent(ctx context.Context, eventID string, force bool) (*dto.ResyncResponse, *errors.AppError) {
	meta, err := s.meta.GetMeta(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if meta == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	last, err := s.participants.LastSync(ctx, eventID)
	if err != nil {
		logger.Warn("SyncService:ResyncEvent:lastSync", "eventId", eventID, "error", err)
	}
	if !force && !last.IsZero() && time.Since(last) < resyncThrottle {
		return &dto.ResyncResponse{LastSync: &last}, nil
	}

	grid, gerr := availability.NewGrid(meta.SlotDuration, meta.ExtendedHours, s.loc)
	if gerr != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Stored slot duration is invalid", gerr)
	}
	window, gerr := s.eventWindow(meta, grid)
	if gerr != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Stored date range is invalid", gerr)
	}

	connected, err := s.participants.ConnectedParticipants(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load participants", err)
	}

	res := &dto.ResyncResponse{}
	for _, p := range connected {
		fetcher, ok := s.fetchers[p.Provider]
		if !ok {
			logger.Warn("SyncService:ResyncEvent:noFetcher", "eventId", eventID, "provider", p.Provider)
			res.Skipped++
			continue
		}

		busy, err := fetcher.FetchBusy(ctx, p.Email, p.RefreshToken, window.Start, window.End)
		if err != nil {
			// One broken calendar must not block the rest of the event.
			logger.Warn("SyncService:ResyncEvent:fetch", "eventId", eventID, "email", p.Email, "error", err)
			res.Skipped++
			continue
		}

		selections, err := availability.BuildSelections(busy, meta.DateFrom, meta.DateTo, grid)
		if err != nil {
			logger.Error("SyncService:ResyncEvent:build", "eventId", eventID, "email", p.Email, "error", err)
			res.Skipped++
			continue
		}

		written, appErr := s.rsvp.ApplySyncSelections(ctx, eventID, p.Email, p.Name, selections)
		if appErr != nil {
			logger.Error("SyncService:ResyncEvent:apply", "eventId", eventID, "email", p.Email, "error", appErr)
			res.Skipped++
			continue
		}
		if written {
			res.Synced++
		} else {
			res.Skipped++
		}
	}

	now := time.Now()
	if err := s.participants.MarkSynced(ctx, eventID, now); err != nil {
		logger.Warn("SyncService:ResyncEvent:mark", "eventId", eventID, "error", err)
	}
	res.LastSync = &now

	logger.Info("SyncService:ResyncEvent", "eventId", eventID, "synced", res.Synced, "skipped", res.Skipped)
	return res, nil
}

// ResyncAll walks every event for the scheduled background pass. Events
// without connected calendars finish without provider calls.
func (s *SyncService) ResyncAll(ctx context.Context) error {
	ids, err := s.meta.ListEventIDs(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		connected, err := s.participants.ConnectedParticipants(ctx, id)
		if err != nil || len(connected) == 0 {
			continue
		}
		if _, appErr := s.ResyncEvent(ctx, id, true); appErr != nil {
			logger.Warn("SyncService:ResyncAll:event", "eventId", id, "error", appErr)
		}
	}
	return nil
}

// eventWindow spans from the first day's window start to the last day's
// window end, one provider call per participant instead of one per day.
func (s *SyncService) eventWindow(meta *evententity.EventMeta, grid *availability.Grid) (availability.Interval, error) {
	first, err := grid.DayWindow(meta.DateFrom)
	if err != nil {
		return availability.Interval{}, err
	}
	last, err := grid.DayWindow(meta.DateTo)
	if err != nil {
		return availability.Interval{}, err
	}
	return availability.Interval{Start: first.Start, End: last.End}, nil
}
