package tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"prikkr/core/constants"
	"prikkr/core/logger"
	"prikkr/modules/calendar/service"
)

// BusyResyncPayload identifies the event to resync
type BusyResyncPayload struct {
	EventID string `json:"eventId"`
	Force   bool   `json:"force"`
}

// NewBusyResyncTask builds the queued resync task for one event
func NewBusyResyncTask(eventID string, force bool) (*asynq.Task, error) {
	payload, err := json.Marshal(BusyResyncPayload{EventID: eventID, Force: force})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskTypeBusyResync, payload, asynq.Queue(constants.QueueDefault)), nil
}

// Handler processes calendar background tasks
type Handler struct {
	sync service.SyncServiceInterface
}

// NewHandler creates the task handler
func NewHandler(sync service.SyncServiceInterface) *Handler {
	return &Handler{sync: sync}
}

// Register attaches the calendar tasks to the worker mux
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(constants.TaskTypeBusyResync, h.HandleBusyResync)
}

// HandleBusyResync runs one queued resync. An empty EventID means a full
// pass over all events, enqueued by the scheduler.
func (h *Handler) HandleBusyResync(ctx context.Context, t *asynq.Task) error {
	var payload BusyResyncPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("CalendarTasks:HandleBusyResync:payload", "error", err)
		return err
	}

	if payload.EventID == "" {
		return h.sync.ResyncAll(ctx)
	}

	if _, appErr := h.sync.ResyncEvent(ctx, payload.EventID, payload.Force); appErr != nil {
		return appErr
	}
	return nil
}
