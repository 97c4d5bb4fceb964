package service

import (
	"context"
	"strings"

	"github.com/hibiken/asynq"

	evententity "prikkr/modules/event/entity"
)

// taskBuilder builds the queued email task; injected so the dispatcher does
// not import the tasks package (which imports this one).
type taskBuilder func(template string, to []string, data map[string]string) (*asynq.Task, error)

// Dispatcher enqueues notification emails on the mail queue. Sending
// happens on the worker so HTTP requests never wait on SES.
type Dispatcher struct {
	client  *asynq.Client
	build   taskBuilder
	baseURL string
}

// NewDispatcher creates the dispatcher
func NewDispatcher(client *asynq.Client, build taskBuilder, baseURL string) *Dispatcher {
	return &Dispatcher{client: client, build: build, baseURL: strings.TrimRight(baseURL, "/")}
}

// DispatchEventCreated emails the creator their share link
func (d *Dispatcher) DispatchEventCreated(ctx context.Context, event *evententity.EventMeta, shareURL string) error {
	return d.enqueue(ctx, "event_created", []string{event.CreatorEmail}, map[string]string{
		"Name":      event.CreatorName,
		"EventName": event.Name,
		"ShareURL":  shareURL,
	})
}

// DispatchFinalDate emails everyone who responded the picked date
func (d *Dispatcher) DispatchFinalDate(ctx context.Context, event *evententity.EventMeta, recipients []string) error {
	return d.enqueue(ctx, "final_date", recipients, map[string]string{
		"EventName": event.Name,
		"FinalDate": event.FinalDate,
		"FinalSlot": event.FinalSlot,
		"ShareURL":  d.baseURL + "/" + event.ID,
	})
}

// DispatchRsvpConfirmation emails a participant that their answer is stored
func (d *Dispatcher) DispatchRsvpConfirmation(ctx context.Context, eventID, eventName, email, name string) error {
	return d.enqueue(ctx, "rsvp_confirmation", []string{email}, map[string]string{
		"Name":      name,
		"EventName": eventName,
		"ShareURL":  d.baseURL + "/" + eventID,
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, template string, to []string, data map[string]string) error {
	task, err := d.build(template, to, data)
	if err != nil {
		return err
	}
	_, err = d.client.EnqueueContext(ctx, task)
	return err
}
