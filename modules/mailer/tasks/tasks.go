package tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"prikkr/core/constants"
	"prikkr/core/logger"
	"prikkr/modules/mailer/service"
)

// SendEmailPayload is one rendered-template send to a recipient list
type SendEmailPayload struct {
	Template string            `json:"template"`
	To       []string          `json:"to"`
	Data     map[string]string `json:"data"`
}

// NewSendEmailTask builds a queued email task
func NewSendEmailTask(payload *SendEmailPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskTypeSendEmail, raw,
		asynq.Queue(constants.QueueMail),
		asynq.MaxRetry(3),
	), nil
}

// Handler processes queued emails on the worker
type Handler struct {
	mailer   service.Mailer
	renderer *service.TemplateRenderer
}

// NewHandler creates the task handler
func NewHandler(mailer service.Mailer, renderer *service.TemplateRenderer) *Handler {
	return &Handler{mailer: mailer, renderer: renderer}
}

// Register attaches the mailer tasks to the worker mux
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(constants.TaskTypeSendEmail, h.HandleSendEmail)
}

// HandleSendEmail renders the template once and delivers it to each
// recipient. A failed recipient fails the task so asynq retries it.
func (h *Handler) HandleSendEmail(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("MailerTasks:HandleSendEmail:payload", "error", err)
		return err
	}

	subject, html, text, err := h.renderer.Render(payload.Template, payload.Data)
	if err != nil {
		logger.Error("MailerTasks:HandleSendEmail:render", "template", payload.Template, "error", err)
		return err
	}

	for _, to := range payload.To {
		if err := h.mailer.Send(ctx, to, subject, html, text); err != nil {
			logger.Error("MailerTasks:HandleSendEmail:send", "template", payload.Template, "to", to, "error", err)
			return err
		}
	}
	return nil
}
