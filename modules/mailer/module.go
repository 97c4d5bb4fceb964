package mailer

import (
	"github.com/hibiken/asynq"

	"prikkr/core/config"
	"prikkr/modules/mailer/service"
	"prikkr/modules/mailer/tasks"
)

// Init wires the mailer: the dispatcher other modules enqueue through and
// the handler the worker registers. The mailer has no HTTP surface.
func Init(cfg *config.Config, client *asynq.Client) (*service.Dispatcher, *tasks.Handler) {
	m := service.NewMailer(cfg.Email)
	renderer := service.NewTemplateRenderer()

	dispatcher := service.NewDispatcher(client, func(template string, to []string, data map[string]string) (*asynq.Task, error) {
		return tasks.NewSendEmailTask(&tasks.SendEmailPayload{Template: template, To: to, Data: data})
	}, cfg.Server.BaseURL)

	return dispatcher, tasks.NewHandler(m, renderer)
}
