package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"prikkr/core/cache"
	"prikkr/core/config"
	"prikkr/core/constants"
	"prikkr/core/logger"
	"prikkr/core/middleware"
	"prikkr/core/utils"
	"prikkr/modules/auth"
	"prikkr/modules/calendar"
	"prikkr/modules/event"
	"prikkr/modules/mailer"
	"prikkr/modules/participant"
	"prikkr/modules/rsvp"
)

// Run starts the HTTP server and the task worker and blocks until shutdown
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.Env)

	loc, err := time.LoadLocation(cfg.Scheduling.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Scheduling.Timezone, err)
	}

	store, err := cache.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer store.Close()

	sealer, err := utils.NewTokenSealer(cfg.Auth.TokenSealKey)
	if err != nil {
		return fmt.Errorf("token sealer: %w", err)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	tasksClient := asynq.NewClient(redisOpt)
	defer tasksClient.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.Server.BaseURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error {
		if err := store.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := middleware.New(cfg)

	// Module wiring. The rsvp service feeds both the event module
	// (final-date recipients) and the calendar sync.
	mailDispatcher, mailHandler := mailer.Init(cfg, tasksClient)
	rsvpSvc := rsvp.Init(e, store, mw, loc, mailDispatcher)
	eventSvc := event.Init(e, store, cfg, mw, loc, mailDispatcher, rsvpSvc)
	participantSvc := participant.Init(e, store, mw, sealer)
	calendarHandler := calendar.Init(e, store, cfg, mw, loc, participantSvc, rsvpSvc, tasksClient)
	auth.Init(e, store, cfg, mw, participantSvc, tasksClient)

	worker := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			constants.QueueDefault: 3,
			constants.QueueMail:    1,
		},
	})
	mux := asynq.NewServeMux()
	calendarHandler.Register(mux)
	mailHandler.Register(mux)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Location: loc})
	if _, err := scheduler.Register(cfg.Scheduling.ResyncInterval,
		asynq.NewTask(constants.TaskTypeBusyResync, []byte(`{}`), asynq.Queue(constants.QueueDefault))); err != nil {
		return fmt.Errorf("register resync schedule: %w", err)
	}
	if _, err := scheduler.Register("@daily",
		asynq.NewTask(taskTypeCleanup, nil, asynq.Queue(constants.QueueDefault))); err != nil {
		return fmt.Errorf("register cleanup schedule: %w", err)
	}
	mux.HandleFunc(taskTypeCleanup, func(ctx context.Context, _ *asynq.Task) error {
		_, appErr := eventSvc.CleanupExpired(ctx)
		if appErr != nil {
			return appErr
		}
		return nil
	})

	errCh := make(chan error, 3)
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info("Server:Run", "addr", addr, "env", cfg.Server.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	go func() {
		if err := worker.Run(mux); err != nil {
			errCh <- err
		}
	}()
	go func() {
		if err := scheduler.Run(); err != nil {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Server:Shutdown", "signal", sig.String())
	}

	scheduler.Shutdown()
	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}

const taskTypeCleanup = "event:cleanup"
