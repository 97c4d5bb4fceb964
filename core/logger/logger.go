package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	log  *slog.Logger
	once sync.Once
)

// Init configures the global logger. Production gets JSON output, anything
// else a human-readable text handler. Level comes from LOG_LEVEL.
func Init(env string) {
	once.Do(func() {
		level := slog.LevelInfo
		switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}

		opts := &slog.HandlerOptions{Level: level}
		if env == "production" {
			log = slog.New(slog.NewJSONHandler(os.Stdout, opts))
		} else {
			log = slog.New(slog.NewTextHandler(os.Stdout, opts))
		}
	})
}

func get() *slog.Logger {
	if log == nil {
		Init(os.Getenv("GO_ENV"))
	}
	return log
}

func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	get().Error(msg, args...)
}
