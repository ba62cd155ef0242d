package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"datasets/internal/app/server/config"
	"datasets/internal/utils/logger/handlers/slogpretty"
)

// New returns the logger for env: pretty debug output locally, JSON otherwise.
func New(env string) *slog.Logger {
	return NewWithLevel(env, "")
}

// NewWithLevel is New with an explicit level ("debug", "info", "warn",
// "error"); an empty or unknown level keeps the env default.
func NewWithLevel(env, level string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = setupPrettySlog(parseLevel(level, slog.LevelDebug))
	case config.EnvDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(level, slog.LevelDebug)}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(level, slog.LevelInfo)}),
		)
	}

	return log
}

func setupPrettySlog(level slog.Level) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

func parseLevel(level string, fallback slog.Level) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}

// Err is a shorthand attribute for errors.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
