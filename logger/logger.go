package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// CreateLogger returns a JSON logger in PROD and a colored console logger elsewhere.
func CreateLogger(env string) *slog.Logger {
	var handler slog.Handler

	if env == "PROD" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		})
	}

	l := slog.New(handler).With(slog.String("service", "gateway"))
	slog.SetDefault(l)
	return l
}
