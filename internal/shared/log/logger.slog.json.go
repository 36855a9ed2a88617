package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joshuarp/msgcontext-gateway/internal/shared/config"
)

const serviceName = "msgcontext-gateway"

func NewJSONLogger(cfg config.ConfigProvider) *slog.Logger {
	return NewJSONLoggerTo(os.Stdout, cfg.GetString("logging.level"))
}

// NewJSONLoggerTo builds the service logger on an arbitrary writer.
func NewJSONLoggerTo(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, attr.Value.Time().UTC().Format(time.RFC3339))
			}
			return attr
		},
	})

	return slog.New(handler).With("service", serviceName)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
