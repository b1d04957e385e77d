package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const cycleIDKey ctxKey = "cycleID"

// GenerateCycleID creates a new UUID for tracing one scheduling cycle across
// the API calls and state updates it triggers.
func GenerateCycleID() string {
	return uuid.NewString()
}

// WithCycleID returns a new context containing the cycle ID.
func WithCycleID(ctx context.Context, cycleID string) context.Context {
	return context.WithValue(ctx, cycleIDKey, cycleID)
}

// CycleIDFromContext extracts the cycle ID from the context, if present.
func CycleIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(cycleIDKey)
	if v == nil {
		return "", false
	}
	if id, ok := v.(string); ok {
		return id, true
	}
	return "", false
}

// FromContext returns a logger that includes the cycle_id attribute when present.
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := CycleIDFromContext(ctx); ok {
		return slog.Default().With(AttrKeyCycleID, id)
	}
	return slog.Default()
}

// InitLogger installs the configured handler as the process default logger.
func InitLogger(cfg Config) {
	InitLoggerWithWriter(cfg, os.Stdout)
}

// InitLoggerWithWriter is InitLogger with an explicit output, used by tests.
func InitLoggerWithWriter(cfg Config, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	handler = handler.WithAttrs(cfg.BaseAttributes())
	slog.SetDefault(slog.New(handler))
}
