package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer

	config := Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
		AddSource:   false,
	}

	InitLoggerWithWriter(config, &buf)

	slog.Info("test message", "key", "value", "number", 42)

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if logEntry["service"] != "test-service" {
		t.Errorf("Expected service=test-service, got %v", logEntry["service"])
	}

	if logEntry["environment"] != "test" {
		t.Errorf("Expected environment=test, got %v", logEntry["environment"])
	}

	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", logEntry["msg"])
	}

	if logEntry["level"] != "INFO" {
		t.Errorf("Expected level=INFO, got %v", logEntry["level"])
	}

	if logEntry["number"] != float64(42) {
		t.Errorf("Expected number=42, got %v", logEntry["number"])
	}
}

func TestCycleIDContext(t *testing.T) {
	ctx := WithCycleID(context.Background(), "test-cycle-123")

	id, ok := CycleIDFromContext(ctx)
	if !ok || id != "test-cycle-123" {
		t.Errorf("Expected cycle_id=test-cycle-123, got %s", id)
	}

	if log := FromContext(ctx); log == nil {
		t.Error("Expected non-nil logger")
	}
}

func TestCycleIDLoggedAsAttribute(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: "info", Format: "json"}, &buf)

	ctx := WithCycleID(context.Background(), "abc-123")
	FromContext(ctx).Info("cycle started")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if logEntry[AttrKeyCycleID] != "abc-123" {
		t.Errorf("Expected cycle_id=abc-123, got %v", logEntry[AttrKeyCycleID])
	}
}

func TestLogLevelParsing(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := (Config{Level: in}).LogLevel(); got != want {
			t.Errorf("LogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
