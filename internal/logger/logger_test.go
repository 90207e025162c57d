package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
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

	Info("test message", "key", "value", "number", 42)

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if logEntry["service"] != "test-service" {
		t.Errorf("Expected service=test-service, got %v", logEntry["service"])
	}

	if logEntry["version"] != "1.0.0" {
		t.Errorf("Expected version=1.0.0, got %v", logEntry["version"])
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

	if logEntry["key"] != "value" {
		t.Errorf("Expected key=value, got %v", logEntry["key"])
	}
}

func TestTextLoggingRespectsLevel(t *testing.T) {
	var buf bytes.Buffer

	config := Config{
		Level:       "warn",
		Format:      "text",
		ServiceName: "test-service",
		Version:     "dev",
		Environment: "test",
	}

	InitLoggerWithWriter(config, &buf)

	Debug("should be filtered")
	Info("should also be filtered")
	Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "filtered") {
		t.Errorf("Expected debug/info messages to be filtered, got %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("Expected warn message in output, got %q", out)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	ctx := context.Background()

	if _, ok := RequestIDFromContext(ctx); ok {
		t.Error("Expected no request ID in fresh context")
	}

	id := GenerateRequestID()
	ctx = WithRequestID(ctx, id)

	got, ok := RequestIDFromContext(ctx)
	if !ok {
		t.Fatal("Expected request ID in context")
	}
	if got != id {
		t.Errorf("Expected request ID %s, got %s", id, got)
	}

	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: "info", Format: "json", ServiceName: "test-service", Version: "dev", Environment: "test"}, &buf)

	FromContext(ctx).Info("with request id")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if logEntry["request_id"] != id {
		t.Errorf("Expected request_id=%s, got %v", id, logEntry["request_id"])
	}
}
