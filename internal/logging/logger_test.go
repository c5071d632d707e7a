package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/telhawk-systems/telhawk-schema/internal/middleware"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		level  slog.Level
		format string
	}{
		{name: "json format with info level", level: slog.LevelInfo, format: "json"},
		{name: "text format with debug level", level: slog.LevelDebug, format: "text"},
		{name: "default format with error level", level: slog.LevelError, format: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level, tt.format)
			if logger == nil {
				t.Fatal("expected non-nil logger")
			}
			if logger.Logger == nil {
				t.Fatal("expected non-nil underlying logger")
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-abc-123")
	logger.WithContext(ctx).Info("compiling schema")

	out := buf.String()
	if !strings.Contains(out, "req-abc-123") {
		t.Errorf("expected request ID in log output, got: %s", out)
	}
	if !strings.Contains(out, FieldRequestID) {
		t.Errorf("expected %q field in log output, got: %s", FieldRequestID, out)
	}

	buf.Reset()
	logger.WithContext(context.Background()).Info("no request")
	if strings.Contains(buf.String(), FieldRequestID) {
		t.Errorf("expected no request_id field for bare context, got: %s", buf.String())
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	logger.With(Service("schema")).Info("starting")

	if !strings.Contains(buf.String(), `"service":"schema"`) {
		t.Errorf("expected service attribute, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	logger.Logger.Error("load failed", Error(errors.New("no such file")))

	if !strings.Contains(buf.String(), `"error":"no such file"`) {
		t.Errorf("expected error attribute, got: %s", buf.String())
	}
}
