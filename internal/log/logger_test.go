package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/primelabs/primed/internal/config"
)

func TestNewLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.Info("sieve computed", "min_prime", 0, "max_prime", 150)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if record["msg"] != "sieve computed" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["max_prime"] != float64(150) {
		t.Errorf("max_prime = %v", record["max_prime"])
	}
}

func TestNewLoggerWithWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "INFO")

	logger.Info("server started", "port", 8080)

	out := buf.String()
	if !strings.Contains(out, "INF") {
		t.Errorf("missing level label: %s", out)
	}
	if !strings.Contains(out, "server started") {
		t.Errorf("missing message: %s", out)
	}
	if !strings.Contains(out, "port=") {
		t.Errorf("missing attribute: %s", out)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "WARN")

	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low-level records leaked: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCorrelationID_RoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "abc-123")

	if got := CorrelationID(ctx); got != "abc-123" {
		t.Errorf("CorrelationID = %q", got)
	}
	if got := CorrelationID(context.Background()); got != "" {
		t.Errorf("CorrelationID on empty context = %q", got)
	}
}

func TestWithContext_AddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "INFO")

	ctx := WithCorrelationID(context.Background(), "corr-9")
	logger.WithContext(ctx).Info("handled")

	if !strings.Contains(buf.String(), "corr-9") {
		t.Errorf("correlation ID missing from output: %s", buf.String())
	}
}
