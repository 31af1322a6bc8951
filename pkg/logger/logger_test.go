package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewText("info", &buf)

	logger.Info("grid search finished", "evaluations", 512)
	output := buf.String()
	if !strings.Contains(output, "grid search finished") {
		t.Errorf("expected message in output, got: %s", output)
	}
	if !strings.Contains(output, "evaluations=512") {
		t.Errorf("expected evaluations attr in output, got: %s", output)
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		logFunc  func(string, ...any)
		logMsg   string
		expected bool
	}{
		{"Debug when debug level", "debug", Debug, "debug message", true},
		{"Debug when info level", "info", Debug, "debug message", false},
		{"Info when warn level", "warn", Info, "info message", false},
		{"Warn when info level", "info", Warn, "warn message", true},
		{"Error when error level", "error", Error, "error message", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetDefault(New(tt.logLevel, &buf))

			tt.logFunc(tt.logMsg)
			output := buf.String()

			if tt.expected && !strings.Contains(output, tt.logMsg) {
				t.Errorf("expected output to contain %q, got: %s", tt.logMsg, output)
			}
			if !tt.expected && strings.Contains(output, tt.logMsg) {
				t.Errorf("expected output NOT to contain %q, got: %s", tt.logMsg, output)
			}
		})
	}
}

func TestComponentJSON(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New("info", &buf))

	Component("search").Info("evaluated", "cost", -1.5)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log output: %v", err)
	}
	if entry["component"] != "search" {
		t.Errorf("expected component 'search', got %v", entry["component"])
	}
	if entry["cost"] != -1.5 {
		t.Errorf("expected cost -1.5, got %v", entry["cost"])
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New("info", &buf))

	With("run_id", "run-1").Info("run started")

	output := buf.String()
	if !strings.Contains(output, "run_id") || !strings.Contains(output, "run-1") {
		t.Errorf("expected run_id attr in output, got: %s", output)
	}
}
