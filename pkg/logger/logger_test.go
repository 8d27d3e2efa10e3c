package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInit_WritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "gui.log")

	if err := Init(LogConfig{Level: "info", Format: "json", File: logPath}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Close()

	Info().Str("component", "test").Msg("hello from test")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing message, got: %s", data)
	}
}

func TestGet_BeforeInit(t *testing.T) {
	if Get() == nil {
		t.Fatal("Get() returned nil before Init")
	}
}

func TestClose_WithoutFile(t *testing.T) {
	if err := Init(LogConfig{Level: "info", Format: "console"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
