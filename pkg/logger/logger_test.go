package logger

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/wonny/newslens/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "json",
	}

	log := New(cfg)
	if log == nil {
		t.Fatal("New() returned nil")
	}

	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("Expected global level debug, got %v", zerolog.GlobalLevel())
	}
}

func TestWithFields(t *testing.T) {
	log := NewNop()

	derived := log.WithFields(map[string]interface{}{
		"ticker": "AAPL",
		"score":  0.75,
	})

	if derived == nil {
		t.Fatal("WithFields() returned nil")
	}

	// Derived logger must not be the same instance
	if derived == log {
		t.Error("WithFields() should return a new logger")
	}
}
