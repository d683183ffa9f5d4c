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
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWithFieldsReturnsNewLogger(t *testing.T) {
	base := New(Config{Level: "error", Format: "json"})
	child := base.WithFields(map[string]interface{}{"resource_id": 1})
	if child == base {
		t.Error("WithFields should return a derived logger")
	}
	Nop().Info("discarded")
}

func TestNewWritesToConfiguredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloudmgr.log")
	l := New(Config{Level: "info", Format: "json", OutputPath: path})
	l.With("resource_id", "r-1").Info("resource created")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"resource_id":"r-1"`) {
		t.Errorf("log file missing field: %s", data)
	}
}

func TestOpenOutputFallsBackToStdout(t *testing.T) {
	if got := openOutput(filepath.Join(t.TempDir(), "missing", "dir", "x.log")); got != os.Stdout {
		t.Errorf("expected stdout fallback, got %T", got)
	}
	if got := openOutput("stderr"); got != os.Stderr {
		t.Errorf("expected stderr, got %T", got)
	}
}
