package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.level); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLoggerWithOutputRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("warn", &buf)

	logger.Info().Msg("quiet")
	logger.Warn().Msg("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, "loud") {
		t.Error("warn message missing")
	}
}

func TestSilentLoggerDiscards(t *testing.T) {
	logger := NewSilentLogger()
	logger.Error().Msg("nothing should happen")
}
