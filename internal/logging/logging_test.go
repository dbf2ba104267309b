package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{5, zerolog.DebugLevel},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.verbosity); got != tt.want {
			t.Errorf("LevelFor(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, 1, "json")
	log.Debug().Msg("hidden")
	log.Info().Str("run_id", "abc").Int("games", 3).Msg("batch finished")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var event map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &event); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if event["message"] != "batch finished" || event["run_id"] != "abc" || event["games"] != 3.0 {
		t.Errorf("unexpected event %v", event)
	}
	if _, ok := event["time"]; !ok {
		t.Error("event has no timestamp")
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, 0, "console")
	log.Info().Msg("hidden")
	log.Warn().Str("game", "g1").Msg("unprocessable")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info logged at verbosity 0: %q", out)
	}
	if !strings.Contains(out, "unprocessable") || !strings.Contains(out, "game=g1") {
		t.Errorf("console output = %q", out)
	}
}
