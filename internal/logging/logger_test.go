package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"":        LevelInfo,
		"loud":    LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): expected %d, got %d", in, want, got)
		}
	}
}

func TestError_WritesJSONLine(t *testing.T) {
	buf := captureLog(t)
	Error("save failed", errors.New("disk full"), Fields{"slot": "savedgame"})

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "error" || entry["msg"] != "save failed" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["error"] != "disk full" || entry["slot"] != "savedgame" {
		t.Fatalf("expected error and fields in entry, got %v", entry)
	}
}

func TestLevelThreshold(t *testing.T) {
	buf := captureLog(t)
	SetLevel(LevelWarn)
	Debug("hidden", nil)
	Info("hidden", nil)
	Warn("shown", nil, nil)
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("messages below the threshold must be dropped, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("expected a warn entry, got %q", buf.String())
	}
}
