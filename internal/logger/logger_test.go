package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Debug("debug message", nil)
	l.Info("info message", nil)
	l.Warn("warn message", nil)
	l.Error("error message", nil, errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines (warn+error), got %d: %q", len(lines), buf.String())
	}

	var entry Entry
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if entry.Level != "ERROR" {
		t.Errorf("expected level ERROR, got %s", entry.Level)
	}
	if entry.Error != "boom" {
		t.Errorf("expected error 'boom', got %q", entry.Error)
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Warn("detail fetch failed", Fields{
		"venue": "pcms",
		"ref":   "https://example.com/concert",
	})

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if entry.Fields["venue"] != "pcms" {
		t.Errorf("expected venue field 'pcms', got %v", entry.Fields["venue"])
	}
}

func TestCounters(t *testing.T) {
	c := NewCounters()
	c.Incr("events.inserted")
	c.Incr("events.inserted")
	c.Add("events.discovered", 5)

	snap := c.Snapshot()
	if snap["events.inserted"] != 2 {
		t.Errorf("expected events.inserted=2, got %d", snap["events.inserted"])
	}
	if snap["events.discovered"] != 5 {
		t.Errorf("expected events.discovered=5, got %d", snap["events.discovered"])
	}

	// Snapshot is a copy
	snap["events.inserted"] = 99
	if c.Snapshot()["events.inserted"] != 2 {
		t.Error("snapshot should not alias internal state")
	}
}
