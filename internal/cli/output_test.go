package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/okuzmin/concertcal/internal/runner"
)

func sampleResult() *OutputResult {
	return &OutputResult{
		CheckedAt: time.Date(2021, 6, 3, 12, 0, 0, 0, time.UTC),
		Venues: []runner.Report{
			{Venue: "pcms", Discovered: 3, Inserted: 2, Duplicates: 1},
			{Venue: "sco", Discovered: 0},
			{Venue: "wigmore", Discovered: 1, Failures: 1},
		},
		Totals: Totals{Discovered: 4, Inserted: 2, Duplicates: 1, Failures: 1},
	}
}

func TestWriteOutputText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "pcms: 3 discovered, 2 inserted, 1 duplicates") {
		t.Errorf("missing venue line:\n%s", out)
	}
	if !strings.Contains(out, "1 failures") {
		t.Errorf("missing failure count:\n%s", out)
	}
	// Quiet venues are hidden unless verbose.
	if strings.Contains(out, "sco:") {
		t.Errorf("quiet venue should be hidden:\n%s", out)
	}
	if !strings.Contains(out, "Total: 2 inserted, 1 duplicates, 1 failures across 3 venues") {
		t.Errorf("missing totals:\n%s", out)
	}
}

func TestWriteOutputTextVerboseShowsQuietVenues(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, true); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	if !strings.Contains(buf.String(), "sco: 0 discovered") {
		t.Errorf("verbose output should list quiet venues:\n%s", buf.String())
	}
}

func TestWriteOutputTextNoEvents(t *testing.T) {
	result := &OutputResult{
		CheckedAt: time.Now().UTC(),
		Venues:    []runner.Report{{Venue: "pcms"}},
	}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, result, FormatText, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No upcoming events found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatJSON, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	var decoded OutputResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Venues) != 3 {
		t.Errorf("venues = %d", len(decoded.Venues))
	}
	if decoded.Totals.Inserted != 2 {
		t.Errorf("totals = %+v", decoded.Totals)
	}
}

func TestWriteOutputUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), OutputFormat("xml"), false); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestParseFormat(t *testing.T) {
	if _, err := parseFormat("TEXT"); err != nil {
		t.Errorf("format parsing should be case-insensitive: %v", err)
	}
	if _, err := parseFormat("yaml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
