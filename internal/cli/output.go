package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/okuzmin/concertcal/internal/runner"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Totals aggregates the per-venue reports of one run.
type Totals struct {
	Discovered int `json:"discovered"`
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
	Failures   int `json:"failures"`
}

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt time.Time       `json:"checked_at"`
	DryRun    bool            `json:"dry_run,omitempty"`
	Venues    []runner.Report `json:"venues"`
	Totals    Totals          `json:"totals"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.DryRun {
		fmt.Fprintln(w, "Dry run: no calendar writes performed.")
	}

	if result.Totals.Discovered == 0 && result.Totals.Failures == 0 {
		fmt.Fprintln(w, "No upcoming events found.")
		return nil
	}

	for _, rep := range result.Venues {
		if !verbose && rep.Discovered == 0 && rep.Failures == 0 {
			continue
		}
		fmt.Fprintf(w, "%s: %d discovered, %d inserted, %d duplicates",
			rep.Venue, rep.Discovered, rep.Inserted, rep.Duplicates)
		if rep.Skipped > 0 {
			fmt.Fprintf(w, ", %d skipped", rep.Skipped)
		}
		if rep.Failures > 0 {
			fmt.Fprintf(w, ", %d failures", rep.Failures)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\nTotal: %d inserted, %d duplicates, %d failures across %d venues\n",
		result.Totals.Inserted, result.Totals.Duplicates, result.Totals.Failures, len(result.Venues))

	return nil
}
