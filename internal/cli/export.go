package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okuzmin/concertcal/internal/calendar"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/logger"
	"github.com/okuzmin/concertcal/internal/runner"
)

var (
	flagExportOutput string
	flagExportName   string
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Scrape venues and write upcoming events as an iCalendar file",
		Long: `Runs discovery and normalization without touching any calendar, then
writes the resulting events as a single RFC 5545 VCALENDAR.`,
		RunE: runExport,
	}

	cmd.Flags().StringVar(&flagExportOutput, "output", "", "Write the calendar to this file instead of stdout")
	cmd.Flags().StringVar(&flagExportName, "calendar-name", "Concert Livestreams", "Calendar name embedded in the export")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	configureLogging()

	scrapers, closeCache, err := buildScrapers()
	if err != nil {
		return err
	}
	defer closeCache()

	r := runner.New(scrapers, event.NewNormalizer(), nil, logger.NewCounters())
	events, reports := r.Collect()
	sortEvents(events)

	failures := 0
	for _, rep := range reports {
		failures += rep.Failures
	}
	if failures > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d events could not be resolved\n", failures)
	}

	ics := calendar.GenerateBulkICS(events, flagExportName)
	if ics == "" {
		fmt.Fprintln(os.Stderr, "No upcoming events found.")
		return nil
	}

	if flagExportOutput == "" {
		fmt.Fprint(os.Stdout, ics)
		return nil
	}

	if err := os.WriteFile(flagExportOutput, []byte(ics), 0o644); err != nil {
		return fmt.Errorf("writing calendar file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d events to %s\n", len(events), flagExportOutput)
	return nil
}
