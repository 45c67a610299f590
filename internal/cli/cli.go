package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okuzmin/concertcal/internal/calendar"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/logger"
	"github.com/okuzmin/concertcal/internal/runner"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagVenuesFile  string
	flagCacheDB     string
	flagCacheTTL    time.Duration
	flagCalendarID  string
	flagGoogleToken string
	flagYouTubeKey  string
	flagDryRun      bool
	flagOnly        []string
	flagFormat      string
	flagVerbose     bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concertcal",
		Short: "Publish upcoming concert livestreams to a calendar",
		Long: `Scrapes configured concert venues for upcoming livestreams and publishes
them to a Google calendar. Repeated runs are idempotent: events already on
the calendar are skipped.`,
		RunE: runPipeline,
	}

	// Shared by all subcommands.
	cmd.PersistentFlags().StringVar(&flagVenuesFile, "venues-file", "venues.yaml", "Venue registry YAML file")
	cmd.PersistentFlags().StringVar(&flagCacheDB, "cache-db", "", "SQLite cache path for video metadata (empty disables caching)")
	cmd.PersistentFlags().DurationVar(&flagCacheTTL, "cache-ttl", 12*time.Hour, "Cache retention for video metadata")
	cmd.PersistentFlags().StringVar(&flagYouTubeKey, "youtube-key", os.Getenv("YOUTUBE_API_KEY"), "YouTube Data API key (or env: YOUTUBE_API_KEY)")
	cmd.PersistentFlags().StringSliceVar(&flagOnly, "only", nil, "Restrict the run to these venue ids")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.Flags().StringVar(&flagCalendarID, "calendar-id", os.Getenv("CALENDAR_ID"), "Target Google calendar id (or env: CALENDAR_ID)")
	cmd.Flags().StringVar(&flagGoogleToken, "google-token", os.Getenv("GOOGLE_API_TOKEN"), "Google Calendar bearer token (or env: GOOGLE_API_TOKEN)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print would-be inserts instead of writing to the calendar")

	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newVenuesCmd())

	return cmd
}

// runPipeline is the main command logic
func runPipeline(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagFormat)
	if err != nil {
		return err
	}
	configureLogging()

	scrapers, closeCache, err := buildScrapers()
	if err != nil {
		return err
	}
	defer closeCache()

	client, err := buildCalendarClient()
	if err != nil {
		return err
	}

	pipeline := calendar.NewPipeline(client)
	r := runner.New(scrapers, event.NewNormalizer(), pipeline, logger.NewCounters())
	reports := r.Run()

	result := &OutputResult{
		CheckedAt: time.Now().UTC(),
		DryRun:    flagDryRun,
		Venues:    reports,
		Totals:    sumReports(reports),
	}

	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// buildCalendarClient selects the publication target. Dry-run wraps the real
// client when credentials are present so the duplicate check still runs
// against the live calendar.
func buildCalendarClient() (calendar.Client, error) {
	var inner calendar.Client
	if flagCalendarID != "" && flagGoogleToken != "" {
		inner = calendar.NewGoogleClient(flagCalendarID, flagGoogleToken)
	}

	if flagDryRun {
		return calendar.NewDryRunClient(inner, os.Stdout), nil
	}

	if inner == nil {
		return nil, fmt.Errorf("--calendar-id and --google-token are required (or use --dry-run)")
	}
	return inner, nil
}

func parseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(s))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

func configureLogging() {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}
}

func sumReports(reports []runner.Report) Totals {
	var t Totals
	for _, r := range reports {
		t.Discovered += r.Discovered
		t.Inserted += r.Inserted
		t.Duplicates += r.Duplicates
		t.Skipped += r.Skipped
		t.Failures += r.Failures
	}
	return t
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
