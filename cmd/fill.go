package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"jirafill/config"
	"jirafill/filler"
	"jirafill/jira"
	"jirafill/planner"
	"jirafill/storage"
	"jirafill/worklog"
)

const flagDateLayout = "2006-01-02"

var (
	fillDryRun   bool
	fillToken    string
	fillBaseURL  string
	fillFrom     string
	fillTo       string
	fillSeed     uint64
	fillYes      bool
	fillTimeout  time.Duration
	fillDBPath   string
	fillNoRecord bool
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill unlogged workday time across your open issues.",
	Long: `Fetch the open Jira issues assigned to you, ask for a weight per issue, and
fill every workday in the chosen date range up to the daily target with
one-hour worklog entries. Issues are attributed by weighted random draw;
weight 0 excludes an issue. Days that already carry enough logged time are
skipped.

With --dry-run the generated worklog payloads are printed instead of posted.
Logged time is still queried so the preview matches a live run.`,
	Example: `
  # Interactive run over the default range (one month back until today)
  jirafill fill

  # Preview without posting
  jirafill fill --dry-run

  # Non-interactive dates, accept config defaults
  jirafill fill --from 2026-08-01 --to 2026-08-25 --yes

  # Reproducible attribution
  jirafill fill --dry-run --seed 42 --yes
`,
	RunE: runFill,
}

func runFill(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return err
	}

	token := fillToken
	if token == "" {
		token = cfg.Jira.Token
	}
	if token == "" {
		token = os.Getenv("JIRA_TOKEN")
	}
	baseURL := fillBaseURL
	if baseURL == "" {
		baseURL = cfg.Jira.URL
	}

	client, err := jira.NewClient(jira.ClientConfig{
		BaseURL:    baseURL,
		Token:      token,
		UserAgent:  "jirafill/1.0",
		HTTPClient: &http.Client{Timeout: fillTimeout},
	})
	if err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Jira: %s (token %s)\n", baseURL, maskToken(token))

	fmt.Fprintf(out, "Fetching open issues created in the last %d days...\n", cfg.Fill.TaskLookbackDays)
	issues, err := client.SearchOpenIssues(context.Background(), cfg.Fill.TaskLookbackDays)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		return fmt.Errorf("no open issues assigned to you in the last %d days", cfg.Fill.TaskLookbackDays)
	}
	fmt.Fprint(out, renderIssuesTable(issues))

	tasks, err := collectWeights(reader, out, issues)
	if err != nil {
		return err
	}

	dateRange, err := resolveDateRange(reader, out)
	if err != nil {
		return err
	}

	settings, err := resolveSettings(reader, out, cfg)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	var rng *rand.Rand
	if fillSeed != 0 {
		rng = rand.New(rand.NewPCG(fillSeed, fillSeed))
	}
	selector, err := planner.NewSelector(tasks, rng)
	if err != nil {
		return err
	}

	mode := worklog.ModeLive
	if fillDryRun {
		mode = worklog.ModeDryRun
	}
	printRunSummary(out, dateRange, settings, tasks, mode)

	if !fillYes {
		confirmed, err := askYesNo(reader, out, "Start filling?", false)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	var recorder filler.Recorder
	if cfg.Record.Enabled && !fillNoRecord {
		dbPath := fillDBPath
		if dbPath == "" {
			dbPath = cfg.Record.DB
		}
		store, err := storage.OpenSQLite(dbPath)
		if err != nil {
			return fmt.Errorf("opening record database failed: %w", err)
		}
		defer store.Close()
		recorder = store
	}

	var tracker filler.Tracker = client
	if fillDryRun {
		tracker = filler.DryRunTracker{Tracker: client, Out: out}
	}

	service := &filler.Service{
		Tracker:  tracker,
		Selector: selector,
		Settings: settings,
		Recorder: recorder,
		Mode:     mode,
		Out:      out,
	}

	report, err := service.Run(context.Background(), dateRange)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Result:")
	fmt.Fprintf(out, "  Working days: %d\n", report.WorkingDays)
	fmt.Fprintf(out, "  Entries created: %d\n", report.Created)
	fmt.Fprintf(out, "  Days skipped: %d\n", report.SkippedDays)
	fmt.Fprintf(out, "  Failures: %d\n", report.Failed)
	return nil
}

func collectWeights(reader *bufio.Reader, out io.Writer, issues []jira.Issue) ([]planner.Task, error) {
	tasks := make([]planner.Task, 0, len(issues))
	for _, issue := range issues {
		weight, err := askWeight(reader, out, issue.Key)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, planner.Task{Key: issue.Key, Summary: issue.Summary, Weight: weight})
	}
	return tasks, nil
}

func resolveDateRange(reader *bufio.Reader, out io.Writer) (planner.DateRange, error) {
	def := planner.DefaultDateRange(time.Now().In(planner.Zone))

	start, end := def.Start, def.End
	var err error
	if fillFrom != "" {
		start, err = time.ParseInLocation(flagDateLayout, fillFrom, planner.Zone)
		if err != nil {
			return planner.DateRange{}, fmt.Errorf("invalid --from date %q, expected YYYY-MM-DD: %w", fillFrom, err)
		}
	} else if !fillYes {
		start, err = askDate(reader, out, "Start date", def.Start)
		if err != nil {
			return planner.DateRange{}, err
		}
	}
	if fillTo != "" {
		end, err = time.ParseInLocation(flagDateLayout, fillTo, planner.Zone)
		if err != nil {
			return planner.DateRange{}, fmt.Errorf("invalid --to date %q, expected YYYY-MM-DD: %w", fillTo, err)
		}
	} else if !fillYes {
		end, err = askDate(reader, out, "End date", def.End)
		if err != nil {
			return planner.DateRange{}, err
		}
	}

	return planner.NewDateRange(start, end)
}

func resolveSettings(reader *bufio.Reader, out io.Writer, cfg *config.Config) (planner.Settings, error) {
	settings := planner.Settings{
		DailyHours:    cfg.Fill.DailyHours,
		MaxEntryHours: cfg.Fill.MaxEntryHours,
	}

	fmt.Fprintf(out, "Defaults: %g hours per day, max %g hours per entry\n", settings.DailyHours, settings.MaxEntryHours)
	if fillYes {
		return settings, nil
	}

	useDefaults, err := askYesNo(reader, out, "Use these defaults?", true)
	if err != nil {
		return planner.Settings{}, err
	}
	if useDefaults {
		return settings, nil
	}

	settings.DailyHours, err = askHours(reader, out, "Hours to fill per day", settings.DailyHours, 1)
	if err != nil {
		return planner.Settings{}, err
	}
	settings.MaxEntryHours, err = askHours(reader, out, "Max hours per entry", settings.MaxEntryHours, 1)
	if err != nil {
		return planner.Settings{}, err
	}
	return settings, nil
}

func printRunSummary(out io.Writer, dateRange planner.DateRange, settings planner.Settings, tasks []planner.Task, mode string) {
	fmt.Fprintln(out, "Plan:")
	fmt.Fprintf(out, "  Period: %s .. %s (%d working days)\n",
		dateRange.Start.Format(flagDateLayout), dateRange.End.Format(flagDateLayout), planner.CountWorkdays(dateRange))
	fmt.Fprintf(out, "  Target: %g hours per day, max %g hours per entry\n", settings.DailyHours, settings.MaxEntryHours)
	fmt.Fprintf(out, "  Mode: %s\n", mode)
	fmt.Fprintln(out, "  Weights:")
	for _, task := range tasks {
		marker := ""
		if task.Weight == 0 {
			marker = " (excluded)"
		}
		fmt.Fprintf(out, "    %s = %d%s\n", task.Key, task.Weight, marker)
	}
}

func init() {
	rootCmd.AddCommand(fillCmd)

	fillCmd.Flags().BoolVar(&fillDryRun, "dry-run", false, "Print worklog payloads instead of posting them")
	fillCmd.Flags().StringVar(&fillToken, "token", "", "Jira personal access token (overrides config and JIRA_TOKEN)")
	fillCmd.Flags().StringVar(&fillBaseURL, "base-url", "", "Jira base URL (overrides config)")
	fillCmd.Flags().StringVar(&fillFrom, "from", "", "Start date YYYY-MM-DD (skips the prompt)")
	fillCmd.Flags().StringVar(&fillTo, "to", "", "End date YYYY-MM-DD (skips the prompt)")
	fillCmd.Flags().Uint64Var(&fillSeed, "seed", 0, "Random seed for reproducible attribution (0 = time-seeded)")
	fillCmd.Flags().BoolVar(&fillYes, "yes", false, "Accept defaults and skip the confirmation prompt")
	fillCmd.Flags().DurationVar(&fillTimeout, "timeout", 30*time.Second, "Timeout per Jira request")
	fillCmd.Flags().StringVar(&fillDBPath, "db", "", "Record database path (overrides "+config.KeyRecordDB+")")
	fillCmd.Flags().BoolVar(&fillNoRecord, "no-record", false, "Do not record generated entries in the local database")
}
