package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"jirafill/config"
	"jirafill/output"
	"jirafill/planner"
	"jirafill/storage"
)

var (
	exportMode   string
	exportOutput string
	exportFormat string
	exportDBPath string
	exportFrom   string
	exportTo     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded worklog entries to CSV or Excel.",
	Long: `Export the entries recorded by "jirafill fill" from the local database.

Modes:
- raw: one row per generated worklog entry
- daily: one row per day with first start, last end, and hour totals

The format is taken from --format, or derived from the output file extension
(.csv or .xlsx) when --format is empty.`,
	Example: `
  # All recorded entries as CSV
  jirafill export --mode raw --output ./entries.csv

  # Daily aggregates for a period as Excel
  jirafill export --mode daily --from 2026-08-01 --to 2026-08-25 --output ./daily.xlsx
`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return err
	}

	dbPath := exportDBPath
	if dbPath == "" {
		dbPath = cfg.Record.DB
	}

	format := exportFormat
	if format == "" {
		format, err = formatFromExtension(exportOutput)
		if err != nil {
			return err
		}
	}

	from, err := parseExportDate(exportFrom, "--from")
	if err != nil {
		return err
	}
	to, err := parseExportDate(exportTo, "--to")
	if err != nil {
		return err
	}

	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("opening record database failed: %w", err)
	}
	defer store.Close()

	records, err := store.ListRecordsByDayRange(from, to)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no recorded entries to export in %s", dbPath)
	}

	switch exportMode {
	case "raw":
		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}
		if err := writer.Write(exportOutput, records); err != nil {
			return err
		}
	case "daily":
		summaries := output.BuildDailySummaries(records)
		if err := output.WriteDailySummaries(exportOutput, format, summaries); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported export mode: %s (expected raw or daily)", exportMode)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(records), exportOutput)
	return nil
}

func formatFromExtension(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv", nil
	case ".xlsx":
		return "excel", nil
	default:
		return "", fmt.Errorf("cannot derive format from %q, pass --format csv|excel", path)
	}
}

func parseExportDate(value, flag string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(flagDateLayout, value, planner.Zone)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q, expected YYYY-MM-DD: %w", flag, value, err)
	}
	return &parsed, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMode, "mode", "raw", "Export mode: raw or daily")
	exportCmd.Flags().StringVar(&exportOutput, "output", "./entries.csv", "Output file path")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Output format csv|excel (default: derived from --output extension)")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "Record database path (overrides "+config.KeyRecordDB+")")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Only entries started on or after this day YYYY-MM-DD")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Only entries started on or before this day YYYY-MM-DD")
}
