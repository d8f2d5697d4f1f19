package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"jirafill/config"
	"jirafill/jira"
)

var (
	issuesToken    string
	issuesBaseURL  string
	issuesLookback int
	issuesTimeout  time.Duration
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "List your open Jira issues.",
	Long: `List the open issues assigned to you, the same set offered for weighting by
"jirafill fill". Open means the status category is not Done, restricted to
issues created within the lookback window.`,
	Example: `
  # List open issues with the configured lookback
  jirafill issues

  # Widen the window
  jirafill issues --lookback-days 180
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		token := issuesToken
		if token == "" {
			token = cfg.Jira.Token
		}
		if token == "" {
			token = os.Getenv("JIRA_TOKEN")
		}
		baseURL := issuesBaseURL
		if baseURL == "" {
			baseURL = cfg.Jira.URL
		}
		lookback := issuesLookback
		if lookback == 0 {
			lookback = cfg.Fill.TaskLookbackDays
		}

		client, err := jira.NewClient(jira.ClientConfig{
			BaseURL:    baseURL,
			Token:      token,
			UserAgent:  "jirafill/1.0",
			HTTPClient: &http.Client{Timeout: issuesTimeout},
		})
		if err != nil {
			return err
		}

		issues, err := client.SearchOpenIssues(context.Background(), lookback)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(issues) == 0 {
			fmt.Fprintf(out, "No open issues assigned to you in the last %d days.\n", lookback)
			return nil
		}
		fmt.Fprint(out, renderIssuesTable(issues))
		fmt.Fprintf(out, "%d issues\n", len(issues))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(issuesCmd)

	issuesCmd.Flags().StringVar(&issuesToken, "token", "", "Jira personal access token (overrides config and JIRA_TOKEN)")
	issuesCmd.Flags().StringVar(&issuesBaseURL, "base-url", "", "Jira base URL (overrides config)")
	issuesCmd.Flags().IntVar(&issuesLookback, "lookback-days", 0, "Only issues created within this many days (0 = config value)")
	issuesCmd.Flags().DurationVar(&issuesTimeout, "timeout", 30*time.Second, "Timeout per Jira request")
}
