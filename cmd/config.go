package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage jirafill configuration file values.",
	Long: `Create, edit, and display the jirafill configuration file.

The configuration stores the Jira connection and the fill defaults:
- jira.url / jira.token
- fill.daily_hours / fill.max_entry_hours / fill.task_lookback_days
- record.enabled / record.db`,
	Example: `
  # Create default config in $HOME/.jirafill.yaml
  jirafill config create

  # Show active config and source file
  jirafill config show

  # Open active config in editor (creates example if missing)
  jirafill config edit
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
