package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jirafill/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. The token is masked.`,
	Example: `
  # Show active configuration
  jirafill config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		}
		fmt.Println("Configuration:")
		fmt.Printf("jira.url: %s\n", cfg.Jira.URL)
		fmt.Printf("jira.token: %s\n", maskToken(cfg.Jira.Token))
		fmt.Printf("fill.daily_hours: %g\n", cfg.Fill.DailyHours)
		fmt.Printf("fill.max_entry_hours: %g\n", cfg.Fill.MaxEntryHours)
		fmt.Printf("fill.task_lookback_days: %d\n", cfg.Fill.TaskLookbackDays)
		fmt.Printf("record.enabled: %t\n", cfg.Record.Enabled)
		fmt.Printf("record.db: %s\n", cfg.Record.DB)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
