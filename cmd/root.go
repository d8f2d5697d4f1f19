/*
Copyright © 2026

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jirafill/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jirafill",
	Short: "Distribute unlogged work time across open Jira issues by weighted random draw.",
	Long: `
**********************************************
*                JIRAFILL                    *
**********************************************

This CLI fetches the open Jira issues assigned to you, asks for a weight per
issue, and fills every workday in a date range up to a daily target with
one-hour worklog entries attributed by weighted random selection. Days that
already carry enough logged time are skipped. Generated entries are recorded
in a local SQLite database for auditing and export.
`,
	Example: `
  # Create configuration file
  jirafill config create

  # Preview the plan without posting anything
  jirafill fill --dry-run

  # Fill the last month up to the configured daily hours
  jirafill fill

  # List your open issues
  jirafill issues

  # Export recorded entries
  jirafill export --mode raw --output ./entries.csv

  # Export per-day aggregates
  jirafill export --mode daily --output ./daily-summary.xlsx
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.jirafill.yaml, then ./.jirafill.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".jirafill" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".jirafill")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: jirafill config create")
	}
}
