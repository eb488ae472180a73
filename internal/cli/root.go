// Package cli is the command-line entry point: the MCP server and one-shot
// dataset queries.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jobguardian/internal/config"
	"jobguardian/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// cfg is loaded once in PersistentPreRunE and read-only afterwards.
var cfg *config.Config

var envFile string

var rootCmd = &cobra.Command{
	Use:   "job-guardian",
	Short: "Company labor conditions lookup over Taiwanese open data",
	Long: `job-guardian looks up a company in three published datasets:
  - ESG human-development disclosures of listed companies (TWSE)
  - Labor Standards Act violation announcements (MOL)
  - Gender Equality in Employment Act violation announcements (MOL)

Every lookup downloads the current export; nothing is cached.
Configuration comes from environment variables, optionally seeded from a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	// Skips config loading so it works with a broken environment.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("job-guardian version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
