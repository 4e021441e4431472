package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the worklog application
var rootCmd = &cobra.Command{
	Use:   "worklog",
	Short: "Turns a day of Google Calendar events into work-log task records",
	Long: `worklog authorizes against Google Calendar with an OAuth2 PKCE flow,
fetches one day of events, and maps each event into a work-log task record:
a change-request code extracted from the event title, manhours computed from
the event duration, and a DD-MM-YYYY date stamp.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Credentials may live in a local .env file instead of the config.
		_ = godotenv.Load()
	},
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "worklog version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newConfigCmd())
}
