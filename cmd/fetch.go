package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/worklog/pkg/auth"
	"github.com/harrisonrobin/worklog/pkg/calendar"
	"github.com/harrisonrobin/worklog/pkg/config"
)

func newFetchCmd() *cobra.Command {
	var (
		dateArg    string
		projectArg string
		accountArg string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a day of calendar events as work-log tasks",
		Long: `fetch retrieves the calendar events of one UTC day (today by default),
maps each event to a work-log task record, and prints the records as JSON
to stdout. Events titled "Lunch" or "Out of office" are dropped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if accountArg != "" {
				cfg.Account = accountArg
			}
			project := cfg.Project
			if projectArg != "" {
				project = projectArg
			}

			day := time.Now().UTC()
			if dateArg != "" {
				day, err = time.Parse("2006-01-02", dateArg)
				if err != nil {
					return fmt.Errorf("invalid --date %q, want YYYY-MM-DD: %w", dateArg, err)
				}
			}

			store := auth.NewFileStore()
			a := auth.NewAuthorizer(cfg.ClientID, store, auth.NewLocalServerFlow())
			if err := a.Authorize(cmd.Context()); err != nil {
				return err
			}

			client := calendar.NewClient(cfg, store)
			tasks, err := client.FetchDay(cmd.Context(), day, project)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(tasks)
		},
	}

	cmd.Flags().StringVar(&dateArg, "date", "", "Day to fetch as YYYY-MM-DD (default today, UTC)")
	cmd.Flags().StringVar(&projectArg, "project", "", "Project name stamped on fetched tasks (overrides config)")
	cmd.Flags().StringVar(&accountArg, "calendar", "", "Calendar ID to fetch from (overrides config)")
	return cmd
}
