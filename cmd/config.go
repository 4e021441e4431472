package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/worklog/pkg/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change the worklog configuration",
	}
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	var (
		clientID string
		account  string
		project  string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Persist configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID == "" && account == "" && project == "" {
				return fmt.Errorf("nothing to set; pass --client-id, --account or --project")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if clientID != "" {
				cfg.ClientID = clientID
			}
			if account != "" {
				cfg.Account = account
			}
			if project != "" {
				cfg.Project = project
			}

			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("error saving config: %w", err)
			}
			fmt.Printf("Configuration saved to %s\n", config.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth client ID of the installed application")
	cmd.Flags().StringVar(&account, "account", "", "Calendar ID to fetch events from")
	cmd.Flags().StringVar(&project, "project", "", "Default project name stamped on fetched tasks")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(cfg)
		},
	}
}
