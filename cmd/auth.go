package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/worklog/pkg/auth"
	"github.com/harrisonrobin/worklog/pkg/config"
)

func newAuthCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize read access to Google Calendar",
		Long: `auth runs the OAuth2 PKCE authorization flow against Google and caches
the resulting token. With a valid cached token it is a no-op; use --reset to
discard the cached token and authorize from scratch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.ClientID == "" {
				fmt.Println("No OAuth client ID configured; nothing to authorize.")
				fmt.Printf("Set one with 'worklog config set --client-id ...' or %s.\n", config.EnvClientID)
				return nil
			}

			store := auth.NewFileStore()
			if reset {
				if err := store.Clear(); err != nil {
					return fmt.Errorf("could not remove cached token: %w", err)
				}
			}

			a := auth.NewAuthorizer(cfg.ClientID, store, auth.NewLocalServerFlow())
			if err := a.Authorize(cmd.Context()); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			fmt.Printf("Authentication successful! Token saved to %s\n", store.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Discard any cached token before authorizing")
	return cmd
}
