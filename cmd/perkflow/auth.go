package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perkflow/perkflow/internal/cli"
	"github.com/perkflow/perkflow/internal/config"
	"github.com/perkflow/perkflow/internal/gmail"
)

func authCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Gmail",
		Long: `Run the OAuth2 flow against the Gmail readonly scope and cache the token.

Requires gmail.client_id and gmail.client_secret in your config file, or the
GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET environment variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadGmailConfig()
			if err != nil {
				return err
			}

			token, err := gmail.AuthenticateInteractive(cmd.Context(), *cfg)
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			if !token.Valid() {
				return fmt.Errorf("received invalid token")
			}

			fmt.Println(cli.FormatSuccess("Authenticated - token saved to " + cfg.TokenFile))
			return nil
		},
	}
}
