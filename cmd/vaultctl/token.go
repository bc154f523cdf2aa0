package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

var errNoSignKey = errors.New("APP_TOKEN_SIGN_KEY is not set")

func (c *cli) tokenCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development identity token",
		Long: `Issue a bearer token signed with APP_TOKEN_SIGN_KEY, as the identity
provider would. Meant for local development and tests.

Examples:
  vaultctl token --identity-id user_123 --identity-created-at 2024-01-15T10:30:00Z --ttl 1h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.cfg.App.TokenSignKey == "" {
				return errNoSignKey
			}
			identity, err := c.identity()
			if err != nil {
				return err
			}

			token, err := utils.GenerateIdentityToken(c.cfg.App.TokenIssuer, *identity, ttl, c.cfg.App.TokenSignKey)
			if err != nil {
				return fmt.Errorf("error generating token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	c.addIdentityFlags(cmd)
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")

	return cmd
}
