package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (c *cli) deriveCmd() *cobra.Command {
	var legacy bool

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Print the per-user key derived from identity attributes",
		Long: `Print the key string derived from the identity attributes. The value is a
secret: every field of the user can be opened with it.

Examples:
  vaultctl derive --identity-id user_123 --identity-created-at 2024-01-15T10:30:00Z
  vaultctl derive --legacy --identity-id user_123 --identity-created-at 2024-01-15T10:30:00Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cipher, err := c.cipher()
			if err != nil {
				return err
			}
			identity, err := c.identity()
			if err != nil {
				return err
			}

			derive := cipher.DeriveKey
			if legacy {
				derive = cipher.DeriveLegacyKey
			}
			key, err := derive(identity)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}

	c.addIdentityFlags(cmd)
	cmd.Flags().BoolVar(&legacy, "legacy", false, "derive the key of legacy records")

	return cmd
}

func (c *cli) sealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seal [plaintext|-]",
		Short: "Seal a value for a user",
		Long: `Seal a value under the key derived from the identity attributes and print
the envelope. The plaintext is read from stdin when not given.

Examples:
  vaultctl seal --identity-id user_123 --identity-created-at 2024-01-15T10:30:00Z example.com
  echo -n hunter2 | vaultctl seal --identity-id user_123 --identity-created-at 2024-01-15T10:30:00Z`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plaintext, err := input(cmd, args)
			if err != nil {
				return err
			}
			cipher, err := c.cipher()
			if err != nil {
				return err
			}
			identity, err := c.identity()
			if err != nil {
				return err
			}

			sealed, err := cipher.SealFor(identity, plaintext)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), sealed)
			return nil
		},
	}

	c.addIdentityFlags(cmd)

	return cmd
}

func (c *cli) openCmd() *cobra.Command {
	var (
		legacy      bool
		toClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "open [ciphertext|-]",
		Short: "Open a sealed value of a user",
		Long: `Open an envelope sealed for the identity and print the plaintext. With
--copy the plaintext goes to the clipboard instead of the terminal.

Examples:
  vaultctl open --identity-id user_123 --identity-created-at 2024-01-15T10:30:00Z "$ENVELOPE"
  vaultctl open --copy --identity-id user_123 --identity-created-at 2024-01-15T10:30:00Z - < envelope.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ciphertext, err := input(cmd, args)
			if err != nil {
				return err
			}
			cipher, err := c.cipher()
			if err != nil {
				return err
			}
			identity, err := c.identity()
			if err != nil {
				return err
			}

			var plaintext string
			if legacy {
				key, keyErr := cipher.DeriveLegacyKey(identity)
				if keyErr != nil {
					return keyErr
				}
				plaintext, err = cipher.OpenLegacy(ciphertext, key)
			} else {
				plaintext, err = cipher.OpenFor(identity, ciphertext)
			}
			if err != nil {
				return err
			}

			if toClipboard {
				if err = clipboard.WriteAll(plaintext); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				success(cmd.ErrOrStderr(), "plaintext copied to %s", color.CyanString("clipboard"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), plaintext)
			return nil
		},
	}

	c.addIdentityFlags(cmd)
	cmd.Flags().BoolVar(&legacy, "legacy", false, "open a legacy passphrase CBC record")
	cmd.Flags().BoolVar(&toClipboard, "copy", false, "copy the plaintext to the clipboard")

	return cmd
}
