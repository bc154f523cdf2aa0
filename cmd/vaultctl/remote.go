package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/models"
)

var errNoToken = errors.New("ADAPTER_TOKEN is not set")

func (c *cli) serverAdapter() (adapter.ServerAdapter, error) {
	if c.cfg.Adapter.Token == "" {
		return nil, errNoToken
	}
	return adapter.NewHTTPServerAdapter(c.cfg.Adapter, c.logger)
}

func (c *cli) mintKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mint-key",
		Short: "Mint the vault-level key of the token's user",
		Long: `Ask the server to mint the vault-level key. This can only be done once per
account; a second attempt is refused.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := c.serverAdapter()
			if err != nil {
				return err
			}

			if err = server.MintVaultKey(cmd.Context()); err != nil {
				if errors.Is(err, adapter.ErrConflict) {
					warn(cmd.ErrOrStderr(), "the vault key of this account was already minted")
				}
				return err
			}

			success(cmd.OutOrStdout(), "vault key minted")
			return nil
		},
	}
}

func (c *cli) itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Work with the items stored on the server",
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "list <kind>",
		Short:     "List and decrypt the items of one kind",
		Example:   "  vaultctl items list password",
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := models.ParseItemKind(args[0])
			if !ok {
				return fmt.Errorf("unknown item kind %q, expected one of %v", args[0], kindNames())
			}
			server, err := c.serverAdapter()
			if err != nil {
				return err
			}

			items, err := server.ListItems(cmd.Context(), kind)
			if err != nil {
				return err
			}

			printItems(cmd.OutOrStdout(), kind, items)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete one item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := models.ParseItemKind(args[0])
			if !ok {
				return fmt.Errorf("unknown item kind %q", args[0])
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[1])
			}
			server, err := c.serverAdapter()
			if err != nil {
				return err
			}

			if err = server.DeleteItem(cmd.Context(), kind, id); err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "%s %d deleted", kind, id)
			return nil
		},
	})

	return cmd
}

func (c *cli) vaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Manage the sealed vault snapshot",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "seal",
		Short: "Seal every item into the vault snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := c.serverAdapter()
			if err != nil {
				return err
			}

			sealed, err := server.SealSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "snapshot sealed with %s items", color.CyanString(strconv.Itoa(sealed.Items)))
			for _, item := range sealed.Skipped {
				warn(cmd.ErrOrStderr(), "%s %d could not be decrypted and was left out", item.Kind, item.ID)
			}
			return nil
		},
	}, &cobra.Command{
		Use:   "open",
		Short: "Open the vault snapshot and print its items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := c.serverAdapter()
			if err != nil {
				return err
			}

			snapshot, err := server.OpenSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			success(out, "snapshot v%d sealed at %s", snapshot.Version, snapshot.SealedAt.Format("2006-01-02 15:04:05 MST"))
			for _, kind := range models.ItemKinds() {
				var items []models.PlainItem
				for _, item := range snapshot.Items {
					if item.Kind == kind {
						items = append(items, item)
					}
				}
				if len(items) > 0 {
					printItems(out, kind, items)
				}
			}
			return nil
		},
	}, &cobra.Command{
		Use:   "import",
		Short: "Re-create the snapshot items as per-field sealed items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := c.serverAdapter()
			if err != nil {
				return err
			}

			imported, err := server.ImportSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "%s items imported", color.CyanString(strconv.Itoa(imported)))
			return nil
		},
	}, &cobra.Command{
		Use:   "rotate",
		Short: "Replace the vault key and re-seal the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := c.serverAdapter()
			if err != nil {
				return err
			}

			if err = server.RotateVaultKey(cmd.Context()); err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "vault key rotated")
			return nil
		},
	})

	return cmd
}

func printItems(w io.Writer, kind models.ItemKind, items []models.PlainItem) {
	fmt.Fprintf(w, "%s %s\n", color.GreenString("✓"), color.YellowString("%d %s item(s)", len(items), kind))

	for _, item := range items {
		if item.DecryptFailed {
			fmt.Fprintf(w, "  %s %s\n", color.CyanString("#%d", item.ID), color.RedString("unable to decrypt this item"))
			continue
		}

		fmt.Fprintf(w, "  %s\n", color.CyanString("#%d", item.ID))
		for _, field := range kind.Spec().Fields {
			if value := item.Fields[field]; value != "" {
				fmt.Fprintf(w, "    %s %s\n", color.CyanString(field+":"), value)
			}
		}
	}
}

func kindNames() []string {
	kinds := models.ItemKinds()
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return names
}
