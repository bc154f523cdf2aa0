package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

var errNoInput = errors.New("no input given")

// cli holds the state shared by all commands. It is filled in by the
// persistent pre-run of the root command.
type cli struct {
	cfg    *config.StructuredConfig
	logger *logger.Logger

	verbose bool

	identityID        string
	identityCreatedAt string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "vaultctl",
		Short: "vaultctl - operate the password vault",
		Long: `vaultctl derives per-user keys, seals and opens field values, applies
database migrations and talks to a running vault server.

Configuration is read from CONFIG (JSON file) and the environment, the same
way the server reads it.`,
		Version:       models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.deriveCmd(),
		c.sealCmd(),
		c.openCmd(),
		c.tokenCmd(),
		c.migrateCmd(),
		c.mintKeyCmd(),
		c.itemsCmd(),
		c.vaultCmd(),
	)

	return root
}

func (c *cli) load(stderr io.Writer) error {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	c.cfg = cfg

	level := "warn"
	if c.verbose {
		level = "debug"
	}
	log, err := logger.NewConsoleLogger("vaultctl", stderr).WithLevelName(level)
	if err != nil {
		return err
	}
	c.logger = log

	return nil
}

func (c *cli) cipher() (crypto.Cipher, error) {
	return service.NewCipher(c.cfg.Cipher)
}

// addIdentityFlags registers the identity attributes the per-user key is
// derived from.
func (c *cli) addIdentityFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.identityID, "identity-id", "", "user id issued by the identity provider")
	cmd.Flags().StringVar(&c.identityCreatedAt, "identity-created-at", "", "account creation time (RFC 3339)")
	_ = cmd.MarkFlagRequired("identity-id")
	_ = cmd.MarkFlagRequired("identity-created-at")
}

func (c *cli) identity() (*models.Identity, error) {
	createdAt, err := time.Parse(time.RFC3339, c.identityCreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid --identity-created-at: %w", err)
	}

	identity := models.NewIdentity(c.identityID, createdAt)
	return &identity, nil
}

// input returns args[0], or stdin when no argument or "-" is given. One
// trailing newline is dropped from stdin.
func input(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}

	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	if len(b) == 0 {
		return "", errNoInput
	}

	s := strings.TrimSuffix(string(b), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

func success(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, color.GreenString("✓")+" "+fmt.Sprintf(format, a...))
}

func warn(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, color.YellowString("!")+" "+fmt.Sprintf(format, a...))
}
