package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Xavi-Linux/geoapy/pkg/keystore"
)

// keyCommand creates the key command with subcommands.
func (c *CLI) keyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the ipgeolocation.io API key",
		Long: `Register, inspect, or remove the API key used for lookups.

The key is stored in ~/.config/geoapy/config.toml and reused by every
later invocation, so registration is a one-time step. No validation is
performed client-side; a bad key surfaces as an authentication failure
at lookup time.`,
	}

	cmd.AddCommand(c.keySetCommand())
	cmd.AddCommand(c.keyShowCommand())
	cmd.AddCommand(c.keyUnsetCommand())
	cmd.AddCommand(c.keyPathCommand())

	return cmd
}

// keySetCommand creates the "key set" subcommand.
func (c *CLI) keySetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <api-key>",
		Short: "Register the API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := keystore.New("")
			if err != nil {
				return fmt.Errorf("open key store: %w", err)
			}
			if err := ks.Register(args[0]); err != nil {
				return fmt.Errorf("register key: %w", err)
			}
			printSuccess("API key registered")
			printDetail("Stored at %s", ks.Path())
			return nil
		},
	}
}

// keyShowCommand creates the "key show" subcommand.
func (c *CLI) keyShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the registered API key (redacted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := keystore.New("")
			if err != nil {
				return fmt.Errorf("open key store: %w", err)
			}
			key, err := ks.Current()
			if err != nil {
				return err
			}
			printKeyValue("Key", redactKey(key))
			printKeyValue("File", ks.Path())
			return nil
		},
	}
}

// keyUnsetCommand creates the "key unset" subcommand.
func (c *CLI) keyUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset",
		Short: "Remove the registered API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := keystore.New("")
			if err != nil {
				return fmt.Errorf("open key store: %w", err)
			}
			if err := ks.Delete(); err != nil {
				return fmt.Errorf("delete key: %w", err)
			}
			printSuccess("API key removed")
			return nil
		},
	}
}

// keyPathCommand creates the "key path" subcommand.
func (c *CLI) keyPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the key file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := keystore.New("")
			if err != nil {
				return fmt.Errorf("open key store: %w", err)
			}
			fmt.Println(ks.Path())
			return nil
		},
	}
}

// redactKey keeps the first and last four characters of the key visible.
func redactKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
