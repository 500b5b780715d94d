// Package cli implements the geoapy command-line interface.
//
// This package provides commands for registering the ipgeolocation.io
// API key, issuing lookups, inspecting the field catalog, managing the
// local result cache, and running the local lookup proxy. The CLI is
// built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - key: Register, show, or remove the API key
//   - lookup: Resolve geolocation data for an IPv4 address
//   - fields: List the provider's field catalog
//   - cache: Manage persisted lookup results
//   - serve: Run the local lookup proxy
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Xavi-Linux/geoapy"
	"github.com/Xavi-Linux/geoapy/pkg/buildinfo"
	"github.com/Xavi-Linux/geoapy/pkg/geoloc"
	"github.com/Xavi-Linux/geoapy/pkg/keystore"
	"github.com/Xavi-Linux/geoapy/pkg/store"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "geoapy",
		Short:        "geoapy looks up IPv4 geolocation data via ipgeolocation.io",
		Long:         `geoapy is a client for the ipgeolocation.io API. Register your API key once, then look up geolocation data for any IPv4 address, filter the returned fields, and persist results locally.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.keyCommand())
	root.AddCommand(c.lookupCommand())
	root.AddCommand(c.fieldsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newClient builds a lookup client from the persisted key and the
// chosen store backend.
func (c *CLI) newClient(noCache bool) (*geoloc.Client, error) {
	ks, err := keystore.New("")
	if err != nil {
		return nil, err
	}
	key, err := ks.Current()
	if err != nil {
		return nil, err
	}

	backend, err := newStore(noCache)
	if err != nil {
		return nil, err
	}

	return geoloc.NewClient(geoloc.Config{
		Key:    key,
		Store:  backend,
		Logger: c.Logger,
	}), nil
}

func newStore(noCache bool) (store.Store, error) {
	if noCache {
		return store.NewNullStore(), nil
	}
	dir, err := geoapy.CacheDir()
	if err != nil {
		return store.NewNullStore(), nil
	}
	return store.NewFileStore(dir)
}
