package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Xavi-Linux/geoapy/pkg/geoloc"
)

// lookupTimeout bounds a single lookup including DNS and TLS setup.
const lookupTimeout = 30 * time.Second

// lookupCommand creates the lookup command.
func (c *CLI) lookupCommand() *cobra.Command {
	var (
		fields   []string
		excludes []string
		cached   bool
		noCache  bool
		save     bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "lookup [ip]",
		Short: "Look up geolocation data for an IPv4 address",
		Long: `Resolve geolocation data for the given IPv4 address. With no
argument, the provider reports your own public address.

Use --fields to restrict the result to a subset of the catalog (see
'geoapy fields'), --save to persist the result locally, and --cached
to consult previously saved results before calling the provider.`,
		Example: `  geoapy lookup 8.8.8.8
  geoapy lookup 8.8.8.8 --fields country_name,isp --save
  geoapy lookup --cached 8.8.8.8`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ip string
			if len(args) == 1 {
				ip = args[0]
			}

			client, err := c.newClient(noCache)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), lookupTimeout)
			defer cancel()

			opts := geoloc.Options{
				Fields:        fields,
				ExcludeFields: excludes,
				FromCache:     cached,
			}

			prog := newProgress(c.Logger)
			spinner := newSpinnerWithContext(ctx, "Looking up "+displayTarget(ip)+"...")
			spinner.Start()

			resp, err := client.Lookup(ctx, ip, opts)
			if err != nil {
				spinner.StopWithError("Lookup failed")
				return err
			}
			spinner.Stop()
			prog.done(fmt.Sprintf("Resolved %s", resp.IP()))
			printSource(resp.Cached())

			if save {
				if err := resp.Cache(ctx); err != nil {
					printWarning("Could not persist result: %v", err)
				} else {
					printDetail("Saved to local cache")
				}
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(resp)
			}
			printResponse(resp)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&fields, "fields", "f", nil, "restrict the result to these catalog fields")
	cmd.Flags().StringSliceVarP(&excludes, "exclude", "x", nil, "exclude these catalog fields from the result")
	cmd.Flags().BoolVar(&cached, "cached", false, "consult saved results before calling the provider")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the local cache entirely")
	cmd.Flags().BoolVarP(&save, "save", "s", false, "persist the result to the local cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON mapping")

	return cmd
}

// printResponse renders the returned mapping as aligned key-value
// lines, catalog order first, any unknown extras last.
func printResponse(resp *geoloc.Response) {
	printNewline()
	fmt.Println(StyleTitle.Render("Geolocation " + resp.IP()))
	printNewline()

	present := make(map[string]bool, resp.Len())
	for _, f := range resp.Fields() {
		present[f] = true
	}

	for _, f := range geoloc.Fields() {
		if !present[f] {
			continue
		}
		delete(present, f)
		printKeyValue(f, renderValue(resp, f))
	}

	// Fields outside the known catalog, should the provider add any.
	var extras []string
	for f := range present {
		extras = append(extras, f)
	}
	sort.Strings(extras)
	for _, f := range extras {
		printKeyValue(f, renderValue(resp, f))
	}
}

func renderValue(resp *geoloc.Response, field string) string {
	v, ok := resp.Value(field)
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return fmt.Sprintf("%t", val)
	case float64:
		return StyleNumber.Render(trimFloat(val))
	default:
		raw, _ := resp.RawValue(field)
		return string(raw)
	}
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

func displayTarget(ip string) string {
	if ip == "" {
		return "your address"
	}
	return ip
}
