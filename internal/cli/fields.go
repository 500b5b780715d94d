package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Xavi-Linux/geoapy/pkg/geoloc"
)

// fieldDescriptions documents each catalog field for the table view.
// Keep in sync with the catalog order in pkg/geoloc.
var fieldDescriptions = map[string][2]string{
	"domain":          {"string", "Domain name used for the lookup, if any"},
	"ip":              {"string", "Looked-up IPv4 address"},
	"hostname":        {"string", "Reverse DNS hostname"},
	"continent_code":  {"string", "Two-letter continent code"},
	"continent_name":  {"string", "Continent name"},
	"country_code2":   {"string", "ISO 3166-1 alpha-2 country code"},
	"country_code3":   {"string", "ISO 3166-1 alpha-3 country code"},
	"country_name":    {"string", "Country name"},
	"country_capital": {"string", "Capital city of the country"},
	"state_prov":      {"string", "State or province"},
	"district":        {"string", "District"},
	"city":            {"string", "City"},
	"zipcode":         {"string", "Postal code"},
	"latitude":        {"string", "Latitude in decimal degrees"},
	"longitude":       {"string", "Longitude in decimal degrees"},
	"is_eu":           {"bool", "Whether the country is an EU member"},
	"calling_code":    {"string", "International calling code"},
	"country_tld":     {"string", "Country top-level domain"},
	"languages":       {"string", "Spoken languages"},
	"country_flag":    {"string", "URL of the country flag image"},
	"geoname_id":      {"string", "GeoNames database identifier"},
	"isp":             {"string", "Internet service provider"},
	"connection_type": {"string", "Connection type"},
	"organization":    {"string", "Organization owning the address"},
	"asn":             {"string", "Autonomous system number"},
	"currency":        {"object", "Local currency (code, name, symbol)"},
	"time_zone":       {"object", "Local time zone (name, offset, current time)"},
}

// fieldsCommand creates the fields command.
func (c *CLI) fieldsCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the provider's field catalog",
		Long: `List every field the provider can return, in the documented order.
These names are valid values for 'geoapy lookup --fields' and
'--exclude'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if plain {
				for _, f := range geoloc.Fields() {
					fmt.Println(f)
				}
				return nil
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

			var rows [][]string
			for _, f := range geoloc.Fields() {
				desc := fieldDescriptions[f]
				rows = append(rows, []string{f, desc[0], desc[1]})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Field", "Type", "Description").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					if col == 0 {
						return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
					}
					return lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
				})

			fmt.Println(t.Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print field names only, one per line")

	return cmd
}
