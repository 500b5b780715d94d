package geoloc

import (
	"strings"

	"github.com/Xavi-Linux/geoapy/pkg/apierr"
)

// fieldCatalog lists every field the provider can return, in the
// provider's documented order. Filter validation and the typed Record
// are both derived from this list.
var fieldCatalog = []string{
	"domain",
	"ip",
	"hostname",
	"continent_code",
	"continent_name",
	"country_code2",
	"country_code3",
	"country_name",
	"country_capital",
	"state_prov",
	"district",
	"city",
	"zipcode",
	"latitude",
	"longitude",
	"is_eu",
	"calling_code",
	"country_tld",
	"languages",
	"country_flag",
	"geoname_id",
	"isp",
	"connection_type",
	"organization",
	"asn",
	"currency",
	"time_zone",
}

var fieldSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(fieldCatalog))
	for _, f := range fieldCatalog {
		m[f] = struct{}{}
	}
	return m
}()

// Fields returns the complete field catalog in documented order.
// The returned slice is a copy; callers may modify it freely.
func Fields() []string {
	out := make([]string, len(fieldCatalog))
	copy(out, fieldCatalog)
	return out
}

// ValidField reports whether name belongs to the field catalog.
// Matching is case-insensitive.
func ValidField(name string) bool {
	_, ok := fieldSet[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// normalizeFields lowercases and trims each name and validates it
// against the catalog. Returns the normalized list, suitable for
// comma-joining into the provider's filter parameter.
func normalizeFields(fields []string) ([]string, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		name := strings.ToLower(strings.TrimSpace(f))
		if _, ok := fieldSet[name]; !ok {
			return nil, apierr.New(apierr.CodeUnknownField, "field %q is not amongst the possible values", f)
		}
		out[i] = name
	}
	return out, nil
}
