package geoloc

import (
	"strconv"
	"strings"

	"github.com/Xavi-Linux/geoapy/pkg/apierr"
)

// ValidateIPv4 checks that s is exactly four decimal groups separated
// by dots, each group an integer in [0,255] with no extraneous
// characters. No IPv6, no hostnames. This runs before any network
// call, so malformed input never incurs network cost.
func ValidateIPv4(s string) error {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return apierr.New(apierr.CodeInvalidAddress, "not a dotted-quad IPv4 address: %q", s)
	}
	for _, part := range parts {
		if part == "" || len(part) > 3 {
			return apierr.New(apierr.CodeInvalidAddress, "not a dotted-quad IPv4 address: %q", s)
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return apierr.New(apierr.CodeInvalidAddress, "not a dotted-quad IPv4 address: %q", s)
			}
		}
		n, err := strconv.Atoi(part)
		if err != nil || n > 255 {
			return apierr.New(apierr.CodeInvalidAddress, "octet %q out of range in %q", part, s)
		}
	}
	return nil
}
