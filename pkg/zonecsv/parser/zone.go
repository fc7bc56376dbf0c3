package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// ZoneColumn is the index of the zone field in every row.
const ZoneColumn = 0

// ZoneMapper rewrites a zone value into its stored text form.
type ZoneMapper func(zone string) string

// PrefixMapper returns a ZoneMapper that prepends prefix to zone values.
// Values that already carry the prefix are returned unchanged, so applying
// the mapper twice gives the same result as applying it once.
// An empty prefix yields the identity mapper.
func PrefixMapper(prefix string) ZoneMapper {
	return func(zone string) string {
		if prefix == "" || strings.HasPrefix(zone, prefix) {
			return zone
		}
		return prefix + zone
	}
}

// ParseZone parses a zone value as a base-10 integer after removing prefix.
func ParseZone(value, prefix string) (int64, error) {
	v := strings.TrimPrefix(value, prefix)
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("zone %q is not an integer", value)
	}
	return n, nil
}

// LooksNumeric reports whether a type-sniffing reader would load s as a number.
func LooksNumeric(s string) bool {
	// Try integer first
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	// Try float
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}
