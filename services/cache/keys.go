// File: services/cache/keys.go
package cache

import (
	"fmt"
	"strings"

	"roamify/models"
)

// Placeholder marks an unset optional field inside a key, so two lookups
// differing only in an omitted field can never collide with each other or
// with a lookup that set the field to something real.
const Placeholder = "-"

// Key builds a deterministic cache key from a prefix and an ordered field
// list. Every query-relevant field must be passed, set or not; empty fields
// are encoded as the placeholder.
func Key(prefix string, fields ...string) string {
	parts := make([]string, 0, len(fields)+1)
	parts = append(parts, prefix)
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			f = Placeholder
		}
		// '|' is the separator; strip it from values so a crafted field can't
		// alias another key.
		parts = append(parts, strings.ReplaceAll(strings.ToLower(f), "|", "_"))
	}
	return strings.Join(parts, "|")
}

// EstimateKey identifies one city's oracle cost data for a given stay length
// and month. All parameters that influence the oracle's answer participate.
func EstimateKey(city models.CityCandidate, nights, month int) string {
	return Key("estimate:v1",
		city.Name,
		city.CountryCode,
		fmt.Sprintf("n%d", nights),
		fmt.Sprintf("m%d", month),
	)
}
