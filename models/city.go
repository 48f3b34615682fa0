package models

import "strings"

// CityCandidate is one destination considered by a search. Immutable, sourced
// from the static reference data.
type CityCandidate struct {
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Code        string  `json:"code"` // IATA-like airport/city code
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Region      string  `json:"region"`
}

// DedupeKey is the stable composite key a city is deduplicated by inside a
// session: code + normalized name + country code.
func (c CityCandidate) DedupeKey() string {
	name := strings.ToLower(strings.Join(strings.Fields(c.Name), " "))
	return strings.ToUpper(c.Code) + "|" + name + "|" + strings.ToUpper(c.CountryCode)
}
