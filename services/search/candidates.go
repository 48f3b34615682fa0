// File: services/search/candidates.go
package search

import (
	"roamify/models"
	"roamify/services/geodata"
)

// prioritize orders candidates so well-known, high-connectivity cities are
// scored first and produce visible results quickly: major hubs, then regional
// hubs, then the rest, each group keeping catalog order. The origin city is
// skipped and the list is capped for cost control.
func prioritize(cands []models.CityCandidate, originCode string, max int) []models.CityCandidate {
	var major, regional, rest []models.CityCandidate
	for _, c := range cands {
		if c.Code == originCode {
			continue
		}
		switch geodata.HubClass(c.Code) {
		case geodata.HubMajor:
			major = append(major, c)
		case geodata.HubRegional:
			regional = append(regional, c)
		default:
			rest = append(rest, c)
		}
	}
	out := make([]models.CityCandidate, 0, len(major)+len(regional)+len(rest))
	out = append(out, major...)
	out = append(out, regional...)
	out = append(out, rest...)
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
