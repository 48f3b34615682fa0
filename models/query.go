package models

import "strings"

// Travel styles a query can price against.
const (
	StyleBudget = "budget"
	StyleMid    = "mid"
	StyleLuxury = "luxury"
)

// TravelQuery is the client's search input. Region and Country narrow the
// candidate list and are optional.
type TravelQuery struct {
	OriginCode  string  `json:"originCode"`
	Budget      float64 `json:"budget"`
	Nights      int     `json:"nights"`
	TravelMonth int     `json:"travelMonth"`
	TravelStyle string  `json:"travelStyle"`
	Region      string  `json:"region,omitempty"`
	Country     string  `json:"country,omitempty"`
}

// Normalize fills defaults for optional fields so downstream code never
// branches on zero values.
func (q *TravelQuery) Normalize() {
	q.OriginCode = strings.ToUpper(strings.TrimSpace(q.OriginCode))
	q.TravelStyle = strings.ToLower(strings.TrimSpace(q.TravelStyle))
	switch q.TravelStyle {
	case StyleBudget, StyleMid, StyleLuxury:
	default:
		q.TravelStyle = StyleMid
	}
	if q.Nights <= 0 {
		q.Nights = 5
	}
	if q.TravelMonth < 1 || q.TravelMonth > 12 {
		q.TravelMonth = 6
	}
}
