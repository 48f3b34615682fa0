// File: services/geodata/hubs.go
package geodata

import "strings"

// Airport hub classes, used for route classification and candidate priority.
const (
	HubMajor     = "major"
	HubRegional  = "regional"
	HubSecondary = "secondary"
)

// majorHubs are high-connectivity airports with dense competitive routing.
var majorHubs = map[string]struct{}{
	"JFK": {}, "LAX": {}, "ORD": {}, "YYZ": {}, "MEX": {},
	"LHR": {}, "CDG": {}, "AMS": {}, "FRA": {}, "MAD": {}, "IST": {},
	"DXB": {}, "DOH": {},
	"HND": {}, "ICN": {}, "HKG": {}, "PVG": {}, "DEL": {},
	"BKK": {}, "SIN": {},
	"GRU": {},
	"SYD": {},
}

// regionalHubs carry meaningful connectivity but less route competition.
var regionalHubs = map[string]struct{}{
	"MIA": {}, "YVR": {}, "CUN": {},
	"BCN": {}, "FCO": {}, "LIS": {}, "ATH": {}, "VIE": {}, "PRG": {}, "BUD": {}, "WAW": {},
	"TLV": {},
	"TPE": {}, "BOM": {},
	"KUL": {}, "MNL": {}, "SGN": {},
	"BOG": {}, "LIM": {}, "SCL": {}, "EZE": {}, "GIG": {},
	"CAI": {}, "CPT": {}, "NBO": {},
	"MEL": {}, "AKL": {},
}

// HubClass returns the hub classification for an airport code. Unknown codes
// are secondary.
func HubClass(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, ok := majorHubs[code]; ok {
		return HubMajor
	}
	if _, ok := regionalHubs[code]; ok {
		return HubRegional
	}
	return HubSecondary
}

// IsKnownHub reports whether the code is a known major or regional hub.
func IsKnownHub(code string) bool {
	return HubClass(code) != HubSecondary
}
