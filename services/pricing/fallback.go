// File: services/pricing/fallback.go
package pricing

import (
	"roamify/models"
	"roamify/services/geodata"
)

// fallbackRates are deterministic mid-tier baselines used when the oracle is
// unavailable: nightly p50 hotel price and total daily spend.
type fallbackRates struct {
	hotelP50 float64
	daily    float64
}

// countryFallback covers countries where a region average would be badly off.
var countryFallback = map[string]fallbackRates{
	"US": {180, 110},
	"CA": {150, 95},
	"MX": {75, 50},
	"GB": {190, 105},
	"FR": {170, 100},
	"NL": {160, 100},
	"DE": {140, 90},
	"ES": {120, 80},
	"IT": {140, 90},
	"PT": {100, 70},
	"GR": {95, 65},
	"AT": {140, 90},
	"CZ": {80, 55},
	"HU": {70, 50},
	"PL": {65, 48},
	"TR": {65, 45},
	"AE": {170, 110},
	"QA": {160, 105},
	"IL": {180, 110},
	"JP": {130, 85},
	"KR": {110, 75},
	"HK": {160, 95},
	"CN": {90, 55},
	"TW": {90, 60},
	"IN": {45, 30},
	"TH": {50, 35},
	"SG": {180, 95},
	"MY": {55, 35},
	"ID": {55, 35},
	"VN": {40, 28},
	"PH": {55, 38},
	"EG": {50, 32},
	"MA": {60, 40},
	"KE": {70, 45},
	"ZA": {75, 50},
	"AU": {160, 105},
	"NZ": {150, 95},
	"BR": {85, 55},
	"AR": {75, 50},
	"CL": {95, 60},
	"PE": {60, 40},
	"CO": {55, 38},
}

// regionFallback backstops countries missing from the table above.
var regionFallback = map[string]fallbackRates{
	geodata.RegionNorthAmerica:  {150, 95},
	geodata.RegionSouthAmerica:  {75, 48},
	geodata.RegionEurope:        {140, 90},
	geodata.RegionEasternEurope: {75, 52},
	geodata.RegionAsia:          {100, 65},
	geodata.RegionSoutheastAsia: {60, 40},
	geodata.RegionMiddleEast:    {130, 85},
	geodata.RegionAfrica:        {65, 42},
	geodata.RegionOceania:       {155, 100},
}

// FallbackCosts produces a deterministic cost estimate for a city when the
// oracle cannot be reached. The percentile spread is synthesized around the
// table's p50.
func FallbackCosts(city models.CityCandidate) models.CityCostData {
	rates, ok := countryFallback[city.CountryCode]
	if !ok {
		rates, ok = regionFallback[city.Region]
		if !ok {
			rates = fallbackRates{100, 65}
		}
	}
	p50 := rates.hotelP50
	return models.CityCostData{
		Hotel: models.HotelPrices{
			P25: p50 * 0.65,
			P35: p50 * 0.80,
			P50: p50,
			P75: p50 * 1.55,
		},
		Daily: models.DailyQuote{
			Food:      rates.daily * 0.50,
			Transport: rates.daily * 0.20,
			Misc:      rates.daily * 0.30,
		},
		Confidence: models.ConfidenceLow,
	}
}
