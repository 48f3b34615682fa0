// File: services/pricing/flight.go
package pricing

import (
	"math"

	"roamify/models"
	"roamify/services/geodata"
)

const earthRadiusMiles = 3958.8

// Flight cost clamps.
const (
	minFlightCost = 100.0
	maxFlightCost = 2500.0
)

// Distance bucket boundaries in miles.
const (
	shortHaulMiles  = 1500.0
	mediumHaulMiles = 3000.0
	longHaulMiles   = 7000.0
)

// Marginal per-mile rates. Each segment of the trip is priced at its own rate,
// so cost stays monotonic in distance even across bucket boundaries.
const (
	shortHaulRate  = 0.25
	mediumHaulRate = 0.15
	longHaulRate   = 0.09
	ultraHaulRate  = 0.07
)

// Base fares by distance bucket, increasing with haul length.
var baseFares = []struct {
	upTo float64
	fare float64
}{
	{shortHaulMiles, 50},
	{mediumHaulMiles, 80},
	{longHaulMiles, 120},
	{math.Inf(1), 160},
}

// Route classifications by hub membership of both endpoints.
const (
	RouteMajorHub  = "major-hub"
	RouteRegional  = "regional-hub"
	RouteSecondary = "secondary"
)

// regionEfficiency reflects how competitive routing into a region is. Dense
// competitive markets run cheaper than thin or monopolized ones.
var regionEfficiency = map[string]float64{
	geodata.RegionEurope:        0.90,
	geodata.RegionEasternEurope: 0.95,
	geodata.RegionNorthAmerica:  0.95,
	geodata.RegionSoutheastAsia: 0.95,
	geodata.RegionAsia:          1.00,
	geodata.RegionMiddleEast:    1.05,
	geodata.RegionSouthAmerica:  1.10,
	geodata.RegionOceania:       1.10,
	geodata.RegionAfrica:        1.20,
}

// seasonalMultiplier by travel month. Baseline is 1.0 outside the peak summer
// and December holiday months and the January/February trough.
var seasonalMultiplier = map[int]float64{
	1:  0.85,
	2:  0.85,
	3:  0.95,
	6:  1.20,
	7:  1.30,
	8:  1.25,
	11: 0.90,
	12: 1.35,
}

// GreatCircleMiles returns the haversine distance between two coordinates.
func GreatCircleMiles(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// ClassifyRoute buckets a route by the hub class of its endpoints.
func ClassifyRoute(originCode, destCode string) string {
	o, d := geodata.HubClass(originCode), geodata.HubClass(destCode)
	if o == geodata.HubMajor && d == geodata.HubMajor {
		return RouteMajorHub
	}
	if geodata.IsKnownHub(originCode) && geodata.IsKnownHub(destCode) {
		return RouteRegional
	}
	return RouteSecondary
}

// hubCompetitionFactor discounts well-served routes and surcharges thin ones.
func hubCompetitionFactor(route string) float64 {
	switch route {
	case RouteMajorHub:
		return 0.85
	case RouteRegional:
		return 1.0
	default:
		return 1.10
	}
}

// mileageCost prices distance marginally: each stretch of the trip pays the
// per-mile rate of its own bucket.
func mileageCost(miles float64) float64 {
	cost := 0.0
	segs := []struct {
		upTo, rate float64
	}{
		{shortHaulMiles, shortHaulRate},
		{mediumHaulMiles, mediumHaulRate},
		{longHaulMiles, longHaulRate},
		{math.Inf(1), ultraHaulRate},
	}
	prev := 0.0
	for _, s := range segs {
		if miles <= prev {
			break
		}
		span := math.Min(miles, s.upTo) - prev
		cost += span * s.rate
		prev = s.upTo
	}
	return cost
}

func baseFareFor(miles float64) float64 {
	for _, b := range baseFares {
		if miles < b.upTo {
			return b.fare
		}
	}
	return baseFares[len(baseFares)-1].fare
}

// SeasonalMultiplier returns the demand multiplier for a travel month.
func SeasonalMultiplier(month int) float64 {
	if m, ok := seasonalMultiplier[month]; ok {
		return m
	}
	return 1.0
}

// FlightCost estimates a round-trip fare between two catalog cities for the
// given travel month, and grades its own confidence.
func FlightCost(origin, dest models.CityCandidate, month int) (float64, models.Confidence) {
	miles := GreatCircleMiles(origin.Latitude, origin.Longitude, dest.Latitude, dest.Longitude)
	route := ClassifyRoute(origin.Code, dest.Code)

	cost := baseFareFor(miles) + mileageCost(miles)
	cost *= hubCompetitionFactor(route)
	if eff, ok := regionEfficiency[dest.Region]; ok {
		cost *= eff
	}
	cost *= SeasonalMultiplier(month)

	cost = math.Max(minFlightCost, math.Min(maxFlightCost, cost))
	return math.Round(cost), flightConfidence(origin.Code, dest.Code, miles)
}

// flightConfidence is high only for direct-looking routes between known hubs,
// low when either endpoint is off the hub map.
func flightConfidence(originCode, destCode string, miles float64) models.Confidence {
	if !geodata.IsKnownHub(originCode) || !geodata.IsKnownHub(destCode) {
		return models.ConfidenceLow
	}
	route := ClassifyRoute(originCode, destCode)
	direct := route == RouteMajorHub || miles < 4000
	if direct {
		return models.ConfidenceHigh
	}
	return models.ConfidenceMedium
}
