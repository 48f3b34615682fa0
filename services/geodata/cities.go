// File: services/geodata/cities.go
package geodata

import (
	"strings"

	"roamify/models"
)

// Region identifiers used across the catalog and pricing tables.
const (
	RegionNorthAmerica  = "north_america"
	RegionSouthAmerica  = "south_america"
	RegionEurope        = "europe"
	RegionEasternEurope = "eastern_europe"
	RegionAsia          = "asia"
	RegionSoutheastAsia = "southeast_asia"
	RegionMiddleEast    = "middle_east"
	RegionAfrica        = "africa"
	RegionOceania       = "oceania"
)

var cities = []models.CityCandidate{
	{Name: "New York", Country: "United States", CountryCode: "US", Code: "JFK", Latitude: 40.6413, Longitude: -73.7781, Region: RegionNorthAmerica},
	{Name: "Los Angeles", Country: "United States", CountryCode: "US", Code: "LAX", Latitude: 33.9416, Longitude: -118.4085, Region: RegionNorthAmerica},
	{Name: "Chicago", Country: "United States", CountryCode: "US", Code: "ORD", Latitude: 41.9742, Longitude: -87.9073, Region: RegionNorthAmerica},
	{Name: "Miami", Country: "United States", CountryCode: "US", Code: "MIA", Latitude: 25.7959, Longitude: -80.2870, Region: RegionNorthAmerica},
	{Name: "Toronto", Country: "Canada", CountryCode: "CA", Code: "YYZ", Latitude: 43.6777, Longitude: -79.6248, Region: RegionNorthAmerica},
	{Name: "Vancouver", Country: "Canada", CountryCode: "CA", Code: "YVR", Latitude: 49.1967, Longitude: -123.1815, Region: RegionNorthAmerica},
	{Name: "Mexico City", Country: "Mexico", CountryCode: "MX", Code: "MEX", Latitude: 19.4363, Longitude: -99.0721, Region: RegionNorthAmerica},
	{Name: "Cancun", Country: "Mexico", CountryCode: "MX", Code: "CUN", Latitude: 21.0365, Longitude: -86.8771, Region: RegionNorthAmerica},

	{Name: "Bogota", Country: "Colombia", CountryCode: "CO", Code: "BOG", Latitude: 4.7016, Longitude: -74.1469, Region: RegionSouthAmerica},
	{Name: "Lima", Country: "Peru", CountryCode: "PE", Code: "LIM", Latitude: -12.0219, Longitude: -77.1143, Region: RegionSouthAmerica},
	{Name: "Sao Paulo", Country: "Brazil", CountryCode: "BR", Code: "GRU", Latitude: -23.4356, Longitude: -46.4731, Region: RegionSouthAmerica},
	{Name: "Rio de Janeiro", Country: "Brazil", CountryCode: "BR", Code: "GIG", Latitude: -22.8100, Longitude: -43.2506, Region: RegionSouthAmerica},
	{Name: "Buenos Aires", Country: "Argentina", CountryCode: "AR", Code: "EZE", Latitude: -34.8222, Longitude: -58.5358, Region: RegionSouthAmerica},
	{Name: "Santiago", Country: "Chile", CountryCode: "CL", Code: "SCL", Latitude: -33.3930, Longitude: -70.7858, Region: RegionSouthAmerica},

	{Name: "London", Country: "United Kingdom", CountryCode: "GB", Code: "LHR", Latitude: 51.4700, Longitude: -0.4543, Region: RegionEurope},
	{Name: "Paris", Country: "France", CountryCode: "FR", Code: "CDG", Latitude: 49.0097, Longitude: 2.5479, Region: RegionEurope},
	{Name: "Amsterdam", Country: "Netherlands", CountryCode: "NL", Code: "AMS", Latitude: 52.3105, Longitude: 4.7683, Region: RegionEurope},
	{Name: "Frankfurt", Country: "Germany", CountryCode: "DE", Code: "FRA", Latitude: 50.0379, Longitude: 8.5622, Region: RegionEurope},
	{Name: "Madrid", Country: "Spain", CountryCode: "ES", Code: "MAD", Latitude: 40.4983, Longitude: -3.5676, Region: RegionEurope},
	{Name: "Barcelona", Country: "Spain", CountryCode: "ES", Code: "BCN", Latitude: 41.2974, Longitude: 2.0833, Region: RegionEurope},
	{Name: "Rome", Country: "Italy", CountryCode: "IT", Code: "FCO", Latitude: 41.8003, Longitude: 12.2389, Region: RegionEurope},
	{Name: "Lisbon", Country: "Portugal", CountryCode: "PT", Code: "LIS", Latitude: 38.7742, Longitude: -9.1342, Region: RegionEurope},
	{Name: "Athens", Country: "Greece", CountryCode: "GR", Code: "ATH", Latitude: 37.9364, Longitude: 23.9445, Region: RegionEurope},
	{Name: "Vienna", Country: "Austria", CountryCode: "AT", Code: "VIE", Latitude: 48.1103, Longitude: 16.5697, Region: RegionEurope},

	{Name: "Prague", Country: "Czechia", CountryCode: "CZ", Code: "PRG", Latitude: 50.1008, Longitude: 14.2632, Region: RegionEasternEurope},
	{Name: "Budapest", Country: "Hungary", CountryCode: "HU", Code: "BUD", Latitude: 47.4298, Longitude: 19.2611, Region: RegionEasternEurope},
	{Name: "Warsaw", Country: "Poland", CountryCode: "PL", Code: "WAW", Latitude: 52.1657, Longitude: 20.9671, Region: RegionEasternEurope},
	{Name: "Krakow", Country: "Poland", CountryCode: "PL", Code: "KRK", Latitude: 50.0777, Longitude: 19.7848, Region: RegionEasternEurope},

	{Name: "Istanbul", Country: "Turkey", CountryCode: "TR", Code: "IST", Latitude: 41.2753, Longitude: 28.7519, Region: RegionMiddleEast},
	{Name: "Dubai", Country: "United Arab Emirates", CountryCode: "AE", Code: "DXB", Latitude: 25.2532, Longitude: 55.3657, Region: RegionMiddleEast},
	{Name: "Doha", Country: "Qatar", CountryCode: "QA", Code: "DOH", Latitude: 25.2731, Longitude: 51.6081, Region: RegionMiddleEast},
	{Name: "Tel Aviv", Country: "Israel", CountryCode: "IL", Code: "TLV", Latitude: 32.0055, Longitude: 34.8854, Region: RegionMiddleEast},

	{Name: "Tokyo", Country: "Japan", CountryCode: "JP", Code: "HND", Latitude: 35.5494, Longitude: 139.7798, Region: RegionAsia},
	{Name: "Seoul", Country: "South Korea", CountryCode: "KR", Code: "ICN", Latitude: 37.4602, Longitude: 126.4407, Region: RegionAsia},
	{Name: "Hong Kong", Country: "China", CountryCode: "HK", Code: "HKG", Latitude: 22.3080, Longitude: 113.9185, Region: RegionAsia},
	{Name: "Shanghai", Country: "China", CountryCode: "CN", Code: "PVG", Latitude: 31.1443, Longitude: 121.8083, Region: RegionAsia},
	{Name: "Taipei", Country: "Taiwan", CountryCode: "TW", Code: "TPE", Latitude: 25.0797, Longitude: 121.2342, Region: RegionAsia},
	{Name: "Delhi", Country: "India", CountryCode: "IN", Code: "DEL", Latitude: 28.5562, Longitude: 77.1000, Region: RegionAsia},
	{Name: "Mumbai", Country: "India", CountryCode: "IN", Code: "BOM", Latitude: 19.0896, Longitude: 72.8656, Region: RegionAsia},

	{Name: "Bangkok", Country: "Thailand", CountryCode: "TH", Code: "BKK", Latitude: 13.6900, Longitude: 100.7501, Region: RegionSoutheastAsia},
	{Name: "Chiang Mai", Country: "Thailand", CountryCode: "TH", Code: "CNX", Latitude: 18.7668, Longitude: 98.9626, Region: RegionSoutheastAsia},
	{Name: "Singapore", Country: "Singapore", CountryCode: "SG", Code: "SIN", Latitude: 1.3644, Longitude: 103.9915, Region: RegionSoutheastAsia},
	{Name: "Kuala Lumpur", Country: "Malaysia", CountryCode: "MY", Code: "KUL", Latitude: 2.7456, Longitude: 101.7072, Region: RegionSoutheastAsia},
	{Name: "Bali", Country: "Indonesia", CountryCode: "ID", Code: "DPS", Latitude: -8.7482, Longitude: 115.1672, Region: RegionSoutheastAsia},
	{Name: "Hanoi", Country: "Vietnam", CountryCode: "VN", Code: "HAN", Latitude: 21.2212, Longitude: 105.8072, Region: RegionSoutheastAsia},
	{Name: "Ho Chi Minh City", Country: "Vietnam", CountryCode: "VN", Code: "SGN", Latitude: 10.8188, Longitude: 106.6520, Region: RegionSoutheastAsia},
	{Name: "Manila", Country: "Philippines", CountryCode: "PH", Code: "MNL", Latitude: 14.5086, Longitude: 121.0194, Region: RegionSoutheastAsia},

	{Name: "Cairo", Country: "Egypt", CountryCode: "EG", Code: "CAI", Latitude: 30.1219, Longitude: 31.4056, Region: RegionAfrica},
	{Name: "Marrakech", Country: "Morocco", CountryCode: "MA", Code: "RAK", Latitude: 31.6069, Longitude: -8.0363, Region: RegionAfrica},
	{Name: "Nairobi", Country: "Kenya", CountryCode: "KE", Code: "NBO", Latitude: -1.3192, Longitude: 36.9278, Region: RegionAfrica},
	{Name: "Cape Town", Country: "South Africa", CountryCode: "ZA", Code: "CPT", Latitude: -33.9715, Longitude: 18.6021, Region: RegionAfrica},

	{Name: "Sydney", Country: "Australia", CountryCode: "AU", Code: "SYD", Latitude: -33.9399, Longitude: 151.1753, Region: RegionOceania},
	{Name: "Melbourne", Country: "Australia", CountryCode: "AU", Code: "MEL", Latitude: -37.6690, Longitude: 144.8410, Region: RegionOceania},
	{Name: "Auckland", Country: "New Zealand", CountryCode: "NZ", Code: "AKL", Latitude: -37.0082, Longitude: 174.7850, Region: RegionOceania},
}

// Cities returns the full candidate catalog. The slice is shared; callers must
// not mutate it.
func Cities() []models.CityCandidate {
	return cities
}

// Filter returns candidates matching the given region and/or country code.
// Empty filters match everything.
func Filter(region, countryCode string) []models.CityCandidate {
	region = strings.ToLower(strings.TrimSpace(region))
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	if region == "" && countryCode == "" {
		return cities
	}
	var out []models.CityCandidate
	for _, c := range cities {
		if region != "" && c.Region != region {
			continue
		}
		if countryCode != "" && c.CountryCode != countryCode {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Lookup finds a candidate by its IATA-like code.
func Lookup(code string) (models.CityCandidate, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range cities {
		if c.Code == code {
			return c, true
		}
	}
	return models.CityCandidate{}, false
}
