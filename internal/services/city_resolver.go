package services

import "strings"

// cityToIATA maps lowercase city names to the airport code the flight
// provider expects.
var cityToIATA = map[string]string{
	// India
	"delhi": "DEL", "new delhi": "DEL", "mumbai": "BOM", "bangalore": "BLR",
	"bengaluru": "BLR", "chennai": "MAA", "kolkata": "CCU", "hyderabad": "HYD",
	"pune": "PNQ", "ahmedabad": "AMD", "jaipur": "JAI", "goa": "GOI",
	"kochi": "COK", "cochin": "COK", "trivandrum": "TRV", "lucknow": "LKO",

	// Middle East
	"dubai": "DXB", "abu dhabi": "AUH", "doha": "DOH", "riyadh": "RUH",
	"jeddah": "JED", "muscat": "MCT", "kuwait": "KWI", "bahrain": "BAH",

	// Europe
	"london": "LHR", "paris": "CDG", "amsterdam": "AMS", "frankfurt": "FRA",
	"madrid": "MAD", "barcelona": "BCN", "rome": "FCO", "milan": "MXP",
	"zurich": "ZRH", "vienna": "VIE", "brussels": "BRU", "munich": "MUC",
	"istanbul": "IST", "athens": "ATH", "lisbon": "LIS", "copenhagen": "CPH",

	// Americas
	"new york": "JFK", "los angeles": "LAX", "chicago": "ORD", "miami": "MIA",
	"san francisco": "SFO", "boston": "BOS", "washington": "IAD", "seattle": "SEA",
	"toronto": "YYZ", "vancouver": "YVR", "mexico city": "MEX",

	// Asia Pacific
	"tokyo": "NRT", "singapore": "SIN", "hong kong": "HKG", "bangkok": "BKK",
	"kuala lumpur": "KUL", "manila": "MNL", "seoul": "ICN", "beijing": "PEK",
	"shanghai": "PVG", "sydney": "SYD", "melbourne": "MEL", "auckland": "AKL",

	// Africa
	"cairo": "CAI", "johannesburg": "JNB", "cape town": "CPT", "nairobi": "NBO",
	"lagos": "LOS", "casablanca": "CMN",
}

// iataToCity reverse-maps common airport codes to the display names the
// weather and attraction providers expect.
var iataToCity = map[string]string{
	"IST": "Istanbul", "DXB": "Dubai", "CDG": "Paris", "LHR": "London",
	"JFK": "New York", "LAX": "Los Angeles", "NRT": "Tokyo", "SIN": "Singapore",
	"HKG": "Hong Kong", "BKK": "Bangkok", "DEL": "Delhi", "BOM": "Mumbai",
	"SYD": "Sydney", "MEL": "Melbourne", "BCN": "Barcelona", "MAD": "Madrid",
	"FCO": "Rome", "AMS": "Amsterdam", "FRA": "Frankfurt", "MUC": "Munich",
}

func isThreeLetterToken(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// ResolveAirportCode maps a free-text place name to the code the flight
// provider expects. Unknown names fall back to the first three letters
// uppercased — a lossy last resort with no guarantee of a valid code,
// but better than failing the whole lookup.
func ResolveAirportCode(name string) string {
	trimmed := strings.TrimSpace(name)

	if isThreeLetterToken(trimmed) {
		return strings.ToUpper(trimmed)
	}

	if code, ok := cityToIATA[strings.ToLower(trimmed)]; ok {
		return code
	}

	if len(trimmed) >= 3 {
		return strings.ToUpper(trimmed[:3])
	}
	return strings.ToUpper(trimmed)
}

// ResolveCityName maps an airport code back to a display name for the
// weather and attraction providers. Unmapped codes and plain city names pass
// through unchanged.
func ResolveCityName(name string) string {
	trimmed := strings.TrimSpace(name)

	if isThreeLetterToken(trimmed) {
		if city, ok := iataToCity[strings.ToUpper(trimmed)]; ok {
			return city
		}
	}
	return trimmed
}
