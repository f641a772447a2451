package geo

import (
	"regexp"
	"strings"
)

// zipRe matches a 5-digit run bounded by non-word characters. Longer digit
// runs (street numbers, phone fragments) do not match.
var zipRe = regexp.MustCompile(`\b(\d{5})\b`)

// ExtractZip scans text for 5-digit ZIP candidates and returns the LAST
// match, or "". The final ZIP in an address string is the most reliable one.
func ExtractZip(text string) string {
	matches := zipRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}

// stateName pairs a full state/territory name with its abbreviation. Scanned
// in declaration order by StateFromAddress.
type stateName struct {
	name, abbr string
}

var stateNames = []stateName{
	{"ALABAMA", "AL"}, {"ALASKA", "AK"}, {"ARIZONA", "AZ"}, {"ARKANSAS", "AR"},
	{"CALIFORNIA", "CA"}, {"COLORADO", "CO"}, {"CONNECTICUT", "CT"}, {"DELAWARE", "DE"},
	{"FLORIDA", "FL"}, {"GEORGIA", "GA"}, {"HAWAII", "HI"}, {"IDAHO", "ID"},
	{"ILLINOIS", "IL"}, {"INDIANA", "IN"}, {"IOWA", "IA"}, {"KANSAS", "KS"},
	{"KENTUCKY", "KY"}, {"LOUISIANA", "LA"}, {"MAINE", "ME"}, {"MARYLAND", "MD"},
	{"MASSACHUSETTS", "MA"}, {"MICHIGAN", "MI"}, {"MINNESOTA", "MN"}, {"MISSISSIPPI", "MS"},
	{"MISSOURI", "MO"}, {"MONTANA", "MT"}, {"NEBRASKA", "NE"}, {"NEVADA", "NV"},
	{"NEW HAMPSHIRE", "NH"}, {"NEW JERSEY", "NJ"}, {"NEW MEXICO", "NM"}, {"NEW YORK", "NY"},
	{"NORTH CAROLINA", "NC"}, {"NORTH DAKOTA", "ND"}, {"OHIO", "OH"}, {"OKLAHOMA", "OK"},
	{"OREGON", "OR"}, {"PENNSYLVANIA", "PA"}, {"RHODE ISLAND", "RI"}, {"SOUTH CAROLINA", "SC"},
	{"SOUTH DAKOTA", "SD"}, {"TENNESSEE", "TN"}, {"TEXAS", "TX"}, {"UTAH", "UT"},
	{"VERMONT", "VT"}, {"VIRGINIA", "VA"}, {"WASHINGTON", "WA"}, {"WEST VIRGINIA", "WV"},
	{"WISCONSIN", "WI"}, {"WYOMING", "WY"}, {"DISTRICT OF COLUMBIA", "DC"},
	{"PUERTO RICO", "PR"}, {"GUAM", "GU"}, {"VIRGIN ISLANDS", "VI"},
}

// StateFromAddress derives a state code from free-form address text. It first
// tries the ZIP-prefix table against any ZIP found in the text, then scans
// for full state names as case-insensitive substrings, returning the first
// hit in table order. The name scan is a non-authoritative fallback: when
// multiple state names co-occur the first in table order wins, which is not
// necessarily the geographically correct one. FIPS-prefix resolution, when
// available, overrides this result downstream.
func StateFromAddress(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if zip := ExtractZip(text); zip != "" {
		if state := StateFromZip(zip); state != "" {
			return state
		}
	}

	upper := strings.ToUpper(text)
	for _, sn := range stateNames {
		if strings.Contains(upper, sn.name) {
			return sn.abbr
		}
	}
	return ""
}
