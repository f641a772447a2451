package geo

import "fmt"

// zipRange assigns a contiguous run of 3-digit ZIP prefixes to a state or
// territory. Ranges follow USPS prefix allocation; gaps are unassigned.
type zipRange struct {
	start, end int
	state      string
}

var zipRanges = []zipRange{
	{5, 9, "PR"}, {10, 27, "MA"}, {28, 29, "RI"}, {30, 38, "NH"},
	{39, 49, "ME"}, {50, 59, "VT"}, {60, 69, "CT"}, {70, 89, "NJ"},
	{90, 99, "AE"}, {100, 149, "NY"}, {150, 196, "PA"}, {197, 199, "DE"},
	{200, 205, "DC"}, {206, 219, "MD"}, {220, 246, "VA"}, {247, 268, "WV"},
	{270, 289, "NC"}, {290, 299, "SC"}, {300, 319, "GA"}, {320, 349, "FL"},
	{350, 369, "AL"}, {370, 385, "TN"}, {386, 397, "MS"}, {398, 399, "GA"},
	{400, 427, "KY"}, {430, 459, "OH"}, {460, 479, "IN"}, {480, 499, "MI"},
	{500, 528, "IA"}, {530, 549, "WI"}, {550, 567, "MN"}, {570, 577, "SD"},
	{580, 588, "ND"}, {590, 599, "MT"}, {600, 629, "IL"}, {630, 658, "MO"},
	{660, 679, "KS"}, {680, 693, "NE"}, {700, 714, "LA"}, {716, 729, "AR"},
	{730, 749, "OK"}, {750, 799, "TX"}, {800, 816, "CO"}, {820, 831, "WY"},
	{832, 838, "ID"}, {840, 847, "UT"}, {850, 865, "AZ"}, {870, 884, "NM"},
	{889, 898, "NV"}, {900, 966, "CA"}, {967, 968, "HI"}, {970, 979, "OR"},
	{980, 994, "WA"}, {995, 999, "AK"}, {6, 9, "PR"}, {8, 8, "VI"},
	{969, 969, "GU"},
}

// zipPrefixState expands zipRanges into a prefix → state table. Later ranges
// overwrite earlier ones, matching the source allocation list.
var zipPrefixState = func() map[string]string {
	m := make(map[string]string, 1000)
	for _, r := range zipRanges {
		for p := r.start; p <= r.end; p++ {
			m[fmt.Sprintf("%03d", p)] = r.state
		}
	}
	return m
}()

// StateFromZip resolves a 5-digit ZIP to a state code via its 3-digit prefix.
// Returns "" when the prefix falls in an unassigned range.
func StateFromZip(zip string) string {
	if len(zip) < 3 {
		return ""
	}
	return zipPrefixState[zip[:3]]
}
