package stations

import (
	"strings"

	"github.com/flare-analytics/flarestats/internal/model"
	"github.com/flare-analytics/flarestats/internal/normalize"
)

// Count filters to valid stations (both coordinates present and nonzero),
// builds the compact station document, and tallies stations per county FIPS.
// Stations with a missing or non-5-digit FIPS count toward the document but
// not toward any county. Returns the document, the per-FIPS counts, and the
// number of records skipped for missing coordinates.
func Count(records []model.StationRecord) (*model.StationsDoc, map[string]int, int) {
	doc := &model.StationsDoc{
		Name:  []string{},
		Lat:   []float64{},
		Lon:   []float64{},
		Fips:  []string{},
		Fdid:  []string{},
		Addr:  []string{},
		City:  []string{},
		State: []string{},
	}
	counts := make(map[string]int)
	skipped := 0

	for _, rec := range records {
		if !rec.Valid() {
			skipped++
			continue
		}

		fips := PadFips(rec.CountyFips)
		name := rec.Name
		if name == "" {
			name = "Unknown"
		}

		doc.Name = append(doc.Name, name)
		doc.Lat = append(doc.Lat, normalize.Round4(rec.Lat))
		doc.Lon = append(doc.Lon, normalize.Round4(rec.Lon))
		doc.Fips = append(doc.Fips, fips)
		doc.Fdid = append(doc.Fdid, rec.FireDeptID)
		doc.Addr = append(doc.Addr, rec.Address)
		doc.City = append(doc.City, rec.City)
		doc.State = append(doc.State, rec.State)

		if len(fips) == 5 {
			counts[fips]++
		}
	}

	doc.Count = len(doc.Name)
	return doc, counts, skipped
}

// PadFips left-pads a numeric FIPS to 5 digits. Non-numeric values pass
// through unchanged.
func PadFips(fips string) string {
	if fips == "" || len(fips) >= 5 || !isDigits(fips) {
		return fips
	}
	return strings.Repeat("0", 5-len(fips)) + fips
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MergeCounts sets stationCount on every county entry from the per-FIPS
// counts; counties absent from the counts get 0. Returns the number of
// counties with at least one station.
func MergeCounts(counties []model.CountyEntry, counts map[string]int) int {
	enriched := 0
	for i := range counties {
		n := counts[counties[i].Fips]
		counties[i].StationCount = n
		if n > 0 {
			enriched++
		}
	}
	return enriched
}
