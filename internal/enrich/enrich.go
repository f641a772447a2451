// Package enrich maps a raw incident row to its geographic and
// organizational hierarchy via the static lookup chain: address text → ZIP →
// county FIPS → chapter/region/division. No stage is fatal; every unresolved
// lookup degrades to an empty field.
package enrich

import (
	"github.com/flare-analytics/flarestats/internal/geo"
	"github.com/flare-analytics/flarestats/internal/lookup"
	"github.com/flare-analytics/flarestats/internal/model"
)

// Result is the normalized enrichment tuple for one incident row. Fields are
// empty strings when unresolved.
type Result struct {
	CountyFips string
	CountyName string
	State      string
	Chapter    string
	Region     string
	Division   string
}

// Enricher composes the resolvers and lookup tables for per-row enrichment.
type Enricher struct {
	zip lookup.ZipTable
	org lookup.OrgTable
}

// New creates an Enricher over the loaded lookup tables.
func New(zip lookup.ZipTable, org lookup.OrgTable) *Enricher {
	return &Enricher{zip: zip, org: org}
}

// Enrich resolves one incident row. The returned bool reports whether a ZIP
// extracted from the row matched the ZIP → county table.
func (e *Enricher) Enrich(row *model.IncidentRow) (Result, bool) {
	var res Result

	// First address field yielding a ZIP wins; fields are never merged.
	var zip string
	for _, field := range row.AddressFields() {
		if field == "" {
			continue
		}
		if z := geo.ExtractZip(field); z != "" {
			zip = z
			break
		}
	}
	if zip == "" {
		res.State = stateFromText(row)
		return res, false
	}

	ref, zipMatched := e.zip[zip]
	if !zipMatched {
		res.State = stateFromText(row)
		return res, false
	}
	res.CountyFips = ref.Fips
	res.CountyName = ref.Name

	if res.CountyFips != "" {
		if org, ok := e.org[res.CountyFips]; ok {
			// Master geography is authoritative for the county name too.
			res.Chapter = org.Chapter
			res.Region = org.Region
			res.Division = org.Division
			res.State = org.State
			if org.County != "" {
				res.CountyName = org.County
			}
		} else {
			// Unmapped county: state from the FIPS prefix only, hierarchy
			// stays empty.
			res.State = geo.StateFromFIPS(res.CountyFips)
		}

		// FIPS-derived state is ground truth and overrides any earlier value.
		if s := geo.StateFromFIPS(res.CountyFips); s != "" {
			res.State = s
		}
	}

	if res.State == "" {
		res.State = stateFromText(row)
	}
	return res, true
}

// stateFromText derives a state from free-form address text. Consulted only
// when no ZIP- or FIPS-derived state exists; see geo.StateFromAddress for the
// documented ambiguity of the name scan.
func stateFromText(row *model.IncidentRow) string {
	for _, field := range row.AddressFields() {
		if field == "" {
			continue
		}
		if s := geo.StateFromAddress(field); s != "" {
			return s
		}
	}
	return ""
}
