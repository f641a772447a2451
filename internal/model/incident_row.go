package model

// IncidentRow mirrors the Parquet schema for a single fire-incident event.
// Dates arrive as strings in several formats and are parsed during
// aggregation; coordinates and SVI risk are optional.
type IncidentRow struct {
	IncidentDate string `parquet:"incident_date,optional"`

	// Four address variants, in decreasing reliability order.
	Address          string `parquet:"address,optional"`
	NFIRSAddress     string `parquet:"nfirs_addr,optional"`
	RCRespondAddress string `parquet:"rc_respond_addr,optional"`
	RCCareAddress    string `parquet:"rc_care_addr,optional"`

	Department     string   `parquet:"department,optional"`
	AgencyReported string   `parquet:"agency_reported,optional"`
	CallsReceived  *float64 `parquet:"calls_received,optional"`
	SviRisk        *float64 `parquet:"svi_risk,optional"`
	MasterLabel    string   `parquet:"master_label,optional"`

	Lat *float64 `parquet:"lat,optional"`
	Lon *float64 `parquet:"lon,optional"`
}

// AddressFields returns the address variants in resolution priority order:
// general, NFIRS-reported, RC-responded, RC-care-provided.
func (r *IncidentRow) AddressFields() [4]string {
	return [4]string{r.Address, r.NFIRSAddress, r.RCRespondAddress, r.RCCareAddress}
}
