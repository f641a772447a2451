package model

// Output document types. Field names and rounding are part of the dashboard
// contract: the front end reads these files verbatim.

// PointsDoc holds parallel arrays for the map layer, plus the index→name
// tables that the chapter/region point indices refer to.
type PointsDoc struct {
	Lat      []float64 `json:"lat"`
	Lon      []float64 `json:"lon"`
	Cat      []int     `json:"cat"`
	Svi      []float64 `json:"svi"`
	Month    []int     `json:"month"`
	Ch       []int     `json:"ch"`
	Rg       []int     `json:"rg"`
	Chapters []string  `json:"chapters"`
	Regions  []string  `json:"regions"`
	Count    int       `json:"count"`
}

// SummaryDoc is the scalar overview document.
type SummaryDoc struct {
	TotalFires        int     `json:"totalFires"`
	RCCare            int     `json:"rcCare"`
	RCNotification    int     `json:"rcNotification"`
	NoNotification    int     `json:"noNotification"`
	CareRate          float64 `json:"careRate"`
	GapRate           float64 `json:"gapRate"`
	AvgSviRisk        float64 `json:"avgSviRisk"`
	UniqueDepartments int     `json:"uniqueDepartments"`
	StatesCovered     int     `json:"statesCovered"`
}

// FunnelStage is one stage of the response funnel.
type FunnelStage struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// FunnelDoc lists funnel stages in decreasing-cardinality order.
type FunnelDoc struct {
	Stages []FunnelStage `json:"stages"`
}

// MonthlyEntry is one month's category breakdown within a grouping entry.
type MonthlyEntry struct {
	Month string `json:"month"`
	Counts
}

// MonthEntry is one entry of the global by-month document.
type MonthEntry struct {
	Month string `json:"month"`
	Counts
}

// DayEntry is one entry of the global by-day document.
type DayEntry struct {
	Date string `json:"date"`
	Counts
}

// StateEntry is one entry of the by-state document.
type StateEntry struct {
	State string `json:"state"`
	Counts
	CareRate float64        `json:"careRate"`
	GapRate  float64        `json:"gapRate"`
	AvgSvi   float64        `json:"avgSvi"`
	Monthly  []MonthlyEntry `json:"monthly"`
}

// DepartmentEntry is one entry of the by-department document.
type DepartmentEntry struct {
	Name string `json:"name"`
	Counts
	CareRate float64 `json:"careRate"`
	GapRate  float64 `json:"gapRate"`
	AvgSvi   float64 `json:"avgSvi"`
	GapScore float64 `json:"gapScore"`
}

// OrgEntry is one entry of the by-chapter, by-region, and by-division
// documents. Population sums the demographics of the counties whose
// first-seen metadata names this unit.
type OrgEntry struct {
	Name string `json:"name"`
	Counts
	CareRate    float64        `json:"careRate"`
	GapRate     float64        `json:"gapRate"`
	AvgSvi      float64        `json:"avgSvi"`
	Monthly     []MonthlyEntry `json:"monthly"`
	CountyCount int            `json:"countyCount"`
	Population  int            `json:"population"`
	FiresPer10k float64        `json:"firesPer10k"`
}

// CountyEntry is one entry of the by-county document, joined with
// demographics and the station count. Name carries the county FIPS, matching
// the other grouping documents; the human-readable name is in County.
type CountyEntry struct {
	Name string `json:"name"`
	Counts
	CareRate       float64        `json:"careRate"`
	GapRate        float64        `json:"gapRate"`
	AvgSvi         float64        `json:"avgSvi"`
	Monthly        []MonthlyEntry `json:"monthly"`
	Fips           string         `json:"fips"`
	County         string         `json:"county"`
	State          string         `json:"state"`
	Chapter        string         `json:"chapter"`
	Region         string         `json:"region"`
	Division       string         `json:"division"`
	Population     int            `json:"population"`
	MedianIncome   int            `json:"medianIncome"`
	Households     int            `json:"households"`
	Poverty        float64        `json:"poverty"`
	MedianAge      float64        `json:"medianAge"`
	DiversityIndex float64        `json:"diversityIndex"`
	HomeValue      int            `json:"homeValue"`
	FiresPer10k    float64        `json:"firesPer10k"`
	StationCount   int            `json:"stationCount"`
}

// GapEntry is one entry of the gap-analysis document, ranked by opportunity
// score (gap count × mean SVI).
type GapEntry struct {
	State            string  `json:"state"`
	GapCount         int     `json:"gapCount"`
	TotalFires       int     `json:"totalFires"`
	AvgSvi           float64 `json:"avgSvi"`
	OpportunityScore float64 `json:"opportunityScore"`
	GapRate          float64 `json:"gapRate"`
	CareRate         float64 `json:"careRate"`
}

// RiskDoc is the 10-bin SVI histogram, with a parallel gap-only series.
type RiskDoc struct {
	Bins  []string `json:"bins"`
	Total []int    `json:"total"`
	Gap   []int    `json:"gap"`
}

// StationsDoc holds compact parallel arrays for the station map layer.
type StationsDoc struct {
	Name  []string  `json:"name"`
	Lat   []float64 `json:"lat"`
	Lon   []float64 `json:"lon"`
	Fips  []string  `json:"fips"`
	Fdid  []string  `json:"fdid"`
	Addr  []string  `json:"addr"`
	City  []string  `json:"city"`
	State []string  `json:"state"`
	Count int       `json:"count"`
}
