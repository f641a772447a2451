package report

import (
	"testing"

	"github.com/flare-analytics/flarestats/internal/aggregate"
	"github.com/flare-analytics/flarestats/internal/enrich"
	"github.com/flare-analytics/flarestats/internal/lookup"
	"github.com/flare-analytics/flarestats/internal/model"
)

func fp(v float64) *float64 { return &v }

func row(label, date, state string) (*model.IncidentRow, enrich.Result) {
	r := &model.IncidentRow{
		IncidentDate: date,
		Department:   "Dept " + state,
		MasterLabel:  label,
		SviRisk:      fp(0.5),
		Lat:          fp(36.0),
		Lon:          fp(-95.0),
	}
	return r, enrich.Result{State: state}
}

func countyRow(label, fips, chapter string) (*model.IncidentRow, enrich.Result) {
	r := &model.IncidentRow{
		IncidentDate: "2024-03-15",
		MasterLabel:  label,
		SviRisk:      fp(0.5),
		Lat:          fp(36.0),
		Lon:          fp(-95.0),
	}
	return r, enrich.Result{
		CountyFips: fips,
		CountyName: "County " + fips,
		State:      "OK",
		Chapter:    chapter,
		Region:     "Oklahoma Region",
		Division:   "Southwest",
	}
}

func TestBuildSummary(t *testing.T) {
	e := aggregate.New()
	e.Observe(row("Fire with RC Care", "2024-01-01", "OK"))
	e.Observe(row("Fire with RC Care", "2024-01-02", "OK"))
	e.Observe(row("Fire without RC Notification", "2024-01-03", "TX"))

	s := buildSummary(e)
	if s.TotalFires != 3 || s.RCCare != 2 || s.NoNotification != 1 {
		t.Errorf("summary = %+v", s)
	}
	if s.CareRate != 66.7 || s.GapRate != 33.3 {
		t.Errorf("rates = %v / %v", s.CareRate, s.GapRate)
	}
	if s.AvgSviRisk != 0.5 {
		t.Errorf("avg svi = %v", s.AvgSviRisk)
	}
	if s.UniqueDepartments != 2 || s.StatesCovered != 2 {
		t.Errorf("departments=%d states=%d", s.UniqueDepartments, s.StatesCovered)
	}
}

func TestBuildSummary_Empty(t *testing.T) {
	s := buildSummary(aggregate.New())
	if s.TotalFires != 0 || s.CareRate != 0 || s.GapRate != 0 || s.AvgSviRisk != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}

func TestBuildFunnel_LabelsAndColors(t *testing.T) {
	f := buildFunnel(aggregate.New())
	want := []model.FunnelStage{
		{Label: "Total Fire Events", Value: 0, Color: "#737373"},
		{Label: "NFIRS Match", Value: 0, Color: "#4a4a4a"},
		{Label: "RC Notified", Value: 0, Color: "#2d5a27"},
		{Label: "RC Care Provided", Value: 0, Color: "#ED1B2E"},
	}
	if len(f.Stages) != len(want) {
		t.Fatalf("stages = %d", len(f.Stages))
	}
	for i, s := range f.Stages {
		if s != want[i] {
			t.Errorf("stage %d = %+v, want %+v", i, s, want[i])
		}
	}
}

func TestBuildStates_RankedWithStableTies(t *testing.T) {
	e := aggregate.New()
	e.Observe(row("Fire with RC Care", "2024-01-01", "TX"))
	e.Observe(row("Fire with RC Care", "2024-01-01", "OK"))
	e.Observe(row("Fire with RC Care", "2024-02-01", "OK"))
	e.Observe(row("Fire with RC Care", "2024-01-01", "KS")) // ties with TX at 1

	out := buildStates(e)
	if len(out) != 3 {
		t.Fatalf("len = %d", len(out))
	}
	if out[0].State != "OK" {
		t.Errorf("rank 1 = %q", out[0].State)
	}
	// TX was seen before KS; the tie keeps that order.
	if out[1].State != "TX" || out[2].State != "KS" {
		t.Errorf("tie order = %q, %q", out[1].State, out[2].State)
	}
	if len(out[0].Monthly) != 2 || out[0].Monthly[0].Month != "2024-01" {
		t.Errorf("monthly = %+v", out[0].Monthly)
	}
}

func TestBuildMonthsAndDays_Chronological(t *testing.T) {
	e := aggregate.New()
	e.Observe(row("Fire with RC Care", "2024-03-02", "OK"))
	e.Observe(row("Fire with RC Care", "2024-01-15", "OK"))
	e.Observe(row("Fire with RC Care", "2024-03-01", "OK"))

	months := buildMonths(e)
	if len(months) != 2 || months[0].Month != "2024-01" || months[1].Month != "2024-03" {
		t.Errorf("months = %+v", months)
	}
	days := buildDays(e)
	if len(days) != 3 || days[0].Date != "2024-01-15" || days[2].Date != "2024-03-02" {
		t.Errorf("days = %+v", days)
	}
}

func TestBuildDepartments_GapScore(t *testing.T) {
	e := aggregate.New()
	r, res := row("Fire without RC Notification", "2024-01-01", "OK")
	e.Observe(r, res)
	r, res = row("Fire without RC Notification", "2024-01-02", "OK")
	e.Observe(r, res)

	out := buildDepartments(e)
	if len(out) != 1 {
		t.Fatalf("len = %d", len(out))
	}
	d := out[0]
	if d.Name != "Dept OK" || d.Gap != 2 {
		t.Errorf("dept = %+v", d)
	}
	// gapScore = gap count × avg svi = 2 × 0.5
	if d.GapScore != 1.0 {
		t.Errorf("gapScore = %v", d.GapScore)
	}
}

func TestBuildCounties_DemographicsJoin(t *testing.T) {
	e := aggregate.New()
	e.Observe(countyRow("Fire with RC Care", "40143", "ARC of Tulsa"))
	e.Observe(countyRow("Fire without RC Notification", "40143", "ARC of Tulsa"))

	demo := lookup.DemoTable{
		"40143": {Population: 669279, MedianIncome: 61000, Poverty: 14.2},
	}
	out := buildCounties(e, demo, map[string]int{"40143": 42})
	if len(out) != 1 {
		t.Fatalf("len = %d", len(out))
	}
	c := out[0]
	if c.Name != "40143" || c.Fips != "40143" || c.County != "County 40143" {
		t.Errorf("identity = %+v", c)
	}
	if c.State != "OK" || c.Chapter != "ARC of Tulsa" {
		t.Errorf("hierarchy = %+v", c)
	}
	if c.Population != 669279 || c.Poverty != 14.2 {
		t.Errorf("demographics = %+v", c)
	}
	// 2 fires / 669279 × 10000 = 0.0298..., rounds to 0.0
	if c.FiresPer10k != 0.0 {
		t.Errorf("firesPer10k = %v", c.FiresPer10k)
	}
	if c.StationCount != 42 {
		t.Errorf("stationCount = %d", c.StationCount)
	}
}

func TestBuildCounties_MissingDemographics(t *testing.T) {
	e := aggregate.New()
	e.Observe(countyRow("Fire with RC Care", "40143", "ARC of Tulsa"))

	out := buildCounties(e, lookup.DemoTable{}, nil)
	c := out[0]
	if c.Population != 0 || c.FiresPer10k != 0 || c.StationCount != 0 {
		t.Errorf("missing demographics = %+v", c)
	}
}

func TestBuildOrg_FrozenCountyMembership(t *testing.T) {
	e := aggregate.New()
	e.Observe(countyRow("Fire with RC Care", "40143", "ARC of Tulsa"))
	e.Observe(countyRow("Fire with RC Care", "40097", "ARC of Tulsa"))
	// Same county resolving to a different chapter later: membership stays
	// with the first-seen chapter.
	e.Observe(countyRow("Fire with RC Care", "40143", "Some Other Chapter"))

	demo := lookup.DemoTable{
		"40143": {Population: 600000},
		"40097": {Population: 40000},
	}
	out := buildOrg(e.ByChapter, e, demo, func(m aggregate.CountyMeta) string { return m.Chapter })
	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}
	tulsa := out[0]
	if tulsa.Name != "ARC of Tulsa" || tulsa.Total != 2 {
		t.Errorf("rank 1 = %+v", tulsa)
	}
	if tulsa.CountyCount != 2 || tulsa.Population != 640000 {
		t.Errorf("membership = count %d, pop %d", tulsa.CountyCount, tulsa.Population)
	}
	other := out[1]
	if other.Name != "Some Other Chapter" || other.CountyCount != 0 || other.Population != 0 {
		t.Errorf("later chapter = %+v", other)
	}
	// 2 fires / 640000 × 10000 = 0.03125 → 0.0
	if tulsa.FiresPer10k != 0.0 {
		t.Errorf("firesPer10k = %v", tulsa.FiresPer10k)
	}
}

func TestBuildGapAnalysis(t *testing.T) {
	e := aggregate.New()
	// OK: 2 gaps, TX: 1 gap, KS: care only.
	for i := 0; i < 2; i++ {
		e.Observe(row("Fire without RC Notification", "2024-01-01", "OK"))
	}
	e.Observe(row("Fire without RC Notification", "2024-01-01", "TX"))
	e.Observe(row("Fire with RC Care", "2024-01-01", "KS"))

	out := buildGapAnalysis(e)
	if len(out) != 2 {
		t.Fatalf("states with gaps = %d", len(out))
	}
	if out[0].State != "OK" || out[1].State != "TX" {
		t.Errorf("order = %q, %q", out[0].State, out[1].State)
	}
	// opportunityScore = 2 × 0.5
	if out[0].OpportunityScore != 1.0 || out[0].GapCount != 2 {
		t.Errorf("entry = %+v", out[0])
	}
	if out[0].GapRate != 100.0 {
		t.Errorf("gapRate = %v", out[0].GapRate)
	}
}

func TestBuildRisk_BinLabels(t *testing.T) {
	doc := buildRisk(aggregate.New())
	if len(doc.Bins) != 10 || len(doc.Total) != 10 || len(doc.Gap) != 10 {
		t.Fatalf("lengths = %d/%d/%d", len(doc.Bins), len(doc.Total), len(doc.Gap))
	}
	if doc.Bins[0] != "0.0-0.1" || doc.Bins[9] != "0.9-1.0" {
		t.Errorf("bins = %v", doc.Bins)
	}
}

func TestFiresPer10k(t *testing.T) {
	if got := firesPer10k(150, 669279); got != 2.2 {
		t.Errorf("firesPer10k = %v", got)
	}
	if got := firesPer10k(5, 0); got != 0 {
		t.Errorf("zero population = %v", got)
	}
}

func TestBuild_AllDocuments(t *testing.T) {
	e := aggregate.New()
	e.Observe(countyRow("Fire with RC Care", "40143", "ARC of Tulsa"))

	docs := Build(e, lookup.DemoTable{}, nil)
	if docs.Points.Count != 1 {
		t.Errorf("points = %+v", docs.Points)
	}
	if len(docs.ByState) != 1 || len(docs.ByCounty) != 1 || len(docs.ByChapter) != 1 ||
		len(docs.ByRegion) != 1 || len(docs.ByDivision) != 1 {
		t.Error("grouping documents incomplete")
	}
	if len(docs.GapAnalysis) != 0 {
		t.Errorf("gap analysis = %+v", docs.GapAnalysis)
	}
	if len(docs.Funnel.Stages) != 4 {
		t.Errorf("funnel = %+v", docs.Funnel)
	}
}
