// Package report converts the finished accumulators into the output
// documents: ranked, rate-annotated lists plus the scalar summary, funnel,
// and histogram. Runs once, after the full pass.
package report

import (
	"fmt"
	"sort"

	"github.com/flare-analytics/flarestats/internal/aggregate"
	"github.com/flare-analytics/flarestats/internal/lookup"
	"github.com/flare-analytics/flarestats/internal/model"
	"github.com/flare-analytics/flarestats/internal/normalize"
)

// Documents bundles every output document produced from one pass.
type Documents struct {
	Points       model.PointsDoc
	Summary      model.SummaryDoc
	Funnel       model.FunnelDoc
	ByState      []model.StateEntry
	ByMonth      []model.MonthEntry
	ByDay        []model.DayEntry
	ByDepartment []model.DepartmentEntry
	ByCounty     []model.CountyEntry
	ByChapter    []model.OrgEntry
	ByRegion     []model.OrgEntry
	ByDivision   []model.OrgEntry
	GapAnalysis  []model.GapEntry
	Risk         model.RiskDoc
}

// Build produces all documents from the engine state, joining county
// demographics and station counts. stationCounts may be nil.
func Build(e *aggregate.Engine, demo lookup.DemoTable, stationCounts map[string]int) *Documents {
	return &Documents{
		Points:       e.Points.Doc(),
		Summary:      buildSummary(e),
		Funnel:       buildFunnel(e),
		ByState:      buildStates(e),
		ByMonth:      buildMonths(e),
		ByDay:        buildDays(e),
		ByDepartment: buildDepartments(e),
		ByCounty:     buildCounties(e, demo, stationCounts),
		ByChapter:    buildOrg(e.ByChapter, e, demo, func(m aggregate.CountyMeta) string { return m.Chapter }),
		ByRegion:     buildOrg(e.ByRegion, e, demo, func(m aggregate.CountyMeta) string { return m.Region }),
		ByDivision:   buildOrg(e.ByDivision, e, demo, func(m aggregate.CountyMeta) string { return m.Division }),
		GapAnalysis:  buildGapAnalysis(e),
		Risk:         buildRisk(e),
	}
}

// rates returns care and gap rates as percentages rounded to 1 decimal,
// 0 when the total is 0.
func rates(c model.Counts) (care, gap float64) {
	if c.Total == 0 {
		return 0, 0
	}
	care = normalize.Round1(float64(c.Care) / float64(c.Total) * 100)
	gap = normalize.Round1(float64(c.Gap) / float64(c.Total) * 100)
	return care, gap
}

// ranked sorts grouping entries by descending total; ties keep first-seen order.
func ranked(g *aggregate.GroupBy) []aggregate.KeyedStats {
	entries := g.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Stats.Total > entries[j].Stats.Total
	})
	return entries
}

// monthlyList flattens a month sub-accumulator in chronological order.
func monthlyList(m map[string]*model.Counts) []model.MonthlyEntry {
	keys := sortedKeys(m)
	out := make([]model.MonthlyEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.MonthlyEntry{Month: k, Counts: *m[k]})
	}
	return out
}

func sortedKeys(m map[string]*model.Counts) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func buildSummary(e *aggregate.Engine) model.SummaryDoc {
	careRate, gapRate := rates(e.Totals)
	return model.SummaryDoc{
		TotalFires:        e.Totals.Total,
		RCCare:            e.Totals.Care,
		RCNotification:    e.Totals.Notification,
		NoNotification:    e.Totals.Gap,
		CareRate:          careRate,
		GapRate:           gapRate,
		AvgSviRisk:        e.AvgSvi(),
		UniqueDepartments: e.ByDepartment.Len(),
		StatesCovered:     e.ByState.Len(),
	}
}

func buildFunnel(e *aggregate.Engine) model.FunnelDoc {
	return model.FunnelDoc{Stages: []model.FunnelStage{
		{Label: "Total Fire Events", Value: e.Funnel.Total, Color: "#737373"},
		{Label: "NFIRS Match", Value: e.Funnel.NFIRSMatch, Color: "#4a4a4a"},
		{Label: "RC Notified", Value: e.Funnel.RCNotified, Color: "#2d5a27"},
		{Label: "RC Care Provided", Value: e.Funnel.RCCare, Color: "#ED1B2E"},
	}}
}

func buildStates(e *aggregate.Engine) []model.StateEntry {
	entries := ranked(e.ByState)
	out := make([]model.StateEntry, 0, len(entries))
	for _, kv := range entries {
		care, gap := rates(kv.Stats.Counts)
		out = append(out, model.StateEntry{
			State:    kv.Key,
			Counts:   kv.Stats.Counts,
			CareRate: care,
			GapRate:  gap,
			AvgSvi:   kv.Stats.AvgSvi(),
			Monthly:  monthlyList(kv.Stats.Monthly),
		})
	}
	return out
}

func buildMonths(e *aggregate.Engine) []model.MonthEntry {
	keys := sortedKeys(e.Monthly)
	out := make([]model.MonthEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.MonthEntry{Month: k, Counts: *e.Monthly[k]})
	}
	return out
}

func buildDays(e *aggregate.Engine) []model.DayEntry {
	keys := sortedKeys(e.Daily)
	out := make([]model.DayEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.DayEntry{Date: k, Counts: *e.Daily[k]})
	}
	return out
}

func buildDepartments(e *aggregate.Engine) []model.DepartmentEntry {
	entries := ranked(e.ByDepartment)
	out := make([]model.DepartmentEntry, 0, len(entries))
	for _, kv := range entries {
		care, gap := rates(kv.Stats.Counts)
		avg := kv.Stats.AvgSvi()
		out = append(out, model.DepartmentEntry{
			Name:     kv.Key,
			Counts:   kv.Stats.Counts,
			CareRate: care,
			GapRate:  gap,
			AvgSvi:   avg,
			GapScore: normalize.Round1(float64(kv.Stats.Gap) * avg),
		})
	}
	return out
}

func buildCounties(e *aggregate.Engine, demo lookup.DemoTable, stationCounts map[string]int) []model.CountyEntry {
	entries := ranked(e.ByCounty)
	out := make([]model.CountyEntry, 0, len(entries))
	for _, kv := range entries {
		care, gap := rates(kv.Stats.Counts)
		meta := e.CountyMeta[kv.Key]
		d := demo[kv.Key]
		out = append(out, model.CountyEntry{
			Name:           kv.Key,
			Counts:         kv.Stats.Counts,
			CareRate:       care,
			GapRate:        gap,
			AvgSvi:         kv.Stats.AvgSvi(),
			Monthly:        monthlyList(kv.Stats.Monthly),
			Fips:           kv.Key,
			County:         meta.Name,
			State:          meta.State,
			Chapter:        meta.Chapter,
			Region:         meta.Region,
			Division:       meta.Division,
			Population:     d.Population,
			MedianIncome:   d.MedianIncome,
			Households:     d.Households,
			Poverty:        d.Poverty,
			MedianAge:      d.MedianAge,
			DiversityIndex: d.DiversityIndex,
			HomeValue:      d.HomeValue,
			FiresPer10k:    firesPer10k(kv.Stats.Total, d.Population),
			StationCount:   stationCounts[kv.Key],
		})
	}
	return out
}

// buildOrg produces a chapter/region/division document. County membership
// comes from the frozen first-seen county metadata captured during the pass,
// not from live accumulator state.
func buildOrg(g *aggregate.GroupBy, e *aggregate.Engine, demo lookup.DemoTable, unit func(aggregate.CountyMeta) string) []model.OrgEntry {
	entries := ranked(g)
	out := make([]model.OrgEntry, 0, len(entries))
	for _, kv := range entries {
		care, gap := rates(kv.Stats.Counts)
		countyCount, population := 0, 0
		for fips, meta := range e.CountyMeta {
			if unit(meta) == kv.Key {
				countyCount++
				population += demo[fips].Population
			}
		}
		out = append(out, model.OrgEntry{
			Name:        kv.Key,
			Counts:      kv.Stats.Counts,
			CareRate:    care,
			GapRate:     gap,
			AvgSvi:      kv.Stats.AvgSvi(),
			Monthly:     monthlyList(kv.Stats.Monthly),
			CountyCount: countyCount,
			Population:  population,
			FiresPer10k: firesPer10k(kv.Stats.Total, population),
		})
	}
	return out
}

func buildGapAnalysis(e *aggregate.Engine) []model.GapEntry {
	out := make([]model.GapEntry, 0)
	for _, kv := range e.ByState.Entries() {
		if kv.Stats.Gap == 0 {
			continue
		}
		care, gap := rates(kv.Stats.Counts)
		avg := kv.Stats.AvgSvi()
		out = append(out, model.GapEntry{
			State:            kv.Key,
			GapCount:         kv.Stats.Gap,
			TotalFires:       kv.Stats.Total,
			AvgSvi:           avg,
			OpportunityScore: normalize.Round1(float64(kv.Stats.Gap) * avg),
			GapRate:          gap,
			CareRate:         care,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OpportunityScore > out[j].OpportunityScore
	})
	return out
}

func buildRisk(e *aggregate.Engine) model.RiskDoc {
	bins := make([]string, 10)
	for i := range bins {
		bins[i] = fmt.Sprintf("%.1f-%.1f", float64(i)/10, float64(i+1)/10)
	}
	return model.RiskDoc{
		Bins:  bins,
		Total: e.RiskTotal[:],
		Gap:   e.RiskGap[:],
	}
}

// firesPer10k computes total/population×10000 rounded to 1 decimal, 0 when
// the population is 0 or unknown.
func firesPer10k(total, population int) float64 {
	if population <= 0 {
		return 0
	}
	return normalize.Round1(float64(total) / float64(population) * 10000)
}
