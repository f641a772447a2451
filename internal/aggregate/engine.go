// Package aggregate implements the single-pass streaming accumulation over
// incident records: grouped category counts, severity statistics, the
// response funnel, the risk histogram, and the compact point arrays.
package aggregate

import (
	"strings"

	"github.com/flare-analytics/flarestats/internal/enrich"
	"github.com/flare-analytics/flarestats/internal/model"
	"github.com/flare-analytics/flarestats/internal/normalize"
)

// Stats accumulates one grouping key: category counts, severity sum/count,
// and (for time-bearing groupings) a month → counts sub-accumulator.
type Stats struct {
	model.Counts
	SviSum   float64
	SviCount int
	Monthly  map[string]*model.Counts
}

// AvgSvi returns the mean severity index rounded to 3 decimals, 0 when no
// severity values were observed.
func (s *Stats) AvgSvi() float64 {
	if s.SviCount == 0 {
		return 0
	}
	return normalize.Round3(s.SviSum / float64(s.SviCount))
}

func (s *Stats) observe(cat model.Category, svi *float64, monthKey string) {
	s.Add(cat)
	if svi != nil {
		s.SviSum += *svi
		s.SviCount++
	}
	if monthKey != "" && s.Monthly != nil {
		mc := s.Monthly[monthKey]
		if mc == nil {
			mc = &model.Counts{}
			s.Monthly[monthKey] = mc
		}
		mc.Add(cat)
	}
}

// GroupBy is a lazily-populated keyed accumulator that remembers insertion
// order, so that ties in the ranked reports resolve to first-seen order.
type GroupBy struct {
	stats   map[string]*Stats
	order   []string
	monthly bool
}

func newGroupBy(monthly bool) *GroupBy {
	return &GroupBy{stats: make(map[string]*Stats), monthly: monthly}
}

func (g *GroupBy) get(key string) *Stats {
	if s, ok := g.stats[key]; ok {
		return s
	}
	s := &Stats{}
	if g.monthly {
		s.Monthly = make(map[string]*model.Counts)
	}
	g.stats[key] = s
	g.order = append(g.order, key)
	return s
}

// Len returns the number of distinct keys seen.
func (g *GroupBy) Len() int { return len(g.stats) }

// Get returns the Stats for key, or nil if the key was never seen.
func (g *GroupBy) Get(key string) *Stats { return g.stats[key] }

// KeyedStats pairs a grouping key with its accumulated stats.
type KeyedStats struct {
	Key   string
	Stats *Stats
}

// Entries returns all keys in first-seen order.
func (g *GroupBy) Entries() []KeyedStats {
	out := make([]KeyedStats, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, KeyedStats{Key: k, Stats: g.stats[k]})
	}
	return out
}

// CountyMeta is the first-seen metadata for a county FIPS. First occurrence
// wins; later records never overwrite it, even when they resolve differently.
type CountyMeta struct {
	Name     string
	State    string
	Chapter  string
	Region   string
	Division string
}

// Funnel counts incidents through the successive response milestones.
type Funnel struct {
	Total      int
	NFIRSMatch int
	RCNotified int
	RCCare     int
}

// Engine accumulates everything produced by the single pass. All state is
// process-local; the pass is strictly sequential.
type Engine struct {
	Totals   model.Counts
	SviSum   float64
	SviCount int

	Monthly map[string]*model.Counts
	Daily   map[string]*model.Counts

	ByState      *GroupBy
	ByDepartment *GroupBy
	ByCounty     *GroupBy
	ByChapter    *GroupBy
	ByRegion     *GroupBy
	ByDivision   *GroupBy

	CountyMeta map[string]CountyMeta

	Funnel    Funnel
	RiskTotal [10]int
	RiskGap   [10]int

	Points Points

	Processed  int64
	Skipped    int64
	ZipMatches int64
}

// New creates an empty Engine.
func New() *Engine {
	return &Engine{
		Monthly:      make(map[string]*model.Counts),
		Daily:        make(map[string]*model.Counts),
		ByState:      newGroupBy(true),
		ByDepartment: newGroupBy(false),
		ByCounty:     newGroupBy(true),
		ByChapter:    newGroupBy(true),
		ByRegion:     newGroupBy(true),
		ByDivision:   newGroupBy(true),
		CountyMeta:   make(map[string]CountyMeta),
	}
}

// Observe folds one (row, enrichment) pair into the accumulators. Returns
// false when the row is rejected (unrecognized category or missing
// coordinates); rejected rows only advance the skip counter.
func (e *Engine) Observe(row *model.IncidentRow, res enrich.Result) bool {
	cat, ok := model.ParseCategory(row.MasterLabel)
	if !ok || !hasCoords(row) {
		e.Skipped++
		return false
	}

	date := normalize.ParseDate(row.IncidentDate)
	svi := row.SviRisk
	dept := strings.TrimSpace(row.Department)
	if dept == "" {
		dept = "Unknown"
	}

	var monthKey, dayKey string
	if date != nil {
		monthKey = normalize.MonthKey(*date)
		dayKey = normalize.DayKey(*date)
	}

	if res.CountyFips != "" {
		// First-wins: explicit membership check keeps the invariant auditable.
		if _, seen := e.CountyMeta[res.CountyFips]; !seen {
			e.CountyMeta[res.CountyFips] = CountyMeta{
				Name:     res.CountyName,
				State:    res.State,
				Chapter:  res.Chapter,
				Region:   res.Region,
				Division: res.Division,
			}
		}

		// Each grouping updates independently per non-empty key.
		e.ByCounty.get(res.CountyFips).observe(cat, svi, monthKey)
		if res.Chapter != "" {
			e.ByChapter.get(res.Chapter).observe(cat, svi, monthKey)
		}
		if res.Region != "" {
			e.ByRegion.get(res.Region).observe(cat, svi, monthKey)
		}
		if res.Division != "" {
			e.ByDivision.get(res.Division).observe(cat, svi, monthKey)
		}
	}

	e.Points.add(row, res, cat, date)

	e.Totals.Add(cat)

	if svi != nil {
		e.SviSum += *svi
		e.SviCount++

		bin := int(*svi * 10)
		if bin > 9 {
			bin = 9 // 1.0 clamps into the top bin, intentionally
		}
		if bin >= 0 {
			e.RiskTotal[bin]++
			if cat == model.CategoryGap {
				e.RiskGap[bin]++
			}
		}
	}

	if date != nil {
		addCounts(e.Monthly, monthKey, cat)
		addCounts(e.Daily, dayKey, cat)
	}

	if res.State != "" {
		e.ByState.get(res.State).observe(cat, svi, monthKey)
	}

	e.ByDepartment.get(dept).observe(cat, svi, "")

	e.Funnel.Total++
	if row.NFIRSAddress != "" {
		e.Funnel.NFIRSMatch++
	}
	if cat == model.CategoryCare || cat == model.CategoryNotification {
		e.Funnel.RCNotified++
	}
	if cat == model.CategoryCare {
		e.Funnel.RCCare++
	}

	e.Processed++
	return true
}

// AvgSvi returns the global mean severity rounded to 3 decimals.
func (e *Engine) AvgSvi() float64 {
	if e.SviCount == 0 {
		return 0
	}
	return normalize.Round3(e.SviSum / float64(e.SviCount))
}

// hasCoords reports whether the row carries usable coordinates. A 0,0 pair
// is a geocoding sentinel, not a real location.
func hasCoords(row *model.IncidentRow) bool {
	if row.Lat == nil || row.Lon == nil {
		return false
	}
	return *row.Lat != 0 || *row.Lon != 0
}

func addCounts(m map[string]*model.Counts, key string, cat model.Category) {
	c := m[key]
	if c == nil {
		c = &model.Counts{}
		m[key] = c
	}
	c.Add(cat)
}
