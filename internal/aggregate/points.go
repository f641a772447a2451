package aggregate

import (
	"time"

	"github.com/flare-analytics/flarestats/internal/enrich"
	"github.com/flare-analytics/flarestats/internal/model"
	"github.com/flare-analytics/flarestats/internal/normalize"
)

// Points collects the compact parallel arrays for the map layer. Chapter and
// region names are interned into append-only tables on first occurrence; the
// per-point indices reference them, -1 when unresolved.
type Points struct {
	Lat   []float64
	Lon   []float64
	Cat   []int
	Svi   []float64
	Month []int
	Ch    []int
	Rg    []int

	ChapterNames []string
	RegionNames  []string

	chapterIdx map[string]int
	regionIdx  map[string]int
}

func (p *Points) add(row *model.IncidentRow, res enrich.Result, cat model.Category, date *time.Time) {
	svi := 0.0
	if row.SviRisk != nil {
		svi = normalize.Round3(*row.SviRisk)
	}
	month := 0
	if date != nil {
		month = int(date.Month())
	}

	p.Lat = append(p.Lat, normalize.Round4(*row.Lat))
	p.Lon = append(p.Lon, normalize.Round4(*row.Lon))
	p.Cat = append(p.Cat, int(cat))
	p.Svi = append(p.Svi, svi)
	p.Month = append(p.Month, month)
	p.Ch = append(p.Ch, intern(&p.ChapterNames, &p.chapterIdx, res.Chapter))
	p.Rg = append(p.Rg, intern(&p.RegionNames, &p.regionIdx, res.Region))
}

// intern returns the index of name in the table, appending it on first
// occurrence. Empty names return -1.
func intern(names *[]string, idx *map[string]int, name string) int {
	if name == "" {
		return -1
	}
	if *idx == nil {
		*idx = make(map[string]int)
	}
	if i, ok := (*idx)[name]; ok {
		return i
	}
	i := len(*names)
	(*idx)[name] = i
	*names = append(*names, name)
	return i
}

// Doc converts the collected arrays into the points output document.
// Nil slices become empty ones so the document always carries arrays.
func (p *Points) Doc() model.PointsDoc {
	return model.PointsDoc{
		Lat:      emptyIfNil(p.Lat),
		Lon:      emptyIfNil(p.Lon),
		Cat:      emptyIfNil(p.Cat),
		Svi:      emptyIfNil(p.Svi),
		Month:    emptyIfNil(p.Month),
		Ch:       emptyIfNil(p.Ch),
		Rg:       emptyIfNil(p.Rg),
		Chapters: emptyIfNil(p.ChapterNames),
		Regions:  emptyIfNil(p.RegionNames),
		Count:    len(p.Lat),
	}
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
