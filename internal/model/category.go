package model

import "strings"

// Category is one of the three closed incident categories. The integer
// values double as the compact category codes in the points document.
type Category int

const (
	CategoryCare Category = iota
	CategoryNotification
	CategoryGap
)

// masterLabels maps the raw "Master Label" column values to categories.
// This is a closed set; anything else is rejected during aggregation.
var masterLabels = map[string]Category{
	"Fire with RC Care":            CategoryCare,
	"Fire with RC Notification":    CategoryNotification,
	"Fire without RC Notification": CategoryGap,
}

// ParseCategory maps a raw master label to its Category, or ok=false.
func ParseCategory(label string) (Category, bool) {
	c, ok := masterLabels[strings.TrimSpace(label)]
	return c, ok
}

func (c Category) String() string {
	switch c {
	case CategoryCare:
		return "care"
	case CategoryNotification:
		return "notification"
	case CategoryGap:
		return "gap"
	}
	return "unknown"
}

// Counts tracks per-category counts plus a running total for one grouping key.
// Invariant: Total == Care + Notification + Gap after every Add.
type Counts struct {
	Care         int `json:"care"`
	Notification int `json:"notification"`
	Gap          int `json:"gap"`
	Total        int `json:"total"`
}

// Add records one incident of the given category.
func (c *Counts) Add(cat Category) {
	switch cat {
	case CategoryCare:
		c.Care++
	case CategoryNotification:
		c.Notification++
	case CategoryGap:
		c.Gap++
	}
	c.Total++
}
