package lookup

import (
	"encoding/json"
	"fmt"
	"os"
)

// Demographics holds census annotations for one county. Used only for
// enrichment of the county and org reports, never for grouping.
type Demographics struct {
	Population     int     `json:"p"`
	MedianIncome   int     `json:"i"`
	Households     int     `json:"hh"`
	Poverty        float64 `json:"pov"`
	MedianAge      float64 `json:"age"`
	DiversityIndex float64 `json:"div"`
	HomeValue      int     `json:"hv"`
}

// DemoTable maps county FIPS codes to demographics.
type DemoTable map[string]Demographics

// LoadDemoTable reads the county demographics JSON object keyed by FIPS.
func LoadDemoTable(path string) (DemoTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read demographics: %w", err)
	}
	var table DemoTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse demographics: %w", err)
	}
	return table, nil
}
