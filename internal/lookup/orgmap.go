package lookup

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/flare-analytics/flarestats/internal/normalize"
)

// OrgInfo is the organizational hierarchy for one county. The master
// geography is the authoritative source: its county name and state override
// values derived from the ZIP table.
type OrgInfo struct {
	County   string
	State    string
	Chapter  string
	Region   string
	Division string
}

// OrgTable maps county FIPS codes to their organizational hierarchy.
type OrgTable map[string]OrgInfo

// orgRecord is the on-disk shape of one master geography entry.
type orgRecord struct {
	Fips     string `json:"fips"`
	County   string `json:"county"`
	State    string `json:"state"`
	Chapter  string `json:"chapter"`
	Region   string `json:"region"`
	Division string `json:"division"`
}

// LoadOrgTable reads the county → chapter/region/division master geography
// JSON. Chapter names are normalized on load.
func LoadOrgTable(path string) (OrgTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read org mapping: %w", err)
	}
	var records []orgRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse org mapping: %w", err)
	}

	table := make(OrgTable, len(records))
	for _, r := range records {
		table[r.Fips] = OrgInfo{
			County:   r.County,
			State:    r.State,
			Chapter:  normalize.OrgName(r.Chapter),
			Region:   r.Region,
			Division: r.Division,
		}
	}
	return table, nil
}
