package lookup

// Tables bundles the static lookup tables loaded once before the pass.
// A load failure for any of them aborts the run before aggregation begins.
type Tables struct {
	Zip  ZipTable
	Org  OrgTable
	Demo DemoTable
}

// LoadTables loads all three static tables from their file paths.
func LoadTables(zipPath, orgPath, demoPath string) (*Tables, error) {
	zip, err := LoadZipTable(zipPath)
	if err != nil {
		return nil, err
	}
	org, err := LoadOrgTable(orgPath)
	if err != nil {
		return nil, err
	}
	demo, err := LoadDemoTable(demoPath)
	if err != nil {
		return nil, err
	}
	return &Tables{Zip: zip, Org: org, Demo: demo}, nil
}
