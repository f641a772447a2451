package lookup

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// CountyRef is the county a ZIP code resolves to.
type CountyRef struct {
	Fips string
	Name string
}

// ZipTable maps 5-digit ZIP codes to counties.
type ZipTable map[string]CountyRef

// LoadZipTable reads the ZIP → county CSV (columns ZIP_CODE, COUNTY_FIPS,
// County). ZIP codes are left-padded to 5 digits.
func LoadZipTable(path string) (ZipTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open zip lookup: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read zip lookup header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"ZIP_CODE", "COUNTY_FIPS", "County"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("zip lookup missing column %q", required)
		}
	}

	table := make(ZipTable)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read zip lookup row: %w", err)
		}
		zip := padZip(strings.TrimSpace(rec[col["ZIP_CODE"]]))
		if zip == "" {
			continue
		}
		table[zip] = CountyRef{
			Fips: strings.TrimSpace(rec[col["COUNTY_FIPS"]]),
			Name: strings.TrimSpace(rec[col["County"]]),
		}
	}
	return table, nil
}

// padZip left-pads a ZIP code with zeros to 5 digits.
func padZip(zip string) string {
	if zip == "" || len(zip) >= 5 {
		return zip
	}
	return strings.Repeat("0", 5-len(zip)) + zip
}
