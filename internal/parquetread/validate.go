package parquetread

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// addressColumns lists the four address variants; at least one must exist
// for ZIP extraction to have any input.
var addressColumns = []string{"address", "nfirs_addr", "rc_respond_addr", "rc_care_addr"}

// ValidateSchema checks that the Parquet schema contains the columns the
// pass depends on: category label, coordinates, and at least one address.
func ValidateSchema(schema *parquet.Schema) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}

	required := []string{"master_label", "lat", "lon"}
	for _, col := range required {
		if !columns[col] {
			return fmt.Errorf("missing required column: %s", col)
		}
	}

	hasAddress := false
	for _, col := range addressColumns {
		if columns[col] {
			hasAddress = true
			break
		}
	}
	if !hasAddress {
		return fmt.Errorf("no address columns found; need at least one of: %s",
			strings.Join(addressColumns, ", "))
	}

	return nil
}
