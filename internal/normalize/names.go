package normalize

import "strings"

// OrgName normalizes organizational unit names from the master geography:
// strips a leading "The " and abbreviates a leading "American Red Cross".
func OrgName(name string) string {
	name = strings.TrimPrefix(name, "The ")
	if strings.HasPrefix(name, "American Red Cross") {
		name = "ARC" + name[len("American Red Cross"):]
	}
	return name
}
