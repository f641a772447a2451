package model

// StationRecord is one fire-station registry entry from the HIFLD feature
// service. Records without both coordinates are kept through conversion and
// rejected by the counter.
type StationRecord struct {
	Name       string
	Lat        float64
	Lon        float64
	CountyFips string
	FireDeptID string
	Address    string
	City       string
	State      string
}

// Valid reports whether the station carries usable coordinates.
func (s *StationRecord) Valid() bool {
	return s.Lat != 0 && s.Lon != 0
}
