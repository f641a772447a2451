package stations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/flare-analytics/flarestats/internal/model"
)

func stationJSON(name, fips string, x, y float64) string {
	return fmt.Sprintf(`{"attributes":{"NAME":%q,"ADDRESS":"1 Main St","CITY":"Tulsa","STATE":"OK","COUNTY":"Tulsa","FIPS":%q,"FDID":"12345","X":%v,"Y":%v}}`,
		name, fips, x, y)
}

func TestFetchAll_Paging(t *testing.T) {
	var offsets []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("resultOffset"))
		offsets = append(offsets, offset)
		switch offset {
		case 0:
			fmt.Fprintf(w, `{"features":[%s,%s],"exceededTransferLimit":true}`,
				stationJSON("Station 1", "40143", -95.99, 36.15),
				stationJSON("Station 2", "40143", -95.98, 36.16))
		case 2:
			fmt.Fprintf(w, `{"features":[%s],"exceededTransferLimit":false}`,
				stationJSON("Station 3", "40097", -95.30, 36.30))
		default:
			t.Errorf("unexpected offset %d", offset)
			fmt.Fprint(w, `{"features":[]}`)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2, 1, 5*time.Second, zerolog.Nop())
	records, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d", len(records))
	}
	if len(offsets) != 2 || offsets[0] != 0 || offsets[1] != 2 {
		t.Errorf("offsets = %v", offsets)
	}
	if records[0].Name != "Station 1" || records[0].CountyFips != "40143" {
		t.Errorf("record = %+v", records[0])
	}
	if records[0].Lat != 36.15 || records[0].Lon != -95.99 {
		t.Errorf("coords = %v,%v", records[0].Lat, records[0].Lon)
	}
}

func TestFetchAll_ShortPageWithExceededLimitContinues(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			// Short page but the service says there is more.
			fmt.Fprintf(w, `{"features":[%s],"exceededTransferLimit":true}`,
				stationJSON("Station 1", "40143", -95.99, 36.15))
			return
		}
		fmt.Fprint(w, `{"features":[],"exceededTransferLimit":false}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 100, 1, 5*time.Second, zerolog.Nop())
	records, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(records) != 1 || calls != 2 {
		t.Errorf("records=%d calls=%d", len(records), calls)
	}
}

func TestFetchPage_RetriesOnServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, `{"features":[%s],"exceededTransferLimit":false}`,
			stationJSON("Station 1", "40143", -95.99, 36.15))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 100, 3, 5*time.Second, zerolog.Nop())
	records, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(records) != 1 || calls != 2 {
		t.Errorf("records=%d calls=%d", len(records), calls)
	}
}

func TestFetchPage_ExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 100, 2, 5*time.Second, zerolog.Nop())
	if _, err := c.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error after exhausted retries")
	}
}

func TestFlexString(t *testing.T) {
	var a attributes
	data := `{"NAME":"S","FIPS":40143,"FDID":"00123","X":null,"Y":null}`
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(a.Fips) != "40143" {
		t.Errorf("numeric FIPS = %q", a.Fips)
	}
	if string(a.FDID) != "00123" {
		t.Errorf("string FDID = %q", a.FDID)
	}
	if a.X != nil || a.Y != nil {
		t.Error("null coordinates should stay nil")
	}

	data = `{"FIPS":null}`
	a = attributes{}
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if string(a.Fips) != "" {
		t.Errorf("null FIPS = %q", a.Fips)
	}
}

func TestCount(t *testing.T) {
	records := []model.StationRecord{
		{Name: "Station 1", Lat: 36.15399, Lon: -95.99, CountyFips: "40143", FireDeptID: "001"},
		{Name: "Station 2", Lat: 36.16, Lon: -95.98, CountyFips: "40143"},
		{Name: "", Lat: 36.30, Lon: -95.30, CountyFips: "143"},    // short FIPS pads to 00143
		{Name: "No Coords", Lat: 0, Lon: 0, CountyFips: "40143"},  // skipped
		{Name: "No FIPS", Lat: 35.0, Lon: -97.0, CountyFips: ""},  // valid, uncounted
		{Name: "Bad FIPS", Lat: 35.0, Lon: -97.0, CountyFips: "N/A"},
	}

	doc, counts, skipped := Count(records)
	if skipped != 1 {
		t.Errorf("skipped = %d", skipped)
	}
	if doc.Count != 5 || len(doc.Name) != 5 {
		t.Errorf("count = %d", doc.Count)
	}
	if doc.Name[2] != "Unknown" {
		t.Errorf("blank name = %q", doc.Name[2])
	}
	if doc.Lat[0] != 36.154 {
		t.Errorf("lat not rounded: %v", doc.Lat[0])
	}
	if doc.Fips[2] != "00143" {
		t.Errorf("short FIPS = %q", doc.Fips[2])
	}
	if doc.Fips[4] != "N/A" {
		t.Errorf("non-numeric FIPS = %q", doc.Fips[4])
	}
	if counts["40143"] != 2 || counts["00143"] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if _, ok := counts[""]; ok {
		t.Error("empty FIPS must not be counted")
	}
	if _, ok := counts["N/A"]; ok {
		t.Error("non-5-digit FIPS must not be counted")
	}
}

func TestPadFips(t *testing.T) {
	cases := []struct{ in, want string }{
		{"143", "00143"},
		{"40143", "40143"},
		{"401431", "401431"},
		{"N/A", "N/A"},
		{"", ""},
	}
	for _, c := range cases {
		if got := PadFips(c.in); got != c.want {
			t.Errorf("PadFips(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMergeCounts(t *testing.T) {
	counties := []model.CountyEntry{
		{Fips: "40143", StationCount: 7}, // stale value gets replaced
		{Fips: "40097"},
	}
	enriched := MergeCounts(counties, map[string]int{"40143": 42})
	if enriched != 1 {
		t.Errorf("enriched = %d", enriched)
	}
	if counties[0].StationCount != 42 {
		t.Errorf("40143 = %d", counties[0].StationCount)
	}
	if counties[1].StationCount != 0 {
		t.Errorf("40097 = %d", counties[1].StationCount)
	}
}
