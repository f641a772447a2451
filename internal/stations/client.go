// Package stations fetches the fire-station registry from the HIFLD feature
// service and counts stations per county FIPS. This is the only component
// with retry logic: the aggregation pass itself is never retried.
package stations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/flare-analytics/flarestats/internal/model"
)

// DefaultServiceURL is the HIFLD fire-stations ArcGIS feature service.
const DefaultServiceURL = "https://services1.arcgis.com/0MSEUqKaxRlEPj5g/arcgis/rest/services/Fire_Stations2/FeatureServer/0/query"

const outFields = "NAME,ADDRESS,CITY,STATE,COUNTY,FIPS,FDID,X,Y"

// Client pages through the station feature service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
	maxRetries int
	log        zerolog.Logger
}

// NewClient creates a station registry client. pageSize bounds each query;
// maxRetries bounds per-page retry attempts.
func NewClient(baseURL string, pageSize, maxRetries int, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultServiceURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		pageSize:   pageSize,
		maxRetries: maxRetries,
		log:        log,
	}
}

// FetchAll retrieves every station record, following resultOffset pagination
// until the service reports no more features.
func (c *Client) FetchAll(ctx context.Context) ([]model.StationRecord, error) {
	var records []model.StationRecord
	offset := 0

	for {
		page, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, fmt.Errorf("fetch stations at offset %d: %w", offset, err)
		}
		if len(page.Features) == 0 {
			break
		}

		for _, f := range page.Features {
			records = append(records, f.Attributes.toRecord())
		}
		offset += len(page.Features)

		c.log.Info().Int("offset", offset).Int("page", len(page.Features)).Msg("station page fetched")

		if !page.ExceededTransferLimit && len(page.Features) < c.pageSize {
			break
		}
	}

	return records, nil
}

// fetchPage queries one page with bounded exponential-backoff retry.
func (c *Client) fetchPage(ctx context.Context, offset int) (*queryResponse, error) {
	var lastErr error
	delay := 500 * time.Millisecond

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		page, err := c.doQuery(ctx, offset)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt < c.maxRetries {
			c.log.Warn().Err(err).Int("attempt", attempt).Int("offset", offset).
				Dur("retry_in", delay).Msg("station page fetch failed")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay *= 2
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) doQuery(ctx context.Context, offset int) (*queryResponse, error) {
	params := url.Values{
		"where":             {"1=1"},
		"outFields":         {outFields},
		"returnGeometry":    {"false"},
		"resultOffset":      {fmt.Sprintf("%d", offset)},
		"resultRecordCount": {fmt.Sprintf("%d", c.pageSize)},
		"f":                 {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "flarestats/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("station service status %d: %s", resp.StatusCode, body)
	}

	var page queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode station response: %w", err)
	}
	return &page, nil
}

// Feature service response types.

type queryResponse struct {
	Features              []feature `json:"features"`
	ExceededTransferLimit bool      `json:"exceededTransferLimit"`
}

type feature struct {
	Attributes attributes `json:"attributes"`
}

type attributes struct {
	Name    string     `json:"NAME"`
	Address string     `json:"ADDRESS"`
	City    string     `json:"CITY"`
	State   string     `json:"STATE"`
	County  string     `json:"COUNTY"`
	Fips    flexString `json:"FIPS"`
	FDID    flexString `json:"FDID"`
	X       *float64   `json:"X"`
	Y       *float64   `json:"Y"`
}

func (a attributes) toRecord() model.StationRecord {
	rec := model.StationRecord{
		Name:       a.Name,
		CountyFips: strings.TrimSpace(string(a.Fips)),
		FireDeptID: strings.TrimSpace(string(a.FDID)),
		Address:    a.Address,
		City:       a.City,
		State:      a.State,
	}
	if a.Y != nil {
		rec.Lat = *a.Y
	}
	if a.X != nil {
		rec.Lon = *a.X
	}
	return rec
}

// flexString decodes a JSON string or number as a string; the service is
// inconsistent about FIPS and FDID types.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}
