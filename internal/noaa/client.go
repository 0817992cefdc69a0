package noaa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DroughtIndex is a U.S. Drought Monitor style classification for a region.
// Category runs from 0 (D0, abnormally dry) to 4 (D4, exceptional drought);
// -1 means no drought designation.
type DroughtIndex struct {
	Region    string    `json:"region"`
	Category  int       `json:"category"`
	ValidFrom time.Time `json:"valid_from"`
}

// Severity maps the D0-D4 category onto a 0.0-1.0 scale.
func (d DroughtIndex) Severity() float64 {
	if d.Category < 0 {
		return 0
	}
	if d.Category > 4 {
		return 1
	}
	return float64(d.Category+1) / 5.0
}

type Client interface {
	GetDroughtIndex(ctx context.Context, region string) (*DroughtIndex, error)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPClient) GetDroughtIndex(ctx context.Context, region string) (*DroughtIndex, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/v1/drought-monitor/"+region, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("noaa drought monitor %s: %d %s", region, resp.StatusCode, string(body))
	}

	var idx DroughtIndex
	if err := json.Unmarshal(body, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}
