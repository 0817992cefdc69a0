package croptax

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Crop is a crop profile from the taxonomy service.
type Crop struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	NitrogenKgHa    float64 `json:"nitrogen_kg_ha"`
	PhosphorusKgHa  float64 `json:"phosphorus_kg_ha"`
	PotassiumKgHa   float64 `json:"potassium_kg_ha"`
	DroughtTolerant bool    `json:"drought_tolerant"`
	GrowthStages    []Stage `json:"growth_stages,omitempty"`
}

type Stage struct {
	Name     string `json:"name"`
	StartDay int    `json:"start_day"`
	EndDay   int    `json:"end_day"`
}

type Client interface {
	GetCrop(ctx context.Context, name string) (*Crop, error)
	ListCrops(ctx context.Context) ([]Crop, error)
	IsSupported(ctx context.Context, name string) (bool, error)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) doReq(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
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
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("croptax GET %s: %d %s", path, resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *HTTPClient) GetCrop(ctx context.Context, name string) (*Crop, error) {
	data, err := c.doReq(ctx, "/api/v1/crops/"+strings.ToLower(name))
	if err != nil || data == nil {
		return nil, err
	}
	var crop Crop
	if err := json.Unmarshal(data, &crop); err != nil {
		return nil, err
	}
	return &crop, nil
}

func (c *HTTPClient) ListCrops(ctx context.Context) ([]Crop, error) {
	data, err := c.doReq(ctx, "/api/v1/crops")
	if err != nil {
		return nil, err
	}
	var crops []Crop
	if err := json.Unmarshal(data, &crops); err != nil {
		return nil, err
	}
	return crops, nil
}

func (c *HTTPClient) IsSupported(ctx context.Context, name string) (bool, error) {
	crop, err := c.GetCrop(ctx, name)
	if err != nil {
		return false, err
	}
	return crop != nil, nil
}
