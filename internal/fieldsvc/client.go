package fieldsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Field is a registered field from the field management service.
type Field struct {
	ID            string  `json:"id"`
	FarmID        string  `json:"farm_id"`
	Name          string  `json:"name"`
	AreaHa        float64 `json:"area_ha"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Crop          string  `json:"crop"`
	SoilType      string  `json:"soil_type"`
	TillageSystem string  `json:"tillage_system"` // conventional, reduced, no_till
	Region        string  `json:"region"`
}

type Client interface {
	GetField(ctx context.Context, fieldID string) (*Field, error)
	ListFields(ctx context.Context, farmID string) ([]Field, error)
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
		return nil, fmt.Errorf("fieldsvc GET %s: %d %s", path, resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *HTTPClient) GetField(ctx context.Context, fieldID string) (*Field, error) {
	data, err := c.doReq(ctx, "/api/v1/fields/"+fieldID)
	if err != nil || data == nil {
		return nil, err
	}
	var f Field
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

type fieldsResponse struct {
	Data []Field `json:"data"`
}

func (c *HTTPClient) ListFields(ctx context.Context, farmID string) ([]Field, error) {
	data, err := c.doReq(ctx, "/api/v1/farms/"+farmID+"/fields")
	if err != nil {
		return nil, err
	}
	var wrapper fieldsResponse
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Data, nil
}
