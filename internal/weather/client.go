package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

// Conditions is a snapshot of current weather at a location.
type Conditions struct {
	TemperatureC    float64 `json:"temperature_c"`
	PrecipitationMm float64 `json:"precipitation_mm"`
	WindSpeedKph    float64 `json:"wind_speed_kph"`
	HumidityPct     float64 `json:"humidity_pct"`
}

// ForecastDay is one day of forecast.
type ForecastDay struct {
	Date            string  `json:"date"`
	PrecipitationMm float64 `json:"precipitation_mm"`
	TemperatureMaxC float64 `json:"temperature_max_c"`
}

// SoilMoisture is a volumetric soil moisture reading, 0.0-1.0.
type SoilMoisture struct {
	Surface  float64 `json:"surface"`
	RootZone float64 `json:"root_zone"`
}

type Provider interface {
	GetCurrent(ctx context.Context, lat, lon float64) (*Conditions, error)
	GetForecast(ctx context.Context, lat, lon float64, days int) ([]ForecastDay, error)
	GetSoilMoisture(ctx context.Context, lat, lon float64) (*SoilMoisture, error)
}

type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client

	// Monitors poll the same stations every tick; responses are cached
	// for a short TTL to avoid hammering the upstream service.
	cache *cache.Cache
}

func NewHTTPClient(baseURL, token string, cacheTTL time.Duration) *HTTPClient {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache.New(cacheTTL, 2*cacheTTL),
	}
}

func (c *HTTPClient) doReq(ctx context.Context, path string) ([]byte, error) {
	if data, found := c.cache.Get(path); found {
		return data.([]byte), nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
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
		return nil, fmt.Errorf("weather GET %s: %d %s", path, resp.StatusCode, string(body))
	}

	c.cache.SetDefault(path, body)
	return body, nil
}

func (c *HTTPClient) GetCurrent(ctx context.Context, lat, lon float64) (*Conditions, error) {
	data, err := c.doReq(ctx, fmt.Sprintf("/api/v1/current?lat=%.4f&lon=%.4f", lat, lon))
	if err != nil {
		return nil, err
	}
	var cond Conditions
	if err := json.Unmarshal(data, &cond); err != nil {
		return nil, err
	}
	return &cond, nil
}

func (c *HTTPClient) GetForecast(ctx context.Context, lat, lon float64, days int) ([]ForecastDay, error) {
	data, err := c.doReq(ctx, fmt.Sprintf("/api/v1/forecast?lat=%.4f&lon=%.4f&days=%d", lat, lon, days))
	if err != nil {
		return nil, err
	}
	var forecast []ForecastDay
	if err := json.Unmarshal(data, &forecast); err != nil {
		return nil, err
	}
	return forecast, nil
}

func (c *HTTPClient) GetSoilMoisture(ctx context.Context, lat, lon float64) (*SoilMoisture, error) {
	data, err := c.doReq(ctx, fmt.Sprintf("/api/v1/soil-moisture?lat=%.4f&lon=%.4f", lat, lon))
	if err != nil {
		return nil, err
	}
	var sm SoilMoisture
	if err := json.Unmarshal(data, &sm); err != nil {
		return nil, err
	}
	return &sm, nil
}
