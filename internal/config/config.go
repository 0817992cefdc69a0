package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Events    EventsConfig    `yaml:"events"`
	Weather   WeatherConfig   `yaml:"weather"`
	CropTax   CropTaxConfig   `yaml:"croptax"`
	Fields    FieldsConfig    `yaml:"fields"`
	NOAA      NOAAConfig      `yaml:"noaa"`
	Drought   DroughtConfig   `yaml:"drought"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
	Location  LocationConfig  `yaml:"location"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type WeatherConfig struct {
	URL             string `yaml:"url"`
	Token           string `yaml:"token"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

type CropTaxConfig struct {
	URL string `yaml:"url"`
}

type FieldsConfig struct {
	URL string `yaml:"url"`
}

type NOAAConfig struct {
	URL string `yaml:"url"`
}

type DroughtConfig struct {
	PollIntervalSeconds  int     `yaml:"poll_interval_seconds"`
	ReadingWindow        int     `yaml:"reading_window"`
	AlertCooldownMinutes int     `yaml:"alert_cooldown_minutes"`
	ExpectedPrecipMm     float64 `yaml:"expected_precip_mm"`
	OutlookDays          int     `yaml:"outlook_days"`
}

type OptimizerConfig struct {
	Weights    OptimizerWeights `yaml:"weights"`
	MaxResults int              `yaml:"max_results"`
}

type OptimizerWeights struct {
	Yield              float64 `yaml:"yield"`
	Cost               float64 `yaml:"cost"`
	Environment        float64 `yaml:"environment"`
	Labor              float64 `yaml:"labor"`
	NutrientEfficiency float64 `yaml:"nutrient_efficiency"`
}

type LocationConfig struct {
	Regions   []string `yaml:"regions"`
	MinAreaHa float64  `yaml:"min_area_ha"`
	MaxAreaHa float64  `yaml:"max_area_ha"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Drought.PollIntervalSeconds) * time.Second
}

func (c *Config) AlertCooldown() time.Duration {
	return time.Duration(c.Drought.AlertCooldownMinutes) * time.Minute
}

func (c *Config) WeatherCacheTTL() time.Duration {
	return time.Duration(c.Weather.CacheTTLSeconds) * time.Second
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Weather: WeatherConfig{
			URL:             "http://localhost:9100",
			CacheTTLSeconds: 300,
		},
		CropTax: CropTaxConfig{
			URL: "http://localhost:9101",
		},
		Fields: FieldsConfig{
			URL: "http://localhost:9102",
		},
		NOAA: NOAAConfig{
			URL: "http://localhost:9103",
		},
		Drought: DroughtConfig{
			PollIntervalSeconds:  300,
			ReadingWindow:        48,
			AlertCooldownMinutes: 360,
			ExpectedPrecipMm:     25.0,
			OutlookDays:          7,
		},
		Optimizer: OptimizerConfig{
			Weights: OptimizerWeights{
				Yield:              0.30,
				Cost:               0.25,
				Environment:        0.20,
				Labor:              0.10,
				NutrientEfficiency: 0.15,
			},
			MaxResults: 10,
		},
		Location: LocationConfig{
			Regions:   []string{"midwest", "plains", "southeast", "pacific", "northeast"},
			MinAreaHa: 0.1,
			MaxAreaHa: 10000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SOILHUB_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("SOILHUB_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("SOILHUB_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("SOILHUB_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("SOILHUB_NATS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("SOILHUB_WEATHER_URL"); v != "" {
		cfg.Weather.URL = v
	}
	if v := os.Getenv("SOILHUB_WEATHER_TOKEN"); v != "" {
		cfg.Weather.Token = v
	}
	if v := os.Getenv("SOILHUB_CROPTAX_URL"); v != "" {
		cfg.CropTax.URL = v
	}
	if v := os.Getenv("SOILHUB_FIELDS_URL"); v != "" {
		cfg.Fields.URL = v
	}
	if v := os.Getenv("SOILHUB_NOAA_URL"); v != "" {
		cfg.NOAA.URL = v
	}
	if v := os.Getenv("SOILHUB_POLL_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Drought.PollIntervalSeconds = n
		}
	}
	if v := os.Getenv("SOILHUB_ALERT_COOLDOWN_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Drought.AlertCooldownMinutes = n
		}
	}
	if v := os.Getenv("SOILHUB_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
