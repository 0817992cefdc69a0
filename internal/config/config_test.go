package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Unset all SOILHUB_ env vars to test pure defaults
	envVars := []string{
		"SOILHUB_PORT", "SOILHUB_METRICS_PORT", "SOILHUB_ADMIN_TOKEN",
		"SOILHUB_DATABASE_URL", "SOILHUB_NATS_URL", "SOILHUB_WEATHER_URL",
		"SOILHUB_WEATHER_TOKEN", "SOILHUB_CROPTAX_URL", "SOILHUB_FIELDS_URL",
		"SOILHUB_NOAA_URL", "SOILHUB_POLL_INTERVAL_SECONDS",
		"SOILHUB_ALERT_COOLDOWN_MINUTES", "SOILHUB_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Events.URL)
	}
	if cfg.Drought.PollIntervalSeconds != 300 {
		t.Errorf("expected poll interval 300, got %d", cfg.Drought.PollIntervalSeconds)
	}
	if cfg.Drought.ReadingWindow != 48 {
		t.Errorf("expected reading window 48, got %d", cfg.Drought.ReadingWindow)
	}
	if cfg.PollInterval() != 300*time.Second {
		t.Errorf("expected 300s poll interval, got %v", cfg.PollInterval())
	}
	if cfg.AlertCooldown() != 360*time.Minute {
		t.Errorf("expected 360m cooldown, got %v", cfg.AlertCooldown())
	}
	if cfg.Optimizer.MaxResults != 10 {
		t.Errorf("expected max results 10, got %d", cfg.Optimizer.MaxResults)
	}
	sum := cfg.Optimizer.Weights.Yield + cfg.Optimizer.Weights.Cost +
		cfg.Optimizer.Weights.Environment + cfg.Optimizer.Weights.Labor +
		cfg.Optimizer.Weights.NutrientEfficiency
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("default optimizer weights sum to %f, expected 1.0", sum)
	}
	if len(cfg.Location.Regions) == 0 {
		t.Error("expected default regions")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  port: 9000
drought:
  poll_interval_seconds: 60
  expected_precip_mm: 40
optimizer:
  weights:
    yield: 0.5
    cost: 0.5
    environment: 0
    labor: 0
    nutrient_efficiency: 0
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Drought.PollIntervalSeconds != 60 {
		t.Errorf("expected poll interval 60, got %d", cfg.Drought.PollIntervalSeconds)
	}
	if cfg.Drought.ExpectedPrecipMm != 40 {
		t.Errorf("expected precip 40, got %f", cfg.Drought.ExpectedPrecipMm)
	}
	if cfg.Optimizer.Weights.Yield != 0.5 {
		t.Errorf("expected yield weight 0.5, got %f", cfg.Optimizer.Weights.Yield)
	}
	// Unset sections keep defaults
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port, got %d", cfg.Server.MetricsPort)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SOILHUB_PORT", "9999")
	t.Setenv("SOILHUB_ADMIN_TOKEN", "sekrit")
	t.Setenv("SOILHUB_POLL_INTERVAL_SECONDS", "30")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected env port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Server.AdminToken != "sekrit" {
		t.Errorf("expected env admin token, got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Drought.PollIntervalSeconds != 30 {
		t.Errorf("expected env poll interval 30, got %d", cfg.Drought.PollIntervalSeconds)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
