package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AlertLevel string

const (
	AlertWatch     AlertLevel = "watch"
	AlertWarning   AlertLevel = "warning"
	AlertEmergency AlertLevel = "emergency"
)

// MonitorConfig is one field's drought monitoring configuration. Configs are
// owned here and handed into the monitor loop; evaluation itself is pure.
type MonitorConfig struct {
	ID      uuid.UUID `json:"id"`
	FarmID  string    `json:"farm_id"`
	FieldID string    `json:"field_id"`
	Region  string    `json:"region"`
	Crop    string    `json:"crop,omitempty"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Thresholds
	SoilMoistureThreshold float64 `json:"soil_moisture_threshold"`
	SeverityThreshold     float64 `json:"severity_threshold"`
	CriticalMoisture      float64 `json:"critical_moisture"`

	Paused bool `json:"paused"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MonitorFilter struct {
	FarmID string
	Region string
	Paused *bool
	Limit  int
	Offset int
}

// DroughtReading is one evaluated observation for a monitor.
type DroughtReading struct {
	ID        uuid.UUID `json:"id"`
	MonitorID uuid.UUID `json:"monitor_id"`

	SoilMoisture    float64 `json:"soil_moisture"`
	PrecipitationMm float64 `json:"precipitation_mm"`
	DroughtCategory int     `json:"drought_category"`
	SeverityScore   float64 `json:"severity_score"`

	CreatedAt time.Time `json:"created_at"`
}

type DroughtAlert struct {
	ID            uuid.UUID  `json:"id"`
	MonitorID     uuid.UUID  `json:"monitor_id"`
	FieldID       string     `json:"field_id"`
	Level         AlertLevel `json:"level"`
	SeverityScore float64    `json:"severity_score"`
	Message       string     `json:"message,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type AlertFilter struct {
	MonitorID *uuid.UUID
	FieldID   string
	Level     *AlertLevel
	Since     *time.Time
	Limit     int
	Offset    int
}

// Recommendation is a persisted fertilizer recommendation run.
type Recommendation struct {
	ID         uuid.UUID              `json:"id"`
	FarmID     string                 `json:"farm_id"`
	FieldID    string                 `json:"field_id"`
	Crop       string                 `json:"crop,omitempty"`
	Algorithm  string                 `json:"algorithm"`
	BestMethod string                 `json:"best_method,omitempty"`
	Result     map[string]interface{} `json:"result,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

type RecommendationFilter struct {
	FarmID  string
	FieldID string
	Limit   int
	Offset  int
}

type Stats struct {
	ActiveMonitors       int     `json:"active_monitors"`
	TotalAlerts          int     `json:"total_alerts"`
	TotalRecommendations int     `json:"total_recommendations"`
	AvgSeverity          float64 `json:"avg_severity"`
}

type Store interface {
	CreateMonitor(ctx context.Context, m *MonitorConfig) error
	GetMonitor(ctx context.Context, id uuid.UUID) (*MonitorConfig, error)
	ListMonitors(ctx context.Context, filter MonitorFilter) ([]*MonitorConfig, error)
	UpdateMonitor(ctx context.Context, m *MonitorConfig) error
	DeleteMonitor(ctx context.Context, id uuid.UUID) error
	GetActiveMonitors(ctx context.Context) ([]*MonitorConfig, error)

	CreateReading(ctx context.Context, r *DroughtReading) error
	GetRecentReadings(ctx context.Context, monitorID uuid.UUID, limit int) ([]*DroughtReading, error)

	CreateAlert(ctx context.Context, a *DroughtAlert) error
	ListAlerts(ctx context.Context, filter AlertFilter) ([]*DroughtAlert, error)
	GetLastAlertTime(ctx context.Context, monitorID uuid.UUID) (*time.Time, error)

	CreateRecommendation(ctx context.Context, rec *Recommendation) error
	GetRecommendation(ctx context.Context, id uuid.UUID) (*Recommendation, error)
	ListRecommendations(ctx context.Context, filter RecommendationFilter) ([]*Recommendation, error)

	GetStats(ctx context.Context) (*Stats, error)

	Close() error
}
