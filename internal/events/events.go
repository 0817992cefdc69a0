package events

import "time"

type DroughtReadingEvent struct {
	MonitorID       string  `json:"monitor_id"`
	FieldID         string  `json:"field_id"`
	SoilMoisture    float64 `json:"soil_moisture"`
	SeverityScore   float64 `json:"severity_score"`
	DroughtCategory int     `json:"drought_category"`
}

type DroughtAlertEvent struct {
	MonitorID     string    `json:"monitor_id"`
	FieldID       string    `json:"field_id"`
	Level         string    `json:"level"`
	SeverityScore float64   `json:"severity_score"`
	Message       string    `json:"message,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

type RecommendationEvent struct {
	RecommendationID string  `json:"recommendation_id"`
	FarmID           string  `json:"farm_id"`
	FieldID          string  `json:"field_id"`
	Algorithm        string  `json:"algorithm"`
	BestMethod       string  `json:"best_method"`
	BestScore        float64 `json:"best_score"`
}
