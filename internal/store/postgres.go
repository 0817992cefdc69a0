package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const monitorColumns = `id, farm_id, field_id, region, crop,
	latitude, longitude,
	soil_moisture_threshold, severity_threshold, critical_moisture,
	paused, created_at, updated_at`

func (s *PostgresStore) CreateMonitor(ctx context.Context, m *MonitorConfig) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO drought_monitors (farm_id, field_id, region, crop,
			latitude, longitude,
			soil_moisture_threshold, severity_threshold, critical_moisture, paused)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		m.FarmID, m.FieldID, m.Region, m.Crop,
		m.Latitude, m.Longitude,
		m.SoilMoistureThreshold, m.SeverityThreshold, m.CriticalMoisture, m.Paused,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (s *PostgresStore) GetMonitor(ctx context.Context, id uuid.UUID) (*MonitorConfig, error) {
	m := &MonitorConfig{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+monitorColumns+`
		FROM drought_monitors WHERE id = $1`, id,
	).Scan(
		&m.ID, &m.FarmID, &m.FieldID, &m.Region, &m.Crop,
		&m.Latitude, &m.Longitude,
		&m.SoilMoistureThreshold, &m.SeverityThreshold, &m.CriticalMoisture,
		&m.Paused, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *PostgresStore) ListMonitors(ctx context.Context, filter MonitorFilter) ([]*MonitorConfig, error) {
	query := `SELECT ` + monitorColumns + ` FROM drought_monitors WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.FarmID != "" {
		n++
		query += fmt.Sprintf(" AND farm_id = $%d", n)
		args = append(args, filter.FarmID)
	}
	if filter.Region != "" {
		n++
		query += fmt.Sprintf(" AND region = $%d", n)
		args = append(args, filter.Region)
	}
	if filter.Paused != nil {
		n++
		query += fmt.Sprintf(" AND paused = $%d", n)
		args = append(args, *filter.Paused)
	}

	query += " ORDER BY created_at ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMonitors(rows)
}

func (s *PostgresStore) UpdateMonitor(ctx context.Context, m *MonitorConfig) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE drought_monitors SET
			farm_id = $2, field_id = $3, region = $4, crop = $5,
			latitude = $6, longitude = $7,
			soil_moisture_threshold = $8, severity_threshold = $9, critical_moisture = $10,
			paused = $11, updated_at = now()
		WHERE id = $1`,
		m.ID, m.FarmID, m.FieldID, m.Region, m.Crop,
		m.Latitude, m.Longitude,
		m.SoilMoistureThreshold, m.SeverityThreshold, m.CriticalMoisture,
		m.Paused,
	)
	return err
}

func (s *PostgresStore) DeleteMonitor(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM drought_monitors WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) GetActiveMonitors(ctx context.Context) ([]*MonitorConfig, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+monitorColumns+`
		FROM drought_monitors WHERE paused = false
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMonitors(rows)
}

func (s *PostgresStore) CreateReading(ctx context.Context, r *DroughtReading) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO drought_readings (monitor_id, soil_moisture, precipitation_mm, drought_category, severity_score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		r.MonitorID, r.SoilMoisture, r.PrecipitationMm, r.DroughtCategory, r.SeverityScore,
	).Scan(&r.ID, &r.CreatedAt)
}

func (s *PostgresStore) GetRecentReadings(ctx context.Context, monitorID uuid.UUID, limit int) ([]*DroughtReading, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, monitor_id, soil_moisture, precipitation_mm, drought_category, severity_score, created_at
		FROM drought_readings WHERE monitor_id = $1
		ORDER BY created_at DESC LIMIT $2`, monitorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []*DroughtReading
	for rows.Next() {
		r := &DroughtReading{}
		if err := rows.Scan(&r.ID, &r.MonitorID, &r.SoilMoisture, &r.PrecipitationMm, &r.DroughtCategory, &r.SeverityScore, &r.CreatedAt); err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

func (s *PostgresStore) CreateAlert(ctx context.Context, a *DroughtAlert) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO drought_alerts (monitor_id, field_id, level, severity_score, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		a.MonitorID, a.FieldID, a.Level, a.SeverityScore, a.Message,
	).Scan(&a.ID, &a.CreatedAt)
}

func (s *PostgresStore) ListAlerts(ctx context.Context, filter AlertFilter) ([]*DroughtAlert, error) {
	query := `SELECT id, monitor_id, field_id, level, severity_score, message, created_at
		FROM drought_alerts WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.MonitorID != nil {
		n++
		query += fmt.Sprintf(" AND monitor_id = $%d", n)
		args = append(args, *filter.MonitorID)
	}
	if filter.FieldID != "" {
		n++
		query += fmt.Sprintf(" AND field_id = $%d", n)
		args = append(args, filter.FieldID)
	}
	if filter.Level != nil {
		n++
		query += fmt.Sprintf(" AND level = $%d", n)
		args = append(args, string(*filter.Level))
	}
	if filter.Since != nil {
		n++
		query += fmt.Sprintf(" AND created_at >= $%d", n)
		args = append(args, *filter.Since)
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*DroughtAlert
	for rows.Next() {
		a := &DroughtAlert{}
		if err := rows.Scan(&a.ID, &a.MonitorID, &a.FieldID, &a.Level, &a.SeverityScore, &a.Message, &a.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (s *PostgresStore) GetLastAlertTime(ctx context.Context, monitorID uuid.UUID) (*time.Time, error) {
	var t time.Time
	err := s.pool.QueryRow(ctx, `
		SELECT created_at FROM drought_alerts
		WHERE monitor_id = $1 ORDER BY created_at DESC LIMIT 1`, monitorID,
	).Scan(&t)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *PostgresStore) CreateRecommendation(ctx context.Context, rec *Recommendation) error {
	resultJSON, _ := json.Marshal(rec.Result)
	return s.pool.QueryRow(ctx, `
		INSERT INTO method_recommendations (farm_id, field_id, crop, algorithm, best_method, result)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		rec.FarmID, rec.FieldID, rec.Crop, rec.Algorithm, rec.BestMethod, resultJSON,
	).Scan(&rec.ID, &rec.CreatedAt)
}

func (s *PostgresStore) GetRecommendation(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	rec := &Recommendation{}
	var resultJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT id, farm_id, field_id, crop, algorithm, best_method, result, created_at
		FROM method_recommendations WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.FarmID, &rec.FieldID, &rec.Crop, &rec.Algorithm, &rec.BestMethod, &resultJSON, &rec.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if resultJSON != nil {
		_ = json.Unmarshal(resultJSON, &rec.Result)
	}
	return rec, nil
}

func (s *PostgresStore) ListRecommendations(ctx context.Context, filter RecommendationFilter) ([]*Recommendation, error) {
	query := `SELECT id, farm_id, field_id, crop, algorithm, best_method, result, created_at
		FROM method_recommendations WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.FarmID != "" {
		n++
		query += fmt.Sprintf(" AND farm_id = $%d", n)
		args = append(args, filter.FarmID)
	}
	if filter.FieldID != "" {
		n++
		query += fmt.Sprintf(" AND field_id = $%d", n)
		args = append(args, filter.FieldID)
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*Recommendation
	for rows.Next() {
		rec := &Recommendation{}
		var resultJSON []byte
		if err := rows.Scan(&rec.ID, &rec.FarmID, &rec.FieldID, &rec.Crop, &rec.Algorithm, &rec.BestMethod, &resultJSON, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if resultJSON != nil {
			_ = json.Unmarshal(resultJSON, &rec.Result)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM drought_monitors WHERE paused = false),
			(SELECT COUNT(*) FROM drought_alerts),
			(SELECT COUNT(*) FROM method_recommendations),
			COALESCE((SELECT AVG(severity_score) FROM drought_readings
				WHERE created_at > now() - interval '7 days'), 0)`,
	).Scan(&stats.ActiveMonitors, &stats.TotalAlerts, &stats.TotalRecommendations, &stats.AvgSeverity)
	return stats, err
}

func scanMonitors(rows pgx.Rows) ([]*MonitorConfig, error) {
	var monitors []*MonitorConfig
	for rows.Next() {
		m := &MonitorConfig{}
		if err := rows.Scan(
			&m.ID, &m.FarmID, &m.FieldID, &m.Region, &m.Crop,
			&m.Latitude, &m.Longitude,
			&m.SoilMoistureThreshold, &m.SeverityThreshold, &m.CriticalMoisture,
			&m.Paused, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		monitors = append(monitors, m)
	}
	return monitors, rows.Err()
}
