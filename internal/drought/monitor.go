package drought

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/caain/soilhub/internal/config"
	"github.com/caain/soilhub/internal/events"
	"github.com/caain/soilhub/internal/noaa"
	"github.com/caain/soilhub/internal/store"
	"github.com/caain/soilhub/internal/weather"
)

// Monitor polls every active drought monitor on a fixed interval, scores the
// observations and raises alerts when thresholds are crossed.
type Monitor struct {
	store   store.Store
	weather weather.Provider
	noaa    noaa.Client
	events  events.Client
	cfg     *config.Config
	logger  *slog.Logger

	alertingMu sync.Mutex
	alerting   map[string]bool

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, w weather.Provider, n noaa.Client, ev events.Client, cfg *config.Config, logger *slog.Logger) *Monitor {
	return &Monitor{
		store:    s,
		weather:  w,
		noaa:     n,
		events:   ev,
		cfg:      cfg,
		logger:   logger,
		alerting: make(map[string]bool),
		stopCh:   make(chan struct{}),
	}
}

func (m *Monitor) Start(ctx context.Context) {
	m.wg.Add(1)
	go m.pollLoop(ctx)
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
	m.wg.Wait()
}

func (m *Monitor) pollLoop(ctx context.Context) {
	defer m.wg.Done()
	ticker := time.NewTicker(m.cfg.PollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.evaluateAll(ctx)
		}
	}
}

func (m *Monitor) evaluateAll(ctx context.Context) {
	monitors, err := m.store.GetActiveMonitors(ctx)
	if err != nil {
		m.logger.Error("failed to get active monitors", "error", err)
		return
	}

	m.logger.Info("evaluating drought monitors", "count", len(monitors))
	for _, mc := range monitors {
		if err := m.Evaluate(ctx, mc); err != nil {
			m.logger.Warn("monitor evaluation failed", "monitor_id", mc.ID, "field_id", mc.FieldID, "error", err)
		}
	}
}

// Evaluate runs one observation cycle for a single monitor: fetch the
// observations, score them, persist the reading and raise or clear alerts.
func (m *Monitor) Evaluate(ctx context.Context, mc *store.MonitorConfig) error {
	soil, err := m.weather.GetSoilMoisture(ctx, mc.Latitude, mc.Longitude)
	if err != nil {
		return fmt.Errorf("soil moisture lookup: %w", err)
	}

	in := SeverityInput{
		SoilMoisture:      soil.RootZone,
		MoistureThreshold: mc.SoilMoistureThreshold,
	}

	// Forecast and NOAA lookups degrade to a neutral contribution on error
	// so a flaky upstream cannot stall the whole loop.
	forecast, err := m.weather.GetForecast(ctx, mc.Latitude, mc.Longitude, m.cfg.Drought.OutlookDays)
	if err != nil {
		m.logger.Warn("forecast unavailable", "monitor_id", mc.ID, "error", err)
	} else {
		for _, day := range forecast {
			in.PrecipitationMm += day.PrecipitationMm
		}
		in.ExpectedMm = m.cfg.Drought.ExpectedPrecipMm
	}

	in.DroughtCategory = -1
	if idx, err := m.noaa.GetDroughtIndex(ctx, mc.Region); err != nil {
		m.logger.Warn("drought index unavailable", "monitor_id", mc.ID, "region", mc.Region, "error", err)
	} else if idx != nil {
		in.DroughtCategory = idx.Category
	}

	score := Severity(in)

	reading := &store.DroughtReading{
		MonitorID:       mc.ID,
		SoilMoisture:    in.SoilMoisture,
		PrecipitationMm: in.PrecipitationMm,
		DroughtCategory: in.DroughtCategory,
		SeverityScore:   score,
	}
	if err := m.store.CreateReading(ctx, reading); err != nil {
		return fmt.Errorf("persist reading: %w", err)
	}
	readingsTotal.Inc()

	if m.events != nil {
		_ = m.events.Publish(events.SubjectDroughtReading(mc.ID.String()), events.DroughtReadingEvent{
			MonitorID:       mc.ID.String(),
			FieldID:         mc.FieldID,
			SoilMoisture:    in.SoilMoisture,
			SeverityScore:   score,
			DroughtCategory: in.DroughtCategory,
		})
	}

	if score >= mc.SeverityThreshold || in.SoilMoisture <= mc.CriticalMoisture {
		m.raiseAlert(ctx, mc, in, score)
	} else {
		m.clearAlert(mc, score)
	}
	return nil
}

func (m *Monitor) raiseAlert(ctx context.Context, mc *store.MonitorConfig, in SeverityInput, score float64) {
	level, ok := Level(score)
	if !ok {
		// Threshold set below the watch band; treat any crossing as a watch.
		level = store.AlertWatch
	}
	if in.SoilMoisture <= mc.CriticalMoisture {
		level = store.AlertEmergency
	}

	last, err := m.store.GetLastAlertTime(ctx, mc.ID)
	if err != nil {
		m.logger.Warn("failed to check alert cooldown", "monitor_id", mc.ID, "error", err)
		return
	}
	if last != nil && time.Since(*last) < m.cfg.AlertCooldown() {
		return
	}

	msg := fmt.Sprintf("drought severity %.2f (%s) on field %s, soil moisture %.2f", score, level, mc.FieldID, in.SoilMoisture)
	readings, err := m.store.GetRecentReadings(ctx, mc.ID, m.cfg.Drought.ReadingWindow)
	if err == nil {
		if t := MoistureTrend(readings, mc.CriticalMoisture); !math.IsInf(t.DaysToCritical, 1) {
			msg += fmt.Sprintf(", projected critical in %.1f days", t.DaysToCritical)
		}
	}

	alert := &store.DroughtAlert{
		MonitorID:     mc.ID,
		FieldID:       mc.FieldID,
		Level:         level,
		SeverityScore: score,
		Message:       msg,
	}
	if err := m.store.CreateAlert(ctx, alert); err != nil {
		m.logger.Error("failed to persist alert", "monitor_id", mc.ID, "error", err)
		return
	}
	alertsTotal.WithLabelValues(string(level)).Inc()

	if m.events != nil {
		_ = m.events.Publish(events.SubjectDroughtAlert(mc.ID.String()), events.DroughtAlertEvent{
			MonitorID:     mc.ID.String(),
			FieldID:       mc.FieldID,
			Level:         string(level),
			SeverityScore: score,
			Message:       msg,
			Timestamp:     time.Now(),
		})
	}

	m.alertingMu.Lock()
	m.alerting[mc.ID.String()] = true
	m.alertingMu.Unlock()

	m.logger.Info("drought alert raised", "monitor_id", mc.ID, "field_id", mc.FieldID, "level", level, "score", score)
}

func (m *Monitor) clearAlert(mc *store.MonitorConfig, score float64) {
	m.alertingMu.Lock()
	wasAlerting := m.alerting[mc.ID.String()]
	delete(m.alerting, mc.ID.String())
	m.alertingMu.Unlock()

	if !wasAlerting {
		return
	}
	if m.events != nil {
		_ = m.events.Publish(events.SubjectDroughtCleared(mc.ID.String()), map[string]interface{}{
			"monitor_id":     mc.ID.String(),
			"field_id":       mc.FieldID,
			"severity_score": score,
		})
	}
	m.logger.Info("drought alert cleared", "monitor_id", mc.ID, "field_id", mc.FieldID, "score", score)
}
