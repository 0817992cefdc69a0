package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/caain/soilhub/internal/drought"
	"github.com/caain/soilhub/internal/events"
	"github.com/caain/soilhub/internal/store"
)

type MonitorsHandler struct {
	store  store.Store
	events events.Client
}

func NewMonitorsHandler(s store.Store, ev events.Client) *MonitorsHandler {
	return &MonitorsHandler{store: s, events: ev}
}

type CreateMonitorRequest struct {
	FieldID   string  `json:"field_id"`
	Region    string  `json:"region"`
	Crop      string  `json:"crop,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	SoilMoistureThreshold float64 `json:"soil_moisture_threshold,omitempty"`
	SeverityThreshold     float64 `json:"severity_threshold,omitempty"`
	CriticalMoisture      float64 `json:"critical_moisture,omitempty"`
}

func (h *MonitorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMonitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.FieldID == "" || req.Region == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "field_id and region required"})
		return
	}

	m := &store.MonitorConfig{
		FarmID:                r.Header.Get("X-Farm-ID"),
		FieldID:               req.FieldID,
		Region:                req.Region,
		Crop:                  req.Crop,
		Latitude:              req.Latitude,
		Longitude:             req.Longitude,
		SoilMoistureThreshold: req.SoilMoistureThreshold,
		SeverityThreshold:     req.SeverityThreshold,
		CriticalMoisture:      req.CriticalMoisture,
	}
	if m.SoilMoistureThreshold == 0 {
		m.SoilMoistureThreshold = 0.30
	}
	if m.SeverityThreshold == 0 {
		m.SeverityThreshold = 0.50
	}
	if m.CriticalMoisture == 0 {
		m.CriticalMoisture = 0.10
	}

	if err := h.store.CreateMonitor(r.Context(), m); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if h.events != nil {
		_ = h.events.Publish(events.SubjectMonitorCreated(m.ID.String()), m)
	}

	writeJSON(w, http.StatusCreated, m)
}

func (h *MonitorsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.MonitorFilter{
		FarmID: r.URL.Query().Get("farm_id"),
		Region: r.URL.Query().Get("region"),
	}
	if v := r.URL.Query().Get("paused"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.Paused = &b
		}
	}

	monitors, err := h.store.ListMonitors(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if monitors == nil {
		monitors = []*store.MonitorConfig{}
	}
	writeJSON(w, http.StatusOK, monitors)
}

func (h *MonitorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type UpdateMonitorRequest struct {
	Crop                  *string  `json:"crop,omitempty"`
	SoilMoistureThreshold *float64 `json:"soil_moisture_threshold,omitempty"`
	SeverityThreshold     *float64 `json:"severity_threshold,omitempty"`
	CriticalMoisture      *float64 `json:"critical_moisture,omitempty"`
}

func (h *MonitorsHandler) Update(w http.ResponseWriter, r *http.Request) {
	m, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req UpdateMonitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Crop != nil {
		m.Crop = *req.Crop
	}
	if req.SoilMoistureThreshold != nil {
		m.SoilMoistureThreshold = *req.SoilMoistureThreshold
	}
	if req.SeverityThreshold != nil {
		m.SeverityThreshold = *req.SeverityThreshold
	}
	if req.CriticalMoisture != nil {
		m.CriticalMoisture = *req.CriticalMoisture
	}

	if err := h.store.UpdateMonitor(r.Context(), m); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if h.events != nil {
		_ = h.events.Publish(events.SubjectMonitorUpdated(m.ID.String()), m)
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MonitorsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	m, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteMonitor(r.Context(), m.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if h.events != nil {
		_ = h.events.Publish(events.SubjectMonitorDeleted(m.ID.String()), map[string]string{"monitor_id": m.ID.String()})
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "monitor_id": m.ID.String()})
}

// MonitorStatus is the live view of one monitor: its config, the latest
// reading and the moisture trajectory over the recent window.
type MonitorStatus struct {
	Monitor       *store.MonitorConfig  `json:"monitor"`
	LatestReading *store.DroughtReading `json:"latest_reading,omitempty"`
	Trend         drought.Trend         `json:"trend"`
}

func (h *MonitorsHandler) Status(w http.ResponseWriter, r *http.Request) {
	m, ok := h.lookup(w, r)
	if !ok {
		return
	}

	readings, err := h.store.GetRecentReadings(r.Context(), m.ID, 48)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	status := MonitorStatus{
		Monitor: m,
		Trend:   drought.MoistureTrend(readings, m.CriticalMoisture),
	}
	if len(readings) > 0 {
		status.LatestReading = readings[0]
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *MonitorsHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.setPaused(w, r, true)
}

func (h *MonitorsHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.setPaused(w, r, false)
}

func (h *MonitorsHandler) setPaused(w http.ResponseWriter, r *http.Request, paused bool) {
	m, ok := h.lookup(w, r)
	if !ok {
		return
	}
	m.Paused = paused
	if err := h.store.UpdateMonitor(r.Context(), m); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if h.events != nil {
		subject := events.SubjectMonitorUpdated(m.ID.String())
		if paused {
			subject = events.SubjectMonitorPaused(m.ID.String())
		}
		_ = h.events.Publish(subject, m)
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MonitorsHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	filter := store.AlertFilter{
		FieldID: r.URL.Query().Get("field_id"),
	}
	if v := r.URL.Query().Get("monitor_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid monitor_id"})
			return
		}
		filter.MonitorID = &id
	}
	if v := r.URL.Query().Get("level"); v != "" {
		level := store.AlertLevel(v)
		filter.Level = &level
	}
	if v := r.URL.Query().Get("since"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid since timestamp"})
			return
		}
		filter.Since = &ts
	}

	alerts, err := h.store.ListAlerts(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if alerts == nil {
		alerts = []*store.DroughtAlert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

// lookup parses the monitor id from the URL and loads it, writing the error
// response itself when either step fails.
func (h *MonitorsHandler) lookup(w http.ResponseWriter, r *http.Request) (*store.MonitorConfig, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid monitor id"})
		return nil, false
	}
	m, err := h.store.GetMonitor(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	if m == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "monitor not found"})
		return nil, false
	}
	return m, true
}
