package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/caain/soilhub/internal/fertilizer"
	"github.com/caain/soilhub/internal/optimizer"
	"github.com/caain/soilhub/internal/store"
)

type RecommendationsHandler struct {
	service *fertilizer.Service
	store   store.Store
}

func NewRecommendationsHandler(svc *fertilizer.Service, s store.Store) *RecommendationsHandler {
	return &RecommendationsHandler{service: svc, store: s}
}

func (h *RecommendationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req fertilizer.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.FieldID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "field_id required"})
		return
	}
	if req.FarmID == "" {
		req.FarmID = r.Header.Get("X-Farm-ID")
	}

	rec, err := h.service.Recommend(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, fertilizer.ErrFieldNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "field not found"})
		case errors.Is(err, optimizer.ErrInvalidAlgorithm):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (h *RecommendationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid recommendation id"})
		return
	}

	rec, err := h.store.GetRecommendation(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "recommendation not found"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *RecommendationsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.RecommendationFilter{
		FarmID:  r.URL.Query().Get("farm_id"),
		FieldID: r.URL.Query().Get("field_id"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	recs, err := h.store.ListRecommendations(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if recs == nil {
		recs = []*store.Recommendation{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
