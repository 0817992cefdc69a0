package api

import (
	"encoding/json"
	"net/http"

	"github.com/caain/soilhub/internal/location"
)

type ValidationHandler struct {
	validator *location.Validator
}

func NewValidationHandler(v *location.Validator) *ValidationHandler {
	return &ValidationHandler{validator: v}
}

func (h *ValidationHandler) Coordinates(w http.ResponseWriter, r *http.Request) {
	var coords location.Coordinates
	if err := json.NewDecoder(r.Body).Decode(&coords); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	writeJSON(w, http.StatusOK, h.validator.ValidateCoordinates(coords))
}

func (h *ValidationHandler) Field(w http.ResponseWriter, r *http.Request) {
	var reg location.FieldRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	writeJSON(w, http.StatusOK, h.validator.ValidateField(r.Context(), reg))
}
