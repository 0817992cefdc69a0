package api

import (
	"encoding/json"
	"net/http"

	"github.com/caain/soilhub/internal/optimizer"
)

// OptimizerHandler exposes the optimizer directly for callers that bring
// their own candidate set instead of the built-in method catalog.
type OptimizerHandler struct{}

func NewOptimizerHandler() *OptimizerHandler {
	return &OptimizerHandler{}
}

type OptimizeRequest struct {
	Candidates  []optimizer.Candidate  `json:"candidates"`
	Weights     *optimizer.GoalWeights `json:"weights,omitempty"`
	Constraints []optimizer.Constraint `json:"constraints,omitempty"`
	Algorithm   string                 `json:"algorithm"`
	MaxResults  int                    `json:"max_results,omitempty"`
}

func (h *OptimizerHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := optimizer.Optimize(optimizer.Request{
		Candidates:  req.Candidates,
		Weights:     req.Weights,
		Constraints: req.Constraints,
		Algorithm:   optimizer.Algorithm(req.Algorithm),
		MaxResults:  req.MaxResults,
	})
	if err != nil {
		// Optimize only fails on caller mistakes: empty set, bad algorithm,
		// invalid weights.
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}
