package fertilizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/caain/soilhub/internal/config"
	"github.com/caain/soilhub/internal/croptax"
	"github.com/caain/soilhub/internal/events"
	"github.com/caain/soilhub/internal/fieldsvc"
	"github.com/caain/soilhub/internal/optimizer"
	"github.com/caain/soilhub/internal/store"
	"github.com/caain/soilhub/internal/weather"
)

var ErrFieldNotFound = errors.New("field not found")

// Request describes one recommendation run for a field.
type Request struct {
	FarmID  string `json:"farm_id"`
	FieldID string `json:"field_id"`

	Algorithm string                 `json:"algorithm,omitempty"`
	Weights   *optimizer.GoalWeights `json:"weights,omitempty"`

	OwnedEquipment    []string `json:"owned_equipment,omitempty"`
	BudgetPerHectare  float64  `json:"budget_per_hectare,omitempty"`
	MaxRegulationTier int      `json:"max_regulation_tier,omitempty"`
	MaxResults        int      `json:"max_results,omitempty"`
}

// Method is one ranked application method with its cost projection.
type Method struct {
	ID         string               `json:"id"`
	Score      float64              `json:"score"`
	Rank       int                  `json:"rank"`
	Feasible   bool                 `json:"feasible"`
	Violations []optimizer.Violation `json:"violations,omitempty"`
	Cost       CostEstimate         `json:"cost"`
}

// Recommendation is the full response for one run.
type Recommendation struct {
	ID        uuid.UUID `json:"id"`
	FarmID    string    `json:"farm_id"`
	FieldID   string    `json:"field_id"`
	Crop      string    `json:"crop,omitempty"`
	Algorithm string    `json:"algorithm"`

	Methods     []Method                `json:"methods"`
	ParetoFront []optimizer.FrontMember `json:"pareto_front,omitempty"`
	Convergence optimizer.Convergence   `json:"convergence"`

	// Degraded lists collaborators whose data was unavailable; their
	// adjustments fell back to neutral.
	Degraded []string `json:"degraded,omitempty"`
}

// Service orchestrates recommendations: collaborator fan-out, catalog
// adjustment, optimization and persistence.
type Service struct {
	fields  fieldsvc.Client
	crops   croptax.Client
	weather weather.Provider
	store   store.Store
	events  events.Client
	cfg     *config.Config
	logger  *slog.Logger
}

func NewService(f fieldsvc.Client, c croptax.Client, w weather.Provider, s store.Store, ev events.Client, cfg *config.Config, logger *slog.Logger) *Service {
	return &Service{
		fields:  f,
		crops:   c,
		weather: w,
		store:   s,
		events:  ev,
		cfg:     cfg,
		logger:  logger,
	}
}

// Recommend runs one recommendation. The field lookup is required; crop and
// weather lookups degrade to neutral adjustments when unavailable.
func (s *Service) Recommend(ctx context.Context, req Request) (*Recommendation, error) {
	field, err := s.fields.GetField(ctx, req.FieldID)
	if err != nil {
		return nil, fmt.Errorf("field lookup: %w", err)
	}
	if field == nil {
		return nil, ErrFieldNotFound
	}

	var degraded []string
	adj := Adjustments{
		TillageSystem:  field.TillageSystem,
		OwnedEquipment: req.OwnedEquipment,
	}

	var crop *croptax.Crop
	if field.Crop != "" {
		crop, err = s.crops.GetCrop(ctx, field.Crop)
		if err != nil {
			s.logger.Warn("crop lookup failed, using neutral adjustments", "crop", field.Crop, "error", err)
			degraded = append(degraded, "crop")
			crop = nil
		}
	}

	cond, err := s.weather.GetCurrent(ctx, field.Latitude, field.Longitude)
	if err != nil {
		s.logger.Warn("weather lookup failed, using neutral adjustments", "field_id", field.ID, "error", err)
		degraded = append(degraded, "weather")
	} else if cond != nil {
		adj.WindSpeedKph = cond.WindSpeedKph
	}

	forecast, err := s.weather.GetForecast(ctx, field.Latitude, field.Longitude, 1)
	if err == nil && len(forecast) > 0 {
		adj.RainForecastMm = forecast[0].PrecipitationMm
	}

	candidates := adj.ApplyAll(Catalog())

	optReq := optimizer.Request{
		Candidates:  candidates,
		Weights:     s.goalWeights(req.Weights),
		Constraints: s.buildConstraints(req, field),
		Algorithm:   optimizer.Algorithm(req.Algorithm),
		MaxResults:  req.MaxResults,
	}
	if optReq.Algorithm == "" {
		optReq.Algorithm = optimizer.AlgorithmWeightedSum
	}
	if optReq.MaxResults == 0 {
		optReq.MaxResults = s.cfg.Optimizer.MaxResults
	}

	result, err := optimizer.Optimize(optReq)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]optimizer.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	rec := &Recommendation{
		FarmID:      req.FarmID,
		FieldID:     field.ID,
		Algorithm:   string(optReq.Algorithm),
		ParetoFront: result.ParetoFront,
		Convergence: result.Convergence,
		Degraded:    degraded,
	}
	if field.Crop != "" {
		rec.Crop = field.Crop
	}
	for _, r := range result.Rankings {
		rec.Methods = append(rec.Methods, Method{
			ID:         r.ID,
			Score:      r.Score,
			Rank:       r.Rank,
			Feasible:   r.Feasible,
			Violations: r.Violations,
			Cost:       EstimateCost(byID[r.ID], field.AreaHa, crop),
		})
	}

	if err := s.persist(ctx, req, rec, result); err != nil {
		// The recommendation itself is still good; persistence is best-effort.
		s.logger.Error("failed to persist recommendation", "field_id", field.ID, "error", err)
	}

	recommendationsTotal.WithLabelValues(string(optReq.Algorithm)).Inc()
	s.logger.Info("recommendation computed", "field_id", field.ID, "algorithm", optReq.Algorithm,
		"best", result.Best(), "feasible", result.Convergence.FeasibleSolutions, "degraded", degraded)
	return rec, nil
}

func (s *Service) goalWeights(w *optimizer.GoalWeights) *optimizer.GoalWeights {
	if w != nil {
		return w
	}
	cw := s.cfg.Optimizer.Weights
	return &optimizer.GoalWeights{
		Yield:              cw.Yield,
		Cost:               cw.Cost,
		Environment:        cw.Environment,
		Labor:              cw.Labor,
		NutrientEfficiency: cw.NutrientEfficiency,
	}
}

func (s *Service) buildConstraints(req Request, field *fieldsvc.Field) []optimizer.Constraint {
	constraints := []optimizer.Constraint{
		{Kind: optimizer.ConstraintFieldSize, FieldSizeHa: field.AreaHa},
	}
	if len(req.OwnedEquipment) > 0 {
		constraints = append(constraints, optimizer.Constraint{
			Kind:               optimizer.ConstraintEquipment,
			AvailableEquipment: req.OwnedEquipment,
		})
	}
	if req.BudgetPerHectare > 0 {
		// Budgets stretch; equipment and regulations do not.
		constraints = append(constraints, optimizer.Constraint{
			Kind:             optimizer.ConstraintBudget,
			Soft:             true,
			BudgetPerHectare: req.BudgetPerHectare,
		})
	}
	if req.MaxRegulationTier > 0 {
		constraints = append(constraints, optimizer.Constraint{
			Kind:              optimizer.ConstraintRegulation,
			MaxRegulationTier: req.MaxRegulationTier,
		})
	}
	return constraints
}

func (s *Service) persist(ctx context.Context, req Request, rec *Recommendation, result *optimizer.Result) error {
	stored := &store.Recommendation{
		FarmID:     req.FarmID,
		FieldID:    rec.FieldID,
		Crop:       rec.Crop,
		Algorithm:  rec.Algorithm,
		BestMethod: result.Best(),
		Result: map[string]interface{}{
			"methods":      rec.Methods,
			"pareto_front": rec.ParetoFront,
			"convergence":  rec.Convergence,
			"degraded":     rec.Degraded,
		},
	}
	if err := s.store.CreateRecommendation(ctx, stored); err != nil {
		return err
	}
	rec.ID = stored.ID

	if s.events != nil {
		_ = s.events.Publish(events.SubjectRecommendationCreated(stored.ID.String()), events.RecommendationEvent{
			RecommendationID: stored.ID.String(),
			FarmID:           req.FarmID,
			FieldID:          rec.FieldID,
			Algorithm:        rec.Algorithm,
			BestMethod:       stored.BestMethod,
			BestScore:        bestScore(result),
		})
	}
	return nil
}

func bestScore(result *optimizer.Result) float64 {
	if len(result.Rankings) == 0 {
		return 0
	}
	return result.Rankings[0].Score
}
