package optimizer

import (
	"fmt"
	"math"
)

// GoalWeights defines the relative importance of each goal category.
// All weights must sum to 1.0 (±0.001 tolerance).
type GoalWeights struct {
	Yield              float64 `json:"yield" yaml:"yield"`
	Cost               float64 `json:"cost" yaml:"cost"`
	Environment        float64 `json:"environment" yaml:"environment"`
	Labor              float64 `json:"labor" yaml:"labor"`
	NutrientEfficiency float64 `json:"nutrient_efficiency" yaml:"nutrient_efficiency"`
}

// DefaultGoalWeights returns the balanced weight distribution used when a
// request carries no explicit goals.
func DefaultGoalWeights() GoalWeights {
	return GoalWeights{
		Yield:              0.30,
		Cost:               0.25,
		Environment:        0.20,
		Labor:              0.10,
		NutrientEfficiency: 0.15,
	}
}

// Sum returns the total of all weights.
func (w GoalWeights) Sum() float64 {
	return w.Yield + w.Cost + w.Environment + w.Labor + w.NutrientEfficiency
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w GoalWeights) Validate() error {
	for i, v := range w.vector() {
		if v < 0 {
			return fmt.Errorf("negative weight for %s: %f", ObjectiveName(i), v)
		}
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("goal weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	return nil
}

// Normalized returns a copy scaled so the weights sum to 1.0. Weights that
// sum to zero cannot be normalized and fall back to the defaults.
func (w GoalWeights) Normalized() GoalWeights {
	sum := w.Sum()
	if sum <= 0 {
		return DefaultGoalWeights()
	}
	return GoalWeights{
		Yield:              w.Yield / sum,
		Cost:               w.Cost / sum,
		Environment:        w.Environment / sum,
		Labor:              w.Labor / sum,
		NutrientEfficiency: w.NutrientEfficiency / sum,
	}
}

// vector returns the weights in objective index order.
func (w GoalWeights) vector() [NumObjectives]float64 {
	return [NumObjectives]float64{w.Yield, w.Cost, w.Environment, w.Labor, w.NutrientEfficiency}
}
