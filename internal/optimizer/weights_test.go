package optimizer

import (
	"math"
	"testing"
)

func TestDefaultGoalWeightsSumToOne(t *testing.T) {
	w := DefaultGoalWeights()
	if err := w.Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		t.Errorf("default weights sum to %f, expected 1.0", w.Sum())
	}
}

func TestGoalWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		weights GoalWeights
		wantErr bool
	}{
		{"valid", GoalWeights{Yield: 0.5, Cost: 0.5}, false},
		{"within tolerance", GoalWeights{Yield: 0.5005, Cost: 0.5}, false},
		{"sum too low", GoalWeights{Yield: 0.4, Cost: 0.4}, true},
		{"sum too high", GoalWeights{Yield: 0.8, Cost: 0.8}, true},
		{"negative weight", GoalWeights{Yield: 1.2, Cost: -0.2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGoalWeightsNormalized(t *testing.T) {
	w := GoalWeights{Yield: 2, Cost: 1, Environment: 1}
	n := w.Normalized()
	if math.Abs(n.Sum()-1.0) > 1e-9 {
		t.Errorf("normalized weights sum to %f", n.Sum())
	}
	if math.Abs(n.Yield-0.5) > 1e-9 {
		t.Errorf("expected yield 0.5, got %f", n.Yield)
	}
}

func TestGoalWeightsNormalizedZeroSum(t *testing.T) {
	n := GoalWeights{}.Normalized()
	if n != DefaultGoalWeights() {
		t.Error("zero-sum weights should normalize to defaults")
	}
}
