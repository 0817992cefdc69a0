package optimizer

import (
	"sort"
	"testing"
)

func testCandidates() []Candidate {
	return []Candidate{
		{
			ID:         "broadcast",
			Objectives: Objectives{Yield: 0.6, Cost: 20, Environmental: 0.4, Labor: 0.9, Nutrient: 0.5},
		},
		{
			ID:         "banded",
			Objectives: Objectives{Yield: 0.75, Cost: 35, Environmental: 0.6, Labor: 0.7, Nutrient: 0.7},
		},
		{
			ID:         "fertigation",
			Objectives: Objectives{Yield: 0.85, Cost: 60, Environmental: 0.8, Labor: 0.8, Nutrient: 0.9},
		},
		{
			ID:         "foliar",
			Objectives: Objectives{Yield: 0.5, Cost: 45, Environmental: 0.7, Labor: 0.5, Nutrient: 0.6},
		},
	}
}

func TestWeightedScoresInUnitInterval(t *testing.T) {
	weightSets := []GoalWeights{
		DefaultGoalWeights(),
		{Yield: 1.0},
		{Cost: 1.0},
		{Yield: 0.2, Cost: 0.2, Environment: 0.2, Labor: 0.2, NutrientEfficiency: 0.2},
		{Environment: 0.5, NutrientEfficiency: 0.5},
	}

	for _, w := range weightSets {
		for _, score := range weightedScores(testCandidates(), w) {
			if score < 0 || score > 1 {
				t.Errorf("score %f out of [0,1] for weights %+v", score, w)
			}
		}
	}
}

func TestSingleGoalRankingMatchesObjectiveSort(t *testing.T) {
	tests := []struct {
		name    string
		weights GoalWeights
		key     func(c Candidate) float64
		asc     bool
	}{
		{"yield only", GoalWeights{Yield: 1.0}, func(c Candidate) float64 { return c.Objectives.Yield }, false},
		{"cost only", GoalWeights{Cost: 1.0}, func(c Candidate) float64 { return c.Objectives.Cost }, true},
		{"nutrient only", GoalWeights{NutrientEfficiency: 1.0}, func(c Candidate) float64 { return c.Objectives.Nutrient }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := testCandidates()
			ranked := rankWeightedSum(candidates, tt.weights)

			expected := make([]Candidate, len(candidates))
			copy(expected, candidates)
			sort.SliceStable(expected, func(i, j int) bool {
				if tt.asc {
					return tt.key(expected[i]) < tt.key(expected[j])
				}
				return tt.key(expected[i]) > tt.key(expected[j])
			})

			for i := range ranked {
				if ranked[i].ID != expected[i].ID {
					t.Errorf("rank %d: got %s, want %s", i+1, ranked[i].ID, expected[i].ID)
				}
			}
		})
	}
}

func TestWeightedSumTieBreakKeepsInsertionOrder(t *testing.T) {
	candidates := []Candidate{
		{ID: "first", Objectives: Objectives{Yield: 0.5, Cost: 30}},
		{ID: "second", Objectives: Objectives{Yield: 0.5, Cost: 30}},
		{ID: "third", Objectives: Objectives{Yield: 0.5, Cost: 30}},
	}
	ranked := rankWeightedSum(candidates, DefaultGoalWeights())
	for i, want := range []string{"first", "second", "third"} {
		if ranked[i].ID != want {
			t.Errorf("rank %d: got %s, want %s", i+1, ranked[i].ID, want)
		}
	}
}

func TestNormalizeZeroSpreadIsNeutral(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Objectives: Objectives{Yield: 0.5, Cost: 10}},
		{ID: "b", Objectives: Objectives{Yield: 0.5, Cost: 40}},
	}
	normalized := normalizeObjectives(candidates)
	if normalized[0][ObjYield] != 0.5 || normalized[1][ObjYield] != 0.5 {
		t.Error("zero-spread objective should normalize to 0.5 for all candidates")
	}
	// Cost is flipped, so the cheaper method normalizes to 1.
	if normalized[0][ObjCost] != 1.0 {
		t.Errorf("expected cheap candidate cost to normalize to 1.0, got %f", normalized[0][ObjCost])
	}
	if normalized[1][ObjCost] != 0.0 {
		t.Errorf("expected expensive candidate cost to normalize to 0.0, got %f", normalized[1][ObjCost])
	}
}
