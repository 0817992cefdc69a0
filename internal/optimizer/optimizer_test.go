package optimizer

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestOptimizeEmptyCandidateSet(t *testing.T) {
	for _, alg := range []Algorithm{AlgorithmWeightedSum, AlgorithmPareto, AlgorithmConstraint} {
		t.Run(string(alg), func(t *testing.T) {
			_, err := Optimize(Request{Algorithm: alg})
			if !errors.Is(err, ErrEmptyCandidateSet) {
				t.Errorf("expected ErrEmptyCandidateSet, got %v", err)
			}
		})
	}
}

func TestOptimizeInvalidAlgorithm(t *testing.T) {
	_, err := Optimize(Request{Candidates: testCandidates(), Algorithm: "simulated_annealing"})
	if !errors.Is(err, ErrInvalidAlgorithm) {
		t.Errorf("expected ErrInvalidAlgorithm, got %v", err)
	}
}

func TestOptimizeInvalidWeights(t *testing.T) {
	bad := GoalWeights{Yield: 0.9, Cost: 0.9}
	_, err := Optimize(Request{Candidates: testCandidates(), Weights: &bad, Algorithm: AlgorithmWeightedSum})
	if err == nil {
		t.Error("expected error for weights not summing to 1.0")
	}
}

func TestOptimizeDoesNotMutateInput(t *testing.T) {
	candidates := testCandidates()
	snapshot := make([]Candidate, len(candidates))
	copy(snapshot, candidates)

	weights := GoalWeights{Cost: 1.0}
	for _, alg := range []Algorithm{AlgorithmWeightedSum, AlgorithmPareto, AlgorithmConstraint} {
		if _, err := Optimize(Request{Candidates: candidates, Weights: &weights, Algorithm: alg}); err != nil {
			t.Fatalf("%s: %v", alg, err)
		}
		if !reflect.DeepEqual(candidates, snapshot) {
			t.Fatalf("%s mutated the input candidates", alg)
		}
	}
}

func TestOptimizeWeightedSum(t *testing.T) {
	res, err := Optimize(Request{Candidates: testCandidates(), Algorithm: AlgorithmWeightedSum})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rankings) != 4 {
		t.Fatalf("expected 4 rankings, got %d", len(res.Rankings))
	}
	for i, r := range res.Rankings {
		if r.Rank != i+1 {
			t.Errorf("expected rank %d, got %d", i+1, r.Rank)
		}
		if r.Score < 0 || r.Score > 1 {
			t.Errorf("score %f out of [0,1]", r.Score)
		}
		if i > 0 && r.Score > res.Rankings[i-1].Score {
			t.Error("rankings not in descending score order")
		}
	}
	if res.Convergence.Algorithm != "weighted_sum" {
		t.Errorf("unexpected algorithm name %q", res.Convergence.Algorithm)
	}
	if res.Convergence.FeasibleSolutions != 4 {
		t.Errorf("expected 4 feasible, got %d", res.Convergence.FeasibleSolutions)
	}
}

func TestOptimizePareto(t *testing.T) {
	res, err := Optimize(Request{Candidates: testCandidates(), Algorithm: AlgorithmPareto})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.ParetoFront) == 0 {
		t.Fatal("expected a non-empty Pareto front")
	}

	byID := make(map[string]Candidate)
	for _, c := range testCandidates() {
		byID[c.ID] = c
	}
	for _, m := range res.ParetoFront {
		member := byID[m.ID]
		for _, other := range testCandidates() {
			if other.ID != m.ID && dominates(other, member) {
				t.Errorf("front member %s dominated by %s", m.ID, other.ID)
			}
		}
	}
}

func TestOptimizeConstraintSatisfaction(t *testing.T) {
	res, err := Optimize(Request{
		Candidates: constrainedCandidates(),
		Algorithm:  AlgorithmConstraint,
		Constraints: []Constraint{
			{Kind: ConstraintBudget, BudgetPerHectare: 65},
			{Kind: ConstraintFieldSize, FieldSizeHa: 10},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.Convergence.FeasibleSolutions != 2 {
		t.Fatalf("expected 2 feasible solutions, got %d", res.Convergence.FeasibleSolutions)
	}
	// Feasible candidates rank ahead of the infeasible one.
	if !res.Rankings[0].Feasible || !res.Rankings[1].Feasible {
		t.Error("feasible candidates should occupy the top ranks")
	}
	last := res.Rankings[2]
	if last.Feasible {
		t.Error("variable_rate should be infeasible")
	}
	if last.ID != "variable_rate" || len(last.Violations) == 0 {
		t.Errorf("expected recorded violations for variable_rate, got %+v", last)
	}
}

func TestOptimizeConstraintInfeasibleFallback(t *testing.T) {
	res, err := Optimize(Request{
		Candidates: constrainedCandidates(),
		Algorithm:  AlgorithmConstraint,
		Constraints: []Constraint{
			{Kind: ConstraintBudget, BudgetPerHectare: 5},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.Convergence.FeasibleSolutions != 0 {
		t.Errorf("expected feasible_solutions 0, got %d", res.Convergence.FeasibleSolutions)
	}
	if len(res.Rankings) != 3 {
		t.Fatalf("all candidates should be retained, got %d", len(res.Rankings))
	}
	for _, r := range res.Rankings {
		if r.Feasible {
			t.Errorf("candidate %s should be flagged infeasible", r.ID)
		}
		if len(r.Violations) == 0 {
			t.Errorf("candidate %s should carry violations", r.ID)
		}
	}
}

func TestOptimizeConstraintSoftRelaxation(t *testing.T) {
	res, err := Optimize(Request{
		Candidates: constrainedCandidates(),
		Algorithm:  AlgorithmConstraint,
		Constraints: []Constraint{
			{Kind: ConstraintBudget, BudgetPerHectare: 5, Soft: true},
			{Kind: ConstraintRegulation, MaxRegulationTier: 3},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Convergence.SoftRelaxed {
		t.Error("expected soft constraints to be relaxed")
	}
	if res.Convergence.FeasibleSolutions != 3 {
		t.Errorf("expected all candidates feasible after relaxation, got %d", res.Convergence.FeasibleSolutions)
	}
}

func TestFrontMemberJSONInfinity(t *testing.T) {
	m := FrontMember{ID: "edge", CrowdingDistance: math.Inf(1)}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"inf"`) {
		t.Errorf("expected infinite distance serialized as \"inf\", got %s", data)
	}

	finite := FrontMember{ID: "mid", CrowdingDistance: 0.75}
	data, err = json.Marshal(finite)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), "0.75") {
		t.Errorf("expected numeric distance, got %s", data)
	}
}
