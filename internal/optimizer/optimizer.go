// Package optimizer selects and ranks fertilizer application methods against
// a farmer's weighted goals using one of three interchangeable strategies:
// weighted sum, Pareto dominance, and constraint satisfaction. Evaluation is
// pure and deterministic; inputs are never mutated.
package optimizer

import (
	"errors"
	"fmt"
	"sort"
)

type Algorithm string

const (
	AlgorithmWeightedSum Algorithm = "weighted_sum"
	AlgorithmPareto      Algorithm = "pareto"
	AlgorithmConstraint  Algorithm = "constraint_satisfaction"
)

var (
	ErrEmptyCandidateSet = errors.New("optimizer: empty candidate set")
	ErrInvalidAlgorithm  = errors.New("optimizer: invalid algorithm")
)

// Request bundles the inputs for one optimization run.
type Request struct {
	Candidates  []Candidate
	Weights     *GoalWeights // nil selects DefaultGoalWeights
	Constraints []Constraint
	Algorithm   Algorithm
	MaxResults  int // Pareto front truncation; 0 keeps the whole front
}

// Optimize runs the selected strategy over the candidate set.
func Optimize(req Request) (*Result, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrEmptyCandidateSet
	}
	switch req.Algorithm {
	case AlgorithmWeightedSum, AlgorithmPareto, AlgorithmConstraint:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, req.Algorithm)
	}

	weights := DefaultGoalWeights()
	if req.Weights != nil {
		if err := req.Weights.Validate(); err != nil {
			return nil, err
		}
		weights = *req.Weights
	}

	// Work on a copy so callers' slices are never reordered.
	candidates := make([]Candidate, len(req.Candidates))
	copy(candidates, req.Candidates)

	switch req.Algorithm {
	case AlgorithmWeightedSum:
		return optimizeWeightedSum(candidates, weights), nil
	case AlgorithmPareto:
		return optimizePareto(candidates, weights, req.MaxResults), nil
	default:
		return optimizeConstraint(candidates, weights, req.Constraints), nil
	}
}

func optimizeWeightedSum(candidates []Candidate, weights GoalWeights) *Result {
	return &Result{
		Rankings: rankWeightedSum(candidates, weights),
		Convergence: Convergence{
			Algorithm:         string(AlgorithmWeightedSum),
			Iterations:        len(candidates),
			CandidateCount:    len(candidates),
			FeasibleSolutions: len(candidates),
		},
	}
}

func optimizePareto(candidates []Candidate, weights GoalWeights, limit int) *Result {
	return &Result{
		Rankings:    rankWeightedSum(candidates, weights),
		ParetoFront: paretoFront(candidates, limit),
		Convergence: Convergence{
			Algorithm:         string(AlgorithmPareto),
			Iterations:        len(candidates) * len(candidates),
			CandidateCount:    len(candidates),
			FeasibleSolutions: len(candidates),
		},
	}
}

// optimizeConstraint filters candidates through the constraint set, ranking
// survivors by weighted sum. With zero survivors the soft constraints are
// relaxed first; if the hard set alone still eliminates everyone, all
// candidates are retained flagged infeasible with zero feasible solutions.
func optimizeConstraint(candidates []Candidate, weights GoalWeights, constraints []Constraint) *Result {
	outcome := applyConstraints(candidates, constraints, true)
	relaxed := false
	if len(outcome.survivors) == 0 && hasSoft(constraints) {
		outcome = applyConstraints(candidates, constraints, false)
		relaxed = true
	}

	scores := weightedScores(candidates, weights)
	scoreByID := make(map[string]float64, len(candidates))
	for i, cand := range candidates {
		scoreByID[cand.ID] = scores[i]
	}

	feasible := make(map[string]bool, len(outcome.survivors))
	for _, s := range outcome.survivors {
		feasible[s.ID] = true
	}

	rankings := make([]RankedCandidate, len(candidates))
	for i, cand := range candidates {
		rankings[i] = RankedCandidate{
			ID:         cand.ID,
			Score:      scoreByID[cand.ID],
			Feasible:   feasible[cand.ID],
			Violations: outcome.violations[cand.ID],
		}
	}

	// Feasible candidates rank ahead of infeasible ones; within each group,
	// descending score with insertion-order tie-break.
	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].Feasible != rankings[j].Feasible {
			return rankings[i].Feasible
		}
		return rankings[i].Score > rankings[j].Score
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}

	evaluations := len(candidates) * len(constraints)
	if relaxed {
		evaluations *= 2
	}

	return &Result{
		Rankings: rankings,
		Convergence: Convergence{
			Algorithm:         string(AlgorithmConstraint),
			Iterations:        evaluations,
			CandidateCount:    len(candidates),
			FeasibleSolutions: len(outcome.survivors),
			SoftRelaxed:       relaxed,
		},
	}
}

func hasSoft(constraints []Constraint) bool {
	for _, c := range constraints {
		if c.Soft {
			return true
		}
	}
	return false
}
