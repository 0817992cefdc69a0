package optimizer

import "sort"

// normalizeObjectives min-max normalizes every objective across the candidate
// set into [0,1], flipping cost so that higher is better on all axes. An
// objective with zero spread contributes a neutral 0.5 for every candidate.
func normalizeObjectives(candidates []Candidate) [][NumObjectives]float64 {
	var lo, hi [NumObjectives]float64
	for m := 0; m < NumObjectives; m++ {
		lo[m] = candidates[0].Objectives.Vector()[m]
		hi[m] = lo[m]
	}
	for _, cand := range candidates[1:] {
		vec := cand.Objectives.Vector()
		for m := 0; m < NumObjectives; m++ {
			if vec[m] < lo[m] {
				lo[m] = vec[m]
			}
			if vec[m] > hi[m] {
				hi[m] = vec[m]
			}
		}
	}

	normalized := make([][NumObjectives]float64, len(candidates))
	for i, cand := range candidates {
		vec := cand.Objectives.Vector()
		for m := 0; m < NumObjectives; m++ {
			spread := hi[m] - lo[m]
			if spread == 0 {
				normalized[i][m] = 0.5
				continue
			}
			v := (vec[m] - lo[m]) / spread
			if m == ObjCost {
				v = 1 - v
			}
			normalized[i][m] = v
		}
	}
	return normalized
}

// weightedScores returns the dot product of each candidate's normalized
// objective vector with the goal weights, aligned with candidate order.
// Scores lie in [0,1] for any weight vector summing to 1.0.
func weightedScores(candidates []Candidate, weights GoalWeights) []float64 {
	normalized := normalizeObjectives(candidates)
	wv := weights.vector()

	scores := make([]float64, len(candidates))
	for i := range candidates {
		for m := 0; m < NumObjectives; m++ {
			scores[i] += normalized[i][m] * wv[m]
		}
	}
	return scores
}

// rankWeightedSum orders candidates by descending weighted-sum score.
// Ties keep candidate insertion order.
func rankWeightedSum(candidates []Candidate, weights GoalWeights) []RankedCandidate {
	scores := weightedScores(candidates, weights)

	ranked := make([]RankedCandidate, len(candidates))
	for i, cand := range candidates {
		ranked[i] = RankedCandidate{ID: cand.ID, Score: scores[i], Feasible: true}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
