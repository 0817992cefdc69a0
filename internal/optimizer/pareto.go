package optimizer

import (
	"math"
	"sort"
)

// maximized returns the objective vector with cost negated, so dominance can
// treat every axis as higher-is-better.
func maximized(c Candidate) [NumObjectives]float64 {
	vec := c.Objectives.Vector()
	vec[ObjCost] = -vec[ObjCost]
	return vec
}

// dominates returns true if a dominates b: a is >= b on every objective and
// strictly better on at least one (cost sign-flipped for minimization).
func dominates(a, b Candidate) bool {
	av, bv := maximized(a), maximized(b)
	better := false
	for m := 0; m < NumObjectives; m++ {
		if av[m] < bv[m] {
			return false
		}
		if av[m] > bv[m] {
			better = true
		}
	}
	return better
}

// computeFront returns the non-dominated candidates in insertion order.
// O(n^2) dominance check, fine for typical candidate set sizes.
func computeFront(candidates []Candidate) []Candidate {
	if len(candidates) <= 1 {
		return candidates
	}
	var front []Candidate
	for i := range candidates {
		dominated := false
		for j := range candidates {
			if i == j {
				continue
			}
			if dominates(candidates[j], candidates[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, candidates[i])
		}
	}
	return front
}

// crowdingDistances computes the NSGA-II crowding distance for each front
// member, returned in front order. Boundary points on any objective get +Inf;
// interior points accumulate normalized neighbour gaps per objective.
func crowdingDistances(front []Candidate) []float64 {
	n := len(front)
	dist := make([]float64, n)
	if n <= 2 {
		for i := range dist {
			dist[i] = math.Inf(1)
		}
		return dist
	}

	idx := make([]int, n)
	for m := 0; m < NumObjectives; m++ {
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return maximized(front[idx[a]])[m] < maximized(front[idx[b]])[m]
		})

		dist[idx[0]] = math.Inf(1)
		dist[idx[n-1]] = math.Inf(1)

		spread := maximized(front[idx[n-1]])[m] - maximized(front[idx[0]])[m]
		if spread == 0 {
			continue
		}
		for i := 1; i < n-1; i++ {
			gap := maximized(front[idx[i+1]])[m] - maximized(front[idx[i-1]])[m]
			dist[idx[i]] += gap / spread
		}
	}
	return dist
}

// paretoFront builds the front member list, truncated to limit by descending
// crowding distance when the front is larger than requested. limit <= 0 keeps
// the whole front.
func paretoFront(candidates []Candidate, limit int) []FrontMember {
	front := computeFront(candidates)
	dist := crowdingDistances(front)

	members := make([]FrontMember, len(front))
	for i, cand := range front {
		members[i] = FrontMember{ID: cand.ID, CrowdingDistance: dist[i]}
	}

	if limit > 0 && len(members) > limit {
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].CrowdingDistance > members[j].CrowdingDistance
		})
		members = members[:limit]
	}
	return members
}
