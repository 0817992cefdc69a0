package optimizer

import (
	"math"
	"testing"
)

func TestDominates(t *testing.T) {
	better := Candidate{ID: "better", Objectives: Objectives{Yield: 0.9, Cost: 20, Environmental: 0.8, Labor: 0.8, Nutrient: 0.8}}
	worse := Candidate{ID: "worse", Objectives: Objectives{Yield: 0.5, Cost: 40, Environmental: 0.5, Labor: 0.5, Nutrient: 0.5}}
	tradeoff := Candidate{ID: "tradeoff", Objectives: Objectives{Yield: 0.95, Cost: 60, Environmental: 0.5, Labor: 0.5, Nutrient: 0.5}}

	if !dominates(better, worse) {
		t.Error("better should dominate worse")
	}
	if dominates(worse, better) {
		t.Error("worse should not dominate better")
	}
	if dominates(better, tradeoff) || dominates(tradeoff, better) {
		t.Error("trade-off candidates should not dominate each other")
	}
	if dominates(better, better) {
		t.Error("a candidate never dominates itself")
	}
}

func TestDominatesCostFlipped(t *testing.T) {
	cheap := Candidate{ID: "cheap", Objectives: Objectives{Yield: 0.5, Cost: 10, Environmental: 0.5, Labor: 0.5, Nutrient: 0.5}}
	pricey := Candidate{ID: "pricey", Objectives: Objectives{Yield: 0.5, Cost: 50, Environmental: 0.5, Labor: 0.5, Nutrient: 0.5}}

	if !dominates(cheap, pricey) {
		t.Error("identical candidate with lower cost should dominate")
	}
	if dominates(pricey, cheap) {
		t.Error("higher cost must not dominate")
	}
}

func TestFrontContainsNoDominatedCandidate(t *testing.T) {
	candidates := testCandidates()
	// Dominated on every axis by "banded".
	candidates = append(candidates, Candidate{
		ID:         "dominated",
		Objectives: Objectives{Yield: 0.4, Cost: 80, Environmental: 0.3, Labor: 0.4, Nutrient: 0.3},
	})

	front := computeFront(candidates)
	for _, fc := range front {
		if fc.ID == "dominated" {
			t.Fatal("dominated candidate on front")
		}
		for _, other := range candidates {
			if other.ID != fc.ID && dominates(other, fc) {
				t.Errorf("front member %s is dominated by %s", fc.ID, other.ID)
			}
		}
	}
}

func TestFrontMembersRemainNonDominatedAfterRemoval(t *testing.T) {
	front := computeFront(testCandidates())
	for drop := range front {
		remaining := make([]Candidate, 0, len(front)-1)
		for i, c := range front {
			if i != drop {
				remaining = append(remaining, c)
			}
		}
		rerun := computeFront(remaining)
		if len(rerun) != len(remaining) {
			t.Errorf("removing %s changed non-domination of remaining front members", front[drop].ID)
		}
	}
}

func TestFrontSingleCandidate(t *testing.T) {
	only := []Candidate{{ID: "only"}}
	front := computeFront(only)
	if len(front) != 1 || front[0].ID != "only" {
		t.Errorf("expected the single candidate on the front, got %v", front)
	}
}

func TestCrowdingDistanceBoundariesInfinite(t *testing.T) {
	front := []Candidate{
		{ID: "low", Objectives: Objectives{Yield: 0.1, Cost: 10}},
		{ID: "mid", Objectives: Objectives{Yield: 0.5, Cost: 30}},
		{ID: "mid2", Objectives: Objectives{Yield: 0.7, Cost: 45}},
		{ID: "high", Objectives: Objectives{Yield: 0.9, Cost: 60}},
	}
	dist := crowdingDistances(front)

	// "low" and "high" are the extremes on yield and on cost.
	if !math.IsInf(dist[0], 1) {
		t.Errorf("expected +Inf for low extreme, got %f", dist[0])
	}
	if !math.IsInf(dist[3], 1) {
		t.Errorf("expected +Inf for high extreme, got %f", dist[3])
	}
	for i := 1; i <= 2; i++ {
		if math.IsInf(dist[i], 1) {
			t.Errorf("interior point %d should have finite distance", i)
		}
		if dist[i] <= 0 {
			t.Errorf("interior point %d should have positive distance, got %f", i, dist[i])
		}
	}
}

func TestCrowdingDistanceSmallFrontAllInfinite(t *testing.T) {
	front := []Candidate{
		{ID: "a", Objectives: Objectives{Yield: 0.2}},
		{ID: "b", Objectives: Objectives{Yield: 0.8}},
	}
	for _, d := range crowdingDistances(front) {
		if !math.IsInf(d, 1) {
			t.Errorf("fronts of size <= 2 should be all infinite, got %f", d)
		}
	}
}

func TestParetoFrontTruncationPrefersDiverse(t *testing.T) {
	candidates := []Candidate{
		{ID: "low", Objectives: Objectives{Yield: 0.1, Cost: 10}},
		{ID: "crowded1", Objectives: Objectives{Yield: 0.50, Cost: 30}},
		{ID: "crowded2", Objectives: Objectives{Yield: 0.51, Cost: 31}},
		{ID: "high", Objectives: Objectives{Yield: 0.9, Cost: 60}},
	}
	members := paretoFront(candidates, 3)
	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}

	kept := make(map[string]bool)
	for _, m := range members {
		kept[m.ID] = true
	}
	if !kept["low"] || !kept["high"] {
		t.Error("boundary points must survive truncation")
	}
	if kept["crowded1"] && kept["crowded2"] {
		t.Error("truncation should drop one of the crowded pair")
	}
}
