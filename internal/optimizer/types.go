package optimizer

import (
	"encoding/json"
	"math"
)

// Objective indices into a candidate's objective vector. Cost is the only
// objective that is minimized; the rest are maximized.
const (
	ObjYield = iota
	ObjCost
	ObjEnvironmental
	ObjLabor
	ObjNutrient

	NumObjectives
)

var objectiveNames = [NumObjectives]string{"yield", "cost", "environmental", "labor", "nutrient"}

// ObjectiveName returns the canonical name for an objective index.
func ObjectiveName(i int) string {
	if i < 0 || i >= NumObjectives {
		return "unknown"
	}
	return objectiveNames[i]
}

// Objectives holds the raw objective scores for one application method.
type Objectives struct {
	Yield         float64 `json:"yield"`
	Cost          float64 `json:"cost"`
	Environmental float64 `json:"environmental"`
	Labor         float64 `json:"labor"`
	Nutrient      float64 `json:"nutrient"`
}

// Vector returns the objectives in canonical index order.
func (o Objectives) Vector() [NumObjectives]float64 {
	return [NumObjectives]float64{o.Yield, o.Cost, o.Environmental, o.Labor, o.Nutrient}
}

// Attributes carries the physical properties of an application method that
// constraints are evaluated against.
type Attributes struct {
	RequiredEquipment []string `json:"required_equipment,omitempty"`
	CostPerHectare    float64  `json:"cost_per_hectare"`
	MinFieldSizeHa    float64  `json:"min_field_size_ha"`
	MaxFieldSizeHa    float64  `json:"max_field_size_ha"` // 0 = unbounded
	RegulationTier    int      `json:"regulation_tier"`
}

// Candidate is one fertilizer application method under consideration.
type Candidate struct {
	ID         string     `json:"id"`
	Objectives Objectives `json:"objectives"`
	Attributes Attributes `json:"attributes"`
}

// RankedCandidate is one candidate's position in the optimization output.
type RankedCandidate struct {
	ID         string      `json:"id"`
	Score      float64     `json:"score"`
	Rank       int         `json:"rank"`
	Feasible   bool        `json:"feasible"`
	Violations []Violation `json:"violations,omitempty"`
}

// FrontMember is a Pareto-front member with its NSGA-II crowding distance.
// Boundary members carry +Inf, which has no JSON encoding and is serialized
// as the string "inf".
type FrontMember struct {
	ID               string  `json:"id"`
	CrowdingDistance float64 `json:"-"`
}

func (m FrontMember) MarshalJSON() ([]byte, error) {
	var dist interface{} = m.CrowdingDistance
	if math.IsInf(m.CrowdingDistance, 1) {
		dist = "inf"
	}
	return json.Marshal(struct {
		ID               string      `json:"id"`
		CrowdingDistance interface{} `json:"crowding_distance"`
	}{m.ID, dist})
}

// Convergence captures how the selected algorithm terminated.
type Convergence struct {
	Algorithm         string `json:"algorithm"`
	Iterations        int    `json:"iterations"`
	CandidateCount    int    `json:"candidate_count"`
	FeasibleSolutions int    `json:"feasible_solutions"`
	SoftRelaxed       bool   `json:"soft_relaxed,omitempty"`
}

// Result is the full output of one Optimize call.
type Result struct {
	Rankings    []RankedCandidate `json:"rankings"`
	ParetoFront []FrontMember     `json:"pareto_front,omitempty"`
	Convergence Convergence       `json:"convergence"`
}

// Best returns the top-ranked candidate id, or "" when there are no rankings.
func (r *Result) Best() string {
	if len(r.Rankings) == 0 {
		return ""
	}
	return r.Rankings[0].ID
}
