package optimizer

import (
	"fmt"
	"strings"
)

type ConstraintKind string

const (
	ConstraintEquipment  ConstraintKind = "equipment"
	ConstraintBudget     ConstraintKind = "budget"
	ConstraintFieldSize  ConstraintKind = "field_size"
	ConstraintRegulation ConstraintKind = "regulation"
)

// Constraint is a typed predicate evaluated against a candidate. Exactly the
// fields for its Kind are consulted; the rest are ignored. Soft constraints
// are relaxed when no candidate satisfies the hard set.
type Constraint struct {
	Kind ConstraintKind `json:"kind"`
	Soft bool           `json:"soft,omitempty"`

	// equipment: machinery available on the farm
	AvailableEquipment []string `json:"available_equipment,omitempty"`

	// budget: ceiling in currency units per hectare
	BudgetPerHectare float64 `json:"budget_per_hectare,omitempty"`

	// field_size: area of the field being treated
	FieldSizeHa float64 `json:"field_size_ha,omitempty"`

	// regulation: highest environmental regulation tier permitted locally
	MaxRegulationTier int `json:"max_regulation_tier,omitempty"`
}

// Violation records one constraint failure for one candidate.
type Violation struct {
	Kind        ConstraintKind `json:"kind"`
	CandidateID string         `json:"candidate_id"`
	Reason      string         `json:"reason"`
}

// Evaluate returns nil when the candidate satisfies the constraint, or a
// structured violation describing why it does not.
func (c Constraint) Evaluate(cand Candidate) *Violation {
	switch c.Kind {
	case ConstraintEquipment:
		for _, req := range cand.Attributes.RequiredEquipment {
			if !containsFold(c.AvailableEquipment, req) {
				return &Violation{
					Kind:        c.Kind,
					CandidateID: cand.ID,
					Reason:      "missing equipment: " + req,
				}
			}
		}
	case ConstraintBudget:
		if cand.Attributes.CostPerHectare > c.BudgetPerHectare {
			return &Violation{
				Kind:        c.Kind,
				CandidateID: cand.ID,
				Reason:      fmt.Sprintf("cost %.2f/ha exceeds budget %.2f/ha", cand.Attributes.CostPerHectare, c.BudgetPerHectare),
			}
		}
	case ConstraintFieldSize:
		if c.FieldSizeHa < cand.Attributes.MinFieldSizeHa {
			return &Violation{
				Kind:        c.Kind,
				CandidateID: cand.ID,
				Reason:      fmt.Sprintf("field %.1f ha below method minimum %.1f ha", c.FieldSizeHa, cand.Attributes.MinFieldSizeHa),
			}
		}
		if cand.Attributes.MaxFieldSizeHa > 0 && c.FieldSizeHa > cand.Attributes.MaxFieldSizeHa {
			return &Violation{
				Kind:        c.Kind,
				CandidateID: cand.ID,
				Reason:      fmt.Sprintf("field %.1f ha above method maximum %.1f ha", c.FieldSizeHa, cand.Attributes.MaxFieldSizeHa),
			}
		}
	case ConstraintRegulation:
		if cand.Attributes.RegulationTier > c.MaxRegulationTier {
			return &Violation{
				Kind:        c.Kind,
				CandidateID: cand.ID,
				Reason:      fmt.Sprintf("regulation tier %d exceeds permitted tier %d", cand.Attributes.RegulationTier, c.MaxRegulationTier),
			}
		}
	}
	return nil
}

// filterOutcome is the result of evaluating a constraint set over candidates.
type filterOutcome struct {
	survivors  []Candidate
	violations map[string][]Violation // candidate id → violations
}

// applyConstraints evaluates every constraint against every candidate. When
// includeSoft is false, soft constraints are skipped (the relaxation pass).
// Candidate order is preserved, so filtering is idempotent.
func applyConstraints(candidates []Candidate, constraints []Constraint, includeSoft bool) filterOutcome {
	out := filterOutcome{violations: make(map[string][]Violation)}
	for _, cand := range candidates {
		ok := true
		for _, c := range constraints {
			if c.Soft && !includeSoft {
				continue
			}
			if v := c.Evaluate(cand); v != nil {
				out.violations[cand.ID] = append(out.violations[cand.ID], *v)
				ok = false
			}
		}
		if ok {
			out.survivors = append(out.survivors, cand)
		}
	}
	return out
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}
