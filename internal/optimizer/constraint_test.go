package optimizer

import "testing"

func constrainedCandidates() []Candidate {
	return []Candidate{
		{
			ID:         "broadcast",
			Objectives: Objectives{Yield: 0.6, Cost: 20, Environmental: 0.4, Labor: 0.9, Nutrient: 0.5},
			Attributes: Attributes{RequiredEquipment: []string{"spreader"}, CostPerHectare: 20, RegulationTier: 1},
		},
		{
			ID:         "fertigation",
			Objectives: Objectives{Yield: 0.85, Cost: 60, Environmental: 0.8, Labor: 0.8, Nutrient: 0.9},
			Attributes: Attributes{RequiredEquipment: []string{"irrigation_system", "injector"}, CostPerHectare: 60, MinFieldSizeHa: 5, RegulationTier: 2},
		},
		{
			ID:         "variable_rate",
			Objectives: Objectives{Yield: 0.9, Cost: 75, Environmental: 0.9, Labor: 0.85, Nutrient: 0.95},
			Attributes: Attributes{RequiredEquipment: []string{"vrt_spreader", "gps_guidance"}, CostPerHectare: 75, MinFieldSizeHa: 20, RegulationTier: 3},
		},
	}
}

func TestEquipmentConstraint(t *testing.T) {
	c := Constraint{Kind: ConstraintEquipment, AvailableEquipment: []string{"Spreader", "tractor"}}
	candidates := constrainedCandidates()

	if v := c.Evaluate(candidates[0]); v != nil {
		t.Errorf("broadcast should pass (case-insensitive match): %v", v)
	}
	v := c.Evaluate(candidates[1])
	if v == nil {
		t.Fatal("fertigation should fail without irrigation equipment")
	}
	if v.Kind != ConstraintEquipment || v.CandidateID != "fertigation" {
		t.Errorf("violation should carry kind and candidate id, got %+v", v)
	}
	if v.Reason == "" {
		t.Error("violation reason should not be empty")
	}
}

func TestBudgetConstraint(t *testing.T) {
	c := Constraint{Kind: ConstraintBudget, BudgetPerHectare: 50}
	candidates := constrainedCandidates()

	if v := c.Evaluate(candidates[0]); v != nil {
		t.Errorf("broadcast within budget: %v", v)
	}
	if v := c.Evaluate(candidates[2]); v == nil {
		t.Error("variable_rate should exceed budget")
	}
}

func TestFieldSizeConstraint(t *testing.T) {
	c := Constraint{Kind: ConstraintFieldSize, FieldSizeHa: 8}
	candidates := constrainedCandidates()

	if v := c.Evaluate(candidates[1]); v != nil {
		t.Errorf("8 ha field should suit fertigation: %v", v)
	}
	if v := c.Evaluate(candidates[2]); v == nil {
		t.Error("8 ha field is below variable_rate minimum")
	}
}

func TestRegulationConstraint(t *testing.T) {
	c := Constraint{Kind: ConstraintRegulation, MaxRegulationTier: 2}
	candidates := constrainedCandidates()

	if v := c.Evaluate(candidates[1]); v != nil {
		t.Errorf("tier 2 method permitted under tier 2 ceiling: %v", v)
	}
	if v := c.Evaluate(candidates[2]); v == nil {
		t.Error("tier 3 method should violate tier 2 ceiling")
	}
}

func TestConstraintFilteringIdempotent(t *testing.T) {
	candidates := constrainedCandidates()
	constraints := []Constraint{
		{Kind: ConstraintBudget, BudgetPerHectare: 65},
		{Kind: ConstraintFieldSize, FieldSizeHa: 10},
	}

	first := applyConstraints(candidates, constraints, true)
	second := applyConstraints(first.survivors, constraints, true)

	if len(first.survivors) != len(second.survivors) {
		t.Fatalf("filtering not idempotent: %d then %d survivors", len(first.survivors), len(second.survivors))
	}
	for i := range first.survivors {
		if first.survivors[i].ID != second.survivors[i].ID {
			t.Errorf("survivor order changed at %d: %s vs %s", i, first.survivors[i].ID, second.survivors[i].ID)
		}
	}
}

func TestSoftConstraintSkippedOnRelaxation(t *testing.T) {
	candidates := constrainedCandidates()
	constraints := []Constraint{
		{Kind: ConstraintBudget, BudgetPerHectare: 10, Soft: true}, // eliminates everyone
		{Kind: ConstraintRegulation, MaxRegulationTier: 3},
	}

	strict := applyConstraints(candidates, constraints, true)
	if len(strict.survivors) != 0 {
		t.Fatalf("expected no survivors under strict pass, got %d", len(strict.survivors))
	}

	relaxed := applyConstraints(candidates, constraints, false)
	if len(relaxed.survivors) != len(candidates) {
		t.Errorf("expected all candidates to survive relaxed pass, got %d", len(relaxed.survivors))
	}
}
