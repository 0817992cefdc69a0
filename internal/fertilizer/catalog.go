package fertilizer

import "github.com/caain/soilhub/internal/optimizer"

// Application method ids. The catalog is the fixed candidate set every
// recommendation starts from; adjustments specialize it per field.
const (
	MethodBroadcast    = "broadcast"
	MethodBanded       = "banded"
	MethodSideDress    = "side_dress_injection"
	MethodFertigation  = "fertigation"
	MethodFoliar       = "foliar"
	MethodVariableRate = "variable_rate"
)

// Catalog returns the built-in application methods with their baseline
// objective scores. Maximized objectives are on a 0-10 scale; cost is in
// currency units per hectare and is minimized. Labor scores convenience,
// so a higher value means less field labor.
func Catalog() []optimizer.Candidate {
	return []optimizer.Candidate{
		{
			ID: MethodBroadcast,
			Objectives: optimizer.Objectives{
				Yield: 5.5, Cost: 28, Environmental: 4.0, Labor: 8.5, Nutrient: 4.5,
			},
			Attributes: optimizer.Attributes{
				RequiredEquipment: []string{"spreader"},
				CostPerHectare:    28,
				RegulationTier:    1,
			},
		},
		{
			ID: MethodBanded,
			Objectives: optimizer.Objectives{
				Yield: 7.0, Cost: 38, Environmental: 6.5, Labor: 6.5, Nutrient: 6.5,
			},
			Attributes: optimizer.Attributes{
				RequiredEquipment: []string{"planter"},
				CostPerHectare:    38,
				RegulationTier:    1,
			},
		},
		{
			ID: MethodSideDress,
			Objectives: optimizer.Objectives{
				Yield: 8.0, Cost: 52, Environmental: 8.0, Labor: 5.0, Nutrient: 8.0,
			},
			Attributes: optimizer.Attributes{
				RequiredEquipment: []string{"injector"},
				CostPerHectare:    52,
				RegulationTier:    2,
			},
		},
		{
			ID: MethodFertigation,
			Objectives: optimizer.Objectives{
				Yield: 8.5, Cost: 65, Environmental: 7.5, Labor: 7.5, Nutrient: 9.0,
			},
			Attributes: optimizer.Attributes{
				RequiredEquipment: []string{"irrigation"},
				CostPerHectare:    65,
				MinFieldSizeHa:    5,
				RegulationTier:    2,
			},
		},
		{
			ID: MethodFoliar,
			Objectives: optimizer.Objectives{
				Yield: 6.0, Cost: 45, Environmental: 7.0, Labor: 4.5, Nutrient: 7.0,
			},
			Attributes: optimizer.Attributes{
				RequiredEquipment: []string{"sprayer"},
				CostPerHectare:    45,
				MaxFieldSizeHa:    50,
				RegulationTier:    1,
			},
		},
		{
			ID: MethodVariableRate,
			Objectives: optimizer.Objectives{
				Yield: 9.0, Cost: 78, Environmental: 9.0, Labor: 8.0, Nutrient: 9.5,
			},
			Attributes: optimizer.Attributes{
				RequiredEquipment: []string{"vrt_controller", "spreader"},
				CostPerHectare:    78,
				MinFieldSizeHa:    20,
				RegulationTier:    3,
			},
		},
	}
}
