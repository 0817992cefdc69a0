package fertilizer

import (
	"strings"

	"github.com/caain/soilhub/internal/optimizer"
)

// Adjustments specialize the catalog's baseline scores to one field's
// conditions. The zero value is neutral: Apply returns the candidate
// unchanged, which is the fallback when collaborator data is missing.
type Adjustments struct {
	TillageSystem  string   // conventional, reduced, no_till
	RainForecastMm float64  // next-day precipitation
	WindSpeedKph   float64
	OwnedEquipment []string
}

// surfaceMethods leave fertilizer exposed on the soil surface, where rain
// washes it off and no-till leaves no incorporation pass.
var surfaceMethods = map[string]bool{
	MethodBroadcast: true,
	MethodFoliar:    true,
}

// tillageYieldFactor scores method compatibility with the tillage system.
// No-till penalizes surface application (volatilization losses without an
// incorporation pass) and favors placement methods.
var tillageYieldFactor = map[string]map[string]float64{
	"no_till": {
		MethodBroadcast: 0.80,
		MethodBanded:    1.05,
		MethodSideDress: 1.10,
	},
	"reduced": {
		MethodBroadcast: 0.90,
		MethodSideDress: 1.05,
	},
	"conventional": {},
}

const (
	rainPenaltyThresholdMm = 10.0
	windPenaltyKph         = 20.0
)

// Apply returns a copy of the candidate with the field's adjustments folded
// into its objective scores. The input is never modified.
func (a Adjustments) Apply(c optimizer.Candidate) optimizer.Candidate {
	out := c

	if factors, ok := tillageYieldFactor[a.TillageSystem]; ok {
		if f, ok := factors[c.ID]; ok {
			out.Objectives.Yield *= f
		}
	}

	if a.RainForecastMm >= rainPenaltyThresholdMm && surfaceMethods[c.ID] {
		// Runoff risk: surface-applied nutrients wash away
		out.Objectives.Environmental *= 0.70
		out.Objectives.Nutrient *= 0.75
	}
	if a.WindSpeedKph >= windPenaltyKph && c.ID == MethodFoliar {
		// Spray drift
		out.Objectives.Environmental *= 0.60
		out.Objectives.Yield *= 0.85
	}

	if len(a.OwnedEquipment) > 0 {
		if ownsAll(a.OwnedEquipment, c.Attributes.RequiredEquipment) {
			out.Objectives.Labor *= 1.10
		} else {
			// Rental or custom application adds logistics
			out.Objectives.Labor *= 0.85
		}
	}

	return out
}

// ApplyAll adjusts every candidate in the catalog order.
func (a Adjustments) ApplyAll(candidates []optimizer.Candidate) []optimizer.Candidate {
	out := make([]optimizer.Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = a.Apply(c)
	}
	return out
}

func ownsAll(owned, required []string) bool {
	for _, req := range required {
		found := false
		for _, o := range owned {
			if strings.EqualFold(o, req) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
