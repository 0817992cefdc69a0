package fertilizer

import (
	"github.com/caain/soilhub/internal/croptax"
	"github.com/caain/soilhub/internal/optimizer"
)

// baselineNitrogenKgHa anchors the crop demand scaling: a crop needing this
// much nitrogen pays exactly the catalog's per-hectare rate.
const baselineNitrogenKgHa = 150.0

// CostEstimate is the projected application cost for one method on one field.
type CostEstimate struct {
	PerHectare float64 `json:"per_hectare"`
	Total      float64 `json:"total"`
}

// EstimateCost projects the cost of applying a method to a field. The
// catalog rate is scaled by the crop's nitrogen demand when a crop profile
// is available; a nil crop uses the catalog rate unscaled.
func EstimateCost(cand optimizer.Candidate, areaHa float64, crop *croptax.Crop) CostEstimate {
	perHa := cand.Attributes.CostPerHectare
	if crop != nil && crop.NitrogenKgHa > 0 {
		perHa *= crop.NitrogenKgHa / baselineNitrogenKgHa
	}
	if areaHa < 0 {
		areaHa = 0
	}
	return CostEstimate{
		PerHectare: perHa,
		Total:      perHa * areaHa,
	}
}
