package drought

import "github.com/caain/soilhub/internal/store"

// SeverityInput bundles the observations needed to score one monitor tick.
type SeverityInput struct {
	SoilMoisture      float64 // volumetric, 0.0-1.0
	MoistureThreshold float64 // config: below this the field is stressed
	PrecipitationMm   float64 // forecast total over the outlook window
	ExpectedMm        float64 // seasonal norm for the same window
	DroughtCategory   int     // NOAA D0-D4, -1 = none
}

// Severity computes the drought severity score in [0,1] as a weighted sum of
// soil-moisture deficit, precipitation deficit and the NOAA drought index.
//
//	score = moistureDeficit*0.40 + precipDeficit*0.35 + noaa*0.25
func Severity(in SeverityInput) float64 {
	moistureDeficit := 0.0
	if in.MoistureThreshold > 0 && in.SoilMoisture < in.MoistureThreshold {
		moistureDeficit = (in.MoistureThreshold - in.SoilMoisture) / in.MoistureThreshold
	}

	precipDeficit := 0.0
	if in.ExpectedMm > 0 && in.PrecipitationMm < in.ExpectedMm {
		precipDeficit = (in.ExpectedMm - in.PrecipitationMm) / in.ExpectedMm
	}

	noaa := 0.0
	if in.DroughtCategory >= 0 {
		cat := in.DroughtCategory
		if cat > 4 {
			cat = 4
		}
		noaa = float64(cat+1) / 5.0
	}

	score := moistureDeficit*0.40 + precipDeficit*0.35 + noaa*0.25
	return clamp(score, 0.0, 1.0)
}

// Level maps a severity score onto an alert level.
// Maps to: 0.4-0.6=watch, 0.6-0.8=warning, 0.8-1.0=emergency.
func Level(score float64) (store.AlertLevel, bool) {
	switch {
	case score >= 0.8:
		return store.AlertEmergency, true
	case score >= 0.6:
		return store.AlertWarning, true
	case score >= 0.4:
		return store.AlertWatch, true
	default:
		return "", false
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
