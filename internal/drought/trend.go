package drought

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/caain/soilhub/internal/store"
)

// Trend summarises the soil-moisture trajectory over the recent reading
// window.
type Trend struct {
	// SlopePerDay is the fitted change in volumetric soil moisture per day.
	SlopePerDay float64 `json:"slope_per_day"`
	// DaysToCritical projects when moisture crosses the critical threshold
	// at the current rate. +Inf when moisture is flat or recovering.
	DaysToCritical float64 `json:"days_to_critical"`
	Samples        int     `json:"samples"`
}

// MoistureTrend fits a least-squares line through the reading window and
// projects days until the critical moisture level is reached. Readings are
// expected newest-first, as GetRecentReadings returns them. At least two
// samples are required; fewer yields a flat trend.
func MoistureTrend(readings []*store.DroughtReading, criticalMoisture float64) Trend {
	if len(readings) < 2 {
		return Trend{DaysToCritical: math.Inf(1), Samples: len(readings)}
	}

	oldest := readings[len(readings)-1].CreatedAt
	xs := make([]float64, len(readings))
	ys := make([]float64, len(readings))
	for i, r := range readings {
		// reverse so xs is ascending in time
		j := len(readings) - 1 - i
		xs[j] = r.CreatedAt.Sub(oldest).Hours() / 24.0
		ys[j] = r.SoilMoisture
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)

	t := Trend{SlopePerDay: slope, DaysToCritical: math.Inf(1), Samples: len(readings)}
	current := readings[0].SoilMoisture
	if slope < 0 && current > criticalMoisture {
		t.DaysToCritical = (criticalMoisture - current) / slope
	}
	if slope < 0 && current <= criticalMoisture {
		t.DaysToCritical = 0
	}
	return t
}
