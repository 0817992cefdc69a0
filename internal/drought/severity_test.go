package drought

import (
	"testing"

	"github.com/caain/soilhub/internal/store"
)

func TestSeverity(t *testing.T) {
	tests := []struct {
		name string
		in   SeverityInput
		want float64
	}{
		{
			name: "no stress",
			in: SeverityInput{
				SoilMoisture:      0.40,
				MoistureThreshold: 0.30,
				PrecipitationMm:   30,
				ExpectedMm:        25,
				DroughtCategory:   -1,
			},
			want: 0.0,
		},
		{
			name: "bone dry everything",
			in: SeverityInput{
				SoilMoisture:      0.0,
				MoistureThreshold: 0.30,
				PrecipitationMm:   0,
				ExpectedMm:        25,
				DroughtCategory:   4,
			},
			want: 1.0,
		},
		{
			name: "half moisture deficit only",
			in: SeverityInput{
				SoilMoisture:      0.15,
				MoistureThreshold: 0.30,
				DroughtCategory:   -1,
			},
			want: 0.20, // 0.5 deficit * 0.40 weight
		},
		{
			name: "noaa d1 only",
			in: SeverityInput{
				SoilMoisture:      0.40,
				MoistureThreshold: 0.30,
				PrecipitationMm:   30,
				ExpectedMm:        25,
				DroughtCategory:   1,
			},
			want: 0.10, // (1+1)/5 * 0.25
		},
		{
			name: "full precip deficit only",
			in: SeverityInput{
				SoilMoisture:      0.40,
				MoistureThreshold: 0.30,
				PrecipitationMm:   0,
				ExpectedMm:        25,
				DroughtCategory:   -1,
			},
			want: 0.35,
		},
		{
			name: "category above d4 clamps",
			in: SeverityInput{
				SoilMoisture:      0.40,
				MoistureThreshold: 0.30,
				PrecipitationMm:   30,
				ExpectedMm:        25,
				DroughtCategory:   9,
			},
			want: 0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Severity(tt.in)
			if got < tt.want-0.0001 || got > tt.want+0.0001 {
				t.Errorf("Severity() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestSeverityBounds(t *testing.T) {
	inputs := []SeverityInput{
		{},
		{SoilMoisture: -0.5, MoistureThreshold: 0.3, PrecipitationMm: -10, ExpectedMm: 25, DroughtCategory: 4},
		{SoilMoisture: 1.5, MoistureThreshold: 0.3, PrecipitationMm: 500, ExpectedMm: 25, DroughtCategory: -1},
	}
	for _, in := range inputs {
		s := Severity(in)
		if s < 0 || s > 1 {
			t.Errorf("Severity(%+v) = %f out of [0,1]", in, s)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		score   float64
		want    store.AlertLevel
		alerted bool
	}{
		{0.0, "", false},
		{0.39, "", false},
		{0.40, store.AlertWatch, true},
		{0.59, store.AlertWatch, true},
		{0.60, store.AlertWarning, true},
		{0.79, store.AlertWarning, true},
		{0.80, store.AlertEmergency, true},
		{1.0, store.AlertEmergency, true},
	}
	for _, tt := range tests {
		level, ok := Level(tt.score)
		if ok != tt.alerted {
			t.Errorf("Level(%f) ok = %v, want %v", tt.score, ok, tt.alerted)
		}
		if level != tt.want {
			t.Errorf("Level(%f) = %s, want %s", tt.score, level, tt.want)
		}
	}
}
