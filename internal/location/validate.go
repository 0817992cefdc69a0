// Package location validates coordinates and field registrations before
// they enter the system.
package location

import (
	"context"
	"fmt"
	"strings"

	"github.com/caain/soilhub/internal/config"
	"github.com/caain/soilhub/internal/croptax"
)

// Check names reported in validation failures.
const (
	CheckLatitude  = "latitude"
	CheckLongitude = "longitude"
	CheckRegion    = "region"
	CheckArea      = "area"
	CheckCrop      = "crop"
)

// Failure is one failed validation check.
type Failure struct {
	Check  string `json:"check"`
	Reason string `json:"reason"`
}

// Result collects the outcome of all checks; Valid is true when Failures is
// empty.
type Result struct {
	Valid    bool      `json:"valid"`
	Failures []Failure `json:"failures,omitempty"`
}

func (r *Result) fail(check, format string, args ...interface{}) {
	r.Failures = append(r.Failures, Failure{Check: check, Reason: fmt.Sprintf(format, args...)})
}

// Coordinates is a candidate location.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Region    string  `json:"region,omitempty"`
}

// FieldRegistration is a candidate field to validate before registration.
type FieldRegistration struct {
	Coordinates
	AreaHa float64 `json:"area_ha"`
	Crop   string  `json:"crop,omitempty"`
}

// Validator checks coordinates and field registrations against the
// configured bounds and the crop taxonomy.
type Validator struct {
	cfg   *config.Config
	crops croptax.Client
}

func NewValidator(cfg *config.Config, crops croptax.Client) *Validator {
	return &Validator{cfg: cfg, crops: crops}
}

// ValidateCoordinates runs the pure coordinate checks.
func (v *Validator) ValidateCoordinates(c Coordinates) Result {
	var r Result
	if c.Latitude < -90 || c.Latitude > 90 {
		r.fail(CheckLatitude, "latitude %.4f outside [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		r.fail(CheckLongitude, "longitude %.4f outside [-180, 180]", c.Longitude)
	}
	if c.Region != "" && !v.regionSupported(c.Region) {
		r.fail(CheckRegion, "region %q not supported", c.Region)
	}
	r.Valid = len(r.Failures) == 0
	return r
}

// ValidateField checks a field registration. The crop check consults the
// taxonomy service; a taxonomy outage skips the check rather than rejecting
// the field.
func (v *Validator) ValidateField(ctx context.Context, f FieldRegistration) Result {
	r := v.ValidateCoordinates(f.Coordinates)

	min, max := v.cfg.Location.MinAreaHa, v.cfg.Location.MaxAreaHa
	if f.AreaHa < min {
		r.fail(CheckArea, "area %.2f ha below minimum %.2f ha", f.AreaHa, min)
	} else if max > 0 && f.AreaHa > max {
		r.fail(CheckArea, "area %.2f ha above maximum %.2f ha", f.AreaHa, max)
	}

	if f.Crop != "" && v.crops != nil {
		supported, err := v.crops.IsSupported(ctx, f.Crop)
		if err == nil && !supported {
			r.fail(CheckCrop, "crop %q not in taxonomy", f.Crop)
		}
	}

	r.Valid = len(r.Failures) == 0
	return r
}

func (v *Validator) regionSupported(region string) bool {
	for _, sup := range v.cfg.Location.Regions {
		if strings.EqualFold(sup, region) {
			return true
		}
	}
	return false
}
