package suspension

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Params supplies every model-specific number a template needs. Templates
// themselves contain no literals; a concrete vehicle model provides one
// Params per axle through the configuration loader.
type Params struct {
	Name      string
	Steerable bool
	Driven    bool

	// body masses [kg]
	SpindleMass  float64
	KnuckleMass  float64
	UprightMass  float64
	AxleTubeMass float64
	UpperMass    float64 // upper link / control arm
	LowerMass    float64 // lower link / control arm

	// diagonal inertias on body-local axes [kg m^2]
	SpindleInertia  mgl64.Vec3
	KnuckleInertia  mgl64.Vec3
	UprightInertia  mgl64.Vec3
	AxleTubeInertia mgl64.Vec3
	UpperInertia    mgl64.Vec3
	LowerInertia    mgl64.Vec3

	// visualization radii [m]
	SpindleRadius  float64
	SpindleWidth   float64
	KnuckleRadius  float64
	AxleTubeRadius float64
	UpperRadius    float64
	LowerRadius    float64

	// axle shaft rotational inertia [kg m^2]
	AxleInertia float64

	// spring element
	SpringCoefficient  float64
	DampingCoefficient float64
	SpringRestLength   float64

	// right-side point table
	Hardpoints Hardpoints
}

// validate checks the fields every template relies on. Variant-specific
// hardpoints are checked by the template during Initialize.
func (p *Params) validate() error {
	if p.SpindleMass <= 0 {
		return fmt.Errorf("suspension %q: spindle mass must be positive", p.Name)
	}
	if p.SpringCoefficient <= 0 {
		return fmt.Errorf("suspension %q: spring coefficient must be positive", p.Name)
	}
	if p.SpringRestLength <= 0 {
		return fmt.Errorf("suspension %q: spring rest length must be positive", p.Name)
	}
	if p.Driven && p.AxleInertia <= 0 {
		return fmt.Errorf("suspension %q: driven axle needs a positive axle inertia", p.Name)
	}
	if len(p.Hardpoints) == 0 {
		return fmt.Errorf("suspension %q: no hardpoints defined", p.Name)
	}
	return nil
}
