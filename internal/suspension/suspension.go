// Package suspension provides the axle subsystem templates. A template turns
// a table of named right-side hardpoints into a fully constrained linkage for
// both sides of one axle; the left side is always derived by mirroring, never
// by duplicated coordinates.
//
// All hardpoints are expressed in a chassis-relative frame with X pointing
// rearward, Y to the right and Z up.
package suspension

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/groundsim/vehicle/internal/physics"
)

// Side selects the left or right half of an axle.
type Side int

const (
	Left Side = iota
	Right
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Valid reports whether s is one of the two defined sides.
func (s Side) Valid() bool { return s == Left || s == Right }

// Hardpoints maps point names to right-side locations in the suspension
// reference frame.
type Hardpoints map[string]mgl64.Vec3

// Mirrored returns the left-side table: every Y coordinate negated, X and Z
// untouched.
func (hp Hardpoints) Mirrored() Hardpoints {
	out := make(Hardpoints, len(hp))
	for name, p := range hp {
		out[name] = mgl64.Vec3{p.X(), -p.Y(), p.Z()}
	}
	return out
}

// require returns the named point or an error naming the missing point.
// Construction fails fast on an incomplete table.
func (hp Hardpoints) require(name string) (mgl64.Vec3, error) {
	p, ok := hp[name]
	if !ok {
		return mgl64.Vec3{}, fmt.Errorf("hardpoint %q not defined", name)
	}
	return p, nil
}

// Suspension is the contract shared by all axle templates.
type Suspension interface {
	// Initialize creates the linkage bodies and joints for both sides,
	// mirrored from the right-side hardpoints and offset by location
	// (chassis-local).
	Initialize(chassis physics.BodyID, location mgl64.Vec3) error

	// ApplySteering shifts the tie-rod chassis anchor by the scalar linear
	// displacement, changing toe at both knuckles. Calling twice with the
	// same displacement leaves the anchors unchanged.
	ApplySteering(displ float64)

	// ApplyTireForce applies the externally computed tire loads to the
	// side's spindle for the current step.
	ApplyTireForce(side Side, tf TireForce)

	Spindle(side Side) physics.BodyID
	SpindlePos(side Side) mgl64.Vec3
	SpindleRot(side Side) mgl64.Quat
	SpindleLinVel(side Side) mgl64.Vec3
	SpindleAngVel(side Side) mgl64.Vec3

	// Axle returns the side's axle shaft; InvalidShaft on non-driven axles.
	Axle(side Side) physics.ShaftID

	// AxleSpeed returns the side's axle shaft speed, or -1 for an invalid
	// side or a non-driven axle.
	AxleSpeed(side Side) float64

	// Revolute returns the side's spindle revolute joint, the attachment
	// point for a brake.
	Revolute(side Side) *physics.RevoluteJoint

	// SpringForce and SpringLen read the side's spring element; -1 for an
	// invalid side.
	SpringForce(side Side) float64
	SpringLen(side Side) float64

	// LogHardpointLocations writes the right-side hardpoint table relative
	// to the reference point, optionally converted to inches.
	LogHardpointLocations(log *slog.Logger, reference mgl64.Vec3, inInches bool)

	// LogConstraintViolations writes the positional error of each joint on
	// the side.
	LogConstraintViolations(log *slog.Logger, side Side)
}

// TireForce carries one wheel's externally computed loads: a force and a
// moment in the world frame and the point the force acts at. Values apply to
// the current step only and are never accumulated across steps.
type TireForce struct {
	Force  mgl64.Vec3
	Moment mgl64.Vec3
	Point  mgl64.Vec3
}
