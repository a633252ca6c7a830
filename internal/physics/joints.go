package physics

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Joint connects two bodies, or bodies and shafts, with a fixed DOF pattern.
// Joints are registered once and evaluated every step; reactions are readable
// between steps.
type Joint interface {
	Name() string

	// Violation returns the positional constraint error in meters. Force
	// elements and shaft couplings report 0.
	Violation(s *System) float64

	validate(s *System) error
	apply(s *System, dt float64)
}

var errUnregisteredBody = errors.New("body not registered with system")
var errUnregisteredShaft = errors.New("shaft not registered with system")

// anchor is a body-local attachment point, fixed at joint creation.
type anchor struct {
	body  BodyID
	local mgl64.Vec3
}

func newAnchor(s *System, id BodyID, world mgl64.Vec3) anchor {
	b := s.Body(id)
	return anchor{body: id, local: b.Rot.Inverse().Rotate(world.Sub(b.Pos))}
}

func (a anchor) world(s *System) mgl64.Vec3 {
	return localToParent(s.Body(a.body), a.local)
}

// RevoluteJoint constrains two bodies to rotate about a common axis. It also
// carries the brake torque slot the brake subsystem modulates.
type RevoluteJoint struct {
	name string
	a1   anchor
	a2   anchor
	axis mgl64.Vec3

	brakeTorque float64
}

// NewRevolute creates a revolute joint between two bodies at a world-frame
// point with a world-frame axis.
func NewRevolute(s *System, name string, b1, b2 BodyID, point, axis mgl64.Vec3) *RevoluteJoint {
	return &RevoluteJoint{
		name: name,
		a1:   newAnchor(s, b1, point),
		a2:   newAnchor(s, b2, point),
		axis: axis.Normalize(),
	}
}

func (j *RevoluteJoint) Name() string { return j.name }

// SetBrakeTorque sets the resistive torque applied against relative rotation.
func (j *RevoluteJoint) SetBrakeTorque(t float64) { j.brakeTorque = t }

// BrakeTorque returns the currently applied resistive torque.
func (j *RevoluteJoint) BrakeTorque() float64 { return j.brakeTorque }

func (j *RevoluteJoint) Violation(s *System) float64 {
	return j.a1.world(s).Sub(j.a2.world(s)).Len()
}

func (j *RevoluteJoint) validate(s *System) error {
	if !s.HasBody(j.a1.body) || !s.HasBody(j.a2.body) {
		return errUnregisteredBody
	}
	return nil
}

func (j *RevoluteJoint) apply(s *System, dt float64) {
	if j.brakeTorque == 0 {
		return
	}
	b1 := s.Body(j.a1.body)
	b2 := s.Body(j.a2.body)
	rel := b1.AngVel.Sub(b2.AngVel).Dot(j.axis)
	if math.Abs(rel) < 1e-9 {
		return
	}
	t := j.axis.Mul(-math.Copysign(j.brakeTorque, rel))
	b1.ApplyTorque(t)
	b2.ApplyTorque(t.Mul(-1))
}

// SphericalJoint pins two bodies at a point, leaving all rotations free.
type SphericalJoint struct {
	name string
	a1   anchor
	a2   anchor
}

// NewSpherical creates a spherical joint at a world-frame point.
func NewSpherical(s *System, name string, b1, b2 BodyID, point mgl64.Vec3) *SphericalJoint {
	return &SphericalJoint{
		name: name,
		a1:   newAnchor(s, b1, point),
		a2:   newAnchor(s, b2, point),
	}
}

func (j *SphericalJoint) Name() string { return j.name }

func (j *SphericalJoint) Violation(s *System) float64 {
	return j.a1.world(s).Sub(j.a2.world(s)).Len()
}

func (j *SphericalJoint) validate(s *System) error {
	if !s.HasBody(j.a1.body) || !s.HasBody(j.a2.body) {
		return errUnregisteredBody
	}
	return nil
}

func (j *SphericalJoint) apply(*System, float64) {}

// DistanceJoint holds two body-local endpoints a fixed distance apart. The
// steering linkage moves endpoint 1 to actuate the knuckles.
type DistanceJoint struct {
	name string
	a1   anchor
	a2   anchor
	dist float64
}

// NewDistance creates a distance constraint between two world-frame points.
// The imposed distance is the initial separation.
func NewDistance(s *System, name string, b1, b2 BodyID, p1, p2 mgl64.Vec3) *DistanceJoint {
	return &DistanceJoint{
		name: name,
		a1:   newAnchor(s, b1, p1),
		a2:   newAnchor(s, b2, p2),
		dist: p1.Sub(p2).Len(),
	}
}

func (j *DistanceJoint) Name() string { return j.name }

// SetEndpoint1Local replaces the body-local position of endpoint 1. The
// imposed distance is unchanged.
func (j *DistanceJoint) SetEndpoint1Local(p mgl64.Vec3) { j.a1.local = p }

// Endpoint1Local returns the body-local position of endpoint 1.
func (j *DistanceJoint) Endpoint1Local() mgl64.Vec3 { return j.a1.local }

// ImposedDistance returns the fixed endpoint separation.
func (j *DistanceJoint) ImposedDistance() float64 { return j.dist }

// CurrentDistance returns the world-frame endpoint separation.
func (j *DistanceJoint) CurrentDistance(s *System) float64 {
	return j.a1.world(s).Sub(j.a2.world(s)).Len()
}

func (j *DistanceJoint) Violation(s *System) float64 {
	return math.Abs(j.CurrentDistance(s) - j.dist)
}

func (j *DistanceJoint) validate(s *System) error {
	if !s.HasBody(j.a1.body) || !s.HasBody(j.a2.body) {
		return errUnregisteredBody
	}
	return nil
}

func (j *DistanceJoint) apply(*System, float64) {}
