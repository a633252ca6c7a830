package suspension

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/groundsim/vehicle/internal/physics"
)

// Point names used by the solid-axle template.
const (
	SASpindle       = "spindle"
	SAAxleOuter     = "axle_outer"
	SAAxleCM        = "axle_cm"
	SAKnuckleLower  = "knuckle_l"
	SAKnuckleUpper  = "knuckle_u"
	SAKnuckleCM     = "knuckle_cm"
	SAUpperLinkAxle = "ul_a"
	SAUpperLinkCh   = "ul_c"
	SAUpperLinkCM   = "ul_cm"
	SALowerLinkAxle = "ll_a"
	SALowerLinkCh   = "ll_c"
	SALowerLinkCM   = "ll_cm"
	SASpringAxle    = "spring_a"
	SASpringCh      = "spring_c"
	SAShockAxle     = "shock_a"
	SAShockCh       = "shock_c"
	SATierodChassis = "tierod_c"
	SATierodKnuckle = "tierod_k"
)

var saPointOrder = []string{
	SASpindle, SAAxleOuter, SAAxleCM,
	SAKnuckleLower, SAKnuckleUpper, SAKnuckleCM,
	SAUpperLinkAxle, SAUpperLinkCh, SAUpperLinkCM,
	SALowerLinkAxle, SALowerLinkCh, SALowerLinkCM,
	SASpringAxle, SASpringCh, SAShockAxle, SAShockCh,
	SATierodChassis, SATierodKnuckle,
}

// SolidAxle models a live-axle suspension: one axle tube spanning both
// sides, located by upper and lower trailing links, with a kingpin-mounted
// knuckle and spindle per side. One instance builds both sides; the axle
// tube is shared.
type SolidAxle struct {
	base

	axleTube physics.BodyID

	// damper elements, separate from the coil springs
	shocks [2]*physics.SpringDamper
}

var _ Suspension = (*SolidAxle)(nil)

// NewSolidAxle creates the template from its parameters.
func NewSolidAxle(sys *physics.System, params Params) (*SolidAxle, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if params.AxleTubeMass <= 0 {
		return nil, fmt.Errorf("suspension %q: axle tube mass must be positive", params.Name)
	}
	return &SolidAxle{base: base{params: params, sys: sys}}, nil
}

// Initialize creates the shared axle tube, then the per-side linkage,
// mirrored from the right-side table and offset by location.
func (sa *SolidAxle) Initialize(chassis physics.BodyID, location mgl64.Vec3) error {
	if !sa.sys.HasBody(chassis) {
		return fmt.Errorf("suspension %q: chassis not registered", sa.params.Name)
	}
	sa.chassis = chassis
	sa.location = location

	chassisBody := sa.sys.Body(chassis)
	axleCM, err := sa.params.Hardpoints.require(SAAxleCM)
	if err != nil {
		return fmt.Errorf("suspension %q: %w", sa.params.Name, err)
	}

	// the tube's CM sits on the centerline: zero the lateral coordinate
	tube := physics.NewBody(sa.params.Name+"_axle_tube", sa.params.AxleTubeMass, sa.params.AxleTubeInertia)
	local := mgl64.Vec3{axleCM.X(), 0, axleCM.Z()}.Add(location)
	tube.Pos = chassisBody.Rot.Rotate(local).Add(chassisBody.Pos)
	tube.Rot = chassisBody.Rot
	sa.axleTube = sa.sys.AddBody(tube)

	if err := sa.initializeSide(Right, sa.params.Hardpoints); err != nil {
		return err
	}
	if err := sa.initializeSide(Left, sa.params.Hardpoints.Mirrored()); err != nil {
		return err
	}
	return nil
}

func (sa *SolidAxle) initializeSide(side Side, points Hardpoints) error {
	sys := sa.sys
	chassisBody := sys.Body(sa.chassis)
	name := func(joint string) string {
		return fmt.Sprintf("%s_%s_%s", sa.params.Name, joint, side)
	}

	world := make(map[string]mgl64.Vec3, len(saPointOrder))
	for _, pn := range saPointOrder {
		p, err := points.require(pn)
		if err != nil {
			return fmt.Errorf("suspension %q (%s): %w", sa.params.Name, side, err)
		}
		local := p.Add(sa.location)
		world[pn] = chassisBody.Rot.Rotate(local).Add(chassisBody.Pos)
	}

	sd := &sa.sides[side]

	add := func(j physics.Joint) error {
		if err := sys.AddJoint(j); err != nil {
			return err
		}
		sd.joints = append(sd.joints, j)
		return nil
	}

	knuckle := physics.NewBody(name("knuckle"), sa.params.KnuckleMass, sa.params.KnuckleInertia)
	knuckle.Pos = world[SAKnuckleCM]
	knuckle.Rot = chassisBody.Rot
	knuckleID := sys.AddBody(knuckle)

	upperLink := physics.NewBody(name("upper_link"), sa.params.UpperMass, sa.params.UpperInertia)
	upperLink.Pos = world[SAUpperLinkCM]
	upperLink.Rot = chassisBody.Rot
	upperLinkID := sys.AddBody(upperLink)

	lowerLink := physics.NewBody(name("lower_link"), sa.params.LowerMass, sa.params.LowerInertia)
	lowerLink.Pos = world[SALowerLinkCM]
	lowerLink.Rot = chassisBody.Rot
	lowerLinkID := sys.AddBody(lowerLink)

	spindle := physics.NewBody(name("spindle"), sa.params.SpindleMass, sa.params.SpindleInertia)
	spindle.Pos = world[SASpindle]
	spindle.Rot = chassisBody.Rot
	sd.spindle = sys.AddBody(spindle)

	// locating links: spherical at the axle end, spherical at the chassis
	links := []struct {
		joint    string
		body     physics.BodyID
		axleP    string
		chassisP string
	}{
		{"upper_link", upperLinkID, SAUpperLinkAxle, SAUpperLinkCh},
		{"lower_link", lowerLinkID, SALowerLinkAxle, SALowerLinkCh},
	}
	for _, lk := range links {
		jAxle := physics.NewSpherical(sys, name("spherical_"+lk.joint+"_axle"), sa.axleTube, lk.body, world[lk.axleP])
		if err := add(jAxle); err != nil {
			return err
		}
		jCh := physics.NewSpherical(sys, name("spherical_"+lk.joint+"_chassis"), sa.chassis, lk.body, world[lk.chassisP])
		if err := add(jCh); err != nil {
			return err
		}
	}

	// kingpin between knuckle and axle tube
	kingpinPoint := world[SAKnuckleUpper].Add(world[SAKnuckleLower]).Mul(0.5)
	kingpinAxis := world[SAKnuckleUpper].Sub(world[SAKnuckleLower])
	kingpin := physics.NewRevolute(sys, name("revolute_kingpin"), knuckleID, sa.axleTube, kingpinPoint, kingpinAxis)
	if err := add(kingpin); err != nil {
		return err
	}

	lateral := chassisBody.Rot.Rotate(mgl64.Vec3{0, 1, 0})
	sd.revolute = physics.NewRevolute(sys, name("revolute"), sd.spindle, knuckleID, world[SASpindle], lateral)
	if err := add(sd.revolute); err != nil {
		return err
	}

	sd.distTierod = physics.NewDistance(sys, name("dist_tierod"), sa.chassis, knuckleID, world[SATierodChassis], world[SATierodKnuckle])
	if err := add(sd.distTierod); err != nil {
		return err
	}
	sd.tierodMarker = sd.distTierod.Endpoint1Local()

	sd.spring = physics.NewSpringDamper(sys, name("spring"), sa.chassis, sa.axleTube,
		world[SASpringCh], world[SASpringAxle],
		sa.params.SpringCoefficient, 0, sa.params.SpringRestLength)
	if err := add(sd.spring); err != nil {
		return err
	}

	shock := physics.NewSpringDamper(sys, name("shock"), sa.chassis, sa.axleTube,
		world[SAShockCh], world[SAShockAxle],
		0, sa.params.DampingCoefficient, world[SAShockCh].Sub(world[SAShockAxle]).Len())
	if err := add(shock); err != nil {
		return err
	}
	sa.shocks[side] = shock

	sd.axle = physics.InvalidShaft
	if sa.params.Driven {
		sd.axle = sys.AddShaft(sa.params.AxleInertia)
		coupling := physics.NewShaftBodyCoupling(name("axle_to_spindle"), sd.axle, sd.spindle, mgl64.Vec3{0, 1, 0})
		if err := add(coupling); err != nil {
			return err
		}
	}

	return nil
}

// AxleTube returns the shared axle tube body.
func (sa *SolidAxle) AxleTube() physics.BodyID { return sa.axleTube }

// LogHardpointLocations writes the right-side table relative to reference.
func (sa *SolidAxle) LogHardpointLocations(log *slog.Logger, reference mgl64.Vec3, inInches bool) {
	sa.logHardpoints(log, saPointOrder, reference, inInches)
}
