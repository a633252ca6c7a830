package suspension

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/groundsim/vehicle/internal/physics"
)

// Point names used by the reduced double-wishbone template. The two control
// arms are collapsed into pairs of distance constraints, so only their
// chassis and upright attachment points appear.
const (
	DWSpindle       = "spindle"
	DWUpright       = "upright"
	DWUCAFront      = "uca_f"
	DWUCABack       = "uca_b"
	DWUCAUpright    = "uca_u"
	DWLCAFront      = "lca_f"
	DWLCABack       = "lca_b"
	DWLCAUpright    = "lca_u"
	DWShockChassis  = "shock_c"
	DWShockUpright  = "shock_u"
	DWTierodChassis = "tierod_c"
	DWTierodUpright = "tierod_u"
)

var dwPointOrder = []string{
	DWSpindle, DWUpright,
	DWUCAFront, DWUCABack, DWUCAUpright,
	DWLCAFront, DWLCABack, DWLCAUpright,
	DWShockChassis, DWShockUpright,
	DWTierodChassis, DWTierodUpright,
}

// DoubleWishboneReduced models an independent double-A-arm axle with the
// arms reduced to distance constraints. One instance builds both sides.
type DoubleWishboneReduced struct {
	base
}

var _ Suspension = (*DoubleWishboneReduced)(nil)

// NewDoubleWishboneReduced creates the template from its parameters.
func NewDoubleWishboneReduced(sys *physics.System, params Params) (*DoubleWishboneReduced, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &DoubleWishboneReduced{base: base{params: params, sys: sys}}, nil
}

// Initialize creates spindle and upright bodies, the five distance
// constraints and the shock for each side, mirrored from the right-side
// table and offset by location.
func (d *DoubleWishboneReduced) Initialize(chassis physics.BodyID, location mgl64.Vec3) error {
	if !d.sys.HasBody(chassis) {
		return fmt.Errorf("suspension %q: chassis not registered", d.params.Name)
	}
	d.chassis = chassis
	d.location = location

	if err := d.initializeSide(Right, d.params.Hardpoints); err != nil {
		return err
	}
	if err := d.initializeSide(Left, d.params.Hardpoints.Mirrored()); err != nil {
		return err
	}
	return nil
}

func (d *DoubleWishboneReduced) initializeSide(side Side, points Hardpoints) error {
	sys := d.sys
	chassisBody := sys.Body(d.chassis)
	name := func(joint string) string {
		return fmt.Sprintf("%s_%s_%s", d.params.Name, joint, side)
	}

	// resolve the points this template consumes; any missing point aborts
	// construction
	world := make(map[string]mgl64.Vec3, len(dwPointOrder))
	for _, pn := range dwPointOrder {
		p, err := points.require(pn)
		if err != nil {
			return fmt.Errorf("suspension %q (%s): %w", d.params.Name, side, err)
		}
		local := p.Add(d.location)
		world[pn] = chassisBody.Rot.Rotate(local).Add(chassisBody.Pos)
	}

	sd := &d.sides[side]

	spindle := physics.NewBody(name("spindle"), d.params.SpindleMass, d.params.SpindleInertia)
	spindle.Pos = world[DWSpindle]
	spindle.Rot = chassisBody.Rot
	sd.spindle = sys.AddBody(spindle)

	upright := physics.NewBody(name("upright"), d.params.UprightMass, d.params.UprightInertia)
	upright.Pos = world[DWUpright]
	upright.Rot = chassisBody.Rot
	uprightID := sys.AddBody(upright)

	add := func(j physics.Joint) error {
		if err := sys.AddJoint(j); err != nil {
			return err
		}
		sd.joints = append(sd.joints, j)
		return nil
	}

	lateral := chassisBody.Rot.Rotate(mgl64.Vec3{0, 1, 0})
	sd.revolute = physics.NewRevolute(sys, name("revolute"), sd.spindle, uprightID, world[DWSpindle], lateral)
	if err := add(sd.revolute); err != nil {
		return err
	}

	dists := []struct {
		joint    string
		chassisP string
		uprightP string
	}{
		{"dist_uca_f", DWUCAFront, DWUCAUpright},
		{"dist_uca_b", DWUCABack, DWUCAUpright},
		{"dist_lca_f", DWLCAFront, DWLCAUpright},
		{"dist_lca_b", DWLCABack, DWLCAUpright},
	}
	for _, dc := range dists {
		j := physics.NewDistance(sys, name(dc.joint), d.chassis, uprightID, world[dc.chassisP], world[dc.uprightP])
		if err := add(j); err != nil {
			return err
		}
	}

	sd.distTierod = physics.NewDistance(sys, name("dist_tierod"), d.chassis, uprightID, world[DWTierodChassis], world[DWTierodUpright])
	if err := add(sd.distTierod); err != nil {
		return err
	}
	sd.tierodMarker = sd.distTierod.Endpoint1Local()

	sd.spring = physics.NewSpringDamper(sys, name("shock"), d.chassis, uprightID,
		world[DWShockChassis], world[DWShockUpright],
		d.params.SpringCoefficient, d.params.DampingCoefficient, d.params.SpringRestLength)
	if err := add(sd.spring); err != nil {
		return err
	}

	sd.axle = physics.InvalidShaft
	if d.params.Driven {
		sd.axle = sys.AddShaft(d.params.AxleInertia)
		coupling := physics.NewShaftBodyCoupling(name("axle_to_spindle"), sd.axle, sd.spindle, mgl64.Vec3{0, 1, 0})
		if err := add(coupling); err != nil {
			return err
		}
	}

	return nil
}

// LogHardpointLocations writes the right-side table relative to reference.
func (d *DoubleWishboneReduced) LogHardpointLocations(log *slog.Logger, reference mgl64.Vec3, inInches bool) {
	d.logHardpoints(log, dwPointOrder, reference, inInches)
}
