// Package driveline provides the shaft-based 2WD driveline template: a
// driveshaft coupled through an angled conical gear pair to a differential
// box, which splits torque to the two rear axle shafts through a planetary
// constraint with ordinary ratio -1 (the open differential).
package driveline

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/groundsim/vehicle/internal/physics"
	"github.com/groundsim/vehicle/internal/vehiclecore"
)

// Params holds the driveline's model-specific numbers.
type Params struct {
	DriveshaftInertia      float64
	DifferentialBoxInertia float64

	// fixed ratio of the conical gear pair (final drive)
	ConicalGearRatio float64

	// ordinary transmission ratio of the differential; -1 for an open
	// differential
	DifferentialRatio float64

	// coupling directions in chassis-local coordinates: the driveshaft
	// along the motor block and the output along the axle
	DirMotorBlock mgl64.Vec3
	DirAxle       mgl64.Vec3
}

// Driveline2WD drives the rear axle only.
type Driveline2WD struct {
	params Params
	sys    *physics.System

	driveshaft      physics.ShaftID
	differentialBox physics.ShaftID

	conicalGear  *physics.GearboxAngled
	differential *physics.Planetary
}

// New creates the driveline template from its parameters.
func New(sys *physics.System, params Params) *Driveline2WD {
	return &Driveline2WD{
		params:          params,
		sys:             sys,
		driveshaft:      physics.InvalidShaft,
		differentialBox: physics.InvalidShaft,
	}
}

// Initialize creates the driveshaft and differential box and couples them to
// the chassis and the two rear axle shafts. The chassis and both axles must
// already be registered; anything else is a programmer error and aborts
// construction.
func (d *Driveline2WD) Initialize(chassis physics.BodyID, axleLeft, axleRight physics.ShaftID) error {
	if !d.sys.HasBody(chassis) {
		return fmt.Errorf("driveline: chassis not registered")
	}
	if !d.sys.HasShaft(axleLeft) || !d.sys.HasShaft(axleRight) {
		return fmt.Errorf("driveline: axle shafts not registered")
	}

	d.driveshaft = d.sys.AddShaft(d.params.DriveshaftInertia)
	d.differentialBox = d.sys.AddShaft(d.params.DifferentialBoxInertia)

	d.conicalGear = physics.NewGearboxAngled("driveline_conical_gear",
		d.driveshaft, d.differentialBox, chassis,
		d.params.DirMotorBlock, d.params.DirAxle,
		d.params.ConicalGearRatio)
	if err := d.sys.AddJoint(d.conicalGear); err != nil {
		return err
	}

	d.differential = physics.NewPlanetary("driveline_differential",
		d.differentialBox, axleLeft, axleRight,
		d.params.DifferentialRatio)
	if err := d.sys.AddJoint(d.differential); err != nil {
		return err
	}

	return nil
}

// Driveshaft returns the driveshaft handle, the powertrain's torque input.
func (d *Driveline2WD) Driveshaft() physics.ShaftID { return d.driveshaft }

// DriveshaftSpeed returns the current driveshaft speed.
func (d *Driveline2WD) DriveshaftSpeed() float64 {
	return d.sys.Shaft(d.driveshaft).Speed
}

// ApplyDriveshaftTorque applies the powertrain output torque for this step.
func (d *Driveline2WD) ApplyDriveshaftTorque(t float64) {
	d.sys.Shaft(d.driveshaft).ApplyTorque(t)
}

// WheelTorque returns the torque delivered to the given wheel: zero for the
// undriven front wheels, the negated differential reaction for the rear, and
// -1 for an id outside the four wheels.
func (d *Driveline2WD) WheelTorque(which vehiclecore.WheelID) float64 {
	switch which {
	case vehiclecore.FrontLeft:
		return 0
	case vehiclecore.FrontRight:
		return 0
	case vehiclecore.RearLeft:
		return -d.differential.TorqueReactionOn2()
	case vehiclecore.RearRight:
		return -d.differential.TorqueReactionOn3()
	default:
		return -1 // should not happen
	}
}
