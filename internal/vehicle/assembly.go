// Package vehicle assembles chassis, suspensions, wheels, driveline,
// powertrain and brakes into a steerable rear-wheel-drive vehicle on top of
// the physics arena.
package vehicle

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/groundsim/vehicle/internal/driveline"
	"github.com/groundsim/vehicle/internal/physics"
	"github.com/groundsim/vehicle/internal/powertrain"
	"github.com/groundsim/vehicle/internal/suspension"
	"github.com/groundsim/vehicle/internal/vehiclecore"
)

// steeringGain converts the normalized steering input into a lateral
// tie-rod displacement in meters.
const steeringGain = 0.08

// Variant names a suspension template.
type Variant string

const (
	VariantDoubleWishboneReduced Variant = "double_wishbone_reduced"
	VariantSolidAxle             Variant = "solid_axle"
)

// ChassisParams holds the chassis body's mass properties.
type ChassisParams struct {
	Mass    float64
	Inertia mgl64.Vec3

	// when set the chassis is welded to ground, for bench setups
	Fixed bool
}

// Config gathers every parameter set a concrete vehicle model supplies.
type Config struct {
	Name string

	Chassis ChassisParams

	FrontVariant    Variant
	RearVariant     Variant
	FrontSuspension suspension.Params
	RearSuspension  suspension.Params

	// chassis-relative axle mounting locations
	FrontLocation mgl64.Vec3
	RearLocation  mgl64.Vec3

	FrontWheel WheelParams
	RearWheel  WheelParams

	Driveline  driveline.Params
	Powertrain powertrain.Params
	Brake      BrakeParams
}

// Pose is a position and orientation pair.
type Pose struct {
	Pos mgl64.Vec3
	Rot mgl64.Quat
}

// wheelStation resolves a WheelID to its owning suspension and side once at
// initialization, so every accessor is a single indexed lookup.
type wheelStation struct {
	susp suspension.Suspension
	side suspension.Side
}

// Assembly is the full vehicle. All bodies, shafts and joints are created
// during Initialize and live for the life of the assembly.
type Assembly struct {
	cfg Config
	sys *physics.System
	log *slog.Logger

	chassis physics.BodyID

	front suspension.Suspension
	rear  suspension.Suspension

	wheels [vehiclecore.NumWheels]*Wheel
	brakes [vehiclecore.NumWheels]*Brake

	driveline  *driveline.Driveline2WD
	powertrain *powertrain.Simple

	stations [vehiclecore.NumWheels]wheelStation

	initialized bool
}

// New creates the assembly. Nothing is registered with the system until
// Initialize runs.
func New(sys *physics.System, cfg Config, log *slog.Logger) (*Assembly, error) {
	if sys == nil {
		return nil, fmt.Errorf("vehicle %q: physics system is nil", cfg.Name)
	}
	if log == nil {
		log = slog.Default()
	}
	pt, err := powertrain.New(cfg.Powertrain)
	if err != nil {
		return nil, fmt.Errorf("vehicle %q: %w", cfg.Name, err)
	}
	return &Assembly{
		cfg:        cfg,
		sys:        sys,
		log:        log,
		chassis:    physics.InvalidBody,
		powertrain: pt,
	}, nil
}

func (a *Assembly) newSuspension(variant Variant, params suspension.Params) (suspension.Suspension, error) {
	switch variant {
	case VariantDoubleWishboneReduced:
		return suspension.NewDoubleWishboneReduced(a.sys, params)
	case VariantSolidAxle:
		return suspension.NewSolidAxle(a.sys, params)
	default:
		return nil, fmt.Errorf("vehicle %q: unknown suspension variant %q", a.cfg.Name, variant)
	}
}

// Initialize builds the whole topology at the given chassis pose. The stages
// run strictly in order: chassis, suspensions, wheels, driveline,
// powertrain, brakes. Each stage consumes handles created by the previous
// one, and any failure aborts construction.
func (a *Assembly) Initialize(pose Pose) error {
	if a.initialized {
		return fmt.Errorf("vehicle %q: already initialized", a.cfg.Name)
	}

	chassis := physics.NewBody(a.cfg.Name+"_chassis", a.cfg.Chassis.Mass, a.cfg.Chassis.Inertia)
	chassis.Pos = pose.Pos
	chassis.Rot = pose.Rot
	chassis.Fixed = a.cfg.Chassis.Fixed
	a.chassis = a.sys.AddBody(chassis)

	var err error
	if a.front, err = a.newSuspension(a.cfg.FrontVariant, a.cfg.FrontSuspension); err != nil {
		return err
	}
	if a.rear, err = a.newSuspension(a.cfg.RearVariant, a.cfg.RearSuspension); err != nil {
		return err
	}
	if err = a.front.Initialize(a.chassis, a.cfg.FrontLocation); err != nil {
		return fmt.Errorf("vehicle %q: front: %w", a.cfg.Name, err)
	}
	if err = a.rear.Initialize(a.chassis, a.cfg.RearLocation); err != nil {
		return fmt.Errorf("vehicle %q: rear: %w", a.cfg.Name, err)
	}

	a.stations = [vehiclecore.NumWheels]wheelStation{
		vehiclecore.FrontLeft:  {a.front, suspension.Left},
		vehiclecore.FrontRight: {a.front, suspension.Right},
		vehiclecore.RearLeft:   {a.rear, suspension.Left},
		vehiclecore.RearRight:  {a.rear, suspension.Right},
	}

	for id := vehiclecore.FrontLeft; id < vehiclecore.NumWheels; id++ {
		params := a.cfg.FrontWheel
		if id.Axle() == 1 {
			params = a.cfg.RearWheel
		}
		a.wheels[id] = NewWheel(params)
		st := a.stations[id]
		if err = a.wheels[id].Initialize(a.sys, st.susp.Spindle(st.side)); err != nil {
			return fmt.Errorf("vehicle %q: wheel %s: %w", a.cfg.Name, id, err)
		}
	}

	a.driveline = driveline.New(a.sys, a.cfg.Driveline)
	if err = a.driveline.Initialize(a.chassis, a.rear.Axle(suspension.Left), a.rear.Axle(suspension.Right)); err != nil {
		return fmt.Errorf("vehicle %q: %w", a.cfg.Name, err)
	}

	for id := vehiclecore.FrontLeft; id < vehiclecore.NumWheels; id++ {
		a.brakes[id] = NewBrake(a.cfg.Brake)
		st := a.stations[id]
		if err = a.brakes[id].Initialize(st.susp.Revolute(st.side)); err != nil {
			return fmt.Errorf("vehicle %q: brake %s: %w", a.cfg.Name, id, err)
		}
	}

	a.initialized = true
	a.log.Info("vehicle initialized",
		"vehicle", a.cfg.Name,
		"bodies", a.sys.NumBodies(),
		"shafts", a.sys.NumShafts(),
		"joints", a.sys.NumJoints(),
	)
	return nil
}

// Update feeds one step of driver inputs and tire forces into the vehicle.
// It must run before the physics system advances the timestep, and all four
// tire forces must correspond to the same instant. Until Initialize has run
// there is no topology to drive, so Update logs and returns.
func (a *Assembly) Update(time, throttle, steering, braking float64, tireForces [vehiclecore.NumWheels]suspension.TireForce) {
	if !a.initialized {
		a.log.Error("vehicle update before initialization", "vehicle", a.cfg.Name)
		return
	}

	a.front.ApplySteering(steeringGain * steering)

	a.powertrain.Update(time, throttle, a.driveline.DriveshaftSpeed())
	a.driveline.ApplyDriveshaftTorque(a.powertrain.ShaftTorque())

	for id := vehiclecore.FrontLeft; id < vehiclecore.NumWheels; id++ {
		st := a.stations[id]
		st.susp.ApplyTireForce(st.side, tireForces[id])
	}

	for _, b := range a.brakes {
		b.ApplyBrakeModulation(braking)
	}
}

// SetDriveMode forwards the drive mode to the powertrain.
func (a *Assembly) SetDriveMode(mode powertrain.DriveMode) {
	a.powertrain.SetDriveMode(mode)
}

// station resolves a WheelID, falling back to the front-right station for an
// out-of-range id. Scalar accessors guard with Valid first.
func (a *Assembly) station(id vehiclecore.WheelID) wheelStation {
	if !id.Valid() {
		return a.stations[vehiclecore.FrontRight]
	}
	return a.stations[id]
}

// Chassis returns the chassis body handle.
func (a *Assembly) Chassis() physics.BodyID { return a.chassis }

// ChassisPos returns the current chassis position.
func (a *Assembly) ChassisPos() mgl64.Vec3 {
	if !a.initialized {
		return mgl64.Vec3{}
	}
	return a.sys.Body(a.chassis).Pos
}

// ChassisRot returns the current chassis orientation.
func (a *Assembly) ChassisRot() mgl64.Quat {
	if !a.initialized {
		return mgl64.QuatIdent()
	}
	return a.sys.Body(a.chassis).Rot
}

// ChassisVel returns the current chassis velocity.
func (a *Assembly) ChassisVel() mgl64.Vec3 {
	if !a.initialized {
		return mgl64.Vec3{}
	}
	return a.sys.Body(a.chassis).LinVel
}

// WheelBody returns the spindle body carrying the given wheel.
func (a *Assembly) WheelBody(id vehiclecore.WheelID) physics.BodyID {
	if !a.initialized {
		return physics.InvalidBody
	}
	st := a.station(id)
	return st.susp.Spindle(st.side)
}

// WheelPos returns the wheel's spindle position.
func (a *Assembly) WheelPos(id vehiclecore.WheelID) mgl64.Vec3 {
	if !a.initialized {
		return mgl64.Vec3{}
	}
	st := a.station(id)
	return st.susp.SpindlePos(st.side)
}

// WheelRot returns the wheel's spindle orientation.
func (a *Assembly) WheelRot(id vehiclecore.WheelID) mgl64.Quat {
	if !a.initialized {
		return mgl64.QuatIdent()
	}
	st := a.station(id)
	return st.susp.SpindleRot(st.side)
}

// WheelLinVel returns the wheel's spindle velocity.
func (a *Assembly) WheelLinVel(id vehiclecore.WheelID) mgl64.Vec3 {
	if !a.initialized {
		return mgl64.Vec3{}
	}
	st := a.station(id)
	return st.susp.SpindleLinVel(st.side)
}

// WheelAngVel returns the wheel's spindle angular velocity.
func (a *Assembly) WheelAngVel(id vehiclecore.WheelID) mgl64.Vec3 {
	if !a.initialized {
		return mgl64.Vec3{}
	}
	st := a.station(id)
	return st.susp.SpindleAngVel(st.side)
}

// WheelOmega returns the wheel's axle spin rate, or -1 for an invalid id or
// an undriven axle.
func (a *Assembly) WheelOmega(id vehiclecore.WheelID) float64 {
	if !a.initialized || !id.Valid() {
		return -1
	}
	st := a.stations[id]
	return st.susp.AxleSpeed(st.side)
}

// WheelTorque returns the driveline torque delivered to the wheel, or -1
// for an invalid id.
func (a *Assembly) WheelTorque(id vehiclecore.WheelID) float64 {
	if !a.initialized || !id.Valid() {
		return -1
	}
	return a.driveline.WheelTorque(id)
}

// SpringForce returns the spring force at the wheel's station, or -1 for an
// invalid id.
func (a *Assembly) SpringForce(id vehiclecore.WheelID) float64 {
	if !a.initialized || !id.Valid() {
		return -1
	}
	st := a.stations[id]
	return st.susp.SpringForce(st.side)
}

// SpringLength returns the spring length at the wheel's station, or -1 for
// an invalid id.
func (a *Assembly) SpringLength(id vehiclecore.WheelID) float64 {
	if !a.initialized || !id.Valid() {
		return -1
	}
	st := a.stations[id]
	return st.susp.SpringLen(st.side)
}

// DriveshaftSpeed returns the current driveshaft speed, or -1 before
// initialization.
func (a *Assembly) DriveshaftSpeed() float64 {
	if !a.initialized {
		return -1
	}
	return a.driveline.DriveshaftSpeed()
}

// MotorSpeed returns the powertrain motor speed from the last Update.
func (a *Assembly) MotorSpeed() float64 { return a.powertrain.MotorSpeed() }

// MotorTorque returns the powertrain motor torque from the last Update.
func (a *Assembly) MotorTorque() float64 { return a.powertrain.MotorTorque() }

// LogHardpointLocations writes both axles' design tables.
func (a *Assembly) LogHardpointLocations(reference mgl64.Vec3, inInches bool) {
	if !a.initialized {
		return
	}
	a.front.LogHardpointLocations(a.log, reference, inInches)
	a.rear.LogHardpointLocations(a.log, reference, inInches)
}

// LogConstraintViolations writes the positional error of every suspension
// joint.
func (a *Assembly) LogConstraintViolations() {
	if !a.initialized {
		return
	}
	for _, s := range []suspension.Side{suspension.Left, suspension.Right} {
		a.front.LogConstraintViolations(a.log, s)
		a.rear.LogConstraintViolations(a.log, s)
	}
}
