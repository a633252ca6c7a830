package physics

import "github.com/go-gl/mathgl/mgl64"

// GearboxAngled is a transmission-ratio coupling between two non-parallel
// shafts, mounted on a truss body that receives the pitch reaction. With
// ratio t the output shaft turns at t times the input speed; torque scales
// by 1/t.
type GearboxAngled struct {
	name  string
	in    ShaftID
	out   ShaftID
	truss BodyID
	ratio float64

	// coupling directions in truss-local coordinates
	dirIn  mgl64.Vec3
	dirOut mgl64.Vec3

	reactionOnTruss float64
}

// NewGearboxAngled couples shaft in to shaft out through the truss body.
// dirIn and dirOut orient the two shafts in truss-local coordinates.
func NewGearboxAngled(name string, in, out ShaftID, truss BodyID, dirIn, dirOut mgl64.Vec3, ratio float64) *GearboxAngled {
	return &GearboxAngled{
		name:   name,
		in:     in,
		out:    out,
		truss:  truss,
		ratio:  ratio,
		dirIn:  dirIn.Normalize(),
		dirOut: dirOut.Normalize(),
	}
}

func (j *GearboxAngled) Name() string { return j.name }

// Ratio returns the fixed transmission ratio.
func (j *GearboxAngled) Ratio() float64 { return j.ratio }

// TorqueReactionOnTruss returns the pitch torque transferred to the truss
// during the last step.
func (j *GearboxAngled) TorqueReactionOnTruss() float64 { return j.reactionOnTruss }

func (j *GearboxAngled) Violation(*System) float64 { return 0 }

func (j *GearboxAngled) validate(s *System) error {
	if !s.HasShaft(j.in) || !s.HasShaft(j.out) {
		return errUnregisteredShaft
	}
	if !s.HasBody(j.truss) {
		return errUnregisteredBody
	}
	return nil
}

func (j *GearboxAngled) apply(s *System, dt float64) {
	in := s.Shaft(j.in)
	out := s.Shaft(j.out)

	tIn := in.AppliedTorque
	in.AppliedTorque = 0

	tOut := tIn / j.ratio
	out.ApplyTorque(tOut)

	// the torque difference across the gear pair loads the truss
	j.reactionOnTruss = tIn - tOut
	truss := s.Body(j.truss)
	truss.ApplyTorque(truss.Rot.Rotate(j.dirIn).Mul(j.reactionOnTruss))

	// kinematic back-propagation of the output speed
	if j.ratio != 0 {
		in.Speed = out.Speed / j.ratio
	}
}

// Planetary couples a carrier shaft to two output shafts. With the ordinary
// transmission ratio fixed at -1 it is the standard open differential: the
// carrier speed is the output average and carrier torque splits evenly.
type Planetary struct {
	name    string
	carrier ShaftID
	shaft2  ShaftID
	shaft3  ShaftID
	ratio   float64

	reactionOn2 float64
	reactionOn3 float64
}

// NewPlanetary couples the carrier to output shafts 2 and 3 with the given
// ordinary transmission ratio.
func NewPlanetary(name string, carrier, shaft2, shaft3 ShaftID, ordinaryRatio float64) *Planetary {
	return &Planetary{
		name:    name,
		carrier: carrier,
		shaft2:  shaft2,
		shaft3:  shaft3,
		ratio:   ordinaryRatio,
	}
}

func (j *Planetary) Name() string { return j.name }

// OrdinaryRatio returns the Willis ordinary transmission ratio.
func (j *Planetary) OrdinaryRatio() float64 { return j.ratio }

// TorqueReactionOn2 returns the constraint reaction applied to shaft 2
// during the last step.
func (j *Planetary) TorqueReactionOn2() float64 { return j.reactionOn2 }

// TorqueReactionOn3 returns the constraint reaction applied to shaft 3
// during the last step.
func (j *Planetary) TorqueReactionOn3() float64 { return j.reactionOn3 }

func (j *Planetary) Violation(*System) float64 { return 0 }

func (j *Planetary) validate(s *System) error {
	if !s.HasShaft(j.carrier) || !s.HasShaft(j.shaft2) || !s.HasShaft(j.shaft3) {
		return errUnregisteredShaft
	}
	return nil
}

func (j *Planetary) apply(s *System, dt float64) {
	carrier := s.Shaft(j.carrier)
	s2 := s.Shaft(j.shaft2)
	s3 := s.Shaft(j.shaft3)

	tc := carrier.AppliedTorque
	carrier.AppliedTorque = 0

	half := tc / 2
	s2.ApplyTorque(half)
	s3.ApplyTorque(half)

	// the reaction the constraint exerts on each output opposes the torque
	// it delivers; the driveline negates these to report wheel torque
	j.reactionOn2 = -half
	j.reactionOn3 = -half

	carrier.Speed = (s2.Speed + s3.Speed) / 2
}

// ShaftBodyCoupling ties a shaft's rotation to a body's spin about a fixed
// body-local axis. Driven suspensions use it to expose spindle rotation as
// an axle shaft speed and to feed axle torque back to the spindle. The
// system schedules couplings after the other joints regardless of
// registration order, so torque a shaft constraint deposits on the shaft
// reaches the body within the same step.
type ShaftBodyCoupling struct {
	name  string
	shaft ShaftID
	body  BodyID
	axis  mgl64.Vec3 // body-local
}

// NewShaftBodyCoupling couples the shaft to the body about a body-local axis.
func NewShaftBodyCoupling(name string, shaft ShaftID, body BodyID, axis mgl64.Vec3) *ShaftBodyCoupling {
	return &ShaftBodyCoupling{name: name, shaft: shaft, body: body, axis: axis.Normalize()}
}

func (j *ShaftBodyCoupling) Name() string { return j.name }

func (j *ShaftBodyCoupling) Violation(*System) float64 { return 0 }

func (j *ShaftBodyCoupling) validate(s *System) error {
	if !s.HasShaft(j.shaft) {
		return errUnregisteredShaft
	}
	if !s.HasBody(j.body) {
		return errUnregisteredBody
	}
	return nil
}

func (j *ShaftBodyCoupling) apply(s *System, dt float64) {
	sh := s.Shaft(j.shaft)
	b := s.Body(j.body)

	worldAxis := b.Rot.Rotate(j.axis)

	t := sh.AppliedTorque
	sh.AppliedTorque = 0
	b.ApplyTorque(worldAxis.Mul(t))

	sh.Speed = b.AngVel.Dot(worldAxis)
}
