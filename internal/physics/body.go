package physics

import "github.com/go-gl/mathgl/mgl64"

// Body is a rigid body with a diagonal inertia tensor on body-local axes.
// Force and torque accumulators hold the loads applied for the current step
// only; they are overwritten by each ApplyForce/ApplyTorque cycle and cleared
// after integration.
type Body struct {
	Name string

	Pos    mgl64.Vec3
	Rot    mgl64.Quat
	LinVel mgl64.Vec3
	AngVel mgl64.Vec3

	Mass    float64
	Inertia mgl64.Vec3
	Fixed   bool

	force  mgl64.Vec3
	torque mgl64.Vec3
}

// NewBody returns a body at the origin with identity orientation.
func NewBody(name string, mass float64, inertia mgl64.Vec3) Body {
	return Body{
		Name:    name,
		Rot:     mgl64.QuatIdent(),
		Mass:    mass,
		Inertia: inertia,
	}
}

// ClearForces empties the force and torque accumulators. The vehicle layer
// calls this before re-applying externally computed loads each step.
func (b *Body) ClearForces() {
	b.clearAccumulators()
}

// ApplyForce accumulates a world-frame force acting at the world-frame point.
func (b *Body) ApplyForce(f, point mgl64.Vec3) {
	b.force = b.force.Add(f)
	arm := point.Sub(b.Pos)
	b.torque = b.torque.Add(arm.Cross(f))
}

// ApplyTorque accumulates a world-frame torque.
func (b *Body) ApplyTorque(t mgl64.Vec3) {
	b.torque = b.torque.Add(t)
}

// AccumulatedForce returns the force applied so far this step.
func (b *Body) AccumulatedForce() mgl64.Vec3 { return b.force }

// AccumulatedTorque returns the torque applied so far this step.
func (b *Body) AccumulatedTorque() mgl64.Vec3 { return b.torque }

func (b *Body) integrate(dt float64) {
	if b.Fixed || b.Mass <= 0 {
		return
	}

	b.LinVel = b.LinVel.Add(b.force.Mul(dt / b.Mass))
	b.Pos = b.Pos.Add(b.LinVel.Mul(dt))

	// torque is resolved on the body-local axes against the diagonal inertia
	localT := b.Rot.Inverse().Rotate(b.torque)
	var localW mgl64.Vec3
	for i := 0; i < 3; i++ {
		if b.Inertia[i] > 0 {
			localW[i] = localT[i] / b.Inertia[i] * dt
		}
	}
	b.AngVel = b.AngVel.Add(b.Rot.Rotate(localW))

	w := b.AngVel.Mul(dt)
	if angle := w.Len(); angle > 1e-12 {
		dq := mgl64.QuatRotate(angle, w.Mul(1/angle))
		b.Rot = dq.Mul(b.Rot).Normalize()
	}
}

func (b *Body) clearAccumulators() {
	b.force = mgl64.Vec3{}
	b.torque = mgl64.Vec3{}
}

// Shaft is a single rotational degree of freedom with scalar inertia. It
// models driveshafts, differential carriers and axle shafts.
type Shaft struct {
	Angle         float64
	Speed         float64
	Inertia       float64
	AppliedTorque float64
}

// ApplyTorque accumulates torque on the shaft for the current step.
func (sh *Shaft) ApplyTorque(t float64) {
	sh.AppliedTorque += t
}

func (sh *Shaft) integrate(dt float64) {
	if sh.Inertia > 0 {
		sh.Speed += sh.AppliedTorque / sh.Inertia * dt
	}
	sh.Angle += sh.Speed * dt
}
