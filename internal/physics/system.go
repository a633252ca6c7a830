// Package physics provides the rigid-body collection that a vehicle model is
// assembled into. The System owns every body, shaft and joint by value in
// indexed storage; subsystems hold handles, never ownership. The stepping
// scheme is deliberately simple (semi-implicit Euler on unconstrained DOFs
// plus algebraic torque propagation through the shaft couplings) - this
// package exists to carry the vehicle topology and its per-joint reaction
// read-back, not to be a general constraint solver.
package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyID is a handle into a System's body arena.
type BodyID int

// ShaftID is a handle into a System's shaft arena.
type ShaftID int

// InvalidBody marks an unset body handle.
const InvalidBody BodyID = -1

// InvalidShaft marks an unset shaft handle.
const InvalidShaft ShaftID = -1

// System owns all simulation entities. Entities are created once during
// vehicle construction and live for the life of the system; nothing is
// destroyed or recreated while stepping.
type System struct {
	bodies []Body
	shafts []Shaft
	joints []Joint

	// shaft-body couplings are scheduled after the other joints so they hand
	// off the torque the shaft constraints deposit within the same step
	couplings []*ShaftBodyCoupling

	time float64
}

// NewSystem creates an empty physical system.
func NewSystem() *System {
	return &System{}
}

// Time returns the current simulation time.
func (s *System) Time() float64 { return s.time }

// AddBody registers a new body and returns its handle.
func (s *System) AddBody(b Body) BodyID {
	id := BodyID(len(s.bodies))
	s.bodies = append(s.bodies, b)
	return id
}

// Body returns the body for the given handle. The pointer is only valid
// until the next AddBody call; handles stay valid for the system lifetime.
func (s *System) Body(id BodyID) *Body {
	return &s.bodies[id]
}

// HasBody reports whether the handle refers to a registered body.
func (s *System) HasBody(id BodyID) bool {
	return id >= 0 && int(id) < len(s.bodies)
}

// AddShaft registers a new 1-DOF rotational node and returns its handle.
func (s *System) AddShaft(inertia float64) ShaftID {
	id := ShaftID(len(s.shafts))
	s.shafts = append(s.shafts, Shaft{Inertia: inertia})
	return id
}

// Shaft returns the shaft for the given handle.
func (s *System) Shaft(id ShaftID) *Shaft {
	return &s.shafts[id]
}

// HasShaft reports whether the handle refers to a registered shaft.
func (s *System) HasShaft(id ShaftID) bool {
	return id >= 0 && int(id) < len(s.shafts)
}

// AddJoint registers a joint. The system keeps the reference; callers may
// retain the concrete pointer for read-back but must not free or reuse it.
func (s *System) AddJoint(j Joint) error {
	if err := j.validate(s); err != nil {
		return fmt.Errorf("registering joint: %w", err)
	}
	if c, ok := j.(*ShaftBodyCoupling); ok {
		s.couplings = append(s.couplings, c)
		return nil
	}
	s.joints = append(s.joints, j)
	return nil
}

// NumBodies returns the number of registered bodies.
func (s *System) NumBodies() int { return len(s.bodies) }

// NumShafts returns the number of registered shafts.
func (s *System) NumShafts() int { return len(s.shafts) }

// NumJoints returns the number of registered joints.
func (s *System) NumJoints() int { return len(s.joints) + len(s.couplings) }

// Step advances the system by dt in two joint phases: force elements and
// shaft constraints evaluate first, then the shaft-body couplings, so torque
// deposited on the shaft network this step reaches the coupled bodies before
// integration. Reactions are readable after the call; free DOFs integrate,
// then per-step accumulators are cleared.
func (s *System) Step(dt float64) {
	for _, j := range s.joints {
		j.apply(s, dt)
	}
	for _, c := range s.couplings {
		c.apply(s, dt)
	}

	for i := range s.bodies {
		s.bodies[i].integrate(dt)
	}
	for i := range s.shafts {
		s.shafts[i].integrate(dt)
	}

	for i := range s.bodies {
		s.bodies[i].clearAccumulators()
	}
	for i := range s.shafts {
		s.shafts[i].AppliedTorque = 0
	}

	s.time += dt
}

// localToParent transforms a chassis-local point into the world frame of b.
func localToParent(b *Body, local mgl64.Vec3) mgl64.Vec3 {
	return b.Rot.Rotate(local).Add(b.Pos)
}
