package suspension

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/groundsim/vehicle/internal/physics"
	"github.com/groundsim/vehicle/internal/util"
)

// sideState holds everything a template creates for one side of the axle.
type sideState struct {
	spindle  physics.BodyID
	revolute *physics.RevoluteJoint
	axle     physics.ShaftID

	spring     *physics.SpringDamper
	distTierod *physics.DistanceJoint

	// chassis-local tie-rod anchor at design position; steering shifts a
	// copy of this, never the marker itself
	tierodMarker mgl64.Vec3

	// all joints on this side, for violation logging
	joints []physics.Joint
}

// base carries the state and accessors shared by the axle templates.
type base struct {
	params Params
	sys    *physics.System

	chassis  physics.BodyID
	location mgl64.Vec3
	sides    [2]sideState
}

// side resolves a Side value to its state. An out-of-range side falls back
// to the right side; scalar accessors guard with Valid first.
func (b *base) side(s Side) *sideState {
	if !s.Valid() {
		return &b.sides[Right]
	}
	return &b.sides[s]
}

func (b *base) Spindle(s Side) physics.BodyID {
	return b.side(s).spindle
}

func (b *base) SpindlePos(s Side) mgl64.Vec3 {
	return b.sys.Body(b.side(s).spindle).Pos
}

func (b *base) SpindleRot(s Side) mgl64.Quat {
	return b.sys.Body(b.side(s).spindle).Rot
}

func (b *base) SpindleLinVel(s Side) mgl64.Vec3 {
	return b.sys.Body(b.side(s).spindle).LinVel
}

func (b *base) SpindleAngVel(s Side) mgl64.Vec3 {
	return b.sys.Body(b.side(s).spindle).AngVel
}

func (b *base) Axle(s Side) physics.ShaftID {
	if !s.Valid() {
		return physics.InvalidShaft
	}
	return b.sides[s].axle
}

func (b *base) AxleSpeed(s Side) float64 {
	if !s.Valid() {
		return -1
	}
	if b.sides[s].axle == physics.InvalidShaft {
		return -1
	}
	return b.sys.Shaft(b.sides[s].axle).Speed
}

func (b *base) Revolute(s Side) *physics.RevoluteJoint {
	return b.side(s).revolute
}

func (b *base) SpringForce(s Side) float64 {
	if !s.Valid() {
		return -1
	}
	return b.sides[s].spring.Force()
}

func (b *base) SpringLen(s Side) float64 {
	if !s.Valid() {
		return -1
	}
	return b.sides[s].spring.Length()
}

// ApplyTireForce replaces the spindle's accumulated loads with the supplied
// tire force and moment. Nothing carries over between steps.
func (b *base) ApplyTireForce(s Side, tf TireForce) {
	body := b.sys.Body(b.side(s).spindle)
	body.ClearForces()
	body.ApplyForce(tf.Force, tf.Point)
	body.ApplyTorque(tf.Moment)
}

// ApplySteering shifts the tie-rod chassis anchor of both sides by displ
// along the lateral axis. The shift starts from the immutable design marker,
// so repeated calls with the same displacement are idempotent.
func (b *base) ApplySteering(displ float64) {
	for i := range b.sides {
		sd := &b.sides[i]
		if sd.distTierod == nil {
			continue
		}
		p := sd.tierodMarker
		p[1] += displ
		sd.distTierod.SetEndpoint1Local(p)
	}
}

// logHardpoints writes the right-side table relative to reference using the
// given fixed ordering.
func (b *base) logHardpoints(log *slog.Logger, order []string, reference mgl64.Vec3, inInches bool) {
	for _, name := range order {
		p, ok := b.params.Hardpoints[name]
		if !ok {
			continue
		}
		rel := p.Sub(reference)
		if inInches {
			rel = util.MetersVecToInches(rel)
		}
		log.Info("hardpoint",
			"suspension", b.params.Name,
			"point", name,
			"x", rel.X(), "y", rel.Y(), "z", rel.Z(),
		)
	}
}

// LogConstraintViolations writes the positional error of each joint on the
// given side.
func (b *base) LogConstraintViolations(log *slog.Logger, s Side) {
	for _, j := range b.side(s).joints {
		log.Info("constraint violation",
			"suspension", b.params.Name,
			"side", s.String(),
			"joint", j.Name(),
			"violation", j.Violation(b.sys),
		)
	}
}
