package physics

import "github.com/go-gl/mathgl/mgl64"

// SpringDamper is a translational spring-damper force element between two
// body-frame attachment points. Current force and length are readable for
// diagnostics after every step.
type SpringDamper struct {
	name string
	a1   anchor
	a2   anchor

	K          float64
	C          float64
	RestLength float64

	force  float64
	length float64
}

// NewSpringDamper creates a spring-damper between two world-frame points.
func NewSpringDamper(s *System, name string, b1, b2 BodyID, p1, p2 mgl64.Vec3, k, c, rest float64) *SpringDamper {
	sd := &SpringDamper{
		name:       name,
		a1:         newAnchor(s, b1, p1),
		a2:         newAnchor(s, b2, p2),
		K:          k,
		C:          c,
		RestLength: rest,
	}
	sd.length = p1.Sub(p2).Len()
	return sd
}

func (j *SpringDamper) Name() string { return j.name }

// Force returns the scalar spring force from the last evaluation. Positive
// means the element is in compression (pushing the endpoints apart).
func (j *SpringDamper) Force() float64 { return j.force }

// Length returns the endpoint separation from the last evaluation.
func (j *SpringDamper) Length() float64 { return j.length }

func (j *SpringDamper) Violation(*System) float64 { return 0 }

func (j *SpringDamper) validate(s *System) error {
	if !s.HasBody(j.a1.body) || !s.HasBody(j.a2.body) {
		return errUnregisteredBody
	}
	return nil
}

func (j *SpringDamper) apply(s *System, dt float64) {
	b1 := s.Body(j.a1.body)
	b2 := s.Body(j.a2.body)

	p1 := j.a1.world(s)
	p2 := j.a2.world(s)
	d := p1.Sub(p2)
	j.length = d.Len()
	if j.length < 1e-12 {
		j.force = 0
		return
	}
	dir := d.Mul(1 / j.length)

	v1 := pointVelocity(b1, p1)
	v2 := pointVelocity(b2, p2)
	dlen := v1.Sub(v2).Dot(dir)

	j.force = -j.K*(j.length-j.RestLength) - j.C*dlen

	f := dir.Mul(j.force)
	b1.ApplyForce(f, p1)
	b2.ApplyForce(f.Mul(-1), p2)
}

func pointVelocity(b *Body, world mgl64.Vec3) mgl64.Vec3 {
	return b.LinVel.Add(b.AngVel.Cross(world.Sub(b.Pos)))
}
