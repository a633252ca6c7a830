package suspension

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundsim/vehicle/internal/physics"
)

func dwTestHardpoints() Hardpoints {
	return Hardpoints{
		DWSpindle:       {-0.4, 0.9, -0.9},
		DWUpright:       {-0.4, 0.8, -0.9},
		DWUCAFront:      {-0.6, 0.45, -0.6},
		DWUCABack:       {-0.25, 0.45, -0.6},
		DWUCAUpright:    {-0.4, 0.75, -0.65},
		DWLCAFront:      {-0.75, 0.3, -0.95},
		DWLCABack:       {-0.15, 0.3, -0.95},
		DWLCAUpright:    {-0.4, 0.8, -1.0},
		DWShockChassis:  {-0.4, 0.55, -0.35},
		DWShockUpright:  {-0.4, 0.75, -0.95},
		DWTierodChassis: {-0.1, 0.4, -0.9},
		DWTierodUpright: {-0.1, 0.77, -0.9},
	}
}

func saTestHardpoints() Hardpoints {
	return Hardpoints{
		SASpindle:       {0.0, 0.9, -0.9},
		SAAxleOuter:     {0.0, 0.8, -0.9},
		SAAxleCM:        {0.0, 0.0, -0.9},
		SAKnuckleLower:  {0.0, 0.79, -0.97},
		SAKnuckleUpper:  {-0.01, 0.77, -0.77},
		SAKnuckleCM:     {0.0, 0.78, -0.87},
		SAUpperLinkAxle: {0.05, 0.38, -0.77},
		SAUpperLinkCh:   {0.46, 0.36, -0.72},
		SAUpperLinkCM:   {0.26, 0.37, -0.74},
		SALowerLinkAxle: {-0.05, 0.56, -1.02},
		SALowerLinkCh:   {-0.51, 0.51, -0.94},
		SALowerLinkCM:   {-0.28, 0.54, -0.98},
		SASpringAxle:    {0.0, 0.71, -0.87},
		SASpringCh:      {0.0, 0.71, -0.36},
		SAShockAxle:     {0.05, 0.66, -0.92},
		SAShockCh:       {0.03, 0.61, -0.36},
		SATierodChassis: {-0.28, 0.38, -0.89},
		SATierodKnuckle: {-0.28, 0.74, -0.89},
	}
}

func dwTestParams() Params {
	return Params{
		Name:           "front_susp",
		Steerable:      true,
		SpindleMass:    1.1,
		UprightMass:    19.5,
		SpindleInertia: mgl64.Vec3{0.0005, 0.0005, 0.0005},
		UprightInertia: mgl64.Vec3{0.17, 0.19, 0.04},

		SpringCoefficient:  167000,
		DampingCoefficient: 22000,
		SpringRestLength:   0.34,

		Hardpoints: dwTestHardpoints(),
	}
}

func saTestParams() Params {
	return Params{
		Name:         "rear_susp",
		Driven:       true,
		SpindleMass:  1.1,
		KnuckleMass:  35.8,
		AxleTubeMass: 130.0,
		UpperMass:    12.3,
		LowerMass:    18.2,

		SpindleInertia:  mgl64.Vec3{0.0005, 0.0005, 0.0005},
		KnuckleInertia:  mgl64.Vec3{0.15, 0.22, 0.12},
		AxleTubeInertia: mgl64.Vec3{15.6, 1.9, 15.6},
		UpperInertia:    mgl64.Vec3{0.01, 0.57, 0.57},
		LowerInertia:    mgl64.Vec3{0.02, 0.83, 0.83},

		AxleInertia: 0.4,

		SpringCoefficient:  267000,
		DampingCoefficient: 22000,
		SpringRestLength:   0.5,

		Hardpoints: saTestHardpoints(),
	}
}

func newChassis(sys *physics.System) physics.BodyID {
	b := physics.NewBody("chassis", 2000, mgl64.Vec3{100, 400, 500})
	b.Fixed = true
	return sys.AddBody(b)
}

func TestSide_StringAndValid(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
	assert.True(t, Left.Valid())
	assert.True(t, Right.Valid())
	assert.False(t, Side(2).Valid())
	assert.False(t, Side(-1).Valid())
}

func TestHardpoints_Mirrored(t *testing.T) {
	hp := Hardpoints{"a": {1, 2, 3}, "b": {-4, -5, 6}}
	m := hp.Mirrored()

	assert.Equal(t, mgl64.Vec3{1, -2, 3}, m["a"])
	assert.Equal(t, mgl64.Vec3{-4, 5, 6}, m["b"])
	// the original table is untouched
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, hp["a"])
}

func TestParams_Validate(t *testing.T) {
	p := dwTestParams()
	require.NoError(t, p.validate())

	p.SpindleMass = 0
	assert.Error(t, p.validate())

	p = dwTestParams()
	p.SpringCoefficient = -1
	assert.Error(t, p.validate())

	p = dwTestParams()
	p.Hardpoints = nil
	assert.Error(t, p.validate())

	p = saTestParams()
	p.AxleInertia = 0
	assert.Error(t, p.validate())
}

func TestDoubleWishboneReduced_Initialize(t *testing.T) {
	sys := physics.NewSystem()
	chassis := newChassis(sys)

	susp, err := NewDoubleWishboneReduced(sys, dwTestParams())
	require.NoError(t, err)

	loc := mgl64.Vec3{-1.7, 0, 0.03}
	require.NoError(t, susp.Initialize(chassis, loc))

	// chassis plus spindle and upright per side
	assert.Equal(t, 5, sys.NumBodies())

	wantRight := dwTestHardpoints()[DWSpindle].Add(loc)
	assert.Equal(t, wantRight, susp.SpindlePos(Right))

	left := susp.SpindlePos(Left)
	assert.InDelta(t, wantRight.X(), left.X(), 1e-12)
	assert.InDelta(t, -wantRight.Y(), left.Y(), 1e-12)
	assert.InDelta(t, wantRight.Z(), left.Z(), 1e-12)

	// every joint starts at its design position
	for _, s := range []Side{Left, Right} {
		for _, j := range susp.sides[s].joints {
			assert.InDelta(t, 0.0, j.Violation(sys), 1e-9, "joint %s", j.Name())
		}
	}
}

func TestDoubleWishboneReduced_Initialize_MissingHardpoint(t *testing.T) {
	sys := physics.NewSystem()
	chassis := newChassis(sys)

	params := dwTestParams()
	delete(params.Hardpoints, DWTierodChassis)

	susp, err := NewDoubleWishboneReduced(sys, params)
	require.NoError(t, err)

	err = susp.Initialize(chassis, mgl64.Vec3{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), DWTierodChassis)
}

func TestDoubleWishboneReduced_Initialize_UnregisteredChassis(t *testing.T) {
	sys := physics.NewSystem()
	susp, err := NewDoubleWishboneReduced(sys, dwTestParams())
	require.NoError(t, err)

	assert.Error(t, susp.Initialize(physics.BodyID(3), mgl64.Vec3{}))
}

func TestDoubleWishboneReduced_ApplySteering_Idempotent(t *testing.T) {
	sys := physics.NewSystem()
	chassis := newChassis(sys)

	susp, err := NewDoubleWishboneReduced(sys, dwTestParams())
	require.NoError(t, err)
	require.NoError(t, susp.Initialize(chassis, mgl64.Vec3{}))

	design := susp.sides[Right].tierodMarker

	susp.ApplySteering(0.05)
	first := susp.sides[Right].distTierod.Endpoint1Local()
	assert.InDelta(t, design.Y()+0.05, first.Y(), 1e-12)

	susp.ApplySteering(0.05)
	assert.Equal(t, first, susp.sides[Right].distTierod.Endpoint1Local())

	// both sides shift in the same lateral direction
	leftAnchor := susp.sides[Left].distTierod.Endpoint1Local()
	assert.InDelta(t, susp.sides[Left].tierodMarker.Y()+0.05, leftAnchor.Y(), 1e-12)

	susp.ApplySteering(0)
	assert.Equal(t, design, susp.sides[Right].distTierod.Endpoint1Local())
}

func TestDoubleWishboneReduced_UndrivenAxleSentinels(t *testing.T) {
	sys := physics.NewSystem()
	chassis := newChassis(sys)

	susp, err := NewDoubleWishboneReduced(sys, dwTestParams())
	require.NoError(t, err)
	require.NoError(t, susp.Initialize(chassis, mgl64.Vec3{}))

	assert.Equal(t, physics.InvalidShaft, susp.Axle(Right))
	assert.Equal(t, -1.0, susp.AxleSpeed(Right))
}

func TestBase_InvalidSideFallbacks(t *testing.T) {
	sys := physics.NewSystem()
	chassis := newChassis(sys)

	susp, err := NewDoubleWishboneReduced(sys, dwTestParams())
	require.NoError(t, err)
	require.NoError(t, susp.Initialize(chassis, mgl64.Vec3{}))

	bad := Side(7)
	assert.Equal(t, susp.Spindle(Right), susp.Spindle(bad))
	assert.Equal(t, susp.SpindlePos(Right), susp.SpindlePos(bad))
	assert.Equal(t, -1.0, susp.AxleSpeed(bad))
	assert.Equal(t, -1.0, susp.SpringForce(bad))
	assert.Equal(t, -1.0, susp.SpringLen(bad))
	assert.Equal(t, physics.InvalidShaft, susp.Axle(bad))
}

func TestBase_ApplyTireForce_ReplacesAccumulated(t *testing.T) {
	sys := physics.NewSystem()
	chassis := newChassis(sys)

	susp, err := NewDoubleWishboneReduced(sys, dwTestParams())
	require.NoError(t, err)
	require.NoError(t, susp.Initialize(chassis, mgl64.Vec3{}))

	spindle := sys.Body(susp.Spindle(Right))
	spindle.ApplyForce(mgl64.Vec3{999, 0, 0}, spindle.Pos)

	tf := TireForce{
		Force:  mgl64.Vec3{0, 0, 5000},
		Moment: mgl64.Vec3{0, 120, 0},
		Point:  spindle.Pos,
	}
	susp.ApplyTireForce(Right, tf)

	assert.Equal(t, tf.Force, spindle.AccumulatedForce())
	assert.Equal(t, tf.Moment, spindle.AccumulatedTorque())
}

func TestSolidAxle_Initialize(t *testing.T) {
	sys := physics.NewSystem()
	chassis := newChassis(sys)

	susp, err := NewSolidAxle(sys, saTestParams())
	require.NoError(t, err)

	loc := mgl64.Vec3{1.69, 0, 0.03}
	require.NoError(t, susp.Initialize(chassis, loc))

	// chassis, axle tube, then knuckle, two links and spindle per side
	assert.Equal(t, 10, sys.NumBodies())
	// two driven axle shafts
	assert.Equal(t, 2, sys.NumShafts())

	// the tube's CM sits on the centerline
	tube := sys.Body(susp.AxleTube())
	assert.InDelta(t, 0.0, tube.Pos.Y(), 1e-12)

	assert.NotEqual(t, physics.InvalidShaft, susp.Axle(Left))
	assert.NotEqual(t, physics.InvalidShaft, susp.Axle(Right))
	assert.Equal(t, 0.0, susp.AxleSpeed(Left))

	for _, s := range []Side{Left, Right} {
		for _, j := range susp.sides[s].joints {
			assert.InDelta(t, 0.0, j.Violation(sys), 1e-9, "joint %s", j.Name())
		}
	}
}

func TestSolidAxle_RequiresAxleTubeMass(t *testing.T) {
	params := saTestParams()
	params.AxleTubeMass = 0

	_, err := NewSolidAxle(physics.NewSystem(), params)
	assert.Error(t, err)
}

func TestSolidAxle_SpringReadback(t *testing.T) {
	sys := physics.NewSystem()
	chassis := newChassis(sys)

	susp, err := NewSolidAxle(sys, saTestParams())
	require.NoError(t, err)
	require.NoError(t, susp.Initialize(chassis, mgl64.Vec3{}))

	sys.Step(0.001)

	hp := saTestHardpoints()
	wantLen := hp[SASpringCh].Sub(hp[SASpringAxle]).Len()
	assert.InDelta(t, wantLen, susp.SpringLen(Right), 1e-6)
	// design length differs from rest length, so the coil carries load
	assert.NotZero(t, susp.SpringForce(Right))
}
