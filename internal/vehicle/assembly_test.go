package vehicle

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundsim/vehicle/internal/driveline"
	"github.com/groundsim/vehicle/internal/physics"
	"github.com/groundsim/vehicle/internal/powertrain"
	"github.com/groundsim/vehicle/internal/suspension"
	"github.com/groundsim/vehicle/internal/vehiclecore"
)

func testFrontParams() suspension.Params {
	return suspension.Params{
		Name:           "front_susp",
		Steerable:      true,
		SpindleMass:    1.1,
		UprightMass:    19.5,
		SpindleInertia: mgl64.Vec3{0.0005, 0.0005, 0.0005},
		UprightInertia: mgl64.Vec3{0.17, 0.19, 0.04},

		SpringCoefficient:  167000,
		DampingCoefficient: 22000,
		SpringRestLength:   0.34,

		Hardpoints: suspension.Hardpoints{
			suspension.DWSpindle:       {-0.4, 0.9, -0.9},
			suspension.DWUpright:       {-0.4, 0.8, -0.9},
			suspension.DWUCAFront:      {-0.6, 0.45, -0.6},
			suspension.DWUCABack:       {-0.25, 0.45, -0.6},
			suspension.DWUCAUpright:    {-0.4, 0.75, -0.65},
			suspension.DWLCAFront:      {-0.75, 0.3, -0.95},
			suspension.DWLCABack:       {-0.15, 0.3, -0.95},
			suspension.DWLCAUpright:    {-0.4, 0.8, -1.0},
			suspension.DWShockChassis:  {-0.4, 0.55, -0.35},
			suspension.DWShockUpright:  {-0.4, 0.75, -0.95},
			suspension.DWTierodChassis: {-0.1, 0.4, -0.9},
			suspension.DWTierodUpright: {-0.1, 0.77, -0.9},
		},
	}
}

func testRearParams() suspension.Params {
	return suspension.Params{
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

		Hardpoints: suspension.Hardpoints{
			suspension.SASpindle:       {0.0, 0.9, -0.9},
			suspension.SAAxleOuter:     {0.0, 0.8, -0.9},
			suspension.SAAxleCM:        {0.0, 0.0, -0.9},
			suspension.SAKnuckleLower:  {0.0, 0.79, -0.97},
			suspension.SAKnuckleUpper:  {-0.01, 0.77, -0.77},
			suspension.SAKnuckleCM:     {0.0, 0.78, -0.87},
			suspension.SAUpperLinkAxle: {0.05, 0.38, -0.77},
			suspension.SAUpperLinkCh:   {0.46, 0.36, -0.72},
			suspension.SAUpperLinkCM:   {0.26, 0.37, -0.74},
			suspension.SALowerLinkAxle: {-0.05, 0.56, -1.02},
			suspension.SALowerLinkCh:   {-0.51, 0.51, -0.94},
			suspension.SALowerLinkCM:   {-0.28, 0.54, -0.98},
			suspension.SASpringAxle:    {0.0, 0.71, -0.87},
			suspension.SASpringCh:      {0.0, 0.71, -0.36},
			suspension.SAShockAxle:     {0.05, 0.66, -0.92},
			suspension.SAShockCh:       {0.03, 0.61, -0.36},
			suspension.SATierodChassis: {-0.28, 0.38, -0.89},
			suspension.SATierodKnuckle: {-0.28, 0.74, -0.89},
		},
	}
}

func testConfig() Config {
	wheel := WheelParams{
		Mass:    54.3,
		Inertia: mgl64.Vec3{1.14, 2.01, 1.14},
		Radius:  0.47,
		Width:   0.254,
	}
	return Config{
		Name: "test_truck",

		Chassis: ChassisParams{
			Mass:    3520,
			Inertia: mgl64.Vec3{125.8, 497.4, 531.4},
		},

		FrontVariant:    VariantDoubleWishboneReduced,
		RearVariant:     VariantSolidAxle,
		FrontSuspension: testFrontParams(),
		RearSuspension:  testRearParams(),

		FrontLocation: mgl64.Vec3{-1.69, 0, 0.03},
		RearLocation:  mgl64.Vec3{1.69, 0, 0.03},

		FrontWheel: wheel,
		RearWheel:  wheel,

		Driveline: driveline.Params{
			DriveshaftInertia:      0.5,
			DifferentialBoxInertia: 0.6,
			ConicalGearRatio:       -0.2,
			DifferentialRatio:      -1.0,
			DirMotorBlock:          mgl64.Vec3{1, 0, 0},
			DirAxle:                mgl64.Vec3{0, 1, 0},
		},

		Powertrain: powertrain.Params{
			MaxTorque:        300,
			MaxSpeed:         600,
			ForwardGearRatio: 4.0,
			ReverseGearRatio: -4.0,
		},

		Brake: BrakeParams{MaxTorque: 4000},
	}
}

func testAssembly(t *testing.T) (*physics.System, *Assembly) {
	t.Helper()

	sys := physics.NewSystem()
	a, err := New(sys, testConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, a.Initialize(Pose{Rot: mgl64.QuatIdent()}))
	return sys, a
}

func TestNew_RequiresSystem(t *testing.T) {
	_, err := New(nil, testConfig(), nil)
	assert.Error(t, err)
}

func TestNew_RejectsBadPowertrain(t *testing.T) {
	cfg := testConfig()
	cfg.Powertrain.MaxTorque = 0
	_, err := New(physics.NewSystem(), cfg, nil)
	assert.Error(t, err)
}

func TestAssembly_Initialize(t *testing.T) {
	sys, a := testAssembly(t)

	// chassis, four wishbone bodies, nine solid-axle bodies
	assert.Equal(t, 14, sys.NumBodies())
	// two rear axles, driveshaft, differential box
	assert.Equal(t, 4, sys.NumShafts())

	assert.True(t, sys.HasBody(a.Chassis()))
	assert.Equal(t, mgl64.Vec3{}, a.ChassisPos())

	// wheel mass folded into the spindles
	spindle := sys.Body(a.WheelBody(vehiclecore.FrontRight))
	assert.InDelta(t, 1.1+54.3, spindle.Mass, 1e-9)
}

func TestAssembly_Initialize_Twice(t *testing.T) {
	sys := physics.NewSystem()
	a, err := New(sys, testConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, a.Initialize(Pose{Rot: mgl64.QuatIdent()}))

	err = a.Initialize(Pose{Rot: mgl64.QuatIdent()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestAssembly_Initialize_UnknownVariant(t *testing.T) {
	cfg := testConfig()
	cfg.FrontVariant = Variant("macpherson")

	a, err := New(physics.NewSystem(), cfg, nil)
	require.NoError(t, err)

	err = a.Initialize(Pose{Rot: mgl64.QuatIdent()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "macpherson")
}

func TestAssembly_Update_PowertrainAtRest(t *testing.T) {
	sys, a := testAssembly(t)

	var tireForces [vehiclecore.NumWheels]suspension.TireForce
	a.Update(0, 0.5, 0, 0, tireForces)

	assert.InDelta(t, 0.0, a.MotorSpeed(), 1e-12)
	assert.InDelta(t, 150.0, a.MotorTorque(), 1e-12)

	sys.Step(0.001)

	// 37.5 N m on the driveshaft maps through the -0.2 final drive and the
	// open differential to -93.75 N m at each rear wheel
	assert.InDelta(t, -93.75, a.WheelTorque(vehiclecore.RearLeft), 1e-9)
	assert.InDelta(t, -93.75, a.WheelTorque(vehiclecore.RearRight), 1e-9)
	assert.Zero(t, a.WheelTorque(vehiclecore.FrontLeft))
	assert.Zero(t, a.WheelTorque(vehiclecore.FrontRight))
}

func TestAssembly_Update_ReverseFlipsWheelTorque(t *testing.T) {
	sys, a := testAssembly(t)
	var tireForces [vehiclecore.NumWheels]suspension.TireForce

	a.Update(0, 0.5, 0, 0, tireForces)
	sys.Step(0.001)
	forward := a.WheelTorque(vehiclecore.RearLeft)

	sys2, b := testAssembly(t)
	b.SetDriveMode(powertrain.Reverse)
	b.Update(0, 0.5, 0, 0, tireForces)
	sys2.Step(0.001)

	assert.InDelta(t, -forward, b.WheelTorque(vehiclecore.RearLeft), 1e-9)
}

func TestAssembly_Update_DrivetrainSpinsUp(t *testing.T) {
	sys, a := testAssembly(t)
	var tireForces [vehiclecore.NumWheels]suspension.TireForce

	const dt = 0.001
	var omegaMid float64
	for i := 0; i < 200; i++ {
		a.Update(float64(i)*dt, 1.0, 0, 0, tireForces)
		sys.Step(dt)
		if i == 99 {
			omegaMid = a.WheelOmega(vehiclecore.RearLeft)
		}
	}

	// sustained throttle keeps building wheel spin
	omega := a.WheelOmega(vehiclecore.RearLeft)
	assert.NotZero(t, omega)
	assert.Greater(t, math.Abs(omega), math.Abs(omegaMid))
	assert.InDelta(t, omega, a.WheelOmega(vehiclecore.RearRight), 1e-9)

	// the spin reaches the spindle bodies and propagates back up the shafts
	assert.NotZero(t, a.WheelAngVel(vehiclecore.RearLeft).Y())
	assert.NotZero(t, a.DriveshaftSpeed())

	// the motor sees the shaft speed, so the torque curve has come off peak
	assert.NotZero(t, a.MotorSpeed())
	assert.Less(t, a.MotorTorque(), 300.0)
	assert.Greater(t, a.MotorTorque(), 0.0)
}

func TestAssembly_BeforeInitialize_IsInert(t *testing.T) {
	sys := physics.NewSystem()
	a, err := New(sys, testConfig(), nil)
	require.NoError(t, err)

	var tireForces [vehiclecore.NumWheels]suspension.TireForce
	a.Update(0, 1, 0.5, 0.5, tireForces)
	assert.Zero(t, sys.NumBodies())

	assert.Equal(t, physics.InvalidBody, a.WheelBody(vehiclecore.FrontLeft))
	assert.Equal(t, mgl64.Vec3{}, a.WheelPos(vehiclecore.FrontLeft))
	assert.Equal(t, mgl64.Vec3{}, a.ChassisPos())
	assert.Equal(t, -1.0, a.WheelOmega(vehiclecore.RearLeft))
	assert.Equal(t, -1.0, a.WheelTorque(vehiclecore.RearLeft))
	assert.Equal(t, -1.0, a.SpringForce(vehiclecore.FrontLeft))
	assert.Equal(t, -1.0, a.SpringLength(vehiclecore.FrontLeft))
	assert.Equal(t, -1.0, a.DriveshaftSpeed())

	a.LogHardpointLocations(mgl64.Vec3{}, false)
	a.LogConstraintViolations()
}

func TestAssembly_Update_BrakeModulation(t *testing.T) {
	_, a := testAssembly(t)

	var tireForces [vehiclecore.NumWheels]suspension.TireForce
	a.Update(0, 0, 0, 0.5, tireForces)

	for id := vehiclecore.FrontLeft; id < vehiclecore.NumWheels; id++ {
		st := a.stations[id]
		assert.InDelta(t, 2000.0, st.susp.Revolute(st.side).BrakeTorque(), 1e-12, "wheel %s", id)
	}

	// modulation is not cumulative
	a.Update(0.001, 0, 0, 0.5, tireForces)
	st := a.stations[vehiclecore.FrontLeft]
	assert.InDelta(t, 2000.0, st.susp.Revolute(st.side).BrakeTorque(), 1e-12)
}

func TestAssembly_SteeringGain(t *testing.T) {
	assert.InDelta(t, 0.08, steeringGain, 1e-12)
}

func TestAssembly_WheelAccessors_InvalidID(t *testing.T) {
	_, a := testAssembly(t)

	bad := vehiclecore.WheelID(4)
	assert.Equal(t, -1.0, a.WheelOmega(bad))
	assert.Equal(t, -1.0, a.WheelTorque(bad))
	assert.Equal(t, -1.0, a.SpringForce(bad))
	assert.Equal(t, -1.0, a.SpringLength(bad))

	// body accessors fall back to the front-right station
	assert.Equal(t, a.WheelBody(vehiclecore.FrontRight), a.WheelBody(bad))
	assert.Equal(t, a.WheelPos(vehiclecore.FrontRight), a.WheelPos(bad))

	neg := vehiclecore.WheelID(-1)
	assert.Equal(t, -1.0, a.WheelOmega(neg))
	assert.Equal(t, a.WheelBody(vehiclecore.FrontRight), a.WheelBody(neg))
}

func TestAssembly_WheelOmega_UndrivenFrontAxle(t *testing.T) {
	_, a := testAssembly(t)

	assert.Equal(t, -1.0, a.WheelOmega(vehiclecore.FrontLeft))
	assert.Equal(t, -1.0, a.WheelOmega(vehiclecore.FrontRight))
	assert.Equal(t, 0.0, a.WheelOmega(vehiclecore.RearLeft))
	assert.Equal(t, 0.0, a.WheelOmega(vehiclecore.RearRight))
}

func TestAssembly_SpringReadback(t *testing.T) {
	sys, a := testAssembly(t)

	var tireForces [vehiclecore.NumWheels]suspension.TireForce
	a.Update(0, 0, 0, 0, tireForces)
	sys.Step(0.001)

	for id := vehiclecore.FrontLeft; id < vehiclecore.NumWheels; id++ {
		assert.Greater(t, a.SpringLength(id), 0.0, "wheel %s", id)
	}
}

func TestWheel_Initialize_UnregisteredSpindle(t *testing.T) {
	w := NewWheel(WheelParams{Mass: 10})
	err := w.Initialize(physics.NewSystem(), physics.BodyID(3))
	assert.Error(t, err)
}

func TestBrake_Initialize_NilRevolute(t *testing.T) {
	b := NewBrake(BrakeParams{MaxTorque: 4000})
	assert.Error(t, b.Initialize(nil))
}

func TestBrake_ApplyBrakeModulation(t *testing.T) {
	sys := physics.NewSystem()
	b1 := sys.AddBody(physics.NewBody("a", 1, mgl64.Vec3{1, 1, 1}))
	b2 := sys.AddBody(physics.NewBody("b", 1, mgl64.Vec3{1, 1, 1}))
	rev := physics.NewRevolute(sys, "rev", b1, b2, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})

	brake := NewBrake(BrakeParams{MaxTorque: 4000})
	require.NoError(t, brake.Initialize(rev))

	brake.ApplyBrakeModulation(0.25)
	assert.InDelta(t, 1000.0, brake.BrakeTorque(), 1e-12)
	assert.InDelta(t, 1000.0, rev.BrakeTorque(), 1e-12)

	brake.ApplyBrakeModulation(0)
	assert.Zero(t, brake.BrakeTorque())
	assert.Zero(t, rev.BrakeTorque())
}
