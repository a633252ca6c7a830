package config

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"

	"github.com/groundsim/vehicle/internal/driveline"
	"github.com/groundsim/vehicle/internal/powertrain"
	"github.com/groundsim/vehicle/internal/suspension"
	"github.com/groundsim/vehicle/internal/util"
	"github.com/groundsim/vehicle/internal/vehicle"
)

// The default vehicle is a 2WD military utility truck: independent reduced
// double wishbones up front, a live axle in the rear. Scalar parameters can
// be overridden from the config file; the hardpoint tables are fixed design
// data, expressed for the right side in inches (X rearward, Y rightward,
// Z up) relative to each axle's mounting location.

func setVehicleDefaults() {
	viper.SetDefault("vehicle.name", "utility_4x2")
	viper.SetDefault("vehicle.fixed", false)

	viper.SetDefault("vehicle.chassis.mass", 7747.0/2.2)
	viper.SetDefault("vehicle.chassis.inertiaRoll", 125.8)
	viper.SetDefault("vehicle.chassis.inertiaPitch", 497.4)
	viper.SetDefault("vehicle.chassis.inertiaYaw", 531.4)

	viper.SetDefault("vehicle.powertrain.maxTorque", 2400.0/8.851)
	viper.SetDefault("vehicle.powertrain.maxSpeed", 2000.0)
	viper.SetDefault("vehicle.powertrain.forwardGearRatio", 0.3)
	viper.SetDefault("vehicle.powertrain.reverseGearRatio", -0.3)

	viper.SetDefault("vehicle.driveline.driveshaftInertia", 0.5)
	viper.SetDefault("vehicle.driveline.differentialBoxInertia", 0.6)
	viper.SetDefault("vehicle.driveline.conicalGearRatio", -0.2)
	viper.SetDefault("vehicle.driveline.differentialRatio", -1.0)

	viper.SetDefault("vehicle.brake.maxTorque", 4000.0)

	viper.SetDefault("vehicle.wheel.mass", 54.3)
	viper.SetDefault("vehicle.wheel.radius", 18.5*util.In2M)
	viper.SetDefault("vehicle.wheel.width", 10.0*util.In2M)

	viper.SetDefault("vehicle.frontSuspension.springCoefficient", 167062.0)
	viper.SetDefault("vehicle.frontSuspension.dampingCoefficient", 22459.0)
	viper.SetDefault("vehicle.frontSuspension.springRestLength", 0.339)

	viper.SetDefault("vehicle.rearSuspension.springCoefficient", 267062.0)
	viper.SetDefault("vehicle.rearSuspension.dampingCoefficient", 22459.0)
	viper.SetDefault("vehicle.rearSuspension.springRestLength", 0.498)
}

func frontHardpoints() suspension.Hardpoints {
	return suspension.Hardpoints{
		suspension.DWSpindle:       util.InchesVec(mgl64.Vec3{-17.21, 35.82, -34.36}),
		suspension.DWUpright:       util.InchesVec(mgl64.Vec3{-17.21, 32.96, -34.36}),
		suspension.DWUCAFront:      util.InchesVec(mgl64.Vec3{-24.21, 18.19, -24.36}),
		suspension.DWUCABack:       util.InchesVec(mgl64.Vec3{-10.21, 18.19, -24.36}),
		suspension.DWUCAUpright:    util.InchesVec(mgl64.Vec3{-16.51, 29.96, -26.36}),
		suspension.DWLCAFront:      util.InchesVec(mgl64.Vec3{-29.21, 12.09, -38.36}),
		suspension.DWLCABack:       util.InchesVec(mgl64.Vec3{-5.21, 12.09, -38.36}),
		suspension.DWLCAUpright:    util.InchesVec(mgl64.Vec3{-17.21, 31.96, -40.36}),
		suspension.DWShockChassis:  util.InchesVec(mgl64.Vec3{-16.21, 22.09, -14.36}),
		suspension.DWShockUpright:  util.InchesVec(mgl64.Vec3{-16.71, 29.96, -38.36}),
		suspension.DWTierodChassis: util.InchesVec(mgl64.Vec3{-4.21, 15.09, -35.36}),
		suspension.DWTierodUpright: util.InchesVec(mgl64.Vec3{-4.21, 30.46, -35.36}),
	}
}

func rearHardpoints() suspension.Hardpoints {
	return suspension.Hardpoints{
		suspension.SASpindle:       util.InchesVec(mgl64.Vec3{-0.2, 35.82, -34.36}),
		suspension.SAAxleOuter:     util.InchesVec(mgl64.Vec3{-0.2, 32.0, -34.36}),
		suspension.SAAxleCM:        util.InchesVec(mgl64.Vec3{-0.2, 0.0, -34.36}),
		suspension.SAKnuckleLower:  util.InchesVec(mgl64.Vec3{0.1, 31.1, -38.1}),
		suspension.SAKnuckleUpper:  util.InchesVec(mgl64.Vec3{-0.5, 30.1, -30.1}),
		suspension.SAKnuckleCM:     util.InchesVec(mgl64.Vec3{-0.2, 30.6, -34.1}),
		suspension.SAUpperLinkAxle: util.InchesVec(mgl64.Vec3{2.1, 15.1, -30.1}),
		suspension.SAUpperLinkCh:   util.InchesVec(mgl64.Vec3{18.1, 14.1, -28.1}),
		suspension.SAUpperLinkCM:   util.InchesVec(mgl64.Vec3{10.1, 14.6, -29.1}),
		suspension.SALowerLinkAxle: util.InchesVec(mgl64.Vec3{-2.1, 22.1, -40.1}),
		suspension.SALowerLinkCh:   util.InchesVec(mgl64.Vec3{-20.1, 20.1, -37.1}),
		suspension.SALowerLinkCM:   util.InchesVec(mgl64.Vec3{-11.1, 21.1, -38.6}),
		suspension.SASpringAxle:    util.InchesVec(mgl64.Vec3{-0.2, 28.1, -34.1}),
		suspension.SASpringCh:      util.InchesVec(mgl64.Vec3{-0.2, 28.1, -14.1}),
		suspension.SAShockAxle:     util.InchesVec(mgl64.Vec3{2.1, 26.1, -36.1}),
		suspension.SAShockCh:       util.InchesVec(mgl64.Vec3{1.1, 24.1, -14.1}),
		suspension.SATierodChassis: util.InchesVec(mgl64.Vec3{-11.1, 15.1, -35.1}),
		suspension.SATierodKnuckle: util.InchesVec(mgl64.Vec3{-11.1, 29.1, -35.1}),
	}
}

// Vehicle assembles the full vehicle configuration from the loaded settings
// and the built-in design tables.
func Vehicle() vehicle.Config {
	front := suspension.Params{
		Name:      "front_susp",
		Steerable: true,
		Driven:    false,

		SpindleMass:    1.103,
		UprightMass:    19.45,
		SpindleInertia: mgl64.Vec3{0.000478, 0.000478, 0.000496},
		UprightInertia: mgl64.Vec3{0.1656, 0.1934, 0.04367},

		SpindleRadius: 0.15,
		SpindleWidth:  0.06,

		AxleInertia: 0.4,

		SpringCoefficient:  viper.GetFloat64("vehicle.frontSuspension.springCoefficient"),
		DampingCoefficient: viper.GetFloat64("vehicle.frontSuspension.dampingCoefficient"),
		SpringRestLength:   viper.GetFloat64("vehicle.frontSuspension.springRestLength"),

		Hardpoints: frontHardpoints(),
	}

	rear := suspension.Params{
		Name:      "rear_susp",
		Steerable: false,
		Driven:    true,

		SpindleMass:  1.103,
		KnuckleMass:  35.8,
		AxleTubeMass: 130.1,
		UpperMass:    12.3,
		LowerMass:    18.2,

		SpindleInertia:  mgl64.Vec3{0.000478, 0.000478, 0.000496},
		KnuckleInertia:  mgl64.Vec3{0.1479, 0.2243, 0.1242},
		AxleTubeInertia: mgl64.Vec3{15.6, 1.9, 15.6},
		UpperInertia:    mgl64.Vec3{0.011, 0.57, 0.57},
		LowerInertia:    mgl64.Vec3{0.019, 0.83, 0.83},

		SpindleRadius:  0.15,
		SpindleWidth:   0.06,
		KnuckleRadius:  0.05,
		AxleTubeRadius: 0.06,
		UpperRadius:    0.03,
		LowerRadius:    0.03,

		AxleInertia: 0.4,

		SpringCoefficient:  viper.GetFloat64("vehicle.rearSuspension.springCoefficient"),
		DampingCoefficient: viper.GetFloat64("vehicle.rearSuspension.dampingCoefficient"),
		SpringRestLength:   viper.GetFloat64("vehicle.rearSuspension.springRestLength"),

		Hardpoints: rearHardpoints(),
	}

	wheel := vehicle.WheelParams{
		Mass:    viper.GetFloat64("vehicle.wheel.mass"),
		Inertia: mgl64.Vec3{1.14, 2.01, 1.14},
		Radius:  viper.GetFloat64("vehicle.wheel.radius"),
		Width:   viper.GetFloat64("vehicle.wheel.width"),
	}

	return vehicle.Config{
		Name: viper.GetString("vehicle.name"),

		Chassis: vehicle.ChassisParams{
			Mass: viper.GetFloat64("vehicle.chassis.mass"),
			Inertia: mgl64.Vec3{
				viper.GetFloat64("vehicle.chassis.inertiaRoll"),
				viper.GetFloat64("vehicle.chassis.inertiaPitch"),
				viper.GetFloat64("vehicle.chassis.inertiaYaw"),
			},
			Fixed: viper.GetBool("vehicle.fixed"),
		},

		FrontVariant:    vehicle.VariantDoubleWishboneReduced,
		RearVariant:     vehicle.VariantSolidAxle,
		FrontSuspension: front,
		RearSuspension:  rear,

		FrontLocation: util.InchesVec(mgl64.Vec3{-66.59, 0, 1.039}),
		RearLocation:  util.InchesVec(mgl64.Vec3{66.4, 0, 1.039}),

		FrontWheel: wheel,
		RearWheel:  wheel,

		Driveline: driveline.Params{
			DriveshaftInertia:      viper.GetFloat64("vehicle.driveline.driveshaftInertia"),
			DifferentialBoxInertia: viper.GetFloat64("vehicle.driveline.differentialBoxInertia"),
			ConicalGearRatio:       viper.GetFloat64("vehicle.driveline.conicalGearRatio"),
			DifferentialRatio:      viper.GetFloat64("vehicle.driveline.differentialRatio"),
			DirMotorBlock:          mgl64.Vec3{1, 0, 0},
			DirAxle:                mgl64.Vec3{0, 1, 0},
		},

		Powertrain: powertrain.Params{
			MaxTorque:        viper.GetFloat64("vehicle.powertrain.maxTorque"),
			MaxSpeed:         viper.GetFloat64("vehicle.powertrain.maxSpeed"),
			ForwardGearRatio: viper.GetFloat64("vehicle.powertrain.forwardGearRatio"),
			ReverseGearRatio: viper.GetFloat64("vehicle.powertrain.reverseGearRatio"),
		},

		Brake: vehicle.BrakeParams{
			MaxTorque: viper.GetFloat64("vehicle.brake.maxTorque"),
		},
	}
}
