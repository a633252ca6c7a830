// Package util provides common unit-conversion helpers used across the
// vehicle model. Reference data sheets quote imperial units; the simulation
// runs in SI.
package util

import "github.com/go-gl/mathgl/mgl64"

const (
	// In2M converts inches to meters.
	In2M = 0.0254

	// Lb2Kg converts pounds-mass to kilograms.
	Lb2Kg = 1.0 / 2.2046

	// Lbf2N converts pounds-force to newtons.
	Lbf2N = 4.4482

	// InLb2Nm converts inch-pounds to newton-meters.
	InLb2Nm = 1.0 / 8.8507

	// Rpm2RadS converts revolutions per minute to radians per second.
	Rpm2RadS = 0.10472
)

// InchesToMeters converts a scalar length.
func InchesToMeters(in float64) float64 { return in * In2M }

// MetersToInches converts a scalar length.
func MetersToInches(m float64) float64 { return m / In2M }

// InchesVec converts a vector of inch coordinates to meters.
func InchesVec(v mgl64.Vec3) mgl64.Vec3 { return v.Mul(In2M) }

// MetersVecToInches converts a vector of meter coordinates to inches.
func MetersVecToInches(v mgl64.Vec3) mgl64.Vec3 { return v.Mul(1 / In2M) }
