// Package vehiclecore holds the identifiers shared between the vehicle
// assembly and its subsystem templates.
package vehiclecore

import "github.com/groundsim/vehicle/internal/suspension"

// WheelID identifies one of the four wheel stations.
type WheelID int

const (
	FrontLeft WheelID = iota
	FrontRight
	RearLeft
	RearRight

	NumWheels = 4
)

func (w WheelID) String() string {
	switch w {
	case FrontLeft:
		return "front_left"
	case FrontRight:
		return "front_right"
	case RearLeft:
		return "rear_left"
	case RearRight:
		return "rear_right"
	default:
		return "invalid"
	}
}

// Valid reports whether w names one of the four stations.
func (w WheelID) Valid() bool {
	return w >= FrontLeft && w < NumWheels
}

// Axle returns the axle index (0 front, 1 rear) for a valid id.
func (w WheelID) Axle() int {
	return int(w) / 2
}

// Side returns the suspension side for a valid id.
func (w WheelID) Side() suspension.Side {
	if int(w)%2 == 0 {
		return suspension.Left
	}
	return suspension.Right
}
