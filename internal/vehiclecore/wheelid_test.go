package vehiclecore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/groundsim/vehicle/internal/suspension"
)

func TestWheelID_String(t *testing.T) {
	assert.Equal(t, "front_left", FrontLeft.String())
	assert.Equal(t, "front_right", FrontRight.String())
	assert.Equal(t, "rear_left", RearLeft.String())
	assert.Equal(t, "rear_right", RearRight.String())
	assert.Equal(t, "invalid", WheelID(4).String())
	assert.Equal(t, "invalid", WheelID(-1).String())
}

func TestWheelID_Valid(t *testing.T) {
	for id := FrontLeft; id < NumWheels; id++ {
		assert.True(t, id.Valid(), "wheel %d", id)
	}
	assert.False(t, WheelID(4).Valid())
	assert.False(t, WheelID(-1).Valid())
}

func TestWheelID_AxleAndSide(t *testing.T) {
	assert.Equal(t, 0, FrontLeft.Axle())
	assert.Equal(t, 0, FrontRight.Axle())
	assert.Equal(t, 1, RearLeft.Axle())
	assert.Equal(t, 1, RearRight.Axle())

	assert.Equal(t, suspension.Left, FrontLeft.Side())
	assert.Equal(t, suspension.Right, FrontRight.Side())
	assert.Equal(t, suspension.Left, RearLeft.Side())
	assert.Equal(t, suspension.Right, RearRight.Side())
}
