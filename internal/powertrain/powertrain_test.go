package powertrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() Params {
	return Params{
		MaxTorque:        300,
		MaxSpeed:         600,
		ForwardGearRatio: 4.0,
		ReverseGearRatio: -4.0,
	}
}

func TestNew_StartsInForward(t *testing.T) {
	p, err := New(testParams())
	require.NoError(t, err)
	assert.Equal(t, Forward, p.DriveMode())
}

func TestNew_RejectsBadParams(t *testing.T) {
	bad := testParams()
	bad.MaxTorque = 0
	_, err := New(bad)
	assert.Error(t, err)

	bad = testParams()
	bad.MaxSpeed = -1
	_, err = New(bad)
	assert.Error(t, err)

	bad = testParams()
	bad.ForwardGearRatio = 0
	_, err = New(bad)
	assert.Error(t, err)
}

func TestSimple_Update_TorqueCurve(t *testing.T) {
	p, err := New(testParams())
	require.NoError(t, err)

	// at rest, full throttle delivers the peak torque
	p.Update(0, 1, 0)
	assert.InDelta(t, 300.0, p.MotorTorque(), 1e-12)

	// at rest, half throttle gives half the peak torque
	p.Update(0, 0.5, 0)
	assert.InDelta(t, 0.0, p.MotorSpeed(), 1e-12)
	assert.InDelta(t, 150.0, p.MotorTorque(), 1e-12)
	assert.InDelta(t, 37.5, p.ShaftTorque(), 1e-12)

	// zero throttle cuts the output regardless of speed
	p.Update(0, 0, 800)
	assert.Zero(t, p.MotorTorque())
	assert.Zero(t, p.ShaftTorque())

	// the curve crosses zero at the rated motor speed
	p.Update(0, 1, 600*4.0)
	assert.InDelta(t, 600.0, p.MotorSpeed(), 1e-12)
	assert.InDelta(t, 0.0, p.MotorTorque(), 1e-12)

	// past the rated speed the motor brakes
	p.Update(0, 1, 1200*4.0)
	assert.InDelta(t, -300.0, p.MotorTorque(), 1e-12)
	assert.Less(t, p.ShaftTorque(), 0.0)
}

func TestSimple_Update_Neutral(t *testing.T) {
	p, err := New(testParams())
	require.NoError(t, err)

	p.SetDriveMode(Neutral)
	p.Update(0, 1, 100)

	assert.InDelta(t, 0.0, p.MotorSpeed(), 1e-12)
	assert.InDelta(t, 0.0, p.ShaftTorque(), 1e-12)
}

func TestSimple_Update_Reverse(t *testing.T) {
	p, err := New(testParams())
	require.NoError(t, err)

	p.SetDriveMode(Reverse)
	p.Update(0, 0.5, 0)

	assert.InDelta(t, 150.0, p.MotorTorque(), 1e-12)
	assert.InDelta(t, -37.5, p.ShaftTorque(), 1e-12)
}

func TestSimple_SetDriveMode_TakesEffectOnNextUpdate(t *testing.T) {
	p, err := New(testParams())
	require.NoError(t, err)

	p.Update(0, 0.5, 0)
	forward := p.ShaftTorque()

	p.SetDriveMode(Reverse)
	p.Update(0.001, 0.5, 0)

	assert.InDelta(t, -forward, p.ShaftTorque(), 1e-12)
	assert.Equal(t, Reverse, p.DriveMode())
}

func TestDriveMode_String(t *testing.T) {
	assert.Equal(t, "forward", Forward.String())
	assert.Equal(t, "neutral", Neutral.String())
	assert.Equal(t, "reverse", Reverse.String())
	assert.Equal(t, "unknown", DriveMode(9).String())
}
