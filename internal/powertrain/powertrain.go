// Package powertrain provides a kinematic motor model: a linear torque
// curve scaled by the throttle, with a selectable forward, reverse or
// neutral conversion ratio between the motor and the driveshaft.
package powertrain

import "fmt"

// DriveMode selects the conversion ratio applied between the motor and the
// driveshaft.
type DriveMode int

const (
	Forward DriveMode = iota
	Neutral
	Reverse
)

func (m DriveMode) String() string {
	switch m {
	case Forward:
		return "forward"
	case Neutral:
		return "neutral"
	case Reverse:
		return "reverse"
	default:
		return "unknown"
	}
}

// neutralRatio effectively decouples the motor from the driveshaft: the
// motor sees zero speed and the shaft receives vanishing torque.
const neutralRatio = 1e20

// Params holds the motor's model-specific numbers.
type Params struct {
	// peak torque at zero motor speed [N m]
	MaxTorque float64
	// motor speed at which the curve crosses zero torque [rad/s]
	MaxSpeed float64

	ForwardGearRatio float64
	ReverseGearRatio float64
}

func (p *Params) validate() error {
	if p.MaxTorque <= 0 {
		return fmt.Errorf("powertrain: max torque must be positive")
	}
	if p.MaxSpeed <= 0 {
		return fmt.Errorf("powertrain: max speed must be positive")
	}
	if p.ForwardGearRatio == 0 || p.ReverseGearRatio == 0 {
		return fmt.Errorf("powertrain: gear ratios must be nonzero")
	}
	return nil
}

// Simple is the kinematic powertrain. It holds no shafts of its own; the
// vehicle reads ShaftTorque after each Update and applies it to the
// driveline's driveshaft.
type Simple struct {
	params Params

	mode  DriveMode
	ratio float64

	motorSpeed  float64
	motorTorque float64
	shaftTorque float64
}

// New creates the powertrain in forward mode.
func New(params Params) (*Simple, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	p := &Simple{params: params}
	p.SetDriveMode(Forward)
	return p, nil
}

// SetDriveMode switches the conversion ratio. The new ratio takes effect on
// the next Update.
func (p *Simple) SetDriveMode(mode DriveMode) {
	p.mode = mode
	switch mode {
	case Forward:
		p.ratio = p.params.ForwardGearRatio
	case Reverse:
		p.ratio = p.params.ReverseGearRatio
	default:
		p.ratio = neutralRatio
	}
}

// DriveMode returns the current mode.
func (p *Simple) DriveMode() DriveMode { return p.mode }

// Update recomputes the motor state from the commanded throttle in [0, 1]
// and the measured driveshaft speed. The torque curve is linear from
// MaxTorque at rest to zero at MaxSpeed and keeps falling past it, so
// overspeeding the motor produces a braking torque.
func (p *Simple) Update(time, throttle, shaftSpeed float64) {
	_ = time

	p.motorSpeed = shaftSpeed / p.ratio
	p.motorTorque = p.params.MaxTorque - p.motorSpeed*(p.params.MaxTorque/p.params.MaxSpeed)
	p.motorTorque *= throttle
	p.shaftTorque = p.motorTorque / p.ratio
}

// MotorSpeed returns the motor speed from the last Update [rad/s].
func (p *Simple) MotorSpeed() float64 { return p.motorSpeed }

// MotorTorque returns the motor torque from the last Update [N m].
func (p *Simple) MotorTorque() float64 { return p.motorTorque }

// ShaftTorque returns the torque to apply to the driveshaft [N m].
func (p *Simple) ShaftTorque() float64 { return p.shaftTorque }
