package vehicle

import (
	"fmt"

	"github.com/groundsim/vehicle/internal/physics"
)

// BrakeParams holds one brake's capacity.
type BrakeParams struct {
	// torque resisting spindle rotation at full modulation [N m]
	MaxTorque float64
}

// Brake models a simple friction brake acting on a suspension's spindle
// revolute joint. The applied torque is the modulation times the capacity.
type Brake struct {
	params   BrakeParams
	revolute *physics.RevoluteJoint

	modulation float64
}

// NewBrake creates a brake from its parameters.
func NewBrake(params BrakeParams) *Brake {
	return &Brake{params: params}
}

// Initialize attaches the brake to a spindle revolute joint.
func (b *Brake) Initialize(revolute *physics.RevoluteJoint) error {
	if revolute == nil {
		return fmt.Errorf("brake: revolute joint is nil")
	}
	b.revolute = revolute
	return nil
}

// ApplyBrakeModulation sets the brake effort in [0, 1].
func (b *Brake) ApplyBrakeModulation(modulation float64) {
	b.modulation = modulation
	b.revolute.SetBrakeTorque(modulation * b.params.MaxTorque)
}

// BrakeTorque returns the currently applied braking torque.
func (b *Brake) BrakeTorque() float64 {
	return b.modulation * b.params.MaxTorque
}
