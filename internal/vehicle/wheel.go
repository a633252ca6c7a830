package vehicle

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/groundsim/vehicle/internal/physics"
)

// WheelParams holds one wheel's mass properties and envelope.
type WheelParams struct {
	Mass    float64
	Inertia mgl64.Vec3

	Radius float64
	Width  float64
}

// Wheel carries no body of its own. Initialize folds the wheel's mass and
// inertia into the spindle it mounts on, so the spindle integrates the
// combined properties.
type Wheel struct {
	params  WheelParams
	spindle physics.BodyID
}

// NewWheel creates a wheel from its parameters.
func NewWheel(params WheelParams) *Wheel {
	return &Wheel{params: params, spindle: physics.InvalidBody}
}

// Initialize mounts the wheel on a spindle, adding its mass and inertia to
// the spindle body. Mounting on an unregistered spindle is a construction
// error.
func (w *Wheel) Initialize(sys *physics.System, spindle physics.BodyID) error {
	if !sys.HasBody(spindle) {
		return fmt.Errorf("wheel: spindle not registered")
	}
	w.spindle = spindle

	body := sys.Body(spindle)
	body.Mass += w.params.Mass
	body.Inertia = body.Inertia.Add(w.params.Inertia)
	return nil
}

// Spindle returns the body the wheel is mounted on.
func (w *Wheel) Spindle() physics.BodyID { return w.spindle }

// Radius returns the wheel's rolling radius.
func (w *Wheel) Radius() float64 { return w.params.Radius }

// Width returns the wheel's rim width.
func (w *Wheel) Width() float64 { return w.params.Width }
