// Package driver produces the per-step driver inputs fed into the vehicle:
// throttle, steering and braking, each normalized.
package driver

// Inputs is one step's worth of driver commands. Throttle and braking are
// in [0, 1], steering in [-1, 1].
type Inputs struct {
	Throttle float64
	Steering float64
	Braking  float64
}

// Driver yields inputs as a function of simulation time.
type Driver interface {
	Update(time float64) Inputs
}

// Constant returns the same inputs every step.
type Constant struct {
	In Inputs
}

func (c *Constant) Update(time float64) Inputs { return c.In }

// Ramp holds one channel's scripted profile: zero before Delay, then a
// linear rise at Rate per second, clamped to Target.
type Ramp struct {
	Delay  float64
	Rate   float64
	Target float64
}

// value evaluates the ramp at the given time. The rate is always positive;
// a negative target ramps the channel downward, for left-hand steering.
func (r Ramp) value(time float64) float64 {
	if time <= r.Delay {
		return 0
	}
	v := (time - r.Delay) * r.Rate
	if r.Target < 0 {
		if v > -r.Target {
			return r.Target
		}
		return -v
	}
	if v > r.Target {
		return r.Target
	}
	return v
}

// Scripted drives each channel with its own ramp, the usual profile for a
// straight-line acceleration run with an optional steering event.
type Scripted struct {
	Throttle Ramp
	Steering Ramp
	Braking  Ramp
}

func (s *Scripted) Update(time float64) Inputs {
	return Inputs{
		Throttle: s.Throttle.value(time),
		Steering: s.Steering.value(time),
		Braking:  s.Braking.value(time),
	}
}
