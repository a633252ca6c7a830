// Package monitor exposes stepping metrics through the global OpenTelemetry
// meter. Without a configured provider the instruments are no-ops, so the
// simulation loop can record unconditionally.
package monitor

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/groundsim/vehicle/internal/monitor"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics holds the instruments recorded once per simulation step.
type Metrics struct {
	steps        metric.Int64Counter
	stepDuration metric.Float64Histogram
	motorTorque  metric.Float64Histogram
}

// NewMetrics registers the stepping instruments.
func NewMetrics() (*Metrics, error) {
	m := meter()

	steps, err := m.Int64Counter("sim.steps",
		metric.WithDescription("Number of simulation steps executed"))
	if err != nil {
		return nil, err
	}

	stepDuration, err := m.Float64Histogram("sim.step.duration",
		metric.WithDescription("Wall-clock duration of one simulation step"),
		metric.WithUnit("us"))
	if err != nil {
		return nil, err
	}

	motorTorque, err := m.Float64Histogram("sim.motor.torque",
		metric.WithDescription("Motor torque at each step"),
		metric.WithUnit("N.m"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		steps:        steps,
		stepDuration: stepDuration,
		motorTorque:  motorTorque,
	}, nil
}

// RecordStep records one completed step.
func (m *Metrics) RecordStep(ctx context.Context, run string, wall time.Duration, motorTorque float64) {
	attrs := metric.WithAttributes(attribute.String("run", run))
	m.steps.Add(ctx, 1, attrs)
	m.stepDuration.Record(ctx, float64(wall.Microseconds()), attrs)
	m.motorTorque.Record(ctx, motorTorque, attrs)
}
