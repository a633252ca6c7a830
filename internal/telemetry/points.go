package telemetry

import (
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
)

// DrivetrainPoint builds the per-step powertrain/driveline sample.
func DrivetrainPoint(runID uint, simTime, motorSpeed, motorTorque, driveshaftSpeed float64) *influxdb2_write.Point {
	return influxdb2.NewPoint(
		"drivetrain",
		map[string]string{
			"runId": fmt.Sprintf("%d", runID),
		},
		map[string]interface{}{
			"simTime":         simTime,
			"motorSpeed":      motorSpeed,
			"motorTorque":     motorTorque,
			"driveshaftSpeed": driveshaftSpeed,
		},
		time.Now(),
	)
}

// WheelPoint builds the per-step, per-wheel sample.
func WheelPoint(runID uint, simTime float64, wheel string, omega, driveTorque, springForce, springLen float64) *influxdb2_write.Point {
	return influxdb2.NewPoint(
		"wheel",
		map[string]string{
			"runId": fmt.Sprintf("%d", runID),
			"wheel": wheel,
		},
		map[string]interface{}{
			"simTime":     simTime,
			"omega":       omega,
			"driveTorque": driveTorque,
			"springForce": springForce,
			"springLen":   springLen,
		},
		time.Now(),
	)
}

// StepDurationPoint builds the recorder health sample.
func StepDurationPoint(runID uint, simTime float64, wallDuration time.Duration) *influxdb2_write.Point {
	return influxdb2.NewPoint(
		"step_duration",
		map[string]string{
			"runId": fmt.Sprintf("%d", runID),
		},
		map[string]interface{}{
			"simTime":    simTime,
			"durationUs": float64(wallDuration.Microseconds()),
		},
		time.Now(),
	)
}
