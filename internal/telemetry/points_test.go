package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldMap(t *testing.T, fields map[string]interface{}, key string) float64 {
	t.Helper()
	v, ok := fields[key]
	require.True(t, ok, "field %s missing", key)
	f, ok := v.(float64)
	require.True(t, ok, "field %s is %T", key, v)
	return f
}

func TestDrivetrainPoint(t *testing.T) {
	p := DrivetrainPoint(3, 1.25, 150.0, 37.5, 0.8)

	assert.Equal(t, "drivetrain", p.Name())

	tags := map[string]string{}
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, "3", tags["runId"])

	fields := map[string]interface{}{}
	for _, f := range p.FieldList() {
		fields[f.Key] = f.Value
	}
	assert.InDelta(t, 1.25, fieldMap(t, fields, "simTime"), 1e-12)
	assert.InDelta(t, 150.0, fieldMap(t, fields, "motorSpeed"), 1e-12)
	assert.InDelta(t, 37.5, fieldMap(t, fields, "motorTorque"), 1e-12)
	assert.InDelta(t, 0.8, fieldMap(t, fields, "driveshaftSpeed"), 1e-12)
}

func TestWheelPoint(t *testing.T) {
	p := WheelPoint(7, 2.5, "rear_left", 12.0, -93.75, 4200.0, 0.51)

	assert.Equal(t, "wheel", p.Name())

	tags := map[string]string{}
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, "7", tags["runId"])
	assert.Equal(t, "rear_left", tags["wheel"])

	fields := map[string]interface{}{}
	for _, f := range p.FieldList() {
		fields[f.Key] = f.Value
	}
	assert.InDelta(t, -93.75, fieldMap(t, fields, "driveTorque"), 1e-12)
	assert.InDelta(t, 0.51, fieldMap(t, fields, "springLen"), 1e-12)
}

func TestStepDurationPoint(t *testing.T) {
	p := StepDurationPoint(1, 0.5, 250*time.Microsecond)

	assert.Equal(t, "step_duration", p.Name())

	fields := map[string]interface{}{}
	for _, f := range p.FieldList() {
		fields[f.Key] = f.Value
	}
	assert.InDelta(t, 250.0, fieldMap(t, fields, "durationUs"), 1e-12)
}
