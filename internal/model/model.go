package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DatabaseModels is the list of structs migrated as tables in the run
// recorder schema.
var DatabaseModels = []interface{}{
	&SimInfo{},
	&Run{},
	&StepState{},
	&WheelState{},
	&DriveModeEvent{},
	&RunPerformance{},
}

// DatabaseModelsSQLite is the subset migrated when recording locally.
var DatabaseModelsSQLite = []interface{}{
	&SimInfo{},
	&Run{},
	&StepState{},
	&WheelState{},
	&DriveModeEvent{},
	&RunPerformance{},
}

// SimInfo carries instance-level metadata about the simulator installation.
type SimInfo struct {
	gorm.Model
	GroupName        string `json:"groupName" gorm:"size:127"`
	GroupDescription string `json:"groupDescription" gorm:"size:255"`
	GroupWebsite     string `json:"groupURL" gorm:"size:255"`
}

func (*SimInfo) TableName() string {
	return "sim_infos"
}

// Run is one recorded simulation run: the vehicle parameters it was built
// with and the time base it was stepped on.
type Run struct {
	gorm.Model
	Name        string    `json:"name" gorm:"size:127"`
	VehicleName string    `json:"vehicleName" gorm:"size:127"`
	StartedAt   time.Time `json:"startedAt" gorm:"type:timestamptz"`
	StepSize    float64   `json:"stepSize"`

	// full parameter snapshot so a run is reproducible from the record
	Params datatypes.JSON `json:"params"`
}

func (*Run) TableName() string {
	return "runs"
}

// StepState is the per-step chassis and drivetrain sample.
type StepState struct {
	ID    uint    `json:"id" gorm:"primarykey"`
	RunID uint    `json:"runId" gorm:"index:idx_stepstate_run_id"`
	Run   Run     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:RunID;"`
	Time  float64 `json:"time" gorm:"index:idx_stepstate_time"`

	ChassisPosX float64 `json:"chassisPosX"`
	ChassisPosY float64 `json:"chassisPosY"`
	ChassisPosZ float64 `json:"chassisPosZ"`
	ChassisVelX float64 `json:"chassisVelX"`
	ChassisVelY float64 `json:"chassisVelY"`
	ChassisVelZ float64 `json:"chassisVelZ"`

	Throttle float64 `json:"throttle"`
	Steering float64 `json:"steering"`
	Braking  float64 `json:"braking"`

	DriveshaftSpeed float64 `json:"driveshaftSpeed"`
	MotorSpeed      float64 `json:"motorSpeed"`
	MotorTorque     float64 `json:"motorTorque"`
}

func (*StepState) TableName() string {
	return "step_states"
}

// WheelState is the per-step, per-wheel sample.
type WheelState struct {
	ID    uint    `json:"id" gorm:"primarykey"`
	RunID uint    `json:"runId" gorm:"index:idx_wheelstate_run_id"`
	Run   Run     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:RunID;"`
	Time  float64 `json:"time" gorm:"index:idx_wheelstate_time"`

	Wheel string `json:"wheel" gorm:"size:15;index:idx_wheelstate_wheel"`

	PosX float64 `json:"posX"`
	PosY float64 `json:"posY"`
	PosZ float64 `json:"posZ"`

	Omega       float64 `json:"omega"`
	DriveTorque float64 `json:"driveTorque"`
	SpringForce float64 `json:"springForce"`
	SpringLen   float64 `json:"springLen"`
}

func (*WheelState) TableName() string {
	return "wheel_states"
}

// DriveModeEvent records a driver-commanded gear change.
type DriveModeEvent struct {
	ID    uint    `json:"id" gorm:"primarykey"`
	RunID uint    `json:"runId" gorm:"index:idx_drivemodeevent_run_id"`
	Run   Run     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:RunID;"`
	Time  float64 `json:"time"`
	Mode  string  `json:"mode" gorm:"size:15"`
}

func (*DriveModeEvent) TableName() string {
	return "drive_mode_events"
}

// RunPerformance samples the recorder's own health while a run is active.
type RunPerformance struct {
	Time                time.Time `json:"time" gorm:"type:timestamptz;index:idx_runperformance_time"`
	RunID               uint      `json:"runId" gorm:"index:idx_runperformance_run_id"`
	Run                 Run       `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:RunID;"`
	StepsRecorded       uint      `json:"stepsRecorded"`
	LastWriteDurationMs float32   `json:"lastWriteDurationMs"`
}

func (*RunPerformance) TableName() string {
	return "run_performances"
}
