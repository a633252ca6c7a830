package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gorm.io/datatypes"

	"github.com/groundsim/vehicle/internal/asset"
	"github.com/groundsim/vehicle/internal/config"
	"github.com/groundsim/vehicle/internal/driver"
	"github.com/groundsim/vehicle/internal/logging"
	"github.com/groundsim/vehicle/internal/model"
	"github.com/groundsim/vehicle/internal/monitor"
	"github.com/groundsim/vehicle/internal/physics"
	"github.com/groundsim/vehicle/internal/powertrain"
	"github.com/groundsim/vehicle/internal/storage"
	"github.com/groundsim/vehicle/internal/suspension"
	"github.com/groundsim/vehicle/internal/telemetry"
	"github.com/groundsim/vehicle/internal/vehicle"
	"github.com/groundsim/vehicle/internal/vehiclecore"
)

// recordEvery thins the recorded samples to every Nth step.
const recordEvery = 10

// perfEvery spaces the recorder health samples, in steps. Must be a multiple
// of recordEvery so the sample lands right after a recorded batch.
const perfEvery = 1000

// runDemo runs the scripted straight-line acceleration demo and records the
// run through the configured storage backend.
func runDemo() error {
	ctx := context.Background()

	cfg := config.Vehicle()
	stepSize := config.GetFloat("sim.stepSize")
	duration := config.GetFloat("sim.duration")

	sys := physics.NewSystem()
	veh, err := vehicle.New(sys, cfg, Logger)
	if err != nil {
		return err
	}
	if err := veh.Initialize(vehicle.Pose{Rot: mgl64.QuatIdent()}); err != nil {
		return err
	}

	// visualization assets; a missing mesh must not abort the run
	assets := asset.NewRegistry()
	if meshPath := config.GetString("vehicle.chassisMesh"); meshPath != "" {
		mesh, err := asset.LoadMesh(meshPath, cfg.Name+"_chassis")
		if err != nil {
			Logger.Warn("Chassis mesh load failed, continuing with primitives", "error", err)
		} else {
			assets.AttachMesh(veh.Chassis(), mesh)
		}
	}
	for id := vehiclecore.FrontLeft; id < vehiclecore.NumWheels; id++ {
		assets.Attach(veh.WheelBody(id), asset.Cylinder{
			Radius: cfg.FrontWheel.Radius,
			Length: cfg.FrontWheel.Width,
		})
	}

	zlog := logging.NewZerolog(nil, config.GetString("logLevel"))
	backend, err := storage.NewBackend(config.Storage(), zlog)
	if err != nil {
		return err
	}
	if err := backend.Init(); err != nil {
		return err
	}
	defer backend.Close()

	var telem *telemetry.Manager
	if config.GetBool("influx.enabled") {
		backupPath := filepath.Join(config.GetString("logsDir"),
			fmt.Sprintf("%s_telemetry_%s.lp.gz", AppName, SessionStartTime.Format("20060102_150405")))
		telem = telemetry.NewManager(zlog, backupPath)
		if err := telem.Connect(); err != nil {
			Logger.Warn("Telemetry disabled", "error", err)
			telem = nil
		} else {
			defer telem.Close()
		}
	}

	metrics, err := monitor.NewMetrics()
	if err != nil {
		return err
	}

	paramsJSON, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	run := &model.Run{
		Name:        "demo",
		VehicleName: cfg.Name,
		StartedAt:   SessionStartTime,
		StepSize:    stepSize,
		Params:      datatypes.JSON(paramsJSON),
	}
	if err := backend.StartRun(run); err != nil {
		return err
	}

	veh.SetDriveMode(powertrain.Forward)
	if err := backend.RecordDriveModeEvent(&model.DriveModeEvent{
		RunID: run.ID, Time: 0, Mode: powertrain.Forward.String(),
	}); err != nil {
		return err
	}

	drv := &driver.Scripted{
		Throttle: driver.Ramp{Delay: 0.2, Rate: 0.7, Target: 0.7},
		Steering: driver.Ramp{Delay: 4.0, Rate: 0.25, Target: 0.5},
	}

	Logger.Info("Starting demo run",
		"vehicle", cfg.Name, "stepSize", stepSize, "duration", duration)

	var tireForces [vehiclecore.NumWheels]suspension.TireForce
	var recorded uint
	steps := int(duration / stepSize)
	for i := 0; i <= steps; i++ {
		t := float64(i) * stepSize
		in := drv.Update(t)

		wall := time.Now()
		veh.Update(t, in.Throttle, in.Steering, in.Braking, tireForces)
		sys.Step(stepSize)
		stepDur := time.Since(wall)
		metrics.RecordStep(ctx, run.Name, stepDur, veh.MotorTorque())

		if i%recordEvery != 0 {
			continue
		}
		recorded++
		writeStart := time.Now()

		pos := veh.ChassisPos()
		vel := veh.ChassisVel()
		step := &model.StepState{
			RunID: run.ID, Time: t,
			ChassisPosX: pos.X(), ChassisPosY: pos.Y(), ChassisPosZ: pos.Z(),
			ChassisVelX: vel.X(), ChassisVelY: vel.Y(), ChassisVelZ: vel.Z(),
			Throttle: in.Throttle, Steering: in.Steering, Braking: in.Braking,
			DriveshaftSpeed: veh.DriveshaftSpeed(),
			MotorSpeed:      veh.MotorSpeed(),
			MotorTorque:     veh.MotorTorque(),
		}
		if err := backend.RecordStep(step); err != nil {
			return err
		}

		for id := vehiclecore.FrontLeft; id < vehiclecore.NumWheels; id++ {
			wpos := veh.WheelPos(id)
			ws := &model.WheelState{
				RunID: run.ID, Time: t, Wheel: id.String(),
				PosX: wpos.X(), PosY: wpos.Y(), PosZ: wpos.Z(),
				Omega:       veh.WheelOmega(id),
				DriveTorque: veh.WheelTorque(id),
				SpringForce: veh.SpringForce(id),
				SpringLen:   veh.SpringLength(id),
			}
			if err := backend.RecordWheelState(ws); err != nil {
				return err
			}
			if telem != nil {
				_ = telem.WritePoint(ctx, "suspension", telemetry.WheelPoint(
					run.ID, t, id.String(), ws.Omega, ws.DriveTorque, ws.SpringForce, ws.SpringLen))
			}
		}

		if telem != nil {
			_ = telem.WritePoint(ctx, "drivetrain", telemetry.DrivetrainPoint(
				run.ID, t, step.MotorSpeed, step.MotorTorque, step.DriveshaftSpeed))
		}

		if i%perfEvery != 0 {
			continue
		}
		writeDur := time.Since(writeStart)
		if tw, ok := backend.(storage.WriteTimed); ok && tw.LastWriteDuration() > 0 {
			writeDur = tw.LastWriteDuration()
		}
		if err := backend.RecordPerformance(&model.RunPerformance{
			Time:                time.Now(),
			RunID:               run.ID,
			StepsRecorded:       recorded,
			LastWriteDurationMs: float32(writeDur.Seconds() * 1000),
		}); err != nil {
			return err
		}
		if telem != nil {
			_ = telem.WritePoint(ctx, "sim_performance",
				telemetry.StepDurationPoint(run.ID, t, stepDur))
		}
	}

	if err := backend.EndRun(); err != nil {
		return err
	}

	if exp, ok := backend.(storage.Exportable); ok && exp.ExportedFilePath() != "" {
		Logger.Info("Run exported", "path", exp.ExportedFilePath())
	}
	Logger.Info("Demo run complete",
		"steps", steps,
		"finalSpeed", veh.ChassisVel().Len(),
		"driveshaftSpeed", veh.DriveshaftSpeed())
	return nil
}
