package main

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/groundsim/vehicle/internal/asset"
	"github.com/groundsim/vehicle/internal/config"
	"github.com/groundsim/vehicle/internal/physics"
	"github.com/groundsim/vehicle/internal/vehicle"
)

// printHardpoints builds the vehicle fixed at the origin and logs the design
// tables in inches relative to the chassis, plus the initial constraint
// violations of every suspension joint.
func printHardpoints() error {
	cfg := config.Vehicle()
	cfg.Chassis.Fixed = true

	sys := physics.NewSystem()
	veh, err := vehicle.New(sys, cfg, Logger)
	if err != nil {
		return err
	}
	if err := veh.Initialize(vehicle.Pose{Rot: mgl64.QuatIdent()}); err != nil {
		return err
	}

	veh.LogHardpointLocations(mgl64.Vec3{}, true)
	veh.LogConstraintViolations()
	return nil
}

// exportMesh loads a Wavefront OBJ file and writes a POV-Ray include file
// into the configured export directory.
func exportMesh(objPath, name string) error {
	mesh, err := asset.LoadMesh(objPath, name)
	if err != nil {
		return err
	}

	outDir := config.GetString("export.outputDir")
	if err := asset.ExportMeshPovray(mesh, outDir); err != nil {
		return err
	}

	Logger.Info("Mesh exported", "name", name, "vertices", len(mesh.Vertices),
		"faces", len(mesh.Faces), "outputDir", outDir)
	return nil
}
