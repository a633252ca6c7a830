// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/groundsim/vehicle/internal/model"
)

// RunExport is the root JSON structure written per run.
type RunExport struct {
	Name        string                 `json:"name"`
	VehicleName string                 `json:"vehicleName"`
	StartedAt   string                 `json:"startedAt"`
	StepSize    float64                `json:"stepSize"`
	Params      json.RawMessage        `json:"params,omitempty"`
	Steps       []model.StepState      `json:"steps"`
	WheelStates []model.WheelState     `json:"wheelStates"`
	ModeEvents  []model.DriveModeEvent `json:"modeEvents"`
	Performance []model.RunPerformance `json:"performance"`
}

// exportJSON writes the run data to a JSON file, gzipped when configured.
// Callers hold the mutex.
func (b *Backend) exportJSON() error {
	export := b.buildExport()

	runName := strings.ReplaceAll(b.run.Name, " ", "_")
	runName = strings.ReplaceAll(runName, ":", "_")
	timestamp := b.run.StartedAt.Format("20060102_150405")

	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("%s_%s.json.gz", runName, timestamp)
	} else {
		filename = fmt.Sprintf("%s_%s.json", runName, timestamp)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if b.cfg.CompressOutput {
		if err := writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildExport() RunExport {
	export := RunExport{
		Name:        b.run.Name,
		VehicleName: b.run.VehicleName,
		StartedAt:   b.run.StartedAt.UTC().Format("2006-01-02T15:04:05Z"),
		StepSize:    b.run.StepSize,
		Params:      json.RawMessage(b.run.Params),
		Steps:       b.steps,
		WheelStates: b.wheelStates,
		ModeEvents:  b.modeEvents,
		Performance: b.perf,
	}
	if export.Steps == nil {
		export.Steps = []model.StepState{}
	}
	if export.WheelStates == nil {
		export.WheelStates = []model.WheelState{}
	}
	if export.ModeEvents == nil {
		export.ModeEvents = []model.DriveModeEvent{}
	}
	if export.Performance == nil {
		export.Performance = []model.RunPerformance{}
	}
	return export
}

func writeJSON(path string, export RunExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

func writeGzipJSON(path string, export RunExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	enc := json.NewEncoder(gz)
	if err := enc.Encode(export); err != nil {
		gz.Close()
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return gz.Close()
}
