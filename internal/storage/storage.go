// Package storage defines the run recorder contract: backends persist runs,
// per-step samples and drive mode events, to memory, JSON files or a
// database.
package storage

import (
	"time"

	"github.com/groundsim/vehicle/internal/model"
)

// Backend is the interface all run recorder implementations must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Run management. StartRun assigns the run ID on the passed pointer.
	StartRun(run *model.Run) error
	EndRun() error

	// State recording
	RecordStep(s *model.StepState) error
	RecordWheelState(w *model.WheelState) error
	RecordDriveModeEvent(e *model.DriveModeEvent) error
	RecordPerformance(p *model.RunPerformance) error
}

// Exportable is an optional interface for backends that produce a run file
// on disk.
type Exportable interface {
	ExportedFilePath() string
}

// WriteTimed is an optional interface for backends that track how long their
// last batched database write took. Recorder health samples prefer this over
// the caller's own wall clock measurement.
type WriteTimed interface {
	LastWriteDuration() time.Duration
}
