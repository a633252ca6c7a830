// internal/storage/memory/memory.go
package memory

import (
	"fmt"
	"sync"

	"github.com/groundsim/vehicle/internal/config"
	"github.com/groundsim/vehicle/internal/model"
)

// Backend stores run data in memory and exports it to JSON on EndRun.
type Backend struct {
	cfg config.MemoryConfig
	run *model.Run

	steps       []model.StepState
	wheelStates []model.WheelState
	modeEvents  []model.DriveModeEvent
	perf        []model.RunPerformance

	idCounter      uint
	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend.
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources.
func (b *Backend) Close() error {
	return nil
}

// StartRun begins recording a new run.
func (b *Backend) StartRun(run *model.Run) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	run.ID = b.idCounter
	b.run = run

	// Reset all collections
	b.steps = nil
	b.wheelStates = nil
	b.modeEvents = nil
	b.perf = nil

	return nil
}

// EndRun finalizes and exports the run data.
func (b *Backend) EndRun() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("no active run")
	}
	return b.exportJSON()
}

// RecordStep appends a per-step sample.
func (b *Backend) RecordStep(s *model.StepState) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.steps = append(b.steps, *s)
	return nil
}

// RecordWheelState appends a per-wheel sample.
func (b *Backend) RecordWheelState(w *model.WheelState) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.wheelStates = append(b.wheelStates, *w)
	return nil
}

// RecordDriveModeEvent appends a gear change event.
func (b *Backend) RecordDriveModeEvent(e *model.DriveModeEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.modeEvents = append(b.modeEvents, *e)
	return nil
}

// RecordPerformance appends a recorder health sample.
func (b *Backend) RecordPerformance(p *model.RunPerformance) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.perf = append(b.perf, *p)
	return nil
}

// StepCount returns the number of recorded steps.
func (b *Backend) StepCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.steps)
}

// ExportedFilePath returns the path of the last exported run file.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
