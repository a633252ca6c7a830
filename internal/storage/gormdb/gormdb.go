// internal/storage/gormdb/gormdb.go
package gormdb

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/groundsim/vehicle/internal/database"
	"github.com/groundsim/vehicle/internal/model"
)

// flushThreshold is the number of buffered samples written per batch.
const flushThreshold = 2000

// Backend records runs through gorm: Postgres when reachable, an in-memory
// SQLite database dumped to disk otherwise.
type Backend struct {
	mgr *database.Manager
	log zerolog.Logger

	run *model.Run

	steps       []model.StepState
	wheelStates []model.WheelState

	lastWrite time.Duration
	mu        sync.Mutex
}

// New creates a gorm backend over its own database manager.
func New(log zerolog.Logger, sqliteFilePath string) *Backend {
	mgr := database.NewManager(log)
	mgr.SqliteFilePath = sqliteFilePath
	return &Backend{mgr: mgr, log: log}
}

// Init connects and migrates the schema.
func (b *Backend) Init() error {
	if err := b.mgr.Connect(); err != nil {
		return err
	}
	return b.mgr.Setup()
}

// Close flushes buffers and, when recording locally, dumps the in-memory
// database to disk.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.flushLocked(); err != nil {
		return err
	}
	if b.mgr.ShouldSaveLocal {
		return b.mgr.DumpMemoryToDisk()
	}
	return nil
}

// StartRun inserts the run row and resets the buffers.
func (b *Backend) StartRun(run *model.Run) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.mgr.DB.Create(run).Error; err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	b.run = run
	b.steps = nil
	b.wheelStates = nil

	b.log.Info().Uint("runId", run.ID).Str("name", run.Name).Msg("Run started")
	return nil
}

// EndRun flushes everything buffered for the active run.
func (b *Backend) EndRun() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("no active run")
	}
	if err := b.flushLocked(); err != nil {
		return err
	}
	b.log.Info().Uint("runId", b.run.ID).Msg("Run ended")
	b.run = nil
	return nil
}

// RecordStep buffers a per-step sample, flushing on the batch threshold.
func (b *Backend) RecordStep(s *model.StepState) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.steps = append(b.steps, *s)
	if len(b.steps) >= flushThreshold {
		return b.flushLocked()
	}
	return nil
}

// RecordWheelState buffers a per-wheel sample, flushing on the batch threshold.
func (b *Backend) RecordWheelState(w *model.WheelState) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.wheelStates = append(b.wheelStates, *w)
	if len(b.wheelStates) >= flushThreshold {
		return b.flushLocked()
	}
	return nil
}

// RecordDriveModeEvent writes a gear change event immediately; these are rare.
func (b *Backend) RecordDriveModeEvent(e *model.DriveModeEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.mgr.DB.Create(e).Error
}

// RecordPerformance writes a recorder health sample immediately.
func (b *Backend) RecordPerformance(p *model.RunPerformance) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.mgr.DB.Create(p).Error
}

// LastWriteDuration returns the duration of the most recent batch write.
func (b *Backend) LastWriteDuration() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastWrite
}

// flushLocked writes the buffered samples in batches. Callers hold the mutex.
func (b *Backend) flushLocked() error {
	start := time.Now()

	if len(b.steps) > 0 {
		if err := b.mgr.DB.Create(b.steps).Error; err != nil {
			return fmt.Errorf("failed to write step states: %w", err)
		}
		b.steps = nil
	}
	if len(b.wheelStates) > 0 {
		if err := b.mgr.DB.Create(b.wheelStates).Error; err != nil {
			return fmt.Errorf("failed to write wheel states: %w", err)
		}
		b.wheelStates = nil
	}

	b.lastWrite = time.Since(start)
	return nil
}
