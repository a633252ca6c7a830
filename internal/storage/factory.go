// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/groundsim/vehicle/internal/config"
	"github.com/groundsim/vehicle/internal/storage/gormdb"
	"github.com/groundsim/vehicle/internal/storage/memory"
)

// NewBackend creates a run recorder backend based on configuration.
func NewBackend(cfg config.StorageConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "gorm", "postgres", "sqlite":
		return gormdb.New(log, cfg.SqlitePath), nil
	case "memory":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
