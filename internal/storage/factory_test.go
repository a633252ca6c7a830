package storage

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundsim/vehicle/internal/config"
	"github.com/groundsim/vehicle/internal/storage/memory"
)

func TestNewBackend_Memory(t *testing.T) {
	cfg := config.StorageConfig{
		Type:   "memory",
		Memory: config.MemoryConfig{OutputDir: t.TempDir()},
	}

	b, err := NewBackend(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &memory.Backend{}, b)

	// the memory backend supports export path read-back
	_, ok := b.(Exportable)
	assert.True(t, ok)
}

func TestNewBackend_Gorm_TracksWriteDuration(t *testing.T) {
	cfg := config.StorageConfig{Type: "sqlite", SqlitePath: "runs.db"}

	b, err := NewBackend(cfg, zerolog.Nop())
	require.NoError(t, err)

	// recorder health samples read the last flush duration off the backend
	_, ok := b.(WriteTimed)
	assert.True(t, ok)
}

func TestNewBackend_UnknownType(t *testing.T) {
	_, err := NewBackend(config.StorageConfig{Type: "carrierpigeon"}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrierpigeon")
}
