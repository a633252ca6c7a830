package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// StorageConfig selects and configures the run recorder backend.
type StorageConfig struct {
	Type       string       `json:"type" mapstructure:"type"`
	SqlitePath string       `json:"sqlitePath" mapstructure:"sqlitePath"`
	Memory     MemoryConfig `json:"memory" mapstructure:"memory"`
}

// Load reads configuration from a JSON file and sets default values.
// configDir is the directory containing the config file. A missing file is
// not an error; defaults describe a complete simulation.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./simlogs")

	viper.SetDefault("sim.stepSize", 0.001)
	viper.SetDefault("sim.duration", 10.0)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.sqlitePath", "./simruns.db")
	viper.SetDefault("storage.memory.outputDir", "./simruns")
	viper.SetDefault("storage.memory.compressOutput", true)

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "vehiclesim")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "vehiclesim-metrics")

	viper.SetDefault("export.outputDir", "./povray")

	setVehicleDefaults()

	viper.SetConfigName("vehiclesim.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat returns a float config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}

// Storage returns the run recorder settings.
func Storage() StorageConfig {
	return StorageConfig{
		Type:       viper.GetString("storage.type"),
		SqlitePath: viper.GetString("storage.sqlitePath"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
	}
}
