package sim

import (
	"encoding/json"
	"io"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds session world configuration
type Config struct {
	// Store settings

	MaxEntities int `json:"max_entities" yaml:"max_entities"` // 0 means unbounded

	// Tick settings

	TickWorkers int `json:"tick_workers" yaml:"tick_workers"`

	// Registry settings

	RegistryShards int `json:"registry_shards" yaml:"registry_shards"`

	// Logging

	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the configuration a world runs with when nothing
// is specified.
func DefaultConfig() Config {
	return Config{
		MaxEntities:    0,
		TickWorkers:    runtime.NumCPU(),
		RegistryShards: 16,
		LogLevel:       "info",
	}
}

// LoadJSON loads config from a JSON reader.
func LoadJSON(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Config{}, err
	}
	return c.withDefaults(), nil
}

// LoadYAML loads config from a YAML reader.
func LoadYAML(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Config{}, err
	}
	return c.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TickWorkers < 1 {
		c.TickWorkers = def.TickWorkers
	}
	if c.RegistryShards < 1 {
		c.RegistryShards = def.RegistryShards
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.MaxEntities < 0 {
		c.MaxEntities = 0
	}
	return c
}
