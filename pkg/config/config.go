// Package config loads and validates the YAML document that supplies
// default generation and server parameters to the CLI binaries. Command
// flags and arguments always take precedence over a loaded config.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/dungeonwalk/pkg/mapgen"
)

// Config is the top-level document cmd/dungeonwalk and cmd/mapserverd load
// at startup.
type Config struct {
	// Seed is the master seed for deterministic generation. Zero means
	// "generate a fresh seed at runtime".
	Seed uint64 `yaml:"seed"`

	// Generation holds the default map shape and algorithm.
	Generation GenerationCfg `yaml:"generation"`

	// Server holds the TCP serving collaborator's defaults.
	Server ServerCfg `yaml:"server"`

	// Export holds a default export format. Neither CLI binary reads it;
	// showmap always renders ASCII.
	Export ExportCfg `yaml:"export"`
}

// GenerationCfg specifies default map generation parameters.
type GenerationCfg struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Kind     string `yaml:"kind"`
	MinRooms int    `yaml:"minRooms,omitempty"`
	MaxRooms int    `yaml:"maxRooms,omitempty"`
}

// ServerCfg specifies the TCP server's bind address.
type ServerCfg struct {
	Port int `yaml:"port"`
}

// ExportCfg selects the export format.
type ExportCfg struct {
	Format string `yaml:"format"` // "json", "svg", or "ascii"
}

// DefaultConfig returns the built-in defaults used when no config file is
// present: a 40x40 passage map on a freshly generated seed, port 5000, and
// ASCII export.
func DefaultConfig() Config {
	return Config{
		Seed: 0,
		Generation: GenerationCfg{
			Width: 40, Height: 40, Kind: "passage", MinRooms: 4, MaxRooms: 8,
		},
		Server: ServerCfg{Port: 5000},
		Export: ExportCfg{Format: "ascii"},
	}
}

// Load reads and validates a YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses and validates a YAML config document.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks every field against the ranges the rest of the module
// enforces, so a bad config file fails fast instead of surfacing as a
// mid-generation error.
func (c *Config) Validate() error {
	if err := c.Generation.Validate(); err != nil {
		return fmt.Errorf("generation: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Validate checks GenerationCfg constraints.
func (g *GenerationCfg) Validate() error {
	if g.Width < mapgen.MinWidth || g.Width > mapgen.MaxWidth {
		return fmt.Errorf("width must be in [%d, %d], got %d", mapgen.MinWidth, mapgen.MaxWidth, g.Width)
	}
	if g.Height < mapgen.MinHeight || g.Height > mapgen.MaxHeight {
		return fmt.Errorf("height must be in [%d, %d], got %d", mapgen.MinHeight, mapgen.MaxHeight, g.Height)
	}
	if _, err := mapgen.ParseKind(g.Kind); err != nil {
		return err
	}
	if g.MaxRooms != 0 && g.MinRooms > g.MaxRooms {
		return fmt.Errorf("minRooms (%d) must be <= maxRooms (%d)", g.MinRooms, g.MaxRooms)
	}
	return nil
}

// Validate checks ServerCfg constraints.
func (s *ServerCfg) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port must be in [1, 65535], got %d", s.Port)
	}
	return nil
}

// Validate checks ExportCfg constraints.
func (e *ExportCfg) Validate() error {
	switch e.Format {
	case "json", "svg", "ascii":
		return nil
	default:
		return errors.New("format must be one of: json, svg, ascii")
	}
}

// ToYAML serializes the config back to YAML, useful for writing out a
// starter config file.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
