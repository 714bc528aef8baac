package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/addrscope/addrscope/pkg/probe"
)

// Config holds the tunable settings for a probe run.
type Config struct {
	// MaxDepth is the recursion depth to probe to. Kept deliberately small:
	// the point is observing nested frames, not exhausting the stack.
	MaxDepth int `yaml:"max_depth"`
	// Output, when set, is a file path samples are additionally recorded to.
	Output string `yaml:"output"`
	// Compression controls whether the output file is zstd-compressed.
	Compression bool `yaml:"compression"`
}

// Default returns the configuration used when no file or flags are given.
func Default() Config {
	return Config{
		MaxDepth:    3,
		Output:      "",
		Compression: true,
	}
}

// Load reads a YAML config file, applying defaults for unset fields.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration describes a runnable probe.
func (c Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: config max_depth %d", probe.ErrInvalidDepth, c.MaxDepth)
	}
	return nil
}
