// Package config loads the YAML run configuration of a discovery run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-sigpath/pkg/validation"
)

// Defaults applied before a file is decoded.
const (
	DefaultMaxDepth      = 3
	DefaultWorkers       = 1
	DefaultLogLevel      = "info"
	DefaultSolverTimeout = 10 * time.Minute

	maxSearchDepth = 64
)

// Config describes one run of the pipeline.
type Config struct {
	Network   string `yaml:"network" validate:"required"`
	UpHeats   string `yaml:"up_heats" validate:"required"`
	DownHeats string `yaml:"down_heats"`
	// Targets is an optional list file; without it every downstream gene
	// is a target.
	Targets string `yaml:"targets"`
	// Restrict is an optional node list; edges touching other nodes are
	// dropped when the network is loaded.
	Restrict string `yaml:"restrict"`

	Search   SearchConfig `yaml:"search"`
	Solver   SolverConfig `yaml:"solver"`
	Output   OutputConfig `yaml:"output"`
	LogLevel string       `yaml:"log_level" validate:"oneof=debug info warn warning error"`
}

// SearchConfig holds path discovery options.
type SearchConfig struct {
	MaxDepth         int  `yaml:"max_depth" validate:"gte=0"`
	Workers          int  `yaml:"workers" validate:"gte=0"`
	NegateInhibitory bool `yaml:"negate_inhibitory"`
}

// SolverConfig configures the optional external Steiner-tree solver.
type SolverConfig struct {
	Script  string        `yaml:"script"`
	Timeout time.Duration `yaml:"timeout"`
}

// OutputConfig lists the files a run writes. Empty paths are skipped.
type OutputConfig struct {
	Network  string `yaml:"network"`
	Solution string `yaml:"solution"`
	DOT      string `yaml:"dot"`
	Metrics  string `yaml:"metrics"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			MaxDepth: DefaultMaxDepth,
			Workers:  DefaultWorkers,
		},
		Solver:   SolverConfig{Timeout: DefaultSolverTimeout},
		LogLevel: DefaultLogLevel,
	}
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a configuration over the defaults. Unknown keys are
// rejected. The result is not validated; call Validate once flag overrides
// have been applied.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	tagErr := validation.Struct(c)

	cv := validation.NewConfigValidator("config").
		RangeInt("search.max_depth", c.Search.MaxDepth, 0, maxSearchDepth).
		FileExists("network", c.Network).
		FileExists("up_heats", c.UpHeats).
		FileExists("down_heats", c.DownHeats).
		FileExists("targets", c.Targets).
		FileExists("restrict", c.Restrict).
		AnyRequired(map[string]string{"down_heats": c.DownHeats, "targets": c.Targets}).
		When(c.Solver.Script != "", func(cv *validation.ConfigValidator) {
			cv.FileExists("solver.script", c.Solver.Script).
				MinDuration("solver.timeout", c.Solver.Timeout, time.Second)
		})

	return errors.Join(tagErr, cv.Validate())
}
