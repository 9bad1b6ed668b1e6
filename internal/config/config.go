// Package config loads the YAML configuration shared by the CLI commands
// and the HTTP service.
//
// A missing path yields Default(). A file only needs the keys it changes:
// it is decoded on top of the defaults, unknown keys are rejected, and the
// result is validated with go-playground/validator tags. Command-line flags
// are applied by the caller after Load.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the root document.
type Config struct {
	Solver Solver `yaml:"solver"`
	Server Server `yaml:"server"`
	Batch  Batch  `yaml:"batch"`
	Log    Log    `yaml:"log"`
}

// Solver mirrors solver.Config in text form.
type Solver struct {
	Algo          string        `yaml:"algo" validate:"oneof=bnb bb branch-and-bound dp dynamic dynamic-programming"`
	Variant       string        `yaml:"variant" validate:"oneof=bounded 0-1 01 binary unbounded"`
	TimeLimit     time.Duration `yaml:"time_limit" validate:"gte=0"`
	DropZeroValue bool          `yaml:"drop_zero_value"`
	MaxCells      int64         `yaml:"max_cells" validate:"gt=0"`
	RollingRow    bool          `yaml:"rolling_row"`
}

// Server configures the HTTP service.
type Server struct {
	Addr         string        `yaml:"addr" validate:"required,hostname_port"`
	MaxTimeLimit time.Duration `yaml:"max_time_limit" validate:"gt=0"`
	MaxItems     int           `yaml:"max_items" validate:"gt=0"`
	RatePerSec   float64       `yaml:"rate_per_sec" validate:"gt=0"`
	Burst        int           `yaml:"burst" validate:"gte=1"`
}

// Batch configures the benchmark runner.
type Batch struct {
	Threads int    `yaml:"threads" validate:"gte=1,lte=1024"`
	Format  string `yaml:"format" validate:"omitempty,oneof=tp budget-first classic counted unbounded yaml yml"`
}

// Log configures the zap logger.
type Log struct {
	Level string `yaml:"level" validate:"oneof=info debug trace"`
	Dev   bool   `yaml:"dev"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Solver: Solver{
			Algo:          "bnb",
			Variant:       "bounded",
			DropZeroValue: true,
			MaxCells:      1 << 26,
		},
		Server: Server{
			Addr:         "127.0.0.1:8080",
			MaxTimeLimit: 30 * time.Second,
			MaxItems:     100000,
			RatePerSec:   20,
			Burst:        40,
		},
		Batch: Batch{Threads: 1},
		Log:   Log{Level: "info"},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads path on top of Default. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Decode reads a YAML document from r on top of Default and validates it.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}
