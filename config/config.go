// Package config loads the YAML settings shared by the command line tools
// and turns them into component builders.
//
// A file only needs the keys it wants to change:
//
//	strict: false
//	emulator:
//	  freq_ghz: 0.5
//	  memory_bytes: 1048576
//	  max_instructions: 100000
//	  trace: true
//	report:
//	  roundtrip: true
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/mipsasm/asm"
	"github.com/sarchlab/mipsasm/emu"
)

// ErrInvalidConfig is returned for settings that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable setting.
type Config struct {
	Strict   bool           `yaml:"strict"`
	Emulator EmulatorConfig `yaml:"emulator"`
	Report   ReportConfig   `yaml:"report"`
}

// EmulatorConfig configures the core used by the run command.
type EmulatorConfig struct {
	FreqGHz         float64 `yaml:"freq_ghz"`
	MemoryBytes     uint64  `yaml:"memory_bytes"`
	MaxInstructions uint64  `yaml:"max_instructions"`
	Trace           bool    `yaml:"trace"`
}

// ReportConfig configures the checks that follow assembly.
type ReportConfig struct {
	RoundTrip bool `yaml:"roundtrip"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Strict: true,
		Emulator: EmulatorConfig{
			FreqGHz:         1,
			MemoryBytes:     64 << 10,
			MaxInstructions: 1_000_000,
		},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected and
// an empty document yields the defaults.
func Parse(r io.Reader) (Config, error) {
	c := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks the settings that builders would otherwise panic on.
func (c Config) Validate() error {
	e := c.Emulator

	if e.FreqGHz <= 0 {
		return fmt.Errorf("%w: emulator.freq_ghz must be positive, got %v",
			ErrInvalidConfig, e.FreqGHz)
	}

	if e.MemoryBytes == 0 || e.MemoryBytes%4 != 0 || e.MemoryBytes > 1<<32 {
		return fmt.Errorf("%w: emulator.memory_bytes must be a non-zero multiple of 4 up to 4 GiB, got %d",
			ErrInvalidConfig, e.MemoryBytes)
	}

	return nil
}

// Encode writes the settings as YAML.
func (c Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(c); err != nil {
		return err
	}

	return enc.Close()
}

// LogLevel returns the lowest level the logger should emit.
func (c Config) LogLevel() slog.Level {
	if c.Emulator.Trace {
		return asm.LevelTrace
	}

	return slog.LevelInfo
}

// AssemblerBuilder returns an assembler builder with the configured
// strictness.
func (c Config) AssemblerBuilder() asm.Builder {
	return asm.NewBuilder().WithStrict(c.Strict)
}

// EmulatorBuilder returns a core builder driven by engine.
func (c Config) EmulatorBuilder(engine sim.Engine) emu.Builder {
	return emu.NewBuilder().
		WithEngine(engine).
		WithFreq(sim.Freq(c.Emulator.FreqGHz) * sim.GHz).
		WithMemorySize(c.Emulator.MemoryBytes).
		WithMaxInstructions(c.Emulator.MaxInstructions)
}
