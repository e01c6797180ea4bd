package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/keyforge/internal/firmware"
	"github.com/dshills/keyforge/internal/input/keymap"
	"github.com/dshills/keyforge/internal/input/leader"
	"github.com/dshills/keyforge/internal/input/tapdance"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "KEYFORGE_"

// Settings is the complete keyforge configuration.
type Settings struct {
	Keyboard KeyboardSettings `toml:"keyboard" envPrefix:"KEYBOARD_"`
	Storage  StorageSettings  `toml:"storage" envPrefix:"STORAGE_"`
	Sim      SimSettings      `toml:"sim" envPrefix:"SIM_"`
	Log      LogSettings      `toml:"log" envPrefix:"LOG_"`
	Metrics  MetricsSettings  `toml:"metrics" envPrefix:"METRICS_"`
}

// KeyboardSettings configures the input core.
type KeyboardSettings struct {
	// TappingTerm is the tap dance window in milliseconds.
	TappingTerm uint32 `toml:"tapping_term" env:"TAPPING_TERM"`

	// LeaderTimeout is the per-key leader deadline in milliseconds.
	LeaderTimeout uint32 `toml:"leader_timeout" env:"LEADER_TIMEOUT"`

	// WaitForFirstKey delays the leader deadline until the first key.
	WaitForFirstKey bool `toml:"wait_for_first_key" env:"WAIT_FOR_FIRST_KEY"`

	// HostOS picks the base layer when storage has none ("windows", "mac").
	HostOS string `toml:"host_os" env:"HOST_OS"`

	// Keymap is an optional TOML or YAML keymap file replacing the built-in
	// board keymap.
	Keymap string `toml:"keymap" env:"KEYMAP"`
}

// StorageSettings configures the non-volatile storage image.
type StorageSettings struct {
	// Path is the storage image file. Empty keeps storage in memory.
	Path string `toml:"path" env:"PATH"`
}

// SimSettings configures the terminal simulator.
type SimSettings struct {
	// TickMS is the scan tick interval in milliseconds.
	TickMS uint32 `toml:"tick_ms" env:"TICK_MS"`

	// ReleaseMS is how long a terminal key stays pressed. Terminals report
	// presses only, so releases are synthesized.
	ReleaseMS uint32 `toml:"release_ms" env:"RELEASE_MS"`

	// Watch reloads the keymap file when it changes.
	Watch bool `toml:"watch" env:"WATCH"`
}

// LogSettings configures logging.
type LogSettings struct {
	Level string `toml:"level" env:"LEVEL"`

	// File receives log output. The simulator owns the terminal, so logs go
	// nowhere when File is empty.
	File string `toml:"file" env:"FILE"`
}

// MetricsSettings configures the Prometheus endpoint.
type MetricsSettings struct {
	// Addr is the listen address for /metrics. Empty disables the server.
	Addr string `toml:"addr" env:"ADDR"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Keyboard: KeyboardSettings{
			TappingTerm:     tapdance.DefaultTappingTerm,
			LeaderTimeout:   leader.DefaultTimeout,
			WaitForFirstKey: true,
			HostOS:          "windows",
		},
		Storage: StorageSettings{Path: "keyforge.nv"},
		Sim: SimSettings{
			TickMS:    10,
			ReleaseMS: 120,
			Watch:     true,
		},
		Log: LogSettings{Level: "info"},
	}
}

// Load returns defaults overridden by the file at path, if any, and by the
// environment. The result is validated.
func Load(path string) (Settings, error) {
	s, err := Read(path)
	if err != nil {
		return s, err
	}
	return s, s.Validate()
}

// Read is Load without validation, for callers that apply further
// overrides before validating.
func Read(path string) (Settings, error) {
	s := Default()
	if path != "" {
		if err := s.mergeFile(path); err != nil {
			return s, err
		}
	}
	if err := s.ApplyEnv(); err != nil {
		return s, err
	}
	return s, nil
}

// Decode overrides s with the TOML settings in data.
func (s *Settings) Decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	return nil
}

func (s *Settings) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading settings file %s: %w", path, err)
	}
	if err := s.Decode(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides s with KEYFORGE_* environment variables.
func (s *Settings) ApplyEnv() error {
	if err := env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks every setting. All problems are reported together.
func (s Settings) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSettings}, args...)...))
	}

	if s.Keyboard.TappingTerm == 0 || s.Keyboard.TappingTerm > 5000 {
		invalid("keyboard.tapping_term %d not in 1..5000", s.Keyboard.TappingTerm)
	}
	if s.Keyboard.LeaderTimeout == 0 || s.Keyboard.LeaderTimeout > 10000 {
		invalid("keyboard.leader_timeout %d not in 1..10000", s.Keyboard.LeaderTimeout)
	}
	if _, err := firmware.ParseOS(s.Keyboard.HostOS); err != nil {
		invalid("keyboard.host_os: %v", err)
	}
	if s.Keyboard.Keymap != "" {
		if _, err := keymap.FormatFromPath(s.Keyboard.Keymap); err != nil {
			invalid("keyboard.keymap: %v", err)
		}
	}
	if s.Sim.TickMS == 0 || s.Sim.TickMS > 1000 {
		invalid("sim.tick_ms %d not in 1..1000", s.Sim.TickMS)
	}
	if s.Sim.ReleaseMS < s.Sim.TickMS {
		invalid("sim.release_ms %d shorter than one tick", s.Sim.ReleaseMS)
	}
	if _, err := zerolog.ParseLevel(s.Log.Level); err != nil {
		invalid("log.level %q", s.Log.Level)
	}
	return errors.Join(errs...)
}

// Firmware returns the keyboard configuration.
func (s Settings) Firmware() (firmware.Config, error) {
	osys, err := firmware.ParseOS(s.Keyboard.HostOS)
	if err != nil {
		return firmware.Config{}, err
	}
	return firmware.Config{
		TappingTerm:     s.Keyboard.TappingTerm,
		LeaderTimeout:   s.Keyboard.LeaderTimeout,
		WaitForFirstKey: s.Keyboard.WaitForFirstKey,
		HostOS:          osys,
	}, nil
}

// Encode renders s as TOML.
func (s Settings) Encode() ([]byte, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return data, nil
}
