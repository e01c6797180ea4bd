package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/keyforge/internal/firmware"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), s)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyforge.toml")
	body := `
[keyboard]
tapping_term = 180
host_os = "mac"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("KEYFORGE_KEYBOARD_TAPPING_TERM", "150")
	t.Setenv("KEYFORGE_METRICS_ADDR", "127.0.0.1:9100")

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint32(150), s.Keyboard.TappingTerm, "env overrides file")
	require.Equal(t, "mac", s.Keyboard.HostOS, "file overrides default")
	require.Equal(t, "debug", s.Log.Level)
	require.Equal(t, "127.0.0.1:9100", s.Metrics.Addr)
	require.Equal(t, Default().Keyboard.LeaderTimeout, s.Keyboard.LeaderTimeout)
}

func TestReadSkipsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyforge.toml")
	require.NoError(t, os.WriteFile(path, []byte("[sim]\ntick_ms = 0\n"), 0o600))

	s, err := Read(path)
	require.NoError(t, err)
	require.Zero(t, s.Sim.TickMS)

	_, err = Load(path)
	require.ErrorIs(t, err, ErrInvalidSettings)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyforge.toml")
	require.NoError(t, os.WriteFile(path, []byte("[keyboard]\ntaping_term = 1\n"), 0o600))

	_, err := Load(path)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("Load() error = %v, want ErrParse", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	s := Default()
	s.Keyboard.TappingTerm = 0
	s.Keyboard.HostOS = "plan9"
	s.Keyboard.Keymap = "board.json"
	s.Log.Level = "loud"

	err := s.Validate()
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("Validate() error = %v, want ErrInvalidSettings", err)
	}
	for _, field := range []string{"tapping_term", "host_os", "keymap", "log.level"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Validate() error %q does not mention %s", err, field)
		}
	}
}

func TestFirmware(t *testing.T) {
	s := Default()
	s.Keyboard.HostOS = "darwin"
	s.Keyboard.LeaderTimeout = 700

	cfg, err := s.Firmware()
	require.NoError(t, err)
	require.Equal(t, firmware.OSMac, cfg.HostOS)
	require.Equal(t, uint32(700), cfg.LeaderTimeout)
	require.True(t, cfg.WaitForFirstKey)
}

func TestEncodeDecode(t *testing.T) {
	s := Default()
	s.Sim.Watch = false
	s.Storage.Path = "/tmp/kb.nv"

	data, err := s.Encode()
	require.NoError(t, err)

	var back Settings
	require.NoError(t, back.Decode(data))
	require.Equal(t, s, back)
}
