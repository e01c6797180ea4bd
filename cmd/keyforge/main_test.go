package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/keyforge/internal/board"
)

// keyforge runs the CLI with a settings file path that does not exist, so
// only defaults, the environment and args apply.
func keyforge(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...)
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestVersion(t *testing.T) {
	code, out, _ := keyforge(t, "version")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "keyforge dev")
}

func TestVersionIgnoresBrokenSettings(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := writeFile(t, "keyforge.toml", []byte("[sim]\ntick_ms = 0\n"))
	code := run([]string{"--config", path, "version"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
}

func TestCheckAcceptsBoard(t *testing.T) {
	path := writeFile(t, "q3.toml", board.Source())

	code, out, _ := keyforge(t, "check", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "ok (q3, 10 layers, 88 keys, 4 dances)")
}

func TestCheckListsProblems(t *testing.T) {
	path := writeFile(t, "tiny.toml", []byte(`
name = "tiny"

[layout]
rows = [2]

[[layers]]
name = "ONLY"
keys = ["KC_A KC_B"]
`))

	code, out, _ := keyforge(t, "check", path)
	require.Equal(t, exitFailure, code)
	assert.Contains(t, out, "tiny.toml: invalid")
	assert.Contains(t, out, "role")
}

func TestCheckMissingFile(t *testing.T) {
	code, out, _ := keyforge(t, "check", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Equal(t, exitFailure, code)
	assert.Contains(t, out, "invalid")
}

func TestCheckNeedsArgument(t *testing.T) {
	code, _, errOut := keyforge(t, "check")
	require.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "accepts 1 arg")
}

func TestInvalidFlagSettings(t *testing.T) {
	code, _, errOut := keyforge(t, "--os", "beos", "eeprom", "show")
	require.Equal(t, exitSettings, code)
	assert.Contains(t, errOut, "keyboard.host_os")
}

func TestEEPROMShowAndReset(t *testing.T) {
	nv := filepath.Join(t.TempDir(), "keyforge.nv")

	code, out, _ := keyforge(t, "--storage", nv, "eeprom", "show", "--json")
	require.Equal(t, exitOK, code)
	require.False(t, gjson.Get(out, "initialized").Bool())
	require.Equal(t, nv, gjson.Get(out, "path").String())

	code, out, _ = keyforge(t, "--storage", nv, "eeprom", "reset")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "reset "+nv)

	code, out, _ = keyforge(t, "--storage", nv, "eeprom", "show", "--json")
	require.Equal(t, exitOK, code)
	require.True(t, gjson.Get(out, "initialized").Bool())
	require.True(t, gjson.Get(out, "autocorrect").Bool())
	require.True(t, gjson.Get(out, "jiggler").Bool())
	require.Equal(t, int64(1), gjson.Get(out, "preset").Int())
	require.False(t, gjson.Get(out, "custom.set").Bool())
	require.Equal(t, gjson.Null, gjson.Get(out, "default_layer").Type)

	code, out, _ = keyforge(t, "--storage", nv, "eeprom", "show")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "preset: 1 (solid hsv(0,0,60) speed=128)")
	assert.Contains(t, out, "default layer: none")
}

func TestSimNeedsTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	defer func() { isTerminal = orig }()

	code, _, errOut := keyforge(t, "sim")
	require.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, errNoTerminal.Error())
}
