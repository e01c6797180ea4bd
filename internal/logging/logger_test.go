package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewAttachesServiceAndVersion(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Output: &buf, Service: "keyforge-test", Version: "v1.2.3"})
	l.Debug().Str("layer", "KIDDO").Msg("layer on")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["service"] != "keyforge-test" {
		t.Errorf("service = %v, want keyforge-test", entry["service"])
	}
	if entry["version"] != "v1.2.3" {
		t.Errorf("version = %v, want v1.2.3", entry["version"])
	}
	if entry["layer"] != "KIDDO" {
		t.Errorf("layer = %v, want KIDDO", entry["layer"])
	}
	if entry["message"] != "layer on" {
		t.Errorf("message = %v, want %q", entry["message"], "layer on")
	}
}

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Output: &buf})
	l.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buf.String())
	}
	l.Warn().Msg("shown")
	if buf.Len() == 0 {
		t.Error("warn not logged at warn level")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	l := New(Config{Level: "chatty", Output: &bytes.Buffer{}})
	if l.GetLevel() != zerolog.InfoLevel {
		t.Errorf("GetLevel() = %v, want info", l.GetLevel())
	}
}

func TestWithComponent(t *testing.T) {
	// The global logger may already be configured by another test; only
	// check that the component field is attached.
	l := WithComponent("leader")
	var buf bytes.Buffer
	l = l.Output(&buf)
	l.Error().Msg("x")
	if !bytes.Contains(buf.Bytes(), []byte(`"component":"leader"`)) {
		t.Errorf("component missing from %q", buf.String())
	}
}
