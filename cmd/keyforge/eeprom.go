package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/dshills/keyforge/internal/persist"
)

func newEEPROMCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eeprom",
		Short: "Inspect or reset the stored user configuration",
	}

	var asJSON bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the stored configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEEPROMShow(cmd.OutOrStdout(), opts, asJSON)
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEEPROMReset(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.AddCommand(show, reset)
	return cmd
}

// eepromState is what show reports.
type eepromState struct {
	path         string
	initialized  bool
	cfg          persist.Config
	defaultLayer string
}

func readEEPROM(opts *options) (eepromState, error) {
	path := opts.settings.Storage.Path
	storage, err := persist.OpenFile(path, persist.Size, zerolog.Nop())
	if err != nil {
		return eepromState{}, err
	}

	state := eepromState{path: path}
	cfg, layerID, err := persist.Read(storage)
	switch {
	case errors.Is(err, persist.ErrBlank):
		return state, nil
	case err != nil:
		return eepromState{}, err
	}
	state.initialized = true
	state.cfg = cfg

	if layerID != persist.NoDefaultLayer {
		state.defaultLayer = fmt.Sprintf("%d", layerID)
		if def, err := opts.definition(); err == nil {
			if names := def.Keymap.Symbols().Layers; int(layerID) < len(names) {
				state.defaultLayer = names[layerID]
			}
		}
	}
	return state, nil
}

func runEEPROMShow(out io.Writer, opts *options, asJSON bool) error {
	state, err := readEEPROM(opts)
	if err != nil {
		return err
	}
	if asJSON {
		doc, err := state.json()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, doc)
		return nil
	}

	fmt.Fprintf(out, "path: %s\n", state.path)
	if !state.initialized {
		fmt.Fprintln(out, "blank (defaults apply on first run)")
		return nil
	}
	custom := "none"
	if state.cfg.Custom.IsSet() {
		custom = state.cfg.Custom.String()
	}
	defaultLayer := state.defaultLayer
	if defaultLayer == "" {
		defaultLayer = "none (host OS switch)"
	}
	fmt.Fprintf(out, "autocorrect: %s\n", onOff(state.cfg.Autocorrect))
	fmt.Fprintf(out, "jiggler: %s\n", onOff(state.cfg.Jiggler))
	fmt.Fprintf(out, "preset: %d (%s)\n", state.cfg.Preset, state.cfg.ActiveEffect())
	fmt.Fprintf(out, "custom: %s\n", custom)
	fmt.Fprintf(out, "default layer: %s\n", defaultLayer)
	return nil
}

func (s eepromState) json() (string, error) {
	doc := "{}"
	var err error
	set := func(path string, value any) {
		if err == nil {
			doc, err = sjson.Set(doc, path, value)
		}
	}

	set("path", s.path)
	set("initialized", s.initialized)
	if s.initialized {
		set("autocorrect", s.cfg.Autocorrect)
		set("jiggler", s.cfg.Jiggler)
		set("preset", s.cfg.Preset)
		set("custom.set", s.cfg.Custom.IsSet())
		set("custom.mode", s.cfg.Custom.Mode.String())
		set("custom.hue", s.cfg.Custom.HSV.H)
		set("custom.saturation", s.cfg.Custom.HSV.S)
		set("custom.value", s.cfg.Custom.HSV.V)
		set("custom.speed", s.cfg.Custom.Speed)
		if s.defaultLayer != "" {
			set("default_layer", s.defaultLayer)
		} else {
			set("default_layer", nil)
		}
	}
	if err != nil {
		return "", fmt.Errorf("encode eeprom state: %w", err)
	}
	return doc, nil
}

func runEEPROMReset(out, logOut io.Writer, opts *options) error {
	path := opts.settings.Storage.Path
	logger := opts.logger(logOut)
	storage, err := persist.OpenFile(path, persist.Size, logger)
	if err != nil {
		return err
	}
	store := persist.NewStore(storage, persist.WithLogger(logger.With().Str("component", "persist").Logger()))
	store.Load()
	store.Reset()

	// Store writes only log failures, so read the image back.
	if cfg, _, err := persist.Read(storage); err != nil || cfg != persist.Defaults() {
		return fmt.Errorf("reset %s: storage not written", path)
	}
	fmt.Fprintf(out, "reset %s\n", path)
	return nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
