package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/keyforge/internal/board"
	"github.com/dshills/keyforge/internal/config"
	"github.com/dshills/keyforge/internal/firmware"
	"github.com/dshills/keyforge/internal/input/keymap"
	"github.com/dshills/keyforge/internal/logging"
)

// options holds the global flags and the settings they resolve to.
type options struct {
	configPath string
	logLevel   string
	keymap     string
	storage    string
	hostOS     string

	settings config.Settings
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "keyforge",
		Short: "Keyboard firmware core with a terminal simulator",
		Long: `keyforge runs the layer, tap dance, leader and indicator logic of a
programmable keyboard. The sim command drives it from your terminal.

Settings are read from the config file, then KEYFORGE_* environment
variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "keyforge.toml", "settings file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVarP(&opts.keymap, "keymap", "k", "", "keymap file (default: built-in Q3)")
	flags.StringVar(&opts.storage, "storage", "", "non-volatile storage image")
	flags.StringVar(&opts.hostOS, "os", "", "host OS selecting the base layer (windows, mac)")

	cmd.AddCommand(
		newSimCmd(opts),
		newCheckCmd(),
		newEEPROMCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load resolves settings: file, environment, then changed flags.
func (o *options) load(cmd *cobra.Command) error {
	s, err := config.Read(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		s.Log.Level = o.logLevel
	}
	if flags.Changed("keymap") {
		s.Keyboard.Keymap = o.keymap
	}
	if flags.Changed("storage") {
		s.Storage.Path = o.storage
	}
	if flags.Changed("os") {
		s.Keyboard.HostOS = o.hostOS
	}

	if err := s.Validate(); err != nil {
		return err
	}
	o.settings = s
	return nil
}

func (o *options) logger(w io.Writer) zerolog.Logger {
	return logging.New(logging.Config{
		Level:   o.settings.Log.Level,
		Output:  w,
		Version: version,
	})
}

// definition returns the board for the configured keymap file, or the
// built-in Q3 when none is set.
func (o *options) definition() (firmware.Definition, error) {
	path := o.settings.Keyboard.Keymap
	if path == "" {
		return board.Q3()
	}
	km, err := keymap.LoadFile(path)
	if err != nil {
		return firmware.Definition{}, err
	}
	return board.Define(km)
}
