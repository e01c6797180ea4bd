package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/keyforge/internal/persist"
	"github.com/dshills/keyforge/internal/sim"
)

var errNoTerminal = errors.New("sim needs an interactive terminal")

// isTerminal is replaced in tests.
var isTerminal = term.IsTerminal

func newSimCmd(opts *options) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the keyboard in the terminal",
		Long: `Draws the board with its indicator colors and feeds terminal keys to the
keyboard. Ctrl+F holds Fn, Ctrl+S holds Shift, Ctrl+W taps the key right of
Fn and Ctrl+C quits.

Logs go to log.file (KEYFORGE_LOG_FILE) since the board owns the screen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("metrics") {
				opts.settings.Metrics.Addr = metricsAddr
			}
			return runSim(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics", "", "serve Prometheus metrics on this address")
	return cmd
}

func runSim(ctx context.Context, opts *options) error {
	if !isTerminal(int(os.Stdin.Fd())) || !isTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}
	s := opts.settings

	logOut, closeLog, err := openLog(s.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := opts.logger(logOut)

	def, err := opts.definition()
	if err != nil {
		return err
	}
	fw, err := s.Firmware()
	if err != nil {
		return err
	}
	storage, err := persist.OpenFile(s.Storage.Path, persist.Size, logger.With().Str("component", "storage").Logger())
	if err != nil {
		return err
	}

	simOpts := []sim.Option{
		sim.WithLogger(logger),
		sim.WithMetricsAddr(s.Metrics.Addr),
		sim.WithTiming(time.Duration(s.Sim.TickMS)*time.Millisecond, s.Sim.ReleaseMS),
	}
	if s.Keyboard.Keymap != "" && s.Sim.Watch {
		simOpts = append(simOpts, sim.WithKeymapFile(s.Keyboard.Keymap))
	}

	simulator, err := sim.New(def, fw, storage, simOpts...)
	if err != nil {
		return err
	}
	logger.Info().Str("board", def.Name).Str("storage", storage.Path()).Msg("simulator starting")
	return simulator.Run(ctx)
}

// openLog opens the log file for appending. An empty path discards logs.
func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
