package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/keyforge/internal/board"
	"github.com/dshills/keyforge/internal/input/keymap"
)

// errCheckFailed is returned after check has printed its findings.
var errCheckFailed = errors.New("keymap check failed")

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <keymap>",
		Short: "Validate a keymap file against the board",
		Long: `Loads a TOML or YAML keymap and checks it against the Q3 layer roles,
tap dances and indicator rules. Every problem is listed.

Exit code 0 if the keymap is usable, 1 otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), args[0])
		},
	}
}

func runCheck(out io.Writer, path string) error {
	km, err := keymap.LoadFile(path)
	if err != nil {
		report(out, path, err)
		return errCheckFailed
	}
	if _, err := board.Define(km); err != nil {
		report(out, path, err)
		return errCheckFailed
	}

	fmt.Fprintf(out, "%s: ok (%s, %d layers, %d keys, %d dances)\n",
		path, km.Name, km.Layers(), km.Layout().Len(), len(km.Symbols().Dances))
	return nil
}

// report prints each joined error on its own line.
func report(out io.Writer, path string, err error) {
	fmt.Fprintf(out, "%s: invalid\n", path)
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(out, "  %s\n", line)
	}
}
