package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/baaaaaaaka/cellview/internal/keys"
	"github.com/baaaaaaaka/cellview/internal/session"
	"github.com/baaaaaaaka/cellview/internal/surface"
)

var (
	termGetSize    = term.GetSize
	termIsTerminal = term.IsTerminal
)

const (
	fallbackRows = 24
	fallbackCols = 80
)

type dumpOptions struct {
	rows     int
	cols     int
	keys     string
	noHeader bool
}

func newDumpCmd(root *rootOptions) *cobra.Command {
	opts := &dumpOptions{}
	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Print one rendered screen to stdout",
		Long:  "Render the input the way the interactive viewer would and print the screen as text. --keys replays viewer commands (for example \"5n3r\") first.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, root, opts, fileArg(args))
		},
	}
	cmd.Flags().IntVar(&opts.rows, "rows", 0, "Screen height including the header (default: terminal height)")
	cmd.Flags().IntVar(&opts.cols, "cols", 0, "Screen width (default: terminal width)")
	cmd.Flags().StringVar(&opts.keys, "keys", "", "Viewer commands to apply before printing")
	cmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "Omit the header row")
	return cmd
}

func runDump(cmd *cobra.Command, root *rootOptions, opts *dumpOptions, path string) error {
	settings, err := root.settings(cmd)
	if err != nil {
		return err
	}
	logger, closeTrace, err := openTrace(settings)
	if err != nil {
		return err
	}
	defer closeTrace()

	store, name, err := loadInput(cmd.Context(), cmd.ErrOrStderr(), settings, path, logger)
	if err != nil {
		return err
	}

	rows, cols := dumpSize(opts)
	buf := surface.NewBuffer(rows, cols)
	for _, r := range opts.keys {
		buf.Push(keys.Key(r))
	}
	buf.Push('q')

	s := session.New(buf, store, session.Options{
		Name:        name,
		Numbering:   settings.Numbering,
		NumberWidth: settings.NumberWidth,
		Now:         time.Now,
		Logger:      logger,
	})
	if err := s.Run(cmd.Context()); err != nil {
		return err
	}

	lines := buf.Lines()
	if opts.noHeader && len(lines) > 0 {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	out := cmd.OutOrStdout()
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func dumpSize(opts *dumpOptions) (rows, cols int) {
	rows, cols = opts.rows, opts.cols
	if rows > 0 && cols > 0 {
		return rows, cols
	}
	w, h := fallbackCols, fallbackRows
	if fd := int(os.Stdout.Fd()); termIsTerminal(fd) {
		if tw, th, err := termGetSize(fd); err == nil && tw > 0 && th > 0 {
			w, h = tw, th
		}
	}
	if rows <= 0 {
		rows = h
	}
	if cols <= 0 {
		cols = w
	}
	return rows, cols
}
