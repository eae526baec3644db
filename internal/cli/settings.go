package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/cellview/internal/cell"
	"github.com/baaaaaaaka/cellview/internal/config"
	"github.com/baaaaaaaka/cellview/internal/env"
	"github.com/baaaaaaaka/cellview/internal/render"
	"github.com/baaaaaaaka/cellview/internal/session"
	"github.com/baaaaaaaka/cellview/internal/source"
)

const defaultMaxLines = 1000

type viewFlags struct {
	color         bool
	ignoreSignals bool
	singleStep    bool
	noNumber      bool
	maxLines      int
	maxBytes      int64
	numberWidth   int
	byteMode      bool
	wideMode      bool
	eastAsian     bool
	tabWidth      int
	encoding      string
	poll          time.Duration
	trace         int
	traceFile     string
}

// viewSettings is the outcome of merging flags, the config file and the
// environment.
type viewSettings struct {
	Color         bool
	IgnoreSignals bool
	SingleStep    bool
	Numbering     bool
	MaxLines      int
	MaxBytes      int64
	NumberWidth   int
	Mode          cell.Mode
	EastAsian     bool
	TabWidth      int
	Encoding      string
	Poll          time.Duration
	Trace         int
	TraceFile     string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.BoolVarP(&f.color, "color", "c", false, "White text on a blue background")
	fs.BoolVarP(&f.ignoreSignals, "ignore-signals", "i", false, "Ignore SIGINT, SIGQUIT and SIGTERM")
	fs.BoolVarP(&f.singleStep, "single-step", "s", false, "Start in single-step mode (wait for each key)")
	fs.BoolVarP(&f.noNumber, "no-number", "N", false, "Start with line numbers hidden")
	fs.IntVarP(&f.maxLines, "max-lines", "n", defaultMaxLines, "Maximum number of lines to load (0 for no limit)")
	fs.Int64Var(&f.maxBytes, "max-bytes", 0, "Memory budget for decoded lines in bytes (0 for no limit)")
	fs.IntVarP(&f.numberWidth, "number-width", "w", render.DefaultNumberWidth, "Minimum width of the line-number field")
	fs.BoolVar(&f.byteMode, "byte-mode", false, "Show one cell per byte (default from locale)")
	fs.BoolVar(&f.wideMode, "wide-mode", false, "Decode UTF-8 into wide and combining cells (default from locale)")
	fs.BoolVar(&f.eastAsian, "east-asian", false, "Treat ambiguous-width characters as double width")
	fs.IntVar(&f.tabWidth, "tab-width", cell.DefaultTabWidth, "Tab stop width (negative shows tabs as escapes)")
	fs.StringVar(&f.encoding, "encoding", "", "Decode input from this character set (e.g. latin1, shift_jis)")
	fs.DurationVar(&f.poll, "poll", session.DefaultPollInterval, "Redraw interval in continuous mode")
	fs.CountVarP(&f.trace, "trace", "t", "Write trace records (repeat for more detail)")
	fs.StringVar(&f.traceFile, "trace-file", "", "Trace output file (default: "+defaultTraceFile+")")
	cmd.MarkFlagsMutuallyExclusive("byte-mode", "wide-mode")
}

func (f *viewFlags) resolve(changed func(string) bool, cfg config.Config, environ []string) (viewSettings, error) {
	s := viewSettings{
		Color:         f.color,
		IgnoreSignals: f.ignoreSignals,
		SingleStep:    f.singleStep,
		Numbering:     !f.noNumber,
		MaxLines:      f.maxLines,
		MaxBytes:      f.maxBytes,
		NumberWidth:   f.numberWidth,
		EastAsian:     f.eastAsian,
		TabWidth:      f.tabWidth,
		Encoding:      f.encoding,
		Poll:          f.poll,
		Trace:         f.trace,
		TraceFile:     f.traceFile,
	}

	if !changed("color") && cfg.Color != nil {
		s.Color = *cfg.Color
	}
	if !changed("no-number") && cfg.Numbering != nil {
		s.Numbering = *cfg.Numbering
	}
	if !changed("max-lines") && cfg.MaxLines != nil {
		s.MaxLines = *cfg.MaxLines
	}
	if !changed("max-bytes") && cfg.MaxBytes != nil {
		s.MaxBytes = *cfg.MaxBytes
	}
	if !changed("number-width") && cfg.NumberWidth != 0 {
		s.NumberWidth = cfg.NumberWidth
	}
	if !changed("east-asian") && cfg.EastAsian != nil {
		s.EastAsian = *cfg.EastAsian
	}
	if !changed("tab-width") && cfg.TabWidth != 0 {
		s.TabWidth = cfg.TabWidth
	}
	if !changed("encoding") && cfg.Encoding != "" {
		s.Encoding = cfg.Encoding
	}
	if !changed("poll") && cfg.PollInterval() != 0 {
		s.Poll = cfg.PollInterval()
	}

	// Converted input is UTF-8, so an encoding selects wide mode unless
	// byte mode was asked for on the command line.
	switch {
	case changed("byte-mode") && f.byteMode:
		s.Mode = cell.ModeByte
	case changed("wide-mode") && f.wideMode:
		s.Mode = cell.ModeWide
	case s.Encoding != "":
		s.Mode = cell.ModeWide
	case cfg.Mode == config.ModeByte:
		s.Mode = cell.ModeByte
	case cfg.Mode == config.ModeWide:
		s.Mode = cell.ModeWide
	case env.WideMode(environ):
		s.Mode = cell.ModeWide
	default:
		s.Mode = cell.ModeByte
	}

	if s.MaxLines < 0 {
		return viewSettings{}, fmt.Errorf("--max-lines must not be negative")
	}
	if s.MaxBytes < 0 {
		return viewSettings{}, fmt.Errorf("--max-bytes must not be negative")
	}
	if s.NumberWidth < 1 {
		return viewSettings{}, fmt.Errorf("--number-width must be at least 1")
	}
	if s.Encoding != "" && !source.Supported(s.Encoding) {
		return viewSettings{}, fmt.Errorf("unsupported encoding %q", s.Encoding)
	}
	return s, nil
}

// settings loads the config file and merges it with the command's flags.
func (o *rootOptions) settings(cmd *cobra.Command) (viewSettings, error) {
	store, err := config.NewStore(o.configPath)
	if err != nil {
		return viewSettings{}, err
	}
	cfg, err := store.Load()
	if err != nil {
		return viewSettings{}, err
	}
	return o.view.resolve(cmd.Flags().Changed, cfg, os.Environ())
}
