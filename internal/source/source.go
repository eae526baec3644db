// Package source opens the pager's input.
package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

const StdinName = "<stdin>"

var stdin io.Reader = os.Stdin

type Input struct {
	io.Reader
	Name   string
	closer io.Closer
}

func (in *Input) Close() error {
	if in.closer == nil {
		return nil
	}
	return in.closer.Close()
}

// IsStdin reports whether path names standard input.
func IsStdin(path string) bool {
	return path == "" || path == "-"
}

// Open opens path, or standard input for "" and "-". A non-empty encoding
// label (any WHATWG name such as "latin1" or "shift_jis") decodes the
// input to UTF-8.
func Open(path, encoding string) (*Input, error) {
	in := &Input{Name: StdinName, Reader: stdin}
	if !IsStdin(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		in = &Input{Name: path, Reader: f, closer: f}
	}

	label := strings.TrimSpace(encoding)
	if label == "" {
		return in, nil
	}
	r, err := charset.NewReaderLabel(label, in.Reader)
	if err != nil {
		_ = in.Close()
		return nil, fmt.Errorf("encoding %q: %w", label, err)
	}
	in.Reader = r
	return in, nil
}

// Supported reports whether label names a known encoding.
func Supported(label string) bool {
	enc, _ := charset.Lookup(strings.TrimSpace(label))
	return enc != nil
}
