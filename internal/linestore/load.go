package linestore

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"unsafe"

	"github.com/baaaaaaaka/cellview/internal/cell"
)

// ErrBudgetExhausted stops ingestion when the next line would exceed
// Limits.MaxBytes. The lines read so far stay usable.
var ErrBudgetExhausted = errors.New("line budget exhausted")

// SourceError reports an input that could not be read at all.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string { return "read input: " + e.Err.Error() }

func (e *SourceError) Unwrap() error { return e.Err }

type Limits struct {
	// MaxLines bounds the store. Ingestion stops silently once reached.
	MaxLines int
	// MaxBytes bounds the memory held by decoded cells. Zero is unbounded.
	MaxBytes int64
}

type LoadStats struct {
	Lines        int
	Bytes        int64
	Memory       int64
	Truncated    int
	DroppedMarks int
	// Capped is set when input remained after the store filled up.
	Capped bool
}

const (
	cellSize     = int64(unsafe.Sizeof(cell.Cell{}))
	lineOverhead = int64(unsafe.Sizeof(Line{}))
	readBufSize  = 64 * 1024
)

// Load reads newline-delimited records from r and packs each into a line.
//
// The returned store is always non-nil. When a later record fails (read
// error, budget, cancellation) the error is returned together with every
// line built before it. Only a source that fails before yielding anything
// produces a *SourceError.
func Load(ctx context.Context, r io.Reader, codec *cell.Codec, limits Limits) (*Store, LoadStats, error) {
	store := New(limits.MaxLines)
	var stats LoadStats
	br := bufio.NewReaderSize(r, readBufSize)

	for {
		if err := ctx.Err(); err != nil {
			return store, stats, err
		}
		if store.Full() {
			if _, err := br.Peek(1); err == nil {
				stats.Capped = true
			}
			return store, stats, nil
		}

		rec, readErr := br.ReadBytes('\n')
		if len(rec) > 0 {
			stats.Bytes += int64(len(rec))
			res := codec.EncodeLine(trimEOL(rec))
			size := int64(len(res.Cells))*cellSize + lineOverhead
			if limits.MaxBytes > 0 && stats.Memory+size > limits.MaxBytes {
				return store, stats, fmt.Errorf("line %d: %w", store.Count()+1, ErrBudgetExhausted)
			}
			store.Append(res.Cells)
			stats.Memory += size
			stats.Lines++
			stats.DroppedMarks += res.Dropped
			if res.Truncated {
				stats.Truncated++
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return store, stats, nil
			}
			if stats.Bytes == 0 {
				return store, stats, &SourceError{Err: readErr}
			}
			return store, stats, fmt.Errorf("read line %d: %w", store.Count()+1, readErr)
		}
	}
}

// Build packs literal lines, one store line per string.
func Build(codec *cell.Codec, lines ...string) *Store {
	store := New(0)
	for _, ln := range lines {
		store.Append(codec.EncodeString(ln))
	}
	return store
}

func trimEOL(rec []byte) []byte {
	rec = bytes.TrimSuffix(rec, []byte{'\n'})
	return bytes.TrimSuffix(rec, []byte{'\r'})
}
