// Package linestore holds the lines of the viewed file in an arena addressed
// by stable handles, with explicit next/prev traversal.
package linestore

import (
	"github.com/baaaaaaaka/cellview/internal/cell"
)

// Ref addresses one line of a Store. Refs stay valid for the life of the
// store; NoLine marks the absence of a line.
type Ref int

const NoLine Ref = -1

type Line struct {
	cells  []cell.Cell
	record int
	cols   int
}

func (l Line) Len() int { return len(l.cells) }

// At returns the i-th cell, or cell.EOL past the end of the line.
func (l Line) At(i int) cell.Cell {
	if i < 0 || i >= len(l.cells) {
		return cell.EOL
	}
	return l.cells[i]
}

// Cells returns the line's cells. The slice must not be modified.
func (l Line) Cells() []cell.Cell { return l.cells }

// Record is the 1-based input record number the line was built from.
func (l Line) Record() int { return l.record }

func (l Line) Columns() int { return l.cols }

func (l Line) String() string { return cell.String(l.cells) }

// Store is an append-only arena of lines addressed by Ref handles.
type Store struct {
	lines    []Line
	capacity int
	maxCols  int
}

// New returns an empty store. A capacity of zero or less is unbounded.
func New(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	s := &Store{capacity: capacity}
	if capacity > 0 && capacity <= 4096 {
		s.lines = make([]Line, 0, capacity)
	}
	return s
}

// Append adds a line. Once a bounded store is full Append does nothing and
// reports false; this is not an error.
func (s *Store) Append(cells []cell.Cell) (Ref, bool) {
	if s.Full() {
		return NoLine, false
	}
	ln := Line{
		cells:  cells,
		record: len(s.lines) + 1,
		cols:   cell.Columns(cells),
	}
	s.lines = append(s.lines, ln)
	if ln.cols > s.maxCols {
		s.maxCols = ln.cols
	}
	return Ref(len(s.lines) - 1), true
}

func (s *Store) Full() bool {
	return s.capacity > 0 && len(s.lines) >= s.capacity
}

func (s *Store) Capacity() int { return s.capacity }

func (s *Store) Count() int { return len(s.lines) }

func (s *Store) Empty() bool { return len(s.lines) == 0 }

func (s *Store) First() Ref {
	if len(s.lines) == 0 {
		return NoLine
	}
	return 0
}

func (s *Store) Last() Ref {
	if len(s.lines) == 0 {
		return NoLine
	}
	return Ref(len(s.lines) - 1)
}

func (s *Store) Valid(ref Ref) bool {
	return ref >= 0 && int(ref) < len(s.lines)
}

func (s *Store) Next(ref Ref) Ref {
	if !s.Valid(ref) || int(ref) == len(s.lines)-1 {
		return NoLine
	}
	return ref + 1
}

func (s *Store) Prev(ref Ref) Ref {
	if !s.Valid(ref) || ref == 0 {
		return NoLine
	}
	return ref - 1
}

// Walk moves n steps from ref (backwards when n is negative), stopping at
// the first or last line. It returns the line reached and the steps taken.
func (s *Store) Walk(ref Ref, n int) (Ref, int) {
	if !s.Valid(ref) {
		return NoLine, 0
	}
	target := int(ref) + n
	if n > 0 && target < int(ref) {
		target = len(s.lines) - 1
	}
	if n < 0 && target > int(ref) {
		target = 0
	}
	target = clamp(target, 0, len(s.lines)-1)
	return Ref(target), target - int(ref)
}

func (s *Store) Line(ref Ref) (Line, bool) {
	if !s.Valid(ref) {
		return Line{}, false
	}
	return s.lines[ref], true
}

// Index is the 0-based position of ref, or -1.
func (s *Store) Index(ref Ref) int {
	if !s.Valid(ref) {
		return -1
	}
	return int(ref)
}

func (s *Store) RefAt(index int) Ref {
	if index < 0 || index >= len(s.lines) {
		return NoLine
	}
	return Ref(index)
}

// MaxColumns is the painted width of the longest line.
func (s *Store) MaxColumns() int { return s.maxCols }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
