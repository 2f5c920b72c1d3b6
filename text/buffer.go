/*
Package text provides a random-access view over input code units with
1-based line/column position tracking, modeled on the position
bookkeeping gorgo's lr/scanner package gets for free from text/scanner.
*/
package text

import "github.com/npillmayer/fuzzyparse"

// Buffer is a random-access view of input runes, tracking line and
// column positions. It never mutates and is safe for concurrent reads.
type Buffer struct {
	runes []rune
	// lineStart[i] is the code-unit index at which line i+1 begins.
	lineStart []int
}

// NewBuffer wraps s for random access.
func NewBuffer(s string) *Buffer {
	runes := []rune(s)
	lineStart := []int{0}
	for i, r := range runes {
		if r == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &Buffer{runes: runes, lineStart: lineStart}
}

// Len returns the number of code units (runes) in the buffer.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// IsEnd reports whether i is at or past the end of the buffer.
func (b *Buffer) IsEnd(i int) bool {
	return i >= len(b.runes)
}

// GetValue returns the code unit at position i. Callers must check
// IsEnd(i) first; GetValue panics on out-of-range i like a slice index
// would.
func (b *Buffer) GetValue(i int) rune {
	return b.runes[i]
}

// Slice returns the substring covering code-unit range [from,to).
func (b *Buffer) Slice(from, to int) string {
	if to > len(b.runes) {
		to = len(b.runes)
	}
	return string(b.runes[from:to])
}

// GetPositionAt returns the 1-based {line, column} for code-unit index
// i. Positions for i out of range yield the position one past the end.
func (b *Buffer) GetPositionAt(i int) fuzzyparse.Position {
	if i > len(b.runes) {
		i = len(b.runes)
	}
	if i < 0 {
		i = 0
	}
	line := b.lineOf(i)
	col := i - b.lineStart[line] + 1
	return fuzzyparse.Position{Line: line + 1, Column: col}
}

// lineOf returns the 0-based line index containing code-unit index i.
func (b *Buffer) lineOf(i int) int {
	lo, hi := 0, len(b.lineStart)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lineStart[mid] <= i {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
