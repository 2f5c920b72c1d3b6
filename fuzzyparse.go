package fuzzyparse

import "fmt"

// Position is a 1-based line/column location in source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
