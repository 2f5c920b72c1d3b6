package lexer

import (
	"fmt"

	"github.com/npillmayer/fuzzyparse/automaton"
	"github.com/npillmayer/fuzzyparse/text"
	"github.com/npillmayer/fuzzyparse/token"
)

// NameFunc maps a terminal symbol id to a human-readable name, for
// Token.Name. If nil, a default "T<id>" naming is used.
type NameFunc func(symbolID int32) string

// Lexer implements token.Lexer over a text.Buffer and an
// automaton.Automaton, with bounded fuzzy recovery on DFA failure.
type Lexer struct {
	buf         *text.Buffer
	aut         *automaton.Automaton
	pos         int
	maxDistance int
	sink        token.ErrorSink
	nameOf      NameFunc
}

// New creates a Lexer over text, using aut for tokenization. sink
// receives every UnexpectedChar synchronously, in input order.
// maxDistance bounds the fuzzy matcher's edit budget.
func New(text_ string, aut *automaton.Automaton, maxDistance int, sink token.ErrorSink, nameOf NameFunc) *Lexer {
	if nameOf == nil {
		nameOf = func(id int32) string { return fmt.Sprintf("T%d", id) }
	}
	return &Lexer{
		buf:         text.NewBuffer(text_),
		aut:         aut,
		maxDistance: maxDistance,
		sink:        sink,
		nameOf:      nameOf,
	}
}

var _ token.Lexer = (*Lexer)(nil)

// Next implements token.Lexer. Every call either returns a token
// covering at least one consumed code unit, returns EOF, or (when
// recovery finds nothing useful) advances the cursor by one code unit
// before looping internally — forward progress is always made.
func (l *Lexer) Next() token.Token {
	for {
		if l.buf.IsEnd(l.pos) {
			pos := l.buf.GetPositionAt(l.pos)
			return token.EOF(pos.Line, pos.Column)
		}
		origin := l.pos
		startPos := l.buf.GetPositionAt(origin)

		if state, length, ok := ExactMatch(l.buf, l.aut, origin); ok {
			tracer().Debugf("exact match at %d: state=%d length=%d", origin, state, length)
			term := l.aut.GetState(state).Terminals[0]
			l.pos = origin + length
			return token.Token{
				SymbolID: term,
				Name:     l.nameOf(term),
				Value:    l.buf.Slice(origin, l.pos),
				Line:     startPos.Line,
				Column:   startPos.Column,
			}
		}

		state, length, ok := FuzzyMatch(l.buf, l.aut, origin, l.maxDistance, l.sink)
		if ok {
			tracer().Infof("fuzzy recovery at %d: state=%d length=%d", origin, state, length)
			term := l.aut.GetState(state).Terminals[0]
			l.pos = origin + length
			return token.Token{
				SymbolID: term,
				Name:     l.nameOf(term),
				Value:    l.buf.Slice(origin, l.pos),
				Line:     startPos.Line,
				Column:   startPos.Column,
			}
		}
		// FuzzyMatch already reported the UnexpectedChar; skip past it and retry.
		l.pos = origin + length
	}
}
