/*
Package lexer implements §4.D's exact longest-match DFA step and §4.E's
bounded-edit-distance fuzzy recovery. Together they turn a text.Buffer
plus an automaton.Automaton into a token.Lexer.
*/
package lexer

import (
	"github.com/npillmayer/fuzzyparse/automaton"
	"github.com/npillmayer/fuzzyparse/text"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fuzzyparse.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("fuzzyparse.lexer")
}

// ExactMatch runs the standard longest-match DFA step from state 0 at
// origin: it consumes code units while transitions exist, and the last
// visited state with a non-empty terminals list wins. ok is false if
// no accepting state was ever reached (including the case of zero
// code units consumed).
func ExactMatch(buf *text.Buffer, aut *automaton.Automaton, origin int) (state int32, length int, ok bool) {
	cur := origin
	curState := int32(0)
	bestState := int32(-1)
	bestLength := -1
	if aut.GetState(0).HasTerminals() {
		bestState, bestLength = 0, 0
	}
	for !buf.IsEnd(cur) {
		r := buf.GetValue(cur)
		next := aut.GetState(curState).Next(r)
		if next == automaton.DeadState {
			break
		}
		curState = next
		cur++
		if aut.GetState(curState).HasTerminals() {
			bestState = curState
			bestLength = cur - origin
		}
	}
	if bestLength < 0 {
		return 0, 0, false
	}
	return bestState, bestLength, true
}
